// internal/game/input.go
package game

import (
	"github.com/obrien-tchaleu/crossludo/internal/client/animation"
	"github.com/obrien-tchaleu/crossludo/internal/shared/constants"
	"github.com/obrien-tchaleu/crossludo/internal/shared/models"
)

// Confirm signale la touche de validation ; elle est consommée par le prochain Tick
func (e *Engine) Confirm() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.confirmed = true
}

// SelectCell place le curseur sur une case
func (e *Engine) SelectCell(row, col int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.setCursor(row, col)
}

// MoveCursor déplace le curseur en restant sur le plateau
func (e *Engine) MoveCursor(dRow, dCol int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.setCursor(e.cursor.Row+dRow, e.cursor.Col+dCol)
}

// SelectNearest place le curseur sur la case la plus proche d'un point écran
func (e *Engine) SelectNearest(x, y float32, layout animation.Layout) {
	row, col := layout.Nearest(x, y)
	e.SelectCell(row, col)
}

func (e *Engine) setCursor(row, col int) {
	last := e.size - 1
	e.cursor = models.At(min(max(row, 0), last), min(max(col, 0), last))
}

// Cursor retourne la case sous le curseur
func (e *Engine) Cursor() models.Position {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.cursor
}

// ChoosePawn valide une sélection pour le joueur actif
func (e *Engine) ChoosePawn(row, col int) (models.Position, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.choosePawn(row, col)
}

// CheckWinner indique si le joueur occupe ses quatre cases d'arrivée
func (e *Engine) CheckWinner(p models.Player) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.checkWinner(p)
}

// SelectablePawns retourne les pions du joueur sur l'anneau
func (e *Engine) SelectablePawns(p models.Player) []models.Position {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.board.RingPawns(p)
}

// State retourne l'état de la machine à tours
func (e *Engine) State() constants.GameState {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.state
}

// Turn retourne le joueur actif
func (e *Engine) Turn() models.Player {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.turn
}

// Dice retourne la dernière valeur du dé (0 avant le lancer)
func (e *Engine) Dice() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.dice
}

// ExtraThrows retourne le compteur de lancers du tour
func (e *Engine) ExtraThrows() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.extraThrows
}

// Winner retourne le gagnant, NoPlayer tant que la partie continue
func (e *Engine) Winner() models.Player {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.winner
}

// ActiveMove retourne le déplacement en cours d'animation
func (e *Engine) ActiveMove() (models.MoveView, bool) {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.move == nil {
		return models.MoveView{}, false
	}
	return *e.move, true
}

// Board retourne une copie du plateau
func (e *Engine) Board() *models.Board {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.board.Clone()
}

// ID retourne l'identifiant de la partie
func (e *Engine) ID() string {
	return e.id
}

// Snapshot retourne l'état visible du jeu pour le rendu
func (e *Engine) Snapshot() models.Snapshot {
	e.mu.RLock()
	defer e.mu.RUnlock()

	snap := models.Snapshot{
		GameID:      e.id,
		Size:        e.size,
		Turn:        e.turn,
		Dice:        e.dice,
		State:       e.state,
		ExtraThrows: e.extraThrows,
		Winner:      e.winner,
		Cursor:      e.cursor,
		Cells:       e.board.Views(),
	}
	if e.move != nil {
		move := *e.move
		snap.Move = &move
	}
	return snap
}
