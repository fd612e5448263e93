// internal/game/engine.go
package game

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/obrien-tchaleu/crossludo/internal/logging"
	"github.com/obrien-tchaleu/crossludo/internal/shared/constants"
	"github.com/obrien-tchaleu/crossludo/internal/shared/models"
	"github.com/obrien-tchaleu/crossludo/internal/shared/movement"
	"github.com/obrien-tchaleu/crossludo/pkg/ai"
)

var (
	// ErrGameNotFinished est retourné par Reset hors de l'état gagné
	ErrGameNotFinished = errors.New("game not finished")
	// ErrInvariant signale un défaut de programmation détecté pendant un tour
	ErrInvariant = errors.New("engine invariant violated")
)

// Roller fournit les lancers de dé
type Roller interface {
	Roll() int
}

type randRoller struct {
	rand *rand.Rand
}

// NewRandRoller crée un dé uniforme ; seed 0 utilise l'horloge
func NewRandRoller(seed int64) Roller {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &randRoller{rand: rand.New(rand.NewSource(seed))}
}

func (r *randRoller) Roll() int {
	return r.rand.Intn(constants.DiceMax) + constants.DiceMin
}

// Chooser sélectionne le pion d'un joueur ordinateur
type Chooser func(b *models.Board, player models.Player, pips int) (models.Position, bool)

// EngineCallbacks définit les callbacks pour les événements du jeu.
// Ils sont appelés pendant un Tick et ne doivent pas rappeler le moteur.
type EngineCallbacks struct {
	OnDiceRolled       func(player models.Player, value int, extraTurn bool)
	OnPawnSummoned     func(player models.Player, from, to models.Position)
	OnPawnMoved        func(player models.Player, from, to models.Position)
	OnMoveBlocked      func(player models.Player, at models.Position, pips int)
	OnPawnCaptured     func(capturer, victim models.Player, at, yard models.Position)
	OnIllegalSelection func(player models.Player, row, col int)
	OnTurnChanged      func(player models.Player)
	OnGameOver         func(winner models.Player)
}

// Options configure un moteur
type Options struct {
	GameID       string
	BoardSize    int
	Controllers  [constants.MaxPlayers]constants.Controller
	Roller       Roller
	Chooser      Chooser
	AutoFinalize bool
	Logger       *logrus.Entry
	Callbacks    EngineCallbacks
}

// Engine gère la machine à tours d'une partie
type Engine struct {
	mu           sync.RWMutex
	id           string
	size         int
	board        *models.Board
	controllers  [constants.MaxPlayers]constants.Controller
	turn         models.Player
	state        constants.GameState
	dice         int
	extraThrows  int
	cursor       models.Position
	confirmed    bool
	selected     models.Position
	move         *models.MoveView
	finalized    bool
	winner       models.Player
	roller       Roller
	choose       Chooser
	autoFinalize bool
	log          *logrus.Entry
	callbacks    EngineCallbacks
}

// NewEngine crée un nouveau moteur de jeu
func NewEngine(opts Options) (*Engine, error) {
	size := opts.BoardSize
	if size == 0 {
		size = constants.DefaultBoardSize
	}

	board, err := models.NewBoard(size)
	if err != nil {
		return nil, fmt.Errorf("failed to build board: %w", err)
	}

	controllers := opts.Controllers
	for i, c := range controllers {
		switch c {
		case "":
			controllers[i] = constants.ControllerComputer
		case constants.ControllerHuman, constants.ControllerComputer:
		default:
			return nil, fmt.Errorf("invalid controller %q for player %d", c, i+1)
		}
	}

	roller := opts.Roller
	if roller == nil {
		roller = NewRandRoller(0)
	}
	choose := opts.Chooser
	if choose == nil {
		choose = ai.ChoosePawn
	}
	entry := opts.Logger
	if entry == nil {
		entry = logrus.NewEntry(logging.Discard())
	}

	return &Engine{
		id:           opts.GameID,
		size:         size,
		board:        board,
		controllers:  controllers,
		turn:         models.PlayerOne,
		state:        constants.StateWaiting,
		roller:       roller,
		choose:       choose,
		autoFinalize: opts.AutoFinalize,
		log:          entry.WithField("game_id", opts.GameID),
		callbacks:    opts.Callbacks,
	}, nil
}

// Tick fait avancer la machine à tours d'une étape
func (e *Engine) Tick() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	// la confirmation ne vaut que pour le tick qui l'observe
	defer func() { e.confirmed = false }()

	if e.state == constants.StateWon {
		return nil
	}
	if e.checkWinner(e.turn) {
		e.endGame(e.turn)
		return nil
	}

	switch e.state {
	case constants.StateWaiting:
		e.stepWaiting()
	case constants.StateRollingDice:
		e.stepRollingDice()
	case constants.StateForcedSummon:
		e.stepForcedSummon()
	case constants.StateSummoningPawn:
		return e.stepSummoningPawn()
	case constants.StatePickingPawn:
		e.stepPickingPawn()
	case constants.StateMovingPawn:
		return e.stepMovingPawn()
	case constants.StateAnimating:
		e.stepAnimating()
	case constants.StateEndingTurn:
		e.nextTurn()
	default:
		return fmt.Errorf("%w: unknown state %q", ErrInvariant, e.state)
	}
	return nil
}

func (e *Engine) stepWaiting() {
	e.dice = 0
	if e.isHuman(e.turn) && !e.confirmed {
		return
	}
	e.state = constants.StateRollingDice
}

func (e *Engine) stepRollingDice() {
	e.dice = e.roller.Roll()
	e.state = constants.StatePickingPawn

	sr, sc := e.board.StartCell(e.turn)
	switch {
	case e.dice == constants.RollToSummon && e.extraThrows%2 == 0:
		e.state = constants.StateForcedSummon
	case e.extraThrows%2 == 1 && e.board.Cell(sr, sc).Occupant == e.turn:
		// le pion qui vient de sortir doit jouer
		e.selected = models.At(sr, sc)
		e.cursor = e.selected
		e.state = constants.StateMovingPawn
	}

	e.log.WithFields(logrus.Fields{
		"player": e.turn.String(),
		"dice":   e.dice,
		"next":   e.state,
	}).Debug("dice rolled")

	if e.callbacks.OnDiceRolled != nil {
		e.callbacks.OnDiceRolled(e.turn, e.dice, e.dice == constants.RollForExtraTurn)
	}
}

func (e *Engine) stepForcedSummon() {
	e.state = constants.StatePickingPawn

	sr, sc := e.board.StartCell(e.turn)
	if e.board.YardPawn(e.turn) != nil && e.board.Cell(sr, sc).Occupant != e.turn {
		e.state = constants.StateSummoningPawn
	}
}

func (e *Engine) stepSummoningPawn() error {
	yard := e.board.YardPawn(e.turn)
	if yard == nil {
		e.state = constants.StatePickingPawn
		return nil
	}

	sr, sc := e.board.StartCell(e.turn)
	from := models.At(yard.Row, yard.Col)
	to := models.At(sr, sc)

	captured, err := e.checkCapture(to)
	if err != nil {
		return err
	}

	yard.Occupant = models.NoPlayer
	e.extraThrows++
	e.beginMove(&models.MoveView{Player: e.turn, From: from, To: to, Summon: true, Captured: captured})

	e.log.WithFields(logrus.Fields{
		"player": e.turn.String(),
		"from":   from.String(),
		"to":     to.String(),
	}).Info("pawn summoned")

	if e.callbacks.OnPawnSummoned != nil {
		e.callbacks.OnPawnSummoned(e.turn, from, to)
	}
	return nil
}

func (e *Engine) stepPickingPawn() {
	if len(e.board.RingPawns(e.turn)) == 0 {
		e.state = constants.StateEndingTurn
		return
	}

	if !e.isHuman(e.turn) {
		pos, ok := e.choose(e.board, e.turn, e.dice)
		if !ok {
			e.state = constants.StateEndingTurn
			return
		}
		e.selected = pos
		e.cursor = pos
		e.state = constants.StateMovingPawn
		return
	}

	if !e.confirmed {
		return
	}

	pos, ok := e.choosePawn(e.cursor.Row, e.cursor.Col)
	if !ok {
		e.log.WithFields(logrus.Fields{
			"player": e.turn.String(),
			"cell":   e.cursor.String(),
		}).Debug("illegal pawn selection")
		if e.callbacks.OnIllegalSelection != nil {
			e.callbacks.OnIllegalSelection(e.turn, e.cursor.Row, e.cursor.Col)
		}
		return
	}
	e.selected = pos
	e.state = constants.StateMovingPawn
}

func (e *Engine) stepMovingPawn() error {
	from := e.selected
	e.extraThrows++

	if _, ok := e.choosePawn(from.Row, from.Col); !ok {
		e.blockMove(from)
		return nil
	}

	dest, legal := movement.Resolve(e.board, e.turn, from.Row, from.Col, e.dice)
	if !legal {
		e.blockMove(from)
		return nil
	}

	var captured *models.CaptureView
	if movement.Captures(e.board, e.turn, dest) {
		var err error
		if captured, err = e.checkCapture(dest); err != nil {
			return err
		}
	}

	e.board.Cell(from.Row, from.Col).Occupant = models.NoPlayer
	e.beginMove(&models.MoveView{Player: e.turn, From: from, To: dest, Captured: captured})

	e.log.WithFields(logrus.Fields{
		"player": e.turn.String(),
		"dice":   e.dice,
		"from":   from.String(),
		"to":     dest.String(),
	}).Info("pawn moved")

	if e.callbacks.OnPawnMoved != nil {
		e.callbacks.OnPawnMoved(e.turn, from, dest)
	}
	return nil
}

// blockMove consomme le coup sans déplacer le pion
func (e *Engine) blockMove(at models.Position) {
	e.beginMove(&models.MoveView{Player: e.turn, From: at, To: at, Blocked: true})

	e.log.WithFields(logrus.Fields{
		"player": e.turn.String(),
		"dice":   e.dice,
		"at":     at.String(),
	}).Info("move blocked")

	if e.callbacks.OnMoveBlocked != nil {
		e.callbacks.OnMoveBlocked(e.turn, at, e.dice)
	}
}

func (e *Engine) beginMove(move *models.MoveView) {
	e.move = move
	e.finalized = false
	e.state = constants.StateAnimating
}

func (e *Engine) stepAnimating() {
	if !e.finalized {
		if !e.autoFinalize {
			return
		}
		e.finalizeMove()
	}

	e.move = nil
	if e.dice == constants.RollForExtraTurn {
		e.state = constants.StateWaiting
	} else {
		e.state = constants.StateEndingTurn
	}
}

func (e *Engine) finalizeMove() {
	if !e.move.Blocked {
		e.board.Cell(e.move.To.Row, e.move.To.Col).Occupant = e.move.Player
	}
	e.finalized = true
}

// FinishAnimation est le signal du rendu : l'interpolation est terminée
func (e *Engine) FinishAnimation() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state != constants.StateAnimating || e.move == nil || e.finalized {
		return
	}
	e.finalizeMove()
}

// checkCapture renvoie dans son camp le pion adverse présent sur la case
func (e *Engine) checkCapture(at models.Position) (*models.CaptureView, error) {
	cell := e.board.Cell(at.Row, at.Col)
	victim := cell.Occupant
	if cell.Role != models.RoleTrack || victim == models.NoPlayer || victim == e.turn {
		return nil, nil
	}

	slot := e.board.FreeYardSlot(victim)
	if slot == nil {
		e.log.WithField("victim", victim.String()).Error("no free yard slot for captured pawn")
		return nil, fmt.Errorf("%w: no free yard slot for %s", ErrInvariant, victim)
	}

	slot.Occupant = victim
	cell.Occupant = models.NoPlayer
	yard := models.At(slot.Row, slot.Col)

	e.log.WithFields(logrus.Fields{
		"capturer": e.turn.String(),
		"victim":   victim.String(),
		"at":       at.String(),
	}).Info("pawn captured")

	if e.callbacks.OnPawnCaptured != nil {
		e.callbacks.OnPawnCaptured(e.turn, victim, models.At(at.Row, at.Col), yard)
	}
	return &models.CaptureView{Victim: victim, At: models.At(at.Row, at.Col), Yard: yard}, nil
}

// nextTurn passe au tour suivant
func (e *Engine) nextTurn() {
	e.extraThrows = 0
	e.turn = e.turn.Next()
	e.state = constants.StateWaiting

	e.log.WithField("player", e.turn.String()).Debug("turn changed")
	if e.callbacks.OnTurnChanged != nil {
		e.callbacks.OnTurnChanged(e.turn)
	}
}

// checkWinner vérifie si les quatre cases d'arrivée du joueur portent ses pions
func (e *Engine) checkWinner(p models.Player) bool {
	for _, cell := range e.board.HomeCells(p) {
		if cell.Occupant != p {
			return false
		}
	}
	return true
}

// endGame fige la partie
func (e *Engine) endGame(winner models.Player) {
	e.winner = winner
	e.state = constants.StateWon

	e.log.WithField("winner", winner.String()).Info("game over")
	if e.callbacks.OnGameOver != nil {
		e.callbacks.OnGameOver(winner)
	}
}

// choosePawn valide une sélection : pion du joueur actif posé sur l'anneau
func (e *Engine) choosePawn(row, col int) (models.Position, bool) {
	cell := e.board.Cell(row, col)
	if cell == nil || cell.Occupant != e.turn || !e.board.IsRing(row, col) {
		return models.Position{}, false
	}
	return models.At(row, col), true
}

func (e *Engine) isHuman(p models.Player) bool {
	return p.Valid() && e.controllers[p-1] == constants.ControllerHuman
}

// Reset reconstruit le plateau ; accepté uniquement quand la partie est gagnée
func (e *Engine) Reset() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state != constants.StateWon {
		return ErrGameNotFinished
	}

	board, err := models.NewBoard(e.size)
	if err != nil {
		return fmt.Errorf("failed to rebuild board: %w", err)
	}

	e.board = board
	e.turn = models.PlayerOne
	e.state = constants.StateWaiting
	e.dice = 0
	e.extraThrows = 0
	e.cursor = models.Position{}
	e.selected = models.Position{}
	e.move = nil
	e.finalized = false
	e.winner = models.NoPlayer

	e.log.Info("game reset")
	return nil
}
