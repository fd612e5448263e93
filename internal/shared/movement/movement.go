// internal/shared/movement/movement.go
package movement

import (
	"github.com/obrien-tchaleu/crossludo/internal/shared/models"
)

// Advance fait avancer un pion case par case le long de l'anneau.
// Le déplacement s'arrête quand les points sont épuisés ou quand le pion
// se trouve sur l'entrée de la colonne d'arrivée de owner ; dans ce dernier
// cas MovesLeft garde les points non consommés.
func Advance(b *models.Board, owner models.Player, row, col, pips int) models.Position {
	if !b.IsRing(row, col) {
		return models.Position{Row: row, Col: col, MovesLeft: pips}
	}

	for pips > 0 {
		step := b.StepAt(row, col)
		if step.Kind == models.StepEntrance && step.Entrant == owner {
			break
		}
		row += step.DRow
		col += step.DCol
		pips--
	}

	return models.Position{Row: row, Col: col, MovesLeft: pips}
}

// EnterHome tente de faire entrer un pion arrêté sur son entrée dans sa
// colonne d'arrivée avec les points restants. Les cases de couloir qui
// séparent l'entrée de la colonne sur les grands plateaux sont sautées. L'entrée n'est possible que si
// la case visée est une case d'arrivée libre du joueur ; sinon la position
// est retournée telle quelle (MovesLeft non nul = coup refusé).
func EnterHome(b *models.Board, owner models.Player, pos models.Position) models.Position {
	if pos.MovesLeft == 0 {
		return pos
	}

	er, ec := b.HomeEntrance(owner)
	if pos.Row != er || pos.Col != ec {
		return pos
	}

	dr, dc := models.Inward(owner)
	k := pos.MovesLeft + b.HomeGap()
	target := b.Cell(pos.Row+dr*k, pos.Col+dc*k)
	if target == nil || target.Role != models.RoleHome || target.Owner != owner || target.Occupant != models.NoPlayer {
		return pos
	}

	return models.At(target.Row, target.Col)
}

// DistanceToHome retourne le nombre de pas jusqu'à l'entrée de la colonne d'arrivée
func DistanceToHome(b *models.Board, owner models.Player, row, col int) int {
	budget := b.RingLength()
	end := Advance(b, owner, row, col, budget)
	return budget - end.MovesLeft
}

// Resolve calcule la destination complète d'un coup et indique s'il est légal :
// arrivée exacte sur l'anneau sans pion du même joueur, ou entrée exacte
// dans la colonne d'arrivée.
func Resolve(b *models.Board, owner models.Player, row, col, pips int) (models.Position, bool) {
	if !b.IsRing(row, col) {
		return models.At(row, col), false
	}

	dest := Advance(b, owner, row, col, pips)
	if dest.MovesLeft != 0 {
		dest = EnterHome(b, owner, dest)
		return dest, dest.MovesLeft == 0
	}

	if b.Cell(dest.Row, dest.Col).Occupant == owner {
		return dest, false
	}
	return dest, true
}

// Captures indique si le coup se termine sur un pion adverse de l'anneau
func Captures(b *models.Board, owner models.Player, dest models.Position) bool {
	if dest.MovesLeft != 0 || !b.IsRing(dest.Row, dest.Col) {
		return false
	}
	occupant := b.Cell(dest.Row, dest.Col).Occupant
	return occupant != models.NoPlayer && occupant != owner
}
