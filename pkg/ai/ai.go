// pkg/ai/ai.go
package ai

import (
	"cmp"
	"slices"

	"github.com/obrien-tchaleu/crossludo/internal/shared/models"
	"github.com/obrien-tchaleu/crossludo/internal/shared/movement"
)

// Candidate représente un pion évalué par l'IA
type Candidate struct {
	Pawn     models.Position
	Distance int
	Dest     models.Position
	Legal    bool
	Captures bool
}

// Evaluate calcule, pour chaque pion de l'anneau, sa distance et l'issue du coup
func Evaluate(b *models.Board, player models.Player, pips int) []Candidate {
	pawns := b.RingPawns(player)
	candidates := make([]Candidate, 0, len(pawns))

	for _, pawn := range pawns {
		dest, legal := movement.Resolve(b, player, pawn.Row, pawn.Col, pips)
		candidates = append(candidates, Candidate{
			Pawn:     pawn,
			Distance: movement.DistanceToHome(b, player, pawn.Row, pawn.Col),
			Dest:     dest,
			Legal:    legal,
			Captures: legal && movement.Captures(b, player, dest),
		})
	}

	return candidates
}

// ChoosePawn sélectionne le pion à déplacer pour un joueur ordinateur.
// Priorités : une capture, sinon le pion le plus proche de son entrée,
// sinon (dépassement) le suivant dans l'ordre des distances.
func ChoosePawn(b *models.Board, player models.Player, pips int) (models.Position, bool) {
	candidates := Evaluate(b, player, pips)
	if len(candidates) == 0 {
		return models.Position{}, false
	}

	// 1. Capture d'un adversaire
	for _, c := range candidates {
		if c.Captures {
			return c.Pawn, true
		}
	}

	// 2. Pion le plus proche, égalités dans l'ordre de balayage
	ranked := slices.Clone(candidates)
	slices.SortStableFunc(ranked, func(a, b Candidate) int {
		return cmp.Compare(a.Distance, b.Distance)
	})
	if ranked[0].Legal {
		return ranked[0].Pawn, true
	}

	// 3. Le plus proche ne peut pas entrer : pion suivant jouable
	for _, c := range ranked[1:] {
		if c.Legal {
			return c.Pawn, true
		}
	}

	return ranked[0].Pawn, true
}
