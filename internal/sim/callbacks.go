// internal/sim/callbacks.go
package sim

import (
	"github.com/obrien-tchaleu/crossludo/internal/game"
	"github.com/obrien-tchaleu/crossludo/internal/shared/models"
)

// mergeCallbacks appelle chaque jeu de callbacks dans l'ordre
func mergeCallbacks(list ...game.EngineCallbacks) game.EngineCallbacks {
	return game.EngineCallbacks{
		OnDiceRolled: func(player models.Player, value int, extraTurn bool) {
			for _, c := range list {
				if c.OnDiceRolled != nil {
					c.OnDiceRolled(player, value, extraTurn)
				}
			}
		},
		OnPawnSummoned: func(player models.Player, from, to models.Position) {
			for _, c := range list {
				if c.OnPawnSummoned != nil {
					c.OnPawnSummoned(player, from, to)
				}
			}
		},
		OnPawnMoved: func(player models.Player, from, to models.Position) {
			for _, c := range list {
				if c.OnPawnMoved != nil {
					c.OnPawnMoved(player, from, to)
				}
			}
		},
		OnMoveBlocked: func(player models.Player, at models.Position, pips int) {
			for _, c := range list {
				if c.OnMoveBlocked != nil {
					c.OnMoveBlocked(player, at, pips)
				}
			}
		},
		OnPawnCaptured: func(capturer, victim models.Player, at, yard models.Position) {
			for _, c := range list {
				if c.OnPawnCaptured != nil {
					c.OnPawnCaptured(capturer, victim, at, yard)
				}
			}
		},
		OnIllegalSelection: func(player models.Player, row, col int) {
			for _, c := range list {
				if c.OnIllegalSelection != nil {
					c.OnIllegalSelection(player, row, col)
				}
			}
		},
		OnTurnChanged: func(player models.Player) {
			for _, c := range list {
				if c.OnTurnChanged != nil {
					c.OnTurnChanged(player)
				}
			}
		},
		OnGameOver: func(winner models.Player) {
			for _, c := range list {
				if c.OnGameOver != nil {
					c.OnGameOver(winner)
				}
			}
		},
	}
}
