// internal/spectate/events.go
package spectate

import (
	"github.com/obrien-tchaleu/crossludo/internal/game"
	"github.com/obrien-tchaleu/crossludo/internal/shared/constants"
	"github.com/obrien-tchaleu/crossludo/internal/shared/models"
	"github.com/obrien-tchaleu/crossludo/internal/shared/protocol"
)

// Publisher reçoit les événements d'une partie
type Publisher interface {
	Publish(msg *protocol.NetworkMessage)
}

// EventCallbacks traduit les callbacks moteur en messages publiés.
// Le nombre de tours annoncé en fin de partie est compté ici.
func EventCallbacks(gameID string, pub Publisher) game.EngineCallbacks {
	turns := 0
	return game.EngineCallbacks{
		OnDiceRolled: func(player models.Player, value int, extraTurn bool) {
			pub.Publish(protocol.NewMessage(constants.MsgDiceRolled, protocol.DiceRolledPayload{
				GameID: gameID, Player: player, Value: value, ExtraTurn: extraTurn,
			}))
		},
		OnPawnSummoned: func(player models.Player, from, to models.Position) {
			pub.Publish(protocol.NewMessage(constants.MsgPawnMoved, protocol.PawnMovedPayload{
				GameID: gameID, Player: player, From: from, To: to, Summon: true,
			}))
		},
		OnPawnMoved: func(player models.Player, from, to models.Position) {
			pub.Publish(protocol.NewMessage(constants.MsgPawnMoved, protocol.PawnMovedPayload{
				GameID: gameID, Player: player, From: from, To: to,
			}))
		},
		OnMoveBlocked: func(player models.Player, at models.Position, pips int) {
			pub.Publish(protocol.NewMessage(constants.MsgPawnMoved, protocol.PawnMovedPayload{
				GameID: gameID, Player: player, From: at, To: at, Blocked: true,
			}))
		},
		OnPawnCaptured: func(capturer, victim models.Player, at, yard models.Position) {
			pub.Publish(protocol.NewMessage(constants.MsgPawnCaptured, protocol.PawnCapturedPayload{
				GameID: gameID, Capturer: capturer, Victim: victim, At: at, Yard: yard,
			}))
		},
		OnTurnChanged: func(player models.Player) {
			turns++
			pub.Publish(protocol.NewMessage(constants.MsgTurnChanged, protocol.TurnChangedPayload{
				GameID: gameID, Player: player,
			}))
		},
		OnGameOver: func(winner models.Player) {
			pub.Publish(protocol.NewMessage(constants.MsgGameOver, protocol.GameOverPayload{
				GameID: gameID, Winner: winner, Turns: turns,
			}))
		},
	}
}
