// internal/shared/protocol/message.go
package protocol

import (
	"time"

	"github.com/obrien-tchaleu/crossludo/internal/shared/constants"
	"github.com/obrien-tchaleu/crossludo/internal/shared/models"
)

// NetworkMessage est l'enveloppe de tous les messages échangés avec les spectateurs
type NetworkMessage struct {
	Type      constants.MessageType `json:"type"`
	Payload   interface{}           `json:"payload,omitempty"`
	Timestamp time.Time             `json:"timestamp"`
}

// NewMessage crée un message horodaté
func NewMessage(t constants.MessageType, payload interface{}) *NetworkMessage {
	return &NetworkMessage{Type: t, Payload: payload, Timestamp: time.Now()}
}

// DiceRolledPayload annonce un lancer de dé
type DiceRolledPayload struct {
	GameID    string        `json:"game_id"`
	Player    models.Player `json:"player"`
	Value     int           `json:"value"`
	ExtraTurn bool          `json:"extra_turn"`
}

// PawnMovedPayload annonce un déplacement, une sortie de camp ou un coup bloqué
type PawnMovedPayload struct {
	GameID  string          `json:"game_id"`
	Player  models.Player   `json:"player"`
	From    models.Position `json:"from"`
	To      models.Position `json:"to"`
	Summon  bool            `json:"summon,omitempty"`
	Blocked bool            `json:"blocked,omitempty"`
}

// PawnCapturedPayload annonce une capture
type PawnCapturedPayload struct {
	GameID   string          `json:"game_id"`
	Capturer models.Player   `json:"capturer"`
	Victim   models.Player   `json:"victim"`
	At       models.Position `json:"at"`
	Yard     models.Position `json:"yard"`
}

// TurnChangedPayload annonce le joueur actif
type TurnChangedPayload struct {
	GameID string        `json:"game_id"`
	Player models.Player `json:"player"`
}

// GameOverPayload annonce le vainqueur
type GameOverPayload struct {
	GameID string        `json:"game_id"`
	Winner models.Player `json:"winner"`
	Turns  int           `json:"turns"`
}

// SnapshotPayload transporte l'état complet d'une partie
type SnapshotPayload struct {
	Snapshot models.Snapshot `json:"snapshot"`
}

// SnapshotRequestPayload demande l'état d'une partie ; vide = partie courante
type SnapshotRequestPayload struct {
	GameID string `json:"game_id,omitempty"`
}

// ErrorPayload décrit une erreur renvoyée au client
type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
