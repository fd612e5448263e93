// internal/shared/protocol/validator.go
package protocol

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/obrien-tchaleu/crossludo/internal/shared/constants"
)

var (
	// ErrUnknownMessage signale un type de message non accepté
	ErrUnknownMessage = errors.New("unknown message type")
	// ErrBadMessage signale un message mal formé
	ErrBadMessage = errors.New("bad message")
)

// Validator valide les messages reçus des spectateurs
type Validator struct{}

// NewValidator crée un nouveau validateur
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateMessage valide un message entrant
func (v *Validator) ValidateMessage(msg *NetworkMessage) error {
	if msg == nil {
		return fmt.Errorf("%w: message is nil", ErrBadMessage)
	}

	if msg.Type == "" {
		return fmt.Errorf("%w: message type is empty", ErrBadMessage)
	}

	switch msg.Type {
	case constants.MsgPing:
		return nil
	case constants.MsgSnapshotReq:
		return v.validateSnapshotRequest(msg.Payload)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownMessage, msg.Type)
	}
}

// ErrorCode retourne le code d'erreur envoyé au client pour une erreur de validation
func ErrorCode(err error) string {
	if errors.Is(err, ErrUnknownMessage) {
		return constants.ErrUnknownMessage
	}
	return constants.ErrBadMessage
}

// ExtractPayload extrait et convertit le payload
func ExtractPayload(payload interface{}, target interface{}) error {
	if payload == nil {
		return nil
	}

	// Convertir le payload en JSON
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	// Décoder dans la structure cible
	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("%w: failed to unmarshal payload: %v", ErrBadMessage, err)
	}

	return nil
}

// validateSnapshotRequest valide une demande d'état
func (v *Validator) validateSnapshotRequest(payload interface{}) error {
	var data SnapshotRequestPayload
	if err := ExtractPayload(payload, &data); err != nil {
		return err
	}

	return ValidateGameID(data.GameID)
}

// ValidateGameID accepte un identifiant vide (partie courante) ou un UUID
func ValidateGameID(id string) error {
	if id == "" {
		return nil
	}
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: invalid game id %q", ErrBadMessage, id)
	}
	return nil
}
