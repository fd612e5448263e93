// internal/shared/protocol/serializer.go
package protocol

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// ErrNoStream est retourné quand le sens demandé n'a pas de flux
var ErrNoStream = errors.New("no stream for this direction")

// Serializer lit et écrit un flux de messages JSON, un message par ligne
type Serializer struct {
	encoder *json.Encoder
	decoder *json.Decoder
}

// NewSerializer crée un sérialiseur ; reader ou writer peut être nil
// pour un flux à sens unique (journal d'événements)
func NewSerializer(reader io.Reader, writer io.Writer) *Serializer {
	s := &Serializer{}
	if writer != nil {
		s.encoder = json.NewEncoder(writer)
		s.encoder.SetEscapeHTML(false)
	}
	if reader != nil {
		s.decoder = json.NewDecoder(reader)
	}
	return s
}

// Encode écrit un message suivi d'un saut de ligne
func (s *Serializer) Encode(msg *NetworkMessage) error {
	if s.encoder == nil {
		return ErrNoStream
	}
	if err := s.encoder.Encode(msg); err != nil {
		return fmt.Errorf("failed to encode message: %w", err)
	}
	return nil
}

// Decode lit le message suivant du flux
func (s *Serializer) Decode(msg *NetworkMessage) error {
	if s.decoder == nil {
		return ErrNoStream
	}
	if err := s.decoder.Decode(msg); err != nil {
		return fmt.Errorf("failed to decode message: %w", err)
	}
	return nil
}

// EncodeMessage encode un message pour une trame websocket
func EncodeMessage(msg *NetworkMessage) ([]byte, error) {
	data, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal message: %w", err)
	}
	return data, nil
}

// DecodeMessage décode une trame websocket
func DecodeMessage(data []byte) (*NetworkMessage, error) {
	var msg NetworkMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal message: %w", err)
	}
	return &msg, nil
}
