// internal/spectate/hub.go
package spectate

import (
	"context"
	"sync"
	"time"

	"github.com/matryer/way"
	log "github.com/sirupsen/logrus"

	"github.com/obrien-tchaleu/crossludo/internal/game"
	"github.com/obrien-tchaleu/crossludo/internal/shared/constants"
	"github.com/obrien-tchaleu/crossludo/internal/shared/models"
	"github.com/obrien-tchaleu/crossludo/internal/shared/protocol"
)

const (
	// DefaultSnapshotInterval est la période de rafraîchissement des spectateurs
	DefaultSnapshotInterval = 2 * time.Second
	sendBuffer              = 256
	messageBuffer           = 512
)

// SnapshotSource fournit l'état courant de la partie observée
type SnapshotSource func() (models.Snapshot, bool)

// Hub diffuse les événements d'une partie à des spectateurs websocket
type Hub struct {
	log        *log.Entry
	router     *way.Router
	validator  *protocol.Validator
	clients    map[*Client]bool
	messages   chan *protocol.NetworkMessage
	register   chan *Client
	unregister chan *Client
	counts     chan chan int
	done       chan struct{}
	source     SnapshotSource
	interval   time.Duration
	mu         sync.RWMutex
}

// NewHub crée un hub ; Run doit être lancé pour qu'il diffuse
func NewHub(entry *log.Entry) *Hub {
	h := &Hub{
		log:        entry.WithField("component", "spectate"),
		validator:  protocol.NewValidator(),
		clients:    make(map[*Client]bool),
		messages:   make(chan *protocol.NetworkMessage, messageBuffer),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		counts:     make(chan chan int),
		done:       make(chan struct{}),
		interval:   DefaultSnapshotInterval,
	}
	h.routes()
	return h
}

// SetSource définit la partie observée
func (h *Hub) SetSource(source SnapshotSource) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.source = source
}

// SetInterval change la période de rafraîchissement ; à appeler avant Run
func (h *Hub) SetInterval(d time.Duration) {
	if d > 0 {
		h.interval = d
	}
}

func (h *Hub) snapshot() (models.Snapshot, bool) {
	h.mu.RLock()
	source := h.source
	h.mu.RUnlock()
	if source == nil {
		return models.Snapshot{}, false
	}
	return source()
}

func (h *Hub) snapshotMessage() *protocol.NetworkMessage {
	snap, ok := h.snapshot()
	if !ok {
		return nil
	}
	return protocol.NewMessage(constants.MsgSnapshot, protocol.SnapshotPayload{Snapshot: snap})
}

// Publish met un message en file sans bloquer ; il est perdu si la file est pleine
func (h *Hub) Publish(msg *protocol.NetworkMessage) {
	select {
	case h.messages <- msg:
	default:
		h.log.WithField("type", msg.Type).Warn("spectator queue full, message dropped")
	}
}

// Run exécute la boucle principale du hub jusqu'à l'annulation du contexte
func (h *Hub) Run(ctx context.Context) {
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()
	defer close(h.done)

	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
			h.log.WithField("clients", len(h.clients)).Info("spectator connected")
			if msg := h.snapshotMessage(); msg != nil {
				h.send(client, msg)
			}
		case client := <-h.unregister:
			if h.clients[client] {
				delete(h.clients, client)
				client.close()
				h.log.WithField("clients", len(h.clients)).Info("spectator disconnected")
			}
		case msg := <-h.messages:
			h.broadcast(msg)
		case reply := <-h.counts:
			reply <- len(h.clients)
		case <-ticker.C:
			if len(h.clients) == 0 {
				continue
			}
			if msg := h.snapshotMessage(); msg != nil {
				h.broadcast(msg)
			}
		case <-ctx.Done():
			for client := range h.clients {
				client.close()
				client.conn.Close()
				delete(h.clients, client)
			}
			h.log.Info("spectator hub stopped")
			return
		}
	}
}

func (h *Hub) broadcast(msg *protocol.NetworkMessage) {
	data, err := protocol.EncodeMessage(msg)
	if err != nil {
		h.log.WithError(err).Error("failed to encode spectator message")
		return
	}
	for client := range h.clients {
		if !client.enqueue(data) {
			// client trop lent : la lecture échouera et le désinscrira
			h.log.Warn("spectator too slow, closing connection")
			client.conn.Close()
		}
	}
}

func (h *Hub) send(client *Client, msg *protocol.NetworkMessage) {
	data, err := protocol.EncodeMessage(msg)
	if err != nil {
		h.log.WithError(err).Error("failed to encode spectator message")
		return
	}
	client.enqueue(data)
}

// ClientCount retourne le nombre de spectateurs connectés
func (h *Hub) ClientCount() int {
	count := make(chan int, 1)
	select {
	case h.counts <- count:
	case <-h.done:
		return 0
	}
	select {
	case n := <-count:
		return n
	case <-h.done:
		return 0
	}
}

// Callbacks retourne les callbacks moteur qui publient les événements d'une partie
func (h *Hub) Callbacks(gameID string) game.EngineCallbacks {
	return EventCallbacks(gameID, h)
}
