// internal/spectate/client.go
package spectate

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/matryer/way"

	"github.com/obrien-tchaleu/crossludo/internal/shared/constants"
	"github.com/obrien-tchaleu/crossludo/internal/shared/protocol"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // flux en lecture seule
	},
}

// Client représente un spectateur connecté
type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	send   chan []byte
	closed bool
	mu     sync.Mutex
}

// enqueue ajoute une trame sans bloquer ; false si la file est pleine
func (c *Client) enqueue(data []byte) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return true
	}
	select {
	case c.send <- data:
		return true
	default:
		return false
	}
}

func (c *Client) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.send)
	}
}

func (h *Hub) routes() {
	h.router = way.NewRouter()
	h.router.HandleFunc("GET", "/ws", h.handleWebSocket)
	h.router.HandleFunc("GET", "/state", h.handleState)
}

// Handler retourne les routes HTTP du hub
func (h *Hub) Handler() http.Handler {
	return h.router
}

// handleState renvoie l'état courant en JSON
func (h *Hub) handleState(w http.ResponseWriter, r *http.Request) {
	snap, ok := h.snapshot()
	if !ok {
		http.Error(w, "no game in progress", http.StatusServiceUnavailable)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(snap); err != nil {
		h.log.WithError(err).Warn("failed to write state")
	}
}

// handleWebSocket gère une nouvelle connexion spectateur
func (h *Hub) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.WithError(err).Warn("websocket upgrade failed")
		return
	}

	client := &Client{hub: h, conn: conn, send: make(chan []byte, sendBuffer)}
	select {
	case h.register <- client:
	case <-h.done:
		conn.Close()
		return
	}

	go client.writePump()
	client.readPump()
}

func (c *Client) writePump() {
	defer c.conn.Close()
	for data := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			return
		}
	}
}

func (c *Client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
	}()

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			return
		}
		c.handleMessage(data)
	}
}

// handleMessage traite une requête d'un spectateur
func (c *Client) handleMessage(data []byte) {
	msg, err := protocol.DecodeMessage(data)
	if err == nil {
		err = c.hub.validator.ValidateMessage(msg)
	}
	if err != nil {
		c.replyError(err)
		return
	}

	switch msg.Type {
	case constants.MsgPing:
		c.reply(protocol.NewMessage(constants.MsgPong, nil))
	case constants.MsgSnapshotReq:
		c.replySnapshot(msg)
	}
}

// replySnapshot répond avec l'état de la partie courante si elle est celle demandée
func (c *Client) replySnapshot(msg *protocol.NetworkMessage) {
	var req protocol.SnapshotRequestPayload
	if err := protocol.ExtractPayload(msg.Payload, &req); err != nil {
		c.replyError(err)
		return
	}

	snap, ok := c.hub.snapshot()
	if !ok {
		c.replyError(fmt.Errorf("%w: no game in progress", protocol.ErrBadMessage))
		return
	}
	if req.GameID != "" && req.GameID != snap.GameID {
		c.replyError(fmt.Errorf("%w: game %s is not being played", protocol.ErrBadMessage, req.GameID))
		return
	}

	c.reply(protocol.NewMessage(constants.MsgSnapshot, protocol.SnapshotPayload{Snapshot: snap}))
}

func (c *Client) replyError(err error) {
	c.reply(protocol.NewMessage(constants.MsgError, protocol.ErrorPayload{
		Code:    protocol.ErrorCode(err),
		Message: err.Error(),
	}))
}

func (c *Client) reply(msg *protocol.NetworkMessage) {
	data, err := protocol.EncodeMessage(msg)
	if err != nil {
		c.hub.log.WithError(err).Error("failed to encode reply")
		return
	}
	c.enqueue(data)
}
