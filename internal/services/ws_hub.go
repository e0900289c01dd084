package services

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

// WSMessage represents a WebSocket message
type WSMessage struct {
	Type    string `json:"type"`
	Index   *int   `json:"index,omitempty"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

type wsConn struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (c *wsConn) write(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteMessage(websocket.TextMessage, data)
}

// WSHub manages WebSocket connections and forwards every store event to them
type WSHub struct {
	mu          sync.RWMutex
	connections map[string]*wsConn
	unsubscribe func()
	logger      zerolog.Logger
}

// NewWSHub creates a WebSocket hub subscribed to events
func NewWSHub(events *Hub, logger zerolog.Logger) *WSHub {
	h := &WSHub{
		connections: make(map[string]*wsConn),
		logger:      logger,
	}
	h.unsubscribe = events.Subscribe(func(e Event) {
		h.Broadcast(WSMessage{Type: string(e.Type), Data: e.Data})
	})
	return h
}

// Register registers a new WebSocket connection
func (h *WSHub) Register(id string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if existing, ok := h.connections[id]; ok {
		existing.conn.Close()
	}
	h.connections[id] = &wsConn{conn: conn}

	h.logger.Info().Str("conn_id", id).Msg("WebSocket connection registered")
}

// Unregister removes and closes a WebSocket connection
func (h *WSHub) Unregister(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if c, ok := h.connections[id]; ok {
		c.conn.Close()
		delete(h.connections, id)
		h.logger.Info().Str("conn_id", id).Msg("WebSocket connection unregistered")
	}
}

// Send sends a message to one connection
func (h *WSHub) Send(id string, message WSMessage) error {
	h.mu.RLock()
	c, ok := h.connections[id]
	h.mu.RUnlock()

	if !ok {
		return fmt.Errorf("connection %s is not registered", id)
	}

	data, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	if err := c.write(data); err != nil {
		h.Unregister(id)
		return fmt.Errorf("failed to send message: %w", err)
	}
	return nil
}

// Broadcast sends a message to every connection
func (h *WSHub) Broadcast(message WSMessage) {
	h.mu.RLock()
	ids := make([]string, 0, len(h.connections))
	for id := range h.connections {
		ids = append(ids, id)
	}
	h.mu.RUnlock()

	for _, id := range ids {
		if err := h.Send(id, message); err != nil {
			h.logger.Warn().Err(err).Str("conn_id", id).Str("type", message.Type).Msg("Failed to broadcast message")
		}
	}
}

// Count returns the number of open connections
func (h *WSHub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.connections)
}

// Close stops forwarding events and closes every connection
func (h *WSHub) Close() {
	h.unsubscribe()

	h.mu.Lock()
	defer h.mu.Unlock()
	for id, c := range h.connections {
		c.conn.Close()
		delete(h.connections, id)
	}
}
