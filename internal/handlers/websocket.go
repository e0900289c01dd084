package handlers

import (
	"encoding/json"
	"net/http"

	"pool-market-client/internal/models"
	"pool-market-client/internal/services"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// WebSocket message types.
const (
	MessageSnapshot            = "snapshot"
	MessagePing                = "ping"
	MessagePong                = "pong"
	MessageDismissNotification = "dismiss_notification"
	MessageError               = "error"
)

// Snapshot is the full store state sent when a connection opens
type Snapshot struct {
	User          *models.User          `json:"user"`
	Favorites     []models.Pool         `json:"favorites"`
	Notifications []models.Notification `json:"notifications"`
}

// WebSocketHandler streams store events to WebSocket clients
type WebSocketHandler struct {
	hub           *services.WSHub
	upgrader      websocket.Upgrader
	userService   *services.UserService
	favorites     *services.FavoritesService
	notifications *services.NotificationService
}

// NewWebSocketHandler creates a new WebSocket handler. checkOrigin may be
// nil to accept any origin.
func NewWebSocketHandler(
	hub *services.WSHub,
	userService *services.UserService,
	favorites *services.FavoritesService,
	notifications *services.NotificationService,
	checkOrigin func(r *http.Request) bool,
) *WebSocketHandler {
	if checkOrigin == nil {
		checkOrigin = func(r *http.Request) bool { return true }
	}
	return &WebSocketHandler{
		hub:           hub,
		upgrader:      websocket.Upgrader{CheckOrigin: checkOrigin},
		userService:   userService,
		favorites:     favorites,
		notifications: notifications,
	}
}

// HandleWebSocket handles GET /ws
func (h *WebSocketHandler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("Failed to upgrade WebSocket connection")
		return
	}

	connID := uuid.NewString()
	h.hub.Register(connID, conn)
	defer h.hub.Unregister(connID)

	snapshot := services.WSMessage{
		Type: MessageSnapshot,
		Data: Snapshot{
			User:          h.userService.User(),
			Favorites:     h.favorites.List(),
			Notifications: h.notifications.List(),
		},
	}
	if err := h.hub.Send(connID, snapshot); err != nil {
		log.Error().Err(err).Str("conn_id", connID).Msg("Failed to send snapshot")
		return
	}

	for {
		_, messageBytes, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Error().Err(err).Str("conn_id", connID).Msg("WebSocket error")
			}
			return
		}

		var msg services.WSMessage
		if err := json.Unmarshal(messageBytes, &msg); err != nil {
			log.Warn().Err(err).Str("conn_id", connID).Msg("Failed to parse WebSocket message")
			h.sendError(connID, "Invalid message format")
			continue
		}

		h.handleMessage(connID, msg)
	}
}

// handleMessage processes incoming WebSocket messages
func (h *WebSocketHandler) handleMessage(connID string, msg services.WSMessage) {
	switch msg.Type {
	case MessagePing:
		if err := h.hub.Send(connID, services.WSMessage{Type: MessagePong}); err != nil {
			log.Warn().Err(err).Str("conn_id", connID).Msg("Failed to send pong")
		}
	case MessageDismissNotification:
		if msg.Index == nil {
			h.sendError(connID, "index is required")
			return
		}
		h.notifications.Remove(*msg.Index)
	default:
		h.sendError(connID, "Unknown message type")
	}
}

// sendError sends an error message to one connection
func (h *WebSocketHandler) sendError(connID, message string) {
	msg := services.WSMessage{
		Type:    MessageError,
		Message: message,
	}
	if err := h.hub.Send(connID, msg); err != nil {
		log.Warn().Err(err).Str("conn_id", connID).Msg("Failed to send error message")
	}
}
