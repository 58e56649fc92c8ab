package services

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// WSMessage represents a WebSocket message
type WSMessage struct {
	Type        string          `json:"type"`
	Timestamp   int64           `json:"timestamp,omitempty"`
	InitiatorID string          `json:"initiator_id,omitempty"`
	Game        string          `json:"game,omitempty"`
	Payload     json.RawMessage `json:"payload,omitempty"`
	Online      *bool           `json:"online,omitempty"`
	Message     string          `json:"message,omitempty"`
	Data        interface{}     `json:"data,omitempty"`
}

// WSHub manages WebSocket connections. One connection per user; a second
// connect from the same account supersedes the first. Registration lasts
// exactly as long as the socket, which is how partner-initiated
// disconnects reach the other side without a standing store listener.
type WSHub struct {
	mu          sync.RWMutex
	connections map[string]*websocket.Conn
}

// NewWSHub creates a new WebSocket hub
func NewWSHub() *WSHub {
	return &WSHub{
		connections: make(map[string]*websocket.Conn),
	}
}

// Register registers a new WebSocket connection for a user
func (h *WSHub) Register(userID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if existingConn, exists := h.connections[userID]; exists {
		existingConn.Close()
	}

	h.connections[userID] = conn

	log.Info().Str("user_id", userID).Msg("WebSocket connection registered")
}

// Unregister removes a WebSocket connection for a user
func (h *WSHub) Unregister(userID string, conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	// A superseded connection must not tear down its replacement.
	if current, exists := h.connections[userID]; exists && current == conn {
		current.Close()
		delete(h.connections, userID)
		log.Info().Str("user_id", userID).Msg("WebSocket connection unregistered")
	}
}

// SendToUser sends a message to a specific user
func (h *WSHub) SendToUser(userID string, message WSMessage) error {
	h.mu.RLock()
	conn, exists := h.connections[userID]
	h.mu.RUnlock()

	if !exists {
		return fmt.Errorf("user %s is not connected", userID)
	}

	data, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
		h.Unregister(userID, conn)
		return fmt.Errorf("failed to send message: %w", err)
	}

	return nil
}

// IsOnline checks if a user is online
func (h *WSHub) IsOnline(userID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	_, exists := h.connections[userID]
	return exists
}

// NotifyPartnerStatus tells the partner this user went online or offline
func (h *WSHub) NotifyPartnerStatus(partnerID string, online bool) {
	if partnerID == "" {
		return
	}

	message := WSMessage{
		Type:   "partner_status",
		Online: &online,
	}

	if err := h.SendToUser(partnerID, message); err != nil {
		log.Debug().
			Err(err).
			Str("partner_id", partnerID).
			Msg("Failed to notify partner status")
	}
}

// NotifyCoupleCreated tells a member their couple now exists
func (h *WSHub) NotifyCoupleCreated(userID, coupleID, partnerID string) error {
	message := WSMessage{
		Type: "couple_created",
		Data: map[string]interface{}{
			"couple_id":  coupleID,
			"partner_id": partnerID,
		},
	}
	return h.SendToUser(userID, message)
}

// NotifyCoupleDeleted tells the partner the link was torn down from the
// other side.
func (h *WSHub) NotifyCoupleDeleted(partnerID string) error {
	message := WSMessage{
		Type: "couple_deleted",
	}
	return h.SendToUser(partnerID, message)
}

// RelayGameEvent forwards a mini-game event to the partner. The payload
// is opaque to the server: story turns, drawing strokes and who-am-i
// progress all travel the same way.
func (h *WSHub) RelayGameEvent(initiatorID, partnerID, game string, payload json.RawMessage, timestamp int64) error {
	if !h.IsOnline(partnerID) {
		return h.SendToUser(initiatorID, WSMessage{
			Type:    "error",
			Message: "Partner is offline",
		})
	}

	if timestamp == 0 {
		timestamp = time.Now().UnixMilli()
	}

	message := WSMessage{
		Type:        "game_event",
		InitiatorID: initiatorID,
		Game:        game,
		Payload:     payload,
		Timestamp:   timestamp,
	}

	if err := h.SendToUser(partnerID, message); err != nil {
		return fmt.Errorf("failed to relay game event: %w", err)
	}

	log.Debug().
		Str("initiator_id", initiatorID).
		Str("partner_id", partnerID).
		Str("game", game).
		Msg("Game event relayed")

	return nil
}
