package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"lovesync-backend/internal/services"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for MVP
	},
}

// WebSocketHandler handles WebSocket connections
type WebSocketHandler struct {
	hub         *services.WSHub
	authService *services.AuthService
	userService *services.UserService
}

// NewWebSocketHandler creates a new WebSocket handler
func NewWebSocketHandler(
	hub *services.WSHub,
	authService *services.AuthService,
	userService *services.UserService,
) *WebSocketHandler {
	return &WebSocketHandler{
		hub:         hub,
		authService: authService,
		userService: userService,
	}
}

// HandleWebSocket handles WebSocket connections
func (h *WebSocketHandler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	// Get token from query parameter
	token := r.URL.Query().Get("token")
	if token == "" {
		respondError(w, "token required", http.StatusUnauthorized)
		return
	}

	// Validate token
	userID, err := h.authService.ValidateJWT(token)
	if err != nil {
		respondError(w, "invalid token", http.StatusUnauthorized)
		return
	}

	// Upgrade connection
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("Failed to upgrade WebSocket connection")
		return
	}
	defer conn.Close()

	h.hub.Register(userID, conn)
	defer h.hub.Unregister(userID, conn)

	// Сообщить партнёру о выходе в онлайн и отправить статус пары.
	ctx := r.Context()
	partnerID := h.sendCoupleStatus(ctx, userID)
	if partnerID != "" {
		h.hub.NotifyPartnerStatus(partnerID, true)
		defer h.hub.NotifyPartnerStatus(partnerID, false)
	}

	log.Info().Str("user_id", userID).Msg("WebSocket connection established")

	// Handle messages
	for {
		_, messageBytes, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Error().Err(err).Str("user_id", userID).Msg("WebSocket error")
			}
			break
		}

		var msg services.WSMessage
		if err := json.Unmarshal(messageBytes, &msg); err != nil {
			log.Error().Err(err).Str("user_id", userID).Msg("Failed to parse WebSocket message")
			h.sendError(conn, "Invalid message format")
			continue
		}

		if err := h.handleMessage(ctx, userID, msg); err != nil {
			log.Error().Err(err).Str("user_id", userID).Str("type", msg.Type).Msg("Failed to handle message")
			h.sendError(conn, err.Error())
		}
	}
}

// sendCoupleStatus sends the couple_status greeting and returns the
// partner ID when the user is paired.
func (h *WebSocketHandler) sendCoupleStatus(ctx context.Context, userID string) string {
	user, err := h.userService.Get(ctx, userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to load user for couple status")
		return ""
	}

	data := map[string]interface{}{
		"has_couple": false,
	}
	partnerID := ""
	if user.CoupleID != nil && user.PartnerID != nil {
		partnerID = *user.PartnerID
		data = map[string]interface{}{
			"has_couple":     true,
			"couple_id":      *user.CoupleID,
			"partner_id":     partnerID,
			"partner_online": h.hub.IsOnline(partnerID),
		}
	}

	msg := services.WSMessage{
		Type: "couple_status",
		Data: data,
	}
	if err := h.hub.SendToUser(userID, msg); err != nil {
		log.Error().
			Err(err).
			Str("user_id", userID).
			Msg("Failed to send couple_status message")
	}
	return partnerID
}

// handleMessage processes incoming WebSocket messages
func (h *WebSocketHandler) handleMessage(ctx context.Context, userID string, msg services.WSMessage) error {
	switch msg.Type {
	case "game_event":
		return h.handleGameEvent(ctx, userID, msg)
	case "ping":
		return h.hub.SendToUser(userID, services.WSMessage{Type: "pong"})
	default:
		return h.sendErrorToUser(userID, "Unknown message type")
	}
}

// handleGameEvent relays a mini-game event to the partner
func (h *WebSocketHandler) handleGameEvent(ctx context.Context, userID string, msg services.WSMessage) error {
	if msg.Game == "" {
		return h.sendErrorToUser(userID, "game is required")
	}

	user, err := h.userService.Get(ctx, userID)
	if err != nil {
		return h.sendErrorToUser(userID, "Failed to load user")
	}
	if user.PartnerID == nil {
		return h.sendErrorToUser(userID, "You are not in a couple")
	}

	return h.hub.RelayGameEvent(userID, *user.PartnerID, msg.Game, msg.Payload, msg.Timestamp)
}

// sendError sends an error message to the WebSocket connection
func (h *WebSocketHandler) sendError(conn *websocket.Conn, message string) {
	msg := services.WSMessage{
		Type:    "error",
		Message: message,
	}
	data, _ := json.Marshal(msg)
	conn.WriteMessage(websocket.TextMessage, data)
}

// sendErrorToUser sends an error message to a user
func (h *WebSocketHandler) sendErrorToUser(userID, message string) error {
	msg := services.WSMessage{
		Type:    "error",
		Message: message,
	}
	return h.hub.SendToUser(userID, msg)
}
