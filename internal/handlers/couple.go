package handlers

import (
	"encoding/json"
	"net/http"

	"lovesync-backend/internal/middleware"
	"lovesync-backend/internal/services"

	"github.com/rs/zerolog/log"
)

// CoupleHandler handles pairing and disconnecting
type CoupleHandler struct {
	couples *services.CoupleService
	users   *services.UserService
	wsHub   *services.WSHub
}

// NewCoupleHandler creates a new couple handler
func NewCoupleHandler(couples *services.CoupleService, users *services.UserService, wsHub *services.WSHub) *CoupleHandler {
	return &CoupleHandler{
		couples: couples,
		users:   users,
		wsHub:   wsHub,
	}
}

// ConnectRequest represents the request body for connecting by invite code
type ConnectRequest struct {
	Code string `json:"code"`
}

// Connect handles POST /api/v1/couple/connect
func (h *CoupleHandler) Connect(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	var req ConnectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	// Длина проверяется до любого обращения к базе.
	if len(req.Code) != 10 {
		respondError(w, "code must be 10 characters", http.StatusBadRequest)
		return
	}

	result, err := h.couples.ConnectByInviteCode(ctx, userID, req.Code)
	if err != nil {
		log.Error().
			Err(err).
			Str("user_id", userID).
			Msg("Failed to connect by invite code")
		respondServiceError(w, err)
		return
	}

	log.Info().
		Str("user_id", userID).
		Str("partner_id", result.Partner.ID).
		Str("couple_id", result.CoupleID).
		Msg("Couple connected")

	// Уведомить обе стороны, если они онлайн.
	if h.wsHub.IsOnline(userID) {
		if err := h.wsHub.NotifyCoupleCreated(userID, result.CoupleID, result.Partner.ID); err != nil {
			log.Debug().Err(err).Str("user_id", userID).Msg("Failed to notify initiator about couple creation")
		}
	}
	if h.wsHub.IsOnline(result.Partner.ID) {
		if err := h.wsHub.NotifyCoupleCreated(result.Partner.ID, result.CoupleID, userID); err != nil {
			log.Debug().Err(err).Str("partner_id", result.Partner.ID).Msg("Failed to notify partner about couple creation")
		}
	}

	respondJSON(w, http.StatusOK, result)
}

// Disconnect handles DELETE /api/v1/couple
func (h *CoupleHandler) Disconnect(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	user, err := h.users.Get(ctx, userID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	partnerID := user.PartnerID

	if err := h.couples.Disconnect(ctx, userID, partnerID); err != nil {
		log.Error().
			Err(err).
			Str("user_id", userID).
			Msg("Failed to disconnect")
		respondServiceError(w, err)
		return
	}

	log.Info().
		Str("user_id", userID).
		Msg("Couple disconnected")

	// Партнёр узнаёт об отключении через WebSocket, а не через
	// подписку на свой документ.
	if partnerID != nil && h.wsHub.IsOnline(*partnerID) {
		if err := h.wsHub.NotifyCoupleDeleted(*partnerID); err != nil {
			log.Debug().Err(err).Str("partner_id", *partnerID).Msg("Failed to notify partner about disconnect")
		}
	}

	w.WriteHeader(http.StatusNoContent)
}

// Get handles GET /api/v1/couple
func (h *CoupleHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	user, err := h.users.Get(ctx, userID)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if user.CoupleID == nil {
		respondError(w, services.ErrNoCouple.Error(), http.StatusNotFound)
		return
	}

	couple, err := h.couples.GetCouple(ctx, *user.CoupleID, userID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, couple)
}
