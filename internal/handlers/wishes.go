package handlers

import (
	"encoding/json"
	"net/http"

	"lovesync-backend/internal/middleware"
	"lovesync-backend/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// WishHandler handles wish lists
type WishHandler struct {
	wishes *services.WishService
	users  *services.UserService
}

// NewWishHandler creates a new wish handler
func NewWishHandler(wishes *services.WishService, users *services.UserService) *WishHandler {
	return &WishHandler{
		wishes: wishes,
		users:  users,
	}
}

// AddWishRequest represents the request body for adding a wish
type AddWishRequest struct {
	Text       string `json:"text"`
	IsPersonal bool   `json:"is_personal"`
}

// CompletionRequest represents the request body for toggling completion
type CompletionRequest struct {
	IsCompleted bool `json:"is_completed"`
}

// Add handles POST /api/v1/wishes
func (h *WishHandler) Add(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	user, err := h.users.Get(ctx, userID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	var req AddWishRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	wish, err := h.wishes.Add(ctx, userID, user.CoupleID, req.Text, req.IsPersonal)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to add wish")
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, wish)
}

// List handles GET /api/v1/wishes
func (h *WishHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	user, err := h.users.Get(ctx, userID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	lists, err := h.wishes.List(ctx, userID, user.CoupleID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to list wishes")
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, lists)
}

// PartnerWishes handles GET /api/v1/wishes/partner
func (h *WishHandler) PartnerWishes(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user, _, ok := requireCouple(ctx, h.users, w)
	if !ok {
		return
	}

	wishes, err := h.wishes.PartnerWishes(ctx, *user.PartnerID)
	if err != nil {
		log.Error().Err(err).Str("user_id", user.ID).Msg("Failed to list partner wishes")
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"wishes": wishes})
}

// ToggleCompletion handles PATCH /api/v1/wishes/{wish_id}/completion
func (h *WishHandler) ToggleCompletion(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	wishID := chi.URLParam(r, "wish_id")

	user, err := h.users.Get(ctx, userID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	var req CompletionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.wishes.ToggleCompletion(ctx, userID, user.CoupleID, wishID, req.IsCompleted); err != nil {
		respondServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Delete handles DELETE /api/v1/wishes/{wish_id}
func (h *WishHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)
	wishID := chi.URLParam(r, "wish_id")

	user, err := h.users.Get(ctx, userID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	if err := h.wishes.Delete(ctx, userID, user.CoupleID, wishID); err != nil {
		respondServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
