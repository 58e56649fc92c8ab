package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"lovesync-backend/internal/middleware"
	"lovesync-backend/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// 2 MB is plenty for an avatar.
const maxAvatarBytes = 2 << 20

// UserHandler handles profile-related HTTP requests
type UserHandler struct {
	users *services.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(users *services.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// UpdateProfileRequest represents the request body for profile updates
type UpdateProfileRequest struct {
	Name              *string    `json:"name,omitempty"`
	RelationshipStart *time.Time `json:"relationship_start,omitempty"`
}

// GetMe handles GET /api/v1/me
func (h *UserHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	user, err := h.users.Get(ctx, userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to load profile")
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, user)
}

// UpdateMe handles PUT /api/v1/me
func (h *UserHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	var req UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.users.UpdateProfile(ctx, userID, req.Name, req.RelationshipStart); err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to update profile")
		respondServiceError(w, err)
		return
	}

	user, err := h.users.Get(ctx, userID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, user)
}

// UploadAvatar handles POST /api/v1/me/avatar
func (h *UserHandler) UploadAvatar(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	if err := r.ParseMultipartForm(maxAvatarBytes); err != nil {
		respondError(w, "Invalid multipart form", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("avatar")
	if err != nil {
		respondError(w, "avatar file is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxAvatarBytes))
	if err != nil {
		respondError(w, "Failed to read avatar", http.StatusBadRequest)
		return
	}

	url, err := h.users.UploadAvatar(ctx, userID, data, header.Header.Get("Content-Type"))
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to upload avatar")
		respondServiceError(w, err)
		return
	}

	log.Info().
		Str("user_id", userID).
		Msg("Avatar uploaded")

	respondJSON(w, http.StatusOK, map[string]string{"url": url})
}

// GenerateInviteCode handles POST /api/v1/me/invite-code
func (h *UserHandler) GenerateInviteCode(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := middleware.GetUserID(ctx)

	code, err := h.users.GenerateInviteCode(ctx, userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to generate invite code")
		respondServiceError(w, err)
		return
	}

	log.Info().
		Str("user_id", userID).
		Msg("Invite code generated")

	respondJSON(w, http.StatusOK, map[string]string{"code": code})
}

// GetPublicProfile handles GET /api/v1/users/{user_id}
func (h *UserHandler) GetPublicProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := chi.URLParam(r, "user_id")

	profile, err := h.users.GetPublicProfile(ctx, userID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, profile)
}
