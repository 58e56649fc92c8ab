package handlers

import (
	"net/http"

	"lovesync-backend/internal/services"

	"github.com/rs/zerolog/log"
)

// 10 MB upload cap for the photo of the day.
const maxDailyPhotoBytes = 10 << 20

// DailyPhotoHandler handles the photo of the day
type DailyPhotoHandler struct {
	photos *services.DailyPhotoService
	users  *services.UserService
}

// NewDailyPhotoHandler creates a new daily photo handler
func NewDailyPhotoHandler(photos *services.DailyPhotoService, users *services.UserService) *DailyPhotoHandler {
	return &DailyPhotoHandler{
		photos: photos,
		users:  users,
	}
}

// Upload handles POST /api/v1/couple/photo-of-day
func (h *DailyPhotoHandler) Upload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user, coupleID, ok := requireCouple(ctx, h.users, w)
	if !ok {
		return
	}

	if err := r.ParseMultipartForm(maxDailyPhotoBytes); err != nil {
		respondError(w, "Invalid multipart form", http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("photo")
	if err != nil {
		respondError(w, "photo file is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	photo, err := h.photos.Upload(ctx, coupleID, user.ID, file, header.Header.Get("Content-Type"))
	if err != nil {
		log.Error().
			Err(err).
			Str("user_id", user.ID).
			Str("couple_id", coupleID).
			Msg("Failed to upload daily photo")
		respondServiceError(w, err)
		return
	}

	log.Info().
		Str("user_id", user.ID).
		Str("photo_id", photo.ID).
		Msg("Daily photo uploaded")

	respondJSON(w, http.StatusOK, photo)
}

// Latest handles GET /api/v1/couple/photo-of-day
func (h *DailyPhotoHandler) Latest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	_, coupleID, ok := requireCouple(ctx, h.users, w)
	if !ok {
		return
	}

	photo, err := h.photos.Latest(ctx, coupleID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, photo)
}
