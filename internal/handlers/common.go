package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"lovesync-backend/internal/middleware"
	"lovesync-backend/internal/models"
	"lovesync-backend/internal/repository"
	"lovesync-backend/internal/services"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondError sends an error response
func respondError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponse{Error: message})
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

// respondServiceError maps a service error to an HTTP status
func respondServiceError(w http.ResponseWriter, err error) {
	statusCode := http.StatusInternalServerError
	switch {
	case errors.Is(err, services.ErrEmptyText),
		errors.Is(err, services.ErrEmptyName),
		errors.Is(err, services.ErrInvalidEmail),
		errors.Is(err, services.ErrPasswordTooShort),
		errors.Is(err, services.ErrSharedWishNoCouple):
		statusCode = http.StatusBadRequest
	case errors.Is(err, services.ErrNotWishOwner):
		statusCode = http.StatusForbidden
	case errors.Is(err, services.ErrNoCouple),
		errors.Is(err, services.ErrCodeNotFound),
		errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, repository.ErrNotFound):
		statusCode = http.StatusNotFound
	case errors.Is(err, services.ErrSelfPair),
		errors.Is(err, services.ErrEmailInUse):
		statusCode = http.StatusConflict
	}
	respondError(w, err.Error(), statusCode)
}

// requireCouple loads the authenticated user and insists they are paired.
// On failure it has already written the response.
func requireCouple(ctx context.Context, users *services.UserService, w http.ResponseWriter) (*models.User, string, bool) {
	userID := middleware.GetUserID(ctx)

	user, err := users.Get(ctx, userID)
	if err != nil {
		respondServiceError(w, err)
		return nil, "", false
	}
	if user.CoupleID == nil {
		respondError(w, services.ErrNoCouple.Error(), http.StatusNotFound)
		return nil, "", false
	}
	return user, *user.CoupleID, true
}
