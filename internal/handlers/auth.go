package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"lovesync-backend/internal/models"
	"lovesync-backend/internal/services"

	"github.com/rs/zerolog/log"
)

// AuthHandler handles registration and login
type AuthHandler struct {
	auth *services.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(auth *services.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// RegisterRequest represents the request body for registration
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest represents the request body for login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse carries the profile and the session token
type AuthResponse struct {
	User  *models.User `json:"user"`
	Token string       `json:"token"`
}

// Register handles POST /api/v1/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	user, token, err := h.auth.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		log.Error().Err(err).Str("email", req.Email).Msg("Failed to register user")
		respondAuthError(w, err)
		return
	}

	log.Info().
		Str("user_id", user.ID).
		Msg("User registered")

	respondJSON(w, http.StatusOK, AuthResponse{User: user, Token: token})
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	user, token, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		log.Error().Err(err).Str("email", req.Email).Msg("Failed to log in")
		respondAuthError(w, err)
		return
	}

	log.Info().
		Str("user_id", user.ID).
		Msg("User logged in")

	respondJSON(w, http.StatusOK, AuthResponse{User: user, Token: token})
}

// respondAuthError responds with the localized message the frontend shows
// on the auth forms.
func respondAuthError(w http.ResponseWriter, err error) {
	statusCode := http.StatusInternalServerError
	switch {
	case errors.Is(err, services.ErrEmptyName),
		errors.Is(err, services.ErrInvalidEmail),
		errors.Is(err, services.ErrPasswordTooShort):
		statusCode = http.StatusBadRequest
	case errors.Is(err, services.ErrEmailInUse):
		statusCode = http.StatusConflict
	case errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrWrongPassword):
		statusCode = http.StatusUnauthorized
	}
	respondError(w, services.UserMessage(err), statusCode)
}
