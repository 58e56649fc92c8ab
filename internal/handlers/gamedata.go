package handlers

import (
	"net/http"

	"lovesync-backend/internal/gamedata"
)

// GameDataHandler serves the static content packs for the mini-games.
type GameDataHandler struct {
	bundle gamedata.Bundle
}

// NewGameDataHandler creates a new game data handler
func NewGameDataHandler() *GameDataHandler {
	return &GameDataHandler{bundle: gamedata.Load()}
}

// Get handles GET /api/v1/games/data
func (h *GameDataHandler) Get(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.bundle)
}
