package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"lovesync-backend/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// MemoryHandler handles the couple's photo album
type MemoryHandler struct {
	memories *services.MemoryService
	users    *services.UserService
}

// NewMemoryHandler creates a new memory handler
func NewMemoryHandler(memories *services.MemoryService, users *services.UserService) *MemoryHandler {
	return &MemoryHandler{
		memories: memories,
		users:    users,
	}
}

// UploadMemoryRequest represents the request body for uploading a memory
type UploadMemoryRequest struct {
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
	ContentType string    `json:"content_type"`
}

// UpdateMemoryRequest represents the request body for editing a memory
type UpdateMemoryRequest struct {
	Description *string    `json:"description,omitempty"`
	Date        *time.Time `json:"date,omitempty"`
}

// Upload handles POST /api/v1/couple/memories
func (h *MemoryHandler) Upload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user, coupleID, ok := requireCouple(ctx, h.users, w)
	if !ok {
		return
	}

	var req UploadMemoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	response, err := h.memories.Upload(ctx, coupleID, user.ID, req.Description, req.Date, req.ContentType)
	if err != nil {
		log.Error().
			Err(err).
			Str("user_id", user.ID).
			Str("couple_id", coupleID).
			Msg("Failed to prepare memory upload")
		respondServiceError(w, err)
		return
	}

	log.Info().
		Str("user_id", user.ID).
		Str("memory_id", response.Memory.ID).
		Msg("Memory upload URL issued")

	respondJSON(w, http.StatusOK, response)
}

// List handles GET /api/v1/couple/memories
func (h *MemoryHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	_, coupleID, ok := requireCouple(ctx, h.users, w)
	if !ok {
		return
	}

	memories, err := h.memories.List(ctx, coupleID)
	if err != nil {
		log.Error().Err(err).Str("couple_id", coupleID).Msg("Failed to list memories")
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"memories": memories})
}

// Update handles PATCH /api/v1/couple/memories/{memory_id}
func (h *MemoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	_, coupleID, ok := requireCouple(ctx, h.users, w)
	if !ok {
		return
	}

	memoryID := chi.URLParam(r, "memory_id")

	var req UpdateMemoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.memories.Update(ctx, coupleID, memoryID, req.Description, req.Date); err != nil {
		respondServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Delete handles DELETE /api/v1/couple/memories/{memory_id}
func (h *MemoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	_, coupleID, ok := requireCouple(ctx, h.users, w)
	if !ok {
		return
	}

	memoryID := chi.URLParam(r, "memory_id")

	if err := h.memories.Delete(ctx, coupleID, memoryID); err != nil {
		respondServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
