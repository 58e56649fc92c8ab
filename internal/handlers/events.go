package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"lovesync-backend/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// EventHandler handles the shared calendar
type EventHandler struct {
	events *services.EventService
	users  *services.UserService
}

// NewEventHandler creates a new event handler
func NewEventHandler(events *services.EventService, users *services.UserService) *EventHandler {
	return &EventHandler{
		events: events,
		users:  users,
	}
}

// AddEventRequest represents the request body for adding an event
type AddEventRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Date        time.Time `json:"date"`
}

// UpdateEventRequest represents the request body for updating an event
type UpdateEventRequest struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	Date        *time.Time `json:"date,omitempty"`
}

// Add handles POST /api/v1/couple/events
func (h *EventHandler) Add(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user, coupleID, ok := requireCouple(ctx, h.users, w)
	if !ok {
		return
	}

	var req AddEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	event, err := h.events.Add(ctx, coupleID, req.Title, req.Description, req.Date)
	if err != nil {
		log.Error().
			Err(err).
			Str("user_id", user.ID).
			Str("couple_id", coupleID).
			Msg("Failed to add event")
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, event)
}

// List handles GET /api/v1/couple/events
func (h *EventHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	_, coupleID, ok := requireCouple(ctx, h.users, w)
	if !ok {
		return
	}

	events, err := h.events.List(ctx, coupleID)
	if err != nil {
		log.Error().Err(err).Str("couple_id", coupleID).Msg("Failed to list events")
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"events": events})
}

// Update handles PUT /api/v1/couple/events/{event_id}
func (h *EventHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	_, coupleID, ok := requireCouple(ctx, h.users, w)
	if !ok {
		return
	}

	eventID := chi.URLParam(r, "event_id")

	var req UpdateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.events.Update(ctx, coupleID, eventID, req.Title, req.Description, req.Date); err != nil {
		respondServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Delete handles DELETE /api/v1/couple/events/{event_id}
func (h *EventHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	_, coupleID, ok := requireCouple(ctx, h.users, w)
	if !ok {
		return
	}

	eventID := chi.URLParam(r, "event_id")

	if err := h.events.Delete(ctx, coupleID, eventID); err != nil {
		respondServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
