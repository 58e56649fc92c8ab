package handlers

import (
	"encoding/json"
	"net/http"

	"lovesync-backend/internal/services"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// AnswerHandler handles daily-question answers
type AnswerHandler struct {
	answers *services.AnswerService
	users   *services.UserService
}

// NewAnswerHandler creates a new answer handler
func NewAnswerHandler(answers *services.AnswerService, users *services.UserService) *AnswerHandler {
	return &AnswerHandler{
		answers: answers,
		users:   users,
	}
}

// SubmitAnswerRequest represents the request body for submitting an answer
type SubmitAnswerRequest struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Submit handles POST /api/v1/couple/answers
func (h *AnswerHandler) Submit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user, coupleID, ok := requireCouple(ctx, h.users, w)
	if !ok {
		return
	}

	var req SubmitAnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	answer, err := h.answers.Submit(ctx, coupleID, user.ID, req.Question, req.Answer)
	if err != nil {
		log.Error().
			Err(err).
			Str("user_id", user.ID).
			Str("couple_id", coupleID).
			Msg("Failed to submit answer")
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, answer)
}

// History handles GET /api/v1/couple/answers
func (h *AnswerHandler) History(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	_, coupleID, ok := requireCouple(ctx, h.users, w)
	if !ok {
		return
	}

	answers, err := h.answers.History(ctx, coupleID)
	if err != nil {
		log.Error().Err(err).Str("couple_id", coupleID).Msg("Failed to load answers")
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"answers": answers})
}

// Delete handles DELETE /api/v1/couple/answers/{answer_id}
func (h *AnswerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	_, coupleID, ok := requireCouple(ctx, h.users, w)
	if !ok {
		return
	}

	answerID := chi.URLParam(r, "answer_id")

	if err := h.answers.Delete(ctx, coupleID, answerID); err != nil {
		respondServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
