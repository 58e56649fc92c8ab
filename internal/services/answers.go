package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"lovesync-backend/internal/models"
	"lovesync-backend/internal/repository"

	"github.com/google/uuid"
)

// AnswerRepository is the answer store contract.
type AnswerRepository interface {
	Create(ctx context.Context, answer *models.Answer) error
	ListByCouple(ctx context.Context, coupleID string) ([]*models.Answer, error)
	Delete(ctx context.Context, coupleID, answerID string) error
}

// AnswerService handles daily-question answers
type AnswerService struct {
	answers AnswerRepository
	couples CoupleRepository
}

// NewAnswerService creates a new answer service
func NewAnswerService(answers AnswerRepository, couples CoupleRepository) *AnswerService {
	return &AnswerService{
		answers: answers,
		couples: couples,
	}
}

// Submit records an answer under the couple
func (s *AnswerService) Submit(ctx context.Context, coupleID, userID, question, answer string) (*models.Answer, error) {
	if question == "" || answer == "" {
		return nil, ErrEmptyText
	}

	exists, err := s.couples.Exists(ctx, coupleID)
	if err != nil {
		return nil, fmt.Errorf("failed to check couple: %w", err)
	}
	if !exists {
		return nil, ErrNoCouple
	}

	record := &models.Answer{
		ID:       uuid.New().String(),
		CoupleID: coupleID,
		UserID:   userID,
		Question: question,
		Answer:   answer,
		Date:     time.Now(),
	}

	if err := s.answers.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create answer: %w", err)
	}
	return record, nil
}

// History lists the couple's answers, newest first. A couple with no
// answers yet gets an empty list, not an error.
func (s *AnswerService) History(ctx context.Context, coupleID string) ([]*models.Answer, error) {
	answers, err := s.answers.ListByCouple(ctx, coupleID)
	if err != nil {
		return nil, fmt.Errorf("failed to list answers: %w", err)
	}
	if answers == nil {
		answers = []*models.Answer{}
	}
	return answers, nil
}

// Delete removes an answer from the couple's history
func (s *AnswerService) Delete(ctx context.Context, coupleID, answerID string) error {
	if err := s.answers.Delete(ctx, coupleID, answerID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return repository.ErrNotFound
		}
		return fmt.Errorf("failed to delete answer: %w", err)
	}
	return nil
}
