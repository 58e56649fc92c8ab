package repository

import (
	"context"
	"fmt"

	"lovesync-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

// AnswerRepository handles database operations for daily-question answers
type AnswerRepository struct {
	db *pgxpool.Pool
}

// NewAnswerRepository creates a new answer repository
func NewAnswerRepository(db *pgxpool.Pool) *AnswerRepository {
	return &AnswerRepository{db: db}
}

// Create creates a new answer
func (r *AnswerRepository) Create(ctx context.Context, answer *models.Answer) error {
	query := `
		INSERT INTO answers (id, couple_id, user_id, question, answer, date)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.Exec(ctx, query,
		answer.ID, answer.CoupleID, answer.UserID, answer.Question, answer.Answer, answer.Date,
	)
	if err != nil {
		return fmt.Errorf("failed to create answer: %w", err)
	}
	return nil
}

// ListByCouple retrieves a couple's answers, newest first
func (r *AnswerRepository) ListByCouple(ctx context.Context, coupleID string) ([]*models.Answer, error) {
	query := `
		SELECT id, couple_id, user_id, question, answer, date
		FROM answers
		WHERE couple_id = $1
		ORDER BY date DESC
	`
	rows, err := r.db.Query(ctx, query, coupleID)
	if err != nil {
		return nil, fmt.Errorf("failed to list answers: %w", err)
	}
	defer rows.Close()

	var answers []*models.Answer
	for rows.Next() {
		var answer models.Answer
		err := rows.Scan(
			&answer.ID, &answer.CoupleID, &answer.UserID,
			&answer.Question, &answer.Answer, &answer.Date,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan answer: %w", err)
		}
		answers = append(answers, &answer)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating answers: %w", err)
	}

	return answers, nil
}

// Delete removes an answer, couple-scoped so one couple cannot delete another's
func (r *AnswerRepository) Delete(ctx context.Context, coupleID, answerID string) error {
	query := `DELETE FROM answers WHERE id = $1 AND couple_id = $2`
	result, err := r.db.Exec(ctx, query, answerID, coupleID)
	if err != nil {
		return fmt.Errorf("failed to delete answer: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
