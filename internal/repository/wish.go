package repository

import (
	"context"
	"fmt"
	"time"

	"lovesync-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// WishRepository handles database operations for wishes
type WishRepository struct {
	db *pgxpool.Pool
}

// NewWishRepository creates a new wish repository
func NewWishRepository(db *pgxpool.Pool) *WishRepository {
	return &WishRepository{db: db}
}

// Create creates a new wish
func (r *WishRepository) Create(ctx context.Context, wish *models.Wish) error {
	query := `
		INSERT INTO wishes (id, author_id, couple_id, text, is_personal, is_completed, completed_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.Exec(ctx, query,
		wish.ID, wish.AuthorID, wish.CoupleID, wish.Text,
		wish.IsPersonal, wish.IsCompleted, wish.CompletedAt, wish.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create wish: %w", err)
	}
	return nil
}

func (r *WishRepository) list(ctx context.Context, query string, arg string) ([]*models.Wish, error) {
	rows, err := r.db.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to list wishes: %w", err)
	}
	defer rows.Close()

	var wishes []*models.Wish
	for rows.Next() {
		var wish models.Wish
		err := rows.Scan(
			&wish.ID, &wish.AuthorID, &wish.CoupleID, &wish.Text,
			&wish.IsPersonal, &wish.IsCompleted, &wish.CompletedAt, &wish.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan wish: %w", err)
		}
		wishes = append(wishes, &wish)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating wishes: %w", err)
	}

	return wishes, nil
}

// ListPersonal retrieves a user's personal wishes
func (r *WishRepository) ListPersonal(ctx context.Context, authorID string) ([]*models.Wish, error) {
	query := `
		SELECT id, author_id, couple_id, text, is_personal, is_completed, completed_at, created_at
		FROM wishes
		WHERE author_id = $1 AND is_personal = TRUE
	`
	return r.list(ctx, query, authorID)
}

// ListShared retrieves a couple's shared wishes
func (r *WishRepository) ListShared(ctx context.Context, coupleID string) ([]*models.Wish, error) {
	query := `
		SELECT id, author_id, couple_id, text, is_personal, is_completed, completed_at, created_at
		FROM wishes
		WHERE couple_id = $1 AND is_personal = FALSE
	`
	return r.list(ctx, query, coupleID)
}

// GetByID retrieves a single wish
func (r *WishRepository) GetByID(ctx context.Context, id string) (*models.Wish, error) {
	query := `
		SELECT id, author_id, couple_id, text, is_personal, is_completed, completed_at, created_at
		FROM wishes
		WHERE id = $1
	`
	var wish models.Wish
	err := r.db.QueryRow(ctx, query, id).Scan(
		&wish.ID, &wish.AuthorID, &wish.CoupleID, &wish.Text,
		&wish.IsPersonal, &wish.IsCompleted, &wish.CompletedAt, &wish.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get wish: %w", err)
	}
	return &wish, nil
}

// SetCompletion toggles a wish's completion state
func (r *WishRepository) SetCompletion(ctx context.Context, wishID string, completed bool, completedAt *time.Time) error {
	query := `UPDATE wishes SET is_completed = $1, completed_at = $2 WHERE id = $3`
	result, err := r.db.Exec(ctx, query, completed, completedAt, wishID)
	if err != nil {
		return fmt.Errorf("failed to set wish completion: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a wish
func (r *WishRepository) Delete(ctx context.Context, wishID string) error {
	query := `DELETE FROM wishes WHERE id = $1`
	result, err := r.db.Exec(ctx, query, wishID)
	if err != nil {
		return fmt.Errorf("failed to delete wish: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
