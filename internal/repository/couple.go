package repository

import (
	"context"
	"errors"
	"fmt"

	"lovesync-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// CoupleRepository handles database operations for couples
type CoupleRepository struct {
	db *pgxpool.Pool
}

// NewCoupleRepository creates a new couple repository
func NewCoupleRepository(db *pgxpool.Pool) *CoupleRepository {
	return &CoupleRepository{db: db}
}

// Create creates a new couple row
func (r *CoupleRepository) Create(ctx context.Context, couple *models.Couple) error {
	query := `
		INSERT INTO couples (id, user1_id, user2_id, status, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.Exec(ctx, query,
		couple.ID, couple.User1ID, couple.User2ID, couple.Status, couple.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create couple: %w", err)
	}
	return nil
}

// GetByID retrieves a couple by ID
func (r *CoupleRepository) GetByID(ctx context.Context, id string) (*models.Couple, error) {
	query := `
		SELECT id, user1_id, user2_id, status, created_at
		FROM couples
		WHERE id = $1
	`
	var couple models.Couple
	err := r.db.QueryRow(ctx, query, id).Scan(
		&couple.ID, &couple.User1ID, &couple.User2ID, &couple.Status, &couple.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get couple: %w", err)
	}
	return &couple, nil
}

// Exists checks whether a couple row with the given ID exists
func (r *CoupleRepository) Exists(ctx context.Context, id string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM couples WHERE id = $1)`
	var exists bool
	err := r.db.QueryRow(ctx, query, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check couple existence: %w", err)
	}
	return exists, nil
}
