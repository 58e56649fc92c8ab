package repository

import (
	"context"
	"errors"
	"fmt"

	"lovesync-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DailyPhotoRepository handles database operations for photo-of-the-day entries
type DailyPhotoRepository struct {
	db *pgxpool.Pool
}

// NewDailyPhotoRepository creates a new daily photo repository
func NewDailyPhotoRepository(db *pgxpool.Pool) *DailyPhotoRepository {
	return &DailyPhotoRepository{db: db}
}

// Create records a new photo of the day
func (r *DailyPhotoRepository) Create(ctx context.Context, photo *models.DailyPhoto) error {
	query := `
		INSERT INTO daily_photos (id, couple_id, user_id, url, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.Exec(ctx, query,
		photo.ID, photo.CoupleID, photo.UserID, photo.URL, photo.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create daily photo: %w", err)
	}
	return nil
}

// Latest retrieves the couple's most recent photo of the day
func (r *DailyPhotoRepository) Latest(ctx context.Context, coupleID string) (*models.DailyPhoto, error) {
	query := `
		SELECT id, couple_id, user_id, url, created_at
		FROM daily_photos
		WHERE couple_id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`
	var photo models.DailyPhoto
	err := r.db.QueryRow(ctx, query, coupleID).Scan(
		&photo.ID, &photo.CoupleID, &photo.UserID, &photo.URL, &photo.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get latest daily photo: %w", err)
	}
	return &photo, nil
}
