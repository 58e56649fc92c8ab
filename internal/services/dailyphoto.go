package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"lovesync-backend/internal/models"
	"lovesync-backend/internal/repository"

	"github.com/google/uuid"
)

// DailyPhotoRepository is the photo-of-the-day store contract.
type DailyPhotoRepository interface {
	Create(ctx context.Context, photo *models.DailyPhoto) error
	Latest(ctx context.Context, coupleID string) (*models.DailyPhoto, error)
}

// DailyPhotoStore uploads photo-of-the-day images.
type DailyPhotoStore interface {
	Put(ctx context.Context, key string, body io.Reader, contentType string) error
	ObjectURL(key string) string
}

// DailyPhotoService handles the couple's photo of the day
type DailyPhotoService struct {
	photos  DailyPhotoRepository
	storage DailyPhotoStore
}

// NewDailyPhotoService creates a new daily photo service
func NewDailyPhotoService(photos DailyPhotoRepository, storage DailyPhotoStore) *DailyPhotoService {
	return &DailyPhotoService{
		photos:  photos,
		storage: storage,
	}
}

// Upload stores the image and records it as the newest photo of the day
func (s *DailyPhotoService) Upload(ctx context.Context, coupleID, userID string, body io.Reader, contentType string) (*models.DailyPhoto, error) {
	if contentType == "" {
		contentType = "image/jpeg"
	}

	photoID := uuid.New().String()
	key := fmt.Sprintf("couples/%s/photos/%s.jpg", coupleID, photoID)

	if err := s.storage.Put(ctx, key, body, contentType); err != nil {
		return nil, fmt.Errorf("failed to upload daily photo: %w", err)
	}

	photo := &models.DailyPhoto{
		ID:        photoID,
		CoupleID:  coupleID,
		UserID:    userID,
		URL:       s.storage.ObjectURL(key),
		CreatedAt: time.Now(),
	}

	if err := s.photos.Create(ctx, photo); err != nil {
		return nil, fmt.Errorf("failed to record daily photo: %w", err)
	}
	return photo, nil
}

// Latest returns the couple's current photo of the day, or a not-found
// condition when none was uploaded yet.
func (s *DailyPhotoService) Latest(ctx context.Context, coupleID string) (*models.DailyPhoto, error) {
	photo, err := s.photos.Latest(ctx, coupleID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to load daily photo: %w", err)
	}
	return photo, nil
}
