package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"lovesync-backend/internal/models"
	"lovesync-backend/internal/repository"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
)

const memoryCacheSize = 128

// MemoryRepository is the memory store contract.
type MemoryRepository interface {
	Create(ctx context.Context, memory *models.Memory) error
	ListByCouple(ctx context.Context, coupleID string) ([]*models.Memory, error)
	Update(ctx context.Context, coupleID, memoryID string, description *string, date *time.Time) error
	Delete(ctx context.Context, coupleID, memoryID string) error
}

// PhotoStore issues upload URLs for memory photos.
type PhotoStore interface {
	PresignPut(ctx context.Context, key, contentType string) (string, error)
	ObjectURL(key string) string
}

// MemoryService handles the couple's photo album. Lists go through a
// small in-process cache keyed by couple ID; the cache is opportunistic
// and dropped on every write.
type MemoryService struct {
	memories MemoryRepository
	storage  PhotoStore
	cache    *lru.Cache[string, []*models.Memory]
}

// NewMemoryService creates a new memory service
func NewMemoryService(memories MemoryRepository, storage PhotoStore) (*MemoryService, error) {
	cache, err := lru.New[string, []*models.Memory](memoryCacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create memories cache: %w", err)
	}
	return &MemoryService{
		memories: memories,
		storage:  storage,
		cache:    cache,
	}, nil
}

// UploadResponse carries the pre-signed URL the client uploads the photo to.
type UploadResponse struct {
	UploadURL string         `json:"upload_url"`
	Memory    *models.Memory `json:"memory"`
	ExpiresIn int            `json:"expires_in"`
}

// Upload records a memory and returns a pre-signed URL for the photo bytes
func (s *MemoryService) Upload(ctx context.Context, coupleID, authorID, description string, date time.Time, contentType string) (*UploadResponse, error) {
	if contentType == "" {
		contentType = "image/jpeg"
	}
	if date.IsZero() {
		date = time.Now()
	}

	memoryID := uuid.New().String()
	key := fmt.Sprintf("couples/%s/memories/%s.jpg", coupleID, memoryID)

	uploadURL, err := s.storage.PresignPut(ctx, key, contentType)
	if err != nil {
		return nil, fmt.Errorf("failed to presign memory upload: %w", err)
	}

	memory := &models.Memory{
		ID:          memoryID,
		CoupleID:    coupleID,
		AuthorID:    authorID,
		URL:         s.storage.ObjectURL(key),
		Description: description,
		Date:        date,
		CreatedAt:   time.Now(),
	}

	if err := s.memories.Create(ctx, memory); err != nil {
		return nil, fmt.Errorf("failed to create memory record: %w", err)
	}
	s.cache.Remove(coupleID)

	return &UploadResponse{
		UploadURL: uploadURL,
		Memory:    memory,
		ExpiresIn: int(presignExpiry.Seconds()),
	}, nil
}

// List returns the couple's memories, newest first
func (s *MemoryService) List(ctx context.Context, coupleID string) ([]*models.Memory, error) {
	if cached, ok := s.cache.Get(coupleID); ok {
		return cached, nil
	}

	memories, err := s.memories.ListByCouple(ctx, coupleID)
	if err != nil {
		return nil, fmt.Errorf("failed to list memories: %w", err)
	}
	if memories == nil {
		memories = []*models.Memory{}
	}

	s.cache.Add(coupleID, memories)
	return memories, nil
}

// Update changes a memory's description and/or date
func (s *MemoryService) Update(ctx context.Context, coupleID, memoryID string, description *string, date *time.Time) error {
	if err := s.memories.Update(ctx, coupleID, memoryID, description, date); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return repository.ErrNotFound
		}
		return fmt.Errorf("failed to update memory: %w", err)
	}
	s.cache.Remove(coupleID)
	return nil
}

// Delete removes a memory from the album
func (s *MemoryService) Delete(ctx context.Context, coupleID, memoryID string) error {
	if err := s.memories.Delete(ctx, coupleID, memoryID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return repository.ErrNotFound
		}
		return fmt.Errorf("failed to delete memory: %w", err)
	}
	s.cache.Remove(coupleID)
	return nil
}
