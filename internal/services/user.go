package services

import (
	"bytes"
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"
	"time"

	"lovesync-backend/internal/models"
	"lovesync-backend/internal/repository"
)

const (
	inviteCodeLength = 10
	// No I, O, 0 or 1: the code gets read aloud between partners.
	inviteCodeChars = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
)

// ProfileRepository is the slice of the user store the user service needs.
type ProfileRepository interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
	UpdateProfile(ctx context.Context, userID string, name *string, relationshipStart *time.Time) error
	UpdateAvatarURL(ctx context.Context, userID, url string) error
	SetInviteCode(ctx context.Context, userID, code string, generatedAt time.Time) error
	InviteCodeExists(ctx context.Context, code string) (bool, error)
}

// AvatarStore uploads avatar images and resolves their public URLs.
type AvatarStore interface {
	Put(ctx context.Context, key string, body io.Reader, contentType string) error
	ObjectURL(key string) string
}

// UserService handles profile-related business logic
type UserService struct {
	users   ProfileRepository
	storage AvatarStore
}

// NewUserService creates a new user service
func NewUserService(users ProfileRepository, storage AvatarStore) *UserService {
	return &UserService{
		users:   users,
		storage: storage,
	}
}

// Get loads a user's record
func (s *UserService) Get(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return user, nil
}

// GetPublicProfile loads the publicly visible part of a user's record
func (s *UserService) GetPublicProfile(ctx context.Context, userID string) (*models.PublicProfile, error) {
	user, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &models.PublicProfile{
		ID:        user.ID,
		Name:      user.Name,
		AvatarURL: user.AvatarURL,
	}, nil
}

// UpdateProfile updates the user-editable profile fields
func (s *UserService) UpdateProfile(ctx context.Context, userID string, name *string, relationshipStart *time.Time) error {
	if name != nil && *name == "" {
		return ErrEmptyName
	}
	if err := s.users.UpdateProfile(ctx, userID, name, relationshipStart); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to update profile: %w", err)
	}
	return nil
}

// UploadAvatar stores the image and records its URL on the user
func (s *UserService) UploadAvatar(ctx context.Context, userID string, data []byte, contentType string) (string, error) {
	if contentType == "" {
		contentType = "image/jpeg"
	}

	key := fmt.Sprintf("avatars/%s", userID)
	if err := s.storage.Put(ctx, key, bytes.NewReader(data), contentType); err != nil {
		return "", fmt.Errorf("failed to upload avatar: %w", err)
	}

	url := s.storage.ObjectURL(key)
	if err := s.users.UpdateAvatarURL(ctx, userID, url); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrUserNotFound
		}
		return "", fmt.Errorf("failed to record avatar: %w", err)
	}
	return url, nil
}

// GenerateInviteCode replaces the user's invite code with a fresh one.
// Regenerating while an unconsumed code is outstanding simply invalidates
// the old code (last write wins).
func (s *UserService) GenerateInviteCode(ctx context.Context, userID string) (string, error) {
	maxAttempts := 10
	for i := 0; i < maxAttempts; i++ {
		code := generateCode()
		exists, err := s.users.InviteCodeExists(ctx, code)
		if err != nil {
			return "", fmt.Errorf("failed to check code existence: %w", err)
		}
		if exists {
			continue
		}
		if err := s.users.SetInviteCode(ctx, userID, code, time.Now()); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return "", ErrUserNotFound
			}
			return "", fmt.Errorf("failed to store invite code: %w", err)
		}
		return code, nil
	}
	return "", fmt.Errorf("failed to generate unique code after %d attempts", maxAttempts)
}

// generateCode generates a random invite code
func generateCode() string {
	code := make([]byte, inviteCodeLength)
	for i := range code {
		n, _ := rand.Int(rand.Reader, big.NewInt(int64(len(inviteCodeChars))))
		code[i] = inviteCodeChars[n.Int64()]
	}
	return string(code)
}
