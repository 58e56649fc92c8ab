package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"lovesync-backend/internal/models"
	"lovesync-backend/internal/repository"

	"github.com/google/uuid"
)

// WishRepository is the wish store contract.
type WishRepository interface {
	Create(ctx context.Context, wish *models.Wish) error
	ListPersonal(ctx context.Context, authorID string) ([]*models.Wish, error)
	ListShared(ctx context.Context, coupleID string) ([]*models.Wish, error)
	GetByID(ctx context.Context, id string) (*models.Wish, error)
	SetCompletion(ctx context.Context, wishID string, completed bool, completedAt *time.Time) error
	Delete(ctx context.Context, wishID string) error
}

// WishService handles personal and shared wish lists
type WishService struct {
	wishes WishRepository
}

// NewWishService creates a new wish service
func NewWishService(wishes WishRepository) *WishService {
	return &WishService{wishes: wishes}
}

// WishLists groups the two lists a user sees.
type WishLists struct {
	Personal []*models.Wish `json:"personal"`
	Shared   []*models.Wish `json:"shared"`
}

// Add creates a wish. A shared wish without a couple is rejected before
// any write happens.
func (s *WishService) Add(ctx context.Context, authorID string, coupleID *string, text string, isPersonal bool) (*models.Wish, error) {
	if text == "" {
		return nil, ErrEmptyText
	}
	if !isPersonal && coupleID == nil {
		return nil, ErrSharedWishNoCouple
	}

	wish := &models.Wish{
		ID:         uuid.New().String(),
		AuthorID:   authorID,
		Text:       text,
		IsPersonal: isPersonal,
		CreatedAt:  time.Now(),
	}
	if !isPersonal {
		wish.CoupleID = coupleID
	}

	if err := s.wishes.Create(ctx, wish); err != nil {
		return nil, fmt.Errorf("failed to create wish: %w", err)
	}
	return wish, nil
}

// List returns the user's personal wishes plus the couple's shared ones,
// each newest first. The queries skip server-side ordering so no extra
// index is needed; sorting happens here instead.
func (s *WishService) List(ctx context.Context, userID string, coupleID *string) (*WishLists, error) {
	personal, err := s.wishes.ListPersonal(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list personal wishes: %w", err)
	}

	var shared []*models.Wish
	if coupleID != nil {
		shared, err = s.wishes.ListShared(ctx, *coupleID)
		if err != nil {
			return nil, fmt.Errorf("failed to list shared wishes: %w", err)
		}
	}

	sortWishesNewestFirst(personal)
	sortWishesNewestFirst(shared)

	if personal == nil {
		personal = []*models.Wish{}
	}
	if shared == nil {
		shared = []*models.Wish{}
	}

	return &WishLists{Personal: personal, Shared: shared}, nil
}

// PartnerWishes returns the partner's personal wish list
func (s *WishService) PartnerWishes(ctx context.Context, partnerID string) ([]*models.Wish, error) {
	wishes, err := s.wishes.ListPersonal(ctx, partnerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list partner wishes: %w", err)
	}
	sortWishesNewestFirst(wishes)
	if wishes == nil {
		wishes = []*models.Wish{}
	}
	return wishes, nil
}

// ToggleCompletion marks a wish done or not done, stamping the completion
// time. Only the author or their partner in the same couple may toggle.
func (s *WishService) ToggleCompletion(ctx context.Context, userID string, coupleID *string, wishID string, completed bool) error {
	if err := s.authorize(ctx, userID, coupleID, wishID); err != nil {
		return err
	}

	var completedAt *time.Time
	if completed {
		now := time.Now()
		completedAt = &now
	}

	if err := s.wishes.SetCompletion(ctx, wishID, completed, completedAt); err != nil {
		return fmt.Errorf("failed to toggle wish: %w", err)
	}
	return nil
}

// Delete removes a wish the user is allowed to touch
func (s *WishService) Delete(ctx context.Context, userID string, coupleID *string, wishID string) error {
	if err := s.authorize(ctx, userID, coupleID, wishID); err != nil {
		return err
	}
	if err := s.wishes.Delete(ctx, wishID); err != nil {
		return fmt.Errorf("failed to delete wish: %w", err)
	}
	return nil
}

func (s *WishService) authorize(ctx context.Context, userID string, coupleID *string, wishID string) error {
	wish, err := s.wishes.GetByID(ctx, wishID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return repository.ErrNotFound
		}
		return fmt.Errorf("failed to load wish: %w", err)
	}

	if wish.AuthorID == userID {
		return nil
	}
	if wish.CoupleID != nil && coupleID != nil && *wish.CoupleID == *coupleID {
		return nil
	}
	return ErrNotWishOwner
}

func sortWishesNewestFirst(wishes []*models.Wish) {
	sort.Slice(wishes, func(i, j int) bool {
		return wishes[i].CreatedAt.After(wishes[j].CreatedAt)
	})
}
