package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"lovesync-backend/internal/models"
	"lovesync-backend/internal/repository"
)

// coupleIDSeparator joins the two sorted member IDs into the couple ID.
const coupleIDSeparator = "_"

// CoupleUserRepository is the slice of the user store the couple service needs.
type CoupleUserRepository interface {
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByInviteCode(ctx context.Context, code string) (*models.User, error)
	ConsumeInviteCode(ctx context.Context, ownerID, code string) (bool, error)
	LinkCouple(ctx context.Context, user1ID, user2ID, coupleID string) error
	UnlinkCouple(ctx context.Context, userID string, partnerID *string) error
}

// CoupleRepository is the couple store contract.
type CoupleRepository interface {
	Create(ctx context.Context, couple *models.Couple) error
	GetByID(ctx context.Context, id string) (*models.Couple, error)
	Exists(ctx context.Context, id string) (bool, error)
}

// CoupleService establishes and tears down the symmetric partner linkage
type CoupleService struct {
	couples CoupleRepository
	users   CoupleUserRepository
}

// NewCoupleService creates a new couple service
func NewCoupleService(couples CoupleRepository, users CoupleUserRepository) *CoupleService {
	return &CoupleService{
		couples: couples,
		users:   users,
	}
}

// DeriveCoupleID builds the couple ID from two user IDs. The IDs are
// sorted first, so both members derive the same value regardless of who
// initiates pairing. Callers must reject equal IDs before getting here.
func DeriveCoupleID(userAID, userBID string) string {
	if userAID > userBID {
		userAID, userBID = userBID, userAID
	}
	return userAID + coupleIDSeparator + userBID
}

// ConnectResult is what a successful invite-code connection returns.
type ConnectResult struct {
	CoupleID string                `json:"couple_id"`
	Partner  *models.PublicProfile `json:"partner"`
}

// CreateOrGetCouple returns the couple ID for the two users, creating the
// couple and cross-linking both user records when it does not exist yet.
// Calling it again for an already-paired couple is a no-op returning the
// same ID.
func (s *CoupleService) CreateOrGetCouple(ctx context.Context, userAID, userBID string) (string, error) {
	if userAID == userBID {
		return "", ErrSelfPair
	}

	coupleID := DeriveCoupleID(userAID, userBID)

	exists, err := s.couples.Exists(ctx, coupleID)
	if err != nil {
		return "", fmt.Errorf("failed to check couple existence: %w", err)
	}
	if exists {
		// Idempotent fast path: re-pairing the same two users
		// reactivates the old couple and its history.
		return coupleID, nil
	}

	user1ID, user2ID := userAID, userBID
	if user1ID > user2ID {
		user1ID, user2ID = user2ID, user1ID
	}

	couple := &models.Couple{
		ID:        coupleID,
		User1ID:   user1ID,
		User2ID:   user2ID,
		Status:    models.CoupleStatusActive,
		CreatedAt: time.Now(),
	}

	if err := s.couples.Create(ctx, couple); err != nil {
		return "", fmt.Errorf("failed to create couple: %w", err)
	}

	// Both users become linked or neither does.
	if err := s.users.LinkCouple(ctx, userAID, userBID, coupleID); err != nil {
		return "", fmt.Errorf("failed to link users: %w", err)
	}

	return coupleID, nil
}

// ConnectByInviteCode pairs the requesting user with the owner of the
// given code. The code is claimed with a conditional clear before pairing,
// so two concurrent connects cannot both consume it.
func (s *CoupleService) ConnectByInviteCode(ctx context.Context, userID, code string) (*ConnectResult, error) {
	owner, err := s.users.GetByInviteCode(ctx, code)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCodeNotFound
		}
		return nil, fmt.Errorf("failed to look up invite code: %w", err)
	}

	if owner.ID == userID {
		return nil, ErrSelfPair
	}

	claimed, err := s.users.ConsumeInviteCode(ctx, owner.ID, code)
	if err != nil {
		return nil, fmt.Errorf("failed to consume invite code: %w", err)
	}
	if !claimed {
		// Someone else consumed the code between lookup and claim.
		return nil, ErrCodeNotFound
	}

	coupleID, err := s.CreateOrGetCouple(ctx, userID, owner.ID)
	if err != nil {
		return nil, err
	}

	return &ConnectResult{
		CoupleID: coupleID,
		Partner: &models.PublicProfile{
			ID:        owner.ID,
			Name:      owner.Name,
			AvatarURL: owner.AvatarURL,
		},
	}, nil
}

// Disconnect clears the linkage on the requesting user and, when known,
// the partner. Safe to repeat: clearing an already-null link succeeds, so
// disconnect(A, B) followed by disconnect(B, nil) both work. The couple
// row itself is left in place.
func (s *CoupleService) Disconnect(ctx context.Context, userID string, partnerID *string) error {
	if err := s.users.UnlinkCouple(ctx, userID, partnerID); err != nil {
		return fmt.Errorf("failed to disconnect: %w", err)
	}
	return nil
}

// GetCouple loads a couple the given user belongs to
func (s *CoupleService) GetCouple(ctx context.Context, coupleID, userID string) (*models.Couple, error) {
	couple, err := s.couples.GetByID(ctx, coupleID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNoCouple
		}
		return nil, fmt.Errorf("failed to load couple: %w", err)
	}
	if couple.User1ID != userID && couple.User2ID != userID {
		return nil, ErrNoCouple
	}
	return couple, nil
}
