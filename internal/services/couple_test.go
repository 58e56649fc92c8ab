package services

import (
	"context"
	"testing"

	"lovesync-backend/internal/models"
	"lovesync-backend/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCoupleRepo struct {
	createFn func(ctx context.Context, couple *models.Couple) error
	getFn    func(ctx context.Context, id string) (*models.Couple, error)
	existsFn func(ctx context.Context, id string) (bool, error)
}

func (f *fakeCoupleRepo) Create(ctx context.Context, couple *models.Couple) error {
	return f.createFn(ctx, couple)
}

func (f *fakeCoupleRepo) GetByID(ctx context.Context, id string) (*models.Couple, error) {
	return f.getFn(ctx, id)
}

func (f *fakeCoupleRepo) Exists(ctx context.Context, id string) (bool, error) {
	return f.existsFn(ctx, id)
}

type fakeCoupleUsers struct {
	getByIDFn    func(ctx context.Context, id string) (*models.User, error)
	getByCodeFn  func(ctx context.Context, code string) (*models.User, error)
	consumeFn    func(ctx context.Context, ownerID, code string) (bool, error)
	linkFn       func(ctx context.Context, user1ID, user2ID, coupleID string) error
	unlinkFn     func(ctx context.Context, userID string, partnerID *string) error
	consumeCalls int
	linkCalls    int
	unlinkCalls  int
}

func (f *fakeCoupleUsers) GetByID(ctx context.Context, id string) (*models.User, error) {
	return f.getByIDFn(ctx, id)
}

func (f *fakeCoupleUsers) GetByInviteCode(ctx context.Context, code string) (*models.User, error) {
	return f.getByCodeFn(ctx, code)
}

func (f *fakeCoupleUsers) ConsumeInviteCode(ctx context.Context, ownerID, code string) (bool, error) {
	f.consumeCalls++
	return f.consumeFn(ctx, ownerID, code)
}

func (f *fakeCoupleUsers) LinkCouple(ctx context.Context, user1ID, user2ID, coupleID string) error {
	f.linkCalls++
	return f.linkFn(ctx, user1ID, user2ID, coupleID)
}

func (f *fakeCoupleUsers) UnlinkCouple(ctx context.Context, userID string, partnerID *string) error {
	f.unlinkCalls++
	return f.unlinkFn(ctx, userID, partnerID)
}

func TestDeriveCoupleID(t *testing.T) {
	tests := []struct {
		name  string
		userA string
		userB string
		want  string
	}{
		{"already sorted", "alice", "bob", "alice_bob"},
		{"reversed", "bob", "alice", "alice_bob"},
		{"uuid-like", "f1e2", "a1b2", "a1b2_f1e2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveCoupleID(tt.userA, tt.userB))
		})
	}
}

func TestDeriveCoupleIDSymmetric(t *testing.T) {
	// Both members must derive the same ID no matter who initiates.
	assert.Equal(t, DeriveCoupleID("u1", "u2"), DeriveCoupleID("u2", "u1"))
}

func TestCreateOrGetCoupleCreatesSortedRow(t *testing.T) {
	var created *models.Couple
	couples := &fakeCoupleRepo{
		existsFn: func(ctx context.Context, id string) (bool, error) { return false, nil },
		createFn: func(ctx context.Context, couple *models.Couple) error {
			created = couple
			return nil
		},
	}
	users := &fakeCoupleUsers{
		linkFn: func(ctx context.Context, user1ID, user2ID, coupleID string) error {
			assert.Equal(t, "bob", user1ID)
			assert.Equal(t, "alice", user2ID)
			assert.Equal(t, "alice_bob", coupleID)
			return nil
		},
	}
	svc := NewCoupleService(couples, users)

	coupleID, err := svc.CreateOrGetCouple(context.Background(), "bob", "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice_bob", coupleID)

	require.NotNil(t, created)
	assert.Equal(t, "alice", created.User1ID)
	assert.Equal(t, "bob", created.User2ID)
	assert.Equal(t, models.CoupleStatusActive, created.Status)
	assert.Equal(t, 1, users.linkCalls)
}

func TestCreateOrGetCoupleIdempotent(t *testing.T) {
	couples := &fakeCoupleRepo{
		existsFn: func(ctx context.Context, id string) (bool, error) { return true, nil },
		createFn: func(ctx context.Context, couple *models.Couple) error {
			t.Fatal("Create must not be called for an existing couple")
			return nil
		},
	}
	users := &fakeCoupleUsers{}
	svc := NewCoupleService(couples, users)

	coupleID, err := svc.CreateOrGetCouple(context.Background(), "alice", "bob")
	require.NoError(t, err)
	assert.Equal(t, "alice_bob", coupleID)
	assert.Equal(t, 0, users.linkCalls)
}

func TestCreateOrGetCoupleRejectsSelf(t *testing.T) {
	couples := &fakeCoupleRepo{
		existsFn: func(ctx context.Context, id string) (bool, error) {
			t.Fatal("no store call expected on self-pair")
			return false, nil
		},
	}
	svc := NewCoupleService(couples, &fakeCoupleUsers{})

	_, err := svc.CreateOrGetCouple(context.Background(), "alice", "alice")
	assert.ErrorIs(t, err, ErrSelfPair)
}

func TestConnectByInviteCode(t *testing.T) {
	owner := &models.User{ID: "bob", Name: "Боб"}
	couples := &fakeCoupleRepo{
		existsFn: func(ctx context.Context, id string) (bool, error) { return false, nil },
		createFn: func(ctx context.Context, couple *models.Couple) error { return nil },
	}
	users := &fakeCoupleUsers{
		getByCodeFn: func(ctx context.Context, code string) (*models.User, error) {
			assert.Equal(t, "ABCDEFGH23", code)
			return owner, nil
		},
		consumeFn: func(ctx context.Context, ownerID, code string) (bool, error) {
			assert.Equal(t, "bob", ownerID)
			return true, nil
		},
		linkFn: func(ctx context.Context, user1ID, user2ID, coupleID string) error { return nil },
	}
	svc := NewCoupleService(couples, users)

	result, err := svc.ConnectByInviteCode(context.Background(), "alice", "ABCDEFGH23")
	require.NoError(t, err)
	assert.Equal(t, "alice_bob", result.CoupleID)
	require.NotNil(t, result.Partner)
	assert.Equal(t, "bob", result.Partner.ID)
	assert.Equal(t, "Боб", result.Partner.Name)
	assert.Equal(t, 1, users.consumeCalls)
}

func TestConnectByInviteCodeNotFound(t *testing.T) {
	users := &fakeCoupleUsers{
		getByCodeFn: func(ctx context.Context, code string) (*models.User, error) {
			return nil, repository.ErrNotFound
		},
	}
	svc := NewCoupleService(&fakeCoupleRepo{}, users)

	_, err := svc.ConnectByInviteCode(context.Background(), "alice", "NOSUCHCODE")
	assert.ErrorIs(t, err, ErrCodeNotFound)
	assert.Equal(t, 0, users.consumeCalls)
}

func TestConnectByInviteCodeSelfMatch(t *testing.T) {
	// Connecting with your own code must fail before the code is touched,
	// so the code stays valid for the partner.
	users := &fakeCoupleUsers{
		getByCodeFn: func(ctx context.Context, code string) (*models.User, error) {
			return &models.User{ID: "alice"}, nil
		},
	}
	svc := NewCoupleService(&fakeCoupleRepo{}, users)

	_, err := svc.ConnectByInviteCode(context.Background(), "alice", "ABCDEFGH23")
	assert.ErrorIs(t, err, ErrSelfPair)
	assert.Equal(t, 0, users.consumeCalls)
}

func TestConnectByInviteCodeLostRace(t *testing.T) {
	// The conditional claim failing means someone else consumed the code
	// between lookup and claim. No couple may be created.
	couples := &fakeCoupleRepo{
		existsFn: func(ctx context.Context, id string) (bool, error) {
			t.Fatal("no couple lookup expected after a lost claim")
			return false, nil
		},
	}
	users := &fakeCoupleUsers{
		getByCodeFn: func(ctx context.Context, code string) (*models.User, error) {
			return &models.User{ID: "bob"}, nil
		},
		consumeFn: func(ctx context.Context, ownerID, code string) (bool, error) {
			return false, nil
		},
	}
	svc := NewCoupleService(couples, users)

	_, err := svc.ConnectByInviteCode(context.Background(), "alice", "ABCDEFGH23")
	assert.ErrorIs(t, err, ErrCodeNotFound)
}

func TestDisconnect(t *testing.T) {
	var gotUserID string
	var gotPartnerID *string
	users := &fakeCoupleUsers{
		unlinkFn: func(ctx context.Context, userID string, partnerID *string) error {
			gotUserID = userID
			gotPartnerID = partnerID
			return nil
		},
	}
	svc := NewCoupleService(&fakeCoupleRepo{}, users)

	partner := "bob"
	require.NoError(t, svc.Disconnect(context.Background(), "alice", &partner))
	assert.Equal(t, "alice", gotUserID)
	require.NotNil(t, gotPartnerID)
	assert.Equal(t, "bob", *gotPartnerID)

	// Repeating from the other side with the link already gone still works.
	require.NoError(t, svc.Disconnect(context.Background(), "bob", nil))
	assert.Equal(t, 2, users.unlinkCalls)
}

func TestGetCoupleMembershipCheck(t *testing.T) {
	couple := &models.Couple{ID: "alice_bob", User1ID: "alice", User2ID: "bob"}
	couples := &fakeCoupleRepo{
		getFn: func(ctx context.Context, id string) (*models.Couple, error) { return couple, nil },
	}
	svc := NewCoupleService(couples, &fakeCoupleUsers{})

	got, err := svc.GetCouple(context.Background(), "alice_bob", "bob")
	require.NoError(t, err)
	assert.Equal(t, "alice_bob", got.ID)

	_, err = svc.GetCouple(context.Background(), "alice_bob", "mallory")
	assert.ErrorIs(t, err, ErrNoCouple)
}
