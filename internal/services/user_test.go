package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"lovesync-backend/internal/models"
	"lovesync-backend/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProfileRepo struct {
	getByIDFn      func(ctx context.Context, id string) (*models.User, error)
	updateFn       func(ctx context.Context, userID string, name *string, start *time.Time) error
	setAvatarFn    func(ctx context.Context, userID, url string) error
	setCodeFn      func(ctx context.Context, userID, code string, generatedAt time.Time) error
	codeExistsFn   func(ctx context.Context, code string) (bool, error)
	setCodeCalls   int
	existenceCalls int
}

func (f *fakeProfileRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	return f.getByIDFn(ctx, id)
}

func (f *fakeProfileRepo) UpdateProfile(ctx context.Context, userID string, name *string, start *time.Time) error {
	return f.updateFn(ctx, userID, name, start)
}

func (f *fakeProfileRepo) UpdateAvatarURL(ctx context.Context, userID, url string) error {
	return f.setAvatarFn(ctx, userID, url)
}

func (f *fakeProfileRepo) SetInviteCode(ctx context.Context, userID, code string, generatedAt time.Time) error {
	f.setCodeCalls++
	return f.setCodeFn(ctx, userID, code, generatedAt)
}

func (f *fakeProfileRepo) InviteCodeExists(ctx context.Context, code string) (bool, error) {
	f.existenceCalls++
	return f.codeExistsFn(ctx, code)
}

func TestGenerateInviteCodeFormat(t *testing.T) {
	var issued string
	repo := &fakeProfileRepo{
		codeExistsFn: func(ctx context.Context, code string) (bool, error) { return false, nil },
		setCodeFn: func(ctx context.Context, userID, code string, generatedAt time.Time) error {
			issued = code
			return nil
		},
	}
	svc := NewUserService(repo, nil)

	code, err := svc.GenerateInviteCode(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, code, issued)
	assert.Len(t, code, inviteCodeLength)
	for _, c := range code {
		assert.Contains(t, inviteCodeChars, string(c), "code %q contains forbidden character %q", code, c)
	}
	// Ambiguous characters are excluded from the alphabet.
	assert.NotContains(t, code, "I")
	assert.NotContains(t, code, "O")
	assert.NotContains(t, code, "0")
	assert.NotContains(t, code, "1")
}

func TestGenerateInviteCodeRetriesOnCollision(t *testing.T) {
	calls := 0
	repo := &fakeProfileRepo{
		codeExistsFn: func(ctx context.Context, code string) (bool, error) {
			calls++
			return calls == 1, nil // first candidate collides
		},
		setCodeFn: func(ctx context.Context, userID, code string, generatedAt time.Time) error {
			return nil
		},
	}
	svc := NewUserService(repo, nil)

	_, err := svc.GenerateInviteCode(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, 2, repo.existenceCalls)
	assert.Equal(t, 1, repo.setCodeCalls)
}

func TestGenerateInviteCodeGivesUp(t *testing.T) {
	repo := &fakeProfileRepo{
		codeExistsFn: func(ctx context.Context, code string) (bool, error) { return true, nil },
	}
	svc := NewUserService(repo, nil)

	_, err := svc.GenerateInviteCode(context.Background(), "alice")
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "10 attempts"))
	assert.Equal(t, 0, repo.setCodeCalls)
}

func TestGenerateCodeRandomness(t *testing.T) {
	// Two fresh codes colliding would mean the generator is broken.
	assert.NotEqual(t, generateCode(), generateCode())
}

func TestUpdateProfileRejectsEmptyName(t *testing.T) {
	repo := &fakeProfileRepo{
		updateFn: func(ctx context.Context, userID string, name *string, start *time.Time) error {
			t.Fatal("no store call expected for an empty name")
			return nil
		},
	}
	svc := NewUserService(repo, nil)

	empty := ""
	err := svc.UpdateProfile(context.Background(), "alice", &empty, nil)
	assert.ErrorIs(t, err, ErrEmptyName)
}

func TestUpdateProfilePartial(t *testing.T) {
	var gotName *string
	var gotStart *time.Time
	repo := &fakeProfileRepo{
		updateFn: func(ctx context.Context, userID string, name *string, start *time.Time) error {
			gotName = name
			gotStart = start
			return nil
		},
	}
	svc := NewUserService(repo, nil)

	start := time.Date(2023, 2, 14, 0, 0, 0, 0, time.UTC)
	require.NoError(t, svc.UpdateProfile(context.Background(), "alice", nil, &start))
	assert.Nil(t, gotName)
	require.NotNil(t, gotStart)
	assert.Equal(t, start, *gotStart)
}

func TestGetUserNotFound(t *testing.T) {
	repo := &fakeProfileRepo{
		getByIDFn: func(ctx context.Context, id string) (*models.User, error) {
			return nil, repository.ErrNotFound
		},
	}
	svc := NewUserService(repo, nil)

	_, err := svc.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestGetPublicProfile(t *testing.T) {
	avatar := "https://cdn.example.com/avatars/alice"
	repo := &fakeProfileRepo{
		getByIDFn: func(ctx context.Context, id string) (*models.User, error) {
			return &models.User{ID: "alice", Name: "Аня", Email: "a@b.ru", AvatarURL: &avatar}, nil
		},
	}
	svc := NewUserService(repo, nil)

	profile, err := svc.GetPublicProfile(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice", profile.ID)
	assert.Equal(t, "Аня", profile.Name)
	require.NotNil(t, profile.AvatarURL)
	assert.Equal(t, avatar, *profile.AvatarURL)
}
