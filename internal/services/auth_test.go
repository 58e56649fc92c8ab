package services

import (
	"context"
	"testing"

	"lovesync-backend/internal/models"
	"lovesync-backend/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAuthUsers struct {
	users  map[string]*models.User // keyed by email
	hashes map[string]string
}

func newFakeAuthUsers() *fakeAuthUsers {
	return &fakeAuthUsers{
		users:  make(map[string]*models.User),
		hashes: make(map[string]string),
	}
}

func (f *fakeAuthUsers) Create(ctx context.Context, user *models.User, passwordHash string) error {
	f.users[user.Email] = user
	f.hashes[user.Email] = passwordHash
	return nil
}

func (f *fakeAuthUsers) GetByEmail(ctx context.Context, email string) (*models.User, string, error) {
	user, ok := f.users[email]
	if !ok {
		return nil, "", repository.ErrNotFound
	}
	return user, f.hashes[email], nil
}

func (f *fakeAuthUsers) GetByID(ctx context.Context, id string) (*models.User, error) {
	for _, user := range f.users {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeAuthUsers) EmailExists(ctx context.Context, email string) (bool, error) {
	_, ok := f.users[email]
	return ok, nil
}

func newTestAuthService(users AuthUserRepository) *AuthService {
	return NewAuthService(users, "test-secret", 1)
}

func TestRegisterValidation(t *testing.T) {
	tests := []struct {
		name     string
		userName string
		email    string
		password string
		wantErr  error
	}{
		{"empty name", "", "a@b.ru", "secret1", ErrEmptyName},
		{"blank name", "   ", "a@b.ru", "secret1", ErrEmptyName},
		{"bad email", "Аня", "not-an-email", "secret1", ErrInvalidEmail},
		{"email without domain", "Аня", "a@b", "secret1", ErrInvalidEmail},
		{"short password", "Аня", "a@b.ru", "12345", ErrPasswordTooShort},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestAuthService(newFakeAuthUsers())
			_, _, err := svc.Register(context.Background(), tt.userName, tt.email, tt.password)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestRegisterAndLogin(t *testing.T) {
	store := newFakeAuthUsers()
	svc := newTestAuthService(store)

	user, token, err := svc.Register(context.Background(), "Аня", "Anya@Example.COM", "secret1")
	require.NoError(t, err)
	require.NotEmpty(t, user.ID)
	assert.Equal(t, "anya@example.com", user.Email)
	assert.Nil(t, user.PartnerID)
	assert.Nil(t, user.CoupleID)

	// The issued token must resolve back to the new user.
	userID, err := svc.ValidateJWT(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, userID)

	// The stored hash is not the raw password.
	assert.NotEqual(t, "secret1", store.hashes["anya@example.com"])

	loggedIn, _, err := svc.Login(context.Background(), "anya@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := newTestAuthService(newFakeAuthUsers())

	_, _, err := svc.Register(context.Background(), "Аня", "a@b.ru", "secret1")
	require.NoError(t, err)

	_, _, err = svc.Register(context.Background(), "Боб", "a@b.ru", "another1")
	assert.ErrorIs(t, err, ErrEmailInUse)
}

func TestLoginWrongPassword(t *testing.T) {
	svc := newTestAuthService(newFakeAuthUsers())

	_, _, err := svc.Register(context.Background(), "Аня", "a@b.ru", "secret1")
	require.NoError(t, err)

	_, _, err = svc.Login(context.Background(), "a@b.ru", "wrong-password")
	assert.ErrorIs(t, err, ErrWrongPassword)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc := newTestAuthService(newFakeAuthUsers())

	_, _, err := svc.Login(context.Background(), "nobody@b.ru", "secret1")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestValidateJWTRejectsGarbage(t *testing.T) {
	svc := newTestAuthService(newFakeAuthUsers())

	_, err := svc.ValidateJWT("not.a.token")
	assert.Error(t, err)
}

func TestValidateJWTRejectsWrongSecret(t *testing.T) {
	issuer := NewAuthService(newFakeAuthUsers(), "secret-one", 1)
	verifier := NewAuthService(newFakeAuthUsers(), "secret-two", 1)

	token, err := issuer.GenerateJWT("user-1")
	require.NoError(t, err)

	_, err = verifier.ValidateJWT(token)
	assert.Error(t, err)
}

func TestUserMessageLocalization(t *testing.T) {
	assert.Equal(t, "Этот email уже используется", UserMessage(ErrEmailInUse))
	assert.Equal(t, "Код приглашения не найден", UserMessage(ErrCodeNotFound))
	// Unknown errors fall back to the generic message.
	assert.Equal(t, "Произошла ошибка. Попробуйте ещё раз", UserMessage(assert.AnError))
}
