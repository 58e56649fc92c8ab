package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeValidator struct {
	validateFn func(token string) (string, error)
}

func (f *fakeValidator) ValidateJWT(token string) (string, error) {
	return f.validateFn(token)
}

func TestAuthMiddleware(t *testing.T) {
	validator := &fakeValidator{
		validateFn: func(token string) (string, error) {
			if token == "good-token" {
				return "alice", nil
			}
			return "", errors.New("invalid token")
		},
	}

	var gotUserID string
	handler := AuthMiddleware(validator)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID = GetUserID(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantUserID string
	}{
		{"no header", "", http.StatusUnauthorized, ""},
		{"wrong scheme", "Basic good-token", http.StatusUnauthorized, ""},
		{"malformed", "Bearer", http.StatusUnauthorized, ""},
		{"bad token", "Bearer bad-token", http.StatusUnauthorized, ""},
		{"valid token", "Bearer good-token", http.StatusOK, "alice"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotUserID = ""
			req := httptest.NewRequest(http.MethodGet, "/api/v1/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantUserID, gotUserID)
			if tt.wantStatus == http.StatusUnauthorized {
				assert.Contains(t, rec.Body.String(), "error")
			}
		})
	}
}

func TestGetUserIDMissing(t *testing.T) {
	assert.Equal(t, "", GetUserID(context.Background()))
}

func TestWithUserID(t *testing.T) {
	ctx := WithUserID(context.Background(), "bob")
	assert.Equal(t, "bob", GetUserID(ctx))
}
