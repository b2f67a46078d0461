package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"betpromo/internal/container"
	"betpromo/internal/domain"
	"betpromo/internal/middleware"
	"betpromo/internal/service/auth"
	"betpromo/pkg/pocketbase"
)

type fakeAuthenticator struct {
	record map[string]interface{}
}

func (f *fakeAuthenticator) AuthWithPassword(ctx context.Context, collection, identity, password string) (*pocketbase.AuthResponse, error) {
	if collection == pocketbase.CollectionUsers && f.record != nil && password == "correct-password" {
		raw, _ := json.Marshal(f.record)
		return &pocketbase.AuthResponse{Token: "pb-token", Record: raw}, nil
	}
	return nil, &pocketbase.APIError{Status: 400, Message: "Failed to authenticate."}
}

type fakeDirectory struct{}

func (fakeDirectory) TouchLastLogin(ctx context.Context, id, when string) {}

func newAuthTestHandler(t *testing.T) *AuthHandler {
	t.Helper()

	authenticator := &fakeAuthenticator{record: map[string]interface{}{
		"id": "u-1", "email": "editor@betpromo.com", "name": "Editor",
		"role": "editor", "status": "active",
	}}
	sessions := auth.NewService(authenticator, fakeDirectory{}, "test-secret", 12*time.Hour, newTestLogger(t))

	return NewAuthHandler(&container.Container{
		Logger:   newTestLogger(t),
		Sessions: sessions,
	})
}

func TestLoginHandler(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		expectedStatus int
	}{
		{
			name:           "Malformed body",
			body:           `{"email":`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Missing password",
			body:           `{"email":"editor@betpromo.com"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Wrong credentials",
			body:           `{"email":"editor@betpromo.com","password":"wrong"}`,
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Valid credentials",
			body:           `{"email":"editor@betpromo.com","password":"correct-password"}`,
			expectedStatus: http.StatusOK,
		},
	}

	handler := newAuthTestHandler(t)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			handler.Login(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)

			if tt.expectedStatus == http.StatusOK {
				var session auth.Session
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &session))
				assert.NotEmpty(t, session.Token)
				assert.Equal(t, "u-1", session.Identity.ID)
				assert.Equal(t, domain.RoleEditor, session.Identity.Role)
			}
		})
	}
}

func TestMeHandler(t *testing.T) {
	handler := newAuthTestHandler(t)

	// Without a verified session
	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	rec := httptest.NewRecorder()
	handler.Me(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// With the session middleware's identity in context
	identity := &domain.Identity{Kind: domain.IdentityRegularUser, ID: "u-1", Role: domain.RoleEditor}
	req = httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req = req.WithContext(context.WithValue(req.Context(), middleware.IdentityContextKey, identity))
	rec = httptest.NewRecorder()
	handler.Me(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var got domain.Identity
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "u-1", got.ID)
}

func TestLogoutHandler(t *testing.T) {
	handler := newAuthTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	rec := httptest.NewRecorder()
	handler.Logout(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true}`, rec.Body.String())
}
