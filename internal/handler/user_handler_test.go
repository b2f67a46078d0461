package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"

	"betpromo/internal/container"
	"betpromo/internal/domain"
	"betpromo/internal/middleware"
	"betpromo/internal/repository"
	"betpromo/internal/store"
)

func newUserTestRouter(t *testing.T) *chi.Mux {
	t.Helper()

	log := newTestLogger(t)
	handler := NewUserHandler(&container.Container{
		Logger: log,
		Store:  store.New(&repository.Repositories{}, log),
	})

	router := chi.NewRouter()
	router.Post("/api/admin/users", handler.Create)
	router.Delete("/api/admin/users/{id}", handler.Delete)
	return router
}

func TestCreateUserValidation(t *testing.T) {
	router := newUserTestRouter(t)

	tests := []struct {
		name string
		body string
	}{
		{
			name: "Malformed body",
			body: `{"name":`,
		},
		{
			name: "Missing email",
			body: `{"name":"Nouvel Admin","password":"secret123"}`,
		},
		{
			name: "Missing password",
			body: `{"name":"Nouvel Admin","email":"new@betpromo.com"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/admin/users", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestDeleteUserSelfGuard(t *testing.T) {
	router := newUserTestRouter(t)

	identity := &domain.Identity{Kind: domain.IdentityRegularUser, ID: "u-1", Role: domain.RoleAdmin}
	req := httptest.NewRequest(http.MethodDelete, "/api/admin/users/u-1", nil)
	req = req.WithContext(context.WithValue(req.Context(), middleware.IdentityContextKey, identity))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "votre propre compte")
}
