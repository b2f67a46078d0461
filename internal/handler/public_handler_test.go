package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"betpromo/internal/container"
	"betpromo/internal/repository"
	"betpromo/internal/service"
	"betpromo/internal/store"
)

// newPublicTestHandler wires a handler over an empty in-memory store. Redis
// is absent, so the traffic guards pass through and the cache is a no-op.
func newPublicTestHandler(t *testing.T) (*PublicHandler, *chi.Mux) {
	t.Helper()

	log := newTestLogger(t)
	deps := &container.Container{
		Logger:  log,
		Store:   store.New(&repository.Repositories{}, log),
		Traffic: service.NewTrafficService(nil, log),
		Cache:   service.NewCacheService(nil, zap.NewNop()),
	}
	handler := NewPublicHandler(deps)

	router := chi.NewRouter()
	router.Get("/api/partners", handler.ListPartners)
	router.Post("/api/partners/{id}/click", handler.RecordClick)
	router.Post("/api/partners/{id}/conversion", handler.RecordConversion)
	router.Post("/api/contact", handler.SubmitContact)
	return handler, router
}

func TestListPartnersEmptyStore(t *testing.T) {
	_, router := newPublicTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/api/partners", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestRecordClickUnknownPartner(t *testing.T) {
	_, router := newPublicTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/partners/missing/click", nil)
	req.RemoteAddr = "203.0.113.10:54321"
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Bookmaker introuvable")
}

func TestRecordConversionUnknownPartner(t *testing.T) {
	_, router := newPublicTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/partners/missing/conversion", nil)
	req.RemoteAddr = "203.0.113.10:54321"
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSubmitContactValidation(t *testing.T) {
	_, router := newPublicTestHandler(t)

	tests := []struct {
		name string
		body string
	}{
		{
			name: "Malformed body",
			body: `{"name":`,
		},
		{
			name: "Missing fields",
			body: `{"name":"Jean"}`,
		},
		{
			name: "Invalid email",
			body: `{"name":"Jean","email":"nope","subject":"Question","message":"Bonjour, j'ai une question."}`,
		},
		{
			name: "Message too short",
			body: `{"name":"Jean","email":"jean@example.com","subject":"Question","message":"court"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}
