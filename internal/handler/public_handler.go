package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"betpromo/internal/container"
	"betpromo/internal/domain"
	"betpromo/pkg/errors"
)

// PublicHandler serves the marketing site: the partner list and the
// tracking and contact endpoints. Nothing here requires a session.
type PublicHandler struct {
	container *container.Container
}

// NewPublicHandler creates a new public handler
func NewPublicHandler(container *container.Container) *PublicHandler {
	return &PublicHandler{
		container: container,
	}
}

// ListPartners handles GET /api/partners. Only active partners are exposed
// publicly; the serialized list is cached.
func (h *PublicHandler) ListPartners(w http.ResponseWriter, r *http.Request) {
	logger := h.container.GetLogger()

	data, err := h.container.Cache.ActivePartnersWithCache(r.Context(), h.container.Store.ActivePartners)
	if err != nil {
		writeError(w, errors.NewInternalError("Failed to serialize partner list", err), logger)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		logger.WithError(err).Error("Failed to write partner list")
	}
}

// GetPartner handles GET /api/partners/{id}. Inactive partners stay hidden
// from the public site.
func (h *PublicHandler) GetPartner(w http.ResponseWriter, r *http.Request) {
	logger := h.container.GetLogger()

	partner, ok := h.container.Store.Partner(chi.URLParam(r, "id"))
	if !ok || !partner.IsActive {
		writeError(w, errors.NewNotFoundError("Bookmaker introuvable"), logger)
		return
	}

	writeJSON(w, http.StatusOK, partner, logger)
}

// RecordClick handles POST /api/partners/{id}/click
func (h *PublicHandler) RecordClick(w http.ResponseWriter, r *http.Request) {
	logger := h.container.GetLogger()
	partnerID := chi.URLParam(r, "id")

	if !h.container.Traffic.AllowClick(r.Context(), clientIP(r)) {
		writeError(w, errors.NewRateLimitError("Trop de requêtes, réessayez plus tard"), logger)
		return
	}

	if _, ok := h.container.Store.Partner(partnerID); !ok {
		writeError(w, errors.NewNotFoundError("Bookmaker introuvable"), logger)
		return
	}

	if err := h.container.Store.RecordClick(r.Context(), partnerID); err != nil {
		writeError(w, errors.NewInternalError("Failed to record click", err), logger)
		return
	}
	h.container.Cache.InvalidatePartners()

	writeJSON(w, http.StatusOK, map[string]bool{"success": true}, logger)
}

// RecordConversion handles POST /api/partners/{id}/conversion. A visitor
// counts at most once per partner.
func (h *PublicHandler) RecordConversion(w http.ResponseWriter, r *http.Request) {
	logger := h.container.GetLogger()
	partnerID := chi.URLParam(r, "id")

	if _, ok := h.container.Store.Partner(partnerID); !ok {
		writeError(w, errors.NewNotFoundError("Bookmaker introuvable"), logger)
		return
	}

	if !h.container.Traffic.FirstConversion(r.Context(), partnerID, clientIP(r), r.UserAgent()) {
		// Already counted; acknowledge without recounting.
		writeJSON(w, http.StatusOK, map[string]bool{"success": true, "counted": false}, logger)
		return
	}

	if err := h.container.Store.RecordConversion(r.Context(), partnerID); err != nil {
		writeError(w, errors.NewInternalError("Failed to record conversion", err), logger)
		return
	}
	h.container.Cache.InvalidatePartners()

	writeJSON(w, http.StatusOK, map[string]bool{"success": true, "counted": true}, logger)
}

// RecordVisit handles POST /api/visit. A visitor counts at most once per
// day.
func (h *PublicHandler) RecordVisit(w http.ResponseWriter, r *http.Request) {
	logger := h.container.GetLogger()

	if !h.container.Traffic.FirstVisitToday(r.Context(), clientIP(r), r.UserAgent()) {
		writeJSON(w, http.StatusOK, map[string]bool{"success": true, "counted": false}, logger)
		return
	}

	h.container.Store.RecordVisit(r.Context())
	writeJSON(w, http.StatusOK, map[string]bool{"success": true, "counted": true}, logger)
}

// SubmitContact handles POST /api/contact
func (h *PublicHandler) SubmitContact(w http.ResponseWriter, r *http.Request) {
	logger := h.container.GetLogger()

	var fields domain.ContactMessageFields
	if err := decodeBody(r, &fields); err != nil {
		writeError(w, err, logger)
		return
	}

	message, err := h.container.Store.AddContactMessage(r.Context(), fields)
	if err != nil {
		writeError(w, errors.NewInternalError("Failed to store contact message", err), logger)
		return
	}

	// Relay failure never fails the submission; the message is stored.
	if h.container.Mailer.Enabled() {
		if err := h.container.Mailer.SendContactNotification(r.Context(), *message); err != nil {
			logger.WithError(err).Warn("Failed to relay contact message")
		}
	}

	writeJSON(w, http.StatusCreated, message, logger)
}
