package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"betpromo/internal/container"
	"betpromo/internal/domain"
	"betpromo/internal/repository"
	"betpromo/pkg/errors"
)

// PartnerHandler handles the admin bookmaker CRUD
type PartnerHandler struct {
	container *container.Container
}

// NewPartnerHandler creates a new partner handler
func NewPartnerHandler(container *container.Container) *PartnerHandler {
	return &PartnerHandler{
		container: container,
	}
}

// List handles GET /api/admin/partners. Admins see inactive partners too.
func (h *PartnerHandler) List(w http.ResponseWriter, r *http.Request) {
	logger := h.container.GetLogger()
	writeJSON(w, http.StatusOK, h.container.Store.Partners(), logger)
}

// Create handles POST /api/admin/partners
func (h *PartnerHandler) Create(w http.ResponseWriter, r *http.Request) {
	logger := h.container.GetLogger()

	var fields domain.PartnerFields
	if err := decodeBody(r, &fields); err != nil {
		writeError(w, err, logger)
		return
	}

	partner, err := h.container.Store.AddPartner(r.Context(), fields)
	if err != nil {
		writeError(w, errors.NewInternalError("Failed to create partner", err), logger)
		return
	}
	h.container.Cache.InvalidatePartners()

	writeJSON(w, http.StatusCreated, partner, logger)
}

// Update handles PATCH /api/admin/partners/{id}
func (h *PartnerHandler) Update(w http.ResponseWriter, r *http.Request) {
	logger := h.container.GetLogger()
	id := chi.URLParam(r, "id")

	if _, ok := h.container.Store.Partner(id); !ok {
		writeError(w, errors.NewNotFoundError("Bookmaker introuvable"), logger)
		return
	}

	var fields repository.Fields
	if err := decodeJSON(r, &fields); err != nil {
		writeError(w, err, logger)
		return
	}

	partner, err := h.container.Store.UpdatePartner(r.Context(), id, fields)
	if err != nil {
		writeError(w, errors.NewInternalError("Failed to update partner", err), logger)
		return
	}
	h.container.Cache.InvalidatePartners()

	writeJSON(w, http.StatusOK, partner, logger)
}

// Delete handles DELETE /api/admin/partners/{id}
func (h *PartnerHandler) Delete(w http.ResponseWriter, r *http.Request) {
	logger := h.container.GetLogger()
	id := chi.URLParam(r, "id")

	if _, ok := h.container.Store.Partner(id); !ok {
		writeError(w, errors.NewNotFoundError("Bookmaker introuvable"), logger)
		return
	}

	if err := h.container.Store.DeletePartner(r.Context(), id); err != nil {
		writeError(w, errors.NewInternalError("Failed to delete partner", err), logger)
		return
	}
	h.container.Cache.InvalidatePartners()

	writeJSON(w, http.StatusOK, map[string]bool{"success": true}, logger)
}
