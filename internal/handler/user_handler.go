package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"betpromo/internal/container"
	"betpromo/internal/domain"
	"betpromo/internal/middleware"
	"betpromo/pkg/errors"
)

// UserHandler handles the admin account CRUD
type UserHandler struct {
	container *container.Container
}

// NewUserHandler creates a new user handler
func NewUserHandler(container *container.Container) *UserHandler {
	return &UserHandler{
		container: container,
	}
}

// List handles GET /api/admin/users
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	logger := h.container.GetLogger()
	writeJSON(w, http.StatusOK, h.container.Store.Users(), logger)
}

// Create handles POST /api/admin/users
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	logger := h.container.GetLogger()

	var fields domain.AdminUserFields
	if err := decodeBody(r, &fields); err != nil {
		writeError(w, err, logger)
		return
	}
	if fields.Password == "" {
		writeError(w, errors.NewValidationError("Mot de passe requis", nil), logger)
		return
	}

	user, err := h.container.Store.AddUser(r.Context(), fields)
	if err != nil {
		writeError(w, errors.NewInternalError("Failed to create user", err), logger)
		return
	}

	writeJSON(w, http.StatusCreated, user, logger)
}

// Update handles PATCH /api/admin/users/{id}
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	logger := h.container.GetLogger()
	id := chi.URLParam(r, "id")

	var fields domain.AdminUserFields
	if err := decodeBody(r, &fields); err != nil {
		writeError(w, err, logger)
		return
	}

	user, err := h.container.Store.UpdateUser(r.Context(), id, fields)
	if err != nil {
		writeError(w, errors.NewInternalError("Failed to update user", err), logger)
		return
	}

	writeJSON(w, http.StatusOK, user, logger)
}

// Delete handles DELETE /api/admin/users/{id}. Accounts cannot delete
// themselves.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	logger := h.container.GetLogger()
	id := chi.URLParam(r, "id")

	if identity := middleware.IdentityFrom(r.Context()); identity != nil && identity.ID == id {
		writeError(w, errors.NewValidationError("Impossible de supprimer votre propre compte", nil), logger)
		return
	}

	if err := h.container.Store.DeleteUser(r.Context(), id); err != nil {
		writeError(w, errors.NewInternalError("Failed to delete user", err), logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true}, logger)
}
