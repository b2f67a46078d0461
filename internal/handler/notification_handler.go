package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"betpromo/internal/container"
	"betpromo/pkg/errors"
)

// NotificationHandler handles the admin notification feed
type NotificationHandler struct {
	container *container.Container
}

// NewNotificationHandler creates a new notification handler
func NewNotificationHandler(container *container.Container) *NotificationHandler {
	return &NotificationHandler{
		container: container,
	}
}

// List handles GET /api/admin/notifications
func (h *NotificationHandler) List(w http.ResponseWriter, r *http.Request) {
	logger := h.container.GetLogger()
	writeJSON(w, http.StatusOK, h.container.Store.Notifications(), logger)
}

// MarkRead handles POST /api/admin/notifications/{id}/read
func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	logger := h.container.GetLogger()
	id := chi.URLParam(r, "id")

	if err := h.container.Store.MarkNotificationRead(r.Context(), id); err != nil {
		writeError(w, errors.NewInternalError("Failed to mark notification read", err), logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true}, logger)
}

// MarkAllRead handles POST /api/admin/notifications/read-all
func (h *NotificationHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	logger := h.container.GetLogger()

	if err := h.container.Store.MarkAllNotificationsRead(r.Context()); err != nil {
		writeError(w, errors.NewInternalError("Failed to mark notifications read", err), logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true}, logger)
}

// Delete handles DELETE /api/admin/notifications/{id}
func (h *NotificationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	logger := h.container.GetLogger()
	id := chi.URLParam(r, "id")

	if err := h.container.Store.DeleteNotification(r.Context(), id); err != nil {
		writeError(w, errors.NewInternalError("Failed to delete notification", err), logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true}, logger)
}
