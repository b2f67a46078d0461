package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"betpromo/internal/container"
	"betpromo/pkg/errors"
)

// MessageHandler handles the admin contact inbox
type MessageHandler struct {
	container *container.Container
}

// NewMessageHandler creates a new message handler
func NewMessageHandler(container *container.Container) *MessageHandler {
	return &MessageHandler{
		container: container,
	}
}

// List handles GET /api/admin/messages
func (h *MessageHandler) List(w http.ResponseWriter, r *http.Request) {
	logger := h.container.GetLogger()
	writeJSON(w, http.StatusOK, h.container.Store.Messages(), logger)
}

// MarkRead handles POST /api/admin/messages/{id}/read
func (h *MessageHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	logger := h.container.GetLogger()
	id := chi.URLParam(r, "id")

	message, err := h.container.Store.MarkMessageRead(r.Context(), id)
	if err != nil {
		writeError(w, errors.NewInternalError("Failed to mark message read", err), logger)
		return
	}

	writeJSON(w, http.StatusOK, message, logger)
}

// Delete handles DELETE /api/admin/messages/{id}
func (h *MessageHandler) Delete(w http.ResponseWriter, r *http.Request) {
	logger := h.container.GetLogger()
	id := chi.URLParam(r, "id")

	if err := h.container.Store.DeleteContactMessage(r.Context(), id); err != nil {
		writeError(w, errors.NewInternalError("Failed to delete message", err), logger)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true}, logger)
}
