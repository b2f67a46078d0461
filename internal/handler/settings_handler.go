package handler

import (
	"net/http"

	"betpromo/internal/container"
	"betpromo/internal/domain"
	"betpromo/pkg/errors"
)

// SettingsHandler handles the settings singleton
type SettingsHandler struct {
	container *container.Container
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(container *container.Container) *SettingsHandler {
	return &SettingsHandler{
		container: container,
	}
}

// Get handles GET /api/admin/settings
func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	logger := h.container.GetLogger()
	writeJSON(w, http.StatusOK, h.container.Store.Settings(), logger)
}

// Update handles PATCH /api/admin/settings. Blocks absent from the payload
// are left untouched.
func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	logger := h.container.GetLogger()

	var patch domain.SettingsPatch
	if err := decodeJSON(r, &patch); err != nil {
		writeError(w, err, logger)
		return
	}

	settings, err := h.container.Store.UpdateSettings(r.Context(), patch)
	if err != nil {
		writeError(w, errors.NewInternalError("Failed to update settings", err), logger)
		return
	}

	writeJSON(w, http.StatusOK, settings, logger)
}
