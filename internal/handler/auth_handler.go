package handler

import (
	"net/http"

	"betpromo/internal/container"
	"betpromo/internal/middleware"
	"betpromo/pkg/errors"
)

// AuthHandler handles session requests
type AuthHandler struct {
	container *container.Container
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(container *container.Container) *AuthHandler {
	return &AuthHandler{
		container: container,
	}
}

// LoginRequest is the credential payload of POST /api/auth/login
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	logger := h.container.GetLogger()

	var req LoginRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, err, logger)
		return
	}

	session, err := h.container.Sessions.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err, logger)
		return
	}

	writeJSON(w, http.StatusOK, session, logger)
}

// Me handles GET /api/auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	logger := h.container.GetLogger()

	identity := middleware.IdentityFrom(r.Context())
	if identity == nil {
		writeError(w, errors.NewAuthenticationError("Authentication required"), logger)
		return
	}

	writeJSON(w, http.StatusOK, identity, logger)
}

// Logout handles POST /api/auth/logout. Sessions are stateless tokens, so
// logout only acknowledges; the client drops the token.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	logger := h.container.GetLogger()
	writeJSON(w, http.StatusOK, map[string]bool{"success": true}, logger)
}
