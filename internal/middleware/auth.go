package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"betpromo/internal/domain"
	"betpromo/pkg/errors"
	"betpromo/pkg/logger"
)

// ContextKey represents keys used in request context
type ContextKey string

const (
	// IdentityContextKey is the key for the authenticated identity in context
	IdentityContextKey ContextKey = "identity"
	// RequestIDContextKey is the key for request ID in context
	RequestIDContextKey ContextKey = "request_id"
)

// SessionVerifier resolves a bearer token into an identity.
type SessionVerifier interface {
	Verify(token string) (*domain.Identity, error)
}

// Session authenticates requests against a bearer session token and puts
// the resolved identity into the request context.
func Session(verifier SessionVerifier, logger *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				writeErrorResponse(w, errors.NewAuthenticationError("Authorization header is required"), logger)
				return
			}

			if !strings.HasPrefix(authHeader, "Bearer ") {
				writeErrorResponse(w, errors.NewAuthenticationError("Invalid authorization header format"), logger)
				return
			}

			token := strings.TrimPrefix(authHeader, "Bearer ")
			if token == "" {
				writeErrorResponse(w, errors.NewAuthenticationError("Token is required"), logger)
				return
			}

			identity, err := verifier.Verify(token)
			if err != nil {
				logger.WithError(err).Debug("Session verification failed")
				writeErrorResponse(w, errors.NewAuthenticationError("Invalid or expired session"), logger)
				return
			}

			ctx := context.WithValue(r.Context(), IdentityContextKey, identity)
			r = r.WithContext(ctx)

			logger.WithField("user_id", identity.ID).Debug("Session verified")

			next.ServeHTTP(w, r)
		})
	}
}

// RequireRole gates a route on the minimum role. Superusers always pass.
func RequireRole(role string, logger *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity := IdentityFrom(r.Context())
			if identity == nil {
				writeErrorResponse(w, errors.NewAuthenticationError("Authentication required"), logger)
				return
			}

			if identity.Kind != domain.IdentitySuperuser && !domain.RoleAtLeast(identity.Role, role) {
				logger.WithFields(map[string]interface{}{
					"user_id": identity.ID,
					"role":    identity.Role,
				}).Warn("Insufficient role for request")
				writeErrorResponse(w, errors.NewAuthorizationError("Droits insuffisants"), logger)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// IdentityFrom extracts the authenticated identity from a request context.
func IdentityFrom(ctx context.Context) *domain.Identity {
	identity, _ := ctx.Value(IdentityContextKey).(*domain.Identity)
	return identity
}

// StoreGate rejects requests while the data store has not finished its
// initial load. Health stays reachable; everything behind this gate
// answers 503 until loaded.
func StoreGate(loaded func() (bool, error), logger *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ok, err := loaded()
			if !ok {
				writeErrorResponse(w, errors.NewUnavailableError("Service indisponible, données non chargées", err), logger)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequestID creates a middleware that adds a unique request ID to each request
func RequestID(logger *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := generateRequestID()

			ctx := context.WithValue(r.Context(), RequestIDContextKey, requestID)
			r = r.WithContext(ctx)

			w.Header().Set("X-Request-ID", requestID)

			logger = logger.WithField("request_id", requestID)

			next.ServeHTTP(w, r)
		})
	}
}

// generateRequestID generates a unique request ID
func generateRequestID() string {
	return uuid.NewString()
}

// writeErrorResponse writes an error response to the client
func writeErrorResponse(w http.ResponseWriter, appErr *errors.AppError, logger *logger.Logger) {
	logger.WithError(appErr).Debug("Request rejected")

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.StatusCode)

	response := &errors.ErrorResponse{}
	response.Error.Type = appErr.Type
	response.Error.Message = appErr.Message
	response.Error.Details = appErr.Details
	response.Error.Timestamp = time.Now().UTC().Format(time.RFC3339)

	if err := json.NewEncoder(w).Encode(response); err != nil {
		logger.WithError(err).Error("Failed to encode error response")
	}
}
