package handler

import (
	"encoding/json"
	"net"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	apperrors "betpromo/pkg/errors"
	"betpromo/pkg/logger"
)

// validate is shared by every handler; struct rules live on the domain
// field types.
var validate = validator.New()

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, payload interface{}, log *logger.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.WithError(err).Error("Failed to encode response")
	}
}

// writeError writes a structured error response. Non-AppError values are
// reported as internal errors without leaking their message.
func writeError(w http.ResponseWriter, err error, log *logger.Logger) {
	appErr, ok := err.(*apperrors.AppError)
	if !ok {
		appErr = apperrors.NewInternalError("Une erreur interne est survenue", err)
	}

	if appErr.StatusCode >= http.StatusInternalServerError {
		log.WithError(err).Error("Request failed")
	} else {
		log.WithError(err).Debug("Request rejected")
	}

	response := &apperrors.ErrorResponse{}
	response.Error.Type = appErr.Type
	response.Error.Message = appErr.Message
	response.Error.Details = appErr.Details
	response.Error.Timestamp = time.Now().UTC().Format(time.RFC3339)

	writeJSON(w, appErr.StatusCode, response, log)
}

// decodeJSON decodes a JSON request body without struct validation (used
// for free-form patch payloads).
func decodeJSON(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperrors.NewValidationError("Corps de requête invalide", nil)
	}
	return nil
}

// decodeBody decodes and validates a JSON request body.
func decodeBody(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperrors.NewValidationError("Corps de requête invalide", nil)
	}
	if err := validate.Struct(dst); err != nil {
		details := map[string]interface{}{}
		if fieldErrs, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range fieldErrs {
				details[fe.Field()] = fe.Tag()
			}
		}
		return apperrors.NewValidationError("Champs invalides", details)
	}
	return nil
}

// clientIP returns the request's client address without the port. The
// router's RealIP middleware has already resolved forwarding headers.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
