package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "betpromo/pkg/errors"
	"betpromo/pkg/logger"
)

func newTestLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("error", "development")
	require.NoError(t, err)
	return log
}

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	writeJSON(rec, http.StatusCreated, map[string]string{"id": "p-1"}, newTestLogger(t))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
	assert.JSONEq(t, `{"id":"p-1"}`, rec.Body.String())
}

func TestWriteErrorMapsAppErrors(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedType   apperrors.ErrorType
	}{
		{
			name:           "Validation error",
			err:            apperrors.NewValidationError("Champs invalides", nil),
			expectedStatus: http.StatusBadRequest,
			expectedType:   apperrors.ErrorTypeValidation,
		},
		{
			name:           "Not found error",
			err:            apperrors.NewNotFoundError("Bookmaker introuvable"),
			expectedStatus: http.StatusNotFound,
			expectedType:   apperrors.ErrorTypeNotFound,
		},
		{
			name:           "Plain error is hidden behind an internal error",
			err:            fmt.Errorf("pocketbase connection refused"),
			expectedStatus: http.StatusInternalServerError,
			expectedType:   apperrors.ErrorTypeInternal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeError(rec, tt.err, newTestLogger(t))

			assert.Equal(t, tt.expectedStatus, rec.Code)

			var response apperrors.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
			assert.Equal(t, tt.expectedType, response.Error.Type)
			assert.NotEmpty(t, response.Error.Message)
			// Internal detail never leaks to the client
			assert.NotContains(t, response.Error.Message, "pocketbase")
		})
	}
}

func TestDecodeBodyValidation(t *testing.T) {
	type payload struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	tests := []struct {
		name        string
		body        string
		expectError bool
	}{
		{
			name:        "Valid body",
			body:        `{"email":"admin@betpromo.com","password":"secret"}`,
			expectError: false,
		},
		{
			name:        "Malformed JSON",
			body:        `{"email":`,
			expectError: true,
		},
		{
			name:        "Missing required field",
			body:        `{"email":"admin@betpromo.com"}`,
			expectError: true,
		},
		{
			name:        "Invalid email format",
			body:        `{"email":"not-an-email","password":"secret"}`,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))

			var dst payload
			err := decodeBody(req, &dst)

			if tt.expectError {
				require.Error(t, err)
				appErr, ok := err.(*apperrors.AppError)
				require.True(t, ok)
				assert.Equal(t, http.StatusBadRequest, appErr.StatusCode)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, "admin@betpromo.com", dst.Email)
			}
		})
	}
}

func TestDecodeJSONSkipsValidation(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"1xBet"}`))

	var patch map[string]interface{}
	require.NoError(t, decodeJSON(req, &patch))
	assert.Equal(t, "1xBet", patch["name"])

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`not json`))
	assert.Error(t, decodeJSON(req, &patch))
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	req.RemoteAddr = "203.0.113.10:54321"
	assert.Equal(t, "203.0.113.10", clientIP(req))

	req.RemoteAddr = "203.0.113.10"
	assert.Equal(t, "203.0.113.10", clientIP(req))
}
