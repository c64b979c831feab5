package api

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"
)

// HealthStatus is the state reported by GET /health
type HealthStatus string

// Defines values for HealthStatus.
const (
	Healthy   HealthStatus = "healthy"
	Unhealthy HealthStatus = "unhealthy"
)

// HealthResponse is the body of GET /health
type HealthResponse struct {
	Status HealthStatus `json:"status"`
}

// ErrorResponse is the body of every rejected request.
type ErrorResponse struct {
	TimeStamp    time.Time `json:"timeStamp"`
	ErrorMessage string    `json:"errorMessage"`
	StatusCode   string    `json:"statusCode"`
	ErrorCode    string    `json:"errorCode,omitempty"`
}

// Error codes produced by the transport itself rather than the ledger.
const (
	ErrorCodeInvalidRequest         = "invalid_request"
	ErrorCodeInternalError          = "internal_error"
	ErrorCodeIdempotencyKeyMismatch = "idempotency_key_mismatch"
)

// StatusName renders an HTTP status as BAD_REQUEST, NOT_FOUND and so on.
func StatusName(status int) string {
	return strings.ToUpper(strings.ReplaceAll(http.StatusText(status), " ", "_"))
}

// NewErrorResponse builds the error payload for status.
func NewErrorResponse(now time.Time, status int, code, message string) ErrorResponse {
	return ErrorResponse{
		TimeStamp:    now.UTC(),
		ErrorMessage: message,
		StatusCode:   StatusName(status),
		ErrorCode:    code,
	}
}

// WriteJSON encodes body as JSON with the given status.
func WriteJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck // Best effort response writing
	json.NewEncoder(w).Encode(body)
}

// WriteError writes the error payload using the current time.
func WriteError(w http.ResponseWriter, status int, code, message string) {
	WriteJSON(w, status, NewErrorResponse(time.Now(), status, code, message))
}
