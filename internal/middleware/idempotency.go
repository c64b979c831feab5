// Package middleware provides HTTP middleware components for the ledger API.
package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/benx421/account-ledger/internal/api"
	"github.com/benx421/account-ledger/internal/models"
)

const (
	idempotencyKeyHeader = "Idempotency-Key"
	replayedHeader       = "X-Idempotent-Replayed"
)

// idempotentRoutes lists the mutating operations whose responses are cached.
var idempotentRoutes = map[string]bool{
	http.MethodPost + " /banking/account":  true,
	http.MethodDelete + " /banking/account": true,
	http.MethodPut + " /banking/deposit":    true,
	http.MethodPut + " /banking/withdraw":   true,
}

// IdempotencyRepository defines the interface for idempotency storage
type IdempotencyRepository interface {
	Get(ctx context.Context, key, requestPath string) (*models.IdempotencyKey, error)
	Store(ctx context.Context, idemKey *models.IdempotencyKey) error
}

type responseCapture struct {
	http.ResponseWriter
	body       bytes.Buffer
	statusCode int
}

func newResponseCapture(w http.ResponseWriter) *responseCapture {
	return &responseCapture{
		ResponseWriter: w,
		statusCode:     http.StatusOK, // Default if WriteHeader not called
	}
}

func (rc *responseCapture) WriteHeader(code int) {
	rc.statusCode = code
	rc.ResponseWriter.WriteHeader(code)
}

func (rc *responseCapture) Write(b []byte) (int, error) {
	rc.body.Write(b) // Capture for caching
	return rc.ResponseWriter.Write(b)
}

// Idempotency replays the stored response of a completed request carrying
// the same Idempotency-Key. Reusing a key for a different request is
// rejected with 422.
func Idempotency(repo IdempotencyRepository, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestPath := routeKey(r)
			if !idempotentRoutes[requestPath] {
				next.ServeHTTP(w, r)
				return
			}

			idempotencyKey := r.Header.Get(idempotencyKeyHeader)
			if idempotencyKey == "" {
				next.ServeHTTP(w, r)
				return
			}

			requestHash, err := fingerprint(r)
			if err != nil {
				api.WriteError(w, http.StatusBadRequest, api.ErrorCodeInvalidRequest, "failed to read request body")
				return
			}

			ctx := r.Context()
			cached, err := repo.Get(ctx, idempotencyKey, requestPath)
			if err != nil {
				logger.Error("failed to check idempotency cache", "error", err)
				next.ServeHTTP(w, r)
				return
			}

			if cached != nil {
				if cached.RequestHash != "" && cached.RequestHash != requestHash {
					logger.Warn("idempotency key reused with a different request",
						"key", idempotencyKey,
						"path", requestPath,
					)
					api.WriteError(w, http.StatusUnprocessableEntity, api.ErrorCodeIdempotencyKeyMismatch,
						"Idempotency-Key has already been used with a different request.")
					return
				}

				logger.Debug("returning cached idempotent response",
					"key", idempotencyKey,
					"path", requestPath,
					"status", cached.ResponseStatus,
				)
				w.Header().Set("Content-Type", "application/json")
				w.Header().Set(replayedHeader, "true")
				w.WriteHeader(cached.ResponseStatus)
				//nolint:errcheck // Best effort response writing
				w.Write([]byte(cached.ResponseBody))
				return
			}

			capture := newResponseCapture(w)
			next.ServeHTTP(capture, r)

			if shouldCacheResponse(capture.statusCode) {
				idemKey := &models.IdempotencyKey{
					Key:            idempotencyKey,
					RequestPath:    requestPath,
					RequestHash:    requestHash,
					ResponseStatus: capture.statusCode,
					ResponseBody:   capture.body.String(),
					CreatedAt:      time.Now(),
				}

				if err := repo.Store(ctx, idemKey); err != nil {
					logger.Error("failed to store idempotency key",
						"error", err,
						"key", idempotencyKey,
					)
				}
			}
		})
	}
}

func routeKey(r *http.Request) string {
	return r.Method + " " + strings.TrimSuffix(r.URL.Path, "/")
}

// fingerprint hashes method, path, query and body, restoring the body for
// the next handler.
func fingerprint(r *http.Request) (string, error) {
	var body []byte
	if r.Body != nil {
		var err error
		body, err = io.ReadAll(r.Body)
		if err != nil {
			return "", err
		}
		r.Body = io.NopCloser(bytes.NewReader(body))
	}

	h := sha256.New()
	h.Write([]byte(routeKey(r)))
	h.Write([]byte{'\n'})
	h.Write([]byte(r.URL.Query().Encode()))
	h.Write([]byte{'\n'})
	h.Write(body)
	return hex.EncodeToString(h.Sum(nil)), nil
}

func shouldCacheResponse(statusCode int) bool {
	return statusCode >= 200 && statusCode < 300
}
