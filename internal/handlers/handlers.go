// Package handlers implements HTTP handlers for the ledger API.
package handlers

import (
	"log/slog"
	"time"

	"github.com/benx421/account-ledger/internal/service"
)

// Handler serves the /banking and /health endpoints.
type Handler struct {
	customers     service.CustomerRegistry
	accounts      service.AccountLedger
	healthChecker service.HealthChecker
	logger        *slog.Logger
	now           func() time.Time
}

// NewHandler creates a new Handler with injected service dependencies.
func NewHandler(
	customers service.CustomerRegistry,
	accounts service.AccountLedger,
	healthChecker service.HealthChecker,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		customers:     customers,
		accounts:      accounts,
		healthChecker: healthChecker,
		logger:        logger,
		now:           time.Now,
	}
}
