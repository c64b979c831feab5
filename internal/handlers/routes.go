package handlers

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/benx421/account-ledger/internal/api"
	"github.com/benx421/account-ledger/internal/config"
	"github.com/benx421/account-ledger/internal/metrics"
	"github.com/benx421/account-ledger/internal/middleware"
	"github.com/benx421/account-ledger/internal/repository"
	"github.com/benx421/account-ledger/internal/service"
	"github.com/gorilla/mux"
)

// NewRouter creates and configures the HTTP router with all routes and middleware.
func NewRouter(
	store repository.Store,
	idempotencyRepo middleware.IdempotencyRepository,
	cfg *config.Config,
	logger *slog.Logger,
	m *metrics.Metrics,
) (http.Handler, error) {
	limits, err := service.NewLimits(
		cfg.Ledger.DepositLimit,
		cfg.Ledger.WithdrawFloor,
		cfg.Ledger.WithdrawPercentCap,
	)
	if err != nil {
		return nil, fmt.Errorf("invalid ledger limits: %w", err)
	}

	ledger := service.NewLedgerService(store, limits, logger, m)
	handler := NewHandler(ledger, ledger, store, logger)

	r := mux.NewRouter()
	r.Use(middleware.Metrics(m))
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		handler.writeError(w, http.StatusNotFound, api.ErrorCodeInvalidRequest, "route not found")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		handler.writeError(w, http.StatusMethodNotAllowed, api.ErrorCodeInvalidRequest, "method not allowed")
	})

	banking := r.PathPrefix("/banking").Subrouter()
	banking.HandleFunc("/account", handler.CreateCustomer).Methods(http.MethodPost)
	banking.HandleFunc("/account", handler.GetAccount).Methods(http.MethodGet)
	banking.HandleFunc("/account", handler.DeleteAccount).Methods(http.MethodDelete)
	banking.HandleFunc("/all-cust-accts", handler.ListCustomers).Methods(http.MethodGet)
	banking.HandleFunc("/deposit", handler.Deposit).Methods(http.MethodPut)
	banking.HandleFunc("/withdraw", handler.Withdraw).Methods(http.MethodPut)

	r.HandleFunc("/health", handler.GetHealth).Methods(http.MethodGet)
	r.Handle("/metrics", m.Handler()).Methods(http.MethodGet)
	api.RegisterDocsRoutes(r)

	doc, err := api.GetSwagger()
	if err != nil {
		return nil, err
	}
	validator, err := middleware.RequestValidator(doc, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to build request validator: %w", err)
	}

	var finalHandler http.Handler = r
	finalHandler = validator(finalHandler)
	finalHandler = middleware.Idempotency(idempotencyRepo, logger)(finalHandler)

	return finalHandler, nil
}
