package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/benx421/account-ledger/internal/config"
	"github.com/benx421/account-ledger/internal/db"
	"github.com/benx421/account-ledger/internal/handlers"
	"github.com/benx421/account-ledger/internal/metrics"
	"github.com/benx421/account-ledger/internal/middleware"
	"github.com/benx421/account-ledger/internal/repository"
)

// idempotencyStore is the cache used by the middleware plus pruning.
type idempotencyStore interface {
	middleware.IdempotencyRepository
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

type backend struct {
	store       repository.Store
	idempotency idempotencyStore
	close       func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := cfg.Logger.NewLogger()
	slog.SetDefault(logger)

	logger.Info("starting ledger api",
		"port", cfg.Server.Port,
		"log_level", cfg.Logger.Level,
		"store", cfg.Store.Driver,
	)

	ctx := context.Background()
	b, err := openBackend(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to open store", "error", err)
		os.Exit(1)
	}
	defer b.close()

	store := b.store
	chaos := repository.ChaosConfig{
		FailureRate:  cfg.Chaos.FailureRate,
		MinLatencyMS: cfg.Chaos.MinLatencyMS,
		MaxLatencyMS: cfg.Chaos.MaxLatencyMS,
	}
	if chaos.Enabled() {
		logger.Warn("store failure injection enabled",
			"failure_rate", chaos.FailureRate,
			"min_latency_ms", chaos.MinLatencyMS,
			"max_latency_ms", chaos.MaxLatencyMS,
		)
		store = repository.NewChaosStore(store, chaos, logger)
	}

	router, err := handlers.NewRouter(store, b.idempotency, cfg, logger, metrics.New())
	if err != nil {
		logger.Error("failed to build router", "error", err)
		os.Exit(1)
	}

	pruneCtx, stopPruning := context.WithCancel(ctx)
	defer stopPruning()
	go pruneIdempotencyKeys(pruneCtx, b.idempotency, cfg.Store.IdempotencyTTL, logger)

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		logger.Info("server listening", "address", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	logger.Info("server stopped")
}

func openBackend(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*backend, error) {
	switch cfg.Store.Driver {
	case config.StoreDriverMemory:
		logger.Warn("using in-memory store, data is lost on restart")
		return &backend{
			store:       repository.NewMemoryStore(),
			idempotency: repository.NewMemoryIdempotencyRepository(),
			close:       func() {},
		}, nil
	case config.StoreDriverPostgres:
		database, err := db.Connect(ctx, &cfg.Database, logger)
		if err != nil {
			return nil, err
		}

		if cfg.Store.RunMigrations {
			if err := database.Migrate(cfg.Database.DBName); err != nil {
				_ = database.Close() //nolint:errcheck // migration failure is the error worth reporting
				return nil, err
			}
		}

		return &backend{
			store:       repository.NewPostgresStore(database),
			idempotency: repository.NewIdempotencyRepository(database),
			close: func() {
				if err := database.Close(); err != nil {
					logger.Error("failed to close database", "error", err)
				}
			},
		}, nil
	default:
		return nil, fmt.Errorf("unsupported store driver: %s", cfg.Store.Driver)
	}
}

// pruneIdempotencyKeys deletes cached responses older than ttl until ctx is
// cancelled. It runs every quarter ttl, at most once a minute.
func pruneIdempotencyKeys(ctx context.Context, repo idempotencyStore, ttl time.Duration, logger *slog.Logger) {
	ticker := time.NewTicker(max(ttl/4, time.Minute))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			deleted, err := repo.DeleteOlderThan(ctx, now.Add(-ttl))
			if err != nil {
				logger.Error("failed to prune idempotency keys", "error", err)
				continue
			}
			if deleted > 0 {
				logger.Debug("pruned idempotency keys", "deleted", deleted)
			}
		}
	}
}
