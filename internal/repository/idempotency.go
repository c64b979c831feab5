package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/benx421/account-ledger/internal/models"
)

// IdempotencyRepository implements idempotency key storage in PostgreSQL
type IdempotencyRepository struct {
	db DBTX
}

// NewIdempotencyRepository creates a new IdempotencyRepository
func NewIdempotencyRepository(database DBTX) *IdempotencyRepository {
	return &IdempotencyRepository{db: database}
}

// Get returns the stored response for key and path, or nil if none exists.
func (r *IdempotencyRepository) Get(ctx context.Context, key, requestPath string) (*models.IdempotencyKey, error) {
	query := `
		SELECT key, request_path, request_hash, response_status, response_body, created_at
		FROM idempotency_keys
		WHERE key = $1 AND request_path = $2
	`

	var idemKey models.IdempotencyKey
	err := r.db.QueryRowContext(ctx, query, key, requestPath).Scan(
		&idemKey.Key,
		&idemKey.RequestPath,
		&idemKey.RequestHash,
		&idemKey.ResponseStatus,
		&idemKey.ResponseBody,
		&idemKey.CreatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get idempotency key: %w", err)
	}

	return &idemKey, nil
}

// Store saves a response. The first stored response for a key wins.
func (r *IdempotencyRepository) Store(ctx context.Context, idemKey *models.IdempotencyKey) error {
	query := `
		INSERT INTO idempotency_keys (key, request_path, request_hash, response_status, response_body, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (key, request_path) DO NOTHING
	`

	createdAt := idemKey.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err := r.db.ExecContext(ctx, query,
		idemKey.Key,
		idemKey.RequestPath,
		idemKey.RequestHash,
		idemKey.ResponseStatus,
		idemKey.ResponseBody,
		createdAt,
	)
	if err != nil {
		return fmt.Errorf("failed to store idempotency key: %w", err)
	}

	return nil
}

// DeleteOlderThan removes keys created before cutoff and reports how many
// were removed.
func (r *IdempotencyRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM idempotency_keys WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to delete idempotency keys: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return deleted, nil
}

type idempotencyEntry struct {
	key, path string
}

// MemoryIdempotencyRepository keeps idempotency keys in process memory.
type MemoryIdempotencyRepository struct {
	entries map[idempotencyEntry]models.IdempotencyKey
	mu      sync.RWMutex
}

// NewMemoryIdempotencyRepository creates an empty MemoryIdempotencyRepository
func NewMemoryIdempotencyRepository() *MemoryIdempotencyRepository {
	return &MemoryIdempotencyRepository{entries: make(map[idempotencyEntry]models.IdempotencyKey)}
}

// Get returns the stored response for key and path, or nil if none exists.
func (r *MemoryIdempotencyRepository) Get(_ context.Context, key, requestPath string) (*models.IdempotencyKey, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored, ok := r.entries[idempotencyEntry{key, requestPath}]
	if !ok {
		return nil, nil
	}
	return &stored, nil
}

// Store saves a response. The first stored response for a key wins.
func (r *MemoryIdempotencyRepository) Store(_ context.Context, idemKey *models.IdempotencyKey) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry := idempotencyEntry{idemKey.Key, idemKey.RequestPath}
	if _, exists := r.entries[entry]; exists {
		return nil
	}

	stored := *idemKey
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now()
	}
	r.entries[entry] = stored
	return nil
}

// DeleteOlderThan removes keys created before cutoff.
func (r *MemoryIdempotencyRepository) DeleteOlderThan(_ context.Context, cutoff time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var deleted int64
	for entry, stored := range r.entries {
		if stored.CreatedAt.Before(cutoff) {
			delete(r.entries, entry)
			deleted++
		}
	}
	return deleted, nil
}
