package repository

import (
	"context"
	"testing"
	"time"

	"github.com/benx421/account-ledger/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type idempotencyStore interface {
	Get(ctx context.Context, key, requestPath string) (*models.IdempotencyKey, error)
	Store(ctx context.Context, idemKey *models.IdempotencyKey) error
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

func runIdempotencyContract(t *testing.T, newRepo func(t *testing.T) idempotencyStore) {
	ctx := context.Background()

	t.Run("store and get", func(t *testing.T) {
		repo := newRepo(t)

		tests := []struct {
			name        string
			key         string
			requestPath string
			body        string
			status      int
		}{
			{name: "created customer", key: "key-1", requestPath: "/banking/account", status: 201, body: `{"custId":"c1"}`},
			{name: "deposit", key: "key-2", requestPath: "/banking/deposit", status: 200, body: `{"balanceAmt":"2000.00"}`},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				err := repo.Store(ctx, &models.IdempotencyKey{
					Key:            tt.key,
					RequestPath:    tt.requestPath,
					RequestHash:    "hash-" + tt.key,
					ResponseStatus: tt.status,
					ResponseBody:   tt.body,
				})
				require.NoError(t, err)

				retrieved, err := repo.Get(ctx, tt.key, tt.requestPath)
				require.NoError(t, err)
				require.NotNil(t, retrieved)

				assert.Equal(t, tt.key, retrieved.Key)
				assert.Equal(t, tt.requestPath, retrieved.RequestPath)
				assert.Equal(t, "hash-"+tt.key, retrieved.RequestHash)
				assert.Equal(t, tt.status, retrieved.ResponseStatus)
				assert.Equal(t, tt.body, retrieved.ResponseBody)
				assert.False(t, retrieved.CreatedAt.IsZero())
			})
		}
	})

	t.Run("get missing key", func(t *testing.T) {
		repo := newRepo(t)

		result, err := repo.Get(ctx, "non-existent-key", "/banking/deposit")
		require.NoError(t, err)
		assert.Nil(t, result)
	})

	t.Run("first response wins", func(t *testing.T) {
		repo := newRepo(t)

		first := &models.IdempotencyKey{Key: "dup", RequestPath: "/banking/withdraw", ResponseStatus: 200, ResponseBody: "first"}
		second := &models.IdempotencyKey{Key: "dup", RequestPath: "/banking/withdraw", ResponseStatus: 400, ResponseBody: "second"}
		require.NoError(t, repo.Store(ctx, first))
		require.NoError(t, repo.Store(ctx, second))

		retrieved, err := repo.Get(ctx, "dup", "/banking/withdraw")
		require.NoError(t, err)
		assert.Equal(t, 200, retrieved.ResponseStatus)
		assert.Equal(t, "first", retrieved.ResponseBody)
	})

	t.Run("same key on different paths", func(t *testing.T) {
		repo := newRepo(t)

		require.NoError(t, repo.Store(ctx, &models.IdempotencyKey{Key: "same", RequestPath: "/banking/deposit", ResponseStatus: 200, ResponseBody: "deposit"}))
		require.NoError(t, repo.Store(ctx, &models.IdempotencyKey{Key: "same", RequestPath: "/banking/withdraw", ResponseStatus: 200, ResponseBody: "withdraw"}))

		deposit, err := repo.Get(ctx, "same", "/banking/deposit")
		require.NoError(t, err)
		assert.Equal(t, "deposit", deposit.ResponseBody)

		withdraw, err := repo.Get(ctx, "same", "/banking/withdraw")
		require.NoError(t, err)
		assert.Equal(t, "withdraw", withdraw.ResponseBody)
	})

	t.Run("delete older than", func(t *testing.T) {
		repo := newRepo(t)
		now := time.Now()

		require.NoError(t, repo.Store(ctx, &models.IdempotencyKey{
			Key: "old", RequestPath: "/banking/deposit", ResponseStatus: 200, ResponseBody: "old",
			CreatedAt: now.Add(-25 * time.Hour),
		}))
		require.NoError(t, repo.Store(ctx, &models.IdempotencyKey{
			Key: "recent", RequestPath: "/banking/deposit", ResponseStatus: 200, ResponseBody: "recent",
			CreatedAt: now.Add(-1 * time.Hour),
		}))

		deleted, err := repo.DeleteOlderThan(ctx, now.Add(-24*time.Hour))
		require.NoError(t, err)
		assert.Equal(t, int64(1), deleted)

		old, err := repo.Get(ctx, "old", "/banking/deposit")
		require.NoError(t, err)
		assert.Nil(t, old)

		recent, err := repo.Get(ctx, "recent", "/banking/deposit")
		require.NoError(t, err)
		assert.NotNil(t, recent)

		deleted, err = repo.DeleteOlderThan(ctx, now.Add(-365*24*time.Hour))
		require.NoError(t, err)
		assert.Zero(t, deleted)
	})
}

func TestMemoryIdempotencyRepository(t *testing.T) {
	runIdempotencyContract(t, func(*testing.T) idempotencyStore { return NewMemoryIdempotencyRepository() })
}

func TestIdempotencyRepository(t *testing.T) {
	runIdempotencyContract(t, func(t *testing.T) idempotencyStore { return NewIdempotencyRepository(setupTestDB(t)) })
}
