package repository

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChaosStore_AlwaysFails(t *testing.T) {
	ctx := context.Background()
	inner := NewMemoryStore()
	require.NoError(t, inner.Customers().Save(ctx,
		newTestCustomer("kim", map[string]string{"90000000001": "10.00"}, "90000000001")))

	store := NewChaosStore(inner, ChaosConfig{FailureRate: 1}, slog.New(slog.DiscardHandler))

	_, err := store.Accounts().FindByAccountNumber(ctx, "90000000001")
	assert.ErrorIs(t, err, ErrInjectedFailure)

	_, err = store.Customers().FindAll(ctx)
	assert.ErrorIs(t, err, ErrInjectedFailure)

	called := false
	err = store.WithinTx(ctx, func(context.Context, AccountRepository, CustomerRepository) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, ErrInjectedFailure)
	assert.False(t, called)

	assert.NoError(t, store.PingContext(ctx), "health checks are never disrupted")
}

func TestChaosStore_Disabled(t *testing.T) {
	ctx := context.Background()
	store := NewChaosStore(NewMemoryStore(), ChaosConfig{}, slog.New(slog.DiscardHandler))

	customer := newTestCustomer("lee", map[string]string{"90000000002": "10.00"}, "90000000002")
	err := store.WithinTx(ctx, func(ctx context.Context, _ AccountRepository, customers CustomerRepository) error {
		return customers.Save(ctx, customer)
	})
	require.NoError(t, err)

	account, err := store.Accounts().FindByAccountNumber(ctx, "90000000002")
	require.NoError(t, err)
	assert.Equal(t, "10.00", account.Balance.String())
}

func TestChaosStore_Latency(t *testing.T) {
	store := NewChaosStore(NewMemoryStore(), ChaosConfig{MinLatencyMS: 20, MaxLatencyMS: 20}, slog.New(slog.DiscardHandler))

	start := time.Now()
	_, err := store.Customers().FindAll(context.Background())
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
}

func TestChaosStore_LatencyHonoursContext(t *testing.T) {
	store := NewChaosStore(NewMemoryStore(), ChaosConfig{MinLatencyMS: 5000, MaxLatencyMS: 5000}, slog.New(slog.DiscardHandler))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := store.Customers().FindAll(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestChaosConfig_Enabled(t *testing.T) {
	assert.False(t, ChaosConfig{}.Enabled())
	assert.True(t, ChaosConfig{FailureRate: 0.1}.Enabled())
	assert.True(t, ChaosConfig{MaxLatencyMS: 5}.Enabled())
}

func TestShouldInjectFailure(t *testing.T) {
	assert.False(t, shouldInjectFailure(0))
	assert.False(t, shouldInjectFailure(-1))
	assert.True(t, shouldInjectFailure(1))
}
