package repository

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/benx421/account-ledger/internal/models"
	"github.com/benx421/account-ledger/internal/money"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runStoreContract exercises behaviour every Store implementation must share.
func runStoreContract(t *testing.T, newStore func(t *testing.T) Store) {
	ctx := context.Background()

	t.Run("save and find customer accounts", func(t *testing.T) {
		store := newStore(t)
		customer := newTestCustomer("alice",
			map[string]string{"10000000001": "1000.00", "10000000002": "0.00"},
			"10000000001", "10000000002")

		err := store.WithinTx(ctx, func(ctx context.Context, _ AccountRepository, customers CustomerRepository) error {
			return customers.Save(ctx, customer)
		})
		require.NoError(t, err)

		account, err := store.Accounts().FindByAccountNumber(ctx, "10000000001")
		require.NoError(t, err)
		assert.Equal(t, customer.Accounts[0].ID, account.ID)
		assert.Equal(t, customer.ID, account.CustomerID)
		assert.Equal(t, "1000.00", account.Balance.String())
	})

	t.Run("find all preserves insertion order", func(t *testing.T) {
		store := newStore(t)
		first := newTestCustomer("bob", map[string]string{"20000000002": "5.00", "20000000001": "6.00"}, "20000000002", "20000000001")
		second := newTestCustomer("carol", map[string]string{"20000000003": "7.00"}, "20000000003")

		for _, c := range []*models.Customer{first, second} {
			require.NoError(t, store.Customers().Save(ctx, c))
		}

		customers, err := store.Customers().FindAll(ctx)
		require.NoError(t, err)
		require.Len(t, customers, 2)
		assert.Equal(t, "bob", customers[0].Name)
		assert.Equal(t, "carol", customers[1].Name)
		require.Len(t, customers[0].Accounts, 2)
		assert.Equal(t, "20000000002", customers[0].Accounts[0].AccountNumber)
		assert.Equal(t, "20000000001", customers[0].Accounts[1].AccountNumber)
		assert.Equal(t, "6.00", customers[0].Accounts[1].Balance.String())
		assert.Equal(t, "bob@example.com", string(customers[0].Email))
		assert.Equal(t, "1985-06-01", customers[0].DateOfBirth.Format("2006-01-02"))
	})

	t.Run("duplicate account number persists nothing", func(t *testing.T) {
		store := newStore(t)
		require.NoError(t, store.Customers().Save(ctx,
			newTestCustomer("dave", map[string]string{"30000000001": "1.00"}, "30000000001")))

		dup := newTestCustomer("erin", map[string]string{"30000000002": "1.00", "30000000001": "2.00"}, "30000000002", "30000000001")
		err := store.WithinTx(ctx, func(ctx context.Context, _ AccountRepository, customers CustomerRepository) error {
			return customers.Save(ctx, dup)
		})
		assert.ErrorIs(t, err, models.ErrDuplicateAccountNumber)

		customers, err := store.Customers().FindAll(ctx)
		require.NoError(t, err)
		assert.Len(t, customers, 1)

		_, err = store.Accounts().FindByAccountNumber(ctx, "30000000002")
		assert.ErrorIs(t, err, models.ErrNotFound)
	})

	t.Run("save updates balance", func(t *testing.T) {
		store := newStore(t)
		customer := newTestCustomer("frank", map[string]string{"40000000001": "100.00"}, "40000000001")
		require.NoError(t, store.Customers().Save(ctx, customer))

		err := store.WithinTx(ctx, func(ctx context.Context, accounts AccountRepository, _ CustomerRepository) error {
			account, err := accounts.FindByAccountNumberForUpdate(ctx, "40000000001")
			if err != nil {
				return err
			}
			updated := account.WithBalance(money.MustParse("150.25"))
			return accounts.Save(ctx, &updated)
		})
		require.NoError(t, err)

		account, err := store.Accounts().FindByAccountNumber(ctx, "40000000001")
		require.NoError(t, err)
		assert.Equal(t, "150.25", account.Balance.String())
	})

	t.Run("save unknown account", func(t *testing.T) {
		store := newStore(t)
		err := store.Accounts().Save(ctx, &models.Account{ID: uuid.New(), AccountNumber: "49999999999"})
		assert.ErrorIs(t, err, models.ErrNotFound)
	})

	t.Run("delete is permanent", func(t *testing.T) {
		store := newStore(t)
		customer := newTestCustomer("grace", map[string]string{"50000000001": "1.00", "50000000002": "2.00"}, "50000000001", "50000000002")
		require.NoError(t, store.Customers().Save(ctx, customer))

		require.NoError(t, store.Accounts().Delete(ctx, customer.Accounts[0].ID))

		_, err := store.Accounts().FindByAccountNumber(ctx, "50000000001")
		assert.ErrorIs(t, err, models.ErrNotFound)

		err = store.Accounts().Delete(ctx, customer.Accounts[0].ID)
		assert.ErrorIs(t, err, models.ErrNotFound)

		customers, err := store.Customers().FindAll(ctx)
		require.NoError(t, err)
		require.Len(t, customers, 1)
		require.Len(t, customers[0].Accounts, 1)
		assert.Equal(t, "50000000002", customers[0].Accounts[0].AccountNumber)
	})

	t.Run("customer without accounts is still listed", func(t *testing.T) {
		store := newStore(t)
		customer := newTestCustomer("heidi", map[string]string{"60000000001": "1.00"}, "60000000001")
		require.NoError(t, store.Customers().Save(ctx, customer))
		require.NoError(t, store.Accounts().Delete(ctx, customer.Accounts[0].ID))

		customers, err := store.Customers().FindAll(ctx)
		require.NoError(t, err)
		require.Len(t, customers, 1)
		assert.Empty(t, customers[0].Accounts)
	})

	t.Run("failed unit of work is rolled back", func(t *testing.T) {
		store := newStore(t)
		customer := newTestCustomer("ivan", map[string]string{"70000000001": "1.00"}, "70000000001")
		boom := errors.New("boom")

		err := store.WithinTx(ctx, func(ctx context.Context, accounts AccountRepository, customers CustomerRepository) error {
			if err := customers.Save(ctx, customer); err != nil {
				return err
			}
			return boom
		})
		assert.ErrorIs(t, err, boom)

		if _, isMemory := store.(*MemoryStore); isMemory {
			return // writes are applied eagerly in memory
		}
		_, err = store.Accounts().FindByAccountNumber(ctx, "70000000001")
		assert.ErrorIs(t, err, models.ErrNotFound)
	})

	t.Run("locked account serializes updates", func(t *testing.T) {
		store := newStore(t)
		customer := newTestCustomer("judy", map[string]string{"80000000001": "0.00"}, "80000000001")
		require.NoError(t, store.Customers().Save(ctx, customer))

		const workers = 10
		var wg sync.WaitGroup
		for range workers {
			wg.Add(1)
			go func() {
				defer wg.Done()
				err := store.WithinTx(ctx, func(ctx context.Context, accounts AccountRepository, _ CustomerRepository) error {
					account, err := accounts.FindByAccountNumberForUpdate(ctx, "80000000001")
					if err != nil {
						return err
					}
					time.Sleep(time.Millisecond)
					updated := account.WithBalance(account.Balance.Add(money.MustParse("1.00")))
					return accounts.Save(ctx, &updated)
				})
				assert.NoError(t, err)
			}()
		}
		wg.Wait()

		account, err := store.Accounts().FindByAccountNumber(ctx, "80000000001")
		require.NoError(t, err)
		assert.Equal(t, "10.00", account.Balance.String())
	})

	t.Run("cancelled context", func(t *testing.T) {
		store := newStore(t)
		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		err := store.WithinTx(cancelled, func(context.Context, AccountRepository, CustomerRepository) error {
			return nil
		})
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestMemoryStore_Contract(t *testing.T) {
	runStoreContract(t, func(*testing.T) Store { return NewMemoryStore() })
}

func TestPostgresStore_Contract(t *testing.T) {
	runStoreContract(t, func(t *testing.T) Store { return NewPostgresStore(setupTestDB(t)) })
}
