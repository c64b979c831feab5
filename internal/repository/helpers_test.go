package repository

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	"github.com/benx421/account-ledger/internal/config"
	"github.com/benx421/account-ledger/internal/db"
	"github.com/benx421/account-ledger/internal/models"
	"github.com/benx421/account-ledger/internal/money"
	"github.com/google/uuid"
	"github.com/oapi-codegen/runtime/types"
)

// setupTestDB connects to the database described by the DB_* variables and
// migrates it. Tests using it are skipped unless TEST_DATABASE=1.
func setupTestDB(t *testing.T) *db.DB {
	t.Helper()

	if os.Getenv("TEST_DATABASE") != "1" {
		t.Skip("set TEST_DATABASE=1 to run PostgreSQL integration tests")
	}

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	sqlDB, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	database := db.NewTestDB(sqlDB)
	if err := database.PingContext(context.Background()); err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}

	if err := database.Migrate(cfg.Database.DBName); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	t.Cleanup(func() {
		if err := database.Close(); err != nil {
			t.Logf("failed to close test database: %v", err)
		}
	})

	truncateTables(t, database)
	return database
}

func truncateTables(t *testing.T, database *db.DB) {
	t.Helper()

	_, err := database.ExecContext(context.Background(),
		"TRUNCATE TABLE idempotency_keys, accounts, customers RESTART IDENTITY CASCADE")
	if err != nil {
		t.Fatalf("failed to truncate tables: %v", err)
	}
}

func newTestCustomer(name string, accounts map[string]string, order ...string) *models.Customer {
	customer := &models.Customer{
		ID:          uuid.New(),
		Name:        name,
		Email:       types.Email(name + "@example.com"),
		DateOfBirth: types.Date{Time: time.Date(1985, time.June, 1, 0, 0, 0, 0, time.UTC)},
		CreatedAt:   time.Now().UTC().Truncate(time.Microsecond),
	}
	for _, number := range order {
		customer.Accounts = append(customer.Accounts, models.Account{
			ID:            uuid.New(),
			CustomerID:    customer.ID,
			AccountNumber: number,
			Balance:       money.MustParse(accounts[number]),
			CreatedAt:     customer.CreatedAt,
		})
	}
	return customer
}
