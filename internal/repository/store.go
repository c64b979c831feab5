// Package repository provides data access layer implementations for the ledger.
package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/benx421/account-ledger/internal/db"
	"github.com/benx421/account-ledger/internal/models"
	"github.com/google/uuid"
)

// AccountRepository defines the interface for account data access
type AccountRepository interface {
	FindByAccountNumber(ctx context.Context, accountNumber string) (*models.Account, error)
	// FindByAccountNumberForUpdate reads the account and holds an exclusive
	// lock on it until the surrounding unit of work ends.
	FindByAccountNumberForUpdate(ctx context.Context, accountNumber string) (*models.Account, error)
	Save(ctx context.Context, account *models.Account) error
	Delete(ctx context.Context, accountID uuid.UUID) error
}

// CustomerRepository defines the interface for customer data access
type CustomerRepository interface {
	// FindAll returns customers and their accounts in insertion order.
	FindAll(ctx context.Context) ([]models.Customer, error)
	// Save inserts the customer together with all of its accounts.
	Save(ctx context.Context, customer *models.Customer) error
}

// TxFunc is the body of a unit of work.
type TxFunc func(ctx context.Context, accounts AccountRepository, customers CustomerRepository) error

// Store is the persistence collaborator of the ledger service.
type Store interface {
	Accounts() AccountRepository
	Customers() CustomerRepository
	// WithinTx runs fn in a single unit of work. Nothing fn writes is
	// visible to other callers unless fn returns nil.
	WithinTx(ctx context.Context, fn TxFunc) error
	PingContext(ctx context.Context) error
}

// DBTX is satisfied by both *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// PostgresStore implements Store on top of a PostgreSQL connection pool.
type PostgresStore struct {
	db *db.DB
}

// NewPostgresStore creates a new PostgresStore
func NewPostgresStore(database *db.DB) *PostgresStore {
	return &PostgresStore{db: database}
}

// Accounts returns a repository bound to the pool, outside any transaction.
func (s *PostgresStore) Accounts() AccountRepository {
	return NewAccountRepository(s.db)
}

// Customers returns a repository bound to the pool, outside any transaction.
func (s *PostgresStore) Customers() CustomerRepository {
	return NewCustomerRepository(s.db)
}

// WithinTx runs fn inside a READ COMMITTED transaction. Row locks taken with
// FindByAccountNumberForUpdate are released on commit or rollback.
func (s *PostgresStore) WithinTx(ctx context.Context, fn TxFunc) error {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback() //nolint:errcheck // rollback error is not critical in defer
	}()

	if err := fn(ctx, NewAccountRepository(tx), NewCustomerRepository(tx)); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// PingContext checks that the database is reachable.
func (s *PostgresStore) PingContext(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

var _ Store = (*PostgresStore)(nil)
