package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/benx421/account-ledger/internal/models"
	"github.com/google/uuid"
)

// accountRepository implements AccountRepository
type accountRepository struct {
	db DBTX
}

// NewAccountRepository creates a new AccountRepository
func NewAccountRepository(database DBTX) AccountRepository {
	return &accountRepository{db: database}
}

const selectAccountColumns = `
		SELECT id, customer_id, account_number, balance, created_at
		FROM accounts
		WHERE account_number = $1
`

// FindByAccountNumber retrieves an account by its account number
func (r *accountRepository) FindByAccountNumber(ctx context.Context, accountNumber string) (*models.Account, error) {
	return r.findOne(ctx, selectAccountColumns, accountNumber)
}

// FindByAccountNumberForUpdate retrieves an account and locks its row
func (r *accountRepository) FindByAccountNumberForUpdate(ctx context.Context, accountNumber string) (*models.Account, error) {
	return r.findOne(ctx, selectAccountColumns+" FOR UPDATE", accountNumber)
}

func (r *accountRepository) findOne(ctx context.Context, query, accountNumber string) (*models.Account, error) {
	var account models.Account
	err := r.db.QueryRowContext(ctx, query, accountNumber).Scan(
		&account.ID,
		&account.CustomerID,
		&account.AccountNumber,
		&account.Balance,
		&account.CreatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("account %s: %w", accountNumber, models.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find account by account number: %w", err)
	}

	return &account, nil
}

// Save persists the account balance
func (r *accountRepository) Save(ctx context.Context, account *models.Account) error {
	query := `
		UPDATE accounts
		SET balance = $2,
		    updated_at = NOW()
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query, account.ID, account.Balance)
	if err != nil {
		return fmt.Errorf("failed to save account: %w", err)
	}

	return expectOneRow(result, "account")
}

// Delete removes the account permanently
func (r *accountRepository) Delete(ctx context.Context, accountID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM accounts WHERE id = $1`, accountID)
	if err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}

	return expectOneRow(result, "account")
}

func expectOneRow(result sql.Result, entity string) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s: %w", entity, models.ErrNotFound)
	}
	return nil
}
