package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/benx421/account-ledger/internal/models"
	"github.com/benx421/account-ledger/internal/money"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/oapi-codegen/runtime/types"
)

// uniqueViolation is the PostgreSQL SQLSTATE for unique_violation.
const uniqueViolation = "23505"

// customerRepository implements CustomerRepository
type customerRepository struct {
	db DBTX
}

// NewCustomerRepository creates a new CustomerRepository
func NewCustomerRepository(database DBTX) CustomerRepository {
	return &customerRepository{db: database}
}

// FindAll returns every customer with its accounts. Customers without
// accounts (all of them deleted) are still listed.
func (r *customerRepository) FindAll(ctx context.Context) ([]models.Customer, error) {
	query := `
		SELECT c.id, c.name, c.email, c.date_of_birth, c.created_at,
		       a.id, a.account_number, a.balance, a.created_at
		FROM customers c
		LEFT JOIN accounts a ON a.customer_id = c.id
		ORDER BY c.seq, a.seq
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query customers: %w", err)
	}
	defer rows.Close()

	customers := []models.Customer{}
	for rows.Next() {
		var (
			customer      models.Customer
			email         string
			dob           time.Time
			accountID     uuid.NullUUID
			accountNumber sql.NullString
			balance       sql.NullString
			accountTime   sql.NullTime
		)

		if err := rows.Scan(
			&customer.ID,
			&customer.Name,
			&email,
			&dob,
			&customer.CreatedAt,
			&accountID,
			&accountNumber,
			&balance,
			&accountTime,
		); err != nil {
			return nil, fmt.Errorf("failed to scan customer row: %w", err)
		}

		if n := len(customers); n == 0 || customers[n-1].ID != customer.ID {
			customer.Email = types.Email(email)
			customer.DateOfBirth = types.Date{Time: dob}
			customer.Accounts = []models.Account{}
			customers = append(customers, customer)
		}

		if !accountID.Valid {
			continue
		}

		amount, err := money.Parse(balance.String)
		if err != nil {
			return nil, fmt.Errorf("failed to parse balance of account %s: %w", accountNumber.String, err)
		}

		last := &customers[len(customers)-1]
		last.Accounts = append(last.Accounts, models.Account{
			ID:            accountID.UUID,
			CustomerID:    last.ID,
			AccountNumber: accountNumber.String,
			Balance:       amount,
			CreatedAt:     accountTime.Time,
		})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating customers: %w", err)
	}

	return customers, nil
}

// Save inserts the customer and its accounts. It must run inside a
// transaction for the insert to be atomic.
func (r *customerRepository) Save(ctx context.Context, customer *models.Customer) error {
	query := `
		INSERT INTO customers (id, name, email, date_of_birth, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.ExecContext(ctx, query,
		customer.ID,
		customer.Name,
		string(customer.Email),
		customer.DateOfBirth.Time,
		customer.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert customer: %w", err)
	}

	for i := range customer.Accounts {
		if err := r.insertAccount(ctx, &customer.Accounts[i]); err != nil {
			return err
		}
	}

	return nil
}

func (r *customerRepository) insertAccount(ctx context.Context, account *models.Account) error {
	query := `
		INSERT INTO accounts (id, customer_id, account_number, balance, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.db.ExecContext(ctx, query,
		account.ID,
		account.CustomerID,
		account.AccountNumber,
		account.Balance,
		account.CreatedAt,
	)

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
		return fmt.Errorf("account number %s: %w", account.AccountNumber, models.ErrDuplicateAccountNumber)
	}
	if err != nil {
		return fmt.Errorf("failed to insert account: %w", err)
	}

	return nil
}
