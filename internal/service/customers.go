package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/benx421/account-ledger/internal/models"
	"github.com/benx421/account-ledger/internal/repository"
	"github.com/google/uuid"
)

const (
	accountNumberDigits = 11

	// maxCreateAttempts bounds retries after an account number collision.
	maxCreateAttempts = 3
)

// CreateCustomer validates the customer and every account, then stores them
// in a single unit of work. Identifiers, account numbers and creation
// timestamps supplied by the caller are ignored.
func (s *LedgerService) CreateCustomer(ctx context.Context, customer models.Customer) (*models.Customer, error) {
	if err := s.validateCustomer(customer); err != nil {
		return nil, s.fail(OpCreateCustomer, err)
	}

	for attempt := 1; ; attempt++ {
		candidate, err := s.buildCustomer(customer)
		if err != nil {
			return nil, s.fail(OpCreateCustomer, err)
		}

		err = s.store.WithinTx(ctx, func(ctx context.Context, _ repository.AccountRepository, customers repository.CustomerRepository) error {
			return customers.Save(ctx, candidate)
		})
		if err == nil {
			s.logger.Info("customer created",
				"customer_id", candidate.ID,
				"accounts", len(candidate.Accounts),
			)
			s.recorder.RecordOperation(OpCreateCustomer, OutcomeApproved)
			return candidate, nil
		}

		if !errors.Is(err, models.ErrDuplicateAccountNumber) || attempt >= maxCreateAttempts {
			return nil, s.fail(OpCreateCustomer, storeError("failed to save customer", err))
		}

		s.logger.Warn("account number collision, retrying", "attempt", attempt, "error", err)
	}
}

// ListCustomers returns every customer with its accounts.
func (s *LedgerService) ListCustomers(ctx context.Context) ([]models.Customer, error) {
	customers, err := s.store.Customers().FindAll(ctx)
	if err != nil {
		return nil, s.fail(OpListCustomers, storeError("failed to list customers", err))
	}

	s.recorder.RecordOperation(OpListCustomers, OutcomeApproved)
	return customers, nil
}

func (s *LedgerService) validateCustomer(customer models.Customer) error {
	if strings.TrimSpace(customer.Name) == "" {
		return &ServiceError{Code: ErrCodeInvalidCustomer, Message: "Customer name is required."}
	}
	if _, err := customer.Email.MarshalJSON(); err != nil {
		return &ServiceError{Code: ErrCodeInvalidCustomer, Message: "Customer email is invalid.", Err: err}
	}
	if customer.DateOfBirth.IsZero() {
		return &ServiceError{Code: ErrCodeInvalidCustomer, Message: "Customer date of birth is required."}
	}
	if len(customer.Accounts) == 0 {
		return &ServiceError{Code: ErrCodeInvalidCustomer, Message: "Customer must have at least one account."}
	}

	for _, account := range customer.Accounts {
		if err := CheckOpeningBalance(s.limits, account.Balance).Err(); err != nil {
			return err
		}
	}
	return nil
}

// buildCustomer assigns identifiers to a copy of customer.
func (s *LedgerService) buildCustomer(customer models.Customer) (*models.Customer, error) {
	created := customer.Clone()
	created.ID = uuid.New()
	created.CreatedAt = s.now().UTC()

	seen := make(map[string]struct{}, len(created.Accounts))
	for i := range created.Accounts {
		number, err := s.uniqueAccountNumber(seen)
		if err != nil {
			return nil, err
		}

		created.Accounts[i] = models.Account{
			ID:            uuid.New(),
			CustomerID:    created.ID,
			AccountNumber: number,
			Balance:       created.Accounts[i].Balance,
			CreatedAt:     created.CreatedAt,
		}
	}
	return &created, nil
}

func (s *LedgerService) uniqueAccountNumber(seen map[string]struct{}) (string, error) {
	for {
		number, err := s.newAccountNumber()
		if err != nil {
			return "", storeError("failed to generate account number", err)
		}
		if _, dup := seen[number]; !dup {
			seen[number] = struct{}{}
			return number, nil
		}
	}
}

// generateAccountNumber returns a random 11-digit number without a leading zero.
func generateAccountNumber() (string, error) {
	low := new(big.Int).Exp(big.NewInt(10), big.NewInt(accountNumberDigits-1), nil)
	span := new(big.Int).Sub(new(big.Int).Mul(low, big.NewInt(10)), low)

	n, err := rand.Int(rand.Reader, span)
	if err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return n.Add(n, low).String(), nil
}
