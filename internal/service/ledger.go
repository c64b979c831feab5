// Package service implements the account ledger business rules.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/benx421/account-ledger/internal/models"
	"github.com/benx421/account-ledger/internal/money"
	"github.com/benx421/account-ledger/internal/repository"
)

// Operation names reported to the OutcomeRecorder.
const (
	OpCreateCustomer = "create_customer"
	OpListCustomers  = "list_customers"
	OpGetAccount     = "get_account"
	OpDeposit        = "deposit"
	OpWithdraw       = "withdraw"
	OpDeleteAccount  = "delete_account"
)

// OutcomeApproved is recorded for operations that succeed. Failures are
// recorded under their error code.
const OutcomeApproved = "approved"

// OutcomeRecorder receives the outcome of every ledger operation.
type OutcomeRecorder interface {
	RecordOperation(operation, outcome string)
}

type nopRecorder struct{}

func (nopRecorder) RecordOperation(string, string) {}

// LedgerService applies deposits, withdrawals and account lifecycle
// changes against a Store. It keeps no entity state of its own.
type LedgerService struct {
	store            repository.Store
	logger           *slog.Logger
	recorder         OutcomeRecorder
	now              func() time.Time
	newAccountNumber func() (string, error)
	limits           Limits
}

// NewLedgerService creates a new LedgerService. recorder may be nil.
func NewLedgerService(store repository.Store, limits Limits, logger *slog.Logger, recorder OutcomeRecorder) *LedgerService {
	if recorder == nil {
		recorder = nopRecorder{}
	}
	return &LedgerService{
		store:            store,
		limits:           limits,
		logger:           logger,
		recorder:         recorder,
		now:              time.Now,
		newAccountNumber: generateAccountNumber,
	}
}

// GetAccount returns the account with the given number
func (s *LedgerService) GetAccount(ctx context.Context, accountNumber string) (*models.Account, error) {
	account, err := s.store.Accounts().FindByAccountNumber(ctx, accountNumber)
	if err != nil {
		return nil, s.fail(OpGetAccount, lookupError(accountNumber, err))
	}

	s.recorder.RecordOperation(OpGetAccount, OutcomeApproved)
	return account, nil
}

// Deposit adds amount to the account balance
func (s *LedgerService) Deposit(ctx context.Context, accountNumber string, amount money.Money) (*models.Account, error) {
	var updated *models.Account
	err := s.store.WithinTx(ctx, func(ctx context.Context, accounts repository.AccountRepository, _ repository.CustomerRepository) error {
		account, err := s.performDeposit(ctx, accounts, accountNumber, amount)
		if err != nil {
			return err
		}
		updated = account
		return nil
	})
	if err != nil {
		return nil, s.fail(OpDeposit, err)
	}

	s.logger.Info("deposit applied",
		"account_number", accountNumber,
		"amount", amount.String(),
		"balance", updated.Balance.String(),
	)
	s.recorder.RecordOperation(OpDeposit, OutcomeApproved)
	return updated, nil
}

// performDeposit contains the core deposit business logic
func (s *LedgerService) performDeposit(
	ctx context.Context,
	accounts repository.AccountRepository,
	accountNumber string,
	amount money.Money,
) (*models.Account, error) {
	account, err := accounts.FindByAccountNumberForUpdate(ctx, accountNumber)
	if err != nil {
		return nil, lookupError(accountNumber, err)
	}

	verdict := CheckDeposit(s.limits, account.Balance, amount)
	if !verdict.Approved {
		return nil, verdict.Err()
	}

	updated := account.WithBalance(verdict.NewBalance)
	if err := accounts.Save(ctx, &updated); err != nil {
		return nil, storeError("failed to save account", err)
	}

	return &updated, nil
}

// Withdraw removes amount from the account balance
func (s *LedgerService) Withdraw(ctx context.Context, accountNumber string, amount money.Money) (*models.Account, error) {
	var updated *models.Account
	err := s.store.WithinTx(ctx, func(ctx context.Context, accounts repository.AccountRepository, _ repository.CustomerRepository) error {
		account, err := s.performWithdraw(ctx, accounts, accountNumber, amount)
		if err != nil {
			return err
		}
		updated = account
		return nil
	})
	if err != nil {
		return nil, s.fail(OpWithdraw, err)
	}

	s.logger.Info("withdrawal applied",
		"account_number", accountNumber,
		"amount", amount.String(),
		"balance", updated.Balance.String(),
	)
	s.recorder.RecordOperation(OpWithdraw, OutcomeApproved)
	return updated, nil
}

// performWithdraw contains the core withdrawal business logic
func (s *LedgerService) performWithdraw(
	ctx context.Context,
	accounts repository.AccountRepository,
	accountNumber string,
	amount money.Money,
) (*models.Account, error) {
	account, err := accounts.FindByAccountNumberForUpdate(ctx, accountNumber)
	if err != nil {
		return nil, lookupError(accountNumber, err)
	}

	verdict := CheckWithdraw(s.limits, account.Balance, amount)
	if !verdict.Approved {
		return nil, verdict.Err()
	}

	updated := account.WithBalance(verdict.NewBalance)
	if err := accounts.Save(ctx, &updated); err != nil {
		return nil, storeError("failed to save account", err)
	}

	return &updated, nil
}

// DeleteAccount permanently removes the account and returns it as it was
// just before deletion.
func (s *LedgerService) DeleteAccount(ctx context.Context, accountNumber string) (*models.Account, error) {
	var deleted *models.Account
	err := s.store.WithinTx(ctx, func(ctx context.Context, accounts repository.AccountRepository, _ repository.CustomerRepository) error {
		account, err := s.performDelete(ctx, accounts, accountNumber)
		if err != nil {
			return err
		}
		deleted = account
		return nil
	})
	if err != nil {
		return nil, s.fail(OpDeleteAccount, err)
	}

	s.logger.Info("account deleted", "account_number", accountNumber)
	s.recorder.RecordOperation(OpDeleteAccount, OutcomeApproved)
	return deleted, nil
}

func (s *LedgerService) performDelete(
	ctx context.Context,
	accounts repository.AccountRepository,
	accountNumber string,
) (*models.Account, error) {
	account, err := accounts.FindByAccountNumberForUpdate(ctx, accountNumber)
	if err != nil {
		return nil, lookupError(accountNumber, err)
	}

	if err := accounts.Delete(ctx, account.ID); err != nil {
		return nil, lookupError(accountNumber, err)
	}

	return account, nil
}

// fail classifies err, logs it and records the outcome.
func (s *LedgerService) fail(operation string, err error) error {
	var svcErr *ServiceError
	if !errors.As(err, &svcErr) {
		svcErr = storeError("store operation failed", err)
	}

	if svcErr.Code == ErrCodeStoreUnavailable {
		s.logger.Error("ledger operation failed", "operation", operation, "error", svcErr)
	} else {
		s.logger.Info("ledger operation rejected", "operation", operation, "code", svcErr.Code, "reason", svcErr.Message)
	}

	s.recorder.RecordOperation(operation, svcErr.Code)
	return svcErr
}

func lookupError(accountNumber string, err error) *ServiceError {
	if errors.Is(err, models.ErrNotFound) {
		return &ServiceError{
			Code:    ErrCodeAccountNotFound,
			Message: "account not found",
			Err:     err,
		}
	}
	return storeError("failed to load account "+accountNumber, err)
}

func storeError(message string, err error) *ServiceError {
	return &ServiceError{
		Code:    ErrCodeStoreUnavailable,
		Message: message,
		Err:     err,
	}
}
