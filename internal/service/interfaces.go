package service

import (
	"context"

	"github.com/benx421/account-ledger/internal/models"
	"github.com/benx421/account-ledger/internal/money"
)

// HealthChecker validates system health.
type HealthChecker interface {
	PingContext(ctx context.Context) error
}

// CustomerRegistry handles customer onboarding and listing
type CustomerRegistry interface {
	CreateCustomer(ctx context.Context, customer models.Customer) (*models.Customer, error)
	ListCustomers(ctx context.Context) ([]models.Customer, error)
}

// AccountLedger handles balance changes and account lifecycle
type AccountLedger interface {
	GetAccount(ctx context.Context, accountNumber string) (*models.Account, error)
	Deposit(ctx context.Context, accountNumber string, amount money.Money) (*models.Account, error)
	Withdraw(ctx context.Context, accountNumber string, amount money.Money) (*models.Account, error)
	DeleteAccount(ctx context.Context, accountNumber string) (*models.Account, error)
}

// Ensure concrete types implement interfaces
var (
	_ CustomerRegistry = (*LedgerService)(nil)
	_ AccountLedger    = (*LedgerService)(nil)
)
