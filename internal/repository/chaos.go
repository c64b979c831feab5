package repository

import (
	"context"
	"crypto/rand"
	"errors"
	"log/slog"
	"math/big"
	"time"

	"github.com/benx421/account-ledger/internal/models"
	"github.com/google/uuid"
)

// ErrInjectedFailure is returned by ChaosStore when it decides to fail a call.
var ErrInjectedFailure = errors.New("injected store failure")

// ChaosConfig controls failure and latency injection.
type ChaosConfig struct {
	FailureRate  float64
	MinLatencyMS int
	MaxLatencyMS int
}

// Enabled reports whether the configuration injects anything at all.
func (c ChaosConfig) Enabled() bool {
	return c.FailureRate > 0 || c.MinLatencyMS > 0 || c.MaxLatencyMS > 0
}

// ChaosStore decorates a Store, injecting latency and random failures into
// repository calls. PingContext is never disrupted.
type ChaosStore struct {
	next   Store
	logger *slog.Logger
	cfg    ChaosConfig
}

// NewChaosStore wraps next with failure injection
func NewChaosStore(next Store, cfg ChaosConfig, logger *slog.Logger) *ChaosStore {
	return &ChaosStore{next: next, cfg: cfg, logger: logger}
}

func (s *ChaosStore) Accounts() AccountRepository {
	return &chaosAccounts{next: s.next.Accounts(), chaos: s}
}

func (s *ChaosStore) Customers() CustomerRepository {
	return &chaosCustomers{next: s.next.Customers(), chaos: s}
}

func (s *ChaosStore) WithinTx(ctx context.Context, fn TxFunc) error {
	if err := s.disrupt(ctx, "WithinTx"); err != nil {
		return err
	}
	return s.next.WithinTx(ctx, func(ctx context.Context, accounts AccountRepository, customers CustomerRepository) error {
		return fn(ctx, &chaosAccounts{next: accounts, chaos: s}, &chaosCustomers{next: customers, chaos: s})
	})
}

func (s *ChaosStore) PingContext(ctx context.Context) error {
	return s.next.PingContext(ctx)
}

func (s *ChaosStore) disrupt(ctx context.Context, call string) error {
	if err := injectLatency(ctx, s.cfg.MinLatencyMS, s.cfg.MaxLatencyMS); err != nil {
		return err
	}

	if shouldInjectFailure(s.cfg.FailureRate) {
		s.logger.Debug("injecting store failure", "call", call)
		return ErrInjectedFailure
	}
	return nil
}

var _ Store = (*ChaosStore)(nil)

type chaosAccounts struct {
	next  AccountRepository
	chaos *ChaosStore
}

func (r *chaosAccounts) FindByAccountNumber(ctx context.Context, accountNumber string) (*models.Account, error) {
	if err := r.chaos.disrupt(ctx, "FindByAccountNumber"); err != nil {
		return nil, err
	}
	return r.next.FindByAccountNumber(ctx, accountNumber)
}

func (r *chaosAccounts) FindByAccountNumberForUpdate(ctx context.Context, accountNumber string) (*models.Account, error) {
	if err := r.chaos.disrupt(ctx, "FindByAccountNumberForUpdate"); err != nil {
		return nil, err
	}
	return r.next.FindByAccountNumberForUpdate(ctx, accountNumber)
}

func (r *chaosAccounts) Save(ctx context.Context, account *models.Account) error {
	if err := r.chaos.disrupt(ctx, "SaveAccount"); err != nil {
		return err
	}
	return r.next.Save(ctx, account)
}

func (r *chaosAccounts) Delete(ctx context.Context, accountID uuid.UUID) error {
	if err := r.chaos.disrupt(ctx, "DeleteAccount"); err != nil {
		return err
	}
	return r.next.Delete(ctx, accountID)
}

type chaosCustomers struct {
	next  CustomerRepository
	chaos *ChaosStore
}

func (r *chaosCustomers) FindAll(ctx context.Context) ([]models.Customer, error) {
	if err := r.chaos.disrupt(ctx, "FindAllCustomers"); err != nil {
		return nil, err
	}
	return r.next.FindAll(ctx)
}

func (r *chaosCustomers) Save(ctx context.Context, customer *models.Customer) error {
	if err := r.chaos.disrupt(ctx, "SaveCustomer"); err != nil {
		return err
	}
	return r.next.Save(ctx, customer)
}

func injectLatency(ctx context.Context, minMS, maxMS int) error {
	if minMS <= 0 && maxMS <= 0 {
		return nil
	}

	sleepMS := minMS
	if rangeMS := maxMS - minMS; rangeMS > 0 {
		if offset, err := rand.Int(rand.Reader, big.NewInt(int64(rangeMS))); err == nil {
			sleepMS += int(offset.Int64())
		}
	}

	timer := time.NewTimer(time.Duration(sleepMS) * time.Millisecond)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func shouldInjectFailure(failureRate float64) bool {
	if failureRate <= 0 {
		return false
	}
	if failureRate >= 1 {
		return true
	}

	const precision = 1000000
	randomNum, err := rand.Int(rand.Reader, big.NewInt(precision))
	if err != nil {
		return false
	}

	threshold := int64(failureRate * precision)
	return randomNum.Int64() < threshold
}
