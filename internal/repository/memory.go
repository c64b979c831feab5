package repository

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/benx421/account-ledger/internal/models"
	"github.com/google/uuid"
)

type memoryCustomer struct {
	customer       models.Customer
	accountNumbers []string
}

// MemoryStore is a process-local Store. Row locks are emulated with one
// mutex per account number, held until the unit of work ends.
type MemoryStore struct {
	accounts  map[string]models.Account
	locks     map[string]*sync.Mutex
	customers []*memoryCustomer
	mu        sync.RWMutex
	locksMu   sync.Mutex
}

// NewMemoryStore creates an empty MemoryStore
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		accounts: make(map[string]models.Account),
		locks:    make(map[string]*sync.Mutex),
	}
}

// Accounts returns a repository outside any unit of work. Its
// FindByAccountNumberForUpdate does not lock because there is no unit of
// work to release the lock.
func (s *MemoryStore) Accounts() AccountRepository {
	return &memoryAccounts{store: s}
}

// Customers returns the customer repository.
func (s *MemoryStore) Customers() CustomerRepository {
	return &memoryCustomers{store: s}
}

// WithinTx runs fn and releases every account lock it took. Writes are
// applied immediately, so fn must validate before it saves.
func (s *MemoryStore) WithinTx(ctx context.Context, fn TxFunc) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("failed to start unit of work: %w", err)
	}

	accounts := &memoryAccounts{store: s, held: make(map[string]*sync.Mutex)}
	defer accounts.release()

	return fn(ctx, accounts, &memoryCustomers{store: s})
}

// PingContext always succeeds unless ctx is done.
func (s *MemoryStore) PingContext(ctx context.Context) error {
	return ctx.Err()
}

func (s *MemoryStore) lock(accountNumber string) *sync.Mutex {
	s.locksMu.Lock()
	l, ok := s.locks[accountNumber]
	if !ok {
		l = &sync.Mutex{}
		s.locks[accountNumber] = l
	}
	s.locksMu.Unlock()

	l.Lock()
	return l
}

func (s *MemoryStore) find(accountNumber string) (*models.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	account, ok := s.accounts[accountNumber]
	if !ok {
		return nil, fmt.Errorf("account %s: %w", accountNumber, models.ErrNotFound)
	}
	return &account, nil
}

var _ Store = (*MemoryStore)(nil)

type memoryAccounts struct {
	store *MemoryStore
	held  map[string]*sync.Mutex
}

func (r *memoryAccounts) FindByAccountNumber(ctx context.Context, accountNumber string) (*models.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return r.store.find(accountNumber)
}

func (r *memoryAccounts) FindByAccountNumberForUpdate(ctx context.Context, accountNumber string) (*models.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.held != nil {
		if _, ok := r.held[accountNumber]; !ok {
			r.held[accountNumber] = r.store.lock(accountNumber)
		}
	}
	return r.store.find(accountNumber)
}

func (r *memoryAccounts) Save(ctx context.Context, account *models.Account) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	current, ok := r.store.accounts[account.AccountNumber]
	if !ok || current.ID != account.ID {
		return fmt.Errorf("account: %w", models.ErrNotFound)
	}
	current.Balance = account.Balance
	r.store.accounts[account.AccountNumber] = current
	return nil
}

func (r *memoryAccounts) Delete(ctx context.Context, accountID uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for number, account := range r.store.accounts {
		if account.ID != accountID {
			continue
		}
		delete(r.store.accounts, number)
		for _, c := range r.store.customers {
			if c.customer.ID == account.CustomerID {
				c.accountNumbers = slices.DeleteFunc(c.accountNumbers, func(n string) bool { return n == number })
			}
		}
		return nil
	}
	return fmt.Errorf("account: %w", models.ErrNotFound)
}

func (r *memoryAccounts) release() {
	for _, l := range r.held {
		l.Unlock()
	}
	clear(r.held)
}

type memoryCustomers struct {
	store *MemoryStore
}

func (r *memoryCustomers) FindAll(ctx context.Context) ([]models.Customer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	customers := make([]models.Customer, 0, len(r.store.customers))
	for _, c := range r.store.customers {
		customer := c.customer
		customer.Accounts = make([]models.Account, 0, len(c.accountNumbers))
		for _, number := range c.accountNumbers {
			customer.Accounts = append(customer.Accounts, r.store.accounts[number])
		}
		customers = append(customers, customer)
	}
	return customers, nil
}

// Save inserts the customer and its accounts, or nothing when any account
// number is already taken.
func (r *memoryCustomers) Save(ctx context.Context, customer *models.Customer) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	numbers := make([]string, 0, len(customer.Accounts))
	for _, account := range customer.Accounts {
		if _, taken := r.store.accounts[account.AccountNumber]; taken || slices.Contains(numbers, account.AccountNumber) {
			return fmt.Errorf("account number %s: %w", account.AccountNumber, models.ErrDuplicateAccountNumber)
		}
		numbers = append(numbers, account.AccountNumber)
	}

	for _, account := range customer.Accounts {
		r.store.accounts[account.AccountNumber] = account
	}

	stored := customer.Clone()
	stored.Accounts = nil
	r.store.customers = append(r.store.customers, &memoryCustomer{customer: stored, accountNumbers: numbers})
	return nil
}
