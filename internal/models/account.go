package models

import (
	"time"

	"github.com/benx421/account-ledger/internal/money"
	"github.com/google/uuid"
)

// Account is a single customer account. AccountNumber, ID and CreatedAt are
// immutable once assigned; Balance changes only through deposit and withdraw.
type Account struct {
	CreatedAt     time.Time   `json:"createDate" db:"created_at"`
	Balance       money.Money `json:"balanceAmt" db:"balance"`
	AccountNumber string      `json:"accountNum" db:"account_number"`
	ID            uuid.UUID   `json:"acctId" db:"id"`
	CustomerID    uuid.UUID   `json:"-" db:"customer_id"`
}

// WithBalance returns a copy of the account carrying the given balance.
func (a Account) WithBalance(balance money.Money) Account {
	a.Balance = balance
	return a
}
