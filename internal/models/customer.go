package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/oapi-codegen/runtime/types"
)

// Customer owns an ordered list of accounts. Account order is the order in
// which the accounts were created.
type Customer struct {
	CreatedAt   time.Time   `json:"-" db:"created_at"`
	Email       types.Email `json:"email" db:"email"`
	Name        string      `json:"custName" db:"name"`
	DateOfBirth types.Date  `json:"dob" db:"date_of_birth"`
	Accounts    []Account   `json:"accounts"`
	ID          uuid.UUID   `json:"custId" db:"id"`
}

// Clone returns a deep copy so callers cannot alias the account slice.
func (c Customer) Clone() Customer {
	c.Accounts = append([]Account(nil), c.Accounts...)
	return c
}
