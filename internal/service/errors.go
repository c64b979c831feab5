package service

import (
	"errors"
	"fmt"
)

// ServiceError represents a business logic error with a code
type ServiceError struct {
	Err     error
	Message string
	Code    string
}

func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for errors.Is/As support
func (e *ServiceError) Unwrap() error {
	return e.Err
}

// Error codes
const (
	ErrCodeInvalidAmount              = "invalid_amount"
	ErrCodeInvalidCustomer            = "invalid_customer"
	ErrCodeDepositLimitExceeded       = "deposit_limit_exceeded"
	ErrCodeInsufficientBalanceFloor   = "insufficient_balance_floor"
	ErrCodeWithdrawPercentageExceeded = "withdraw_percentage_exceeded"
	ErrCodeAccountNotFound            = "account_not_found"
	ErrCodeStoreUnavailable           = "store_unavailable"
)

// ErrorCode returns the code of the first ServiceError in err's chain, or
// the empty string.
func ErrorCode(err error) string {
	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		return svcErr.Code
	}
	return ""
}

// IsValidationError reports whether err is a rule rejection rather than a
// lookup or infrastructure failure.
func IsValidationError(err error) bool {
	switch ErrorCode(err) {
	case ErrCodeInvalidAmount,
		ErrCodeInvalidCustomer,
		ErrCodeDepositLimitExceeded,
		ErrCodeInsufficientBalanceFloor,
		ErrCodeWithdrawPercentageExceeded:
		return true
	}
	return false
}
