package service

import (
	"fmt"

	"github.com/benx421/account-ledger/internal/money"
	"github.com/shopspring/decimal"
)

// Limits are the thresholds the validation rules compare against.
type Limits struct {
	DepositLimit       money.Money
	WithdrawFloor      money.Money
	WithdrawPercentCap decimal.Decimal
}

// DefaultLimits returns the standard thresholds: deposits below $10000,
// balances kept at or above $100 and at most 90% withdrawn at once.
func DefaultLimits() Limits {
	return Limits{
		DepositLimit:       money.MustParse("10000.00"),
		WithdrawFloor:      money.MustParse("100.00"),
		WithdrawPercentCap: decimal.RequireFromString("0.90"),
	}
}

// NewLimits builds Limits from raw decimals and validates them.
func NewLimits(depositLimit, withdrawFloor, withdrawPercentCap decimal.Decimal) (Limits, error) {
	deposit, err := money.FromDecimal(depositLimit)
	if err != nil {
		return Limits{}, fmt.Errorf("deposit limit: %w", err)
	}
	floor, err := money.FromDecimal(withdrawFloor)
	if err != nil {
		return Limits{}, fmt.Errorf("withdraw floor: %w", err)
	}

	limits := Limits{
		DepositLimit:       deposit,
		WithdrawFloor:      floor,
		WithdrawPercentCap: withdrawPercentCap,
	}
	if err := limits.Validate(); err != nil {
		return Limits{}, err
	}
	return limits, nil
}

// Validate checks that the thresholds are usable.
func (l Limits) Validate() error {
	if !l.DepositLimit.IsPositive() {
		return fmt.Errorf("deposit limit must be positive, got %s", l.DepositLimit)
	}
	if l.WithdrawFloor.IsNegative() {
		return fmt.Errorf("withdraw floor cannot be negative, got %s", l.WithdrawFloor)
	}
	if !l.WithdrawPercentCap.IsPositive() || l.WithdrawPercentCap.GreaterThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("withdraw percent cap must be in (0, 1], got %s", l.WithdrawPercentCap)
	}
	return nil
}

// Verdict is the outcome of a validation rule.
type Verdict struct {
	NewBalance money.Money
	Code       string
	Message    string
	Approved   bool
}

// Err returns nil for an approved verdict and a *ServiceError otherwise.
func (v Verdict) Err() error {
	if v.Approved {
		return nil
	}
	return &ServiceError{Code: v.Code, Message: v.Message}
}

func approve(newBalance money.Money) Verdict {
	return Verdict{Approved: true, NewBalance: newBalance}
}

func reject(code, message string) Verdict {
	return Verdict{Code: code, Message: message}
}

func (l Limits) depositLimitMessage() string {
	return fmt.Sprintf("Deposit amount should be less than $%s per transaction.", l.DepositLimit.Decimal().String())
}

// CheckAmount rejects amounts that are zero or negative.
func CheckAmount(amount money.Money) Verdict {
	if !amount.IsPositive() {
		return reject(ErrCodeInvalidAmount, "Amount should be greater than zero.")
	}
	return approve(amount)
}

// CheckOpeningBalance validates the initial balance of a new account.
func CheckOpeningBalance(l Limits, amount money.Money) Verdict {
	if amount.IsNegative() {
		return reject(ErrCodeInvalidAmount, "Opening balance cannot be negative.")
	}
	if !amount.LessThan(l.DepositLimit) {
		return reject(ErrCodeDepositLimitExceeded, l.depositLimitMessage())
	}
	return approve(amount)
}

// CheckDeposit validates a deposit of amount onto balance.
func CheckDeposit(l Limits, balance, amount money.Money) Verdict {
	if v := CheckAmount(amount); !v.Approved {
		return v
	}
	if !amount.LessThan(l.DepositLimit) {
		return reject(ErrCodeDepositLimitExceeded, l.depositLimitMessage())
	}
	return approve(balance.Add(amount))
}

// CheckWithdrawFloor rejects a withdrawal that would leave the balance
// below the floor.
func CheckWithdrawFloor(l Limits, balance, amount money.Money) Verdict {
	if balance.Delta(amount).LessThan(l.WithdrawFloor) {
		return reject(ErrCodeInsufficientBalanceFloor, fmt.Sprintf(
			"Account balance should not be less than $%s. Please withdraw lesser amount.",
			l.WithdrawFloor.Decimal().String(),
		))
	}
	return approve(balance.Delta(amount))
}

// CheckWithdrawPercentage rejects a withdrawal larger than the allowed
// share of the balance.
func CheckWithdrawPercentage(l Limits, balance, amount money.Money) Verdict {
	if amount.GreaterThan(balance.PercentOf(l.WithdrawPercentCap)) {
		return reject(ErrCodeWithdrawPercentageExceeded, fmt.Sprintf(
			"Cannot withdraw more than %s%% of balance amount from the account. Please withdraw lesser amount.",
			l.WithdrawPercentCap.Shift(2).String(),
		))
	}
	return approve(balance.Delta(amount))
}

// CheckWithdraw applies the amount, floor and percentage rules in that
// order and reports the first failure.
func CheckWithdraw(l Limits, balance, amount money.Money) Verdict {
	if v := CheckAmount(amount); !v.Approved {
		return v
	}
	if v := CheckWithdrawFloor(l, balance, amount); !v.Approved {
		return v
	}
	if v := CheckWithdrawPercentage(l, balance, amount); !v.Approved {
		return v
	}

	newBalance, err := balance.Sub(amount)
	if err != nil {
		return reject(ErrCodeInsufficientBalanceFloor, err.Error())
	}
	return approve(newBalance)
}
