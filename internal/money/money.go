// Package money provides a fixed-precision currency amount backed by
// shopspring/decimal. Amounts carry exactly two fractional digits and all
// comparisons are exact.
package money

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Scale is the number of fractional digits kept for every amount.
const Scale = 2

var (
	// ErrNegativeBalance is returned by Sub when the result would drop below zero.
	ErrNegativeBalance = errors.New("resulting balance would be negative")

	// ErrPrecision is returned when an amount has more than Scale fractional digits.
	ErrPrecision = errors.New("amount has more than two decimal places")

	// ErrInvalid is returned when a value cannot be parsed as a decimal amount.
	ErrInvalid = errors.New("invalid amount")
)

// Zero is the zero amount.
var Zero = Money{}

// Money is an exact currency amount with two decimal places.
type Money struct {
	amount decimal.Decimal
}

// Parse parses a decimal string such as "1000.00".
func Parse(s string) (Money, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return Money{}, fmt.Errorf("%w: %q", ErrInvalid, s)
	}
	return FromDecimal(d)
}

// MustParse is like Parse but panics on error. Intended for constants and tests.
func MustParse(s string) Money {
	m, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return m
}

// FromDecimal converts d, rejecting values that need more than two decimals.
func FromDecimal(d decimal.Decimal) (Money, error) {
	rounded := d.Round(Scale)
	if !d.Equal(rounded) {
		return Money{}, fmt.Errorf("%w: %s", ErrPrecision, d.String())
	}
	return Money{amount: rounded}, nil
}

// FromCents builds an amount from minor units.
func FromCents(cents int64) Money {
	return Money{amount: decimal.New(cents, -Scale)}
}

// Decimal returns the underlying decimal value.
func (m Money) Decimal() decimal.Decimal {
	return m.amount
}

// Cents returns the amount in minor units.
func (m Money) Cents() int64 {
	return m.amount.Shift(Scale).IntPart()
}

// Add returns m + o.
func (m Money) Add(o Money) Money {
	return Money{amount: m.amount.Add(o.amount)}
}

// Sub returns m - o, or ErrNegativeBalance if the result is below zero.
func (m Money) Sub(o Money) (Money, error) {
	result := m.amount.Sub(o.amount)
	if result.IsNegative() {
		return Money{}, fmt.Errorf("%w: %s - %s", ErrNegativeBalance, m, o)
	}
	return Money{amount: result}, nil
}

// Delta returns m - o without the non-negative check.
func (m Money) Delta(o Money) Money {
	return Money{amount: m.amount.Sub(o.amount)}
}

// PercentOf returns m multiplied by pct (0.90 for 90%), rounded half-up to cents.
func (m Money) PercentOf(pct decimal.Decimal) Money {
	return Money{amount: m.amount.Mul(pct).Round(Scale)}
}

// Cmp returns -1, 0 or +1 depending on whether m is less than, equal to or
// greater than o.
func (m Money) Cmp(o Money) int {
	return m.amount.Cmp(o.amount)
}

func (m Money) Equal(o Money) bool       { return m.amount.Equal(o.amount) }
func (m Money) LessThan(o Money) bool    { return m.amount.LessThan(o.amount) }
func (m Money) GreaterThan(o Money) bool { return m.amount.GreaterThan(o.amount) }
func (m Money) IsZero() bool             { return m.amount.IsZero() }
func (m Money) IsNegative() bool         { return m.amount.IsNegative() }
func (m Money) IsPositive() bool         { return m.amount.IsPositive() }

// String formats the amount with exactly two decimals.
func (m Money) String() string {
	return m.amount.StringFixed(Scale)
}

// MarshalJSON encodes the amount as a quoted two-decimal string.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(`"` + m.String() + `"`), nil
}

// UnmarshalJSON accepts both quoted strings and bare JSON numbers.
func (m *Money) UnmarshalJSON(data []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(data); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalid, string(data))
	}
	parsed, err := FromDecimal(d)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}

// Value implements driver.Valuer for NUMERIC columns.
func (m Money) Value() (driver.Value, error) {
	return m.String(), nil
}

// Scan implements sql.Scanner for NUMERIC columns.
func (m *Money) Scan(value any) error {
	var d decimal.Decimal
	if err := d.Scan(value); err != nil {
		return fmt.Errorf("failed to scan money: %w", err)
	}
	m.amount = d.Round(Scale)
	return nil
}
