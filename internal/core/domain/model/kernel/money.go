package kernel

import (
	"fmt"

	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Money is a value object for the monetary amounts the engine handles:
// parcel prices, collected cash, and driver commissions. It wraps
// github.com/shopspring/decimal to keep arithmetic exact; cash totals must be
// reproducible deterministically from the record set for audit purposes.
//
// Constructors reject negative input, but subtraction may produce an amount
// below zero. The zero value is a valid zero amount, so Money can be embedded
// in aggregates without a constructor guard.
//
// Money is immutable: every operation returns a new value.
type Money struct {
	amount decimal.Decimal
}

// ZeroMoney returns a Money of amount zero.
func ZeroMoney() Money {
	return Money{amount: decimal.Zero}
}

// NewMoneyFromString parses a decimal string such as "175" or "299.50".
// Returns an error if the string is not a valid decimal or is negative.
func NewMoneyFromString(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount", err)
	}
	if d.IsNegative() {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount",
			fmt.Errorf("%s is negative", d.String()))
	}
	return Money{amount: d}, nil
}

// NewMoneyFromFloat converts a float amount, e.g. one decoded from JSON.
// Returns an error if the amount is negative.
func NewMoneyFromFloat(f float64) (Money, error) {
	d := decimal.NewFromFloat(f)
	if d.IsNegative() {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount",
			fmt.Errorf("%s is negative", d.String()))
	}
	return Money{amount: d}, nil
}

// MoneyFromDecimal wraps a raw decimal, e.g. one read from persistence.
// Returns an error if the amount is negative.
func MoneyFromDecimal(d decimal.Decimal) (Money, error) {
	if d.IsNegative() {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount",
			fmt.Errorf("%s is negative", d.String()))
	}
	return Money{amount: d}, nil
}

// Add returns the sum of two amounts.
func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount)}
}

// Sub returns the difference of two amounts. The result may be negative
// (a driver can owe less than their commission); callers that require a
// non-negative amount check IsNegative themselves.
func (m Money) Sub(other Money) Money {
	return Money{amount: m.amount.Sub(other.amount)}
}

// IsZero reports whether the amount is exactly zero.
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// IsNegative reports whether the amount is below zero.
func (m Money) IsNegative() bool {
	return m.amount.IsNegative()
}

// IsEqual compares two amounts for numeric equality regardless of exponent.
func (m Money) IsEqual(other Money) bool {
	return m.amount.Equal(other.amount)
}

// Decimal returns the underlying decimal amount.
func (m Money) Decimal() decimal.Decimal {
	return m.amount
}

// String returns the plain decimal representation, e.g. "175" or "299.5".
func (m Money) String() string {
	return m.amount.String()
}
