package domain

import (
	"errors"
	"fmt"
	"math"
)

// ErrCurrencyMismatch is returned when arithmetic is attempted on two Money
// values with different currency codes.
var ErrCurrencyMismatch = errors.New("domain: currency mismatch")

// Money is a monetary amount expressed as a whole number of minor units
// (e.g. kopecks, cents) in a single currency.
type Money struct {
	Amount   int64
	Currency string
}

// NewMoney creates a Money value from a minor-unit amount and a currency code.
func NewMoney(amount int64, currency string) Money {
	return Money{Amount: amount, Currency: currency}
}

// Zero returns a zero amount in the same currency.
func (m Money) Zero() Money {
	return Money{Amount: 0, Currency: m.Currency}
}

// IsZero reports whether the amount is zero.
func (m Money) IsZero() bool {
	return m.Amount == 0
}

// Add returns m + other. Fails when the currencies differ.
func (m Money) Add(other Money) (Money, error) {
	if m.Currency != other.Currency {
		return Money{}, fmt.Errorf("%w: %s vs %s", ErrCurrencyMismatch, m.Currency, other.Currency)
	}
	return Money{Amount: m.Amount + other.Amount, Currency: m.Currency}, nil
}

// Sub returns m - other. Fails when the currencies differ.
func (m Money) Sub(other Money) (Money, error) {
	if m.Currency != other.Currency {
		return Money{}, fmt.Errorf("%w: %s vs %s", ErrCurrencyMismatch, m.Currency, other.Currency)
	}
	return Money{Amount: m.Amount - other.Amount, Currency: m.Currency}, nil
}

// MulRatio returns m scaled by ratio, rounded half-up to the minor unit.
// Rounding happens here so composed pricing strategies never carry a
// fractional remainder from one step to the next.
func (m Money) MulRatio(ratio float64) Money {
	return Money{Amount: roundHalfUp(float64(m.Amount) * ratio), Currency: m.Currency}
}

// Percent returns percent% of m, rounded half-up.
func (m Money) Percent(percent float64) Money {
	return m.MulRatio(percent / 100)
}

func (m Money) String() string {
	return fmt.Sprintf("%d %s", m.Amount, m.Currency)
}

// roundHalfUp rounds to the nearest integer, halves towards +Inf.
func roundHalfUp(v float64) int64 {
	return int64(math.Floor(v + 0.5))
}
