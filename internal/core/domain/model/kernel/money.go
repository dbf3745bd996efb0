package kernel

import (
	"errors"

	"storefront/internal/pkg/errs"
	"storefront/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// ErrMoneyIsNotConstructed is returned when a Money value was not built by a constructor.
var ErrMoneyIsNotConstructed = errors.New("Money must be created via NewMoney or ZeroMoney")

// Money is a non-negative monetary amount. Arithmetic is exact; amounts are never
// rounded implicitly.
type Money struct { //nolint:recvcheck // value object
	amount decimal.Decimal
	guard  guard.ConstructorGuard
}

// NewMoney validates that amount is not negative.
func NewMoney(amount decimal.Decimal) (Money, error) {
	if amount.IsNegative() {
		return Money{}, errs.NewValueIsOutOfRangeError("amount", amount.String(), 0, "unbounded")
	}
	return Money{amount: amount, guard: guard.NewConstructorGuard()}, nil
}

// MoneyFromFloat converts a JSON number into Money.
func MoneyFromFloat(amount float64) (Money, error) {
	return NewMoney(decimal.NewFromFloat(amount))
}

// MustMoney parses a decimal string and panics on failure. Intended for constants and tests.
func MustMoney(amount string) Money {
	m, err := NewMoney(decimal.RequireFromString(amount))
	if err != nil {
		panic(err)
	}
	return m
}

// ZeroMoney returns a constructed zero amount.
func ZeroMoney() Money {
	return Money{amount: decimal.Zero, guard: guard.NewConstructorGuard()}
}

// Validate rejects a zero value Money that was not built by a constructor.
func (m Money) Validate() error {
	return m.guard.Validate(ErrMoneyIsNotConstructed)
}

// Amount returns the underlying decimal.
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// IsZero reports m == 0.
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// IsEqual compares amounts, ignoring their scale.
func (m Money) IsEqual(other Money) bool {
	return m.amount.Equal(other.amount)
}

// LessThan reports m < other.
func (m Money) LessThan(other Money) bool {
	return m.amount.LessThan(other.amount)
}

// Add returns m + other.
func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount), guard: guard.NewConstructorGuard()}
}

// Sub fails instead of producing a negative amount.
func (m Money) Sub(other Money) (Money, error) {
	return NewMoney(m.amount.Sub(other.amount))
}

// MulInt multiplies by a non-negative integer factor, e.g. a line quantity.
func (m Money) MulInt(n int) (Money, error) {
	return NewMoney(m.amount.Mul(decimal.NewFromInt(int64(n))))
}

// Percent returns rate × m, where rate is a fraction such as 0.10.
func (m Money) Percent(rate decimal.Decimal) (Money, error) {
	return NewMoney(m.amount.Mul(rate))
}

// String formats the amount with two decimals.
func (m Money) String() string {
	return m.amount.StringFixed(2)
}

// Float64 is used only at the JSON boundary.
func (m Money) Float64() float64 {
	f, _ := m.amount.Float64()
	return f
}
