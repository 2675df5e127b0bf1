package cryptotax

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// DefaultCurrency is the fiat currency used when none is configured.
const DefaultCurrency = "USD"

// Money represents a fiat monetary value.
type Money struct {
	value decimal.Decimal // as major unit value
	cur   string
}

func M[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T, currency string) Money {
	return Money{value: newDecimal(value), cur: currency}
}

// ParseMoney parses a decimal string into Money of the given currency.
func ParseMoney(s, currency string) (Money, error) {
	v, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, err
	}
	return Money{value: v, cur: currency}, nil
}

// currency returns the money's currency
func (m Money) currency() money.Currency {
	// to get a never nil currency I need to call the Money constructor
	return *money.New(0, m.cur).Currency()
}

// String returns the string representation of the money value, e.g. "$1,234.50".
func (m Money) String() string {
	if m.cur == "" {
		return m.value.StringFixed(2)
	}
	cur := m.currency()
	dec := m.value.Round(int32(cur.Fraction)).Shift(int32(cur.Fraction))
	return cur.Formatter().Format(dec.IntPart())
}

// Simple wrapper around money.Money

func (m Money) Currency() string           { return m.cur }
func (m Money) Decimal() decimal.Decimal   { return m.value }
func (m Money) Equal(n Money) bool         { return m.value.Equal(n.value) && m.cur == n.cur }
func (m Money) IsZero() bool               { return m.value.IsZero() }
func (m Money) IsPositive() bool           { return m.value.IsPositive() }
func (m Money) IsNegative() bool           { return m.value.IsNegative() }
func (m Money) LessThan(amount Money) bool { return m.value.LessThan(amount.value) }
func (m Money) GreaterThan(n Money) bool   { return m.value.GreaterThan(n.value) }
func (m Money) Neg() Money                 { return Money{value: m.value.Neg(), cur: m.cur} }
func (m Money) Abs() Money                 { return Money{value: m.value.Abs(), cur: m.cur} }
func (m Money) Mul(n Quantity) Money       { return Money{value: m.value.Mul(n.value), cur: m.cur} }
func (m Money) Div(n Quantity) Money       { return Money{value: m.value.Div(n.value), cur: m.cur} }
func (m Money) Scale(r Rate) Money         { return Money{value: m.value.Mul(r.value), cur: m.cur} }

// binary operators.
func (m Money) Add(n Money) Money { return Money{value: m.value.Add(n.value), cur: cur(m, n)} }
func (m Money) Sub(n Money) Money { return Money{value: m.value.Sub(n.value), cur: cur(m, n)} }

// Min returns the smallest of m and n.
func (m Money) Min(n Money) Money {
	if n.LessThan(m) {
		return Money{value: n.value, cur: cur(m, n)}
	}
	return Money{value: m.value, cur: cur(m, n)}
}

// makes the "" currency totally weak.
func cur(A, B Money) string {
	if A.cur == "" {
		return B.cur
	}
	if B.cur == "" {
		return A.cur
	}
	if A.cur != B.cur {
		panic("currency mismatch" + A.cur + "!=" + B.cur)
	}
	return A.cur
}

// SignedString returns the string representation of the money value with a sign.
// 0 is represented as a "-"
func (m Money) SignedString() string {
	if m.value.IsZero() {
		return "-"
	}
	if m.value.IsPositive() {
		return "+" + m.String()
	}
	return m.String()
}

// Round returns the money rounded to the currency fraction digits.
func (m Money) Round() Money {
	if m.cur == "" {
		return Money{value: m.value.Round(2)}
	}
	return Money{value: m.value.Round(int32(m.currency().Fraction)), cur: m.cur}
}

// MarshalJSON writes the amount rounded to the currency fraction, as a JSON number.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.Round().value.String()), nil
}
