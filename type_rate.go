package cryptotax

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Rate is a ratio applied to money, such as a tax rate. R(0.24) is 24%.
type Rate struct {
	value decimal.Decimal
}

func R[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) Rate {
	return Rate{value: newDecimal(value)}
}

// ParseRate accepts a ratio ("0.24") or a percentage ("24%").
func ParseRate(s string) (Rate, error) {
	s = strings.TrimSpace(s)
	percent := strings.HasSuffix(s, "%")
	v, err := decimal.NewFromString(strings.TrimSpace(strings.TrimSuffix(s, "%")))
	if err != nil {
		return Rate{}, fmt.Errorf("invalid rate %q: %w", s, err)
	}
	if percent {
		v = v.Shift(-2)
	}
	return Rate{value: v}, nil
}

func (r Rate) Equal(o Rate) bool       { return r.value.Equal(o.value) }
func (r Rate) GreaterThan(o Rate) bool { return r.value.GreaterThan(o.value) }
func (r Rate) IsNegative() bool        { return r.value.IsNegative() }
func (r Rate) IsZero() bool            { return r.value.IsZero() }
func (r Rate) String() string          { return r.value.Shift(2).String() + "%" }

// UnmarshalText lets rates be read from configuration files.
func (r *Rate) UnmarshalText(text []byte) error {
	v, err := ParseRate(string(text))
	if err != nil {
		return err
	}
	*r = v
	return nil
}

func (r Rate) MarshalText() ([]byte, error) { return []byte(r.value.String()), nil }
