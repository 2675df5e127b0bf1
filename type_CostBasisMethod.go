package cryptotax

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownMethod is returned when a cost basis method cannot be parsed.
var ErrUnknownMethod = errors.New("unknown cost basis method")

// CostBasisMethod defines the order in which lots are consumed by a disposal.
type CostBasisMethod int

const (
	// FIFO (First-In, First-Out) consumes the oldest lots first.
	FIFO CostBasisMethod = iota
	// LIFO (Last-In, First-Out) consumes the newest lots first.
	LIFO
	// HIFO (Highest-In, First-Out) consumes the lots with the highest cost basis first.
	HIFO
)

// Methods lists all supported cost basis methods.
var Methods = []CostBasisMethod{FIFO, LIFO, HIFO}

func (m CostBasisMethod) String() string {
	switch m {
	case FIFO:
		return "fifo"
	case LIFO:
		return "lifo"
	case HIFO:
		return "hifo"
	default:
		return "unknown"
	}
}

// ParseCostBasisMethod parses a string into a CostBasisMethod. The empty
// string is FIFO.
func ParseCostBasisMethod(s string) (CostBasisMethod, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "fifo":
		return FIFO, nil
	case "lifo":
		return LIFO, nil
	case "hifo":
		return HIFO, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownMethod, s)
	}
}

func (m CostBasisMethod) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

func (m *CostBasisMethod) UnmarshalText(text []byte) error {
	v, err := ParseCostBasisMethod(string(text))
	if err != nil {
		return err
	}
	*m = v
	return nil
}
