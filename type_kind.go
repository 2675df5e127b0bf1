package cryptotax

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownKind is returned when a transaction type cannot be parsed.
var ErrUnknownKind = errors.New("unknown transaction type")

// Kind is the type of a crypto event.
type Kind int

const (
	Buy Kind = iota + 1
	Sell
	Trade
	Income
	Gift
	Stake
	Airdrop
)

var kindNames = map[Kind]string{
	Buy:     "buy",
	Sell:    "sell",
	Trade:   "trade",
	Income:  "income",
	Gift:    "gift",
	Stake:   "stake",
	Airdrop: "airdrop",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

// ParseKind parses a transaction type, ignoring case.
func ParseKind(s string) (Kind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for k, name := range kindNames {
		if name == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// IsAcquisition reports whether the kind opens a new lot.
func (k Kind) IsAcquisition() bool {
	return k == Buy || k.IsIncome()
}

// IsIncome reports whether the kind is taxed as ordinary income when received.
func (k Kind) IsIncome() bool {
	return k == Income || k == Stake || k == Airdrop
}

// IsDisposal reports whether the kind consumes lots.
func (k Kind) IsDisposal() bool {
	return k == Sell || k == Trade
}

func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

func (k *Kind) UnmarshalText(text []byte) error {
	v, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = v
	return nil
}
