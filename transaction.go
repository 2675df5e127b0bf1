package cryptotax

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"github.com/etnz/cryptotax/date"
	"github.com/shopspring/decimal"
)

// ErrInvalidTransaction wraps every transaction validation failure.
var ErrInvalidTransaction = errors.New("invalid transaction")

// Transaction is an immutable record of one crypto event.
type Transaction struct {
	ID              string    // ID is opaque and unique within a set of transactions.
	Date            date.Date // Date orders transactions.
	Kind            Kind
	Asset           string   // Asset symbol, e.g. "BTC".
	Amount          Quantity // Amount of Asset, never negative.
	CostBasis       Money    // CostBasis attributed to this transaction, in fiat.
	FairMarketValue Money    // FairMarketValue of the whole transaction at execution time.
	Exchange        string   // Exchange is informational only.
	Memo            string
}

// NewTransaction creates a transaction whose money values are in currency.
func NewTransaction(id string, on date.Date, kind Kind, asset string, amount, costBasis, fairMarketValue float64, exchange, currency string) Transaction {
	return Transaction{
		ID:              id,
		Date:            on,
		Kind:            kind,
		Asset:           asset,
		Amount:          Q(amount),
		CostBasis:       M(costBasis, currency),
		FairMarketValue: M(fairMarketValue, currency),
		Exchange:        exchange,
	}
}

// UnitPrice returns the fair market value of one unit, and false when the
// amount is zero.
func (t Transaction) UnitPrice() (Money, bool) {
	if t.Amount.IsZero() {
		return Money{}, false
	}
	return t.FairMarketValue.Div(t.Amount), true
}

// Validate checks the transaction fields and returns all failures at once.
func (t Transaction) Validate() error {
	var errs []error
	if t.Date.IsZero() {
		errs = append(errs, errors.New("date is missing"))
	}
	if _, ok := kindNames[t.Kind]; !ok {
		errs = append(errs, fmt.Errorf("%w: %d", ErrUnknownKind, t.Kind))
	}
	if t.Asset == "" {
		errs = append(errs, errors.New("asset is missing"))
	}
	if t.Amount.IsNegative() {
		errs = append(errs, fmt.Errorf("amount must not be negative, got %s", t.Amount))
	}
	if t.CostBasis.IsNegative() {
		errs = append(errs, fmt.Errorf("cost basis must not be negative, got %s", t.CostBasis))
	}
	if t.FairMarketValue.IsNegative() {
		errs = append(errs, fmt.Errorf("fair market value must not be negative, got %s", t.FairMarketValue))
	}
	if c1, c2 := t.CostBasis.Currency(), t.FairMarketValue.Currency(); c1 != "" && c2 != "" && c1 != c2 {
		errs = append(errs, fmt.Errorf("cost basis currency %s does not match fair market value currency %s", c1, c2))
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w %q on %s: %w", ErrInvalidTransaction, t.ID, t.Date, errors.Join(errs...))
}

// Currency returns the fiat currency of the transaction.
func (t Transaction) Currency() string {
	if c := t.FairMarketValue.Currency(); c != "" {
		return c
	}
	return t.CostBasis.Currency()
}

// inCurrency returns t with money values in currency when they have none.
func (t Transaction) inCurrency(currency string) Transaction {
	if t.CostBasis.Currency() == "" {
		t.CostBasis = M(t.CostBasis.Decimal(), currency)
	}
	if t.FairMarketValue.Currency() == "" {
		t.FairMarketValue = M(t.FairMarketValue.Decimal(), currency)
	}
	return t
}

// Equal reports whether both transactions hold the same values.
func (t Transaction) Equal(o Transaction) bool {
	return t.ID == o.ID && t.Date == o.Date && t.Kind == o.Kind && t.Asset == o.Asset &&
		t.Amount.Equal(o.Amount) && t.CostBasis.Equal(o.CostBasis) &&
		t.FairMarketValue.Equal(o.FairMarketValue) && t.Exchange == o.Exchange && t.Memo == o.Memo
}

// MarshalJSON implements the json.Marshaler interface for Transaction.
func (t Transaction) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("id", t.ID)
	w.Append("date", t.Date)
	w.Append("type", t.Kind)
	w.Append("asset", t.Asset)
	w.Append("amount", t.Amount)
	w.Append("cost_basis", t.CostBasis)
	w.Append("fair_market_value", t.FairMarketValue)
	w.Optional("currency", t.Currency())
	w.Optional("exchange", t.Exchange)
	w.Optional("memo", t.Memo)
	return w.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface for Transaction.
func (t *Transaction) UnmarshalJSON(data []byte) error {
	var temp struct {
		ID              string          `json:"id"`
		Date            date.Date       `json:"date"`
		Kind            Kind            `json:"type"`
		Asset           string          `json:"asset"`
		Amount          decimal.Decimal `json:"amount"`
		CostBasis       decimal.Decimal `json:"cost_basis"`
		FairMarketValue decimal.Decimal `json:"fair_market_value"`
		Currency        string          `json:"currency"`
		Exchange        string          `json:"exchange"`
		Memo            string          `json:"memo"`
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	*t = Transaction{
		ID:              temp.ID,
		Date:            temp.Date,
		Kind:            temp.Kind,
		Asset:           temp.Asset,
		Amount:          Q(temp.Amount),
		CostBasis:       M(temp.CostBasis, temp.Currency),
		FairMarketValue: M(temp.FairMarketValue, temp.Currency),
		Exchange:        temp.Exchange,
		Memo:            temp.Memo,
	}
	return nil
}

// SortTransactions returns a copy of txs sorted by date. Transactions on the
// same day keep their relative order.
func SortTransactions(txs []Transaction) []Transaction {
	sorted := slices.Clone(txs)
	slices.SortStableFunc(sorted, func(a, b Transaction) int {
		return a.Date.Compare(b.Date)
	})
	return sorted
}
