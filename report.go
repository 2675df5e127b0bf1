package cryptotax

import (
	"github.com/etnz/cryptotax/date"
)

// Term is the holding period classification of a realized gain.
type Term int

const (
	ShortTerm Term = iota
	LongTerm
)

func (t Term) String() string {
	if t == LongTerm {
		return "long"
	}
	return "short"
}

func (t Term) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

// GainRecord is the gain or loss realized when a disposal consumes (part of) a lot.
type GainRecord struct {
	Asset     string
	SaleID    string
	LotID     string
	SaleDate  date.Date
	LotDate   date.Date
	Amount    Quantity // Amount consumed from the lot.
	Proceeds  Money
	CostBasis Money
	Gain      Money // Proceeds - CostBasis, negative for a loss.
	Term      Term
}

// MarshalJSON implements the json.Marshaler interface for GainRecord.
func (g GainRecord) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("asset", g.Asset)
	w.Append("sale_id", g.SaleID)
	w.Append("lot_id", g.LotID)
	w.Append("sale_date", g.SaleDate)
	w.Append("lot_date", g.LotDate)
	w.Append("amount", g.Amount)
	w.Append("proceeds", g.Proceeds)
	w.Append("cost_basis", g.CostBasis)
	w.Append("gain", g.Gain)
	w.Append("term", g.Term)
	return w.MarshalJSON()
}

// WashSale records a loss sale with a repurchase of the same asset close in time.
type WashSale struct {
	OriginalSale   Transaction
	Repurchase     Transaction
	DisallowedLoss Money // Positive magnitude of the disallowed loss.
	DaysApart      int
}

// MarshalJSON implements the json.Marshaler interface for WashSale.
func (w WashSale) MarshalJSON() ([]byte, error) {
	var o jsonObjectWriter
	o.Append("original_sale", w.OriginalSale)
	o.Append("repurchase", w.Repurchase)
	o.Append("disallowed_loss", w.DisallowedLoss)
	o.Append("days_apart", w.DaysApart)
	return o.MarshalJSON()
}

// Holding summarizes the open lots of one asset.
type Holding struct {
	Asset              string
	Quantity           Quantity
	CostBasis          Money // Cost basis of the remaining quantity.
	AverageCostBasis   Money // Per unit.
	CurrentPrice       Money // Estimated from the last transaction, not a market price.
	CurrentValue       Money
	UnrealizedGainLoss Money
}

// MarshalJSON implements the json.Marshaler interface for Holding.
func (h Holding) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("asset", h.Asset)
	w.Append("quantity", h.Quantity)
	w.Append("cost_basis", h.CostBasis)
	w.Append("average_cost_basis", h.AverageCostBasis)
	w.Append("current_price", h.CurrentPrice)
	w.Append("current_value", h.CurrentValue)
	w.Append("unrealized_gain_loss", h.UnrealizedGainLoss)
	return w.MarshalJSON()
}

// SkipReason explains why a transaction was not processed.
type SkipReason string

const (
	// SkipUnhandled is used for kinds the engine does not account for (gifts).
	SkipUnhandled SkipReason = "unhandled"
	// SkipInvalid is used for transactions failing validation.
	SkipInvalid SkipReason = "invalid"
	// SkipEmpty is used for acquisitions of a zero amount, which cannot form a lot.
	SkipEmpty SkipReason = "empty"
)

// Skipped is a transaction left out of the calculation.
type Skipped struct {
	Transaction Transaction
	Reason      SkipReason
	Detail      string
}

// MarshalJSON implements the json.Marshaler interface for Skipped.
func (s Skipped) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("transaction", s.Transaction)
	w.Append("reason", s.Reason)
	w.Optional("detail", s.Detail)
	return w.MarshalJSON()
}

// UnmatchedSale is a disposal that could not be fully matched against open lots.
type UnmatchedSale struct {
	Transaction Transaction
	Remaining   Quantity // Amount left without a cost basis.
}

// MarshalJSON implements the json.Marshaler interface for UnmatchedSale.
func (u UnmatchedSale) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("transaction", u.Transaction)
	w.Append("remaining", u.Remaining)
	return w.MarshalJSON()
}

// Report is the result of a gains calculation.
type Report struct {
	Method   CostBasisMethod
	Currency string
	Period   *date.Range // nil when the whole history is reported.

	ShortTermGains     Money
	LongTermGains      Money
	OrdinaryIncome     Money
	TotalTaxableGains  Money
	TotalTaxableIncome Money
	TaxLiability       Money

	Gains           []GainRecord
	WashSales       []WashSale
	Holdings        []Holding
	Transactions    []Transaction // Processed transactions, in date order.
	Recommendations []Optimization
	Skipped         []Skipped
	Unmatched       []UnmatchedSale
}

// TotalDisallowedLoss returns the sum of all wash sales disallowed losses.
func (r *Report) TotalDisallowedLoss() Money {
	total := M(0, r.Currency)
	for _, w := range r.WashSales {
		total = total.Add(w.DisallowedLoss)
	}
	return total
}

// Holding returns the holding of asset, if any.
func (r *Report) Holding(asset string) (Holding, bool) {
	for _, h := range r.Holdings {
		if h.Asset == asset {
			return h, true
		}
	}
	return Holding{}, false
}

// MarshalJSON implements the json.Marshaler interface for Report.
func (r *Report) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("method", r.Method)
	w.Append("currency", r.Currency)
	if r.Period != nil {
		w.Append("period", map[string]date.Date{"from": r.Period.From, "to": r.Period.To})
	}
	w.Append("short_term_gains", r.ShortTermGains)
	w.Append("long_term_gains", r.LongTermGains)
	w.Append("ordinary_income", r.OrdinaryIncome)
	w.Append("total_taxable_gains", r.TotalTaxableGains)
	w.Append("total_taxable_income", r.TotalTaxableIncome)
	w.Append("tax_liability", r.TaxLiability)
	w.Append("gains", nonNil(r.Gains))
	w.Append("wash_sales", nonNil(r.WashSales))
	w.Append("holdings", nonNil(r.Holdings))
	w.Append("transactions", nonNil(r.Transactions))
	w.Append("recommendations", nonNil(r.Recommendations))
	w.Append("skipped", nonNil(r.Skipped))
	w.Append("unmatched", nonNil(r.Unmatched))
	return w.MarshalJSON()
}

// nonNil makes empty lists marshal as [] instead of null.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
