package cryptotax

import (
	"fmt"
	"slices"

	"github.com/etnz/cryptotax/date"
)

// OptimizationKind groups recommendations by the lever they pull.
type OptimizationKind string

const (
	Harvest OptimizationKind = "harvest"
	Hold    OptimizationKind = "hold"
	Timing  OptimizationKind = "timing"
	Method  OptimizationKind = "method"
)

// Optimization is a tax saving suggestion derived from a report.
type Optimization struct {
	ID               string
	Kind             OptimizationKind
	Title            string
	Description      string
	PotentialSavings Money
	Action           string
	Deadline         date.Date // Zero when there is no deadline.
}

// MarshalJSON implements the json.Marshaler interface for Optimization.
func (o Optimization) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("id", o.ID)
	w.Append("type", o.Kind)
	w.Append("title", o.Title)
	w.Append("description", o.Description)
	w.Append("potential_savings", o.PotentialSavings)
	w.Append("action", o.Action)
	if !o.Deadline.IsZero() {
		w.Append("deadline", o.Deadline)
	}
	return w.MarshalJSON()
}

// optimizationRule returns a suggestion when it applies to the report.
type optimizationRule func(r *Report, cfg Config, deadline date.Date) (Optimization, bool)

var optimizationRules = []optimizationRule{
	harvestLosses,
	holdLongTerm,
	avoidWashSales,
	chooseMethod,
	deferGains,
}

// optimizations evaluates every rule and sorts the suggestions by
// decreasing potential savings.
func optimizations(r *Report, cfg Config, deadline date.Date) []Optimization {
	var found []Optimization
	for _, rule := range optimizationRules {
		if o, ok := rule(r, cfg, deadline); ok {
			found = append(found, o)
		}
	}
	slices.SortStableFunc(found, func(a, b Optimization) int {
		return b.PotentialSavings.Decimal().Cmp(a.PotentialSavings.Decimal())
	})
	return found
}

func harvestLosses(r *Report, cfg Config, deadline date.Date) (Optimization, bool) {
	limit := cfg.threshold(cfg.Thresholds.HarvestLoss).Neg()
	losses := M(0, cfg.Currency)
	count := 0
	for _, h := range r.Holdings {
		if h.UnrealizedGainLoss.LessThan(limit) {
			losses = losses.Add(h.UnrealizedGainLoss.Abs())
			count++
		}
	}
	if count == 0 {
		return Optimization{}, false
	}
	offset := cfg.threshold(cfg.Thresholds.OrdinaryOffset)
	usable := losses.Min(r.ShortTermGains.Add(r.LongTermGains).Add(offset))
	return Optimization{
		ID:    "crypto-harvest-1",
		Kind:  Harvest,
		Title: "Harvest Crypto Losses",
		Description: fmt.Sprintf("You have %s in unrealized losses across %d assets. Harvesting them offsets gains and up to %s of ordinary income.",
			losses, count, offset),
		PotentialSavings: usable.Scale(cfg.Rates.ShortTerm),
		Action:           "Sell losing positions before year-end",
		Deadline:         deadline,
	}, true
}

func holdLongTerm(r *Report, cfg Config, _ date.Date) (Optimization, bool) {
	limit := cfg.threshold(cfg.Thresholds.HoldGain)
	if !r.ShortTermGains.IsPositive() || !slices.ContainsFunc(r.Holdings, func(h Holding) bool {
		return h.UnrealizedGainLoss.GreaterThan(limit)
	}) {
		return Optimization{}, false
	}
	return Optimization{
		ID:    "crypto-hold-1",
		Kind:  Hold,
		Title: "Convert to Long-Term Gains",
		Description: fmt.Sprintf("Holding appreciated assets more than %d days qualifies their gains for the long-term rate of %s instead of %s.",
			cfg.LongTermDays, cfg.Rates.LongTerm, cfg.Rates.ShortTerm),
		PotentialSavings: r.ShortTermGains.Scale(cfg.Rates.HoldDifferential),
		Action:           "Review holding periods before selling",
	}, true
}

func avoidWashSales(r *Report, cfg Config, _ date.Date) (Optimization, bool) {
	if len(r.WashSales) == 0 {
		return Optimization{}, false
	}
	disallowed := r.TotalDisallowedLoss()
	return Optimization{
		ID:    "crypto-wash-1",
		Kind:  Timing,
		Title: "Avoid Wash Sales",
		Description: fmt.Sprintf("%d potential wash sales detected, %s in losses may be disallowed. Wait %d days after selling at a loss before repurchasing.",
			len(r.WashSales), disallowed, cfg.WashSaleWindowDays+1),
		PotentialSavings: disallowed.Scale(cfg.Rates.ShortTerm),
		Action:           "Review transaction timing to avoid wash sales",
	}, true
}

func chooseMethod(r *Report, cfg Config, _ date.Date) (Optimization, bool) {
	if len(r.Holdings) == 0 {
		return Optimization{}, false
	}
	return Optimization{
		ID:               "crypto-method-1",
		Kind:             Method,
		Title:            "Optimize Accounting Method",
		Description:      "The HIFO method (highest in, first out) sells the most expensive lots first and usually realizes smaller gains than FIFO.",
		PotentialSavings: r.ShortTermGains.Scale(cfg.Rates.MethodSavings),
		Action:           "Specify HIFO method for crypto sales",
	}, true
}

func deferGains(r *Report, cfg Config, _ date.Date) (Optimization, bool) {
	if !r.LongTermGains.GreaterThan(cfg.threshold(cfg.Thresholds.DeferLongTerm)) {
		return Optimization{}, false
	}
	return Optimization{
		ID:               "crypto-defer-1",
		Kind:             Timing,
		Title:            "Defer Gains to Next Year",
		Description:      "Deferring some sales to next year may keep you in a lower bracket or qualify for the 0% long-term rate.",
		PotentialSavings: cfg.threshold(cfg.Thresholds.DeferSavings),
		Action:           "Analyze bracket thresholds and defer sales strategically",
	}, true
}
