package cryptotax

import (
	"io"
	"log/slog"

	"github.com/etnz/cryptotax/date"
)

// Calculator computes gains reports. It holds configuration only and is safe
// for concurrent use.
type Calculator struct {
	Method CostBasisMethod
	Config Config
	// Period restricts aggregated gains, income, wash sales and unmatched
	// disposals to a date range. Lots are always built from the full history.
	Period *date.Range
	Logger *slog.Logger
}

// NewCalculator creates a calculator using the method of cfg.
func NewCalculator(cfg Config) *Calculator {
	return &Calculator{Method: cfg.Method, Config: cfg}
}

// CalculateGains computes the report of txs with the default configuration.
func CalculateGains(txs []Transaction, method CostBasisMethod) (*Report, error) {
	c := NewCalculator(DefaultConfig())
	c.Method = method
	return c.Calculate(txs)
}

// CompareMethods runs the calculator once per cost basis method, in the order of Methods.
func (c *Calculator) CompareMethods(txs []Transaction) ([]*Report, error) {
	reports := make([]*Report, 0, len(Methods))
	for _, m := range Methods {
		cc := *c
		cc.Method = m
		r, err := cc.Calculate(txs)
		if err != nil {
			return nil, err
		}
		reports = append(reports, r)
	}
	return reports, nil
}

// CompareMethods computes one report per cost basis method with the default configuration.
func CompareMethods(txs []Transaction) ([]*Report, error) {
	return NewCalculator(DefaultConfig()).CompareMethods(txs)
}

func (c *Calculator) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// calculation is the state of a single Calculate call.
type calculation struct {
	*Calculator
	log    *slog.Logger
	report *Report
	sorted []Transaction
	// accepted are the sorted transactions that are not skipped. Wash sales
	// are searched among them.
	accepted []Transaction
	pools    map[string]lots
	assets   []string // In order of first acquisition.
}

// Calculate processes txs in date order and returns the gains report.
//
// Invalid transactions, gifts and empty acquisitions are reported as
// Skipped. Disposals that cannot be matched against open lots are reported
// as UnmatchedSale. The input slice is not modified.
func (c *Calculator) Calculate(txs []Transaction) (*Report, error) {
	if err := c.Config.Validate(); err != nil {
		return nil, err
	}
	cur := c.Config.Currency
	calc := &calculation{
		Calculator: c,
		log:        c.logger(),
		sorted:     SortTransactions(txs),
		pools:      make(map[string]lots),
		report: &Report{
			Method:             c.Method,
			Currency:           cur,
			Period:             c.Period,
			ShortTermGains:     M(0, cur),
			LongTermGains:      M(0, cur),
			OrdinaryIncome:     M(0, cur),
			TotalTaxableGains:  M(0, cur),
			TotalTaxableIncome: M(0, cur),
			TaxLiability:       M(0, cur),
		},
	}
	for i, tx := range calc.sorted {
		tx = tx.inCurrency(cur)
		calc.sorted[i] = tx
		if calc.accepts(tx) {
			calc.accepted = append(calc.accepted, tx)
		}
	}
	for _, tx := range calc.sorted {
		calc.process(tx)
	}
	calc.aggregate()
	return calc.report, nil
}

func (c *calculation) inPeriod(d date.Date) bool {
	return c.Period == nil || c.Period.Contains(d)
}

func (c *calculation) skip(tx Transaction, reason SkipReason, detail string) {
	c.report.Skipped = append(c.report.Skipped, Skipped{Transaction: tx, Reason: reason, Detail: detail})
}

// accepts reports whether process uses tx rather than skipping it.
func (c *calculation) accepts(tx Transaction) bool {
	return tx.Validate() == nil && tx.Currency() == c.Config.Currency &&
		tx.Kind != Gift && !tx.Amount.IsZero()
}

func (c *calculation) process(tx Transaction) {
	if err := tx.Validate(); err != nil {
		c.log.Warn("skipping invalid transaction", "id", tx.ID, "error", err)
		c.skip(tx, SkipInvalid, err.Error())
		return
	}
	if cur := tx.Currency(); cur != c.Config.Currency {
		c.log.Warn("skipping transaction in another currency", "id", tx.ID, "currency", cur)
		c.skip(tx, SkipInvalid, "currency "+cur+" is not "+c.Config.Currency)
		return
	}

	switch {
	case tx.Kind == Gift:
		c.log.Info("gifts are not accounted for", "id", tx.ID, "asset", tx.Asset)
		c.skip(tx, SkipUnhandled, "gifts are not accounted for")
	case tx.Kind.IsAcquisition():
		c.acquire(tx)
	case tx.Kind.IsDisposal():
		c.dispose(tx)
	}
}

func (c *calculation) acquire(tx Transaction) {
	if tx.Amount.IsZero() {
		c.skip(tx, SkipEmpty, "zero amount cannot open a lot")
		return
	}
	if tx.Kind.IsIncome() && c.inPeriod(tx.Date) {
		c.report.OrdinaryIncome = c.report.OrdinaryIncome.Add(tx.FairMarketValue)
	}
	if _, exists := c.pools[tx.Asset]; !exists {
		c.assets = append(c.assets, tx.Asset)
	}
	c.pools[tx.Asset] = append(c.pools[tx.Asset], newLot(tx))
	c.report.Transactions = append(c.report.Transactions, tx)
	c.log.Debug("lot opened", "id", tx.ID, "asset", tx.Asset, "amount", tx.Amount)
}

func (c *calculation) dispose(tx Transaction) {
	if tx.Amount.IsZero() {
		c.skip(tx, SkipEmpty, "zero amount to dispose")
		return
	}
	reported := c.inPeriod(tx.Date)
	pool := c.pools[tx.Asset]
	if len(pool) == 0 {
		if reported {
			c.log.Warn("no open lot for disposal", "id", tx.ID, "asset", tx.Asset, "amount", tx.Amount)
			c.report.Unmatched = append(c.report.Unmatched, UnmatchedSale{Transaction: tx, Remaining: tx.Amount})
		}
		return
	}

	washChecked := false
	remaining := tx.Amount
	for _, l := range pool.selection(c.Method) {
		if !remaining.IsPositive() {
			break
		}
		consumed := remaining.Min(l.remaining)
		proceeds := tx.FairMarketValue.Mul(consumed).Div(tx.Amount)
		basis := l.costOf(consumed)
		term := ShortTerm
		if tx.Date.DaysSince(l.openDate()) > c.Config.LongTermDays {
			term = LongTerm
		}
		gain := GainRecord{
			Asset:     tx.Asset,
			SaleID:    tx.ID,
			LotID:     l.origin.ID,
			SaleDate:  tx.Date,
			LotDate:   l.openDate(),
			Amount:    consumed,
			Proceeds:  proceeds,
			CostBasis: basis,
			Gain:      proceeds.Sub(basis),
			Term:      term,
		}
		if reported {
			c.record(gain)
			if gain.Gain.IsNegative() && !washChecked {
				washChecked = true
				if ws, ok := DetectWashSale(tx, c.accepted, c.Config.WashSaleWindowDays); ok {
					c.log.Debug("wash sale detected", "sale", tx.ID, "repurchase", ws.Repurchase.ID)
					c.report.WashSales = append(c.report.WashSales, ws)
				}
			}
		}
		l.remaining = l.remaining.Sub(consumed)
		remaining = remaining.Sub(consumed)
	}
	c.pools[tx.Asset] = pool.open()

	if remaining.IsPositive() && reported {
		c.log.Warn("disposal exceeds open lots", "id", tx.ID, "asset", tx.Asset, "unmatched", remaining)
		c.report.Unmatched = append(c.report.Unmatched, UnmatchedSale{Transaction: tx, Remaining: remaining})
	}
	c.report.Transactions = append(c.report.Transactions, tx)
}

func (c *calculation) record(g GainRecord) {
	r := c.report
	r.Gains = append(r.Gains, g)
	if g.Term == LongTerm {
		r.LongTermGains = r.LongTermGains.Add(g.Gain)
	} else {
		r.ShortTermGains = r.ShortTermGains.Add(g.Gain)
	}
}

// aggregate computes totals, holdings, the tax estimate and recommendations.
func (c *calculation) aggregate() {
	r := c.report
	rates := c.Config.Rates
	r.TotalTaxableGains = r.ShortTermGains.Add(r.LongTermGains)
	r.TotalTaxableIncome = r.OrdinaryIncome
	r.TaxLiability = r.ShortTermGains.Scale(rates.ShortTerm).
		Add(r.LongTermGains.Scale(rates.LongTerm)).
		Add(r.OrdinaryIncome.Scale(rates.Ordinary))
	r.Holdings = c.holdings()
	r.Recommendations = optimizations(r, c.Config, c.deadline())
}

// deadline is the last day of the tax year.
func (c *calculation) deadline() date.Date {
	year := c.Config.TaxYear
	if year == 0 && c.Period != nil {
		year = c.Period.To.Year()
	}
	if year == 0 {
		for _, tx := range c.sorted {
			year = max(year, tx.Date.Year())
		}
	}
	if year == 0 {
		return date.Date{}
	}
	return date.New(year, 12, 31)
}
