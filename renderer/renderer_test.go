package renderer

import (
	"strings"
	"testing"

	"github.com/etnz/cryptotax"
	"github.com/etnz/cryptotax/date"
)

func tx(id, on string, kind cryptotax.Kind, asset string, amount, costBasis, fmv float64) cryptotax.Transaction {
	return cryptotax.NewTransaction(id, date.MustParse(on), kind, asset, amount, costBasis, fmv, "", "USD")
}

func mustReport(t *testing.T, txs []cryptotax.Transaction, method cryptotax.CostBasisMethod) *cryptotax.Report {
	t.Helper()
	r, err := cryptotax.CalculateGains(txs, method)
	if err != nil {
		t.Fatalf("CalculateGains() error = %v", err)
	}
	return r
}

func assertContains(t *testing.T, got string, want ...string) {
	t.Helper()
	for _, w := range want {
		if !strings.Contains(got, w) {
			t.Errorf("output does not contain %q:\n%s", w, got)
		}
	}
}

func TestReportMarkdown(t *testing.T) {
	r := mustReport(t, []cryptotax.Transaction{
		tx("buy", "2024-01-01", cryptotax.Buy, "BTC", 1, 20000, 20000),
		tx("sell", "2024-04-10", cryptotax.Sell, "BTC", 1, 20000, 15000),
		tx("rebuy", "2024-04-20", cryptotax.Buy, "BTC", 0.5, 8000, 8000),
		tx("gift", "2024-05-01", cryptotax.Gift, "BTC", 0.1, 0, 1600),
		tx("orphan", "2024-05-02", cryptotax.Sell, "ETH", 1, 0, 3000),
	}, cryptotax.FIFO)

	got := ReportMarkdown(r)
	assertContains(t, got,
		"# Capital Gains Report",
		"Method **fifo**.",
		"| Short-Term Gains | -$5,000.00 |",
		"| **Estimated Tax** | **-$1,200.00** |",
		"## Realized Gains",
		"| 2024-04-10 | BTC | 1 | 2024-01-01 | $15,000.00 | $20,000.00 | -$5,000.00 | short |",
		"## Wash Sales",
		"| BTC | 2024-04-10 | 2024-04-20 | 10 | $5,000.00 |",
		"## Holdings",
		"## Recommendations",
		"**Avoid Wash Sales**",
		"## Unmatched Disposals",
		"`orphan`",
		"## Skipped Transactions",
		"Gifted 0.1 BTC (unhandled)",
	)
}

func TestReportMarkdown_Period(t *testing.T) {
	year := date.TaxYear(2024)
	c := cryptotax.NewCalculator(cryptotax.DefaultConfig())
	c.Period = &year
	r, err := c.Calculate([]cryptotax.Transaction{tx("buy", "2024-01-01", cryptotax.Buy, "BTC", 1, 100, 100)})
	if err != nil {
		t.Fatalf("Calculate() error = %v", err)
	}
	got := ReportMarkdown(r)
	assertContains(t, got, "# Capital Gains Report 2024", "From 2024-01-01 to 2024-12-31")
	if strings.Contains(got, "## Realized Gains") {
		t.Errorf("ReportMarkdown() renders an empty gains section:\n%s", got)
	}
}

func TestHoldingsMarkdown(t *testing.T) {
	r := mustReport(t, []cryptotax.Transaction{
		tx("buy", "2024-01-01", cryptotax.Buy, "ETH", 2, 4000, 4000),
		tx("stake", "2024-02-01", cryptotax.Stake, "ETH", 0.5, 0, 1500),
	}, cryptotax.FIFO)
	assertContains(t, HoldingsMarkdown(r),
		"| Asset | Quantity | Cost Basis | Avg. Cost | Last Price | Value | Unrealized |",
		"| ETH | 2.5 | $5,500.00 | $2,200.00 | $3,000.00 | $7,500.00 | +$2,000.00 |",
	)

	empty := mustReport(t, nil, cryptotax.FIFO)
	assertContains(t, HoldingsMarkdown(empty), "No open position.")
}

func TestCompareMarkdown(t *testing.T) {
	reports, err := cryptotax.CompareMethods([]cryptotax.Transaction{
		tx("a", "2024-01-01", cryptotax.Buy, "BTC", 1, 10000, 10000),
		tx("b", "2024-01-10", cryptotax.Buy, "BTC", 1, 30000, 30000),
		tx("c", "2024-01-20", cryptotax.Buy, "BTC", 1, 20000, 20000),
		tx("sell", "2024-03-01", cryptotax.Sell, "BTC", 1, 0, 25000),
	})
	if err != nil {
		t.Fatalf("CompareMethods() error = %v", err)
	}
	assertContains(t, CompareMarkdown(reports),
		"| fifo | +$15,000.00 | - | +$15,000.00 | $3,600.00 |",
		"| hifo | -$5,000.00 | - | -$5,000.00 | -$1,200.00 |",
		"The lowest estimated tax is obtained with **hifo**.",
	)
}

func TestMiningMarkdown(t *testing.T) {
	m := cryptotax.CalculateMiningIncome([]cryptotax.MinedBlock{
		{Asset: "BTC", CoinsMined: cryptotax.Q(0.1), UnitValue: cryptotax.M(50000, "USD"), Expenses: cryptotax.M(1000, "USD")},
	}, cryptotax.DefaultConfig())
	assertContains(t, MiningMarkdown(m),
		"| Gross Income | $5,000.00 |",
		"| **Net Income** | **$4,000.00** |",
		"| Self-Employment Tax | $565.18 |",
	)
}

func TestNFTMarkdown(t *testing.T) {
	tax := cryptotax.CalculateNFTTax([]cryptotax.NFTSale{
		{PurchaseDate: date.MustParse("2022-01-01"), SaleDate: date.MustParse("2024-01-01"), CostBasis: cryptotax.M(1000, "USD"), SalePrice: cryptotax.M(2000, "USD"), Collectible: true},
	}, cryptotax.DefaultConfig())
	assertContains(t, NFTMarkdown(tax),
		"| Collectibles (long-term) | +$1,000.00 | $280.00 |",
		"| **Total** | **+$1,000.00** | **$280.00** |",
	)
}
