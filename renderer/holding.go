package renderer

import (
	"bytes"

	"github.com/etnz/cryptotax"
	md "github.com/nao1215/markdown"
)

func holdingsTable(holdings []cryptotax.Holding) md.TableSet {
	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"Asset", "Quantity", "Cost Basis", "Avg. Cost", "Last Price", "Value", "Unrealized"},
		Rows:   [][]string{},
	}
	for _, h := range holdings {
		table.Rows = append(table.Rows, []string{
			h.Asset,
			h.Quantity.String(),
			h.CostBasis.String(),
			h.AverageCostBasis.String(),
			h.CurrentPrice.String(),
			h.CurrentValue.String(),
			h.UnrealizedGainLoss.SignedString(),
		})
	}
	return table
}

// HoldingsMarkdown renders the open positions of a report.
func HoldingsMarkdown(r *cryptotax.Report) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Holdings")
	if len(r.Holdings) == 0 {
		doc.PlainText("No open position.")
		return doc.String()
	}
	doc.Table(holdingsTable(r.Holdings))
	doc.PlainText("Last prices are the unit value of the latest transaction of each asset, not market quotes.")
	return doc.String()
}
