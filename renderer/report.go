package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/cryptotax"
	md "github.com/nao1215/markdown"
)

// ReportMarkdown renders a full gains report.
func ReportMarkdown(r *cryptotax.Report) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	if r.Period != nil {
		doc.H1(fmt.Sprintf("Capital Gains Report %s", r.Period.Identifier()))
		doc.PlainText(fmt.Sprintf("From %s to %s, method %s.\n", r.Period.From, r.Period.To, md.Bold(r.Method.String())))
	} else {
		doc.H1("Capital Gains Report")
		doc.PlainText(fmt.Sprintf("Method %s.\n", md.Bold(r.Method.String())))
	}

	doc.H2("Summary")
	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{"", "Amount"},
		Rows: [][]string{
			{"Short-Term Gains", r.ShortTermGains.SignedString()},
			{"Long-Term Gains", r.LongTermGains.SignedString()},
			{md.Bold("Total Taxable Gains"), md.Bold(r.TotalTaxableGains.SignedString())},
			{"Ordinary Income", r.OrdinaryIncome.SignedString()},
			{md.Bold("Estimated Tax"), md.Bold(r.TaxLiability.String())},
		},
	})

	if len(r.Gains) > 0 {
		doc.H2("Realized Gains")
		table := md.TableSet{
			Alignment: []md.TableAlignment{
				md.AlignLeft,
				md.AlignLeft,
				md.AlignRight,
				md.AlignLeft,
				md.AlignRight,
				md.AlignRight,
				md.AlignRight,
				md.AlignLeft,
			},
			Header: []string{"Sold", "Asset", "Amount", "Acquired", "Proceeds", "Cost Basis", "Gain / Loss", "Term"},
			Rows:   [][]string{},
		}
		for _, g := range r.Gains {
			table.Rows = append(table.Rows, []string{
				g.SaleDate.String(),
				g.Asset,
				g.Amount.String(),
				g.LotDate.String(),
				g.Proceeds.String(),
				g.CostBasis.String(),
				g.Gain.SignedString(),
				g.Term.String(),
			})
		}
		doc.Table(table)
	}

	if len(r.WashSales) > 0 {
		doc.H2("Wash Sales")
		table := md.TableSet{
			Alignment: []md.TableAlignment{md.AlignLeft, md.AlignLeft, md.AlignLeft, md.AlignRight, md.AlignRight},
			Header:    []string{"Asset", "Sold", "Repurchased", "Days Apart", "Disallowed Loss"},
			Rows:      [][]string{},
		}
		for _, w := range r.WashSales {
			table.Rows = append(table.Rows, []string{
				w.OriginalSale.Asset,
				w.OriginalSale.Date.String(),
				w.Repurchase.Date.String(),
				fmt.Sprint(w.DaysApart),
				w.DisallowedLoss.String(),
			})
		}
		doc.Table(table)
	}

	if len(r.Holdings) > 0 {
		doc.H2("Holdings")
		doc.Table(holdingsTable(r.Holdings))
	}

	if len(r.Recommendations) > 0 {
		doc.H2("Recommendations")
		var items []string
		for _, o := range r.Recommendations {
			item := fmt.Sprintf("%s (save up to %s): %s %s.", md.Bold(o.Title), o.PotentialSavings, o.Description, o.Action)
			if !o.Deadline.IsZero() {
				item += fmt.Sprintf(" Before %s.", o.Deadline)
			}
			items = append(items, item)
		}
		doc.OrderedList(items...)
	}

	if len(r.Unmatched) > 0 {
		doc.H2("Unmatched Disposals")
		var items []string
		for _, u := range r.Unmatched {
			items = append(items, fmt.Sprintf("%s %s: %s %s without an open lot", u.Transaction.Date, md.Code(u.Transaction.ID), u.Remaining, u.Transaction.Asset))
		}
		doc.BulletList(items...)
	}

	if len(r.Skipped) > 0 {
		doc.H2("Skipped Transactions")
		var items []string
		for _, s := range r.Skipped {
			items = append(items, fmt.Sprintf("%s %s: %s (%s)", s.Transaction.Date, md.Code(s.Transaction.ID), Transaction(s.Transaction), s.Reason))
		}
		doc.BulletList(items...)
	}

	return doc.String()
}

// CompareMarkdown renders reports computed with different methods side by side.
func CompareMarkdown(reports []*cryptotax.Report) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Cost Basis Methods Comparison")
	table := md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight, md.AlignRight, md.AlignRight, md.AlignRight},
		Header:    []string{"Method", "Short-Term", "Long-Term", "Total Gains", "Estimated Tax"},
		Rows:      [][]string{},
	}
	var best *cryptotax.Report
	for _, r := range reports {
		table.Rows = append(table.Rows, []string{
			r.Method.String(),
			r.ShortTermGains.SignedString(),
			r.LongTermGains.SignedString(),
			r.TotalTaxableGains.SignedString(),
			r.TaxLiability.String(),
		})
		if best == nil || r.TaxLiability.LessThan(best.TaxLiability) {
			best = r
		}
	}
	doc.Table(table)
	if best != nil {
		doc.PlainText(fmt.Sprintf("\nThe lowest estimated tax is obtained with %s.", md.Bold(best.Method.String())))
	}
	return doc.String()
}
