package renderer

import (
	"bytes"

	"github.com/etnz/cryptotax"
	md "github.com/nao1215/markdown"
)

// MiningMarkdown renders mining income as self-employment income.
func MiningMarkdown(m cryptotax.MiningIncome) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Mining Income")
	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{"", "Amount"},
		Rows: [][]string{
			{"Gross Income", m.GrossIncome.String()},
			{"Expenses", m.Expenses.String()},
			{md.Bold("Net Income"), md.Bold(m.NetIncome.String())},
			{"Self-Employment Tax", m.SelfEmploymentTax.String()},
		},
	})
	return doc.String()
}

// NFTMarkdown renders the tax on NFT sales.
func NFTMarkdown(t cryptotax.NFTTax) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("NFT Sales")
	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight, md.AlignRight},
		Header:    []string{"", "Gains", "Tax"},
		Rows: [][]string{
			{"Collectibles (long-term)", t.CollectibleGains.SignedString(), t.CollectibleTax.String()},
			{"Regular", t.RegularGains.SignedString(), t.RegularTax.String()},
			{md.Bold("Total"), md.Bold(t.TotalGains.SignedString()), md.Bold(t.Total().String())},
		},
	})
	return doc.String()
}
