package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/cryptotax"
	"github.com/google/subcommands"
)

type exportCmd struct {
	method string
	year   int
	output string
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "export realized gains as CSV" }
func (*exportCmd) Usage() string {
	return `cgt export [-method <method>] [-year <year>] [-o <file>] <file.csv>

  Writes one CSV row per lot consumed by a disposal, ready to be copied into
  a tax form.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.method, "method", "", "Cost basis method (fifo, lifo, hifo). Defaults to the configuration.")
	f.IntVar(&c.year, "year", 0, "Tax year to export. Defaults to the configuration, or all transactions.")
	f.StringVar(&c.output, "o", "", "Output file. Defaults to stdout.")
}

func (c *exportCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	name, err := inputFile(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	cfg, err := loadConfig(c.method)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return subcommands.ExitUsageError
	}
	txs, err := readTransactions(name, cfg.Currency)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading transactions: %v\n", err)
		return subcommands.ExitFailure
	}
	calc := newCalculator(cfg)
	calc.Period = taxYear(c.year, cfg)
	report, err := calc.Calculate(txs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error calculating gains: %v\n", err)
		return subcommands.ExitFailure
	}

	out := os.Stdout
	if c.output != "" {
		if out, err = os.Create(c.output); err != nil {
			fmt.Fprintf(os.Stderr, "Error creating %q: %v\n", c.output, err)
			return subcommands.ExitFailure
		}
		defer out.Close()
	}
	if err := cryptotax.ExportGainsCSV(out, report.Gains); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing gains: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
