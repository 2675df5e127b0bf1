package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/cryptotax/renderer"
	"github.com/google/subcommands"
)

type compareCmd struct {
	year int
	json bool
}

func (*compareCmd) Name() string     { return "compare" }
func (*compareCmd) Synopsis() string { return "compare the cost basis methods" }
func (*compareCmd) Usage() string {
	return `cgt compare [-year <year>] [-json] <file.csv>

  Computes the gains with every cost basis method and shows which one
  yields the lowest estimated tax.
`
}

func (c *compareCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.year, "year", 0, "Tax year to report on. Defaults to the configuration, or all transactions.")
	f.BoolVar(&c.json, "json", false, "Print the reports as JSON.")
}

func (c *compareCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	name, err := inputFile(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	cfg, err := loadConfig("")
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
	reports, err := calc.CompareMethods(txs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error calculating gains: %v\n", err)
		return subcommands.ExitFailure
	}

	if c.json {
		out, err := json.MarshalIndent(reports, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding reports: %v\n", err)
			return subcommands.ExitFailure
		}
		fmt.Println(string(out))
		return subcommands.ExitSuccess
	}
	printMarkdown(renderer.CompareMarkdown(reports))
	return subcommands.ExitSuccess
}
