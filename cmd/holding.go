package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/cryptotax/renderer"
	"github.com/google/subcommands"
)

type holdingCmd struct {
	method string
}

func (*holdingCmd) Name() string     { return "holding" }
func (*holdingCmd) Synopsis() string { return "open positions and unrealized gains" }
func (*holdingCmd) Usage() string {
	return `cgt holding [-method <method>] <file.csv>

  Shows the quantity, cost basis and unrealized gain of every asset still held
  after all the transactions of the file.
`
}

func (c *holdingCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.method, "method", "", "Cost basis method (fifo, lifo, hifo). Defaults to the configuration.")
}

func (c *holdingCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
	report, err := newCalculator(cfg).Calculate(txs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error calculating holdings: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.HoldingsMarkdown(report))
	return subcommands.ExitSuccess
}
