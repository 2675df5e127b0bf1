package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/cryptotax"
	"github.com/etnz/cryptotax/renderer"
	"github.com/google/subcommands"
)

type miningCmd struct {
	json bool
}

func (*miningCmd) Name() string     { return "mining" }
func (*miningCmd) Synopsis() string { return "mining income and self-employment tax" }
func (*miningCmd) Usage() string {
	return `cgt mining [-json] <blocks.csv>

  Sums the value of mined coins, deducts the expenses and estimates the
  self-employment tax on the net income.
`
}

func (c *miningCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.json, "json", false, "Print the result as JSON.")
}

func (c *miningCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
	in, source, err := openFile(name)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening %q: %v\n", name, err)
		return subcommands.ExitFailure
	}
	defer in.Close()
	blocks, err := cryptotax.ImportMiningCSV(in, source, cfg.Currency)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading mined blocks: %v\n", err)
		return subcommands.ExitFailure
	}

	income := cryptotax.CalculateMiningIncome(blocks, cfg)
	if c.json {
		out, err := json.MarshalIndent(income, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding mining income: %v\n", err)
			return subcommands.ExitFailure
		}
		fmt.Println(string(out))
		return subcommands.ExitSuccess
	}
	printMarkdown(renderer.MiningMarkdown(income))
	return subcommands.ExitSuccess
}
