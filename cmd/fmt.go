package cmd

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/cryptotax"
	"github.com/google/subcommands"
)

// fmtCmd rewrites a transaction file in canonical form.
type fmtCmd struct {
	write bool
}

func (*fmtCmd) Name() string     { return "fmt" }
func (*fmtCmd) Synopsis() string { return "format a transaction file" }
func (*fmtCmd) Usage() string {
	return `cgt fmt [-w] <file.csv|file.jsonl>

  Validates a transaction file and prints it sorted by date, in the same
  format, with every column and a stable id on each row.
`
}

func (c *fmtCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.write, "w", false, "Write the result to the file instead of stdout.")
}

func (c *fmtCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	name, err := inputFile(f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	if c.write && name == "-" {
		fmt.Fprintln(os.Stderr, "-w cannot be used with stdin")
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

	var buf bytes.Buffer
	export := cryptotax.ExportCSV
	if isJSONL(name) {
		export = cryptotax.ExportJSONL
	}
	if err := export(&buf, cryptotax.SortTransactions(txs)); err != nil {
		fmt.Fprintf(os.Stderr, "Error formatting transactions: %v\n", err)
		return subcommands.ExitFailure
	}
	if !c.write {
		fmt.Print(buf.String())
		return subcommands.ExitSuccess
	}
	if err := os.WriteFile(name, buf.Bytes(), 0644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing %q: %v\n", name, err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Successfully formatted %s\n", name)
	return subcommands.ExitSuccess
}
