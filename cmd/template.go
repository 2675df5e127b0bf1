package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/etnz/cryptotax"
	"github.com/google/subcommands"
)

type templateCmd struct{}

func (*templateCmd) Name() string     { return "template" }
func (*templateCmd) Synopsis() string { return "print an example transaction file" }
func (*templateCmd) Usage() string {
	return `cgt template > transactions.csv

  Prints a transaction file to start from. See 'cgt topic csv' for the format.
`
}

func (*templateCmd) SetFlags(f *flag.FlagSet) {}

func (*templateCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	fmt.Print(cryptotax.CSVTemplate())
	return subcommands.ExitSuccess
}
