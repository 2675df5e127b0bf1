// Command cgt computes crypto capital gains and the related tax estimates.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path"

	"github.com/etnz/cryptotax"
	"github.com/etnz/cryptotax/cmd"
	"github.com/etnz/cryptotax/docs"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

func main() {
	name := path.Base(os.Args[0])
	completion(name).Complete(name)

	commander := subcommands.NewCommander(flag.CommandLine, name)
	cmd.Register(commander)

	flag.Parse()
	if err := cmd.LoadEnv(); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading .env: %v\n", err)
		os.Exit(int(subcommands.ExitFailure))
	}
	os.Exit(int(commander.Execute(context.Background())))
}

// completion describes the command line for shell completion. It is enabled
// by running `COMP_INSTALL=1 cgt`.
func completion(name string) *complete.Command {
	methods := make(predict.Set, len(cryptotax.Methods))
	for i, m := range cryptotax.Methods {
		methods[i] = m.String()
	}
	topics, _ := docs.List()
	csv := predict.Files("*.csv")

	sub := make(map[string]*complete.Command)
	for _, c := range cmd.Commands {
		sub[c.Name()] = &complete.Command{Args: csv}
	}
	for _, s := range []string{"gains", "holding", "export"} {
		sub[s].Flags = map[string]complete.Predictor{"method": methods}
	}
	sub["gains"].Flags["period"] = predict.Set{"month", "quarter", "year"}
	sub["gains"].Flags["query"] = predict.Something
	sub["export"].Flags["o"] = predict.Files("*.csv")
	sub["template"].Args = predict.Nothing
	sub["topic"].Args = predict.Set(topics)

	return &complete.Command{
		Sub: sub,
		Flags: map[string]complete.Predictor{
			"config":   predict.Files("*.toml"),
			"currency": predict.Something,
			"v":        predict.Nothing,
		},
	}
}
