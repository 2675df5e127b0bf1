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

type nftCmd struct {
	json bool
}

func (*nftCmd) Name() string     { return "nft" }
func (*nftCmd) Synopsis() string { return "tax on NFT sales" }
func (*nftCmd) Usage() string {
	return `cgt nft [-json] <sales.csv>

  Splits NFT gains between collectibles and regular assets and estimates the
  tax of each.
`
}

func (c *nftCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.json, "json", false, "Print the result as JSON.")
}

func (c *nftCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
	sales, err := cryptotax.ImportNFTCSV(in, source, cfg.Currency)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading NFT sales: %v\n", err)
		return subcommands.ExitFailure
	}

	tax := cryptotax.CalculateNFTTax(sales, cfg)
	if c.json {
		out, err := json.MarshalIndent(tax, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding NFT tax: %v\n", err)
			return subcommands.ExitFailure
		}
		fmt.Println(string(out))
		return subcommands.ExitSuccess
	}
	printMarkdown(renderer.NFTMarkdown(tax))
	return subcommands.ExitSuccess
}
