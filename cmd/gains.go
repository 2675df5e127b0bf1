package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/cryptotax"
	"github.com/etnz/cryptotax/date"
	"github.com/etnz/cryptotax/renderer"
	"github.com/google/subcommands"
)

// gainsCmd holds the flags for the 'gains' subcommand.
type gainsCmd struct {
	method string
	year   int
	period string
	end    string
	json   bool
	query  string
}

func (*gainsCmd) Name() string     { return "gains" }
func (*gainsCmd) Synopsis() string { return "capital gains report of a transaction file" }
func (*gainsCmd) Usage() string {
	return `cgt gains [-method <method>] [-year <year> | -period <period> -d <date>] [-json] [-query <jsonpath>] <file.csv>

  Matches disposals against acquisition lots and reports realized gains,
  wash sales, holdings, the estimated tax and recommendations.

  -query prints the part of the JSON report selected by a JSONPath
  expression, for instance '$.short_term_gains' or '$.gains[*].gain'.
`
}

func (c *gainsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.method, "method", "", "Cost basis method (fifo, lifo, hifo). Defaults to the configuration.")
	f.IntVar(&c.year, "year", 0, "Tax year to report on. Defaults to the configuration, or all transactions.")
	f.StringVar(&c.period, "period", "", "Report on the period (month, quarter, year) containing -d instead of a tax year.")
	f.StringVar(&c.end, "d", date.Today().String(), "Date of the reporting period, used with -period.")
	f.BoolVar(&c.json, "json", false, "Print the report as JSON.")
	f.StringVar(&c.query, "query", "", "Print the JSONPath selection of the JSON report.")
}

// reportPeriod returns the reporting range selected by the flags, or nil for all transactions.
func (c *gainsCmd) reportPeriod(cfg cryptotax.Config) (*date.Range, error) {
	if c.period != "" {
		if c.year != 0 {
			return nil, fmt.Errorf("-year and -period flags cannot be used together")
		}
		p, err := date.ParsePeriod(c.period)
		if err != nil {
			return nil, err
		}
		on, err := date.Parse(c.end)
		if err != nil {
			return nil, err
		}
		r := date.NewRange(on, p)
		return &r, nil
	}
	return taxYear(c.year, cfg), nil
}

func (c *gainsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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
	period, err := c.reportPeriod(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing period: %v\n", err)
		return subcommands.ExitUsageError
	}
	txs, err := readTransactions(name, cfg.Currency)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading transactions: %v\n", err)
		return subcommands.ExitFailure
	}

	calc := newCalculator(cfg)
	calc.Period = period
	report, err := calc.Calculate(txs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error calculating gains: %v\n", err)
		return subcommands.ExitFailure
	}

	switch {
	case c.query != "":
		out, err := queryJSON(report, c.query)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error querying report: %v\n", err)
			return subcommands.ExitFailure
		}
		fmt.Println(string(out))
	case c.json:
		out, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding report: %v\n", err)
			return subcommands.ExitFailure
		}
		fmt.Println(string(out))
	default:
		printMarkdown(renderer.ReportMarkdown(report))
	}
	return subcommands.ExitSuccess
}

// queryJSON evaluates a JSONPath expression on the JSON encoding of v and
// returns the indented JSON of the selection.
func queryJSON(v any, query string) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	selected, err := jsonpath.Get(query, doc)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(selected, "", "  ")
}
