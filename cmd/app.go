// Package cmd implements the cgt command line application.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/etnz/cryptotax"
	"github.com/etnz/cryptotax/date"
	"github.com/google/subcommands"
	"github.com/joho/godotenv"
)

// Commands lists every subcommand in the order of the help message.
var Commands = []subcommands.Command{
	&gainsCmd{},
	&compareCmd{},
	&holdingCmd{},
	&exportCmd{},
	&fmtCmd{},
	&templateCmd{},
	&miningCmd{},
	&nftCmd{},
	&topicCmd{},
}

// Register the subcommands.
func Register(c *subcommands.Commander) {
	for _, cmd := range Commands {
		c.Register(cmd, "")
	}
	c.Register(c.HelpCommand(), "")
	c.Register(c.FlagsCommand(), "")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var configFile = flag.String("config", "", "Path to a TOML configuration file. Defaults to $CGT_CONFIG.")
var currencyFlag = flag.String("currency", "", "Currency of the money values. Overrides the configuration.")
var verbose = flag.Bool("v", false, "Log the details of the calculation on stderr.")

// LoadEnv reads the .env file of the working directory, if any.
func LoadEnv() error {
	err := godotenv.Load()
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// Logger returns the logger of the application.
func Logger() *slog.Logger {
	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// loadConfig returns the configuration from the file, the environment and
// the flags, in increasing order of precedence. method is ignored when empty.
func loadConfig(method string) (cryptotax.Config, error) {
	cfg := cryptotax.DefaultConfig()
	path := *configFile
	if path == "" {
		path = os.Getenv("CGT_CONFIG")
	}
	if path != "" {
		var err error
		if cfg, err = cryptotax.LoadConfig(path); err != nil {
			return cfg, err
		}
	}
	if method == "" {
		method = os.Getenv("CGT_METHOD")
	}
	if method != "" {
		m, err := cryptotax.ParseCostBasisMethod(method)
		if err != nil {
			return cfg, err
		}
		cfg.Method = m
	}
	currency := *currencyFlag
	if currency == "" {
		currency = os.Getenv("CGT_CURRENCY")
	}
	if currency != "" {
		cfg.Currency = strings.ToUpper(currency)
	}
	return cfg, cfg.Validate()
}

// newCalculator returns a calculator for the configuration, logging on stderr.
func newCalculator(cfg cryptotax.Config) *cryptotax.Calculator {
	c := cryptotax.NewCalculator(cfg)
	c.Logger = Logger()
	return c
}

// readTransactions imports the transaction file name, or stdin when name is "-".
// Files ending in .jsonl hold one JSON transaction per line, others are CSV.
func readTransactions(name, currency string) ([]cryptotax.Transaction, error) {
	f, source, err := openFile(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	if isJSONL(name) {
		return cryptotax.ImportJSONL(f, source, currency)
	}
	return cryptotax.ImportCSV(f, source, currency)
}

func isJSONL(name string) bool { return strings.EqualFold(filepath.Ext(name), ".jsonl") }

// inputFile returns the single file argument of a command.
func inputFile(f *flag.FlagSet) (string, error) {
	switch f.NArg() {
	case 0:
		return "", errors.New("missing input file, use - to read stdin")
	case 1:
		return f.Arg(0), nil
	default:
		return "", fmt.Errorf("expected one input file, got %d", f.NArg())
	}
}

// openFile opens name, or stdin when name is "-".
func openFile(name string) (*os.File, string, error) {
	if name == "-" {
		return os.Stdin, "stdin", nil
	}
	f, err := os.Open(name)
	return f, name, err
}

// taxYear returns the range of year, or of the configured tax year when year
// is zero. It returns nil when neither is set.
func taxYear(year int, cfg cryptotax.Config) *date.Range {
	if year == 0 {
		year = cfg.TaxYear
	}
	if year == 0 {
		return nil
	}
	r := date.TaxYear(year)
	return &r
}
