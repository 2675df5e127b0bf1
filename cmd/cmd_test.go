package cmd

import (
	"context"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/etnz/cryptotax"
	"github.com/etnz/cryptotax/date"
	"github.com/google/go-cmp/cmp"
	"github.com/google/subcommands"
)

// Helper function to create a temporary file
func createTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write temp file: %v", err)
	}
	return path
}

// isolate resets the global flags and the environment variables read by loadConfig.
func isolate(t *testing.T) {
	t.Helper()
	oldConfig, oldCurrency := *configFile, *currencyFlag
	*configFile, *currencyFlag = "", ""
	t.Cleanup(func() { *configFile, *currencyFlag = oldConfig, oldCurrency })
	t.Setenv("CGT_CONFIG", "")
	t.Setenv("CGT_METHOD", "")
	t.Setenv("CGT_CURRENCY", "")
}

func execute(t *testing.T, cmd subcommands.Command, args ...string) subcommands.ExitStatus {
	t.Helper()
	f := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	cmd.SetFlags(f)
	if err := f.Parse(args); err != nil {
		t.Fatalf("Parse(%q) error = %v", args, err)
	}
	return cmd.Execute(context.Background(), f)
}

func TestLoadConfig(t *testing.T) {
	testCases := []struct {
		name         string
		file         string
		env          map[string]string
		method       string
		currency     string
		wantMethod   cryptotax.CostBasisMethod
		wantCurrency string
	}{
		{
			name:         "defaults",
			wantMethod:   cryptotax.FIFO,
			wantCurrency: "USD",
		},
		{
			name:         "file",
			file:         "method = \"lifo\"\ncurrency = \"EUR\"\n",
			wantMethod:   cryptotax.LIFO,
			wantCurrency: "EUR",
		},
		{
			name:         "environment overrides file",
			file:         "method = \"lifo\"\ncurrency = \"EUR\"\n",
			env:          map[string]string{"CGT_METHOD": "hifo", "CGT_CURRENCY": "gbp"},
			wantMethod:   cryptotax.HIFO,
			wantCurrency: "GBP",
		},
		{
			name:         "flags override environment",
			env:          map[string]string{"CGT_METHOD": "hifo", "CGT_CURRENCY": "GBP"},
			method:       "lifo",
			currency:     "chf",
			wantMethod:   cryptotax.LIFO,
			wantCurrency: "CHF",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			isolate(t)
			if tc.file != "" {
				t.Setenv("CGT_CONFIG", createTempFile(t, "cgt.toml", tc.file))
			}
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			*currencyFlag = tc.currency

			cfg, err := loadConfig(tc.method)
			if err != nil {
				t.Fatalf("loadConfig() error = %v", err)
			}
			if cfg.Method != tc.wantMethod {
				t.Errorf("loadConfig().Method = %v, want %v", cfg.Method, tc.wantMethod)
			}
			if cfg.Currency != tc.wantCurrency {
				t.Errorf("loadConfig().Currency = %q, want %q", cfg.Currency, tc.wantCurrency)
			}
		})
	}
}

func TestLoadConfig_Invalid(t *testing.T) {
	isolate(t)
	t.Setenv("CGT_METHOD", "average")
	if _, err := loadConfig(""); err == nil {
		t.Error("loadConfig() with an unknown method succeeded, want an error")
	}

	isolate(t)
	*currencyFlag = "XYZ"
	if _, err := loadConfig(""); err == nil {
		t.Error("loadConfig() with an unknown currency succeeded, want an error")
	}
}

func TestTaxYear(t *testing.T) {
	cfg := cryptotax.DefaultConfig()
	if r := taxYear(0, cfg); r != nil {
		t.Errorf("taxYear(0) = %v, want nil", r)
	}
	if r := taxYear(2024, cfg); r == nil || r.Identifier() != "2024" {
		t.Errorf("taxYear(2024) = %v, want 2024", r)
	}
	cfg.TaxYear = 2023
	if r := taxYear(0, cfg); r == nil || r.Identifier() != "2023" {
		t.Errorf("taxYear(0) with tax_year 2023 = %v, want 2023", r)
	}
}

func TestQueryJSON(t *testing.T) {
	txs := []cryptotax.Transaction{
		cryptotax.NewTransaction("a", date.MustParse("2024-01-01"), cryptotax.Buy, "BTC", 1, 10000, 10000, "", "USD"),
		cryptotax.NewTransaction("b", date.MustParse("2024-03-01"), cryptotax.Sell, "BTC", 1, 0, 15000, "", "USD"),
	}
	report, err := cryptotax.CalculateGains(txs, cryptotax.FIFO)
	if err != nil {
		t.Fatalf("CalculateGains() error = %v", err)
	}

	testCases := []struct {
		query string
		want  string
	}{
		{"$.short_term_gains", "5000"},
		{"$.method", `"fifo"`},
		{"$.gains[*].lot_id", "[\n  \"a\"\n]"},
	}
	for _, tc := range testCases {
		t.Run(tc.query, func(t *testing.T) {
			got, err := queryJSON(report, tc.query)
			if err != nil {
				t.Fatalf("queryJSON(%q) error = %v", tc.query, err)
			}
			if diff := cmp.Diff(tc.want, string(got)); diff != "" {
				t.Errorf("queryJSON(%q) mismatch (-want +got):\n%s", tc.query, diff)
			}
		})
	}

	if _, err := queryJSON(report, "$.gains["); err == nil {
		t.Error("queryJSON() with an invalid path succeeded, want an error")
	}
}

func TestFmtCmd_Write(t *testing.T) {
	isolate(t)
	input := `date,type,asset,amount,cost_basis,fair_market_value,exchange,id
2024-06-20,sell,btc,0.5,20000,25000,Coinbase,b
2024-01-15,buy,btc,0.5,20000,20000,Coinbase,a
`
	want := `date,type,asset,amount,cost_basis,fair_market_value,exchange,description,id
2024-01-15,buy,BTC,0.5,20000,20000,Coinbase,,a
2024-06-20,sell,BTC,0.5,20000,25000,Coinbase,,b
`
	path := createTempFile(t, "transactions.csv", input)

	if status := execute(t, &fmtCmd{}, "-w", path); status != subcommands.ExitSuccess {
		t.Fatalf("fmt -w returned %v, want ExitSuccess", status)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read formatted file: %v", err)
	}
	if diff := cmp.Diff(want, string(got)); diff != "" {
		t.Errorf("fmt -w mismatch (-want +got):\n%s", diff)
	}
}

func TestFmtCmd_JSONL(t *testing.T) {
	isolate(t)
	input := `{"id":"b","date":"2024-06-20","type":"sell","asset":"BTC","amount":0.5,"cost_basis":20000,"fair_market_value":25000}
{"id":"a","date":"2024-01-15","type":"buy","asset":"BTC","amount":0.5,"cost_basis":20000,"fair_market_value":20000,"exchange":"Coinbase"}
`
	want := `{"id":"a","date":"2024-01-15","type":"buy","asset":"BTC","amount":0.5,"cost_basis":20000,"fair_market_value":20000,"currency":"USD","exchange":"Coinbase"}
{"id":"b","date":"2024-06-20","type":"sell","asset":"BTC","amount":0.5,"cost_basis":20000,"fair_market_value":25000,"currency":"USD"}
`
	path := createTempFile(t, "transactions.jsonl", input)

	if status := execute(t, &fmtCmd{}, "-w", path); status != subcommands.ExitSuccess {
		t.Fatalf("fmt -w returned %v, want ExitSuccess", status)
	}
	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read formatted file: %v", err)
	}
	if diff := cmp.Diff(want, string(got)); diff != "" {
		t.Errorf("fmt -w mismatch (-want +got):\n%s", diff)
	}
}

func TestFmtCmd_Errors(t *testing.T) {
	isolate(t)
	invalid := createTempFile(t, "invalid.csv", "date,type,asset,amount,cost_basis,fair_market_value\n2024-01-15,swap,BTC,1,1,1\n")

	testCases := []struct {
		name string
		args []string
		want subcommands.ExitStatus
	}{
		{"no file", nil, subcommands.ExitUsageError},
		{"too many files", []string{"a.csv", "b.csv"}, subcommands.ExitUsageError},
		{"stdin with -w", []string{"-w", "-"}, subcommands.ExitUsageError},
		{"missing file", []string{filepath.Join(t.TempDir(), "missing.csv")}, subcommands.ExitFailure},
		{"invalid file", []string{invalid}, subcommands.ExitFailure},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := execute(t, &fmtCmd{}, tc.args...); got != tc.want {
				t.Errorf("fmt %q = %v, want %v", tc.args, got, tc.want)
			}
		})
	}
}

func TestExportCmd(t *testing.T) {
	isolate(t)
	input := `date,type,asset,amount,cost_basis,fair_market_value,id
2023-01-01,buy,BTC,1,10000,10000,a
2024-03-01,sell,BTC,1,0,15000,b
2024-05-01,buy,ETH,2,4000,4000,c
2025-02-01,sell,ETH,2,0,5000,d
`
	want := `sale_date,asset,amount,lot_date,proceeds,cost_basis,gain,term,sale_id,lot_id
2024-03-01,BTC,1,2023-01-01,15000.00,10000.00,5000.00,long,b,a
`
	in := createTempFile(t, "transactions.csv", input)
	out := filepath.Join(t.TempDir(), "gains.csv")

	if status := execute(t, &exportCmd{}, "-year", "2024", "-o", out, in); status != subcommands.ExitSuccess {
		t.Fatalf("export returned %v, want ExitSuccess", status)
	}
	got, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("Failed to read exported file: %v", err)
	}
	if diff := cmp.Diff(want, string(got)); diff != "" {
		t.Errorf("export mismatch (-want +got):\n%s", diff)
	}
}

func TestGainsCmd_Errors(t *testing.T) {
	isolate(t)
	in := createTempFile(t, "transactions.csv", cryptotax.CSVTemplate())

	testCases := []struct {
		name string
		args []string
		want subcommands.ExitStatus
	}{
		{"unknown method", []string{"-method", "average", in}, subcommands.ExitUsageError},
		{"year and period", []string{"-year", "2024", "-period", "quarter", in}, subcommands.ExitUsageError},
		{"unknown period", []string{"-period", "week", in}, subcommands.ExitUsageError},
		{"invalid query", []string{"-query", "$.gains[", in}, subcommands.ExitFailure},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := execute(t, &gainsCmd{}, tc.args...); got != tc.want {
				t.Errorf("gains %q = %v, want %v", tc.args, got, tc.want)
			}
		})
	}
}

func TestCommands(t *testing.T) {
	seen := make(map[string]bool)
	for _, c := range Commands {
		if seen[c.Name()] {
			t.Errorf("command %q is registered twice", c.Name())
		}
		seen[c.Name()] = true
		if !strings.HasPrefix(c.Usage(), "cgt "+c.Name()) {
			t.Errorf("%s.Usage() = %q, want it to start with %q", c.Name(), c.Usage(), "cgt "+c.Name())
		}
	}
}
