package cryptotax

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cgt.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
currency = "EUR"
method = "hifo"
tax_year = 2024

[rates]
short_term = "30%"
long_term = 0.12

[thresholds]
harvest_loss = 500
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Currency != "EUR" || cfg.Method != HIFO || cfg.TaxYear != 2024 {
		t.Errorf("LoadConfig() = %s %v %d, want EUR hifo 2024", cfg.Currency, cfg.Method, cfg.TaxYear)
	}
	if !cfg.Rates.ShortTerm.Equal(R(0.3)) {
		t.Errorf("Rates.ShortTerm = %v, want 30%%", cfg.Rates.ShortTerm)
	}
	if !cfg.Rates.LongTerm.Equal(R(0.12)) {
		t.Errorf("Rates.LongTerm = %v, want 12%%", cfg.Rates.LongTerm)
	}
	// Keys absent from the file keep their default.
	if !cfg.Rates.Ordinary.Equal(R(0.24)) {
		t.Errorf("Rates.Ordinary = %v, want 24%%", cfg.Rates.Ordinary)
	}
	if !cfg.Thresholds.HarvestLoss.Equal(decimal.NewFromInt(500)) {
		t.Errorf("Thresholds.HarvestLoss = %v, want 500", cfg.Thresholds.HarvestLoss)
	}
	if cfg.LongTermDays != 365 || cfg.WashSaleWindowDays != 30 {
		t.Errorf("LoadConfig() days = %d %d, want 365 30", cfg.LongTermDays, cfg.WashSaleWindowDays)
	}
}

func TestLoadConfig_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		content string
		want    string
	}{
		{name: "unknown key", content: "curency = \"USD\"\n", want: "unknown keys"},
		{name: "unknown method", content: "method = \"average\"\n", want: "unknown cost basis method"},
		{name: "bad rate", content: "[rates]\nordinary = \"lots\"\n", want: "invalid rate"},
		{name: "negative rate", content: "[rates]\nordinary = -0.1\n", want: "must not be negative"},
		{name: "unknown currency", content: "currency = \"ABCD\"\n", want: "unknown currency"},
		{name: "long term days", content: "long_term_days = 0\n", want: "long_term_days"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tc.content))
			if err == nil {
				t.Fatalf("LoadConfig() succeeded, want an error containing %q", tc.want)
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("LoadConfig() error = %v, want it to contain %q", err, tc.want)
			}
		})
	}
}

func TestLoadConfig_Missing(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Errorf("LoadConfig() of a missing file succeeded, want an error")
	}
}
