package cryptotax

import (
	"errors"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Rates are the flat tax rates used for estimates.
type Rates struct {
	ShortTerm          Rate `toml:"short_term"`
	LongTerm           Rate `toml:"long_term"`
	Ordinary           Rate `toml:"ordinary"`
	HoldDifferential   Rate `toml:"hold_differential"` // Gap between short and long term rates.
	MethodSavings      Rate `toml:"method_savings"`
	Collectible        Rate `toml:"collectible"`
	NFTRegular         Rate `toml:"nft_regular"`
	SelfEmployment     Rate `toml:"self_employment"`
	SelfEmploymentBase Rate `toml:"self_employment_base"` // Share of net earnings subject to self-employment tax.
}

// Thresholds are the amounts, in the configured currency, that trigger optimizations.
type Thresholds struct {
	HarvestLoss    decimal.Decimal `toml:"harvest_loss"`
	HoldGain       decimal.Decimal `toml:"hold_gain"`
	DeferLongTerm  decimal.Decimal `toml:"defer_long_term"`
	OrdinaryOffset decimal.Decimal `toml:"ordinary_offset"` // Capital losses deductible from ordinary income.
	DeferSavings   decimal.Decimal `toml:"defer_savings"`
}

// Config holds the parameters of a calculation. It is never modified by the engine.
type Config struct {
	Currency           string          `toml:"currency"`
	Method             CostBasisMethod `toml:"method"`
	TaxYear            int             `toml:"tax_year"` // 0 uses the year of the latest transaction.
	LongTermDays       int             `toml:"long_term_days"`
	WashSaleWindowDays int             `toml:"wash_sale_window_days"`
	Rates              Rates           `toml:"rates"`
	Thresholds         Thresholds      `toml:"thresholds"`
}

// DefaultConfig returns the US flat-rate configuration.
func DefaultConfig() Config {
	return Config{
		Currency:           DefaultCurrency,
		Method:             FIFO,
		LongTermDays:       365,
		WashSaleWindowDays: DefaultWashSaleWindow,
		Rates: Rates{
			ShortTerm:          R(0.24),
			LongTerm:           R(0.15),
			Ordinary:           R(0.24),
			HoldDifferential:   R(0.09),
			MethodSavings:      R(0.10),
			Collectible:        R(0.28),
			NFTRegular:         R(0.15),
			SelfEmployment:     R(0.153),
			SelfEmploymentBase: R(0.9235),
		},
		Thresholds: Thresholds{
			HarvestLoss:    decimal.NewFromInt(1000),
			HoldGain:       decimal.NewFromInt(1000),
			DeferLongTerm:  decimal.NewFromInt(10000),
			OrdinaryOffset: decimal.NewFromInt(3000),
			DeferSavings:   decimal.NewFromInt(5000),
		},
	}
}

// LoadConfig reads a TOML file over the default configuration. Keys absent
// from the file keep their default value, unknown keys are an error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("could not read config %q: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("unknown keys in config %q: %s", path, strings.Join(keys, ", "))
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config %q: %w", path, err)
	}
	return cfg, nil
}

// Validate checks that the configuration can be used for a calculation.
func (c Config) Validate() error {
	var errs []error
	if money.GetCurrency(c.Currency) == nil {
		errs = append(errs, fmt.Errorf("unknown currency %q", c.Currency))
	}
	if c.LongTermDays <= 0 {
		errs = append(errs, fmt.Errorf("long_term_days must be positive, got %d", c.LongTermDays))
	}
	if c.WashSaleWindowDays < 0 {
		errs = append(errs, fmt.Errorf("wash_sale_window_days must not be negative, got %d", c.WashSaleWindowDays))
	}
	if c.TaxYear < 0 {
		errs = append(errs, fmt.Errorf("tax_year must not be negative, got %d", c.TaxYear))
	}
	rates := []struct {
		name string
		rate Rate
	}{
		{"short_term", c.Rates.ShortTerm},
		{"long_term", c.Rates.LongTerm},
		{"ordinary", c.Rates.Ordinary},
		{"hold_differential", c.Rates.HoldDifferential},
		{"method_savings", c.Rates.MethodSavings},
		{"collectible", c.Rates.Collectible},
		{"nft_regular", c.Rates.NFTRegular},
		{"self_employment", c.Rates.SelfEmployment},
		{"self_employment_base", c.Rates.SelfEmploymentBase},
	}
	for _, r := range rates {
		if r.rate.IsNegative() {
			errs = append(errs, fmt.Errorf("rate %s must not be negative, got %s", r.name, r.rate))
		}
	}
	return errors.Join(errs...)
}

// threshold converts a threshold into money of the configured currency.
func (c Config) threshold(v decimal.Decimal) Money { return M(v, c.Currency) }
