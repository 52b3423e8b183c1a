package config

import (
	"fmt"

	"github.com/spf13/viper"

	"returnsfetcher/internal/returns"
)

// Config holds all run configuration for the returns fetcher.
type Config struct {
	// Ticker universe input
	TickerFile   string `mapstructure:"ticker_file"`
	SymbolColumn string `mapstructure:"symbol_column"`

	// Date range for price history, ISO-8601
	StartDate string `mapstructure:"start_date"`
	EndDate   string `mapstructure:"end_date"`

	// Credential for the fallback source. Empty disables the fallback
	// for the whole run; it is not a validation error.
	FMPAPIKey string `mapstructure:"fmp_api_key"`

	// Base URLs for API endpoints (configurable for testing)
	YahooBaseURL string `mapstructure:"yahoo_base_url"`
	FMPBaseURL   string `mapstructure:"fmp_base_url"`

	// Overall run timeout in seconds
	RunTimeoutSecs int `mapstructure:"run_timeout_secs"`

	// Range is the parsed and validated date range.
	Range returns.Range `mapstructure:"-"`
}

// Load reads configuration from environment variables and an optional
// config file. Environment variables take precedence over config file
// values.
//
// Expected environment variables:
//   - TICKER_FILE (optional, defaults to sp500_companies.csv)
//   - SYMBOL_COLUMN (optional, defaults to Symbol)
//   - START_DATE / END_DATE (optional, default 2010-01-01 / 2020-12-31)
//   - FMP_API_KEY (optional; absence disables the fallback source)
//   - YAHOO_BASE_URL (optional, defaults to production)
//   - FMP_BASE_URL (optional, defaults to production)
//   - RUN_TIMEOUT_SECS (optional, defaults to 600)
func Load() (*Config, error) {
	v := viper.New()

	// Set up environment variable support
	v.SetEnvPrefix("") // No prefix, use full names
	v.AutomaticEnv()

	// Defaults mirror the reference pipeline's constants
	v.SetDefault("ticker_file", "sp500_companies.csv")
	v.SetDefault("symbol_column", "Symbol")
	v.SetDefault("start_date", "2010-01-01")
	v.SetDefault("end_date", "2020-12-31")
	v.SetDefault("yahoo_base_url", "https://query1.finance.yahoo.com")
	v.SetDefault("fmp_base_url", "https://financialmodelingprep.com/api/v3/historical-price")
	v.SetDefault("run_timeout_secs", 600)

	// Optionally read from config file if it exists
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.returnsfetcher")

	// Read config file (ignore if not found)
	_ = v.ReadInConfig()

	// Bind environment variables
	v.BindEnv("ticker_file", "TICKER_FILE")
	v.BindEnv("symbol_column", "SYMBOL_COLUMN")
	v.BindEnv("start_date", "START_DATE")
	v.BindEnv("end_date", "END_DATE")
	v.BindEnv("fmp_api_key", "FMP_API_KEY")
	v.BindEnv("yahoo_base_url", "YAHOO_BASE_URL")
	v.BindEnv("fmp_base_url", "FMP_BASE_URL")
	v.BindEnv("run_timeout_secs", "RUN_TIMEOUT_SECS")

	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate the date range up front: a bad range is an operator error,
	// not one of the run's recoverable per-ticker failures.
	from, err := returns.ParseDate(config.StartDate)
	if err != nil {
		return nil, fmt.Errorf("invalid START_DATE: %w", err)
	}
	to, err := returns.ParseDate(config.EndDate)
	if err != nil {
		return nil, fmt.Errorf("invalid END_DATE: %w", err)
	}
	if to.Before(from) {
		return nil, fmt.Errorf("invalid date range: START_DATE %s is after END_DATE %s", from, to)
	}
	config.Range = returns.NewRange(from, to)

	if config.RunTimeoutSecs <= 0 {
		return nil, fmt.Errorf("invalid RUN_TIMEOUT_SECS: %d", config.RunTimeoutSecs)
	}

	return config, nil
}
