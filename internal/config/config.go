package config

import (
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// ---------------------------------------------------------------------------
// Configuration structs
// ---------------------------------------------------------------------------

// Config is the top-level configuration for a tradekit backtest run.
type Config struct {
	Storage  Storage        `yaml:"storage"`
	Backtest BacktestConfig `yaml:"backtest"`
	Logging  Logging        `yaml:"logging"`
	Report   ReportConfig   `yaml:"report"`
}

// Storage holds paths and formats for price data and run persistence.
type Storage struct {
	DataDir    string `yaml:"data_dir"`
	Format     string `yaml:"format"` // "csv" or "parquet"
	SQLitePath string `yaml:"sqlite_path"`
}

// BacktestConfig holds the simulation parameters.
type BacktestConfig struct {
	Strategy           string  `yaml:"strategy"`
	HistorySize        int     `yaml:"history_size"`
	RiskFreeRateAnnual float64 `yaml:"risk_free_rate_annual"`
	Workers            int     `yaml:"workers"`
	ShortPeriod        int     `yaml:"short_period"`
	LongPeriod         int     `yaml:"long_period"`
	KeepDetails        bool    `yaml:"keep_details"`
}

// Logging configures the application logger.
type Logging struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// ReportConfig holds output paths for run artifacts. Empty fields disable
// the corresponding artifact.
type ReportConfig struct {
	CSVPath  string `yaml:"csv_path"`
	ChartDir string `yaml:"chart_dir"`
}

// Default returns the configuration used when no config file is given.
func Default() *Config {
	return &Config{
		Storage: Storage{
			DataDir: "data",
			Format:  "csv",
		},
		Backtest: BacktestConfig{
			Strategy:    "sma-cross",
			HistorySize: 30,
			Workers:     1,
			ShortPeriod: 10,
			LongPeriod:  30,
		},
		Logging: Logging{
			Level:  "info",
			Format: "json",
		},
	}
}

// ---------------------------------------------------------------------------
// Loading
// ---------------------------------------------------------------------------

// Load reads the YAML configuration file at the given path, parses it into a
// Config struct, and then applies environment variable overrides.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	return cfg, nil
}

// applyEnvOverrides checks well-known environment variables and overrides the
// corresponding configuration fields when they are set.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("DATA_DIR"); v != "" {
		cfg.Storage.DataDir = v
	}

	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Storage.SQLitePath = v
	}

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}

	if v := os.Getenv("HISTORY_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Backtest.HistorySize = n
		}
	}

	if v := os.Getenv("RISK_FREE_RATE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Backtest.RiskFreeRateAnnual = f
		}
	}
}
