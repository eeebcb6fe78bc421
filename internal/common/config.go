// Package common provides shared utilities for the csfin portfolio ledger.
package common

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"
)

// Config holds all configuration for csfin.
type Config struct {
	Environment string        `toml:"environment"`
	Data        DataConfig    `toml:"data"`
	Logging     LoggingConfig `toml:"logging"`
}

// DataConfig locates the snapshot document and the raw ingest inputs inside
// the data directory.
type DataConfig struct {
	Directory           string `toml:"directory"`
	AppdataFile         string `toml:"appdata_file"`
	StockMetadataFile   string `toml:"stock_metadata_file"`
	DividendDataFile    string `toml:"dividend_data_file"`
	StockSplitsFile     string `toml:"stock_splits_file"`
	TaxDataFile         string `toml:"tax_data_file"`
	TransactionsDirName string `toml:"transactions_dir"`
	QuotesDirName       string `toml:"quotes_dir"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// NewDefaultConfig returns a Config with sensible defaults.
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Data: DataConfig{
			Directory:           "data",
			AppdataFile:         "application-data.json",
			StockMetadataFile:   "stock-metadata.json",
			DividendDataFile:    "dividend-data.json",
			StockSplitsFile:     "stock-split-data.json",
			TaxDataFile:         "tax-data.json",
			TransactionsDirName: "transactions",
			QuotesDirName:       "quotes",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// LoadConfig loads configuration from TOML files with environment overrides.
// Later files override earlier ones; missing files are skipped. A .env file
// in the working directory is honored before environment variables are read.
func LoadConfig(paths ...string) (*Config, error) {
	// Absence of a .env file is not an error.
	_ = godotenv.Load()

	config := NewDefaultConfig()

	for _, path := range paths {
		if path == "" {
			continue
		}

		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config.
// CSFIN_DATA_DIRECTORY is the primary switch; the file name overrides keep
// their legacy names.
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("CSFIN_ENV"); env != "" {
		config.Environment = env
	}

	if level := os.Getenv("CSFIN_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}

	if dir := os.Getenv("CSFIN_DATA_DIRECTORY"); dir != "" {
		config.Data.Directory = dir
	}

	if v := os.Getenv("JSON_APPDATA_FILE_NAME"); v != "" {
		config.Data.AppdataFile = v
	}
	if v := os.Getenv("JSON_STOCK_METADATA_FILE_NAME"); v != "" {
		config.Data.StockMetadataFile = v
	}
	if v := os.Getenv("JSON_DIVIDEND_DATA_FILE_NAME"); v != "" {
		config.Data.DividendDataFile = v
	}
	if v := os.Getenv("JSON_STOCK_SPLITS_FILE_NAME"); v != "" {
		config.Data.StockSplitsFile = v
	}
	if v := os.Getenv("JSON_TAX_DATA_FILE_NAME"); v != "" {
		config.Data.TaxDataFile = v
	}
	if v := os.Getenv("RAW_TRANSACTION_DATA_DIR_NAME"); v != "" {
		config.Data.TransactionsDirName = v
	}
	if v := os.Getenv("RAW_QUOTE_DATA_DIR_NAME"); v != "" {
		config.Data.QuotesDirName = v
	}
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	env := strings.ToLower(strings.TrimSpace(c.Environment))
	return env == "production" || env == "prod"
}
