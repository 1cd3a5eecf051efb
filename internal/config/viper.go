// Package config provides Viper-based hierarchical configuration management
package config

import (
	"fmt"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config represents the complete application configuration
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	CSV struct {
		Delimiter  string `mapstructure:"delimiter" yaml:"delimiter"`
		DateFormat string `mapstructure:"date_format" yaml:"date_format"`
	} `mapstructure:"csv" yaml:"csv"`

	Company struct {
		RUT  string `mapstructure:"rut" yaml:"rut"`
		Name string `mapstructure:"name" yaml:"name"`
	} `mapstructure:"company" yaml:"company"`

	Ledger struct {
		Period         string `mapstructure:"period" yaml:"period"`
		OpeningBalance string `mapstructure:"opening_balance" yaml:"opening_balance"`
	} `mapstructure:"ledger" yaml:"ledger"`

	Report struct {
		Currency string `mapstructure:"currency" yaml:"currency"`
		Format   string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"report" yaml:"report"`

	Paths struct {
		Aliases  string `mapstructure:"aliases" yaml:"aliases"`
		DocTypes string `mapstructure:"doc_types" yaml:"doc_types"`
	} `mapstructure:"paths" yaml:"paths"`
}

// InitializeConfig initializes Viper configuration with hierarchical loading
func InitializeConfig() (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Config file locations
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.libro-caja")
	v.AddConfigPath(".libro-caja")
	v.AddConfigPath(".")

	// 3. Environment variables
	v.SetEnvPrefix("LIBROCAJA")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// 4. Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Continue with defaults and env vars, but tell the user
			fmt.Printf("Warning: error reading config file %s: %v\n", v.ConfigFileUsed(), err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 5. Validate configuration
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	// Ledger CSV output defaults. SII exports use semicolons, so the
	// ledger we write does too.
	v.SetDefault("csv.delimiter", ";")
	v.SetDefault("csv.date_format", "DD/MM/YYYY")

	// Company defaults
	v.SetDefault("company.rut", "")
	v.SetDefault("company.name", "")

	// Ledger defaults
	v.SetDefault("ledger.period", "")
	v.SetDefault("ledger.opening_balance", "0")

	// Report defaults
	v.SetDefault("report.currency", "CLP")
	v.SetDefault("report.format", "text")

	// Alias and doc-type override files (empty means built-in tables)
	v.SetDefault("paths.aliases", "")
	v.SetDefault("paths.doc_types", "")
}

// validateConfig validates the configuration values
func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	if len(config.CSV.Delimiter) != 1 {
		return fmt.Errorf("CSV delimiter must be a single character, got: %s", config.CSV.Delimiter)
	}

	if config.Report.Format != "text" && config.Report.Format != "json" {
		return fmt.Errorf("invalid report format: %s (must be 'text' or 'json')", config.Report.Format)
	}

	if money.GetCurrency(strings.ToUpper(config.Report.Currency)) == nil {
		return fmt.Errorf("unknown report currency: %s", config.Report.Currency)
	}

	return nil
}

// ConfigureLoggingFromConfig configures logging based on the Config struct
func ConfigureLoggingFromConfig(config *Config) *logrus.Logger {
	logger := logrus.New()

	logLevel, err := logrus.ParseLevel(strings.ToLower(config.Log.Level))
	if err != nil {
		logger.Warnf("Invalid log level '%s', using 'info'", config.Log.Level)
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	if strings.ToLower(config.Log.Format) == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	return logger
}
