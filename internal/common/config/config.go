// internal/common/config/config.go
package config

import "fmt"

// Config is the main application configuration struct.
type Config struct {
	App          AppConfig          `mapstructure:"app"`
	Logging      LoggingConfig      `mapstructure:"logging"`
	Preprocessor PreprocessorConfig `mapstructure:"preprocessor"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// PreprocessorConfig holds the knobs of the flattening pipeline itself.
type PreprocessorConfig struct {
	// ValidateOutput re-checks every flat mapping against the positional
	// key schema. Violations are logged, never returned.
	ValidateOutput bool `mapstructure:"validate_output"`
	// MetricsEnabled toggles the prometheus counters and histograms.
	MetricsEnabled bool `mapstructure:"metrics_enabled"`
}

func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "monitor-preprocessor"
	}
	if cfg.App.Environment == "" {
		cfg.App.Environment = "development"
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
}

func validateConfig(cfg *Config) error {
	switch cfg.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unsupported logging level %q", cfg.Logging.Level)
	}

	switch cfg.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("unsupported logging format %q", cfg.Logging.Format)
	}

	return nil
}
