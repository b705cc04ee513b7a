// internal/preprocessor/config.go
package preprocessor

import appconfig "monitor-preprocessor/internal/common/config"

// Config holds the per-handler settings.
type Config struct {
	// ValidateOutput re-checks the serialized mapping against the
	// positional-key schema; violations are logged, never returned.
	ValidateOutput bool
	// MetricsEnabled toggles the prometheus instrumentation.
	MetricsEnabled bool
}

// LoadConfig returns the default handler configuration.
func LoadConfig() *Config {
	return &Config{
		MetricsEnabled: true,
	}
}

// FromAppConfig derives the handler configuration from the application
// configuration.
func FromAppConfig(cfg *appconfig.Config) *Config {
	return &Config{
		ValidateOutput: cfg.Preprocessor.ValidateOutput,
		MetricsEnabled: cfg.Preprocessor.MetricsEnabled,
	}
}
