// Package config defines service configuration and its loading layers.
package config

import (
	"fmt"
	"strings"

	"github.com/okian/intake/internal/domain/model"
	"github.com/okian/intake/pkg/logger"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// EventQueueSize bounds the in-memory event queue in front of the form session.
	EventQueueSize int `koanf:"queue_size"`

	// RequireTouched makes submit readiness wait until at least one field was touched.
	RequireTouched bool `koanf:"require_touched"`

	// NoFileLabel is shown when no resume file is selected.
	NoFileLabel string `koanf:"no_file_label"`
}

// New returns a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:       "info",
		LogFormat:      string(logger.FormatText),
		Addr:           ":9080",
		EventQueueSize: 1024,
		RequireTouched: true,
		NoFileLabel:    model.NoFileLabel,
	}
}

// Validate reports the first invalid setting wrapped in ErrInvalidConfig.
func (c *Config) Validate() error {
	switch {
	case strings.TrimSpace(c.Addr) == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.EventQueueSize <= 0:
		return fmt.Errorf("%w: queue_size must be positive, got %d", ErrInvalidConfig, c.EventQueueSize)
	}
	if _, err := logger.ParseFormat(c.LogFormat); err != nil {
		return fmt.Errorf("%w: log_format: %w", ErrInvalidConfig, err)
	}
	if !knownLevel(c.LogLevel) {
		return fmt.Errorf("%w: log_level %q", ErrInvalidConfig, c.LogLevel)
	}
	return nil
}

func knownLevel(level string) bool {
	switch strings.ToLower(level) {
	case "debug", "info", "warn", "warning", "error":
		return true
	}
	return false
}
