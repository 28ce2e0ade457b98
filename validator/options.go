package validator

import (
	"github.com/erraggy/oaslint/internal/logging"
)

// Option is a function that configures a Validator
type Option func(*validateConfig) error

// validateConfig holds configuration for a Validator
type validateConfig struct {
	metaSchemaCheck bool
	logger          logging.Logger
}

// applyOptions applies option functions and validates configuration
func applyOptions(opts ...Option) (*validateConfig, error) {
	cfg := &validateConfig{
		metaSchemaCheck: false,
		logger:          logging.NopLogger{},
	}

	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// WithMetaSchemaCheck enables or disables the cross-check of OpenAPI 3.0
// documents against kin-openapi's model of the specification.
// Default: false
func WithMetaSchemaCheck(enabled bool) Option {
	return func(cfg *validateConfig) error {
		cfg.metaSchemaCheck = enabled
		return nil
	}
}

// WithLogger sets the logger for validation diagnostics.
// Default: no logging
func WithLogger(l logging.Logger) Option {
	return func(cfg *validateConfig) error {
		cfg.logger = logging.OrNop(l)
		return nil
	}
}
