package linter

import (
	"runtime"

	"github.com/erraggy/oaslint/internal/logging"
	"github.com/erraggy/oaslint/oaserrors"
)

// Option is a function that configures a Linter
type Option func(*lintConfig) error

// lintConfig holds configuration for a Linter
type lintConfig struct {
	workers  int
	disabled []string
	logger   logging.Logger
}

// applyOptions applies option functions and validates configuration
func applyOptions(opts ...Option) (*lintConfig, error) {
	cfg := &lintConfig{
		workers: runtime.GOMAXPROCS(0),
		logger:  logging.NopLogger{},
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

// WithWorkers bounds the number of rules run concurrently.
// Default: GOMAXPROCS
func WithWorkers(n int) Option {
	return func(cfg *lintConfig) error {
		if n < 1 {
			return &oaserrors.ConfigError{Option: "workers", Value: n, Message: "must be at least 1"}
		}
		cfg.workers = n
		return nil
	}
}

// WithDisabledRules skips the named rules. Every ID must be registered.
func WithDisabledRules(ids ...string) Option {
	return func(cfg *lintConfig) error {
		cfg.disabled = append(cfg.disabled, ids...)
		return nil
	}
}

// WithLogger sets the logger for rule diagnostics.
func WithLogger(l logging.Logger) Option {
	return func(cfg *lintConfig) error {
		cfg.logger = logging.OrNop(l)
		return nil
	}
}
