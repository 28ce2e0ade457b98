package engine

import (
	"fmt"
	"io"

	"github.com/erraggy/oaslint/document"
	"github.com/erraggy/oaslint/internal/options"
	"github.com/erraggy/oaslint/linter"
	"github.com/erraggy/oaslint/oaserrors"
	"github.com/erraggy/oaslint/report"
	"github.com/erraggy/oaslint/resolver"
)

// DefaultMaxInputSize bounds documents read through WithReader.
const DefaultMaxInputSize int64 = 64 << 20

// Option is a function that configures a run
type Option func(*Config) error

// Config is the configuration of a run. It is built from options for each
// run and never shared between runs.
type Config struct {
	// MaxRefDepth bounds consecutive $ref hops
	MaxRefDepth int
	// Workers bounds the number of lint rules running at once
	Workers int
	// DisabledRules lists rule IDs that are not run
	DisabledRules []string
	// CustomRules are compiled and appended to Registry
	CustomRules []linter.CustomRule
	// Registry holds the lint rules (nil for the built-in rules)
	Registry *linter.Registry
	// MetaSchemaCheck cross-checks 3.0 documents with kin-openapi
	MetaSchemaCheck bool
	// Mode selects which stages contribute to the report
	Mode report.Mode
	// Strict makes warnings fail the run
	Strict bool
	// MaxInputSize bounds documents read from a reader
	MaxInputSize int64
	// Logger receives diagnostics
	Logger Logger

	// Input source (exactly one must be set for Run)
	filePath   *string
	data       []byte
	reader     io.Reader
	sourceName string
	format     document.Format
}

func defaultConfig() *Config {
	return &Config{
		MaxRefDepth:  resolver.DefaultMaxDepth,
		MaxInputSize: DefaultMaxInputSize,
		Mode:         report.ModeFull,
		Logger:       NopLogger{},
	}
}

// newConfig applies option functions without requiring an input source.
func newConfig(opts ...Option) (*Config, error) {
	cfg := defaultConfig()
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

// applyOptions applies option functions and validates that exactly one input
// source is set.
func applyOptions(opts ...Option) (*Config, error) {
	cfg, err := newConfig(opts...)
	if err != nil {
		return nil, err
	}
	if _, err := options.SingleSource(
		options.Source{Option: "WithFilePath", Set: cfg.filePath != nil},
		options.Source{Option: "WithBytes", Set: cfg.data != nil},
		options.Source{Option: "WithReader", Set: cfg.reader != nil},
	); err != nil {
		return nil, err
	}
	return cfg, nil
}

// WithFilePath specifies a YAML or JSON file as the input source
func WithFilePath(path string) Option {
	return func(cfg *Config) error {
		cfg.filePath = &path
		return nil
	}
}

// WithBytes specifies a byte slice as the input source
func WithBytes(data []byte) Option {
	return func(cfg *Config) error {
		if data == nil {
			return fmt.Errorf("engine: bytes cannot be nil")
		}
		cfg.data = data
		return nil
	}
}

// WithReader specifies an io.Reader as the input source
func WithReader(r io.Reader) Option {
	return func(cfg *Config) error {
		if r == nil {
			return fmt.Errorf("engine: reader cannot be nil")
		}
		cfg.reader = r
		return nil
	}
}

// WithSourceName sets the name reported for byte or reader input, e.g. "<stdin>"
func WithSourceName(name string) Option {
	return func(cfg *Config) error {
		cfg.sourceName = name
		return nil
	}
}

// WithFormat forces the input format instead of detecting it
// Default: detected from the file extension, then the content
func WithFormat(f document.Format) Option {
	return func(cfg *Config) error {
		cfg.format = f
		return nil
	}
}

// WithMaxRefDepth bounds consecutive $ref hops.
// Default: 64
func WithMaxRefDepth(n int) Option {
	return func(cfg *Config) error {
		if n < 1 {
			return &oaserrors.ConfigError{Option: "max_ref_depth", Value: n, Message: "must be at least 1"}
		}
		cfg.MaxRefDepth = n
		return nil
	}
}

// WithWorkers bounds the number of lint rules running at once.
// Default: GOMAXPROCS
func WithWorkers(n int) Option {
	return func(cfg *Config) error {
		if n < 1 {
			return &oaserrors.ConfigError{Option: "workers", Value: n, Message: "must be at least 1"}
		}
		cfg.Workers = n
		return nil
	}
}

// WithDisabledRules skips the rules with the given IDs. Unknown IDs are a
// configuration error.
func WithDisabledRules(ids ...string) Option {
	return func(cfg *Config) error {
		cfg.DisabledRules = append(cfg.DisabledRules, ids...)
		return nil
	}
}

// WithCustomRules adds expression rules after the built-in rules.
func WithCustomRules(rules ...linter.CustomRule) Option {
	return func(cfg *Config) error {
		cfg.CustomRules = append(cfg.CustomRules, rules...)
		return nil
	}
}

// WithRegistry replaces the built-in rules.
func WithRegistry(reg *linter.Registry) Option {
	return func(cfg *Config) error {
		cfg.Registry = reg
		return nil
	}
}

// WithMetaSchemaCheck enables the kin-openapi cross-check of 3.0 documents.
// Default: false
func WithMetaSchemaCheck(enabled bool) Option {
	return func(cfg *Config) error {
		cfg.MetaSchemaCheck = enabled
		return nil
	}
}

// WithMode selects which stages contribute to the report.
// Default: report.ModeFull
func WithMode(m report.Mode) Option {
	return func(cfg *Config) error {
		cfg.Mode = m
		return nil
	}
}

// WithStrict makes warnings fail the run.
// Default: false
func WithStrict(enabled bool) Option {
	return func(cfg *Config) error {
		cfg.Strict = enabled
		return nil
	}
}

// WithMaxInputSize bounds documents read through WithReader.
// Default: 64 MiB
func WithMaxInputSize(n int64) Option {
	return func(cfg *Config) error {
		if n < 1 {
			return &oaserrors.ConfigError{Option: "max_input_size", Value: n, Message: "must be positive"}
		}
		cfg.MaxInputSize = n
		return nil
	}
}

// WithLogger sets the logger for run diagnostics.
// Default: no logging
func WithLogger(l Logger) Option {
	return func(cfg *Config) error {
		cfg.Logger = OrNop(l)
		return nil
	}
}
