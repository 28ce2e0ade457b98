// Package logging is the structured logging seam of the oaslint pipeline.
// The loader, resolver, validator, linter and engine all log through Logger;
// library callers plug in log/slog (or anything shaped like it) and get
// nothing by default.
package logging

import (
	"log/slog"
	"time"
)

// Logger receives pipeline diagnostics as a message plus alternating
// key-value attributes:
//
//	logger.Debug("reference fault", "code", "CIRCULAR_REFERENCE", "path", "/components/schemas/Node")
//
// Per-run loggers carry the run id through With.
type Logger interface {
	Debug(msg string, attrs ...any)
	Info(msg string, attrs ...any)
	Warn(msg string, attrs ...any)
	Error(msg string, attrs ...any)
	With(attrs ...any) Logger
}

// NopLogger discards everything. It is what every stage uses when no
// logger was configured.
type NopLogger struct{}

func (NopLogger) Debug(string, ...any) {}
func (NopLogger) Info(string, ...any)  {}
func (NopLogger) Warn(string, ...any)  {}
func (NopLogger) Error(string, ...any) {}

// With returns the receiver; there is nothing to attach attributes to.
func (n NopLogger) With(...any) Logger { return n }

// SlogAdapter forwards to a *slog.Logger. The CLI gives it a text handler
// on stderr with -v; the HTTP and MCP servers give it a JSON handler.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter wraps logger, or slog.Default() when logger is nil.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogAdapter{logger: logger}
}

func (s *SlogAdapter) Debug(msg string, attrs ...any) { s.logger.Debug(msg, attrs...) }
func (s *SlogAdapter) Info(msg string, attrs ...any)  { s.logger.Info(msg, attrs...) }
func (s *SlogAdapter) Warn(msg string, attrs ...any)  { s.logger.Warn(msg, attrs...) }
func (s *SlogAdapter) Error(msg string, attrs ...any) { s.logger.Error(msg, attrs...) }

// With returns an adapter whose records all carry attrs.
func (s *SlogAdapter) With(attrs ...any) Logger {
	return &SlogAdapter{logger: s.logger.With(attrs...)}
}

var (
	_ Logger = NopLogger{}
	_ Logger = (*SlogAdapter)(nil)
)

// OrNop returns l, or NopLogger when l is nil.
func OrNop(l Logger) Logger {
	if l == nil {
		return NopLogger{}
	}
	return l
}

// Stage logs at debug level that a pipeline stage finished, with the time
// elapsed since start and any extra attributes.
func Stage(l Logger, stage string, start time.Time, attrs ...any) {
	l.Debug("stage finished", append([]any{"stage", stage, "elapsed", time.Since(start)}, attrs...)...)
}
