package engine

import (
	"log/slog"

	"github.com/erraggy/oaslint/internal/logging"
)

// Logger is the structured logging interface used by every stage.
type Logger = logging.Logger

// NopLogger discards all output.
type NopLogger = logging.NopLogger

// SlogAdapter adapts a *slog.Logger to Logger.
type SlogAdapter = logging.SlogAdapter

// NewSlogAdapter creates a Logger from a *slog.Logger (slog.Default if nil).
func NewSlogAdapter(l *slog.Logger) *SlogAdapter {
	return logging.NewSlogAdapter(l)
}

// OrNop returns l, or NopLogger when l is nil.
func OrNop(l Logger) Logger {
	return logging.OrNop(l)
}
