// Package commands provides CLI command handlers for oaslint.
package commands

import (
	"errors"
	"flag"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/erraggy/oaslint/engine"
	"github.com/erraggy/oaslint/internal/cliutil"
)

// StdinFilePath is the special file path used to indicate reading from stdin.
const StdinFilePath = "-"

// ErrValidationFailed is returned when a document was checked but did not
// pass. The report has already been written, so callers only set the exit code.
var ErrValidationFailed = errors.New("validation failed")

// Streams are the standard streams a command reads and writes.
type Streams struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// StdStreams returns the process's standard streams.
func StdStreams() Streams {
	return Streams{In: os.Stdin, Out: os.Stdout, Err: os.Stderr}
}

// FormatSpecPath returns a display-friendly path for the document.
// Returns "<stdin>" if the path is StdinFilePath, otherwise returns the path as-is.
func FormatSpecPath(specPath string) string {
	if specPath == StdinFilePath {
		return "<stdin>"
	}
	return specPath
}

// Writef writes formatted output to the writer.
func Writef(w io.Writer, format string, args ...any) {
	cliutil.Writef(w, format, args...)
}

// newLogger returns a debug-level text logger on w when verbose is set and a
// no-op logger otherwise.
func newLogger(w io.Writer, verbose bool) engine.Logger {
	if !verbose {
		return engine.NopLogger{}
	}
	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug})
	return engine.NewSlogAdapter(slog.New(h))
}

// splitIDs splits a comma separated flag value, dropping blanks.
func splitIDs(s string) []string {
	var out []string
	for _, id := range strings.Split(s, ",") {
		if id = strings.TrimSpace(id); id != "" {
			out = append(out, id)
		}
	}
	return out
}

// parseInterspersed parses args with flags allowed before and after
// positional arguments, returning the positionals in order. Arguments after
// "--" are positional.
func parseInterspersed(fs *flag.FlagSet, args []string) ([]string, error) {
	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		rest := fs.Args()
		if len(rest) == 0 {
			return positional, nil
		}
		if len(args) > len(rest) && args[len(args)-len(rest)-1] == "--" {
			return append(positional, rest...), nil
		}
		positional = append(positional, rest[0])
		args = rest[1:]
	}
}
