// Package cliutil holds terminal output helpers for the oaslint commands.
package cliutil

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

// ColorEnabled reports whether output written to w should carry ANSI colors:
// w must be a terminal, and neither noColor nor NO_COLOR may be set.
func ColorEnabled(w io.Writer, noColor bool) bool {
	if noColor || os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Writef writes formatted output to w. A failed write is reported on stderr
// instead of being returned, since command output has nowhere else to go.
func Writef(w io.Writer, format string, args ...any) {
	if _, err := fmt.Fprintf(w, format, args...); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "write error: %v\n", err)
	}
}
