// Package issues provides the issue type shared by the resolver, validator and linter.
package issues

import (
	"fmt"

	"github.com/erraggy/oaslint/document"
	"github.com/erraggy/oaslint/internal/severity"
)

// Issue represents a single problem found in a document. It is a value type;
// once built it is never modified.
type Issue struct {
	// Severity is Error for structural problems and Warning for lint findings
	Severity severity.Severity
	// Code is the stable machine-readable identifier (e.g. "MISSING_REQUIRED_FIELD")
	Code string
	// Message is a human-readable description of the issue
	Message string
	// Path locates the offending node where it is written in the source document
	Path document.Path
	// Line is the 1-based line number in the source file (0 if unknown)
	Line int
	// Column is the 1-based column number in the source file (0 if unknown)
	Column int
	// RuleID names the lint rule that produced the issue (empty for errors)
	RuleID string
}

// NewError builds an Error located at n.
func NewError(code string, n *document.Node, format string, args ...any) Issue {
	return at(severity.SeverityError, code, n, fmt.Sprintf(format, args...))
}

// NewWarning builds a Warning located at n.
func NewWarning(code string, n *document.Node, format string, args ...any) Issue {
	return at(severity.SeverityWarning, code, n, fmt.Sprintf(format, args...))
}

// Missing builds an issue for a field absent from parent. The path names the
// absent field, so its last segment does not exist in the document while its
// parent does; the position is the parent's.
func Missing(sev severity.Severity, code string, parent *document.Node, field, message string) Issue {
	iss := at(sev, code, parent, message)
	iss.Path = parent.Path().Child(document.Key(field))
	return iss
}

func at(sev severity.Severity, code string, n *document.Node, message string) Issue {
	iss := Issue{Severity: sev, Code: code, Message: message}
	if n != nil {
		iss.Path = n.Path()
		iss.Line = n.Line()
		iss.Column = n.Column()
	}
	return iss
}

// WithRule returns a copy of the issue attributed to ruleID as a Warning.
func (i Issue) WithRule(ruleID string) Issue {
	i.RuleID = ruleID
	i.Severity = severity.SeverityWarning
	return i
}

// IsError reports whether the issue has Error severity.
func (i Issue) IsError() bool {
	return i.Severity == severity.SeverityError
}

// PathString returns the JSON Pointer form of the path, with "/" standing in for the root.
func (i Issue) PathString() string {
	if i.Path.IsRoot() {
		return "/"
	}
	return i.Path.String()
}

// String returns a formatted string representation of the issue.
// Uses "✗" for Error severity and "⚠" for Warning severity.
func (i Issue) String() string {
	var symbol string
	switch i.Severity {
	case severity.SeverityError:
		symbol = "✗"
	case severity.SeverityWarning:
		symbol = "⚠"
	default:
		symbol = "?"
	}

	if i.Line > 0 {
		return fmt.Sprintf("%s %s %s (line %d, col %d): %s", symbol, i.Code, i.PathString(), i.Line, i.Column, i.Message)
	}
	return fmt.Sprintf("%s %s %s: %s", symbol, i.Code, i.PathString(), i.Message)
}

// Location returns the source location in IDE-friendly format.
// Returns "line:column" if line is set, or the JSON pointer if location is unknown.
func (i Issue) Location() string {
	if i.Line == 0 {
		return i.PathString()
	}
	return fmt.Sprintf("%d:%d", i.Line, i.Column)
}

// HasLocation returns true if this issue has source location information.
func (i Issue) HasLocation() bool {
	return i.Line > 0
}

// Compare orders issues by path, then code, then message.
func Compare(a, b Issue) int {
	if c := a.Path.Compare(b.Path); c != 0 {
		return c
	}
	if a.Code != b.Code {
		if a.Code < b.Code {
			return -1
		}
		return 1
	}
	switch {
	case a.Message < b.Message:
		return -1
	case a.Message > b.Message:
		return 1
	default:
		return 0
	}
}
