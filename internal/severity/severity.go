// Package severity provides severity level constants for issues reported by
// the validator and linter packages.
//
//   - SeverityError: Structural violations that make a document invalid
//   - SeverityWarning: Best-practice findings that never affect validity
package severity

// Severity indicates the severity level of an issue.
type Severity int

const (
	// SeverityError indicates a violation that makes the document invalid.
	// Produced by the resolver and the validator.
	SeverityError Severity = iota

	// SeverityWarning indicates an advisory best-practice finding.
	// Produced by the linter, including RULE_FAILURE.
	SeverityWarning
)

// String returns the string representation of the severity level.
func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return "unknown"
	}
}

// MarshalText renders the lowercase name so severities serialize readably.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}
