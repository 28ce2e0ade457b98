package report

import (
	"slices"

	"github.com/erraggy/oaslint/internal/issues"
)

// Issue is a single error or warning in a report.
type Issue = issues.Issue

// Report is the combined outcome of one run.
type Report struct {
	// Valid is true when Errors is empty
	Valid bool
	// Errors holds resolver and validator findings, sorted by path then code
	Errors []Issue
	// Warnings holds lint findings, sorted by path then code
	Warnings []Issue
}

// Aggregate builds a report from the errors and warnings of a run. Both lists
// are sorted with issues.Compare and exact duplicates are dropped, so the
// result does not depend on the order in which rules ran. The inputs are not
// modified.
func Aggregate(errs, warnings []Issue) *Report {
	r := &Report{
		Errors:   normalize(errs),
		Warnings: normalize(warnings),
	}
	r.Valid = len(r.Errors) == 0
	return r
}

func normalize(in []Issue) []Issue {
	out := make([]Issue, len(in))
	copy(out, in)
	slices.SortStableFunc(out, func(a, b Issue) int {
		if c := issues.Compare(a, b); c != 0 {
			return c
		}
		return compareRest(a, b)
	})
	return slices.CompactFunc(out, func(a, b Issue) bool {
		return issues.Compare(a, b) == 0 && compareRest(a, b) == 0
	})
}

// compareRest orders issues that agree on path, code and message.
func compareRest(a, b Issue) int {
	switch {
	case a.Severity != b.Severity:
		return int(a.Severity) - int(b.Severity)
	case a.RuleID != b.RuleID:
		if a.RuleID < b.RuleID {
			return -1
		}
		return 1
	case a.Line != b.Line:
		return a.Line - b.Line
	default:
		return a.Column - b.Column
	}
}

// Filter returns a copy of r restricted to mode. In ModeLintOnly the errors
// are dropped, so the filtered report is always valid.
func (r *Report) Filter(mode Mode) *Report {
	out := &Report{
		Errors:   slices.Clone(r.Errors),
		Warnings: slices.Clone(r.Warnings),
	}
	switch mode {
	case ModeSchemaOnly:
		out.Warnings = nil
	case ModeLintOnly:
		out.Errors = nil
	}
	out.Valid = len(out.Errors) == 0
	return out
}

// ErrorCount returns the number of errors.
func (r *Report) ErrorCount() int { return len(r.Errors) }

// WarningCount returns the number of warnings.
func (r *Report) WarningCount() int { return len(r.Warnings) }

// Issues returns the errors followed by the warnings.
func (r *Report) Issues() []Issue {
	out := make([]Issue, 0, len(r.Errors)+len(r.Warnings))
	out = append(out, r.Errors...)
	return append(out, r.Warnings...)
}
