package report

import (
	"fmt"

	"github.com/erraggy/oaslint/oaserrors"
)

// Mode selects which stages contribute to a report.
type Mode int

const (
	// ModeFull reports validator errors and lint warnings
	ModeFull Mode = iota
	// ModeSchemaOnly reports validator errors only
	ModeSchemaOnly
	// ModeLintOnly reports lint warnings only; the report is always valid
	ModeLintOnly
)

// Mode names accepted by ParseModeName.
const (
	ModeNameFull       = "full"
	ModeNameSchemaOnly = "schema-only"
	ModeNameLintOnly   = "lint-only"
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeSchemaOnly:
		return ModeNameSchemaOnly
	case ModeLintOnly:
		return ModeNameLintOnly
	default:
		return ModeNameFull
	}
}

// RunsValidator reports whether the validator stage contributes to the mode.
func (m Mode) RunsValidator() bool { return m != ModeLintOnly }

// RunsLinter reports whether the lint stage contributes to the mode.
func (m Mode) RunsLinter() bool { return m != ModeSchemaOnly }

// ParseMode maps the --schema-only and --lint-only flags to a Mode. Setting
// both is a configuration error.
func ParseMode(schemaOnly, lintOnly bool) (Mode, error) {
	switch {
	case schemaOnly && lintOnly:
		return ModeFull, &oaserrors.ConfigError{
			Option:  "mode",
			Message: "schema-only and lint-only are mutually exclusive",
		}
	case schemaOnly:
		return ModeSchemaOnly, nil
	case lintOnly:
		return ModeLintOnly, nil
	default:
		return ModeFull, nil
	}
}

// ParseModeName maps a mode name to a Mode. The empty string selects ModeFull.
func ParseModeName(s string) (Mode, error) {
	switch s {
	case "", ModeNameFull:
		return ModeFull, nil
	case ModeNameSchemaOnly:
		return ModeSchemaOnly, nil
	case ModeNameLintOnly:
		return ModeLintOnly, nil
	}
	return ModeFull, &oaserrors.ConfigError{
		Option:  "mode",
		Value:   s,
		Message: fmt.Sprintf("must be one of %s, %s, %s", ModeNameFull, ModeNameSchemaOnly, ModeNameLintOnly),
	}
}
