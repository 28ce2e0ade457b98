package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"
	"go.yaml.in/yaml/v4"
)

// Output format names.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// ValidateFormat returns an error for an unknown output format name.
func ValidateFormat(format string) error {
	switch format {
	case FormatText, FormatJSON, FormatYAML:
		return nil
	}
	return fmt.Errorf("invalid format '%s'. Valid formats: %s, %s, %s", format, FormatText, FormatJSON, FormatYAML)
}

// Write renders r in the named format.
func Write(w io.Writer, r *Report, format string, opts TextOptions) error {
	switch format {
	case FormatJSON:
		return WriteJSON(w, r)
	case FormatYAML:
		return WriteYAML(w, r)
	case FormatText, "":
		return WriteText(w, r, opts)
	}
	return ValidateFormat(format)
}

// issueOutput is the serialized form of an Issue.
type issueOutput struct {
	Code    string `json:"code" yaml:"code"`
	Message string `json:"message" yaml:"message"`
	Path    string `json:"path" yaml:"path"`
	Line    int    `json:"line,omitempty" yaml:"line,omitempty"`
	Column  int    `json:"column,omitempty" yaml:"column,omitempty"`
	Rule    string `json:"rule,omitempty" yaml:"rule,omitempty"`
}

// reportOutput is the serialized form of a Report. Lists are never nil so
// they encode as empty arrays.
type reportOutput struct {
	Valid    bool          `json:"valid" yaml:"valid"`
	Errors   []issueOutput `json:"errors" yaml:"errors"`
	Warnings []issueOutput `json:"warnings" yaml:"warnings"`
}

func toOutput(r *Report) reportOutput {
	return reportOutput{
		Valid:    r.Valid,
		Errors:   outputs(r.Errors),
		Warnings: outputs(r.Warnings),
	}
}

func outputs(in []Issue) []issueOutput {
	out := make([]issueOutput, 0, len(in))
	for _, i := range in {
		out = append(out, issueOutput{
			Code:    i.Code,
			Message: i.Message,
			Path:    i.PathString(),
			Line:    i.Line,
			Column:  i.Column,
			Rule:    i.RuleID,
		})
	}
	return out
}

// MarshalJSON encodes the report as {"valid", "errors", "warnings"}.
func (r *Report) MarshalJSON() ([]byte, error) {
	return json.Marshal(toOutput(r))
}

// WriteJSON writes r as indented JSON followed by a newline. Equal reports
// produce identical bytes.
func WriteJSON(w io.Writer, r *Report) error {
	data, err := json.MarshalIndent(toOutput(r), "", "  ")
	if err != nil {
		return fmt.Errorf("report: marshaling to json: %w", err)
	}
	data = append(data, '\n')
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("report: writing json: %w", err)
	}
	return nil
}

// WriteYAML writes r as YAML with the same fields as WriteJSON.
func WriteYAML(w io.Writer, r *Report) error {
	data, err := yaml.Marshal(toOutput(r))
	if err != nil {
		return fmt.Errorf("report: marshaling to yaml: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("report: writing yaml: %w", err)
	}
	return nil
}

// TextOptions controls WriteText.
type TextOptions struct {
	// Color enables ANSI colors
	Color bool
	// SummaryOnly suppresses the issue sections
	SummaryOnly bool
}

type palette struct {
	err, warn, ok, dim *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:  color.New(color.FgRed, color.Bold),
		warn: color.New(color.FgYellow),
		ok:   color.New(color.FgGreen, color.Bold),
		dim:  color.New(color.Faint),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.ok, p.dim} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

// WriteText writes r as sectioned human-readable text ending with a summary
// line.
func WriteText(w io.Writer, r *Report, opts TextOptions) error {
	p := newPalette(opts.Color)
	tw := &textWriter{w: w}

	if !opts.SummaryOnly {
		tw.section(p.err, "Errors", r.Errors, p)
		tw.section(p.warn, "Warnings", r.Warnings, p)
	}

	if r.Valid {
		msg := "✓ Validation passed"
		if n := r.WarningCount(); n > 0 {
			msg += fmt.Sprintf(" with %d warning(s)", n)
		}
		tw.printf("%s\n", p.ok.Sprint(msg))
	} else {
		msg := fmt.Sprintf("✗ Validation failed: %d error(s)", r.ErrorCount())
		if n := r.WarningCount(); n > 0 {
			msg += fmt.Sprintf(", %d warning(s)", n)
		}
		tw.printf("%s\n", p.err.Sprint(msg))
	}
	return tw.err
}

// textWriter remembers the first write error.
type textWriter struct {
	w   io.Writer
	err error
}

func (tw *textWriter) printf(format string, args ...any) {
	if tw.err != nil {
		return
	}
	_, tw.err = fmt.Fprintf(tw.w, format, args...)
}

func (tw *textWriter) section(head *color.Color, title string, list []Issue, p palette) {
	if len(list) == 0 {
		return
	}
	tw.printf("%s\n", head.Sprintf("%s (%d):", title, len(list)))
	for _, i := range list {
		loc := i.PathString()
		if i.HasLocation() {
			loc = fmt.Sprintf("%s %s", loc, p.dim.Sprintf("(%s)", i.Location()))
		}
		rule := ""
		if i.RuleID != "" {
			rule = " " + p.dim.Sprintf("[%s]", i.RuleID)
		}
		tw.printf("  %s %s: %s%s\n", head.Sprint(i.Code), loc, i.Message, rule)
	}
	tw.printf("\n")
}
