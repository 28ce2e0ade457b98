package mcpserver

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/oaslint/engine"
	"github.com/erraggy/oaslint/report"
)

type validateInput struct {
	Spec       specInput `json:"spec"                  jsonschema:"The OpenAPI document to check"`
	Mode       string    `json:"mode,omitempty"        jsonschema:"Which stages to run: full\\, schema-only or lint-only"`
	Strict     *bool     `json:"strict,omitempty"      jsonschema:"Treat warnings as failures in the passed field"`
	NoWarnings *bool     `json:"no_warnings,omitempty" jsonschema:"Suppress warnings from output"`
	GroupBy    string    `json:"group_by,omitempty"    jsonschema:"Return counts instead of issues. Values: code\\, rule\\, severity"`
	Offset     int       `json:"offset,omitempty"      jsonschema:"Skip the first N errors/warnings (for pagination)"`
	Limit      int       `json:"limit,omitempty"       jsonschema:"Maximum number of errors/warnings to return (default 100). Applied independently to errors and warnings arrays."`
}

type validateIssue struct {
	Code    string `json:"code"`
	Path    string `json:"path"`
	Message string `json:"message"`
	Line    int    `json:"line,omitempty"`
	Column  int    `json:"column,omitempty"`
	Rule    string `json:"rule,omitempty"`
}

type validateOutput struct {
	Valid        bool            `json:"valid"`
	Passed       bool            `json:"passed"`
	Version      string          `json:"version"`
	Mode         string          `json:"mode"`
	ErrorCount   int             `json:"error_count"`
	WarningCount int             `json:"warning_count"`
	Returned     int             `json:"returned"`
	Errors       []validateIssue `json:"errors,omitempty"`
	Warnings     []validateIssue `json:"warnings,omitempty"`
	Groups       []groupCount    `json:"groups,omitempty"`
}

var groupByValues = []string{"code", "rule", "severity"}

func (ts *toolset) handleValidate(ctx context.Context, _ *mcp.CallToolRequest, input validateInput) (*mcp.CallToolResult, validateOutput, error) {
	// Apply config defaults when input fields are omitted.
	mode := cfg.ValidateMode
	if input.Mode != "" {
		m, err := report.ParseModeName(input.Mode)
		if err != nil {
			return errResult(err), validateOutput{}, nil
		}
		mode = m
	}
	noWarnings := cfg.ValidateNoWarnings
	if input.NoWarnings != nil {
		noWarnings = *input.NoWarnings
	}
	if err := validateGroupBy(input.GroupBy, groupByValues); err != nil {
		return errResult(err), validateOutput{}, nil
	}

	doc, err := input.Spec.load()
	if err != nil {
		return errResult(err), validateOutput{}, nil
	}

	opts := append(ts.engineOptions(), engine.WithMode(mode))
	// An explicit argument or env default overrides the configuration file.
	switch {
	case input.Strict != nil:
		opts = append(opts, engine.WithStrict(*input.Strict))
	case cfg.ValidateStrict:
		opts = append(opts, engine.WithStrict(true))
	}
	e, err := engine.New(opts...)
	if err != nil {
		return errResult(err), validateOutput{}, nil
	}
	res, err := e.Check(ctx, doc)
	if err != nil {
		return errResult(err), validateOutput{}, nil
	}

	rep := res.Report
	if noWarnings {
		rep = rep.Filter(report.ModeSchemaOnly)
	}

	output := validateOutput{
		Valid:        rep.Valid,
		Passed:       res.Passed(),
		Version:      res.Version,
		Mode:         mode.String(),
		ErrorCount:   rep.ErrorCount(),
		WarningCount: rep.WarningCount(),
	}

	if input.GroupBy != "" {
		output.Groups = groupAndSort(rep.Issues(), func(iss report.Issue) []string {
			switch input.GroupBy {
			case "rule":
				if iss.RuleID == "" {
					return nil
				}
				return []string{iss.RuleID}
			case "severity":
				return []string{iss.Severity.String()}
			default:
				return []string{iss.Code}
			}
		})
		return nil, output, nil
	}

	output.Errors = paginate(toValidateIssues(rep.Errors), input.Offset, input.Limit)
	output.Warnings = paginate(toValidateIssues(rep.Warnings), input.Offset, input.Limit)
	output.Returned = len(output.Errors) + len(output.Warnings)

	return nil, output, nil
}

func toValidateIssues(in []report.Issue) []validateIssue {
	out := makeSlice[validateIssue](len(in))
	for _, iss := range in {
		out = append(out, validateIssue{
			Code:    iss.Code,
			Path:    iss.PathString(),
			Message: iss.Message,
			Line:    iss.Line,
			Column:  iss.Column,
			Rule:    iss.RuleID,
		})
	}
	return out
}
