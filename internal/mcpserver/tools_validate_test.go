package mcpserver

import (
	"context"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oaslint/engine"
	"github.com/erraggy/oaslint/linter"
)

const (
	petstoreFile = "../../engine/testdata/petstore.yaml"
	invalidFile  = "../../engine/testdata/invalid.yaml"
)

func callValidate(t *testing.T, ts *toolset, input validateInput) validateOutput {
	t.Helper()
	res, output, err := ts.handleValidate(context.Background(), &mcp.CallToolRequest{}, input)
	require.NoError(t, err)
	require.Nil(t, res, "unexpected tool error")
	return output
}

func boolPtr(b bool) *bool { return &b }

func TestValidateTool_ValidSpec(t *testing.T) {
	output := callValidate(t, &toolset{}, validateInput{Spec: specInput{File: petstoreFile}})
	assert.True(t, output.Valid)
	assert.True(t, output.Passed)
	assert.Equal(t, "3.0.3", output.Version)
	assert.Equal(t, "full", output.Mode)
	assert.Empty(t, output.Errors)
	assert.Empty(t, output.Warnings)
	assert.Zero(t, output.Returned)
}

func TestValidateTool_InvalidSpec(t *testing.T) {
	output := callValidate(t, &toolset{}, validateInput{Spec: specInput{File: invalidFile}})
	assert.False(t, output.Valid)
	assert.Equal(t, 5, output.ErrorCount)
	require.Len(t, output.Errors, 5)
	assert.Equal(t, output.WarningCount, len(output.Warnings))
	assert.Positive(t, output.WarningCount)

	for _, e := range output.Errors {
		assert.NotEmpty(t, e.Code)
		assert.NotEmpty(t, e.Path)
		assert.Empty(t, e.Rule, "errors never carry a rule")
	}
	for _, w := range output.Warnings {
		assert.NotEmpty(t, w.Rule)
	}
}

func TestValidateTool_Modes(t *testing.T) {
	tests := []struct {
		name         string
		input        validateInput
		wantMode     string
		wantErrors   bool
		wantWarnings bool
	}{
		{
			name:         "full",
			input:        validateInput{Spec: specInput{File: invalidFile}},
			wantMode:     "full",
			wantErrors:   true,
			wantWarnings: true,
		},
		{
			name:       "schema-only",
			input:      validateInput{Spec: specInput{File: invalidFile}, Mode: "schema-only"},
			wantMode:   "schema-only",
			wantErrors: true,
		},
		{
			name:         "lint-only",
			input:        validateInput{Spec: specInput{File: invalidFile}, Mode: "lint-only"},
			wantMode:     "lint-only",
			wantWarnings: true,
		},
		{
			name:       "no warnings",
			input:      validateInput{Spec: specInput{File: invalidFile}, NoWarnings: boolPtr(true)},
			wantMode:   "full",
			wantErrors: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output := callValidate(t, &toolset{}, tt.input)
			assert.Equal(t, tt.wantMode, output.Mode)
			assert.Equal(t, tt.wantErrors, output.ErrorCount > 0)
			assert.Equal(t, tt.wantWarnings, output.WarningCount > 0)
			assert.Equal(t, !tt.wantErrors, output.Valid)
		})
	}
}

func TestValidateTool_Strict(t *testing.T) {
	// Valid, but with lint warnings.
	input := validateInput{Spec: specInput{Content: minimalSpec}}

	output := callValidate(t, &toolset{}, input)
	assert.True(t, output.Valid)
	assert.Positive(t, output.WarningCount)
	assert.True(t, output.Passed)

	input.Strict = boolPtr(true)
	output = callValidate(t, &toolset{}, input)
	assert.True(t, output.Valid)
	assert.False(t, output.Passed)
}

func TestValidateTool_Pagination(t *testing.T) {
	full := callValidate(t, &toolset{}, validateInput{Spec: specInput{File: invalidFile}})

	page := callValidate(t, &toolset{}, validateInput{Spec: specInput{File: invalidFile}, Offset: 1, Limit: 2})
	assert.Equal(t, full.ErrorCount, page.ErrorCount, "counts are totals, not page sizes")
	assert.Equal(t, full.Errors[1:3], page.Errors)
	assert.Equal(t, len(page.Errors)+len(page.Warnings), page.Returned)
}

func TestValidateTool_GroupBy(t *testing.T) {
	output := callValidate(t, &toolset{}, validateInput{Spec: specInput{File: invalidFile}, GroupBy: "code"})
	assert.Empty(t, output.Errors)
	assert.Empty(t, output.Warnings)
	assert.Contains(t, output.Groups, groupCount{Key: "MISSING_REQUIRED_FIELD", Count: 2})

	output = callValidate(t, &toolset{}, validateInput{Spec: specInput{File: invalidFile}, GroupBy: "severity", Mode: "schema-only"})
	assert.Equal(t, []groupCount{{Key: "error", Count: 5}}, output.Groups)
}

func TestValidateTool_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input validateInput
		want  string
	}{
		{
			name:  "unknown mode",
			input: validateInput{Spec: specInput{Content: minimalSpec}, Mode: "everything"},
			want:  "mode",
		},
		{
			name:  "unknown group_by",
			input: validateInput{Spec: specInput{Content: minimalSpec}, GroupBy: "path"},
			want:  "invalid group_by",
		},
		{
			name:  "no input",
			input: validateInput{},
			want:  "exactly one of file or content",
		},
		{
			name:  "parse error",
			input: validateInput{Spec: specInput{Content: "openapi: [3.0.3\n"}},
			want:  "parse error",
		},
		{
			name:  "path is sanitized",
			input: validateInput{Spec: specInput{File: "/tmp/oaslint-missing/openapi.yaml"}},
			want:  "<path>",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			docCache.reset()
			res, _, err := (&toolset{}).handleValidate(context.Background(), &mcp.CallToolRequest{}, tt.input)
			require.NoError(t, err)
			require.NotNil(t, res)
			assert.True(t, res.IsError)
			require.Len(t, res.Content, 1)
			text := res.Content[0].(*mcp.TextContent).Text
			assert.Contains(t, text, tt.want)
			assert.NotContains(t, text, "/tmp/")
		})
	}
}

func TestValidateTool_CustomRules(t *testing.T) {
	ts := &toolset{base: []engine.Option{
		engine.WithCustomRules(linter.CustomRule{
			ID:        "require-contact",
			AppliesTo: "document",
			Assert:    `node.info.contact != nil`,
			Message:   "info.contact is required",
		}),
	}}
	output := callValidate(t, ts, validateInput{Spec: specInput{File: petstoreFile}})
	require.Len(t, output.Warnings, 1)
	assert.Equal(t, "REQUIRE_CONTACT", output.Warnings[0].Code)
	assert.Equal(t, "require-contact", output.Warnings[0].Rule)
	assert.Equal(t, "/", output.Warnings[0].Path)
}
