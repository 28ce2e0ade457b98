package engine

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oaslint/document"
	"github.com/erraggy/oaslint/linter"
	"github.com/erraggy/oaslint/oaserrors"
	"github.com/erraggy/oaslint/report"
	"github.com/erraggy/oaslint/resolver"
	"github.com/erraggy/oaslint/validator"
)

const missingPaths = `openapi: 3.0.3
info:
  title: t
  version: v
  description: d
servers:
  - url: https://api.example.com
`

func check(t *testing.T, src string, opts ...Option) *Result {
	t.Helper()
	e, err := New(opts...)
	require.NoError(t, err)
	res, err := e.CheckBytes(context.Background(), "test.yaml", []byte(src), document.FormatYAML)
	require.NoError(t, err)
	return res
}

func codes(list []report.Issue) []string {
	out := make([]string, 0, len(list))
	for _, i := range list {
		out = append(out, i.Code)
	}
	return out
}

func TestRun_ValidDocuments(t *testing.T) {
	for _, path := range []string{"testdata/petstore.yaml", "testdata/petstore.json"} {
		t.Run(path, func(t *testing.T) {
			res, err := Run(context.Background(), WithFilePath(path))
			require.NoError(t, err)
			assert.True(t, res.Report.Valid)
			assert.Empty(t, res.Report.Errors)
			assert.Empty(t, res.Report.Warnings)
			assert.True(t, res.Passed())
			assert.Equal(t, path, res.SourcePath)
			assert.NotEmpty(t, res.RunID)
			assert.Positive(t, res.References)
		})
	}
}

func TestRun_InvalidDocument(t *testing.T) {
	res, err := Run(context.Background(), WithFilePath("testdata/invalid.yaml"))
	require.NoError(t, err)
	assert.False(t, res.Report.Valid)
	assert.False(t, res.Passed())
	assert.ElementsMatch(t, []string{
		validator.CodeMissingRequiredField,     // info.version
		validator.CodeInvalidPath,              // users
		validator.CodeInvalidParameterLocation, // in: body
		validator.CodeMissingRequiredField,     // parameter schema
		validator.CodeEmptyResponses,
	}, codes(res.Report.Errors))
	assert.NotEmpty(t, res.Report.Warnings)
}

func TestCheck_MissingPaths(t *testing.T) {
	res := check(t, missingPaths)
	assert.False(t, res.Report.Valid)
	require.Len(t, res.Report.Errors, 1)
	assert.Equal(t, validator.CodeMissingRequiredField, res.Report.Errors[0].Code)
	assert.Equal(t, document.PathOf("paths"), res.Report.Errors[0].Path)
}

func TestCheck_CircularReferenceBothOrders(t *testing.T) {
	docs := map[string]string{
		"A then B": `
    A: {$ref: '#/components/schemas/B'}
    B: {$ref: '#/components/schemas/A'}
`,
		"B then A": `
    B: {$ref: '#/components/schemas/A'}
    A: {$ref: '#/components/schemas/B'}
`,
	}
	for name, schemas := range docs {
		t.Run(name, func(t *testing.T) {
			src := "openapi: 3.0.3\ninfo: {title: t, version: v}\npaths: {}\ncomponents:\n  schemas:" + schemas
			res := check(t, src, WithMode(report.ModeSchemaOnly))

			var circular int
			for _, iss := range res.Report.Errors {
				if iss.Code == resolver.CodeCircularReference {
					circular++
				}
			}
			assert.Equal(t, 1, circular)
			assert.False(t, res.Report.Valid)
		})
	}
}

func TestCheck_Modes(t *testing.T) {
	src := missingPaths + "paths:\n  users: {}\n"

	full := check(t, src)
	assert.NotEmpty(t, full.Report.Errors)
	assert.NotEmpty(t, full.Report.Warnings)
	assert.False(t, full.Report.Valid)

	schemaOnly := check(t, src, WithMode(report.ModeSchemaOnly))
	assert.Equal(t, full.Report.Errors, schemaOnly.Report.Errors)
	assert.Empty(t, schemaOnly.Report.Warnings)
	assert.False(t, schemaOnly.Report.Valid)

	lintOnly := check(t, src, WithMode(report.ModeLintOnly))
	assert.Empty(t, lintOnly.Report.Errors)
	assert.Equal(t, full.Report.Warnings, lintOnly.Report.Warnings)
	// lint-only reports are valid by construction
	assert.True(t, lintOnly.Report.Valid)
	assert.Equal(t, report.ModeLintOnly, lintOnly.Mode)
}

func TestCheck_LintOnlyDropsReferenceFaults(t *testing.T) {
	src := missingPaths + `paths:
  /a:
    get:
      operationId: a
      summary: A
      responses:
        "200": {$ref: '#/components/responses/Missing'}
`
	res := check(t, src, WithMode(report.ModeLintOnly))
	assert.True(t, res.Report.Valid)
	assert.Empty(t, res.Report.Errors)

	res = check(t, src)
	assert.Equal(t, []string{resolver.CodeUnresolvedReference}, codes(res.Report.Errors))
}

func TestCheck_IdempotentJSON(t *testing.T) {
	src := missingPaths + `paths:
  /users/{id}:
    get:
      responses:
        "404": {}
  orders: {}
components:
  schemas:
    Thing:
      properties:
        a: {}
        b: {$ref: '#/components/schemas/Thing'}
`
	var first bytes.Buffer
	require.NoError(t, report.WriteJSON(&first, check(t, src).Report))
	for range 3 {
		var again bytes.Buffer
		require.NoError(t, report.WriteJSON(&again, check(t, src, WithWorkers(4)).Report))
		assert.Equal(t, first.String(), again.String())
	}
}

func TestCheck_Strict(t *testing.T) {
	src := strings.Replace(missingPaths, "  description: d\n", "", 1) + `paths:
  /a:
    get:
      operationId: a
      summary: A
      responses:
        "200": {description: ok}
`
	lax := check(t, src)
	assert.True(t, lax.Report.Valid)
	assert.True(t, lax.Passed())

	strict := check(t, src, WithStrict(true))
	assert.True(t, strict.Report.Valid)
	assert.False(t, strict.Passed())
	assert.Equal(t, []string{linter.CodeMissingInfoDescription}, codes(strict.Report.Warnings))
}

func TestCheck_RulesConfiguration(t *testing.T) {
	src := missingPaths + `paths:
  /a:
    get:
      summary: A
      responses:
        "200": {description: ok}
`
	res := check(t, src)
	assert.Equal(t, []string{linter.CodeMissingOperationID}, codes(res.Report.Warnings))

	res = check(t, src, WithDisabledRules("operation-id"))
	assert.Empty(t, res.Report.Warnings)

	res = check(t, src, WithCustomRules(linter.CustomRule{
		ID:        "require-tags",
		AppliesTo: "operation",
		Assert:    `has("tags")`,
	}))
	assert.Equal(t, []string{linter.CodeMissingOperationID, "REQUIRE_TAGS"}, codes(res.Report.Warnings))
}

func TestCheck_ParseErrorIsFatal(t *testing.T) {
	e, err := New()
	require.NoError(t, err)

	res, err := e.CheckBytes(context.Background(), "bad.yaml", []byte("openapi: [3.0.3\n"), document.FormatYAML)
	require.Error(t, err)
	assert.Nil(t, res)
	assert.ErrorIs(t, err, oaserrors.ErrParse)
}

func TestCheck_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	e, err := New()
	require.NoError(t, err)
	_, err = e.CheckBytes(ctx, "", []byte(missingPaths), document.FormatYAML)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCheckReader_SizeLimit(t *testing.T) {
	_, err := Run(context.Background(),
		WithReader(strings.NewReader(missingPaths)),
		WithMaxInputSize(16),
	)
	require.Error(t, err)
	assert.ErrorIs(t, err, oaserrors.ErrResourceLimit)

	res, err := Run(context.Background(),
		WithReader(strings.NewReader(missingPaths)),
		WithSourceName("<stdin>"),
	)
	require.NoError(t, err)
	assert.Equal(t, "<stdin>", res.SourcePath)
}

func TestRun_InputSources(t *testing.T) {
	_, err := Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must specify an input source")

	_, err = Run(context.Background(), WithFilePath("testdata/petstore.yaml"), WithBytes([]byte(missingPaths)))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exactly one input source")

	_, err = Run(context.Background(), WithReader(nil))
	require.Error(t, err)

	res, err := Run(context.Background(), WithBytes([]byte(`{"openapi": "3.0.3"}`)))
	require.NoError(t, err)
	assert.Equal(t, "3.0.3", res.Version)

	res, err = Run(context.Background(), WithFilePath("testdata/petstore.json"), WithFormat(document.FormatJSON))
	require.NoError(t, err)
	assert.True(t, res.Report.Valid)

	_, err = Run(context.Background(), WithFilePath("testdata/missing.yaml"))
	require.Error(t, err)
}

func TestNew_InvalidOptions(t *testing.T) {
	tests := []struct {
		name string
		opt  Option
	}{
		{"max ref depth", WithMaxRefDepth(0)},
		{"workers", WithWorkers(-1)},
		{"input size", WithMaxInputSize(0)},
		{"unknown disabled rule", WithDisabledRules("nope")},
		{"bad custom rule", WithCustomRules(linter.CustomRule{ID: "x", AppliesTo: "operation", Assert: "1 +"})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.opt)
			require.Error(t, err)
			assert.ErrorIs(t, err, oaserrors.ErrConfig)
		})
	}
}

func TestEngine_Rules(t *testing.T) {
	e, err := New(WithDisabledRules("servers"), WithLogger(nil))
	require.NoError(t, err)
	assert.Len(t, e.Rules(), linter.DefaultRegistry().Len()-1)
	assert.Equal(t, report.ModeFull, e.Mode())
}

func TestCheck_LogsStages(t *testing.T) {
	var buf bytes.Buffer
	logger := NewSlogAdapter(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	e, err := New(WithLogger(logger))
	require.NoError(t, err)
	res, err := e.CheckFile(context.Background(), "testdata/petstore.yaml")
	require.NoError(t, err)

	out := buf.String()
	for _, stage := range []string{"resolve", "validate", "lint"} {
		assert.Contains(t, out, "stage="+stage)
	}
	assert.Contains(t, out, "run_id="+res.RunID)
	assert.Contains(t, out, `msg="checked document"`)
}
