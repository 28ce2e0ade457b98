package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oaslint/engine"
	"github.com/erraggy/oaslint/oaserrors"
	"github.com/erraggy/oaslint/resolver"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	s, err := Load("")
	require.NoError(t, err)
	assert.Empty(t, s.Source)
	assert.Equal(t, resolver.DefaultMaxDepth, s.MaxRefDepth)
	assert.Zero(t, s.Workers)
	assert.False(t, s.MetaSchemaCheck)
	assert.False(t, s.Strict)
	assert.Empty(t, s.DisabledRules)
	assert.Empty(t, s.CustomRules)
	assert.Contains(t, s.String(), "<defaults>")
}

func TestLoad_WorkingDirectoryFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	writeFile(t, dir, ".oaslint.yaml", `
max_ref_depth: 8
workers: 2
strict: true
rules:
  disabled: [servers, path-prefix]
  custom:
    - id: require-tags
      applies_to: operation
      assert: has("tags")
      message: "{method} {path} has no tags"
`)

	s, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ".oaslint.yaml", filepath.Base(s.Source))
	assert.Equal(t, 8, s.MaxRefDepth)
	assert.Equal(t, 2, s.Workers)
	assert.True(t, s.Strict)
	assert.Equal(t, []string{"servers", "path-prefix"}, s.DisabledRules)
	require.Len(t, s.CustomRules, 1)
	assert.Equal(t, "require-tags", s.CustomRules[0].ID)
	assert.Equal(t, "operation", s.CustomRules[0].AppliesTo)
	assert.Equal(t, `has("tags")`, s.CustomRules[0].Assert)
	assert.Equal(t, "{method} {path} has no tags", s.CustomRules[0].Message)

	_, err = engine.New(s.Options()...)
	require.NoError(t, err)
}

func TestLoad_EnvironmentOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "lint.yaml", "max_ref_depth: 8\nrules:\n  disabled: [servers]\n")

	t.Setenv("OASLINT_MAX_REF_DEPTH", "16")
	t.Setenv("OASLINT_WORKERS", "3")
	t.Setenv("OASLINT_META_SCHEMA_CHECK", "true")
	t.Setenv("OASLINT_RULES_DISABLED", "operation-id, operation-summary")

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, path, s.Source)
	assert.Equal(t, 16, s.MaxRefDepth)
	assert.Equal(t, 3, s.Workers)
	assert.True(t, s.MetaSchemaCheck)
	assert.Equal(t, []string{"operation-id", "operation-summary"}, s.DisabledRules)
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name string
		path string
		env  map[string]string
	}{
		{name: "missing explicit file", path: filepath.Join(dir, "nope.yaml")},
		{name: "malformed file", path: writeFile(t, dir, "bad.yaml", "rules: [unclosed\n")},
		{name: "bad depth", path: writeFile(t, dir, "depth.yaml", "max_ref_depth: 0\n")},
		{name: "negative workers", path: writeFile(t, dir, "workers.yaml", "workers: -2\n")},
		{name: "custom rules not a list", path: writeFile(t, dir, "custom.yaml", "rules:\n  custom: yes\n")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(tt.path)
			require.Error(t, err)
			assert.ErrorIs(t, err, oaserrors.ErrConfig)
		})
	}
}

func TestSettings_OptionsRejectUnknownRule(t *testing.T) {
	s := &Settings{MaxRefDepth: 4, DisabledRules: []string{"no-such-rule"}}
	_, err := engine.New(s.Options()...)
	require.Error(t, err)
	assert.ErrorIs(t, err, oaserrors.ErrConfig)
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, splitList([]string{"a, b", "", " c "}))
	assert.Nil(t, splitList(nil))
}
