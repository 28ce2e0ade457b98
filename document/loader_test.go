package document

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/erraggy/oaslint/oaserrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const petstoreYAML = `openapi: 3.0.3
info:
  title: Pets
  version: "1.0"
paths:
  /pets:
    get:
      responses:
        "200":
          description: ok
        404:
          description: missing
servers:
  - url: https://example.com
`

func TestLoadYAML(t *testing.T) {
	doc, err := Load([]byte(petstoreYAML), FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, doc.Format)
	assert.Equal(t, "3.0.3", doc.Version())
	assert.True(t, doc.Root.Path().IsRoot())
	assert.Equal(t, []string{"openapi", "info", "paths", "servers"}, doc.Root.Keys())

	paths, ok := doc.Root.Get("paths")
	require.True(t, ok)
	get, ok := paths.Get("/pets")
	require.True(t, ok)
	op, ok := get.Get("get")
	require.True(t, ok)
	assert.Equal(t, PathOf("paths", "/pets", "get"), op.Path())
	// a block mapping starts at its first key
	assert.Equal(t, 8, op.Line())
	assert.Equal(t, 7, op.Column())

	responses, _ := op.Get("responses")
	assert.Equal(t, []string{"200", "404"}, responses.Keys())

	servers, _ := doc.Root.Get("servers")
	require.True(t, servers.IsSequence())
	first, ok := servers.Item(0)
	require.True(t, ok)
	url, _ := first.Get("url")
	assert.Equal(t, PathOf("servers", 0, "url"), url.Path())
	s, ok := url.StringValue()
	assert.True(t, ok)
	assert.Equal(t, "https://example.com", s)
}

func TestLoadJSON(t *testing.T) {
	data := "{\n\t\"openapi\": \"3.1.0\",\n\t\"info\": {\"title\": \"x\", \"version\": \"1\"},\n\t\"paths\": {}\n}\n"
	doc, err := Load([]byte(data), FormatUnknown)
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, doc.Format)
	assert.Equal(t, "3.1.0", doc.Version())

	info, _ := doc.Root.Get("info")
	assert.Equal(t, 3, info.Line())
	assert.Equal(t, 10, info.Column())
}

func TestLoadScalars(t *testing.T) {
	doc, err := Load([]byte("a: 1\nb: 1.5\nc: true\nd: null\ne: text\nf: '1'\ng: 2024-01-02\n"), FormatYAML)
	require.NoError(t, err)

	tests := []struct {
		key      string
		wantType ScalarType
		want     any
	}{
		{"a", ScalarInt, int64(1)},
		{"b", ScalarFloat, 1.5},
		{"c", ScalarBool, true},
		{"d", ScalarNull, nil},
		{"e", ScalarString, "text"},
		{"f", ScalarString, "1"},
		{"g", ScalarString, "2024-01-02"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			n, ok := doc.Root.Get(tt.key)
			require.True(t, ok)
			assert.Equal(t, tt.wantType, n.ScalarType())
			assert.Equal(t, tt.want, n.Value())
		})
	}

	a, _ := doc.Root.Get("a")
	assert.Equal(t, "1", a.Text())
	assert.Equal(t, "integer", a.TypeName())
}

func TestLoadAliases(t *testing.T) {
	src := `base: &base
  type: string
  description: shared
copy: *base
merged:
  <<: *base
  description: own
`
	doc, err := Load([]byte(src), FormatYAML)
	require.NoError(t, err)

	cp, _ := doc.Root.Get("copy")
	typ, ok := cp.Get("type")
	require.True(t, ok)
	assert.Equal(t, PathOf("copy", "type"), typ.Path())

	merged, _ := doc.Root.Get("merged")
	desc, _ := merged.Get("description")
	s, _ := desc.StringValue()
	assert.Equal(t, "own", s)
	mt, ok := merged.Get("type")
	require.True(t, ok)
	assert.Equal(t, PathOf("merged", "type"), mt.Path())
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name     string
		data     string
		format   Format
		wantLine int
		wantMsg  string
	}{
		{name: "empty", data: "", format: FormatYAML, wantMsg: "document is empty"},
		{name: "whitespace only", data: "  \n", format: FormatUnknown, wantMsg: "document is empty"},
		{name: "sequence root", data: "- a\n- b\n", format: FormatYAML, wantLine: 1, wantMsg: "document root must be a mapping"},
		{name: "scalar root", data: "hello\n", format: FormatYAML, wantLine: 1, wantMsg: "document root must be a mapping"},
		{name: "duplicate key", data: "a: 1\nb: 2\na: 3\n", format: FormatYAML, wantLine: 3, wantMsg: `duplicate key "a"`},
		{name: "bad yaml", data: "a: [1, 2\nb: c\n", format: FormatYAML, wantMsg: "invalid YAML"},
		{name: "bad json", data: "{\n  \"a\": 1,\n}\n", format: FormatJSON, wantLine: 3, wantMsg: "invalid JSON"},
		{name: "complex key", data: "? [a, b]\n: 1\n", format: FormatYAML, wantLine: 1, wantMsg: "mapping keys must be scalars"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadNamed("api.yaml", []byte(tt.data), tt.format)
			require.Error(t, err)
			assert.True(t, errors.Is(err, oaserrors.ErrParse))

			var pe *oaserrors.ParseError
			require.True(t, errors.As(err, &pe))
			assert.Equal(t, "api.yaml", pe.Path)
			assert.Contains(t, pe.Message, tt.wantMsg)
			if tt.wantLine > 0 {
				assert.Equal(t, tt.wantLine, pe.Line)
			}
		})
	}
}

func TestOffsetPosition(t *testing.T) {
	data := []byte("ab\ncd\nef")
	tests := []struct {
		offset   int64
		wantLine int
		wantCol  int
	}{
		{1, 1, 1},
		{2, 1, 2},
		{4, 2, 1},
		{8, 3, 2},
		{0, 1, 1},
		{100, 3, 2},
	}
	for _, tt := range tests {
		line, col := offsetPosition(data, tt.offset)
		assert.Equal(t, tt.wantLine, line, "offset %d", tt.offset)
		assert.Equal(t, tt.wantCol, col, "offset %d", tt.offset)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "api.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"openapi":"3.0.0","info":{},"paths":{}}`), 0o600))

	doc, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, FormatJSON, doc.Format)
	assert.Equal(t, path, doc.SourcePath)

	_, err = LoadFile(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
	assert.False(t, errors.Is(err, oaserrors.ErrParse))
}

func TestDetectFormat(t *testing.T) {
	assert.Equal(t, FormatJSON, DetectFormatFromPath("a/b.JSON"))
	assert.Equal(t, FormatYAML, DetectFormatFromPath("a.yml"))
	assert.Equal(t, FormatUnknown, DetectFormatFromPath("a.txt"))
	assert.Equal(t, FormatJSON, DetectFormatFromContent([]byte("\n  {")))
	assert.Equal(t, FormatYAML, DetectFormatFromContent([]byte("openapi: 3")))
	assert.Equal(t, FormatUnknown, DetectFormatFromContent(nil))
	assert.Equal(t, FormatYAML, ParseFormat("YML"))
	assert.Equal(t, FormatUnknown, ParseFormat("toml"))
}
