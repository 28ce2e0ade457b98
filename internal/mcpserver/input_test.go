package mcpserver

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oaslint/document"
	"github.com/erraggy/oaslint/oaserrors"
)

const minimalSpec = `openapi: "3.0.3"
info:
  title: Test
  version: "1.0"
paths: {}
`

func TestSpecInput_LoadFile(t *testing.T) {
	docCache.reset()
	input := specInput{File: "../../engine/testdata/petstore.yaml"}
	doc, err := input.load()
	require.NoError(t, err)
	assert.Equal(t, "3.0.3", doc.Version())
}

func TestSpecInput_LoadContent(t *testing.T) {
	docCache.reset()
	doc, err := specInput{Content: minimalSpec}.load()
	require.NoError(t, err)
	assert.Equal(t, "3.0.3", doc.Version())
	assert.Equal(t, document.FormatYAML, doc.Format)
	assert.Equal(t, "<content>", doc.SourcePath)
}

func TestSpecInput_LoadInvalid(t *testing.T) {
	tests := []struct {
		name  string
		input specInput
		want  string
	}{
		{
			name:  "none provided",
			input: specInput{},
			want:  "exactly one of file or content must be provided (got 0)",
		},
		{
			name:  "both provided",
			input: specInput{File: "foo.yaml", Content: "bar"},
			want:  "exactly one of file or content must be provided (got 2)",
		},
		{
			name:  "unknown format",
			input: specInput{Content: minimalSpec, Format: "toml"},
			want:  `invalid format "toml"`,
		},
		{
			name:  "missing file",
			input: specInput{File: "/nonexistent/path.yaml"},
			want:  "failed to read file",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			docCache.reset()
			_, err := tt.input.load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestSpecInput_LoadParseError(t *testing.T) {
	docCache.reset()
	_, err := specInput{Content: `{"openapi": "3.0.3",`, Format: "json"}.load()
	require.Error(t, err)
	assert.True(t, errors.Is(err, oaserrors.ErrParse))
	assert.Equal(t, 0, docCache.size(), "failed loads must not be cached")
}

func TestSpecInput_LoadContentTooLarge(t *testing.T) {
	big := minimalSpec + "# " + strings.Repeat("x", int(cfg.MaxInlineSize)) + "\n"
	_, err := specInput{Content: big}.load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeds maximum")
}

func TestDocCache_HitOnSameFile(t *testing.T) {
	docCache.reset()
	input := specInput{File: "../../engine/testdata/petstore.yaml"}

	doc1, err := input.load()
	require.NoError(t, err)
	assert.Equal(t, 1, docCache.size())

	doc2, err := input.load()
	require.NoError(t, err)
	assert.Same(t, doc1, doc2, "expected same pointer from cache hit")
}

func TestDocCache_MissOnModifiedFile(t *testing.T) {
	docCache.reset()

	path := filepath.Join(t.TempDir(), "spec.yaml")
	require.NoError(t, os.WriteFile(path, []byte(minimalSpec), 0o644))

	input := specInput{File: path}
	doc1, err := input.load()
	require.NoError(t, err)
	assert.Equal(t, "3.0.3", doc1.Version())

	updated := strings.Replace(minimalSpec, "3.0.3", "3.1.0", 1)
	require.NoError(t, os.WriteFile(path, []byte(updated), 0o644))
	// Ensure mtime differs from the first write on coarse-grained filesystems.
	future := time.Now().Add(2 * time.Second)
	require.NoError(t, os.Chtimes(path, future, future))

	doc2, err := input.load()
	require.NoError(t, err)
	assert.NotSame(t, doc1, doc2)
	assert.Equal(t, "3.1.0", doc2.Version())
}

func TestDocCache_ContentHash(t *testing.T) {
	docCache.reset()
	input := specInput{Content: minimalSpec}

	doc1, err := input.load()
	require.NoError(t, err)
	doc2, err := input.load()
	require.NoError(t, err)
	assert.Same(t, doc1, doc2)

	// The same bytes under a different format are a different entry.
	assert.NotEqual(t, input.cacheKey(), specInput{Content: minimalSpec, Format: "yaml"}.cacheKey())
}

func TestDocCache_LRUEviction(t *testing.T) {
	docCache.reset()

	var firstKey string
	for i := range 11 {
		input := specInput{Content: strings.Replace(minimalSpec, "title: Test", "title: Spec "+string(rune('A'+i)), 1)}
		if i == 0 {
			firstKey = input.cacheKey()
		}
		_, err := input.load()
		require.NoError(t, err)
	}

	assert.Equal(t, 10, docCache.size())
	assert.Nil(t, docCache.get(firstKey), "expected oldest entry to be evicted")
}

func TestDocCache_Sweep(t *testing.T) {
	docCache.reset()
	t.Cleanup(docCache.reset)

	doc, err := document.Load([]byte(minimalSpec), document.FormatYAML)
	require.NoError(t, err)
	docCache.put("expired", doc, time.Nanosecond)
	docCache.put("fresh", doc, time.Hour)
	time.Sleep(time.Millisecond)

	docCache.sweep()
	assert.Equal(t, 1, docCache.size())
	assert.Same(t, doc, docCache.get("fresh"))
}
