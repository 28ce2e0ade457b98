package resolver

import (
	"testing"

	"github.com/erraggy/oaslint/document"
	"github.com/erraggy/oaslint/internal/issues"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resolve(t *testing.T, src string, opts ...Option) *Document {
	t.Helper()
	doc, err := document.Load([]byte(src), document.FormatYAML)
	require.NoError(t, err)
	return New(opts...).Resolve(doc)
}

func get(t *testing.T, n *Node, keys ...string) *Node {
	t.Helper()
	for _, k := range keys {
		next, ok := n.Get(k)
		require.True(t, ok, "missing key %q", k)
		n = next
	}
	return n
}

func codes(list []issues.Issue) []string {
	out := make([]string, len(list))
	for i, iss := range list {
		out[i] = iss.Code
	}
	return out
}

func countCode(list []issues.Issue, code string) int {
	n := 0
	for _, iss := range list {
		if iss.Code == code {
			n++
		}
	}
	return n
}

func TestResolveSimpleReference(t *testing.T) {
	res := resolve(t, `openapi: 3.0.3
paths:
  /pets:
    get:
      responses:
        "200":
          content:
            application/json:
              schema:
                $ref: '#/components/schemas/Pet'
components:
  schemas:
    Pet:
      type: object
      properties:
        name:
          type: string
`)
	assert.Empty(t, res.Issues)
	assert.Equal(t, "3.0.3", res.Version)

	schema := get(t, res.Root, "paths", "/pets", "get", "responses", "200", "content", "application/json", "schema")
	assert.True(t, schema.FromRef())
	assert.Equal(t, []string{"#/components/schemas/Pet"}, schema.RefChain())
	assert.Equal(t, document.PathOf("components", "schemas", "Pet"), schema.Path())
	assert.Equal(t, document.PathOf("paths", "/pets", "get", "responses", "200", "content", "application/json", "schema"), schema.Site().Path())

	name := get(t, schema, "properties", "name")
	assert.Equal(t, document.PathOf("components", "schemas", "Pet", "properties", "name"), name.Path())
	typ, ok := name.StringField("type")
	assert.True(t, ok)
	assert.Equal(t, "string", typ)

	require.Len(t, res.References, 1)
	assert.Equal(t, "#/components/schemas/Pet", res.References[0].Ref)
}

func TestResolveSharesTargets(t *testing.T) {
	res := resolve(t, `components:
  schemas:
    A:
      properties:
        x: {$ref: '#/components/schemas/Shared'}
        y: {$ref: '#/components/schemas/Shared'}
    Shared:
      type: object
      properties:
        id: {type: integer}
`)
	assert.Empty(t, res.Issues)
	x := get(t, res.Root, "components", "schemas", "A", "properties", "x")
	y := get(t, res.Root, "components", "schemas", "A", "properties", "y")
	shared := get(t, res.Root, "components", "schemas", "Shared")

	assert.Same(t, get(t, x, "properties", "id"), get(t, y, "properties", "id"))
	assert.Same(t, get(t, x, "properties"), get(t, shared, "properties"))
	assert.False(t, shared.FromRef())
	assert.Len(t, res.References, 2)
}

func TestResolveCircular(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{
			name: "properties A then B",
			src: `components:
  schemas:
    A:
      properties:
        b: {$ref: '#/components/schemas/B'}
    B:
      properties:
        a: {$ref: '#/components/schemas/A'}
`,
		},
		{
			name: "properties B then A",
			src: `components:
  schemas:
    B:
      properties:
        a: {$ref: '#/components/schemas/A'}
    A:
      properties:
        b: {$ref: '#/components/schemas/B'}
`,
		},
		{
			name: "pure references A then B",
			src: `components:
  schemas:
    A: {$ref: '#/components/schemas/B'}
    B: {$ref: '#/components/schemas/A'}
`,
		},
		{
			name: "pure references B then A",
			src: `components:
  schemas:
    B: {$ref: '#/components/schemas/A'}
    A: {$ref: '#/components/schemas/B'}
`,
		},
		{
			name: "self reference",
			src: `components:
  schemas:
    Node:
      properties:
        next: {$ref: '#/components/schemas/Node'}
`,
		},
		{
			name: "reference to itself",
			src: `components:
  schemas:
    Loop: {$ref: '#/components/schemas/Loop'}
`,
		},
		{
			name: "reference to root",
			src: `info:
  self: {$ref: '#'}
`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := resolve(t, tt.src)
			require.Equal(t, []string{CodeCircularReference}, codes(res.Issues))
			assert.Contains(t, res.Issues[0].Message, "circular reference")
		})
	}
}

func TestResolveCircularPlaceholder(t *testing.T) {
	res := resolve(t, `components:
  schemas:
    Node:
      type: object
      properties:
        next: {$ref: '#/components/schemas/Node'}
`)
	next := get(t, res.Root, "components", "schemas", "Node", "properties", "next")
	assert.True(t, next.IsPlaceholder())
	assert.True(t, next.IsMapping())
	assert.Equal(t, 0, next.Len())
	assert.Equal(t, document.PathOf("components", "schemas", "Node", "properties", "next"), next.Path())
	assert.Equal(t, document.PathOf("components", "schemas", "Node", "properties", "next"), res.Issues[0].Path)
}

func TestResolveFaults(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		opts     []Option
		wantCode string
		wantPath document.Path
	}{
		{
			name:     "missing target",
			src:      "a:\n  b: {$ref: '#/components/schemas/Missing'}\n",
			wantCode: CodeUnresolvedReference,
			wantPath: document.PathOf("a", "b"),
		},
		{
			name:     "index out of range",
			src:      "servers: [{url: x}]\na: {$ref: '#/servers/3'}\n",
			wantCode: CodeUnresolvedReference,
			wantPath: document.PathOf("a"),
		},
		{
			name:     "leading zero index",
			src:      "servers: [{url: x}]\na: {$ref: '#/servers/00'}\n",
			wantCode: CodeUnresolvedReference,
			wantPath: document.PathOf("a"),
		},
		{
			name:     "descend into scalar",
			src:      "x: 1\na: {$ref: '#/x/y'}\n",
			wantCode: CodeUnresolvedReference,
			wantPath: document.PathOf("a"),
		},
		{
			name:     "external file",
			src:      "a: {$ref: 'common.yaml#/Pet'}\n",
			wantCode: CodeUnsupportedReference,
			wantPath: document.PathOf("a"),
		},
		{
			name:     "url",
			src:      "a: {$ref: 'https://example.com/api.yaml#/Pet'}\n",
			wantCode: CodeUnsupportedReference,
			wantPath: document.PathOf("a"),
		},
		{
			name: "chain too long",
			src: `c:
  a0: {$ref: '#/c/a1'}
  a1: {$ref: '#/c/a2'}
  a2: {$ref: '#/c/a3'}
  a3: {$ref: '#/c/a4'}
  a4: {$ref: '#/c/a5'}
  a5: {type: string}
`,
			opts:     []Option{WithMaxDepth(3)},
			wantCode: CodeReferenceDepthExceeded,
			wantPath: document.PathOf("c", "a3"),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := resolve(t, tt.src, tt.opts...)
			require.Equal(t, []string{tt.wantCode}, codes(res.Issues))
			assert.Equal(t, tt.wantPath, res.Issues[0].Path)
			assert.Positive(t, res.Issues[0].Line)
		})
	}
}

func TestResolveRefChain(t *testing.T) {
	res := resolve(t, `c:
  a: {$ref: '#/c/b'}
  b: {$ref: '#/c/target'}
  target: {type: string}
`)
	assert.Empty(t, res.Issues)
	a := get(t, res.Root, "c", "a")
	assert.Equal(t, []string{"#/c/b", "#/c/target"}, a.RefChain())
	assert.Equal(t, document.PathOf("c", "target"), a.Path())

	b := get(t, res.Root, "c", "b")
	assert.Equal(t, []string{"#/c/target"}, b.RefChain())
	assert.Len(t, res.References, 2)
}

func TestResolveDefaultDepthAllowsLongChains(t *testing.T) {
	res := resolve(t, `c:
  a0: {$ref: '#/c/a1'}
  a1: {$ref: '#/c/a2'}
  a2: {$ref: '#/c/a3'}
  a3: {type: string}
`)
	assert.Empty(t, res.Issues)
	assert.Equal(t, DefaultMaxDepth, New().MaxDepth())
	assert.Equal(t, DefaultMaxDepth, New(WithMaxDepth(0)).MaxDepth())
}

func TestResolveFaultReportedOnce(t *testing.T) {
	res := resolve(t, `c:
  broken: {$ref: '#/nowhere'}
  one: {$ref: '#/c/broken'}
  two: {$ref: '#/c/broken'}
  list:
    - {$ref: '#/c/broken'}
`)
	assert.Equal(t, 1, countCode(res.Issues, CodeUnresolvedReference))
	assert.Equal(t, document.PathOf("c", "broken"), res.Issues[0].Path)
	assert.True(t, get(t, res.Root, "c", "two").IsPlaceholder())
}

func TestResolveSequences(t *testing.T) {
	res := resolve(t, `servers:
  - url: https://a.example.com
x:
  first: {$ref: '#/servers/0'}
`)
	assert.Empty(t, res.Issues)
	first := get(t, res.Root, "x", "first")
	assert.Equal(t, document.PathOf("servers", 0), first.Path())

	servers := get(t, res.Root, "servers")
	require.True(t, servers.IsSequence())
	require.Len(t, servers.Items(), 1)
	url, _ := servers.Items()[0].StringField("url")
	assert.Equal(t, "https://a.example.com", url)
}

func TestResolveReferencesSorted(t *testing.T) {
	res := resolve(t, `z: {$ref: '#/a'}
a: {type: string}
m: {$ref: '#/a'}
`)
	require.Len(t, res.References, 2)
	assert.Equal(t, document.PathOf("m"), res.References[0].Site.Path())
	assert.Equal(t, document.PathOf("z"), res.References[1].Site.Path())
}

func TestNodeValue(t *testing.T) {
	res := resolve(t, `c:
  a:
    name: x
    tags: [1, true]
    ref: {$ref: '#/c/b'}
  b: {type: string}
`)
	v := get(t, res.Root, "c", "a").Value()
	assert.Equal(t, map[string]any{
		"name": "x",
		"tags": []any{int64(1), true},
		"ref":  map[string]any{"type": "string"},
	}, v)
}

func TestResolveDoesNotHangOnDeepCycles(t *testing.T) {
	res := resolve(t, `components:
  schemas:
    A:
      properties:
        b: {$ref: '#/components/schemas/B'}
        c: {$ref: '#/components/schemas/C'}
    B:
      items: {$ref: '#/components/schemas/C'}
    C:
      allOf:
        - $ref: '#/components/schemas/A'
        - $ref: '#/components/schemas/B'
`)
	assert.NotEmpty(t, res.Issues)
	for _, iss := range res.Issues {
		assert.Equal(t, CodeCircularReference, iss.Code)
	}
}
