package document

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/erraggy/oaslint/oaserrors"
	"go.yaml.in/yaml/v4"
)

// maxExpandedNodes bounds the number of nodes materialized through YAML
// aliases, which would otherwise allow exponential documents.
const maxExpandedNodes = 1 << 20

// Document is a loaded OpenAPI document.
type Document struct {
	// Root is the top-level mapping
	Root *Node
	// Source holds the bytes the document was loaded from
	Source []byte
	// Format is the format the bytes were parsed as
	Format Format
	// SourcePath is the file path or an identifier such as "<stdin>"
	SourcePath string
}

// Version returns the raw value of the top-level openapi field, or "" when
// absent or not a string.
func (d *Document) Version() string {
	if d == nil || d.Root == nil {
		return ""
	}
	v, ok := d.Root.Get("openapi")
	if !ok {
		return ""
	}
	s, _ := v.StringValue()
	return s
}

// LoadFile reads and loads the document at path, inferring the format from
// the extension and falling back to the content.
func LoadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path) //nolint:gosec // reading user-specified files is the purpose
	if err != nil {
		return nil, fmt.Errorf("document: failed to read file %s: %w", path, err)
	}
	return LoadNamed(path, data, DetectFormatFromPath(path))
}

// Load parses data in the given format. FormatUnknown infers the format from content.
func Load(data []byte, format Format) (*Document, error) {
	return LoadNamed("", data, format)
}

// LoadNamed parses data like Load and records name as the document's SourcePath.
// Any failure is returned as a *oaserrors.ParseError.
func LoadNamed(name string, data []byte, format Format) (*Document, error) {
	if format == FormatUnknown || format == "" {
		format = DetectFormatFromContent(data)
	}
	if format == FormatUnknown {
		return nil, &oaserrors.ParseError{Path: name, Message: "document is empty"}
	}

	text := bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	if format == FormatJSON {
		if err := checkJSON(name, text); err != nil {
			return nil, err
		}
		// Outside of strings, a tab in valid JSON is plain whitespace. YAML
		// forbids tabs as indentation, so swap them one-for-one to keep columns.
		text = bytes.ReplaceAll(text, []byte{'\t'}, []byte{' '})
	}

	var raw yaml.Node
	if err := yaml.Unmarshal(text, &raw); err != nil {
		line, col := yamlErrorPosition(err.Error())
		return nil, &oaserrors.ParseError{
			Path:    name,
			Line:    line,
			Column:  col,
			Message: "invalid " + strings.ToUpper(string(format)),
			Cause:   err,
		}
	}

	if raw.Kind == 0 || (raw.Kind == yaml.DocumentNode && len(raw.Content) == 0) {
		return nil, &oaserrors.ParseError{Path: name, Message: "document is empty"}
	}
	top := &raw
	if top.Kind == yaml.DocumentNode {
		top = top.Content[0]
	}

	b := &builder{name: name, active: make(map[*yaml.Node]bool)}
	root, err := b.build(top, Path{})
	if err != nil {
		return nil, err
	}
	if root.kind != KindMapping {
		return nil, &oaserrors.ParseError{
			Path:    name,
			Line:    root.line,
			Column:  root.column,
			Message: fmt.Sprintf("document root must be a mapping, got %s", root.TypeName()),
		}
	}

	return &Document{
		Root:       root,
		Source:     data,
		Format:     format,
		SourcePath: name,
	}, nil
}

// checkJSON reports JSON syntax errors with the offset translated to a line and column.
func checkJSON(name string, data []byte) error {
	var v any
	err := json.Unmarshal(data, &v)
	if err == nil {
		return nil
	}
	pe := &oaserrors.ParseError{Path: name, Message: "invalid JSON", Cause: err}
	var syn *json.SyntaxError
	if errors.As(err, &syn) {
		pe.Line, pe.Column = offsetPosition(data, syn.Offset)
	}
	return pe
}

// offsetPosition converts a byte offset into a 1-based line and column.
func offsetPosition(data []byte, offset int64) (int, int) {
	if offset > int64(len(data)) {
		offset = int64(len(data))
	}
	if offset < 1 {
		return 1, 1
	}
	// the reported offset is just past the offending byte
	prefix := data[:offset-1]
	line := bytes.Count(prefix, []byte{'\n'}) + 1
	col := len(prefix) - bytes.LastIndexByte(prefix, '\n')
	return line, col
}

var (
	yamlLineCol = regexp.MustCompile(`line (\d+)(?:, column (\d+))?`)
	yamlBracket = regexp.MustCompile(`\[(\d+):(\d+)\]`)
)

// yamlErrorPosition extracts a position from a YAML error message.
func yamlErrorPosition(msg string) (int, int) {
	if m := yamlBracket.FindStringSubmatch(msg); m != nil {
		line, _ := strconv.Atoi(m[1])
		col, _ := strconv.Atoi(m[2])
		return line, col
	}
	if m := yamlLineCol.FindStringSubmatch(msg); m != nil {
		line, _ := strconv.Atoi(m[1])
		col := 0
		if m[2] != "" {
			col, _ = strconv.Atoi(m[2])
		}
		return line, col
	}
	return 0, 0
}

// builder converts a yaml.Node tree into Nodes, assigning paths as it goes.
type builder struct {
	name     string
	active   map[*yaml.Node]bool
	expanded int
	aliasing int
}

func (b *builder) fail(n *yaml.Node, format string, args ...any) error {
	return &oaserrors.ParseError{
		Path:    b.name,
		Line:    n.Line,
		Column:  n.Column,
		Message: fmt.Sprintf(format, args...),
	}
}

func (b *builder) build(yn *yaml.Node, path Path) (*Node, error) {
	if b.aliasing > 0 {
		b.expanded++
		if b.expanded > maxExpandedNodes {
			return nil, b.fail(yn, "alias expansion exceeds %d nodes", maxExpandedNodes)
		}
	}

	switch yn.Kind {
	case yaml.AliasNode:
		if yn.Alias == nil {
			return nil, b.fail(yn, "unknown alias %q", yn.Value)
		}
		if b.active[yn.Alias] {
			return nil, b.fail(yn, "alias %q refers to itself", yn.Value)
		}
		b.active[yn.Alias] = true
		b.aliasing++
		n, err := b.build(yn.Alias, path)
		b.aliasing--
		delete(b.active, yn.Alias)
		if err != nil {
			return nil, err
		}
		// aliases are located at the alias site
		n.line, n.column = yn.Line, yn.Column
		return n, nil

	case yaml.MappingNode:
		return b.buildMapping(yn, path)

	case yaml.SequenceNode:
		n := &Node{kind: KindSequence, path: path, line: yn.Line, column: yn.Column}
		n.items = make([]*Node, 0, len(yn.Content))
		for i, child := range yn.Content {
			item, err := b.build(child, path.Child(Index(i)))
			if err != nil {
				return nil, err
			}
			n.items = append(n.items, item)
		}
		return n, nil

	case yaml.ScalarNode:
		n := &Node{kind: KindScalar, path: path, line: yn.Line, column: yn.Column, raw: yn.Value}
		n.scalarType, n.value = decodeScalar(yn)
		return n, nil

	case yaml.DocumentNode:
		if len(yn.Content) == 0 {
			return nil, b.fail(yn, "empty nested document")
		}
		return b.build(yn.Content[0], path)

	default:
		return nil, b.fail(yn, "unsupported YAML node kind %d", yn.Kind)
	}
}

func (b *builder) buildMapping(yn *yaml.Node, path Path) (*Node, error) {
	n := &Node{
		kind:   KindMapping,
		path:   path,
		line:   yn.Line,
		column: yn.Column,
		index:  make(map[string]int, len(yn.Content)/2),
	}

	var merges []*yaml.Node
	for i := 0; i+1 < len(yn.Content); i += 2 {
		keyNode, valNode := yn.Content[i], yn.Content[i+1]
		if keyNode.Kind == yaml.AliasNode && keyNode.Alias != nil {
			keyNode = keyNode.Alias
		}
		if keyNode.Kind != yaml.ScalarNode {
			return nil, b.fail(keyNode, "mapping keys must be scalars")
		}
		if keyNode.ShortTag() == "!!merge" {
			merges = append(merges, valNode)
			continue
		}
		key := keyNode.Value
		if _, dup := n.index[key]; dup {
			return nil, b.fail(keyNode, "duplicate key %q", key)
		}
		val, err := b.build(valNode, path.Child(Key(key)))
		if err != nil {
			return nil, err
		}
		n.index[key] = len(n.keys)
		n.keys = append(n.keys, key)
		n.values = append(n.values, val)
	}

	for _, m := range merges {
		if err := b.merge(n, m, path); err != nil {
			return nil, err
		}
	}
	return n, nil
}

// merge applies a YAML "<<" merge key. Explicit keys always win.
func (b *builder) merge(n *Node, src *yaml.Node, path Path) error {
	var sources []*yaml.Node
	switch src.Kind {
	case yaml.SequenceNode:
		sources = src.Content
	default:
		sources = []*yaml.Node{src}
	}
	for _, s := range sources {
		m, err := b.build(s, path)
		if err != nil {
			return err
		}
		if m.kind != KindMapping {
			return b.fail(s, "merge value must be a mapping")
		}
		for i, key := range m.keys {
			if _, exists := n.index[key]; exists {
				continue
			}
			val, err := rebase(m.values[i], path.Child(Key(key)))
			if err != nil {
				return err
			}
			n.index[key] = len(n.keys)
			n.keys = append(n.keys, key)
			n.values = append(n.values, val)
		}
	}
	return nil
}

// rebase copies a subtree so its paths hang off base.
func rebase(n *Node, base Path) (*Node, error) {
	out := *n
	out.path = base
	switch n.kind {
	case KindMapping:
		out.values = make([]*Node, len(n.values))
		out.index = make(map[string]int, len(n.keys))
		out.keys = append([]string(nil), n.keys...)
		for i, key := range n.keys {
			v, err := rebase(n.values[i], base.Child(Key(key)))
			if err != nil {
				return nil, err
			}
			out.values[i] = v
			out.index[key] = i
		}
	case KindSequence:
		out.items = make([]*Node, len(n.items))
		for i, item := range n.items {
			v, err := rebase(item, base.Child(Index(i)))
			if err != nil {
				return nil, err
			}
			out.items[i] = v
		}
	}
	return &out, nil
}

// decodeScalar resolves a YAML scalar to its JSON-compatible value.
// Tags outside the JSON data model (timestamps, binary) stay strings.
func decodeScalar(yn *yaml.Node) (ScalarType, any) {
	v := yn.Value
	switch yn.ShortTag() {
	case "!!null":
		return ScalarNull, nil
	case "!!bool":
		if b, err := strconv.ParseBool(v); err == nil {
			return ScalarBool, b
		}
	case "!!int":
		if i, err := strconv.ParseInt(v, 0, 64); err == nil {
			return ScalarInt, i
		}
		if f, err := strconv.ParseFloat(strings.ReplaceAll(v, "_", ""), 64); err == nil {
			return ScalarFloat, f
		}
	case "!!float":
		if f, ok := parseYAMLFloat(v); ok {
			return ScalarFloat, f
		}
	}
	return ScalarString, v
}

func parseYAMLFloat(v string) (float64, bool) {
	switch strings.ToLower(v) {
	case ".inf", "+.inf":
		return math.Inf(1), true
	case "-.inf":
		return math.Inf(-1), true
	case ".nan":
		return math.NaN(), true
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(v, "_", ""), 64)
	return f, err == nil
}
