package document

import "strconv"

// Kind is the variant tag of a Node.
type Kind int

const (
	// KindMapping is an ordered set of unique string keys to nodes
	KindMapping Kind = iota + 1
	// KindSequence is an ordered list of nodes
	KindSequence
	// KindScalar is a string, number, boolean or null
	KindScalar
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindMapping:
		return "mapping"
	case KindSequence:
		return "sequence"
	case KindScalar:
		return "scalar"
	default:
		return "unknown"
	}
}

// ScalarType refines a scalar node.
type ScalarType int

const (
	ScalarNull ScalarType = iota
	ScalarString
	ScalarInt
	ScalarFloat
	ScalarBool
)

// String returns the JSON type name of the scalar.
func (t ScalarType) String() string {
	switch t {
	case ScalarString:
		return "string"
	case ScalarInt:
		return "integer"
	case ScalarFloat:
		return "number"
	case ScalarBool:
		return "boolean"
	default:
		return "null"
	}
}

// Node is one element of a loaded document. Nodes are immutable once the
// loader returns; every accessor returns copies or read-only views.
type Node struct {
	kind   Kind
	path   Path
	line   int
	column int

	// mapping
	keys   []string
	values []*Node
	index  map[string]int

	// sequence
	items []*Node

	// scalar
	scalarType ScalarType
	raw        string
	value      any
}

// Kind returns the variant tag.
func (n *Node) Kind() Kind { return n.kind }

// IsMapping reports whether n is a mapping.
func (n *Node) IsMapping() bool { return n != nil && n.kind == KindMapping }

// IsSequence reports whether n is a sequence.
func (n *Node) IsSequence() bool { return n != nil && n.kind == KindSequence }

// IsScalar reports whether n is a scalar.
func (n *Node) IsScalar() bool { return n != nil && n.kind == KindScalar }

// Path returns the location of n from the document root.
func (n *Node) Path() Path { return n.path }

// Line returns the 1-based source line, or 0 if unknown.
func (n *Node) Line() int { return n.line }

// Column returns the 1-based source column, or 0 if unknown.
func (n *Node) Column() int { return n.column }

// Len returns the number of entries of a mapping or sequence, and 0 for scalars.
func (n *Node) Len() int {
	switch n.kind {
	case KindMapping:
		return len(n.keys)
	case KindSequence:
		return len(n.items)
	default:
		return 0
	}
}

// Get returns the value stored under key in a mapping.
func (n *Node) Get(key string) (*Node, bool) {
	if n == nil || n.kind != KindMapping {
		return nil, false
	}
	i, ok := n.index[key]
	if !ok {
		return nil, false
	}
	return n.values[i], true
}

// Has reports whether a mapping holds key.
func (n *Node) Has(key string) bool {
	_, ok := n.Get(key)
	return ok
}

// Keys returns the mapping keys in document order.
func (n *Node) Keys() []string {
	if n.kind != KindMapping {
		return nil
	}
	out := make([]string, len(n.keys))
	copy(out, n.keys)
	return out
}

// Item returns the i-th element of a sequence.
func (n *Node) Item(i int) (*Node, bool) {
	if n == nil || n.kind != KindSequence || i < 0 || i >= len(n.items) {
		return nil, false
	}
	return n.items[i], true
}

// Items returns the sequence elements in order.
func (n *Node) Items() []*Node {
	if n.kind != KindSequence {
		return nil
	}
	out := make([]*Node, len(n.items))
	copy(out, n.items)
	return out
}

// ScalarType returns the scalar refinement. Non-scalars report ScalarNull.
func (n *Node) ScalarType() ScalarType { return n.scalarType }

// Value returns the decoded scalar: string, int64, float64, bool or nil.
func (n *Node) Value() any { return n.value }

// Raw returns the scalar exactly as written in the source.
func (n *Node) Raw() string { return n.raw }

// StringValue returns the scalar value when it is a string.
func (n *Node) StringValue() (string, bool) {
	if n == nil || n.kind != KindScalar || n.scalarType != ScalarString {
		return "", false
	}
	s, ok := n.value.(string)
	return s, ok
}

// BoolValue returns the scalar value when it is a boolean.
func (n *Node) BoolValue() (bool, bool) {
	if n == nil || n.kind != KindScalar || n.scalarType != ScalarBool {
		return false, false
	}
	b, ok := n.value.(bool)
	return b, ok
}

// IsNull reports whether n is a null scalar.
func (n *Node) IsNull() bool {
	return n != nil && n.kind == KindScalar && n.scalarType == ScalarNull
}

// TypeName names the JSON type of the node, as used in diagnostics.
func (n *Node) TypeName() string {
	switch n.kind {
	case KindMapping:
		return "object"
	case KindSequence:
		return "array"
	default:
		return n.scalarType.String()
	}
}

// Text returns the scalar rendered as text regardless of its type.
// Map keys such as HTTP status codes are often written unquoted, so
// callers comparing keys should use Text rather than String.
func (n *Node) Text() string {
	if n.kind != KindScalar {
		return ""
	}
	switch v := n.value.(type) {
	case string:
		return v
	case int64:
		return strconv.FormatInt(v, 10)
	case bool:
		return strconv.FormatBool(v)
	case nil:
		return ""
	default:
		return n.raw
	}
}
