package resolver

import (
	"github.com/erraggy/oaslint/document"
)

// Node is a view of the document with $ref mappings replaced by their targets.
//
// The tree is built once per run and shared read-only. A node reached through a
// reference shares its body with every other site referencing the same target,
// so Path always reports where the content is written, never the route taken.
type Node struct {
	body    *body
	fromRef bool
	chain   []string
	site    *document.Node
}

// body is the shared content of one origin node.
type body struct {
	origin      *document.Node
	keys        []string
	values      []*Node
	index       map[string]int
	items       []*Node
	placeholder bool
}

func newBody(origin *document.Node) *body {
	b := &body{origin: origin}
	switch origin.Kind() {
	case document.KindMapping:
		b.keys = make([]string, 0, origin.Len())
		b.values = make([]*Node, 0, origin.Len())
		b.index = make(map[string]int, origin.Len())
	case document.KindSequence:
		b.items = make([]*Node, 0, origin.Len())
	}
	return b
}

func placeholderBody(site *document.Node) *body {
	return &body{origin: site, placeholder: true, index: map[string]int{}}
}

// Origin returns the document node the content comes from. For placeholders
// this is the faulty $ref mapping.
func (n *Node) Origin() *document.Node { return n.body.origin }

// Path returns where the content is written in the source document.
func (n *Node) Path() document.Path { return n.body.origin.Path() }

// Line returns the 1-based source line of the origin.
func (n *Node) Line() int { return n.body.origin.Line() }

// Column returns the 1-based source column of the origin.
func (n *Node) Column() int { return n.body.origin.Column() }

// Kind returns the variant tag. Placeholders are always mappings.
func (n *Node) Kind() document.Kind {
	if n.body.placeholder {
		return document.KindMapping
	}
	return n.body.origin.Kind()
}

// IsMapping reports whether the node is a mapping.
func (n *Node) IsMapping() bool { return n != nil && n.Kind() == document.KindMapping }

// IsSequence reports whether the node is a sequence.
func (n *Node) IsSequence() bool { return n != nil && n.Kind() == document.KindSequence }

// IsScalar reports whether the node is a scalar.
func (n *Node) IsScalar() bool { return n != nil && n.Kind() == document.KindScalar }

// IsPlaceholder reports whether the node stands in for a reference that could
// not be resolved.
func (n *Node) IsPlaceholder() bool { return n.body.placeholder }

// FromRef reports whether the node was substituted for a $ref mapping.
func (n *Node) FromRef() bool { return n.fromRef }

// RefChain returns the pointers followed from the reference site, in order.
func (n *Node) RefChain() []string {
	out := make([]string, len(n.chain))
	copy(out, n.chain)
	return out
}

// Site returns the $ref mapping this node replaced, or nil.
func (n *Node) Site() *document.Node { return n.site }

// Len returns the number of entries of a mapping or sequence.
func (n *Node) Len() int {
	switch n.Kind() {
	case document.KindMapping:
		return len(n.body.keys)
	case document.KindSequence:
		return len(n.body.items)
	default:
		return 0
	}
}

// Get returns the resolved value stored under key.
func (n *Node) Get(key string) (*Node, bool) {
	if n == nil || n.Kind() != document.KindMapping {
		return nil, false
	}
	i, ok := n.body.index[key]
	if !ok {
		return nil, false
	}
	return n.body.values[i], true
}

// Has reports whether a mapping holds key.
func (n *Node) Has(key string) bool {
	_, ok := n.Get(key)
	return ok
}

// Keys returns the mapping keys in document order.
func (n *Node) Keys() []string {
	out := make([]string, len(n.body.keys))
	copy(out, n.body.keys)
	return out
}

// Items returns the resolved sequence elements.
func (n *Node) Items() []*Node {
	out := make([]*Node, len(n.body.items))
	copy(out, n.body.items)
	return out
}

// StringValue returns the scalar value when it is a string.
func (n *Node) StringValue() (string, bool) {
	if n == nil || n.body.placeholder {
		return "", false
	}
	return n.body.origin.StringValue()
}

// BoolValue returns the scalar value when it is a boolean.
func (n *Node) BoolValue() (bool, bool) {
	if n == nil || n.body.placeholder {
		return false, false
	}
	return n.body.origin.BoolValue()
}

// Text returns a scalar rendered as text, or "" for collections.
func (n *Node) Text() string {
	if n.Kind() != document.KindScalar {
		return ""
	}
	return n.body.origin.Text()
}

// TypeName names the JSON type of the node.
func (n *Node) TypeName() string {
	if n.body.placeholder {
		return "object"
	}
	return n.body.origin.TypeName()
}

// StringField returns the string stored under key, if any.
func (n *Node) StringField(key string) (string, bool) {
	v, ok := n.Get(key)
	if !ok {
		return "", false
	}
	return v.StringValue()
}

// maxValueDepth bounds Value conversion. Shared bodies make the resolved view
// a DAG, and an unbounded expansion could be exponential in its depth.
const maxValueDepth = 16

// Value converts the node into plain Go values: map[string]any, []any,
// string, int64, float64, bool or nil. Content nested deeper than a fixed
// bound is returned as nil.
func (n *Node) Value() any {
	return n.value(0)
}

func (n *Node) value(depth int) any {
	if depth > maxValueDepth {
		return nil
	}
	switch n.Kind() {
	case document.KindMapping:
		m := make(map[string]any, len(n.body.keys))
		for i, k := range n.body.keys {
			m[k] = n.body.values[i].value(depth + 1)
		}
		return m
	case document.KindSequence:
		s := make([]any, len(n.body.items))
		for i, item := range n.body.items {
			s[i] = item.value(depth + 1)
		}
		return s
	default:
		return n.body.origin.Value()
	}
}
