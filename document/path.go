package document

import (
	"cmp"
	"strconv"
	"strings"

	"github.com/erraggy/oaslint/internal/pathutil"
)

// Segment is one step of a Path: a mapping key or a sequence index.
type Segment struct {
	key     string
	index   int
	isIndex bool
}

// Key returns a mapping-key segment.
func Key(k string) Segment {
	return Segment{key: k}
}

// Index returns a sequence-index segment.
func Index(i int) Segment {
	return Segment{index: i, isIndex: true}
}

// IsIndex reports whether the segment addresses a sequence element.
func (s Segment) IsIndex() bool { return s.isIndex }

// Key returns the mapping key, or "" for index segments.
func (s Segment) Key() string { return s.key }

// Index returns the sequence index, or -1 for key segments.
func (s Segment) Index() int {
	if !s.isIndex {
		return -1
	}
	return s.index
}

// String returns the unescaped textual form of the segment.
func (s Segment) String() string {
	if s.isIndex {
		return strconv.Itoa(s.index)
	}
	return s.key
}

// compare orders index segments before key segments.
func (s Segment) compare(o Segment) int {
	switch {
	case s.isIndex && o.isIndex:
		return cmp.Compare(s.index, o.index)
	case s.isIndex:
		return -1
	case o.isIndex:
		return 1
	default:
		return strings.Compare(s.key, o.key)
	}
}

// Path locates a node from the document root. The root path is empty.
//
// Paths are treated as values: Child always returns a fresh slice, so a Path
// obtained from a Node may be kept and shared freely.
type Path []Segment

// PathOf builds a Path from strings (keys) and ints (indices).
// Any other element type panics; PathOf is intended for literals.
func PathOf(parts ...any) Path {
	p := make(Path, 0, len(parts))
	for _, part := range parts {
		switch v := part.(type) {
		case string:
			p = append(p, Key(v))
		case int:
			p = append(p, Index(v))
		default:
			panic("document: PathOf accepts only string and int elements")
		}
	}
	return p
}

// Child returns a new path extending p by seg.
func (p Path) Child(seg Segment) Path {
	out := make(Path, len(p)+1)
	copy(out, p)
	out[len(p)] = seg
	return out
}

// Parent returns the path without its last segment. The parent of the root is the root.
func (p Path) Parent() Path {
	if len(p) == 0 {
		return p
	}
	return p[:len(p)-1:len(p)-1]
}

// Last returns the final segment, if any.
func (p Path) Last() (Segment, bool) {
	if len(p) == 0 {
		return Segment{}, false
	}
	return p[len(p)-1], true
}

// IsRoot reports whether p addresses the document root.
func (p Path) IsRoot() bool { return len(p) == 0 }

// Equal reports whether both paths have identical segments.
func (p Path) Equal(o Path) bool {
	return p.Compare(o) == 0
}

// HasPrefix reports whether prefix is a leading part of p.
func (p Path) HasPrefix(prefix Path) bool {
	if len(prefix) > len(p) {
		return false
	}
	return p[:len(prefix)].Equal(prefix)
}

// Compare gives a total order over paths: segment by segment, with a
// shorter path ordered before any path it is a prefix of.
func (p Path) Compare(o Path) int {
	for i := 0; i < len(p) && i < len(o); i++ {
		if c := p[i].compare(o[i]); c != 0 {
			return c
		}
	}
	return cmp.Compare(len(p), len(o))
}

// Strings returns the segments in their textual form.
func (p Path) Strings() []string {
	out := make([]string, len(p))
	for i, seg := range p {
		out[i] = seg.String()
	}
	return out
}

// String renders the path as an RFC 6901 JSON Pointer ("" for the root).
func (p Path) String() string {
	if len(p) == 0 {
		return ""
	}
	var b strings.Builder
	for _, seg := range p {
		b.WriteByte('/')
		b.WriteString(pathutil.EscapePointerToken(seg.String()))
	}
	return b.String()
}

// Fragment renders the path as a local $ref value, e.g. "#/components/schemas/Pet".
func (p Path) Fragment() string {
	return "#" + p.String()
}

// MarshalText renders the JSON Pointer form.
func (p Path) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}
