package resolver

import (
	"slices"

	"github.com/erraggy/oaslint/document"
	"github.com/erraggy/oaslint/internal/issues"
	"github.com/erraggy/oaslint/internal/logging"
	"github.com/erraggy/oaslint/internal/pathutil"
	"github.com/erraggy/oaslint/oaserrors"
)

// DefaultMaxDepth is the default bound on consecutive $ref hops.
const DefaultMaxDepth = 64

// Issue codes emitted during resolution. All are Errors.
const (
	CodeCircularReference      = "CIRCULAR_REFERENCE"
	CodeUnresolvedReference    = "UNRESOLVED_REFERENCE"
	CodeUnsupportedReference   = "UNSUPPORTED_REFERENCE"
	CodeReferenceDepthExceeded = "REFERENCE_DEPTH_EXCEEDED"
)

// Document is the result of resolving a loaded document.
type Document struct {
	// Root is the resolved top-level mapping
	Root *Node
	// Source is the document that was resolved
	Source *document.Document
	// Version is the raw openapi field ("" if absent)
	Version string
	// Issues holds the reference faults found, one per faulty site
	Issues []issues.Issue
	// References lists every $ref mapping, ordered by path
	References []Reference
}

// Reference records one $ref mapping of the source document.
type Reference struct {
	// Site is the mapping holding the $ref key
	Site *document.Node
	// Ref is the reference string
	Ref string
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithMaxDepth bounds the number of consecutive $ref hops followed from one
// site. Values below 1 are ignored.
func WithMaxDepth(n int) Option {
	return func(r *Resolver) {
		if n > 0 {
			r.maxDepth = n
		}
	}
}

// WithLogger sets the logger for resolution diagnostics.
func WithLogger(l logging.Logger) Option {
	return func(r *Resolver) {
		r.logger = logging.OrNop(l)
	}
}

// Resolver substitutes local $ref targets into a document.
// A Resolver holds only configuration and may be reused across runs.
type Resolver struct {
	maxDepth int
	logger   logging.Logger
}

// New creates a Resolver.
func New(opts ...Option) *Resolver {
	r := &Resolver{maxDepth: DefaultMaxDepth, logger: logging.NopLogger{}}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// MaxDepth returns the configured bound on consecutive $ref hops.
func (r *Resolver) MaxDepth() int { return r.maxDepth }

// frame is one mapping or sequence under construction.
type frame struct {
	src  *document.Node
	keys []string
	b    *body
	next int
}

// run holds the state of one Resolve call.
type run struct {
	cfg     *Resolver
	root    *document.Node
	stack   []*frame
	active  map[*document.Node]bool
	memo    map[*document.Node]*body
	refMemo map[*document.Node]*Node
	refs    map[*document.Node]string
	issues  []issues.Issue
}

// Resolve builds the resolved view of doc. It never fails: faulty references
// become Error issues and empty-mapping placeholders.
//
// Construction is iterative over an explicit stack of frames. A reference to
// a node whose frame is still on the stack, or one that re-enters its own
// chain of references, is circular.
func (r *Resolver) Resolve(doc *document.Document) *Document {
	rn := &run{
		cfg:     r,
		root:    doc.Root,
		active:  make(map[*document.Node]bool),
		memo:    make(map[*document.Node]*body),
		refMemo: make(map[*document.Node]*Node),
		refs:    make(map[*document.Node]string),
	}

	rootBody := newBody(doc.Root)
	rn.memo[doc.Root] = rootBody
	rn.push(doc.Root, rootBody)

	for len(rn.stack) > 0 {
		f := rn.stack[len(rn.stack)-1]
		if f.next >= f.src.Len() {
			rn.stack = rn.stack[:len(rn.stack)-1]
			delete(rn.active, f.src)
			continue
		}

		i := f.next
		f.next++
		switch f.src.Kind() {
		case document.KindMapping:
			key := f.keys[i]
			child, _ := f.src.Get(key)
			f.b.index[key] = len(f.b.keys)
			f.b.keys = append(f.b.keys, key)
			f.b.values = append(f.b.values, rn.child(child))
		case document.KindSequence:
			child, _ := f.src.Item(i)
			f.b.items = append(f.b.items, rn.child(child))
		}
	}

	out := &Document{
		Root:    &Node{body: rootBody},
		Source:  doc,
		Version: doc.Version(),
		Issues:  rn.issues,
	}
	for site, ref := range rn.refs {
		out.References = append(out.References, Reference{Site: site, Ref: ref})
	}
	slices.SortFunc(out.References, func(a, b Reference) int {
		return a.Site.Path().Compare(b.Site.Path())
	})

	r.logger.Debug("resolved document",
		"references", len(out.References),
		"faults", len(out.Issues),
		"shared_nodes", len(rn.memo))
	return out
}

func (rn *run) push(src *document.Node, b *body) {
	rn.active[src] = true
	rn.stack = append(rn.stack, &frame{src: src, keys: src.Keys(), b: b})
}

// child returns the resolved node for a plain child, pushing a frame when the
// child's content still has to be built.
func (rn *run) child(c *document.Node) *Node {
	if ref, ok := refValue(c); ok {
		rn.refs[c] = ref
		return rn.follow(c)
	}
	return &Node{body: rn.bodyFor(c)}
}

// bodyFor returns the shared body of origin, scheduling its construction on first use.
func (rn *run) bodyFor(origin *document.Node) *body {
	if b, ok := rn.memo[origin]; ok {
		return b
	}
	b := newBody(origin)
	rn.memo[origin] = b
	if origin.Kind() != document.KindScalar && origin.Len() > 0 {
		rn.push(origin, b)
	}
	return b
}

// follow resolves the chain of references starting at site.
func (rn *run) follow(site *document.Node) *Node {
	if n, ok := rn.refMemo[site]; ok {
		return n
	}

	var (
		seen   []*document.Node
		chain  []string
		cur    = site
		result *Node
	)
	for result == nil {
		ref, _ := refValue(cur)
		rn.refs[cur] = ref
		seen = append(seen, cur)
		chain = append(chain, ref)

		if prior, ok := rn.refMemo[cur]; ok && cur != site {
			// the rest of this chain was resolved from another site
			chain = append(chain[:len(chain)-1], prior.chain...)
			result = &Node{body: prior.body, fromRef: true, chain: chain, site: site}
			break
		}

		if !pathutil.IsLocalRef(ref) {
			result = rn.fault(cur, chain, CodeUnsupportedReference, &oaserrors.ReferenceError{
				Ref:           ref,
				IsUnsupported: true,
				Message:       "only local references starting with '#' are supported",
			})
			break
		}
		if len(chain) > rn.cfg.maxDepth {
			limit := &oaserrors.ResourceLimitError{
				ResourceType: "ref_depth",
				Limit:        int64(rn.cfg.maxDepth),
				Actual:       int64(len(chain)),
				Message:      "reference chain starting at " + site.Path().Fragment() + " is too long",
			}
			result = rn.fault(cur, chain, CodeReferenceDepthExceeded, limit)
			break
		}

		target, err := lookup(rn.root, ref)
		if err != nil {
			result = rn.fault(cur, chain, CodeUnresolvedReference, err)
			break
		}
		if rn.active[target] || slices.Contains(seen, target) {
			result = rn.fault(cur, chain, CodeCircularReference, &oaserrors.ReferenceError{
				Ref:        ref,
				IsCircular: true,
			})
			break
		}
		if _, isRef := refValue(target); isRef {
			cur = target
			continue
		}
		result = &Node{body: rn.bodyFor(target), fromRef: true, chain: chain, site: site}
	}

	rn.refMemo[site] = result
	for i := 1; i < len(seen); i++ {
		if _, ok := rn.refMemo[seen[i]]; ok {
			continue
		}
		rn.refMemo[seen[i]] = &Node{
			body:    result.body,
			fromRef: true,
			chain:   chain[i:],
			site:    seen[i],
		}
	}
	return result
}

// fault records a reference error at the $ref mapping n and returns a placeholder.
func (rn *run) fault(n *document.Node, chain []string, code string, err error) *Node {
	rn.issues = append(rn.issues, issues.NewError(code, n, "%s", err.Error()))
	rn.cfg.logger.Debug("reference fault", "code", code, "path", n.Path().String(), "error", err)
	return &Node{body: placeholderBody(n), fromRef: true, chain: chain, site: n}
}

// refValue reports whether n is a reference mapping and returns its target.
func refValue(n *document.Node) (string, bool) {
	if !n.IsMapping() {
		return "", false
	}
	v, ok := n.Get("$ref")
	if !ok {
		return "", false
	}
	return v.StringValue()
}
