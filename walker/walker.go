package walker

import (
	"context"
	"fmt"

	"github.com/erraggy/oaslint/document"
	"github.com/erraggy/oaslint/resolver"
)

// DefaultMaxSchemaDepth is the default bound on nested schema traversal.
const DefaultMaxSchemaDepth = 100

// Action controls the walker's behavior after visiting a node.
type Action int

const (
	// Continue continues walking normally, visiting children and siblings.
	Continue Action = iota

	// SkipChildren skips all children of the current node but continues with siblings.
	SkipChildren

	// Stop stops the walk immediately. No more nodes will be visited.
	Stop
)

// IsValid returns true if the action is one of the defined constants.
func (a Action) IsValid() bool {
	return a >= Continue && a <= Stop
}

// String returns a string representation of the action.
func (a Action) String() string {
	switch a {
	case Continue:
		return "Continue"
	case SkipChildren:
		return "SkipChildren"
	case Stop:
		return "Stop"
	default:
		return fmt.Sprintf("Action(%d)", a)
	}
}

// Category names the kind of OpenAPI object a handler is interested in.
type Category string

const (
	CategoryDocument       Category = "document"
	CategoryPathItem       Category = "pathItem"
	CategoryOperation      Category = "operation"
	CategoryParameter      Category = "parameter"
	CategoryRequestBody    Category = "requestBody"
	CategoryResponse       Category = "response"
	CategoryMediaType      Category = "mediaType"
	CategoryHeader         Category = "header"
	CategorySchema         Category = "schema"
	CategoryServer         Category = "server"
	CategorySecurityScheme Category = "securityScheme"
)

// Categories lists every category in traversal-independent, stable order.
func Categories() []Category {
	return []Category{
		CategoryDocument,
		CategoryPathItem,
		CategoryOperation,
		CategoryParameter,
		CategoryRequestBody,
		CategoryResponse,
		CategoryMediaType,
		CategoryHeader,
		CategorySchema,
		CategoryServer,
		CategorySecurityScheme,
	}
}

// ParseCategory maps a category name to a Category.
func ParseCategory(s string) (Category, bool) {
	for _, c := range Categories() {
		if string(c) == s {
			return c, true
		}
	}
	return "", false
}

// Handler is called for each node of a registered category.
type Handler func(wc *WalkContext) Action

// Option configures the Walker.
type Option func(*Walker)

// WithHandler sets the handler for a category, replacing any previous one.
func WithHandler(c Category, fn Handler) Option {
	return func(w *Walker) { w.handlers[c] = fn }
}

// WithMaxSchemaDepth sets the maximum schema recursion depth.
// If depth is not positive, it is silently ignored and the default (100) is kept.
func WithMaxSchemaDepth(depth int) Option {
	return func(w *Walker) {
		if depth > 0 {
			w.maxDepth = depth
		}
	}
}

// visitKey identifies one dispatch. Shared targets reached from several
// sites are dispatched once per category.
type visitKey struct {
	origin   *document.Node
	category Category
}

// Walker traverses a resolved OpenAPI 3.x document and calls handlers for
// each node category.
type Walker struct {
	handlers map[Category]Handler
	maxDepth int

	// per-walk state
	ctx     context.Context
	doc     *resolver.Document
	visited map[visitKey]bool
	stopped bool
	err     error
}

// New creates a new Walker with default settings.
func New(opts ...Option) *Walker {
	w := &Walker{
		handlers: make(map[Category]Handler),
		maxDepth: DefaultMaxSchemaDepth,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Walk traverses doc and calls registered handlers. It returns the context's
// error if the walk was cancelled.
func Walk(ctx context.Context, doc *resolver.Document, opts ...Option) error {
	return New(opts...).Walk(ctx, doc)
}

// Walk traverses doc with the walker's handlers.
func (w *Walker) Walk(ctx context.Context, doc *resolver.Document) error {
	if doc == nil || doc.Root == nil {
		return fmt.Errorf("walker: nil document")
	}
	w.ctx = ctx
	w.doc = doc
	w.visited = make(map[visitKey]bool)
	w.stopped = false
	w.err = nil

	w.walkDocument(doc.Root)
	return w.err
}

// visit dispatches n to the category handler. It returns true when the
// walk should descend into n's children.
func (w *Walker) visit(c Category, n *resolver.Node, state walkState) bool {
	if w.stopped || n == nil || n.IsPlaceholder() || !n.IsMapping() {
		return false
	}
	if err := w.ctx.Err(); err != nil {
		w.err = err
		w.stopped = true
		return false
	}
	key := visitKey{origin: n.Origin(), category: c}
	if w.visited[key] {
		return false
	}
	w.visited[key] = true

	fn := w.handlers[c]
	if fn == nil {
		return true
	}
	return w.handleAction(fn(state.buildContext(c, n, w)))
}

// handleAction processes the action returned by a handler.
// Returns true if walking should continue to children.
func (w *Walker) handleAction(action Action) bool {
	switch action {
	case Stop:
		w.stopped = true
		return false
	case SkipChildren:
		return false
	default:
		return true
	}
}
