package walker

import (
	"context"

	"github.com/erraggy/oaslint/resolver"
)

// WalkContext provides contextual information about the current node being visited.
// It follows the http.Request pattern for context access.
type WalkContext struct {
	// Category is the kind of object being visited
	Category Category

	// Node is the resolved object. Node.Path() is where it is written.
	Node *resolver.Node

	// Document is the resolved document being walked
	Document *resolver.Document

	// PathTemplate is the URL path template when walking within paths scope.
	// For webhooks it is the webhook name. Example: "/pets/{petId}"
	PathTemplate string

	// Method is the HTTP method when walking within an operation scope.
	// Empty when not in operation scope. Example: "get", "post"
	Method string

	// StatusCode is the HTTP status code when walking within a response scope.
	// Empty when not in response scope. Example: "200", "default"
	StatusCode string

	// Name is the map key for named items like schemas, properties, media types and headers.
	// Empty for array items. Example: "Pet", "application/json"
	Name string

	// IsComponent is true when the node was reached through the components section.
	IsComponent bool

	// IsWebhook is true when the node was reached through webhooks.
	IsWebhook bool

	ctx context.Context
}

// Context returns the context.Context for cancellation and deadline propagation.
// Returns context.Background() if no context was set.
func (wc *WalkContext) Context() context.Context {
	if wc.ctx == nil {
		return context.Background()
	}
	return wc.ctx
}

// InPathsScope returns true if currently walking within paths or webhooks.
func (wc *WalkContext) InPathsScope() bool {
	return wc.PathTemplate != ""
}

// InOperationScope returns true if currently walking within an operation.
func (wc *WalkContext) InOperationScope() bool {
	return wc.Method != ""
}

// InResponseScope returns true if currently walking within a response.
func (wc *WalkContext) InResponseScope() bool {
	return wc.StatusCode != ""
}

// walkState tracks context as we descend through the document.
type walkState struct {
	pathTemplate string
	method       string
	statusCode   string
	name         string
	isComponent  bool
	isWebhook    bool
}

// buildContext creates a WalkContext from the current walk state.
func (s walkState) buildContext(c Category, n *resolver.Node, w *Walker) *WalkContext {
	return &WalkContext{
		Category:     c,
		Node:         n,
		Document:     w.doc,
		PathTemplate: s.pathTemplate,
		Method:       s.method,
		StatusCode:   s.statusCode,
		Name:         s.name,
		IsComponent:  s.isComponent,
		IsWebhook:    s.isWebhook,
		ctx:          w.ctx,
	}
}

// named returns a copy of the state with the name replaced.
func (s walkState) named(name string) walkState {
	s.name = name
	return s
}
