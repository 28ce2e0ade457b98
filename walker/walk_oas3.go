package walker

import (
	"github.com/erraggy/oaslint/internal/httputil"
	"github.com/erraggy/oaslint/resolver"
)

// schemaMapKeywords hold a mapping of named subschemas.
var schemaMapKeywords = []string{"properties", "patternProperties", "$defs", "definitions", "dependentSchemas"}

// schemaKeywords hold a single subschema.
var schemaKeywords = []string{
	"items", "additionalProperties", "not", "if", "then", "else",
	"contains", "propertyNames", "unevaluatedItems", "unevaluatedProperties", "additionalItems",
}

// schemaListKeywords hold a sequence of subschemas.
var schemaListKeywords = []string{"allOf", "anyOf", "oneOf", "prefixItems"}

func (w *Walker) walkDocument(root *resolver.Node) {
	state := walkState{}
	if !w.visit(CategoryDocument, root, state) {
		return
	}

	w.walkServers(root, state)

	if paths, ok := root.Get("paths"); ok && paths.IsMapping() {
		for _, tmpl := range paths.Keys() {
			if w.stopped {
				return
			}
			item, _ := paths.Get(tmpl)
			st := state
			st.pathTemplate = tmpl
			w.walkPathItem(item, st)
		}
	}

	if hooks, ok := root.Get("webhooks"); ok && hooks.IsMapping() {
		for _, name := range hooks.Keys() {
			if w.stopped {
				return
			}
			item, _ := hooks.Get(name)
			st := state
			st.pathTemplate = name
			st.isWebhook = true
			w.walkPathItem(item, st)
		}
	}

	if comps, ok := root.Get("components"); ok && comps.IsMapping() {
		w.walkComponents(comps, state)
	}
}

func (w *Walker) walkServers(parent *resolver.Node, state walkState) {
	servers, ok := parent.Get("servers")
	if !ok || !servers.IsSequence() {
		return
	}
	for _, s := range servers.Items() {
		if w.stopped {
			return
		}
		w.visit(CategoryServer, s, state)
	}
}

func (w *Walker) walkPathItem(item *resolver.Node, state walkState) {
	if !w.visit(CategoryPathItem, item, state) {
		return
	}
	w.walkServers(item, state)
	w.walkParameters(item, state)

	for _, key := range item.Keys() {
		if w.stopped {
			return
		}
		if !httputil.IsOperationMethod(key) {
			continue
		}
		op, _ := item.Get(key)
		st := state
		st.method = key
		w.walkOperation(op, st)
	}
}

func (w *Walker) walkParameters(parent *resolver.Node, state walkState) {
	params, ok := parent.Get("parameters")
	if !ok || !params.IsSequence() {
		return
	}
	for _, p := range params.Items() {
		if w.stopped {
			return
		}
		name, _ := p.StringField("name")
		w.walkParameter(p, state.named(name))
	}
}

func (w *Walker) walkParameter(p *resolver.Node, state walkState) {
	if !w.visit(CategoryParameter, p, state) {
		return
	}
	if schema, ok := p.Get("schema"); ok {
		w.walkSchema(schema, state.named(""), 0)
	}
	w.walkContent(p, state)
}

func (w *Walker) walkOperation(op *resolver.Node, state walkState) {
	if !w.visit(CategoryOperation, op, state) {
		return
	}
	w.walkParameters(op, state)

	if body, ok := op.Get("requestBody"); ok {
		w.walkRequestBody(body, state)
	}

	if responses, ok := op.Get("responses"); ok && responses.IsMapping() {
		for _, code := range responses.Keys() {
			if w.stopped {
				return
			}
			resp, _ := responses.Get(code)
			st := state
			st.statusCode = code
			w.walkResponse(resp, st)
		}
	}

	if callbacks, ok := op.Get("callbacks"); ok && callbacks.IsMapping() {
		for _, name := range callbacks.Keys() {
			cb, _ := callbacks.Get(name)
			w.walkCallback(cb, state)
		}
	}

	w.walkServers(op, state)
}

// walkCallback walks a callback: a map of runtime expressions to path items.
func (w *Walker) walkCallback(cb *resolver.Node, state walkState) {
	if cb == nil || !cb.IsMapping() {
		return
	}
	for _, expr := range cb.Keys() {
		if w.stopped {
			return
		}
		item, _ := cb.Get(expr)
		st := walkState{pathTemplate: expr, isComponent: state.isComponent, isWebhook: state.isWebhook}
		w.walkPathItem(item, st)
	}
}

func (w *Walker) walkRequestBody(body *resolver.Node, state walkState) {
	if !w.visit(CategoryRequestBody, body, state) {
		return
	}
	w.walkContent(body, state)
}

func (w *Walker) walkResponse(resp *resolver.Node, state walkState) {
	if !w.visit(CategoryResponse, resp, state) {
		return
	}
	if headers, ok := resp.Get("headers"); ok && headers.IsMapping() {
		for _, name := range headers.Keys() {
			h, _ := headers.Get(name)
			w.walkHeader(h, state.named(name))
		}
	}
	w.walkContent(resp, state)
}

func (w *Walker) walkHeader(h *resolver.Node, state walkState) {
	if !w.visit(CategoryHeader, h, state) {
		return
	}
	if schema, ok := h.Get("schema"); ok {
		w.walkSchema(schema, state.named(""), 0)
	}
	w.walkContent(h, state)
}

// walkContent walks the media types of a "content" map.
func (w *Walker) walkContent(parent *resolver.Node, state walkState) {
	content, ok := parent.Get("content")
	if !ok || !content.IsMapping() {
		return
	}
	for _, mediaType := range content.Keys() {
		if w.stopped {
			return
		}
		mt, _ := content.Get(mediaType)
		st := state.named(mediaType)
		if !w.visit(CategoryMediaType, mt, st) {
			continue
		}
		if schema, ok := mt.Get("schema"); ok {
			w.walkSchema(schema, st.named(""), 0)
		}
	}
}

func (w *Walker) walkSchema(schema *resolver.Node, state walkState, depth int) {
	if depth > w.maxDepth {
		return
	}
	if !w.visit(CategorySchema, schema, state) {
		return
	}

	for _, kw := range schemaMapKeywords {
		m, ok := schema.Get(kw)
		if !ok || !m.IsMapping() {
			continue
		}
		for _, name := range m.Keys() {
			if w.stopped {
				return
			}
			sub, _ := m.Get(name)
			w.walkSchema(sub, state.named(name), depth+1)
		}
	}

	nested := state.named("")
	for _, kw := range schemaKeywords {
		sub, ok := schema.Get(kw)
		if !ok {
			continue
		}
		if sub.IsSequence() {
			// 3.0-era tuple form of items
			for _, item := range sub.Items() {
				w.walkSchema(item, nested, depth+1)
			}
			continue
		}
		w.walkSchema(sub, nested, depth+1)
	}

	for _, kw := range schemaListKeywords {
		list, ok := schema.Get(kw)
		if !ok || !list.IsSequence() {
			continue
		}
		for _, sub := range list.Items() {
			if w.stopped {
				return
			}
			w.walkSchema(sub, nested, depth+1)
		}
	}
}

func (w *Walker) walkComponents(comps *resolver.Node, state walkState) {
	state.isComponent = true

	each := func(section string, fn func(name string, n *resolver.Node)) {
		m, ok := comps.Get(section)
		if !ok || !m.IsMapping() {
			return
		}
		for _, name := range m.Keys() {
			if w.stopped {
				return
			}
			n, _ := m.Get(name)
			fn(name, n)
		}
	}

	each("schemas", func(name string, n *resolver.Node) {
		w.walkSchema(n, state.named(name), 0)
	})
	each("parameters", func(name string, n *resolver.Node) {
		w.walkParameter(n, state.named(name))
	})
	each("requestBodies", func(name string, n *resolver.Node) {
		w.walkRequestBody(n, state.named(name))
	})
	each("responses", func(name string, n *resolver.Node) {
		w.walkResponse(n, state.named(name))
	})
	each("headers", func(name string, n *resolver.Node) {
		w.walkHeader(n, state.named(name))
	})
	each("securitySchemes", func(name string, n *resolver.Node) {
		w.visit(CategorySecurityScheme, n, state.named(name))
	})
	each("pathItems", func(name string, n *resolver.Node) {
		st := state.named(name)
		st.pathTemplate = name
		w.walkPathItem(n, st)
	})
	each("callbacks", func(_ string, n *resolver.Node) {
		w.walkCallback(n, state)
	})
}
