package validator

import (
	"fmt"
	"slices"
	"strings"

	"github.com/erraggy/oaslint/internal/httputil"
	"github.com/erraggy/oaslint/internal/pathutil"
	"github.com/erraggy/oaslint/resolver"
	"github.com/erraggy/oaslint/walker"
)

var parameterLocations = []string{"query", "header", "path", "cookie"}

// validateRoot checks the top-level object and the keys of paths.
func (c *check) validateRoot(root *resolver.Node) {
	origin := root.Origin()

	if v, ok := root.Get("openapi"); !ok {
		msg := "document must declare its OpenAPI version in the openapi field"
		if root.Has("swagger") {
			msg += " (Swagger 2.0 documents are not supported)"
		}
		c.missing(origin, "openapi", msg)
	} else if s, ok := v.StringValue(); !ok {
		c.add(CodeInvalidType, field(root, "openapi"), "openapi must be a string, got %s (quote the version)", v.TypeName())
	} else if c.declared == VersionUnknown {
		c.add(CodeUnsupportedVersion, field(root, "openapi"),
			"unsupported OpenAPI version %q: expected 3.0.x, 3.1.x or 3.2.x", s)
	}

	if !root.Has("info") {
		c.missing(origin, "info", "document must have an info object")
	} else if info, ok := c.requireKind(root, "info", false); ok {
		c.requireString(info, "title", "info")
		c.requireString(info, "version", "info")
	}

	if !root.Has("paths") {
		c.missing(origin, "paths", "document must have a paths object")
	} else if paths, ok := c.requireKind(root, "paths", false); ok {
		c.validatePaths(paths)
	}

	c.requireKind(root, "components", false)
	c.requireKind(root, "servers", true)
	c.requireKind(root, "security", true)
	c.requireKind(root, "tags", true)
	if c.version >= Version31 {
		c.requireKind(root, "webhooks", false)
	}
}

func (c *check) validatePaths(paths *resolver.Node) {
	for _, key := range paths.Keys() {
		if strings.HasPrefix(key, "x-") {
			continue
		}
		at := field(paths, key)
		if !strings.HasPrefix(key, "/") {
			c.add(CodeInvalidPath, at, "path %q must begin with '/'", key)
		} else if err := validatePathTemplate(key); err != nil {
			c.add(CodeInvalidPath, at, "path %q: %v", key, err)
		}

		item, _ := paths.Get(key)
		if !item.IsPlaceholder() && !item.IsMapping() {
			c.add(CodeInvalidType, at, "path item %q must be an object, got %s", key, item.TypeName())
		}
	}
}

func (c *check) pathItem(wc *walker.WalkContext) walker.Action {
	item := wc.Node
	methods := httputil.OperationMethods(c.version >= Version32)

	for _, key := range item.Keys() {
		if httputil.IsPathItemField(key) {
			continue
		}
		if slices.Contains(methods, key) {
			if op, _ := item.Get(key); !op.IsPlaceholder() && !op.IsMapping() {
				c.add(CodeInvalidType, field(item, key), "operation %s must be an object, got %s", key, op.TypeName())
			}
			continue
		}
		if key == httputil.MethodQuery {
			c.add(CodeInvalidOperationMethod, field(item, key),
				"the query method requires OpenAPI 3.2, document declares %s", c.version)
			continue
		}
		c.add(CodeInvalidOperationMethod, field(item, key),
			"%q is not an HTTP method or path item field (expected one of %s)", key, strings.Join(methods, ", "))
	}

	c.requireKind(item, "parameters", true)
	c.requireKind(item, "servers", true)

	if !wc.IsWebhook && !wc.IsComponent && strings.HasPrefix(wc.PathTemplate, "/") {
		c.checkPathParameters(wc.PathTemplate, item, methods)
	}
	return walker.Continue
}

// checkPathParameters matches the template of a path against the in: path
// parameters of its operations: every {name} must be declared by the
// operation or its path item, and every declared path parameter must appear
// in the template.
func (c *check) checkPathParameters(template string, item *resolver.Node, methods []string) {
	inTemplate := make(map[string]bool)
	var params []string
	for _, name := range pathutil.TemplateParams(template) {
		// runtime expressions of callbacks such as {$request.body#/url}
		if !strings.HasPrefix(name, "$") {
			params = append(params, name)
			inTemplate[name] = true
		}
	}

	shared := pathParameters(item)
	c.reportUntemplated(template, shared, inTemplate)

	for _, method := range methods {
		op, ok := item.Get(method)
		if !ok || !op.IsMapping() || op.IsPlaceholder() {
			continue
		}
		declared := pathParameters(op)
		c.reportUntemplated(template, declared, inTemplate)
		for _, name := range params {
			if hasParameter(shared, name) || hasParameter(declared, name) {
				continue
			}
			c.add(CodePathParameterMismatch, field(item, method),
				"path template %q references {%s} but %s does not declare it as a path parameter",
				template, name, strings.ToUpper(method))
		}
	}
}

func (c *check) reportUntemplated(template string, declared []namedParameter, inTemplate map[string]bool) {
	for _, p := range declared {
		if !inTemplate[p.name] {
			c.add(CodePathParameterMismatch, p.node.Origin(),
				"path parameter %q is not part of the path template %q", p.name, template)
		}
	}
}

type namedParameter struct {
	name string
	node *resolver.Node
}

// pathParameters returns the in: path parameters of n in declaration order.
func pathParameters(n *resolver.Node) []namedParameter {
	params, ok := n.Get("parameters")
	if !ok || !params.IsSequence() {
		return nil
	}
	var out []namedParameter
	for _, p := range params.Items() {
		if in, _ := p.StringField("in"); in != "path" {
			continue
		}
		if name, ok := p.StringField("name"); ok {
			out = append(out, namedParameter{name: name, node: p})
		}
	}
	return out
}

func hasParameter(params []namedParameter, name string) bool {
	for _, p := range params {
		if p.name == name {
			return true
		}
	}
	return false
}

func (c *check) operation(wc *walker.WalkContext) walker.Action {
	op := wc.Node

	if responses, ok := c.requireKind(op, "responses", false); ok {
		if responses.Len() == 0 {
			c.add(CodeEmptyResponses, responses.Origin(),
				"%s %s: responses must contain at least one response", strings.ToUpper(wc.Method), wc.PathTemplate)
		}
		for _, code := range responses.Keys() {
			if !httputil.ValidateStatusCode(code) {
				c.add(CodeInvalidStatusCode, field(responses, code),
					"invalid response status code %q: expected 100-599, a range such as 2XX, or default", code)
			}
		}
	}

	if v, ok := op.Get("operationId"); ok && !v.IsPlaceholder() {
		at := field(op, "operationId")
		id, isString := v.StringValue()
		switch {
		case !isString:
			c.add(CodeInvalidType, at, "operationId must be a string, got %s", v.TypeName())
		case c.operationIDs[id] != nil:
			first := c.operationIDs[id]
			c.add(CodeDuplicateOperationID, at,
				"operationId %q is already used by the operation at %s", id, first.Path().Parent().Fragment())
		default:
			c.operationIDs[id] = at
		}
	}

	c.requireKind(op, "parameters", true)
	c.requireKind(op, "servers", true)
	c.requireKind(op, "security", true)
	c.requireKind(op, "tags", true)
	c.requireKind(op, "callbacks", false)
	return walker.Continue
}

func (c *check) parameter(wc *walker.WalkContext) walker.Action {
	p := wc.Node

	owner := "parameter"
	if name, ok := c.requireString(p, "name", owner); ok {
		owner = fmt.Sprintf("parameter %q", name)
	}

	in, ok := c.requireString(p, "in", owner)
	switch {
	case !ok:
	case !slices.Contains(parameterLocations, in):
		c.add(CodeInvalidParameterLocation, field(p, "in"),
			"%s has invalid location %q: must be one of %s", owner, in, strings.Join(parameterLocations, ", "))
	case in == "path":
		c.requirePathRequired(p, owner)
	}

	if p.Has("content") {
		if p.Has("schema") {
			c.add(CodeInvalidValue, field(p, "content"), "%s must define either schema or content, not both", owner)
		}
		if content, ok := c.requireKind(p, "content", false); ok && content.Len() != 1 {
			c.add(CodeInvalidValue, content.Origin(), "%s content must contain exactly one media type, got %d", owner, content.Len())
		}
		return walker.Continue
	}

	schema, ok := p.Get("schema")
	switch {
	case !ok:
		c.missing(p.Origin(), "schema", owner+" must have a schema or content")
	case schema.IsPlaceholder():
	case !schema.IsMapping():
		c.add(CodeInvalidType, field(p, "schema"), "%s schema must be an object, got %s", owner, schema.TypeName())
	case !schema.Has("type") && !isComposed(schema) && !c.typed[schema.Origin()]:
		// the schema may be shared by several parameters
		c.typed[schema.Origin()] = true
		c.missing(schema.Origin(), "type", "parameter schema must declare a type")
	}
	return walker.Continue
}

func (c *check) requirePathRequired(p *resolver.Node, owner string) {
	req, ok := p.Get("required")
	if !ok {
		c.missing(p.Origin(), "required", owner+" is a path parameter and must declare required: true")
		return
	}
	if b, isBool := req.BoolValue(); !isBool || !b {
		c.add(CodeInvalidValue, field(p, "required"), "%s is a path parameter and must have required: true", owner)
	}
}

func (c *check) requestBody(wc *walker.WalkContext) walker.Action {
	rb := wc.Node
	if !rb.Has("content") {
		c.missing(rb.Origin(), "content", "request body must have content")
	} else {
		c.requireKind(rb, "content", false)
	}
	return walker.Continue
}

func (c *check) response(wc *walker.WalkContext) walker.Action {
	c.requireKind(wc.Node, "content", false)
	c.requireKind(wc.Node, "headers", false)
	c.requireKind(wc.Node, "links", false)
	return walker.Continue
}

func (c *check) mediaType(wc *walker.WalkContext) walker.Action {
	if !httputil.IsValidMediaType(wc.Name) {
		c.add(CodeInvalidMediaType, wc.Node.Origin(), "invalid media type %q", wc.Name)
	}
	return walker.Continue
}

func (c *check) server(wc *walker.WalkContext) walker.Action {
	s := wc.Node
	c.requireString(s, "url", "server")

	vars, ok := c.requireKind(s, "variables", false)
	if !ok {
		return walker.Continue
	}
	for _, name := range vars.Keys() {
		v, _ := vars.Get(name)
		if v.IsPlaceholder() {
			continue
		}
		if !v.IsMapping() {
			c.add(CodeInvalidType, field(vars, name), "server variable %q must be an object, got %s", name, v.TypeName())
			continue
		}
		c.requireString(v, "default", fmt.Sprintf("server variable %q", name))
	}
	return walker.Continue
}

var apiKeyLocations = []string{"query", "header", "cookie"}

func (c *check) securityScheme(wc *walker.WalkContext) walker.Action {
	ss := wc.Node
	owner := fmt.Sprintf("security scheme %q", wc.Name)

	typ, ok := c.requireString(ss, "type", owner)
	if !ok {
		return walker.Continue
	}

	switch typ {
	case "apiKey":
		c.requireString(ss, "name", owner)
		if in, ok := c.requireString(ss, "in", owner); ok && !slices.Contains(apiKeyLocations, in) {
			c.add(CodeInvalidValue, field(ss, "in"),
				"%s has invalid location %q: must be one of %s", owner, in, strings.Join(apiKeyLocations, ", "))
		}
	case "http":
		c.requireString(ss, "scheme", owner)
	case "oauth2":
		if !ss.Has("flows") {
			c.missing(ss.Origin(), "flows", owner+" must have flows")
		} else {
			c.requireKind(ss, "flows", false)
		}
	case "openIdConnect":
		c.requireString(ss, "openIdConnectUrl", owner)
	case "mutualTLS":
		if c.version < Version31 {
			c.add(CodeInvalidValue, field(ss, "type"), "%s: type mutualTLS requires OpenAPI 3.1", owner)
		}
	default:
		c.add(CodeInvalidValue, field(ss, "type"),
			"%s has invalid type %q: must be one of apiKey, http, oauth2, openIdConnect, mutualTLS", owner, typ)
	}
	return walker.Continue
}
