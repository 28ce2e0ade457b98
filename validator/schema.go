package validator

import (
	"strings"

	"github.com/erraggy/oaslint/resolver"
	"github.com/erraggy/oaslint/walker"
)

// schemaTypes are the JSON Schema types every OpenAPI 3.x version accepts.
var schemaTypes = []string{"string", "number", "integer", "boolean", "array", "object"}

func isSchemaType(name string) bool {
	for _, t := range schemaTypes {
		if t == name {
			return true
		}
	}
	return false
}

// isComposed reports whether a schema takes its shape from subschemas
// instead of declaring a type itself.
func isComposed(s *resolver.Node) bool {
	return s.Has("allOf") || s.Has("anyOf") || s.Has("oneOf") || s.Has("not")
}

func (c *check) schema(wc *walker.WalkContext) walker.Action {
	s := wc.Node

	if t, ok := s.Get("type"); ok && !t.IsPlaceholder() {
		c.schemaType(s, t)
	}

	if c.version == Version30 && !s.Has("items") {
		if t, _ := s.StringField("type"); t == "array" {
			c.missing(s.Origin(), "items", "array schema must define items in OpenAPI 3.0")
		}
	}

	if v, ok := s.Get("nullable"); ok && !v.IsPlaceholder() {
		if _, isBool := v.BoolValue(); !isBool {
			c.add(CodeInvalidType, field(s, "nullable"), "nullable must be a boolean, got %s", v.TypeName())
		}
	}

	if req, ok := c.requireKind(s, "required", true); ok {
		for _, item := range req.Items() {
			if _, isString := item.StringValue(); !isString {
				c.add(CodeInvalidType, item.Origin(), "required entries must be property names, got %s", item.TypeName())
			}
		}
	}

	c.requireKind(s, "properties", false)
	for _, kw := range []string{"allOf", "anyOf", "oneOf"} {
		if list, ok := c.requireKind(s, kw, true); ok && list.Len() == 0 {
			c.add(CodeInvalidValue, list.Origin(), "%s must contain at least one schema", kw)
		}
	}
	return walker.Continue
}

// schemaType checks the type keyword of s against the rule variant in force.
// 3.0 allows a single non-null type; 3.1 and later also accept "null" and
// arrays of distinct types.
func (c *check) schemaType(s, t *resolver.Node) {
	at := field(s, "type")
	modern := c.version >= Version31

	if name, ok := t.StringValue(); ok {
		switch {
		case isSchemaType(name):
		case name == "null" && modern:
		case name == "null":
			c.add(CodeInvalidSchemaType, at, `type "null" is not allowed in OpenAPI 3.0, use nullable: true`)
		default:
			c.add(CodeInvalidSchemaType, at, "invalid schema type %q: must be one of %s", name, c.typeList())
		}
		return
	}

	if !t.IsSequence() {
		c.add(CodeInvalidSchemaType, at, "type must be a string or an array of strings, got %s", t.TypeName())
		return
	}
	if !modern {
		c.add(CodeInvalidSchemaType, at, "type arrays are not allowed in OpenAPI 3.0, use a single type with nullable: true")
		return
	}
	if t.Len() == 0 {
		c.add(CodeInvalidSchemaType, at, "type array must not be empty")
		return
	}

	seen := make(map[string]bool, t.Len())
	for _, item := range t.Items() {
		name, ok := item.StringValue()
		switch {
		case !ok:
			c.add(CodeInvalidSchemaType, item.Origin(), "type array entries must be strings, got %s", item.TypeName())
		case !isSchemaType(name) && name != "null":
			c.add(CodeInvalidSchemaType, item.Origin(), "invalid schema type %q: must be one of %s", name, c.typeList())
		case seen[name]:
			c.add(CodeInvalidSchemaType, item.Origin(), "duplicate type %q in type array", name)
		}
		seen[name] = true
	}
}

func (c *check) typeList() string {
	if c.version >= Version31 {
		return strings.Join(schemaTypes, ", ") + ", null"
	}
	return strings.Join(schemaTypes, ", ")
}
