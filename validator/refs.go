package validator

import (
	"github.com/erraggy/oaslint/document"
	"github.com/erraggy/oaslint/resolver"
)

// validateRefSiblings checks the keys written next to each $ref. OpenAPI 3.0
// allows none. From 3.1 a Reference Object may carry summary and description,
// and a $ref inside a schema is a JSON Schema keyword that combines with any
// sibling. A Path Item Object declares $ref as an ordinary field, so path
// items are not checked.
func (c *check) validateRefSiblings(refs []resolver.Reference) {
	for _, r := range refs {
		if isPathItemSite(r.Site.Path()) {
			continue
		}
		schemaContext := c.version >= Version31 && inSchemaContext(r.Site.Path())
		for _, key := range r.Site.Keys() {
			if key == "$ref" {
				continue
			}
			at, _ := r.Site.Get(key)
			switch {
			case c.version == Version30:
				c.add(CodeInvalidRefSibling, at, "$ref must not have sibling %q in OpenAPI 3.0", key)
			case schemaContext:
			case key == "summary" || key == "description":
			default:
				c.add(CodeInvalidRefSibling, at,
					"$ref outside a schema may only have summary and description siblings, found %q", key)
			}
		}
	}
}

// inSchemaContext reports whether p lies within a schema: below a "schema"
// field or under components/schemas.
func inSchemaContext(p document.Path) bool {
	for i, seg := range p {
		if seg.IsIndex() {
			continue
		}
		switch seg.Key() {
		case "schema":
			return true
		case "schemas":
			if i == 1 && p[0].Key() == "components" {
				return true
			}
		}
	}
	return false
}

// isPathItemSite reports whether p locates a Path Item Object.
func isPathItemSite(p document.Path) bool {
	key := func(i int) string {
		if i < 0 || i >= len(p) || p[i].IsIndex() {
			return ""
		}
		return p[i].Key()
	}
	n := len(p)
	switch {
	case n == 2 && (key(0) == "paths" || key(0) == "webhooks"):
		return true
	case n == 3 && key(0) == "components" && key(1) == "pathItems":
		return true
	case n >= 3 && key(n-3) == "callbacks":
		return true
	}
	return false
}
