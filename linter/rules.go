package linter

import (
	"fmt"
	"strings"

	"github.com/erraggy/oaslint/internal/issues"
	"github.com/erraggy/oaslint/resolver"
	"github.com/erraggy/oaslint/walker"
)

// DefaultRules returns the built-in rules in registration order.
func DefaultRules() []Definition {
	return []Definition{
		{
			ID:          "info-completeness",
			AppliesTo:   walker.CategoryDocument,
			Description: "info declares a title, a version and a description",
			Check:       checkInfo,
		},
		{
			ID:          "operation-id",
			AppliesTo:   walker.CategoryOperation,
			Description: "every operation has an operationId",
			Check:       checkOperationID,
		},
		{
			ID:          "operation-summary",
			AppliesTo:   walker.CategoryOperation,
			Description: "every operation has a summary or a description",
			Check:       checkOperationSummary,
		},
		{
			ID:          "operation-responses",
			AppliesTo:   walker.CategoryOperation,
			Description: "every operation defines responses",
			Check:       checkOperationResponses,
		},
		{
			ID:          "success-response",
			AppliesTo:   walker.CategoryOperation,
			Description: "every operation defines a 2xx or default response",
			Check:       checkSuccessResponse,
		},
		{
			ID:          "response-description",
			AppliesTo:   walker.CategoryResponse,
			Description: "every response has a description",
			Check:       checkResponseDescription,
		},
		{
			ID:          "schema-property",
			AppliesTo:   walker.CategorySchema,
			Description: "every schema property declares a type and a description",
			Check:       checkSchemaProperties,
		},
		{
			ID:          "component-schema",
			AppliesTo:   walker.CategoryDocument,
			Description: "every component schema has a description and a type",
			Check:       checkComponentSchemas,
		},
		{
			ID:          "security-schemes",
			AppliesTo:   walker.CategoryDocument,
			Description: "security requirements name declared security schemes",
			Check:       checkSecuritySchemes,
		},
		{
			ID:          "servers",
			AppliesTo:   walker.CategoryDocument,
			Description: "the document declares at least one server",
			Check:       checkServers,
		},
		{
			ID:          "paths-defined",
			AppliesTo:   walker.CategoryDocument,
			Description: "the document defines at least one path",
			Check:       checkPathsDefined,
		},
		{
			ID:          "path-prefix",
			AppliesTo:   walker.CategoryDocument,
			Description: "path keys start with '/'",
			Check:       checkPathPrefix,
		},
	}
}

// requireText reports a field of n that is absent, at n, or an empty
// string, at the field. Values of other types are left to the validator.
func requireText(n *resolver.Node, key, code, message string) (issues.Issue, bool) {
	v, ok := n.Get(key)
	if !ok {
		return issues.NewWarning(code, n.Origin(), "%s", message), true
	}
	if s, isString := v.StringValue(); isString && strings.TrimSpace(s) == "" {
		at, _ := n.Origin().Get(key)
		return issues.NewWarning(code, at, "%s", message), true
	}
	return issues.Issue{}, false
}

// hasText reports whether n holds a non-blank string under key.
func hasText(n *resolver.Node, key string) bool {
	s, ok := n.StringField(key)
	return ok && strings.TrimSpace(s) != ""
}

// isComposed reports whether a schema takes its shape from subschemas.
func isComposed(s *resolver.Node) bool {
	return s.Has("allOf") || s.Has("anyOf") || s.Has("oneOf") || s.Has("not")
}

// usable reports whether n is real mapping content rather than a placeholder
// or an alias of another schema.
func usable(n *resolver.Node) bool {
	return n != nil && n.IsMapping() && !n.IsPlaceholder() && !n.FromRef()
}

// operationName renders "GET /users" for messages.
func operationName(t Target) string {
	return fmt.Sprintf("%s %s", strings.ToUpper(t.Method), t.PathTemplate)
}
