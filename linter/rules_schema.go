package linter

import (
	"github.com/erraggy/oaslint/internal/issues"
)

// checkSchemaProperties inspects the properties declared inline by a schema.
// Properties that reference another schema are checked where that schema is
// written.
func checkSchemaProperties(t Target) ([]issues.Issue, error) {
	props, ok := t.Node.Get("properties")
	if !ok || !props.IsMapping() || props.IsPlaceholder() {
		return nil, nil
	}

	var out []issues.Issue
	for _, name := range props.Keys() {
		p, _ := props.Get(name)
		if !usable(p) {
			continue
		}
		if !p.Has("type") && !isComposed(p) {
			out = append(out, issues.NewWarning(CodeMissingPropertyType, p.Origin(),
				"property %q has no type", name))
		}
		if !hasText(p, "description") {
			out = append(out, issues.NewWarning(CodeMissingPropertyDescription, p.Origin(),
				"property %q has no description", name))
		}
	}
	return out, nil
}
