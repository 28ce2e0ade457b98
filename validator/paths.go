package validator

import (
	"fmt"
	"strings"

	"github.com/erraggy/oaslint/internal/pathutil"
)

// validatePathTemplate checks the shape of a path key that begins with '/'.
func validatePathTemplate(template string) error {
	if strings.Contains(template, "{}") {
		return fmt.Errorf("empty parameter name in path template")
	}
	if strings.Contains(template, "//") {
		return fmt.Errorf("path contains consecutive slashes")
	}
	if strings.ContainsAny(template, "#?") {
		return fmt.Errorf("path must not contain a query string or fragment")
	}

	depth := 0
	for i, ch := range template {
		switch ch {
		case '{':
			depth++
			if depth > 1 {
				return fmt.Errorf("nested braces are not allowed at position %d", i)
			}
		case '}':
			depth--
			if depth < 0 {
				return fmt.Errorf("unexpected closing brace at position %d", i)
			}
		}
	}
	if depth != 0 {
		return fmt.Errorf("unclosed brace in path template")
	}

	seen := make(map[string]bool)
	for _, name := range pathutil.TemplateParams(template) {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("empty parameter name in path template")
		}
		if seen[name] {
			return fmt.Errorf("duplicate parameter name %q in path template", name)
		}
		seen[name] = true
	}
	return nil
}
