package linter

import (
	"strings"

	"github.com/erraggy/oaslint/document"
	"github.com/erraggy/oaslint/internal/issues"
	"github.com/erraggy/oaslint/internal/pathutil"
	"github.com/erraggy/oaslint/resolver"
	"github.com/erraggy/oaslint/walker"
)

func checkInfo(t Target) ([]issues.Issue, error) {
	root := t.Node
	info, ok := root.Get("info")
	if !ok {
		return []issues.Issue{issues.NewWarning(CodeMissingInfo, root.Origin(), "missing info section")}, nil
	}
	if !info.IsMapping() || info.IsPlaceholder() {
		return nil, nil
	}

	var out []issues.Issue
	if iss, found := requireText(info, "title", CodeMissingInfoTitle, "missing info.title"); found {
		out = append(out, iss)
	}
	if iss, found := requireText(info, "version", CodeMissingInfoVersion, "missing info.version"); found {
		out = append(out, iss)
	}
	if iss, found := requireText(info, "description", CodeMissingInfoDescription, "missing info.description (recommended)"); found {
		out = append(out, iss)
	}
	return out, nil
}

func checkServers(t Target) ([]issues.Issue, error) {
	root := t.Node
	servers, ok := root.Get("servers")
	switch {
	case !ok:
		return []issues.Issue{issues.NewWarning(CodeMissingServers, root.Origin(),
			"no servers defined (recommended for clarity)")}, nil
	case servers.IsSequence() && servers.Len() == 0:
		return []issues.Issue{issues.NewWarning(CodeEmptyServers, servers.Origin(),
			"servers is empty; declare at least one server")}, nil
	}
	return nil, nil
}

func checkPathsDefined(t Target) ([]issues.Issue, error) {
	root := t.Node
	if hooks, ok := root.Get("webhooks"); ok && hooks.IsMapping() && hooks.Len() > 0 {
		return nil, nil
	}
	paths, ok := root.Get("paths")
	switch {
	case !ok:
		return []issues.Issue{issues.NewWarning(CodeEmptyPaths, root.Origin(), "no paths defined")}, nil
	case paths.IsMapping() && !paths.IsPlaceholder() && paths.Len() == 0:
		return []issues.Issue{issues.NewWarning(CodeEmptyPaths, paths.Origin(), "no paths defined")}, nil
	}
	return nil, nil
}

func checkPathPrefix(t Target) ([]issues.Issue, error) {
	paths, ok := t.Node.Get("paths")
	if !ok || !paths.IsMapping() {
		return nil, nil
	}
	var out []issues.Issue
	for _, key := range paths.Keys() {
		if strings.HasPrefix(key, "/") || strings.HasPrefix(key, "x-") {
			continue
		}
		at, _ := paths.Origin().Get(key)
		out = append(out, issues.NewWarning(CodePathNotSlashPrefixed, at, "path %q should start with '/'", key))
	}
	return out, nil
}

func checkComponentSchemas(t Target) ([]issues.Issue, error) {
	comps, ok := t.Node.Get("components")
	if !ok {
		return nil, nil
	}
	schemas, ok := comps.Get("schemas")
	if !ok || !schemas.IsMapping() {
		return nil, nil
	}

	var out []issues.Issue
	for _, name := range schemas.Keys() {
		s, _ := schemas.Get(name)
		if !usable(s) {
			continue
		}
		if !hasText(s, "description") {
			out = append(out, issues.NewWarning(CodeMissingSchemaDescription, s.Origin(),
				"schema %q has no description (recommended)", name))
		}
		if !s.Has("type") && !isComposed(s) {
			out = append(out, issues.NewWarning(CodeMissingSchemaType, s.Origin(),
				"schema %q has no type definition", name))
		}
	}
	return out, nil
}

// checkSecuritySchemes compares the security requirements of the document
// and its operations with components.securitySchemes.
func checkSecuritySchemes(t Target) ([]issues.Issue, error) {
	root := t.Node

	var lists []*resolver.Node
	if s, ok := root.Get("security"); ok && s.IsSequence() {
		lists = append(lists, s)
	}
	err := walker.Walk(t.Context(), t.Document,
		walker.WithHandler(walker.CategoryOperation, func(wc *walker.WalkContext) walker.Action {
			if s, ok := wc.Node.Get("security"); ok && s.IsSequence() {
				lists = append(lists, s)
			}
			return walker.Continue
		}))
	if err != nil {
		return nil, err
	}

	declared := make(map[string]bool)
	if comps, ok := root.Get("components"); ok {
		if schemes, ok := comps.Get("securitySchemes"); ok && schemes.IsMapping() {
			for _, name := range schemes.Keys() {
				declared[name] = true
			}
		}
	}

	type use struct {
		name string
		at   *document.Node
	}
	var uses []use
	var first *resolver.Node
	for _, list := range lists {
		for _, req := range list.Items() {
			if !req.IsMapping() || req.IsPlaceholder() {
				continue
			}
			for _, name := range req.Keys() {
				if first == nil {
					first = list
				}
				at, _ := req.Origin().Get(name)
				uses = append(uses, use{name: name, at: at})
			}
		}
	}

	if len(uses) == 0 {
		return nil, nil
	}
	if len(declared) == 0 {
		return []issues.Issue{issues.NewWarning(CodeMissingSecuritySchemes, first.Origin(),
			"security requirements are defined but components.securitySchemes declares no schemes")}, nil
	}

	var out []issues.Issue
	for _, u := range uses {
		if !declared[u.name] {
			out = append(out, issues.NewWarning(CodeUndefinedSecurityScheme, u.at,
				"security requirement references undefined security scheme %q: %s does not exist",
				u.name, pathutil.SecuritySchemeRef(u.name)))
		}
	}
	return out, nil
}
