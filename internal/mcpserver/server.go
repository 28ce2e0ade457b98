// Package mcpserver implements an MCP (Model Context Protocol) server
// that exposes the oaslint engine as MCP tools over stdio.
package mcpserver

import (
	"context"
	"fmt"
	"regexp"
	"slices"
	"sort"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/oaslint"
	"github.com/erraggy/oaslint/engine"
)

const serverInstructions = `oaslint MCP server: validates OpenAPI 3.x documents and lints them against best-practice rules.

Every check returns errors (the document is invalid) and warnings (advisory lint findings) with JSON Pointer locations. Use mode=schema-only to focus on errors, group_by to get counts on large documents, and offset/limit to page through results.

Configuration: defaults come from OASLINT_MCP_* environment variables set in your MCP client config.
- OASLINT_MCP_MODE (default: full): full, schema-only or lint-only
- OASLINT_MCP_STRICT (default: false): count warnings as failures in passed
- OASLINT_MCP_NO_WARNINGS (default: false): suppress warnings by default
- OASLINT_MCP_LIMIT (default: 100): default page size
- OASLINT_MCP_CACHE_ENABLED (default: true): cache loaded documents per session

Rules and custom rules configured in .oaslint.yaml apply to every call.`

// toolset carries the engine configuration shared by all tool handlers.
type toolset struct {
	base []engine.Option
}

// engineOptions returns a copy of the shared options that callers may
// append to.
func (ts *toolset) engineOptions() []engine.Option {
	return slices.Clone(ts.base)
}

// Run starts the MCP server over stdio and blocks until the client disconnects
// or the context is cancelled. opts configure the engine behind every tool,
// typically rule settings loaded from the configuration file.
func Run(ctx context.Context, opts ...engine.Option) error {
	ts := &toolset{base: opts}
	// Fail fast on a bad configuration rather than on the first tool call.
	if _, err := engine.New(ts.engineOptions()...); err != nil {
		return fmt.Errorf("mcpserver: %w", err)
	}

	if cfg.CacheEnabled {
		docCache.startSweeper(ctx, cfg.CacheSweepInterval)
	}

	server := mcp.NewServer(
		&mcp.Implementation{Name: "oaslint", Version: oaslint.Version()},
		&mcp.ServerOptions{
			Instructions: serverInstructions,
		},
	)
	ts.register(server)
	return server.Run(ctx, &mcp.StdioTransport{})
}

func (ts *toolset) register(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "validate",
		Description: "Validate an OpenAPI 3.x document and lint it against best-practice rules. Returns errors and warnings with JSON Pointer locations, line/column positions and the rule that produced each warning. Use mode=schema-only or no_warnings to focus on errors first, group_by (code, rule or severity) to get counts, and offset/limit to paginate. Defaults are configurable via OASLINT_MCP_MODE, OASLINT_MCP_STRICT and OASLINT_MCP_NO_WARNINGS env vars.",
	}, ts.handleValidate)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_rules",
		Description: "List the enabled lint rules with the object category each applies to and a description. Filter by applies_to (document, pathItem, operation, parameter, requestBody, response, mediaType, header, schema, server, securityScheme).",
	}, ts.handleListRules)
}

// paginate applies offset/limit pagination to a slice, returning the
// requested page. A non-positive limit defaults to cfg.ResultLimit.
func paginate[T any](items []T, offset, limit int) []T {
	if limit <= 0 {
		limit = cfg.ResultLimit
	}
	if limit > cfg.MaxLimit {
		limit = cfg.MaxLimit
	}
	if offset < 0 || offset >= len(items) {
		return nil
	}
	end := offset + limit
	if end < offset || end > len(items) { // overflow or beyond slice
		end = len(items)
	}
	return items[offset:end]
}

// makeSlice returns nil when n is 0 (preserving omitempty JSON semantics),
// otherwise returns make([]T, 0, n) for pre-allocated appending.
func makeSlice[T any](n int) []T {
	if n == 0 {
		return nil
	}
	return make([]T, 0, n)
}

// sanitizeError strips absolute filesystem paths from error messages
// to prevent leaking internal directory structure to MCP clients.
var pathPattern = regexp.MustCompile(`(?:/(?:home|tmp|var|Users|etc|opt|usr|private|root|mnt|srv|run|snap|nix)[a-zA-Z0-9._/-]*)`)

func sanitizeError(err error) string {
	if err == nil {
		return ""
	}
	return pathPattern.ReplaceAllString(err.Error(), "<path>")
}

// errResult creates an MCP error result from an error.
func errResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: sanitizeError(err)}},
	}
}

// groupCount represents a single group in group_by results.
type groupCount struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// groupAndSort groups items by key, sorts by count descending (ties
// broken alphabetically by key), and returns the sorted groups.
func groupAndSort[T any](items []T, keyFn func(T) []string) []groupCount {
	counts := make(map[string]int)
	for _, item := range items {
		for _, key := range keyFn(item) {
			counts[key]++
		}
	}
	groups := make([]groupCount, 0, len(counts))
	for key, count := range counts {
		groups = append(groups, groupCount{Key: key, Count: count})
	}
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].Count != groups[j].Count {
			return groups[i].Count > groups[j].Count
		}
		return groups[i].Key < groups[j].Key
	})
	return groups
}

// validateGroupBy checks that group_by is empty or one of allowed.
func validateGroupBy(groupBy string, allowed []string) error {
	if groupBy == "" || slices.Contains(allowed, groupBy) {
		return nil
	}
	return fmt.Errorf("invalid group_by value %q; valid values: %s", groupBy, strings.Join(allowed, ", "))
}
