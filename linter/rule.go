package linter

import (
	"context"

	"github.com/erraggy/oaslint/internal/issues"
	"github.com/erraggy/oaslint/resolver"
	"github.com/erraggy/oaslint/walker"
)

// Warning codes emitted by the default rules.
const (
	CodeRuleFailure                = "RULE_FAILURE"
	CodeMissingInfo                = "MISSING_INFO"
	CodeMissingInfoTitle           = "MISSING_INFO_TITLE"
	CodeMissingInfoVersion         = "MISSING_INFO_VERSION"
	CodeMissingInfoDescription     = "MISSING_INFO_DESCRIPTION"
	CodeMissingOperationID         = "MISSING_OPERATION_ID"
	CodeMissingOperationSummary    = "MISSING_OPERATION_SUMMARY"
	CodeMissingResponses           = "MISSING_RESPONSES"
	CodeMissingSuccessResponse     = "MISSING_SUCCESS_RESPONSE"
	CodeMissingResponseDescription = "MISSING_RESPONSE_DESCRIPTION"
	CodeMissingPropertyType        = "MISSING_PROPERTY_TYPE"
	CodeMissingPropertyDescription = "MISSING_PROPERTY_DESCRIPTION"
	CodeMissingSchemaDescription   = "MISSING_SCHEMA_DESCRIPTION"
	CodeMissingSchemaType          = "MISSING_SCHEMA_TYPE"
	CodeMissingSecuritySchemes     = "MISSING_SECURITY_SCHEMES"
	CodeUndefinedSecurityScheme    = "UNDEFINED_SECURITY_SCHEME"
	CodeMissingServers             = "MISSING_SERVERS"
	CodeEmptyServers               = "EMPTY_SERVERS"
	CodeEmptyPaths                 = "EMPTY_PATHS"
	CodePathNotSlashPrefixed       = "PATH_NOT_SLASH_PREFIXED"
)

// CheckFunc inspects one target and returns the issues it finds. Severity and
// rule attribution are set by the Linter. A returned error, like a panic,
// turns the whole rule into a single RULE_FAILURE warning.
type CheckFunc func(t Target) ([]issues.Issue, error)

// Definition describes a lint rule.
type Definition struct {
	// ID uniquely identifies the rule within a Registry, e.g. "operation-id"
	ID string
	// AppliesTo is the category of object the rule is called for
	AppliesTo walker.Category
	// Description is a one-line summary shown by rule listings
	Description string
	// Check is called once per object of the AppliesTo category
	Check CheckFunc
}

// Target is one object a rule is applied to, with the route the walker took
// to reach it.
type Target struct {
	Category walker.Category
	// Node is the resolved object; Node.Path() is where it is written
	Node *resolver.Node
	// Document is the whole resolved document
	Document *resolver.Document

	PathTemplate string
	Method       string
	StatusCode   string
	Name         string
	IsComponent  bool
	IsWebhook    bool

	ctx context.Context
}

// Context returns the context of the lint run.
func (t Target) Context() context.Context {
	if t.ctx == nil {
		return context.Background()
	}
	return t.ctx
}

func targetOf(wc *walker.WalkContext) Target {
	return Target{
		Category:     wc.Category,
		Node:         wc.Node,
		Document:     wc.Document,
		PathTemplate: wc.PathTemplate,
		Method:       wc.Method,
		StatusCode:   wc.StatusCode,
		Name:         wc.Name,
		IsComponent:  wc.IsComponent,
		IsWebhook:    wc.IsWebhook,
		ctx:          wc.Context(),
	}
}
