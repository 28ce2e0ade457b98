package validator

import (
	"context"
	"fmt"
	"regexp"

	"github.com/erraggy/oaslint/document"
	"github.com/erraggy/oaslint/internal/issues"
	"github.com/erraggy/oaslint/internal/logging"
	"github.com/erraggy/oaslint/internal/severity"
	"github.com/erraggy/oaslint/resolver"
	"github.com/erraggy/oaslint/walker"
)

// Issue codes emitted by the validator. All are Errors.
const (
	CodeMissingRequiredField     = "MISSING_REQUIRED_FIELD"
	CodeInvalidType              = "INVALID_TYPE"
	CodeUnsupportedVersion       = "UNSUPPORTED_VERSION"
	CodeInvalidPath              = "INVALID_PATH"
	CodeInvalidOperationMethod   = "INVALID_OPERATION_METHOD"
	CodeEmptyResponses           = "EMPTY_RESPONSES"
	CodeInvalidStatusCode        = "INVALID_STATUS_CODE"
	CodeInvalidParameterLocation = "INVALID_PARAMETER_LOCATION"
	CodeInvalidSchemaType        = "INVALID_SCHEMA_TYPE"
	CodeInvalidRefSibling        = "INVALID_REF_SIBLING"
	CodeDuplicateOperationID     = "DUPLICATE_OPERATION_ID"
	CodeInvalidMediaType         = "INVALID_MEDIA_TYPE"
	CodeInvalidValue             = "INVALID_VALUE"
	CodePathParameterMismatch    = "PATH_PARAMETER_MISMATCH"
	CodeMetaSchemaViolation      = "META_SCHEMA_VIOLATION"
)

// Version is the OpenAPI minor version that selects a rule variant.
type Version int

const (
	// VersionUnknown marks a missing or unsupported openapi field
	VersionUnknown Version = iota
	// Version30 covers 3.0.x
	Version30
	// Version31 covers 3.1.x
	Version31
	// Version32 covers 3.2.x
	Version32
)

var versionRegex = regexp.MustCompile(`^3\.([0-2])\.\d+(-[0-9A-Za-z.-]+)?$`)

// ParseVersion maps an openapi field value to a Version.
func ParseVersion(s string) Version {
	m := versionRegex.FindStringSubmatch(s)
	if m == nil {
		return VersionUnknown
	}
	switch m[1] {
	case "0":
		return Version30
	case "1":
		return Version31
	default:
		return Version32
	}
}

// String returns the version family, e.g. "3.1".
func (v Version) String() string {
	switch v {
	case Version30:
		return "3.0"
	case Version31:
		return "3.1"
	case Version32:
		return "3.2"
	default:
		return "unknown"
	}
}

// rules returns the version whose rules apply. Unknown versions are checked
// with the 3.0 rules.
func (v Version) rules() Version {
	if v == VersionUnknown {
		return Version30
	}
	return v
}

// Validator checks resolved documents against the OpenAPI 3.x structure.
// A Validator holds only configuration and is safe for concurrent use.
type Validator struct {
	metaSchemaCheck bool
	logger          logging.Logger
}

// New creates a Validator.
func New(opts ...Option) (*Validator, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("validator: invalid options: %w", err)
	}
	return &Validator{
		metaSchemaCheck: cfg.metaSchemaCheck,
		logger:          cfg.logger,
	}, nil
}

// Validate walks doc and returns every structural Error found. Checks never
// stop at the first failure. The error is non-nil only if ctx is cancelled.
func (v *Validator) Validate(ctx context.Context, doc *resolver.Document) ([]issues.Issue, error) {
	if doc == nil || doc.Root == nil {
		return nil, fmt.Errorf("validator: nil document")
	}

	c := &check{
		doc:          doc,
		declared:     ParseVersion(doc.Version),
		operationIDs: make(map[string]*document.Node),
		typed:        make(map[*document.Node]bool),
	}
	c.version = c.declared.rules()

	c.validateRoot(doc.Root)
	c.validateRefSiblings(doc.References)

	err := walker.Walk(ctx, doc,
		walker.WithHandler(walker.CategoryPathItem, c.pathItem),
		walker.WithHandler(walker.CategoryOperation, c.operation),
		walker.WithHandler(walker.CategoryParameter, c.parameter),
		walker.WithHandler(walker.CategoryRequestBody, c.requestBody),
		walker.WithHandler(walker.CategoryResponse, c.response),
		walker.WithHandler(walker.CategoryMediaType, c.mediaType),
		walker.WithHandler(walker.CategorySchema, c.schema),
		walker.WithHandler(walker.CategoryServer, c.server),
		walker.WithHandler(walker.CategorySecurityScheme, c.securityScheme),
	)
	if err != nil {
		return nil, fmt.Errorf("validator: %w", err)
	}

	if v.metaSchemaCheck {
		c.errs = append(c.errs, v.checkMetaSchema(ctx, doc, c.declared)...)
	}

	v.logger.Debug("validated document",
		"version", c.version.String(),
		"errors", len(c.errs))
	return c.errs, nil
}

// check holds the state of one Validate call.
type check struct {
	doc      *resolver.Document
	declared Version
	version  Version
	errs     []issues.Issue
	// first node declaring each operationId
	operationIDs map[string]*document.Node
	// parameter schemas already reported for a missing type
	typed map[*document.Node]bool
}

func (c *check) add(code string, n *document.Node, format string, args ...any) {
	c.errs = append(c.errs, issues.NewError(code, n, format, args...))
}

func (c *check) missing(parent *document.Node, name, message string) {
	c.errs = append(c.errs, issues.Missing(severity.SeverityError, CodeMissingRequiredField, parent, name, message))
}

// field returns the source node written under key in n, which is where
// issues about that value are located.
func field(n *resolver.Node, key string) *document.Node {
	v, _ := n.Origin().Get(key)
	return v
}

// requireString reports a missing or non-string field of n. It returns the
// value and whether it is a usable string.
func (c *check) requireString(n *resolver.Node, key, owner string) (string, bool) {
	v, ok := n.Get(key)
	if !ok {
		c.missing(n.Origin(), key, fmt.Sprintf("%s must have a %s", owner, key))
		return "", false
	}
	if v.IsPlaceholder() {
		return "", false
	}
	s, ok := v.StringValue()
	if !ok {
		c.add(CodeInvalidType, field(n, key), "%s.%s must be a string, got %s", owner, key, v.TypeName())
		return "", false
	}
	return s, true
}

// requireKind reports a value of n under key that is present but not a mapping
// (or sequence when seq is set). Placeholders are already reported by the
// resolver and are returned as not usable.
func (c *check) requireKind(n *resolver.Node, key string, seq bool) (*resolver.Node, bool) {
	v, ok := n.Get(key)
	if !ok || v.IsPlaceholder() {
		return nil, false
	}
	want, good := "object", v.IsMapping()
	if seq {
		want, good = "array", v.IsSequence()
	}
	if !good {
		c.add(CodeInvalidType, field(n, key), "%s must be an %s, got %s", key, want, v.TypeName())
		return nil, false
	}
	return v, true
}
