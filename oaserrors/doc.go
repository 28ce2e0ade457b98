// Package oaserrors provides structured error types for the oaslint library.
//
// Import path: github.com/erraggy/oaslint/oaserrors
//
// This package enables programmatic error handling via [errors.Is] and [errors.As],
// allowing callers to distinguish between different categories of errors and implement
// appropriate recovery strategies.
//
// # Error Types
//
//   - [ParseError]: YAML/JSON syntax failures; the only fatal error of a validation run
//   - [ReferenceError]: $ref resolution failures, circular and non-local references
//   - [ResourceLimitError]: logical bounds such as the reference depth limit
//   - [ConfigError]: invalid configuration or input options
//   - [RuleError]: an internal fault inside one lint rule
//
// Reference, resource and rule errors never abort a run: the engine records them
// as issues in the report. They are exposed here so embedders can match them.
//
// # Sentinel Errors
//
//   - [ErrParse]: Matches any [ParseError]
//   - [ErrReference]: Matches any [ReferenceError]
//   - [ErrCircularReference]: Matches [ReferenceError] with IsCircular=true
//   - [ErrUnsupportedReference]: Matches [ReferenceError] with IsUnsupported=true
//   - [ErrResourceLimit]: Matches any [ResourceLimitError]
//   - [ErrConfig]: Matches any [ConfigError]
//   - [ErrRule]: Matches any [RuleError]
//
// # Usage Examples
//
//	rep, err := e.ValidateFile(ctx, "api.yaml")
//	if errors.Is(err, oaserrors.ErrParse) {
//	    // Malformed YAML or JSON, no report was produced
//	}
//
// Extract error details with errors.As():
//
//	var parseErr *oaserrors.ParseError
//	if errors.As(err, &parseErr) {
//	    fmt.Printf("%s:%d:%d\n", parseErr.Path, parseErr.Line, parseErr.Column)
//	}
package oaserrors
