// Package validator checks resolved OpenAPI 3.x documents for structural
// conformance and reports every violation as an Error issue.
//
// The openapi field selects the rule variant: 3.0.x documents use
// nullable: true and single types, while 3.1.x and 3.2.x accept JSON Schema
// type arrays including "null". Documents declaring any other version are
// reported with UNSUPPORTED_VERSION and checked with the 3.0 rules.
//
// Checks are independent. Validation walks the whole document and
// accumulates every Error in one pass:
//
//	v, err := validator.New(validator.WithMetaSchemaCheck(true))
//	if err != nil {
//		return err
//	}
//	errs, err := v.Validate(ctx, resolved)
//
// Issues are located where the offending value is written in the source
// document, including when it was reached through a $ref.
package validator
