package validator

import (
	"context"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/erraggy/oaslint/internal/issues"
	"github.com/erraggy/oaslint/resolver"
)

// checkMetaSchema loads the source bytes with kin-openapi and reports its
// verdict as a single Error at the document root. Only 3.0 documents are
// checked; kin-openapi models that version.
func (v *Validator) checkMetaSchema(ctx context.Context, doc *resolver.Document, declared Version) []issues.Issue {
	if declared != Version30 || doc.Source == nil {
		v.logger.Debug("skipping meta-schema check", "version", doc.Version)
		return nil
	}

	loader := openapi3.NewLoader()
	loader.IsExternalRefsAllowed = false
	loader.Context = ctx

	spec, err := loader.LoadFromData(doc.Source.Source)
	if err != nil {
		return []issues.Issue{issues.NewError(CodeMetaSchemaViolation, doc.Source.Root,
			"document does not match the OpenAPI 3.0 model: %v", err)}
	}
	if err := spec.Validate(ctx); err != nil {
		return []issues.Issue{issues.NewError(CodeMetaSchemaViolation, doc.Source.Root,
			"document does not match the OpenAPI 3.0 meta-schema: %v", err)}
	}
	return nil
}
