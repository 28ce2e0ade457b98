package linter

import (
	"github.com/erraggy/oaslint/internal/httputil"
	"github.com/erraggy/oaslint/internal/issues"
)

func checkOperationID(t Target) ([]issues.Issue, error) {
	if hasText(t.Node, "operationId") {
		return nil, nil
	}
	return []issues.Issue{issues.NewWarning(CodeMissingOperationID, t.Node.Origin(),
		"%s is missing an operationId", operationName(t))}, nil
}

func checkOperationSummary(t Target) ([]issues.Issue, error) {
	if hasText(t.Node, "summary") || hasText(t.Node, "description") {
		return nil, nil
	}
	return []issues.Issue{issues.NewWarning(CodeMissingOperationSummary, t.Node.Origin(),
		"%s is missing a summary or description", operationName(t))}, nil
}

func checkOperationResponses(t Target) ([]issues.Issue, error) {
	responses, ok := t.Node.Get("responses")
	if ok && (responses.IsPlaceholder() || !responses.IsMapping() || responses.Len() > 0) {
		return nil, nil
	}
	return []issues.Issue{issues.NewWarning(CodeMissingResponses, t.Node.Origin(),
		"%s has no responses defined", operationName(t))}, nil
}

func checkSuccessResponse(t Target) ([]issues.Issue, error) {
	responses, ok := t.Node.Get("responses")
	if !ok || responses.IsPlaceholder() || !responses.IsMapping() || responses.Len() == 0 {
		return nil, nil
	}
	for _, code := range responses.Keys() {
		if code == "default" || httputil.IsSuccessStatusCode(code) {
			return nil, nil
		}
	}
	return []issues.Issue{issues.NewWarning(CodeMissingSuccessResponse, responses.Origin(),
		"%s has no success (2xx) or default response", operationName(t))}, nil
}

func checkResponseDescription(t Target) ([]issues.Issue, error) {
	if hasText(t.Node, "description") {
		return nil, nil
	}
	label := t.StatusCode
	if label == "" {
		label = t.Name
	}
	return []issues.Issue{issues.NewWarning(CodeMissingResponseDescription, t.Node.Origin(),
		"response %q is missing a description", label)}, nil
}
