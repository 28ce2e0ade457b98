// Package httputil knows the HTTP vocabulary of OpenAPI documents: which path
// item keys are operations, which response keys are status codes and which
// content keys are media types.
package httputil

import (
	"mime"
	"slices"
	"strconv"
	"strings"
)

// Operation keys of a path item, lower case as written in documents.
const (
	MethodGet     = "get"
	MethodPut     = "put"
	MethodPost    = "post"
	MethodDelete  = "delete"
	MethodOptions = "options"
	MethodHead    = "head"
	MethodPatch   = "patch"
	MethodTrace   = "trace"
	MethodQuery   = "query" // 3.2 and later
)

// methods is ordered as path items list their operations; query stays last.
var methods = []string{
	MethodGet, MethodPut, MethodPost, MethodDelete,
	MethodOptions, MethodHead, MethodPatch, MethodTrace, MethodQuery,
}

var pathItemFields = []string{
	"$ref", "summary", "description", "servers", "parameters",
	"additionalOperations",
}

// OperationMethods returns the operation keys of a path item. The query
// method is included only when allowQuery is set.
func OperationMethods(allowQuery bool) []string {
	if allowQuery {
		return slices.Clone(methods)
	}
	return slices.Clone(methods[:len(methods)-1])
}

// IsOperationMethod reports whether key names an operation in any 3.x version.
func IsOperationMethod(key string) bool {
	return slices.Contains(methods, key)
}

// IsPathItemField reports whether key is a non-operation key of a path item.
// Extensions count as fields.
func IsPathItemField(key string) bool {
	return strings.HasPrefix(key, "x-") || slices.Contains(pathItemFields, key)
}

// ValidateStatusCode reports whether code may key a Responses object:
// "default", an extension, a range such as "4XX", or a code in 100..599.
func ValidateStatusCode(code string) bool {
	switch {
	case code == "default", strings.HasPrefix(code, "x-"):
		return true
	case len(code) != 3:
		return false
	case code[1:] == "XX":
		return code[0] >= '1' && code[0] <= '5'
	}
	for i := range len(code) {
		if code[i] < '0' || code[i] > '9' {
			return false
		}
	}
	n, _ := strconv.Atoi(code)
	return n >= 100 && n <= 599
}

// IsSuccessStatusCode reports whether a response key denotes a 2xx response,
// either numerically ("201") or as the "2XX" range.
func IsSuccessStatusCode(code string) bool {
	return len(code) == 3 && code[0] == '2' && ValidateStatusCode(code)
}

// IsValidMediaType reports whether mediaType is a type/subtype pair that
// parses as a MIME type. The wildcards "*/*" and "type/*" are accepted;
// "*/subtype" and a bare token such as "json" are not.
func IsValidMediaType(mediaType string) bool {
	if mediaType == "*/*" {
		return true
	}
	if strings.HasPrefix(mediaType, "*/") {
		return false
	}
	if typ, ok := strings.CutSuffix(mediaType, "/*"); ok {
		return typ != "" && typ != "*" && !strings.Contains(typ, "/")
	}
	base, _, _ := strings.Cut(mediaType, ";")
	typ, sub, ok := strings.Cut(strings.TrimSpace(base), "/")
	if !ok || typ == "" || sub == "" || strings.Contains(sub, "/") {
		return false
	}
	_, _, err := mime.ParseMediaType(mediaType)
	return err == nil
}
