// Copyright 2024 Erraggy
// SPDX-License-Identifier: MIT

package pathutil

import "strings"

// RefPrefixSecuritySchemes prefixes references to security schemes.
const RefPrefixSecuritySchemes = "#/components/securitySchemes/"

// SecuritySchemeRef builds "#/components/securitySchemes/{name}".
func SecuritySchemeRef(name string) string {
	return RefPrefixSecuritySchemes + EscapePointerToken(name)
}

// IsLocalRef reports whether ref is a same-document JSON Pointer fragment.
func IsLocalRef(ref string) bool {
	return ref == "#" || strings.HasPrefix(ref, "#/")
}
