// Copyright 2024 Erraggy
// SPDX-License-Identifier: MIT

package pathutil

import (
	"fmt"
	"strings"
)

var (
	pointerEscaper   = strings.NewReplacer("~", "~0", "/", "~1")
	pointerUnescaper = strings.NewReplacer("~1", "/", "~0", "~")
)

// EscapePointerToken escapes a single reference token per RFC 6901.
func EscapePointerToken(token string) string {
	if !strings.ContainsAny(token, "~/") {
		return token
	}
	return pointerEscaper.Replace(token)
}

// UnescapePointerToken reverses EscapePointerToken.
func UnescapePointerToken(token string) string {
	if !strings.Contains(token, "~") {
		return token
	}
	return pointerUnescaper.Replace(token)
}

// SplitLocalRef splits a local reference such as "#/components/schemas/Pet"
// into unescaped tokens. "#" and "#/" both address the root and yield no tokens.
// Percent-encoding in the fragment is not decoded.
func SplitLocalRef(ref string) ([]string, error) {
	if !IsLocalRef(ref) {
		return nil, fmt.Errorf("pathutil: not a local reference: %q", ref)
	}
	ptr := strings.TrimPrefix(ref, "#")
	if ptr == "" || ptr == "/" {
		return nil, nil
	}
	raw := strings.Split(ptr[1:], "/")
	tokens := make([]string, len(raw))
	for i, tok := range raw {
		if strings.Contains(tok, "~") && !validEscapes(tok) {
			return nil, fmt.Errorf("pathutil: invalid escape in reference token %q", tok)
		}
		tokens[i] = UnescapePointerToken(tok)
	}
	return tokens, nil
}

// validEscapes reports whether every '~' in tok starts "~0" or "~1".
func validEscapes(tok string) bool {
	for i := 0; i < len(tok); i++ {
		if tok[i] != '~' {
			continue
		}
		if i+1 >= len(tok) || (tok[i+1] != '0' && tok[i+1] != '1') {
			return false
		}
		i++
	}
	return true
}
