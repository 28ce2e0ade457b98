// Copyright 2024 Erraggy
// SPDX-License-Identifier: MIT

// Package pathutil provides JSON Pointer helpers for local $ref values.
//
// Reference tokens are escaped per RFC 6901 ("~" becomes "~0", "/" becomes "~1"):
//
//	pathutil.EscapePointerToken("/users/{id}")  // "~1users~1{id}"
//	tokens, err := pathutil.SplitLocalRef("#/paths/~1users/get")
//	// tokens == []string{"/users", "get"}
//
// Only same-document references are understood; [IsLocalRef] tells them apart
// from relative file or URL references.
//
// # Reference Builders
//
//	ref := pathutil.SecuritySchemeRef("api/key")  // "#/components/securitySchemes/api~1key"
package pathutil
