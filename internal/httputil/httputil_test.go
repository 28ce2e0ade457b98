package httputil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateStatusCode(t *testing.T) {
	valid := []string{
		"default", "x-rate-limited", "x-",
		"1XX", "2XX", "3XX", "4XX", "5XX",
		"100", "200", "204", "418", "599",
	}
	invalid := []string{
		"", "Default", "0XX", "6XX", "2xx", "20X", "X2X",
		"000", "099", "600", "99", "2000", "+20", "ok",
	}
	for _, code := range valid {
		assert.True(t, ValidateStatusCode(code), code)
	}
	for _, code := range invalid {
		assert.False(t, ValidateStatusCode(code), code)
	}
}

func TestIsSuccessStatusCode(t *testing.T) {
	tests := []struct {
		code string
		want bool
	}{
		{"200", true},
		{"204", true},
		{"2XX", true},
		{"299", true},
		{"301", false},
		{"default", false},
		{"2", false},
		{"x-200", false},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, IsSuccessStatusCode(tt.code))
		})
	}
}

func TestIsValidMediaType(t *testing.T) {
	tests := []struct {
		mediaType string
		want      bool
	}{
		{"application/json", true},
		{"application/problem+json", true},
		{"text/plain; charset=utf-8", true},
		{"*/*", true},
		{"image/*", true},
		{"*/json", false},
		{"/*", false},
		{"a/b/*", false},
		{"application/", false},
		{"", false},
		{"json", false},
		{"application", false},
		{"application/json/x", false},
		{"text/plain; charset", false},
		{"not a type", false},
	}
	for _, tt := range tests {
		t.Run(tt.mediaType, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidMediaType(tt.mediaType))
		})
	}
}

func TestOperationMethods(t *testing.T) {
	assert.Equal(t, []string{"get", "put", "post", "delete", "options", "head", "patch", "trace"}, OperationMethods(false))
	assert.Equal(t, MethodQuery, OperationMethods(true)[8])

	m := OperationMethods(true)
	m[0] = "changed"
	assert.Equal(t, MethodGet, OperationMethods(true)[0])
}

func TestPathItemKeys(t *testing.T) {
	for _, key := range []string{"get", "query", "trace"} {
		assert.True(t, IsOperationMethod(key), key)
		assert.False(t, IsPathItemField(key), key)
	}
	for _, key := range []string{"$ref", "parameters", "servers", "x-internal"} {
		assert.True(t, IsPathItemField(key), key)
		assert.False(t, IsOperationMethod(key), key)
	}
	assert.False(t, IsOperationMethod("GET"))
	assert.False(t, IsPathItemField("operationId"))
}
