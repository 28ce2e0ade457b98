package document

import (
	"bytes"
	"path/filepath"
	"strings"
)

// Format identifies the serialization of a document.
type Format string

const (
	// FormatYAML indicates YAML input
	FormatYAML Format = "yaml"
	// FormatJSON indicates JSON input
	FormatJSON Format = "json"
	// FormatUnknown indicates the format must be inferred from content
	FormatUnknown Format = "unknown"
)

// ParseFormat maps a user-supplied name to a Format. Unrecognized names map to FormatUnknown.
func ParseFormat(s string) Format {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON
	case "yaml", "yml":
		return FormatYAML
	default:
		return FormatUnknown
	}
}

// DetectFormatFromPath infers the format from a file extension.
func DetectFormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatUnknown
	}
}

// DetectFormatFromContent infers the format from the first significant byte.
// Content opening with '{' or '[' is JSON; anything else is treated as YAML.
func DetectFormatFromContent(data []byte) Format {
	trimmed := bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	trimmed = bytes.TrimLeft(trimmed, " \t\r\n")
	if len(trimmed) == 0 {
		return FormatUnknown
	}
	switch trimmed[0] {
	case '{', '[':
		return FormatJSON
	default:
		return FormatYAML
	}
}
