package errors

import (
	"strings"
	"unicode"
)

// ValidateBaseFilename validates a download base filename for safety.
// The name is used verbatim in Content-Disposition headers and output paths,
// so the rules are intentionally conservative:
//   - No empty names
//   - No control characters
//   - No path separators or traversal sequences
//   - Maximum length of 256 characters
//
// The format extension is appended by the exporter and must not be part of
// the base name validated here.
func ValidateBaseFilename(name string) error {
	if name == "" {
		return New(ErrCodeInvalidFilename, "filename cannot be empty")
	}

	if len(name) > 256 {
		return New(ErrCodeInvalidFilename, "filename too long (max 256 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidFilename, "filename contains invalid control characters")
		}
	}

	dangerousPatterns := []string{
		"..",   // Parent directory
		"/",    // Path separator
		"\\",   // Backslash (Windows path)
		"\x00", // Null byte
		"\"",   // Breaks quoted Content-Disposition values
	}

	for _, pattern := range dangerousPatterns {
		if strings.Contains(name, pattern) {
			return New(ErrCodeInvalidFilename, "filename contains invalid characters: %q", pattern)
		}
	}

	return nil
}
