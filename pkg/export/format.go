package export

import (
	"strings"

	"github.com/sceneforge/sceneport/pkg/errors"
)

// Format identifies one of the supported interchange formats.
type Format string

// Supported export formats.
const (
	FormatGLB  Format = "glb"  // Binary glTF container
	FormatGLTF Format = "gltf" // JSON glTF text
	FormatSTL  Format = "stl"  // Binary STL
	FormatOBJ  Format = "obj"  // Wavefront OBJ text
)

// formatInfo describes the fixed per-format payload properties.
type formatInfo struct {
	extension     string // Filename extension including the dot
	contentType   string // Payload MIME type
	binary        bool   // Binary vs UTF-8 text payload
	processingPct int    // Progress percentage for the processing stage
}

var formats = map[Format]formatInfo{
	FormatGLB:  {extension: ".glb", contentType: "model/gltf-binary", binary: true, processingPct: 70},
	FormatGLTF: {extension: ".gltf", contentType: "application/json", binary: false, processingPct: 70},
	FormatSTL:  {extension: ".stl", contentType: "application/octet-stream", binary: true, processingPct: 60},
	FormatOBJ:  {extension: ".obj", contentType: "text/plain", binary: false, processingPct: 60},
}

// AllFormats returns the supported formats in stable order.
func AllFormats() []Format {
	return []Format{FormatGLB, FormatGLTF, FormatSTL, FormatOBJ}
}

// Extension returns the filename extension for the format, including the dot.
func (f Format) Extension() string { return formats[f].extension }

// ContentType returns the payload MIME type for the format.
func (f Format) ContentType() string { return formats[f].contentType }

// Binary reports whether the format produces a binary payload.
func (f Format) Binary() bool { return formats[f].binary }

// Valid reports whether the format is supported.
func (f Format) Valid() bool {
	_, ok := formats[f]
	return ok
}

// ParseFormat converts a string (case-insensitive, optional leading dot)
// into a Format. It returns an INVALID_FORMAT error for unknown formats.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimPrefix(s, ".")))
	if !f.Valid() {
		return "", errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: glb, gltf, stl, obj)", s)
	}
	return f, nil
}

// ValidateFormat checks that a format string is supported.
func ValidateFormat(s string) error {
	_, err := ParseFormat(s)
	return err
}
