// Package export orchestrates scene exports.
//
// The Controller is the package's entry point: it serializes a scene into
// one of the supported interchange formats (GLB, glTF JSON, STL, OBJ),
// packages the bytes with the format's content type and filename, and hands
// the payload to a download sink. Around that flow it maintains an
// observable state (busy flag, stage/percentage progress, error text) that
// UIs can subscribe to.
//
// All four formats run through the same parametrized flow; the per-format
// differences are captured by the format descriptor table and by the
// Serializer bound to each format.
package export
