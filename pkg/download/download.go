package download

import (
	"context"
)

// Payload is the transient artifact produced by a serializer: raw bytes
// tagged with a MIME type and the filename it should be saved under. A
// payload is handed to a [Sink] exactly once and never retained afterwards.
type Payload struct {
	Data        []byte // Serialized artifact bytes
	ContentType string // MIME type (e.g., "model/gltf-binary")
	Filename    string // Full filename including extension (e.g., "chair.glb")
}

// Size returns the payload size in bytes.
func (p Payload) Size() int { return len(p.Data) }

// Sink delivers a payload to its destination: a file on disk, an HTTP
// response, or a test capture. Implementations must not retain p.Data after
// Deliver returns.
type Sink interface {
	Deliver(ctx context.Context, p Payload) error
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(ctx context.Context, p Payload) error

// Deliver calls f(ctx, p).
func (f SinkFunc) Deliver(ctx context.Context, p Payload) error { return f(ctx, p) }
