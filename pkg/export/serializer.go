package export

import (
	"context"

	"github.com/sceneforge/sceneport/pkg/scene"
	"github.com/sceneforge/sceneport/pkg/serialize/gltfenc"
	"github.com/sceneforge/sceneport/pkg/serialize/objenc"
	"github.com/sceneforge/sceneport/pkg/serialize/stlenc"
)

// Serializer converts a scene graph into the bytes of one interchange
// format. Implementations must treat the scene as read-only. Whether the
// underlying encoder is synchronous or callback-driven is an implementation
// detail hidden behind this single awaitable contract.
type Serializer interface {
	Serialize(ctx context.Context, s *scene.Scene) ([]byte, error)
}

// SerializerFunc adapts a function to the Serializer interface.
type SerializerFunc func(ctx context.Context, s *scene.Scene) ([]byte, error)

// Serialize calls f(ctx, s).
func (f SerializerFunc) Serialize(ctx context.Context, s *scene.Scene) ([]byte, error) {
	return f(ctx, s)
}

// maxTextureDimension caps embedded texture dimensions for the GLB path.
const maxTextureDimension = 4096

// defaultSerializers returns the fixed per-format serializer configuration.
// The configuration is not exposed to callers; tests substitute serializers
// via WithSerializer.
func defaultSerializers() map[Format]Serializer {
	return map[Format]Serializer{
		FormatGLB:  gltfenc.New(gltfenc.Options{Binary: true, EmbedTextures: true, MaxTextureSize: maxTextureDimension}),
		FormatGLTF: gltfenc.New(gltfenc.Options{Binary: false, EmbedTextures: true}),
		FormatSTL:  stlenc.New(),
		FormatOBJ:  objenc.New(),
	}
}
