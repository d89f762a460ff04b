// Package stlenc serializes scene graphs into binary STL.
//
// STL is a triangle-soup format: the scene is flattened into world-space
// triangles via [scene.Scene.Triangles], discarding hierarchy, materials,
// and texture coordinates. Only the binary STL variant is produced.
//
// Serialization is backed by github.com/hschendel/stl.
//
// [scene.Scene.Triangles]: github.com/sceneforge/sceneport/pkg/scene.Scene.Triangles
package stlenc

import (
	"bytes"
	"context"
	"fmt"

	"github.com/hschendel/stl"

	"github.com/sceneforge/sceneport/pkg/scene"
)

// Encoder serializes scenes into binary STL.
type Encoder struct{}

// New creates an STL encoder.
func New() *Encoder {
	return &Encoder{}
}

// Serialize flattens the scene into world-space triangles and encodes them
// as binary STL. The scene is read, never modified.
func (e *Encoder) Serialize(ctx context.Context, s *scene.Scene) ([]byte, error) {
	tris := s.Triangles()

	solid := stl.Solid{
		Name:      s.Name,
		IsAscii:   false,
		Triangles: make([]stl.Triangle, 0, len(tris)),
	}
	for _, t := range tris {
		solid.Triangles = append(solid.Triangles, stl.Triangle{
			Normal: stl.Vec3(t.N),
			Vertices: [3]stl.Vec3{
				stl.Vec3(t.V[0]),
				stl.Vec3(t.V[1]),
				stl.Vec3(t.V[2]),
			},
		})
	}

	var buf bytes.Buffer
	if err := solid.WriteAll(&buf); err != nil {
		return nil, fmt.Errorf("encode stl: %w", err)
	}
	return buf.Bytes(), nil
}
