// Package objenc serializes scene graphs into Wavefront OBJ text.
//
// The encoder flattens the node hierarchy: each mesh-bearing node becomes an
// "o" object with its vertices baked into world space. Vertex normals and
// texture coordinates are preserved when present. Materials are not emitted;
// OBJ keeps materials in a sidecar .mtl file, and the export pipeline
// produces exactly one payload per run.
package objenc

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/sceneforge/sceneport/pkg/scene"
)

// Encoder serializes scenes into OBJ text.
type Encoder struct{}

// New creates an OBJ encoder.
func New() *Encoder {
	return &Encoder{}
}

// Serialize encodes the scene as UTF-8 OBJ text. The scene is read, never
// modified.
func (e *Encoder) Serialize(ctx context.Context, s *scene.Scene) ([]byte, error) {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n", s.Name)

	w := &objWriter{b: &b}
	s.WalkWorld(func(n *scene.Node, world mgl64.Mat4) {
		if n.Mesh == nil {
			return
		}
		w.writeObject(n, world)
	})
	return []byte(b.String()), nil
}

// objWriter tracks the global 1-based index offsets OBJ faces require.
type objWriter struct {
	b       *strings.Builder
	vOffset int // vertices written so far
	tOffset int // texture coordinates written so far
	nOffset int // normals written so far
}

func (w *objWriter) writeObject(n *scene.Node, world mgl64.Mat4) {
	name := n.Name
	if name == "" && n.Mesh.Name != "" {
		name = n.Mesh.Name
	}
	if name == "" {
		name = "object"
	}
	fmt.Fprintf(w.b, "o %s\n", sanitizeName(name))

	for _, p := range n.Mesh.Primitives {
		w.writePrimitive(p, world)
	}
}

func (w *objWriter) writePrimitive(p *scene.Primitive, world mgl64.Mat4) {
	hasUV := len(p.TexCoords) > 0
	hasNormal := len(p.Normals) > 0

	for _, pos := range p.Positions {
		v := scene.TransformPoint(world, pos)
		fmt.Fprintf(w.b, "v %g %g %g\n", v[0], v[1], v[2])
	}
	for _, uv := range p.TexCoords {
		fmt.Fprintf(w.b, "vt %g %g\n", uv[0], uv[1])
	}
	for _, nrm := range p.Normals {
		d := scene.TransformDirection(world, nrm)
		fmt.Fprintf(w.b, "vn %g %g %g\n", d[0], d[1], d[2])
	}

	emit := func(a, b, c int) {
		fmt.Fprintf(w.b, "f %s %s %s\n",
			w.faceRef(a, hasUV, hasNormal),
			w.faceRef(b, hasUV, hasNormal),
			w.faceRef(c, hasUV, hasNormal))
	}

	if len(p.Indices) > 0 {
		for i := 0; i+2 < len(p.Indices); i += 3 {
			emit(int(p.Indices[i]), int(p.Indices[i+1]), int(p.Indices[i+2]))
		}
	} else {
		for i := 0; i+2 < len(p.Positions); i += 3 {
			emit(i, i+1, i+2)
		}
	}

	w.vOffset += len(p.Positions)
	w.tOffset += len(p.TexCoords)
	w.nOffset += len(p.Normals)
}

// faceRef formats one face vertex reference using global 1-based indices:
// v, v/vt, v//vn, or v/vt/vn depending on which attributes exist.
func (w *objWriter) faceRef(i int, hasUV, hasNormal bool) string {
	v := w.vOffset + i + 1
	switch {
	case hasUV && hasNormal:
		return fmt.Sprintf("%d/%d/%d", v, w.tOffset+i+1, w.nOffset+i+1)
	case hasUV:
		return fmt.Sprintf("%d/%d", v, w.tOffset+i+1)
	case hasNormal:
		return fmt.Sprintf("%d//%d", v, w.nOffset+i+1)
	default:
		return fmt.Sprintf("%d", v)
	}
}

// sanitizeName makes a node name safe for an OBJ object line, which is
// whitespace-delimited and single-line.
func sanitizeName(name string) string {
	name = strings.ReplaceAll(name, "\n", " ")
	return strings.ReplaceAll(name, " ", "_")
}
