package scene

import (
	"github.com/go-gl/mathgl/mgl64"
)

// LocalMatrix returns the node's local transform as translation * rotation *
// scale, matching glTF TRS composition order.
func (n *Node) LocalMatrix() mgl64.Mat4 {
	t := mgl64.Translate3D(n.Translation[0], n.Translation[1], n.Translation[2])
	q := mgl64.Quat{
		W: n.Rotation[3],
		V: mgl64.Vec3{n.Rotation[0], n.Rotation[1], n.Rotation[2]},
	}
	// A zero quaternion means the node was built without NewNode; treat it
	// as identity rather than collapsing the geometry to a point.
	if q.W == 0 && q.V.Len() == 0 {
		q = mgl64.QuatIdent()
	}
	r := q.Normalize().Mat4()
	sc := n.Scale
	if sc == ([3]float64{}) {
		sc = [3]float64{1, 1, 1}
	}
	s := mgl64.Scale3D(sc[0], sc[1], sc[2])
	return t.Mul4(r).Mul4(s)
}

// WalkWorld visits every node with its accumulated world transform, in
// depth-first, parent-before-child order.
func (s *Scene) WalkWorld(visit func(n *Node, world mgl64.Mat4)) {
	for _, n := range s.Nodes {
		walkWorld(n, mgl64.Ident4(), visit)
	}
}

func walkWorld(n *Node, parent mgl64.Mat4, visit func(*Node, mgl64.Mat4)) {
	world := parent.Mul4(n.LocalMatrix())
	visit(n, world)
	for _, c := range n.Children {
		walkWorld(c, world, visit)
	}
}

// Triangle is a single world-space triangle with a face normal. It is the
// flattened form consumed by the mesh-only export formats (STL, OBJ).
type Triangle struct {
	V [3][3]float32 // Vertex positions in world space
	N [3]float32    // Face normal (unit length, zero for degenerate faces)
}

// Triangles flattens the scene into world-space triangles. Vertex normals are
// discarded; each triangle carries a freshly computed face normal. Normal
// transformation assumes affine node transforms, which is all the TRS model
// can express.
func (s *Scene) Triangles() []Triangle {
	out := make([]Triangle, 0, s.TriangleCount())
	s.WalkWorld(func(n *Node, world mgl64.Mat4) {
		if n.Mesh == nil {
			return
		}
		for _, p := range n.Mesh.Primitives {
			out = appendTriangles(out, p, world)
		}
	})
	return out
}

func appendTriangles(out []Triangle, p *Primitive, world mgl64.Mat4) []Triangle {
	vertexAt := func(i int) [3]float32 {
		return transformPoint(world, p.Positions[i])
	}

	emit := func(a, b, c int) []Triangle {
		tri := Triangle{V: [3][3]float32{vertexAt(a), vertexAt(b), vertexAt(c)}}
		tri.N = faceNormal(tri.V)
		return append(out, tri)
	}

	if len(p.Indices) > 0 {
		for i := 0; i+2 < len(p.Indices); i += 3 {
			out = emit(int(p.Indices[i]), int(p.Indices[i+1]), int(p.Indices[i+2]))
		}
		return out
	}
	for i := 0; i+2 < len(p.Positions); i += 3 {
		out = emit(i, i+1, i+2)
	}
	return out
}

// transformPoint applies the full affine transform to a position.
func transformPoint(m mgl64.Mat4, v [3]float32) [3]float32 {
	p := mgl64.TransformCoordinate(mgl64.Vec3{float64(v[0]), float64(v[1]), float64(v[2])}, m)
	return [3]float32{float32(p.X()), float32(p.Y()), float32(p.Z())}
}

// transformDirection applies the rotational part of the transform and
// renormalizes. Used for vertex normals by the OBJ encoder.
func transformDirection(m mgl64.Mat4, v [3]float32) [3]float32 {
	d := mgl64.TransformNormal(mgl64.Vec3{float64(v[0]), float64(v[1]), float64(v[2])}, m)
	if l := d.Len(); l > 0 {
		d = d.Mul(1 / l)
	}
	return [3]float32{float32(d.X()), float32(d.Y()), float32(d.Z())}
}

// TransformPoint applies the full affine transform m to position v.
func TransformPoint(m mgl64.Mat4, v [3]float32) [3]float32 { return transformPoint(m, v) }

// TransformDirection applies the rotational part of m to direction v and
// renormalizes the result.
func TransformDirection(m mgl64.Mat4, v [3]float32) [3]float32 { return transformDirection(m, v) }

// faceNormal computes the unit normal of a triangle via the cross product of
// its edges. Degenerate triangles yield a zero normal.
func faceNormal(v [3][3]float32) [3]float32 {
	a := mgl64.Vec3{float64(v[1][0] - v[0][0]), float64(v[1][1] - v[0][1]), float64(v[1][2] - v[0][2])}
	b := mgl64.Vec3{float64(v[2][0] - v[0][0]), float64(v[2][1] - v[0][1]), float64(v[2][2] - v[0][2])}
	n := a.Cross(b)
	if l := n.Len(); l > 0 {
		n = n.Mul(1 / l)
	}
	return [3]float32{float32(n.X()), float32(n.Y()), float32(n.Z())}
}
