package scene

import (
	"errors"
	"fmt"
)

var (
	// ErrNilScene is returned by [Scene.Validate] when called on a nil scene.
	ErrNilScene = errors.New("scene must not be nil")

	// ErrEmptyPrimitive is returned by [Scene.Validate] when a primitive has
	// no positions. Every primitive must carry at least one vertex.
	ErrEmptyPrimitive = errors.New("primitive has no positions")

	// ErrAttributeCountMismatch is returned by [Scene.Validate] when a
	// primitive's normals or texture coordinates do not match the vertex count.
	ErrAttributeCountMismatch = errors.New("attribute count does not match position count")

	// ErrIndexOutOfRange is returned by [Scene.Validate] when an index
	// references a vertex outside the primitive's position array.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrPartialTriangle is returned by [Scene.Validate] when the effective
	// vertex stream is not a multiple of three. All primitives are triangle
	// lists.
	ErrPartialTriangle = errors.New("vertex stream is not a multiple of three")

	// ErrEmptyTexture is returned by [Scene.Validate] when a material
	// references a texture with no image data.
	ErrEmptyTexture = errors.New("texture has no image data")
)

// Scene is the root of an in-memory 3D scene graph. It owns a forest of
// nodes, each of which may carry a mesh and child nodes.
//
// The zero value is a valid empty scene. Scene is not safe for concurrent
// mutation; the exporter treats scenes as read-only and never modifies them.
type Scene struct {
	Name  string  // Display name (also the default glTF scene name)
	Nodes []*Node // Root nodes of the graph
}

// Node is a vertex in the scene graph. Its transform is expressed as
// translation, rotation (quaternion), and scale relative to the parent node.
type Node struct {
	Name        string
	Translation [3]float64 // x, y, z offset from parent
	Rotation    [4]float64 // Unit quaternion (x, y, z, w)
	Scale       [3]float64 // Per-axis scale factors
	Mesh        *Mesh      // Optional geometry attached to this node
	Children    []*Node
}

// NewNode creates a node with an identity transform.
func NewNode(name string) *Node {
	return &Node{
		Name:     name,
		Rotation: [4]float64{0, 0, 0, 1},
		Scale:    [3]float64{1, 1, 1},
	}
}

// Mesh is a named collection of triangle primitives.
type Mesh struct {
	Name       string
	Primitives []*Primitive
}

// Primitive is a single triangle list with optional per-vertex attributes.
// If Indices is empty, vertices are consumed three at a time in order.
type Primitive struct {
	Positions [][3]float32 // Required vertex positions
	Normals   [][3]float32 // Optional, must match Positions in length
	TexCoords [][2]float32 // Optional, must match Positions in length
	Indices   []uint32     // Optional triangle indices into Positions
	Material  *Material    // Optional surface description
}

// Material describes surface appearance using the metallic-roughness model.
type Material struct {
	Name        string
	BaseColor   [4]float32 // RGBA factors in [0,1]
	Metallic    float32
	Roughness   float32
	DoubleSided bool
	Texture     *Texture // Optional base color texture
}

// Texture is an embedded texture image.
type Texture struct {
	Name string
	MIME string // "image/png" or "image/jpeg"
	Data []byte // Raw encoded image bytes
}

// VertexCount returns the number of vertices in the primitive.
func (p *Primitive) VertexCount() int { return len(p.Positions) }

// TriangleCount returns the number of triangles in the primitive.
func (p *Primitive) TriangleCount() int {
	if len(p.Indices) > 0 {
		return len(p.Indices) / 3
	}
	return len(p.Positions) / 3
}

// TriangleCount returns the total number of triangles across all meshes.
func (s *Scene) TriangleCount() int {
	total := 0
	s.Walk(func(n *Node) {
		if n.Mesh == nil {
			return
		}
		for _, p := range n.Mesh.Primitives {
			total += p.TriangleCount()
		}
	})
	return total
}

// Walk visits every node in the scene in depth-first, parent-before-child
// order. The visit function must not modify the graph structure.
func (s *Scene) Walk(visit func(*Node)) {
	for _, n := range s.Nodes {
		walkNode(n, visit)
	}
}

func walkNode(n *Node, visit func(*Node)) {
	visit(n)
	for _, c := range n.Children {
		walkNode(c, visit)
	}
}

// Validate checks structural invariants of the scene graph: positions are
// present, optional attributes match the vertex count, indices are in range,
// and the effective vertex stream forms whole triangles.
//
// Errors are wrapped with the node and mesh names for context; use errors.Is
// to check for the sentinel error values defined in this package.
func (s *Scene) Validate() error {
	if s == nil {
		return ErrNilScene
	}
	var err error
	s.Walk(func(n *Node) {
		if err != nil || n.Mesh == nil {
			return
		}
		for i, p := range n.Mesh.Primitives {
			if e := validatePrimitive(p); e != nil {
				err = fmt.Errorf("node %q mesh %q primitive %d: %w", n.Name, n.Mesh.Name, i, e)
				return
			}
		}
	})
	return err
}

func validatePrimitive(p *Primitive) error {
	if len(p.Positions) == 0 {
		return ErrEmptyPrimitive
	}
	if len(p.Normals) > 0 && len(p.Normals) != len(p.Positions) {
		return fmt.Errorf("normals: %w", ErrAttributeCountMismatch)
	}
	if len(p.TexCoords) > 0 && len(p.TexCoords) != len(p.Positions) {
		return fmt.Errorf("texcoords: %w", ErrAttributeCountMismatch)
	}
	if len(p.Indices) > 0 {
		if len(p.Indices)%3 != 0 {
			return ErrPartialTriangle
		}
		for _, idx := range p.Indices {
			if int(idx) >= len(p.Positions) {
				return fmt.Errorf("index %d of %d vertices: %w", idx, len(p.Positions), ErrIndexOutOfRange)
			}
		}
	} else if len(p.Positions)%3 != 0 {
		return ErrPartialTriangle
	}
	if p.Material != nil && p.Material.Texture != nil && len(p.Material.Texture.Data) == 0 {
		return ErrEmptyTexture
	}
	return nil
}
