package sceneio

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/sceneforge/sceneport/pkg/scene"
)

// sceneDoc is the wire form of a scene document.
type sceneDoc struct {
	Name  string    `json:"name,omitempty"`
	Nodes []nodeDoc `json:"nodes"`
}

type nodeDoc struct {
	Name        string      `json:"name,omitempty"`
	Translation *[3]float64 `json:"translation,omitempty"`
	Rotation    *[4]float64 `json:"rotation,omitempty"`
	Scale       *[3]float64 `json:"scale,omitempty"`
	Mesh        *meshDoc    `json:"mesh,omitempty"`
	Children    []nodeDoc   `json:"children,omitempty"`
}

type meshDoc struct {
	Name       string         `json:"name,omitempty"`
	Primitives []primitiveDoc `json:"primitives"`
}

type primitiveDoc struct {
	Positions [][3]float32 `json:"positions"`
	Normals   [][3]float32 `json:"normals,omitempty"`
	TexCoords [][2]float32 `json:"texcoords,omitempty"`
	Indices   []uint32     `json:"indices,omitempty"`
	Material  *materialDoc `json:"material,omitempty"`
}

type materialDoc struct {
	Name        string      `json:"name,omitempty"`
	BaseColor   *[4]float32 `json:"base_color,omitempty"`
	Metallic    float32     `json:"metallic,omitempty"`
	Roughness   float32     `json:"roughness,omitempty"`
	DoubleSided bool        `json:"double_sided,omitempty"`
	Texture     *textureDoc `json:"texture,omitempty"`
}

type textureDoc struct {
	Name string `json:"name,omitempty"`
	MIME string `json:"mime"`
	Data []byte `json:"data"`
}

// WriteJSON encodes a scene as a JSON document and writes it to w.
// The output can be re-imported with [ReadJSON] for round-trip processing.
func WriteJSON(s *scene.Scene, w io.Writer) error {
	doc := sceneDoc{Name: s.Name, Nodes: make([]nodeDoc, 0, len(s.Nodes))}
	for _, n := range s.Nodes {
		doc.Nodes = append(doc.Nodes, nodeToDoc(n))
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes a scene to a JSON file at path.
// This is a convenience wrapper around [WriteJSON] for file-based output.
func ExportJSON(s *scene.Scene, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(s, f)
}

func nodeToDoc(n *scene.Node) nodeDoc {
	d := nodeDoc{Name: n.Name}
	if n.Translation != ([3]float64{}) {
		t := n.Translation
		d.Translation = &t
	}
	if n.Rotation != ([4]float64{0, 0, 0, 1}) {
		r := n.Rotation
		d.Rotation = &r
	}
	if n.Scale != ([3]float64{1, 1, 1}) {
		sc := n.Scale
		d.Scale = &sc
	}
	if n.Mesh != nil {
		m := meshToDoc(n.Mesh)
		d.Mesh = &m
	}
	for _, c := range n.Children {
		d.Children = append(d.Children, nodeToDoc(c))
	}
	return d
}

func meshToDoc(m *scene.Mesh) meshDoc {
	d := meshDoc{Name: m.Name}
	for _, p := range m.Primitives {
		pd := primitiveDoc{
			Positions: p.Positions,
			Normals:   p.Normals,
			TexCoords: p.TexCoords,
			Indices:   p.Indices,
		}
		if p.Material != nil {
			md := materialToDoc(p.Material)
			pd.Material = &md
		}
		d.Primitives = append(d.Primitives, pd)
	}
	return d
}

func materialToDoc(m *scene.Material) materialDoc {
	d := materialDoc{
		Name:        m.Name,
		Metallic:    m.Metallic,
		Roughness:   m.Roughness,
		DoubleSided: m.DoubleSided,
	}
	bc := m.BaseColor
	d.BaseColor = &bc
	if m.Texture != nil {
		d.Texture = &textureDoc{Name: m.Texture.Name, MIME: m.Texture.MIME, Data: m.Texture.Data}
	}
	return d
}
