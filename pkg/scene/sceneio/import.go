package sceneio

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/sceneforge/sceneport/pkg/scene"
)

// ReadJSON decodes a JSON scene document from r.
//
// The input must be a JSON object with a "nodes" array:
//
//	{
//	  "name": "living room",
//	  "nodes": [
//	    {"name": "chair", "translation": [1, 0, 0], "mesh": {...}}
//	  ]
//	}
//
// Node transforms default to identity when omitted. Texture image data is
// carried base64-encoded in the "data" field (standard encoding/json []byte
// handling).
//
// ReadJSON returns an error if the JSON is malformed or if the decoded scene
// fails [scene.Scene.Validate]. The returned scene is independent of r and
// can be used freely after ReadJSON returns. ReadJSON does not close r.
func ReadJSON(r io.Reader) (*scene.Scene, error) {
	var doc sceneDoc
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}

	s := &scene.Scene{Name: doc.Name}
	for i, nd := range doc.Nodes {
		n, err := nodeFromDoc(nd)
		if err != nil {
			return nil, fmt.Errorf("node %d: %w", i, err)
		}
		s.Nodes = append(s.Nodes, n)
	}

	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("validate: %w", err)
	}
	return s, nil
}

// ImportJSON reads a JSON scene document from the file at path.
//
// ImportJSON opens the file, decodes it using [ReadJSON], and closes the
// file. Errors wrap the underlying cause with the file path for context.
func ImportJSON(path string) (*scene.Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}

func nodeFromDoc(d nodeDoc) (*scene.Node, error) {
	n := scene.NewNode(d.Name)
	if d.Translation != nil {
		n.Translation = *d.Translation
	}
	if d.Rotation != nil {
		n.Rotation = *d.Rotation
	}
	if d.Scale != nil {
		n.Scale = *d.Scale
	}
	if d.Mesh != nil {
		n.Mesh = meshFromDoc(*d.Mesh)
	}
	for i, cd := range d.Children {
		c, err := nodeFromDoc(cd)
		if err != nil {
			return nil, fmt.Errorf("child %d: %w", i, err)
		}
		n.Children = append(n.Children, c)
	}
	return n, nil
}

func meshFromDoc(d meshDoc) *scene.Mesh {
	m := &scene.Mesh{Name: d.Name}
	for _, pd := range d.Primitives {
		p := &scene.Primitive{
			Positions: pd.Positions,
			Normals:   pd.Normals,
			TexCoords: pd.TexCoords,
			Indices:   pd.Indices,
		}
		if pd.Material != nil {
			p.Material = materialFromDoc(*pd.Material)
		}
		m.Primitives = append(m.Primitives, p)
	}
	return m
}

func materialFromDoc(d materialDoc) *scene.Material {
	m := &scene.Material{
		Name:        d.Name,
		Metallic:    d.Metallic,
		Roughness:   d.Roughness,
		DoubleSided: d.DoubleSided,
	}
	if d.BaseColor != nil {
		m.BaseColor = *d.BaseColor
	} else {
		m.BaseColor = [4]float32{1, 1, 1, 1}
	}
	if d.Texture != nil {
		m.Texture = &scene.Texture{Name: d.Texture.Name, MIME: d.Texture.MIME, Data: d.Texture.Data}
	}
	return m
}
