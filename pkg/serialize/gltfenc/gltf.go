package gltfenc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/sceneforge/sceneport/pkg/scene"
)

const generatorTag = "sceneforge/sceneport"

// Options configures the glTF encoder.
type Options struct {
	// Binary selects the GLB container. When false the output is a
	// pretty-printed JSON glTF document with buffers embedded as data URIs.
	Binary bool

	// EmbedTextures embeds material textures into the document. Textures are
	// always embedded when present; the flag exists so a caller can strip
	// them from texture-heavy scenes.
	EmbedTextures bool

	// MaxTextureSize caps texture dimensions in pixels. Larger textures are
	// downscaled before embedding. Zero means no cap.
	MaxTextureSize int
}

// Encoder serializes scenes into glTF 2.0 documents.
type Encoder struct {
	opts Options
}

// New creates an encoder with the given options.
func New(opts Options) *Encoder {
	return &Encoder{opts: opts}
}

// Serialize encodes the scene. The scene is read, never modified.
func (e *Encoder) Serialize(ctx context.Context, s *scene.Scene) ([]byte, error) {
	doc, err := e.buildDocument(s)
	if err != nil {
		return nil, err
	}

	if e.opts.Binary {
		var buf bytes.Buffer
		enc := gltf.NewEncoder(&buf)
		enc.AsBinary = true
		if err := enc.Encode(doc); err != nil {
			return nil, fmt.Errorf("encode glb: %w", err)
		}
		return buf.Bytes(), nil
	}

	// JSON text output carries its buffers inline as data URIs.
	for _, b := range doc.Buffers {
		b.EmbeddedResource()
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode gltf: %w", err)
	}
	return append(data, '\n'), nil
}

// buildDocument maps the scene graph one-to-one onto a glTF document.
func (e *Encoder) buildDocument(s *scene.Scene) (*gltf.Document, error) {
	doc := gltf.NewDocument()
	doc.Asset.Generator = generatorTag
	if s.Name != "" {
		doc.Scenes[0].Name = s.Name
	}

	b := &docBuilder{doc: doc, opts: e.opts}
	for _, n := range s.Nodes {
		idx, err := b.addNode(n)
		if err != nil {
			return nil, err
		}
		doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, idx)
	}
	return doc, nil
}

// docBuilder accumulates glTF resources while walking the scene graph.
type docBuilder struct {
	doc  *gltf.Document
	opts Options
}

func (b *docBuilder) addNode(n *scene.Node) (int, error) {
	gn := &gltf.Node{
		Name:        n.Name,
		Translation: n.Translation,
		Rotation:    rotationOrIdentity(n.Rotation),
		Scale:       scaleOrUnit(n.Scale),
	}

	if n.Mesh != nil {
		meshIdx, err := b.addMesh(n.Mesh)
		if err != nil {
			return 0, err
		}
		gn.Mesh = gltf.Index(meshIdx)
	}

	b.doc.Nodes = append(b.doc.Nodes, gn)
	idx := len(b.doc.Nodes) - 1

	for _, c := range n.Children {
		childIdx, err := b.addNode(c)
		if err != nil {
			return 0, err
		}
		// addNode appends to doc.Nodes, so gn stays valid but must be
		// re-fetched by index to append children deterministically.
		b.doc.Nodes[idx].Children = append(b.doc.Nodes[idx].Children, childIdx)
	}
	return idx, nil
}

func (b *docBuilder) addMesh(m *scene.Mesh) (int, error) {
	gm := &gltf.Mesh{Name: m.Name}
	for i, p := range m.Primitives {
		gp, err := b.addPrimitive(p)
		if err != nil {
			return 0, fmt.Errorf("mesh %q primitive %d: %w", m.Name, i, err)
		}
		gm.Primitives = append(gm.Primitives, gp)
	}
	b.doc.Meshes = append(b.doc.Meshes, gm)
	return len(b.doc.Meshes) - 1, nil
}

func (b *docBuilder) addPrimitive(p *scene.Primitive) (*gltf.Primitive, error) {
	attrs := gltf.PrimitiveAttributes{
		gltf.POSITION: modeler.WritePosition(b.doc, p.Positions),
	}
	if len(p.Normals) > 0 {
		attrs[gltf.NORMAL] = modeler.WriteNormal(b.doc, p.Normals)
	}
	if len(p.TexCoords) > 0 {
		attrs[gltf.TEXCOORD_0] = modeler.WriteTextureCoord(b.doc, p.TexCoords)
	}

	gp := &gltf.Primitive{Attributes: attrs}
	if len(p.Indices) > 0 {
		gp.Indices = gltf.Index(modeler.WriteIndices(b.doc, p.Indices))
	}

	if p.Material != nil {
		matIdx, err := b.addMaterial(p.Material)
		if err != nil {
			return nil, err
		}
		gp.Material = gltf.Index(matIdx)
	}
	return gp, nil
}

func (b *docBuilder) addMaterial(m *scene.Material) (int, error) {
	gm := &gltf.Material{
		Name:        m.Name,
		DoubleSided: m.DoubleSided,
		PBRMetallicRoughness: &gltf.PBRMetallicRoughness{
			BaseColorFactor: colorFactor(m.BaseColor),
			MetallicFactor:  f64ptr(m.Metallic),
			RoughnessFactor: f64ptr(m.Roughness),
		},
	}

	if m.Texture != nil && b.opts.EmbedTextures {
		texIdx, err := b.addTexture(m.Texture)
		if err != nil {
			return 0, fmt.Errorf("material %q: %w", m.Name, err)
		}
		gm.PBRMetallicRoughness.BaseColorTexture = &gltf.TextureInfo{Index: texIdx}
	}

	b.doc.Materials = append(b.doc.Materials, gm)
	return len(b.doc.Materials) - 1, nil
}

func (b *docBuilder) addTexture(t *scene.Texture) (int, error) {
	data, mime, err := fitTexture(t.Data, t.MIME, b.opts.MaxTextureSize)
	if err != nil {
		return 0, fmt.Errorf("texture %q: %w", t.Name, err)
	}

	imgIdx, err := modeler.WriteImage(b.doc, t.Name, mime, bytes.NewReader(data))
	if err != nil {
		return 0, fmt.Errorf("texture %q: %w", t.Name, err)
	}

	b.doc.Textures = append(b.doc.Textures, &gltf.Texture{Source: gltf.Index(imgIdx)})
	return len(b.doc.Textures) - 1, nil
}

func rotationOrIdentity(r [4]float64) [4]float64 {
	if r == ([4]float64{}) {
		return [4]float64{0, 0, 0, 1}
	}
	return r
}

func scaleOrUnit(s [3]float64) [3]float64 {
	if s == ([3]float64{}) {
		return [3]float64{1, 1, 1}
	}
	return s
}

func f64ptr(v float32) *float64 {
	f := float64(v)
	return &f
}

func colorFactor(c [4]float32) *[4]float64 {
	f := [4]float64{float64(c[0]), float64(c[1]), float64(c[2]), float64(c[3])}
	return &f
}
