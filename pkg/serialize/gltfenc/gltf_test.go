package gltfenc

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/sceneforge/sceneport/pkg/scene"
)

func triangleScene() *scene.Scene {
	n := scene.NewNode("tri")
	n.Translation = [3]float64{1, 2, 3}
	n.Mesh = &scene.Mesh{
		Name: "tri-mesh",
		Primitives: []*scene.Primitive{{
			Positions: [][3]float32{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}},
			Normals:   [][3]float32{{0, 0, 1}, {0, 0, 1}, {0, 0, 1}},
			Indices:   []uint32{0, 1, 2},
			Material:  &scene.Material{Name: "red", BaseColor: [4]float32{1, 0, 0, 1}, Roughness: 0.5},
		}},
	}
	return &scene.Scene{Name: "tri-scene", Nodes: []*scene.Node{n}}
}

func TestSerializeGLB(t *testing.T) {
	enc := New(Options{Binary: true, EmbedTextures: true, MaxTextureSize: 4096})
	data, err := enc.Serialize(context.Background(), triangleScene())
	if err != nil {
		t.Fatalf("Serialize() error = %v", err)
	}

	// GLB container: magic "glTF", version 2, declared length.
	if len(data) < 12 {
		t.Fatalf("GLB too short: %d bytes", len(data))
	}
	if !bytes.Equal(data[:4], []byte("glTF")) {
		t.Errorf("magic = %q, want glTF", data[:4])
	}
	version := uint32(data[4]) | uint32(data[5])<<8 | uint32(data[6])<<16 | uint32(data[7])<<24
	if version != 2 {
		t.Errorf("version = %d, want 2", version)
	}
}

func TestSerializeJSON(t *testing.T) {
	enc := New(Options{Binary: false, EmbedTextures: true})
	data, err := enc.Serialize(context.Background(), triangleScene())
	if err != nil {
		t.Fatalf("Serialize() error = %v", err)
	}

	// Output must be valid, pretty-printed JSON.
	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if !bytes.Contains(data, []byte("\n  \"")) {
		t.Error("output should be indented with two spaces")
	}

	asset, ok := doc["asset"].(map[string]any)
	if !ok || asset["version"] != "2.0" {
		t.Errorf("asset = %v, want version 2.0", doc["asset"])
	}

	// Buffers must be self-contained data URIs, not external references.
	if buffers, ok := doc["buffers"].([]any); ok {
		for _, b := range buffers {
			uri, _ := b.(map[string]any)["uri"].(string)
			if !bytes.HasPrefix([]byte(uri), []byte("data:")) {
				t.Errorf("buffer uri = %q, want embedded data URI", uri)
			}
		}
	}

	// Scene structure carried over.
	if !bytes.Contains(data, []byte(`"tri-scene"`)) {
		t.Error("scene name missing from output")
	}
	if !bytes.Contains(data, []byte(`"red"`)) {
		t.Error("material name missing from output")
	}
}

func TestSerializeNestedNodes(t *testing.T) {
	parent := scene.NewNode("parent")
	child := scene.NewNode("child")
	child.Mesh = triangleScene().Nodes[0].Mesh
	parent.Children = []*scene.Node{child}
	s := &scene.Scene{Nodes: []*scene.Node{parent}}

	data, err := New(Options{}).Serialize(context.Background(), s)
	if err != nil {
		t.Fatalf("Serialize() error = %v", err)
	}

	var doc struct {
		Nodes []struct {
			Name     string   `json:"name"`
			Children []uint32 `json:"children"`
		} `json:"nodes"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(doc.Nodes) != 2 {
		t.Fatalf("len(nodes) = %d, want 2", len(doc.Nodes))
	}
	if doc.Nodes[0].Name != "parent" || len(doc.Nodes[0].Children) != 1 {
		t.Errorf("parent node = %+v, want one child", doc.Nodes[0])
	}
}

func TestSerializeDocumentWiring(t *testing.T) {
	data, err := New(Options{}).Serialize(context.Background(), triangleScene())
	if err != nil {
		t.Fatalf("Serialize() error = %v", err)
	}

	var doc struct {
		Scenes []struct {
			Nodes []int `json:"nodes"`
		} `json:"scenes"`
		Nodes []struct {
			Mesh *int `json:"mesh"`
		} `json:"nodes"`
		Meshes []struct {
			Primitives []struct {
				Attributes map[string]int `json:"attributes"`
				Indices    *int           `json:"indices"`
				Material   *int           `json:"material"`
			} `json:"primitives"`
		} `json:"meshes"`
		Materials []struct {
			PBR struct {
				BaseColorFactor [4]float64 `json:"baseColorFactor"`
				RoughnessFactor float64    `json:"roughnessFactor"`
			} `json:"pbrMetallicRoughness"`
		} `json:"materials"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if len(doc.Scenes) != 1 || len(doc.Scenes[0].Nodes) != 1 {
		t.Fatalf("scene roots = %+v, want one root node", doc.Scenes)
	}
	root := doc.Nodes[doc.Scenes[0].Nodes[0]]
	if root.Mesh == nil || *root.Mesh >= len(doc.Meshes) {
		t.Fatalf("root mesh reference = %v, want valid mesh index", root.Mesh)
	}

	prim := doc.Meshes[*root.Mesh].Primitives[0]
	if _, ok := prim.Attributes["POSITION"]; !ok {
		t.Error("primitive missing POSITION attribute")
	}
	if prim.Indices == nil {
		t.Error("primitive missing index accessor")
	}
	if prim.Material == nil || *prim.Material >= len(doc.Materials) {
		t.Fatalf("primitive material reference = %v, want valid material index", prim.Material)
	}

	pbr := doc.Materials[*prim.Material].PBR
	if pbr.BaseColorFactor != [4]float64{1, 0, 0, 1} {
		t.Errorf("baseColorFactor = %v, want [1 0 0 1]", pbr.BaseColorFactor)
	}
	if pbr.RoughnessFactor != 0.5 {
		t.Errorf("roughnessFactor = %v, want 0.5", pbr.RoughnessFactor)
	}
}

func TestSerializeDoesNotMutateScene(t *testing.T) {
	s := triangleScene()
	before := s.Nodes[0].Mesh.Primitives[0].Positions[1]

	if _, err := New(Options{Binary: true}).Serialize(context.Background(), s); err != nil {
		t.Fatalf("Serialize() error = %v", err)
	}

	after := s.Nodes[0].Mesh.Primitives[0].Positions[1]
	if before != after {
		t.Errorf("scene mutated during export: %v != %v", before, after)
	}
}
