package sceneio

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sceneforge/sceneport/pkg/scene"
)

const minimalDoc = `{
  "name": "test",
  "nodes": [
    {
      "name": "tri",
      "translation": [1, 0, 0],
      "mesh": {
        "name": "tri-mesh",
        "primitives": [
          {
            "positions": [[0,0,0], [1,0,0], [1,1,0]],
            "indices": [0, 1, 2],
            "material": {"base_color": [0.8, 0.2, 0.2, 1.0], "roughness": 0.5}
          }
        ]
      }
    }
  ]
}`

func TestReadJSON(t *testing.T) {
	s, err := ReadJSON(strings.NewReader(minimalDoc))
	if err != nil {
		t.Fatalf("ReadJSON() error = %v", err)
	}

	if s.Name != "test" {
		t.Errorf("Name = %q, want %q", s.Name, "test")
	}
	if len(s.Nodes) != 1 {
		t.Fatalf("len(Nodes) = %d, want 1", len(s.Nodes))
	}

	n := s.Nodes[0]
	if n.Translation != ([3]float64{1, 0, 0}) {
		t.Errorf("Translation = %v, want (1,0,0)", n.Translation)
	}
	// Omitted transform fields default to identity.
	if n.Rotation != ([4]float64{0, 0, 0, 1}) {
		t.Errorf("Rotation = %v, want identity", n.Rotation)
	}
	if n.Scale != ([3]float64{1, 1, 1}) {
		t.Errorf("Scale = %v, want unit", n.Scale)
	}

	p := n.Mesh.Primitives[0]
	if p.Material == nil || p.Material.BaseColor != ([4]float32{0.8, 0.2, 0.2, 1.0}) {
		t.Errorf("Material = %+v, want base color (0.8,0.2,0.2,1)", p.Material)
	}
}

func TestReadJSONMalformed(t *testing.T) {
	if _, err := ReadJSON(strings.NewReader("{not json")); err == nil {
		t.Error("ReadJSON() should fail on malformed JSON")
	}
}

func TestReadJSONInvalidGeometry(t *testing.T) {
	doc := `{"nodes": [{"mesh": {"primitives": [{"positions": [[0,0,0]], "indices": [0, 1, 2]}]}}]}`
	_, err := ReadJSON(strings.NewReader(doc))
	if !errors.Is(err, scene.ErrIndexOutOfRange) {
		t.Errorf("ReadJSON() = %v, want ErrIndexOutOfRange", err)
	}
}

func TestRoundTrip(t *testing.T) {
	orig, err := ReadJSON(strings.NewReader(minimalDoc))
	if err != nil {
		t.Fatalf("ReadJSON() error = %v", err)
	}

	var buf bytes.Buffer
	if err := WriteJSON(orig, &buf); err != nil {
		t.Fatalf("WriteJSON() error = %v", err)
	}

	back, err := ReadJSON(&buf)
	if err != nil {
		t.Fatalf("re-read error = %v", err)
	}

	if back.Name != orig.Name {
		t.Errorf("Name = %q, want %q", back.Name, orig.Name)
	}
	if back.TriangleCount() != orig.TriangleCount() {
		t.Errorf("TriangleCount = %d, want %d", back.TriangleCount(), orig.TriangleCount())
	}
	if back.Nodes[0].Translation != orig.Nodes[0].Translation {
		t.Errorf("Translation = %v, want %v", back.Nodes[0].Translation, orig.Nodes[0].Translation)
	}
}

func TestImportExportJSON(t *testing.T) {
	s, err := ReadJSON(strings.NewReader(minimalDoc))
	if err != nil {
		t.Fatalf("ReadJSON() error = %v", err)
	}

	path := filepath.Join(t.TempDir(), "scene.json")
	if err := ExportJSON(s, path); err != nil {
		t.Fatalf("ExportJSON() error = %v", err)
	}

	back, err := ImportJSON(path)
	if err != nil {
		t.Fatalf("ImportJSON() error = %v", err)
	}
	if back.TriangleCount() != 1 {
		t.Errorf("TriangleCount = %d, want 1", back.TriangleCount())
	}
}

func TestImportJSONMissingFile(t *testing.T) {
	if _, err := ImportJSON(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("ImportJSON() should fail for a missing file")
	}
}
