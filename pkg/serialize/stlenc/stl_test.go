package stlenc

import (
	"context"
	"encoding/binary"
	"math"
	"testing"

	"github.com/sceneforge/sceneport/pkg/scene"
)

func quadScene() *scene.Scene {
	n := scene.NewNode("quad")
	n.Mesh = &scene.Mesh{
		Primitives: []*scene.Primitive{{
			Positions: [][3]float32{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}},
			Indices:   []uint32{0, 1, 2, 0, 2, 3},
		}},
	}
	return &scene.Scene{Name: "quad", Nodes: []*scene.Node{n}}
}

func TestSerializeBinaryLayout(t *testing.T) {
	data, err := New().Serialize(context.Background(), quadScene())
	if err != nil {
		t.Fatalf("Serialize() error = %v", err)
	}

	// Binary STL: 80-byte header, uint32 triangle count, 50 bytes per triangle.
	const wantTris = 2
	wantLen := 84 + 50*wantTris
	if len(data) != wantLen {
		t.Fatalf("len = %d, want %d", len(data), wantLen)
	}

	count := binary.LittleEndian.Uint32(data[80:84])
	if count != wantTris {
		t.Errorf("triangle count = %d, want %d", count, wantTris)
	}
}

func TestSerializeAppliesTransforms(t *testing.T) {
	s := quadScene()
	s.Nodes[0].Translation = [3]float64{5, 0, 0}

	data, err := New().Serialize(context.Background(), s)
	if err != nil {
		t.Fatalf("Serialize() error = %v", err)
	}

	// First vertex of the first triangle starts after the header, count, and
	// the 12-byte normal.
	x := binary.LittleEndian.Uint32(data[84+12 : 84+16])
	if got := math.Float32frombits(x); got != 5 {
		t.Errorf("first vertex x = %f, want 5", got)
	}
}

func TestSerializeEmptyScene(t *testing.T) {
	data, err := New().Serialize(context.Background(), &scene.Scene{Name: "empty"})
	if err != nil {
		t.Fatalf("Serialize() error = %v", err)
	}
	if len(data) != 84 {
		t.Errorf("empty scene len = %d, want bare 84-byte preamble", len(data))
	}
}
