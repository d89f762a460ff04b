package export

import (
	"testing"

	"github.com/sceneforge/sceneport/pkg/errors"
)

func TestFormatDescriptors(t *testing.T) {
	tests := []struct {
		format    Format
		extension string
		mime      string
		binary    bool
	}{
		{FormatGLB, ".glb", "model/gltf-binary", true},
		{FormatGLTF, ".gltf", "application/json", false},
		{FormatSTL, ".stl", "application/octet-stream", true},
		{FormatOBJ, ".obj", "text/plain", false},
	}
	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			if got := tt.format.Extension(); got != tt.extension {
				t.Errorf("Extension() = %q, want %q", got, tt.extension)
			}
			if got := tt.format.ContentType(); got != tt.mime {
				t.Errorf("ContentType() = %q, want %q", got, tt.mime)
			}
			if got := tt.format.Binary(); got != tt.binary {
				t.Errorf("Binary() = %v, want %v", got, tt.binary)
			}
			if !tt.format.Valid() {
				t.Errorf("%s should be valid", tt.format)
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"glb", FormatGLB, false},
		{"GLB", FormatGLB, false},
		{".gltf", FormatGLTF, false},
		{"Stl", FormatSTL, false},
		{"obj", FormatOBJ, false},
		{"", "", true},
		{"fbx", "", true},
		{"glb ", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				if !errors.Is(err, errors.ErrCodeInvalidFormat) {
					t.Fatalf("expected INVALID_FORMAT for %q, got %v", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseFormat(%q) failed: %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseFormat(%q) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}
}

func TestAllFormatsOrder(t *testing.T) {
	want := []Format{FormatGLB, FormatGLTF, FormatSTL, FormatOBJ}
	got := AllFormats()
	if len(got) != len(want) {
		t.Fatalf("AllFormats() returned %d formats, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("AllFormats()[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}
