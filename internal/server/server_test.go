package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/sceneforge/sceneport/pkg/config"
)

const sceneDoc = `{
	"name": "chair",
	"nodes": [
		{
			"name": "seat",
			"mesh": {
				"name": "seat",
				"primitives": [
					{
						"positions": [[0,0,0],[1,0,0],[0,1,0]],
						"indices": [0,1,2]
					}
				]
			}
		}
	]
}`

func testServer(t *testing.T) *Server {
	t.Helper()
	return New(config.Default(), log.NewWithOptions(io.Discard, log.Options{}))
}

func TestHealth(t *testing.T) {
	srv := testServer(t)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("status field = %q", body["status"])
	}
}

func TestFormats(t *testing.T) {
	srv := testServer(t)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/formats", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body struct {
		Formats []struct {
			Name        string `json:"name"`
			Extension   string `json:"extension"`
			ContentType string `json:"content_type"`
		} `json:"formats"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(body.Formats) != 4 {
		t.Fatalf("expected 4 formats, got %d", len(body.Formats))
	}
	if body.Formats[0].Name != "glb" || body.Formats[0].ContentType != "model/gltf-binary" {
		t.Errorf("unexpected first format: %+v", body.Formats[0])
	}
}

func TestExportEndpoint(t *testing.T) {
	tests := []struct {
		name            string
		path            string
		wantFilename    string
		wantContentType string
	}{
		{"glb with filename", "/api/export/glb?filename=chair", "chair.glb", "model/gltf-binary"},
		{"obj default filename", "/api/export/obj", "model.obj", "text/plain"},
		{"stl", "/api/export/stl", "model.stl", "application/octet-stream"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := testServer(t)
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, tt.path, strings.NewReader(sceneDoc))
			srv.Handler().ServeHTTP(rec, req)

			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
			}
			if got := rec.Header().Get("Content-Type"); got != tt.wantContentType {
				t.Errorf("Content-Type = %q, want %q", got, tt.wantContentType)
			}
			wantDisp := `attachment; filename="` + tt.wantFilename + `"`
			if got := rec.Header().Get("Content-Disposition"); got != wantDisp {
				t.Errorf("Content-Disposition = %q, want %q", got, wantDisp)
			}
			if rec.Body.Len() == 0 {
				t.Error("empty payload body")
			}
		})
	}
}

func TestExportGLBMagic(t *testing.T) {
	srv := testServer(t)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/export/glb", strings.NewReader(sceneDoc))
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !bytes.HasPrefix(rec.Body.Bytes(), []byte("glTF")) {
		t.Error("GLB payload missing glTF magic")
	}
}

func TestExportErrors(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		body       string
		wantStatus int
		wantCode   string
	}{
		{"unknown format", "/api/export/fbx", sceneDoc, http.StatusBadRequest, "INVALID_FORMAT"},
		{"malformed scene", "/api/export/glb", "{not json", http.StatusBadRequest, "INVALID_SCENE"},
		{"bad filename", "/api/export/glb?filename=..%2Fescape", sceneDoc, http.StatusBadRequest, "INVALID_FILENAME"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := testServer(t)
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, tt.path, strings.NewReader(tt.body))
			srv.Handler().ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
			var resp errorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("invalid error JSON: %v", err)
			}
			if resp.Error.Code != tt.wantCode {
				t.Errorf("code = %q, want %q", resp.Error.Code, tt.wantCode)
			}
		})
	}
}
