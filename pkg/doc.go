// Package pkg provides the core libraries for Sceneport scene export.
//
// # Overview
//
// Sceneport serializes in-memory 3D scene graphs to interchange formats.
// The pkg directory is organized into three main areas:
//
//  1. [scene] - Domain model (scene graph, transforms, JSON documents)
//  2. [serialize] - Format encoders (glTF/GLB, STL, OBJ)
//  3. [export] - Orchestration (controller, progress state, delivery)
//
// # Architecture
//
// The typical data flow through Sceneport:
//
//	Scene Document (JSON)
//	         ↓
//	    [scene] package (graph model + world transforms)
//	         ↓
//	    [serialize] encoders (glTF / STL / OBJ bytes)
//	         ↓
//	    [export] controller (progress, packaging)
//	         ↓
//	    [download] sink (file, HTTP response)
//
// # Quick Start
//
// Export a scene to GLB on disk:
//
//	import (
//	    "context"
//	    "github.com/sceneforge/sceneport/pkg/download"
//	    "github.com/sceneforge/sceneport/pkg/export"
//	    "github.com/sceneforge/sceneport/pkg/scene/sceneio"
//	)
//
//	root, _ := sceneio.ImportJSON("chair.json")
//	ctrl := export.NewController(download.NewFileSink("."))
//	_ = ctrl.ExportGLB(context.Background(), root, "chair")
//
// # Main Packages
//
// [scene] - Scene graph model: nodes with TRS transforms, meshes,
// primitives, PBR materials, and embedded textures. Includes world-space
// transform accumulation and triangle extraction for the mesh-only
// formats.
//
// [scene/sceneio] - JSON scene documents: reading and writing the wire
// representation the CLI and HTTP service accept.
//
// [serialize/gltfenc] - glTF 2.0 encoder producing either a binary GLB
// container or an indented JSON document with embedded buffers. Oversized
// textures are downscaled before embedding.
//
// [serialize/stlenc] - Binary STL encoder. Node transforms are baked into
// world-space triangles; materials and textures do not survive.
//
// [serialize/objenc] - Wavefront OBJ encoder emitting world-space
// geometry with texture coordinates and normals when present.
//
// [export] - The export controller: a parametrized flow shared by all
// formats, with observable busy/progress/error state, subscriptions, and
// a single-export guard.
//
// [download] - Delivery sinks for finished payloads: files on disk,
// arbitrary writers (HTTP responses, test buffers).
//
// [errors] - Structured errors with machine-readable codes shared by the
// CLI and the HTTP service.
//
// [observability] - Pluggable hooks for export lifecycle and delivery
// events.
//
// [config] - TOML configuration for the CLI and the HTTP service.
//
// [buildinfo] - Version metadata injected at build time.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...              # All tests
//	go test ./pkg/serialize/...    # Encoders only
//
// [scene]: https://pkg.go.dev/github.com/sceneforge/sceneport/pkg/scene
// [scene/sceneio]: https://pkg.go.dev/github.com/sceneforge/sceneport/pkg/scene/sceneio
// [serialize]: https://pkg.go.dev/github.com/sceneforge/sceneport/pkg/serialize
// [serialize/gltfenc]: https://pkg.go.dev/github.com/sceneforge/sceneport/pkg/serialize/gltfenc
// [serialize/stlenc]: https://pkg.go.dev/github.com/sceneforge/sceneport/pkg/serialize/stlenc
// [serialize/objenc]: https://pkg.go.dev/github.com/sceneforge/sceneport/pkg/serialize/objenc
// [export]: https://pkg.go.dev/github.com/sceneforge/sceneport/pkg/export
// [download]: https://pkg.go.dev/github.com/sceneforge/sceneport/pkg/download
// [errors]: https://pkg.go.dev/github.com/sceneforge/sceneport/pkg/errors
// [observability]: https://pkg.go.dev/github.com/sceneforge/sceneport/pkg/observability
// [config]: https://pkg.go.dev/github.com/sceneforge/sceneport/pkg/config
// [buildinfo]: https://pkg.go.dev/github.com/sceneforge/sceneport/pkg/buildinfo
package pkg
