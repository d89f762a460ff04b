// Package scene defines the in-memory 3D scene graph consumed by the
// sceneport exporters.
//
// # Overview
//
// A [Scene] is a forest of [Node] values. Each node carries a TRS transform
// (translation, rotation quaternion, scale) relative to its parent and may
// reference a [Mesh]. Meshes are collections of triangle-list [Primitive]
// values with optional per-vertex normals and texture coordinates, and an
// optional [Material] using the metallic-roughness model with an optional
// embedded [Texture].
//
// The model intentionally mirrors the glTF structural vocabulary: the glTF
// and GLB encoders map it one-to-one, while the mesh-only formats (STL, OBJ)
// consume the flattened world-space form produced by [Scene.Triangles] and
// [Scene.WalkWorld].
//
// # Ownership
//
// The export layer treats scenes as externally owned, read-only input: no
// exporter constructs, validates-for-authoring, or mutates a scene. Use
// [Scene.Validate] before exporting to catch malformed geometry early.
//
// # Concurrency
//
// Scenes are plain data with no internal synchronization. Concurrent readers
// are safe; concurrent mutation is not.
package scene
