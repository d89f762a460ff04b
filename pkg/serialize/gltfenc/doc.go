// Package gltfenc serializes scene graphs into glTF 2.0 documents.
//
// The encoder maps the [scene] model one-to-one onto glTF: nodes keep their
// TRS transforms and hierarchy, primitives become accessor-backed glTF
// primitives, and materials use the metallic-roughness model with optional
// embedded base color textures.
//
// Two container forms are supported, selected via [Options.Binary]:
//
//   - GLB: the binary container, geometry in the BIN chunk
//   - glTF: pretty-printed JSON text with buffers embedded as data URIs
//
// Textures exceeding [Options.MaxTextureSize] in either dimension are
// downscaled before embedding.
//
// Serialization is backed by github.com/qmuntal/gltf and its modeler helper.
//
// [scene]: github.com/sceneforge/sceneport/pkg/scene
package gltfenc
