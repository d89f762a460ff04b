// Package sceneio provides JSON import and export for scene documents.
//
// # Overview
//
// This package serializes [scene.Scene] values to and from a simple JSON
// document format. The format is the input side of the sceneport CLI and
// HTTP service: callers describe a scene graph as JSON, and the export
// pipeline turns it into GLB, glTF, STL, or OBJ artifacts.
//
// # JSON Format
//
// A document has an optional "name" and a required "nodes" array:
//
//	{
//	  "name": "living room",
//	  "nodes": [
//	    {
//	      "name": "chair",
//	      "translation": [1, 0, 0],
//	      "rotation": [0, 0, 0, 1],
//	      "scale": [1, 1, 1],
//	      "mesh": {
//	        "primitives": [
//	          {
//	            "positions": [[0,0,0], [1,0,0], [1,1,0]],
//	            "indices": [0, 1, 2],
//	            "material": {"base_color": [0.8, 0.2, 0.2, 1.0]}
//	          }
//	        ]
//	      },
//	      "children": []
//	    }
//	  ]
//	}
//
// Transforms default to identity when omitted. Texture image bytes travel
// base64-encoded in the material's "texture.data" field.
//
// # Validation
//
// [ReadJSON] and [ImportJSON] run [scene.Scene.Validate] on the decoded
// scene and reject malformed geometry (missing positions, out-of-range
// indices, partial triangles) with wrapped errors naming the offending node.
//
// [scene.Scene]: github.com/sceneforge/sceneport/pkg/scene.Scene
package sceneio
