package glyph

import (
	"fmt"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"glyphlight/core"
	"glyphlight/math"
	"glyphlight/scene"
)

// LoadMeshFile reads a pre-modelled glyph mesh from a .glb or .gltf file.
// All primitives of every mesh in the document are merged into a single
// scene.Mesh; materials and textures in the file are ignored, since the
// scene builder assigns the lit material.
func LoadMeshFile(path string) (*scene.Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("gltf open %q: %w", path, err)
	}

	var vertices []core.Vertex
	var indices []uint32

	for mi, gm := range doc.Meshes {
		for pi, prim := range gm.Primitives {
			base := uint32(len(vertices))

			posIdx, ok := prim.Attributes["POSITION"]
			if !ok {
				return nil, fmt.Errorf("gltf %q: mesh %d prim %d has no POSITION", path, mi, pi)
			}
			positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
			if err != nil {
				return nil, fmt.Errorf("gltf %q: positions: %w", path, err)
			}

			var normals [][3]float32
			if idx, ok := prim.Attributes["NORMAL"]; ok {
				normals, _ = modeler.ReadNormal(doc, doc.Accessors[idx], nil)
			}
			var uvs [][2]float32
			if idx, ok := prim.Attributes["TEXCOORD_0"]; ok {
				uvs, _ = modeler.ReadTextureCoord(doc, doc.Accessors[idx], nil)
			}

			for i, p := range positions {
				v := core.Vertex{
					Position: math.Vec3{X: p[0], Y: p[1], Z: p[2]},
					Normal:   math.Vec3Front,
					Color:    core.ColorWhite,
				}
				if i < len(normals) {
					n := normals[i]
					v.Normal = math.Vec3{X: n[0], Y: n[1], Z: n[2]}
				}
				if i < len(uvs) {
					v.UV = math.Vec2{X: uvs[i][0], Y: uvs[i][1]}
				}
				vertices = append(vertices, v)
			}

			if prim.Indices != nil {
				primIndices, err := modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
				if err != nil {
					return nil, fmt.Errorf("gltf %q: indices: %w", path, err)
				}
				for _, idx := range primIndices {
					indices = append(indices, base+idx)
				}
			} else {
				for i := range positions {
					indices = append(indices, base+uint32(i))
				}
			}
		}
	}

	if len(vertices) == 0 {
		return nil, fmt.Errorf("gltf %q contains no geometry", path)
	}
	return scene.CreateMeshFromData("GlyphFile", vertices, indices), nil
}
