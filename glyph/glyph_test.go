package glyph

import (
	"path/filepath"
	"testing"

	"github.com/chewxy/math32"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"glyphlight/math"
)

func square(side float32) []math.Vec2 {
	h := side / 2
	return []math.Vec2{{X: -h, Y: -h}, {X: h, Y: -h}, {X: h, Y: h}, {X: -h, Y: h}}
}

func triangleArea2(a, b, c math.Vec2) float32 {
	return math32.Abs(cross2(a, b, c)) / 2
}

func TestSignedArea(t *testing.T) {
	ccw := square(2)
	assert.InDelta(t, 4, signedArea(ccw), 1e-5)

	cw := append([]math.Vec2(nil), ccw...)
	reverse(cw)
	assert.InDelta(t, -4, signedArea(cw), 1e-5)
}

func TestEarClipSquare(t *testing.T) {
	poly := square(2)
	tris, err := earClip(poly)
	require.NoError(t, err)
	require.Len(t, tris, 2)

	var area float32
	for _, tri := range tris {
		area += triangleArea2(poly[tri[0]], poly[tri[1]], poly[tri[2]])
	}
	assert.InDelta(t, 4, area, 1e-4)
}

func TestEarClipConcave(t *testing.T) {
	// L shape, CCW, area 3.
	poly := []math.Vec2{
		{X: 0, Y: 0}, {X: 2, Y: 0}, {X: 2, Y: 1},
		{X: 1, Y: 1}, {X: 1, Y: 2}, {X: 0, Y: 2},
	}
	tris, err := earClip(poly)
	require.NoError(t, err)
	require.Len(t, tris, len(poly)-2)

	var area float32
	for _, tri := range tris {
		area += triangleArea2(poly[tri[0]], poly[tri[1]], poly[tri[2]])
	}
	assert.InDelta(t, 3, area, 1e-4)
}

func TestClassifyAndMergeHole(t *testing.T) {
	outer := square(4)
	hole := square(2)
	reverse(hole) // holes arrive in either winding; classify fixes it

	shapes := classifyContours([][]math.Vec2{outer, hole})
	require.Len(t, shapes, 1)
	require.Len(t, shapes[0].holes, 1)
	assert.Greater(t, signedArea(shapes[0].outer), float32(0), "outer normalized to CCW")
	assert.Less(t, signedArea(shapes[0].holes[0]), float32(0), "hole normalized to CW")

	poly := mergeHoles(shapes[0])
	tris, err := earClip(poly)
	require.NoError(t, err)

	// Ring area = 16 - 4.
	var area float32
	for _, tri := range tris {
		area += triangleArea2(poly[tri[0]], poly[tri[1]], poly[tri[2]])
	}
	assert.InDelta(t, 12, area, 1e-3)
}

func TestClassifyTwoSeparateShapes(t *testing.T) {
	left := []math.Vec2{{X: -3, Y: -1}, {X: -1, Y: -1}, {X: -1, Y: 1}, {X: -3, Y: 1}}
	right := []math.Vec2{{X: 1, Y: -1}, {X: 3, Y: -1}, {X: 3, Y: 1}, {X: 1, Y: 1}}

	shapes := classifyContours([][]math.Vec2{left, right})
	assert.Len(t, shapes, 2)
	for _, s := range shapes {
		assert.Empty(t, s.holes)
	}
}

func TestExtrudeSquare(t *testing.T) {
	contours := [][]math.Vec2{square(2)}
	mesh, err := extrudeContours("test", contours, 1.0, 0.2)
	require.NoError(t, err)
	require.NotEmpty(t, mesh.Vertices)
	require.Zero(t, len(mesh.Indices)%3)

	minZ, maxZ := mesh.Vertices[0].Position.Z, mesh.Vertices[0].Position.Z
	minY, maxY := mesh.Vertices[0].Position.Y, mesh.Vertices[0].Position.Y
	for _, v := range mesh.Vertices {
		minZ = math32.Min(minZ, v.Position.Z)
		maxZ = math32.Max(maxZ, v.Position.Z)
		minY = math32.Min(minY, v.Position.Y)
		maxY = math32.Max(maxY, v.Position.Y)
	}
	assert.InDelta(t, 0.2, maxZ-minZ, 1e-5, "extrusion depth")
	assert.InDelta(t, 1.0, maxY-minY, 1e-5, "normalized height")

	for _, v := range mesh.Vertices {
		assert.InDelta(t, 1, v.Normal.Length(), 1e-4, "unit normals")
	}
}

func TestEmbeddedTypefaceGlyphMesh(t *testing.T) {
	face, err := Load("")
	require.NoError(t, err)

	for _, r := range []rune{'K', '7', 'O', 'B'} {
		mesh, err := face.GlyphMesh(r, DefaultMeshOptions())
		require.NoError(t, err, "glyph %c", r)
		assert.NotEmpty(t, mesh.Vertices, "glyph %c", r)
		assert.Zero(t, len(mesh.Indices)%3, "glyph %c", r)

		minY, maxY := mesh.Vertices[0].Position.Y, mesh.Vertices[0].Position.Y
		for _, v := range mesh.Vertices {
			minY = math32.Min(minY, v.Position.Y)
			maxY = math32.Max(maxY, v.Position.Y)
		}
		assert.InDelta(t, 1.0, maxY-minY, 1e-3, "glyph %c height", r)
	}
}

func TestGlyphMeshMissingGlyph(t *testing.T) {
	face, err := Load("")
	require.NoError(t, err)

	_, err = face.GlyphMesh('', DefaultMeshOptions())
	assert.Error(t, err, "private-use rune has no outline")
}

func TestLoadMissingFontFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.ttf"))
	assert.Error(t, err)
}

func TestGenerateAsync(t *testing.T) {
	face, err := Load("")
	require.NoError(t, err)

	res := <-GenerateAsync(face, 'A', DefaultMeshOptions())
	require.NoError(t, res.Err)
	assert.NotEmpty(t, res.Mesh.Vertices)
}

func TestLoadMeshFileRoundTrip(t *testing.T) {
	doc := gltf.NewDocument()
	positions := [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}
	normals := [][3]float32{{0, 0, 1}, {0, 0, 1}, {0, 0, 1}}
	posAcc := modeler.WritePosition(doc, positions)
	normAcc := modeler.WriteNormal(doc, normals)
	idxAcc := modeler.WriteIndices(doc, []uint32{0, 1, 2})

	prim := &gltf.Primitive{Indices: gltf.Index(idxAcc)}
	prim.Attributes = map[string]int{"POSITION": posAcc, "NORMAL": normAcc}
	doc.Meshes = append(doc.Meshes, &gltf.Mesh{Name: "tri", Primitives: []*gltf.Primitive{prim}})

	path := filepath.Join(t.TempDir(), "tri.gltf")
	require.NoError(t, gltf.Save(doc, path))

	mesh, err := LoadMeshFile(path)
	require.NoError(t, err)
	require.Len(t, mesh.Vertices, 3)
	require.Len(t, mesh.Indices, 3)
	assert.Equal(t, math.NewVec3(1, 0, 0), mesh.Vertices[1].Position)
	assert.Equal(t, math.Vec3Front, mesh.Vertices[0].Normal)
}

func TestLoadMeshFileMissing(t *testing.T) {
	_, err := LoadMeshFile(filepath.Join(t.TempDir(), "absent.glb"))
	assert.Error(t, err)
}
