package glyph

import (
	"fmt"

	"glyphlight/core"
	"glyphlight/math"
	"glyphlight/scene"
)

// extrudeContours builds a solid mesh from flattened glyph contours:
// triangulated front and back caps plus side walls along every contour.
// The result is scaled to the requested height and centered on the origin.
func extrudeContours(name string, contours [][]math.Vec2, height, depth float32) (*scene.Mesh, error) {
	normalizeContours(contours, height)

	shapes := classifyContours(contours)
	if len(shapes) == 0 {
		return nil, fmt.Errorf("no filled regions in outline")
	}

	half := depth / 2
	var vertices []core.Vertex
	var indices []uint32

	addVertex := func(pos math.Vec3, normal math.Vec3) uint32 {
		vertices = append(vertices, core.Vertex{
			Position: pos,
			Normal:   normal,
			Color:    core.ColorWhite,
		})
		return uint32(len(vertices) - 1)
	}

	for _, shape := range shapes {
		poly := mergeHoles(shape)
		tris, err := earClip(poly)
		if err != nil {
			return nil, err
		}

		// Front cap (+Z) keeps the CCW winding; back cap reverses it.
		front := make([]uint32, len(poly))
		back := make([]uint32, len(poly))
		for i, p := range poly {
			front[i] = addVertex(math.NewVec3(p.X, p.Y, half), math.Vec3Front)
			back[i] = addVertex(math.NewVec3(p.X, p.Y, -half), math.Vec3Back)
		}
		for _, t := range tris {
			indices = append(indices, front[t[0]], front[t[1]], front[t[2]])
			indices = append(indices, back[t[2]], back[t[1]], back[t[0]])
		}

		// Side walls. Outers run CCW and holes CW, so rotating each edge
		// direction by -90 degrees always points outward.
		walls := append([][]math.Vec2{shape.outer}, shape.holes...)
		for _, contour := range walls {
			for i := 0; i < len(contour); i++ {
				a := contour[i]
				b := contour[(i+1)%len(contour)]
				edge := b.Sub(a)
				if edge.Length() < 1e-7 {
					continue
				}
				n2 := math.Vec2{X: edge.Y, Y: -edge.X}.Normalize()
				n := math.NewVec3(n2.X, n2.Y, 0)

				aF := addVertex(math.NewVec3(a.X, a.Y, half), n)
				bF := addVertex(math.NewVec3(b.X, b.Y, half), n)
				bB := addVertex(math.NewVec3(b.X, b.Y, -half), n)
				aB := addVertex(math.NewVec3(a.X, a.Y, -half), n)

				indices = append(indices, aF, bB, bF)
				indices = append(indices, aF, aB, bB)
			}
		}
	}

	return scene.CreateMeshFromData(name, vertices, indices), nil
}

// normalizeContours rescales the outline to the given height and centers
// it on the origin, in place.
func normalizeContours(contours [][]math.Vec2, height float32) {
	minX, minY := contours[0][0].X, contours[0][0].Y
	maxX, maxY := minX, minY
	for _, c := range contours {
		for _, p := range c {
			if p.X < minX {
				minX = p.X
			}
			if p.Y < minY {
				minY = p.Y
			}
			if p.X > maxX {
				maxX = p.X
			}
			if p.Y > maxY {
				maxY = p.Y
			}
		}
	}

	extentY := maxY - minY
	if extentY <= 0 {
		extentY = 1
	}
	scale := height / extentY
	cx := (minX + maxX) / 2
	cy := (minY + maxY) / 2

	for _, c := range contours {
		for i, p := range c {
			c[i] = math.Vec2{X: (p.X - cx) * scale, Y: (p.Y - cy) * scale}
		}
	}
}
