package glyph

import (
	"fmt"

	"github.com/chewxy/math32"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"glyphlight/math"
)

// flattenSegments converts a glyph outline into closed polygonal contours.
// Font Y grows downward; the output is flipped to Y-up. Beziers become
// steps line segments each.
func flattenSegments(segs sfnt.Segments, steps int) [][]math.Vec2 {
	var contours [][]math.Vec2
	var current []math.Vec2
	var pen math.Vec2

	closeCurrent := func() {
		if len(current) >= 3 {
			// Drop an explicit closing point that repeats the start.
			last := current[len(current)-1]
			if approxEqual(last, current[0]) {
				current = current[:len(current)-1]
			}
			if len(current) >= 3 {
				contours = append(contours, current)
			}
		}
		current = nil
	}

	for _, seg := range segs {
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			closeCurrent()
			pen = fixedToVec2(seg.Args[0])
			current = append(current, pen)
		case sfnt.SegmentOpLineTo:
			pen = fixedToVec2(seg.Args[0])
			current = append(current, pen)
		case sfnt.SegmentOpQuadTo:
			ctrl := fixedToVec2(seg.Args[0])
			end := fixedToVec2(seg.Args[1])
			for i := 1; i <= steps; i++ {
				t := float32(i) / float32(steps)
				current = append(current, quadPoint(pen, ctrl, end, t))
			}
			pen = end
		case sfnt.SegmentOpCubeTo:
			c1 := fixedToVec2(seg.Args[0])
			c2 := fixedToVec2(seg.Args[1])
			end := fixedToVec2(seg.Args[2])
			for i := 1; i <= steps; i++ {
				t := float32(i) / float32(steps)
				current = append(current, cubePoint(pen, c1, c2, end, t))
			}
			pen = end
		}
	}
	closeCurrent()
	return contours
}

func fixedToVec2(p fixed.Point26_6) math.Vec2 {
	return math.Vec2{X: float32(p.X) / 64, Y: -float32(p.Y) / 64}
}

func quadPoint(p0, c, p1 math.Vec2, t float32) math.Vec2 {
	u := 1 - t
	return p0.Mul(u * u).Add(c.Mul(2 * u * t)).Add(p1.Mul(t * t))
}

func cubePoint(p0, c1, c2, p1 math.Vec2, t float32) math.Vec2 {
	u := 1 - t
	return p0.Mul(u * u * u).
		Add(c1.Mul(3 * u * u * t)).
		Add(c2.Mul(3 * u * t * t)).
		Add(p1.Mul(t * t * t))
}

func approxEqual(a, b math.Vec2) bool {
	return math32.Abs(a.X-b.X) < 1e-4 && math32.Abs(a.Y-b.Y) < 1e-4
}

// signedArea is positive for counter-clockwise contours.
func signedArea(c []math.Vec2) float32 {
	var sum float32
	for i := 0; i < len(c); i++ {
		j := (i + 1) % len(c)
		sum += c[i].X*c[j].Y - c[j].X*c[i].Y
	}
	return sum / 2
}

func reverse(c []math.Vec2) {
	for i, j := 0, len(c)-1; i < j; i, j = i+1, j-1 {
		c[i], c[j] = c[j], c[i]
	}
}

func pointInPolygon(p math.Vec2, poly []math.Vec2) bool {
	inside := false
	for i, j := 0, len(poly)-1; i < len(poly); j, i = i, i+1 {
		a, b := poly[i], poly[j]
		if (a.Y > p.Y) != (b.Y > p.Y) &&
			p.X < (b.X-a.X)*(p.Y-a.Y)/(b.Y-a.Y)+a.X {
			inside = !inside
		}
	}
	return inside
}

// glyphShape is one filled region: an outer contour plus the holes inside it.
type glyphShape struct {
	outer []math.Vec2
	holes [][]math.Vec2
}

// classifyContours splits contours into shapes by containment parity:
// a contour inside an even number of others is an outer boundary, odd
// means hole. Holes attach to the smallest outer that contains them.
func classifyContours(contours [][]math.Vec2) []glyphShape {
	n := len(contours)
	depth := make([]int, n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			if pointInPolygon(contours[i][0], contours[j]) {
				depth[i]++
			}
		}
	}

	var shapes []glyphShape
	shapeOf := make(map[int]int)
	for i := 0; i < n; i++ {
		if depth[i]%2 == 0 {
			// Winding convention: outers CCW.
			if signedArea(contours[i]) < 0 {
				reverse(contours[i])
			}
			shapeOf[i] = len(shapes)
			shapes = append(shapes, glyphShape{outer: contours[i]})
		}
	}
	for i := 0; i < n; i++ {
		if depth[i]%2 == 0 {
			continue
		}
		// Holes CW.
		if signedArea(contours[i]) > 0 {
			reverse(contours[i])
		}
		owner, best := -1, float32(math32.MaxFloat32)
		for j := 0; j < n; j++ {
			if depth[j]%2 != 0 || !pointInPolygon(contours[i][0], contours[j]) {
				continue
			}
			if a := math32.Abs(signedArea(contours[j])); a < best {
				best = a
				owner = j
			}
		}
		if owner >= 0 {
			s := shapeOf[owner]
			shapes[s].holes = append(shapes[s].holes, contours[i])
		}
	}
	return shapes
}

// mergeHoles splices every hole into the outer contour with a bridge edge,
// producing one simple polygon suitable for ear clipping. For each hole the
// rightmost hole vertex bridges to the nearest outer vertex at or beyond
// its X, which stays crossing-free for font-shaped contours.
func mergeHoles(shape glyphShape) []math.Vec2 {
	poly := append([]math.Vec2(nil), shape.outer...)

	holes := append([][]math.Vec2(nil), shape.holes...)
	// Rightmost holes first so later bridges cannot cross earlier ones.
	for i := 0; i < len(holes); i++ {
		for j := i + 1; j < len(holes); j++ {
			if maxX(holes[j]) > maxX(holes[i]) {
				holes[i], holes[j] = holes[j], holes[i]
			}
		}
	}

	for _, hole := range holes {
		hi := 0
		for i, p := range hole {
			if p.X > hole[hi].X {
				hi = i
			}
		}
		h := hole[hi]

		// Nearest outer vertex not left of the bridge point.
		oi, best := -1, float32(math32.MaxFloat32)
		for i, p := range poly {
			if p.X < h.X {
				continue
			}
			if d := p.Sub(h).Length(); d < best {
				best = d
				oi = i
			}
		}
		if oi < 0 {
			for i, p := range poly {
				if d := p.Sub(h).Length(); d < best {
					best = d
					oi = i
				}
			}
		}

		// Splice: outer up to oi, around the hole from hi, back to oi.
		merged := make([]math.Vec2, 0, len(poly)+len(hole)+2)
		merged = append(merged, poly[:oi+1]...)
		for k := 0; k <= len(hole); k++ {
			merged = append(merged, hole[(hi+k)%len(hole)])
		}
		merged = append(merged, poly[oi:]...)
		poly = merged
	}
	return poly
}

func maxX(c []math.Vec2) float32 {
	m := c[0].X
	for _, p := range c {
		if p.X > m {
			m = p.X
		}
	}
	return m
}

func cross2(o, a, b math.Vec2) float32 {
	return (a.X-o.X)*(b.Y-o.Y) - (a.Y-o.Y)*(b.X-o.X)
}

// earClip triangulates a simple CCW polygon. Triangles index into poly.
func earClip(poly []math.Vec2) ([][3]int, error) {
	n := len(poly)
	if n < 3 {
		return nil, fmt.Errorf("polygon has %d vertices", n)
	}

	indices := make([]int, n)
	for i := range indices {
		indices[i] = i
	}

	var tris [][3]int
	guard := 0
	for len(indices) > 3 {
		clipped := false
		m := len(indices)
		for i := 0; i < m; i++ {
			prev := indices[(i-1+m)%m]
			curr := indices[i]
			next := indices[(i+1)%m]

			a, b, c := poly[prev], poly[curr], poly[next]
			if cross2(a, b, c) <= 0 {
				continue // reflex or degenerate
			}

			ear := true
			for _, k := range indices {
				if k == prev || k == curr || k == next {
					continue
				}
				if triangleContains(a, b, c, poly[k]) {
					ear = false
					break
				}
			}
			if !ear {
				continue
			}

			tris = append(tris, [3]int{prev, curr, next})
			indices = append(indices[:i], indices[i+1:]...)
			clipped = true
			break
		}

		if !clipped {
			// Degenerate leftovers (collinear runs, bridge slivers):
			// clip the least-reflex vertex and move on.
			guard++
			if guard > n {
				return nil, fmt.Errorf("triangulation stalled with %d vertices left", len(indices))
			}
			m := len(indices)
			bi, bc := 0, float32(-math32.MaxFloat32)
			for i := 0; i < m; i++ {
				prev := indices[(i-1+m)%m]
				curr := indices[i]
				next := indices[(i+1)%m]
				if c := cross2(poly[prev], poly[curr], poly[next]); c > bc {
					bc = c
					bi = i
				}
			}
			prev := indices[(bi-1+m)%m]
			curr := indices[bi]
			next := indices[(bi+1)%m]
			tris = append(tris, [3]int{prev, curr, next})
			indices = append(indices[:bi], indices[bi+1:]...)
		}
	}
	tris = append(tris, [3]int{indices[0], indices[1], indices[2]})
	return tris, nil
}

func triangleContains(a, b, c, p math.Vec2) bool {
	d1 := cross2(p, a, b)
	d2 := cross2(p, b, c)
	d3 := cross2(p, c, a)
	hasNeg := d1 < 0 || d2 < 0 || d3 < 0
	hasPos := d1 > 0 || d2 > 0 || d3 > 0
	return !(hasNeg && hasPos)
}
