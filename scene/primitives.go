package scene

import (
	"math/rand"

	"github.com/chewxy/math32"

	"glyphlight/core"
	"glyphlight/math"
)

// starfieldSeed keeps the scatter stable across runs so the backdrop does
// not shimmer between restarts.
const starfieldSeed = 42

// CreateStarField scatters count points on a spherical shell around the
// origin. The mesh renders with DrawPoints; opacity lives on its material
// and oscillates per frame.
func CreateStarField(count int, innerRadius, outerRadius float32) *Mesh {
	rng := rand.New(rand.NewSource(starfieldSeed))

	vertices := make([]core.Vertex, 0, count)
	indices := make([]uint32, 0, count)

	for i := 0; i < count; i++ {
		// Uniform direction via normalized gaussian triple.
		dir := math.Vec3{
			X: float32(rng.NormFloat64()),
			Y: float32(rng.NormFloat64()),
			Z: float32(rng.NormFloat64()),
		}
		if dir.Length() < 1e-6 {
			dir = math.Vec3Up
		}
		dir = dir.Normalize()

		radius := innerRadius + (outerRadius-innerRadius)*rng.Float32()
		brightness := 0.5 + 0.5*rng.Float32()

		vertices = append(vertices, core.Vertex{
			Position: dir.Mul(radius),
			Normal:   dir.Negate(),
			Color:    core.Color{R: brightness, G: brightness, B: brightness, A: 1},
		})
		indices = append(indices, uint32(i))
	}

	mesh := CreateMeshFromData("StarField", vertices, indices)
	mesh.DrawMode = DrawPoints
	return mesh
}

// StarOpacity is the twinkle curve: a deterministic function of wall-clock
// milliseconds, independent of frame rate.
func StarOpacity(elapsedMillis float32) float32 {
	return 0.5 + 0.5*math32.Sin(elapsedMillis*0.001)
}
