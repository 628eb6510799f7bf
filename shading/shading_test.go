package shading

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"glyphlight/core"
	"glyphlight/math"
)

func genericInput() Input {
	return Input{
		Normal:     math.NewVec3(0, 0, 1),
		SurfacePos: math.NewVec3(0.2, 0.1, 0),
		ViewPos:    math.NewVec3(0.5, 0.8, 3),
		LightPos:   math.NewVec3(1, 1, 2),
		BaseColor:  core.Color{R: 0.8, G: 0.6, B: 0.2, A: 1},
		LightColor: core.ColorWhite,
		Intensity:  1,
		Ambient:    0.232,
	}
}

func TestAttenuationBounds(t *testing.T) {
	for _, d := range []float32{0, 0.01, 0.5, 1, 2, 5, 10, 100, 1e6} {
		a := Attenuation(d)
		assert.Greater(t, a, float32(0), "d=%f", d)
		assert.LessOrEqual(t, a, float32(1), "d=%f", d)
	}
}

func TestAttenuationMonotone(t *testing.T) {
	prev := Attenuation(0)
	for d := float32(0.1); d < 50; d += 0.1 {
		a := Attenuation(d)
		assert.LessOrEqual(t, a, prev, "attenuation increased at d=%f", d)
		prev = a
	}
}

func TestAttenuationAtZeroDistance(t *testing.T) {
	a := Attenuation(0)
	assert.Equal(t, float32(1), a)
	assert.False(t, math32.IsNaN(a))
}

func TestPlasticAndMetalDiffer(t *testing.T) {
	in := genericInput()
	plastic := Evaluate(KindPlastic, in)
	metal := Evaluate(KindMetal, in)
	assert.NotEqual(t, plastic, metal, "the two models must not collapse into one")
}

func TestDegenerateNormalYieldsAmbientOnly(t *testing.T) {
	in := genericInput()
	in.Normal = math.Vec3Zero
	out := Evaluate(KindPlastic, in)

	want := core.Color{
		R: in.Ambient * in.BaseColor.R,
		G: in.Ambient * in.BaseColor.G,
		B: in.Ambient * in.BaseColor.B,
		A: 1,
	}
	assert.InDelta(t, want.R, out.R, 1e-6)
	assert.InDelta(t, want.G, out.G, 1e-6)
	assert.InDelta(t, want.B, out.B, 1e-6)
}

func TestLightOnSurfaceYieldsAmbientOnly(t *testing.T) {
	in := genericInput()
	in.LightPos = in.SurfacePos
	for _, kind := range []Kind{KindPlastic, KindMetal} {
		out := Evaluate(kind, in)
		assert.False(t, math32.IsNaN(out.R) || math32.IsNaN(out.G) || math32.IsNaN(out.B),
			"%s produced NaN", kind)
		assert.InDelta(t, in.Ambient*in.BaseColor.R, out.R, 1e-6)
	}
}

func TestRangeCutoff(t *testing.T) {
	in := genericInput()
	in.LightPos = math.NewVec3(0, 0, 10)
	in.SurfacePos = math.Vec3Zero
	in.Normal = math.NewVec3(0, 0, 1)

	in.Range = 0
	unlimited := Evaluate(KindPlastic, in)
	in.Range = 5
	cut := Evaluate(KindPlastic, in)

	ambientR := in.Ambient * in.BaseColor.R
	assert.Greater(t, unlimited.R, ambientR, "unlimited range should light the surface")
	assert.InDelta(t, ambientR, cut.R, 1e-6, "beyond range only ambient remains")
}

func TestEndToEndLetterShading(t *testing.T) {
	in := Input{
		Normal:     math.NewVec3(0, 0, 1),
		SurfacePos: math.NewVec3(0, 0, -0.001),
		ViewPos:    math.NewVec3(0, 0, 5),
		LightPos:   math.Vec3Zero,
		BaseColor:  core.Color{R: 1, G: 1, B: 0, A: 1},
		LightColor: core.ColorWhite,
		Intensity:  10,
		Ambient:    0.656,
	}

	out := Evaluate(KindPlastic, in)
	require.False(t, math32.IsNaN(out.R) || math32.IsNaN(out.G) || math32.IsNaN(out.B))

	// Ambient floor is 0.656 x (1,1,0); diffuse and specular add on top.
	assert.Greater(t, out.R, float32(0.656))
	assert.Greater(t, out.G, float32(0.656))
	assert.GreaterOrEqual(t, out.B, float32(0))
	assert.NotEqual(t, core.Color{A: 1}, out, "output must not be all-zero")
}

func TestOutputNeverNegative(t *testing.T) {
	in := genericInput()
	in.Intensity = -4
	for _, kind := range []Kind{KindPlastic, KindMetal} {
		out := Evaluate(kind, in)
		assert.GreaterOrEqual(t, out.R, float32(0), "%s", kind)
		assert.GreaterOrEqual(t, out.G, float32(0), "%s", kind)
		assert.GreaterOrEqual(t, out.B, float32(0), "%s", kind)
	}
}

func TestMetalSpecularIsTinted(t *testing.T) {
	// Surface aligned for a strong reflection straight at the viewer.
	in := Input{
		Normal:     math.NewVec3(0, 0, 1),
		SurfacePos: math.Vec3Zero,
		ViewPos:    math.NewVec3(0, 0, 4),
		LightPos:   math.NewVec3(0, 0, 2),
		BaseColor:  core.Color{R: 1, G: 0, B: 0, A: 1},
		LightColor: core.ColorWhite,
		Intensity:  5,
		Ambient:    0,
	}
	out := Evaluate(KindMetal, in)

	// A red metal cannot produce green or blue specular.
	assert.Greater(t, out.R, float32(0))
	assert.InDelta(t, 0, out.G, 1e-6)
	assert.InDelta(t, 0, out.B, 1e-6)
}
