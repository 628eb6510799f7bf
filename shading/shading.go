// Package shading evaluates the two point-light shading models on the CPU,
// mirroring the fragment shaders in internal/opengl. The renderer never calls
// into this package on the frame path; it exists so lighting behavior can be
// exercised directly in tests and tools.
package shading

import (
	"github.com/chewxy/math32"

	"glyphlight/core"
	"glyphlight/math"
)

type Kind int

const (
	// KindPlastic is half-vector Blinn-Phong with a fixed white specular.
	KindPlastic Kind = iota
	// KindMetal is reflection-vector Phong tinted by the base color.
	KindMetal
)

func (k Kind) String() string {
	switch k {
	case KindPlastic:
		return "plastic"
	case KindMetal:
		return "metal"
	default:
		return "unknown"
	}
}

const (
	attenuationLinear    = 0.09
	attenuationQuadratic = 0.032

	plasticSpecStrength = 0.5
	plasticShininess    = 32

	metalShininess = 128
	metalSpecScale = 2.0
)

// Input is one shaded point: everything the fragment shader sees.
type Input struct {
	Normal     math.Vec3
	SurfacePos math.Vec3
	ViewPos    math.Vec3
	LightPos   math.Vec3

	BaseColor  core.Color
	LightColor core.Color

	Intensity float32
	Ambient   float32

	// Range is the light falloff cutoff; 0 means unlimited.
	Range float32
}

// Attenuation returns the distance falloff 1/(1 + 0.09d + 0.032d²),
// clamped to [0,1].
func Attenuation(d float32) float32 {
	a := 1.0 / (1.0 + attenuationLinear*d + attenuationQuadratic*d*d)
	return clamp01(a)
}

// Evaluate shades a single point. Degenerate normals or a light sitting
// exactly on the surface collapse to the ambient term; the result is never
// NaN. Components are clamped at zero below and left unbounded above.
func Evaluate(kind Kind, in Input) core.Color {
	ambient := core.Color{
		R: in.Ambient * in.BaseColor.R,
		G: in.Ambient * in.BaseColor.G,
		B: in.Ambient * in.BaseColor.B,
		A: 1,
	}

	normal, ok := safeNormalize(in.Normal)
	if !ok {
		return clampColor(ambient)
	}

	toLight := in.LightPos.Sub(in.SurfacePos)
	dist := toLight.Length()
	lightDir, ok := safeNormalize(toLight)
	if !ok {
		return clampColor(ambient)
	}

	atten := Attenuation(dist)
	if in.Range > 0 && dist > in.Range {
		atten = 0
	}

	diff := math32.Max(normal.Dot(lightDir), 0)
	diffScale := diff * in.Intensity * atten
	diffuse := core.Color{
		R: in.BaseColor.R * in.LightColor.R * diffScale,
		G: in.BaseColor.G * in.LightColor.G * diffScale,
		B: in.BaseColor.B * in.LightColor.B * diffScale,
	}

	viewDir, _ := safeNormalize(in.ViewPos.Sub(in.SurfacePos))

	var specular core.Color
	switch kind {
	case KindPlastic:
		half, ok := safeNormalize(lightDir.Add(viewDir))
		var s float32
		if ok {
			s = math32.Pow(math32.Max(normal.Dot(half), 0), plasticShininess)
		}
		scale := plasticSpecStrength * s * in.Intensity * atten
		specular = core.Color{
			R: in.LightColor.R * scale,
			G: in.LightColor.G * scale,
			B: in.LightColor.B * scale,
		}
	case KindMetal:
		reflectDir := normal.Mul(2 * normal.Dot(lightDir)).Sub(lightDir)
		s := math32.Pow(math32.Max(viewDir.Dot(reflectDir), 0), metalShininess)
		scale := s * in.Intensity * atten * metalSpecScale
		specular = core.Color{
			R: in.BaseColor.R * in.LightColor.R * scale,
			G: in.BaseColor.G * in.LightColor.G * scale,
			B: in.BaseColor.B * in.LightColor.B * scale,
		}
	}

	return clampColor(core.Color{
		R: ambient.R + diffuse.R + specular.R,
		G: ambient.G + diffuse.G + specular.G,
		B: ambient.B + diffuse.B + specular.B,
		A: 1,
	})
}

// safeNormalize reports false for vectors too short to carry a direction.
func safeNormalize(v math.Vec3) (math.Vec3, bool) {
	length := v.Length()
	if length < 1e-8 || math32.IsNaN(length) {
		return math.Vec3Zero, false
	}
	return v.Mul(1.0 / length), true
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func clampColor(c core.Color) core.Color {
	return core.Color{
		R: math32.Max(c.R, 0),
		G: math32.Max(c.G, 0),
		B: math32.Max(c.B, 0),
		A: 1,
	}
}
