package scene

import (
	"glyphlight/core"
	"glyphlight/math"
	"glyphlight/shading"
)

// Material describes surface appearance for a mesh. Lit materials carry
// their own copy of the point-light position; the frame updater refreshes
// it every frame before rendering. A stale copy shades incorrectly but is
// never a fault.
type Material struct {
	Name string

	ShadingKind shading.Kind
	BaseColor   core.Color

	LightPosition    math.Vec3
	LightColor       core.Color
	LightIntensity   float32
	LightRange       float32 // falloff cutoff; 0 = unlimited
	AmbientIntensity float32

	// Unlit skips lighting entirely and outputs BaseColor. HDR values
	// above 1 push the surface over the bloom threshold.
	Unlit bool

	// Opacity below 1 renders the surface translucent; Additive selects
	// additive blending (glow shell, stars) instead of alpha blending.
	Opacity  float32
	Additive bool
}

// DefaultMaterial returns a plain white plastic material.
func DefaultMaterial() *Material {
	return &Material{
		Name:             "Default",
		ShadingKind:      shading.KindPlastic,
		BaseColor:        core.ColorWhite,
		LightColor:       core.ColorWhite,
		LightIntensity:   1,
		AmbientIntensity: 0.232,
		Opacity:          1,
	}
}

// NewLitMaterial creates one of the two lit materials. No validation is
// performed; negative intensities darken rather than fail.
func NewLitMaterial(name string, kind shading.Kind, baseColor core.Color, lightIntensity, ambientIntensity float32) *Material {
	return &Material{
		Name:             name,
		ShadingKind:      kind,
		BaseColor:        baseColor,
		LightColor:       core.ColorWhite,
		LightIntensity:   lightIntensity,
		AmbientIntensity: ambientIntensity,
		Opacity:          1,
	}
}

// NewGlowMaterial creates an unlit material. Color components above 1 are
// intentional; they feed the bloom bright-pass.
func NewGlowMaterial(name string, color core.Color) *Material {
	return &Material{
		Name:      name,
		BaseColor: color,
		Unlit:     true,
		Opacity:   1,
	}
}
