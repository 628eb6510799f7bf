package scene

import (
	"time"

	"glyphlight/math"
)

// rotationStep is applied per frame, not per unit time; low frame rates
// slow the spin. The twinkle below is wall-clock based and unaffected.
const defaultRotationStep = 0.01

// FrameUpdater advances per-frame scene state: star twinkle, cube spin,
// and the light-position broadcast into every registered lit material.
type FrameUpdater struct {
	rig          *Rig
	rotationStep float32

	// Euler angles accumulate here; the node quaternion is rebuilt from
	// them every frame.
	pitch float32
	yaw   float32
}

func NewFrameUpdater(rig *Rig, rotationStep float32) *FrameUpdater {
	if rotationStep == 0 {
		rotationStep = defaultRotationStep
	}
	return &FrameUpdater{rig: rig, rotationStep: rotationStep}
}

// Advance runs one frame of scene animation. elapsed is wall-clock time
// since startup. Calling it twice with the same elapsed value leaves the
// broadcast state identical (the rotation still accrues one step per call).
func (u *FrameUpdater) Advance(elapsed time.Duration) {
	u.rig.StarMaterial.Opacity = StarOpacity(float32(elapsed.Milliseconds()))

	u.pitch += u.rotationStep
	u.yaw += u.rotationStep
	u.rig.LightCube.SetRotation(math.QuaternionFromEuler(u.pitch, u.yaw, 0))

	u.Broadcast()
}

// Broadcast copies the cube's current world position into the scene light
// and every registered material. Each material holds its own copy; a copy
// that misses a frame shades stale but never faults.
func (u *FrameUpdater) Broadcast() {
	pos := u.rig.LightCube.GetWorldPosition()
	u.rig.Light.Position = pos
	for _, m := range u.rig.LitMaterials {
		m.LightPosition = pos
	}
}
