// Package controls maps discrete input events onto scene and pipeline
// state. Handlers run synchronously inside the event callbacks; the frame
// loop never sees partial updates.
package controls

import (
	"unicode"

	"glyphlight/math"
	"glyphlight/scene"
)

// Engine is the slice of the render engine the controller drives on
// resize.
type Engine interface {
	Resize(width, height int)
}

// Controller owns the key and resize bindings. Key matching is
// case-insensitive; every press moves exactly one step, with no animation
// in between.
type Controller struct {
	rig       *scene.Rig
	engine    Engine
	moveSpeed float32
}

func NewController(rig *scene.Rig, engine Engine, moveSpeed float32) *Controller {
	return &Controller{rig: rig, engine: engine, moveSpeed: moveSpeed}
}

// AttachRig binds the controller to a scene rig. Callbacks installed before
// the scene exists simply no-op until this is called.
func (c *Controller) AttachRig(rig *scene.Rig) {
	c.rig = rig
}

// HandleKey applies one movement step:
//
//	w/s  light cube (and its shell) Y +/-
//	a/d  camera X -/+
func (c *Controller) HandleKey(ch rune) {
	if c.rig == nil {
		return
	}
	switch unicode.ToLower(ch) {
	case 'w':
		c.rig.LightCube.Translate(math.NewVec3(0, c.moveSpeed, 0))
	case 's':
		c.rig.LightCube.Translate(math.NewVec3(0, -c.moveSpeed, 0))
	case 'a':
		c.rig.Camera.Translate(math.NewVec3(-c.moveSpeed, 0, 0))
	case 'd':
		c.rig.Camera.Translate(math.NewVec3(c.moveSpeed, 0, 0))
	}
}

// HandleResize reconfigures the camera projection and every pipeline
// buffer before the next frame. A resize arriving before the engine or
// scene exists is a no-op, not a fault.
func (c *Controller) HandleResize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	if c.rig != nil && c.rig.Camera != nil {
		c.rig.Camera.UpdateAspectRatio(float32(width), float32(height))
	}
	if c.engine != nil {
		c.engine.Resize(width, height)
	}
}
