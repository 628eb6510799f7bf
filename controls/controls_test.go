package controls

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"glyphlight/core"
	"glyphlight/scene"
)

type recordingEngine struct {
	width, height int
	resizes       int
}

func (e *recordingEngine) Resize(width, height int) {
	e.width = width
	e.height = height
	e.resizes++
}

func newTestRig(t *testing.T) *scene.Rig {
	t.Helper()
	cfg := core.DefaultConfig()
	_, rig := scene.Build(cfg, scene.CreateCube(1), scene.CreateCube(1))
	require.NotNil(t, rig)
	return rig
}

func TestThreePressesOfWRaiseCubeToPointThree(t *testing.T) {
	rig := newTestRig(t)
	c := NewController(rig, nil, 0.1)

	for i := 0; i < 3; i++ {
		c.HandleKey('w')
	}
	assert.InDelta(t, 0.3, rig.LightCube.Transform.Position.Y, 1e-5)
	assert.InDelta(t, 0.3, rig.Shell.GetWorldPosition().Y, 1e-5, "shell follows the cube")
}

func TestSLowersCube(t *testing.T) {
	rig := newTestRig(t)
	c := NewController(rig, nil, 0.1)

	c.HandleKey('s')
	assert.InDelta(t, -0.1, rig.LightCube.Transform.Position.Y, 1e-5)
}

func TestAMovesCameraLeft(t *testing.T) {
	rig := newTestRig(t)
	c := NewController(rig, nil, 0.1)

	c.HandleKey('a')
	assert.InDelta(t, -0.1, rig.Camera.Position.X, 1e-5)

	c.HandleKey('d')
	c.HandleKey('d')
	assert.InDelta(t, 0.1, rig.Camera.Position.X, 1e-5)
}

func TestKeysAreCaseInsensitive(t *testing.T) {
	rig := newTestRig(t)
	c := NewController(rig, nil, 0.1)

	c.HandleKey('W')
	c.HandleKey('A')
	assert.InDelta(t, 0.1, rig.LightCube.Transform.Position.Y, 1e-5)
	assert.InDelta(t, -0.1, rig.Camera.Position.X, 1e-5)
}

func TestUnboundKeysDoNothing(t *testing.T) {
	rig := newTestRig(t)
	c := NewController(rig, nil, 0.1)

	startY := rig.LightCube.Transform.Position.Y
	startX := rig.Camera.Position.X
	for _, ch := range "qxz123 " {
		c.HandleKey(ch)
	}
	assert.Equal(t, startY, rig.LightCube.Transform.Position.Y)
	assert.Equal(t, startX, rig.Camera.Position.X)
}

func TestResizeUpdatesCameraAndEngine(t *testing.T) {
	rig := newTestRig(t)
	engine := &recordingEngine{}
	c := NewController(rig, engine, 0.1)

	c.HandleResize(800, 600)
	assert.InDelta(t, 800.0/600.0, rig.Camera.AspectRatio, 1e-5)

	c.HandleResize(1920, 1080)
	assert.InDelta(t, 1920.0/1080.0, rig.Camera.AspectRatio, 1e-5)
	assert.Equal(t, 1920, engine.width)
	assert.Equal(t, 1080, engine.height)
	assert.Equal(t, 2, engine.resizes)
}

func TestResizeBeforeInitIsNoOp(t *testing.T) {
	c := NewController(nil, nil, 0.1)
	assert.NotPanics(t, func() {
		c.HandleResize(1920, 1080)
		c.HandleKey('w')
	})
}

func TestAttachRigEnablesKeysAfterTheFact(t *testing.T) {
	c := NewController(nil, nil, 0.1)
	c.HandleKey('w') // no rig yet

	rig := newTestRig(t)
	c.AttachRig(rig)
	c.HandleKey('w')
	assert.InDelta(t, 0.1, rig.LightCube.Transform.Position.Y, 1e-5)
}

func TestResizeWithZeroExtentIgnored(t *testing.T) {
	rig := newTestRig(t)
	engine := &recordingEngine{}
	c := NewController(rig, engine, 0.1)

	before := rig.Camera.AspectRatio
	c.HandleResize(0, 0)
	assert.Equal(t, before, rig.Camera.AspectRatio)
	assert.Zero(t, engine.resizes)
}
