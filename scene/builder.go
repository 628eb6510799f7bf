package scene

import (
	"github.com/chewxy/math32"

	"glyphlight/core"
	"glyphlight/math"
	"glyphlight/shading"
)

const (
	letterX = -2.0
	digitX  = 2.0

	lightZ = -1.0

	innerCubeSide = 0.3
	outerCubeSide = 0.4

	// The shell and stars blend additively; the shell stays faint so the
	// bloom pass supplies most of the glow.
	shellOpacity = 0.35

	starInnerRadius = 20.0
	starOuterRadius = 50.0

	// Inner cube color is pushed past the bloom threshold.
	glowBoost = 2.0
)

// Rig exposes the handles the frame updater and input controller mutate.
// Everything else stays inside the scene graph.
type Rig struct {
	LightCube *Node // owner of the light position; the shell is its child
	Shell     *Node
	Camera    *Camera
	Light     *PointLight

	StarMaterial *Material
	LitMaterials []*Material
}

// Build assembles the demo scene: letter and digit flanking the
// light-emitting cube, starfield backdrop, one point light. The glyph
// meshes come from the caller; Build does no mesh generation itself.
func Build(cfg core.Config, letterMesh, digitMesh *Mesh) (*Scene, *Rig) {
	s := NewScene()
	s.Background = cfg.BackgroundColor

	aspect := float32(cfg.WindowWidth) / float32(cfg.WindowHeight)
	camera := NewCamera(degToRad(cfg.CameraFOV), aspect, 0.1, 1000)
	camera.SetPosition(math.NewVec3(0, 0, cfg.CameraZ))
	s.SetCamera(camera)

	lightPos := math.NewVec3(0, 0, lightZ)
	light := &PointLight{
		Position:  lightPos,
		Color:     cfg.LightColor,
		Intensity: cfg.LightIntensity,
		Range:     cfg.LightRange,
	}
	s.Light = light

	letterMat := NewLitMaterial("LetterPlastic", shading.KindPlastic,
		cfg.LetterColor, cfg.LightIntensity, cfg.AmbientIntensity)
	digitMat := NewLitMaterial("DigitMetal", shading.KindMetal,
		cfg.DigitColor, cfg.LightIntensity, cfg.AmbientIntensity)
	for _, m := range []*Material{letterMat, digitMat} {
		m.LightColor = cfg.LightColor
		m.LightRange = cfg.LightRange
		m.LightPosition = lightPos
		s.RegisterLitMaterial(m)
	}

	letterMesh.Material = letterMat
	letterNode := NewNode("Letter")
	letterNode.Mesh = letterMesh
	letterNode.SetPosition(math.NewVec3(letterX, 0, 0))
	s.AddNode(letterNode)

	digitMesh.Material = digitMat
	digitNode := NewNode("Digit")
	digitNode.Mesh = digitMesh
	digitNode.SetPosition(math.NewVec3(digitX, 0, 0))
	s.AddNode(digitNode)

	innerMesh := CreateCube(innerCubeSide)
	innerMesh.Material = NewGlowMaterial("LightCore", core.Color{
		R: cfg.LightColor.R * glowBoost,
		G: cfg.LightColor.G * glowBoost,
		B: cfg.LightColor.B * glowBoost,
		A: 1,
	})
	cubeNode := NewNode("LightCube")
	cubeNode.Mesh = innerMesh
	cubeNode.SetPosition(lightPos)
	s.AddNode(cubeNode)

	// The shell is a child with an identity local transform, so it stays
	// coincident with the inner cube by construction.
	shellMesh := CreateCube(outerCubeSide)
	shellMat := NewGlowMaterial("LightShell", cfg.LightColor)
	shellMat.Opacity = shellOpacity
	shellMat.Additive = true
	shellMesh.Material = shellMat
	shellNode := NewNode("LightShell")
	shellNode.Mesh = shellMesh
	cubeNode.AddChild(shellNode)

	starMesh := CreateStarField(cfg.StarCount, starInnerRadius, starOuterRadius)
	starMat := NewGlowMaterial("Stars", core.ColorWhite)
	starMat.Additive = true
	starMat.Opacity = 1
	starMesh.Material = starMat
	starNode := NewNode("StarField")
	starNode.Mesh = starMesh
	s.AddNode(starNode)

	rig := &Rig{
		LightCube:    cubeNode,
		Shell:        shellNode,
		Camera:       camera,
		Light:        light,
		StarMaterial: starMat,
		LitMaterials: s.LitMaterials,
	}
	return s, rig
}

func degToRad(deg float32) float32 {
	return deg * math32.Pi / 180
}
