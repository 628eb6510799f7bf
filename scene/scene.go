package scene

import (
	"glyphlight/core"
	"glyphlight/math"
)

// Scene manages the node graph, the active camera, and the single point
// light. Lit materials are registered explicitly; nothing walks the graph
// looking for them.
type Scene struct {
	Root       *Node
	Camera     *Camera
	Light      *PointLight
	Background core.Color

	// LitMaterials is the explicit registry the frame updater broadcasts
	// the light position into.
	LitMaterials []*Material
}

// PointLight is the one dynamic light in the scene.
type PointLight struct {
	Position  math.Vec3
	Color     core.Color
	Intensity float32
	Range     float32 // falloff cutoff; 0 = unlimited
}

func NewScene() *Scene {
	return &Scene{
		Root:       NewNode("Root"),
		Background: core.ColorBlack,
	}
}

func (s *Scene) SetCamera(camera *Camera) {
	s.Camera = camera
}

func (s *Scene) AddNode(node *Node) {
	s.Root.AddChild(node)
}

func (s *Scene) RemoveNode(node *Node) {
	s.Root.RemoveChild(node)
}

// RegisterLitMaterial adds a material to the light-broadcast registry.
func (s *Scene) RegisterLitMaterial(m *Material) {
	s.LitMaterials = append(s.LitMaterials, m)
}

// GetVisibleNodes returns all nodes with meshes that are visible
func (s *Scene) GetVisibleNodes() []*Node {
	var visible []*Node

	s.Root.Traverse(func(node *Node) {
		if node.Visible && node.Mesh != nil {
			visible = append(visible, node)
		}
	})

	return visible
}
