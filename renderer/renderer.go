package renderer

import (
	"fmt"

	"glyphlight/core"
	"glyphlight/internal/opengl"
	"glyphlight/scene"
)

// RenderEngine is the high-level renderer that drives the OpenGL backend.
type RenderEngine struct {
	gl     *opengl.Renderer
	window *core.Window
	Scene  *scene.Scene

	// Per-frame stats (populated during Render)
	lastObjects   int
	lastVertices  int
	lastTriangles int
}

// NewRenderEngine initialises the OpenGL backend, sizes the viewport to the
// window, and wires the HDR bloom pipeline from the config.
func NewRenderEngine(window *core.Window, cfg core.Config) (*RenderEngine, error) {
	glRenderer, err := opengl.NewRenderer()
	if err != nil {
		return nil, fmt.Errorf("failed to create OpenGL renderer: %w", err)
	}

	glRenderer.SetViewport(window.Width, window.Height)

	if err := glRenderer.EnablePostProcess(window.Width, window.Height); err != nil {
		glRenderer.Destroy()
		return nil, fmt.Errorf("post-process: %w", err)
	}
	glRenderer.SetBloomThreshold(cfg.BloomThreshold)
	glRenderer.SetBloomRadius(cfg.BloomRadius)
	glRenderer.SetBloomStrength(cfg.BloomStrength)
	glRenderer.SetExposure(cfg.Exposure)

	fmt.Println("Render engine initialized (OpenGL)")
	return &RenderEngine{
		gl:     glRenderer,
		window: window,
	}, nil
}

func (re *RenderEngine) SetScene(s *scene.Scene) {
	re.Scene = s
}

// Render draws the scene into the HDR FBO. Opaque meshes are drawn first,
// translucent ones (additive or alpha-blended) after, so the depth buffer is
// populated before any pass with depth writes disabled.
func (re *RenderEngine) Render() error {
	if re.Scene == nil || re.Scene.Camera == nil {
		return fmt.Errorf("no scene or camera")
	}

	re.gl.BeginFrame(re.Scene.Background, re.Scene.Light, re.Scene.Camera.Position)

	view := re.Scene.Camera.GetViewMatrix()
	proj := re.Scene.Camera.GetProjectionMatrix()

	objects, vertices, triangles := 0, 0, 0
	var translucent []*scene.Node

	for _, node := range re.Scene.GetVisibleNodes() {
		if node.Mesh == nil {
			continue
		}
		if mat := node.Mesh.Material; mat != nil && (mat.Additive || mat.Opacity < 1) {
			translucent = append(translucent, node)
			continue
		}
		model := node.GetWorldMatrix()
		mvp := model.Mul(view).Mul(proj)
		re.gl.DrawMesh(node.Mesh, mvp, model)

		objects++
		vertices += len(node.Mesh.Vertices)
		triangles += len(node.Mesh.Indices) / 3
	}

	for _, node := range translucent {
		model := node.GetWorldMatrix()
		mvp := model.Mul(view).Mul(proj)
		re.gl.DrawMesh(node.Mesh, mvp, model)

		objects++
		vertices += len(node.Mesh.Vertices)
		triangles += len(node.Mesh.Indices) / 3
	}

	re.lastObjects = objects
	re.lastVertices = vertices
	re.lastTriangles = triangles

	return nil
}

// Present resolves the HDR FBO (bloom, tone mapping) to the default
// framebuffer and swaps buffers. Call after Render().
func (re *RenderEngine) Present() {
	re.gl.BlitPostProcess()
	re.window.SwapBuffers()
}

// Resize updates the viewport, the camera aspect ratio, and every
// post-process stage buffer in one call, so no frame renders with a stale
// buffer size.
func (re *RenderEngine) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	re.gl.SetViewport(width, height)
	re.gl.ResizePostProcess(width, height)
	if re.Scene != nil && re.Scene.Camera != nil {
		re.Scene.Camera.UpdateAspectRatio(float32(width), float32(height))
	}
}

// ReleaseMesh frees GPU buffers for a mesh that is no longer drawn.
func (re *RenderEngine) ReleaseMesh(mesh *scene.Mesh) {
	re.gl.ReleaseMesh(mesh)
}

func (re *RenderEngine) Destroy() {
	re.gl.Destroy()
}

// DrawStats returns stats from the most recent Render call.
func (re *RenderEngine) DrawStats() (objects, vertices, triangles int) {
	return re.lastObjects, re.lastVertices, re.lastTriangles
}
