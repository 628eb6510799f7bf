package opengl

import (
	"fmt"
	"strings"
	"unsafe"

	gl "github.com/go-gl/gl/v4.1-core/gl"

	"glyphlight/core"
	"glyphlight/math"
	"glyphlight/scene"
	"glyphlight/shading"
)

// GPUMesh holds the OpenGL buffer objects for an uploaded mesh.
type GPUMesh struct {
	VAO        uint32
	VBO        uint32
	EBO        uint32
	IndexCount int32
	HasIndices bool
}

// Renderer is the OpenGL rendering backend.
type Renderer struct {
	program uint32

	// Vertex transform uniforms
	mvpLoc   int32
	modelLoc int32

	// Point light uniforms
	lightPosLoc       int32
	lightColorLoc     int32
	lightIntensityLoc int32
	lightRangeLoc     int32

	// Camera uniform (for specular)
	cameraPosLoc int32

	// Material uniforms
	baseColorLoc        int32
	shadingKindLoc      int32
	ambientIntensityLoc int32
	unlitLoc            int32
	opacityLoc          int32

	pointSizeLoc int32

	// Stored viewport for restoring after offscreen passes
	viewportW int32
	viewportH int32

	// Post-processing FBO (nil if disabled)
	postProcess *PostProcessFBO

	gpuMeshes map[*scene.Mesh]*GPUMesh
}

// ── Shaders ───────────────────────────────────────────────────────────────────

// vertex shader: MVP + model transform, world-space position and normal to fragment.
const vertSrc = `
#version 410 core
layout(location = 0) in vec3 inPosition;
layout(location = 1) in vec3 inNormal;
layout(location = 2) in vec2 inUV;
layout(location = 3) in vec4 inColor;

uniform mat4 mvp;
uniform mat4 model;
uniform float pointSize;

out vec4 fragColor;
out vec3 fragNormal;
out vec2 fragUV;
out vec3 fragWorldPos;

void main() {
    vec4 worldPos = model * vec4(inPosition, 1.0);

    gl_Position  = mvp * vec4(inPosition, 1.0);
    gl_PointSize = pointSize;
    fragColor    = inColor;
    fragNormal   = mat3(model) * inNormal;
    fragUV       = inUV;
    fragWorldPos = worldPos.xyz;
}
` + "\x00"

// fragment shader: one dynamic point light, two shading models.
// shadingKind 0 = plastic (Blinn-Phong half vector, fixed white specular),
// shadingKind 1 = metal (Phong reflection vector, specular tinted by the
// base color). Degenerate normals fall back to the ambient term.
const fragSrc = `
#version 410 core
in vec4 fragColor;
in vec3 fragNormal;
in vec2 fragUV;
in vec3 fragWorldPos;

out vec4 outColor;

uniform vec3  lightPos;
uniform vec3  lightColor;
uniform float lightIntensity;
uniform float lightRange;

uniform vec3 cameraPos;

uniform vec3  baseColor;
uniform int   shadingKind;
uniform float ambientIntensity;
uniform bool  unlit;
uniform float opacity;

vec3 safeNormalize(vec3 v) {
    float len = length(v);
    if (len < 1e-6) {
        return vec3(0.0);
    }
    return v / len;
}

void main() {
    if (unlit) {
        outColor = vec4(baseColor * fragColor.rgb, opacity);
        return;
    }

    vec3 ambient = ambientIntensity * baseColor;

    vec3 N = safeNormalize(fragNormal);
    vec3 toLight = lightPos - fragWorldPos;
    float d = length(toLight);
    if (N == vec3(0.0) || d < 1e-6) {
        outColor = vec4(ambient, opacity);
        return;
    }
    vec3 L = toLight / d;
    vec3 V = safeNormalize(cameraPos - fragWorldPos);

    float atten = clamp(1.0 / (1.0 + 0.09 * d + 0.032 * d * d), 0.0, 1.0);
    if (lightRange > 0.0 && d > lightRange) {
        atten = 0.0;
    }

    vec3 diffuse = max(dot(N, L), 0.0) * baseColor * lightColor
                 * lightIntensity * atten;

    vec3 specular;
    if (shadingKind == 0) {
        vec3 H = safeNormalize(L + V);
        specular = lightColor * 0.5 * pow(max(dot(N, H), 0.0), 32.0)
                 * lightIntensity * atten;
    } else {
        vec3 R = reflect(-L, N);
        specular = baseColor * lightColor * pow(max(dot(V, R), 0.0), 128.0)
                 * lightIntensity * atten * 2.0;
    }

    outColor = vec4(ambient + diffuse + specular, opacity);
}
` + "\x00"

// ── NewRenderer ───────────────────────────────────────────────────────────────

// NewRenderer initialises OpenGL.
// Must be called after the GLFW window context is made current.
func NewRenderer() (*Renderer, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	version := gl.GoStr(gl.GetString(gl.VERSION))
	fmt.Printf("OpenGL version: %s\n", version)

	prog, err := newProgram(vertSrc, fragSrc)
	if err != nil {
		return nil, fmt.Errorf("main shader compile: %w", err)
	}

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.PROGRAM_POINT_SIZE)

	r := &Renderer{
		program: prog,

		mvpLoc:   gl.GetUniformLocation(prog, gl.Str("mvp\x00")),
		modelLoc: gl.GetUniformLocation(prog, gl.Str("model\x00")),

		lightPosLoc:       gl.GetUniformLocation(prog, gl.Str("lightPos\x00")),
		lightColorLoc:     gl.GetUniformLocation(prog, gl.Str("lightColor\x00")),
		lightIntensityLoc: gl.GetUniformLocation(prog, gl.Str("lightIntensity\x00")),
		lightRangeLoc:     gl.GetUniformLocation(prog, gl.Str("lightRange\x00")),

		cameraPosLoc: gl.GetUniformLocation(prog, gl.Str("cameraPos\x00")),

		baseColorLoc:        gl.GetUniformLocation(prog, gl.Str("baseColor\x00")),
		shadingKindLoc:      gl.GetUniformLocation(prog, gl.Str("shadingKind\x00")),
		ambientIntensityLoc: gl.GetUniformLocation(prog, gl.Str("ambientIntensity\x00")),
		unlitLoc:            gl.GetUniformLocation(prog, gl.Str("unlit\x00")),
		opacityLoc:          gl.GetUniformLocation(prog, gl.Str("opacity\x00")),

		pointSizeLoc: gl.GetUniformLocation(prog, gl.Str("pointSize\x00")),

		gpuMeshes: make(map[*scene.Mesh]*GPUMesh),
	}

	gl.UseProgram(prog)
	gl.Uniform1f(r.pointSizeLoc, 2.0)

	return r, nil
}

// ── Viewport ──────────────────────────────────────────────────────────────────

// SetViewport resizes the OpenGL viewport and stores the dimensions for
// restoring after offscreen passes.
func (r *Renderer) SetViewport(width, height int) {
	r.viewportW = int32(width)
	r.viewportH = int32(height)
	gl.Viewport(0, 0, int32(width), int32(height))
}

// ── Post-processing ───────────────────────────────────────────────────────────

// EnablePostProcess creates the HDR framebuffer, bloom chain, and tone-map
// pass. Call once after NewRenderer, before the first frame.
func (r *Renderer) EnablePostProcess(width, height int) error {
	if r.postProcess != nil {
		r.postProcess.Destroy()
	}
	pp, err := NewPostProcessFBO(width, height)
	if err != nil {
		return err
	}
	r.postProcess = pp
	return nil
}

// HasPostProcess reports whether HDR post-processing is active.
func (r *Renderer) HasPostProcess() bool {
	return r.postProcess != nil
}

// ResizePostProcess recreates every stage buffer at the new size.
// No-op when post-processing is disabled.
func (r *Renderer) ResizePostProcess(width, height int) {
	if r.postProcess != nil {
		r.postProcess.Resize(width, height)
	}
}

// SetExposure adjusts the tone-mapping exposure.
func (r *Renderer) SetExposure(exp float32) {
	if r.postProcess != nil {
		r.postProcess.Exposure = exp
	}
}

// SetBloomThreshold sets the luminance above which pixels bloom.
func (r *Renderer) SetBloomThreshold(t float32) {
	if r.postProcess != nil {
		r.postProcess.BloomThreshold = t
	}
}

// SetBloomStrength scales the bloom contribution in the final composite.
func (r *Renderer) SetBloomStrength(s float32) {
	if r.postProcess != nil {
		r.postProcess.BloomStrength = s
	}
}

// SetBloomRadius scales the blur sampling step.
func (r *Renderer) SetBloomRadius(radius float32) {
	if r.postProcess != nil {
		r.postProcess.BloomRadius = radius
	}
}

// BlitPostProcess runs bright-pass, blur, and tone-map, writing the final
// image to the default framebuffer. Call after all DrawMesh calls.
func (r *Renderer) BlitPostProcess() {
	if r.postProcess == nil {
		return
	}
	r.postProcess.Blit(r.viewportW, r.viewportH)
}

// ── Frame setup ───────────────────────────────────────────────────────────────

// BeginFrame clears the target (the HDR FBO when post-processing is active)
// and uploads the per-frame light and camera uniforms.
func (r *Renderer) BeginFrame(background core.Color, light *scene.PointLight, camPos math.Vec3) {
	if r.postProcess != nil {
		gl.BindFramebuffer(gl.FRAMEBUFFER, r.postProcess.FBO)
		gl.Viewport(0, 0, r.postProcess.Width, r.postProcess.Height)
	} else {
		gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	}
	gl.ClearColor(background.R, background.G, background.B, background.A)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	gl.UseProgram(r.program)
	gl.Uniform3f(r.cameraPosLoc, camPos.X, camPos.Y, camPos.Z)

	if light != nil {
		gl.Uniform3f(r.lightPosLoc, light.Position.X, light.Position.Y, light.Position.Z)
		gl.Uniform3f(r.lightColorLoc, light.Color.R, light.Color.G, light.Color.B)
		gl.Uniform1f(r.lightIntensityLoc, light.Intensity)
		gl.Uniform1f(r.lightRangeLoc, light.Range)
	} else {
		gl.Uniform1f(r.lightIntensityLoc, 0)
	}
}

// ── DrawMesh ──────────────────────────────────────────────────────────────────

// DrawMesh draws a mesh with the given MVP and model matrices.
// Material properties are read from mesh.Material; lit materials use their
// own per-frame light-position copy, not the shared scene light.
func (r *Renderer) DrawMesh(mesh *scene.Mesh, mvp, model math.Mat4) {
	gpu := r.ensureUploaded(mesh)
	if gpu == nil {
		return
	}

	gl.UseProgram(r.program)
	gl.UniformMatrix4fv(r.mvpLoc, 1, false, (*float32)(unsafe.Pointer(&mvp[0][0])))
	gl.UniformMatrix4fv(r.modelLoc, 1, false, (*float32)(unsafe.Pointer(&model[0][0])))

	mat := mesh.Material
	if mat == nil {
		mat = scene.DefaultMaterial()
	}
	r.applyMaterial(mat)

	translucent := mat.Opacity < 1 || mat.Additive
	if translucent {
		gl.Enable(gl.BLEND)
		if mat.Additive {
			gl.BlendFunc(gl.SRC_ALPHA, gl.ONE)
		} else {
			gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
		}
		gl.DepthMask(false)
	}

	primitive := uint32(gl.TRIANGLES)
	if mesh.DrawMode == scene.DrawPoints {
		primitive = gl.POINTS
	}

	gl.BindVertexArray(gpu.VAO)
	if gpu.HasIndices {
		gl.DrawElements(primitive, gpu.IndexCount, gl.UNSIGNED_INT, nil)
	} else {
		gl.DrawArrays(primitive, 0, int32(len(mesh.Vertices)))
	}
	gl.BindVertexArray(0)

	if translucent {
		gl.DepthMask(true)
		gl.Disable(gl.BLEND)
	}
}

// applyMaterial sets all material-related shader uniforms.
// Must be called while r.program is active.
func (r *Renderer) applyMaterial(mat *scene.Material) {
	gl.Uniform3f(r.baseColorLoc, mat.BaseColor.R, mat.BaseColor.G, mat.BaseColor.B)
	gl.Uniform1f(r.ambientIntensityLoc, mat.AmbientIntensity)
	gl.Uniform1f(r.opacityLoc, mat.Opacity)

	if mat.Unlit {
		gl.Uniform1i(r.unlitLoc, 1)
		return
	}
	gl.Uniform1i(r.unlitLoc, 0)

	kind := int32(0)
	if mat.ShadingKind == shading.KindMetal {
		kind = 1
	}
	gl.Uniform1i(r.shadingKindLoc, kind)

	// Each material carries its own light-position copy.
	gl.Uniform3f(r.lightPosLoc,
		mat.LightPosition.X, mat.LightPosition.Y, mat.LightPosition.Z)
	gl.Uniform3f(r.lightColorLoc, mat.LightColor.R, mat.LightColor.G, mat.LightColor.B)
	gl.Uniform1f(r.lightIntensityLoc, mat.LightIntensity)
	gl.Uniform1f(r.lightRangeLoc, mat.LightRange)
}

// ── Resource management ───────────────────────────────────────────────────────

// ReleaseMesh frees GPU buffers for the given mesh.
func (r *Renderer) ReleaseMesh(mesh *scene.Mesh) {
	if gpu, ok := r.gpuMeshes[mesh]; ok {
		gl.DeleteVertexArrays(1, &gpu.VAO)
		gl.DeleteBuffers(1, &gpu.VBO)
		if gpu.HasIndices {
			gl.DeleteBuffers(1, &gpu.EBO)
		}
		delete(r.gpuMeshes, mesh)
		mesh.GPUData = nil
	}
}

// Destroy releases all GPU resources.
func (r *Renderer) Destroy() {
	for mesh := range r.gpuMeshes {
		r.ReleaseMesh(mesh)
	}
	if r.postProcess != nil {
		r.postProcess.Destroy()
	}
	gl.DeleteProgram(r.program)
}

// ── Internal helpers ──────────────────────────────────────────────────────────

// ensureUploaded uploads vertex/index data if not already done.
func (r *Renderer) ensureUploaded(mesh *scene.Mesh) *GPUMesh {
	if gpu, ok := r.gpuMeshes[mesh]; ok {
		return gpu
	}
	if len(mesh.Vertices) == 0 {
		return nil
	}

	stride := int32(unsafe.Sizeof(core.Vertex{}))

	gpu := &GPUMesh{
		IndexCount: int32(len(mesh.Indices)),
		HasIndices: len(mesh.Indices) > 0,
	}

	gl.GenVertexArrays(1, &gpu.VAO)
	gl.GenBuffers(1, &gpu.VBO)
	gl.BindVertexArray(gpu.VAO)

	gl.BindBuffer(gl.ARRAY_BUFFER, gpu.VBO)
	gl.BufferData(gl.ARRAY_BUFFER,
		len(mesh.Vertices)*int(stride),
		gl.Ptr(mesh.Vertices),
		gl.STATIC_DRAW)

	var v core.Vertex
	posOff := int(unsafe.Offsetof(v.Position))
	normOff := int(unsafe.Offsetof(v.Normal))
	uvOff := int(unsafe.Offsetof(v.UV))
	colorOff := int(unsafe.Offsetof(v.Color))

	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, gl.PtrOffset(posOff))

	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, stride, gl.PtrOffset(normOff))

	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointer(2, 2, gl.FLOAT, false, stride, gl.PtrOffset(uvOff))

	gl.EnableVertexAttribArray(3)
	gl.VertexAttribPointer(3, 4, gl.FLOAT, false, stride, gl.PtrOffset(colorOff))

	if gpu.HasIndices {
		gl.GenBuffers(1, &gpu.EBO)
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, gpu.EBO)
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER,
			len(mesh.Indices)*4,
			gl.Ptr(mesh.Indices),
			gl.STATIC_DRAW)
	}

	gl.BindVertexArray(0)

	r.gpuMeshes[mesh] = gpu
	mesh.GPUData = gpu
	return gpu
}

// ── Shader helpers ────────────────────────────────────────────────────────────

func newProgram(vertSrc, fragSrc string) (uint32, error) {
	vert, err := compileShader(vertSrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, fmt.Errorf("vertex: %w", err)
	}
	frag, err := compileShader(fragSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		return 0, fmt.Errorf("fragment: %w", err)
	}

	prog := gl.CreateProgram()
	gl.AttachShader(prog, vert)
	gl.AttachShader(prog, frag)
	gl.LinkProgram(prog)

	var status int32
	gl.GetProgramiv(prog, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(prog, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetProgramInfoLog(prog, logLen, nil, gl.Str(log))
		return 0, fmt.Errorf("link failed: %v", log)
	}

	gl.DeleteShader(vert)
	gl.DeleteShader(frag)
	return prog, nil
}

func compileShader(src string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csrc, free := gl.Strs(src)
	gl.ShaderSource(shader, 1, csrc, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetShaderInfoLog(shader, logLen, nil, gl.Str(log))
		return 0, fmt.Errorf("compile failed: %v", log)
	}
	return shader, nil
}
