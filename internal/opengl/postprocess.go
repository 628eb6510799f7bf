package opengl

import (
	"fmt"

	gl "github.com/go-gl/gl/v4.1-core/gl"
)

// PostProcessFBO is an HDR off-screen render target with a bloom chain
// (bright-pass → separable Gaussian blur → additive composite) and filmic
// tone mapping.
type PostProcessFBO struct {
	// Main HDR FBO (scene renders into this)
	FBO      uint32 // framebuffer object
	ColorTex uint32 // RGBA16F colour attachment
	DepthTex uint32 // DEPTH_COMPONENT32F depth attachment
	Width    int32
	Height   int32

	// Tone-map + bloom composite shader
	prog        uint32
	hdrLoc      int32 // sampler2D unit 0
	bloomTexLoc int32 // sampler2D unit 1
	expLoc      int32
	bloomStrLoc int32

	quadVAO uint32 // empty VAO for the fullscreen triangle

	// Tone-mapping
	Exposure float32

	// Bloom ping-pong FBOs (half resolution)
	bloomFBO        [2]uint32
	bloomTex        [2]uint32
	bloomW          int32
	bloomH          int32
	brightProg      uint32 // bright-pass shader
	brightThreshLoc int32
	blurProg        uint32 // separable Gaussian shader
	blurTexLoc      int32
	blurDirLoc      int32

	BloomThreshold float32 // luminance cut-off
	BloomRadius    float32 // blur sampling step scale
	BloomStrength  float32 // additive bloom multiplier
	BloomPasses    int     // number of H+V blur pairs
}

// ── Shaders ───────────────────────────────────────────────────────────────────

// ppVertSrc: fullscreen triangle via gl_VertexID (no VBO needed).
const ppVertSrc = `
#version 410 core
out vec2 fragUV;
void main() {
    const vec2 pos[3] = vec2[3](
        vec2(-1.0, -1.0),
        vec2( 3.0, -1.0),
        vec2(-1.0,  3.0)
    );
    gl_Position = vec4(pos[gl_VertexID], 0.0, 1.0);
    fragUV      = pos[gl_VertexID] * 0.5 + 0.5;
}
` + "\x00"

// ppFragSrc: bloom add, exposure, ACES filmic tone mapping, gamma 2.2.
const ppFragSrc = `
#version 410 core
in  vec2 fragUV;
out vec4 outColor;

uniform sampler2D hdrBuffer;  // unit 0
uniform sampler2D bloomTex;   // unit 1
uniform float     exposure;
uniform float     bloomStrength;

vec3 acesFilm(vec3 x) {
    const float a = 2.51;
    const float b = 0.03;
    const float c = 2.43;
    const float d = 0.59;
    const float e = 0.14;
    return clamp((x * (a * x + b)) / (x * (c * x + d) + e), 0.0, 1.0);
}

void main() {
    vec3 hdr = texture(hdrBuffer, fragUV).rgb;
    hdr += texture(bloomTex, fragUV).rgb * bloomStrength;

    vec3 mapped = acesFilm(hdr * exposure);
    mapped = pow(mapped, vec3(1.0 / 2.2));

    outColor = vec4(mapped, 1.0);
}
` + "\x00"

// ppBrightFragSrc: extracts pixels whose luminance exceeds the threshold.
const ppBrightFragSrc = `
#version 410 core
in  vec2 fragUV;
out vec4 outColor;

uniform sampler2D hdrBuffer;
uniform float     threshold;

void main() {
    vec3  color = texture(hdrBuffer, fragUV).rgb;
    float luma  = dot(color, vec3(0.2126, 0.7152, 0.0722));
    outColor = vec4(color * step(threshold, luma), 1.0);
}
` + "\x00"

// ppBlurFragSrc: single-axis 5-tap Gaussian blur.
// texelDir = radius-scaled (1/w, 0) for horizontal, (0, 1/h) for vertical.
const ppBlurFragSrc = `
#version 410 core
in  vec2 fragUV;
out vec4 outColor;

uniform sampler2D blurTex;
uniform vec2      texelDir;

void main() {
    const float w[5] = float[](0.0625, 0.25, 0.375, 0.25, 0.0625);
    vec3 result = vec3(0.0);
    for (int i = -2; i <= 2; i++) {
        result += texture(blurTex, fragUV + float(i) * texelDir).rgb * w[i + 2];
    }
    outColor = vec4(result, 1.0);
}
` + "\x00"

// ── Constructor ───────────────────────────────────────────────────────────────

func NewPostProcessFBO(width, height int) (*PostProcessFBO, error) {
	pp := &PostProcessFBO{
		Exposure:       0.9,
		BloomThreshold: 0.8,
		BloomRadius:    0.2,
		BloomStrength:  0.7,
		BloomPasses:    4,
	}

	prog, err := newProgram(ppVertSrc, ppFragSrc)
	if err != nil {
		return nil, fmt.Errorf("tone-map shader: %w", err)
	}
	pp.prog = prog
	pp.hdrLoc = gl.GetUniformLocation(prog, gl.Str("hdrBuffer\x00"))
	pp.bloomTexLoc = gl.GetUniformLocation(prog, gl.Str("bloomTex\x00"))
	pp.expLoc = gl.GetUniformLocation(prog, gl.Str("exposure\x00"))
	pp.bloomStrLoc = gl.GetUniformLocation(prog, gl.Str("bloomStrength\x00"))

	gl.UseProgram(prog)
	gl.Uniform1i(pp.hdrLoc, 0)
	gl.Uniform1i(pp.bloomTexLoc, 1)

	bp, err := newProgram(ppVertSrc, ppBrightFragSrc)
	if err != nil {
		gl.DeleteProgram(prog)
		return nil, fmt.Errorf("bright-pass shader: %w", err)
	}
	pp.brightProg = bp
	pp.brightThreshLoc = gl.GetUniformLocation(bp, gl.Str("threshold\x00"))
	gl.UseProgram(bp)
	gl.Uniform1i(gl.GetUniformLocation(bp, gl.Str("hdrBuffer\x00")), 0)

	blp, err := newProgram(ppVertSrc, ppBlurFragSrc)
	if err != nil {
		gl.DeleteProgram(prog)
		gl.DeleteProgram(bp)
		return nil, fmt.Errorf("blur shader: %w", err)
	}
	pp.blurProg = blp
	pp.blurTexLoc = gl.GetUniformLocation(blp, gl.Str("blurTex\x00"))
	pp.blurDirLoc = gl.GetUniformLocation(blp, gl.Str("texelDir\x00"))
	gl.UseProgram(blp)
	gl.Uniform1i(pp.blurTexLoc, 0)

	gl.GenVertexArrays(1, &pp.quadVAO)

	pp.allocFBO(width, height)
	pp.allocBloomFBOs()
	return pp, nil
}

// ── Main FBO lifecycle ────────────────────────────────────────────────────────

func (pp *PostProcessFBO) allocFBO(width, height int) {
	pp.Width = int32(width)
	pp.Height = int32(height)

	gl.GenTextures(1, &pp.ColorTex)
	gl.BindTexture(gl.TEXTURE_2D, pp.ColorTex)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA16F,
		int32(width), int32(height), 0, gl.RGBA, gl.HALF_FLOAT, nil)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	gl.GenTextures(1, &pp.DepthTex)
	gl.BindTexture(gl.TEXTURE_2D, pp.DepthTex)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.DEPTH_COMPONENT32F,
		int32(width), int32(height), 0, gl.DEPTH_COMPONENT, gl.FLOAT, nil)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	gl.GenFramebuffers(1, &pp.FBO)
	gl.BindFramebuffer(gl.FRAMEBUFFER, pp.FBO)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0,
		gl.TEXTURE_2D, pp.ColorTex, 0)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT,
		gl.TEXTURE_2D, pp.DepthTex, 0)
	if s := gl.CheckFramebufferStatus(gl.FRAMEBUFFER); s != gl.FRAMEBUFFER_COMPLETE {
		fmt.Printf("WARNING: HDR FBO incomplete (0x%X)\n", s)
	}
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
}

func (pp *PostProcessFBO) freeFBO() {
	if pp.FBO != 0 {
		gl.DeleteFramebuffers(1, &pp.FBO)
		pp.FBO = 0
	}
	if pp.ColorTex != 0 {
		gl.DeleteTextures(1, &pp.ColorTex)
		pp.ColorTex = 0
	}
	if pp.DepthTex != 0 {
		gl.DeleteTextures(1, &pp.DepthTex)
		pp.DepthTex = 0
	}
}

// allocBloomFBOs creates the two half-resolution ping-pong colour FBOs.
func (pp *PostProcessFBO) allocBloomFBOs() {
	pp.bloomW = pp.Width / 2
	if pp.bloomW < 1 {
		pp.bloomW = 1
	}
	pp.bloomH = pp.Height / 2
	if pp.bloomH < 1 {
		pp.bloomH = 1
	}
	for i := 0; i < 2; i++ {
		gl.GenTextures(1, &pp.bloomTex[i])
		gl.BindTexture(gl.TEXTURE_2D, pp.bloomTex[i])
		gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA16F,
			pp.bloomW, pp.bloomH, 0, gl.RGBA, gl.HALF_FLOAT, nil)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
		gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
		gl.BindTexture(gl.TEXTURE_2D, 0)

		gl.GenFramebuffers(1, &pp.bloomFBO[i])
		gl.BindFramebuffer(gl.FRAMEBUFFER, pp.bloomFBO[i])
		gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0,
			gl.TEXTURE_2D, pp.bloomTex[i], 0)
		gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	}
}

func (pp *PostProcessFBO) freeBloomFBOs() {
	for i := 0; i < 2; i++ {
		if pp.bloomFBO[i] != 0 {
			gl.DeleteFramebuffers(1, &pp.bloomFBO[i])
			pp.bloomFBO[i] = 0
		}
		if pp.bloomTex[i] != 0 {
			gl.DeleteTextures(1, &pp.bloomTex[i])
			pp.bloomTex[i] = 0
		}
	}
}

// Resize recreates the HDR FBO and the bloom chain at the new pixel
// dimensions. All stage buffers are reallocated together so a frame never
// mixes sizes.
func (pp *PostProcessFBO) Resize(width, height int) {
	pp.freeFBO()
	pp.freeBloomFBOs()
	pp.allocFBO(width, height)
	pp.allocBloomFBOs()
}

// Destroy frees all GPU resources owned by this object.
func (pp *PostProcessFBO) Destroy() {
	pp.freeFBO()
	pp.freeBloomFBOs()
	if pp.brightProg != 0 {
		gl.DeleteProgram(pp.brightProg)
		pp.brightProg = 0
	}
	if pp.blurProg != 0 {
		gl.DeleteProgram(pp.blurProg)
		pp.blurProg = 0
	}
	if pp.prog != 0 {
		gl.DeleteProgram(pp.prog)
		pp.prog = 0
	}
	if pp.quadVAO != 0 {
		gl.DeleteVertexArrays(1, &pp.quadVAO)
		pp.quadVAO = 0
	}
}

// ── Blit ──────────────────────────────────────────────────────────────────────

// Blit resolves the HDR FBO to the default framebuffer:
// bright-pass → ping-pong Gaussian blur → additive composite → tone map.
// viewW/viewH are the on-screen viewport dimensions to restore for the
// final composite.
func (pp *PostProcessFBO) Blit(viewW, viewH int32) {
	gl.Disable(gl.DEPTH_TEST)
	gl.BindVertexArray(pp.quadVAO)

	// ── Step 1: bright-pass → bloomFBO[0] ─────────────────────────────────
	gl.BindFramebuffer(gl.FRAMEBUFFER, pp.bloomFBO[0])
	gl.Viewport(0, 0, pp.bloomW, pp.bloomH)
	gl.UseProgram(pp.brightProg)
	gl.Uniform1f(pp.brightThreshLoc, pp.BloomThreshold)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, pp.ColorTex)
	gl.DrawArrays(gl.TRIANGLES, 0, 3)

	// ── Step 2: ping-pong Gaussian blur ───────────────────────────────────
	// The radius scales the texel step; each H+V pair returns the result to
	// bloomTex[0], so after BloomPasses pairs it is back in bloomTex[0].
	step := pp.BloomRadius * 10
	if step < 1 {
		step = 1
	}
	src, dst := 0, 1
	gl.UseProgram(pp.blurProg)
	for i := 0; i < pp.BloomPasses*2; i++ {
		gl.BindFramebuffer(gl.FRAMEBUFFER, pp.bloomFBO[dst])
		if i%2 == 0 { // horizontal
			gl.Uniform2f(pp.blurDirLoc, step/float32(pp.bloomW), 0)
		} else { // vertical
			gl.Uniform2f(pp.blurDirLoc, 0, step/float32(pp.bloomH))
		}
		gl.BindTexture(gl.TEXTURE_2D, pp.bloomTex[src])
		gl.DrawArrays(gl.TRIANGLES, 0, 3)
		src, dst = dst, src
	}

	// ── Step 3: composite + tone map → default FBO ────────────────────────
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.Viewport(0, 0, viewW, viewH)
	gl.UseProgram(pp.prog)
	gl.Uniform1f(pp.expLoc, pp.Exposure)
	gl.Uniform1f(pp.bloomStrLoc, pp.BloomStrength)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, pp.ColorTex)
	gl.ActiveTexture(gl.TEXTURE1)
	gl.BindTexture(gl.TEXTURE_2D, pp.bloomTex[0])
	gl.DrawArrays(gl.TRIANGLES, 0, 3)

	gl.BindVertexArray(0)
	gl.Enable(gl.DEPTH_TEST)
}
