package opengl

import (
	"fmt"

	gl "github.com/go-gl/gl/v4.1-core/gl"
)

// RenderTarget is the off-screen buffer the scene is drawn into at the
// capped pixel ratio. Shading happens in linear light; Blit encodes to sRGB
// and scales onto the window framebuffer.
type RenderTarget struct {
	FBO      uint32
	ColorTex uint32 // RGBA16F
	DepthRB  uint32
	Width    int32
	Height   int32

	prog    uint32
	srcLoc  int32
	quadVAO uint32 // empty VAO for the fullscreen triangle
}

// ── Shaders ───────────────────────────────────────────────────────────────────

// Fullscreen triangle via gl_VertexID (no VBO needed).
const blitVertSrc = `
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

const blitFragSrc = `
#version 410 core
in  vec2 fragUV;
out vec4 outColor;

uniform sampler2D src;

vec3 linearToSRGB(vec3 c) {
    vec3 lo = c * 12.92;
    vec3 hi = 1.055 * pow(c, vec3(1.0 / 2.4)) - 0.055;
    return mix(lo, hi, step(vec3(0.0031308), c));
}

void main() {
    vec4 c = texture(src, fragUV);
    outColor = vec4(linearToSRGB(clamp(c.rgb, 0.0, 1.0)), c.a);
}
` + "\x00"

// ── Constructor ───────────────────────────────────────────────────────────────

func NewRenderTarget(width, height int) (*RenderTarget, error) {
	prog, err := newProgram(blitVertSrc, blitFragSrc)
	if err != nil {
		return nil, fmt.Errorf("blit shader: %w", err)
	}
	rt := &RenderTarget{prog: prog, srcLoc: gl.GetUniformLocation(prog, gl.Str("src\x00"))}
	gl.UseProgram(prog)
	gl.Uniform1i(rt.srcLoc, 0)
	gl.GenVertexArrays(1, &rt.quadVAO)

	if err := rt.alloc(width, height); err != nil {
		rt.Destroy()
		return nil, err
	}
	return rt, nil
}

// ── Lifecycle ─────────────────────────────────────────────────────────────────

func (rt *RenderTarget) alloc(width, height int) error {
	rt.Width = int32(width)
	rt.Height = int32(height)

	gl.GenTextures(1, &rt.ColorTex)
	gl.BindTexture(gl.TEXTURE_2D, rt.ColorTex)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA16F, rt.Width, rt.Height, 0, gl.RGBA, gl.HALF_FLOAT, nil)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	gl.GenRenderbuffers(1, &rt.DepthRB)
	gl.BindRenderbuffer(gl.RENDERBUFFER, rt.DepthRB)
	gl.RenderbufferStorage(gl.RENDERBUFFER, gl.DEPTH_COMPONENT24, rt.Width, rt.Height)
	gl.BindRenderbuffer(gl.RENDERBUFFER, 0)

	gl.GenFramebuffers(1, &rt.FBO)
	gl.BindFramebuffer(gl.FRAMEBUFFER, rt.FBO)
	gl.FramebufferTexture2D(gl.FRAMEBUFFER, gl.COLOR_ATTACHMENT0, gl.TEXTURE_2D, rt.ColorTex, 0)
	gl.FramebufferRenderbuffer(gl.FRAMEBUFFER, gl.DEPTH_ATTACHMENT, gl.RENDERBUFFER, rt.DepthRB)
	status := gl.CheckFramebufferStatus(gl.FRAMEBUFFER)
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	if status != gl.FRAMEBUFFER_COMPLETE {
		return fmt.Errorf("render target %dx%d incomplete (0x%X)", width, height, status)
	}
	return nil
}

func (rt *RenderTarget) free() {
	if rt.FBO != 0 {
		gl.DeleteFramebuffers(1, &rt.FBO)
		rt.FBO = 0
	}
	if rt.ColorTex != 0 {
		gl.DeleteTextures(1, &rt.ColorTex)
		rt.ColorTex = 0
	}
	if rt.DepthRB != 0 {
		gl.DeleteRenderbuffers(1, &rt.DepthRB)
		rt.DepthRB = 0
	}
}

// Resize recreates the attachments at the new pixel dimensions.
func (rt *RenderTarget) Resize(width, height int) error {
	rt.free()
	return rt.alloc(width, height)
}

// Destroy frees all GPU resources owned by this object.
func (rt *RenderTarget) Destroy() {
	rt.free()
	if rt.prog != 0 {
		gl.DeleteProgram(rt.prog)
		rt.prog = 0
	}
	if rt.quadVAO != 0 {
		gl.DeleteVertexArrays(1, &rt.quadVAO)
		rt.quadVAO = 0
	}
}

// ── Blit ──────────────────────────────────────────────────────────────────────

// Blit draws the target onto the default framebuffer of size width x height.
func (rt *RenderTarget) Blit(width, height int32) {
	gl.BindFramebuffer(gl.FRAMEBUFFER, 0)
	gl.Viewport(0, 0, width, height)
	gl.Disable(gl.DEPTH_TEST)

	gl.UseProgram(rt.prog)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, rt.ColorTex)
	gl.BindVertexArray(rt.quadVAO)
	gl.DrawArrays(gl.TRIANGLES, 0, 3)
	gl.BindVertexArray(0)

	gl.Enable(gl.DEPTH_TEST)
}
