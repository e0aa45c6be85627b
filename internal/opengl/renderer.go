package opengl

import (
	"fmt"
	"log/slog"
	"strings"
	"unsafe"

	gl "github.com/go-gl/gl/v4.1-core/gl"

	"scroll-scene/core"
	"scroll-scene/materials"
	"scroll-scene/math"
	"scroll-scene/scene"
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

	// Directional light
	lightDirLoc       int32
	lightColorLoc     int32
	lightIntensityLoc int32

	// Material
	matColorLoc    int32
	gradientLoc    int32
	hasGradientLoc int32

	points *PointsRenderer
	target *RenderTarget

	viewportW int32
	viewportH int32

	gpuMeshes map[*scene.Mesh]*GPUMesh
	log       *slog.Logger
}

// ── Toon shader ───────────────────────────────────────────────────────────────

const vertSrc = `
#version 410 core
layout(location = 0) in vec3 inPos;
layout(location = 1) in vec3 inNormal;
layout(location = 2) in vec2 inUV;

uniform mat4 mvp;
uniform mat4 model;

out vec3 fragNormal;

void main() {
    gl_Position = mvp * vec4(inPos, 1.0);
    fragNormal  = mat3(model) * inNormal;
}
` + "\x00"

// Diffuse light is looked up in a banded gradient; without one, two bands
// split at 0.7.
const fragSrc = `
#version 410 core
in vec3 fragNormal;
out vec4 outColor;

uniform vec3      lightDir;
uniform vec3      lightColor;
uniform float     lightIntensity;
uniform vec4      matColor;
uniform sampler2D gradientMap;
uniform bool      hasGradient;

const float RECIPROCAL_PI = 0.3183098861837907;

void main() {
    vec3 n = normalize(fragNormal);
    if (!gl_FrontFacing) {
        n = -n;
    }
    float coord = dot(n, normalize(lightDir)) * 0.5 + 0.5;

    vec3 band;
    if (hasGradient) {
        band = vec3(texture(gradientMap, vec2(coord, 0.0)).r);
    } else {
        float fw = fwidth(coord) * 0.5;
        band = mix(vec3(0.7), vec3(1.0), smoothstep(0.7 - fw, 0.7 + fw, coord));
    }

    vec3 irradiance = band * lightColor * lightIntensity;
    outColor = vec4(irradiance * matColor.rgb * RECIPROCAL_PI, matColor.a);
}
` + "\x00"

// ── NewRenderer ───────────────────────────────────────────────────────────────

// NewRenderer initialises OpenGL.
// Must be called after the GLFW window context is made current.
func NewRenderer(logger *slog.Logger) (*Renderer, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}
	logger.Info("OpenGL initialized",
		"version", gl.GoStr(gl.GetString(gl.VERSION)),
		"renderer", gl.GoStr(gl.GetString(gl.RENDERER)))

	prog, err := newProgram(vertSrc, fragSrc)
	if err != nil {
		return nil, fmt.Errorf("toon shader compile: %w", err)
	}

	points, err := newPointsRenderer()
	if err != nil {
		gl.DeleteProgram(prog)
		return nil, err
	}

	target, err := NewRenderTarget(1, 1)
	if err != nil {
		points.destroy()
		gl.DeleteProgram(prog)
		return nil, err
	}

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.PROGRAM_POINT_SIZE)

	r := &Renderer{
		program: prog,

		mvpLoc:   gl.GetUniformLocation(prog, gl.Str("mvp\x00")),
		modelLoc: gl.GetUniformLocation(prog, gl.Str("model\x00")),

		lightDirLoc:       gl.GetUniformLocation(prog, gl.Str("lightDir\x00")),
		lightColorLoc:     gl.GetUniformLocation(prog, gl.Str("lightColor\x00")),
		lightIntensityLoc: gl.GetUniformLocation(prog, gl.Str("lightIntensity\x00")),

		matColorLoc:    gl.GetUniformLocation(prog, gl.Str("matColor\x00")),
		gradientLoc:    gl.GetUniformLocation(prog, gl.Str("gradientMap\x00")),
		hasGradientLoc: gl.GetUniformLocation(prog, gl.Str("hasGradient\x00")),

		points: points,
		target: target,

		gpuMeshes: make(map[*scene.Mesh]*GPUMesh),
		log:       logger,
	}

	gl.UseProgram(prog)
	gl.Uniform1i(r.gradientLoc, 0)

	return r, nil
}

// ── Viewport ──────────────────────────────────────────────────────────────────

// SetViewport sets the size of the window framebuffer the frame is
// presented to.
func (r *Renderer) SetViewport(width, height int) {
	r.viewportW = int32(width)
	r.viewportH = int32(height)
}

// SetRenderSize resizes the off-screen target the scene is drawn into. It
// differs from the viewport when the pixel ratio is capped.
func (r *Renderer) SetRenderSize(width, height int) {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	if r.target.Width == int32(width) && r.target.Height == int32(height) {
		return
	}
	if err := r.target.Resize(width, height); err != nil {
		r.log.Error("render target resize failed", "error", err)
		return
	}
	r.log.Debug("render target resized", "width", width, "height", height)
}

// RenderSize returns the current off-screen target size in pixels.
func (r *Renderer) RenderSize() (int, int) {
	return int(r.target.Width), int(r.target.Height)
}

// ── Frame ─────────────────────────────────────────────────────────────────────

// BeginFrame binds the off-screen target, clears it to the background and
// uploads the directional light. A nil light leaves the scene unlit.
func (r *Renderer) BeginFrame(background core.Color, light *scene.Light) {
	gl.BindFramebuffer(gl.FRAMEBUFFER, r.target.FBO)
	gl.Viewport(0, 0, r.target.Width, r.target.Height)

	bg := background.Linear()
	gl.ClearColor(bg.X, bg.Y, bg.Z, background.A)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	gl.UseProgram(r.program)
	if light == nil {
		gl.Uniform1f(r.lightIntensityLoc, 0)
		return
	}
	dir := light.Direction()
	lc := light.Color.Linear()
	gl.Uniform3f(r.lightDirLoc, dir.X, dir.Y, dir.Z)
	gl.Uniform3f(r.lightColorLoc, lc.X, lc.Y, lc.Z)
	gl.Uniform1f(r.lightIntensityLoc, light.Intensity)
}

// EndFrame resolves the off-screen target onto the window framebuffer.
func (r *Renderer) EndFrame() {
	r.target.Blit(r.viewportW, r.viewportH)
}

// ── DrawMesh ──────────────────────────────────────────────────────────────────

// DrawMesh draws a toon-shaded mesh with the given MVP and model matrices.
func (r *Renderer) DrawMesh(mesh *scene.Mesh, mvp, model math.Mat4, mat *materials.Material) {
	gpu := r.ensureUploaded(mesh)
	if gpu == nil || mat == nil {
		return
	}

	gl.UseProgram(r.program)
	gl.UniformMatrix4fv(r.mvpLoc, 1, false, (*float32)(unsafe.Pointer(&mvp[0][0])))
	gl.UniformMatrix4fv(r.modelLoc, 1, false, (*float32)(unsafe.Pointer(&model[0][0])))

	u := mat.ToUniform()
	gl.Uniform4f(r.matColorLoc, u.Color[0], u.Color[1], u.Color[2], u.Color[3])
	if u.HasGradient == 1 && mat.GradientMap.GLID == 0 {
		if err := UploadTexture(mat.GradientMap); err != nil {
			r.log.Warn("gradient upload failed", "texture", mat.GradientMap.Name, "error", err)
			u.HasGradient = 0
		}
	}
	gl.Uniform1i(r.hasGradientLoc, u.HasGradient)
	if u.HasGradient == 1 {
		gl.ActiveTexture(gl.TEXTURE0)
		gl.BindTexture(gl.TEXTURE_2D, mat.GradientMap.GLID)
	}

	gl.BindVertexArray(gpu.VAO)
	if gpu.HasIndices {
		gl.DrawElements(gl.TRIANGLES, gpu.IndexCount, gl.UNSIGNED_INT, nil)
	} else {
		gl.DrawArrays(gl.TRIANGLES, 0, int32(len(mesh.Vertices)))
	}
	gl.BindVertexArray(0)
}

// DrawPoints draws a point cloud as square sprites. scale is half the render
// target height in pixels, the factor that turns a world size at unit
// distance into pixels.
func (r *Renderer) DrawPoints(p *scene.Points, modelView, proj math.Mat4, mat *materials.Material) {
	if mat == nil {
		return
	}
	r.points.draw(p, modelView, proj, mat.ToUniform(), float32(r.target.Height)*0.5)
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
	r.points.destroy()
	r.target.Destroy()
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
	gl.BufferData(gl.ARRAY_BUFFER, len(mesh.Vertices)*int(stride), gl.Ptr(mesh.Vertices), gl.STATIC_DRAW)

	var v core.Vertex
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, gl.PtrOffset(int(unsafe.Offsetof(v.Position))))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, stride, gl.PtrOffset(int(unsafe.Offsetof(v.Normal))))
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointer(2, 2, gl.FLOAT, false, stride, gl.PtrOffset(int(unsafe.Offsetof(v.UV))))

	if gpu.HasIndices {
		gl.GenBuffers(1, &gpu.EBO)
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, gpu.EBO)
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(mesh.Indices)*4, gl.Ptr(mesh.Indices), gl.STATIC_DRAW)
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
		gl.DeleteShader(vert)
		return 0, fmt.Errorf("fragment: %w", err)
	}

	prog := gl.CreateProgram()
	gl.AttachShader(prog, vert)
	gl.AttachShader(prog, frag)
	gl.LinkProgram(prog)
	gl.DeleteShader(vert)
	gl.DeleteShader(frag)

	var status int32
	gl.GetProgramiv(prog, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(prog, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen+1))
		gl.GetProgramInfoLog(prog, logLen, nil, gl.Str(log))
		gl.DeleteProgram(prog)
		return 0, fmt.Errorf("link failed: %v", log)
	}
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
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("compile failed: %v", log)
	}
	return shader, nil
}
