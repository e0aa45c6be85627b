package opengl

import (
	"fmt"
	"unsafe"

	gl "github.com/go-gl/gl/v4.1-core/gl"

	"scroll-scene/materials"
	"scroll-scene/math"
	"scroll-scene/scene"
)

// ── Points shaders ───────────────────────────────────────────────────────────

// With attenuation the sprite shrinks with view depth so size stays in world
// units.
const pointsVertSrc = `
#version 410 core
layout(location = 0) in vec3 inPos;

uniform mat4  modelView;
uniform mat4  proj;
uniform float size;
uniform float scale;
uniform bool  attenuate;

void main() {
    vec4 mvPos = modelView * vec4(inPos, 1.0);
    gl_PointSize = size;
    if (attenuate) {
        gl_PointSize *= scale / -mvPos.z;
    }
    gl_Position = proj * mvPos;
}
` + "\x00"

const pointsFragSrc = `
#version 410 core
out vec4 outColor;

uniform vec4 color;

void main() {
    outColor = color;
}
` + "\x00"

// ── PointsRenderer ───────────────────────────────────────────────────────────

type gpuPoints struct {
	vao   uint32
	vbo   uint32
	count int32
}

// PointsRenderer owns the GPU resources for drawing static point clouds.
type PointsRenderer struct {
	prog         uint32
	modelViewLoc int32
	projLoc      int32
	sizeLoc      int32
	scaleLoc     int32
	attenuateLoc int32
	colorLoc     int32

	clouds map[*scene.Points]*gpuPoints
}

func newPointsRenderer() (*PointsRenderer, error) {
	prog, err := newProgram(pointsVertSrc, pointsFragSrc)
	if err != nil {
		return nil, fmt.Errorf("points shader: %w", err)
	}
	return &PointsRenderer{
		prog:         prog,
		modelViewLoc: gl.GetUniformLocation(prog, gl.Str("modelView\x00")),
		projLoc:      gl.GetUniformLocation(prog, gl.Str("proj\x00")),
		sizeLoc:      gl.GetUniformLocation(prog, gl.Str("size\x00")),
		scaleLoc:     gl.GetUniformLocation(prog, gl.Str("scale\x00")),
		attenuateLoc: gl.GetUniformLocation(prog, gl.Str("attenuate\x00")),
		colorLoc:     gl.GetUniformLocation(prog, gl.Str("color\x00")),
		clouds:       make(map[*scene.Points]*gpuPoints),
	}, nil
}

// upload creates the static VBO for a cloud on first use. Positions never
// change after creation; motion comes from the node transform.
func (pr *PointsRenderer) upload(p *scene.Points) *gpuPoints {
	if g, ok := pr.clouds[p]; ok {
		return g
	}
	if p.Count() == 0 {
		return nil
	}
	g := &gpuPoints{count: int32(p.Count())}
	gl.GenVertexArrays(1, &g.vao)
	gl.GenBuffers(1, &g.vbo)

	gl.BindVertexArray(g.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, g.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(p.Positions)*4, gl.Ptr(p.Positions), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, 3*4, gl.PtrOffset(0))
	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	pr.clouds[p] = g
	p.GPUData = g
	return g
}

func (pr *PointsRenderer) draw(p *scene.Points, modelView, proj math.Mat4, u materials.MaterialUniform, scale float32) {
	g := pr.upload(p)
	if g == nil {
		return
	}

	gl.UseProgram(pr.prog)
	gl.UniformMatrix4fv(pr.modelViewLoc, 1, false, (*float32)(unsafe.Pointer(&modelView[0][0])))
	gl.UniformMatrix4fv(pr.projLoc, 1, false, (*float32)(unsafe.Pointer(&proj[0][0])))
	gl.Uniform1f(pr.sizeLoc, u.Size)
	gl.Uniform1f(pr.scaleLoc, scale)
	gl.Uniform1i(pr.attenuateLoc, u.SizeAttenuation)
	gl.Uniform4f(pr.colorLoc, u.Color[0], u.Color[1], u.Color[2], u.Color[3])

	gl.BindVertexArray(g.vao)
	gl.DrawArrays(gl.POINTS, 0, g.count)
	gl.BindVertexArray(0)
}

func (pr *PointsRenderer) destroy() {
	for p, g := range pr.clouds {
		gl.DeleteVertexArrays(1, &g.vao)
		gl.DeleteBuffers(1, &g.vbo)
		p.GPUData = nil
	}
	pr.clouds = nil
	gl.DeleteProgram(pr.prog)
}
