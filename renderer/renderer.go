// Package renderer drives the OpenGL backend for a scene and its camera.
package renderer

import (
	"fmt"
	"log/slog"

	"github.com/chewxy/math32"

	"scroll-scene/internal/opengl"
	"scroll-scene/platform"
	"scroll-scene/scene"
)

// Stats counts what the last Render call drew.
type Stats struct {
	Objects   int
	Vertices  int
	Triangles int
	Points    int
}

// RenderEngine is the high-level renderer that drives the OpenGL backend.
// The scene is drawn into an off-screen target of viewport size times pixel
// ratio, then scaled onto the window framebuffer.
type RenderEngine struct {
	gl     *opengl.Renderer
	window *platform.Window
	log    *slog.Logger

	width, height int // viewport in window coordinates
	pixelRatio    float32

	last Stats
}

func NewRenderEngine(window *platform.Window, logger *slog.Logger) (*RenderEngine, error) {
	if logger == nil {
		logger = slog.Default()
	}
	glRenderer, err := opengl.NewRenderer(logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create OpenGL renderer: %w", err)
	}

	re := &RenderEngine{
		gl:         glRenderer,
		window:     window,
		log:        logger,
		width:      window.Width,
		height:     window.Height,
		pixelRatio: 1,
	}
	re.syncSize()
	logger.Info("render engine initialized", "width", re.width, "height", re.height)
	return re, nil
}

// SetSize sets the viewport size in window coordinates.
func (re *RenderEngine) SetSize(width, height int) {
	re.width, re.height = width, height
	re.syncSize()
}

// SetPixelRatio sets how many render pixels cover one window unit.
func (re *RenderEngine) SetPixelRatio(ratio float32) {
	if ratio <= 0 {
		ratio = 1
	}
	re.pixelRatio = ratio
	re.syncSize()
}

// syncSize derives the render target from the framebuffer, which already
// holds the display's full density. A capped ratio below that density
// renders fewer pixels and lets the blit scale them up.
func (re *RenderEngine) syncSize() {
	fbw, fbh := re.window.GetFramebufferSize()
	re.gl.SetViewport(fbw, fbh)
	scale := math32.Min(re.pixelRatio/re.window.PixelRatio(), 1)
	w := int(math32.Floor(float32(fbw) * scale))
	h := int(math32.Floor(float32(fbh) * scale))
	re.gl.SetRenderSize(w, h)
}

// Render draws every visible mesh and point cloud of s through cam and
// resolves the result onto the window framebuffer.
func (re *RenderEngine) Render(s *scene.Scene, cam *scene.Camera) error {
	if s == nil || cam == nil {
		return fmt.Errorf("no scene or camera")
	}

	var light *scene.Light
	if len(s.Lights) > 0 {
		light = s.Lights[0]
	}
	re.gl.BeginFrame(s.Background, light)

	view := cam.GetViewMatrix()
	proj := cam.GetProjectionMatrix()
	vp := view.Mul(proj)

	var st Stats
	for _, node := range s.MeshNodes() {
		model := node.GetWorldMatrix()
		re.gl.DrawMesh(node.Mesh, model.Mul(vp), model, s.Materials.Get(node.Material))
		st.Objects++
		st.Vertices += len(node.Mesh.Vertices)
		st.Triangles += len(node.Mesh.Indices) / 3
	}
	for _, node := range s.PointNodes() {
		modelView := node.GetWorldMatrix().Mul(view)
		re.gl.DrawPoints(node.Points, modelView, proj, s.Materials.Get(node.Material))
		st.Objects++
		st.Points += node.Points.Count()
	}

	re.gl.EndFrame()
	re.last = st
	return nil
}

// Present swaps the window buffers. With vsync on it blocks until the next
// display refresh.
func (re *RenderEngine) Present() {
	re.window.SwapBuffers()
}

// DrawStats returns the counters of the last frame.
func (re *RenderEngine) DrawStats() Stats {
	return re.last
}

// RenderSize returns the off-screen target size in pixels.
func (re *RenderEngine) RenderSize() (int, int) {
	return re.gl.RenderSize()
}

func (re *RenderEngine) Destroy() {
	re.gl.Destroy()
}
