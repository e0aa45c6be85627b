package platform

import (
	"fmt"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
)

func init() {
	runtime.LockOSThread()
}

type Window struct {
	Handle *glfw.Window
	Width  int
	Height int
	Title  string
}

type WindowConfig struct {
	Width     int
	Height    int
	Title     string
	Resizable bool
	VSync     bool
}

func DefaultWindowConfig() WindowConfig {
	return WindowConfig{
		Width:     1280,
		Height:    720,
		Title:     "Scroll Scene",
		Resizable: true,
		VSync:     true,
	}
}

// NewWindow opens a window with a current OpenGL 4.1 core context.
func NewWindow(config WindowConfig) (*Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize GLFW: %w", err)
	}

	glfw.WindowHint(glfw.ClientAPI, glfw.OpenGLAPI)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, boolToInt(config.Resizable))
	glfw.WindowHint(glfw.ScaleToMonitor, glfw.True)

	handle, err := glfw.CreateWindow(config.Width, config.Height, config.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("failed to create window: %w", err)
	}
	handle.MakeContextCurrent()
	if config.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	width, height := handle.GetSize()
	window := &Window{
		Handle: handle,
		Width:  width,
		Height: height,
		Title:  config.Title,
	}

	return window, nil
}

func (w *Window) ShouldClose() bool {
	return w.Handle.ShouldClose()
}

func (w *Window) SetShouldClose(v bool) {
	w.Handle.SetShouldClose(v)
}

func (w *Window) PollEvents() {
	glfw.PollEvents()
}

func (w *Window) SwapBuffers() {
	w.Handle.SwapBuffers()
}

func (w *Window) GetFramebufferSize() (int, int) {
	return w.Handle.GetFramebufferSize()
}

// PixelRatio reports the device pixel ratio of the monitor the window is on.
func (w *Window) PixelRatio() float32 {
	x, y := w.Handle.GetContentScale()
	if y > x {
		x = y
	}
	if x <= 0 {
		return 1
	}
	return x
}

func (w *Window) Destroy() {
	w.Handle.Destroy()
	glfw.Terminate()
}

func (w *Window) IsKeyPressed(key int) bool {
	return w.Handle.GetKey(glfw.Key(key)) == glfw.Press
}

func (w *Window) SetTitle(title string) {
	w.Handle.SetTitle(title)
	w.Title = title
}

func (w *Window) GetCursorPos() (float64, float64) {
	return w.Handle.GetCursorPos()
}

// ScrollCallback is the type for scroll event handlers
type ScrollCallback func(xoff, yoff float64)

func (w *Window) SetScrollCallback(cb ScrollCallback) {
	w.Handle.SetScrollCallback(func(win *glfw.Window, xoff, yoff float64) {
		cb(xoff, yoff)
	})
}

// CursorCallback receives the cursor position in window coordinates.
type CursorCallback func(x, y float64)

func (w *Window) SetCursorCallback(cb CursorCallback) {
	w.Handle.SetCursorPosCallback(func(win *glfw.Window, x, y float64) {
		cb(x, y)
	})
}

// ResizeCallback receives the logical window size and the device pixel ratio.
type ResizeCallback func(width, height int, pixelRatio float32)

// SetResizeCallback fires on window size changes and on content scale
// changes, such as dragging the window to a monitor with a different density.
func (w *Window) SetResizeCallback(cb ResizeCallback) {
	w.Handle.SetSizeCallback(func(win *glfw.Window, width, height int) {
		w.Width = width
		w.Height = height
		cb(width, height, w.PixelRatio())
	})
	w.Handle.SetContentScaleCallback(func(win *glfw.Window, x, y float32) {
		cb(w.Width, w.Height, w.PixelRatio())
	})
}

// KeyCallback receives key presses and repeats.
type KeyCallback func(key int, ctrl bool)

func (w *Window) SetKeyCallback(cb KeyCallback) {
	w.Handle.SetKeyCallback(func(win *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if action == glfw.Release {
			return
		}
		cb(int(key), mods&(glfw.ModControl|glfw.ModSuper) != 0)
	})
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

const (
	KeyLeftBracket  = int(glfw.KeyLeftBracket)
	KeyRightBracket = int(glfw.KeyRightBracket)
	KeyR            = int(glfw.KeyR)
	KeyY            = int(glfw.KeyY)
	KeyZ            = int(glfw.KeyZ)
	KeyEscape       = int(glfw.KeyEscape)
	KeyPageUp       = int(glfw.KeyPageUp)
	KeyPageDown     = int(glfw.KeyPageDown)
	KeyHome         = int(glfw.KeyHome)
	KeyEnd          = int(glfw.KeyEnd)
	KeyUp           = int(glfw.KeyUp)
	KeyDown         = int(glfw.KeyDown)
	KeyF1           = int(glfw.KeyF1)
	KeyF5           = int(glfw.KeyF5)
)
