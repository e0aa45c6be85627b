package textures

import (
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"sync"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// Filter selects how the GPU samples a texture.
type Filter int

const (
	FilterLinear Filter = iota
	// FilterNearest keeps hard steps between texels, which a toon gradient
	// relies on.
	FilterNearest
)

// Texture holds CPU-side RGBA8 pixels. GLID is set by the OpenGL backend
// after upload.
type Texture struct {
	Name   string
	Width  int
	Height int
	Pixels []byte
	Filter Filter
	GLID   uint32
}

// Load decodes a PNG, JPEG, BMP or WebP file into an RGBA8 texture.
func Load(path string) (*Texture, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open texture %q: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode texture %q: %w", path, err)
	}

	bounds := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, bounds.Min, draw.Src)

	return &Texture{
		Name:   path,
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
		Pixels: rgba.Pix,
	}, nil
}

// NewGradient builds a 1-pixel-tall grayscale ramp with the given number of
// bands, brightest on the right. Band i has level (i+1)/bands.
func NewGradient(name string, bands int) *Texture {
	if bands < 1 {
		bands = 1
	}
	pixels := make([]byte, bands*4)
	for i := 0; i < bands; i++ {
		v := byte((i + 1) * 255 / bands)
		pixels[i*4] = v
		pixels[i*4+1] = v
		pixels[i*4+2] = v
		pixels[i*4+3] = 255
	}
	return &Texture{
		Name:   name,
		Width:  bands,
		Height: 1,
		Pixels: pixels,
		Filter: FilterNearest,
	}
}

// Manager caches decoded textures by path.
type Manager struct {
	textures map[string]*Texture
	mu       sync.RWMutex
}

func NewManager() *Manager {
	return &Manager{textures: make(map[string]*Texture)}
}

// Load returns the cached texture for path, decoding it on first use.
func (m *Manager) Load(path string) (*Texture, error) {
	m.mu.RLock()
	if tex, ok := m.textures[path]; ok {
		m.mu.RUnlock()
		return tex, nil
	}
	m.mu.RUnlock()

	tex, err := Load(path)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.textures[path] = tex
	m.mu.Unlock()
	return tex, nil
}

// GradientOrFallback loads the gradient map at path with nearest filtering.
// When the file cannot be read a procedural ramp with the given band count
// is returned together with the load error, so the caller can report it.
func (m *Manager) GradientOrFallback(path string, bands int) (*Texture, error) {
	if path == "" {
		return m.fallback(bands), nil
	}
	tex, err := m.Load(path)
	if err != nil {
		return m.fallback(bands), err
	}
	tex.Filter = FilterNearest
	return tex, nil
}

func (m *Manager) fallback(bands int) *Texture {
	key := fmt.Sprintf("__gradient_%d__", bands)
	m.mu.Lock()
	defer m.mu.Unlock()
	if tex, ok := m.textures[key]; ok {
		return tex
	}
	tex := NewGradient(key, bands)
	m.textures[key] = tex
	return tex
}

// All returns every cached texture.
func (m *Manager) All() []*Texture {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*Texture, 0, len(m.textures))
	for _, tex := range m.textures {
		out = append(out, tex)
	}
	return out
}
