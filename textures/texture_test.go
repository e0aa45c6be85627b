package textures

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePNG(t *testing.T, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, 0, color.RGBA{R: uint8(x * 100), G: 0, B: 0, A: 255})
	}
	path := filepath.Join(t.TempDir(), "gradient.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())
	return path
}

func TestNewGradient(t *testing.T) {
	tex := NewGradient("g", 3)
	assert.Equal(t, 3, tex.Width)
	assert.Equal(t, 1, tex.Height)
	assert.Equal(t, FilterNearest, tex.Filter)
	assert.Len(t, tex.Pixels, 12)
	assert.Equal(t, byte(85), tex.Pixels[0])
	assert.Equal(t, byte(170), tex.Pixels[4])
	assert.Equal(t, byte(255), tex.Pixels[8])
}

func TestLoad(t *testing.T) {
	path := writePNG(t, 3, 1)

	tex, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3, tex.Width)
	assert.Equal(t, 1, tex.Height)
	assert.Equal(t, byte(200), tex.Pixels[8])
}

func TestManagerCachesAndFallsBack(t *testing.T) {
	m := NewManager()
	path := writePNG(t, 3, 1)

	a, err := m.GradientOrFallback(path, 3)
	require.NoError(t, err)
	b, err := m.Load(path)
	require.NoError(t, err)
	assert.Same(t, a, b)
	assert.Equal(t, FilterNearest, a.Filter)

	fb, err := m.GradientOrFallback(filepath.Join(t.TempDir(), "missing.jpg"), 3)
	assert.Error(t, err)
	require.NotNil(t, fb)
	assert.Equal(t, 3, fb.Width)
	assert.Len(t, m.All(), 2)
}
