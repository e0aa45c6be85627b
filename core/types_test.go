package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scroll-scene/math"
)

func TestParseHex(t *testing.T) {
	c, err := ParseHex("#fb4dfe")
	require.NoError(t, err)
	assert.InDelta(t, 251.0/255.0, c.R, 1e-6)
	assert.InDelta(t, 77.0/255.0, c.G, 1e-6)
	assert.InDelta(t, 254.0/255.0, c.B, 1e-6)
	assert.Equal(t, float32(1), c.A)
	assert.Equal(t, "#fb4dfe", c.Hex())

	_, err = ParseHex("pink")
	assert.Error(t, err)
}

func TestColorLinear(t *testing.T) {
	lin := ColorWhite.Linear()
	assert.InDelta(t, 1, lin.X, 1e-6)

	mid := Color{R: 0.5, G: 0.5, B: 0.5, A: 1}.Linear()
	assert.Less(t, mid.X, float32(0.5))
	assert.Greater(t, mid.X, float32(0.2))
}

func TestTransformMatrix(t *testing.T) {
	tr := NewTransform()
	tr.Position = math.NewVec3(1.5, -4, 0)

	p := tr.GetMatrix().MulVec3(math.Vec3Zero)
	assert.Equal(t, tr.Position, p)
}
