package materials

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scroll-scene/core"
)

func TestLibraryReferenceCounting(t *testing.T) {
	lib := NewLibrary()
	toon := lib.Add(NewToon("toon", core.ColorWhite, nil))
	assert.NotZero(t, toon)
	assert.Equal(t, 1, lib.Len())

	// three meshes share the same material
	for i := 0; i < 3; i++ {
		require.NoError(t, lib.Acquire(toon))
	}
	assert.Equal(t, 3, lib.RefCount(toon))

	err := lib.Remove(toon)
	assert.ErrorIs(t, err, ErrStillReferenced)

	for i := 0; i < 3; i++ {
		require.NoError(t, lib.Release(toon))
	}
	require.NoError(t, lib.Remove(toon))
	assert.Nil(t, lib.Get(toon))
	assert.Equal(t, 0, lib.Len())

	assert.ErrorIs(t, lib.Acquire(toon), ErrUnknownMaterial)
}

func TestLibraryReusesFreedSlots(t *testing.T) {
	lib := NewLibrary()
	a := lib.Add(NewToon("a", core.ColorWhite, nil))
	require.NoError(t, lib.Remove(a))

	b := lib.Add(NewPoints("b", core.ColorWhite, 0.02, true))
	assert.Equal(t, a, b)
	assert.Equal(t, KindPoints, lib.Get(b).Kind)
}

func TestLibrarySetColorUpdatesAll(t *testing.T) {
	lib := NewLibrary()
	toon := lib.Add(NewToon("toon", core.ColorWhite, nil))
	points := lib.Add(NewPoints("points", core.ColorWhite, 0.02, true))

	c := core.Color{R: 0.2, G: 0.4, B: 0.6, A: 1}
	require.NoError(t, lib.SetColor(c, toon, points))
	assert.Equal(t, c, lib.Get(toon).Color)
	assert.Equal(t, lib.Get(toon).Color, lib.Get(points).Color)

	assert.ErrorIs(t, lib.SetColor(c, 99), ErrUnknownMaterial)
}

func TestToUniform(t *testing.T) {
	m := NewPoints("p", core.ColorWhite, 0.02, true)
	u := m.ToUniform()
	assert.InDelta(t, 1, u.Color[0], 1e-6)
	assert.Equal(t, float32(0.02), u.Size)
	assert.Equal(t, int32(1), u.SizeAttenuation)
	assert.Equal(t, int32(0), u.HasGradient)
}
