package animation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"scroll-scene/math"
)

type rotation struct {
	v     math.Vec3
	calls int
}

func (r *rotation) Rotate(delta math.Vec3) {
	r.v = r.v.Add(delta)
	r.calls++
}

var impulse = math.NewVec3(6, 3, 1.5)

func TestEaseBounds(t *testing.T) {
	for _, ease := range []Ease{Linear, QuadOut} {
		assert.Equal(t, float32(0), ease(0))
		assert.Equal(t, float32(1), ease(1))
		prev := float32(0)
		for i := 1; i <= 100; i++ {
			v := ease(float32(i) / 100)
			assert.GreaterOrEqual(t, v, prev)
			prev = v
		}
	}
}

func TestRotationCompletesExactly(t *testing.T) {
	slicings := map[string][]float32{
		"60fps":   repeat(1.0/60, 120),
		"uneven":  {0.01, 0.5, 0.02, 0.3, 0.9},
		"one big": {10},
	}
	for name, steps := range slicings {
		t.Run(name, func(t *testing.T) {
			tl := NewTimeline()
			r := &rotation{}
			tl.AddRotation(r, impulse, 1.5, nil)
			for _, dt := range steps {
				tl.Advance(dt)
			}
			assert.Equal(t, 0, tl.Len())
			assert.InDelta(t, 6, r.v.X, 1e-5)
			assert.InDelta(t, 3, r.v.Y, 1e-5)
			assert.InDelta(t, 1.5, r.v.Z, 1e-5)
		})
	}
}

func TestRotationIsEasedOut(t *testing.T) {
	tl := NewTimeline()
	r := &rotation{}
	tl.AddRotation(r, impulse, 1.5, nil)

	tl.Advance(0.75)
	// halfway in time is three quarters of the way with a quadratic ease-out
	assert.InDelta(t, 4.5, r.v.X, 1e-5)
	assert.Equal(t, 1, tl.Len())
}

func TestOverlappingRotationsSum(t *testing.T) {
	tl := NewTimeline()
	r := &rotation{}
	tl.AddRotation(r, impulse, 1.5, nil)
	tl.Advance(0.5)
	tl.AddRotation(r, impulse, 1.5, nil)
	assert.Equal(t, 2, tl.Len())

	for i := 0; i < 200; i++ {
		tl.Advance(1.0 / 60)
	}
	assert.Equal(t, 0, tl.Len())
	assert.InDelta(t, 12, r.v.X, 1e-4)
	assert.InDelta(t, 6, r.v.Y, 1e-4)
	assert.InDelta(t, 3, r.v.Z, 1e-4)
}

func TestRotationComposesWithOtherIncrements(t *testing.T) {
	tl := NewTimeline()
	r := &rotation{}
	tl.AddRotation(r, impulse, 1.5, Linear)

	var spin float32
	for i := 0; i < 90; i++ {
		dt := float32(1.0 / 60)
		r.Rotate(math.NewVec3(dt*0.2, dt*0.12, 0))
		spin += dt * 0.2
		tl.Advance(dt)
	}
	assert.InDelta(t, 6+spin, r.v.X, 1e-4)
}

func TestZeroDurationAppliesImmediately(t *testing.T) {
	tl := NewTimeline()
	r := &rotation{}
	tl.AddRotation(r, impulse, 0, nil)
	tl.Advance(0)
	assert.Equal(t, impulse, r.v)
	assert.Equal(t, 0, tl.Len())
}

func repeat(v float32, n int) []float32 {
	out := make([]float32, n)
	for i := range out {
		out[i] = v
	}
	return out
}
