package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTracker() (*Tracker, *[]int) {
	tr := NewTracker(3, Viewport{Width: 800, Height: 600, PixelRatio: 1})
	var fired []int
	tr.OnSectionChange(func(s int) { fired = append(fired, s) })
	return tr, &fired
}

func TestScrollBounds(t *testing.T) {
	tr, _ := newTracker()
	s := tr.Snapshot().Scroll
	assert.Equal(t, float32(1200), s.MaxScrollY)
	assert.Equal(t, float32(0), s.Fraction())

	tr.ScrollTo(-50)
	assert.Equal(t, float32(0), tr.Snapshot().Scroll.ScrollY)
	tr.ScrollTo(5000)
	assert.Equal(t, float32(1200), tr.Snapshot().Scroll.ScrollY)
	assert.Equal(t, float32(1), tr.Snapshot().Scroll.Fraction())
}

func TestFractionWithoutScrollableRange(t *testing.T) {
	tr := NewTracker(1, Viewport{Width: 800, Height: 600})
	tr.ScrollTo(300)
	s := tr.Snapshot().Scroll
	assert.Equal(t, float32(0), s.MaxScrollY)
	assert.Equal(t, float32(0), s.Fraction())

	assert.Equal(t, float32(0), ScrollState{ScrollY: 10}.Fraction())
}

func TestSectionTransitions(t *testing.T) {
	tests := []struct {
		name     string
		from, to float32 // in viewport heights
		want     []int
	}{
		{"crossing down", 0.4, 0.6, []int{1}},
		{"crossing up", 0.6, 0.4, []int{1, 0}},
		{"within section", 0.1, 0.2, nil},
		{"two sections at once", 0, 2, []int{2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, fired := newTracker()
			tr.ScrollTo(tt.from * 600)
			tr.ScrollTo(tt.to * 600)
			assert.Equal(t, tt.want, *fired)
		})
	}
}

func TestSectionNeverOutOfRange(t *testing.T) {
	tr, fired := newTracker()
	tr.End()
	for i := 0; i < 20; i++ {
		tr.Wheel(-1)
	}
	require.Equal(t, []int{2}, *fired)
	assert.Equal(t, 2, tr.Snapshot().Scroll.Section)
}

func TestWheelAndKeys(t *testing.T) {
	tr, fired := newTracker()
	tr.Wheel(-1)
	assert.Equal(t, float32(100), tr.Snapshot().Scroll.ScrollY)

	tr.SetWheelStep(0)
	tr.Wheel(1)
	assert.Equal(t, float32(0), tr.Snapshot().Scroll.ScrollY)

	tr.PageDown()
	assert.Equal(t, float32(600), tr.Snapshot().Scroll.ScrollY)
	tr.End()
	tr.Home()
	tr.PageUp()
	assert.Equal(t, float32(0), tr.Snapshot().Scroll.ScrollY)
	assert.Equal(t, []int{1, 2, 0}, *fired)
}

func TestPointerNormalization(t *testing.T) {
	tr, _ := newTracker()
	tests := []struct {
		px, py float64
		want   Cursor
	}{
		{0, 0, Cursor{-0.5, -0.5}},
		{400, 300, Cursor{0, 0}},
		{800, 600, Cursor{0.5, 0.5}},
		{200, 450, Cursor{-0.25, 0.25}},
	}
	for _, tt := range tests {
		tr.PointerMove(tt.px, tt.py)
		assert.Equal(t, tt.want, tr.Snapshot().Cursor)
	}
}

func TestResizeKeepsSectionAndNotifies(t *testing.T) {
	tr, fired := newTracker()
	var got []Viewport
	tr.OnResize(func(v Viewport) { got = append(got, v) })

	tr.ScrollTo(600)
	tr.Resize(1000, 300, 3)

	s := tr.Snapshot()
	assert.Equal(t, float32(600), s.Scroll.MaxScrollY)
	assert.Equal(t, float32(300), s.Scroll.ScrollY)
	assert.Equal(t, 1, s.Scroll.Section)
	assert.Equal(t, []int{1}, *fired)
	require.Len(t, got, 1)
	assert.Equal(t, Viewport{Width: 1000, Height: 300, PixelRatio: 3}, got[0])
}

func TestMinimizeRestoreKeepsScroll(t *testing.T) {
	tr := NewTracker(3, Viewport{Width: 1280, Height: 720, PixelRatio: 1})
	var fired []int
	tr.OnSectionChange(func(s int) { fired = append(fired, s) })
	var resized int
	tr.OnResize(func(Viewport) { resized++ })

	tr.End()
	require.Equal(t, []int{2}, fired)

	tr.Resize(0, 0, 1)
	minimized := tr.Snapshot()
	assert.Equal(t, float32(1440), minimized.Scroll.ScrollY)
	assert.Equal(t, float32(1440), minimized.Scroll.MaxScrollY)
	assert.Equal(t, 2, minimized.Scroll.Section)

	tr.Wheel(1)
	tr.PageUp()
	assert.Equal(t, float32(1440), tr.Snapshot().Scroll.ScrollY)

	tr.Resize(1280, 720, 1)
	restored := tr.Snapshot().Scroll
	assert.Equal(t, float32(1440), restored.ScrollY)
	assert.Equal(t, 2, restored.Section)
	assert.Equal(t, []int{2}, fired)
	assert.Equal(t, 2, resized)
}

func TestSnapshotIsACopy(t *testing.T) {
	tr, _ := newTracker()
	snap := tr.Snapshot()
	tr.PointerMove(800, 600)
	assert.Equal(t, Cursor{}, snap.Cursor)
}
