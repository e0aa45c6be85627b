// Package input owns the viewport, scroll and cursor state written by window
// events and read once per frame as a Snapshot.
package input

import "github.com/chewxy/math32"

// DefaultWheelStep is the distance in pixels one wheel notch scrolls.
const DefaultWheelStep = 100

type Viewport struct {
	Width, Height int
	PixelRatio    float32
}

// ScrollState describes the position in a virtual page made of one
// viewport-tall section per scene object.
type ScrollState struct {
	ScrollY    float32
	MaxScrollY float32
	Section    int
}

// Fraction is ScrollY / MaxScrollY, or 0 when the page does not scroll.
func (s ScrollState) Fraction() float32 {
	if s.MaxScrollY <= 0 {
		return 0
	}
	return s.ScrollY / s.MaxScrollY
}

// Cursor is the pointer position normalized to [-0.5, 0.5] on both axes,
// with Y growing downward.
type Cursor struct {
	X, Y float32
}

// Snapshot is a value copy of the tracked state.
type Snapshot struct {
	Viewport Viewport
	Scroll   ScrollState
	Cursor   Cursor
}

// Tracker is the single owner of input state. Event handlers write to it and
// the frame loop reads it through Snapshot. It is not safe for concurrent
// use; all calls happen on the event loop thread.
type Tracker struct {
	viewport  Viewport
	scroll    ScrollState
	cursor    Cursor
	sections  int
	wheelStep float32

	onSection []func(section int)
	onResize  []func(Viewport)
}

// NewTracker starts at the top of a page with the given number of sections.
func NewTracker(sections int, viewport Viewport) *Tracker {
	if sections < 1 {
		sections = 1
	}
	t := &Tracker{
		viewport:  viewport,
		sections:  sections,
		wheelStep: DefaultWheelStep,
	}
	t.scroll.MaxScrollY = t.maxScroll()
	return t
}

// SetWheelStep changes how far one wheel notch scrolls. Non-positive values
// are ignored.
func (t *Tracker) SetWheelStep(px float32) {
	if px > 0 {
		t.wheelStep = px
	}
}

// OnSectionChange registers fn to run when the current section changes.
func (t *Tracker) OnSectionChange(fn func(section int)) {
	t.onSection = append(t.onSection, fn)
}

// OnResize registers fn to run after the viewport changes.
func (t *Tracker) OnResize(fn func(Viewport)) {
	t.onResize = append(t.onResize, fn)
}

// Wheel applies a mouse wheel offset. A negative yoff scrolls down the page.
func (t *Tracker) Wheel(yoff float64) {
	t.ScrollTo(t.scroll.ScrollY - float32(yoff)*t.wheelStep)
}

// PageDown scrolls one viewport down the page.
func (t *Tracker) PageDown() { t.ScrollTo(t.scroll.ScrollY + float32(t.viewport.Height)) }

// PageUp scrolls one viewport up the page.
func (t *Tracker) PageUp() { t.ScrollTo(t.scroll.ScrollY - float32(t.viewport.Height)) }

// Home jumps to the top of the page.
func (t *Tracker) Home() { t.ScrollTo(0) }

// End jumps to the bottom of the page.
func (t *Tracker) End() { t.ScrollTo(t.scroll.MaxScrollY) }

// ScrollTo moves the page to y, clamped to [0, MaxScrollY], and fires the
// section handlers if the section index changed. It does nothing while the
// viewport has no height, such as when the window is minimized.
func (t *Tracker) ScrollTo(y float32) {
	if t.viewport.Height <= 0 {
		return
	}
	t.scroll.MaxScrollY = t.maxScroll()
	t.scroll.ScrollY = clamp(y, 0, t.scroll.MaxScrollY)
	t.updateSection()
}

// PointerMove records the cursor position given in window coordinates.
func (t *Tracker) PointerMove(px, py float64) {
	if t.viewport.Width <= 0 || t.viewport.Height <= 0 {
		return
	}
	t.cursor.X = float32(px)/float32(t.viewport.Width) - 0.5
	t.cursor.Y = float32(py)/float32(t.viewport.Height) - 0.5
}

// Resize records a new viewport. The scroll position keeps its fraction of
// the page so the same section stays in view. An empty viewport, as sent on
// minimize, leaves the scroll state untouched until a real size arrives.
func (t *Tracker) Resize(width, height int, pixelRatio float32) {
	fraction := t.scroll.Fraction()
	t.viewport = Viewport{Width: width, Height: height, PixelRatio: pixelRatio}
	if width > 0 && height > 0 {
		t.ScrollTo(fraction * t.maxScroll())
	}
	for _, fn := range t.onResize {
		fn(t.viewport)
	}
}

// Snapshot returns a copy of the current viewport, scroll and cursor state.
func (t *Tracker) Snapshot() Snapshot {
	return Snapshot{Viewport: t.viewport, Scroll: t.scroll, Cursor: t.cursor}
}

func (t *Tracker) maxScroll() float32 {
	if t.viewport.Height <= 0 {
		return 0
	}
	return float32((t.sections - 1) * t.viewport.Height)
}

// updateSection clamps the section to a valid object index before comparing
// it with the recorded one, so no out-of-range index is ever reported.
func (t *Tracker) updateSection() {
	if t.viewport.Height <= 0 {
		return
	}
	section := int(math32.Round(t.scroll.ScrollY / float32(t.viewport.Height)))
	if section < 0 {
		section = 0
	} else if section > t.sections-1 {
		section = t.sections - 1
	}
	if section == t.scroll.Section {
		return
	}
	t.scroll.Section = section
	for _, fn := range t.onSection {
		fn(section)
	}
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
