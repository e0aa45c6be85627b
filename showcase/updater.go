package showcase

import (
	"time"

	"github.com/chewxy/math32"

	"scroll-scene/animation"
	"scroll-scene/input"
	"scroll-scene/io"
	"scroll-scene/math"
	"scroll-scene/scene"
)

// Surface is the part of the rendering engine the frame loop drives.
type Surface interface {
	SetSize(width, height int)
	SetPixelRatio(ratio float32)
	Render(s *scene.Scene, cam *scene.Camera) error
}

// Clock measures frame delta and total elapsed time in seconds.
type Clock struct {
	now   func() time.Time
	start time.Time
	last  time.Time
}

// NewClock starts a clock on the given time source; nil means time.Now.
func NewClock(now func() time.Time) *Clock {
	if now == nil {
		now = time.Now
	}
	t := now()
	return &Clock{now: now, start: t, last: t}
}

// Tick returns the seconds since the previous tick and since the clock
// started.
func (c *Clock) Tick() (delta, elapsed float32) {
	t := c.now()
	delta = float32(t.Sub(c.last).Seconds())
	elapsed = float32(t.Sub(c.start).Seconds())
	c.last = t
	return delta, elapsed
}

// Updater advances the world once per frame from an input snapshot.
type Updater struct {
	world    *World
	surface  Surface
	timeline *animation.Timeline
	target   math.Vec2
}

func NewUpdater(w *World, surface Surface) *Updater {
	return &Updater{world: w, surface: surface, timeline: animation.NewTimeline()}
}

// OnSection queues the rotation impulse for the mesh of a newly reached
// section. Indices outside the mesh list are ignored.
func (u *Updater) OnSection(section int) {
	if section < 0 || section >= len(u.world.Meshes) {
		return
	}
	m := u.world.Config.Motion
	u.timeline.AddRotation(u.world.Meshes[section], io.ArrayToVec3(m.Impulse), m.ImpulseDuration, animation.QuadOut)
}

// Pending reports how many impulses are still running.
func (u *Updater) Pending() int { return u.timeline.Len() }

// Target is the smoothed parallax position the camera follows.
func (u *Updater) Target() math.Vec2 { return u.target }

// Frame applies idle spin and impulses, moves the rig with the scroll, eases
// the camera toward the cursor, drifts the particles and renders once.
func (u *Updater) Frame(in input.Snapshot, delta, elapsed float32) error {
	w := u.world
	m := w.Config.Motion

	spin := math.NewVec3(delta*m.IdleSpin[0], delta*m.IdleSpin[1], 0)
	for _, n := range w.Meshes {
		n.Rotate(spin)
	}
	u.timeline.Advance(delta)

	if len(w.Meshes) > 0 {
		lowest := w.Meshes[len(w.Meshes)-1].Transform.Position.Y
		pos := w.Rig.Transform.Position
		pos.Y = in.Scroll.Fraction() * lowest
		w.Rig.SetPosition(pos)
	}

	goal := math.NewVec2(in.Cursor.X, -in.Cursor.Y)
	u.target = u.target.Approach(goal, delta*m.ParallaxRate)
	cam := w.Camera.Position()
	w.Camera.SetPosition(math.NewVec3(u.target.X, u.target.Y, cam.Z))

	rot := w.Particles.Transform.Rotation
	rot.Y = elapsed * math32.Pi * m.DriftSpeed
	w.Particles.SetRotation(rot)

	return u.surface.Render(w.Scene, w.Camera)
}

// Resize updates the camera aspect and the surface size, capping the pixel
// ratio at maxRatio.
func Resize(cam *scene.Camera, surface Surface, vp input.Viewport, maxRatio float32) {
	cam.UpdateAspectRatio(float32(vp.Width), float32(vp.Height))
	surface.SetSize(vp.Width, vp.Height)
	surface.SetPixelRatio(math32.Min(vp.PixelRatio, maxRatio))
}
