// Package animation runs short additive tweens alongside per-frame motion.
//
// A task never writes an absolute value. Each Advance hands its target the
// increment between the previous and current eased progress, so tasks on the
// same target stack with each other and with any other per-frame change.
package animation

import "scroll-scene/math"

// Ease maps linear progress in [0, 1] to eased progress in [0, 1].
type Ease func(t float32) float32

// Linear is the identity ease.
func Linear(t float32) float32 { return t }

// QuadOut decelerates toward the end.
func QuadOut(t float32) float32 {
	return 1 - (1-t)*(1-t)
}

// Rotator receives rotation increments in radians.
type Rotator interface {
	Rotate(delta math.Vec3)
}

type task struct {
	target   Rotator
	delta    math.Vec3
	duration float32
	elapsed  float32
	applied  math.Vec3
	ease     Ease
}

// Timeline holds the running tasks. It is driven from the frame loop and is
// not safe for concurrent use.
type Timeline struct {
	tasks []*task
}

func NewTimeline() *Timeline {
	return &Timeline{}
}

// AddRotation starts a task that rotates target by delta over duration
// seconds. A nil ease means QuadOut. A non-positive duration applies delta
// on the next Advance.
func (tl *Timeline) AddRotation(target Rotator, delta math.Vec3, duration float32, ease Ease) {
	if ease == nil {
		ease = QuadOut
	}
	tl.tasks = append(tl.tasks, &task{
		target:   target,
		delta:    delta,
		duration: duration,
		ease:     ease,
	})
}

// Advance moves every task forward by dt seconds and drops finished ones.
// A finished task has applied exactly its delta regardless of how the time
// was sliced.
func (tl *Timeline) Advance(dt float32) {
	if dt < 0 {
		dt = 0
	}
	live := tl.tasks[:0]
	for _, t := range tl.tasks {
		t.elapsed += dt
		var want math.Vec3
		done := t.duration <= 0 || t.elapsed >= t.duration
		if done {
			want = t.delta
		} else {
			want = t.delta.Mul(t.ease(t.elapsed / t.duration))
		}
		step := want.Sub(t.applied)
		t.applied = want
		t.target.Rotate(step)
		if !done {
			live = append(live, t)
		}
	}
	for i := len(live); i < len(tl.tasks); i++ {
		tl.tasks[i] = nil
	}
	tl.tasks = live
}

// Len reports the number of running tasks.
func (tl *Timeline) Len() int {
	return len(tl.tasks)
}
