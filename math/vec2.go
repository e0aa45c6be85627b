package math

import "github.com/chewxy/math32"

type Vec2 struct {
	X, Y float32
}

func NewVec2(x, y float32) Vec2 {
	return Vec2{X: x, Y: y}
}

func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{X: v.X + other.X, Y: v.Y + other.Y}
}

func (v Vec2) Sub(other Vec2) Vec2 {
	return Vec2{X: v.X - other.X, Y: v.Y - other.Y}
}

func (v Vec2) Mul(scalar float32) Vec2 {
	return Vec2{X: v.X * scalar, Y: v.Y * scalar}
}

func (v Vec2) Length() float32 {
	return math32.Hypot(v.X, v.Y)
}

// Approach moves v toward target by the fraction rate, clamped to [0, 1]
// so a long frame never carries v past target.
func (v Vec2) Approach(target Vec2, rate float32) Vec2 {
	if rate > 1 {
		rate = 1
	} else if rate < 0 {
		rate = 0
	}
	return v.Add(target.Sub(v).Mul(rate))
}
