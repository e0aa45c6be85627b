package core

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"

	"scroll-scene/math"
)

// Color holds sRGB components in [0, 1].
type Color struct {
	R, G, B, A float32
}

var (
	ColorWhite = Color{1, 1, 1, 1}
	ColorBlack = Color{0, 0, 0, 1}
)

// ParseHex accepts "#rrggbb" or "#rgb".
func ParseHex(s string) (Color, error) {
	c, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("parse color %q: %w", s, err)
	}
	return FromColorful(c), nil
}

func FromColorful(c colorful.Color) Color {
	c = c.Clamped()
	return Color{R: float32(c.R), G: float32(c.G), B: float32(c.B), A: 1}
}

func (c Color) Colorful() colorful.Color {
	return colorful.Color{R: float64(c.R), G: float64(c.G), B: float64(c.B)}
}

func (c Color) Hex() string {
	return c.Colorful().Hex()
}

// Linear converts the sRGB components to linear light for shading.
func (c Color) Linear() math.Vec3 {
	r, g, b := c.Colorful().LinearRgb()
	return math.Vec3{X: float32(r), Y: float32(g), Z: float32(b)}
}

type Vertex struct {
	Position math.Vec3
	Normal   math.Vec3
	UV       math.Vec2
}

type MeshData struct {
	Vertices []Vertex
	Indices  []uint32
}

// Transform keeps rotation as intrinsic XYZ Euler angles in radians so that
// per-axis increments accumulate without wrapping.
type Transform struct {
	Position math.Vec3
	Rotation math.Vec3
	Scale    math.Vec3
}

func NewTransform() Transform {
	return Transform{
		Position: math.Vec3Zero,
		Rotation: math.Vec3Zero,
		Scale:    math.Vec3One,
	}
}

func (t Transform) GetMatrix() math.Mat4 {
	return math.Mat4TRS(t.Position, t.Rotation, t.Scale)
}

func (t Transform) Quaternion() math.Quaternion {
	return math.QuaternionFromEuler(t.Rotation)
}
