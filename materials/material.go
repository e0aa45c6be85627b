package materials

import (
	"scroll-scene/core"
	"scroll-scene/textures"
)

// Kind selects the shading model a material is drawn with.
type Kind int

const (
	// KindToon quantizes diffuse lighting through a gradient map.
	KindToon Kind = iota
	// KindPoints draws unlit square sprites.
	KindPoints
)

func (k Kind) String() string {
	switch k {
	case KindToon:
		return "toon"
	case KindPoints:
		return "points"
	default:
		return "unknown"
	}
}

// Material describes surface appearance for a mesh or a point cloud.
type Material struct {
	Name  string
	Kind  Kind
	Color core.Color

	// Toon
	GradientMap *textures.Texture

	// Points
	Size            float32 // world-space sprite size
	SizeAttenuation bool    // shrink sprites with distance
}

// MaterialUniform is the GPU-side view of a material. Color is in linear
// light.
type MaterialUniform struct {
	Color           [4]float32
	Size            float32
	SizeAttenuation int32
	HasGradient     int32
}

// NewToon creates a toon material with an optional gradient map.
func NewToon(name string, color core.Color, gradient *textures.Texture) *Material {
	return &Material{
		Name:        name,
		Kind:        KindToon,
		Color:       color,
		GradientMap: gradient,
	}
}

// NewPoints creates a point sprite material.
func NewPoints(name string, color core.Color, size float32, attenuate bool) *Material {
	return &Material{
		Name:            name,
		Kind:            KindPoints,
		Color:           color,
		Size:            size,
		SizeAttenuation: attenuate,
	}
}

// ToUniform converts the material to its GPU representation
func (m *Material) ToUniform() MaterialUniform {
	lin := m.Color.Linear()
	u := MaterialUniform{
		Color: [4]float32{lin.X, lin.Y, lin.Z, m.Color.A},
		Size:  m.Size,
	}
	if m.SizeAttenuation {
		u.SizeAttenuation = 1
	}
	if m.GradientMap != nil {
		u.HasGradient = 1
	}
	return u
}
