package scene

import (
	"scroll-scene/core"
)

// Mesh holds CPU-side vertex/index data.
// GPU upload is managed by the renderer backend.
type Mesh struct {
	Name       string
	Vertices   []core.Vertex
	Indices    []uint32
	IndexCount uint32

	// GPUData is set by the renderer backend (e.g. *opengl.GPUMesh).
	// Do not access directly; use the renderer's API.
	GPUData interface{}
}

func CreateMeshFromData(name string, vertices []core.Vertex, indices []uint32) *Mesh {
	return &Mesh{
		Name:       name,
		Vertices:   vertices,
		Indices:    indices,
		IndexCount: uint32(len(indices)),
	}
}

// Points is a static cloud of positions drawn as screen-facing sprites.
type Points struct {
	Name string
	// Positions is a flat x,y,z buffer.
	Positions []float32

	GPUData interface{}
}

func NewPoints(name string, positions []float32) *Points {
	return &Points{Name: name, Positions: positions}
}

func (p *Points) Count() int {
	return len(p.Positions) / 3
}
