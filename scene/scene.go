package scene

import (
	"scroll-scene/core"
	"scroll-scene/materials"
	"scroll-scene/math"
)

// Scene manages a collection of nodes, their materials and the active camera
type Scene struct {
	Root       *Node
	Camera     *Camera
	Lights     []*Light
	Materials  *materials.Library
	Background core.Color
}

// Light is a directional light. Position is where it shines from; the light
// travels from Position toward the origin.
type Light struct {
	Position  math.Vec3
	Color     core.Color
	Intensity float32
}

// Direction returns the unit vector pointing from the surface toward the
// light.
func (l *Light) Direction() math.Vec3 {
	return l.Position.Normalize()
}

func NewScene() *Scene {
	return &Scene{
		Root:       NewNode("Root"),
		Lights:     make([]*Light, 0),
		Materials:  materials.NewLibrary(),
		Background: core.ColorBlack,
	}
}

func (s *Scene) SetCamera(camera *Camera) {
	s.Camera = camera
}

func (s *Scene) AddNode(node *Node) {
	s.Root.AddChild(node)
}

func (s *Scene) AddLight(light *Light) {
	s.Lights = append(s.Lights, light)
}

// AttachMaterial sets node's material and takes a reference on it, dropping
// the reference to any material the node used before.
func (s *Scene) AttachMaterial(node *Node, id materials.ID) error {
	if err := s.Materials.Acquire(id); err != nil {
		return err
	}
	if node.Material != 0 {
		if err := s.Materials.Release(node.Material); err != nil {
			return err
		}
	}
	node.Material = id
	return nil
}

// MeshNodes returns visible nodes with a mesh, in traversal order.
func (s *Scene) MeshNodes() []*Node {
	var out []*Node
	s.Root.Traverse(func(node *Node) {
		if node.Visible && node.Mesh != nil {
			out = append(out, node)
		}
	})
	return out
}

// PointNodes returns visible nodes with a point cloud.
func (s *Scene) PointNodes() []*Node {
	var out []*Node
	s.Root.Traverse(func(node *Node) {
		if node.Visible && node.Points != nil {
			out = append(out, node)
		}
	})
	return out
}
