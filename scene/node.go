package scene

import (
	"scroll-scene/core"
	"scroll-scene/materials"
	"scroll-scene/math"
)

// Node represents an object in the scene graph
type Node struct {
	Name      string
	Transform core.Transform
	Parent    *Node
	Children  []*Node
	Mesh      *Mesh
	Points    *Points
	Material  materials.ID
	Visible   bool
	Id        uint32

	// Cached world transform
	worldMatrixDirty bool
	worldMatrix      math.Mat4
}

var nodeIdCounter uint32 = 0

func NewNode(name string) *Node {
	nodeIdCounter++
	return &Node{
		Name:             name,
		Transform:        core.NewTransform(),
		Children:         make([]*Node, 0),
		Visible:          true,
		Id:               nodeIdCounter,
		worldMatrixDirty: true,
	}
}

func (n *Node) AddChild(child *Node) {
	if child.Parent != nil {
		child.Parent.RemoveChild(child)
	}
	child.Parent = n
	n.Children = append(n.Children, child)
	child.MarkWorldMatrixDirty()
}

func (n *Node) RemoveChild(child *Node) {
	for i, c := range n.Children {
		if c == child {
			n.Children = append(n.Children[:i], n.Children[i+1:]...)
			child.Parent = nil
			child.MarkWorldMatrixDirty()
			return
		}
	}
}

// GetWorldMatrix returns local * parentWorld, which maps a row vector from
// this node's space to world space.
func (n *Node) GetWorldMatrix() math.Mat4 {
	if n.worldMatrixDirty {
		localMatrix := n.Transform.GetMatrix()
		if n.Parent != nil {
			n.worldMatrix = localMatrix.Mul(n.Parent.GetWorldMatrix())
		} else {
			n.worldMatrix = localMatrix
		}
		n.worldMatrixDirty = false
	}
	return n.worldMatrix
}

func (n *Node) WorldPosition() math.Vec3 {
	return n.GetWorldMatrix().Translation()
}

func (n *Node) MarkWorldMatrixDirty() {
	n.worldMatrixDirty = true
	for _, child := range n.Children {
		child.MarkWorldMatrixDirty()
	}
}

func (n *Node) SetPosition(pos math.Vec3) {
	n.Transform.Position = pos
	n.MarkWorldMatrixDirty()
}

// SetRotation sets the Euler angles in radians.
func (n *Node) SetRotation(euler math.Vec3) {
	n.Transform.Rotation = euler
	n.MarkWorldMatrixDirty()
}

// Rotate adds delta to the Euler angles. Repeated calls accumulate, so
// independent animations can each contribute their own increment.
func (n *Node) Rotate(delta math.Vec3) {
	n.Transform.Rotation = n.Transform.Rotation.Add(delta)
	n.MarkWorldMatrixDirty()
}

func (n *Node) SetScale(scale math.Vec3) {
	n.Transform.Scale = scale
	n.MarkWorldMatrixDirty()
}

// Traverse visits all nodes in the graph
func (n *Node) Traverse(callback func(*Node)) {
	callback(n)
	for _, child := range n.Children {
		child.Traverse(callback)
	}
}

// Find finds a node by name
func (n *Node) Find(name string) *Node {
	if n.Name == name {
		return n
	}
	for _, child := range n.Children {
		if found := child.Find(name); found != nil {
			return found
		}
	}
	return nil
}
