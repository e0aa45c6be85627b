package scene

import (
	"scroll-scene/math"
)

// Camera is a perspective camera attached to a scene node, so it follows
// any rig it is parented to.
type Camera struct {
	Node        *Node
	FOV         float32 // vertical, radians
	AspectRatio float32
	NearPlane   float32
	FarPlane    float32

	projectionMatrix math.Mat4
	dirty            bool
}

func NewCamera(fov, aspectRatio, nearPlane, farPlane float32) *Camera {
	return &Camera{
		Node:        NewNode("Camera"),
		FOV:         fov,
		AspectRatio: aspectRatio,
		NearPlane:   nearPlane,
		FarPlane:    farPlane,
		dirty:       true,
	}
}

// UpdateAspectRatio recomputes the projection for a new viewport. A zero
// height leaves the previous aspect in place.
func (c *Camera) UpdateAspectRatio(width, height float32) {
	if height > 0 {
		c.AspectRatio = width / height
		c.dirty = true
	}
}

func (c *Camera) SetPosition(pos math.Vec3) {
	c.Node.SetPosition(pos)
}

func (c *Camera) Position() math.Vec3 {
	return c.Node.Transform.Position
}

func (c *Camera) WorldPosition() math.Vec3 {
	return c.Node.WorldPosition()
}

func (c *Camera) GetViewMatrix() math.Mat4 {
	view, _ := c.Node.GetWorldMatrix().Inverse()
	return view
}

func (c *Camera) GetProjectionMatrix() math.Mat4 {
	if c.dirty {
		c.projectionMatrix = math.Mat4Perspective(c.FOV, c.AspectRatio, c.NearPlane, c.FarPlane)
		c.dirty = false
	}
	return c.projectionMatrix
}

func (c *Camera) GetViewProjectionMatrix() math.Mat4 {
	return c.GetViewMatrix().Mul(c.GetProjectionMatrix())
}
