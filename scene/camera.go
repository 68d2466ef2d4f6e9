package scene

import (
	"wireglow/math"
)

// PerspectiveCamera mirrors the usual perspective camera contract: FOV,
// Aspect, Near and Far are plain fields and the projection matrix is only
// rebuilt by UpdateProjectionMatrix.
type PerspectiveCamera struct {
	FOV    float32 // vertical, degrees
	Aspect float32
	Near   float32
	Far    float32

	Position math.Vec3
	Up       math.Vec3

	target           math.Vec3
	projectionMatrix math.Mat4
}

func NewPerspectiveCamera(fov, aspect, near, far float32) *PerspectiveCamera {
	c := &PerspectiveCamera{
		FOV:      fov,
		Aspect:   aspect,
		Near:     near,
		Far:      far,
		Position: math.Vec3Zero,
		Up:       math.Vec3Up,
		target:   math.Vec3{Z: -1},
	}
	c.UpdateProjectionMatrix()
	return c
}

// SetAspect is a helper for width/height pairs; zero heights are ignored.
func (c *PerspectiveCamera) SetAspect(width, height float32) {
	if height > 0 {
		c.Aspect = width / height
	}
}

func (c *PerspectiveCamera) UpdateProjectionMatrix() {
	c.projectionMatrix = math.Mat4Perspective(c.FOV, c.Aspect, c.Near, c.Far)
}

func (c *PerspectiveCamera) ProjectionMatrix() math.Mat4 {
	return c.projectionMatrix
}

func (c *PerspectiveCamera) SetPosition(pos math.Vec3) {
	c.Position = pos
}

func (c *PerspectiveCamera) LookAt(target math.Vec3) {
	c.target = target
}

func (c *PerspectiveCamera) Target() math.Vec3 {
	return c.target
}

func (c *PerspectiveCamera) ViewMatrix() math.Mat4 {
	return math.Mat4LookAt(c.Position, c.target, c.Up)
}

func (c *PerspectiveCamera) ViewProjectionMatrix() math.Mat4 {
	return c.projectionMatrix.Mul4(c.ViewMatrix())
}
