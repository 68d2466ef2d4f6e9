package scene

import (
	"github.com/chewxy/math32"

	"wireglow/math"
)

const orbitEPS = 1e-6

// OrbitControls rotates a camera around a fixed Target from pointer drags.
// Only the camera transform changes, never the target.
type OrbitControls struct {
	Camera       *PerspectiveCamera
	Target       math.Vec3
	EnableRotate bool
	EnableZoom   bool
	RotateSpeed  float32
	ZoomSpeed    float32
	MinDistance  float32
	MaxDistance  float32

	deltaTheta float32
	deltaPhi   float32
	scale      float32

	dragging bool
	last     math.Vec2
}

func NewOrbitControls(camera *PerspectiveCamera) *OrbitControls {
	return &OrbitControls{
		Camera:       camera,
		Target:       math.Vec3Zero,
		EnableRotate: true,
		EnableZoom:   true,
		RotateSpeed:  1,
		ZoomSpeed:    1,
		MinDistance:  0,
		MaxDistance:  math32.Inf(1),
		scale:        1,
	}
}

// Rotate queues a rotation for a pointer delta in pixels. A drag across the
// full viewport height is one full turn.
func (c *OrbitControls) Rotate(dx, dy, viewportHeight float32) {
	if !c.EnableRotate || viewportHeight <= 0 {
		return
	}
	c.deltaTheta -= 2 * math32.Pi * dx / viewportHeight * c.RotateSpeed
	c.deltaPhi -= 2 * math32.Pi * dy / viewportHeight * c.RotateSpeed
}

// Dolly queues a distance change; scale > 1 moves away from the target.
// It does nothing while zoom is disabled.
func (c *OrbitControls) Dolly(scale float32) {
	if !c.EnableZoom || scale <= 0 {
		return
	}
	c.scale *= scale
}

// PointerDown starts a rotate drag at (x, y).
func (c *OrbitControls) PointerDown(x, y float32) {
	c.dragging = true
	c.last = math.NewVec2(x, y)
}

// PointerMove feeds a cursor position; it only rotates while dragging.
func (c *OrbitControls) PointerMove(x, y, viewportHeight float32) {
	if !c.dragging {
		return
	}
	p := math.NewVec2(x, y)
	d := p.Sub(c.last)
	c.last = p
	c.Rotate(d.X, d.Y, viewportHeight)
	c.Update()
}

func (c *OrbitControls) PointerUp() {
	c.dragging = false
}

func (c *OrbitControls) Dragging() bool {
	return c.dragging
}

// Scroll maps a wheel offset to a dolly step.
func (c *OrbitControls) Scroll(yoff float32) {
	if yoff == 0 {
		return
	}
	step := math32.Pow(0.95, c.ZoomSpeed)
	if yoff > 0 {
		c.Dolly(step)
	} else {
		c.Dolly(1 / step)
	}
	c.Update()
}

// Update applies queued rotation and dolly, moves the camera on its sphere
// around Target and aims it at Target. It reports whether the camera moved.
func (c *OrbitControls) Update() bool {
	offset := c.Camera.Position.Sub(c.Target)
	radius := offset.Length()

	theta := math32.Atan2(offset.X, offset.Z)
	phi := float32(0)
	if radius > 0 {
		phi = math32.Acos(clamp(offset.Y/radius, -1, 1))
	}

	theta += c.deltaTheta
	phi = clamp(phi+c.deltaPhi, orbitEPS, math32.Pi-orbitEPS)
	radius = clamp(radius*c.scale, c.MinDistance, c.MaxDistance)

	sinPhi := math32.Sin(phi)
	newOffset := math.Vec3{
		X: radius * sinPhi * math32.Sin(theta),
		Y: radius * math32.Cos(phi),
		Z: radius * sinPhi * math32.Cos(theta),
	}

	prev := c.Camera.Position
	c.Camera.SetPosition(c.Target.Add(newOffset))
	c.Camera.LookAt(c.Target)

	c.deltaTheta, c.deltaPhi, c.scale = 0, 0, 1
	return prev.Sub(c.Camera.Position).LengthSqr() > orbitEPS
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
