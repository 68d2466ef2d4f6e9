package scene

import (
	"wireglow/core"
	"wireglow/math"
)

// LineGeometry is an ordered polyline. It is never modified after
// construction, which is what allows clones to share it.
type LineGeometry struct {
	Vertices []math.Vec3
	bounds   AABB
}

func NewLineGeometry(points ...math.Vec3) *LineGeometry {
	g := &LineGeometry{Vertices: append([]math.Vec3(nil), points...)}
	if len(points) > 0 {
		g.bounds = AABB{Min: points[0], Max: points[0]}
		for _, p := range points[1:] {
			g.bounds.Min = g.bounds.Min.Min(p)
			g.bounds.Max = g.bounds.Max.Max(p)
		}
	}
	return g
}

// Bounds returns the local-space box around the vertices.
func (g *LineGeometry) Bounds() AABB {
	return g.bounds
}

// LineMaterial is the shared drawing style of a line.
type LineMaterial struct {
	Color core.Color
}

func NewLineMaterial(color core.Color) *LineMaterial {
	return &LineMaterial{Color: color}
}
