package scene

import (
	"github.com/go-gl/mathgl/mgl32"

	"wireglow/math"
)

// Plane represents a half-space: Normal·p + D >= 0 is inside.
type Plane struct {
	Normal math.Vec3
	D      float32
}

// DistanceTo returns the signed distance from a point to the plane.
func (p Plane) DistanceTo(pt math.Vec3) float32 {
	return p.Normal.Dot(pt) + p.D
}

// Frustum holds the six clip planes of a view frustum.
type Frustum struct {
	Planes [6]Plane // Left, Right, Bottom, Top, Near, Far
}

// FrustumFromMatrix extracts the planes of a projection*view matrix
// (Gribb/Hartmann). Matrices are column-major, so the rows used by the
// method are read with Row.
func FrustumFromMatrix(vp math.Mat4) Frustum {
	r0, r1, r2, r3 := vp.Row(0), vp.Row(1), vp.Row(2), vp.Row(3)

	var f Frustum
	f.Planes[0] = planeFrom(r3.Add(r0))
	f.Planes[1] = planeFrom(r3.Sub(r0))
	f.Planes[2] = planeFrom(r3.Add(r1))
	f.Planes[3] = planeFrom(r3.Sub(r1))
	f.Planes[4] = planeFrom(r3.Add(r2))
	f.Planes[5] = planeFrom(r3.Sub(r2))
	return f
}

func planeFrom(v mgl32.Vec4) Plane {
	n := math.Vec3{X: v[0], Y: v[1], Z: v[2]}
	l := n.Length()
	if l == 0 {
		return Plane{}
	}
	return Plane{Normal: n.Mul(1 / l), D: v[3] / l}
}

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min, Max math.Vec3
}

func (box AABB) Union(other AABB) AABB {
	return AABB{Min: box.Min.Min(other.Min), Max: box.Max.Max(other.Max)}
}

// Transform returns the box around the eight transformed corners.
func (box AABB) Transform(m math.Mat4) AABB {
	var out AABB
	for i := 0; i < 8; i++ {
		c := math.Vec3{X: box.Min.X, Y: box.Min.Y, Z: box.Min.Z}
		if i&1 != 0 {
			c.X = box.Max.X
		}
		if i&2 != 0 {
			c.Y = box.Max.Y
		}
		if i&4 != 0 {
			c.Z = box.Max.Z
		}
		p := math.TransformPoint(m, c)
		if i == 0 {
			out = AABB{Min: p, Max: p}
			continue
		}
		out.Min = out.Min.Min(p)
		out.Max = out.Max.Max(p)
	}
	return out
}

// IntersectsFrustum returns false if the box is completely outside f.
// For every plane only the corner furthest along the normal is tested.
func (box AABB) IntersectsFrustum(f *Frustum) bool {
	for _, p := range f.Planes {
		v := box.Min
		if p.Normal.X >= 0 {
			v.X = box.Max.X
		}
		if p.Normal.Y >= 0 {
			v.Y = box.Max.Y
		}
		if p.Normal.Z >= 0 {
			v.Z = box.Max.Z
		}
		if p.DistanceTo(v) < 0 {
			return false
		}
	}
	return true
}
