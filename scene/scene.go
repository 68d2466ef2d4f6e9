package scene

import (
	"wireglow/core"
)

// Fog fades geometry linearly into Color between Near and Far (view depth).
type Fog struct {
	Color core.Color
	Near  float32
	Far   float32
}

func NewFog(color core.Color, near, far float32) *Fog {
	return &Fog{Color: color, Near: near, Far: far}
}

// Factor returns how much of the fog color applies at the given depth.
// It follows a smoothstep between Near and Far.
func (f *Fog) Factor(depth float32) float32 {
	if f.Far <= f.Near {
		if depth >= f.Far {
			return 1
		}
		return 0
	}
	t := (depth - f.Near) / (f.Far - f.Near)
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	return t * t * (3 - 2*t)
}

// Scene owns the root of the node graph and environmental state.
type Scene struct {
	Root       *Node
	Background core.Color
	Fog        *Fog
}

func NewScene() *Scene {
	return &Scene{
		Root:       NewNode("Root"),
		Background: core.ColorBlack,
	}
}

// Entities returns the top-level nodes.
func (s *Scene) Entities() []*Node {
	return s.Root.Children
}

// CullStats counts what VisibleLines kept and skipped.
type CullStats struct {
	Entities int // visible top-level nodes
	Culled   int // outside the frustum
	Fogged   int // fully faded into the background
	Lines    int
}

// VisibleLines returns the drawable nodes of every entity the camera can
// see. Hidden nodes hide their whole subtree. An entity is culled when its
// world box is outside the frustum, and dropped as fogged when even its
// nearest point is fully faded into a fog that matches the background.
func (s *Scene) VisibleLines(camera *PerspectiveCamera) ([]*Node, CullStats) {
	view := camera.ViewMatrix()
	frustum := FrustumFromMatrix(camera.ProjectionMatrix().Mul4(view))
	hideFogged := s.Fog != nil && s.Fog.Color == s.Background

	var (
		lines []*Node
		stats CullStats
	)
	var walk func(n *Node)
	walk = func(n *Node) {
		if !n.Visible {
			return
		}
		if n.Geometry != nil && n.Material != nil && len(n.Geometry.Vertices) > 0 {
			lines = append(lines, n)
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	for _, e := range s.Entities() {
		if !e.Visible {
			continue
		}
		stats.Entities++
		if box, ok := e.BoundingBox(); ok {
			if !box.IntersectsFrustum(&frustum) {
				stats.Culled++
				continue
			}
			// view space looks down -Z, so the largest Z is the nearest point
			if hideFogged && s.Fog.Factor(-box.Transform(view).Max.Z) >= 1 {
				stats.Fogged++
				continue
			}
		}
		walk(e)
	}
	stats.Lines = len(lines)
	return lines, stats
}
