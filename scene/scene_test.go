package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wireglow/core"
	"wireglow/math"
)

func TestNodeWorldMatrixFollowsParent(t *testing.T) {
	parent := NewNode("parent")
	child := NewNode("child")
	parent.AddChild(child)

	parent.SetPosition(math.NewVec3(1, 2, 3))
	parent.SetScale(math.NewVec3(2, 2, 2))
	child.SetPosition(math.NewVec3(1, 0, 0))

	p := math.TransformPoint(child.GetWorldMatrix(), math.Vec3Zero)
	assert.InDelta(t, 3, p.X, 1e-6)
	assert.InDelta(t, 2, p.Y, 1e-6)
	assert.InDelta(t, 3, p.Z, 1e-6)

	// moving the parent invalidates the cached child matrix
	parent.SetPosition(math.Vec3Zero)
	p = math.TransformPoint(child.GetWorldMatrix(), math.Vec3Zero)
	assert.InDelta(t, 2, p.X, 1e-6)
}

func TestNodeAddChildReparents(t *testing.T) {
	a := NewNode("a")
	b := NewNode("b")
	c := NewNode("c")
	a.AddChild(c)
	b.AddChild(c)

	assert.Empty(t, a.Children)
	assert.Equal(t, []*Node{c}, b.Children)
	assert.Same(t, b, c.Parent)
}

func TestNodeBoundingBox(t *testing.T) {
	cuboid := newTemplate()
	cuboid.SetPosition(math.NewVec3(1, 0, 0))
	cuboid.SetScale(math.NewVec3(1, 2, 0.5))

	box, ok := cuboid.BoundingBox()
	require.True(t, ok)
	assert.InDelta(t, 0, box.Min.X, 1e-6)
	assert.InDelta(t, 2, box.Max.X, 1e-6)
	assert.InDelta(t, -2, box.Min.Y, 1e-6)
	assert.InDelta(t, 2, box.Max.Y, 1e-6)
	assert.InDelta(t, 0, box.Min.Z, 1e-6)
	assert.InDelta(t, 1, box.Max.Z, 1e-6)

	_, ok = NewNode("empty").BoundingBox()
	assert.False(t, ok)
}

func TestSceneVisibleLines(t *testing.T) {
	s := NewScene()
	cam := NewPerspectiveCamera(60, 1, 0.1, 100)
	a := newTemplate()
	b := newTemplate()
	a.SetPosition(math.NewVec3(-2, 0, -8))
	b.SetPosition(math.NewVec3(2, 0, -8))
	s.Root.AddChild(a)
	s.Root.AddChild(b)

	lines, stats := s.VisibleLines(cam)
	assert.Len(t, lines, 12)
	assert.Len(t, s.Entities(), 2)
	assert.Equal(t, CullStats{Entities: 2, Lines: 12}, stats)

	b.Visible = false
	lines, stats = s.VisibleLines(cam)
	assert.Len(t, lines, 6)
	assert.Equal(t, 1, stats.Entities)

	b.Visible = true
	b.Children[0].Visible = false
	lines, _ = s.VisibleLines(cam)
	assert.Len(t, lines, 11)

	s.Root.RemoveChild(a)
	s.Root.RemoveChild(b)
	lines, stats = s.VisibleLines(cam)
	assert.Empty(t, lines)
	assert.Zero(t, stats.Entities)
}

func TestSceneVisibleLinesCullsBehindCamera(t *testing.T) {
	s := NewScene()
	cam := NewPerspectiveCamera(60, 1, 0.1, 100)
	front := newTemplate()
	front.SetPosition(math.NewVec3(0, 0, -8))
	behind := newTemplate()
	behind.SetPosition(math.NewVec3(0, 0, 10))
	s.Root.AddChild(front)
	s.Root.AddChild(behind)

	lines, stats := s.VisibleLines(cam)
	assert.Len(t, lines, 6)
	assert.Equal(t, 1, stats.Culled)
	for _, n := range lines {
		assert.Same(t, front, n.Parent)
	}
}

func TestSceneVisibleLinesSkipsFullyFogged(t *testing.T) {
	s := NewScene()
	cam := NewPerspectiveCamera(60, 1, 0.1, 100)
	near := newTemplate()
	near.SetPosition(math.NewVec3(0, 0, -8))
	far := newTemplate()
	far.SetPosition(math.NewVec3(0, 0, -50))
	s.Root.AddChild(near)
	s.Root.AddChild(far)

	_, stats := s.VisibleLines(cam)
	assert.Zero(t, stats.Fogged, "no fog, nothing fades")

	s.Fog = NewFog(s.Background, 0, 20)
	lines, stats := s.VisibleLines(cam)
	assert.Len(t, lines, 6)
	assert.Equal(t, 1, stats.Fogged)
	assert.Zero(t, stats.Culled)

	// fog of another color still shows the far entity
	s.Fog = NewFog(core.ColorHex(0x336699), 0, 20)
	lines, stats = s.VisibleLines(cam)
	assert.Len(t, lines, 12)
	assert.Zero(t, stats.Fogged)
}

func TestSceneDefaults(t *testing.T) {
	s := NewScene()
	assert.Equal(t, core.ColorBlack, s.Background)
	assert.Nil(t, s.Fog)
}

func TestFogFactor(t *testing.T) {
	f := NewFog(core.ColorBlack, 0, 20)
	assert.Equal(t, float32(0), f.Factor(-1))
	assert.Equal(t, float32(0), f.Factor(0))
	assert.InDelta(t, 0.5, f.Factor(10), 1e-6)
	assert.Equal(t, float32(1), f.Factor(20))
	assert.Equal(t, float32(1), f.Factor(50))
	assert.Less(t, f.Factor(5), f.Factor(6))

	degenerate := NewFog(core.ColorBlack, 5, 5)
	assert.Equal(t, float32(0), degenerate.Factor(4))
	assert.Equal(t, float32(1), degenerate.Factor(5))
}
