package scene

import (
	"fmt"

	"wireglow/math"
)

const (
	CuboidCount     = 100
	CuboidSpread    = 5 // positions fall in [-CuboidSpread, CuboidSpread]
	CuboidMaxScale  = 2 // per-axis scale falls in [0, CuboidMaxScale]
	CuboidLineColor = 0x696969
)

// Rand is the random source used for cuboid placement. *rand.Rand from
// math/rand/v2 satisfies it.
type Rand interface {
	Float32() float32
}

// NewCuboidOutline builds the unit of replication: a group with two square
// loops at z=0 and z=2 and the four edges joining their corners, all drawn
// with material.
func NewCuboidOutline(material *LineMaterial) *Node {
	front := []math.Vec3{{X: -1, Y: 1}, {X: -1, Y: -1}, {X: 1, Y: -1}, {X: 1, Y: 1}, {X: -1, Y: 1}}
	back := make([]math.Vec3, len(front))
	for i, p := range front {
		back[i] = math.Vec3{X: p.X, Y: p.Y, Z: 2}
	}

	parent := NewNode("Cuboid")
	parent.AddChild(NewLine("Front", NewLineGeometry(front...), material))
	parent.AddChild(NewLine("Back", NewLineGeometry(back...), material))
	for i := 0; i < 4; i++ {
		edge := NewLineGeometry(front[i], back[i])
		parent.AddChild(NewLine(fmt.Sprintf("Edge%d", i+1), edge, material))
	}
	return parent
}

// PopulateCuboids adds count clones of template to root, each with a random
// position in [-5, 5]^3 and a random non-uniform scale in [0, 2]^3. Samples
// are drawn in the order px, py, pz, sx, sy, sz.
func PopulateCuboids(root, template *Node, count int, rng Rand) []*Node {
	clones := make([]*Node, 0, count)
	for i := 0; i < count; i++ {
		clone := template.Clone()
		clone.SetPosition(math.Vec3{
			X: (rng.Float32()*2 - 1) * CuboidSpread,
			Y: (rng.Float32()*2 - 1) * CuboidSpread,
			Z: (rng.Float32()*2 - 1) * CuboidSpread,
		})
		clone.SetScale(math.Vec3{
			X: rng.Float32() * CuboidMaxScale,
			Y: rng.Float32() * CuboidMaxScale,
			Z: rng.Float32() * CuboidMaxScale,
		})
		root.AddChild(clone)
		clones = append(clones, clone)
	}
	return clones
}
