package scene

import (
	"wireglow/core"
	"wireglow/math"
)

// Node is an element of the scene graph. A node with Geometry set draws a
// line strip; a node without one only groups its children.
type Node struct {
	Name      string
	Transform core.Transform
	Parent    *Node
	Children  []*Node
	Visible   bool

	// Geometry and Material are shared, read-only resources.
	Geometry *LineGeometry
	Material *LineMaterial

	worldMatrixDirty bool
	worldMatrix      math.Mat4
}

func NewNode(name string) *Node {
	return &Node{
		Name:             name,
		Transform:        core.NewTransform(),
		Children:         make([]*Node, 0),
		Visible:          true,
		worldMatrixDirty: true,
	}
}

// NewLine returns a drawable node for geometry drawn with material.
func NewLine(name string, geometry *LineGeometry, material *LineMaterial) *Node {
	n := NewNode(name)
	n.Geometry = geometry
	n.Material = material
	return n
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

// Clone copies n and all of its descendants. The copies share Geometry and
// Material with the originals but nothing mutable.
func (n *Node) Clone() *Node {
	c := &Node{
		Name:             n.Name,
		Transform:        n.Transform,
		Visible:          n.Visible,
		Geometry:         n.Geometry,
		Material:         n.Material,
		Children:         make([]*Node, 0, len(n.Children)),
		worldMatrixDirty: true,
	}
	for _, child := range n.Children {
		cc := child.Clone()
		cc.Parent = c
		c.Children = append(c.Children, cc)
	}
	return c
}

func (n *Node) GetWorldMatrix() math.Mat4 {
	if n.worldMatrixDirty {
		local := n.Transform.GetMatrix()
		if n.Parent != nil {
			n.worldMatrix = n.Parent.GetWorldMatrix().Mul4(local)
		} else {
			n.worldMatrix = local
		}
		n.worldMatrixDirty = false
	}
	return n.worldMatrix
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

func (n *Node) SetScale(scale math.Vec3) {
	n.Transform.Scale = scale
	n.MarkWorldMatrixDirty()
}

// Traverse visits n and its descendants depth first.
func (n *Node) Traverse(callback func(*Node)) {
	callback(n)
	for _, child := range n.Children {
		child.Traverse(callback)
	}
}

// BoundingBox returns the world-space box around every line below n.
// ok is false when n has no geometry at all.
func (n *Node) BoundingBox() (box AABB, ok bool) {
	n.Traverse(func(d *Node) {
		if d.Geometry == nil || len(d.Geometry.Vertices) == 0 {
			return
		}
		b := d.Geometry.Bounds().Transform(d.GetWorldMatrix())
		if !ok {
			box, ok = b, true
			return
		}
		box = box.Union(b)
	})
	return box, ok
}
