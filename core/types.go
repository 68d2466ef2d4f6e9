package core

import (
	"image/color"

	"wireglow/math"
)

type Color struct {
	R, G, B, A float32
}

var (
	ColorWhite = Color{1, 1, 1, 1}
	ColorBlack = Color{0, 0, 0, 1}
)

// ColorHex builds an opaque color from a 0xRRGGBB literal.
func ColorHex(hex uint32) Color {
	return Color{
		R: float32(hex>>16&0xff) / 255,
		G: float32(hex>>8&0xff) / 255,
		B: float32(hex&0xff) / 255,
		A: 1,
	}
}

var _ color.Color = Color{}

// RGBA implements color.Color. Components are clamped to [0, 1] and
// premultiplied.
func (c Color) RGBA() (r, g, b, a uint32) {
	a = unit16(c.A)
	return unit16(c.R) * a / 0xffff, unit16(c.G) * a / 0xffff, unit16(c.B) * a / 0xffff, a
}

func unit16(v float32) uint32 {
	if v <= 0 {
		return 0
	}
	if v >= 1 {
		return 0xffff
	}
	return uint32(v*0xffff + 0.5)
}

// Transform is a node's local placement. Rotation is not needed by anything
// in the scene so only translation and non-uniform scale are kept.
type Transform struct {
	Position math.Vec3
	Scale    math.Vec3
}

func NewTransform() Transform {
	return Transform{
		Position: math.Vec3Zero,
		Scale:    math.Vec3One,
	}
}

func (t Transform) GetMatrix() math.Mat4 {
	return math.Mat4TranslationScale(t.Position, t.Scale)
}

// Rect is a screen-space rectangle in pixels, origin top-left.
type Rect struct {
	X, Y, Width, Height float32
}

func (r Rect) Contains(x, y float32) bool {
	return x >= r.X && x < r.X+r.Width && y >= r.Y && y < r.Y+r.Height
}
