package math

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVec3Operations(t *testing.T) {
	v1 := NewVec3(1, 2, 3)
	v2 := NewVec3(4, 5, 6)

	assert.Equal(t, NewVec3(5, 7, 9), v1.Add(v2))
	assert.Equal(t, NewVec3(3, 3, 3), v2.Sub(v1))
	assert.Equal(t, NewVec3(2, 4, 6), v1.Mul(2))
	assert.Equal(t, NewVec3(4, 10, 18), v1.MulVec(v2))
	assert.Equal(t, float32(32), v1.Dot(v2))
	assert.Equal(t, Vec3Front, Vec3Right.Cross(Vec3Up))
}

func TestVec3Normalize(t *testing.T) {
	n := NewVec3(3, 0, 0).Normalize()
	assert.Equal(t, NewVec3(1, 0, 0), n)
	assert.InDelta(t, 1, n.Length(), 1e-6)

	// zero vector stays zero instead of turning into NaN
	assert.Equal(t, Vec3Zero, Vec3Zero.Normalize())
}

func TestVec3MinMax(t *testing.T) {
	a := NewVec3(1, -2, 3)
	b := NewVec3(-1, 2, 0)
	assert.Equal(t, NewVec3(-1, -2, 0), a.Min(b))
	assert.Equal(t, NewVec3(1, 2, 3), a.Max(b))
}

func TestVec3InRange(t *testing.T) {
	assert.True(t, NewVec3(-5, 0, 5).InRange(-5, 5))
	assert.False(t, NewVec3(-5.01, 0, 0).InRange(-5, 5))
	assert.False(t, NewVec3(0, 0, 2.5).InRange(0, 2))
}

func TestVec3GLRoundTrip(t *testing.T) {
	v := NewVec3(1.5, -2, 7)
	assert.Equal(t, v, Vec3FromGL(v.GL()))
}

func TestMat4TranslationScale(t *testing.T) {
	m := Mat4TranslationScale(NewVec3(1, 2, 3), NewVec3(2, 0.5, 0))
	got := TransformPoint(m, NewVec3(1, 1, 1))
	assert.InDelta(t, 3, got.X, 1e-6)
	assert.InDelta(t, 2.5, got.Y, 1e-6)
	assert.InDelta(t, 3, got.Z, 1e-6)
}

func TestMat4LookAtMovesEyeToOrigin(t *testing.T) {
	eye := NewVec3(0, 0, -10)
	m := Mat4LookAt(eye, Vec3Zero, Vec3Up)

	got := TransformPoint(m, eye)
	assert.InDelta(t, 0, got.X, 1e-4)
	assert.InDelta(t, 0, got.Y, 1e-4)
	assert.InDelta(t, 0, got.Z, 1e-4)

	// the target ends up straight ahead on -Z in view space
	target := TransformPoint(m, Vec3Zero)
	assert.InDelta(t, -10, target.Z, 1e-4)
}

func TestMat4PerspectiveDependsOnAspect(t *testing.T) {
	a := Mat4Perspective(45, 800.0/600.0, 0.1, 100)
	b := Mat4Perspective(45, 1024.0/768.0, 0.1, 100)
	w := Mat4Perspective(45, 2, 0.1, 100)

	assert.InDelta(t, a.At(0, 0), b.At(0, 0), 1e-6, "same ratio, same x scale")
	assert.NotEqual(t, a.At(0, 0), w.At(0, 0))
	assert.Equal(t, a.At(1, 1), w.At(1, 1), "y scale only depends on fov")
}

func BenchmarkVec3Add(b *testing.B) {
	v1 := NewVec3(1, 2, 3)
	v2 := NewVec3(4, 5, 6)
	for i := 0; i < b.N; i++ {
		_ = v1.Add(v2)
	}
}

func BenchmarkMat4TranslationScale(b *testing.B) {
	p := NewVec3(1, 2, 3)
	s := NewVec3(1, 2, 1)
	for i := 0; i < b.N; i++ {
		_ = Mat4TranslationScale(p, s)
	}
}
