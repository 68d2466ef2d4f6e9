package math

import "github.com/go-gl/mathgl/mgl32"

// Mat4 is a column-major 4x4 matrix laid out exactly as GLSL expects it,
// so it can be uploaded with transpose=false. Products compose right to
// left: proj.Mul4(view).Mul4(model).
type Mat4 = mgl32.Mat4

func Mat4Translation(t Vec3) Mat4 {
	return mgl32.Translate3D(t.X, t.Y, t.Z)
}

func Mat4Scale(s Vec3) Mat4 {
	return mgl32.Scale3D(s.X, s.Y, s.Z)
}

// Mat4TranslationScale builds T*S; the cuboids never rotate.
func Mat4TranslationScale(t, s Vec3) Mat4 {
	return Mat4Translation(t).Mul4(Mat4Scale(s))
}

// Mat4Perspective takes the vertical field of view in degrees.
func Mat4Perspective(fovYDeg, aspect, near, far float32) Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(fovYDeg), aspect, near, far)
}

func Mat4Orthographic(left, right, bottom, top, near, far float32) Mat4 {
	return mgl32.Ortho(left, right, bottom, top, near, far)
}

func Mat4LookAt(eye, target, up Vec3) Mat4 {
	return mgl32.LookAtV(eye.GL(), target.GL(), up.GL())
}

// TransformPoint applies m to p with perspective divide.
func TransformPoint(m Mat4, p Vec3) Vec3 {
	return Vec3FromGL(mgl32.TransformCoordinate(p.GL(), m))
}
