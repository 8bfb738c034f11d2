package core

import (
	"github.com/go-gl/mathgl/mgl32"
)

// All builders return column-major matrices for column vectors, so
// Multiply(parent, child) applies child first.

func Scale(sx, sy, sz float32) mgl32.Mat4 {
	return mgl32.Scale3D(sx, sy, sz)
}

func Translate(x, y, z float32) mgl32.Mat4 {
	return mgl32.Translate3D(x, y, z)
}

func RotateX(degrees float32) mgl32.Mat4 {
	return mgl32.HomogRotate3DX(mgl32.DegToRad(degrees))
}

func RotateY(degrees float32) mgl32.Mat4 {
	return mgl32.HomogRotate3DY(mgl32.DegToRad(degrees))
}

func RotateZ(degrees float32) mgl32.Mat4 {
	return mgl32.HomogRotate3DZ(mgl32.DegToRad(degrees))
}

func Perspective(fovYDegrees, aspect, near, far float32) mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(fovYDegrees), aspect, near, far)
}

func LookAt(eye, target, up mgl32.Vec3) mgl32.Mat4 {
	return mgl32.LookAtV(eye, target, up)
}

// Multiply returns a·b.
func Multiply(a, b mgl32.Mat4) mgl32.Mat4 {
	return a.Mul4(b)
}

// Chain multiplies the matrices left to right, outermost transform first:
// Chain(place, joint, local) == place·joint·local.
func Chain(ms ...mgl32.Mat4) mgl32.Mat4 {
	out := mgl32.Ident4()
	for _, m := range ms {
		out = out.Mul4(m)
	}
	return out
}

// Translation reads the translation column (column 3, rows 0-2).
func Translation(m mgl32.Mat4) mgl32.Vec3 {
	return mgl32.Vec3{m.At(0, 3), m.At(1, 3), m.At(2, 3)}
}

// NormalMatrix is the inverse transpose of the model matrix, padded back to 4x4.
func NormalMatrix(model mgl32.Mat4) mgl32.Mat4 {
	return model.Mat3().Inv().Transpose().Mat4()
}
