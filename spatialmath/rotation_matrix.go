package spatialmath

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"
)

// RotationMatrix is an orthonormal 3x3 matrix describing a rotation.
type RotationMatrix struct {
	mat mgl64.Mat3
}

// QuatToRotationMatrix converts a quaternion to a rotation matrix. The quaternion is normalized first.
func QuatToRotationMatrix(q quat.Number) *RotationMatrix {
	q = Normalize(q)
	mq := mgl64.Quat{W: q.Real, V: mgl64.Vec3{q.Imag, q.Jmag, q.Kmag}}
	return &RotationMatrix{mat: mq.Mat4().Mat3()}
}

// NewRotationMatrix wraps an mgl64 matrix. The caller guarantees it is orthonormal.
func NewRotationMatrix(m mgl64.Mat3) *RotationMatrix {
	return &RotationMatrix{mat: m}
}

// At returns the element at row, col.
func (rm *RotationMatrix) At(row, col int) float64 {
	return rm.mat.At(row, col)
}

// Row returns the specified row of the rotation matrix.
func (rm *RotationMatrix) Row(row int) r3.Vector {
	r := rm.mat.Row(row)
	return r3.Vector{X: r[0], Y: r[1], Z: r[2]}
}

// Transpose returns the inverse rotation.
func (rm *RotationMatrix) Transpose() *RotationMatrix {
	return &RotationMatrix{mat: rm.mat.Transpose()}
}

// Mat3 returns the underlying mgl64 matrix.
func (rm *RotationMatrix) Mat3() mgl64.Mat3 {
	return rm.mat
}

// Transform rotates v.
func (rm *RotationMatrix) Transform(v r3.Vector) r3.Vector {
	m := &rm.mat
	// mgl64 stores column major.
	return r3.Vector{
		X: m[0]*v.X + m[3]*v.Y + m[6]*v.Z,
		Y: m[1]*v.X + m[4]*v.Y + m[7]*v.Z,
		Z: m[2]*v.X + m[5]*v.Y + m[8]*v.Z,
	}
}
