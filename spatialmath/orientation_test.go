package spatialmath

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"
	"gonum.org/v1/gonum/num/quat"
)

func TestRotateVector(t *testing.T) {
	q := QuatFromAxisAngle(r3.Vector{0, 0, 1}, math.Pi/2)
	v := RotateVector(q, r3.Vector{1, 0, 0})
	test.That(t, R3VectorAlmostEqual(v, r3.Vector{0, 1, 0}, 1e-12), test.ShouldBeTrue)

	back := RotateVector(quat.Conj(q), v)
	test.That(t, R3VectorAlmostEqual(back, r3.Vector{1, 0, 0}, 1e-12), test.ShouldBeTrue)

	test.That(t, QuatFromAxisAngle(r3.Vector{}, 1), test.ShouldResemble, NewZeroOrientation())
}

func TestRotationMatrixMatchesQuaternion(t *testing.T) {
	q := QuatFromAxisAngle(r3.Vector{1, 2, 3}, 0.7)
	rm := QuatToRotationMatrix(q)
	for _, v := range []r3.Vector{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}, {-3, 4.5, 2}} {
		test.That(t, R3VectorAlmostEqual(rm.Transform(v), RotateVector(q, v), 1e-12), test.ShouldBeTrue)
		test.That(t, R3VectorAlmostEqual(rm.Transpose().Transform(rm.Transform(v)), v, 1e-12), test.ShouldBeTrue)
	}
	row := rm.Row(0)
	test.That(t, row.X, test.ShouldAlmostEqual, rm.At(0, 0))
	test.That(t, row.Z, test.ShouldAlmostEqual, rm.At(0, 2))
}

func TestPoseTransform(t *testing.T) {
	pose := NewPose(r3.Vector{1, 2, 3}, QuatFromAxisAngle(r3.Vector{0, 0, 1}, math.Pi))
	world := pose.Transform(r3.Vector{1, 0, 0})
	test.That(t, R3VectorAlmostEqual(world, r3.Vector{0, 2, 3}, 1e-12), test.ShouldBeTrue)
	test.That(t, R3VectorAlmostEqual(pose.InverseTransform(world), r3.Vector{1, 0, 0}, 1e-12), test.ShouldBeTrue)

	var zero Pose
	test.That(t, zero.Orientation(), test.ShouldResemble, NewZeroOrientation())
	test.That(t, PoseAlmostEqual(zero, NewZeroPose(), 1e-12), test.ShouldBeTrue)
	test.That(t, QuaternionAlmostEqual(q(1, 0, 0, 0), q(-1, 0, 0, 0), 1e-12), test.ShouldBeTrue)
}

func TestReciprocal(t *testing.T) {
	for _, s := range []r3.Vector{{1, 1, 1}, {2, 0.5, -3}, {1e-3, 7, 123.25}} {
		test.That(t, R3VectorAlmostEqual(MulElem(s, Reciprocal(s)), r3.Vector{1, 1, 1}, 1e-12), test.ShouldBeTrue)
		test.That(t, HasZeroComponent(s), test.ShouldBeFalse)
	}
	test.That(t, HasZeroComponent(r3.Vector{1, 0, 1}), test.ShouldBeTrue)
}

func q(w, x, y, z float64) quat.Number {
	return quat.Number{Real: w, Imag: x, Jmag: y, Kmag: z}
}
