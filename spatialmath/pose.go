package spatialmath

import (
	"fmt"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"
)

// Pose is a rigid placement: a position plus a unit quaternion orientation.
type Pose struct {
	point       r3.Vector
	orientation quat.Number
}

// NewPose returns a pose at point with orientation o. The orientation is normalized.
func NewPose(point r3.Vector, o quat.Number) Pose {
	return Pose{point: point, orientation: Normalize(o)}
}

// NewZeroPose returns a pose at the origin with no orientation.
func NewZeroPose() Pose {
	return Pose{orientation: NewZeroOrientation()}
}

// NewPoseFromPoint returns a pose at point with no rotation.
func NewPoseFromPoint(point r3.Vector) Pose {
	return Pose{point: point, orientation: NewZeroOrientation()}
}

// Point returns the position of the pose.
func (p Pose) Point() r3.Vector {
	return p.point
}

// Orientation returns the orientation of the pose.
func (p Pose) Orientation() quat.Number {
	if p.orientation == (quat.Number{}) {
		return NewZeroOrientation()
	}
	return p.orientation
}

// Transform maps a point in the pose's local frame into the parent frame.
func (p Pose) Transform(v r3.Vector) r3.Vector {
	return RotateVector(p.Orientation(), v).Add(p.point)
}

// InverseTransform maps a point in the parent frame into the pose's local frame.
func (p Pose) InverseTransform(v r3.Vector) r3.Vector {
	return RotateVector(quat.Conj(p.Orientation()), v.Sub(p.point))
}

// String returns a human readable representation of the pose.
func (p Pose) String() string {
	o := p.Orientation()
	return fmt.Sprintf("{X:%.3f Y:%.3f Z:%.3f | W:%.3f I:%.3f J:%.3f K:%.3f}",
		p.point.X, p.point.Y, p.point.Z, o.Real, o.Imag, o.Jmag, o.Kmag)
}

// PoseAlmostEqual returns whether two poses share a position and orientation within tol.
func PoseAlmostEqual(a, b Pose, tol float64) bool {
	return R3VectorAlmostEqual(a.point, b.point, tol) && QuaternionAlmostEqual(a.Orientation(), b.Orientation(), tol)
}
