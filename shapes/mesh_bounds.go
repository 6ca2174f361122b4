package shapes

import (
	"math"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"

	"go.viam.com/trimesh/spatialmath"
)

// ComputeBounds returns the box enclosing every scaled vertex rotated by orientation. No translation
// is applied; callers add the owning body's position. An empty mesh yields the inverted box
// (+inf, -inf), which IsEmptyBounds recognizes.
func (m *Mesh) ComputeBounds(orientation quat.Number) (min, max r3.Vector) {
	m.checkLive()
	rm := spatialmath.QuatToRotationMatrix(orientation)
	scale := m.Scale()
	inf := math.Inf(1)
	min = r3.Vector{X: inf, Y: inf, Z: inf}
	max = r3.Vector{X: -inf, Y: -inf, Z: -inf}
	for _, tri := range m.triangles.Memory {
		for _, v := range tri.Points() {
			p := rm.Transform(spatialmath.MulElem(v, scale))
			min = spatialmath.MinElem(min, p)
			max = spatialmath.MaxElem(max, p)
		}
	}
	return min, max
}

// ComputeBoundsAt is ComputeBounds followed by translation to the pose's position.
func (m *Mesh) ComputeBoundsAt(pose spatialmath.Pose) (min, max r3.Vector) {
	min, max = m.ComputeBounds(pose.Orientation())
	return min.Add(pose.Point()), max.Add(pose.Point())
}

// IsEmptyBounds reports whether a box from ComputeBounds describes no geometry.
func IsEmptyBounds(min, max r3.Vector) bool {
	return spatialmath.AABB{Min: min, Max: max}.IsEmpty()
}
