package shapes

import (
	"math"

	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"

	"go.viam.com/trimesh/collision"
	"go.viam.com/trimesh/memory"
	"go.viam.com/trimesh/spatialmath"
	"go.viam.com/trimesh/tree"
	"go.viam.com/trimesh/utils"
)

// meshRayLeafTester intersects the ray with each offered triangle and keeps the nearest hit.
// Everything here is in the tree's unscaled frame.
type meshRayLeafTester struct {
	triangles []spatialmath.Triangle
	origin    r3.Vector
	direction r3.Vector

	minimumT      float64
	minimumNormal r3.Vector
}

func (t *meshRayLeafTester) TestLeaf(leafIndex int, maximumT *float64) {
	hitT, normal, hit := spatialmath.RayTriangle(t.origin, t.direction, t.triangles[leafIndex])
	if hit && hitT < t.minimumT && hitT <= *maximumT {
		t.minimumT = hitT
		t.minimumNormal = normal
		*maximumT = hitT
	}
}

// RayTest casts a world space ray against the mesh placed at pose. t is measured in multiples of
// direction and is at most maximumT. The normal has unit length, is in world space and faces
// against the ray.
func (m *Mesh) RayTest(pose spatialmath.Pose, origin, direction r3.Vector, maximumT float64) (float64, r3.Vector, bool) {
	m.checkLive()
	scaling := m.scaling.Load()
	return m.rayTest(scaling, pose, origin, direction, maximumT)
}

func (m *Mesh) rayTest(
	scaling *meshScale,
	pose spatialmath.Pose,
	origin, direction r3.Vector,
	maximumT float64,
) (float64, r3.Vector, bool) {
	// Undo translation and rotation, then scale, landing in the tree's unscaled frame. The map is
	// linear in direction, so t carries over unchanged.
	inverseOrientation := quat.Conj(pose.Orientation())
	tester := meshRayLeafTester{
		triangles: m.triangles.Memory,
		origin:    spatialmath.MulElem(pose.InverseTransform(origin), scaling.inverse),
		direction: spatialmath.MulElem(spatialmath.RotateVector(inverseOrientation, direction), scaling.inverse),
		minimumT:  math.Inf(1),
	}
	tree.RayCast(m.tree, tester.origin, tester.direction, &maximumT, &tester)
	if math.IsInf(tester.minimumT, 1) {
		return 0, r3.Vector{}, false
	}
	// Normals transform by the inverse transpose of the scale, which is the reciprocal.
	normal := spatialmath.MulElem(tester.minimumNormal, scaling.inverse)
	normal = spatialmath.RotateVector(pose.Orientation(), normal).Normalize()
	return tester.minimumT, normal, true
}

// RayTestBatch casts every ray of rays against the mesh placed at pose and reports hits to handler.
// Each ray is handled exactly as RayTest would handle it.
func (m *Mesh) RayTestBatch(pose spatialmath.Pose, rays collision.RaySource, handler collision.RayHitHandler) {
	m.checkLive()
	scaling := m.scaling.Load()
	for i := 0; i < rays.RayCount(); i++ {
		ray := rays.GetRay(i)
		if t, normal, hit := m.rayTest(scaling, pose, ray.Origin, ray.Direction, ray.MaximumT); hit {
			handler.OnHit(i, t, normal)
		}
	}
}

// overlapEnumerator writes each reported leaf into a fresh collector slot.
type overlapEnumerator struct {
	pool      memory.Pool
	collector collision.OverlapCollector
}

func (e *overlapEnumerator) LoopBody(leafIndex int) {
	*e.collector.Allocate(e.pool) = leafIndex
}

// FindLocalOverlapsBox collects the triangles whose bounds overlap the box [min, max], given in the
// mesh's scaled local frame. Order follows tree traversal and is stable for a given mesh.
func (m *Mesh) FindLocalOverlapsBox(min, max r3.Vector, pool memory.Pool, overlaps collision.OverlapCollector) {
	m.checkLive()
	query := spatialmath.AABB{Min: min, Max: max}.Scale(m.InverseScale())
	tree.GetOverlaps(m.tree, query.Min, query.Max, &overlapEnumerator{pool: pool, collector: overlaps})
}

// FindLocalOverlapsSweep collects the triangles whose bounds are touched by the box [min, max]
// moving along sweep for t in [0, maximumT]. Box and sweep are in the mesh's scaled local frame.
// Every leaf the tree visits is reported.
func (m *Mesh) FindLocalOverlapsSweep(
	min, max, sweep r3.Vector,
	maximumT float64,
	pool memory.Pool,
	overlaps collision.OverlapCollector,
) {
	m.checkLive()
	inverse := m.InverseScale()
	query := spatialmath.AABB{Min: min, Max: max}.Scale(inverse)
	tree.Sweep(m.tree, query.Min, query.Max, spatialmath.MulElem(sweep, inverse), maximumT, &overlapEnumerator{pool: pool, collector: overlaps})
}

// FindLocalOverlaps runs FindLocalOverlapsBox for each pair, writing pair i's triangles into
// overlaps.GetOverlapsForPair(i). Every pair's container must be a *Mesh.
func FindLocalOverlaps(pairs []collision.BoundsTestedPair, pool memory.Pool, overlaps collision.OverlapCollection) error {
	for i, pair := range pairs {
		mesh, ok := pair.Container.(*Mesh)
		if !ok {
			return utils.NewUnexpectedTypeError(mesh, pair.Container)
		}
		mesh.FindLocalOverlapsBox(pair.Min, pair.Max, pool, overlaps.GetOverlapsForPair(i))
	}
	return nil
}
