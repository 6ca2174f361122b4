package spatialmath

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"
)

func TestEmptyAABB(t *testing.T) {
	empty := EmptyAABB()
	test.That(t, empty.IsEmpty(), test.ShouldBeTrue)
	test.That(t, math.IsInf(empty.Min.X, 1), test.ShouldBeTrue)
	test.That(t, math.IsInf(empty.Max.Z, -1), test.ShouldBeTrue)
	test.That(t, empty.SurfaceArea(), test.ShouldEqual, 0)

	grown := empty.ExpandToInclude(r3.Vector{1, 2, 3})
	test.That(t, grown.IsEmpty(), test.ShouldBeFalse)
	test.That(t, grown.Min, test.ShouldResemble, r3.Vector{1, 2, 3})
	test.That(t, grown.Max, test.ShouldResemble, r3.Vector{1, 2, 3})
}

func TestAABBOverlap(t *testing.T) {
	unit := AABB{Min: r3.Vector{0, 0, 0}, Max: r3.Vector{1, 1, 1}}
	for _, tc := range []struct {
		name     string
		other    AABB
		expected bool
	}{
		{"identical boxes overlap", unit, true},
		{"touching faces overlap", AABB{Min: r3.Vector{1, 0, 0}, Max: r3.Vector{2, 1, 1}}, true},
		{"separated along X", AABB{Min: r3.Vector{2, 0, 0}, Max: r3.Vector{3, 1, 1}}, false},
		{"separated along Y", AABB{Min: r3.Vector{0, 2, 0}, Max: r3.Vector{1, 3, 1}}, false},
		{"separated along Z", AABB{Min: r3.Vector{0, 0, 2}, Max: r3.Vector{1, 1, 3}}, false},
		{"container", AABB{Min: r3.Vector{-5, -5, -5}, Max: r3.Vector{5, 5, 5}}, true},
	} {
		t.Run(tc.name, func(t *testing.T) {
			test.That(t, unit.Overlaps(tc.other), test.ShouldEqual, tc.expected)
			test.That(t, tc.other.Overlaps(unit), test.ShouldEqual, tc.expected)
		})
	}
}

func TestAABBScaleAndMerge(t *testing.T) {
	box := AABB{Min: r3.Vector{1, 2, 3}, Max: r3.Vector{2, 4, 6}}
	scaled := box.Scale(r3.Vector{-1, 0.5, 2})
	test.That(t, scaled.Min, test.ShouldResemble, r3.Vector{-2, 1, 6})
	test.That(t, scaled.Max, test.ShouldResemble, r3.Vector{-1, 2, 12})

	merged := box.Merge(AABB{Min: r3.Vector{0, 3, 3}, Max: r3.Vector{1, 5, 4}})
	test.That(t, merged.Min, test.ShouldResemble, r3.Vector{0, 2, 3})
	test.That(t, merged.Max, test.ShouldResemble, r3.Vector{2, 5, 6})
	test.That(t, merged.Contains(box), test.ShouldBeTrue)
	test.That(t, box.Contains(merged), test.ShouldBeFalse)
	test.That(t, box.Center(), test.ShouldResemble, r3.Vector{1.5, 3, 4.5})
	test.That(t, box.HalfExtents(), test.ShouldResemble, r3.Vector{0.5, 1, 1.5})
}

func TestRayAABB(t *testing.T) {
	box := AABB{Min: r3.Vector{-1, -1, -1}, Max: r3.Vector{1, 1, 1}}

	tMin, tMax, ok := RayAABB(r3.Vector{-5, 0, 0}, r3.Vector{1, 0, 0}, box, 100)
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, tMin, test.ShouldAlmostEqual, 4)
	test.That(t, tMax, test.ShouldAlmostEqual, 6)

	_, _, ok = RayAABB(r3.Vector{-5, 0, 0}, r3.Vector{1, 0, 0}, box, 3)
	test.That(t, ok, test.ShouldBeFalse)

	_, _, ok = RayAABB(r3.Vector{-5, 2, 0}, r3.Vector{1, 0, 0}, box, 100)
	test.That(t, ok, test.ShouldBeFalse)

	tMin, _, ok = RayAABB(r3.Vector{0, 0, 0}, r3.Vector{0, 1, 0}, box, 100)
	test.That(t, ok, test.ShouldBeTrue)
	test.That(t, tMin, test.ShouldEqual, 0)
}
