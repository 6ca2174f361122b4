package spatialmath

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"go.viam.com/test"
)

func TestBasicTriangleFunctions(t *testing.T) {
	expectedPts := [3]r3.Vector{{0, 0, 0}, {3, 0, 0}, {0, 3, 0}}
	tri := NewTriangle(expectedPts[0], expectedPts[1], expectedPts[2])

	t.Run("constructor", func(t *testing.T) {
		test.That(t, tri.Points(), test.ShouldResemble, expectedPts)
		test.That(t, tri.Normal().Normalize(), test.ShouldResemble, r3.Vector{0, 0, 1})
	})

	t.Run("area", func(t *testing.T) {
		test.That(t, tri.Area(), test.ShouldEqual, 4.5)
	})

	t.Run("centroid", func(t *testing.T) {
		test.That(t, tri.Centroid(), test.ShouldResemble, r3.Vector{1, 1, 0})
	})

	t.Run("bounds", func(t *testing.T) {
		b := NewTriangle(r3.Vector{-1, 2, 3}, r3.Vector{4, -5, 6}, r3.Vector{7, 8, -9}).Bounds()
		test.That(t, b.Min, test.ShouldResemble, r3.Vector{-1, -5, -9})
		test.That(t, b.Max, test.ShouldResemble, r3.Vector{7, 8, 6})
	})

	t.Run("scale", func(t *testing.T) {
		scaled := tri.Scale(r3.Vector{2, -1, 5})
		test.That(t, scaled.B, test.ShouldResemble, r3.Vector{6, 0, 0})
		test.That(t, scaled.C, test.ShouldResemble, r3.Vector{0, -3, 0})
	})
}

func TestRayTriangle(t *testing.T) {
	tri := NewTriangle(r3.Vector{0, 0, 0}, r3.Vector{1, 0, 0}, r3.Vector{0, 1, 0})

	t.Run("hit from above", func(t *testing.T) {
		hitT, normal, hit := RayTriangle(r3.Vector{0.25, 0.25, 10}, r3.Vector{0, 0, -1}, tri)
		test.That(t, hit, test.ShouldBeTrue)
		test.That(t, hitT, test.ShouldAlmostEqual, 10)
		test.That(t, normal, test.ShouldResemble, r3.Vector{0, 0, 1})
	})

	t.Run("hit from below faces the ray", func(t *testing.T) {
		hitT, normal, hit := RayTriangle(r3.Vector{0.25, 0.25, -2}, r3.Vector{0, 0, 1}, tri)
		test.That(t, hit, test.ShouldBeTrue)
		test.That(t, hitT, test.ShouldAlmostEqual, 2)
		test.That(t, normal, test.ShouldResemble, r3.Vector{0, 0, -1})
	})

	t.Run("t is measured in direction lengths", func(t *testing.T) {
		hitT, _, hit := RayTriangle(r3.Vector{0.25, 0.25, 10}, r3.Vector{0, 0, -2}, tri)
		test.That(t, hit, test.ShouldBeTrue)
		test.That(t, hitT, test.ShouldAlmostEqual, 5)
	})

	t.Run("outside the triangle", func(t *testing.T) {
		_, _, hit := RayTriangle(r3.Vector{5, 5, 10}, r3.Vector{0, 0, -1}, tri)
		test.That(t, hit, test.ShouldBeFalse)
		_, _, hit = RayTriangle(r3.Vector{0.75, 0.75, 10}, r3.Vector{0, 0, -1}, tri)
		test.That(t, hit, test.ShouldBeFalse)
	})

	t.Run("behind the origin", func(t *testing.T) {
		_, _, hit := RayTriangle(r3.Vector{0.25, 0.25, 10}, r3.Vector{0, 0, 1}, tri)
		test.That(t, hit, test.ShouldBeFalse)
	})

	t.Run("parallel ray", func(t *testing.T) {
		_, _, hit := RayTriangle(r3.Vector{-1, 0.25, 0}, r3.Vector{1, 0, 0}, tri)
		test.That(t, hit, test.ShouldBeFalse)
	})

	t.Run("oblique hit", func(t *testing.T) {
		dir := r3.Vector{1, 1, -1}.Normalize()
		hitT, _, hit := RayTriangle(r3.Vector{0, 0, 0.25}, dir, tri)
		test.That(t, hit, test.ShouldBeTrue)
		test.That(t, hitT, test.ShouldAlmostEqual, 0.25*math.Sqrt(3))
	})
}
