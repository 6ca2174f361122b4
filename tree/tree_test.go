package tree

import (
	"math"
	"sort"
	"testing"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"go.viam.com/test"

	"go.viam.com/trimesh/memory"
	"go.viam.com/trimesh/spatialmath"
)

// unitBoxes returns count unit cubes laid along X with a gap of one between neighbours.
func unitBoxes(count int) []spatialmath.AABB {
	boxes := make([]spatialmath.AABB, count)
	for i := range boxes {
		x := float64(2 * i)
		boxes[i] = spatialmath.AABB{Min: r3.Vector{X: x}, Max: r3.Vector{X: x + 1, Y: 1, Z: 1}}
	}
	return boxes
}

type collectingEnumerator struct {
	leaves []int
}

func (e *collectingEnumerator) LoopBody(leafIndex int) {
	e.leaves = append(e.leaves, leafIndex)
}

// nearestTester shrinks maximumT to the entry distance of each box it is offered.
type nearestTester struct {
	origin, direction r3.Vector
	bounds            []spatialmath.AABB
	visited           []int
	nearest           int
}

func (n *nearestTester) TestLeaf(leafIndex int, maximumT *float64) {
	n.visited = append(n.visited, leafIndex)
	tMin, _, ok := spatialmath.RayAABB(n.origin, n.direction, n.bounds[leafIndex], *maximumT)
	if ok && tMin < *maximumT {
		*maximumT = tMin
		n.nearest = leafIndex
	}
}

func TestNew(t *testing.T) {
	t.Run("empty bounds build an empty tree", func(t *testing.T) {
		pool := memory.NewBufferPool()
		tr, err := New(pool, nil)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, tr.LeafCount(), test.ShouldEqual, 0)
		test.That(t, tr.NodeCount(), test.ShouldEqual, 0)
		test.That(t, tr.Bounds().IsEmpty(), test.ShouldBeTrue)
		test.That(t, tr.Validate(), test.ShouldBeNil)

		enumerator := &collectingEnumerator{}
		GetOverlaps(tr, r3.Vector{-10, -10, -10}, r3.Vector{10, 10, 10}, enumerator)
		test.That(t, enumerator.leaves, test.ShouldBeEmpty)
		test.That(t, tr.Dispose(pool), test.ShouldBeNil)
		test.That(t, pool.Outstanding(), test.ShouldEqual, 0)
	})

	t.Run("single leaf", func(t *testing.T) {
		pool := memory.NewBufferPool()
		tr, err := New(pool, unitBoxes(1))
		test.That(t, err, test.ShouldBeNil)
		test.That(t, tr.NodeCount(), test.ShouldEqual, 1)
		test.That(t, tr.Validate(), test.ShouldBeNil)
		test.That(t, tr.Dispose(pool), test.ShouldBeNil)
	})

	t.Run("many leaves", func(t *testing.T) {
		pool := memory.NewBufferPool()
		boxes := unitBoxes(37)
		tr, err := New(pool, boxes)
		test.That(t, err, test.ShouldBeNil)
		test.That(t, tr.LeafCount(), test.ShouldEqual, 37)
		test.That(t, tr.NodeCount(), test.ShouldEqual, 73)
		test.That(t, tr.Validate(), test.ShouldBeNil)
		test.That(t, tr.Bounds().Min, test.ShouldResemble, r3.Vector{})
		test.That(t, tr.Bounds().Max, test.ShouldResemble, r3.Vector{X: 73, Y: 1, Z: 1})
		// only the node storage is still held
		test.That(t, pool.Outstanding(), test.ShouldEqual, 1)
		test.That(t, tr.Dispose(pool), test.ShouldBeNil)
		test.That(t, pool.Outstanding(), test.ShouldEqual, 0)
	})

	t.Run("empty leaf bounds are rejected", func(t *testing.T) {
		pool := memory.NewBufferPool()
		_, err := New(pool, []spatialmath.AABB{spatialmath.EmptyAABB()})
		test.That(t, err, test.ShouldNotBeNil)
		test.That(t, pool.Outstanding(), test.ShouldEqual, 0)
	})
}

func TestDispose(t *testing.T) {
	pool := memory.NewBufferPool()
	tr, err := New(pool, unitBoxes(4))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, tr.Dispose(pool), test.ShouldBeNil)
	test.That(t, tr.Disposed(), test.ShouldBeTrue)
	test.That(t, errors.Is(tr.Dispose(pool), ErrDisposed), test.ShouldBeTrue)
	test.That(t, errors.Is(tr.Validate(), ErrDisposed), test.ShouldBeTrue)
	test.That(t, func() {
		GetOverlaps(tr, r3.Vector{}, r3.Vector{}, &collectingEnumerator{})
	}, test.ShouldPanicWith, ErrDisposed)
}

func TestGetOverlaps(t *testing.T) {
	pool := memory.NewBufferPool()
	boxes := unitBoxes(20)
	tr, err := New(pool, boxes)
	test.That(t, err, test.ShouldBeNil)
	defer tr.Dispose(pool)

	query := spatialmath.AABB{Min: r3.Vector{X: 3.5, Y: 0.5, Z: 0.5}, Max: r3.Vector{X: 8.5, Y: 0.6, Z: 0.6}}
	enumerator := &collectingEnumerator{}
	GetOverlaps(tr, query.Min, query.Max, enumerator)

	var expected []int
	for i, b := range boxes {
		if b.Overlaps(query) {
			expected = append(expected, i)
		}
	}
	got := append([]int(nil), enumerator.leaves...)
	sort.Ints(got)
	test.That(t, got, test.ShouldResemble, expected)

	t.Run("deterministic order", func(t *testing.T) {
		again := &collectingEnumerator{}
		GetOverlaps(tr, query.Min, query.Max, again)
		test.That(t, again.leaves, test.ShouldResemble, enumerator.leaves)
	})

	t.Run("disjoint query", func(t *testing.T) {
		none := &collectingEnumerator{}
		GetOverlaps(tr, r3.Vector{Y: 5}, r3.Vector{X: 100, Y: 6, Z: 1}, none)
		test.That(t, none.leaves, test.ShouldBeEmpty)
	})
}

func TestRayCast(t *testing.T) {
	pool := memory.NewBufferPool()
	boxes := unitBoxes(16)
	tr, err := New(pool, boxes)
	test.That(t, err, test.ShouldBeNil)
	defer tr.Dispose(pool)

	t.Run("nearest leaf along +X", func(t *testing.T) {
		tester := &nearestTester{origin: r3.Vector{X: -5, Y: 0.5, Z: 0.5}, direction: r3.Vector{X: 1}, bounds: boxes, nearest: -1}
		maximumT := math.MaxFloat64
		RayCast(tr, tester.origin, tester.direction, &maximumT, tester)
		test.That(t, tester.nearest, test.ShouldEqual, 0)
		test.That(t, maximumT, test.ShouldAlmostEqual, 5)
	})

	t.Run("maximumT limits the leaves offered", func(t *testing.T) {
		tester := &nearestTester{origin: r3.Vector{X: 40, Y: 0.5, Z: 0.5}, direction: r3.Vector{X: -1}, bounds: boxes, nearest: -1}
		maximumT := 1.0
		RayCast(tr, tester.origin, tester.direction, &maximumT, tester)
		test.That(t, tester.visited, test.ShouldBeEmpty)
		test.That(t, tester.nearest, test.ShouldEqual, -1)
	})

	t.Run("ray above everything", func(t *testing.T) {
		tester := &nearestTester{origin: r3.Vector{X: -5, Y: 3, Z: 0.5}, direction: r3.Vector{X: 1}, bounds: boxes, nearest: -1}
		maximumT := math.MaxFloat64
		RayCast(tr, tester.origin, tester.direction, &maximumT, tester)
		test.That(t, tester.visited, test.ShouldBeEmpty)
	})
}

func TestSweep(t *testing.T) {
	pool := memory.NewBufferPool()
	boxes := unitBoxes(10)
	tr, err := New(pool, boxes)
	test.That(t, err, test.ShouldBeNil)
	defer tr.Dispose(pool)

	// A small box starting above leaf 2 and dropping onto it.
	min := r3.Vector{X: 4.25, Y: 0.25, Z: 5}
	max := r3.Vector{X: 4.75, Y: 0.75, Z: 5.5}

	t.Run("long enough sweep reaches the leaf", func(t *testing.T) {
		enumerator := &collectingEnumerator{}
		Sweep(tr, min, max, r3.Vector{Z: -1}, 10, enumerator)
		test.That(t, enumerator.leaves, test.ShouldResemble, []int{2})
	})

	t.Run("short sweep stops above it", func(t *testing.T) {
		enumerator := &collectingEnumerator{}
		Sweep(tr, min, max, r3.Vector{Z: -1}, 3, enumerator)
		test.That(t, enumerator.leaves, test.ShouldBeEmpty)
	})

	t.Run("sideways sweep crosses several leaves", func(t *testing.T) {
		enumerator := &collectingEnumerator{}
		Sweep(tr, r3.Vector{X: -1, Y: 0.25, Z: 0.25}, r3.Vector{X: -0.5, Y: 0.75, Z: 0.75}, r3.Vector{X: 1}, 6, enumerator)
		got := append([]int(nil), enumerator.leaves...)
		sort.Ints(got)
		test.That(t, got, test.ShouldResemble, []int{0, 1, 2})
	})
}
