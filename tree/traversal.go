package tree

import (
	"github.com/golang/geo/r3"

	"go.viam.com/trimesh/spatialmath"
)

// RayLeafTester is invoked for every leaf whose bounds the ray enters before *maximumT. A tester
// that finds a hit may lower *maximumT; traversal then skips nodes the ray reaches later.
type RayLeafTester interface {
	TestLeaf(leafIndex int, maximumT *float64)
}

// OverlapEnumerator receives every leaf found by an overlap or sweep query.
type OverlapEnumerator interface {
	LoopBody(leafIndex int)
}

// traversalStackSize covers balanced trees far deeper than any mesh will produce; the stack
// spills to the heap beyond it.
const traversalStackSize = 64

// RayCast walks the tree along origin + t*direction for t in [0, *maximumT]. Both the ray and the
// tree live in the same space; t is measured in multiples of direction.
func RayCast[T RayLeafTester](t *Tree, origin, direction r3.Vector, maximumT *float64, tester T) {
	if t.disposed {
		panic(ErrDisposed)
	}
	if t.nodeCount == 0 {
		return
	}
	var storage [traversalStackSize]int
	stack := append(storage[:0], 0)
	for len(stack) > 0 {
		index := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := &t.nodes.Memory[index]
		if _, _, ok := spatialmath.RayAABB(origin, direction, n.bounds, *maximumT); !ok {
			continue
		}
		if n.isLeaf() {
			tester.TestLeaf(n.leaf, maximumT)
			continue
		}
		stack = append(stack, n.right, n.left)
	}
}

// GetOverlaps reports every leaf whose bounds overlap the box [min, max].
func GetOverlaps[E OverlapEnumerator](t *Tree, min, max r3.Vector, enumerator E) {
	if t.disposed {
		panic(ErrDisposed)
	}
	if t.nodeCount == 0 {
		return
	}
	query := spatialmath.AABB{Min: min, Max: max}
	var storage [traversalStackSize]int
	stack := append(storage[:0], 0)
	for len(stack) > 0 {
		index := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := &t.nodes.Memory[index]
		if !n.bounds.Overlaps(query) {
			continue
		}
		if n.isLeaf() {
			enumerator.LoopBody(n.leaf)
			continue
		}
		stack = append(stack, n.right, n.left)
	}
}

// Sweep reports every leaf whose bounds are touched by the box [min, max] as it moves along
// sweep for t in [0, maximumT].
func Sweep[E OverlapEnumerator](t *Tree, min, max, sweep r3.Vector, maximumT float64, enumerator E) {
	if t.disposed {
		panic(ErrDisposed)
	}
	if t.nodeCount == 0 {
		return
	}
	query := spatialmath.AABB{Min: min, Max: max}
	origin := query.Center()
	halfExtents := query.HalfExtents()
	var storage [traversalStackSize]int
	stack := append(storage[:0], 0)
	for len(stack) > 0 {
		index := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := &t.nodes.Memory[index]
		// A moving box hits a static box exactly when its center ray hits the static box grown by
		// the moving box's half extents.
		expanded := spatialmath.AABB{Min: n.bounds.Min.Sub(halfExtents), Max: n.bounds.Max.Add(halfExtents)}
		if _, _, ok := spatialmath.RayAABB(origin, sweep, expanded, maximumT); !ok {
			continue
		}
		if n.isLeaf() {
			enumerator.LoopBody(n.leaf)
			continue
		}
		stack = append(stack, n.right, n.left)
	}
}
