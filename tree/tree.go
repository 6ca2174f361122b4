// Package tree implements the bounding volume hierarchy that indexes a mesh's triangles. The tree
// is built once from per-leaf bounds and is read only afterwards, so any number of goroutines may
// traverse it at the same time.
package tree

import (
	"cmp"
	"slices"

	"github.com/pkg/errors"

	"go.viam.com/trimesh/memory"
	"go.viam.com/trimesh/spatialmath"
)

// ErrDisposed is returned when a tree is used or disposed after Dispose.
var ErrDisposed = errors.New("tree has been disposed")

const noLeaf = -1

// node is either a leaf naming one input index or an internal node with exactly two children.
type node struct {
	bounds spatialmath.AABB
	leaf   int
	left   int
	right  int
}

func (n *node) isLeaf() bool {
	return n.leaf != noLeaf
}

// Tree is a static bounding volume hierarchy with one leaf per input bound. Leaf identity is the
// position of the bound in the slice given to New.
type Tree struct {
	nodes     memory.Buffer[node]
	nodeCount int
	leafCount int
	disposed  bool
}

// New builds a tree over bounds. Node storage is taken from pool and must be handed back with
// Dispose. An empty bounds slice produces an empty tree that reports no hits.
func New(pool memory.Pool, bounds []spatialmath.AABB) (*Tree, error) {
	for i, b := range bounds {
		if b.IsEmpty() {
			return nil, errors.Errorf("leaf %d has empty bounds", i)
		}
	}
	t := &Tree{leafCount: len(bounds)}
	if len(bounds) == 0 {
		return t, nil
	}
	t.nodes = memory.Take[node](pool, 2*len(bounds)-1)

	leaves := memory.Take[int](pool, len(bounds))
	for i := range leaves.Memory {
		leaves.Memory[i] = i
	}
	b := builder{tree: t, bounds: bounds}
	b.build(leaves.Memory)
	if err := memory.Return(pool, &leaves); err != nil {
		return nil, err
	}
	return t, nil
}

type builder struct {
	tree   *Tree
	bounds []spatialmath.AABB
}

// build lays out the subtree over leaves in preorder and returns the index of its root.
func (b *builder) build(leaves []int) int {
	index := b.tree.nodeCount
	b.tree.nodeCount++

	if len(leaves) == 1 {
		b.tree.nodes.Memory[index] = node{bounds: b.bounds[leaves[0]], leaf: leaves[0], left: noLeaf, right: noLeaf}
		return index
	}

	total := spatialmath.EmptyAABB()
	centroidBounds := spatialmath.EmptyAABB()
	for _, leaf := range leaves {
		total = total.Merge(b.bounds[leaf])
		centroidBounds = centroidBounds.ExpandToInclude(b.bounds[leaf].Center())
	}

	// Median split along the axis with the widest centroid spread. Ties fall back to leaf index
	// so the layout is a pure function of the input.
	extent := centroidBounds.Max.Sub(centroidBounds.Min)
	axis := 0
	if extent.Y > extent.X {
		axis = 1
	}
	if extent.Z > spatialmath.Component(extent, axis) {
		axis = 2
	}
	slices.SortFunc(leaves, func(i, j int) int {
		ci := spatialmath.Component(b.bounds[i].Center(), axis)
		cj := spatialmath.Component(b.bounds[j].Center(), axis)
		if c := cmp.Compare(ci, cj); c != 0 {
			return c
		}
		return cmp.Compare(i, j)
	})
	mid := len(leaves) / 2

	left := b.build(leaves[:mid])
	right := b.build(leaves[mid:])
	b.tree.nodes.Memory[index] = node{bounds: total, leaf: noLeaf, left: left, right: right}
	return index
}

// LeafCount returns the number of leaves in the tree.
func (t *Tree) LeafCount() int {
	return t.leafCount
}

// NodeCount returns the number of nodes, leaves included.
func (t *Tree) NodeCount() int {
	return t.nodeCount
}

// Bounds returns the bounds of the root, or an empty box for an empty tree.
func (t *Tree) Bounds() spatialmath.AABB {
	if t.nodeCount == 0 {
		return spatialmath.EmptyAABB()
	}
	return t.nodes.Memory[0].bounds
}

// Disposed reports whether Dispose has been called.
func (t *Tree) Disposed() bool {
	return t.disposed
}

// Dispose returns the node storage to pool. The tree must not be used afterwards.
func (t *Tree) Dispose(pool memory.Pool) error {
	if t.disposed {
		return ErrDisposed
	}
	t.disposed = true
	t.nodeCount = 0
	if !t.nodes.Allocated() {
		return nil
	}
	return memory.Return(pool, &t.nodes)
}

// Validate checks the structural invariants of the tree: internal bounds contain their children and
// every leaf index appears exactly once.
func (t *Tree) Validate() error {
	if t.disposed {
		return ErrDisposed
	}
	if t.nodeCount == 0 {
		if t.leafCount != 0 {
			return errors.Errorf("tree has %d leaves but no nodes", t.leafCount)
		}
		return nil
	}
	seen := make([]bool, t.leafCount)
	stack := []int{0}
	for len(stack) > 0 {
		index := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := &t.nodes.Memory[index]
		if n.isLeaf() {
			if n.leaf < 0 || n.leaf >= t.leafCount || seen[n.leaf] {
				return errors.Errorf("leaf %d at node %d is out of range or duplicated", n.leaf, index)
			}
			seen[n.leaf] = true
			continue
		}
		for _, child := range []int{n.left, n.right} {
			if !n.bounds.Contains(t.nodes.Memory[child].bounds) {
				return errors.Errorf("node %d does not contain child %d", index, child)
			}
			stack = append(stack, child)
		}
	}
	for leaf, ok := range seen {
		if !ok {
			return errors.Errorf("leaf %d is unreachable", leaf)
		}
	}
	return nil
}
