package collision

import (
	"sync"

	"github.com/golang/geo/r3"
	"go.uber.org/multierr"

	"go.viam.com/trimesh/memory"
)

// Overlaps is an OverlapCollector storing indices in a pool backed list.
type Overlaps struct {
	list memory.QuickList[int]
	err  error
}

// Allocate returns a slot for one more overlap. If the list cannot grow, the error is kept and
// reported by Err, and a throwaway slot is returned so the query can finish.
func (o *Overlaps) Allocate(pool memory.Pool) *int {
	if !o.list.Span.Allocated() {
		o.list = memory.NewQuickList[int](8, pool)
	}
	slot, err := o.list.Allocate(pool)
	if err != nil {
		o.err = multierr.Append(o.err, err)
		return new(int)
	}
	return slot
}

// Indices returns the collected overlaps in the order they were allocated.
func (o *Overlaps) Indices() []int {
	if !o.list.Span.Allocated() {
		return nil
	}
	return o.list.Items()
}

// Count returns the number of collected overlaps.
func (o *Overlaps) Count() int {
	return o.list.Count
}

// Err returns any error hit while growing the list.
func (o *Overlaps) Err() error {
	return o.err
}

// Dispose returns the list storage to pool.
func (o *Overlaps) Dispose(pool memory.Pool) error {
	return multierr.Append(o.err, o.list.Dispose(pool))
}

// BatchOverlaps is an OverlapCollection with one Overlaps per pair.
type BatchOverlaps struct {
	pairs []Overlaps
}

// NewBatchOverlaps returns a collection for pairCount pairs.
func NewBatchOverlaps(pairCount int) *BatchOverlaps {
	return &BatchOverlaps{pairs: make([]Overlaps, pairCount)}
}

// GetOverlapsForPair returns the collector for pair pairIndex.
func (b *BatchOverlaps) GetOverlapsForPair(pairIndex int) OverlapCollector {
	return &b.pairs[pairIndex]
}

// Pair returns the collected overlaps of pair pairIndex.
func (b *BatchOverlaps) Pair(pairIndex int) *Overlaps {
	return &b.pairs[pairIndex]
}

// PairCount returns the number of pairs.
func (b *BatchOverlaps) PairCount() int {
	return len(b.pairs)
}

// Dispose returns every pair's storage to pool.
func (b *BatchOverlaps) Dispose(pool memory.Pool) error {
	var err error
	for i := range b.pairs {
		err = multierr.Append(err, b.pairs[i].Dispose(pool))
	}
	return err
}

// RayHit is one recorded ray hit.
type RayHit struct {
	T      float64
	Normal r3.Vector
}

// RayHits is a RayHitHandler that records hits by ray index. It is safe for concurrent use so a
// batch may be split across workers.
type RayHits struct {
	mu   sync.Mutex
	hits map[int]RayHit
}

// NewRayHits returns an empty handler.
func NewRayHits() *RayHits {
	return &RayHits{hits: map[int]RayHit{}}
}

// OnHit records the hit for rayIndex.
func (r *RayHits) OnHit(rayIndex int, t float64, normal r3.Vector) {
	r.mu.Lock()
	r.hits[rayIndex] = RayHit{T: t, Normal: normal}
	r.mu.Unlock()
}

// Hit returns the hit for rayIndex, if any.
func (r *RayHits) Hit(rayIndex int) (RayHit, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	hit, ok := r.hits[rayIndex]
	return hit, ok
}

// Count returns the number of rays that hit.
func (r *RayHits) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.hits)
}
