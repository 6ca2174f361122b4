// Package collision holds the narrow contracts between shape queries and the code that consumes
// their results: overlap collectors, ray hit handlers, ray sources and pair descriptors.
package collision

import (
	"github.com/golang/geo/r3"

	"go.viam.com/trimesh/memory"
)

// OverlapCollector receives the leaf indices found by an overlap query. Each call to Allocate
// returns a slot the query writes one index into; storage and growth are up to the collector.
type OverlapCollector interface {
	Allocate(pool memory.Pool) *int
}

// OverlapCollection hands out one collector per pair of a batched overlap query.
type OverlapCollection interface {
	GetOverlapsForPair(pairIndex int) OverlapCollector
}

// RayHitHandler is told about every ray of a batch that hits. It is called at most once per ray.
type RayHitHandler interface {
	OnHit(rayIndex int, t float64, normal r3.Vector)
}

// Ray is a world space ray limited to origin + t*Direction for t in [0, MaximumT].
type Ray struct {
	Origin    r3.Vector
	Direction r3.Vector
	MaximumT  float64
}

// RaySource provides the rays of a batched ray test.
type RaySource interface {
	RayCount() int
	GetRay(i int) Ray
}

// RaySlice is a RaySource over a slice.
type RaySlice []Ray

// RayCount returns the number of rays.
func (r RaySlice) RayCount() int {
	return len(r)
}

// GetRay returns ray i.
func (r RaySlice) GetRay(i int) Ray {
	return r[i]
}

// BoundsTestedPair names a shape and a query box expressed in that shape's local frame. Container
// is resolved to a concrete shape by the query that receives the pair.
type BoundsTestedPair struct {
	Container any
	Min       r3.Vector
	Max       r3.Vector
}
