package spatialmath

import (
	"math"

	"github.com/golang/geo/r3"
)

// AABB is an axis aligned bounding box.
type AABB struct {
	Min r3.Vector
	Max r3.Vector
}

// EmptyAABB returns the inverted box (+inf, -inf) that signals no geometry. Merging anything into it
// yields that thing.
func EmptyAABB() AABB {
	inf := math.Inf(1)
	return AABB{
		Min: r3.Vector{X: inf, Y: inf, Z: inf},
		Max: r3.Vector{X: -inf, Y: -inf, Z: -inf},
	}
}

// IsEmpty reports whether the box is inverted along any axis.
func (b AABB) IsEmpty() bool {
	return b.Min.X > b.Max.X || b.Min.Y > b.Max.Y || b.Min.Z > b.Max.Z
}

// ExpandToInclude grows the box to contain pt.
func (b AABB) ExpandToInclude(pt r3.Vector) AABB {
	return AABB{Min: MinElem(b.Min, pt), Max: MaxElem(b.Max, pt)}
}

// Merge returns the smallest box containing both boxes.
func (b AABB) Merge(other AABB) AABB {
	return AABB{Min: MinElem(b.Min, other.Min), Max: MaxElem(b.Max, other.Max)}
}

// Overlaps reports whether the boxes intersect. Touching faces count as overlapping.
func (b AABB) Overlaps(other AABB) bool {
	return aabbOverlap(b.Min, b.Max, other.Min, other.Max)
}

// Contains reports whether other lies entirely within b.
func (b AABB) Contains(other AABB) bool {
	return b.Min.X <= other.Min.X && b.Min.Y <= other.Min.Y && b.Min.Z <= other.Min.Z &&
		b.Max.X >= other.Max.X && b.Max.Y >= other.Max.Y && b.Max.Z >= other.Max.Z
}

// Center returns the midpoint of the box.
func (b AABB) Center() r3.Vector {
	return b.Min.Add(b.Max).Mul(0.5)
}

// HalfExtents returns half the size of the box along each axis.
func (b AABB) HalfExtents() r3.Vector {
	return b.Max.Sub(b.Min).Mul(0.5)
}

// Scale multiplies both corners by s componentwise. Negative factors swap the corners on that
// axis so the result stays well formed.
func (b AABB) Scale(s r3.Vector) AABB {
	lo := MulElem(b.Min, s)
	hi := MulElem(b.Max, s)
	return AABB{Min: MinElem(lo, hi), Max: MaxElem(lo, hi)}
}

// SurfaceArea returns the surface area of the box, zero for an empty box.
func (b AABB) SurfaceArea() float64 {
	if b.IsEmpty() {
		return 0
	}
	d := b.Max.Sub(b.Min)
	return 2 * (d.X*d.Y + d.Y*d.Z + d.Z*d.X)
}

func aabbOverlap(min1, max1, min2, max2 r3.Vector) bool {
	return min1.X <= max2.X && max1.X >= min2.X &&
		min1.Y <= max2.Y && max1.Y >= min2.Y &&
		min1.Z <= max2.Z && max1.Z >= min2.Z
}

// RayAABB returns the parametric interval [tMin, tMax] over which origin + t*direction lies inside
// the box, clipped to [0, maximumT]. ok is false when the ray misses.
func RayAABB(origin, direction r3.Vector, box AABB, maximumT float64) (tMin, tMax float64, ok bool) {
	tMin, tMax = 0, maximumT
	for axis := 0; axis < 3; axis++ {
		o := Component(origin, axis)
		d := Component(direction, axis)
		lo := Component(box.Min, axis)
		hi := Component(box.Max, axis)
		if d == 0 {
			if o < lo || o > hi {
				return 0, 0, false
			}
			continue
		}
		inv := 1 / d
		t0 := (lo - o) * inv
		t1 := (hi - o) * inv
		if t0 > t1 {
			t0, t1 = t1, t0
		}
		if t0 > tMin {
			tMin = t0
		}
		if t1 < tMax {
			tMax = t1
		}
		if tMin > tMax {
			return 0, 0, false
		}
	}
	return tMin, tMax, true
}
