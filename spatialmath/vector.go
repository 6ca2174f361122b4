// Package spatialmath defines the vectors, orientations, poses, triangles and bounding boxes used by
// the mesh shape and its spatial index.
package spatialmath

import (
	"math"

	"github.com/golang/geo/r3"
)

// MulElem multiplies two vectors componentwise.
func MulElem(a, b r3.Vector) r3.Vector {
	return r3.Vector{X: a.X * b.X, Y: a.Y * b.Y, Z: a.Z * b.Z}
}

// Reciprocal returns the componentwise reciprocal of v. A zero component yields an infinity,
// so callers must reject zero components before using the result.
func Reciprocal(v r3.Vector) r3.Vector {
	return r3.Vector{X: 1 / v.X, Y: 1 / v.Y, Z: 1 / v.Z}
}

// MinElem returns the componentwise minimum of a and b.
func MinElem(a, b r3.Vector) r3.Vector {
	return r3.Vector{X: math.Min(a.X, b.X), Y: math.Min(a.Y, b.Y), Z: math.Min(a.Z, b.Z)}
}

// MaxElem returns the componentwise maximum of a and b.
func MaxElem(a, b r3.Vector) r3.Vector {
	return r3.Vector{X: math.Max(a.X, b.X), Y: math.Max(a.Y, b.Y), Z: math.Max(a.Z, b.Z)}
}

// HasZeroComponent reports whether any component of v is exactly zero.
func HasZeroComponent(v r3.Vector) bool {
	return v.X == 0 || v.Y == 0 || v.Z == 0
}

// R3VectorAlmostEqual compares two r3.Vector objects and returns if the all elementwise differences are less than epsilon.
func R3VectorAlmostEqual(a, b r3.Vector, epsilon float64) bool {
	return math.Abs(a.X-b.X) < epsilon && math.Abs(a.Y-b.Y) < epsilon && math.Abs(a.Z-b.Z) < epsilon
}

// Component returns the component of v along axis, 0 being X and 2 being Z.
func Component(v r3.Vector, axis int) float64 {
	switch axis {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}
