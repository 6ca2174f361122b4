package spatialmath

import (
	"math"

	"github.com/golang/geo/r3"
)

// Triangle is three vertices in a shared frame. It carries no identity beyond its position in
// whatever buffer holds it.
type Triangle struct {
	A r3.Vector
	B r3.Vector
	C r3.Vector
}

// NewTriangle returns a triangle with the given vertices.
func NewTriangle(a, b, c r3.Vector) Triangle {
	return Triangle{A: a, B: b, C: c}
}

// Points returns the three vertices in order.
func (t Triangle) Points() [3]r3.Vector {
	return [3]r3.Vector{t.A, t.B, t.C}
}

// Bounds returns the axis aligned box tightly enclosing the triangle.
func (t Triangle) Bounds() AABB {
	return AABB{
		Min: MinElem(MinElem(t.A, t.B), t.C),
		Max: MaxElem(MaxElem(t.A, t.B), t.C),
	}
}

// Normal returns the unnormalized face normal (B-A)x(C-A). Its length is twice the area.
func (t Triangle) Normal() r3.Vector {
	return t.B.Sub(t.A).Cross(t.C.Sub(t.A))
}

// Area returns the area of the triangle.
func (t Triangle) Area() float64 {
	return 0.5 * t.Normal().Norm()
}

// Centroid returns the mean of the three vertices.
func (t Triangle) Centroid() r3.Vector {
	return t.A.Add(t.B).Add(t.C).Mul(1. / 3)
}

// Scale applies a componentwise scale to every vertex.
func (t Triangle) Scale(scale r3.Vector) Triangle {
	return Triangle{A: MulElem(t.A, scale), B: MulElem(t.B, scale), C: MulElem(t.C, scale)}
}

// RayTriangle intersects the ray origin + t*direction (t >= 0) with the triangle from either side.
// t is measured in multiples of direction, so it is a distance only when direction is unit length.
// The returned normal has unit length and faces against the ray.
func RayTriangle(origin, direction r3.Vector, tri Triangle) (float64, r3.Vector, bool) {
	ab := tri.B.Sub(tri.A)
	ac := tri.C.Sub(tri.A)
	normal := ab.Cross(ac)
	dn := -direction.Dot(normal)
	if dn == 0 || math.IsNaN(dn) {
		return 0, r3.Vector{}, false
	}
	ao := origin.Sub(tri.A)
	t := ao.Dot(normal) / dn
	if t < 0 {
		return 0, r3.Vector{}, false
	}
	// Cramer's rule on ao + t*d = v*ab + w*ac.
	v := -direction.Dot(ao.Cross(ac)) / dn
	if v < 0 || v > 1 {
		return 0, r3.Vector{}, false
	}
	w := -direction.Dot(ab.Cross(ao)) / dn
	if w < 0 || v+w > 1 {
		return 0, r3.Vector{}, false
	}
	if dn < 0 {
		normal = normal.Mul(-1)
	}
	return t, normal.Normalize(), true
}
