package shapes

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/golang/geo/r3"
)

// Inertia is the inverse mass and inverse inertia tensor of a body, in shape local space about the
// local origin.
type Inertia struct {
	InverseMass          float64
	InverseInertiaTensor mgl64.Mat3
}

func toVec3(v r3.Vector) mgl64.Vec3 {
	return mgl64.Vec3{v.X, v.Y, v.Z}
}

// secondMoment returns sum(v v^T) + (sum v)(sum v)^T over the given points.
func secondMoment(points ...r3.Vector) mgl64.Mat3 {
	var moment mgl64.Mat3
	var sum r3.Vector
	for _, p := range points {
		v := toVec3(p)
		moment = moment.Add(v.OuterProd3(v))
		sum = sum.Add(p)
	}
	s := toVec3(sum)
	return moment.Add(s.OuterProd3(s))
}

// inertiaFromCovariance converts a density weighted covariance into an inverse inertia.
func inertiaFromCovariance(mass, density float64, covariance mgl64.Mat3) Inertia {
	covariance = covariance.Mul(density)
	tensor := mgl64.Ident3().Mul(covariance.Trace()).Sub(covariance)
	return Inertia{InverseMass: 1 / mass, InverseInertiaTensor: tensor.Inv()}
}

// ComputeClosedInertia treats the scaled mesh as the boundary of a solid of uniform density and
// returns its inertia about the local origin. Triangles must be consistently wound; either winding
// works. A mesh enclosing no volume yields a zero inverse inertia tensor.
func (m *Mesh) ComputeClosedInertia(mass float64) Inertia {
	m.checkLive()
	var covariance mgl64.Mat3
	volume := 0.
	for i := range m.triangles.Memory {
		tri := m.GetLocalTriangle(i)
		// Signed tetrahedron spanned by the origin and the triangle.
		det := tri.A.Dot(tri.B.Cross(tri.C))
		volume += det / 6
		covariance = covariance.Add(secondMoment(tri.A, tri.B, tri.C).Mul(det / 120))
	}
	if volume == 0 {
		return Inertia{InverseMass: 1 / mass}
	}
	return inertiaFromCovariance(mass, mass/volume, covariance)
}

// ComputeOpenInertia treats the scaled mesh as an infinitely thin shell of uniform density and
// returns its inertia about the local origin.
func (m *Mesh) ComputeOpenInertia(mass float64) Inertia {
	m.checkLive()
	var covariance mgl64.Mat3
	area := 0.
	for i := range m.triangles.Memory {
		tri := m.GetLocalTriangle(i)
		triArea := tri.Area()
		area += triArea
		covariance = covariance.Add(secondMoment(tri.A, tri.B, tri.C).Mul(triArea / 12))
	}
	if area == 0 {
		return Inertia{InverseMass: 1 / mass}
	}
	return inertiaFromCovariance(mass, mass/area, covariance)
}

// ComputeClosedCenterOfMass returns the volume centroid of the solid bounded by the scaled mesh. A
// mesh enclosing no volume reports the origin.
func (m *Mesh) ComputeClosedCenterOfMass() r3.Vector {
	m.checkLive()
	var weighted r3.Vector
	volume := 0.
	for i := range m.triangles.Memory {
		tri := m.GetLocalTriangle(i)
		tetraVolume := tri.A.Dot(tri.B.Cross(tri.C)) / 6
		volume += tetraVolume
		weighted = weighted.Add(tri.A.Add(tri.B).Add(tri.C).Mul(tetraVolume / 4))
	}
	if volume == 0 {
		return r3.Vector{}
	}
	return weighted.Mul(1 / volume)
}
