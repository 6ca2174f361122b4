// Package shapes implements the triangle mesh collidable: a static, possibly non uniformly scaled
// triangle soup indexed by a bounding volume hierarchy, answering bounds, ray and broad phase
// overlap queries.
package shapes

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"go.uber.org/atomic"
	"go.uber.org/multierr"

	"go.viam.com/trimesh/memory"
	"go.viam.com/trimesh/spatialmath"
	"go.viam.com/trimesh/tree"
)

// MeshTypeID identifies meshes to the shape registry.
const MeshTypeID = 8

var (
	// ErrZeroScale is returned when a scale with a zero component is given to a mesh.
	ErrZeroScale = errors.New("mesh scale must not have a zero component")
	// ErrDisposed is returned, or panicked with on query paths, when a mesh is used after Dispose.
	ErrDisposed = errors.New("mesh has been disposed")
)

// meshScale pairs a scale with its reciprocal so both are always swapped in together.
type meshScale struct {
	scale   r3.Vector
	inverse r3.Vector
}

// Mesh is a static triangle soup in shape local space. Triangles are stored unscaled and the tree is
// built over the unscaled triangle bounds; scale is applied to queries on their way in and to
// results on their way out.
type Mesh struct {
	triangles memory.Buffer[spatialmath.Triangle]
	tree      *tree.Tree
	scaling   *atomic.Pointer[meshScale]

	maximumRadius           float64
	maximumAngularExpansion float64

	disposed bool
}

// NewMesh builds a mesh that takes ownership of triangles. The triangles' bounds are indexed with a
// tree whose storage comes from pool; both are returned to the pool by Dispose. On error, nothing
// is retained and triangles still belongs to the caller.
func NewMesh(triangles memory.Buffer[spatialmath.Triangle], scale r3.Vector, pool memory.Pool) (*Mesh, error) {
	if spatialmath.HasZeroComponent(scale) {
		return nil, errors.Wrapf(ErrZeroScale, "got (%g, %g, %g)", scale.X, scale.Y, scale.Z)
	}

	bounds := memory.Take[spatialmath.AABB](pool, triangles.Len())
	for i, tri := range triangles.Memory {
		bounds.Memory[i] = tri.Bounds()
	}
	index, err := tree.New(pool, bounds.Memory)
	err = multierr.Combine(err, memory.Return(pool, &bounds))
	if err != nil {
		if index != nil {
			err = multierr.Append(err, index.Dispose(pool))
		}
		return nil, errors.Wrap(err, "cannot index mesh triangles")
	}

	m := &Mesh{
		triangles: triangles,
		tree:      index,
		scaling:   atomic.NewPointer(&meshScale{}),
	}
	m.storeScale(scale)
	m.maximumRadius, m.maximumAngularExpansion = computeAngularExpansion(triangles.Memory)
	return m, nil
}

// TypeID returns MeshTypeID.
func (m *Mesh) TypeID() int {
	return MeshTypeID
}

// Scale returns the current scale.
func (m *Mesh) Scale() r3.Vector {
	return m.scaling.Load().scale
}

// InverseScale returns the reciprocal of the current scale.
func (m *Mesh) InverseScale() r3.Vector {
	return m.scaling.Load().inverse
}

// SetScale changes the scale applied to later queries. Scale and reciprocal are swapped in as one
// value, so a concurrent query sees either the old pair or the new pair.
func (m *Mesh) SetScale(scale r3.Vector) error {
	if spatialmath.HasZeroComponent(scale) {
		return errors.Wrapf(ErrZeroScale, "got (%g, %g, %g)", scale.X, scale.Y, scale.Z)
	}
	m.storeScale(scale)
	return nil
}

func (m *Mesh) storeScale(scale r3.Vector) {
	m.scaling.Store(&meshScale{scale: scale, inverse: spatialmath.Reciprocal(scale)})
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return m.triangles.Len()
}

// Triangles returns the unscaled triangles. The slice is owned by the mesh and must not be modified.
func (m *Mesh) Triangles() []spatialmath.Triangle {
	return m.triangles.Memory
}

// GetLocalTriangle returns triangle i with the current scale applied.
func (m *Mesh) GetLocalTriangle(i int) spatialmath.Triangle {
	return m.triangles.Memory[i].Scale(m.Scale())
}

// Tree exposes the spatial index over the unscaled triangle bounds.
func (m *Mesh) Tree() *tree.Tree {
	return m.tree
}

// AngularExpansionData returns the precomputed maximum vertex radius and angular expansion bound.
// Both describe the unscaled triangles.
func (m *Mesh) AngularExpansionData() (maximumRadius, maximumAngularExpansion float64) {
	return m.maximumRadius, m.maximumAngularExpansion
}

// Dispose returns the triangle buffer and the tree storage to pool. A mesh must be disposed exactly
// once, with the pool it was built from.
func (m *Mesh) Dispose(pool memory.Pool) error {
	if m.disposed {
		return ErrDisposed
	}
	m.disposed = true
	return multierr.Combine(
		memory.Return(pool, &m.triangles),
		m.tree.Dispose(pool),
	)
}

// checkLive fails fast when a query reaches a disposed mesh.
func (m *Mesh) checkLive() {
	if m.disposed {
		panic(ErrDisposed)
	}
}

// computeAngularExpansion scans the unscaled vertices for their nearest and farthest distance from
// the origin. The spread between them is the expansion allowance served to the broad phase.
func computeAngularExpansion(triangles []spatialmath.Triangle) (maximumRadius, maximumAngularExpansion float64) {
	if len(triangles) == 0 {
		return 0, 0
	}
	minSquaredRadius := math.Inf(1)
	maxSquaredRadius := 0.
	for _, tri := range triangles {
		for _, v := range tri.Points() {
			sq := v.Norm2()
			minSquaredRadius = math.Min(minSquaredRadius, sq)
			maxSquaredRadius = math.Max(maxSquaredRadius, sq)
		}
	}
	maximumRadius = math.Sqrt(maxSquaredRadius)
	return maximumRadius, maximumRadius - math.Sqrt(minSquaredRadius)
}
