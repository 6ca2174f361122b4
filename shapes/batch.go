package shapes

import (
	"sync"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"gonum.org/v1/gonum/num/quat"

	"go.viam.com/trimesh/memory"
	"go.viam.com/trimesh/utils"
)

// Shape is the part of a collidable that the broad phase and batch containers depend on.
type Shape interface {
	TypeID() int
	ComputeBounds(orientation quat.Number) (min, max r3.Vector)
	AngularExpansionData() (maximumRadius, maximumAngularExpansion float64)
	Dispose(pool memory.Pool) error
}

// ShapeBatch stores shapes of a single type.
type ShapeBatch interface {
	TypeID() int
	Add(shape Shape, pool memory.Pool) (int, error)
	Shape(index int) Shape
	Count() int
	Dispose(pool memory.Pool) error
}

// BatchFactory creates an empty batch with room for initialCapacity shapes.
type BatchFactory func(pool memory.Pool, initialCapacity int) ShapeBatch

var _ Shape = (*Mesh)(nil)

// MeshBatch is the ShapeBatch for meshes.
type MeshBatch struct {
	meshes memory.QuickList[*Mesh]
}

// NewMeshBatch returns an empty mesh batch.
func NewMeshBatch(pool memory.Pool, initialCapacity int) *MeshBatch {
	return &MeshBatch{meshes: memory.NewQuickList[*Mesh](initialCapacity, pool)}
}

// CreateShapeBatch returns an empty batch able to hold meshes.
func (m *Mesh) CreateShapeBatch(pool memory.Pool, initialCapacity int) ShapeBatch {
	return NewMeshBatch(pool, initialCapacity)
}

// TypeID returns MeshTypeID.
func (b *MeshBatch) TypeID() int {
	return MeshTypeID
}

// Add stores shape, which must be a *Mesh, and returns its index in the batch.
func (b *MeshBatch) Add(shape Shape, pool memory.Pool) (int, error) {
	mesh, ok := shape.(*Mesh)
	if !ok {
		return 0, utils.NewUnexpectedTypeError(mesh, shape)
	}
	if err := b.meshes.Add(mesh, pool); err != nil {
		return 0, err
	}
	return b.meshes.Count - 1, nil
}

// Shape returns the shape at index.
func (b *MeshBatch) Shape(index int) Shape {
	return b.meshes.Items()[index]
}

// Get returns the mesh at index.
func (b *MeshBatch) Get(index int) *Mesh {
	return b.meshes.Items()[index]
}

// Count returns the number of meshes in the batch.
func (b *MeshBatch) Count() int {
	return b.meshes.Count
}

// Dispose disposes every mesh in the batch and returns the batch storage.
func (b *MeshBatch) Dispose(pool memory.Pool) error {
	var errs error
	for i, mesh := range b.meshes.Items() {
		if err := mesh.Dispose(pool); err != nil {
			errs = multierr.Append(errs, errors.Wrapf(err, "cannot dispose mesh %d", i))
		}
	}
	return multierr.Append(errs, b.meshes.Dispose(pool))
}

// Registry maps shape type ids to the factories creating their batches.
type Registry struct {
	mu        sync.RWMutex
	factories map[int]BatchFactory
}

// NewRegistry returns a registry with meshes already registered.
func NewRegistry() *Registry {
	return &Registry{factories: map[int]BatchFactory{
		MeshTypeID: func(pool memory.Pool, initialCapacity int) ShapeBatch {
			return NewMeshBatch(pool, initialCapacity)
		},
	}}
}

// RegisterBatchFactory adds the factory for typeID. Each type id may be registered once.
func (r *Registry) RegisterBatchFactory(typeID int, factory BatchFactory) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.factories[typeID]; ok {
		return errors.Errorf("trying to register two batch factories for shape type %d", typeID)
	}
	r.factories[typeID] = factory
	return nil
}

// CreateBatch creates an empty batch for typeID.
func (r *Registry) CreateBatch(typeID int, pool memory.Pool, initialCapacity int) (ShapeBatch, error) {
	r.mu.RLock()
	factory, ok := r.factories[typeID]
	r.mu.RUnlock()
	if !ok {
		return nil, errors.Errorf("no batch factory registered for shape type %d", typeID)
	}
	return factory(pool, initialCapacity), nil
}
