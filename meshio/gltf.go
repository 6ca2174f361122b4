package meshio

import (
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"go.viam.com/trimesh/spatialmath"
)

// LoadGLTF reads every triangle of a .gltf or .glb file. Buffers referenced by relative URI are
// resolved against the file's directory.
func LoadGLTF(path string) ([]spatialmath.Triangle, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot open glTF file %q", path)
	}
	tris, err := LoadGLTFDocument(doc)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot read triangles from %q", path)
	}
	return tris, nil
}

// LoadGLTFDocument collects the triangles of every triangle list primitive of every mesh in doc.
// Positions are taken as stored; node transforms are not applied. Other primitive modes are skipped.
func LoadGLTFDocument(doc *gltf.Document) ([]spatialmath.Triangle, error) {
	var tris []spatialmath.Triangle
	for meshIndex, mesh := range doc.Meshes {
		for primIndex, prim := range mesh.Primitives {
			if prim.Mode != gltf.PrimitiveTriangles {
				continue
			}
			posAccessor, ok := prim.Attributes[gltf.POSITION]
			if !ok {
				return nil, errors.Errorf("mesh %d primitive %d has no positions", meshIndex, primIndex)
			}
			positions, err := modeler.ReadPosition(doc, doc.Accessors[posAccessor], nil)
			if err != nil {
				return nil, errors.Wrapf(err, "mesh %d primitive %d", meshIndex, primIndex)
			}

			var indices []uint32
			if prim.Indices != nil {
				indices, err = modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
				if err != nil {
					return nil, errors.Wrapf(err, "mesh %d primitive %d", meshIndex, primIndex)
				}
			} else {
				indices = make([]uint32, len(positions))
				for i := range indices {
					indices[i] = uint32(i)
				}
			}
			if len(indices)%3 != 0 {
				return nil, errors.Errorf("mesh %d primitive %d has %d indices, not a multiple of 3", meshIndex, primIndex, len(indices))
			}

			vertex := func(i uint32) (r3.Vector, error) {
				if int(i) >= len(positions) {
					return r3.Vector{}, errors.Errorf("mesh %d primitive %d index %d out of range", meshIndex, primIndex, i)
				}
				p := positions[i]
				return r3.Vector{X: float64(p[0]), Y: float64(p[1]), Z: float64(p[2])}, nil
			}
			for i := 0; i < len(indices); i += 3 {
				var pts [3]r3.Vector
				for j := range pts {
					if pts[j], err = vertex(indices[i+j]); err != nil {
						return nil, err
					}
				}
				tris = append(tris, spatialmath.NewTriangle(pts[0], pts[1], pts[2]))
			}
		}
	}
	return tris, nil
}
