package meshio

import (
	"path/filepath"

	"github.com/pkg/errors"
	"go.uber.org/multierr"

	"go.viam.com/trimesh/logging"
	"go.viam.com/trimesh/memory"
	"go.viam.com/trimesh/shapes"
	"go.viam.com/trimesh/spatialmath"
)

// BuildMesh loads the triangles a config describes and constructs a mesh from pool. A relative file
// is resolved against configDir. A nil logger logs to the global logger.
func BuildMesh(cfg *MeshConfig, configDir string, pool memory.Pool, logger logging.Logger) (*shapes.Mesh, error) {
	if logger == nil {
		logger = logging.Global()
	}
	var tris []spatialmath.Triangle
	if cfg.File != "" {
		path := cfg.File
		if !filepath.IsAbs(path) {
			path = filepath.Join(configDir, path)
		}
		var err error
		if tris, err = LoadGLTF(path); err != nil {
			return nil, err
		}
		logger.Debugw("loaded glTF triangles", "file", path, "triangles", len(tris))
	} else {
		tris = cfg.InlineTriangles()
	}

	buf := memory.TakeFrom(pool, tris)
	mesh, err := shapes.NewMesh(buf, cfg.ScaleVector(), pool)
	if err != nil {
		return nil, errors.Wrap(multierr.Combine(err, memory.Return(pool, &buf)), "cannot build mesh")
	}
	radius, expansion := mesh.AngularExpansionData()
	logger.Infow("built mesh",
		"triangles", mesh.TriangleCount(),
		"nodes", mesh.Tree().NodeCount(),
		"maximumRadius", radius,
		"maximumAngularExpansion", expansion,
	)
	return mesh, nil
}
