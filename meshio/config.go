// Package meshio loads triangle meshes and mesh configs from disk.
package meshio

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/golang/geo/r3"
	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"go.viam.com/trimesh/shapes"
	"go.viam.com/trimesh/spatialmath"
	"go.viam.com/trimesh/utils"
)

// MeshConfig describes a mesh either by a glTF file or by inline triangles, plus an optional scale.
type MeshConfig struct {
	File      string          `json:"file,omitempty" yaml:"file,omitempty" toml:"file,omitempty"`
	Scale     *[3]float64     `json:"scale,omitempty" yaml:"scale,omitempty" toml:"scale,omitempty"`
	Triangles [][3][3]float64 `json:"triangles,omitempty" yaml:"triangles,omitempty" toml:"triangles,omitempty"`
}

// Validate ensures all parts of the config are valid.
func (cfg *MeshConfig) Validate(path string) error {
	if cfg.File == "" && len(cfg.Triangles) == 0 {
		return utils.NewConfigValidationFieldRequiredError(path, "file")
	}
	if cfg.File != "" && len(cfg.Triangles) != 0 {
		return utils.NewConfigValidationError(path, errors.New("only one of file and triangles may be set"))
	}
	if cfg.Scale != nil {
		if scale := cfg.ScaleVector(); spatialmath.HasZeroComponent(scale) {
			return utils.NewConfigValidationError(path, errors.Wrapf(shapes.ErrZeroScale, "scale %v", *cfg.Scale))
		}
	}
	return nil
}

// ScaleVector returns the configured scale, or a unit scale when none is set.
func (cfg *MeshConfig) ScaleVector() r3.Vector {
	if cfg.Scale == nil {
		return r3.Vector{X: 1, Y: 1, Z: 1}
	}
	return r3.Vector{X: cfg.Scale[0], Y: cfg.Scale[1], Z: cfg.Scale[2]}
}

// InlineTriangles converts the inline triangles of the config.
func (cfg *MeshConfig) InlineTriangles() []spatialmath.Triangle {
	tris := make([]spatialmath.Triangle, len(cfg.Triangles))
	for i, tri := range cfg.Triangles {
		tris[i] = spatialmath.NewTriangle(
			r3.Vector{X: tri[0][0], Y: tri[0][1], Z: tri[0][2]},
			r3.Vector{X: tri[1][0], Y: tri[1][1], Z: tri[1][2]},
			r3.Vector{X: tri[2][0], Y: tri[2][1], Z: tri[2][2]},
		)
	}
	return tris
}

// LoadConfig reads and validates a mesh config. The format is chosen by extension: .json, .yaml,
// .yml or .toml.
func LoadConfig(path string) (*MeshConfig, error) {
	//nolint:gosec
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "cannot read mesh config %q", path)
	}

	var cfg MeshConfig
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		err = json.Unmarshal(data, &cfg)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &cfg)
	case ".toml":
		err = toml.Unmarshal(data, &cfg)
	default:
		return nil, errors.Errorf("unsupported mesh config extension %q", ext)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "cannot parse mesh config %q", path)
	}
	if err := cfg.Validate(path); err != nil {
		return nil, err
	}
	return &cfg, nil
}
