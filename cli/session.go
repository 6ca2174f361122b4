package cli

import (
	"fmt"
	"math"
	"path/filepath"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"go.uber.org/multierr"

	"go.viam.com/trimesh/logging"
	"go.viam.com/trimesh/memory"
	"go.viam.com/trimesh/meshio"
	"go.viam.com/trimesh/shapes"
	"go.viam.com/trimesh/spatialmath"
)

// meshSession is the mesh named by --config plus the pool it was built from.
type meshSession struct {
	c      *cli.Context
	logger logging.Logger
	pool   *memory.BufferPool
	mesh   *shapes.Mesh
}

func newMeshSession(c *cli.Context) (*meshSession, error) {
	var logger logging.Logger
	if c.Bool(generalFlagDebug) {
		logger = logging.NewDebugLogger("meshtool")
	} else {
		logger = logging.NewBlankLogger("meshtool")
	}

	path := c.String(generalFlagConfig)
	cfg, err := meshio.LoadConfig(path)
	if err != nil {
		return nil, err
	}
	pool := memory.NewBufferPool()
	mesh, err := meshio.BuildMesh(cfg, filepath.Dir(path), pool, logger)
	if err != nil {
		return nil, err
	}
	return &meshSession{c: c, logger: logger, pool: pool, mesh: mesh}, nil
}

// close disposes the mesh and reports any pool buffer left outstanding.
func (s *meshSession) close() error {
	err := s.mesh.Dispose(s.pool)
	if outstanding := s.pool.Outstanding(); outstanding != 0 {
		err = multierr.Append(err, errors.Errorf("%d pool buffers were not returned", outstanding))
	}
	return err
}

func (s *meshSession) printf(format string, a ...interface{}) {
	fmt.Fprintf(s.c.App.Writer, format, a...)
}

// withMeshSession runs action against a fresh session and disposes it afterwards.
func withMeshSession(c *cli.Context, action func(s *meshSession) error) (err error) {
	s, err := newMeshSession(c)
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Combine(err, s.close())
	}()
	return action(s)
}

func vectorFlag(c *cli.Context, name string) (r3.Vector, error) {
	values := c.Float64Slice(name)
	if len(values) != 3 {
		return r3.Vector{}, errors.Errorf("--%s needs 3 comma separated values, got %d", name, len(values))
	}
	return r3.Vector{X: values[0], Y: values[1], Z: values[2]}, nil
}

// poseFromFlags reads --position and --orientation, defaulting to the identity pose.
func poseFromFlags(c *cli.Context) (spatialmath.Pose, error) {
	var position r3.Vector
	if c.IsSet(poseFlagPosition) {
		var err error
		if position, err = vectorFlag(c, poseFlagPosition); err != nil {
			return spatialmath.Pose{}, err
		}
	}
	orientation := spatialmath.NewZeroOrientation()
	if c.IsSet(poseFlagOrientation) {
		values := c.Float64Slice(poseFlagOrientation)
		if len(values) != 4 {
			return spatialmath.Pose{}, errors.Errorf(
				"--%s needs 4 comma separated values, got %d", poseFlagOrientation, len(values))
		}
		axis := r3.Vector{X: values[0], Y: values[1], Z: values[2]}
		orientation = spatialmath.QuatFromAxisAngle(axis, values[3]*math.Pi/180)
	}
	return spatialmath.NewPose(position, orientation), nil
}

func formatVector(v r3.Vector) string {
	return fmt.Sprintf("(%g, %g, %g)", v.X, v.Y, v.Z)
}
