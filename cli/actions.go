package cli

import (
	"context"
	"math"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"go.viam.com/trimesh/collision"
	"go.viam.com/trimesh/shapes"
	"go.viam.com/trimesh/spatialmath"
	"go.viam.com/trimesh/utils"
)

// InfoAction prints mesh statistics.
func InfoAction(c *cli.Context) error {
	return withMeshSession(c, func(s *meshSession) error {
		radius, expansion := s.mesh.AngularExpansionData()
		min, max := s.mesh.ComputeBounds(spatialmath.NewZeroOrientation())
		s.printf("triangles: %d\n", s.mesh.TriangleCount())
		s.printf("tree nodes: %d\n", s.mesh.Tree().NodeCount())
		s.printf("scale: %s\n", formatVector(s.mesh.Scale()))
		s.printf("maximum radius: %g\n", radius)
		s.printf("maximum angular expansion: %g\n", expansion)
		s.printf("bounds: %s %s\n", formatVector(min), formatVector(max))
		return nil
	})
}

// BoundsAction prints the mesh bounds at the pose given by flags.
func BoundsAction(c *cli.Context) error {
	return withMeshSession(c, func(s *meshSession) error {
		pose, err := poseFromFlags(c)
		if err != nil {
			return err
		}
		min, max := s.mesh.ComputeBoundsAt(pose)
		if shapes.IsEmptyBounds(min, max) {
			s.printf("bounds: empty\n")
			return nil
		}
		s.printf("bounds: %s %s\n", formatVector(min), formatVector(max))
		return nil
	})
}

// RaycastAction casts one ray and prints the nearest hit.
func RaycastAction(c *cli.Context) error {
	return withMeshSession(c, func(s *meshSession) error {
		pose, err := poseFromFlags(c)
		if err != nil {
			return err
		}
		origin, err := vectorFlag(c, rayFlagOrigin)
		if err != nil {
			return err
		}
		direction, err := vectorFlag(c, rayFlagDirection)
		if err != nil {
			return err
		}
		t, normal, hit := s.mesh.RayTest(pose, origin, direction, c.Float64(rayFlagMaxT))
		if !hit {
			s.printf("miss\n")
			return nil
		}
		s.printf("hit t=%g point=%s normal=%s\n", t, formatVector(origin.Add(direction.Mul(t))), formatVector(normal))
		return nil
	})
}

// offsetHitHandler forwards hits of a sub range of rays with their index in the full batch.
type offsetHitHandler struct {
	offset int
	hits   *collision.RayHits
}

func (h offsetHitHandler) OnHit(rayIndex int, t float64, normal r3.Vector) {
	h.hits.OnHit(h.offset+rayIndex, t, normal)
}

// downwardRayGrid lays resolution x resolution rays over the x/y extent of [min, max], starting above
// max and reaching below min.
func downwardRayGrid(min, max r3.Vector, resolution int) collision.RaySlice {
	rays := make(collision.RaySlice, 0, resolution*resolution)
	height := max.Z - min.Z + 2
	for i := 0; i < resolution; i++ {
		for j := 0; j < resolution; j++ {
			x := min.X + (max.X-min.X)*(float64(i)+0.5)/float64(resolution)
			y := min.Y + (max.Y-min.Y)*(float64(j)+0.5)/float64(resolution)
			rays = append(rays, collision.Ray{
				Origin:    r3.Vector{X: x, Y: y, Z: max.Z + 1},
				Direction: r3.Vector{Z: -1},
				MaximumT:  height,
			})
		}
	}
	return rays
}

// RaygridAction casts a grid of downward rays across the mesh bounds in parallel and prints the hit
// count.
func RaygridAction(c *cli.Context) error {
	return withMeshSession(c, func(s *meshSession) error {
		pose, err := poseFromFlags(c)
		if err != nil {
			return err
		}
		resolution := c.Int(gridFlagResolution)
		if resolution <= 0 {
			return errors.Errorf("--%s must be positive, got %d", gridFlagResolution, resolution)
		}
		min, max := s.mesh.ComputeBoundsAt(pose)
		if shapes.IsEmptyBounds(min, max) {
			s.printf("rays: 0 hits: 0\n")
			return nil
		}

		rays := downwardRayGrid(min, max, resolution)
		hits := collision.NewRayHits()
		err = utils.GroupWorkParallel(c.Context, len(rays), c.Int(gridFlagWorkers),
			func(ctx context.Context, groupNum, from, to int) error {
				s.logger.Debugw("casting ray group", "group", groupNum, "from", from, "to", to)
				s.mesh.RayTestBatch(pose, rays[from:to], offsetHitHandler{offset: from, hits: hits})
				return nil
			})
		if err != nil {
			return err
		}

		nearest := math.Inf(1)
		for i := range rays {
			if hit, ok := hits.Hit(i); ok {
				nearest = math.Min(nearest, hit.T)
			}
		}
		s.printf("rays: %d hits: %d\n", len(rays), hits.Count())
		if hits.Count() > 0 {
			s.printf("highest hit: %g\n", rays[0].Origin.Z-nearest)
		}
		return nil
	})
}

func printOverlaps(s *meshSession, overlaps *collision.Overlaps) error {
	if overlaps.Err() == nil {
		s.printf("overlaps: %d\n", overlaps.Count())
		for _, index := range overlaps.Indices() {
			tri := s.mesh.GetLocalTriangle(index)
			s.printf("%d: %s %s %s\n", index, formatVector(tri.A), formatVector(tri.B), formatVector(tri.C))
		}
	}
	// Dispose reports any error the collector hit while growing.
	return overlaps.Dispose(s.pool)
}

// OverlapsAction lists the triangles whose bounds overlap a local box.
func OverlapsAction(c *cli.Context) error {
	return withMeshSession(c, func(s *meshSession) error {
		min, err := vectorFlag(c, boxFlagMin)
		if err != nil {
			return err
		}
		max, err := vectorFlag(c, boxFlagMax)
		if err != nil {
			return err
		}
		overlaps := &collision.Overlaps{}
		s.mesh.FindLocalOverlapsBox(min, max, s.pool, overlaps)
		return printOverlaps(s, overlaps)
	})
}

// SweepAction lists the triangles a moving local box may touch.
func SweepAction(c *cli.Context) error {
	return withMeshSession(c, func(s *meshSession) error {
		min, err := vectorFlag(c, boxFlagMin)
		if err != nil {
			return err
		}
		max, err := vectorFlag(c, boxFlagMax)
		if err != nil {
			return err
		}
		sweep, err := vectorFlag(c, boxFlagSweep)
		if err != nil {
			return err
		}
		overlaps := &collision.Overlaps{}
		s.mesh.FindLocalOverlapsSweep(min, max, sweep, c.Float64(rayFlagMaxT), s.pool, overlaps)
		return printOverlaps(s, overlaps)
	})
}
