// Package cli contains the meshtool command line: loading a mesh config and running bounds, ray and
// overlap queries against the mesh it describes.
package cli

import (
	"io"

	"github.com/urfave/cli/v2"
)

const (
	// Flags.
	generalFlagConfig = "config"
	generalFlagDebug  = "debug"

	poseFlagPosition    = "position"
	poseFlagOrientation = "orientation"

	rayFlagOrigin    = "origin"
	rayFlagDirection = "direction"
	rayFlagMaxT      = "max-t"

	gridFlagResolution = "resolution"
	gridFlagWorkers    = "workers"

	boxFlagMin   = "min"
	boxFlagMax   = "max"
	boxFlagSweep = "sweep"
)

var poseFlags = []cli.Flag{
	&cli.Float64SliceFlag{
		Name:  poseFlagPosition,
		Usage: "mesh position as `X,Y,Z`",
	},
	&cli.Float64SliceFlag{
		Name:  poseFlagOrientation,
		Usage: "mesh orientation as axis and angle in degrees, `OX,OY,OZ,THETA`",
	},
}

// NewApp returns a new app with the meshtool commands, Writer set to out, and ErrWriter set to
// errOut.
func NewApp(out, errOut io.Writer) *cli.App {
	return &cli.App{
		Name:            "meshtool",
		Usage:           "inspect and query triangle meshes",
		HideHelpCommand: true,
		Writer:          out,
		ErrWriter:       errOut,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     generalFlagConfig,
				Aliases:  []string{"c"},
				Usage:    "load the mesh config from `FILE` (.json, .yaml or .toml)",
				Required: true,
			},
			&cli.BoolFlag{
				Name:  generalFlagDebug,
				Usage: "enable debug logging",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "info",
				Usage:  "print triangle, tree and radius statistics",
				Action: InfoAction,
			},
			{
				Name:   "bounds",
				Usage:  "print the bounding box of the mesh at a pose",
				Flags:  poseFlags,
				Action: BoundsAction,
			},
			{
				Name:  "raycast",
				Usage: "cast a single ray against the mesh",
				Flags: append([]cli.Flag{
					&cli.Float64SliceFlag{
						Name:     rayFlagOrigin,
						Usage:    "ray origin as `X,Y,Z`",
						Required: true,
					},
					&cli.Float64SliceFlag{
						Name:     rayFlagDirection,
						Usage:    "ray direction as `X,Y,Z`",
						Required: true,
					},
					&cli.Float64Flag{
						Name:  rayFlagMaxT,
						Usage: "largest ray parameter to consider",
						Value: 1e6,
					},
				}, poseFlags...),
				Action: RaycastAction,
			},
			{
				Name:  "raygrid",
				Usage: "cast a grid of downward rays over the mesh bounds and count hits",
				Flags: append([]cli.Flag{
					&cli.IntFlag{
						Name:  gridFlagResolution,
						Usage: "rays per side of the grid",
						Value: 64,
					},
					&cli.IntFlag{
						Name:  gridFlagWorkers,
						Usage: "number of goroutines casting rays, 0 for one per CPU",
					},
				}, poseFlags...),
				Action: RaygridAction,
			},
			{
				Name:  "overlaps",
				Usage: "list the triangles whose bounds overlap a box in mesh local space",
				Flags: []cli.Flag{
					&cli.Float64SliceFlag{
						Name:     boxFlagMin,
						Usage:    "box minimum as `X,Y,Z`",
						Required: true,
					},
					&cli.Float64SliceFlag{
						Name:     boxFlagMax,
						Usage:    "box maximum as `X,Y,Z`",
						Required: true,
					},
				},
				Action: OverlapsAction,
			},
			{
				Name:  "sweep",
				Usage: "list the triangles a box moving through mesh local space may touch",
				Flags: []cli.Flag{
					&cli.Float64SliceFlag{
						Name:     boxFlagMin,
						Usage:    "box minimum as `X,Y,Z`",
						Required: true,
					},
					&cli.Float64SliceFlag{
						Name:     boxFlagMax,
						Usage:    "box maximum as `X,Y,Z`",
						Required: true,
					},
					&cli.Float64SliceFlag{
						Name:     boxFlagSweep,
						Usage:    "box displacement per unit t as `X,Y,Z`",
						Required: true,
					},
					&cli.Float64Flag{
						Name:  rayFlagMaxT,
						Usage: "largest sweep parameter to consider",
						Value: 1,
					},
				},
				Action: SweepAction,
			},
		},
	}
}
