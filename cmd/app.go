// Package cmd implements the svo command line actions.
package cmd

import (
	"os"
	"runtime"

	"github.com/urfave/cli"
)

// NewApp returns the svo command line application.
func NewApp() *cli.App {
	app := cli.NewApp()
	app.Name = "svo"
	app.Usage = "build sparse voxel octrees from triangle meshes"
	app.Version = "0.1.0"
	app.ErrWriter = os.Stderr
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
		cli.StringFlag{
			Name:   "log-level",
			Usage:  "log level (debug|info|notice|warning|error)",
			EnvVar: "SVO_LOG_LEVEL",
		},
	}
	depthFlag := cli.IntFlag{
		Name:   "depth, d",
		Value:  3,
		Usage:  "octree subdivision depth",
		EnvVar: "SVO_DEPTH",
	}
	concurrencyFlag := cli.IntFlag{
		Name:   "concurrency, c",
		Value:  runtime.NumCPU(),
		Usage:  "maximum number of goroutines building octants",
		EnvVar: "SVO_CONCURRENCY",
	}
	app.Commands = []cli.Command{
		{
			Name:  "build",
			Usage: "voxelize a mesh",
			Description: `
Read a binary STL triangle soup, build a sparse voxel octree over the mesh
bounding box and optionally write its leaves as voxel cubes to an STL file
and a PNG preview.`,
			ArgsUsage: "mesh.stl",
			Flags: []cli.Flag{
				depthFlag,
				concurrencyFlag,
				cli.StringFlag{
					Name:  "out, o",
					Usage: "STL filename for the voxel leaves",
				},
				cli.StringFlag{
					Name:  "png",
					Usage: "PNG filename for a preview of the voxel leaves",
				},
				cli.BoolFlag{
					Name:  "json",
					Usage: "print a JSON build summary",
				},
			},
			Action: Build,
		},
		{
			Name:      "stats",
			Usage:     "print leaves per depth of a mesh's octree",
			ArgsUsage: "mesh.stl",
			Flags: []cli.Flag{
				depthFlag,
				concurrencyFlag,
				cli.StringFlag{
					Name:  "plot",
					Usage: "image filename for a leaves per depth bar chart",
				},
			},
			Action: Stats,
		},
		{
			Name:  "serve",
			Usage: "serve octrees of a mesh over HTTP and WebSocket",
			Description: `
Clients request octrees of any depth up to --max-depth. Every request builds
a fresh octree. WebSocket clients at /ws send {"depth":N} messages and only
receive the build of their latest request.`,
			ArgsUsage: "mesh.stl",
			Flags: []cli.Flag{
				concurrencyFlag,
				cli.StringFlag{
					Name:   "addr",
					Value:  ":8080",
					Usage:  "listening address",
					EnvVar: "SVO_ADDR",
				},
				cli.IntFlag{
					Name:   "max-depth",
					Value:  6,
					Usage:  "deepest octree clients may request",
					EnvVar: "SVO_MAX_DEPTH",
				},
			},
			Action: Serve,
		},
	}
	return app
}
