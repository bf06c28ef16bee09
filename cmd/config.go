package cmd

import (
	"errors"
	"fmt"

	"github.com/soypat/svo"
	"github.com/soypat/svo/render"
	"github.com/urfave/cli"
	"gonum.org/v1/gonum/spatial/r3"
)

type config struct {
	MeshPath    string
	Depth       int
	MaxDepth    int
	Concurrency int
	Addr        string
	Out         string
	PNG         string
	Plot        string
	JSON        bool
}

func loadConfig(ctx *cli.Context) (config, error) {
	if err := setupLogging(ctx); err != nil {
		return config{}, err
	}
	if ctx.NArg() != 1 {
		return config{}, errors.New("missing mesh file argument")
	}
	conf := config{
		MeshPath:    ctx.Args().First(),
		Depth:       ctx.Int("depth"),
		MaxDepth:    ctx.Int("max-depth"),
		Concurrency: ctx.Int("concurrency"),
		Addr:        ctx.String("addr"),
		Out:         ctx.String("out"),
		PNG:         ctx.String("png"),
		Plot:        ctx.String("plot"),
		JSON:        ctx.Bool("json"),
	}
	return conf, validateConfig(conf)
}

func validateConfig(conf config) error {
	if conf.Depth < 0 {
		return fmt.Errorf("depth must not be negative, got %d", conf.Depth)
	}

	if conf.MaxDepth < 0 {
		return fmt.Errorf("max depth must not be negative, got %d", conf.MaxDepth)
	}

	if conf.Concurrency < 0 {
		return fmt.Errorf("concurrency must not be negative, got %d", conf.Concurrency)
	}

	if conf.Out != "" && conf.Out == conf.MeshPath {
		return errors.New("refusing to overwrite input mesh with voxel output")
	}

	return nil
}

// loadMesh reads the triangles of an STL file and their bounding box.
func loadMesh(path string) ([]svo.Triangle, r3.Box, error) {
	triangles, err := render.OpenSTL(path)
	if errors.Is(err, render.ErrNormalMismatch) {
		logger.Warningf("%s: %v", path, err)
	} else if err != nil {
		return nil, r3.Box{}, fmt.Errorf("reading mesh %s: %w", path, err)
	}
	box, err := svo.Bounds(triangles)
	if err != nil {
		return nil, r3.Box{}, fmt.Errorf("bounding mesh %s: %w", path, err)
	}
	logger.Infof("loaded %d triangles from %s, bounds %v", len(triangles), path, box)
	return triangles, box, nil
}
