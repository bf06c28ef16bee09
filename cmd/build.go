package cmd

import (
	"fmt"
	"time"

	"github.com/segmentio/encoding/json"
	"github.com/soypat/svo"
	"github.com/soypat/svo/render"
	"github.com/urfave/cli"
	"gonum.org/v1/gonum/spatial/r3"
)

type buildSummary struct {
	Mesh      string        `json:"mesh"`
	Triangles int           `json:"triangles"`
	Bounds    r3.Box        `json:"bounds"`
	Depth     int           `json:"depth"`
	Duration  time.Duration `json:"duration_ns"`
	Stats     svo.TreeStats `json:"stats"`
}

// Build voxelizes a mesh and writes the requested outputs.
func Build(ctx *cli.Context) error {
	conf, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	root, summary, err := buildOctree(conf)
	if err != nil {
		return err
	}

	if conf.Out != "" {
		if err := render.CreateSTL(conf.Out, render.NewVoxelRenderer(root)); err != nil {
			return fmt.Errorf("writing voxels: %w", err)
		}
		logger.Noticef("wrote %d voxels to %s", summary.Stats.Leaves, conf.Out)
	}

	if conf.PNG != "" {
		if err := render.WritePNG(conf.PNG, render.LeafTriangles(root), render.DefaultView); err != nil {
			return fmt.Errorf("writing preview: %w", err)
		}
		logger.Noticef("wrote preview to %s", conf.PNG)
	}

	if conf.JSON {
		b, err := json.MarshalIndent(summary, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(ctx.App.Writer, string(b))
	}
	return nil
}

func buildOctree(conf config) (svo.Node, buildSummary, error) {
	triangles, box, err := loadMesh(conf.MeshPath)
	if err != nil {
		return nil, buildSummary{}, err
	}

	start := time.Now()
	b := svo.Builder{Concurrency: conf.Concurrency}
	root, err := b.Build(box, triangles, conf.Depth)
	if err != nil {
		return nil, buildSummary{}, err
	}
	summary := buildSummary{
		Mesh:      conf.MeshPath,
		Triangles: len(triangles),
		Bounds:    box,
		Depth:     conf.Depth,
		Duration:  time.Since(start),
		Stats:     svo.Stats(root),
	}
	logger.Noticef("built depth %d octree in %s: %d nodes, %d leaves",
		conf.Depth, summary.Duration, summary.Stats.Nodes, summary.Stats.Leaves)
	return root, summary, nil
}
