package cmd

import (
	"fmt"

	"github.com/olekukonko/tablewriter"
	"github.com/soypat/svo/render"
	"github.com/urfave/cli"
)

// Stats prints the number of leaves at every depth of a mesh's octree.
func Stats(ctx *cli.Context) error {
	conf, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	_, summary, err := buildOctree(conf)
	if err != nil {
		return err
	}
	stats := summary.Stats

	table := tablewriter.NewWriter(ctx.App.Writer)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Depth", "Leaves", "% of leaves"})
	for depth, n := range stats.LeavesAtDepth {
		if n == 0 {
			continue
		}
		table.Append([]string{
			fmt.Sprintf("%d", depth),
			fmt.Sprintf("%d", n),
			fmt.Sprintf("%02.1f %%", 100*float64(n)/float64(stats.Leaves)),
		})
	}
	table.SetFooter([]string{"TOTAL", fmt.Sprintf("%d", stats.Leaves), fmt.Sprintf("%d nodes", stats.Nodes)})
	table.Render()

	if conf.Plot != "" {
		if err := render.PlotDepthHistogram(conf.Plot, stats); err != nil {
			return fmt.Errorf("plotting leaves per depth: %w", err)
		}
		logger.Noticef("wrote leaves per depth chart to %s", conf.Plot)
	}
	return nil
}
