package render

import (
	"errors"
	"strconv"

	"github.com/soypat/svo"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// PlotDepthHistogram saves a bar chart of leaf counts per depth to path.
// The image format is picked from the extension of path.
func PlotDepthHistogram(path string, stats svo.TreeStats) error {
	if len(stats.LeavesAtDepth) == 0 {
		return errors.New("no leaves to plot")
	}
	values := make(plotter.Values, len(stats.LeavesAtDepth))
	names := make([]string, len(stats.LeavesAtDepth))
	for depth, n := range stats.LeavesAtDepth {
		values[depth] = float64(n)
		names[depth] = strconv.Itoa(depth)
	}
	p := plot.New()
	p.Title.Text = "Leaves per depth"
	p.X.Label.Text = "Depth"
	p.Y.Label.Text = "Leaves"
	bars, err := plotter.NewBarChart(values, vg.Points(20))
	if err != nil {
		return err
	}
	p.Add(bars)
	p.NominalX(names...)
	return p.Save(4*vg.Inch, 3*vg.Inch, path)
}
