package report

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/RMahshie/roommodes/pkg/models"
)

// Plot draws speaker-to-node distance against modal frequency, one series
// per axis, and saves it to path. The image format follows the file
// extension (png, svg, pdf, ...). Modes without an interior node are
// left out of the chart.
func Plot(r *models.AnalysisReport, path string) error {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Node proximity, %.1f x %.1f x %.1f m room", r.Room.Length, r.Room.Width, r.Room.Height)
	p.X.Label.Text = "Frequency (Hz)"
	p.Y.Label.Text = "Distance to nearest node (m)"
	p.X.Min = 0
	p.X.Max = r.Parameters.CutoffHz
	p.Y.Min = 0
	p.Add(plotter.NewGrid())

	for i, axis := range models.Axes {
		pts := Points(r.Axes[axis])
		if len(pts) == 0 {
			continue
		}

		line, points, err := plotter.NewLinePoints(pts)
		if err != nil {
			return err
		}
		line.Color = plotutil.Color(i)
		line.Width = vg.Points(1)
		points.Color = plotutil.Color(i)
		points.Shape = plotutil.Shape(i)

		p.Add(line, points)
		p.Legend.Add(fmt.Sprintf("%s axis", axis), line, points)
	}

	p.Legend.Top = true
	p.Legend.Left = false

	if err := p.Save(8*vg.Inch, 5*vg.Inch, path); err != nil {
		return fmt.Errorf("failed to save plot %s: %w", path, err)
	}
	return nil
}

// Points returns the (frequency, distance) pairs of an axis that have a node
func Points(a models.AxisReport) plotter.XYs {
	pts := make(plotter.XYs, 0, len(a.Entries))
	for _, e := range a.Entries {
		if !e.HasNode() {
			continue
		}
		pts = append(pts, plotter.XY{X: e.FrequencyHz, Y: *e.Distance})
	}
	return pts
}
