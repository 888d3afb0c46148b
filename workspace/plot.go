package workspace

import (
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// Plot draws the intervals found on each ray as horizontal bars, one row per ray in grid order.
func (results SweepResults) Plot(title string) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "free variable"
	p.Y.Label.Text = "ray"
	p.Y.Min = -1
	p.Y.Max = float64(len(results))
	if len(results) > 0 {
		r := results[0].Ray.FreeVariableRange
		p.X.Min, p.X.Max = r.Lo, r.Hi
	}

	for i, res := range results {
		for _, iv := range res.Intervals {
			bar, err := plotter.NewLine(plotter.XYs{{X: iv.Lo, Y: float64(i)}, {X: iv.Hi, Y: float64(i)}})
			if err != nil {
				return nil, err
			}
			bar.Width = vg.Points(4)
			p.Add(bar)
		}
	}
	return p, nil
}

// SavePlot renders Plot to filename, the format picked by its extension.
func (results SweepResults) SavePlot(title, filename string) error {
	p, err := results.Plot(title)
	if err != nil {
		return err
	}
	return p.Save(6*vg.Inch, 4*vg.Inch, filename)
}
