package render

import (
	"fmt"
	"image/color"
	"io"

	"github.com/aclements/go-gg/gg"
	"github.com/aclements/go-gg/table"

	"moviecharts/internal/movie"
)

var scatterDefaults = Options{
	Width:  500,
	Height: 500,
	Title:  "Total Budget vs Revenue USD",
	Margin: Margin{Top: 80, Right: 40, Bottom: 40, Left: 80},
}

// Points are dodgerblue at 70% opacity.
var scatterPoint = color.NRGBA{R: 0x1e, G: 0x90, B: 0xff, A: 0xb3}

// Scatter plots budget against revenue, one point per film. The x domain is
// padded 5% either side of the budget extent. The y domain runs from 10% of
// the smallest revenue to 110% of the largest.
func Scatter(w io.Writer, recs []movie.Record, opts Options) error {
	o := opts.withDefaults(scatterDefaults)
	if _, _, err := o.inner(); err != nil {
		return err
	}
	if len(recs) == 0 {
		return fmt.Errorf("render: scatter plot has no data")
	}

	budgets := make([]float64, len(recs))
	revenues := make([]float64, len(recs))
	fills := make([]color.NRGBA, len(recs))
	for i, r := range recs {
		budgets[i], revenues[i], fills[i] = r.Budget, r.Revenue, scatterPoint
	}

	tab := table.NewBuilder(nil).
		Add("budget", budgets).
		Add("revenue", revenues).
		Add("fill", fills).
		Done()
	p := gg.NewPlot(tab)

	// Non-finite values cannot bound a domain; the library drops those points.
	xs := gg.NewLinearScaler()
	if xMin, xMax, ok := finiteBounds(budgets); ok {
		xs.SetMin(xMin * 0.95).SetMax(xMax * 1.05)
	}
	xs.SetFormatter(FormatTick)
	p.SetScale("x", xs)

	ys := gg.NewLinearScaler()
	if yMin, yMax, ok := finiteBounds(revenues); ok {
		ys.SetMin(yMin * 0.1).SetMax(yMax * 1.1)
	}
	ys.SetFormatter(FormatTick)
	p.SetScale("y", ys)

	p.Add(gg.LayerPoints{X: "budget", Y: "revenue", Color: "fill"})
	p.Add(gg.Title(o.Title), gg.AxisLabel("x", "Budget"), gg.AxisLabel("y", "Revenue"))

	return p.WriteSVG(w, o.Width, o.Height)
}
