package render

import (
	"fmt"
	"image/color"
	"io"
	"strconv"

	"github.com/aclements/go-gg/gg"
	"github.com/aclements/go-gg/table"

	"moviecharts/internal/aggregate"
)

var lineDefaults = Options{
	Width:  500,
	Height: 500,
	Title:  "Budget and Revenue over time in USD",
	Margin: Margin{Top: 80, Right: 60, Bottom: 40, Left: 80},
}

// Line draws one colored path per series against release year, with the
// value axis starting at zero.
func Line(w io.Writer, data aggregate.LineData, opts Options) error {
	o := opts.withDefaults(lineDefaults)
	if _, _, err := o.inner(); err != nil {
		return err
	}

	var (
		years  []int
		values []float64
		names  []string
		colors []color.RGBA
	)
	for _, s := range data.Series {
		c := namedColor(s.Color)
		for _, v := range s.Values {
			years = append(years, v.Year)
			values = append(values, v.Value)
			names = append(names, s.Name)
			colors = append(colors, c)
		}
	}
	if len(years) == 0 {
		return fmt.Errorf("render: line chart has no data")
	}

	tab := table.NewBuilder(nil).
		Add("year", years).
		Add("value", values).
		Add("series", names).
		Add("color", colors).
		Done()

	p := gg.NewPlot(tab)

	xs := gg.NewLinearScaler()
	xs.SetFormatter(func(y float64) string { return strconv.Itoa(int(y)) })
	p.SetScale("x", xs)

	ys := gg.NewLinearScaler().Include(0)
	if data.YMax > 0 && finite(data.YMax) {
		ys.SetMax(data.YMax)
	}
	ys.SetFormatter(FormatTick)
	p.SetScale("y", ys)

	p.Add(gg.LayerLines{X: "year", Y: "value", Color: "color"})
	p.Add(gg.LayerTags{X: "year", Y: "value", Label: "series"})
	p.Add(gg.Title(o.Title), gg.AxisLabel("x", "Year"), gg.AxisLabel("y", "USD"))

	return p.WriteSVG(w, o.Width, o.Height)
}
