package render

import (
	"fmt"
	"io"
	"math"

	svg "github.com/ajstarks/svgo"
	"github.com/aclements/go-moremath/scale"
	"github.com/aclements/go-moremath/stats"

	"moviecharts/internal/aggregate"
)

// Bar chart defaults.
var barDefaults = Options{
	Width:    400,
	Height:   500,
	Title:    "Total revenue by genre in $US",
	Subtitle: "Films w/ budget and revenue figures, 2000-2009",
	Margin:   Margin{Top: 80, Right: 40, Bottom: 40, Left: 80},
}

const (
	barFill         = "dodgerblue"
	barPaddingInner = 0.25
	barMaxTicks     = 10
)

// Bar draws a horizontal bar per genre in the given order, with the revenue
// axis along the top.
func Bar(w io.Writer, bars []aggregate.GenreTotal, opts Options) error {
	o := opts.withDefaults(barDefaults)
	iw, ih, err := o.inner()
	if err != nil {
		return err
	}

	var xMax float64
	for _, b := range bars {
		if finite(b.Revenue) {
			xMax = math.Max(xMax, b.Revenue)
		}
	}
	if xMax == 0 {
		xMax = 1
	}
	xs := scale.Linear{Min: 0, Max: xMax}
	xAt := func(v float64) int { return int(math.Round(xs.Map(v) * float64(iw))) }
	// An infinite total spans the axis; NaN and negative totals draw nothing.
	width := func(v float64) int {
		switch {
		case math.IsNaN(v) || v <= 0:
			return 0
		case math.IsInf(v, 1):
			return iw
		}
		return xAt(v)
	}

	step, band := bandLayout(len(bars), ih, barPaddingInner)

	canvas := svg.New(w)
	canvas.Start(o.Width, o.Height)
	canvas.Gtransform(fmt.Sprintf("translate(%d,%d)", o.Margin.Left, o.Margin.Top))

	// Header.
	canvas.Gid("bar-header")
	hy := -int(float64(o.Margin.Top) * 0.6)
	canvas.Text(0, hy, o.Title, "font-family:sans-serif;font-size:14px;font-weight:bold")
	if o.Subtitle != "" {
		canvas.Text(0, hy+21, o.Subtitle, "font-family:sans-serif;font-size:11px;fill:#555")
	}
	canvas.Gend()

	// Bars.
	canvas.Gid("bars")
	fill := "fill:" + hexColor(namedColor(barFill))
	for i, b := range bars {
		y := int(math.Round(float64(i) * step))
		canvas.Rect(0, y, width(b.Revenue), band, `class="bar"`, fill)
	}
	canvas.Gend()

	// X axis on top with grid lines across the bars.
	major, _ := xs.Ticks(scale.TickOptions{Max: barMaxTicks})
	canvas.Gid("x-axis")
	for _, t := range major {
		x := xAt(t)
		canvas.Line(x, 0, x, ih, "stroke:#ddd")
		canvas.Text(x, -6, FormatTick(t), "font-family:sans-serif;font-size:10px;fill:#666;text-anchor:middle")
	}
	canvas.Gend()

	// Y axis labels.
	canvas.Gid("y-axis")
	for i, b := range bars {
		y := int(math.Round(float64(i)*step + float64(band)/2))
		canvas.Text(-8, y, b.Genre, "font-family:sans-serif;font-size:10px;fill:#333;text-anchor:end;dominant-baseline:central")
	}
	canvas.Gend()

	canvas.Gend()
	canvas.End()
	return nil
}

// bandLayout splits length pixels into n bands separated by paddingInner of
// a step, with no outer padding. It returns the step between band starts and
// the rounded-down band width.
func bandLayout(n, length int, paddingInner float64) (step float64, band int) {
	if n == 0 {
		return 0, 0
	}
	step = float64(length) / math.Max(1, float64(n)-paddingInner)
	return step, int(math.Floor(step * (1 - paddingInner)))
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

// finiteBounds is stats.Bounds over the finite values of xs. ok is false when
// there are none.
func finiteBounds(xs []float64) (lo, hi float64, ok bool) {
	vals := make([]float64, 0, len(xs))
	for _, x := range xs {
		if finite(x) {
			vals = append(vals, x)
		}
	}
	if len(vals) == 0 {
		return 0, 0, false
	}
	lo, hi = stats.Bounds(vals)
	return lo, hi, true
}
