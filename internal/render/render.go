// Package render draws chart-ready rows as SVG. The bar chart is laid out by
// hand with svgo and go-moremath scales. Line and scatter charts are built
// with go-gg.
package render

import (
	"fmt"
	"image/color"

	"golang.org/x/image/colornames"
)

// Margin is the space around the plot area, in pixels.
type Margin struct {
	Top, Right, Bottom, Left int
}

// Options size and label a chart. Zero fields take the chart's defaults.
type Options struct {
	Width, Height int
	Title         string
	Subtitle      string
	Margin        Margin
}

func (o Options) withDefaults(def Options) Options {
	if o.Width <= 0 {
		o.Width = def.Width
	}
	if o.Height <= 0 {
		o.Height = def.Height
	}
	if o.Title == "" {
		o.Title = def.Title
	}
	if o.Subtitle == "" {
		o.Subtitle = def.Subtitle
	}
	if o.Margin == (Margin{}) {
		o.Margin = def.Margin
	}
	return o
}

// inner returns the plot area size after margins.
func (o Options) inner() (w, h int, err error) {
	w = o.Width - o.Margin.Left - o.Margin.Right
	h = o.Height - o.Margin.Top - o.Margin.Bottom
	if w <= 0 || h <= 0 {
		return 0, 0, fmt.Errorf("render: %dx%d canvas leaves no room inside margins %+v", o.Width, o.Height, o.Margin)
	}
	return w, h, nil
}

// namedColor resolves a CSS color keyword, falling back to black.
func namedColor(name string) color.RGBA {
	if c, ok := colornames.Map[name]; ok {
		return c
	}
	return colornames.Black
}

// hexColor formats c as #rrggbb for inline SVG styles.
func hexColor(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
