// Package aggregate turns filtered movie records into chart-ready summary
// rows. Each chart kind has its own strategy; Run dispatches on Kind.
//
// All functions are pure: inputs are never reordered or modified.
package aggregate

import (
	"fmt"
	"math"
	"strings"

	"moviecharts/internal/movie"
)

// Kind selects an aggregation strategy.
type Kind int

const (
	KindBar Kind = iota + 1
	KindLine
	KindScatter
)

func (k Kind) String() string {
	switch k {
	case KindBar:
		return "bar"
	case KindLine:
		return "line"
	case KindScatter:
		return "scatter"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind maps a config string onto a Kind.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "bar":
		return KindBar, nil
	case "line":
		return KindLine, nil
	case "scatter":
		return KindScatter, nil
	}
	return 0, fmt.Errorf("aggregate: unknown chart kind %q", s)
}

// Options tune Run. The zero value uses the defaults.
type Options struct {
	// TopN bounds the scatter selection; <= 0 means DefaultTopN.
	TopN int
}

// Result holds the output of one strategy. Only the field matching Kind is
// set.
type Result struct {
	Kind    Kind
	Bars    []GenreTotal
	Line    LineData
	Scatter []movie.Record
}

// Rows is the number of summary rows produced, used for logging and metrics.
func (r Result) Rows() int {
	switch r.Kind {
	case KindBar:
		return len(r.Bars)
	case KindLine:
		if len(r.Line.Series) == 0 {
			return 0
		}
		return len(r.Line.Series[0].Values)
	case KindScatter:
		return len(r.Scatter)
	}
	return 0
}

// Run applies the strategy for kind. Bar totals come back sorted by revenue,
// highest first, the order the chart draws them in.
func Run(kind Kind, recs []movie.Record, opts Options) (Result, error) {
	switch kind {
	case KindBar:
		return Result{Kind: kind, Bars: SortByRevenueDesc(Bar(recs))}, nil
	case KindLine:
		return Result{Kind: kind, Line: Line(recs)}, nil
	case KindScatter:
		return Result{Kind: kind, Scatter: Scatter(recs, opts.TopN)}, nil
	}
	return Result{}, fmt.Errorf("aggregate: unsupported kind %v", kind)
}

// addNum adds v to sum, skipping NaN.
func addNum(sum, v float64) float64 {
	if math.IsNaN(v) {
		return sum
	}
	return sum + v
}
