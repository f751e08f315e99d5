package aggregate

import (
	"sort"
	"time"

	"github.com/aclements/go-moremath/stats"

	"moviecharts/internal/movie"
)

// Series names and stroke colors of the line chart.
const (
	SeriesRevenue = "Revenue"
	SeriesBudget  = "Budget"

	ColorRevenue = "dodgerblue"
	ColorBudget  = "darkorange"
)

// YearValue is one point of a line series.
type YearValue struct {
	Year  int     `json:"year"`
	Value float64 `json:"value"`
}

// Series is a named, colored sequence of yearly totals in ascending year
// order.
type Series struct {
	Name   string      `json:"name"`
	Color  string      `json:"color"`
	Values []YearValue `json:"values"`
}

// LineData is the line chart's input. Series holds Revenue then Budget, both
// covering the same years. Dates are those years as Jan 1 UTC, and YMax is the
// largest value across both series.
type LineData struct {
	Series []Series    `json:"series"`
	Dates  []time.Time `json:"dates"`
	YMax   float64     `json:"y_max"`
}

// Line sums revenue and budget per release year.
func Line(recs []movie.Record) LineData {
	type totals struct{ revenue, budget float64 }
	byYear := make(map[int]*totals)
	for _, r := range recs {
		t, ok := byYear[r.ReleaseYear]
		if !ok {
			t = &totals{}
			byYear[r.ReleaseYear] = t
		}
		t.revenue = addNum(t.revenue, r.Revenue)
		t.budget = addNum(t.budget, r.Budget)
	}

	years := make([]int, 0, len(byYear))
	for y := range byYear {
		years = append(years, y)
	}
	sort.Ints(years)

	rev := Series{Name: SeriesRevenue, Color: ColorRevenue, Values: make([]YearValue, len(years))}
	bud := Series{Name: SeriesBudget, Color: ColorBudget, Values: make([]YearValue, len(years))}
	dates := make([]time.Time, len(years))
	all := make([]float64, 0, 2*len(years))
	for i, y := range years {
		t := byYear[y]
		rev.Values[i] = YearValue{Year: y, Value: t.revenue}
		bud.Values[i] = YearValue{Year: y, Value: t.budget}
		dates[i] = time.Date(y, time.January, 1, 0, 0, 0, 0, time.UTC)
		all = append(all, t.revenue, t.budget)
	}

	var yMax float64
	if len(all) > 0 {
		_, yMax = stats.Bounds(all)
	}
	return LineData{Series: []Series{rev, bud}, Dates: dates, YMax: yMax}
}
