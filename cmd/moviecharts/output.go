package main

import (
	"encoding/json"
	"io"
	"math"
	"time"

	"moviecharts/internal/aggregate"
	"moviecharts/internal/movie"
)

// chartDump is the JSON written next to a chart when write_json is set.
type chartDump struct {
	Kind        string         `json:"kind"`
	GeneratedAt time.Time      `json:"generated_at"`
	Bars        []barRow       `json:"bars,omitempty"`
	Line        *lineDump      `json:"line,omitempty"`
	Scatter     []scatterPoint `json:"scatter,omitempty"`
}

// Sums and values that are not finite come out as null, since JSON has no
// NaN or Inf.

type barRow struct {
	Genre   string   `json:"genre"`
	Revenue *float64 `json:"revenue"`
}

type yearValue struct {
	Year  int      `json:"year"`
	Value *float64 `json:"value"`
}

type seriesDump struct {
	Name   string      `json:"name"`
	Color  string      `json:"color"`
	Values []yearValue `json:"values"`
}

type lineDump struct {
	Series []seriesDump `json:"series"`
	Dates  []time.Time  `json:"dates"`
	YMax   *float64     `json:"y_max"`
}

// scatterPoint is the exported view of a scatter record.
type scatterPoint struct {
	ID          *float64   `json:"id"`
	Title       movie.Text `json:"title"`
	Genre       movie.Text `json:"genre"`
	Budget      *float64   `json:"budget"`
	Revenue     *float64   `json:"revenue"`
	ReleaseDate string     `json:"release_date"`
	ReleaseYear int        `json:"release_year"`
}

func writeResultJSON(w io.Writer, res aggregate.Result, at time.Time) error {
	d := chartDump{Kind: res.Kind.String(), GeneratedAt: at.UTC()}
	switch res.Kind {
	case aggregate.KindBar:
		d.Bars = make([]barRow, len(res.Bars))
		for i, b := range res.Bars {
			d.Bars[i] = barRow{Genre: b.Genre, Revenue: finite(b.Revenue)}
		}
	case aggregate.KindLine:
		line := &lineDump{
			Series: make([]seriesDump, len(res.Line.Series)),
			Dates:  res.Line.Dates,
			YMax:   finite(res.Line.YMax),
		}
		for i, sr := range res.Line.Series {
			vals := make([]yearValue, len(sr.Values))
			for j, v := range sr.Values {
				vals[j] = yearValue{Year: v.Year, Value: finite(v.Value)}
			}
			line.Series[i] = seriesDump{Name: sr.Name, Color: sr.Color, Values: vals}
		}
		d.Line = line
	case aggregate.KindScatter:
		d.Scatter = make([]scatterPoint, len(res.Scatter))
		for i, r := range res.Scatter {
			d.Scatter[i] = scatterPoint{
				ID:          finite(r.ID),
				Title:       r.Title,
				Genre:       r.Genre,
				Budget:      finite(r.Budget),
				Revenue:     finite(r.Revenue),
				ReleaseDate: r.ReleaseDate.Format(movie.DateLayout),
				ReleaseYear: r.ReleaseYear,
			}
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(d)
}

func finite(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
