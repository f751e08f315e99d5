package aggregate

import (
	"sort"

	"moviecharts/internal/movie"
)

// GenreTotal is one bar: the summed revenue of every film in a genre.
type GenreTotal struct {
	Genre   string  `json:"genre"`
	Revenue float64 `json:"revenue"`
}

// Bar groups recs by exact genre and sums revenue per group. Groups come back
// in the order their genre was first seen. Records without a genre are
// skipped.
func Bar(recs []movie.Record) []GenreTotal {
	index := make(map[string]int)
	var out []GenreTotal
	for _, r := range recs {
		g, ok := r.Genre.Get()
		if !ok {
			continue
		}
		i, seen := index[g]
		if !seen {
			i = len(out)
			index[g] = i
			out = append(out, GenreTotal{Genre: g})
		}
		out[i].Revenue = addNum(out[i].Revenue, r.Revenue)
	}
	return out
}

// SortByRevenueDesc returns a copy of ts ordered by revenue, highest first.
// Equal totals keep their relative order.
func SortByRevenueDesc(ts []GenreTotal) []GenreTotal {
	out := append([]GenreTotal(nil), ts...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Revenue > out[j].Revenue
	})
	return out
}
