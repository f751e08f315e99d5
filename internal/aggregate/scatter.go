package aggregate

import (
	"sort"

	"moviecharts/internal/movie"
)

// DefaultTopN is how many films the scatter plot shows.
const DefaultTopN = 100

// Scatter returns the n records with the largest budgets, largest first.
// Ties keep input order. n <= 0 means DefaultTopN. recs is not reordered.
func Scatter(recs []movie.Record, n int) []movie.Record {
	if n <= 0 {
		n = DefaultTopN
	}
	sorted := append([]movie.Record(nil), recs...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Budget > sorted[j].Budget
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}
