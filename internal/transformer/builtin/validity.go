package builtin

import "moviecharts/internal/movie"

// Validity is the filter stage. A record passes when all of these hold:
//   - YearFrom <= ReleaseYear <= YearTo
//   - Revenue > 0 and Budget > 0 (NaN fails both)
//   - Genre and Title are present
type Validity struct {
	YearFrom, YearTo int
}

// DefaultValidity keeps films released 2000 through 2009.
func DefaultValidity() Validity {
	return Validity{YearFrom: 2000, YearTo: 2009}
}

// Keep reports whether r passes every predicate.
func (v Validity) Keep(r movie.Record) bool {
	return r.ReleaseYear >= v.YearFrom &&
		r.ReleaseYear <= v.YearTo &&
		r.Revenue > 0 &&
		r.Budget > 0 &&
		r.Genre.Present() &&
		r.Title.Present()
}

// Apply returns the passing records in input order.
func (v Validity) Apply(in []movie.Record) []movie.Record {
	out := make([]movie.Record, 0, len(in))
	for _, r := range in {
		if v.Keep(r) {
			out = append(out, r)
		}
	}
	return out
}
