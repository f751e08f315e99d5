package builtin

import (
	"math"
	"reflect"
	"testing"

	"moviecharts/internal/movie"
)

func rec(year int, revenue, budget float64, genre, title string) movie.Record {
	r := movie.Record{ReleaseYear: year, Revenue: revenue, Budget: budget}
	if genre != "" {
		r.Genre = movie.Some(genre)
	}
	if title != "" {
		r.Title = movie.Some(title)
	}
	return r
}

func TestValidityKeep(t *testing.T) {
	t.Parallel()

	v := DefaultValidity()
	tests := []struct {
		name string
		in   movie.Record
		want bool
	}{
		{"ok", rec(2005, 100, 50, "Action", "A"), true},
		{"lower_bound", rec(2000, 1, 1, "g", "t"), true},
		{"upper_bound", rec(2009, 1, 1, "g", "t"), true},
		{"year_1999", rec(1999, 1, 1, "g", "t"), false},
		{"year_2010", rec(2010, 1, 1, "g", "t"), false},
		{"zero_revenue", rec(2005, 0, 1, "g", "t"), false},
		{"zero_budget", rec(2005, 1, 0, "g", "t"), false},
		{"nan_revenue", rec(2005, math.NaN(), 1, "g", "t"), false},
		{"nan_budget", rec(2005, 1, math.NaN(), "g", "t"), false},
		{"no_genre", rec(2005, 1, 1, "", "t"), false},
		{"no_title", rec(2005, 1, 1, "g", ""), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := v.Keep(tt.in); got != tt.want {
				t.Fatalf("Keep = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValidityApply(t *testing.T) {
	t.Parallel()

	in := []movie.Record{
		rec(2005, 100, 50, "Action", "A"),
		rec(1998, 200, 80, "Drama", "B"),
		rec(2003, 10, 5, "Drama", "C"),
	}
	got := DefaultValidity().Apply(in)
	if want := []string{"A", "C"}; !reflect.DeepEqual(titles(got), want) {
		t.Fatalf("Apply = %v, want %v", titles(got), want)
	}
	if len(in) != 3 {
		t.Fatalf("input changed")
	}

	again := DefaultValidity().Apply(got)
	if !reflect.DeepEqual(again, got) {
		t.Fatalf("filter is not idempotent: %v vs %v", titles(again), titles(got))
	}
}

func TestValidityCustomWindow(t *testing.T) {
	t.Parallel()

	v := Validity{YearFrom: 1990, YearTo: 1999}
	if !v.Keep(rec(1998, 1, 1, "g", "t")) || v.Keep(rec(2005, 1, 1, "g", "t")) {
		t.Fatalf("custom window not honoured")
	}
}
