package builtin

import (
	"math"
	"reflect"
	"testing"

	"moviecharts/internal/movie"
)

func mk(id float64, title string, budget float64) movie.Record {
	r := movie.Record{ID: id, Budget: budget, Revenue: 1}
	if title != "" {
		r.Title = movie.Some(title)
	}
	return r
}

func titles(rs []movie.Record) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.Title.String()
	}
	return out
}

func TestDeDupKeepFirst(t *testing.T) {
	in := []movie.Record{mk(1, "A", 10), mk(1, "B", 20), mk(2, "C", 30)}
	got := DeDup{Keys: []string{"id"}, Policy: KeepFirst}.Apply(in)
	if want := []string{"A", "C"}; !reflect.DeepEqual(titles(got), want) {
		t.Fatalf("keep-first: got %v want %v", titles(got), want)
	}
}

func TestDeDupKeepLast(t *testing.T) {
	in := []movie.Record{mk(1, "A", 10), mk(2, "C", 30), mk(1, "B", 20)}
	got := DeDup{Keys: []string{"id"}, Policy: KeepLast}.Apply(in)
	// The surviving duplicate keeps its own position.
	if want := []string{"C", "B"}; !reflect.DeepEqual(titles(got), want) {
		t.Fatalf("keep-last: got %v want %v", titles(got), want)
	}
}

func TestDeDupCompositeKey(t *testing.T) {
	in := []movie.Record{mk(1, "A", 10), mk(1, "B", 20), mk(1, "A", 30)}
	got := DeDup{Keys: []string{"id", "title"}}.Apply(in)
	if len(got) != 2 || got[0].Budget != 10 || got[1].Budget != 20 {
		t.Fatalf("composite: got %+v", got)
	}
}

func TestDeDupMissingKeyPassesThrough(t *testing.T) {
	in := []movie.Record{
		mk(math.NaN(), "A", 10),
		mk(math.NaN(), "A", 20),
		mk(3, "", 30),
		mk(3, "", 40),
	}
	if got := (DeDup{Keys: []string{"id"}}).Apply(in); len(got) != 3 {
		t.Fatalf("NaN ids must not collapse; got %d records", len(got))
	}
	if got := (DeDup{Keys: []string{"title"}}).Apply(in); len(got) != 3 {
		t.Fatalf("absent titles must not collapse; got %d records", len(got))
	}
}

func TestDeDupDoesNotAliasInput(t *testing.T) {
	in := []movie.Record{mk(1, "A", 10)}
	got := DeDup{}.Apply(in)
	got[0].Budget = 99
	if in[0].Budget != 10 {
		t.Fatalf("input mutated through output")
	}
}

func TestIsDedupKey(t *testing.T) {
	for _, k := range []string{"id", "title", "imdb_id", "release_date", "genre"} {
		if !IsDedupKey(k) {
			t.Errorf("IsDedupKey(%q) = false", k)
		}
	}
	if IsDedupKey("budget") {
		t.Errorf("budget should not be a dedupe key")
	}
}
