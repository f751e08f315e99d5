// Package builtin contains the record transforms used by the pipeline:
// Normalize and DeDup run before filtering, and Validity is the filter itself.
package builtin

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"moviecharts/internal/movie"
)

const nbsp = "\u00a0"

// Normalize cleans text fields so that equal-looking genres and titles
// compare equal: NBSP becomes a space, edges are trimmed, and the result is
// NFC. With FoldAccents, combining marks are stripped as well ("Amélie" ->
// "Amelie"). A value that trims to empty becomes absent.
type Normalize struct {
	FoldAccents bool
}

func (n Normalize) Apply(in []movie.Record) []movie.Record {
	clean := n.cleaner()
	out := make([]movie.Record, len(in))
	for i, r := range in {
		r.Genre = cleanText(r.Genre, clean)
		r.Title = cleanText(r.Title, clean)
		r.Tagline = cleanText(r.Tagline, clean)
		r.Overview = cleanText(r.Overview, clean)
		r.OriginalLanguage = cleanText(r.OriginalLanguage, clean)
		if r.Genres != nil {
			gs := make([]string, len(r.Genres))
			for j, g := range r.Genres {
				gs[j] = clean(g)
			}
			r.Genres = gs
		}
		out[i] = r
	}
	return out
}

func (n Normalize) cleaner() func(string) string {
	var t transform.Transformer = norm.NFC
	if n.FoldAccents {
		t = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	}
	return func(s string) string {
		s = strings.TrimSpace(strings.ReplaceAll(s, nbsp, " "))
		if out, _, err := transform.String(t, s); err == nil {
			return out
		}
		return s
	}
}

func cleanText(t movie.Text, clean func(string) string) movie.Text {
	s, ok := t.Get()
	if !ok {
		return t
	}
	s = clean(s)
	if s == "" || s == movie.Sentinel {
		return movie.Text{}
	}
	return movie.Some(s)
}
