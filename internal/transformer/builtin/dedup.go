package builtin

import (
	"math"
	"strconv"
	"strings"

	"github.com/zeebo/xxh3"

	"moviecharts/internal/movie"
)

// Dedup policies.
const (
	KeepFirst = "keep-first"
	KeepLast  = "keep-last"
)

// dedupKeys extracts the supported key fields. ok is false when the field has
// no usable value (absent text, NaN number).
var dedupKeys = map[string]func(movie.Record) (string, bool){
	"id": func(r movie.Record) (string, bool) {
		if math.IsNaN(r.ID) {
			return "", false
		}
		return strconv.FormatFloat(r.ID, 'g', -1, 64), true
	},
	"imdb_id": func(r movie.Record) (string, bool) { return r.IMDbID.Get() },
	"title":   func(r movie.Record) (string, bool) { return r.Title.Get() },
	"genre":   func(r movie.Record) (string, bool) { return r.Genre.Get() },
	"release_date": func(r movie.Record) (string, bool) {
		return r.ReleaseDate.Format(movie.DateLayout), true
	},
}

// IsDedupKey reports whether name can be used in DeDup.Keys.
func IsDedupKey(name string) bool {
	_, ok := dedupKeys[name]
	return ok
}

// DeDup drops repeated movies that share the same business key (for example
// the same id listed twice in the export). The key is the concatenation of
// Keys, hashed with 128-bit xxh3. Records missing any key field pass through.
// Output keeps the input's relative order.
type DeDup struct {
	Keys []string

	// Policy is KeepFirst (default) or KeepLast.
	Policy string
}

func (d DeDup) Apply(in []movie.Record) []movie.Record {
	if len(in) == 0 || len(d.Keys) == 0 {
		return append([]movie.Record(nil), in...)
	}

	keys := make([]xxh3.Uint128, len(in))
	keyed := make([]bool, len(in))
	winner := make(map[xxh3.Uint128]int, len(in))
	keepLast := strings.EqualFold(strings.TrimSpace(d.Policy), KeepLast)

	for i, r := range in {
		k, ok := d.keyOf(r)
		if !ok {
			continue
		}
		keys[i], keyed[i] = k, true
		if _, seen := winner[k]; !seen || keepLast {
			winner[k] = i
		}
	}

	out := make([]movie.Record, 0, len(winner))
	for i, r := range in {
		if !keyed[i] || winner[keys[i]] == i {
			out = append(out, r)
		}
	}
	return out
}

func (d DeDup) keyOf(r movie.Record) (xxh3.Uint128, bool) {
	var b strings.Builder
	for i, name := range d.Keys {
		get, known := dedupKeys[name]
		if !known {
			return xxh3.Uint128{}, false
		}
		v, ok := get(r)
		if !ok {
			return xxh3.Uint128{}, false
		}
		if i > 0 {
			b.WriteByte('\x1f')
		}
		b.WriteString(v)
	}
	return xxh3.HashString128(b.String()), true
}
