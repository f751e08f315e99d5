// Package movie holds the typed movie record and the loader that builds it
// from raw CSV rows.
package movie

import (
	"encoding/json"
	"time"
)

// Text is an optional string. The zero value is absent. A present Text is
// never empty and never the "NA" sentinel.
type Text struct {
	s  string
	ok bool
}

// Some returns a present Text holding s.
func Some(s string) Text { return Text{s: s, ok: true} }

// Get returns the value and whether it is present.
func (t Text) Get() (string, bool) { return t.s, t.ok }

// Present reports whether a value is set.
func (t Text) Present() bool { return t.ok }

// String returns the value, or "" when absent.
func (t Text) String() string { return t.s }

// MarshalJSON encodes an absent Text as null.
func (t Text) MarshalJSON() ([]byte, error) {
	if !t.ok {
		return []byte("null"), nil
	}
	return json.Marshal(t.s)
}

// UnmarshalJSON reads null as absent. Empty strings and the sentinel are
// absent too, so a decoded Text keeps the same guarantees as a loaded one.
func (t *Text) UnmarshalJSON(b []byte) error {
	*t = Text{}
	if string(b) == "null" {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s != "" && s != Sentinel {
		*t = Some(s)
	}
	return nil
}

// Country is one entry of the production_countries list.
type Country struct {
	ISO3166_1 string `json:"iso_3166_1"`
	Name      string `json:"name"`
}

// Record is one dataset row after type conversion. Numeric fields are NaN
// when the source cell was not a number; nothing downstream validates that.
// Records are built once by ParseRow and never modified afterwards.
type Record struct {
	ID          float64
	Budget      float64
	Revenue     float64
	Runtime     float64
	Popularity  float64
	VoteAverage float64
	VoteCount   float64

	Genre            Text
	Homepage         Text
	IMDbID           Text
	OriginalLanguage Text
	Overview         Text
	PosterPath       Text
	Tagline          Text
	Title            Text

	Status string
	Video  string

	Genres              []string
	ProductionCountries []Country

	ReleaseDate time.Time
	ReleaseYear int
}
