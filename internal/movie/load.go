package movie

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"moviecharts/internal/parser/csv"
)

// Sentinel is the dataset's marker for "no value".
const Sentinel = "NA"

// DateLayout is the release_date format.
const DateLayout = "2006-01-02"

var (
	// ErrMalformedJSON marks a genres or production_countries cell that is
	// not a JSON list.
	ErrMalformedJSON = errors.New("malformed JSON list")

	// ErrBadDate marks a release_date that is not YYYY-MM-DD.
	ErrBadDate = errors.New("unparseable release date")
)

// RowError ties a parse failure to the input line it came from.
type RowError struct {
	Line int
	Err  error
}

func (e *RowError) Error() string { return fmt.Sprintf("line %d: %v", e.Line, e.Err) }
func (e *RowError) Unwrap() error { return e.Err }

// Load converts every row. The first failing row aborts the whole load with a
// *RowError; no partial result is returned.
func Load(rows []csv.Row) ([]Record, error) {
	out := make([]Record, 0, len(rows))
	for _, r := range rows {
		rec, err := ParseRow(r.Fields)
		if err != nil {
			return nil, &RowError{Line: r.Line, Err: err}
		}
		out = append(out, rec)
	}
	return out, nil
}

// ParseRow builds a Record from one raw row. Keys missing from raw behave like
// an undefined cell: numbers become NaN, text is absent, and the JSON and date
// fields fail.
func ParseRow(raw map[string]string) (Record, error) {
	field := func(name string) (string, bool) {
		v, ok := raw[name]
		return v, ok
	}

	date, err := parseDate(field("release_date"))
	if err != nil {
		return Record{}, err
	}
	genres, err := parseGenres(field("genres"))
	if err != nil {
		return Record{}, err
	}
	countries, err := parseCountries(field("production_countries"))
	if err != nil {
		return Record{}, err
	}

	return Record{
		ID:          parseNumber(field("id")),
		Budget:      parseNumber(field("budget")),
		Revenue:     parseNumber(field("revenue")),
		Runtime:     parseNumber(field("runtime")),
		Popularity:  parseNumber(field("popularity")),
		VoteAverage: parseNumber(field("vote_average")),
		VoteCount:   parseNumber(field("vote_count")),

		Genre:            parseText(field("genre")),
		Homepage:         parseText(field("homepage")),
		IMDbID:           parseText(field("imdb_id")),
		OriginalLanguage: parseText(field("original_language")),
		Overview:         parseText(field("overview")),
		PosterPath:       parseText(field("poster_path")),
		Tagline:          parseText(field("tagline")),
		Title:            parseText(field("title")),

		Status: raw["status"],
		Video:  raw["video"],

		Genres:              genres,
		ProductionCountries: countries,

		ReleaseDate: date,
		ReleaseYear: date.Year(),
	}, nil
}

// parseNumber follows unary-plus coercion: surrounding whitespace is ignored,
// an empty cell is 0, and anything unparseable is NaN.
func parseNumber(s string, ok bool) float64 {
	if !ok {
		return math.NaN()
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	if len(s) > 2 && s[0] == '0' {
		base := 0
		switch s[1] {
		case 'x', 'X':
			base = 16
		case 'o', 'O':
			base = 8
		case 'b', 'B':
			base = 2
		}
		if base != 0 {
			n, err := strconv.ParseUint(s[2:], base, 64)
			if err != nil {
				return math.NaN()
			}
			return float64(n)
		}
	}
	if strings.ContainsRune(s, '_') {
		return math.NaN()
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return math.NaN()
	}
	// ParseFloat also takes "inf" and "nan" spellings; only "Infinity" counts.
	if err == nil && (math.IsInf(f, 0) && !strings.HasSuffix(s, "Infinity") || math.IsNaN(f)) {
		return math.NaN()
	}
	return f
}

func parseText(s string, ok bool) Text {
	if !ok || s == "" || s == Sentinel {
		return Text{}
	}
	return Some(s)
}

func parseDate(s string, ok bool) (time.Time, error) {
	if !ok {
		return time.Time{}, fmt.Errorf("release_date: %w: missing", ErrBadDate)
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("release_date: %w: %q", ErrBadDate, s)
	}
	return t, nil
}

func parseGenres(s string, ok bool) ([]string, error) {
	var items []struct {
		Name string `json:"name"`
	}
	if err := decodeList("genres", s, ok, &items); err != nil {
		return nil, err
	}
	names := make([]string, len(items))
	for i, g := range items {
		names[i] = g.Name
	}
	return names, nil
}

func parseCountries(s string, ok bool) ([]Country, error) {
	var cs []Country
	if err := decodeList("production_countries", s, ok, &cs); err != nil {
		return nil, err
	}
	if cs == nil {
		cs = []Country{}
	}
	return cs, nil
}

// decodeList unmarshals a JSON array into dst. A missing cell, a non-array,
// and a literal null are all malformed.
func decodeList(name, s string, ok bool, dst any) error {
	if !ok {
		return fmt.Errorf("%s: %w: missing", name, ErrMalformedJSON)
	}
	trimmed := strings.TrimSpace(s)
	if !strings.HasPrefix(trimmed, "[") {
		return fmt.Errorf("%s: %w: not a list: %.40q", name, ErrMalformedJSON, s)
	}
	if err := json.Unmarshal([]byte(trimmed), dst); err != nil {
		return fmt.Errorf("%s: %w: %w", name, ErrMalformedJSON, err)
	}
	return nil
}
