// Package config defines the JSON-serializable pipeline model for the chart
// tool. A pipeline file names where the movie dataset comes from, how the CSV
// is read, which optional transforms run before the validity filter, the
// filter's year window, and which charts to produce.
//
// Example (trimmed):
//
//	{
//	  "job":       "movies",
//	  "source":    { "kind": "file", "file": { "path": "data/movies.csv" } },
//	  "parser":    { "kind": "csv", "options": { "comma": "," } },
//	  "transform": [ { "kind": "normalize" }, { "kind": "dedupe", "options": { "keys": ["id"] } } ],
//	  "filter":    { "year_from": 2000, "year_to": 2009 },
//	  "charts":    [ { "kind": "bar", "name": "revenue-by-genre" } ],
//	  "output":    { "dir": "out" }
//	}
package config

import "encoding/json"

// Default year window of the validity filter (release years 2000–2009).
const (
	DefaultYearFrom = 2000
	DefaultYearTo   = 2009
)

// DefaultTopN is the number of movies kept by the scatter selection.
const DefaultTopN = 100

// Pipeline is the top-level object decoded from configs/pipelines/*.json.
type Pipeline struct {
	// Job labels log lines and metrics for this run.
	Job string `json:"job"`

	Source    Source      `json:"source"`
	Parser    Parser      `json:"parser"`
	Transform []Transform `json:"transform"`
	Filter    Filter      `json:"filter"`
	Charts    []Chart     `json:"charts"`
	Output    Output      `json:"output"`
}

// Source identifies where the dataset is read from.
type Source struct {
	// Kind selects the source implementation: "file" or "http".
	Kind string `json:"kind"`

	File SourceFile `json:"file"`
	HTTP SourceHTTP `json:"http"`
}

// SourceFile holds configuration for the "file" source kind.
type SourceFile struct {
	Path string `json:"path"`
}

// SourceHTTP holds configuration for the "http" source kind.
type SourceHTTP struct {
	URL string `json:"url"`

	// TimeoutSeconds is the per-request timeout; 0 uses the client default.
	TimeoutSeconds int `json:"timeout_seconds"`

	// MaxRetries is the number of retries after the first attempt.
	MaxRetries int `json:"max_retries"`

	InsecureSkipVerify bool `json:"insecure_skip_verify"`
}

// Parser selects how raw bytes become rows. Only "csv" exists today.
type Parser struct {
	Kind string `json:"kind"`

	// Options for the csv parser:
	//   comma (string), trim_space (bool), lazy_quotes (bool),
	//   header_map (object: source header -> canonical field name)
	Options Options `json:"options"`
}

// Transform is one optional step run on loaded records before filtering.
type Transform struct {
	// Kind is "normalize" or "dedupe".
	Kind    string  `json:"kind"`
	Options Options `json:"options"`
}

// Filter configures the validity filter's release year window. Zero values
// fall back to DefaultYearFrom and DefaultYearTo.
type Filter struct {
	YearFrom int `json:"year_from"`
	YearTo   int `json:"year_to"`
}

// Window returns the inclusive year bounds with defaults applied.
func (f Filter) Window() (from, to int) {
	from, to = f.YearFrom, f.YearTo
	if from == 0 {
		from = DefaultYearFrom
	}
	if to == 0 {
		to = DefaultYearTo
	}
	return from, to
}

// Chart describes a single chart to produce.
type Chart struct {
	// Kind is "bar", "line" or "scatter".
	Kind string `json:"kind"`

	// Name is the output file stem (<dir>/<name>.svg). Defaults to Kind.
	Name string `json:"name"`

	// Title overrides the chart header.
	Title string `json:"title"`

	Width  int `json:"width"`
	Height int `json:"height"`

	// TopN bounds the scatter selection; 0 means DefaultTopN.
	TopN int `json:"top_n"`

	// WriteJSON also dumps the chart-ready rows to <dir>/<name>.json.
	WriteJSON bool `json:"write_json"`
}

// FileStem returns the chart's output file name without extension.
func (c Chart) FileStem() string {
	if c.Name != "" {
		return c.Name
	}
	return c.Kind
}

// Output configures where chart files are written.
type Output struct {
	// Dir is created if missing. Empty means the working directory.
	Dir string `json:"dir"`
}

// Options is a small helper to fetch typed values from free-form JSON maps.
// It performs minimal coercion and returns the provided default when a key is
// absent or of an unexpected type.
type Options map[string]any

// String returns the string value for key or def.
func (o Options) String(key, def string) string {
	if v, ok := o[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return def
}

// Bool returns the bool value for key or def.
func (o Options) Bool(key string, def bool) bool {
	if v, ok := o[key]; ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return def
}

// Int returns the int value for key or def. encoding/json decodes numbers as
// float64, so both float64 and int are accepted.
func (o Options) Int(key string, def int) int {
	if v, ok := o[key]; ok {
		switch n := v.(type) {
		case float64:
			return int(n)
		case int:
			return n
		}
	}
	return def
}

// Rune returns the first rune of the string value for key, or def.
func (o Options) Rune(key string, def rune) rune {
	if v, ok := o[key]; ok {
		if s, ok := v.(string); ok && len(s) > 0 {
			return []rune(s)[0]
		}
	}
	return def
}

// StringMap returns the object at key as map[string]string, ignoring
// non-string values. Missing keys yield an empty map.
func (o Options) StringMap(key string) map[string]string {
	res := map[string]string{}
	if v, ok := o[key]; ok {
		switch m := v.(type) {
		case map[string]any:
			for k, vv := range m {
				if s, ok := vv.(string); ok {
					res[k] = s
				}
			}
		case map[string]string:
			for k, s := range m {
				res[k] = s
			}
		}
	}
	return res
}

// StringSlice returns the array at key as []string, or nil.
func (o Options) StringSlice(key string) []string {
	if v, ok := o[key]; ok {
		switch vv := v.(type) {
		case []any:
			out := make([]string, 0, len(vv))
			for _, x := range vv {
				if s, ok := x.(string); ok {
					out = append(out, s)
				}
			}
			return out
		case []string:
			return vv
		}
	}
	return nil
}

// UnmarshalJSON makes a missing or null "options" object decode to an empty,
// non-nil map.
func (o *Options) UnmarshalJSON(b []byte) error {
	if len(b) == 0 || string(b) == "null" {
		*o = Options{}
		return nil
	}
	var tmp map[string]any
	if err := json.Unmarshal(b, &tmp); err != nil {
		return err
	}
	*o = Options(tmp)
	return nil
}
