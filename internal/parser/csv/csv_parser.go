// Package csv reads a delimited dataset with a header row into raw rows keyed
// by canonical field name. The whole file is read before returning; there is
// no partial result on error.
package csv

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"moviecharts/internal/config"
)

// ErrNoHeader is returned when the input has no header row.
var ErrNoHeader = errors.New("csv: missing header row")

// Row is one data record. Fields holds the cell for every header column the
// record actually has; a short record simply lacks the trailing keys, which
// lets callers tell a missing cell from an empty one.
type Row struct {
	// Line is the 1-based line where the record starts.
	Line   int
	Fields map[string]string
}

// Options understood by Read (all optional):
//   - comma (string; first rune used; default ',')
//   - trim_space (bool; default false; cells are kept verbatim)
//   - lazy_quotes (bool; default false)
//   - header_map (object; source header -> canonical name)
//
// Headers not in header_map are canonicalized to lower case with spaces
// replaced by underscores, so "Release Date" becomes "release_date".

// Read consumes src fully and closes it. A malformed record aborts the read
// and the error names the offending line.
func Read(ctx context.Context, src io.ReadCloser, opt config.Options) ([]Row, error) {
	defer src.Close()

	trim := opt.Bool("trim_space", false)
	hm := opt.StringMap("header_map")

	cr := csv.NewReader(src)
	cr.Comma = opt.Rune("comma", ',')
	cr.LazyQuotes = opt.Bool("lazy_quotes", false)
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true

	hdr, err := cr.Read()
	if err == io.EOF {
		return nil, ErrNoHeader
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	columns := canonicalHeader(stripHeaderBOM(hdr), hm)

	const logEveryN = 50_000
	var rows []Row
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		rec, err := cr.Read()
		if err == io.EOF {
			return rows, nil
		}
		if err != nil {
			return nil, fmt.Errorf("csv read: %w", err)
		}
		line, _ := cr.FieldPos(0)

		n := min(len(rec), len(columns))
		fields := make(map[string]string, n)
		for i := 0; i < n; i++ {
			v := rec[i]
			if trim && hasEdgeSpace(v) {
				v = strings.TrimSpace(v)
			}
			fields[columns[i]] = v
		}
		rows = append(rows, Row{Line: line, Fields: fields})

		if len(rows)%logEveryN == 0 {
			log.Printf("reader: line=%d rows=%d", line, len(rows))
		}
	}
}

func canonicalHeader(hdr []string, hm map[string]string) []string {
	out := make([]string, len(hdr))
	for i, h := range hdr {
		h = strings.TrimSpace(h)
		if mapped, ok := hm[h]; ok {
			out[i] = mapped
			continue
		}
		out[i] = strings.ReplaceAll(strings.ToLower(h), " ", "_")
	}
	return out
}

// hasEdgeSpace reports whether s starts or ends with ASCII whitespace. It lets
// the common case skip strings.TrimSpace allocations.
func hasEdgeSpace(s string) bool {
	if s == "" {
		return false
	}
	switch s[0] {
	case ' ', '\t', '\n', '\r':
		return true
	}
	switch s[len(s)-1] {
	case ' ', '\t', '\n', '\r':
		return true
	}
	return false
}
