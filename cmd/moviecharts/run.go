// Package main is the moviecharts command. It reads the movies dataset, keeps
// the films that pass the validity filter, and writes one SVG (and optionally
// a JSON dump of the chart rows) per configured chart.
//
// The run is a single pass: open the source, parse everything, then
// aggregate and render each chart from its own copy of the filtered records.
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"moviecharts/internal/aggregate"
	"moviecharts/internal/config"
	"moviecharts/internal/datasource"
	"moviecharts/internal/datasource/file"
	"moviecharts/internal/datasource/httpds"
	"moviecharts/internal/metrics"
	"moviecharts/internal/movie"
	csvparser "moviecharts/internal/parser/csv"
	"moviecharts/internal/render"
	"moviecharts/internal/transformer"
	"moviecharts/internal/transformer/builtin"
)

// runOptions are CLI-only knobs that are not part of the pipeline file.
type runOptions struct {
	// Only restricts rendering to charts of this kind; zero renders all.
	Only    aggregate.Kind
	Verbose bool
}

// runSummary reports what a run did, for logging and tests.
type runSummary struct {
	Read   int
	Loaded int
	Kept   int
	Charts []chartOutput
}

// chartOutput describes one rendered chart.
type chartOutput struct {
	Name string
	Kind aggregate.Kind
	Rows int
	SVG  string
	JSON string // empty unless write_json was set
}

// Function variables used as test seams.
var (
	openSourceFn = openSource
	nowFn        = time.Now
)

// run executes source → csv → load → transform → filter → aggregate → render.
// Any failure aborts the run; charts already written stay on disk.
func run(ctx context.Context, p config.Pipeline, opts runOptions) (runSummary, error) {
	var sum runSummary
	job := p.Job

	// Fetch and parse in one scoped acquisition; csv.Read closes the source.
	var rows []csvparser.Row
	err := step(job, "read", func() error {
		src, err := openSourceFn(ctx, p)
		if err != nil {
			return err
		}
		rows, err = csvparser.Read(ctx, src, p.Parser.Options)
		return err
	})
	if err != nil {
		return sum, fmt.Errorf("read: %w", err)
	}
	sum.Read = len(rows)
	metrics.RecordRow(job, "read", int64(len(rows)))

	var recs []movie.Record
	err = step(job, "load", func() error {
		var err error
		recs, err = movie.Load(rows)
		return err
	})
	if err != nil {
		return sum, fmt.Errorf("load: %w", err)
	}
	sum.Loaded = len(recs)
	metrics.RecordRow(job, "loaded", int64(len(recs)))
	log.Printf("load: rows=%d records=%d", len(rows), len(recs))

	chain, err := transformer.FromConfig(p.Transform)
	if err != nil {
		return sum, fmt.Errorf("transform: %w", err)
	}
	if len(chain) > 0 {
		before := len(recs)
		_ = step(job, "transform", func() error {
			recs = chain.Apply(recs)
			return nil
		})
		metrics.RecordRow(job, "transform_dropped", int64(before-len(recs)))
		if opts.Verbose {
			log.Printf("transform: steps=%d in=%d out=%d", len(chain), before, len(recs))
		}
	}

	from, to := p.Filter.Window()
	validity := builtin.Validity{YearFrom: from, YearTo: to}
	var kept []movie.Record
	_ = step(job, "filter", func() error {
		kept = validity.Apply(recs)
		return nil
	})
	sum.Kept = len(kept)
	metrics.RecordRow(job, "kept", int64(len(kept)))
	metrics.RecordRow(job, "filtered", int64(len(recs)-len(kept)))
	log.Printf("filter: window=%d-%d kept=%d dropped=%d", from, to, len(kept), len(recs)-len(kept))

	dir := p.Output.Dir
	if dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return sum, fmt.Errorf("output dir: %w", err)
		}
	}

	for _, c := range p.Charts {
		kind, err := aggregate.ParseKind(c.Kind)
		if err != nil {
			return sum, err
		}
		if opts.Only != 0 && kind != opts.Only {
			continue
		}
		out, err := renderChart(job, dir, c, kind, kept, from, to)
		if err != nil {
			return sum, fmt.Errorf("chart %s: %w", c.FileStem(), err)
		}
		sum.Charts = append(sum.Charts, out)
		log.Printf("chart: name=%s kind=%s rows=%d svg=%s", out.Name, out.Kind, out.Rows, out.SVG)
	}

	return sum, nil
}

// renderChart aggregates a private copy of recs for one chart and writes its
// files.
func renderChart(job, dir string, c config.Chart, kind aggregate.Kind, recs []movie.Record, from, to int) (chartOutput, error) {
	out := chartOutput{Name: c.FileStem(), Kind: kind}

	own := append([]movie.Record(nil), recs...)
	var res aggregate.Result
	err := step(job, "aggregate", func() error {
		var err error
		res, err = aggregate.Run(kind, own, aggregate.Options{TopN: c.TopN})
		return err
	})
	if err != nil {
		return out, err
	}
	out.Rows = res.Rows()

	ropts := render.Options{Width: c.Width, Height: c.Height, Title: c.Title}
	if kind == aggregate.KindBar {
		ropts.Subtitle = fmt.Sprintf("Films w/ budget and revenue figures, %d-%d", from, to)
	}

	out.SVG = filepath.Join(dir, out.Name+".svg")
	err = step(job, "render", func() error {
		return writeFile(out.SVG, func(w io.Writer) error {
			switch kind {
			case aggregate.KindBar:
				return render.Bar(w, res.Bars, ropts)
			case aggregate.KindLine:
				return render.Line(w, res.Line, ropts)
			default:
				return render.Scatter(w, res.Scatter, ropts)
			}
		})
	})
	if err != nil {
		return out, err
	}

	if c.WriteJSON {
		out.JSON = filepath.Join(dir, out.Name+".json")
		if err := writeFile(out.JSON, func(w io.Writer) error {
			return writeResultJSON(w, res, nowFn())
		}); err != nil {
			return out, err
		}
	}

	metrics.RecordChart(job, out.Name, out.Rows)
	return out, nil
}

// newSource maps the source config onto a datasource.
func newSource(s config.Source) (datasource.Source, error) {
	switch s.Kind {
	case "file":
		return file.NewLocal(s.File.Path), nil
	case "http":
		h := s.HTTP
		c := httpds.NewClient(httpds.Config{
			Timeout:            time.Duration(h.TimeoutSeconds) * time.Second,
			MaxRetries:         h.MaxRetries,
			InsecureSkipVerify: h.InsecureSkipVerify,
		})
		return httpds.NewSource(c, h.URL), nil
	default:
		return nil, fmt.Errorf("unsupported source.kind=%s", s.Kind)
	}
}

// openSource opens the pipeline's dataset once.
func openSource(ctx context.Context, p config.Pipeline) (io.ReadCloser, error) {
	src, err := newSource(p.Source)
	if err != nil {
		return nil, err
	}
	return src.Open(ctx)
}

// step times fn and reports it as a pipeline step.
func step(job, name string, fn func() error) error {
	start := nowFn()
	err := fn()
	metrics.RecordStep(job, name, err, nowFn().Sub(start))
	return err
}

// writeFile creates path and fills it with write. A failed write removes the
// partial file.
func writeFile(path string, write func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			_ = os.Remove(path)
		}
	}()
	return write(f)
}
