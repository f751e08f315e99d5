// Package metrics provides a small, backend-agnostic abstraction for recording
// operational metrics from the chart pipeline.
//
// It exposes a narrow interface (Backend) for counters and timing data and a
// global, pluggable backend that defaults to a no-op implementation, so
// metrics are always safe to call even when nothing is configured. Concrete
// systems (Prometheus Pushgateway, Datadog) live in subpackages.
package metrics

import "time"

// Metric names emitted by the helpers below.
const (
	StepTotal    = "moviecharts_step_total"
	StepDuration = "moviecharts_step_duration_seconds"
	RecordsTotal = "moviecharts_records_total"
	ChartsTotal  = "moviecharts_charts_total"
	ChartRows    = "moviecharts_chart_rows"
)

// Labels are string key/value pairs attached to a metric.
type Labels map[string]string

// Backend is the minimal interface for metrics backends.
type Backend interface {
	// IncCounter increments a counter by delta.
	IncCounter(name string, delta float64, labels Labels)
	// ObserveHistogram records a value in a distribution style metric.
	ObserveHistogram(name string, value float64, labels Labels)
	// Flush pushes or flushes metrics, if the backend needs it (e.g. Pushgateway).
	Flush() error
}

// nopBackend is used by default so metrics are optional.
type nopBackend struct{}

func (nopBackend) IncCounter(name string, delta float64, labels Labels)       {}
func (nopBackend) ObserveHistogram(name string, value float64, labels Labels) {}
func (nopBackend) Flush() error                                               { return nil }

var backend Backend = nopBackend{}

// Nop returns the backend that discards everything, which is the default.
func Nop() Backend { return nopBackend{} }

// SetBackend installs a concrete backend. Passing nil keeps the existing backend.
func SetBackend(b Backend) {
	if b == nil {
		return
	}
	backend = b
}

// Flush delegates to the current backend.
func Flush() error {
	return backend.Flush()
}

// RecordStep measures latency and success/failure of one pipeline step
// (fetch, parse, load, transform, filter, aggregate, render).
func RecordStep(job, step string, err error, d time.Duration) {
	status := "success"
	if err != nil {
		status = "failure"
	}

	lbls := Labels{
		"job":    job,
		"step":   step,
		"status": status,
	}

	backend.IncCounter(StepTotal, 1, lbls)
	backend.ObserveHistogram(StepDuration, d.Seconds(), lbls)
}

// RecordRow increments a record-level counter for the given job and kind.
//
// Kinds used by the pipeline:
//   - "read"              raw CSV rows
//   - "loaded"            typed records
//   - "transform_dropped" records dropped by the transform chain
//   - "kept"              records passing the validity filter
//   - "filtered"          records rejected by the validity filter
func RecordRow(job, kind string, delta int64) {
	if delta <= 0 {
		return
	}
	backend.IncCounter(RecordsTotal, float64(delta), Labels{
		"job":  job,
		"kind": kind,
	})
}

// RecordChart counts a rendered chart and records how many summary rows it
// was drawn from.
func RecordChart(job, chart string, rows int) {
	lbls := Labels{
		"job":   job,
		"chart": chart,
	}
	backend.IncCounter(ChartsTotal, 1, lbls)
	backend.ObserveHistogram(ChartRows, float64(rows), lbls)
}
