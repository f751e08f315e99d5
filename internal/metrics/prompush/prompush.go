// Package prompush implements a Prometheus Pushgateway backend for the
// metrics package.
//
// The chart tool is a short-lived batch process, so instead of exposing a
// scrape endpoint it pushes its registry to a Pushgateway once at exit. The
// pipeline job name is the Pushgateway grouping key; step, status, kind and
// chart become Prometheus labels.
package prompush

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"

	"moviecharts/internal/metrics"
)

// Backend is a Prometheus Pushgateway metrics backend.
type Backend struct {
	gatewayURL string // e.g. http://pushgateway:9091
	jobName    string // Pushgateway "job" group
	reg        *prometheus.Registry

	stepCounter   *prometheus.CounterVec // moviecharts_step_total
	stepDuration  *prometheus.SummaryVec // moviecharts_step_duration_seconds
	recordCounter *prometheus.CounterVec // moviecharts_records_total
	chartCounter  *prometheus.CounterVec // moviecharts_charts_total
	chartRows     *prometheus.GaugeVec   // moviecharts_chart_rows
}

// NewBackend constructs a Prometheus Pushgateway backend.
// jobName: the Pushgateway "job" name (usually the pipeline job).
// gatewayURL: base URL of the Pushgateway server.
func NewBackend(jobName, gatewayURL string) (*Backend, error) {
	if gatewayURL == "" {
		return nil, fmt.Errorf("prompush: gateway URL is required")
	}
	if jobName == "" {
		jobName = "moviecharts"
	}

	reg := prometheus.NewRegistry()

	stepCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: metrics.StepTotal,
			Help: "Total number of pipeline step executions, partitioned by step and status.",
		},
		[]string{"step", "status"},
	)
	stepDuration := prometheus.NewSummaryVec(
		prometheus.SummaryOpts{
			Name:       metrics.StepDuration,
			Help:       "Duration of pipeline steps in seconds, partitioned by step and status.",
			Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.99: 0.001},
		},
		[]string{"step", "status"},
	)
	recordCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: metrics.RecordsTotal,
			Help: "Record-level counts per kind (read, loaded, kept, filtered, ...).",
		},
		[]string{"kind"},
	)
	chartCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: metrics.ChartsTotal,
			Help: "Charts rendered, partitioned by chart output name.",
		},
		[]string{"chart"},
	)
	chartRows := prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: metrics.ChartRows,
			Help: "Summary rows behind the most recently rendered chart.",
		},
		[]string{"chart"},
	)

	for _, c := range []struct {
		what string
		col  prometheus.Collector
	}{
		{"step counter", stepCounter},
		{"step summary", stepDuration},
		{"record counter", recordCounter},
		{"chart counter", chartCounter},
		{"chart rows", chartRows},
	} {
		if err := reg.Register(c.col); err != nil {
			return nil, fmt.Errorf("prompush: register %s: %w", c.what, err)
		}
	}

	return &Backend{
		gatewayURL:    gatewayURL,
		jobName:       jobName,
		reg:           reg,
		stepCounter:   stepCounter,
		stepDuration:  stepDuration,
		recordCounter: recordCounter,
		chartCounter:  chartCounter,
		chartRows:     chartRows,
	}, nil
}

func (b *Backend) IncCounter(name string, delta float64, labels metrics.Labels) {
	switch name {
	case metrics.StepTotal:
		if b.stepCounter == nil {
			return
		}
		b.stepCounter.WithLabelValues(labels["step"], labels["status"]).Add(delta)

	case metrics.RecordsTotal:
		if b.recordCounter == nil {
			return
		}
		b.recordCounter.WithLabelValues(labels["kind"]).Add(delta)

	case metrics.ChartsTotal:
		if b.chartCounter == nil {
			return
		}
		b.chartCounter.WithLabelValues(labels["chart"]).Add(delta)

	default:
		// unknown metric name: ignore
	}
}

func (b *Backend) ObserveHistogram(name string, value float64, labels metrics.Labels) {
	switch name {
	case metrics.StepDuration:
		if b.stepDuration == nil {
			return
		}
		b.stepDuration.WithLabelValues(labels["step"], labels["status"]).Observe(value)

	case metrics.ChartRows:
		if b.chartRows == nil {
			return
		}
		b.chartRows.WithLabelValues(labels["chart"]).Set(value)
	}
}

// Flush pushes the current registry to the Pushgateway.
func (b *Backend) Flush() error {
	return push.New(b.gatewayURL, b.jobName).
		Gatherer(b.reg).
		Push()
}
