package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"moviecharts/internal/aggregate"
	"moviecharts/internal/config"
	"moviecharts/internal/metrics"
	"moviecharts/internal/metrics/datadog"
	"moviecharts/internal/metrics/prompush"
)

// main loads the pipeline config, optionally initializes a metrics backend,
// and renders every configured chart.
func main() {
	var (
		cfgPath           string
		dataFlg           string
		outFlg            string
		chartFlg          string
		metricsBackendFlg string
		pushGatewayURLFlg string
		datadogAddrFlg    string
		validate          bool
	)

	flag.StringVar(&cfgPath, "config", "configs/pipelines/movies.json", "pipeline config JSON path")
	flag.StringVar(&dataFlg, "data", "", "dataset path or http(s) URL (overrides source in config)")
	flag.StringVar(&outFlg, "out", "", "output directory (overrides output.dir in config)")
	flag.StringVar(&chartFlg, "chart", "", "render only charts of this kind (bar, line, scatter)")
	flag.StringVar(&metricsBackendFlg, "metrics-backend", "", "metrics backend to use: pushgateway, datadog, none (overrides env METRICS_BACKEND)")
	flag.StringVar(&pushGatewayURLFlg, "pushgateway-url", "", "Pushgateway base URL (overrides env PUSHGATEWAY_URL)")
	flag.StringVar(&datadogAddrFlg, "datadog-addr", "", "DogStatsD address (overrides env DATADOG_ADDR)")
	flag.BoolVar(&validate, "validate", false, "validate the configuration and exit")
	verbose := flag.Bool("v", false, "enable verbose logs")

	flag.Parse()

	// A missing .env is normal; anything else is worth a line in the log.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("env: load .env: %v", err)
	}

	p, err := loadPipeline(cfgPath)
	if err != nil {
		fatalf("%v", err)
	}
	applyOverrides(&p, dataFlg, outFlg)
	var only aggregate.Kind
	if chartFlg != "" {
		if only, err = aggregate.ParseKind(chartFlg); err != nil {
			fatalf("-chart: %v", err)
		}
	}

	issues := config.ValidatePipeline(p)
	for _, iss := range issues {
		fmt.Fprintf(os.Stderr, "%s: %s: %s\n", iss.Severity, iss.Path, iss.Message)
	}
	if config.HasErrors(issues) {
		log.Printf("Configuration is invalid: %v", cfgPath)
		os.Exit(1)
	}
	if validate {
		log.Printf("Configuration is valid: %v", cfgPath)
		os.Exit(0)
	}

	runID := uuid.NewString()
	flush := setupMetrics(p.Job, firstNonEmpty(metricsBackendFlg, os.Getenv("METRICS_BACKEND")),
		firstNonEmpty(pushGatewayURLFlg, os.Getenv("PUSHGATEWAY_URL"), "http://localhost:9091"),
		firstNonEmpty(datadogAddrFlg, os.Getenv("DATADOG_ADDR"), "127.0.0.1:8125"),
		*verbose)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	start := time.Now()

	log.Printf("run: id=%s job=%s source=%s", runID, p.Job, p.Source.Kind)
	sum, err := run(ctx, p, runOptions{Only: only, Verbose: *verbose})
	stop()
	flush()
	if err != nil {
		log.Printf("run: id=%s failed: %v", runID, err)
		os.Exit(1)
	}

	log.Printf("run: id=%s read=%d loaded=%d kept=%d charts=%d elapsed=%s",
		runID, sum.Read, sum.Loaded, sum.Kept, len(sum.Charts), time.Since(start).Truncate(time.Millisecond))
}

// loadPipeline decodes the pipeline JSON at path.
func loadPipeline(path string) (config.Pipeline, error) {
	var p config.Pipeline
	f, err := os.Open(path)
	if err != nil {
		return p, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	if err := json.NewDecoder(f).Decode(&p); err != nil {
		return p, fmt.Errorf("decode config %s: %w", path, err)
	}
	return p, nil
}

// applyOverrides folds the -data and -out flags into p. A -data value that
// looks like a URL switches the source to http.
func applyOverrides(p *config.Pipeline, data, out string) {
	if data != "" {
		if strings.HasPrefix(data, "http://") || strings.HasPrefix(data, "https://") {
			p.Source.Kind = "http"
			p.Source.HTTP.URL = data
		} else {
			p.Source.Kind = "file"
			p.Source.File.Path = data
		}
	}
	if out != "" {
		p.Output.Dir = out
	}
}

// setupMetrics installs the selected backend and returns a func that flushes
// it. Backend failures only disable metrics; they never stop the run.
func setupMetrics(job, backendName, gwURL, ddAddr string, verbose bool) (flush func()) {
	flush = func() {}
	if job == "" {
		job = "moviecharts"
	}

	var (
		b   metrics.Backend
		err error
	)
	switch backendName {
	case "pushgateway":
		b, err = prompush.NewBackend(job, gwURL)
		if err == nil {
			log.Printf("metrics: backend=%s url=%s job_name=%s", backendName, gwURL, job)
		}
	case "datadog":
		b, err = datadog.NewBackend(datadog.Config{
			Addr:       ddAddr,
			Namespace:  "moviecharts.",
			GlobalTags: []string{"job:" + job},
		})
		if err == nil {
			log.Printf("metrics: backend=%s addr=%s", backendName, ddAddr)
		}
	case "", "none":
		if verbose {
			log.Printf("metrics: disabled (backend=%q)", backendName)
		}
		return flush
	default:
		log.Printf("metrics: unknown backend %q; metrics disabled", backendName)
		return flush
	}
	if err != nil {
		log.Printf("metrics: failed to init %s backend: %v; using nop", backendName, err)
		return flush
	}

	metrics.SetBackend(b)
	return func() {
		if err := metrics.Flush(); err != nil {
			log.Printf("metrics: flush error: %v", err)
		}
	}
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

func fatalf(format string, a ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", a...)
	os.Exit(1)
}
