// Package config provides configuration models and helpers for chart
// pipelines.
//
// This file holds a small linter for Pipeline values. It performs static
// checks over a decoded Pipeline and returns issues (errors and warnings) that
// the CLI prints before running.
package config

import (
	"fmt"
	"strings"
)

// IssueSeverity represents the severity of a configuration issue.
type IssueSeverity string

const (
	// SeverityError blocks execution.
	SeverityError IssueSeverity = "error"
	// SeverityWarning is surfaced but does not block execution.
	SeverityWarning IssueSeverity = "warning"
)

// Issue describes a single validation finding. Path is a dotted path into the
// config (e.g. "source.file.path", "charts[1].kind").
type Issue struct {
	Severity IssueSeverity
	Path     string
	Message  string
}

func (i Issue) Error() string {
	return fmt.Sprintf("%s at %s: %s", i.Severity, i.Path, i.Message)
}

// HasErrors reports whether any issue has SeverityError.
func HasErrors(issues []Issue) bool {
	for _, iss := range issues {
		if iss.Severity == SeverityError {
			return true
		}
	}
	return false
}

// ValidatePipeline lints p without mutating it.
func ValidatePipeline(p Pipeline) []Issue {
	var issues []Issue

	if strings.TrimSpace(p.Job) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "job",
			Message:  "job must not be empty; it labels logs and metrics for the run",
		})
	}
	issues = append(issues, validateSource(p.Source)...)
	issues = append(issues, validateParser(p.Parser)...)
	issues = append(issues, validateTransforms(p.Transform)...)
	issues = append(issues, validateFilter(p.Filter)...)
	issues = append(issues, validateCharts(p.Charts)...)

	return issues
}

func validateSource(s Source) []Issue {
	var issues []Issue

	if strings.TrimSpace(s.Kind) == "" {
		return append(issues, Issue{
			Severity: SeverityError,
			Path:     "source.kind",
			Message:  "source.kind must not be empty",
		})
	}

	switch s.Kind {
	case "file":
		if strings.TrimSpace(s.File.Path) == "" {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     "source.file.path",
				Message:  "file source requires a non-empty path",
			})
		}
	case "http":
		u := strings.TrimSpace(s.HTTP.URL)
		if u == "" {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     "source.http.url",
				Message:  "http source requires a non-empty url",
			})
		} else if !strings.HasPrefix(u, "http://") && !strings.HasPrefix(u, "https://") {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     "source.http.url",
				Message:  fmt.Sprintf("url %q must start with http:// or https://", u),
			})
		}
		if s.HTTP.MaxRetries < 0 {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     "source.http.max_retries",
				Message:  "max_retries must not be negative",
			})
		}
		if s.HTTP.InsecureSkipVerify {
			issues = append(issues, Issue{
				Severity: SeverityWarning,
				Path:     "source.http.insecure_skip_verify",
				Message:  "TLS verification is disabled",
			})
		}
	default:
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "source.kind",
			Message:  fmt.Sprintf("unknown source kind %q (want file or http)", s.Kind),
		})
	}

	return issues
}

func validateParser(p Parser) []Issue {
	var issues []Issue

	// An empty kind defaults to csv.
	if p.Kind != "" && p.Kind != "csv" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "parser.kind",
			Message:  fmt.Sprintf("unknown parser kind %q; only csv is supported", p.Kind),
		})
	}
	if v, ok := p.Options["comma"]; ok {
		s, isStr := v.(string)
		if !isStr || len([]rune(s)) != 1 {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     "parser.options.comma",
				Message:  "comma must be a single character string",
			})
		}
	}

	return issues
}

func validateTransforms(ts []Transform) []Issue {
	var issues []Issue

	for i, t := range ts {
		path := fmt.Sprintf("transform[%d]", i)
		switch t.Kind {
		case "normalize":
		case "dedupe":
			if len(t.Options.StringSlice("keys")) == 0 {
				issues = append(issues, Issue{
					Severity: SeverityError,
					Path:     path + ".options.keys",
					Message:  "dedupe requires at least one key field",
				})
			}
			switch t.Options.String("policy", "keep-first") {
			case "keep-first", "keep-last":
			default:
				issues = append(issues, Issue{
					Severity: SeverityError,
					Path:     path + ".options.policy",
					Message:  "policy must be keep-first or keep-last",
				})
			}
		case "":
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     path + ".kind",
				Message:  "transform kind must not be empty",
			})
		default:
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     path + ".kind",
				Message:  fmt.Sprintf("unknown transform kind %q", t.Kind),
			})
		}
	}

	return issues
}

func validateFilter(f Filter) []Issue {
	from, to := f.Window()
	if from > to {
		return []Issue{{
			Severity: SeverityError,
			Path:     "filter",
			Message:  fmt.Sprintf("year_from=%d is after year_to=%d; nothing would pass", from, to),
		}}
	}
	return nil
}

func validateCharts(cs []Chart) []Issue {
	var issues []Issue

	if len(cs) == 0 {
		return append(issues, Issue{
			Severity: SeverityError,
			Path:     "charts",
			Message:  "at least one chart is required",
		})
	}

	seen := make(map[string]int, len(cs))
	for i, c := range cs {
		path := fmt.Sprintf("charts[%d]", i)
		switch c.Kind {
		case "bar", "line", "scatter":
		default:
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     path + ".kind",
				Message:  fmt.Sprintf("unknown chart kind %q (want bar, line or scatter)", c.Kind),
			})
		}
		if c.Width < 0 || c.Height < 0 {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     path,
				Message:  "width and height must not be negative",
			})
		}
		if c.TopN < 0 {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     path + ".top_n",
				Message:  "top_n must not be negative",
			})
		}
		if c.TopN > 0 && c.Kind != "scatter" {
			issues = append(issues, Issue{
				Severity: SeverityWarning,
				Path:     path + ".top_n",
				Message:  fmt.Sprintf("top_n is ignored for %s charts", c.Kind),
			})
		}
		stem := c.FileStem()
		if j, dup := seen[stem]; dup {
			issues = append(issues, Issue{
				Severity: SeverityError,
				Path:     path + ".name",
				Message:  fmt.Sprintf("output name %q already used by charts[%d]", stem, j),
			})
			continue
		}
		seen[stem] = i
	}

	return issues
}
