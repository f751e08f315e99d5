// Package transformer runs ordered, whole-slice transforms over loaded movie
// records. Every transform returns a new slice and leaves its input intact.
package transformer

import (
	"fmt"

	"moviecharts/internal/config"
	"moviecharts/internal/movie"
	"moviecharts/internal/transformer/builtin"
)

// Transformer maps a batch of records to a new batch.
type Transformer interface {
	Apply([]movie.Record) []movie.Record
}

// Chain is an ordered list of transformers.
type Chain []Transformer

// Apply runs each transformer in order.
func (c Chain) Apply(in []movie.Record) []movie.Record {
	out := in
	for _, t := range c {
		out = t.Apply(out)
	}
	return out
}

// FromConfig builds the pre-filter chain from the pipeline's transform list.
func FromConfig(ts []config.Transform) (Chain, error) {
	chain := make(Chain, 0, len(ts))
	for i, t := range ts {
		switch t.Kind {
		case "normalize":
			chain = append(chain, builtin.Normalize{
				FoldAccents: t.Options.Bool("fold_accents", false),
			})
		case "dedupe":
			keys := t.Options.StringSlice("keys")
			if len(keys) == 0 {
				return nil, fmt.Errorf("transform[%d]: dedupe needs keys", i)
			}
			for _, k := range keys {
				if !builtin.IsDedupKey(k) {
					return nil, fmt.Errorf("transform[%d]: unsupported dedupe key %q", i, k)
				}
			}
			chain = append(chain, builtin.DeDup{
				Keys:   keys,
				Policy: t.Options.String("policy", builtin.KeepFirst),
			})
		default:
			return nil, fmt.Errorf("transform[%d]: unknown kind %q", i, t.Kind)
		}
	}
	return chain, nil
}
