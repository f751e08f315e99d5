// Package datasource defines how the pipeline acquires its input bytes.
package datasource

import (
	"context"
	"io"
)

// Source opens the dataset for a single read. Callers own the returned
// ReadCloser and must close it once the dataset is fully consumed.
type Source interface {
	Open(ctx context.Context) (io.ReadCloser, error)
}
