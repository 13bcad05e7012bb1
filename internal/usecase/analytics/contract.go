package analytics

import (
	"context"
	"time"

	domparam "github.com/kailas-cloud/docstats/internal/domain/param"
)

// ParamReader looks named parameters up by exact name.
type ParamReader interface {
	Get(ctx context.Context, name string) (domparam.Value, error)
}

// DocumentReader runs the two analytic queries against the document index.
type DocumentReader interface {
	CountByAuthor(ctx context.Context, index, author string) (int, error)
	TimestampsSince(ctx context.Context, index string, cutoff time.Time, pageSize int) ([]int64, error)
}
