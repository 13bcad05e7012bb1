package seed

import (
	"context"

	domdoc "github.com/kailas-cloud/docstats/internal/domain/document"
	domparam "github.com/kailas-cloud/docstats/internal/domain/param"
)

// DocumentWriter recreates the document index and stores generated documents.
type DocumentWriter interface {
	Reset(ctx context.Context, index string) error
	EnsureIndex(ctx context.Context, index string) error
	InsertBatch(ctx context.Context, docs []domdoc.Document) error
}

// ParamWriter recreates the parameter index and stores named parameters.
// Lookup reads a stored parameter without going through the index.
type ParamWriter interface {
	Lookup(ctx context.Context, name string) (domparam.Value, error)
	Reset(ctx context.Context) error
	EnsureIndex(ctx context.Context) error
	Put(ctx context.Context, name string, v domparam.Value) error
}
