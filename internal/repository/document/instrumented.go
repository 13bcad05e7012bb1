package document

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/docstats/internal/metrics"
)

// Query labels recorded in store metrics.
const (
	queryCountByAuthor   = "count_by_author"
	queryTimestampsSince = "timestamps_since"
)

// reader is the subset of Repo the analytics queries go through.
type reader interface {
	CountByAuthor(ctx context.Context, index, author string) (int, error)
	TimestampsSince(ctx context.Context, index string, cutoff time.Time, pageSize int) ([]int64, error)
}

// InstrumentedRepo wraps the analytic read path with Prometheus metrics and debug logging.
type InstrumentedRepo struct {
	inner  reader
	logger *zap.Logger
}

// NewInstrumented wraps a document reader with observability.
func NewInstrumented(inner reader, logger *zap.Logger) *InstrumentedRepo {
	return &InstrumentedRepo{inner: inner, logger: logger}
}

// CountByAuthor delegates to the inner reader and records the query.
func (p *InstrumentedRepo) CountByAuthor(ctx context.Context, index, author string) (int, error) {
	start := time.Now()
	n, err := p.inner.CountByAuthor(ctx, index, author)
	p.observe(queryCountByAuthor, start, n, err)
	if err != nil {
		return 0, err
	}

	p.logger.Debug("Author count completed",
		zap.String("index", index),
		zap.String("author", author),
		zap.Int("count", n),
	)
	return n, nil
}

// TimestampsSince delegates to the inner reader and records the query.
func (p *InstrumentedRepo) TimestampsSince(
	ctx context.Context, index string, cutoff time.Time, pageSize int,
) ([]int64, error) {
	start := time.Now()
	ts, err := p.inner.TimestampsSince(ctx, index, cutoff, pageSize)
	p.observe(queryTimestampsSince, start, len(ts), err)
	if err != nil {
		return nil, err
	}

	p.logger.Debug("Date range query completed",
		zap.String("index", index),
		zap.Time("cutoff", cutoff),
		zap.Int("hits", len(ts)),
		zap.Duration("duration", time.Since(start)),
	)
	return ts, nil
}

func (p *InstrumentedRepo) observe(query string, start time.Time, hits int, err error) {
	metrics.StoreQueryDuration.WithLabelValues(query).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.StoreQueriesTotal.WithLabelValues(query, "error").Inc()
		p.logger.Error("Store query failed", zap.String("query", query), zap.Error(err))
		return
	}
	metrics.StoreQueriesTotal.WithLabelValues(query, "ok").Inc()
	metrics.StoreQueryHits.WithLabelValues(query).Observe(float64(hits))
}
