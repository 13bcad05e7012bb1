// Package seed fills the store with synthetic documents and the parameter set
// the analytics service reads at startup.
package seed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kailas-cloud/docstats/internal/domain"
	domdoc "github.com/kailas-cloud/docstats/internal/domain/document"
	domparam "github.com/kailas-cloud/docstats/internal/domain/param"
)

// Service recreates both indexes and writes random documents.
type Service struct {
	docs   DocumentWriter
	params ParamWriter
	logger *zap.Logger
	newID  func() string
	now    func() time.Time
}

// New creates a seed service.
func New(docs DocumentWriter, params ParamWriter, logger *zap.Logger) *Service {
	return &Service{
		docs:   docs,
		params: params,
		logger: logger,
		newID:  uuid.NewString,
		now:    time.Now,
	}
}

// Run wipes previous data and seeds a fresh data set. It returns the parameter set written.
func (s *Service) Run(ctx context.Context, opts Options) (domparam.Set, error) {
	opts.ApplyDefaults(s.now())
	if err := opts.Validate(); err != nil {
		return domparam.Set{}, fmt.Errorf("seed options: %w", err)
	}

	seed := opts.Seed
	if seed == 0 {
		seed = uint64(s.now().UnixNano())
	}
	gen := newGenerator(seed)

	if err := s.reset(ctx, opts.IndexName); err != nil {
		return domparam.Set{}, err
	}

	authors := gen.distinctNames(opts.AuthorsCount)
	if err := s.params.Put(ctx, domparam.AuthorsList, domparam.StringList(authors)); err != nil {
		return domparam.Set{}, fmt.Errorf("write authors list: %w", err)
	}
	s.logger.Debug("Generated authors", zap.Strings("authors", authors))

	if err := s.writeDocuments(ctx, gen, opts, authors); err != nil {
		return domparam.Set{}, err
	}

	set := domparam.Set{
		DocCount:     *opts.DocCount,
		AuthorsCount: opts.AuthorsCount,
		IndexName:    opts.IndexName,
		Authors:      authors,
	}
	if err := s.writeParams(ctx, set); err != nil {
		return domparam.Set{}, err
	}

	s.logger.Info("Seed completed",
		zap.Int("doc_count", set.DocCount),
		zap.Int("authors_count", set.AuthorsCount),
		zap.String("index_name", set.IndexName),
		zap.String("start", opts.Start.Format(time.DateOnly)),
		zap.String("end", opts.End.Format(time.DateOnly)),
	)
	return set, nil
}

// reset drops the document index of the previous run as well, so no stale
// index keeps covering the document key prefix under another name.
func (s *Service) reset(ctx context.Context, index string) error {
	prev, err := s.previousIndex(ctx)
	if err != nil {
		return err
	}
	if prev != "" && prev != index {
		s.logger.Info("Dropping previous document index", zap.String("index_name", prev))
		if err := s.docs.Reset(ctx, prev); err != nil {
			return fmt.Errorf("reset previous documents: %w", err)
		}
	}

	if err := s.docs.Reset(ctx, index); err != nil {
		return fmt.Errorf("reset documents: %w", err)
	}
	if err := s.params.Reset(ctx); err != nil {
		return fmt.Errorf("reset parameters: %w", err)
	}
	if err := s.docs.EnsureIndex(ctx, index); err != nil {
		return fmt.Errorf("create document index: %w", err)
	}
	if err := s.params.EnsureIndex(ctx); err != nil {
		return fmt.Errorf("create parameter index: %w", err)
	}
	return nil
}

// previousIndex returns the index name recorded by the last run, or "" when
// there is none or it cannot be decoded.
func (s *Service) previousIndex(ctx context.Context) (string, error) {
	v, err := s.params.Lookup(ctx, domparam.IndexName)
	switch {
	case errors.Is(err, domain.ErrMissingParameter):
		return "", nil
	case errors.Is(err, domain.ErrInvalidParameter):
		s.logger.Warn("Ignoring unreadable previous index name", zap.Error(err))
		return "", nil
	case err != nil:
		return "", fmt.Errorf("read previous index name: %w", err)
	}

	name, err := v.AsString()
	if err != nil {
		s.logger.Warn("Ignoring unreadable previous index name", zap.Error(err))
		return "", nil
	}
	return name, nil
}

func (s *Service) writeDocuments(ctx context.Context, gen *generator, opts Options, authors []string) error {
	start := midnight(opts.Start)
	days := intervalDays(opts.Start, opts.End)

	batch := make([]domdoc.Document, 0, min(opts.BatchSize, *opts.DocCount))
	for i := range *opts.DocCount {
		// AddDate keeps local midnight across DST changes.
		date := start.AddDate(0, 0, gen.rng.IntN(days))
		doc, err := domdoc.New(s.newID(), authors[gen.rng.IntN(len(authors))], gen.paragraph(), date)
		if err != nil {
			return fmt.Errorf("generate document %d: %w", i, err)
		}
		batch = append(batch, doc)

		if len(batch) == opts.BatchSize {
			if err := s.docs.InsertBatch(ctx, batch); err != nil {
				return fmt.Errorf("write documents: %w", err)
			}
			batch = batch[:0]
		}
	}
	if err := s.docs.InsertBatch(ctx, batch); err != nil {
		return fmt.Errorf("write documents: %w", err)
	}
	return nil
}

func (s *Service) writeParams(ctx context.Context, set domparam.Set) error {
	params := []struct {
		name  string
		value domparam.Value
	}{
		{domparam.DocCount, domparam.Int(set.DocCount)},
		{domparam.AuthorsCount, domparam.Int(set.AuthorsCount)},
		{domparam.IndexName, domparam.String(set.IndexName)},
	}
	for _, p := range params {
		if err := s.params.Put(ctx, p.name, p.value); err != nil {
			return fmt.Errorf("write %s: %w", p.name, err)
		}
	}
	return nil
}
