// Package analytics answers author rankings and creation-date listings over
// the seeded documents.
package analytics

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/kailas-cloud/docstats/internal/domain"
	domparam "github.com/kailas-cloud/docstats/internal/domain/param"
	"github.com/kailas-cloud/docstats/internal/domain/ranking"
	"github.com/kailas-cloud/docstats/internal/domain/window"
)

const argN = "n"

// Service holds the parameter snapshot read at construction and queries documents per call.
type Service struct {
	docs        DocumentReader
	params      domparam.Set
	concurrency int
	pageSize    int
	now         func() time.Time
	loc         *time.Location
}

// New loads the parameter snapshot and creates the analytics service.
// Any absent parameter fails with *domain.MissingParameterError.
func New(ctx context.Context, params ParamReader, docs DocumentReader) (*Service, error) {
	set, err := LoadParams(ctx, params)
	if err != nil {
		return nil, err
	}
	return &Service{
		docs:        docs,
		params:      set,
		concurrency: 1,
		now:         time.Now,
		loc:         time.Local,
	}, nil
}

// WithConcurrency bounds the number of in-flight per-author count queries.
func (s *Service) WithConcurrency(n int) *Service {
	if n > 0 {
		s.concurrency = n
	}
	return s
}

// WithPageSize sets the page size of the date range query.
func (s *Service) WithPageSize(n int) *Service {
	if n > 0 {
		s.pageSize = n
	}
	return s
}

// WithClock overrides the time source and the location calendar dates are computed in.
func (s *Service) WithClock(now func() time.Time, loc *time.Location) *Service {
	if now != nil {
		s.now = now
	}
	if loc != nil {
		s.loc = loc
	}
	return s
}

// Params returns the cached parameter snapshot.
func (s *Service) Params() domparam.Set {
	set := s.params
	set.Authors = append([]string(nil), s.params.Authors...)
	return set
}

// LoadParams reads doc_count, authors_count, index_name and authors_list.
func LoadParams(ctx context.Context, params ParamReader) (domparam.Set, error) {
	var set domparam.Set

	v, err := params.Get(ctx, domparam.DocCount)
	if err != nil {
		return set, fmt.Errorf("load %s: %w", domparam.DocCount, err)
	}
	if set.DocCount, err = v.AsInt(); err != nil {
		return set, fmt.Errorf("load %s: %w", domparam.DocCount, err)
	}

	if v, err = params.Get(ctx, domparam.AuthorsCount); err != nil {
		return set, fmt.Errorf("load %s: %w", domparam.AuthorsCount, err)
	}
	if set.AuthorsCount, err = v.AsInt(); err != nil {
		return set, fmt.Errorf("load %s: %w", domparam.AuthorsCount, err)
	}

	if v, err = params.Get(ctx, domparam.IndexName); err != nil {
		return set, fmt.Errorf("load %s: %w", domparam.IndexName, err)
	}
	if set.IndexName, err = v.AsString(); err != nil {
		return set, fmt.Errorf("load %s: %w", domparam.IndexName, err)
	}

	if v, err = params.Get(ctx, domparam.AuthorsList); err != nil {
		return set, fmt.Errorf("load %s: %w", domparam.AuthorsList, err)
	}
	if set.Authors, err = v.AsStringList(); err != nil {
		return set, fmt.Errorf("load %s: %w", domparam.AuthorsList, err)
	}

	return set, nil
}

// TopAuthors ranks roster authors by their number of texts and returns the first n.
// n must lie in [0, len(roster)].
func (s *Service) TopAuthors(ctx context.Context, n int) (ranking.Ranking, error) {
	roster := s.params.Authors
	if n < 0 || n > len(roster) {
		return nil, domain.NewInvalidArgument(argN, n, len(roster))
	}

	counts := make([]int, len(roster))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, author := range roster {
		g.Go(func() error {
			c, err := s.docs.CountByAuthor(gctx, s.params.IndexName, author)
			if err != nil {
				return err
			}
			counts[i] = c
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("count texts per author: %w", err)
	}

	byAuthor := make(map[string]int, len(roster))
	for i, author := range roster {
		byAuthor[author] = counts[i]
	}
	return ranking.Rank(roster, byAuthor).Top(n), nil
}

// CreationDates lists the creation dates of documents dated within the last n
// calendar months, most recent first. One entry per document.
func (s *Service) CreationDates(ctx context.Context, n int) ([]string, error) {
	if n < 0 {
		return nil, domain.NewInvalidArgument(argN, n, -1)
	}

	cutoff := window.MonthsBefore(s.now().In(s.loc), n)
	stamps, err := s.docs.TimestampsSince(ctx, s.params.IndexName, cutoff, s.pageSize)
	if err != nil {
		return nil, fmt.Errorf("dates since %s: %w", cutoff.Format(window.DateLayout), err)
	}
	return window.Dates(stamps, s.loc), nil
}
