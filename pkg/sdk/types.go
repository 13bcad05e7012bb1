package docstats

import (
	"time"

	domparam "github.com/kailas-cloud/docstats/internal/domain/param"
	"github.com/kailas-cloud/docstats/internal/domain/ranking"
	"github.com/kailas-cloud/docstats/internal/usecase/seed"
)

// AuthorCount is one entry of an author ranking.
type AuthorCount struct {
	Author string
	Count  int
}

// Params is the parameter set written by Seed and read by the analytic calls.
type Params struct {
	DocCount     int
	AuthorsCount int
	IndexName    string
	Authors      []string
}

// SeedOptions controls Seed. Zero fields take the generator defaults:
// 10 documents, 10 authors, index "index-docs", dates in [2018-01-01, today).
// DocCount is a pointer so Int(0) can ask for an empty corpus.
type SeedOptions struct {
	DocCount     *int
	AuthorsCount int
	IndexName    string
	Start        time.Time
	End          time.Time
	// Seed makes a run reproducible; 0 seeds from the clock.
	Seed uint64
}

// Int returns a pointer to v, for SeedOptions.DocCount.
func Int(v int) *int { return &v }

func (o SeedOptions) toDomain() seed.Options {
	return seed.Options{
		DocCount:     o.DocCount,
		AuthorsCount: o.AuthorsCount,
		IndexName:    o.IndexName,
		Start:        o.Start,
		End:          o.End,
		Seed:         o.Seed,
	}
}

func paramsFromDomain(s domparam.Set) Params {
	return Params{
		DocCount:     s.DocCount,
		AuthorsCount: s.AuthorsCount,
		IndexName:    s.IndexName,
		Authors:      append([]string(nil), s.Authors...),
	}
}

func rankingFromDomain(r ranking.Ranking) []AuthorCount {
	out := make([]AuthorCount, len(r))
	for i, e := range r {
		out[i] = AuthorCount{Author: e.Author, Count: e.Count}
	}
	return out
}
