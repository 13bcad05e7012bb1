package seed

import (
	"errors"
	"fmt"
	"time"
)

// Defaults applied by Options.ApplyDefaults.
const (
	DefaultDocCount     = 10
	DefaultAuthorsCount = 10
	DefaultIndexName    = "index-docs"
	DefaultBatchSize    = 500
)

// DefaultStart is the first day documents may be dated.
var DefaultStart = time.Date(2018, time.January, 1, 0, 0, 0, 0, time.Local)

// Options controls a seeding run.
type Options struct {
	// DocCount nil selects DefaultDocCount; zero seeds an empty corpus.
	DocCount     *int
	AuthorsCount int
	IndexName    string
	// Documents are dated on a random day in [Start, End).
	Start time.Time
	End   time.Time
	// Seed makes a run reproducible; 0 seeds from the clock.
	Seed      uint64
	BatchSize int
}

// ApplyDefaults fills unset fields. now is used for the default End.
func (o *Options) ApplyDefaults(now time.Time) {
	if o.DocCount == nil {
		n := DefaultDocCount
		o.DocCount = &n
	}
	if o.AuthorsCount == 0 {
		o.AuthorsCount = DefaultAuthorsCount
	}
	if o.IndexName == "" {
		o.IndexName = DefaultIndexName
	}
	if o.Start.IsZero() {
		o.Start = DefaultStart
	}
	if o.End.IsZero() {
		o.End = now
	}
	if o.BatchSize <= 0 {
		o.BatchSize = DefaultBatchSize
	}
}

// Validate checks option consistency.
func (o *Options) Validate() error {
	if o.DocCount == nil {
		return errors.New("doc count is required")
	}
	if *o.DocCount < 0 {
		return fmt.Errorf("doc count must be non-negative, got %d", *o.DocCount)
	}
	if o.AuthorsCount <= 0 {
		return fmt.Errorf("authors count must be positive, got %d", o.AuthorsCount)
	}
	if o.IndexName == "" {
		return errors.New("index name is required")
	}
	if intervalDays(o.Start, o.End) <= 0 {
		return fmt.Errorf("end %s must be at least one day after start %s",
			o.End.Format(time.DateOnly), o.Start.Format(time.DateOnly))
	}
	return nil
}

// intervalDays counts calendar days in [start, end), both truncated to their date.
func intervalDays(start, end time.Time) int {
	s := midnight(start)
	e := midnight(end.In(start.Location()))
	return int(e.Sub(s).Hours()/24 + 0.5)
}

func midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
