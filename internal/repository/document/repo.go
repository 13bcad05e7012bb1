package document

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/kailas-cloud/docstats/internal/db"
	domdoc "github.com/kailas-cloud/docstats/internal/domain/document"
	"github.com/kailas-cloud/docstats/internal/domain/search/filter"
)

// DefaultPageSize is used by TimestampsSince when the caller passes a non-positive page size.
const DefaultPageSize = 1000

// deleteChunk bounds the number of keys per DEL command.
const deleteChunk = 500

// store is the consumer interface for documents (ISP).
type store interface {
	HSetMulti(ctx context.Context, items []db.HashSetItem) error
	Del(ctx context.Context, keys ...string) error
	Scan(ctx context.Context, pattern string) ([]string, error)
	CreateIndex(ctx context.Context, def *db.IndexDefinition) error
	DropIndex(ctx context.Context, name string) error
	SearchList(ctx context.Context, q *db.ListQuery) (*db.SearchResult, error)
	SearchCount(ctx context.Context, index string, filters filter.Expression) (int, error)
}

// Repo stores documents as hashes under <keyPrefix>docs:<id> and queries them through an FT index.
type Repo struct {
	store     store
	keyPrefix string
}

// New creates a document repository.
func New(s store, keyPrefix string) *Repo {
	return &Repo{store: s, keyPrefix: keyPrefix}
}

// EnsureIndex creates the document index if it does not exist yet.
func (r *Repo) EnsureIndex(ctx context.Context, index string) error {
	def, err := db.NewIndex(index).
		Prefix(r.docPrefix()).
		TagWithOpts(fieldAuthor, "", true).
		Text(fieldText).
		SortableNumeric(fieldDate).
		Build()
	if err != nil {
		return fmt.Errorf("build index %s: %w", index, err)
	}

	if err := r.store.CreateIndex(ctx, def); err != nil && !errors.Is(err, db.ErrIndexExists) {
		return fmt.Errorf("create index %s: %w", index, err)
	}
	return nil
}

// Reset drops the document index and deletes every stored document.
func (r *Repo) Reset(ctx context.Context, index string) error {
	if err := r.store.DropIndex(ctx, index); err != nil && !errors.Is(err, db.ErrIndexNotFound) {
		return fmt.Errorf("drop index %s: %w", index, err)
	}

	keys, err := r.store.Scan(ctx, r.docPrefix()+"*")
	if err != nil {
		return fmt.Errorf("scan documents: %w", err)
	}
	for start := 0; start < len(keys); start += deleteChunk {
		end := min(start+deleteChunk, len(keys))
		if err := r.store.Del(ctx, keys[start:end]...); err != nil {
			return fmt.Errorf("delete documents: %w", err)
		}
	}
	return nil
}

// InsertBatch writes documents in one pipelined round-trip.
func (r *Repo) InsertBatch(ctx context.Context, docs []domdoc.Document) error {
	if len(docs) == 0 {
		return nil
	}

	items := make([]db.HashSetItem, len(docs))
	for i := range docs {
		items[i] = db.HashSetItem{
			Key:    r.docKey(docs[i].ID()),
			Fields: buildHashFields(&docs[i]),
		}
	}

	if err := r.store.HSetMulti(ctx, items); err != nil {
		return fmt.Errorf("insert %d documents: %w", len(docs), err)
	}
	return nil
}

// CountByAuthor returns the number of documents whose author equals the given name exactly.
func (r *Repo) CountByAuthor(ctx context.Context, index, author string) (int, error) {
	expr, err := filter.Match(fieldAuthor, author)
	if err != nil {
		return 0, fmt.Errorf("author filter: %w", err)
	}

	n, err := r.store.SearchCount(ctx, index, expr)
	if err != nil {
		return 0, fmt.Errorf("count by author %q: %w", author, err)
	}
	return n, nil
}

// TimestampsSince returns the unix timestamps of every document dated at or after cutoff.
// Results are fetched page by page until the reported total is exhausted.
func (r *Repo) TimestampsSince(ctx context.Context, index string, cutoff time.Time, pageSize int) ([]int64, error) {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	expr, err := filter.AtLeast(fieldDate, float64(cutoff.Unix()))
	if err != nil {
		return nil, fmt.Errorf("date filter: %w", err)
	}

	var out []int64
	for offset := 0; ; offset += pageSize {
		res, err := r.store.SearchList(ctx, &db.ListQuery{
			IndexName:    index,
			Filters:      expr,
			Offset:       offset,
			Limit:        pageSize,
			ReturnFields: []string{fieldDate},
			SortBy:       fieldDate,
		})
		if err != nil {
			return nil, fmt.Errorf("search dates since %d: %w", cutoff.Unix(), err)
		}
		if res == nil || len(res.Entries) == 0 {
			break
		}
		if out == nil {
			out = make([]int64, 0, res.Total)
		}

		for _, e := range res.Entries {
			ts, err := parseTimestamp(e.Fields[fieldDate])
			if err != nil {
				return nil, fmt.Errorf("document %s: %w", e.Key, err)
			}
			out = append(out, ts)
		}

		if offset+len(res.Entries) >= res.Total {
			break
		}
	}
	return out, nil
}

func (r *Repo) docPrefix() string {
	return r.keyPrefix + "docs:"
}

func (r *Repo) docKey(id string) string {
	return r.docPrefix() + id
}

func parseTimestamp(raw string) (int64, error) {
	if raw == "" {
		return 0, errors.New("missing date field")
	}
	if ts, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return ts, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("parse date %q: %w", raw, err)
	}
	return int64(f), nil
}
