package param

import (
	"context"
	"errors"
	"fmt"

	"github.com/kailas-cloud/docstats/internal/db"
	"github.com/kailas-cloud/docstats/internal/domain"
	domparam "github.com/kailas-cloud/docstats/internal/domain/param"
	"github.com/kailas-cloud/docstats/internal/domain/search/filter"
)

// Hash field names of a stored parameter.
const (
	fieldName  = "par"
	fieldKind  = "kind"
	fieldValue = "value"
)

// store is the consumer interface for parameters (ISP).
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	Del(ctx context.Context, keys ...string) error
	Scan(ctx context.Context, pattern string) ([]string, error)
	CreateIndex(ctx context.Context, def *db.IndexDefinition) error
	DropIndex(ctx context.Context, name string) error
	SearchList(ctx context.Context, q *db.ListQuery) (*db.SearchResult, error)
}

// Repo keeps named parameters as hashes under <keyPrefix>pars:<name>, indexed by name.
type Repo struct {
	store     store
	keyPrefix string
	index     string
}

// New creates a parameter repository over the given FT index.
func New(s store, keyPrefix, index string) *Repo {
	return &Repo{store: s, keyPrefix: keyPrefix, index: index}
}

// EnsureIndex creates the parameter index if it does not exist yet.
func (r *Repo) EnsureIndex(ctx context.Context) error {
	def, err := db.NewIndex(r.index).
		Prefix(r.parPrefix()).
		TagWithOpts(fieldName, "", true).
		Build()
	if err != nil {
		return fmt.Errorf("build index %s: %w", r.index, err)
	}

	if err := r.store.CreateIndex(ctx, def); err != nil && !errors.Is(err, db.ErrIndexExists) {
		return fmt.Errorf("create index %s: %w", r.index, err)
	}
	return nil
}

// Reset drops the parameter index and deletes every stored parameter.
func (r *Repo) Reset(ctx context.Context) error {
	if err := r.store.DropIndex(ctx, r.index); err != nil && !errors.Is(err, db.ErrIndexNotFound) {
		return fmt.Errorf("drop index %s: %w", r.index, err)
	}

	keys, err := r.store.Scan(ctx, r.parPrefix()+"*")
	if err != nil {
		return fmt.Errorf("scan parameters: %w", err)
	}
	if err := r.store.Del(ctx, keys...); err != nil {
		return fmt.Errorf("delete parameters: %w", err)
	}
	return nil
}

// Put stores a named parameter, replacing any previous value.
func (r *Repo) Put(ctx context.Context, name string, v domparam.Value) error {
	raw, err := v.Encode()
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}

	fields := map[string]string{
		fieldName:  name,
		fieldKind:  string(v.Kind()),
		fieldValue: raw,
	}
	if err := r.store.HSet(ctx, r.parPrefix()+name, fields); err != nil {
		return fmt.Errorf("put %s: %w", name, err)
	}
	return nil
}

// Get looks a parameter up by exact name. Zero hits yield a *domain.MissingParameterError.
func (r *Repo) Get(ctx context.Context, name string) (domparam.Value, error) {
	expr, err := filter.Match(fieldName, name)
	if err != nil {
		return domparam.Value{}, fmt.Errorf("name filter: %w", err)
	}

	res, err := r.store.SearchList(ctx, &db.ListQuery{
		IndexName:    r.index,
		Filters:      expr,
		Limit:        1,
		ReturnFields: []string{fieldKind, fieldValue},
	})
	if err != nil {
		return domparam.Value{}, fmt.Errorf("get %s: %w", name, err)
	}
	if res == nil || len(res.Entries) == 0 {
		return domparam.Value{}, domain.NewMissingParameter(name)
	}

	return decode(name, res.Entries[0].Fields)
}

// Lookup reads a parameter straight from its hash, so it works while the
// parameter index is missing. A missing key yields a *domain.MissingParameterError.
func (r *Repo) Lookup(ctx context.Context, name string) (domparam.Value, error) {
	fields, err := r.store.HGetAll(ctx, r.parPrefix()+name)
	if errors.Is(err, db.ErrKeyNotFound) {
		return domparam.Value{}, domain.NewMissingParameter(name)
	}
	if err != nil {
		return domparam.Value{}, fmt.Errorf("lookup %s: %w", name, err)
	}
	return decode(name, fields)
}

func decode(name string, fields map[string]string) (domparam.Value, error) {
	v, err := domparam.Decode(domparam.Kind(fields[fieldKind]), fields[fieldValue])
	if err != nil {
		return domparam.Value{}, fmt.Errorf("decode %s: %w", name, err)
	}
	return v, nil
}

func (r *Repo) parPrefix() string {
	return r.keyPrefix + "pars:"
}
