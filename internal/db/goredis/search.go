package goredis

import (
	"context"
	"fmt"
	"strconv"

	"github.com/kailas-cloud/docstats/internal/db"
	"github.com/kailas-cloud/docstats/internal/domain/search/filter"
)

// SearchList performs a paginated filtered search via FT.SEARCH.
func (s *Store) SearchList(ctx context.Context, q *db.ListQuery) (*db.SearchResult, error) {
	args, err := q.Args()
	if err != nil {
		return nil, err
	}

	raw, err := s.do(ctx, "FT.SEARCH", args).Slice()
	if err != nil {
		return nil, &db.Error{Op: db.OpSearch, Err: err}
	}
	return parseListResult(raw)
}

// SearchCount returns the number of matching documents via FT.SEARCH with LIMIT 0 0.
func (s *Store) SearchCount(ctx context.Context, index string, filters filter.Expression) (int, error) {
	raw, err := s.do(ctx, "FT.SEARCH", db.CountArgs(index, filters)).Slice()
	if err != nil {
		return 0, &db.Error{Op: db.OpSearch, Err: err}
	}
	if len(raw) == 0 {
		return 0, nil
	}
	total, err := toInt(raw[0])
	if err != nil {
		return 0, fmt.Errorf("parse count: %w", err)
	}
	return total, nil
}

// --- Result parsing ---

// parseListResult decodes [total, key1, [f, v, ...], key2, [...], ...].
func parseListResult(raw []interface{}) (*db.SearchResult, error) {
	if len(raw) == 0 {
		return &db.SearchResult{}, nil
	}

	total, err := toInt(raw[0])
	if err != nil {
		return nil, fmt.Errorf("parse total: %w", err)
	}
	if total == 0 {
		return &db.SearchResult{}, nil
	}

	entries := make([]db.SearchEntry, 0, (len(raw)-1)/2)
	for i := 1; i+1 < len(raw); i += 2 {
		key, ok := raw[i].(string)
		if !ok {
			continue
		}
		fields, ok := raw[i+1].([]interface{})
		if !ok {
			continue
		}
		entries = append(entries, db.SearchEntry{
			Key:    key,
			Fields: parseFieldPairs(fields),
		})
	}

	return &db.SearchResult{Total: total, Entries: entries}, nil
}

func parseFieldPairs(fields []interface{}) map[string]string {
	m := make(map[string]string, len(fields)/2)
	for j := 0; j+1 < len(fields); j += 2 {
		name, ok := fields[j].(string)
		if !ok {
			continue
		}
		value, ok := fields[j+1].(string)
		if !ok {
			continue
		}
		m[name] = value
	}
	return m
}

func toInt(v interface{}) (int, error) {
	switch t := v.(type) {
	case int64:
		return int(t), nil
	case string:
		return strconv.Atoi(t)
	default:
		return 0, fmt.Errorf("unexpected type %T", v)
	}
}
