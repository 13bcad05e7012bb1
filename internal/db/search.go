package db

import "github.com/kailas-cloud/docstats/internal/domain/search/filter"

// ListQuery is the input for a paginated filtered search.
type ListQuery struct {
	IndexName    string
	Filters      filter.Expression
	Offset       int
	Limit        int
	ReturnFields []string
	SortBy       string // SORTBY field; must be SORTABLE in the index
	Descending   bool
}

// SearchResult is the output of a search operation.
type SearchResult struct {
	Total   int
	Entries []SearchEntry
}

// SearchEntry is a single document hit from a search.
type SearchEntry struct {
	Key    string
	Fields map[string]string
}
