package db

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kailas-cloud/docstats/internal/domain/search/filter"
)

// MatchAll is the FT.SEARCH query matching every document of an index.
const MatchAll = "*"

// BuildQuery translates filter.Expression into an FT.SEARCH query string.
// Conditions are intersected. An empty expression matches everything.
func BuildQuery(expr filter.Expression) string {
	if expr.IsEmpty() {
		return MatchAll
	}

	parts := make([]string, 0, len(expr.Must()))
	for _, cond := range expr.Must() {
		parts = append(parts, buildCondition(cond))
	}
	return strings.Join(parts, " ")
}

// Args renders FT.SEARCH arguments for the query (without the command name).
func (q *ListQuery) Args() ([]string, error) {
	if q.IndexName == "" {
		return nil, fmt.Errorf("index name is required")
	}
	if q.Offset < 0 || q.Limit < 0 {
		return nil, fmt.Errorf("offset and limit must be non-negative")
	}

	args := []string{q.IndexName, BuildQuery(q.Filters)}

	if len(q.ReturnFields) > 0 {
		args = append(args, "RETURN", strconv.Itoa(len(q.ReturnFields)))
		args = append(args, q.ReturnFields...)
	}

	if q.SortBy != "" {
		order := "ASC"
		if q.Descending {
			order = "DESC"
		}
		args = append(args, "SORTBY", q.SortBy, order)
	}

	args = append(args,
		"LIMIT", strconv.Itoa(q.Offset), strconv.Itoa(q.Limit),
		"DIALECT", "2",
	)
	return args, nil
}

// CountArgs renders FT.SEARCH arguments that return only the hit count (LIMIT 0 0).
func CountArgs(index string, filters filter.Expression) []string {
	return []string{index, BuildQuery(filters), "LIMIT", "0", "0", "DIALECT", "2"}
}

func buildCondition(cond filter.Condition) string {
	if cond.IsMatch() {
		return buildTagFilter(cond.Key(), cond.Match())
	}
	if cond.IsRange() {
		return fmt.Sprintf("@%s:[%s +inf]", cond.Key(), formatBound(*cond.Min()))
	}
	return ""
}

func buildTagFilter(key, value string) string {
	escaped := tagEscaper.Replace(value)
	return fmt.Sprintf("@%s:{%s}", key, escaped)
}

// formatBound avoids exponent notation so unix timestamps keep every digit.
func formatBound(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

var tagEscaper = strings.NewReplacer(
	`\`, `\\`,
	",", "\\,",
	".", "\\.",
	"<", "\\<",
	">", "\\>",
	"{", "\\{",
	"}", "\\}",
	"[", "\\[",
	"]", "\\]",
	"\"", "\\\"",
	"'", "\\'",
	":", "\\:",
	";", "\\;",
	"!", "\\!",
	"@", "\\@",
	"#", "\\#",
	"$", "\\$",
	"%", "\\%",
	"^", "\\^",
	"&", "\\&",
	"*", "\\*",
	"(", "\\(",
	")", "\\)",
	"-", "\\-",
	"+", "\\+",
	"=", "\\=",
	"~", "\\~",
	"|", "\\|",
	"/", "\\/",
	" ", "\\ ",
)
