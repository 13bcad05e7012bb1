// Package ranking orders authors by their number of texts.
package ranking

import (
	"bytes"
	"cmp"
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
)

// Entry is a single (author, text count) pair.
type Entry struct {
	Author string
	Count  int
}

// Ranking is an ordered list of entries, highest count first.
// It marshals to a JSON object whose key order follows the ranking.
type Ranking []Entry

// Rank builds a ranking from per-author counts. Authors are visited in roster
// order and sorted stably by count descending, so equal counts keep roster order.
// Repeated roster names are counted once; authors missing from counts rank with 0.
func Rank(roster []string, counts map[string]int) Ranking {
	seen := make(map[string]struct{}, len(roster))
	r := make(Ranking, 0, len(roster))
	for _, author := range roster {
		if _, dup := seen[author]; dup {
			continue
		}
		seen[author] = struct{}{}
		r = append(r, Entry{Author: author, Count: counts[author]})
	}

	slices.SortStableFunc(r, func(a, b Entry) int {
		return cmp.Compare(b.Count, a.Count)
	})
	return r
}

// Top returns the first n entries. n is clamped to [0, len(r)].
func (r Ranking) Top(n int) Ranking {
	n = max(0, min(n, len(r)))
	out := make(Ranking, n)
	copy(out, r[:n])
	return out
}

// MarshalJSON renders {"author": count, ...} preserving rank order.
func (r Ranking) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range r {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(e.Author)
		if err != nil {
			return nil, fmt.Errorf("marshal author: %w", err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.WriteString(strconv.Itoa(e.Count))
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
