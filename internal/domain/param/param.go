// Package param models the named configuration values kept in the parameter store.
package param

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/kailas-cloud/docstats/internal/domain"
)

// Well-known parameter names written by the generator.
const (
	DocCount     = "doc_count"
	AuthorsCount = "authors_count"
	IndexName    = "index_name"
	AuthorsList  = "authors_list"
)

// Kind tags the variant held by a Value.
type Kind string

const (
	// KindInt holds an integer.
	KindInt Kind = "int"
	// KindString holds a string.
	KindString Kind = "string"
	// KindStringList holds a sequence of strings.
	KindStringList Kind = "list"
)

// Value is a tagged variant: integer, string or list of strings.
type Value struct {
	kind Kind
	i    int
	s    string
	list []string
}

// Int creates an integer value.
func Int(v int) Value { return Value{kind: KindInt, i: v} }

// String creates a string value.
func String(v string) Value { return Value{kind: KindString, s: v} }

// StringList creates a list value. The slice is copied.
func StringList(v []string) Value {
	cp := make([]string, len(v))
	copy(cp, v)
	return Value{kind: KindStringList, list: cp}
}

// Kind returns the variant tag.
func (v Value) Kind() Kind { return v.kind }

// AsInt returns the integer or an ErrInvalidParameter error on kind mismatch.
func (v Value) AsInt() (int, error) {
	if v.kind != KindInt {
		return 0, v.mismatch(KindInt)
	}
	return v.i, nil
}

// AsString returns the string or an ErrInvalidParameter error on kind mismatch.
func (v Value) AsString() (string, error) {
	if v.kind != KindString {
		return "", v.mismatch(KindString)
	}
	return v.s, nil
}

// AsStringList returns a copy of the list or an ErrInvalidParameter error on kind mismatch.
func (v Value) AsStringList() ([]string, error) {
	if v.kind != KindStringList {
		return nil, v.mismatch(KindStringList)
	}
	cp := make([]string, len(v.list))
	copy(cp, v.list)
	return cp, nil
}

func (v Value) mismatch(want Kind) error {
	return fmt.Errorf("%w: expected %s, got %q", domain.ErrInvalidParameter, want, v.kind)
}

// Encode renders the value for storage: decimal int, raw string, JSON array for lists.
func (v Value) Encode() (string, error) {
	switch v.kind {
	case KindInt:
		return strconv.Itoa(v.i), nil
	case KindString:
		return v.s, nil
	case KindStringList:
		list := v.list
		if list == nil {
			list = []string{}
		}
		data, err := json.Marshal(list)
		if err != nil {
			return "", fmt.Errorf("marshal list: %w", err)
		}
		return string(data), nil
	default:
		return "", fmt.Errorf("%w: unknown kind %q", domain.ErrInvalidParameter, v.kind)
	}
}

// Decode parses a stored value of the given kind.
func Decode(kind Kind, raw string) (Value, error) {
	switch kind {
	case KindInt:
		n, err := strconv.Atoi(raw)
		if err != nil {
			return Value{}, fmt.Errorf("%w: parse int %q: %w", domain.ErrInvalidParameter, raw, err)
		}
		return Int(n), nil
	case KindString:
		return String(raw), nil
	case KindStringList:
		var list []string
		if err := json.Unmarshal([]byte(raw), &list); err != nil {
			return Value{}, fmt.Errorf("%w: parse list: %w", domain.ErrInvalidParameter, err)
		}
		return Value{kind: KindStringList, list: list}, nil
	default:
		return Value{}, fmt.Errorf("%w: unknown kind %q", domain.ErrInvalidParameter, kind)
	}
}

// Set is the immutable parameter snapshot read once at startup.
type Set struct {
	DocCount     int
	AuthorsCount int
	IndexName    string
	Authors      []string
}
