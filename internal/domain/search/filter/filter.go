package filter

import "fmt"

// MaxConditions is the maximum number of conditions in one expression.
const MaxConditions = 32

// Expression is a conjunction of conditions. The zero value matches everything.
type Expression struct {
	must []Condition
}

// NewExpression validates and creates a filter Expression requiring every condition.
func NewExpression(must ...Condition) (Expression, error) {
	if len(must) > MaxConditions {
		return Expression{}, fmt.Errorf("too many conditions (max %d)", MaxConditions)
	}
	return Expression{must: must}, nil
}

// Must returns the conditions.
func (e Expression) Must() []Condition { return e.must }

// IsEmpty reports whether the expression has no conditions.
func (e Expression) IsEmpty() bool { return len(e.must) == 0 }

// Condition is a single filter clause: either an exact tag match or an
// inclusive numeric lower bound.
type Condition struct {
	key   string
	match string
	lower *float64
}

// NewMatch creates an exact tag match condition.
func NewMatch(key, match string) (Condition, error) {
	if key == "" {
		return Condition{}, fmt.Errorf("filter key is required")
	}
	if match == "" {
		return Condition{}, fmt.Errorf("match value is required for key %q", key)
	}
	return Condition{key: key, match: match}, nil
}

// NewMin creates a numeric condition requiring key >= v.
func NewMin(key string, v float64) (Condition, error) {
	if key == "" {
		return Condition{}, fmt.Errorf("filter key is required")
	}
	return Condition{key: key, lower: &v}, nil
}

// Key returns the field name.
func (c Condition) Key() string { return c.key }

// Match returns the exact match value.
func (c Condition) Match() string { return c.match }

// Min returns the inclusive lower bound, nil for match conditions.
func (c Condition) Min() *float64 { return c.lower }

// IsMatch reports whether this is a match condition.
func (c Condition) IsMatch() bool { return c.match != "" }

// IsRange reports whether this is a numeric bound condition.
func (c Condition) IsRange() bool { return c.lower != nil }

// Match builds a single-condition expression requiring key to equal value exactly.
func Match(key, value string) (Expression, error) {
	cond, err := NewMatch(key, value)
	if err != nil {
		return Expression{}, err
	}
	return NewExpression(cond)
}

// AtLeast builds a single-condition expression requiring key >= v.
func AtLeast(key string, v float64) (Expression, error) {
	cond, err := NewMin(key, v)
	if err != nil {
		return Expression{}, err
	}
	return NewExpression(cond)
}
