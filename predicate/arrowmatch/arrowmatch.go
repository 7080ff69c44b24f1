// Package arrowmatch evaluates filter trees against Arrow record batches.
//
// Rendering produces a Matcher that tests one row at a time; Filter applies a
// Matcher to a whole batch and returns the matching rows:
//
//	m, err := arrowmatch.Render(tree, fields)
//	out, err := arrowmatch.Filter(ctx, rec, m, memory.DefaultAllocator)
//	defer out.Release()
//
// Comparisons against null cells are unknown rather than false, as in SQL:
// neither a comparison nor its negation matches a null cell.
package arrowmatch

import (
	"cmp"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/apache/arrow-go/v18/arrow"

	"github.com/hugr-lab/filterql/filter"
	"github.com/hugr-lab/filterql/predicate"
)

// ErrUnknownColumn is returned when a filter field is not present in the batch schema.
var ErrUnknownColumn = errors.New("unknown column")

// ErrIncomparable is returned when a cell cannot be compared with an operand.
var ErrIncomparable = errors.New("incomparable values")

// Matcher reports whether row of rec satisfies a predicate.
type Matcher func(rec arrow.Record, row int) (bool, error)

// Truth is the result of evaluating a predicate under SQL three-valued logic.
// Comparisons against null cells are Unknown.
type Truth int8

const (
	False Truth = iota
	True
	Unknown
)

// Condition evaluates a predicate for row of rec.
type Condition func(rec arrow.Record, row int) (Truth, error)

// Matcher returns a Matcher that accepts a row only when c is True.
func (c Condition) Matcher() Matcher {
	return func(rec arrow.Record, row int) (bool, error) {
		t, err := c(rec, row)
		return t == True && err == nil, err
	}
}

// Builder implements predicate.Builder for Condition.
type Builder struct{}

var _ predicate.Builder[Condition] = Builder{}

// Render converts root into a Matcher. A nil root matches every row.
func Render(root filter.Expression, fields *filter.FieldResolver) (Matcher, error) {
	c, err := predicate.Render[Condition](root, Builder{}, fields)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return matchAll, nil
	}
	return c.Matcher(), nil
}

func matchAll(arrow.Record, int) (bool, error) { return true, nil }

func (Builder) And(left, right Condition) (Condition, error) {
	return func(rec arrow.Record, row int) (Truth, error) {
		l, err := left(rec, row)
		if err != nil || l == False {
			return False, err
		}
		r, err := right(rec, row)
		if err != nil || r == False {
			return False, err
		}
		if l == True && r == True {
			return True, nil
		}
		return Unknown, nil
	}, nil
}

func (Builder) Or(left, right Condition) (Condition, error) {
	return func(rec arrow.Record, row int) (Truth, error) {
		l, err := left(rec, row)
		if err != nil || l == True {
			return l, err
		}
		r, err := right(rec, row)
		if err != nil || r == True {
			return r, err
		}
		if l == False && r == False {
			return False, nil
		}
		return Unknown, nil
	}, nil
}

func (Builder) Not(operand Condition) (Condition, error) {
	return func(rec arrow.Record, row int) (Truth, error) {
		t, err := operand(rec, row)
		if err != nil {
			return False, err
		}
		switch t {
		case True:
			return False, nil
		case False:
			return True, nil
		default:
			return Unknown, nil
		}
	}, nil
}

func (Builder) Equal(field string, value any) (Condition, error) {
	return cellCondition(field, func(cell any) (bool, error) {
		order, err := compareValues(cell, value)
		return order == 0 && err == nil, err
	}), nil
}

func (Builder) Compare(field string, c predicate.Comparison, value any) (Condition, error) {
	return cellCondition(field, func(cell any) (bool, error) {
		order, err := compareValues(cell, value)
		if err != nil {
			return false, err
		}
		return c.Holds(order), nil
	}), nil
}

func (Builder) Range(field string, lo, hi any) (Condition, error) {
	return cellCondition(field, func(cell any) (bool, error) {
		low, err := compareValues(cell, lo)
		if err != nil || low < 0 {
			return false, err
		}
		high, err := compareValues(cell, hi)
		return high <= 0 && err == nil, err
	}), nil
}

func (Builder) Match(field string, kind predicate.MatchKind, pattern string) (Condition, error) {
	var test func(s string) bool
	switch kind {
	case predicate.MatchSubstring:
		test = func(s string) bool { return strings.Contains(s, pattern) }
	case predicate.MatchPrefix:
		test = func(s string) bool { return strings.HasPrefix(s, pattern) }
	case predicate.MatchSuffix:
		test = func(s string) bool { return strings.HasSuffix(s, pattern) }
	default:
		test = func(s string) bool { return s == pattern }
	}
	return cellCondition(field, func(cell any) (bool, error) {
		return test(filter.FormatOperand(cell)), nil
	}), nil
}

func (Builder) In(field string, values []any) (Condition, error) {
	return cellCondition(field, func(cell any) (bool, error) {
		for _, v := range values {
			order, err := compareValues(cell, v)
			if err != nil {
				return false, err
			}
			if order == 0 {
				return true, nil
			}
		}
		return false, nil
	}), nil
}

// cellCondition resolves field in the batch schema and applies test to the
// cell. Null cells are Unknown.
func cellCondition(field string, test func(cell any) (bool, error)) Condition {
	return func(rec arrow.Record, row int) (Truth, error) {
		idx := rec.Schema().FieldIndices(field)
		if len(idx) == 0 {
			return False, fmt.Errorf("%w: %q", ErrUnknownColumn, field)
		}
		cell, ok, err := valueAt(rec.Column(idx[0]), row)
		if err != nil {
			return False, fmt.Errorf("column %q: %w", field, err)
		}
		if !ok {
			return Unknown, nil
		}
		matched, err := test(cell)
		if err != nil {
			return False, fmt.Errorf("column %q: %w", field, err)
		}
		if matched {
			return True, nil
		}
		return False, nil
	}
}

// compareValues orders a cell against a filter operand. Numbers compare
// across widths, strings lexically, bools false<true and times by instant.
func compareValues(cell, operand any) (int, error) {
	switch a := cell.(type) {
	case string:
		if b, ok := operand.(string); ok {
			return cmp.Compare(a, b), nil
		}
	case bool:
		if b, ok := operand.(bool); ok {
			switch {
			case a == b:
				return 0, nil
			case !a:
				return -1, nil
			default:
				return 1, nil
			}
		}
	case time.Time:
		if b, ok := filter.NormalizeTemporal(operand); ok {
			return a.Compare(b), nil
		}
		if s, ok := operand.(string); ok {
			if b, ok := filter.ParseTemporal(s); ok {
				return a.Compare(b), nil
			}
		}
	default:
		if x, ok := asInt(cell); ok {
			if y, ok := asInt(operand); ok {
				return cmp.Compare(x, y), nil
			}
		}
		x, okx := asFloat(cell)
		y, oky := asFloat(operand)
		if okx && oky {
			return cmp.Compare(x, y), nil
		}
	}
	return 0, fmt.Errorf("%w: %T and %T", ErrIncomparable, cell, operand)
}

func asInt(v any) (int64, bool) {
	switch x := v.(type) {
	case int:
		return int64(x), true
	case int8:
		return int64(x), true
	case int16:
		return int64(x), true
	case int32:
		return int64(x), true
	case int64:
		return x, true
	case uint8:
		return int64(x), true
	case uint16:
		return int64(x), true
	case uint32:
		return int64(x), true
	case float64:
		if x == float64(int64(x)) {
			return int64(x), true
		}
	}
	return 0, false
}

func asFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case float32:
		return float64(x), true
	case float64:
		return x, true
	case uint:
		return float64(x), true
	case uint64:
		return float64(x), true
	}
	if i, ok := asInt(v); ok {
		return float64(i), true
	}
	return 0, false
}
