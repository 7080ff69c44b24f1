// Package predicate renders filter expression trees into backend-native
// predicates through a small builder capability.
//
// Each backend implements Builder[P] for its own predicate type P, and
// Render walks the tree bottom-up calling one builder method per node:
//
//	q, err := predicate.Render[search.Query](expr, search.Builder{}, fields)
//
// String operators become Match calls, eq becomes Equal, gt/gte/lt/lte
// become Compare, in becomes In and between becomes Range. Logical nodes
// combine already-built operands with And, Or and Not.
package predicate

import "fmt"

// MatchKind selects how a string pattern is matched against a field.
type MatchKind int

const (
	// MatchExact matches the whole value (the equals operator).
	MatchExact MatchKind = iota
	// MatchSubstring matches anywhere in the value (contains).
	MatchSubstring
	// MatchPrefix matches the start of the value (starts).
	MatchPrefix
	// MatchSuffix matches the end of the value (ends).
	MatchSuffix
)

func (k MatchKind) String() string {
	switch k {
	case MatchExact:
		return "exact"
	case MatchSubstring:
		return "substring"
	case MatchPrefix:
		return "prefix"
	case MatchSuffix:
		return "suffix"
	default:
		return fmt.Sprintf("MatchKind(%d)", int(k))
	}
}

// Comparison is an ordering comparison of a field against a value.
type Comparison int

const (
	Greater Comparison = iota
	GreaterOrEqual
	Less
	LessOrEqual
)

func (c Comparison) String() string {
	switch c {
	case Greater:
		return ">"
	case GreaterOrEqual:
		return ">="
	case Less:
		return "<"
	case LessOrEqual:
		return "<="
	default:
		return fmt.Sprintf("Comparison(%d)", int(c))
	}
}

// Holds reports whether the comparison holds for a three-way compare result
// (negative, zero or positive, as returned by cmp.Compare).
func (c Comparison) Holds(order int) bool {
	switch c {
	case Greater:
		return order > 0
	case GreaterOrEqual:
		return order >= 0
	case Less:
		return order < 0
	case LessOrEqual:
		return order <= 0
	default:
		return false
	}
}

// Builder constructs backend predicates of type P.
//
// Field names passed to a Builder are already resolved through the rename
// table and transformer; values are normalized operands (strings, bools,
// int64/float64 and friends, or UTC time.Time).
type Builder[P any] interface {
	And(left, right P) (P, error)
	Or(left, right P) (P, error)
	Not(operand P) (P, error)

	// Equal is an exact equality of field against value (the eq operator).
	Equal(field string, value any) (P, error)
	Compare(field string, cmp Comparison, value any) (P, error)
	// Range matches lo <= field <= hi.
	Range(field string, lo, hi any) (P, error)
	Match(field string, kind MatchKind, pattern string) (P, error)
	In(field string, values []any) (P, error)
}
