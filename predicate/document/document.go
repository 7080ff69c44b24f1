// Package document builds document-store criteria in the MongoDB query
// language from filter trees, and encodes them for transport.
//
//	{"$or": [
//	  {"firstName": {"$regex": ".*Saurabh.*"}},
//	  {"lastName": "Jaiswal"}
//	]}
package document

import (
	"regexp"

	json "github.com/goccy/go-json"

	"github.com/hugr-lab/filterql/filter"
	"github.com/hugr-lab/filterql/predicate"
)

// Criteria is a MongoDB query document.
type Criteria map[string]any

// Builder implements predicate.Builder for Criteria.
type Builder struct{}

var _ predicate.Builder[Criteria] = Builder{}

// Render converts root into a query document. A nil root yields nil Criteria.
func Render(root filter.Expression, fields *filter.FieldResolver) (Criteria, error) {
	return predicate.Render[Criteria](root, Builder{}, fields)
}

// String returns the criteria as compact JSON.
func (c Criteria) String() string {
	b, err := json.Marshal(map[string]any(c))
	if err != nil {
		return "<invalid criteria: " + err.Error() + ">"
	}
	return string(b)
}

func (Builder) And(left, right Criteria) (Criteria, error) {
	return Criteria{"$and": []any{map[string]any(left), map[string]any(right)}}, nil
}

func (Builder) Or(left, right Criteria) (Criteria, error) {
	return Criteria{"$or": []any{map[string]any(left), map[string]any(right)}}, nil
}

// Not uses $nor, which negates whole documents rather than single fields.
func (Builder) Not(operand Criteria) (Criteria, error) {
	return Criteria{"$nor": []any{map[string]any(operand)}}, nil
}

func (Builder) Equal(field string, value any) (Criteria, error) {
	return Criteria{field: value}, nil
}

func (Builder) Compare(field string, cmp predicate.Comparison, value any) (Criteria, error) {
	var op string
	switch cmp {
	case predicate.Greater:
		op = "$gt"
	case predicate.GreaterOrEqual:
		op = "$gte"
	case predicate.Less:
		op = "$lt"
	default:
		op = "$lte"
	}
	return Criteria{field: map[string]any{op: value}}, nil
}

func (Builder) Range(field string, lo, hi any) (Criteria, error) {
	return Criteria{field: map[string]any{"$gte": lo, "$lte": hi}}, nil
}

// Match uses plain equality for exact matches and anchored regular
// expressions otherwise. Pattern text is matched literally.
func (Builder) Match(field string, kind predicate.MatchKind, pattern string) (Criteria, error) {
	quoted := regexp.QuoteMeta(pattern)
	switch kind {
	case predicate.MatchSubstring:
		return regex(field, ".*"+quoted+".*"), nil
	case predicate.MatchPrefix:
		return regex(field, "^"+quoted), nil
	case predicate.MatchSuffix:
		return regex(field, quoted+"$"), nil
	default:
		return Criteria{field: pattern}, nil
	}
}

func (Builder) In(field string, values []any) (Criteria, error) {
	list := make([]any, len(values))
	copy(list, values)
	return Criteria{field: map[string]any{"$in": list}}, nil
}

func regex(field, pattern string) Criteria {
	return Criteria{field: map[string]any{"$regex": pattern}}
}
