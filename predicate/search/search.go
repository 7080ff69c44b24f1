// Package search builds search-engine criteria in the Elasticsearch query
// DSL from filter trees.
//
// A Query is the JSON object that goes under the "query" key of a search
// request:
//
//	{"bool": {"must": [
//	  {"wildcard": {"firstName": {"value": "*Saurabh*"}}},
//	  {"range": {"age": {"gte": 25}}}
//	]}}
package search

import (
	"strings"

	json "github.com/goccy/go-json"

	"github.com/hugr-lab/filterql/filter"
	"github.com/hugr-lab/filterql/predicate"
)

// Query is a single query DSL clause.
type Query map[string]any

// Builder implements predicate.Builder for Query.
type Builder struct{}

var _ predicate.Builder[Query] = Builder{}

// Render converts root into a query clause. A nil root yields a nil Query.
func Render(root filter.Expression, fields *filter.FieldResolver) (Query, error) {
	return predicate.Render[Query](root, Builder{}, fields)
}

// Marshal returns the search request body {"query": q}.
// A nil Query becomes match_all.
func Marshal(q Query) ([]byte, error) {
	if q == nil {
		q = Query{"match_all": map[string]any{}}
	}
	return json.Marshal(map[string]any{"query": q})
}

// String returns the clause as compact JSON.
func (q Query) String() string {
	b, err := json.Marshal(map[string]any(q))
	if err != nil {
		return "<invalid query: " + err.Error() + ">"
	}
	return string(b)
}

// And merges operands into a single bool/must clause so that folded
// chains stay flat.
func (Builder) And(left, right Query) (Query, error) {
	return combine("must", nil, left, right), nil
}

// Or merges operands into a single bool/should clause requiring one match.
func (Builder) Or(left, right Query) (Query, error) {
	return combine("should", map[string]any{"minimum_should_match": 1}, left, right), nil
}

func (Builder) Not(operand Query) (Query, error) {
	return Query{"bool": map[string]any{"must_not": []any{operand}}}, nil
}

func (Builder) Equal(field string, value any) (Query, error) {
	return Query{"term": map[string]any{field: map[string]any{"value": value}}}, nil
}

func (Builder) Compare(field string, cmp predicate.Comparison, value any) (Query, error) {
	var key string
	switch cmp {
	case predicate.Greater:
		key = "gt"
	case predicate.GreaterOrEqual:
		key = "gte"
	case predicate.Less:
		key = "lt"
	default:
		key = "lte"
	}
	return Query{"range": map[string]any{field: map[string]any{key: value}}}, nil
}

func (Builder) Range(field string, lo, hi any) (Query, error) {
	return Query{"range": map[string]any{field: map[string]any{"gte": lo, "lte": hi}}}, nil
}

// Match maps exact matches to match_phrase, prefixes to prefix and
// substring or suffix matches to wildcard patterns.
func (Builder) Match(field string, kind predicate.MatchKind, pattern string) (Query, error) {
	switch kind {
	case predicate.MatchSubstring:
		return wildcard(field, "*"+escapeWildcard(pattern)+"*"), nil
	case predicate.MatchPrefix:
		return Query{"prefix": map[string]any{field: map[string]any{"value": pattern}}}, nil
	case predicate.MatchSuffix:
		return wildcard(field, "*"+escapeWildcard(pattern)), nil
	default:
		return Query{"match_phrase": map[string]any{field: pattern}}, nil
	}
}

func (Builder) In(field string, values []any) (Query, error) {
	terms := make([]any, len(values))
	copy(terms, values)
	return Query{"terms": map[string]any{field: terms}}, nil
}

func wildcard(field, value string) Query {
	return Query{"wildcard": map[string]any{field: map[string]any{"value": value}}}
}

var wildcardEscaper = strings.NewReplacer(`\`, `\\`, `*`, `\*`, `?`, `\?`)

func escapeWildcard(s string) string {
	return wildcardEscaper.Replace(s)
}

// combine builds {"bool": {occur: [...], extra...}}, splicing in operands
// that are themselves bool clauses of the same shape.
func combine(occur string, extra map[string]any, left, right Query) Query {
	var clauses []any
	clauses = append(clauses, flatten(occur, extra, left)...)
	clauses = append(clauses, flatten(occur, extra, right)...)

	body := map[string]any{occur: clauses}
	for k, v := range extra {
		body[k] = v
	}
	return Query{"bool": body}
}

func flatten(occur string, extra map[string]any, q Query) []any {
	if len(q) != 1 {
		return []any{q}
	}
	body, ok := q["bool"].(map[string]any)
	if !ok || len(body) != len(extra)+1 {
		return []any{q}
	}
	for k, v := range extra {
		if body[k] != v {
			return []any{q}
		}
	}
	clauses, ok := body[occur].([]any)
	if !ok {
		return []any{q}
	}
	return clauses
}
