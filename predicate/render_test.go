package predicate_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hugr-lab/filterql/filter"
	"github.com/hugr-lab/filterql/predicate"
)

// textBuilder records builder calls as a compact textual predicate.
type textBuilder struct {
	failOn string
}

func (b textBuilder) And(l, r string) (string, error) { return "AND(" + l + ", " + r + ")", nil }
func (b textBuilder) Or(l, r string) (string, error)  { return "OR(" + l + ", " + r + ")", nil }
func (b textBuilder) Not(x string) (string, error)    { return "NOT(" + x + ")", nil }

func (b textBuilder) Equal(field string, v any) (string, error) {
	if field == b.failOn {
		return "", errors.New("boom")
	}
	return fmt.Sprintf("%s == %v", field, v), nil
}

func (b textBuilder) Compare(field string, cmp predicate.Comparison, v any) (string, error) {
	return fmt.Sprintf("%s %s %v", field, cmp, v), nil
}

func (b textBuilder) Range(field string, lo, hi any) (string, error) {
	return fmt.Sprintf("%s in [%v..%v]", field, lo, hi), nil
}

func (b textBuilder) Match(field string, kind predicate.MatchKind, s string) (string, error) {
	return fmt.Sprintf("%s ~%s %q", field, kind, s), nil
}

func (b textBuilder) In(field string, values []any) (string, error) {
	return fmt.Sprintf("%s in %v", field, values), nil
}

func parse(t *testing.T, node map[string]any) filter.Expression {
	t.Helper()
	expr, err := filter.Parse(node)
	require.NoError(t, err)
	return expr
}

func cmp(op string, v any) map[string]any { return map[string]any{op: v} }

func TestRenderOperators(t *testing.T) {
	tests := []struct {
		name     string
		node     map[string]any
		expected string
	}{
		{"equals", map[string]any{"name": cmp("equals", "Ann")}, `name ~exact "Ann"`},
		{"contains", map[string]any{"name": cmp("contains", "nn")}, `name ~substring "nn"`},
		{"starts", map[string]any{"name": cmp("starts", "A")}, `name ~prefix "A"`},
		{"ends", map[string]any{"name": cmp("ends", "n")}, `name ~suffix "n"`},
		{"eq", map[string]any{"age": cmp("eq", 30)}, "age == 30"},
		{"gt", map[string]any{"age": cmp("gt", 30)}, "age > 30"},
		{"gte", map[string]any{"age": cmp("gte", 30)}, "age >= 30"},
		{"lt", map[string]any{"age": cmp("lt", 30)}, "age < 30"},
		{"lte", map[string]any{"age": cmp("lte", 30)}, "age <= 30"},
		{"in", map[string]any{"tag": cmp("in", []any{"a", "b"})}, "tag in [a b]"},
		{"between", map[string]any{"age": cmp("between", []any{20, 30})}, "age in [20..30]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := predicate.Render[string](parse(t, tt.node), textBuilder{}, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestRenderLogical(t *testing.T) {
	node := map[string]any{
		"or": []any{
			map[string]any{"a": cmp("eq", 1)},
			map[string]any{"b": cmp("eq", 2)},
			map[string]any{"not": map[string]any{
				"and": []any{
					map[string]any{"c": cmp("lt", 3)},
					map[string]any{"d": cmp("contains", "x")},
				},
			}},
		},
	}

	got, err := predicate.Render[string](parse(t, node), textBuilder{}, nil)
	require.NoError(t, err)
	assert.Equal(t, `OR(OR(a == 1, b == 2), NOT(AND(c < 3, d ~substring "x")))`, got)
}

func TestRenderRenamesNestedFields(t *testing.T) {
	node := map[string]any{
		"and": []any{
			map[string]any{"firstName": cmp("starts", "Sau")},
			map[string]any{"not": map[string]any{"firstName": cmp("ends", "h")}},
		},
	}
	fields := filter.NewFieldResolver(map[string]string{"firstName": "first_name"}, nil)

	got, err := predicate.Render[string](parse(t, node), textBuilder{}, fields)
	require.NoError(t, err)
	assert.Equal(t, `AND(first_name ~prefix "Sau", NOT(first_name ~suffix "h"))`, got)
}

func TestRenderEmptyRoot(t *testing.T) {
	got, err := predicate.Render[string](nil, textBuilder{}, nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRenderBuilderError(t *testing.T) {
	node := map[string]any{
		"and": []any{
			map[string]any{"a": cmp("eq", 1)},
			map[string]any{"b": cmp("eq", 2)},
		},
	}

	_, err := predicate.Render[string](parse(t, node), textBuilder{failOn: "b"}, nil)
	assert.EqualError(t, err, "boom")
}

func TestRenderInvalidTree(t *testing.T) {
	expr := &filter.Binary{Op: filter.OpEq, Value: &filter.Value{Values: []any{1}}}

	_, err := predicate.Render[string](expr, textBuilder{}, nil)
	assert.ErrorIs(t, err, filter.ErrInvalidFilterShape)
}

func TestComparisonHolds(t *testing.T) {
	assert.True(t, predicate.Greater.Holds(1))
	assert.False(t, predicate.Greater.Holds(0))
	assert.True(t, predicate.GreaterOrEqual.Holds(0))
	assert.True(t, predicate.Less.Holds(-1))
	assert.False(t, predicate.LessOrEqual.Holds(1))
}
