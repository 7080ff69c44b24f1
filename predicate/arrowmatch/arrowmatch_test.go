package arrowmatch_test

import (
	"context"
	"testing"
	"time"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hugr-lab/filterql/filter"
	"github.com/hugr-lab/filterql/predicate/arrowmatch"
)

var people = []struct {
	first  string
	last   string
	age    int64
	joined time.Time
	score  *float64
}{
	{"Saurabh", "Jaiswal", 30, time.Date(2020, 1, 15, 0, 0, 0, 0, time.UTC), ptr(9.5)},
	{"Vinod", "Gupta", 25, time.Date(2021, 6, 1, 12, 0, 0, 0, time.UTC), nil},
	{"Asha", "Kumar", 41, time.Date(2019, 3, 3, 8, 30, 0, 0, time.UTC), ptr(7)},
	{"Saurav", "Singh", 19, time.Date(2023, 11, 20, 0, 0, 0, 0, time.UTC), ptr(6.25)},
}

func ptr(f float64) *float64 { return &f }

func newRecord(t *testing.T, mem memory.Allocator) arrow.Record {
	t.Helper()
	schema := arrow.NewSchema([]arrow.Field{
		{Name: "first_name", Type: arrow.BinaryTypes.String},
		{Name: "last_name", Type: arrow.BinaryTypes.String},
		{Name: "age", Type: arrow.PrimitiveTypes.Int64},
		{Name: "joined", Type: &arrow.TimestampType{Unit: arrow.Microsecond, TimeZone: "UTC"}},
		{Name: "score", Type: arrow.PrimitiveTypes.Float64, Nullable: true},
	}, nil)

	b := array.NewRecordBuilder(mem, schema)
	defer b.Release()

	for _, p := range people {
		b.Field(0).(*array.StringBuilder).Append(p.first)
		b.Field(1).(*array.StringBuilder).Append(p.last)
		b.Field(2).(*array.Int64Builder).Append(p.age)
		ts, err := arrow.TimestampFromTime(p.joined, arrow.Microsecond)
		require.NoError(t, err)
		b.Field(3).(*array.TimestampBuilder).Append(ts)
		if p.score == nil {
			b.Field(4).(*array.Float64Builder).AppendNull()
		} else {
			b.Field(4).(*array.Float64Builder).Append(*p.score)
		}
	}
	return b.NewRecord()
}

func firstNames(rec arrow.Record) []string {
	col := rec.Column(0).(*array.String)
	names := make([]string, col.Len())
	for i := range names {
		names[i] = col.Value(i)
	}
	return names
}

func TestFilter(t *testing.T) {
	fields := filter.NewFieldResolver(map[string]string{
		"firstName": "first_name",
		"lastName":  "last_name",
	}, nil)

	tests := []struct {
		name     string
		node     map[string]any
		expected []string
	}{
		{
			"starts",
			map[string]any{"firstName": map[string]any{"starts": "Saur"}},
			[]string{"Saurabh", "Saurav"},
		},
		{
			"and",
			map[string]any{"and": []any{
				map[string]any{"firstName": map[string]any{"contains": "Saur"}},
				map[string]any{"age": map[string]any{"gte": 25}},
			}},
			[]string{"Saurabh"},
		},
		{
			"or with not",
			map[string]any{"or": []any{
				map[string]any{"lastName": map[string]any{"in": []any{"Gupta", "Kumar"}}},
				map[string]any{"not": map[string]any{"age": map[string]any{"gt": 20}}},
			}},
			[]string{"Vinod", "Asha", "Saurav"},
		},
		{
			"between",
			map[string]any{"age": map[string]any{"between": []any{19.0, 30.0}}},
			[]string{"Saurabh", "Vinod", "Saurav"},
		},
		{
			"eq",
			map[string]any{"age": map[string]any{"eq": 41}},
			[]string{"Asha"},
		},
		{
			"equals",
			map[string]any{"lastName": map[string]any{"equals": "Singh"}},
			[]string{"Saurav"},
		},
		{
			"nulls never match",
			map[string]any{"score": map[string]any{"lt": 100}},
			[]string{"Saurabh", "Asha", "Saurav"},
		},
		{
			"not never matches nulls",
			map[string]any{"not": map[string]any{"score": map[string]any{"lt": 7}}},
			[]string{"Saurabh", "Asha"},
		},
		{
			"or with null operand",
			map[string]any{"or": []any{
				map[string]any{"score": map[string]any{"gt": 100}},
				map[string]any{"age": map[string]any{"eq": 25}},
			}},
			[]string{"Vinod"},
		},
		{
			"not over unknown conjunction",
			map[string]any{"not": map[string]any{"and": []any{
				map[string]any{"score": map[string]any{"gt": 100}},
				map[string]any{"age": map[string]any{"eq": 25}},
			}}},
			[]string{"Saurabh", "Asha", "Saurav"},
		},
		{
			"timestamp against date",
			map[string]any{"joined": map[string]any{"gte": time.Date(2021, 6, 1, 0, 0, 0, 0, time.UTC)}},
			[]string{"Vinod", "Saurav"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mem := memory.NewCheckedAllocator(memory.DefaultAllocator)
			defer mem.AssertSize(t, 0)

			rec := newRecord(t, mem)
			defer rec.Release()

			expr, err := filter.Parse(tt.node)
			require.NoError(t, err)
			m, err := arrowmatch.Render(expr, fields)
			require.NoError(t, err)

			out, err := arrowmatch.Filter(context.Background(), rec, m, mem)
			require.NoError(t, err)
			defer out.Release()

			assert.Equal(t, tt.expected, firstNames(out))
		})
	}
}

func TestRenderNilMatchesAll(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.DefaultAllocator)
	defer mem.AssertSize(t, 0)
	rec := newRecord(t, mem)
	defer rec.Release()

	m, err := arrowmatch.Render(nil, nil)
	require.NoError(t, err)

	mask, err := arrowmatch.Mask(rec, m, mem)
	require.NoError(t, err)
	defer mask.Release()
	assert.Equal(t, len(people), mask.Len())
	for i := 0; i < mask.Len(); i++ {
		assert.True(t, mask.Value(i))
	}
}

func TestUnknownColumn(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.DefaultAllocator)
	defer mem.AssertSize(t, 0)
	rec := newRecord(t, mem)
	defer rec.Release()

	expr, err := filter.Parse(map[string]any{"salary": map[string]any{"gt": 1}})
	require.NoError(t, err)
	m, err := arrowmatch.Render(expr, nil)
	require.NoError(t, err)

	_, err = arrowmatch.Filter(context.Background(), rec, m, mem)
	assert.ErrorIs(t, err, arrowmatch.ErrUnknownColumn)
}

func TestIncomparable(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.DefaultAllocator)
	defer mem.AssertSize(t, 0)
	rec := newRecord(t, mem)
	defer rec.Release()

	expr, err := filter.Parse(map[string]any{"age": map[string]any{"gt": "old"}})
	require.NoError(t, err)
	m, err := arrowmatch.Render(expr, nil)
	require.NoError(t, err)

	_, err = arrowmatch.Mask(rec, m, mem)
	assert.ErrorIs(t, err, arrowmatch.ErrIncomparable)
}

func TestNotKeepsUnknown(t *testing.T) {
	unknown := arrowmatch.Condition(func(arrow.Record, int) (arrowmatch.Truth, error) {
		return arrowmatch.Unknown, nil
	})

	not, err := arrowmatch.Builder{}.Not(unknown)
	require.NoError(t, err)
	got, err := not(nil, 0)
	require.NoError(t, err)
	assert.Equal(t, arrowmatch.Unknown, got)

	matched, err := not.Matcher()(nil, 0)
	require.NoError(t, err)
	assert.False(t, matched)
}
