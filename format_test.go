package filterql_test

import (
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/hugr-lab/filterql"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want filterql.Format
	}{
		{"infix", filterql.FormatInfix},
		{"SQL", filterql.FormatSQL},
		{"orm-predicate", filterql.FormatORMPredicate},
		{"gorm", filterql.FormatORMPredicate},
		{" search ", filterql.FormatSearchCriteria},
		{"elasticsearch", filterql.FormatSearchCriteria},
		{"document-criteria", filterql.FormatDocumentCriteria},
		{"mongo", filterql.FormatDocumentCriteria},
	}
	for _, tt := range tests {
		got, err := filterql.ParseFormat(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := filterql.ParseFormat("xml")
	assert.ErrorIs(t, err, filterql.ErrUnknownFormat)
}

func TestFormatText(t *testing.T) {
	var f filterql.Format
	assert.False(t, f.Valid())
	_, err := f.MarshalText()
	assert.ErrorIs(t, err, filterql.ErrUnknownFormat)

	require.NoError(t, f.UnmarshalText([]byte("document")))
	assert.Equal(t, filterql.FormatDocumentCriteria, f)

	text, err := f.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "document", string(text))
}

func TestDecodeMsgpack(t *testing.T) {
	data, err := msgpack.Marshal(map[string]any{
		"or": []any{
			map[string]any{"age": map[string]any{"lt": 18}},
			map[string]any{"lastName": map[string]any{"in": []string{"Gupta", "Kumar"}}},
		},
	})
	require.NoError(t, err)

	raw, err := filterql.DecodeMsgpack(data)
	require.NoError(t, err)
	spec, err := filterql.Build(raw, nil)
	require.NoError(t, err)

	sql, err := spec.SQL()
	require.NoError(t, err)
	assert.Equal(t, "WHERE ((age < '18') OR (lastName IN ('Gupta', 'Kumar')))", sql)

	raw, err = filterql.DecodeMsgpack(nil)
	require.NoError(t, err)
	assert.Nil(t, raw)

	_, err = filterql.DecodeMsgpack([]byte{0xc1})
	assert.ErrorIs(t, err, filterql.ErrInvalidInput)
}

func TestDecodeJSON(t *testing.T) {
	raw, err := filterql.DecodeJSON([]byte(`{"age": {"gte": 25.5}}`))
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"age": map[string]any{"gte": json.Number("25.5")}}, raw)

	_, err = filterql.DecodeJSON([]byte(`{"a": {"eq": 1}} {"b": {"eq": 2}}`))
	assert.ErrorIs(t, err, filterql.ErrInvalidInput)

	raw, err = filterql.DecodeJSON([]byte(" null "))
	require.NoError(t, err)
	assert.Nil(t, raw)
}
