package filter

import (
	"errors"
	"testing"
	"time"
)

func TestSQLSingleComparison(t *testing.T) {
	expr := mustParse(t, `{"firstName": {"contains": "Saurabh"}}`)

	sql, err := NewSQLRenderer(nil).Render(expr)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	expected := "WHERE (firstName LIKE '%Saurabh%')"
	if sql != expected {
		t.Errorf("expected '%s', got '%s'", expected, sql)
	}
}

func TestSQLOperators(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{`{"name": {"equals": "Ann"}}`, "WHERE (name = 'Ann')"},
		{`{"name": {"contains": "nn"}}`, "WHERE (name LIKE '%nn%')"},
		{`{"name": {"starts": "An"}}`, "WHERE (name LIKE 'An%')"},
		{`{"name": {"ends": "nn"}}`, "WHERE (name LIKE '%nn')"},
		{`{"age": {"eq": 25}}`, "WHERE (age = '25')"},
		{`{"age": {"gt": 25}}`, "WHERE (age > '25')"},
		{`{"age": {"gte": 25}}`, "WHERE (age >= '25')"},
		{`{"age": {"lt": 25}}`, "WHERE (age < '25')"},
		{`{"age": {"lte": 25.5}}`, "WHERE (age <= '25.5')"},
		{`{"lastName": {"in": ["Jaiswal", "Gupta", "Kumar"]}}`, "WHERE (lastName IN ('Jaiswal', 'Gupta', 'Kumar'))"},
		{`{"age": {"between": [20, 30]}}`, "WHERE (age BETWEEN '20' AND '30')"},
		{`{"active": {"eq": true}}`, "WHERE (active = 'true')"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			sql, err := NewSQLRenderer(nil).Render(mustParse(t, tt.input))
			if err != nil {
				t.Fatalf("Render failed: %v", err)
			}
			if sql != tt.expected {
				t.Errorf("expected '%s', got '%s'", tt.expected, sql)
			}
		})
	}
}

func TestSQLLogical(t *testing.T) {
	expr := mustParse(t, `{"or": [
		{"and": [{"firstName": {"contains": "Saurabh"}}, {"age": {"gte": 25}}]},
		{"not": {"lastName": {"in": ["Gupta"]}}}
	]}`)

	sql, err := NewSQLRenderer(nil).Render(expr)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	expected := "WHERE (((firstName LIKE '%Saurabh%') AND (age >= '25')) OR ( NOT (lastName IN ('Gupta'))))"
	if sql != expected {
		t.Errorf("expected '%s', got '%s'", expected, sql)
	}
}

func TestSQLLeftFold(t *testing.T) {
	expr := mustParse(t, `{"or": [{"a": {"eq": 1}}, {"b": {"eq": 2}}, {"c": {"eq": 3}}]}`)

	sql, err := NewSQLRenderer(&SQLOptions{OmitWherePrefix: true}).Render(expr)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	expected := "(((a = '1') OR (b = '2')) OR (c = '3'))"
	if sql != expected {
		t.Errorf("expected '%s', got '%s'", expected, sql)
	}
}

func TestSQLEscaping(t *testing.T) {
	expr := mustParse(t, `{"and": [{"name": {"equals": "O'Brien"}}, {"note": {"contains": "it's"}}]}`)

	sql, err := NewSQLRenderer(nil).Render(expr)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	expected := "WHERE ((name = 'O''Brien') AND (note LIKE '%it''s%'))"
	if sql != expected {
		t.Errorf("expected '%s', got '%s'", expected, sql)
	}
}

func TestSQLIdentifierQuoting(t *testing.T) {
	tests := []struct {
		column   string
		expected string
	}{
		{"age", "age"},
		{"order", `"order"`},
		{"first name", `"first name"`},
		{"1st", `"1st"`},
		{"users.age", "users.age"},
		{"users.group", `users."group"`},
		{`we"ird`, `"we""ird"`},
	}

	for _, tt := range tests {
		t.Run(tt.column, func(t *testing.T) {
			if got := quoteColumn(tt.column); got != tt.expected {
				t.Errorf("expected '%s', got '%s'", tt.expected, got)
			}
		})
	}
}

func TestSQLFieldRenaming(t *testing.T) {
	expr := mustParse(t, `{"and": [
		{"firstName": {"contains": "Saurabh"}},
		{"not": {"or": [{"lastName": {"eq": "Gupta"}}, {"age": {"lt": 18}}]}}
	]}`)

	fields := NewFieldResolver(map[string]string{
		"firstName": "first_name",
		"lastName":  "users.last_name",
	}, nil)

	sql, err := NewSQLRenderer(&SQLOptions{Fields: fields}).Render(expr)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	expected := "WHERE ((first_name LIKE '%Saurabh%') AND ( NOT ((users.last_name = 'Gupta') OR (age < '18'))))"
	if sql != expected {
		t.Errorf("expected '%s', got '%s'", expected, sql)
	}
}

func TestSQLColumnExpressions(t *testing.T) {
	expr := mustParse(t, `{"fullName": {"starts": "Sau"}}`)

	sql, err := NewSQLRenderer(&SQLOptions{
		Fields:            NewFieldResolver(map[string]string{"fullName": "full_name"}, nil),
		ColumnExpressions: map[string]string{"full_name": "CONCAT(first_name, ' ', last_name)"},
	}).Render(expr)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	expected := "WHERE (CONCAT(first_name, ' ', last_name) LIKE 'Sau%')"
	if sql != expected {
		t.Errorf("expected '%s', got '%s'", expected, sql)
	}
}

func TestSQLTemporal(t *testing.T) {
	ts := time.Date(2024, time.March, 1, 10, 30, 0, 0, time.FixedZone("CET", 3600))
	expr, err := Parse(map[string]any{"created": map[string]any{"gte": ts}})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	sql, err := NewSQLRenderer(nil).Render(expr)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	expected := "WHERE (created >= '2024-03-01 09:30:00')"
	if sql != expected {
		t.Errorf("expected '%s', got '%s'", expected, sql)
	}

	frac := time.Date(2024, time.March, 1, 9, 30, 0, 250000000, time.UTC)
	if got := literal(frac); got != "'2024-03-01 09:30:00.25'" {
		t.Errorf("unexpected fractional literal %s", got)
	}
}

func TestSQLEmpty(t *testing.T) {
	sql, err := NewSQLRenderer(nil).Render(nil)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if sql != "" {
		t.Errorf("expected empty string, got '%s'", sql)
	}
}

func TestSQLInvalidTree(t *testing.T) {
	expr := &Compound{
		Left:  &Binary{Field: &Field{Name: "a"}, Op: OpEq, Value: &Value{Values: []any{1}}},
		Op:    OpAnd,
		Right: &Binary{Op: OpEq, Value: &Value{Values: []any{2}}},
	}

	_, err := NewSQLRenderer(nil).Render(expr)
	if !errors.Is(err, ErrInvalidFilterShape) {
		t.Errorf("expected ErrInvalidFilterShape, got %v", err)
	}
}
