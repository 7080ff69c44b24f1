package filter

import (
	"strings"
	"testing"
)

func TestInfixRender(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"contains", `{"firstName": {"contains": "Saurabh"}}`, "(firstName contains Saurabh)"},
		{"in", `{"lastName": {"in": ["Jaiswal", "Gupta", "Kumar"]}}`, "(lastName in Jaiswal,Gupta,Kumar)"},
		{"between", `{"age": {"between": [20, 30.5]}}`, "(age between 20,30.5)"},
		{"not", `{"not": {"age": {"gte": 25}}}`, "( NOT (age gte 25))"},
		{
			"and fold",
			`{"and": [{"a": {"eq": 1}}, {"b": {"eq": 2}}, {"c": {"eq": 3}}]}`,
			"(((a eq 1) and (b eq 2)) and (c eq 3))",
		},
		{
			"mixed",
			`{"or": [{"and": [{"a": {"starts": "x"}}, {"b": {"ends": "y"}}]}, {"not": {"c": {"lt": 0}}}]}`,
			"(((a starts x) and (b ends y)) or ( NOT (c lt 0)))",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			expr := mustParse(t, tt.input)
			got, err := NewInfixRenderer(nil).Render(expr)
			if err != nil {
				t.Fatalf("Render failed: %v", err)
			}
			if got != tt.expected {
				t.Errorf("expected '%s', got '%s'", tt.expected, got)
			}
			if got != expr.String() {
				t.Errorf("expected renderer to match String(), got '%s' and '%s'", got, expr.String())
			}
		})
	}
}

func TestInfixRenaming(t *testing.T) {
	expr := mustParse(t, `{"and": [
		{"firstName": {"contains": "Saurabh"}},
		{"or": [{"lastName": {"eq": "Gupta"}}, {"not": {"firstName": {"ends": "h"}}}]}
	]}`)

	fields := NewFieldResolver(map[string]string{"firstName": "first_name"}, nil)
	got, err := NewInfixRenderer(fields).Render(expr)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	expected := "((first_name contains Saurabh) and ((lastName eq Gupta) or ( NOT (first_name ends h))))"
	if got != expected {
		t.Errorf("expected '%s', got '%s'", expected, got)
	}
	if strings.Contains(expr.String(), "first_name") {
		t.Errorf("expected tree to be left untouched, got %s", expr)
	}
}

func TestInfixTransformer(t *testing.T) {
	expr := mustParse(t, `{"and": [{"email": {"equals": "A@B.COM"}}, {"code": {"in": ["x", "y"]}}]}`)

	fields := NewFieldResolver(nil, TransformerFuncs{
		Field: func(field string) (string, bool) {
			if field == "email" {
				return "lower_email", true
			}
			return "", false
		},
		Value: func(field string, values []any) []any {
			out := make([]any, len(values))
			for i, v := range values {
				out[i] = strings.ToLower(FormatOperand(v))
			}
			return out
		},
	})

	got, err := NewInfixRenderer(fields).Render(expr)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	expected := "((lower_email equals a@b.com) and (code in x,y))"
	if got != expected {
		t.Errorf("expected '%s', got '%s'", expected, got)
	}
}

func TestInfixEmpty(t *testing.T) {
	got, err := NewInfixRenderer(nil).Render(nil)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got != "" {
		t.Errorf("expected empty string, got '%s'", got)
	}
}
