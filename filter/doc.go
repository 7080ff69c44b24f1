// Package filter parses nested filter specifications into expression trees
// and renders them as infix text or SQL.
//
// A filter specification is a tree of single-entry mappings. Each key is
// either an operator token or a field name:
//
//	{
//	  "and": [
//	    {"firstName": {"contains": "Saurabh"}},
//	    {"age": {"gte": 25}},
//	    {"not": {"lastName": {"in": ["Gupta", "Kumar"]}}}
//	  ]
//	}
//
// # Basic Usage
//
//	expr, err := filter.Parse(input)
//	if err != nil {
//	    return err // errors.Is(err, filter.ErrInvalidFilterShape) or filter.ErrUnknownOperator
//	}
//
//	where, err := filter.NewSQLRenderer(nil).Render(expr)
//	// WHERE (((firstName LIKE '%Saurabh%') AND (age >= '25')) AND ( NOT (lastName IN ('Gupta', 'Kumar'))))
//
// and/or operand lists fold to the left, so [A, B, C] becomes ((A and B) and C).
//
// # Operators
//
// Logical: and, or (two or more operands), not (one operand).
// Relational: equals, contains, starts, ends, eq, gt, gte, lt, lte,
// in (one or more operands) and between (exactly two operands).
//
// # Field Renaming
//
// A FieldResolver maps source field names to target names in every renderer:
//
//	fields := filter.NewFieldResolver(map[string]string{"firstName": "first_name"}, nil)
//	sql, err := filter.NewSQLRenderer(&filter.SQLOptions{Fields: fields}).Render(expr)
//
// Fields missing from the rename table may be handed to a Transformer, which
// can rename them and rewrite their operands.
//
// # Temporal Operands
//
// time.Time, civil.Date and civil.DateTime operands are normalized to UTC
// time.Time values, so a calendar date and a timestamp for the same instant
// compare and render identically. ParseOptions.TemporalStrings extends this
// to RFC 3339 and YYYY-MM-DD strings.
//
// # Custom Renderers
//
// Implement Visitor[T] and call Accept to produce other target forms.
// The predicate package builds backend-native predicates this way.
package filter
