// Package gormclause builds gorm clause expressions from filter trees.
//
//	expr, err := gormclause.Render(tree, fields)
//	db.Where(expr).Find(&users)
package gormclause

import (
	"strings"

	"gorm.io/gorm/clause"

	"github.com/hugr-lab/filterql/filter"
	"github.com/hugr-lab/filterql/predicate"
)

// Builder implements predicate.Builder for clause.Expression.
type Builder struct {
	// Table qualifies columns that carry no table prefix of their own.
	// OPTIONAL: If empty, unqualified fields stay unqualified.
	Table string
}

var _ predicate.Builder[clause.Expression] = Builder{}

// Render converts root into a gorm expression. A nil root yields a nil expression.
func Render(root filter.Expression, fields *filter.FieldResolver) (clause.Expression, error) {
	return Builder{}.Render(root, fields)
}

// Render converts root into a gorm expression, qualifying columns with b.Table.
func (b Builder) Render(root filter.Expression, fields *filter.FieldResolver) (clause.Expression, error) {
	return predicate.Render[clause.Expression](root, b, fields)
}

// Where wraps expr in a WHERE clause for use with (*gorm.DB).Clauses.
func Where(expr clause.Expression) clause.Where {
	if expr == nil {
		return clause.Where{}
	}
	return clause.Where{Exprs: []clause.Expression{expr}}
}

func (b Builder) column(field string) clause.Column {
	if i := strings.LastIndexByte(field, '.'); i > 0 {
		return clause.Column{Table: field[:i], Name: field[i+1:]}
	}
	return clause.Column{Table: b.Table, Name: field}
}

func (b Builder) And(left, right clause.Expression) (clause.Expression, error) {
	return clause.And(left, right), nil
}

func (b Builder) Or(left, right clause.Expression) (clause.Expression, error) {
	return clause.Or(left, right), nil
}

// Not negates operand as a whole. clause.Not would split a conjunction and
// negate its terms one by one.
func (b Builder) Not(operand clause.Expression) (clause.Expression, error) {
	return clause.NotConditions{Exprs: []clause.Expression{operand}}, nil
}

func (b Builder) Equal(field string, value any) (clause.Expression, error) {
	return clause.Eq{Column: b.column(field), Value: value}, nil
}

func (b Builder) Compare(field string, cmp predicate.Comparison, value any) (clause.Expression, error) {
	col := b.column(field)
	switch cmp {
	case predicate.Greater:
		return clause.Gt{Column: col, Value: value}, nil
	case predicate.GreaterOrEqual:
		return clause.Gte{Column: col, Value: value}, nil
	case predicate.Less:
		return clause.Lt{Column: col, Value: value}, nil
	default:
		return clause.Lte{Column: col, Value: value}, nil
	}
}

// Range is expressed as the conjunction of its two bounds.
func (b Builder) Range(field string, lo, hi any) (clause.Expression, error) {
	col := b.column(field)
	return clause.And(
		clause.Gte{Column: col, Value: lo},
		clause.Lte{Column: col, Value: hi},
	), nil
}

func (b Builder) Match(field string, kind predicate.MatchKind, pattern string) (clause.Expression, error) {
	col := b.column(field)
	switch kind {
	case predicate.MatchSubstring:
		return clause.Like{Column: col, Value: "%" + pattern + "%"}, nil
	case predicate.MatchPrefix:
		return clause.Like{Column: col, Value: pattern + "%"}, nil
	case predicate.MatchSuffix:
		return clause.Like{Column: col, Value: "%" + pattern}, nil
	default:
		return clause.Eq{Column: col, Value: pattern}, nil
	}
}

func (b Builder) In(field string, values []any) (clause.Expression, error) {
	return clause.IN{Column: b.column(field), Values: values}, nil
}
