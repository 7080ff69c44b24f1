package filter

import (
	"fmt"
	"strings"
)

// SQLRenderer renders expressions as a SQL WHERE clause:
//
//	WHERE ((firstName LIKE '%Saurabh%') AND (age >= '25'))
//
// Every operand is emitted as a quoted string literal; the database is
// expected to coerce it to the column type.
type SQLRenderer struct {
	opts SQLOptions
}

var _ Visitor[string] = (*SQLRenderer)(nil)

// NewSQLRenderer creates a SQL renderer. If opts is nil, default options are used.
func NewSQLRenderer(opts *SQLOptions) *SQLRenderer {
	r := &SQLRenderer{}
	if opts != nil {
		r.opts = *opts
	}
	return r
}

// Render returns the WHERE clause for e, or an empty string if e is nil.
func (r *SQLRenderer) Render(e Expression) (string, error) {
	if e == nil {
		return "", nil
	}
	body, err := Accept[string](e, r, "")
	if err != nil {
		return "", err
	}
	if r.opts.OmitWherePrefix {
		return body, nil
	}
	return "WHERE " + body, nil
}

func (r *SQLRenderer) VisitCompound(c *Compound, acc string) (string, error) {
	left, err := Accept[string](c.Left, r, "")
	if err != nil {
		return "", err
	}
	right, err := Accept[string](c.Right, r, "")
	if err != nil {
		return "", err
	}
	return acc + "(" + left + " " + strings.ToUpper(c.Op.Token) + " " + right + ")", nil
}

func (r *SQLRenderer) VisitUnary(u *Unary, acc string) (string, error) {
	operand, err := Accept[string](u.Operand, r, "")
	if err != nil {
		return "", err
	}
	return acc + "( NOT " + operand + ")", nil
}

func (r *SQLRenderer) VisitBinary(b *Binary, acc string) (string, error) {
	if err := b.Validate(); err != nil {
		return "", err
	}
	column, err := Accept[string](b.Field, r, "")
	if err != nil {
		return "", err
	}
	_, values := r.opts.Fields.Resolve(b.Field.Name, b.Value.Values)
	if len(values) == 0 {
		return "", newShapeError("", "operator %q on field %q has no operands", b.Op.Token, b.Field.Name)
	}

	var cond string
	switch b.Op.Token {
	case TokenEquals, TokenEq:
		cond = column + " = " + literal(values[0])
	case TokenContains:
		cond = column + " LIKE " + quoteLiteral("%"+FormatOperand(values[0])+"%")
	case TokenStarts:
		cond = column + " LIKE " + quoteLiteral(FormatOperand(values[0])+"%")
	case TokenEnds:
		cond = column + " LIKE " + quoteLiteral("%"+FormatOperand(values[0]))
	case TokenGt:
		cond = column + " > " + literal(values[0])
	case TokenGte:
		cond = column + " >= " + literal(values[0])
	case TokenLt:
		cond = column + " < " + literal(values[0])
	case TokenLte:
		cond = column + " <= " + literal(values[0])
	case TokenIn:
		parts := make([]string, len(values))
		for i, v := range values {
			parts[i] = literal(v)
		}
		cond = column + " IN (" + strings.Join(parts, ", ") + ")"
	case TokenBetween:
		if len(values) != 2 {
			return "", newShapeError("", "operator %q on field %q requires exactly 2 operands, got %d", b.Op.Token, b.Field.Name, len(values))
		}
		cond = column + " BETWEEN " + literal(values[0]) + " AND " + literal(values[1])
	default:
		return "", fmt.Errorf("%w: %q is not a comparison", ErrUnknownOperator, b.Op.Token)
	}
	return acc + "(" + cond + ")", nil
}

// VisitField renders the target column, preferring a configured column expression.
func (r *SQLRenderer) VisitField(f *Field, acc string) (string, error) {
	name := r.opts.Fields.Field(f.Name)
	if expr, ok := r.opts.ColumnExpressions[name]; ok {
		return acc + expr, nil
	}
	return acc + quoteColumn(name), nil
}

// VisitValue renders a comma-separated literal list. Comparisons render their
// operands directly; this is used only for a standalone value node.
func (r *SQLRenderer) VisitValue(field string, v *Value, acc string) (string, error) {
	values := v.Values
	if field != "" {
		_, values = r.opts.Fields.Resolve(field, values)
	}
	parts := make([]string, len(values))
	for i, x := range values {
		parts[i] = literal(x)
	}
	return acc + strings.Join(parts, ", "), nil
}
