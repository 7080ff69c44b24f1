package filter

import "strings"

// InfixRenderer renders expressions as human-readable parenthesized infix text:
//
//	((firstName contains Saurabh) and (age gte 25))
//
// Operand lists are comma-joined and never quoted.
type InfixRenderer struct {
	fields *FieldResolver
}

var _ Visitor[string] = (*InfixRenderer)(nil)

// NewInfixRenderer creates an infix renderer. fields may be nil.
func NewInfixRenderer(fields *FieldResolver) *InfixRenderer {
	return &InfixRenderer{fields: fields}
}

// Render returns the infix text of e, or an empty string if e is nil.
func (r *InfixRenderer) Render(e Expression) (string, error) {
	if e == nil {
		return "", nil
	}
	return Accept[string](e, r, "")
}

func (r *InfixRenderer) VisitCompound(c *Compound, acc string) (string, error) {
	left, err := Accept[string](c.Left, r, "")
	if err != nil {
		return "", err
	}
	right, err := Accept[string](c.Right, r, "")
	if err != nil {
		return "", err
	}
	return acc + "(" + left + " " + c.Op.Token + " " + right + ")", nil
}

func (r *InfixRenderer) VisitBinary(b *Binary, acc string) (string, error) {
	if err := b.Validate(); err != nil {
		return "", err
	}
	field, err := Accept[string](b.Field, r, "")
	if err != nil {
		return "", err
	}
	value, err := r.VisitValue(b.Field.Name, b.Value, "")
	if err != nil {
		return "", err
	}
	return acc + "(" + field + " " + b.Op.Token + " " + value + ")", nil
}

func (r *InfixRenderer) VisitUnary(u *Unary, acc string) (string, error) {
	operand, err := Accept[string](u.Operand, r, "")
	if err != nil {
		return "", err
	}
	return acc + "( " + strings.ToUpper(u.Op.Token) + " " + operand + ")", nil
}

func (r *InfixRenderer) VisitField(f *Field, acc string) (string, error) {
	return acc + r.fields.Field(f.Name), nil
}

func (r *InfixRenderer) VisitValue(field string, v *Value, acc string) (string, error) {
	values := v.Values
	if field != "" {
		_, values = r.fields.Resolve(field, values)
	}
	return acc + joinOperands(values), nil
}
