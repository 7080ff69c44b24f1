package predicate

import (
	"fmt"

	"github.com/hugr-lab/filterql/filter"
)

// Renderer adapts a Builder to the filter.Visitor contract.
// Results flow bottom-up; the accumulator argument is not used.
type Renderer[P any] struct {
	builder Builder[P]
	fields  *filter.FieldResolver
}

// NewRenderer creates a renderer over builder. fields may be nil.
func NewRenderer[P any](builder Builder[P], fields *filter.FieldResolver) *Renderer[P] {
	return &Renderer[P]{builder: builder, fields: fields}
}

// Render builds the predicate for root. A nil root yields the zero P.
func Render[P any](root filter.Expression, builder Builder[P], fields *filter.FieldResolver) (P, error) {
	return NewRenderer(builder, fields).Render(root)
}

// Render builds the predicate for root. A nil root yields the zero P.
func (r *Renderer[P]) Render(root filter.Expression) (P, error) {
	var zero P
	if root == nil {
		return zero, nil
	}
	return filter.Accept[P](root, r, zero)
}

func (r *Renderer[P]) VisitCompound(c *filter.Compound, acc P) (P, error) {
	var zero P
	left, err := filter.Accept[P](c.Left, r, zero)
	if err != nil {
		return zero, err
	}
	right, err := filter.Accept[P](c.Right, r, zero)
	if err != nil {
		return zero, err
	}
	switch c.Op.Token {
	case filter.TokenAnd:
		return r.builder.And(left, right)
	case filter.TokenOr:
		return r.builder.Or(left, right)
	default:
		return zero, fmt.Errorf("%w: %q cannot combine two expressions", filter.ErrUnknownOperator, c.Op.Token)
	}
}

func (r *Renderer[P]) VisitUnary(u *filter.Unary, acc P) (P, error) {
	var zero P
	if u.Op.Token != filter.TokenNot {
		return zero, fmt.Errorf("%w: %q is not a unary operator", filter.ErrUnknownOperator, u.Op.Token)
	}
	operand, err := filter.Accept[P](u.Operand, r, zero)
	if err != nil {
		return zero, err
	}
	return r.builder.Not(operand)
}

func (r *Renderer[P]) VisitBinary(b *filter.Binary, acc P) (P, error) {
	var zero P
	if err := b.Validate(); err != nil {
		return zero, err
	}
	field, values := r.fields.ResolveBinary(b)
	if len(values) == 0 {
		return zero, &filter.ShapeError{Path: "/", Reason: fmt.Sprintf("operator %q on field %q has no operands", b.Op.Token, field)}
	}

	switch b.Op.Token {
	case filter.TokenEquals:
		return r.builder.Match(field, MatchExact, filter.FormatOperand(values[0]))
	case filter.TokenContains:
		return r.builder.Match(field, MatchSubstring, filter.FormatOperand(values[0]))
	case filter.TokenStarts:
		return r.builder.Match(field, MatchPrefix, filter.FormatOperand(values[0]))
	case filter.TokenEnds:
		return r.builder.Match(field, MatchSuffix, filter.FormatOperand(values[0]))
	case filter.TokenEq:
		return r.builder.Equal(field, values[0])
	case filter.TokenGt:
		return r.builder.Compare(field, Greater, values[0])
	case filter.TokenGte:
		return r.builder.Compare(field, GreaterOrEqual, values[0])
	case filter.TokenLt:
		return r.builder.Compare(field, Less, values[0])
	case filter.TokenLte:
		return r.builder.Compare(field, LessOrEqual, values[0])
	case filter.TokenIn:
		return r.builder.In(field, values)
	case filter.TokenBetween:
		if len(values) != 2 {
			return zero, &filter.ShapeError{Path: "/", Reason: fmt.Sprintf("operator %q on field %q requires exactly 2 operands, got %d", b.Op.Token, field, len(values))}
		}
		return r.builder.Range(field, values[0], values[1])
	default:
		return zero, fmt.Errorf("%w: %q is not a comparison", filter.ErrUnknownOperator, b.Op.Token)
	}
}

// VisitField and VisitValue are consumed by VisitBinary; on their own they
// contribute nothing to a predicate.
func (r *Renderer[P]) VisitField(f *filter.Field, acc P) (P, error) { return acc, nil }

func (r *Renderer[P]) VisitValue(field string, v *filter.Value, acc P) (P, error) { return acc, nil }
