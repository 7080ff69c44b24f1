package filter

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Expression is the interface implemented by all filter expression nodes.
// The set of node types is closed: Field, Value, Binary, Compound and Unary.
// Use Accept or a type switch to access specific node data.
type Expression interface {
	// String returns the canonical parenthesized infix form of the node.
	// It ignores field renames and is meant for debugging and equality checks.
	String() string

	// expressionMarker is a marker method to prevent external implementation.
	expressionMarker()
}

// Field references a filter field by its source name.
type Field struct {
	Name string
}

// Value holds the comparison operands of a Binary node.
// Values is always a list, even for a single operand.
type Value struct {
	Values []any
}

// Binary compares a Field against a Value with a relational operator.
type Binary struct {
	Field *Field
	Op    Operator
	Value *Value
}

// Compound combines two expressions with a logical and/or operator.
type Compound struct {
	Left  Expression
	Op    Operator
	Right Expression
}

// Unary negates a single expression.
type Unary struct {
	Op      Operator
	Operand Expression
}

func (*Field) expressionMarker()    {}
func (*Value) expressionMarker()    {}
func (*Binary) expressionMarker()   {}
func (*Compound) expressionMarker() {}
func (*Unary) expressionMarker()    {}

func (f *Field) String() string { return f.Name }

func (v *Value) String() string { return joinOperands(v.Values) }

func (b *Binary) String() string {
	var field, value string
	if b.Field != nil {
		field = b.Field.String()
	}
	if b.Value != nil {
		value = b.Value.String()
	}
	return "(" + field + " " + b.Op.Token + " " + value + ")"
}

func (c *Compound) String() string {
	return "(" + c.Left.String() + " " + c.Op.Token + " " + c.Right.String() + ")"
}

func (u *Unary) String() string {
	return "( " + strings.ToUpper(u.Op.Token) + " " + u.Operand.String() + ")"
}

// First returns the first operand, or nil if there is none.
func (v *Value) First() any {
	if v == nil || len(v.Values) == 0 {
		return nil
	}
	return v.Values[0]
}

// Len returns the number of operands.
func (v *Value) Len() int {
	if v == nil {
		return 0
	}
	return len(v.Values)
}

// combinable reports whether e may appear as an operand of a Compound or Unary node.
func combinable(e Expression) bool {
	switch n := e.(type) {
	case *Binary:
		return n != nil && n.Field != nil && n.Value != nil
	case *Compound:
		return n != nil
	case *Unary:
		return n != nil
	default:
		return false
	}
}

// joinOperands renders operands comma-joined without quoting.
func joinOperands(values []any) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = FormatOperand(v)
	}
	return strings.Join(parts, ",")
}

// FormatOperand renders a single normalized operand as plain text.
// Times render as RFC 3339 in UTC; numbers use the shortest exact form.
func FormatOperand(v any) string {
	switch x := v.(type) {
	case nil:
		return "null"
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case time.Time:
		return x.UTC().Format(time.RFC3339Nano)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case int:
		return strconv.Itoa(x)
	case int8:
		return strconv.FormatInt(int64(x), 10)
	case int16:
		return strconv.FormatInt(int64(x), 10)
	case int32:
		return strconv.FormatInt(int64(x), 10)
	case int64:
		return strconv.FormatInt(x, 10)
	case uint:
		return strconv.FormatUint(uint64(x), 10)
	case uint8:
		return strconv.FormatUint(uint64(x), 10)
	case uint16:
		return strconv.FormatUint(uint64(x), 10)
	case uint32:
		return strconv.FormatUint(uint64(x), 10)
	case uint64:
		return strconv.FormatUint(x, 10)
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}

// Validate reports an ErrInvalidFilterShape error if the comparison is
// missing its field or operands. Trees built by Parser always validate.
func (b *Binary) Validate() error {
	if b.Field == nil || b.Field.Name == "" {
		return newShapeError("", "comparison %q has no field", b.Op.Token)
	}
	if b.Value == nil || len(b.Value.Values) == 0 {
		return newShapeError("", "comparison %q on field %q has no operands", b.Op.Token, b.Field.Name)
	}
	return nil
}
