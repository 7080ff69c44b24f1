package filter

import "fmt"

// Visitor walks an expression tree producing a result of type T.
// There is one method per node kind; Accept performs the dispatch.
//
// Combining nodes are expected to visit their operands first and then
// combine the results according to their own operator. Binary visitors
// pass the source field name explicitly to VisitValue, so an implementation
// never needs per-instance state to pair a field with its value.
type Visitor[T any] interface {
	VisitField(f *Field, acc T) (T, error)

	// VisitValue visits the operands paired with field, the source name of
	// the Binary node's field. field is empty when a Value is visited on its own.
	VisitValue(field string, v *Value, acc T) (T, error)

	VisitBinary(b *Binary, acc T) (T, error)
	VisitCompound(c *Compound, acc T) (T, error)
	VisitUnary(u *Unary, acc T) (T, error)
}

// Accept dispatches e to the visitor method for its node kind.
func Accept[T any](e Expression, v Visitor[T], acc T) (T, error) {
	switch n := e.(type) {
	case *Field:
		return v.VisitField(n, acc)
	case *Value:
		return v.VisitValue("", n, acc)
	case *Binary:
		return v.VisitBinary(n, acc)
	case *Compound:
		return v.VisitCompound(n, acc)
	case *Unary:
		return v.VisitUnary(n, acc)
	default:
		var zero T
		return zero, fmt.Errorf("filter: unsupported expression %T", e)
	}
}

// Walk calls fn for every node of the tree in depth-first pre-order.
// Traversal stops at the first non-nil error returned by fn.
func Walk(e Expression, fn func(Expression) error) error {
	if e == nil {
		return nil
	}
	if err := fn(e); err != nil {
		return err
	}
	switch n := e.(type) {
	case *Binary:
		if n.Field != nil {
			if err := Walk(n.Field, fn); err != nil {
				return err
			}
		}
		if n.Value != nil {
			return Walk(n.Value, fn)
		}
	case *Compound:
		if err := Walk(n.Left, fn); err != nil {
			return err
		}
		return Walk(n.Right, fn)
	case *Unary:
		return Walk(n.Operand, fn)
	}
	return nil
}

// Fields returns the distinct source field names referenced by e, in order of first appearance.
func Fields(e Expression) []string {
	var names []string
	seen := make(map[string]struct{})
	_ = Walk(e, func(n Expression) error {
		if f, ok := n.(*Field); ok {
			if _, dup := seen[f.Name]; !dup {
				seen[f.Name] = struct{}{}
				names = append(names, f.Name)
			}
		}
		return nil
	})
	return names
}
