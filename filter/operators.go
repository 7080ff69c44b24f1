package filter

// Category groups operators by the parsing branch they select.
type Category string

const (
	// CategoryLogical operators combine other expressions (and, or, not).
	CategoryLogical Category = "LOGICAL"
	// CategoryRelational operators compare a field against operand values.
	CategoryRelational Category = "RELATIONAL"
)

// Arity is the number of operands an operator takes in the filter input.
type Arity string

const (
	ArityUnary  Arity = "UNARY"
	ArityBinary Arity = "BINARY"
	// ArityNAry operators take a list of two or more operands which the
	// parser folds into a left-nested chain of binary nodes.
	ArityNAry Arity = "N_ARY"
)

// Operator is a filter operator token with its category and arity.
type Operator struct {
	Token    string
	Category Category
	Arity    Arity
}

// String returns the operator token.
func (o Operator) String() string { return o.Token }

// IsLogical reports whether the operator combines expressions.
func (o Operator) IsLogical() bool { return o.Category == CategoryLogical }

// Operator tokens as they appear in filter input.
const (
	TokenAnd = "and"
	TokenOr  = "or"
	TokenNot = "not"

	TokenEquals   = "equals"
	TokenContains = "contains"
	TokenStarts   = "starts"
	TokenEnds     = "ends"

	TokenEq  = "eq"
	TokenGt  = "gt"
	TokenGte = "gte"
	TokenLt  = "lt"
	TokenLte = "lte"

	TokenIn      = "in"
	TokenBetween = "between"
)

// The fixed operator catalogue.
var (
	OpAnd = Operator{Token: TokenAnd, Category: CategoryLogical, Arity: ArityNAry}
	OpOr  = Operator{Token: TokenOr, Category: CategoryLogical, Arity: ArityNAry}
	OpNot = Operator{Token: TokenNot, Category: CategoryLogical, Arity: ArityUnary}

	// String operators
	OpEquals   = Operator{Token: TokenEquals, Category: CategoryRelational, Arity: ArityBinary}
	OpContains = Operator{Token: TokenContains, Category: CategoryRelational, Arity: ArityBinary}
	OpStarts   = Operator{Token: TokenStarts, Category: CategoryRelational, Arity: ArityBinary}
	OpEnds     = Operator{Token: TokenEnds, Category: CategoryRelational, Arity: ArityBinary}

	// Numeric operators
	OpEq  = Operator{Token: TokenEq, Category: CategoryRelational, Arity: ArityBinary}
	OpGt  = Operator{Token: TokenGt, Category: CategoryRelational, Arity: ArityBinary}
	OpGte = Operator{Token: TokenGte, Category: CategoryRelational, Arity: ArityBinary}
	OpLt  = Operator{Token: TokenLt, Category: CategoryRelational, Arity: ArityBinary}
	OpLte = Operator{Token: TokenLte, Category: CategoryRelational, Arity: ArityBinary}

	// Range operators
	OpIn      = Operator{Token: TokenIn, Category: CategoryRelational, Arity: ArityBinary}
	OpBetween = Operator{Token: TokenBetween, Category: CategoryRelational, Arity: ArityBinary}
)

var registry = map[string]Operator{
	TokenAnd:      OpAnd,
	TokenOr:       OpOr,
	TokenNot:      OpNot,
	TokenEquals:   OpEquals,
	TokenContains: OpContains,
	TokenStarts:   OpStarts,
	TokenEnds:     OpEnds,
	TokenEq:       OpEq,
	TokenGt:       OpGt,
	TokenGte:      OpGte,
	TokenLt:       OpLt,
	TokenLte:      OpLte,
	TokenIn:       OpIn,
	TokenBetween:  OpBetween,
}

// Lookup returns the operator registered for token.
// Tokens are matched exactly; an unknown token yields an *UnknownOperatorError.
func Lookup(token string) (Operator, error) {
	op, ok := registry[token]
	if !ok {
		return Operator{}, &UnknownOperatorError{Token: token}
	}
	return op, nil
}

// IsOperator reports whether token names a registered operator.
func IsOperator(token string) bool {
	_, ok := registry[token]
	return ok
}

// CategoryOf returns the category of the operator registered for token.
func CategoryOf(token string) (Category, error) {
	op, err := Lookup(token)
	if err != nil {
		return "", err
	}
	return op.Category, nil
}

// ArityOf returns the arity of the operator registered for token.
func ArityOf(token string) (Arity, error) {
	op, err := Lookup(token)
	if err != nil {
		return "", err
	}
	return op.Arity, nil
}

// Operators returns the full catalogue in declaration order.
func Operators() []Operator {
	return []Operator{
		OpAnd, OpOr, OpNot,
		OpEquals, OpContains, OpStarts, OpEnds,
		OpEq, OpGt, OpGte, OpLt, OpLte,
		OpIn, OpBetween,
	}
}
