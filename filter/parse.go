package filter

import (
	"fmt"
	"reflect"
	"strconv"
)

// DefaultMaxDepth is the nesting limit used when ParseOptions.MaxDepth is zero.
const DefaultMaxDepth = 64

// ParseOptions configures parsing behavior.
type ParseOptions struct {
	// TemporalStrings enables conversion of string operands in RFC 3339 or
	// YYYY-MM-DD form into normalized times.
	// OPTIONAL: Disabled by default; typed time.Time and civil.Date operands
	// are always normalized.
	TemporalStrings bool

	// MaxDepth limits how deeply filter mappings may nest.
	// OPTIONAL: If 0, uses DefaultMaxDepth.
	MaxDepth int
}

// Parser builds expression trees from nested filter input.
// A Parser holds no per-call state and may be reused sequentially.
type Parser struct {
	opts ParseOptions
}

// NewParser creates a parser. If opts is nil, default options are used.
func NewParser(opts *ParseOptions) *Parser {
	p := &Parser{}
	if opts != nil {
		p.opts = *opts
	}
	if p.opts.MaxDepth <= 0 {
		p.opts.MaxDepth = DefaultMaxDepth
	}
	return p
}

// Parse parses filter input with default options.
func Parse(node any) (Expression, error) {
	return NewParser(nil).Parse(node)
}

// Parse turns a nested filter mapping into a single expression tree.
//
// Each level of the input is a single-entry mapping whose key is either an
// operator token or a field name:
//
//	{"and": [{"firstName": {"contains": "Saurabh"}}, {"age": {"gte": 25}}]}
//
// Error conditions:
//   - ErrInvalidFilterShape: a mapping with zero or several entries, wrong
//     operand arity, or a field wrapping something other than a comparison
//   - ErrUnknownOperator: a token in operator position that is not registered
func (p *Parser) Parse(node any) (Expression, error) {
	expr, err := p.parse(node, "", 0)
	if err != nil {
		return nil, err
	}
	if !combinable(expr) {
		return nil, newShapeError("", "comparison operator must be nested under a field")
	}
	return expr, nil
}

func (p *Parser) parse(node any, path string, depth int) (Expression, error) {
	if depth >= p.opts.MaxDepth {
		return nil, newShapeError(path, "filter nested deeper than %d levels", p.opts.MaxDepth)
	}

	m, ok := asMapping(node)
	if !ok {
		return nil, newShapeError(path, "expected a mapping, got %s", describe(node))
	}
	if len(m) != 1 {
		return nil, newShapeError(path, "mapping must have exactly one entry, got %d", len(m))
	}

	var key string
	var value any
	for k, v := range m {
		key, value = k, v
	}
	entryPath := path + "/" + key

	op, isOp := registry[key]
	if !isOp {
		return p.parseField(key, value, entryPath, depth)
	}

	switch {
	case op.Category == CategoryLogical && op.Arity == ArityNAry:
		return p.parseLogicalList(op, value, entryPath, depth)
	case op.Category == CategoryLogical && op.Arity == ArityUnary:
		return p.parseUnary(op, value, entryPath, depth)
	default:
		return p.parseComparison(op, value, entryPath)
	}
}

// parseLogicalList folds an and/or operand list into a left-nested chain:
// [A, B, C] becomes ((A op B) op C).
func (p *Parser) parseLogicalList(op Operator, value any, path string, depth int) (Expression, error) {
	items, ok := asList(value)
	if !ok {
		return nil, newShapeError(path, "operator %q requires a list of filters, got %s", op.Token, describe(value))
	}
	if len(items) < 2 {
		return nil, newShapeError(path, "operator %q requires at least 2 filters, got %d", op.Token, len(items))
	}

	acc, err := p.parseOperand(items[0], path+"/0", depth)
	if err != nil {
		return nil, err
	}
	for i := 1; i < len(items); i++ {
		next, err := p.parseOperand(items[i], path+"/"+strconv.Itoa(i), depth)
		if err != nil {
			return nil, err
		}
		acc = &Compound{Left: acc, Op: op, Right: next}
	}
	return acc, nil
}

func (p *Parser) parseUnary(op Operator, value any, path string, depth int) (Expression, error) {
	operand, err := p.parseOperand(value, path, depth)
	if err != nil {
		return nil, err
	}
	return &Unary{Op: op, Operand: operand}, nil
}

// parseOperand parses an operand of a logical operator, which must be
// a comparison bound to a field or another logical expression.
func (p *Parser) parseOperand(node any, path string, depth int) (Expression, error) {
	expr, err := p.parse(node, path, depth+1)
	if err != nil {
		return nil, err
	}
	if !combinable(expr) {
		return nil, newShapeError(path, "comparison operator must be nested under a field")
	}
	return expr, nil
}

// parseField handles {field: {op: operand}}. The nested mapping must hold
// exactly one relational operator.
func (p *Parser) parseField(name string, value any, path string, depth int) (Expression, error) {
	if depth+1 >= p.opts.MaxDepth {
		return nil, newShapeError(path, "filter nested deeper than %d levels", p.opts.MaxDepth)
	}
	if name == "" {
		return nil, newShapeError(path, "empty field name")
	}

	inner, ok := asMapping(value)
	if !ok {
		return nil, newShapeError(path, "field %q must map to a comparison, got %s", name, describe(value))
	}
	if len(inner) != 1 {
		return nil, newShapeError(path, "field %q must map to exactly one comparison, got %d entries", name, len(inner))
	}

	var token string
	var operand any
	for k, v := range inner {
		token, operand = k, v
	}
	opPath := path + "/" + token

	op, err := Lookup(token)
	if err != nil {
		return nil, &UnknownOperatorError{Token: token, Path: opPath}
	}
	if op.Category != CategoryRelational {
		return nil, newShapeError(opPath, "field %q cannot wrap logical operator %q", name, token)
	}

	expr, err := p.parseComparison(op, operand, opPath)
	if err != nil {
		return nil, err
	}
	expr.Field = &Field{Name: name}
	return expr, nil
}

// parseComparison builds a field-less Binary node; the enclosing field
// level fills in the field.
func (p *Parser) parseComparison(op Operator, value any, path string) (*Binary, error) {
	var raw []any
	if items, ok := asList(value); ok {
		raw = items
	} else {
		raw = []any{value}
	}

	values := make([]any, 0, len(raw))
	for i, v := range raw {
		nv, err := p.normalizeOperand(v)
		if err != nil {
			return nil, newShapeError(path, "operand %d: %v", i, err)
		}
		values = append(values, nv)
	}

	if err := checkOperandCount(op, len(values)); err != nil {
		return nil, newShapeError(path, "%v", err)
	}

	return &Binary{Op: op, Value: &Value{Values: values}}, nil
}

func checkOperandCount(op Operator, n int) error {
	switch op.Token {
	case TokenIn:
		if n == 0 {
			return fmt.Errorf("operator %q requires at least 1 operand", op.Token)
		}
	case TokenBetween:
		if n != 2 {
			return fmt.Errorf("operator %q requires exactly 2 operands, got %d", op.Token, n)
		}
	default:
		if n != 1 {
			return fmt.Errorf("operator %q requires exactly 1 operand, got %d", op.Token, n)
		}
	}
	return nil
}

// numberLike matches json.Number from encoding/json and goccy/go-json.
type numberLike interface {
	Int64() (int64, error)
	Float64() (float64, error)
	String() string
}

// normalizeOperand converts an operand to its canonical comparable form.
func (p *Parser) normalizeOperand(v any) (any, error) {
	if v == nil {
		return nil, fmt.Errorf("null operand")
	}
	if t, ok := NormalizeTemporal(v); ok {
		return t, nil
	}

	switch x := v.(type) {
	case string:
		if p.opts.TemporalStrings {
			if t, ok := ParseTemporal(x); ok {
				return t, nil
			}
		}
		return x, nil
	case bool, int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64, float32, float64:
		return x, nil
	case numberLike:
		if i, err := x.Int64(); err == nil {
			return i, nil
		}
		if f, err := x.Float64(); err == nil {
			return f, nil
		}
		return nil, fmt.Errorf("invalid number %q", x.String())
	}

	// Named scalar types (enums and the like) are reduced to their basic kind.
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String:
		return p.normalizeOperand(rv.String())
	case reflect.Bool:
		return rv.Bool(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return rv.Uint(), nil
	case reflect.Float32, reflect.Float64:
		return rv.Float(), nil
	}
	return nil, fmt.Errorf("unsupported operand %s", describe(v))
}

// asMapping returns node as a string-keyed map. Maps with non-string keys
// (as produced by some YAML and msgpack decoders) are accepted when every
// key is a string.
func asMapping(node any) (map[string]any, bool) {
	switch m := node.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, v := range m {
			ks, ok := k.(string)
			if !ok {
				return nil, false
			}
			out[ks] = v
		}
		return out, true
	case nil:
		return nil, false
	}

	rv := reflect.ValueOf(node)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, false
	}
	out := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		out[iter.Key().String()] = iter.Value().Interface()
	}
	return out, true
}

// asList returns node as a list. Byte slices are not lists.
func asList(node any) ([]any, bool) {
	switch l := node.(type) {
	case []any:
		return l, true
	case []map[string]any:
		out := make([]any, len(l))
		for i, m := range l {
			out[i] = m
		}
		return out, true
	case []byte, nil:
		return nil, false
	}

	rv := reflect.ValueOf(node)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

func describe(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case map[string]any, map[any]any:
		return "mapping"
	}
	if _, ok := asList(v); ok {
		return "list"
	}
	return fmt.Sprintf("%T", v)
}
