package filter

// Transformer customizes how a field and its paired operands are rendered.
// It is consulted only for fields that are not in the rename table.
type Transformer interface {
	// TransformField returns the target name for a source field.
	// Returning false leaves the field and its operands untouched.
	TransformField(field string) (string, bool)

	// TransformValue rewrites the operands paired with a source field that
	// TransformField accepted. Returning nil keeps the original operands.
	TransformValue(field string, values []any) []any
}

// TransformerFuncs adapts plain functions to the Transformer interface.
// Either function may be nil.
type TransformerFuncs struct {
	Field func(field string) (string, bool)
	Value func(field string, values []any) []any
}

// TransformField implements Transformer.
func (t TransformerFuncs) TransformField(field string) (string, bool) {
	if t.Field == nil {
		return "", false
	}
	return t.Field(field)
}

// TransformValue implements Transformer.
func (t TransformerFuncs) TransformValue(field string, values []any) []any {
	if t.Value == nil {
		return nil
	}
	return t.Value(field, values)
}

// FieldResolver applies the field rename table and the optional transformer.
// A nil *FieldResolver leaves every field and operand unchanged.
type FieldResolver struct {
	mapping     map[string]string
	transformer Transformer
}

// NewFieldResolver creates a resolver. Both arguments are optional.
// The mapping is copied.
func NewFieldResolver(mapping map[string]string, transformer Transformer) *FieldResolver {
	r := &FieldResolver{transformer: transformer}
	if len(mapping) > 0 {
		r.mapping = make(map[string]string, len(mapping))
		for k, v := range mapping {
			r.mapping[k] = v
		}
	}
	return r
}

// Field returns the target name of a source field.
// The rename table takes precedence over the transformer.
func (r *FieldResolver) Field(name string) string {
	target, _ := r.field(name)
	return target
}

// Resolve returns the target field name and the operands to render for a
// comparison on the source field name. Operands are transformed only when
// the transformer renamed the field.
func (r *FieldResolver) Resolve(name string, values []any) (string, []any) {
	target, transformed := r.field(name)
	if !transformed {
		return target, values
	}
	if out := r.transformer.TransformValue(name, values); out != nil {
		return target, out
	}
	return target, values
}

// ResolveBinary resolves the field and operands of a comparison node.
func (r *FieldResolver) ResolveBinary(b *Binary) (string, []any) {
	var values []any
	if b.Value != nil {
		values = b.Value.Values
	}
	if b.Field == nil {
		return "", values
	}
	return r.Resolve(b.Field.Name, values)
}

func (r *FieldResolver) field(name string) (target string, transformed bool) {
	if r == nil {
		return name, false
	}
	if mapped, ok := r.mapping[name]; ok && mapped != "" {
		return mapped, false
	}
	if r.transformer != nil {
		if mapped, ok := r.transformer.TransformField(name); ok && mapped != "" {
			return mapped, true
		}
	}
	return name, false
}
