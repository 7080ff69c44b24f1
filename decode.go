package filterql

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"reflect"

	json "github.com/goccy/go-json"
	"github.com/go-viper/mapstructure/v2"
	"google.golang.org/grpc/codes"

	"github.com/hugr-lab/filterql/filter"
	"github.com/hugr-lab/filterql/internal/msgpack"
)

// DecodeJSON decodes a JSON filter document. Empty input and a JSON null
// decode to nil, which Build treats as "no filter". Numbers decode as
// json.Number, so integers keep their full precision.
func DecodeJSON(data []byte) (any, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, withCode(codes.InvalidArgument, fmt.Errorf("%w: JSON: %w", ErrInvalidInput, err))
	}
	var extra any
	if err := dec.Decode(&extra); !errors.Is(err, io.EOF) {
		return nil, withCode(codes.InvalidArgument, fmt.Errorf("%w: JSON: trailing data after document", ErrInvalidInput))
	}
	return v, nil
}

// DecodeMsgpack decodes a MessagePack filter document. Empty input decodes to nil.
func DecodeMsgpack(data []byte) (any, error) {
	if len(data) == 0 {
		return nil, nil
	}
	v, err := msgpack.DecodeAny(data)
	if err != nil {
		return nil, withCode(codes.InvalidArgument, fmt.Errorf("%w: %w", ErrInvalidInput, err))
	}
	return v, nil
}

// normalizeInput converts typed filter input into the generic shape the
// parser accepts. Structs become string-keyed maps through mapstructure,
// using their json tags; temporal values are kept as they are.
func normalizeInput(v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	if _, ok := filter.NormalizeTemporal(v); ok {
		return v, nil
	}

	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil, nil
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Struct:
		if _, ok := filter.NormalizeTemporal(rv.Interface()); ok {
			return rv.Interface(), nil
		}
		var m map[string]any
		dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			TagName: "json",
			Result:  &m,
		})
		if err != nil {
			return nil, err
		}
		if err := dec.Decode(rv.Interface()); err != nil {
			return nil, withCode(codes.InvalidArgument, fmt.Errorf("%w: %w", ErrInvalidInput, err))
		}
		return normalizeInput(m)
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return v, nil
		}
		out := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			item, err := normalizeInput(iter.Value().Interface())
			if err != nil {
				return nil, err
			}
			out[iter.Key().String()] = item
		}
		return out, nil
	case reflect.Slice, reflect.Array:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return v, nil
		}
		out := make([]any, rv.Len())
		for i := range out {
			item, err := normalizeInput(rv.Index(i).Interface())
			if err != nil {
				return nil, err
			}
			out[i] = item
		}
		return out, nil
	default:
		return rv.Interface(), nil
	}
}

// isEmptyInput reports whether v carries no filter at all: nil or an empty
// mapping. An empty list is not a mapping and is left for the parser to reject.
func isEmptyInput(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Map && rv.Len() == 0
}
