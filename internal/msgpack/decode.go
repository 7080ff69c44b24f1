// Package msgpack provides MessagePack encoding and decoding for filter
// input and encoded criteria documents.
package msgpack

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
)

// ErrEmpty is returned when decoding zero bytes.
var ErrEmpty = errors.New("empty MessagePack data")

// Decode deserializes MessagePack data into v, which must be a pointer.
//
// Example:
//
//	var doc map[string]any
//	err := msgpack.Decode(data, &doc)
func Decode(data []byte, v any) error {
	if len(data) == 0 {
		return ErrEmpty
	}
	if err := newDecoder(data).Decode(v); err != nil {
		return fmt.Errorf("failed to decode MessagePack: %w", err)
	}
	return nil
}

// DecodeAny decodes a free-form document. Maps decode as map[string]any,
// integers widen to int64/uint64 and floats to float64.
func DecodeAny(data []byte) (any, error) {
	if len(data) == 0 {
		return nil, ErrEmpty
	}
	v, err := newDecoder(data).DecodeInterfaceLoose()
	if err != nil {
		return nil, fmt.Errorf("failed to decode MessagePack: %w", err)
	}
	return v, nil
}

// Encode serializes v into MessagePack. Map keys are written in sorted
// order so equal documents encode to equal bytes.
func Encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetSortMapKeys(true)
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("failed to encode MessagePack: %w", err)
	}
	return buf.Bytes(), nil
}

func newDecoder(data []byte) *msgpack.Decoder {
	dec := msgpack.NewDecoder(bytes.NewReader(data))
	dec.UseLooseInterfaceDecoding(true)
	return dec
}
