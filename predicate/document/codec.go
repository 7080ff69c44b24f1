package document

import (
	"fmt"

	"github.com/hugr-lab/filterql/internal/msgpack"
	"github.com/hugr-lab/filterql/internal/serialize"
)

// Marshal encodes criteria as MessagePack with sorted map keys.
func Marshal(c Criteria) ([]byte, error) {
	return msgpack.Encode(map[string]any(c))
}

// MarshalCompressed encodes criteria as Zstandard-compressed MessagePack.
func MarshalCompressed(c Criteria) ([]byte, error) {
	data, err := Marshal(c)
	if err != nil {
		return nil, err
	}
	return serialize.Compress(data)
}

// Unmarshal decodes criteria produced by Marshal or MarshalCompressed.
// Compression is detected from the frame header.
func Unmarshal(data []byte) (Criteria, error) {
	if serialize.IsCompressed(data) {
		var err error
		data, err = serialize.Decompress(data)
		if err != nil {
			return nil, fmt.Errorf("document: %w", err)
		}
	}
	var m map[string]any
	if err := msgpack.Decode(data, &m); err != nil {
		return nil, fmt.Errorf("document: %w", err)
	}
	return Criteria(m), nil
}
