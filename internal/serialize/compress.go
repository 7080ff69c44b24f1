// Package serialize compresses encoded filter criteria with Zstandard.
package serialize

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"
)

// zstdMagic is the frame header every Zstandard stream starts with.
var zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}

// Compressor handles ZStandard compression of encoded criteria.
// Create once and reuse to eliminate allocations.
type Compressor struct {
	encoder *zstd.Encoder
}

// NewCompressor creates a reusable ZStandard compressor at the given level.
// Caller must call Close() when done to release resources.
func NewCompressor(level zstd.EncoderLevel) (*Compressor, error) {
	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(level))
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd encoder: %w", err)
	}
	return &Compressor{encoder: encoder}, nil
}

// Compress compresses data. Safe for concurrent use.
func (c *Compressor) Compress(data []byte) []byte {
	if len(data) == 0 {
		return []byte{}
	}
	return c.encoder.EncodeAll(data, make([]byte, 0, len(data)/2))
}

// Close releases compressor resources.
func (c *Compressor) Close() error {
	if c.encoder != nil {
		return c.encoder.Close()
	}
	return nil
}

// Decompressor handles ZStandard decompression.
type Decompressor struct {
	decoder *zstd.Decoder
}

// NewDecompressor creates a reusable ZStandard decompressor.
// maxSize bounds the decoded size; 0 keeps the library default.
func NewDecompressor(maxSize uint64) (*Decompressor, error) {
	var opts []zstd.DOption
	if maxSize > 0 {
		opts = append(opts, zstd.WithDecoderMaxMemory(maxSize))
	}
	decoder, err := zstd.NewReader(nil, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd decoder: %w", err)
	}
	return &Decompressor{decoder: decoder}, nil
}

// Decompress decompresses data. Safe for concurrent use.
func (d *Decompressor) Decompress(compressed []byte) ([]byte, error) {
	if len(compressed) == 0 {
		return []byte{}, nil
	}
	out, err := d.decoder.DecodeAll(compressed, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress: %w", err)
	}
	return out, nil
}

// Close releases decompressor resources.
func (d *Decompressor) Close() {
	if d.decoder != nil {
		d.decoder.Close()
	}
}

// MaxDecodedSize bounds the output of the shared decompressor.
const MaxDecodedSize = 64 << 20

var (
	sharedOnce sync.Once
	sharedComp *Compressor
	sharedDec  *Decompressor
	sharedErr  error
)

func shared() (*Compressor, *Decompressor, error) {
	sharedOnce.Do(func() {
		sharedComp, sharedErr = NewCompressor(zstd.SpeedDefault)
		if sharedErr != nil {
			return
		}
		sharedDec, sharedErr = NewDecompressor(MaxDecodedSize)
	})
	return sharedComp, sharedDec, sharedErr
}

// Compress compresses data with a process-wide compressor.
func Compress(data []byte) ([]byte, error) {
	c, _, err := shared()
	if err != nil {
		return nil, err
	}
	return c.Compress(data), nil
}

// Decompress decompresses data with a process-wide decompressor.
func Decompress(data []byte) ([]byte, error) {
	_, d, err := shared()
	if err != nil {
		return nil, err
	}
	return d.Decompress(data)
}

// IsCompressed reports whether data starts with a Zstandard frame header.
func IsCompressed(data []byte) bool {
	return bytes.HasPrefix(data, zstdMagic)
}
