package serialize

import (
	"fmt"

	"github.com/klauspost/compress/zstd"

	"github.com/hugr-lab/tabprobe/internal/msgpack"
)

// Compressor handles ZStandard compression of action results.
// Create once and reuse to eliminate allocations.
type Compressor struct {
	encoder *zstd.Encoder
}

// NewCompressor creates a reusable ZStandard compressor.
// Uses SpeedDefault (level 3) for balanced compression ratio and speed.
// Caller must call Close() when done to release resources.
func NewCompressor() (*Compressor, error) {
	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd encoder: %w", err)
	}

	return &Compressor{
		encoder: encoder,
	}, nil
}

// Compress compresses data using ZStandard.
// Safe for concurrent use from multiple goroutines.
func (c *Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return []byte{}, nil
	}

	dst := make([]byte, 0, len(data)/2)

	// EncodeAll is goroutine-safe
	return c.encoder.EncodeAll(data, dst), nil
}

// Envelope compresses data and wraps it in the compressed-content envelope:
// a msgpack array [uncompressed_length uint32, zstd_bytes string].
func (c *Compressor) Envelope(data []byte) ([]byte, error) {
	compressed, err := c.Compress(data)
	if err != nil {
		return nil, err
	}

	body, err := msgpack.Encode(&compressedContent{
		Length: uint32(len(data)),
		Data:   string(compressed),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode compressed content: %w", err)
	}
	return body, nil
}

// Close releases compressor resources.
func (c *Compressor) Close() error {
	if c.encoder != nil {
		return c.encoder.Close()
	}
	return nil
}

// Decompressor handles ZStandard decompression.
// Create once and reuse to eliminate allocations.
type Decompressor struct {
	decoder *zstd.Decoder
}

// NewDecompressor creates a reusable ZStandard decompressor.
// Caller must call Close() when done to release resources.
func NewDecompressor() (*Decompressor, error) {
	decoder, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd decoder: %w", err)
	}

	return &Decompressor{
		decoder: decoder,
	}, nil
}

// Decompress decompresses ZStandard data.
// Safe for concurrent use from multiple goroutines.
func (d *Decompressor) Decompress(compressed []byte) ([]byte, error) {
	if len(compressed) == 0 {
		return []byte{}, nil
	}

	// DecodeAll is goroutine-safe
	decompressed, err := d.decoder.DecodeAll(compressed, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress: %w", err)
	}

	return decompressed, nil
}

// Open unwraps a compressed-content envelope produced by Compressor.Envelope.
func (d *Decompressor) Open(body []byte) ([]byte, error) {
	var content compressedContent
	if err := msgpack.Decode(body, &content); err != nil {
		return nil, err
	}

	data, err := d.Decompress([]byte(content.Data))
	if err != nil {
		return nil, err
	}
	if uint32(len(data)) != content.Length {
		return nil, fmt.Errorf("decompressed %d bytes, envelope declares %d", len(data), content.Length)
	}
	return data, nil
}

// Close releases decompressor resources.
func (d *Decompressor) Close() {
	if d.decoder != nil {
		d.decoder.Close()
	}
}

// compressedContent encodes as a two-element array, not a map.
type compressedContent struct {
	_msgpack struct{} `msgpack:",as_array"`

	Length uint32
	Data   string
}
