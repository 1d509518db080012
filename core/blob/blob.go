package blob

import (
	"bytes"
	"fmt"

	"github.com/klauspost/compress/zstd"
	"github.com/vmihailenco/msgpack/v5"
)

// magic prefixes every blob; the last byte is the codec version.
var magic = []byte{'O', 'B', 'J', 'B', 1}

var (
	encoder, _ = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	decoder, _ = zstd.NewReader(nil, zstd.WithDecoderConcurrency(0))
)

// Encode serializes v into an opaque, compressed blob.
func Encode(v any) ([]byte, error) {
	raw, err := msgpack.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize object: %w", err)
	}
	out := make([]byte, 0, len(magic)+len(raw)/2)
	out = append(out, magic...)
	return encoder.EncodeAll(raw, out), nil
}

// Decode deserializes a blob produced by Encode into out, which must be a pointer.
func Decode(data []byte, out any) error {
	if len(data) < len(magic) || !bytes.HasPrefix(data, magic[:len(magic)-1]) {
		return fmt.Errorf("not an object blob")
	}
	if version := data[len(magic)-1]; version != magic[len(magic)-1] {
		return fmt.Errorf("unsupported object blob version %d", version)
	}

	raw, err := decoder.DecodeAll(data[len(magic):], nil)
	if err != nil {
		return fmt.Errorf("failed to decompress object: %w", err)
	}
	if err := msgpack.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to deserialize object: %w", err)
	}
	return nil
}
