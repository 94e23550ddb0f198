package storage

import (
	"github.com/klauspost/compress/zstd"
)

// Checkpoint grids are mostly runs of the same few glyphs, so they shrink
// well. EncodeAll and DecodeAll are safe for concurrent use.
var (
	encoder, _ = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	decoder, _ = zstd.NewReader(nil)
)

func compress(data []byte) []byte {
	return encoder.EncodeAll(data, make([]byte, 0, len(data)/4))
}

func decompress(data []byte) ([]byte, error) {
	return decoder.DecodeAll(data, nil)
}
