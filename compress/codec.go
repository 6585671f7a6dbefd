package compress

import (
	"fmt"

	"github.com/ArthurRichard/energytrace/format"
)

// Compressor compresses one serialized sample series.
//
// Series payloads are the little-endian bytes of a whole channel, so inputs
// range from a few bytes (degenerate shards) to hundreds of megabytes for
// long captures.
type Compressor interface {
	// Compress compresses data and returns the compressed result.
	//
	// The returned slice may alias data for codecs that do not transform
	// their input. The input slice is never modified.
	Compress(data []byte) ([]byte, error)
}

// Decompressor restores a series payload produced by the matching Compressor.
//
// Implementations must be safe for concurrent use: a capture is read from many
// goroutines without locking and every read decompresses.
type Decompressor interface {
	// Decompress decompresses data and returns the original bytes.
	//
	// An error is returned if data is corrupted, truncated, or was produced
	// by a different algorithm.
	Decompress(data []byte) ([]byte, error)
}

// SizedDecompressor is implemented by codecs that can decompress directly into
// a buffer of known size. The series store always knows the raw length, so it
// prefers this path when available.
type SizedDecompressor interface {
	// DecompressSized decompresses data expecting exactly size output bytes.
	DecompressSized(data []byte, size int) ([]byte, error)
}

// Codec combines both compression and decompression capabilities.
type Codec interface {
	Compressor
	Decompressor
}

// CompressionStats describes the footprint of one compressed series.
type CompressionStats struct {
	// Algorithm identifies the compression algorithm used
	Algorithm format.CompressionType

	// OriginalSize is the size of the serialized series before compression
	OriginalSize int64

	// CompressedSize is the size of the stored compressed bytes
	CompressedSize int64
}

// CompressionRatio returns the compression ratio (compressed size / original size).
//
// Values less than 1.0 indicate successful compression. Returns 0.0 when the
// original size is zero.
func (s CompressionStats) CompressionRatio() float64 {
	if s.OriginalSize == 0 {
		return 0.0
	}

	return float64(s.CompressedSize) / float64(s.OriginalSize)
}

// SpaceSavings returns the space savings as a percentage (0-100%).
func (s CompressionStats) SpaceSavings() float64 {
	return (1.0 - s.CompressionRatio()) * 100.0
}

// Add returns the element-wise sum of two stats. The algorithm of s is kept.
func (s CompressionStats) Add(o CompressionStats) CompressionStats {
	s.OriginalSize += o.OriginalSize
	s.CompressedSize += o.CompressedSize

	return s
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone: NewNoOpCompressor(),
	format.CompressionZstd: NewZstdCompressor(),
	format.CompressionS2:   NewS2Compressor(),
	format.CompressionLZ4:  NewLZ4Compressor(),
}

// GetCodec retrieves the built-in Codec for the specified compression type.
//
// Built-in codecs are stateless values backed by pooled internals and are
// safe for concurrent use.
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("unsupported compression type: %s", compressionType)
}

// Decompress decompresses data with codec, using the sized path when the
// codec supports it.
func Decompress(codec Codec, data []byte, size int) ([]byte, error) {
	if sd, ok := codec.(SizedDecompressor); ok {
		return sd.DecompressSized(data, size)
	}

	return codec.Decompress(data)
}
