// Package compress provides the byte-stream codecs used to hold capture channels in memory.
//
// A finished capture keeps each channel (timestamp, current, energy) as one
// compressed payload: the little-endian bytes of a []uint32. Every channel read
// decompresses that payload again, so decompression speed matters far more
// than compression speed.
//
// # Architecture
//
// The package defines three core interfaces:
//
//	type Compressor interface {
//	    Compress(data []byte) ([]byte, error)
//	}
//
//	type Decompressor interface {
//	    Decompress(data []byte) ([]byte, error)
//	}
//
//	type Codec interface {
//	    Compressor
//	    Decompressor
//	}
//
// Codecs that can decompress into a buffer of known size also implement
// SizedDecompressor. The package-level Decompress helper picks that path when
// available.
//
// # Supported Algorithms
//
// **LZ4** (format.CompressionLZ4), the default:
//
//	codec := compress.NewLZ4Compressor()
//	compressed, _ := codec.Compress(data)
//	original, _ := codec.DecompressSized(compressed, len(data))
//
// Very fast decompression, moderate ratio. Each payload is a single LZ4 block
// with no frame header; the raw length is kept by the caller.
//
// **S2** (format.CompressionS2): Snappy-compatible block format with a
// length header, balanced speed and ratio.
//
// **Zstandard** (format.CompressionZstd): best ratio, slower reads. Frames
// carry a content checksum. Build with `-tags gozstd` and cgo enabled to use
// libzstd through gozstd instead of the pure-Go implementation.
//
// **None** (format.CompressionNone): payload stored as a private copy.
//
// # Choosing a Codec
//
// Timestamps and the monotonically growing energy counter share most of
// their high bytes between neighbouring samples and compress well with any
// codec; current is noisy. Prefer LZ4 when channels are read often and Zstd
// when many captures are held in memory at once.
//
// # Thread Safety
//
// All built-in codecs are stateless values backed by sync.Pool and are safe
// for concurrent use.
//
// # Error Handling
//
// Decompression fails on corrupted or truncated payloads and on payloads
// produced by a different algorithm. Errors are returned as-is or wrapped
// with the algorithm name; the series package maps them to its decode error.
package compress
