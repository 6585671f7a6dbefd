package compress

// NoOpCompressor stores series payloads uncompressed.
//
// Useful for debugging and as a baseline when comparing codecs on a capture.
type NoOpCompressor struct{}

var _ Codec = (*NoOpCompressor)(nil)

// NewNoOpCompressor creates a new no-operation compressor.
func NewNoOpCompressor() NoOpCompressor {
	return NoOpCompressor{}
}

// Compress returns a copy of data.
//
// The copy keeps the stored payload independent from the caller's buffer,
// which the series store relies on for immutability.
func (c NoOpCompressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	out := make([]byte, len(data))
	copy(out, data)

	return out, nil
}

// Decompress returns data as-is without copying.
//
// The returned slice shares memory with the stored payload; callers must
// treat it as read-only.
func (c NoOpCompressor) Decompress(data []byte) ([]byte, error) {
	return data, nil
}
