package compress

// NoOpCompressor stores a body as-is. It backs format.CompressionNone.
type NoOpCompressor struct{}

var _ Codec = (*NoOpCompressor)(nil)

// NewNoOpCompressor creates a new no-operation compressor.
func NewNoOpCompressor() NoOpCompressor {
	return NoOpCompressor{}
}

// Compress returns the input slice itself without copying.
//
// Note: The returned slice shares the same underlying memory as the input.
func (c NoOpCompressor) Compress(data []byte) ([]byte, error) {
	return data, nil
}

// DecompressSized returns data unchanged after checking its length. An
// uncompressed body stays a zero-copy view of the input.
func (c NoOpCompressor) DecompressSized(data []byte, rawSize int) ([]byte, error) {
	return checkSized("none", data, rawSize)
}
