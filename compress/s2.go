package compress

import (
	"fmt"

	"github.com/klauspost/compress/s2"
)

// S2Compressor provides S2 block compression, an extension of Snappy with a
// better ratio at similar speed. The block records its decoded length, which
// DecompressSized checks before allocating.
type S2Compressor struct{}

var _ Codec = (*S2Compressor)(nil)

// NewS2Compressor creates a new S2 compressor.
func NewS2Compressor() S2Compressor {
	return S2Compressor{}
}

// Compress compresses the input data using S2 compression.
func (c S2Compressor) Compress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return s2.Encode(nil, data), nil
}

// DecompressSized checks the length recorded in the S2 block before
// decoding into a buffer of exactly rawSize bytes.
func (c S2Compressor) DecompressSized(data []byte, rawSize int) ([]byte, error) {
	if len(data) == 0 {
		return checkSized("s2", nil, rawSize)
	}

	n, err := s2.DecodedLen(data)
	if err != nil {
		return nil, err
	}

	if n != rawSize {
		return nil, fmt.Errorf("s2: block decodes to %d bytes, expected %d", n, rawSize)
	}

	out, err := s2.Decode(make([]byte, rawSize), data)
	if err != nil {
		return nil, err
	}

	return checkSized("s2", out, rawSize)
}
