package compress

import (
	"errors"
	"fmt"

	"github.com/klauspost/compress/zstd"
)

// ZstdCompressor provides Zstandard compression, the best ratio of the
// built-in codecs. It suits bundles that are built once and shipped or
// embedded many times.
//
// Two backends exist: the pure Go klauspost/compress/zstd implementation is
// the default, and building with both cgo and the gozstd tag switches to
// the libzstd binding from valyala/gozstd. Their output is interchangeable.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd compressor with default settings.
//
// Example:
//
//	compressor := NewZstdCompressor()
//	compressed, err := compressor.Compress(data)
//	if err != nil {
//		return err
//	}
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}

// zstdLevel is the compression level shared by both backends.
const zstdLevel = 3

// checkZstdFrame requires the first frame of data to declare exactly
// rawSize bytes of content. Frames without a content size are rejected.
func checkZstdFrame(data []byte, rawSize int) error {
	var hdr zstd.Header
	if err := hdr.Decode(data); err != nil {
		return fmt.Errorf("zstd frame header: %w", err)
	}

	if !hdr.HasFCS {
		return errors.New("zstd: frame does not declare its content size")
	}

	if hdr.FrameContentSize != uint64(rawSize) {
		return fmt.Errorf("zstd: frame declares %d bytes, expected %d", hdr.FrameContentSize, rawSize)
	}

	return nil
}
