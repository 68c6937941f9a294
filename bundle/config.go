package bundle

import (
	"fmt"

	"github.com/arloliu/zcbuf/errs"
	"github.com/arloliu/zcbuf/format"
	"github.com/arloliu/zcbuf/internal/options"
)

// DefaultMaxRawSize is the largest decompressed body Open accepts unless
// WithMaxRawSize says otherwise.
const DefaultMaxRawSize = 256 << 20

// EncoderConfig holds the encoder settings.
type EncoderConfig struct {
	compression format.CompressionType
	keyNames    bool
}

// EncoderOption configures an Encoder.
type EncoderOption = options.Option[*EncoderConfig]

var defaultEncoderConfig = EncoderConfig{
	compression: format.CompressionZstd,
	keyNames:    true,
}

// WithCompression sets the body compression. The default is Zstd.
func WithCompression(comp format.CompressionType) EncoderOption {
	return options.New(func(cfg *EncoderConfig) error {
		if !comp.IsValid() {
			return fmt.Errorf("%w: %s", errs.ErrInvalidCompression, comp)
		}

		cfg.compression = comp

		return nil
	})
}

// WithKeyNames controls whether key names are stored next to the entry map.
// The default is true. Without names a bundle can still be queried by name,
// but Keys yields nothing and a lookup cannot tell a hash collision apart
// from a hit.
func WithKeyNames(enabled bool) EncoderOption {
	return options.NoError(func(cfg *EncoderConfig) {
		cfg.keyNames = enabled
	})
}

// ReaderConfig holds the settings used by Open.
type ReaderConfig struct {
	maxRawSize     uint32
	verifyChecksum bool
}

// ReaderOption configures Open.
type ReaderOption = options.Option[*ReaderConfig]

var defaultReaderConfig = ReaderConfig{
	maxRawSize:     DefaultMaxRawSize,
	verifyChecksum: true,
}

// WithMaxRawSize limits the decompressed body size a bundle may declare.
// The limit is checked before any buffer is allocated.
func WithMaxRawSize(n uint32) ReaderOption {
	return options.NoError(func(cfg *ReaderConfig) {
		cfg.maxRawSize = n
	})
}

// WithChecksumVerification enables or disables the body checksum check.
// It is enabled by default; disabling it only makes sense for bundles
// embedded in the binary that were verified when they were built.
func WithChecksumVerification(enabled bool) ReaderOption {
	return options.NoError(func(cfg *ReaderConfig) {
		cfg.verifyChecksum = enabled
	})
}
