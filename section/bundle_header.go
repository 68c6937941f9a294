package section

import (
	"fmt"

	"github.com/arloliu/zcbuf/endian"
	"github.com/arloliu/zcbuf/errs"
)

// BundleHeader is the fixed 32-byte header at the start of every bundle.
type BundleHeader struct {
	// Flag holds the option bits and the compression type.
	Flag BundleFlag // byte offset 0-2
	// KeyCount is the number of entries in the bundle.
	KeyCount uint32 // byte offset 4-7
	// StoredSize is the byte length of the body as stored after the header,
	// i.e. after compression.
	StoredSize uint32 // byte offset 8-11
	// RawSize is the byte length of the body after decompression.
	RawSize uint32 // byte offset 12-15
	// NamesOffset is where the key names payload starts inside the raw body.
	// It equals RawSize when the bundle has no key names.
	NamesOffset uint32 // byte offset 16-19
	// Checksum is the xxHash64 of the raw body.
	Checksum uint64 // byte offset 20-27
}

// NewBundleHeader creates a header with a default flag. Sizes and the
// checksum are filled in by the encoder.
func NewBundleHeader() *BundleHeader {
	return &BundleHeader{Flag: NewBundleFlag()}
}

// Parse parses the header from exactly HeaderSize bytes.
func (h *BundleHeader) Parse(data []byte) error {
	if len(data) != HeaderSize {
		return errs.ErrInvalidHeaderSize
	}

	engine := endian.Engine()

	h.Flag.Options = engine.Uint16(data[optionsOffset:])
	h.Flag.Compression = data[compressionOffset]

	if err := h.Flag.Validate(); err != nil {
		return err
	}

	if data[reservedOffset] != 0 || engine.Uint32(data[trailerOffset:]) != 0 {
		return fmt.Errorf("%w: reserved header bytes are not zero", errs.ErrInvalidHeaderFlags)
	}

	h.KeyCount = engine.Uint32(data[keyCountOffset:])
	h.StoredSize = engine.Uint32(data[storedSizeOffset:])
	h.RawSize = engine.Uint32(data[rawSizeOffset:])
	h.NamesOffset = engine.Uint32(data[namesOffsetOffset:])
	h.Checksum = engine.Uint64(data[checksumOffset:])

	if h.NamesOffset > h.RawSize {
		return fmt.Errorf("%w: names offset %d beyond raw size %d", errs.ErrInvalidBodySize, h.NamesOffset, h.RawSize)
	}

	if h.Flag.HasKeyNames() == (h.NamesOffset == h.RawSize) {
		return fmt.Errorf("%w: names offset %d disagrees with key names flag", errs.ErrInvalidHeaderFlags, h.NamesOffset)
	}

	return nil
}

// Bytes serializes the header into a new HeaderSize-byte slice.
func (h *BundleHeader) Bytes() []byte {
	b := make([]byte, HeaderSize)

	engine := endian.Engine()

	engine.PutUint16(b[optionsOffset:], h.Flag.Options)
	b[compressionOffset] = h.Flag.Compression
	engine.PutUint32(b[keyCountOffset:], h.KeyCount)
	engine.PutUint32(b[storedSizeOffset:], h.StoredSize)
	engine.PutUint32(b[rawSizeOffset:], h.RawSize)
	engine.PutUint32(b[namesOffsetOffset:], h.NamesOffset)
	engine.PutUint64(b[checksumOffset:], h.Checksum)

	return b
}

// ParseBundleHeader parses a BundleHeader from the start of data.
func ParseBundleHeader(data []byte) (BundleHeader, error) {
	if len(data) < HeaderSize {
		return BundleHeader{}, errs.ErrInvalidHeaderSize
	}

	h := BundleHeader{}
	if err := h.Parse(data[:HeaderSize]); err != nil {
		return BundleHeader{}, err
	}

	return h, nil
}
