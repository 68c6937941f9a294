package section

import (
	"github.com/arloliu/zcbuf/errs"
	"github.com/arloliu/zcbuf/format"
)

// BundleFlag is the packed option word and compression byte of a bundle header.
type BundleFlag struct {
	// Options is a packed field.
	// Bit 0 is set when the body carries a key names payload.
	// Bit 1 is the endianness flag; bundles are always little-endian, so it must be 0.
	// Bits 2-3 are reserved and must be 0.
	// Bits 4-15 hold the magic number:
	//   - 0xEC10 (0b1110_1100_0001_0000): bundle format v1
	Options uint16

	// Compression is the format.CompressionType applied to the body.
	Compression uint8
}

// NewBundleFlag creates a flag with the v1 magic number and no compression.
func NewBundleFlag() BundleFlag {
	return BundleFlag{
		Options:     MagicBundleV1Opt,
		Compression: uint8(format.CompressionNone),
	}
}

// HasKeyNames reports whether the body carries key names.
func (f BundleFlag) HasKeyNames() bool {
	return (f.Options & KeyNamesMask) != 0
}

// SetHasKeyNames sets or clears the key names bit.
func (f *BundleFlag) SetHasKeyNames(enabled bool) {
	if enabled {
		f.Options |= KeyNamesMask
	} else {
		f.Options &^= KeyNamesMask
	}
}

// IsLittleEndian reports whether the endianness bit is clear.
func (f BundleFlag) IsLittleEndian() bool {
	return (f.Options & EndiannessMask) == 0
}

// GetMagicNumber returns the magic number bits of Options.
func (f BundleFlag) GetMagicNumber() uint16 {
	return f.Options & MagicNumberMask
}

// SetCompression sets the body compression.
func (f *BundleFlag) SetCompression(compression format.CompressionType) {
	f.Compression = uint8(compression)
}

// GetCompression returns the body compression.
func (f BundleFlag) GetCompression() format.CompressionType {
	return format.CompressionType(f.Compression)
}

// Validate checks the magic number, the fixed bits, and the compression type.
func (f BundleFlag) Validate() error {
	if f.GetMagicNumber() != MagicBundleV1Opt {
		return errs.ErrInvalidMagicNumber
	}

	if !f.IsLittleEndian() || (f.Options&ReservedBitsMask) != 0 {
		return errs.ErrInvalidHeaderFlags
	}

	if !f.GetCompression().IsValid() {
		return errs.ErrInvalidCompression
	}

	return nil
}
