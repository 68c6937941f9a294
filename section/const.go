package section

const (
	// Bit masks for BundleFlag.Options
	KeyNamesMask     = 0x0001 // key names payload present (bit 0)
	EndiannessMask   = 0x0002 // 0=little, 1=big; must be 0 (bit 1)
	ReservedBitsMask = 0x000C // reserved, must be 0 (bits 2-3)
	MagicNumberMask  = 0xFFF0 // magic number (bits 4-15)

	// MagicBundleV1Opt identifies version 1 of the bundle format.
	MagicBundleV1Opt = 0xEC10
)

// Fixed sizes and offsets of the bundle header.
const (
	HeaderSize = 32 // fixed header size in bytes

	optionsOffset     = 0
	compressionOffset = 2
	reservedOffset    = 3
	keyCountOffset    = 4
	storedSizeOffset  = 8
	rawSizeOffset     = 12
	namesOffsetOffset = 16
	checksumOffset    = 20
	trailerOffset     = 28
)
