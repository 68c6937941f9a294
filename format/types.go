package format

type (
	CompressionType uint8
	ColumnKind      uint8
)

const (
	CompressionNone CompressionType = 0x1 // CompressionNone stores the bundle body as-is.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 block compression.

	ColumnFixed ColumnKind = 0x1 // ColumnFixed is a column of fixed-width records.
	ColumnVar   ColumnKind = 0x2 // ColumnVar is an offset-indexed column of variable records.
)

// IsValid reports whether c names a known compression type.
func (c CompressionType) IsValid() bool {
	return c >= CompressionNone && c <= CompressionLZ4
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

func (k ColumnKind) String() string {
	switch k {
	case ColumnFixed:
		return "Fixed"
	case ColumnVar:
		return "Var"
	default:
		return "Unknown"
	}
}
