// Package section defines the fixed binary header that prefixes a bundle.
//
// # Bundle Layout
//
//	┌─────────────────────────────────────────────────────────┐
//	│ Header (32 bytes)                                       │
//	│  - Flag (options + compression)                         │
//	│  - Key count, body sizes, names offset, checksum        │
//	├─────────────────────────────────────────────────────────┤
//	│ Body (StoredSize bytes, compressed unless None)         │
//	│  ┌───────────────────────────────────────────────────┐  │
//	│  │ Entry map: zmap of key hash (u64) -> value bytes  │  │
//	│  ├───────────────────────────────────────────────────┤  │
//	│  │ Key names (optional): varseq of strings in the    │  │
//	│  │ same order as the map keys                        │  │
//	│  └───────────────────────────────────────────────────┘  │
//	└─────────────────────────────────────────────────────────┘
//
// # Header Format
//
// BundleHeader (32 bytes, little-endian):
//
//	Bytes  | Field        | Type   | Description
//	-------|--------------|--------|-----------------------------------------
//	0-1    | Options      | uint16 | Key names bit, endianness, magic number
//	2      | Compression  | uint8  | format.CompressionType of the body
//	3      | Reserved     | uint8  | Must be 0
//	4-7    | KeyCount     | uint32 | Number of entries
//	8-11   | StoredSize   | uint32 | Body size as stored
//	12-15  | RawSize      | uint32 | Body size after decompression
//	16-19  | NamesOffset  | uint32 | Start of key names in the raw body
//	20-27  | Checksum     | uint64 | xxHash64 of the raw body
//	28-31  | Reserved     | uint32 | Must be 0
//
// # Flag Format
//
//	Options (16 bits):
//	  Bit 0: Key names payload (0=not present, 1=present)
//	  Bit 1: Endianness (must be 0, little-endian)
//	  Bits 2-3: Reserved (must be 0)
//	  Bits 4-15: Magic number (0xEC10 for bundle v1)
//
//	Compression (8 bits):
//	  0x1=None, 0x2=Zstd, 0x3=S2, 0x4=LZ4
//
// Example:
//
//	h := section.NewBundleHeader()
//	h.Flag.SetCompression(format.CompressionZstd)
//	h.Flag.SetHasKeyNames(true)
//	data := h.Bytes()
//
//	parsed, err := section.ParseBundleHeader(data)
package section
