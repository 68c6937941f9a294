// Package compress provides the codecs applied to a bundle body.
//
// Compression is a whole-body step: the bundle encoder lays out the entry
// map and key names, then compresses the result once. Readers decompress
// once into a buffer sized from the header, and every lookup afterwards is
// a zero-copy view into that buffer.
//
// Supported algorithms:
//   - None: no compression; the body stays a view of the input bytes
//   - Zstd: best ratio (klauspost/compress/zstd, or valyala/gozstd with -tags gozstd and cgo)
//   - S2: balanced speed and ratio (klauspost/compress/s2)
//   - LZ4: fastest decompression (pierrec/lz4/v4)
//
// # Architecture
//
//	type Compressor interface {
//	    Compress(data []byte) ([]byte, error)
//	}
//
//	type Decompressor interface {
//	    DecompressSized(data []byte, rawSize int) ([]byte, error)
//	}
//
// The raw size is taken from the bundle header and checked against the
// reader's limit before any buffer is allocated. No codec produces more than
// rawSize bytes of output, whatever the compressed input claims.
//
// # Thread Safety
//
// All codec implementations are safe for concurrent use. Zstd and LZ4 keep
// pooled encoder state internally.
package compress
