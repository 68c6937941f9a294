// Package bundle implements a persisted dataset bundle: a set of named
// binary payloads stored in one buffer that can be opened without copying.
//
// A bundle is written once by an Encoder and read many times by Open. The
// body holds a zmap.Map from the xxHash64 of each key name to the payload
// bytes, optionally followed by the key names themselves so a reader can
// enumerate keys and confirm a lookup hit the intended name. The body may be
// compressed as a whole and is protected by an xxHash64 checksum.
//
// # Encoding
//
//	enc, err := bundle.NewEncoder(
//	    bundle.WithCompression(format.CompressionZstd),
//	    bundle.WithKeyNames(true),
//	)
//	if err != nil {
//	    return err
//	}
//
//	_ = enc.Add("calendar/japanese", japaneseEras)
//	_ = enc.Add("calendar/gregory", gregorianEras)
//
//	data, err := enc.Finish()
//
// # Decoding
//
//	b, err := bundle.Open(data, bundle.WithMaxRawSize(16<<20))
//	if err != nil {
//	    return err // always an errs.ErrValidation class error
//	}
//
//	payload, ok := b.Lookup("calendar/japanese")
//
// Open checks every header field, the stored and raw sizes, the checksum,
// the entry map structure and key order, and when names are present that
// each name hashes to its key. Once Open succeeds, lookups never fail on
// malformed data.
//
// # Memory
//
// An uncompressed bundle is a zero-copy view: payloads returned by Lookup
// alias the slice passed to Open, which must not be modified afterwards. A
// compressed bundle is decompressed once into a buffer owned by the Bundle.
//
// Bundles are immutable and safe for concurrent readers. Encoders are not
// safe for concurrent use.
package bundle
