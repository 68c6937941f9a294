package bundle

import (
	"fmt"
	"iter"

	"github.com/arloliu/zcbuf/compress"
	"github.com/arloliu/zcbuf/errs"
	"github.com/arloliu/zcbuf/format"
	"github.com/arloliu/zcbuf/internal/hash"
	"github.com/arloliu/zcbuf/internal/options"
	"github.com/arloliu/zcbuf/record"
	"github.com/arloliu/zcbuf/section"
	"github.com/arloliu/zcbuf/varseq"
	"github.com/arloliu/zcbuf/zmap"
)

// Bundle is an opened, fully validated bundle.
type Bundle struct {
	header  section.BundleHeader
	entries zmap.Map[uint64, []byte]
	names   varseq.VarSeq[string]
}

// Open validates data and returns a Bundle that reads from it.
//
// Every error returned by Open belongs to the errs.ErrValidation class.
func Open(data []byte, opts ...ReaderOption) (Bundle, error) {
	cfg, err := options.Build(defaultReaderConfig, opts...)
	if err != nil {
		return Bundle{}, err
	}

	header, err := section.ParseBundleHeader(data)
	if err != nil {
		return Bundle{}, err
	}

	raw, err := openBody(header, data[section.HeaderSize:], cfg)
	if err != nil {
		return Bundle{}, err
	}

	entries, err := zmap.ParseSorted(keyColumn, valueColumn, raw[:header.NamesOffset])
	if err != nil {
		return Bundle{}, fmt.Errorf("entry map: %w", err)
	}

	if entries.Len() != int(header.KeyCount) {
		return Bundle{}, fmt.Errorf("%w: header declares %d keys, entry map has %d",
			errs.ErrLengthMismatch, header.KeyCount, entries.Len())
	}

	b := Bundle{header: header, entries: entries}

	if header.Flag.HasKeyNames() {
		b.names, err = parseNames(entries, raw[header.NamesOffset:])
		if err != nil {
			return Bundle{}, err
		}
	}

	return b, nil
}

// openBody checks the body sizes and returns the raw body.
func openBody(header section.BundleHeader, stored []byte, cfg ReaderConfig) ([]byte, error) {
	if len(stored) != int(header.StoredSize) {
		return nil, fmt.Errorf("%w: header declares %d stored bytes, have %d",
			errs.ErrInvalidBodySize, header.StoredSize, len(stored))
	}

	if header.RawSize > cfg.maxRawSize {
		return nil, fmt.Errorf("%w: raw body of %d bytes exceeds limit %d",
			errs.ErrInvalidBodySize, header.RawSize, cfg.maxRawSize)
	}

	codec, err := compress.GetCodec(header.Flag.GetCompression())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrInvalidCompression, err)
	}

	raw, err := codec.DecompressSized(stored, int(header.RawSize))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrCorruptBody, err)
	}

	if cfg.verifyChecksum {
		if sum := hash.Sum(raw); sum != header.Checksum {
			return nil, fmt.Errorf("%w: expected %#016x, got %#016x", errs.ErrChecksumMismatch, header.Checksum, sum)
		}
	}

	return raw, nil
}

// parseNames validates the key names and checks that name i hashes to key i.
func parseNames(entries zmap.Map[uint64, []byte], b []byte) (varseq.VarSeq[string], error) {
	names, err := varseq.Parse(record.String, b)
	if err != nil {
		return varseq.VarSeq[string]{}, fmt.Errorf("key names: %w", err)
	}

	if names.Len() != entries.Len() {
		return varseq.VarSeq[string]{}, fmt.Errorf("%w: %d key names for %d keys",
			errs.ErrLengthMismatch, names.Len(), entries.Len())
	}

	i := 0
	for id := range entries.Keys() {
		if hash.ID(names.At(i)) != id {
			return varseq.VarSeq[string]{}, errs.AtIndex(i, fmt.Errorf("%w: %q", errs.ErrHashMismatch, names.At(i)))
		}
		i++
	}

	return names, nil
}

// Len returns the number of entries.
func (b Bundle) Len() int {
	return b.entries.Len()
}

// Header returns the parsed header.
func (b Bundle) Header() section.BundleHeader {
	return b.header
}

// Compression returns the compression the body was stored with.
func (b Bundle) Compression() format.CompressionType {
	return b.header.Flag.GetCompression()
}

// HasKeyNames reports whether the bundle carries key names.
func (b Bundle) HasKeyNames() bool {
	return b.header.Flag.HasKeyNames()
}

// Lookup returns the payload stored under name.
//
// When the bundle carries key names, a hit is confirmed against the stored
// name, so a different name that happens to share the hash is reported as
// absent.
func (b Bundle) Lookup(name string) ([]byte, bool) {
	idx, found := b.entries.Find(hash.ID(name))
	if !found {
		return nil, false
	}

	if b.HasKeyNames() && b.names.At(idx) != name {
		return nil, false
	}

	return b.entries.ValueVector().At(idx), true
}

// LookupID returns the payload stored under a key ID.
func (b Bundle) LookupID(id uint64) ([]byte, bool) {
	return b.entries.Get(id)
}

// ContainsKey reports whether name is present.
func (b Bundle) ContainsKey(name string) bool {
	_, ok := b.Lookup(name)
	return ok
}

// Name returns the key name stored for id.
func (b Bundle) Name(id uint64) (string, bool) {
	if !b.HasKeyNames() {
		return "", false
	}

	idx, found := b.entries.Find(id)
	if !found {
		return "", false
	}

	return b.names.At(idx), true
}

// Keys yields every key name in key ID order. It yields nothing when the
// bundle has no key names.
func (b Bundle) Keys() iter.Seq[string] {
	return b.names.Values()
}

// Entries yields every key ID with its payload in ascending ID order.
func (b Bundle) Entries() iter.Seq2[uint64, []byte] {
	return b.entries.All()
}
