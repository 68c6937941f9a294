package bundle

import (
	"cmp"
	"fmt"
	"math"
	"slices"

	"github.com/arloliu/zcbuf/compress"
	"github.com/arloliu/zcbuf/errs"
	"github.com/arloliu/zcbuf/internal/collision"
	"github.com/arloliu/zcbuf/internal/hash"
	"github.com/arloliu/zcbuf/internal/options"
	"github.com/arloliu/zcbuf/internal/pool"
	"github.com/arloliu/zcbuf/record"
	"github.com/arloliu/zcbuf/section"
	"github.com/arloliu/zcbuf/varseq"
	"github.com/arloliu/zcbuf/zmap"
)

var (
	keyColumn   = zmap.Fixed(record.Uint64)
	valueColumn = zmap.Var(record.Bytes)
)

// KeyID returns the 64-bit key a bundle stores for name.
func KeyID(name string) uint64 {
	return hash.ID(name)
}

type pendingEntry struct {
	id    uint64
	name  string
	value []byte
}

// Encoder collects entries and writes them as a bundle.
//
// Note: The Encoder is NOT thread-safe. After Finish succeeds the encoder is
// empty and can be reused with the same configuration.
type Encoder struct {
	cfg     EncoderConfig
	codec   compress.Codec
	tracker *collision.Tracker
	entries []pendingEntry
	stats   compress.CompressionStats
}

// NewEncoder creates an encoder.
//
// Parameters:
//   - opts: WithCompression, WithKeyNames
//
// Returns:
//   - *Encoder: New encoder instance
//   - error: Configuration error if invalid options provided
func NewEncoder(opts ...EncoderOption) (*Encoder, error) {
	cfg, err := options.Build(defaultEncoderConfig, opts...)
	if err != nil {
		return nil, err
	}

	codec, err := compress.CreateCodec(cfg.compression, "body")
	if err != nil {
		return nil, err
	}

	return &Encoder{
		cfg:     cfg,
		codec:   codec,
		tracker: collision.NewTracker(),
	}, nil
}

// Add adds a payload under name. value is copied.
//
// Returns:
//   - error: ErrInvalidKeyName for an empty name, ErrDuplicateKey when name
//     was already added, ErrHashCollision when another name has the same hash
func (e *Encoder) Add(name string, value []byte) error {
	id := hash.ID(name)
	if err := e.tracker.TrackKey(name, id); err != nil {
		return err
	}

	e.entries = append(e.entries, pendingEntry{id: id, name: name, value: slices.Clone(value)})

	return nil
}

// AddID adds a payload under a precomputed key ID, for callers that never
// keep key names around. A bundle that contains such an entry cannot store
// key names, so Finish fails unless the encoder was created with
// WithKeyNames(false).
func (e *Encoder) AddID(id uint64, value []byte) error {
	if err := e.tracker.TrackHash(id); err != nil {
		return err
	}

	e.entries = append(e.entries, pendingEntry{id: id, value: slices.Clone(value)})

	return nil
}

// Len returns the number of entries added so far.
func (e *Encoder) Len() int {
	return e.tracker.Count()
}

// Stats returns the compression statistics of the last successful Finish.
func (e *Encoder) Stats() compress.CompressionStats {
	return e.stats
}

// Finish writes every added entry as a bundle and resets the encoder.
//
// Returns:
//   - []byte: The encoded bundle, owned by the caller
//   - error: ErrInvalidKeyName when names were requested but some entries
//     were added by ID, ErrTooLarge when the body exceeds the format limits,
//     or a compression error
func (e *Encoder) Finish() ([]byte, error) {
	if e.cfg.keyNames && !e.tracker.HasAllNames() {
		return nil, fmt.Errorf("%w: key names requested but some entries were added by ID", errs.ErrInvalidKeyName)
	}

	slices.SortFunc(e.entries, func(a, b pendingEntry) int {
		return cmp.Compare(a.id, b.id)
	})

	keys, cleanup := pool.GetUint64Slice(len(e.entries))
	defer cleanup()

	values := make([][]byte, len(e.entries))
	for i, entry := range e.entries {
		keys[i] = entry.id
		values[i] = entry.value
	}

	entryMap, err := zmap.FromSorted(keyColumn, valueColumn, keys, values)
	if err != nil {
		return nil, fmt.Errorf("failed to encode entry map: %w", err)
	}

	body := pool.GetBundleBuffer()
	defer pool.PutBundleBuffer(body)

	body.MustWrite(entryMap.Bytes())
	namesOffset := body.Len()

	header := section.NewBundleHeader()
	header.Flag.SetCompression(e.cfg.compression)

	if e.cfg.keyNames {
		names := varseq.NewEncoder(record.String)
		for _, entry := range e.entries {
			if err := names.Write(entry.name); err != nil {
				names.Reset()
				return nil, fmt.Errorf("failed to encode key names: %w", err)
			}
		}

		body.MustWrite(names.Finish().Bytes())
		header.Flag.SetHasKeyNames(true)
	}

	raw := body.Bytes()
	if uint64(len(raw)) > math.MaxUint32 {
		return nil, fmt.Errorf("%w: raw body of %d bytes", errs.ErrTooLarge, len(raw))
	}

	stored, err := e.codec.Compress(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to compress body: %w", err)
	}

	if uint64(len(stored)) > math.MaxUint32 {
		return nil, fmt.Errorf("%w: stored body of %d bytes", errs.ErrTooLarge, len(stored))
	}

	header.KeyCount = uint32(len(e.entries)) //nolint:gosec
	header.RawSize = uint32(len(raw))        //nolint:gosec
	header.StoredSize = uint32(len(stored))  //nolint:gosec
	header.NamesOffset = uint32(namesOffset) //nolint:gosec
	header.Checksum = hash.Sum(raw)

	out := make([]byte, section.HeaderSize+len(stored))
	copy(out, header.Bytes())
	copy(out[section.HeaderSize:], stored)

	e.stats = compress.CompressionStats{
		Algorithm:      e.cfg.compression,
		OriginalSize:   int64(len(raw)),
		CompressedSize: int64(len(stored)),
	}
	e.Reset()

	return out, nil
}

// Reset discards every added entry.
func (e *Encoder) Reset() {
	e.tracker.Reset()
	clear(e.entries)
	e.entries = e.entries[:0]
}
