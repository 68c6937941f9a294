package collision

import (
	"fmt"

	"github.com/arloliu/zcbuf/errs"
)

// Tracker records the key names added to a bundle encoder and detects
// duplicates and hash collisions before anything is written.
//
// A bundle entry map is keyed by the 64-bit hash of the key name, so two
// distinct names with the same hash cannot both be stored.
type Tracker struct {
	names map[uint64]string // hash → name; "" for keys added by hash only
}

// NewTracker creates a new collision tracker.
func NewTracker() *Tracker {
	return &Tracker{names: make(map[uint64]string)}
}

// TrackHash tracks a key supplied as a precomputed hash.
// Returns ErrDuplicateKey if the hash was already used.
func (t *Tracker) TrackHash(hash uint64) error {
	if _, exists := t.names[hash]; exists {
		return fmt.Errorf("%w: key hash %#016x", errs.ErrDuplicateKey, hash)
	}

	t.names[hash] = ""

	return nil
}

// TrackKey tracks a key name with its hash.
// Returns error if:
//   - The name is empty (ErrInvalidKeyName)
//   - The same name is added twice (ErrDuplicateKey)
//   - A different name already has the same hash (ErrHashCollision)
func (t *Tracker) TrackKey(name string, hash uint64) error {
	if name == "" {
		return errs.ErrInvalidKeyName
	}

	if existing, exists := t.names[hash]; exists {
		if existing == name {
			return fmt.Errorf("%w: %q", errs.ErrDuplicateKey, name)
		}

		return fmt.Errorf("%w: %q and %q share hash %#016x", errs.ErrHashCollision, existing, name, hash)
	}

	t.names[hash] = name

	return nil
}

// HasAllNames reports whether every tracked key was added by name.
func (t *Tracker) HasAllNames() bool {
	for _, name := range t.names {
		if name == "" {
			return false
		}
	}

	return true
}

// Count returns the number of tracked keys.
func (t *Tracker) Count() int {
	return len(t.names)
}

// Reset clears all tracked keys so the tracker can serve a new bundle.
func (t *Tracker) Reset() {
	clear(t.names)
}
