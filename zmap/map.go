// Package zmap provides sorted maps whose keys and values live in zero-copy
// vectors.
//
// Map[K, V] stores keys and values as two parallel vectors with keys strictly
// ascending. Map2D[K0, K1, V] groups a second key level under each first-level
// key through a joiner of exclusive end indices. Both types are immutable and
// safe for concurrent readers.
//
// # Format
//
// Every part is framed as a little-endian uint32 byte length followed by the
// vector bytes. A Map is [keys][values]; a Map2D is
// [keys0][joiner][keys1][values], where the joiner is a seq.Seq[uint32].
//
// A fixed column stores bare concatenated records and a variable column
// stores a varseq encoding.
package zmap

import (
	"fmt"
	"iter"
	"slices"

	"github.com/arloliu/zcbuf/errs"
)

// Entry is one key/value pair.
type Entry[K, V any] struct {
	Key   K
	Value V
}

// Map is an immutable map with strictly ascending keys.
type Map[K, V any] struct {
	keys   Vector[K]
	values Vector[V]
	data   []byte
}

// Parse validates the structure of b and returns a Map that borrows it.
//
// Key ordering is trusted, not checked; use ParseSorted for untrusted input
// that lookups must stay correct on.
func Parse[K, V any](keyCol Column[K], valCol Column[V], b []byte) (Map[K, V], error) {
	parts, err := splitFrames(b, 2)
	if err != nil {
		return Map[K, V]{}, err
	}

	keys, err := keyCol.Parse(parts[0])
	if err != nil {
		return Map[K, V]{}, fmt.Errorf("keys: %w", err)
	}

	values, err := valCol.Parse(parts[1])
	if err != nil {
		return Map[K, V]{}, fmt.Errorf("values: %w", err)
	}

	if keys.Len() != values.Len() {
		return Map[K, V]{}, fmt.Errorf("%w: %d keys, %d values", errs.ErrLengthMismatch, keys.Len(), values.Len())
	}

	return Map[K, V]{keys: keys, values: values, data: b}, nil
}

// ParseSorted is Parse plus a check that keys are strictly ascending.
func ParseSorted[K, V any](keyCol Column[K], valCol Column[V], b []byte) (Map[K, V], error) {
	m, err := Parse(keyCol, valCol, b)
	if err != nil {
		return Map[K, V]{}, err
	}

	if err := checkAscending(keyCol, m.keys, 0, m.keys.Len()); err != nil {
		return Map[K, V]{}, err
	}

	return m, nil
}

// FromSorted builds an owned Map from parallel slices. keys must be strictly
// ascending.
func FromSorted[K, V any](keyCol Column[K], valCol Column[V], keys []K, values []V) (Map[K, V], error) {
	if len(keys) != len(values) {
		return Map[K, V]{}, fmt.Errorf("%w: %d keys, %d values", errs.ErrLengthMismatch, len(keys), len(values))
	}

	for i := 1; i < len(keys); i++ {
		if err := orderError(keyCol.Compare(keys[i-1], keys[i]), i); err != nil {
			return Map[K, V]{}, err
		}
	}

	kv, err := keyCol.Encode(keys)
	if err != nil {
		return Map[K, V]{}, fmt.Errorf("keys: %w", err)
	}

	vv, err := valCol.Encode(values)
	if err != nil {
		return Map[K, V]{}, fmt.Errorf("values: %w", err)
	}

	data, err := joinFrames(kv.Bytes(), vv.Bytes())
	if err != nil {
		return Map[K, V]{}, err
	}

	return viewMap(keyCol, valCol, data), nil
}

// FromPairs sorts entries by key and builds an owned Map. Duplicate keys are
// rejected.
func FromPairs[K, V any](keyCol Column[K], valCol Column[V], entries []Entry[K, V]) (Map[K, V], error) {
	sorted := slices.Clone(entries)
	slices.SortStableFunc(sorted, func(a, b Entry[K, V]) int {
		return keyCol.Compare(a.Key, b.Key)
	})

	keys := make([]K, len(sorted))
	values := make([]V, len(sorted))
	for i, e := range sorted {
		keys[i] = e.Key
		values[i] = e.Value
	}

	return FromSorted(keyCol, valCol, keys, values)
}

// FromMap builds an owned Map from a Go map.
func FromMap[K comparable, V any](keyCol Column[K], valCol Column[V], m map[K]V) (Map[K, V], error) {
	entries := make([]Entry[K, V], 0, len(m))
	for k, v := range m {
		entries = append(entries, Entry[K, V]{Key: k, Value: v})
	}

	return FromPairs(keyCol, valCol, entries)
}

func viewMap[K, V any](keyCol Column[K], valCol Column[V], data []byte) Map[K, V] {
	// data was produced by joinFrames over valid vectors
	parts, _ := splitFrames(data, 2)

	return Map[K, V]{
		keys:   keyCol.view(parts[0]),
		values: valCol.view(parts[1]),
		data:   data,
	}
}

// Len returns the number of entries.
func (m Map[K, V]) Len() int {
	if m.keys == nil {
		return 0
	}

	return m.keys.Len()
}

// IsEmpty reports whether the map has no entries.
func (m Map[K, V]) IsEmpty() bool {
	return m.Len() == 0
}

// Bytes returns the framed encoding. It must not be modified.
func (m Map[K, V]) Bytes() []byte {
	return m.data
}

// KeyVector returns the key vector.
func (m Map[K, V]) KeyVector() Vector[K] {
	return m.keys
}

// ValueVector returns the value vector.
func (m Map[K, V]) ValueVector() Vector[V] {
	return m.values
}

// Find returns the index of key, or its insertion point and false.
func (m Map[K, V]) Find(key K) (int, bool) {
	if m.keys == nil {
		return 0, false
	}

	return m.keys.BinarySearch(key)
}

// Get returns the value stored under key.
func (m Map[K, V]) Get(key K) (V, bool) {
	i, ok := m.Find(key)
	if !ok {
		var zero V
		return zero, false
	}

	return m.values.At(i), true
}

// ContainsKey reports whether key is present.
func (m Map[K, V]) ContainsKey(key K) bool {
	_, ok := m.Find(key)
	return ok
}

// Floor returns the entry with the largest key less than or equal to key.
func (m Map[K, V]) Floor(key K) (Entry[K, V], bool) {
	i, ok := m.Find(key)
	if !ok {
		i--
	}

	return m.Entry(i)
}

// Entry returns the i-th entry in key order.
func (m Map[K, V]) Entry(i int) (Entry[K, V], bool) {
	if i < 0 || i >= m.Len() {
		return Entry[K, V]{}, false
	}

	return Entry[K, V]{Key: m.keys.At(i), Value: m.values.At(i)}, true
}

// All returns an iterator over entries in ascending key order.
func (m Map[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for i := 0; i < m.Len(); i++ {
			if !yield(m.keys.At(i), m.values.At(i)) {
				return
			}
		}
	}
}

// Keys returns an iterator over keys in ascending order.
func (m Map[K, V]) Keys() iter.Seq[K] {
	return func(yield func(K) bool) {
		for i := 0; i < m.Len(); i++ {
			if !yield(m.keys.At(i)) {
				return
			}
		}
	}
}

// Values returns an iterator over values in key order.
func (m Map[K, V]) Values() iter.Seq[V] {
	return func(yield func(V) bool) {
		for i := 0; i < m.Len(); i++ {
			if !yield(m.values.At(i)) {
				return
			}
		}
	}
}

func checkAscending[K any](col Column[K], keys Vector[K], lo, hi int) error {
	for i := lo + 1; i < hi; i++ {
		if err := orderError(col.Compare(keys.At(i-1), keys.At(i)), i); err != nil {
			return err
		}
	}

	return nil
}

// orderError classifies the comparison of key i-1 with key i.
func orderError(c int, i int) error {
	switch {
	case c == 0:
		return errs.AtIndex(i, errs.ErrDuplicateKey)
	case c > 0:
		return errs.AtIndex(i, errs.ErrUnsorted)
	default:
		return nil
	}
}
