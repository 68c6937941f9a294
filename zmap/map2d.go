package zmap

import (
	"fmt"
	"iter"
	"math"
	"slices"

	"github.com/arloliu/zcbuf/errs"
	"github.com/arloliu/zcbuf/record"
	"github.com/arloliu/zcbuf/seq"
)

var joinerColumn = Fixed(record.Uint32)

// Entry2D is one (key0, key1, value) triple.
type Entry2D[K0, K1, V any] struct {
	Key0  K0
	Key1  K1
	Value V
}

// Map2D is an immutable two-level map.
//
// keys0 is strictly ascending. joiner[i] is the exclusive end index in keys1
// of the group owned by keys0[i]; the group starts at joiner[i-1], or 0 for
// the first group. Every group is non-empty and its keys1 are strictly
// ascending. values runs parallel to keys1.
type Map2D[K0, K1, V any] struct {
	keys0  Vector[K0]
	joiner seq.Seq[uint32]
	keys1  Vector[K1]
	values Vector[V]
	data   []byte
}

// Parse2D validates the structure of b and returns a Map2D that borrows it.
// Key ordering is trusted; the joiner is always checked.
func Parse2D[K0, K1, V any](col0 Column[K0], col1 Column[K1], valCol Column[V], b []byte) (Map2D[K0, K1, V], error) {
	parts, err := splitFrames(b, 4)
	if err != nil {
		return Map2D[K0, K1, V]{}, err
	}

	keys0, err := col0.Parse(parts[0])
	if err != nil {
		return Map2D[K0, K1, V]{}, fmt.Errorf("keys0: %w", err)
	}

	joiner, err := seq.Parse(record.Uint32, parts[1])
	if err != nil {
		return Map2D[K0, K1, V]{}, fmt.Errorf("joiner: %w", err)
	}

	keys1, err := col1.Parse(parts[2])
	if err != nil {
		return Map2D[K0, K1, V]{}, fmt.Errorf("keys1: %w", err)
	}

	values, err := valCol.Parse(parts[3])
	if err != nil {
		return Map2D[K0, K1, V]{}, fmt.Errorf("values: %w", err)
	}

	if keys1.Len() != values.Len() {
		return Map2D[K0, K1, V]{}, fmt.Errorf("%w: %d keys1, %d values", errs.ErrLengthMismatch, keys1.Len(), values.Len())
	}

	if err := checkJoiner(joiner, keys0.Len(), keys1.Len()); err != nil {
		return Map2D[K0, K1, V]{}, err
	}

	return Map2D[K0, K1, V]{keys0: keys0, joiner: joiner, keys1: keys1, values: values, data: b}, nil
}

// ParseSorted2D is Parse2D plus a check that keys0 and every keys1 group are
// strictly ascending.
func ParseSorted2D[K0, K1, V any](col0 Column[K0], col1 Column[K1], valCol Column[V], b []byte) (Map2D[K0, K1, V], error) {
	m, err := Parse2D(col0, col1, valCol, b)
	if err != nil {
		return Map2D[K0, K1, V]{}, err
	}

	if err := checkAscending(col0, m.keys0, 0, m.keys0.Len()); err != nil {
		return Map2D[K0, K1, V]{}, fmt.Errorf("keys0: %w", err)
	}

	for i := 0; i < m.keys0.Len(); i++ {
		start, end := m.groupRange(i)
		if err := checkAscending(col1, m.keys1, start, end); err != nil {
			return Map2D[K0, K1, V]{}, fmt.Errorf("keys1: %w", err)
		}
	}

	return m, nil
}

func checkJoiner(joiner seq.Seq[uint32], len0, len1 int) error {
	if joiner.Len() != len0 {
		return fmt.Errorf("%w: %d entries for %d keys0", errs.ErrInvalidJoiner, joiner.Len(), len0)
	}

	prev := uint32(0)
	for i, end := range joiner.All() {
		if end <= prev {
			return errs.AtIndex(i, fmt.Errorf("%w: end %d does not exceed %d", errs.ErrInvalidJoiner, end, prev))
		}

		prev = end
	}

	if uint64(prev) != uint64(len1) {
		return fmt.Errorf("%w: last end %d, %d keys1", errs.ErrInvalidJoiner, prev, len1)
	}

	return nil
}

// FromEntries2D sorts entries by (key0, key1) and builds an owned Map2D.
// Duplicate key pairs are rejected.
func FromEntries2D[K0, K1, V any](col0 Column[K0], col1 Column[K1], valCol Column[V], entries []Entry2D[K0, K1, V]) (Map2D[K0, K1, V], error) {
	sorted := slices.Clone(entries)
	slices.SortStableFunc(sorted, func(a, b Entry2D[K0, K1, V]) int {
		if c := col0.Compare(a.Key0, b.Key0); c != 0 {
			return c
		}

		return col1.Compare(a.Key1, b.Key1)
	})

	return FromSortedEntries2D(col0, col1, valCol, sorted)
}

// FromSortedEntries2D builds an owned Map2D from entries already sorted by
// (key0, key1). Unsorted or duplicate key pairs are rejected.
func FromSortedEntries2D[K0, K1, V any](col0 Column[K0], col1 Column[K1], valCol Column[V], entries []Entry2D[K0, K1, V]) (Map2D[K0, K1, V], error) {
	if uint64(len(entries)) > math.MaxUint32 {
		return Map2D[K0, K1, V]{}, fmt.Errorf("%w: %d entries", errs.ErrTooLarge, len(entries))
	}

	var (
		keys0  []K0
		joiner []uint32
		keys1  = make([]K1, len(entries))
		values = make([]V, len(entries))
	)

	for i, e := range entries {
		if i > 0 {
			prev := entries[i-1]
			c := col0.Compare(prev.Key0, e.Key0)
			if c == 0 {
				c = col1.Compare(prev.Key1, e.Key1)
			} else if c < 0 {
				joiner = append(joiner, uint32(i))
			}

			if err := orderError(c, i); err != nil {
				return Map2D[K0, K1, V]{}, err
			}
		}

		if i == 0 || col0.Compare(entries[i-1].Key0, e.Key0) != 0 {
			keys0 = append(keys0, e.Key0)
		}

		keys1[i] = e.Key1
		values[i] = e.Value
	}

	if len(entries) > 0 {
		joiner = append(joiner, uint32(len(entries)))
	}

	k0, err := col0.Encode(keys0)
	if err != nil {
		return Map2D[K0, K1, V]{}, fmt.Errorf("keys0: %w", err)
	}

	j, err := joinerColumn.Encode(joiner)
	if err != nil {
		return Map2D[K0, K1, V]{}, fmt.Errorf("joiner: %w", err)
	}

	k1, err := col1.Encode(keys1)
	if err != nil {
		return Map2D[K0, K1, V]{}, fmt.Errorf("keys1: %w", err)
	}

	vv, err := valCol.Encode(values)
	if err != nil {
		return Map2D[K0, K1, V]{}, fmt.Errorf("values: %w", err)
	}

	data, err := joinFrames(k0.Bytes(), j.Bytes(), k1.Bytes(), vv.Bytes())
	if err != nil {
		return Map2D[K0, K1, V]{}, err
	}

	parts, _ := splitFrames(data, 4)

	return Map2D[K0, K1, V]{
		keys0:  col0.view(parts[0]),
		joiner: seq.Trusted(record.Uint32, parts[1]),
		keys1:  col1.view(parts[2]),
		values: valCol.view(parts[3]),
		data:   data,
	}, nil
}

// Len returns the total number of (key0, key1) entries.
func (m Map2D[K0, K1, V]) Len() int {
	if m.values == nil {
		return 0
	}

	return m.values.Len()
}

// Len0 returns the number of distinct first-level keys.
func (m Map2D[K0, K1, V]) Len0() int {
	if m.keys0 == nil {
		return 0
	}

	return m.keys0.Len()
}

// IsEmpty reports whether the map has no entries.
func (m Map2D[K0, K1, V]) IsEmpty() bool {
	return m.Len() == 0
}

// Bytes returns the framed encoding. It must not be modified.
func (m Map2D[K0, K1, V]) Bytes() []byte {
	return m.data
}

// Get returns the value stored under (key0, key1).
func (m Map2D[K0, K1, V]) Get(key0 K0, key1 K1) (V, bool) {
	c, ok := m.Get0(key0)
	if !ok {
		var zero V
		return zero, false
	}

	return c.Get1(key1)
}

// ContainsKey0 reports whether key0 has any entries.
func (m Map2D[K0, K1, V]) ContainsKey0(key0 K0) bool {
	_, ok := m.Get0(key0)
	return ok
}

// Get0 returns a cursor over the group owned by key0.
func (m Map2D[K0, K1, V]) Get0(key0 K0) (Cursor[K0, K1, V], bool) {
	if m.keys0 == nil {
		return Cursor[K0, K1, V]{}, false
	}

	i, ok := m.keys0.BinarySearch(key0)
	if !ok {
		return Cursor[K0, K1, V]{}, false
	}

	return m.cursor(i), true
}

// GetAtOrBelow returns the value under key0 whose key1 is the largest key1
// less than or equal to the given one.
func (m Map2D[K0, K1, V]) GetAtOrBelow(key0 K0, key1 K1) (V, bool) {
	c, ok := m.Get0(key0)
	if !ok {
		var zero V
		return zero, false
	}

	_, v, ok := c.AtOrBelow(key1)

	return v, ok
}

// Cursors returns an iterator over one cursor per key0, in ascending order.
func (m Map2D[K0, K1, V]) Cursors() iter.Seq[Cursor[K0, K1, V]] {
	return func(yield func(Cursor[K0, K1, V]) bool) {
		for i := 0; i < m.Len0(); i++ {
			if !yield(m.cursor(i)) {
				return
			}
		}
	}
}

// All returns an iterator over every entry in (key0, key1) order.
func (m Map2D[K0, K1, V]) All() iter.Seq[Entry2D[K0, K1, V]] {
	return func(yield func(Entry2D[K0, K1, V]) bool) {
		for c := range m.Cursors() {
			k0 := c.Key0()
			for k1, v := range c.All() {
				if !yield(Entry2D[K0, K1, V]{Key0: k0, Key1: k1, Value: v}) {
					return
				}
			}
		}
	}
}

func (m Map2D[K0, K1, V]) cursor(i int) Cursor[K0, K1, V] {
	start, end := m.groupRange(i)
	return Cursor[K0, K1, V]{m: m, index: i, start: start, end: end}
}

func (m Map2D[K0, K1, V]) groupRange(i int) (int, int) {
	start := 0
	if i > 0 {
		start = int(m.joiner.At(i - 1))
	}

	return start, int(m.joiner.At(i))
}

// Cursor is a view of the entries under one key0.
type Cursor[K0, K1, V any] struct {
	m     Map2D[K0, K1, V]
	index int
	start int
	end   int
}

// Key0 returns the first-level key of the group.
func (c Cursor[K0, K1, V]) Key0() K0 {
	return c.m.keys0.At(c.index)
}

// Len returns the number of entries in the group.
func (c Cursor[K0, K1, V]) Len() int {
	return c.end - c.start
}

// Get1 returns the value stored under key1 in this group.
func (c Cursor[K0, K1, V]) Get1(key1 K1) (V, bool) {
	if c.m.keys1 == nil {
		var zero V
		return zero, false
	}

	i, ok := c.m.keys1.BinarySearchInRange(key1, c.start, c.end)
	if !ok {
		var zero V
		return zero, false
	}

	return c.m.values.At(i), true
}

// AtOrBelow returns the entry with the largest key1 less than or equal to
// key1 in this group.
func (c Cursor[K0, K1, V]) AtOrBelow(key1 K1) (K1, V, bool) {
	var (
		zeroK K1
		zeroV V
	)

	if c.m.keys1 == nil {
		return zeroK, zeroV, false
	}

	i, ok := c.m.keys1.BinarySearchInRange(key1, c.start, c.end)
	if !ok {
		i--
	}

	if i < c.start || i >= c.end {
		return zeroK, zeroV, false
	}

	return c.m.keys1.At(i), c.m.values.At(i), true
}

// All returns an iterator over the group's (key1, value) pairs.
func (c Cursor[K0, K1, V]) All() iter.Seq2[K1, V] {
	return func(yield func(K1, V) bool) {
		for i := c.start; i < c.end; i++ {
			if !yield(c.m.keys1.At(i), c.m.values.At(i)) {
				return
			}
		}
	}
}
