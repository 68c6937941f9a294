// Package seq provides Seq, an immutable view over a run of fixed-width records.
//
// A Seq either borrows a validated caller buffer or owns a buffer it encoded
// itself. In both cases elements are decoded on access, so constructing a Seq
// over a large dataset costs one validation pass and no allocation.
//
//	s, err := seq.Parse(record.Uint32, data)
//	if err != nil {
//	    return err
//	}
//	i, found := s.BinarySearch(42)
//
// The zero value is an empty sequence.
package seq

import (
	"fmt"
	"iter"

	"github.com/arloliu/zcbuf/errs"
	"github.com/arloliu/zcbuf/record"
)

// Seq is an immutable sequence of fixed-width records of type T.
type Seq[T any] struct {
	codec record.Fixed[T]
	data  []byte
	owned bool
}

// Parse validates b and returns a Seq that borrows it.
//
// b must not be modified for as long as the Seq, or anything decoded from it,
// is in use.
func Parse[T any](codec record.Fixed[T], b []byte) (Seq[T], error) {
	if err := codec.Validate(b); err != nil {
		return Seq[T]{}, err
	}

	return Seq[T]{codec: codec, data: b[:len(b):len(b)]}, nil
}

// Trusted wraps b without validating it. b must be an encoding that already
// passed codec.Validate, such as the Bytes of another Seq.
func Trusted[T any](codec record.Fixed[T], b []byte) Seq[T] {
	return Seq[T]{codec: codec, data: b[:len(b)-len(b)%codec.Width():len(b)]}
}

// FromValues encodes values into a new owned buffer.
func FromValues[T any](codec record.Fixed[T], values []T) (Seq[T], error) {
	w := codec.Width()
	buf := make([]byte, w*len(values))

	for i, v := range values {
		if err := codec.Encode(buf[i*w:(i+1)*w], v); err != nil {
			return Seq[T]{}, errs.AtIndex(i, err)
		}
	}

	return Seq[T]{codec: codec, data: buf, owned: true}, nil
}

// Empty returns an empty sequence bound to codec.
func Empty[T any](codec record.Fixed[T]) Seq[T] {
	return Seq[T]{codec: codec}
}

// Codec returns the record codec, or nil for the zero Seq.
func (s Seq[T]) Codec() record.Fixed[T] {
	return s.codec
}

// Len returns the number of elements.
func (s Seq[T]) Len() int {
	if s.codec == nil {
		return 0
	}

	return len(s.data) / s.codec.Width()
}

// IsEmpty reports whether the sequence has no elements.
func (s Seq[T]) IsEmpty() bool {
	return len(s.data) == 0
}

// IsOwned reports whether the Seq holds a buffer it encoded itself.
func (s Seq[T]) IsOwned() bool {
	return s.owned
}

// Bytes returns the underlying encoding. It must not be modified.
func (s Seq[T]) Bytes() []byte {
	return s.data
}

// Get returns element i, or false if i is out of range.
func (s Seq[T]) Get(i int) (T, bool) {
	if i < 0 || i >= s.Len() {
		var zero T
		return zero, false
	}

	return s.decode(i), true
}

// At returns element i. It panics if i is out of range.
func (s Seq[T]) At(i int) T {
	if i < 0 || i >= s.Len() {
		panic(fmt.Sprintf("seq: index %d out of range [0:%d]", i, s.Len()))
	}

	return s.decode(i)
}

// First returns the first element, or false if the sequence is empty.
func (s Seq[T]) First() (T, bool) {
	return s.Get(0)
}

// Last returns the last element, or false if the sequence is empty.
func (s Seq[T]) Last() (T, bool) {
	return s.Get(s.Len() - 1)
}

// All returns an iterator over index/element pairs in order.
func (s Seq[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		n := s.Len()
		for i := 0; i < n; i++ {
			if !yield(i, s.decode(i)) {
				return
			}
		}
	}
}

// Values returns an iterator over the elements in order.
func (s Seq[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		n := s.Len()
		for i := 0; i < n; i++ {
			if !yield(s.decode(i)) {
				return
			}
		}
	}
}

// ToSlice decodes every element into a new slice.
func (s Seq[T]) ToSlice() []T {
	out := make([]T, s.Len())
	for i := range out {
		out[i] = s.decode(i)
	}

	return out
}

// Slice returns the sub-sequence [lo, hi) sharing the same buffer.
// It returns false if the range is invalid.
func (s Seq[T]) Slice(lo, hi int) (Seq[T], bool) {
	if lo < 0 || hi > s.Len() || lo > hi {
		return Seq[T]{}, false
	}

	if s.codec == nil {
		return s, true
	}

	w := s.codec.Width()

	return Seq[T]{codec: s.codec, data: s.data[lo*w : hi*w : hi*w], owned: s.owned}, true
}

// BinarySearch searches a sequence sorted by the codec's ordering.
//
// It returns the index of a matching element and true, or the index at which
// target would be inserted to keep the order and false.
func (s Seq[T]) BinarySearch(target T) (int, bool) {
	if s.codec == nil {
		return 0, false
	}

	return s.search(0, s.Len(), func(v T) int { return s.codec.Compare(v, target) })
}

// BinarySearchFunc is like BinarySearch but orders elements with cmp, which
// returns the ordering of an element relative to the target.
func (s Seq[T]) BinarySearchFunc(cmp func(T) int) (int, bool) {
	return s.search(0, s.Len(), cmp)
}

// BinarySearchInRange searches only the elements in [lo, hi). The returned
// index is absolute. An invalid range yields (-1, false).
func (s Seq[T]) BinarySearchInRange(target T, lo, hi int) (int, bool) {
	if lo < 0 || hi > s.Len() || lo > hi || s.codec == nil {
		return -1, false
	}

	return s.search(lo, hi, func(v T) int { return s.codec.Compare(v, target) })
}

// BinarySearchInRangeFunc combines BinarySearchInRange and BinarySearchFunc.
func (s Seq[T]) BinarySearchInRangeFunc(cmp func(T) int, lo, hi int) (int, bool) {
	if lo < 0 || hi > s.Len() || lo > hi {
		return -1, false
	}

	return s.search(lo, hi, cmp)
}

func (s Seq[T]) search(lo, hi int, cmp func(T) int) (int, bool) {
	end := hi
	for lo < hi {
		mid := int(uint(lo+hi) >> 1)
		if cmp(s.decode(mid)) < 0 {
			lo = mid + 1
		} else {
			hi = mid
		}
	}

	return lo, lo < end && cmp(s.decode(lo)) == 0
}

func (s Seq[T]) decode(i int) T {
	w := s.codec.Width()
	return s.codec.Decode(s.data[i*w : (i+1)*w])
}
