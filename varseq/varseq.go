// Package varseq provides VarSeq, an immutable view over a sequence of
// variable-width records.
//
// # Format
//
// All integers are little-endian uint32:
//
//	+-------+-----------+-----------+-----+----------------+
//	| count | offset[0] | offset[1] | ... | payload bytes  |
//	+-------+-----------+-----------+-----+----------------+
//
// Offsets are relative to the start of the payload. Element i spans
// payload[offset[i]:offset[i+1]], and the last element runs to the end of
// the payload. offset[0] is always 0, offsets never decrease, and none
// exceeds the payload length. The canonical empty sequence is the 4-byte
// header with count 0.
//
// Parse validates the structure and every element once; afterwards element
// access is O(1) and never fails.
package varseq

import (
	"fmt"
	"iter"
	"math"

	"github.com/arloliu/zcbuf/endian"
	"github.com/arloliu/zcbuf/errs"
	"github.com/arloliu/zcbuf/record"
)

const (
	countSize  = 4
	offsetSize = 4
)

var emptyEncoding = []byte{0, 0, 0, 0}

// VarSeq is an immutable sequence of variable-width records of type T.
// The zero value is an empty sequence.
type VarSeq[T any] struct {
	codec   record.Var[T]
	data    []byte
	offsets []byte
	payload []byte
	count   int
	owned   bool
}

// Parse validates b and returns a VarSeq that borrows it.
//
// b must not be modified for as long as the VarSeq, or anything decoded
// from it, is in use.
func Parse[T any](codec record.Var[T], b []byte) (VarSeq[T], error) {
	if err := Validate(codec, b); err != nil {
		return VarSeq[T]{}, err
	}

	return view(codec, b), nil
}

// Validate checks that b is a well-formed VarSeq whose elements are all
// legal codec records. Element failures carry the element index.
func Validate[T any](codec record.Var[T], b []byte) error {
	if len(b) < countSize {
		return fmt.Errorf("%w: %d bytes is shorter than the count header", errs.ErrInvalidLength, len(b))
	}

	engine := endian.Engine()
	count := uint64(engine.Uint32(b))

	// checked before anything is sized from count
	if maxCount := uint64(len(b)-countSize) / offsetSize; count > maxCount {
		return fmt.Errorf("%w: count %d needs more than %d bytes", errs.ErrInvalidOffsets, count, len(b))
	}

	headerLen := countSize + int(count)*offsetSize
	payload := b[headerLen:]

	if count == 0 {
		if len(payload) != 0 {
			return fmt.Errorf("%w: empty sequence has %d payload bytes", errs.ErrInvalidOffsets, len(payload))
		}

		return nil
	}

	offsets := b[countSize:headerLen]
	if first := engine.Uint32(offsets); first != 0 {
		return fmt.Errorf("%w: first offset is %d", errs.ErrInvalidOffsets, first)
	}

	n := int(count)
	prev := 0
	for i := 0; i < n; i++ {
		end := len(payload)
		if i+1 < n {
			end = int(engine.Uint32(offsets[(i+1)*offsetSize:]))
		}

		if end < prev || end > len(payload) {
			return errs.AtIndex(i, fmt.Errorf("%w: span [%d:%d] in %d-byte payload", errs.ErrInvalidOffsets, prev, end, len(payload)))
		}

		if err := codec.Validate(payload[prev:end]); err != nil {
			return errs.AtIndex(i, err)
		}

		prev = end
	}

	return nil
}

// Trusted wraps b without validating it. b must be an encoding that already
// passed Validate, such as the Bytes of another VarSeq.
func Trusted[T any](codec record.Var[T], b []byte) VarSeq[T] {
	return view(codec, b)
}

// view wraps an already validated encoding.
func view[T any](codec record.Var[T], b []byte) VarSeq[T] {
	count := int(endian.Engine().Uint32(b))
	headerLen := countSize + count*offsetSize

	return VarSeq[T]{
		codec:   codec,
		data:    b[:len(b):len(b)],
		offsets: b[countSize:headerLen:headerLen],
		payload: b[headerLen:len(b):len(b)],
		count:   count,
	}
}

// FromElements encodes elems into a new owned buffer.
func FromElements[T any](codec record.Var[T], elems []T) (VarSeq[T], error) {
	b, err := encodeAll(codec, elems)
	if err != nil {
		return VarSeq[T]{}, err
	}

	s := view(codec, b)
	s.owned = true

	return s, nil
}

// Empty returns an empty sequence bound to codec.
func Empty[T any](codec record.Var[T]) VarSeq[T] {
	return VarSeq[T]{codec: codec, data: emptyEncoding}
}

// Len returns the number of elements.
func (s VarSeq[T]) Len() int {
	return s.count
}

// IsEmpty reports whether the sequence has no elements.
func (s VarSeq[T]) IsEmpty() bool {
	return s.count == 0
}

// IsOwned reports whether the VarSeq holds a buffer it encoded itself.
func (s VarSeq[T]) IsOwned() bool {
	return s.owned
}

// Bytes returns the complete encoding, header included. It must not be
// modified.
func (s VarSeq[T]) Bytes() []byte {
	if len(s.data) == 0 {
		return emptyEncoding
	}

	return s.data
}

// Codec returns the element codec, or nil for the zero VarSeq.
func (s VarSeq[T]) Codec() record.Var[T] {
	return s.codec
}

// Get returns element i, or false if i is out of range.
func (s VarSeq[T]) Get(i int) (T, bool) {
	if i < 0 || i >= s.count {
		var zero T
		return zero, false
	}

	return s.codec.Decode(s.span(i)), true
}

// At returns element i. It panics if i is out of range.
func (s VarSeq[T]) At(i int) T {
	if i < 0 || i >= s.count {
		panic(fmt.Sprintf("varseq: index %d out of range [0:%d]", i, s.count))
	}

	return s.codec.Decode(s.span(i))
}

// RawAt returns the encoded bytes of element i, or false if i is out of range.
func (s VarSeq[T]) RawAt(i int) ([]byte, bool) {
	if i < 0 || i >= s.count {
		return nil, false
	}

	return s.span(i), true
}

// All returns an iterator over index/element pairs in order.
func (s VarSeq[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		for i := 0; i < s.count; i++ {
			if !yield(i, s.codec.Decode(s.span(i))) {
				return
			}
		}
	}
}

// Values returns an iterator over the elements in order.
func (s VarSeq[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for i := 0; i < s.count; i++ {
			if !yield(s.codec.Decode(s.span(i))) {
				return
			}
		}
	}
}

// ToSlice decodes every element into a new slice. Decoded values may still
// alias the sequence buffer.
func (s VarSeq[T]) ToSlice() []T {
	out := make([]T, s.count)
	for i := range out {
		out[i] = s.codec.Decode(s.span(i))
	}

	return out
}

// BinarySearch searches a sequence sorted by the codec's ordering.
//
// It returns the index of a matching element and true, or the insertion
// index and false.
func (s VarSeq[T]) BinarySearch(target T) (int, bool) {
	if s.codec == nil {
		return 0, false
	}

	return s.search(0, s.count, func(v T) int { return s.codec.Compare(v, target) })
}

// BinarySearchFunc is like BinarySearch but orders elements with cmp, which
// returns the ordering of an element relative to the target.
func (s VarSeq[T]) BinarySearchFunc(cmp func(T) int) (int, bool) {
	return s.search(0, s.count, cmp)
}

// BinarySearchInRange searches only the elements in [lo, hi). The returned
// index is absolute. An invalid range yields (-1, false).
func (s VarSeq[T]) BinarySearchInRange(target T, lo, hi int) (int, bool) {
	if lo < 0 || hi > s.count || lo > hi || s.codec == nil {
		return -1, false
	}

	return s.search(lo, hi, func(v T) int { return s.codec.Compare(v, target) })
}

// BinarySearchInRangeFunc combines BinarySearchInRange and BinarySearchFunc.
func (s VarSeq[T]) BinarySearchInRangeFunc(cmp func(T) int, lo, hi int) (int, bool) {
	if lo < 0 || hi > s.count || lo > hi {
		return -1, false
	}

	return s.search(lo, hi, cmp)
}

func (s VarSeq[T]) search(lo, hi int, cmp func(T) int) (int, bool) {
	end := hi
	for lo < hi {
		mid := int(uint(lo+hi) >> 1)
		if cmp(s.codec.Decode(s.span(mid))) < 0 {
			lo = mid + 1
		} else {
			hi = mid
		}
	}

	return lo, lo < end && cmp(s.codec.Decode(s.span(lo))) == 0
}

func (s VarSeq[T]) span(i int) []byte {
	engine := endian.Engine()

	start := int(engine.Uint32(s.offsets[i*offsetSize:]))
	end := len(s.payload)
	if i+1 < s.count {
		end = int(engine.Uint32(s.offsets[(i+1)*offsetSize:]))
	}

	return s.payload[start:end:end]
}

// checkCapacity reports whether count elements with payloadLen bytes of
// payload fit the uint32 size fields.
func checkCapacity(count, payloadLen uint64) error {
	if count > math.MaxUint32 {
		return fmt.Errorf("%w: %d elements", errs.ErrTooLarge, count)
	}

	if payloadLen > math.MaxUint32 {
		return fmt.Errorf("%w: %d payload bytes", errs.ErrTooLarge, payloadLen)
	}

	// the header must stay addressable alongside the payload
	if total := countSize + count*offsetSize + payloadLen; total > math.MaxInt {
		return fmt.Errorf("%w: %d bytes", errs.ErrTooLarge, total)
	}

	return nil
}
