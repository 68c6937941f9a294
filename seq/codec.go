package seq

import (
	"fmt"

	"github.com/arloliu/zcbuf/errs"
	"github.com/arloliu/zcbuf/record"
)

type seqCodec[T any] struct {
	elem record.Fixed[T]
}

// Codec returns a variable record codec whose value is a whole Seq of elem
// records. The record length must be a multiple of elem's width.
func Codec[T any](elem record.Fixed[T]) record.Var[Seq[T]] {
	return seqCodec[T]{elem: elem}
}

func (c seqCodec[T]) Validate(b []byte) error {
	return c.elem.Validate(b)
}

func (c seqCodec[T]) Decode(b []byte) Seq[T] {
	return Seq[T]{codec: c.elem, data: b[:len(b):len(b)]}
}

func (c seqCodec[T]) Len(v Seq[T]) int {
	return len(v.data)
}

func (c seqCodec[T]) Encode(dst []byte, v Seq[T]) error {
	if len(dst) != len(v.data) {
		return fmt.Errorf("%w: destination has %d bytes, sequence needs %d", errs.ErrInvalidLength, len(dst), len(v.data))
	}

	if err := c.elem.Validate(v.data); err != nil {
		return fmt.Errorf("sequence does not match element codec: %w", err)
	}

	copy(dst, v.data)

	return nil
}

// Compare orders sequences lexicographically by element.
func (c seqCodec[T]) Compare(a, b Seq[T]) int {
	return compareSeq(c.elem, a, b)
}

// Tailed is a fixed header followed by a run of fixed tail elements.
type Tailed[H, E any] struct {
	Header H
	Tail   Seq[E]
}

type headerTailCodec[H, E any] struct {
	header record.Fixed[H]
	elem   record.Fixed[E]
}

// HeaderTail returns a variable record codec for a fixed header followed by
// zero or more elem records. The tail length is (len - header width) / elem
// width and must divide evenly.
func HeaderTail[H, E any](header record.Fixed[H], elem record.Fixed[E]) record.Var[Tailed[H, E]] {
	return headerTailCodec[H, E]{header: header, elem: elem}
}

func (c headerTailCodec[H, E]) Validate(b []byte) error {
	hw := c.header.Width()
	if len(b) < hw {
		return fmt.Errorf("%w: %d bytes is shorter than header width %d", errs.ErrInvalidLength, len(b), hw)
	}

	if err := c.header.Validate(b[:hw]); err != nil {
		return fmt.Errorf("header: %w", err)
	}

	return c.elem.Validate(b[hw:])
}

func (c headerTailCodec[H, E]) Decode(b []byte) Tailed[H, E] {
	hw := c.header.Width()

	return Tailed[H, E]{
		Header: c.header.Decode(b[:hw]),
		Tail:   Seq[E]{codec: c.elem, data: b[hw:len(b):len(b)]},
	}
}

func (c headerTailCodec[H, E]) Len(v Tailed[H, E]) int {
	return c.header.Width() + len(v.Tail.data)
}

func (c headerTailCodec[H, E]) Encode(dst []byte, v Tailed[H, E]) error {
	if len(dst) != c.Len(v) {
		return fmt.Errorf("%w: destination has %d bytes, record needs %d", errs.ErrInvalidLength, len(dst), c.Len(v))
	}

	if err := c.elem.Validate(v.Tail.data); err != nil {
		return fmt.Errorf("tail does not match element codec: %w", err)
	}

	hw := c.header.Width()
	if err := c.header.Encode(dst[:hw], v.Header); err != nil {
		return err
	}

	copy(dst[hw:], v.Tail.data)

	return nil
}

func (c headerTailCodec[H, E]) Compare(a, b Tailed[H, E]) int {
	if r := c.header.Compare(a.Header, b.Header); r != 0 {
		return r
	}

	return compareSeq(c.elem, a.Tail, b.Tail)
}

func compareSeq[T any](codec record.Fixed[T], a, b Seq[T]) int {
	n := min(a.Len(), b.Len())
	for i := 0; i < n; i++ {
		if r := codec.Compare(a.decode(i), b.decode(i)); r != 0 {
			return r
		}
	}

	switch {
	case a.Len() < b.Len():
		return -1
	case a.Len() > b.Len():
		return 1
	default:
		return 0
	}
}
