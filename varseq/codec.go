package varseq

import (
	"fmt"

	"github.com/arloliu/zcbuf/errs"
	"github.com/arloliu/zcbuf/record"
)

type nestedCodec[T any] struct {
	elem record.Var[T]
}

// Codec returns a variable record codec whose value is a whole VarSeq of
// elem records, which allows sequences of sequences.
func Codec[T any](elem record.Var[T]) record.Var[VarSeq[T]] {
	return nestedCodec[T]{elem: elem}
}

func (c nestedCodec[T]) Validate(b []byte) error {
	return Validate(c.elem, b)
}

func (c nestedCodec[T]) Decode(b []byte) VarSeq[T] {
	return view(c.elem, b)
}

func (c nestedCodec[T]) Len(v VarSeq[T]) int {
	return len(v.Bytes())
}

func (c nestedCodec[T]) Encode(dst []byte, v VarSeq[T]) error {
	b := v.Bytes()
	if len(dst) != len(b) {
		return fmt.Errorf("%w: destination has %d bytes, sequence needs %d", errs.ErrInvalidLength, len(dst), len(b))
	}

	copy(dst, b)

	return nil
}

// Compare orders sequences lexicographically by element.
func (c nestedCodec[T]) Compare(a, b VarSeq[T]) int {
	n := min(a.Len(), b.Len())
	for i := 0; i < n; i++ {
		if r := c.elem.Compare(a.At(i), b.At(i)); r != 0 {
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
