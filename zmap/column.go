package zmap

import (
	"iter"

	"github.com/arloliu/zcbuf/format"
	"github.com/arloliu/zcbuf/record"
	"github.com/arloliu/zcbuf/seq"
	"github.com/arloliu/zcbuf/varseq"
)

// Vector is the read-only view shared by seq.Seq and varseq.VarSeq.
type Vector[T any] interface {
	Len() int
	Get(i int) (T, bool)
	At(i int) T
	BinarySearch(target T) (int, bool)
	BinarySearchInRange(target T, lo, hi int) (int, bool)
	All() iter.Seq2[int, T]
	Bytes() []byte
}

var (
	_ Vector[uint32] = seq.Seq[uint32]{}
	_ Vector[string] = varseq.VarSeq[string]{}
)

// Column describes how one half of a map is stored: as a seq.Seq of fixed
// records or as a varseq.VarSeq of variable records.
type Column[T any] interface {
	Kind() format.ColumnKind

	// Parse validates b and returns a vector that borrows it.
	Parse(b []byte) (Vector[T], error)

	// Encode returns a vector over a newly encoded buffer.
	Encode(values []T) (Vector[T], error)

	Compare(a, b T) int

	// view wraps bytes that were already validated.
	view(b []byte) Vector[T]
}

type fixedColumn[T any] struct {
	codec record.Fixed[T]
}

// Fixed returns a column of fixed-width records.
func Fixed[T any](codec record.Fixed[T]) Column[T] {
	return fixedColumn[T]{codec: codec}
}

func (c fixedColumn[T]) Kind() format.ColumnKind {
	return format.ColumnFixed
}

func (c fixedColumn[T]) Parse(b []byte) (Vector[T], error) {
	s, err := seq.Parse(c.codec, b)
	if err != nil {
		return nil, err
	}

	return s, nil
}

func (c fixedColumn[T]) Encode(values []T) (Vector[T], error) {
	s, err := seq.FromValues(c.codec, values)
	if err != nil {
		return nil, err
	}

	return s, nil
}

func (c fixedColumn[T]) Compare(a, b T) int {
	return c.codec.Compare(a, b)
}

func (c fixedColumn[T]) view(b []byte) Vector[T] {
	return seq.Trusted(c.codec, b)
}

type varColumn[T any] struct {
	codec record.Var[T]
}

// Var returns a column of variable-width records.
func Var[T any](codec record.Var[T]) Column[T] {
	return varColumn[T]{codec: codec}
}

func (c varColumn[T]) Kind() format.ColumnKind {
	return format.ColumnVar
}

func (c varColumn[T]) Parse(b []byte) (Vector[T], error) {
	s, err := varseq.Parse(c.codec, b)
	if err != nil {
		return nil, err
	}

	return s, nil
}

func (c varColumn[T]) Encode(values []T) (Vector[T], error) {
	s, err := varseq.FromElements(c.codec, values)
	if err != nil {
		return nil, err
	}

	return s, nil
}

func (c varColumn[T]) Compare(a, b T) int {
	return c.codec.Compare(a, b)
}

func (c varColumn[T]) view(b []byte) Vector[T] {
	return varseq.Trusted(c.codec, b)
}
