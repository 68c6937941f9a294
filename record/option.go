package record

import (
	"fmt"

	"github.com/arloliu/zcbuf/errs"
)

// Optional is a value that may be absent.
type Optional[T any] struct {
	Value T
	Valid bool
}

// Some returns a present Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Value: v, Valid: true}
}

// None returns an absent Optional.
func None[T any]() Optional[T] {
	return Optional[T]{}
}

// Get returns the value and whether it is present.
func (o Optional[T]) Get() (T, bool) {
	return o.Value, o.Valid
}

type optionCodec[T any] struct {
	inner Fixed[T]
}

// Option returns a codec for Optional[T] laid out as a one-byte discriminant
// (0 absent, 1 present) followed by the inner record.
//
// An absent value requires an all-zero payload, keeping byte equality and
// value equality aligned. Absent orders before present.
func Option[T any](inner Fixed[T]) Fixed[Optional[T]] {
	return optionCodec[T]{inner: inner}
}

func (c optionCodec[T]) Width() int {
	return 1 + c.inner.Width()
}

func (c optionCodec[T]) Validate(b []byte) error {
	return ValidateChunks(b, c.Width(), func(chunk []byte) error {
		payload := chunk[1:]

		switch chunk[0] {
		case 0:
			for i, ch := range payload {
				if ch != 0 {
					return fmt.Errorf("%w: absent option has non-zero payload at offset %d", errs.ErrInvalidDiscriminant, i+1)
				}
			}

			return nil
		case 1:
			return c.inner.Validate(payload)
		default:
			return fmt.Errorf("%w: option tag 0x%02x", errs.ErrInvalidDiscriminant, chunk[0])
		}
	})
}

func (c optionCodec[T]) Decode(b []byte) Optional[T] {
	if b[0] == 0 {
		return Optional[T]{}
	}

	return Some(c.inner.Decode(b[1:]))
}

func (c optionCodec[T]) Encode(dst []byte, v Optional[T]) error {
	if err := checkDst(dst, c.Width()); err != nil {
		return err
	}

	if !v.Valid {
		clear(dst)
		return nil
	}

	dst[0] = 1

	return c.inner.Encode(dst[1:], v.Value)
}

func (c optionCodec[T]) Compare(a, b Optional[T]) int {
	switch {
	case !a.Valid && !b.Valid:
		return 0
	case !a.Valid:
		return -1
	case !b.Valid:
		return 1
	default:
		return c.inner.Compare(a.Value, b.Value)
	}
}
