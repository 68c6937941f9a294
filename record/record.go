package record

import (
	"fmt"

	"github.com/arloliu/zcbuf/errs"
)

// Fixed is the codec contract for fixed-width records.
type Fixed[T any] interface {
	// Width returns the encoded size of one record in bytes. It is always positive.
	Width() int

	// Validate checks that b is a whole number of legal records.
	// It never panics and never retains b.
	Validate(b []byte) error

	// Decode decodes one record from exactly Width() validated bytes.
	Decode(b []byte) T

	// Encode writes v into dst, which is exactly Width() bytes long.
	Encode(dst []byte, v T) error

	// Compare orders two decoded values like cmp.Compare.
	Compare(a, b T) int
}

// Var is the codec contract for variable-width records.
type Var[T any] interface {
	// Validate checks that the whole of b is exactly one legal record.
	Validate(b []byte) error

	// Decode decodes a validated record. The result may alias b.
	Decode(b []byte) T

	// Len returns the encoded size of v in bytes.
	Len(v T) int

	// Encode writes v into dst, which is exactly Len(v) bytes long.
	Encode(dst []byte, v T) error

	// Compare orders two decoded values like cmp.Compare.
	Compare(a, b T) int
}

// ValidateChunks checks that len(b) is a multiple of width and runs check on
// every width-sized chunk. A failing chunk's error is tagged with its index.
//
// A nil check accepts every bit pattern.
func ValidateChunks(b []byte, width int, check func(chunk []byte) error) error {
	if width <= 0 {
		return fmt.Errorf("%w: record width %d", errs.ErrInvalidLength, width)
	}

	if len(b)%width != 0 {
		return fmt.Errorf("%w: length %d is not a multiple of record width %d", errs.ErrInvalidLength, len(b), width)
	}

	if check == nil {
		return nil
	}

	for i := 0; i < len(b)/width; i++ {
		start := i * width
		if err := check(b[start : start+width]); err != nil {
			return errs.AtIndex(i, err)
		}
	}

	return nil
}

// AppendFixed appends the encoding of v to dst.
func AppendFixed[T any](dst []byte, codec Fixed[T], v T) ([]byte, error) {
	start := len(dst)
	dst = append(dst, make([]byte, codec.Width())...)
	if err := codec.Encode(dst[start:], v); err != nil {
		return dst[:start], err
	}

	return dst, nil
}

// EncodeVar returns a newly allocated encoding of v.
func EncodeVar[T any](codec Var[T], v T) ([]byte, error) {
	b := make([]byte, codec.Len(v))
	if err := codec.Encode(b, v); err != nil {
		return nil, err
	}

	return b, nil
}

// DecodeVar validates b and decodes it as one record.
func DecodeVar[T any](codec Var[T], b []byte) (T, error) {
	if err := codec.Validate(b); err != nil {
		var zero T
		return zero, err
	}

	return codec.Decode(b), nil
}

func checkDst(dst []byte, want int) error {
	if len(dst) != want {
		return fmt.Errorf("%w: destination has %d bytes, record needs %d", errs.ErrInvalidLength, len(dst), want)
	}

	return nil
}
