package record

import (
	"cmp"
	"unsafe"

	"github.com/arloliu/zcbuf/endian"
)

// Integer is the set of integer types with a fixed record codec.
type Integer interface {
	~int8 | ~int16 | ~int32 | ~int64 | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Built-in integer codecs. Every bit pattern is a legal record.
var (
	Uint8  Fixed[uint8]  = IntegerCodec[uint8]()
	Uint16 Fixed[uint16] = IntegerCodec[uint16]()
	Uint32 Fixed[uint32] = IntegerCodec[uint32]()
	Uint64 Fixed[uint64] = IntegerCodec[uint64]()
	Int8   Fixed[int8]   = IntegerCodec[int8]()
	Int16  Fixed[int16]  = IntegerCodec[int16]()
	Int32  Fixed[int32]  = IntegerCodec[int32]()
	Int64  Fixed[int64]  = IntegerCodec[int64]()
)

type integerCodec[T Integer] struct {
	width int
}

// IntegerCodec returns the little-endian codec for any integer type,
// including named types such as `type Era int16`.
func IntegerCodec[T Integer]() Fixed[T] {
	var zero T
	return integerCodec[T]{width: int(unsafe.Sizeof(zero))}
}

// IsInteger reports whether codec is one of the little-endian integer codecs
// returned by IntegerCodec.
func IsInteger[T any](codec Fixed[T]) bool {
	_, ok := codec.(interface{ littleEndianInteger() })
	return ok
}

func (integerCodec[T]) littleEndianInteger() {}

func (c integerCodec[T]) Width() int {
	return c.width
}

func (c integerCodec[T]) Validate(b []byte) error {
	return ValidateChunks(b, c.width, nil)
}

func (c integerCodec[T]) Decode(b []byte) T {
	engine := endian.Engine()

	switch c.width {
	case 1:
		return T(b[0])
	case 2:
		return T(engine.Uint16(b))
	case 4:
		return T(engine.Uint32(b))
	default:
		return T(engine.Uint64(b))
	}
}

func (c integerCodec[T]) Encode(dst []byte, v T) error {
	if err := checkDst(dst, c.width); err != nil {
		return err
	}

	engine := endian.Engine()

	switch c.width {
	case 1:
		dst[0] = byte(v)
	case 2:
		engine.PutUint16(dst, uint16(v))
	case 4:
		engine.PutUint32(dst, uint32(v))
	default:
		engine.PutUint64(dst, uint64(v))
	}

	return nil
}

func (c integerCodec[T]) Compare(a, b T) int {
	return cmp.Compare(a, b)
}
