package seq

import (
	"unsafe"

	"github.com/arloliu/zcbuf/endian"
	"github.com/arloliu/zcbuf/record"
)

// AsNative reinterprets the sequence buffer as a []T without copying.
//
// It returns false when the codec is not a built-in integer codec, when the
// host is big-endian, or when the buffer is not aligned for T. Callers fall
// back to Values or ToSlice in that case. The returned slice aliases the buffer and
// must not be modified.
func AsNative[T record.Integer](s Seq[T]) ([]T, bool) {
	if len(s.data) == 0 {
		return nil, true
	}

	var zero T
	size := int(unsafe.Sizeof(zero))

	if !record.IsInteger(s.codec) || s.codec.Width() != size {
		return nil, false
	}

	if size > 1 && !endian.IsNativeLittleEndian() {
		return nil, false
	}

	ptr := unsafe.Pointer(unsafe.SliceData(s.data))
	if uintptr(ptr)%unsafe.Alignof(zero) != 0 {
		return nil, false
	}

	return unsafe.Slice((*T)(ptr), len(s.data)/size), true
}
