package record

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"
	"unsafe"

	"github.com/arloliu/zcbuf/errs"
)

// String is the variable codec for UTF-8 text. Decode does not copy: the
// returned string aliases the validated buffer.
var String Var[string] = stringCodec{}

// Bytes is the variable codec for opaque bytes. Decode returns a sub-slice
// of the input with its capacity clipped to its length.
var Bytes Var[[]byte] = bytesCodec{}

type stringCodec struct{}

func (stringCodec) Validate(b []byte) error {
	if !utf8.Valid(b) {
		return fmt.Errorf("%w: %d-byte string", errs.ErrInvalidUTF8, len(b))
	}

	return nil
}

func (stringCodec) Decode(b []byte) string {
	if len(b) == 0 {
		return ""
	}

	return unsafe.String(&b[0], len(b))
}

func (stringCodec) Len(v string) int {
	return len(v)
}

func (stringCodec) Encode(dst []byte, v string) error {
	if err := checkDst(dst, len(v)); err != nil {
		return err
	}

	if !utf8.ValidString(v) {
		return errs.ErrInvalidUTF8
	}

	copy(dst, v)

	return nil
}

func (stringCodec) Compare(a, b string) int {
	return strings.Compare(a, b)
}

type bytesCodec struct{}

func (bytesCodec) Validate([]byte) error {
	return nil
}

func (bytesCodec) Decode(b []byte) []byte {
	return b[:len(b):len(b)]
}

func (bytesCodec) Len(v []byte) int {
	return len(v)
}

func (bytesCodec) Encode(dst []byte, v []byte) error {
	if err := checkDst(dst, len(v)); err != nil {
		return err
	}

	copy(dst, v)

	return nil
}

func (bytesCodec) Compare(a, b []byte) int {
	return bytes.Compare(a, b)
}
