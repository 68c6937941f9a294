package record

import (
	"fmt"
	"strings"
	"unsafe"

	"github.com/arloliu/zcbuf/errs"
)

type asciiCodec struct {
	n int
}

// ASCII returns the codec for an n-byte NUL-padded ASCII string.
//
// A legal record is a prefix of non-NUL ASCII bytes followed only by NUL
// padding, so each string has exactly one encoding. It panics if n <= 0.
func ASCII(n int) Fixed[string] {
	if n <= 0 {
		panic(fmt.Sprintf("record: ASCII width must be positive, got %d", n))
	}

	return asciiCodec{n: n}
}

func (c asciiCodec) Width() int {
	return c.n
}

func (c asciiCodec) Validate(b []byte) error {
	return ValidateChunks(b, c.n, validateASCIIChunk)
}

func validateASCIIChunk(chunk []byte) error {
	padding := false
	for i, ch := range chunk {
		if ch >= 0x80 {
			return fmt.Errorf("%w: byte 0x%02x at offset %d", errs.ErrInvalidASCII, ch, i)
		}

		if ch == 0 {
			padding = true
		} else if padding {
			return fmt.Errorf("%w: non-NUL byte after padding at offset %d", errs.ErrInvalidASCII, i)
		}
	}

	return nil
}

// Decode returns the string without its padding. The result aliases b.
func (c asciiCodec) Decode(b []byte) string {
	end := len(b)
	for end > 0 && b[end-1] == 0 {
		end--
	}

	if end == 0 {
		return ""
	}

	return unsafe.String(&b[0], end)
}

func (c asciiCodec) Encode(dst []byte, v string) error {
	if err := checkDst(dst, c.n); err != nil {
		return err
	}

	if len(v) > c.n {
		return fmt.Errorf("%w: %q does not fit in %d bytes", errs.ErrInvalidASCII, v, c.n)
	}

	for i := 0; i < len(v); i++ {
		if v[i] == 0 || v[i] >= 0x80 {
			return fmt.Errorf("%w: byte 0x%02x at offset %d", errs.ErrInvalidASCII, v[i], i)
		}
	}

	n := copy(dst, v)
	clear(dst[n:])

	return nil
}

func (c asciiCodec) Compare(a, b string) int {
	return strings.Compare(a, b)
}
