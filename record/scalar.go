package record

import (
	"cmp"
	"fmt"
	"unicode/utf8"

	"github.com/arloliu/zcbuf/errs"
)

// Bool encodes a bool as one byte: 0x00 or 0x01. Any other byte is rejected.
var Bool Fixed[bool] = boolCodec{}

// Rune encodes a Unicode scalar value as 3 little-endian bytes.
// Surrogates and values above U+10FFFF are rejected.
var Rune Fixed[rune] = runeCodec{}

const runeWidth = 3

type boolCodec struct{}

func (boolCodec) Width() int {
	return 1
}

func (boolCodec) Validate(b []byte) error {
	return ValidateChunks(b, 1, func(chunk []byte) error {
		if chunk[0] > 1 {
			return fmt.Errorf("%w: bool byte 0x%02x", errs.ErrInvalidDiscriminant, chunk[0])
		}

		return nil
	})
}

func (boolCodec) Decode(b []byte) bool {
	return b[0] == 1
}

func (boolCodec) Encode(dst []byte, v bool) error {
	if err := checkDst(dst, 1); err != nil {
		return err
	}

	dst[0] = 0
	if v {
		dst[0] = 1
	}

	return nil
}

func (boolCodec) Compare(a, b bool) int {
	switch {
	case a == b:
		return 0
	case !a:
		return -1
	default:
		return 1
	}
}

type runeCodec struct{}

func (runeCodec) Width() int {
	return runeWidth
}

func (runeCodec) Validate(b []byte) error {
	return ValidateChunks(b, runeWidth, func(chunk []byte) error {
		r := decodeRune(chunk)
		if !utf8.ValidRune(r) {
			return fmt.Errorf("%w: U+%X", errs.ErrInvalidCodePoint, r)
		}

		return nil
	})
}

func (runeCodec) Decode(b []byte) rune {
	return decodeRune(b)
}

func (runeCodec) Encode(dst []byte, v rune) error {
	if err := checkDst(dst, runeWidth); err != nil {
		return err
	}

	if !utf8.ValidRune(v) {
		return fmt.Errorf("%w: U+%X", errs.ErrInvalidCodePoint, v)
	}

	dst[0] = byte(v)
	dst[1] = byte(v >> 8)
	dst[2] = byte(v >> 16)

	return nil
}

func (runeCodec) Compare(a, b rune) int {
	return cmp.Compare(a, b)
}

func decodeRune(b []byte) rune {
	return rune(b[0]) | rune(b[1])<<8 | rune(b[2])<<16
}
