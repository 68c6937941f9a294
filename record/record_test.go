package record

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/zcbuf/errs"
)

type era int16

func TestIntegerCodec(t *testing.T) {
	require := require.New(t)

	b, err := AppendFixed(nil, Uint32, 0x01020304)
	require.NoError(err)
	require.Equal([]byte{0x04, 0x03, 0x02, 0x01}, b)
	require.Equal(uint32(0x01020304), Uint32.Decode(b))

	b, err = AppendFixed(nil, Int16, -2)
	require.NoError(err)
	require.Equal([]byte{0xfe, 0xff}, b)
	require.Equal(int16(-2), Int16.Decode(b))

	b, err = AppendFixed(nil, Int64, -1)
	require.NoError(err)
	require.Equal(bytes.Repeat([]byte{0xff}, 8), b)
	require.Equal(int64(-1), Int64.Decode(b))

	named := IntegerCodec[era]()
	require.Equal(2, named.Width())
	b, err = AppendFixed(nil, named, era(-300))
	require.NoError(err)
	require.Equal(era(-300), named.Decode(b))

	require.Equal(-1, Int8.Compare(-5, 3))
	require.Equal(1, Uint8.Compare(200, 3))
}

func TestIntegerCodec_Validate(t *testing.T) {
	tests := []struct {
		name  string
		codec interface{ Validate([]byte) error }
		size  int
		ok    bool
	}{
		{"u8 any length", Uint8, 7, true},
		{"u16 even", Uint16, 6, true},
		{"u16 odd", Uint16, 5, false},
		{"u32 empty", Uint32, 0, true},
		{"u32 short", Uint32, 3, false},
		{"u64 exact", Uint64, 16, true},
		{"i64 ragged", Int64, 17, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.codec.Validate(make([]byte, tt.size))
			if tt.ok {
				require.NoError(t, err)
				return
			}

			require.ErrorIs(t, err, errs.ErrInvalidLength)
			require.ErrorIs(t, err, errs.ErrValidation)
		})
	}
}

func TestBool(t *testing.T) {
	require := require.New(t)

	require.NoError(Bool.Validate([]byte{0, 1, 1, 0}))
	require.True(Bool.Decode([]byte{1}))
	require.False(Bool.Decode([]byte{0}))

	err := Bool.Validate([]byte{0, 1, 2})
	require.ErrorIs(err, errs.ErrInvalidDiscriminant)

	var elemErr *errs.ElementError
	require.True(errors.As(err, &elemErr))
	require.Equal(2, elemErr.Index)

	b, err := AppendFixed(nil, Bool, true)
	require.NoError(err)
	require.Equal([]byte{1}, b)

	require.Equal(-1, Bool.Compare(false, true))
	require.Equal(0, Bool.Compare(true, true))
}

func TestRune(t *testing.T) {
	require := require.New(t)

	for _, r := range []rune{0, 'a', 'é', '中', 0x1F600, 0x10FFFF} {
		b, err := AppendFixed(nil, Rune, r)
		require.NoError(err)
		require.Len(b, 3)
		require.NoError(Rune.Validate(b))
		require.Equal(r, Rune.Decode(b))
	}

	// surrogate U+D800
	require.ErrorIs(Rune.Validate([]byte{0x00, 0xd8, 0x00}), errs.ErrInvalidCodePoint)
	// U+110000
	require.ErrorIs(Rune.Validate([]byte{0x00, 0x00, 0x11}), errs.ErrInvalidCodePoint)

	_, err := AppendFixed(nil, Rune, 0xD800)
	require.ErrorIs(err, errs.ErrInvalidCodePoint)
}

func TestASCII(t *testing.T) {
	require := require.New(t)
	codec := ASCII(4)

	b, err := AppendFixed(nil, codec, "ab")
	require.NoError(err)
	require.Equal([]byte{'a', 'b', 0, 0}, b)
	require.Equal("ab", codec.Decode(b))

	b, err = AppendFixed(nil, codec, "abcd")
	require.NoError(err)
	require.Equal("abcd", codec.Decode(b))

	b, err = AppendFixed(nil, codec, "")
	require.NoError(err)
	require.Empty(codec.Decode(b))

	_, err = AppendFixed(nil, codec, "abcde")
	require.ErrorIs(err, errs.ErrInvalidASCII)

	_, err = AppendFixed(nil, codec, "é")
	require.ErrorIs(err, errs.ErrInvalidASCII)

	tests := []struct {
		name string
		data []byte
		ok   bool
	}{
		{"padded", []byte{'x', 0, 0, 0}, true},
		{"full", []byte{'w', 'x', 'y', 'z'}, true},
		{"high bit", []byte{'x', 0x80, 0, 0}, false},
		{"byte after padding", []byte{'x', 0, 'y', 0}, false},
		{"short", []byte{'x', 0, 0}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := codec.Validate(tt.data)
			if tt.ok {
				require.NoError(err)
			} else {
				require.Error(err)
				require.True(errs.IsValidation(err))
			}
		})
	}

	require.Panics(func() { ASCII(0) })
}

func TestOption(t *testing.T) {
	require := require.New(t)
	codec := Option(Uint16)
	require.Equal(3, codec.Width())

	b, err := AppendFixed(nil, codec, Some[uint16](0x0102))
	require.NoError(err)
	require.Equal([]byte{1, 0x02, 0x01}, b)
	require.Equal(Some[uint16](0x0102), codec.Decode(b))

	b, err = AppendFixed(nil, codec, None[uint16]())
	require.NoError(err)
	require.Equal([]byte{0, 0, 0}, b)

	v, ok := codec.Decode(b).Get()
	require.False(ok)
	require.Zero(v)

	require.ErrorIs(codec.Validate([]byte{2, 0, 0}), errs.ErrInvalidDiscriminant)
	require.ErrorIs(codec.Validate([]byte{0, 1, 0}), errs.ErrInvalidDiscriminant)

	nested := Option(Bool)
	require.ErrorIs(nested.Validate([]byte{1, 7}), errs.ErrInvalidDiscriminant)

	require.Equal(-1, codec.Compare(None[uint16](), Some[uint16](0)))
	require.Equal(1, codec.Compare(Some[uint16](5), Some[uint16](4)))
	require.Equal(0, codec.Compare(None[uint16](), None[uint16]()))
}

func TestPair(t *testing.T) {
	require := require.New(t)
	codec := Pair(Uint8, ASCII(3))
	require.Equal(4, codec.Width())

	v := Tuple2[uint8, string]{First: 7, Second: "ab"}
	b, err := AppendFixed(nil, codec, v)
	require.NoError(err)
	require.Equal([]byte{7, 'a', 'b', 0}, b)
	require.NoError(codec.Validate(b))
	require.Equal(v, codec.Decode(b))

	require.Error(codec.Validate([]byte{7, 'a', 0, 'b'}))

	require.Equal(-1, codec.Compare(Tuple2[uint8, string]{1, "z"}, Tuple2[uint8, string]{2, "a"}))
	require.Equal(1, codec.Compare(Tuple2[uint8, string]{1, "b"}, Tuple2[uint8, string]{1, "a"}))
}

func TestString(t *testing.T) {
	require := require.New(t)

	b, err := EncodeVar(String, "héllo")
	require.NoError(err)
	require.Equal([]byte("héllo"), b)

	s, err := DecodeVar(String, b)
	require.NoError(err)
	require.Equal("héllo", s)

	_, err = DecodeVar(String, []byte{0xff, 0xfe})
	require.ErrorIs(err, errs.ErrInvalidUTF8)

	_, err = EncodeVar(String, "\xff")
	require.ErrorIs(err, errs.ErrInvalidUTF8)

	s, err = DecodeVar(String, nil)
	require.NoError(err)
	require.Empty(s)
}

func TestBytes(t *testing.T) {
	require := require.New(t)

	buf := []byte{1, 2, 3, 4}
	v, err := DecodeVar(Bytes, buf[:2])
	require.NoError(err)
	require.Equal([]byte{1, 2}, v)
	require.Equal(2, cap(v))

	out, err := EncodeVar(Bytes, []byte{9, 8})
	require.NoError(err)
	require.Equal([]byte{9, 8}, out)
}

func TestCheckDst(t *testing.T) {
	require.ErrorIs(t, Uint32.Encode(make([]byte, 3), 1), errs.ErrInvalidLength)
	require.ErrorIs(t, String.Encode(make([]byte, 1), "ab"), errs.ErrInvalidLength)
}

func TestValidateChunks(t *testing.T) {
	require := require.New(t)

	require.ErrorIs(ValidateChunks([]byte{1}, 0, nil), errs.ErrInvalidLength)

	calls := 0
	err := ValidateChunks(make([]byte, 6), 2, func(chunk []byte) error {
		calls++
		require.Len(chunk, 2)
		return nil
	})
	require.NoError(err)
	require.Equal(3, calls)
}

func FuzzASCIIValidate(f *testing.F) {
	f.Add([]byte{'a', 0, 0, 0})
	f.Add([]byte{'a', 0, 'b', 0})
	f.Add([]byte{0xff, 0, 0, 0, 'x', 'y', 'z', 'w'})

	codec := ASCII(4)
	f.Fuzz(func(t *testing.T, data []byte) {
		if err := codec.Validate(data); err != nil {
			return
		}

		for i := 0; i+4 <= len(data); i += 4 {
			s := codec.Decode(data[i : i+4])
			out, err := AppendFixed(nil, codec, s)
			require.NoError(t, err)
			require.Equal(t, data[i:i+4], out)
		}
	})
}

func FuzzOptionRuneValidate(f *testing.F) {
	f.Add([]byte{1, 'a', 0, 0})
	f.Add([]byte{0, 0, 0, 0})
	f.Add([]byte{1, 0, 0xd8, 0})

	codec := Option(Rune)
	f.Fuzz(func(t *testing.T, data []byte) {
		if err := codec.Validate(data); err != nil {
			require.True(t, errs.IsValidation(err))
			return
		}

		w := codec.Width()
		for i := 0; i+w <= len(data); i += w {
			out, err := AppendFixed(nil, codec, codec.Decode(data[i:i+w]))
			require.NoError(t, err)
			require.Equal(t, data[i:i+w], out)
		}
	})
}
