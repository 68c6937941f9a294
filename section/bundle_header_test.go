package section

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/zcbuf/endian"
	"github.com/arloliu/zcbuf/errs"
	"github.com/arloliu/zcbuf/format"
)

func TestNewBundleHeader(t *testing.T) {
	header := NewBundleHeader()

	require.NotNil(t, header)
	require.Equal(t, uint16(MagicBundleV1Opt), header.Flag.GetMagicNumber())
	require.True(t, header.Flag.IsLittleEndian())
	require.False(t, header.Flag.HasKeyNames())
	require.Equal(t, format.CompressionNone, header.Flag.GetCompression())
	require.NoError(t, header.Flag.Validate())
}

func sampleHeader() *BundleHeader {
	h := NewBundleHeader()
	h.Flag.SetCompression(format.CompressionZstd)
	h.Flag.SetHasKeyNames(true)
	h.KeyCount = 3
	h.StoredSize = 80
	h.RawSize = 120
	h.NamesOffset = 90
	h.Checksum = 0x0123456789abcdef

	return h
}

func TestBundleHeader_Parse(t *testing.T) {
	t.Run("Valid header", func(t *testing.T) {
		original := sampleHeader()

		parsed := &BundleHeader{}
		err := parsed.Parse(original.Bytes())

		require.NoError(t, err)
		require.Equal(t, *original, *parsed)
	})

	t.Run("Invalid size", func(t *testing.T) {
		header := &BundleHeader{}
		err := header.Parse([]byte{1, 2, 3})

		require.ErrorIs(t, err, errs.ErrInvalidHeaderSize)
	})

	mutate := func(f func(b []byte)) []byte {
		b := sampleHeader().Bytes()
		f(b)

		return b
	}

	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"Invalid magic number", mutate(func(b []byte) { b[0], b[1] = 0, 0 }), errs.ErrInvalidMagicNumber},
		{"Big endian", mutate(func(b []byte) { b[0] |= EndiannessMask }), errs.ErrInvalidHeaderFlags},
		{"Reserved option bits", mutate(func(b []byte) { b[0] |= 0x04 }), errs.ErrInvalidHeaderFlags},
		{"Unknown compression", mutate(func(b []byte) { b[2] = 0x09 }), errs.ErrInvalidCompression},
		{"Reserved byte", mutate(func(b []byte) { b[3] = 1 }), errs.ErrInvalidHeaderFlags},
		{"Reserved trailer", mutate(func(b []byte) { b[31] = 1 }), errs.ErrInvalidHeaderFlags},
		{"Names offset beyond body", mutate(func(b []byte) {
			endian.Engine().PutUint32(b[namesOffsetOffset:], 121)
		}), errs.ErrInvalidBodySize},
		{"Names flag without names", mutate(func(b []byte) {
			endian.Engine().PutUint32(b[namesOffsetOffset:], 120)
		}), errs.ErrInvalidHeaderFlags},
		{"Names without flag", mutate(func(b []byte) { b[0] &^= KeyNamesMask }), errs.ErrInvalidHeaderFlags},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseBundleHeader(tt.data)
			require.ErrorIs(t, err, tt.want)
			require.True(t, errs.IsValidation(err))
		})
	}
}

func TestBundleHeader_Bytes(t *testing.T) {
	data := sampleHeader().Bytes()
	engine := endian.Engine()

	require.Len(t, data, HeaderSize)
	require.Equal(t, uint16(MagicBundleV1Opt|KeyNamesMask), engine.Uint16(data[0:]))
	require.Equal(t, byte(format.CompressionZstd), data[2])
	require.Equal(t, uint32(3), engine.Uint32(data[4:]))
	require.Equal(t, uint32(80), engine.Uint32(data[8:]))
	require.Equal(t, uint32(120), engine.Uint32(data[12:]))
	require.Equal(t, uint32(90), engine.Uint32(data[16:]))
	require.Equal(t, uint64(0x0123456789abcdef), engine.Uint64(data[20:]))
	require.Equal(t, make([]byte, 4), data[28:])
}

func TestParseBundleHeader_TrailingBody(t *testing.T) {
	h := NewBundleHeader()
	data := append(h.Bytes(), 0xAA, 0xBB)

	parsed, err := ParseBundleHeader(data)
	require.NoError(t, err)
	require.Equal(t, *h, parsed)

	_, err = ParseBundleHeader(data[:HeaderSize-1])
	require.ErrorIs(t, err, errs.ErrInvalidHeaderSize)
}

func TestBundleFlag_KeyNames(t *testing.T) {
	flag := NewBundleFlag()

	flag.SetHasKeyNames(true)
	require.True(t, flag.HasKeyNames())
	require.Equal(t, uint16(MagicBundleV1Opt), flag.GetMagicNumber())

	flag.SetHasKeyNames(false)
	require.False(t, flag.HasKeyNames())
	require.NoError(t, flag.Validate())
}
