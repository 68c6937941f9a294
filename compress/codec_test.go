package compress

import (
	"bytes"
	"fmt"
	"runtime"
	"sync"
	"testing"

	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/zcbuf/format"
)

func getAllCodecs() map[string]Codec {
	return map[string]Codec{
		"NoOp": NewNoOpCompressor(),
		"LZ4":  NewLZ4Compressor(),
		"S2":   NewS2Compressor(),
		"Zstd": NewZstdCompressor(),
	}
}

func roundTripCases() []struct {
	name string
	data []byte
} {
	return []struct {
		name string
		data []byte
	}{
		{"small_text", []byte("Hello, World!")},
		{"repeated_pattern", bytes.Repeat([]byte("ABCD"), 100)},
		{"binary_data", []byte{0x00, 0x01, 0x02, 0x03, 0xFF, 0xFE, 0xFD, 0xFC}},
		{"single_byte", []byte{0x42}},
		{"locale_table", bytes.Repeat([]byte("en-US\x00gregory\x00japanese\x00"), 512)},
		{"pseudo_random", func() []byte {
			data := make([]byte, 4096)
			for i := range data {
				if i%100 < 50 {
					data[i] = byte(i % 256)
				} else {
					data[i] = byte((i*7 + i*i) % 256)
				}
			}

			return data
		}()},
		{"highly_compressible", make([]byte, 1024*1024)},
	}
}

func TestCreateCodec(t *testing.T) {
	for _, ct := range []format.CompressionType{
		format.CompressionNone, format.CompressionZstd, format.CompressionS2, format.CompressionLZ4,
	} {
		codec, err := CreateCodec(ct, "body")
		require.NoError(t, err, ct.String())
		require.NotNil(t, codec)

		builtin, err := GetCodec(ct)
		require.NoError(t, err)
		require.Equal(t, codec, builtin)
	}

	_, err := CreateCodec(format.CompressionType(0x7F), "body")
	require.ErrorContains(t, err, "invalid body compression")

	_, err = GetCodec(format.CompressionType(0))
	require.Error(t, err)
}

func TestCompressionStats_Calculations(t *testing.T) {
	stats := CompressionStats{Algorithm: format.CompressionZstd, OriginalSize: 1000, CompressedSize: 250}
	require.InDelta(t, 0.25, stats.CompressionRatio(), 1e-9)
	require.InDelta(t, 75.0, stats.SpaceSavings(), 1e-9)

	empty := CompressionStats{}
	require.Zero(t, empty.CompressionRatio())
}

// TestAllCodecs_EmptyData tests that all codecs handle empty data correctly
func TestAllCodecs_EmptyData(t *testing.T) {
	for name, codec := range getAllCodecs() {
		t.Run(name, func(t *testing.T) {
			compressed, err := codec.Compress(nil)
			require.NoError(t, err)
			require.Empty(t, compressed)

			decompressed, err := codec.DecompressSized(compressed, 0)
			require.NoError(t, err)
			require.Empty(t, decompressed)
		})
	}
}

// TestAllCodecs_RoundTrip tests compression and decompression round-trip for all codecs
func TestAllCodecs_RoundTrip(t *testing.T) {
	for codecName, codec := range getAllCodecs() {
		t.Run(codecName, func(t *testing.T) {
			for _, tc := range roundTripCases() {
				t.Run(tc.name, func(t *testing.T) {
					compressed, err := codec.Compress(tc.data)
					require.NoError(t, err)
					require.NotNil(t, compressed)

					sized, err := codec.DecompressSized(compressed, len(tc.data))
					require.NoError(t, err)
					require.Equal(t, tc.data, sized)
				})
			}
		})
	}
}

func TestAllCodecs_DecompressSizedRejectsWrongSize(t *testing.T) {
	data := bytes.Repeat([]byte("bundle body "), 64)

	for codecName, codec := range getAllCodecs() {
		t.Run(codecName, func(t *testing.T) {
			compressed, err := codec.Compress(data)
			require.NoError(t, err)

			_, err = codec.DecompressSized(compressed, len(data)-1)
			require.Error(t, err, "shorter raw size must fail")

			_, err = codec.DecompressSized(compressed, len(data)+1)
			require.Error(t, err, "longer raw size must fail")
		})
	}
}

func TestNoOpCompressor_ZeroCopy(t *testing.T) {
	data := []byte("view")
	out, err := NewNoOpCompressor().DecompressSized(data, len(data))
	require.NoError(t, err)
	require.Same(t, &data[0], &out[0])
}

// TestAllCodecs_InvalidData tests that all codecs handle invalid compressed data appropriately
func TestAllCodecs_InvalidData(t *testing.T) {
	invalidInputs := []struct {
		name string
		data []byte
	}{
		{"random_bytes", []byte{0xFF, 0xFF, 0xFF, 0xFF}},
		{"text_as_compressed", []byte("this is not compressed data")},
		{"corrupted_header", []byte{0x00, 0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07}},
	}

	for codecName, codec := range getAllCodecs() {
		t.Run(codecName, func(t *testing.T) {
			if codecName == "NoOp" {
				t.Skip("NoOp codec doesn't validate data")
			}

			for _, input := range invalidInputs {
				t.Run(input.name, func(t *testing.T) {
					_, err := codec.DecompressSized(input.data, 64)
					require.Error(t, err)
				})
			}
		})
	}
}

// TestAllCodecs_ConcurrentUsage tests that all codecs are safe for concurrent use
func TestAllCodecs_ConcurrentUsage(t *testing.T) {
	const numGoroutines = 20
	testData := []byte("Concurrent compression test data with some content to compress")

	for codecName, codec := range getAllCodecs() {
		t.Run(codecName, func(t *testing.T) {
			var wg sync.WaitGroup
			errCh := make(chan error, numGoroutines)

			for range numGoroutines {
				wg.Add(1)
				go func() {
					defer wg.Done()

					compressed, err := codec.Compress(testData)
					if err != nil {
						errCh <- err
						return
					}

					out, err := codec.DecompressSized(compressed, len(testData))
					if err != nil {
						errCh <- err
						return
					}

					if !bytes.Equal(out, testData) {
						errCh <- fmt.Errorf("round trip mismatch")
					}
				}()
			}

			wg.Wait()
			close(errCh)

			for err := range errCh {
				require.NoError(t, err)
			}
		})
	}
}

func TestZstd_DecompressSizedRejectsTrailingFrames(t *testing.T) {
	codec := NewZstdCompressor()

	head := bytes.Repeat([]byte{0x5A}, 100)
	first, err := codec.Compress(head)
	require.NoError(t, err)

	tests := []struct {
		name    string
		trailer []byte
	}{
		{"small trailing frame", []byte("more")},
		{"large trailing frame", make([]byte, 64<<20)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			second, err := codec.Compress(tt.trailer)
			require.NoError(t, err)

			stored := append(append([]byte(nil), first...), second...)

			var before, after runtime.MemStats
			runtime.GC()
			runtime.ReadMemStats(&before)

			out, err := codec.DecompressSized(stored, len(head))

			runtime.ReadMemStats(&after)

			require.Error(t, err)
			require.Nil(t, out)
			require.Less(t, after.TotalAlloc-before.TotalAlloc, uint64(8<<20),
				"decoding must stop at the declared raw size")
		})
	}
}

func TestZstd_DecompressSizedRequiresContentSize(t *testing.T) {
	data := []byte("frame without a declared content size")

	encoder, err := zstd.NewWriter(nil, zstd.WithSingleSegment(false))
	require.NoError(t, err)
	defer encoder.Close()

	stored := encoder.EncodeAll(data, nil)

	var hdr zstd.Header
	require.NoError(t, hdr.Decode(stored))
	require.False(t, hdr.HasFCS)

	_, err = NewZstdCompressor().DecompressSized(stored, len(data))
	require.ErrorContains(t, err, "content size")
}

func TestZstd_CompressDeclaresContentSize(t *testing.T) {
	for _, data := range [][]byte{[]byte("x"), bytes.Repeat([]byte("ab"), 100), make([]byte, 1<<20)} {
		stored, err := NewZstdCompressor().Compress(data)
		require.NoError(t, err)

		var hdr zstd.Header
		require.NoError(t, hdr.Decode(stored))
		require.True(t, hdr.HasFCS)
		require.Equal(t, uint64(len(data)), hdr.FrameContentSize)
	}
}
