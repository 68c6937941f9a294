package pool

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// ByteBuffer Tests
// =============================================================================

func TestNewByteBuffer(t *testing.T) {
	bb := NewByteBuffer(1024)

	require.NotNil(t, bb)
	assert.Equal(t, 0, bb.Len(), "new buffer should have zero length")
	assert.Equal(t, 1024, cap(bb.B), "new buffer should have specified capacity")
}

func TestByteBuffer_Reset(t *testing.T) {
	bb := NewByteBuffer(PayloadBufferDefaultSize)
	bb.MustWrite([]byte("some data"))
	originalCap := cap(bb.B)

	bb.Reset()

	assert.Equal(t, 0, bb.Len(), "Reset should clear the buffer length")
	assert.Equal(t, originalCap, cap(bb.B), "Reset should preserve capacity")
}

func TestByteBuffer_Writes(t *testing.T) {
	bb := NewByteBuffer(4)

	bb.MustWrite([]byte("ab"))
	bb.MustWrite([]byte("cd"))
	n, err := bb.Write([]byte("ef"))
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	assert.Equal(t, []byte("abcdef"), bb.Bytes())
}

func TestByteBuffer_Uint32(t *testing.T) {
	bb := NewByteBuffer(0)

	bb.AppendUint32(0x01020304)
	bb.AppendUint32(0xAABBCCDD)

	assert.Equal(t, []byte{0x04, 0x03, 0x02, 0x01, 0xDD, 0xCC, 0xBB, 0xAA}, bb.Bytes())
}

func TestByteBuffer_ExtendOrGrow(t *testing.T) {
	bb := NewByteBuffer(2)
	bb.MustWrite([]byte{1})

	region := bb.ExtendOrGrow(1)
	assert.Len(t, region, 1)
	assert.Equal(t, 2, bb.Len())
	assert.Equal(t, 2, cap(bb.B), "should extend in place when capacity allows")

	region = bb.ExtendOrGrow(10)
	copy(region, "0123456789")
	assert.Equal(t, 12, bb.Len())
	assert.Equal(t, []byte("0123456789"), bb.Bytes()[2:])
}

func TestByteBuffer_Grow(t *testing.T) {
	t.Run("sufficient capacity", func(t *testing.T) {
		bb := NewByteBuffer(PayloadBufferDefaultSize)
		bb.Grow(100)
		assert.Equal(t, PayloadBufferDefaultSize, cap(bb.B))
	})

	t.Run("small buffer", func(t *testing.T) {
		bb := NewByteBuffer(PayloadBufferDefaultSize)
		bb.MustWrite(make([]byte, PayloadBufferDefaultSize))
		bb.Grow(1)
		assert.Equal(t, 2*PayloadBufferDefaultSize, cap(bb.B))
		assert.Equal(t, PayloadBufferDefaultSize, bb.Len(), "length should not change")
	})

	t.Run("large buffer grows by a quarter", func(t *testing.T) {
		size := 8 * PayloadBufferDefaultSize
		bb := &ByteBuffer{B: make([]byte, size)}
		bb.Grow(1)
		assert.Equal(t, size+size/4, cap(bb.B))
	})

	t.Run("more than default growth", func(t *testing.T) {
		bb := NewByteBuffer(0)
		huge := PayloadBufferDefaultSize * 10
		bb.Grow(huge)
		assert.GreaterOrEqual(t, cap(bb.B), huge)
	})

	t.Run("preserves data", func(t *testing.T) {
		bb := NewByteBuffer(4)
		bb.MustWrite([]byte("keep"))
		bb.Grow(PayloadBufferDefaultSize * 2)
		assert.Equal(t, []byte("keep"), bb.Bytes())
	})
}

// =============================================================================
// Pool Tests
// =============================================================================

func TestGetPayloadBuffer(t *testing.T) {
	bb := GetPayloadBuffer()
	defer PutPayloadBuffer(bb)

	require.NotNil(t, bb)
	assert.Equal(t, 0, bb.Len(), "pooled buffer should be empty")
	assert.GreaterOrEqual(t, cap(bb.B), PayloadBufferDefaultSize)
}

func TestGetBundleBuffer(t *testing.T) {
	bb := GetBundleBuffer()
	defer PutBundleBuffer(bb)

	require.NotNil(t, bb)
	assert.Equal(t, 0, bb.Len())
	assert.GreaterOrEqual(t, cap(bb.B), BundleBufferDefaultSize)
}

func TestPut_NilBuffer(t *testing.T) {
	assert.NotPanics(t, func() {
		PutPayloadBuffer(nil)
		PutBundleBuffer(nil)
	})
}

func TestPool_ResetsOnPut(t *testing.T) {
	bb := GetPayloadBuffer()
	bb.MustWrite([]byte("stale"))

	PutPayloadBuffer(bb)

	assert.Equal(t, 0, bb.Len(), "Put should reset the buffer")
	assert.Equal(t, 0, GetPayloadBuffer().Len())
}

func TestByteBufferPool_MaxThreshold(t *testing.T) {
	p := NewByteBufferPool(16, 64)

	big := p.Get()
	big.MustWrite(make([]byte, 128))
	big.MustWrite([]byte("marker"))
	p.Put(big)

	// an oversized buffer is dropped without being reset
	assert.Equal(t, 134, big.Len())

	small := p.Get()
	small.MustWrite([]byte("ok"))
	p.Put(small)
	assert.Equal(t, 0, small.Len())
}

func TestPool_ConcurrentAccess(t *testing.T) {
	const goroutines = 32
	const iterations = 500

	var wg sync.WaitGroup
	wg.Add(goroutines)

	for range goroutines {
		go func() {
			defer wg.Done()
			for range iterations {
				bb := GetPayloadBuffer()
				bb.MustWrite([]byte("data"))
				assert.Equal(t, 4, bb.Len())
				PutPayloadBuffer(bb)
			}
		}()
	}

	wg.Wait()
}

func BenchmarkByteBuffer_AppendUint32(b *testing.B) {
	bb := NewByteBuffer(PayloadBufferDefaultSize)

	for b.Loop() {
		bb.Reset()
		for i := range 256 {
			bb.AppendUint32(uint32(i))
		}
	}
}

func BenchmarkPool_GetWritePut(b *testing.B) {
	data := make([]byte, 512)

	for b.Loop() {
		bb := GetPayloadBuffer()
		bb.MustWrite(data)
		PutPayloadBuffer(bb)
	}
}
