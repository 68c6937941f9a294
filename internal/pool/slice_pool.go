package pool

import "sync"

var (
	uint32SlicePool = sync.Pool{
		New: func() any { return &[]uint32{} },
	}
	uint64SlicePool = sync.Pool{
		New: func() any { return &[]uint64{} },
	}
)

// GetUint32Slice returns a pooled slice of length size, typically an offset
// table. The caller must call the cleanup function once the slice is no
// longer used.
//
// Example:
//
//	offsets, cleanup := pool.GetUint32Slice(len(elems))
//	defer cleanup()
func GetUint32Slice(size int) ([]uint32, func()) {
	ptr, _ := uint32SlicePool.Get().(*[]uint32)
	*ptr = resize(*ptr, size)

	return *ptr, func() { uint32SlicePool.Put(ptr) }
}

// GetUint64Slice returns a pooled slice of length size, typically the key IDs of a bundle.
// The caller must call the cleanup function once the slice is no longer used.
func GetUint64Slice(size int) ([]uint64, func()) {
	ptr, _ := uint64SlicePool.Get().(*[]uint64)
	*ptr = resize(*ptr, size)

	return *ptr, func() { uint64SlicePool.Put(ptr) }
}

func resize[T any](s []T, size int) []T {
	if cap(s) < size {
		return make([]T, size)
	}

	return s[:size]
}
