package capsule

import (
	"fmt"
	"sync/atomic"
)

// Anchor owns a stable byte region that values in a capsule may borrow.
//
// The bytes returned by Bytes must not change for as long as any capsule
// holds the anchor.
type Anchor interface {
	Bytes() []byte
}

// Retainer is implemented by anchors that can be shared by several capsules.
// Project calls Retain once for every derived capsule.
type Retainer interface {
	Retain()
}

// Releaser is implemented by anchors that hold a resource to give back when
// a capsule is closed.
type Releaser interface {
	Release()
}

// OwnedBuffer is an anchor over a byte slice owned by nobody else.
type OwnedBuffer struct {
	b []byte
}

var _ Anchor = OwnedBuffer{}

// NewOwnedBuffer copies b into a new OwnedBuffer.
func NewOwnedBuffer(b []byte) OwnedBuffer {
	return OwnedBuffer{b: append([]byte(nil), b...)}
}

// OwnedBufferFrom adopts b without copying. The caller gives up every other
// reference to b.
func OwnedBufferFrom(b []byte) OwnedBuffer {
	return OwnedBuffer{b: b}
}

// Bytes returns the buffer.
func (o OwnedBuffer) Bytes() []byte {
	return o.b
}

// StaticBuffer is an anchor over data that lives for the whole program,
// such as a dataset baked into the binary with go:embed.
type StaticBuffer struct {
	b []byte
}

var _ Anchor = StaticBuffer{}

// NewStaticBuffer wraps b. b must never be modified.
func NewStaticBuffer(b []byte) StaticBuffer {
	return StaticBuffer{b: b}
}

// Bytes returns the static data.
func (s StaticBuffer) Bytes() []byte {
	return s.b
}

// SharedBuffer is a reference-counted anchor.
//
// It starts with one reference. Each Retain adds one and each Release drops
// one; when the count reaches zero the release callback runs once, which
// lets a pooled or memory-mapped buffer be handed back. Using the buffer
// after its final release panics.
//
// SharedBuffer is safe for concurrent use.
type SharedBuffer struct {
	b         []byte
	refs      atomic.Int64
	onRelease func([]byte)
}

var (
	_ Anchor   = (*SharedBuffer)(nil)
	_ Retainer = (*SharedBuffer)(nil)
	_ Releaser = (*SharedBuffer)(nil)
)

// NewSharedBuffer wraps b with a reference count of one. onRelease may be nil.
func NewSharedBuffer(b []byte, onRelease func([]byte)) *SharedBuffer {
	s := &SharedBuffer{b: b, onRelease: onRelease}
	s.refs.Store(1)

	return s
}

// Bytes returns the shared bytes. It panics after the final release.
func (s *SharedBuffer) Bytes() []byte {
	if s.refs.Load() <= 0 {
		panic("capsule: SharedBuffer used after final release")
	}

	return s.b
}

// Retain adds a reference. It panics after the final release.
func (s *SharedBuffer) Retain() {
	for {
		n := s.refs.Load()
		if n <= 0 {
			panic("capsule: SharedBuffer retained after final release")
		}

		if s.refs.CompareAndSwap(n, n+1) {
			return
		}
	}
}

// Release drops a reference and runs the release callback on the last one.
func (s *SharedBuffer) Release() {
	n := s.refs.Add(-1)

	switch {
	case n == 0:
		if s.onRelease != nil {
			s.onRelease(s.b)
		}
	case n < 0:
		panic(fmt.Sprintf("capsule: SharedBuffer released %d times too often", -n))
	}
}

// RefCount returns the current number of references.
func (s *SharedBuffer) RefCount() int64 {
	return s.refs.Load()
}
