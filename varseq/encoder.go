package varseq

import (
	"github.com/arloliu/zcbuf/endian"
	"github.com/arloliu/zcbuf/errs"
	"github.com/arloliu/zcbuf/internal/pool"
	"github.com/arloliu/zcbuf/record"
)

// Encoder builds a VarSeq one element at a time.
//
// Element bytes are written into a pooled payload buffer; Finish assembles
// the final owned encoding and resets the encoder for reuse. An Encoder is
// not safe for concurrent use.
type Encoder[T any] struct {
	codec   record.Var[T]
	payload *pool.ByteBuffer
	offsets []uint32
}

// NewEncoder creates an encoder for codec records.
func NewEncoder[T any](codec record.Var[T]) *Encoder[T] {
	return &Encoder[T]{codec: codec}
}

// Write appends v. A failed write leaves the encoder unchanged.
func (e *Encoder[T]) Write(v T) error {
	if e.payload == nil {
		e.payload = pool.GetPayloadBuffer()
	}

	n := e.codec.Len(v)
	start := e.payload.Len()

	if err := checkCapacity(uint64(len(e.offsets))+1, uint64(start)+uint64(n)); err != nil {
		return err
	}

	region := e.payload.ExtendOrGrow(n)
	if err := e.codec.Encode(region, v); err != nil {
		e.payload.B = e.payload.B[:start]
		return errs.AtIndex(len(e.offsets), err)
	}

	e.offsets = append(e.offsets, uint32(start))

	return nil
}

// WriteSlice appends every element of vs and stops at the first failure.
func (e *Encoder[T]) WriteSlice(vs []T) error {
	for _, v := range vs {
		if err := e.Write(v); err != nil {
			return err
		}
	}

	return nil
}

// Len returns the number of elements written so far.
func (e *Encoder[T]) Len() int {
	return len(e.offsets)
}

// Size returns the encoded size of the elements written so far.
func (e *Encoder[T]) Size() int {
	size := countSize + len(e.offsets)*offsetSize
	if e.payload != nil {
		size += e.payload.Len()
	}

	return size
}

// Finish returns the owned VarSeq of every element written and resets the
// encoder.
func (e *Encoder[T]) Finish() VarSeq[T] {
	out := pool.NewByteBuffer(e.Size())
	out.AppendUint32(uint32(len(e.offsets))) //nolint:gosec

	for _, off := range e.offsets {
		out.AppendUint32(off)
	}

	if e.payload != nil {
		out.MustWrite(e.payload.Bytes())
	}

	e.Reset()

	s := view(e.codec, out.Bytes())
	s.owned = true

	return s
}

// Reset discards written elements and returns the payload buffer to the pool.
func (e *Encoder[T]) Reset() {
	pool.PutPayloadBuffer(e.payload)
	e.payload = nil
	e.offsets = e.offsets[:0]
}

// encodeAll sizes the output once and encodes elems directly into it.
func encodeAll[T any](codec record.Var[T], elems []T) ([]byte, error) {
	offsets, cleanup := pool.GetUint32Slice(len(elems))
	defer cleanup()

	var payloadLen uint64
	for i, v := range elems {
		if err := checkCapacity(uint64(i)+1, payloadLen); err != nil {
			return nil, err
		}

		offsets[i] = uint32(payloadLen)
		payloadLen += uint64(codec.Len(v))
	}

	if err := checkCapacity(uint64(len(elems)), payloadLen); err != nil {
		return nil, err
	}

	headerLen := countSize + len(elems)*offsetSize
	out := make([]byte, headerLen+int(payloadLen))

	engine := endian.Engine()
	engine.PutUint32(out, uint32(len(elems)))

	payload := out[headerLen:]
	for i, v := range elems {
		engine.PutUint32(out[countSize+i*offsetSize:], offsets[i])

		end := len(payload)
		if i+1 < len(elems) {
			end = int(offsets[i+1])
		}

		if err := codec.Encode(payload[offsets[i]:end], v); err != nil {
			return nil, errs.AtIndex(i, err)
		}
	}

	return out, nil
}
