// Package record defines the byte-level contracts every zcbuf container is built on.
//
// # Fixed Records
//
// A Fixed[T] codec describes a value type with a canonical N-byte,
// alignment-1, little-endian form. The contract is:
//
//   - Validate(b) fails iff len(b) is not a multiple of Width() or any
//     Width()-byte chunk is not a legal bit pattern
//   - Decode(chunk) is only called on validated chunks and never fails
//   - Encode(dst, v) writes exactly Width() bytes, or reports why v has no
//     encoding (e.g. a string too long for a fixed ASCII slot)
//   - two chunks are byte-equal iff their decoded values are equal
//
// Built-in fixed codecs:
//
//	record.Uint8 … record.Uint64, record.Int8 … record.Int64
//	record.Bool                    0x00 / 0x01, anything else is rejected
//	record.Rune                    3-byte Unicode scalar value
//	record.ASCII(n)                n-byte NUL-padded ASCII string
//	record.Option(inner)           1-byte discriminant + inner (zeroed when absent)
//	record.Pair(a, b)              a's bytes followed by b's bytes
//
// # Variable Records
//
// A Var[T] codec describes a dynamically sized value whose length is supplied
// by the enclosing container and is never self-encoded. Validate(b) treats the
// whole of b as exactly one record.
//
// Built-in variable codecs:
//
//	record.String                  UTF-8 text, decoded without copying
//	record.Bytes                   opaque bytes, decoded as a sub-slice
//
// Container packages add further variable codecs: seq.Codec (a fixed-record
// sequence as one record), seq.HeaderTail (fixed header + trailing fixed
// elements), and varseq.Codec (a nested variable sequence).
//
// # Immutability
//
// Decoded strings and byte slices alias the validated buffer. Buffers handed
// to a container must not be modified afterwards.
package record
