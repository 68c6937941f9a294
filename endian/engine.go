// Package endian provides the byte order used by every zcbuf record encoding.
//
// All fixed and variable records, offset tables, and bundle headers are
// little-endian regardless of the host. The package combines encoding/binary's
// ByteOrder and AppendByteOrder into a single Engine interface and reports the
// host's native order so that containers can take a zero-copy fast path when
// the stored order matches.
//
// # Basic Usage
//
//	engine := endian.Engine()
//	buf = engine.AppendUint32(buf, count)
//	count = engine.Uint32(buf[0:4])
//
// # Thread Safety
//
// All functions in this package are safe for concurrent use. The returned
// engine is immutable and stateless.
package endian

import (
	"encoding/binary"
	"unsafe"
)

// EndianEngine combines ByteOrder and AppendByteOrder from encoding/binary.
//
// binary.LittleEndian and binary.BigEndian both satisfy it.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// Engine returns the little-endian engine that defines the zcbuf wire order.
func Engine() EndianEngine {
	return binary.LittleEndian
}

// CheckEndianness uses a fixed integer value to determine the host's byte order.
func CheckEndianness() binary.ByteOrder {
	// 0x0100 is 256: a little-endian host stores the low byte (0x00) first.
	var i uint16 = 0x0100

	b := (*[2]byte)(unsafe.Pointer(&i))
	if b[0] == 0x01 {
		return binary.BigEndian
	}

	return binary.LittleEndian
}

var nativeLittleEndian = CheckEndianness() == binary.LittleEndian

// IsNativeLittleEndian reports whether the host stores integers little-endian,
// i.e. whether wire-order integers can be read in place.
func IsNativeLittleEndian() bool {
	return nativeLittleEndian
}
