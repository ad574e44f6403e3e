// Package endian provides byte order utilities for binary encoding and decoding.
//
// This package extends Go's standard encoding/binary package by combining
// ByteOrder and AppendByteOrder interfaces into a unified EndianEngine interface,
// and adds explicit byte-swap/host-network conversion helpers for the wire
// package, which is always big-endian regardless of host byte order.
//
// # Basic Usage
//
//	import "github.com/demodllc/dcfs/endian"
//
//	engine := endian.GetBigEndianEngine() // the wire format is always big-endian
//	engine.PutUint64(buf, value)
//
// # Performance
//
// Using EndianEngine (which includes AppendByteOrder) provides approximately 30%
// better performance for appending operations compared to ByteOrder alone:
//
//	// Using EndianEngine (recommended)
//	buf = engine.AppendUint64(buf, value)  // ~30% faster
//
//	// Using ByteOrder only
//	tmp := make([]byte, 8)
//	engine.PutUint64(tmp, value)
//	buf = append(buf, tmp...)  // Slower, extra allocation
//
// # Thread Safety
//
// All functions and methods in this package are safe for concurrent use.
// The returned EndianEngine instances are immutable and stateless.
package endian

import (
	"encoding/binary"
	"unsafe"
)

// EndianEngine combines ByteOrder and AppendByteOrder interfaces from encoding/binary
// into a single interface for convenient byte order operations.
//
// This interface is satisfied by binary.LittleEndian and binary.BigEndian from
// the standard library, making it fully compatible with existing Go code while
// providing access to both read/write and append operations.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// CheckEndianness uses a fixed integer value to determine the host's byte order.
func CheckEndianness() binary.ByteOrder {
	// 0x0100 is 256. For a little-endian system, the LSB (0x00) is first.
	// For a big-endian system, the MSB (0x01) is first.
	var i uint16 = 0x0100

	// Create a byte slice pointing to the memory address of 'i'.
	// We only need the first byte.
	b := (*[2]byte)(unsafe.Pointer(&i))

	// Check the first byte at the lowest memory address
	if b[0] == 0x01 {
		return binary.BigEndian
	}

	return binary.LittleEndian
}

func IsNativeLittleEndian() bool {
	return CheckEndianness() == binary.LittleEndian
}

func IsNativeBigEndian() bool {
	return CheckEndianness() == binary.BigEndian
}

func CompareNativeEndian(engine EndianEngine) bool {
	return engine == CheckEndianness()
}

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}

// Bswap16 reverses the byte order of a 16-bit value.
func Bswap16(v uint16) uint16 {
	return v<<8 | v>>8
}

// Bswap32 reverses the byte order of a 32-bit value.
func Bswap32(v uint32) uint32 {
	return v<<24 | v&0x0000FF00<<8 | v&0x00FF0000>>8 | v>>24
}

// Bswap64 reverses the byte order of a 64-bit value.
func Bswap64(v uint64) uint64 {
	const (
		mask8  = 0x00FF00FF00FF00FF
		mask16 = 0x0000FFFF0000FFFF
	)

	v = (v&mask8)<<8 | (v>>8)&mask8
	v = (v&mask16)<<16 | (v>>16)&mask16

	return v<<32 | v>>32
}

// Hton16 converts a host-order uint16 to network (big-endian) order.
func Hton16(v uint16) uint16 {
	if IsNativeLittleEndian() {
		return Bswap16(v)
	}

	return v
}

// Hton32 converts a host-order uint32 to network (big-endian) order.
func Hton32(v uint32) uint32 {
	if IsNativeLittleEndian() {
		return Bswap32(v)
	}

	return v
}

// Hton64 converts a host-order uint64 to network (big-endian) order.
func Hton64(v uint64) uint64 {
	if IsNativeLittleEndian() {
		return Bswap64(v)
	}

	return v
}

// Ntoh16 converts a network (big-endian) uint16 to host order.
// It is its own inverse, identical to Hton16.
func Ntoh16(v uint16) uint16 { return Hton16(v) }

// Ntoh32 converts a network (big-endian) uint32 to host order.
// It is its own inverse, identical to Hton32.
func Ntoh32(v uint32) uint32 { return Hton32(v) }

// Ntoh64 converts a network (big-endian) uint64 to host order.
// It is its own inverse, identical to Hton64.
func Ntoh64(v uint64) uint64 { return Hton64(v) }
