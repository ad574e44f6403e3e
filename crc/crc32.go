// Package crc provides the CRC-32/ISO-HDLC checksum used as the DCFS
// frame trailer.
//
// The standard library's hash/crc32 already implements the reflected,
// polynomial-0xEDB88320 variant this format needs (crc32.IEEETable), so
// this package is a thin, allocation-free wrapper rather than a
// hand-rolled table - there is no third-party CRC-32 library in the
// example corpus and the standard library is the canonical implementation
// of this exact polynomial.
package crc

import "hash/crc32"

// Init is the accumulator value CRC32/CRC32Update start from. hash/crc32's
// Update applies the initial and final complement itself (crc32.Update(0,
// tab, p) == crc32.ChecksumIEEE(p)), so the public running value is always
// already in "final" form and Init is plain 0, not 0xFFFFFFFF.
const Init uint32 = 0

// CRC32 returns the CRC-32/ISO-HDLC checksum of data.
//
// CRC32([]byte("123456789")) == 0xCBF43926.
func CRC32(data []byte) uint32 {
	return CRC32Update(Init, data)
}

// CRC32Update continues an in-progress CRC-32/ISO-HDLC accumulation. crc is
// the previous call's return value (or Init for the first chunk); because
// hash/crc32's Update un-complements crc on entry and re-complements the
// result on exit, passing the running value straight through chains
// correctly with no extra XOR at the call site.
func CRC32Update(crc uint32, data []byte) uint32 {
	return crc32.Update(crc, crc32.IEEETable, data)
}
