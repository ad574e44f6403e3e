// Package wire defines the DCFS frame layout: the fixed header, the flag
// bitset, the self-describing value type tags, and the size limits that
// bound every encoded message.
//
// Nothing in this package allocates or performs I/O; it is the shared
// vocabulary that codec.Writer and codec.Reader stamp onto and parse off
// of a byte slice.
package wire

const (
	// Magic is the 4-byte frame magic, "DCFS" read as a big-endian uint32.
	Magic uint32 = 0x44434653
	// Version is the 2-byte protocol version: high byte major, low byte minor.
	Version uint16 = 0x0520
	// VersionMajorMask isolates the major byte of Version for compatibility checks.
	VersionMajorMask uint16 = 0xFF00

	// HeaderSize is the fixed size, in bytes, of the frame header.
	HeaderSize = 17

	// MaxMessage is the largest total message size (header + payload + CRC) allowed.
	MaxMessage = 16 * 1024 * 1024
	// MaxString is the largest STRING payload length allowed.
	MaxString = 64 * 1024
	// MaxArray is the largest ARRAY/MAP entry count or BYTES length allowed.
	MaxArray = 1024 * 1024
	// MaxDepth is the deepest combined ARRAY/MAP/STRUCT nesting allowed.
	MaxDepth = 32
	// InitialCap is the protocol's nominal starting capacity of an owned
	// writer buffer. codec.Writer does not read it: its owned buffer comes
	// from a pool and starts at pool.FrameBufferDefaultSize (16KiB).
	InitialCap = 256

	// CRCSize is the size, in bytes, of the trailing CRC32 checksum.
	CRCSize = 4
)
