package wire

import (
	"github.com/demodllc/dcfs/endian"
	"github.com/demodllc/dcfs/errs"
)

// wireEngine is the byte-order engine every multi-byte header field is
// read and written through; the wire format is always big-endian
// regardless of host byte order.
var wireEngine = endian.GetBigEndianEngine()

// Header is the fixed 17-byte frame header. All multi-byte fields are
// big-endian on the wire; Header itself stores them in host order.
type Header struct {
	// Magic must equal wire.Magic for a frame to be considered well-formed.
	Magic uint32
	// Version is the producer's protocol version; only the major (high) byte
	// is checked for compatibility by codec.Reader.
	Version uint16
	// MsgType is an application-chosen message tag, opaque to this package.
	MsgType uint16
	// Flags is the frame's flag bitset.
	Flags Flags
	// PayloadLen is the byte length of the payload that follows the header.
	PayloadLen uint32
	// Sequence is an application-chosen sequence number, opaque to this package.
	Sequence uint32
}

// Bytes serializes h into a new HeaderSize-byte big-endian slice.
func (h Header) Bytes() []byte {
	b := make([]byte, HeaderSize)
	h.PutBytes(b)
	return b
}

// PutBytes serializes h into b, which must be at least HeaderSize bytes long.
func (h Header) PutBytes(b []byte) {
	_ = b[HeaderSize-1] // bounds check hint
	wireEngine.PutUint32(b[0:4], h.Magic)
	wireEngine.PutUint16(b[4:6], h.Version)
	wireEngine.PutUint16(b[6:8], h.MsgType)
	b[8] = byte(h.Flags)
	wireEngine.PutUint32(b[9:13], h.PayloadLen)
	wireEngine.PutUint32(b[13:17], h.Sequence)
}

// ParseHeader parses the first HeaderSize bytes of b into a Header.
//
// ParseHeader performs no validation beyond the length check: magic,
// version, and size-consistency checks are the caller's (codec.Reader's)
// responsibility, since only it knows the total buffer length needed to
// check PayloadLen against it.
func ParseHeader(b []byte) (Header, error) {
	if len(b) < HeaderSize {
		return Header{}, errs.ErrTruncated
	}

	return Header{
		Magic:      wireEngine.Uint32(b[0:4]),
		Version:    wireEngine.Uint16(b[4:6]),
		MsgType:    wireEngine.Uint16(b[6:8]),
		Flags:      Flags(b[8]),
		PayloadLen: wireEngine.Uint32(b[9:13]),
		Sequence:   wireEngine.Uint32(b[13:17]),
	}, nil
}

// VersionCompatible reports whether v's major byte matches Version's major byte.
func VersionCompatible(v uint16) bool {
	return v&VersionMajorMask == Version&VersionMajorMask
}

// MessageLength reads payload_len and flags out of a header prefix and
// returns the total number of bytes the full message occupies: header +
// payload + trailer (0 bytes if FlagNoCRC is set, else CRCSize).
//
// This lets a stream-oriented caller read exactly HeaderSize bytes first,
// learn the total length, then read the rest in one call, without the
// wire package itself ever touching a socket or file.
func MessageLength(first17 []byte) (int, error) {
	if len(first17) < HeaderSize {
		return 0, errs.ErrTruncated
	}

	payloadLen := wireEngine.Uint32(first17[9:13])
	flags := Flags(first17[8])

	total := HeaderSize + int(payloadLen)
	if !flags.Has(FlagNoCRC) {
		total += CRCSize
	}

	return total, nil
}
