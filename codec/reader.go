package codec

import (
	"encoding/binary"
	"math"

	"github.com/demodllc/dcfs/crc"
	"github.com/demodllc/dcfs/errs"
	"github.com/demodllc/dcfs/wire"
)

// Reader parses one DCFS frame out of an immutable, caller-owned buffer.
// ReadBytes hands back a slice that borrows directly into the input buffer
// and is valid only for that buffer's lifetime. ReadString does not borrow:
// it returns a newly allocated copy of the value's bytes. The _Copy reads
// copy into caller-supplied storage.
//
// A Reader is not safe for concurrent use, but two Readers may safely
// share the same immutable input buffer.
type Reader struct {
	buf          []byte
	header       wire.Header
	headerValid  bool
	payloadStart int
	payloadEnd   int
	position     int
	depth        int
}

// NewReader attaches buf to a new Reader. It fails with errs.ErrTruncated
// if buf is shorter than wire.HeaderSize; it does not otherwise inspect or
// validate the header until Validate is called.
func NewReader(buf []byte) (*Reader, error) {
	if len(buf) < wire.HeaderSize {
		return nil, errs.ErrTruncated
	}

	return &Reader{buf: buf}, nil
}

// Validate parses the header, checks the magic number and major version,
// checks the declared payload length (and optional CRC trailer) against
// the buffer's actual size, and verifies the CRC if FlagNoCRC is clear.
// On success it sets the payload window and positions the cursor at its
// start; the Reader may not be used for reads before Validate succeeds.
func (r *Reader) Validate() error {
	h, err := wire.ParseHeader(r.buf)
	if err != nil {
		return err
	}

	if h.Magic != wire.Magic {
		return errs.ErrInvalidMagic
	}
	if !wire.VersionCompatible(h.Version) {
		return errs.ErrVersionMismatch
	}

	payloadEnd := wire.HeaderSize + int(h.PayloadLen)
	total := payloadEnd
	if !h.Flags.Has(wire.FlagNoCRC) {
		total += wire.CRCSize
	}
	if len(r.buf) < total {
		return errs.ErrTruncated
	}

	if !h.Flags.Has(wire.FlagNoCRC) {
		want := binary.BigEndian.Uint32(r.buf[payloadEnd : payloadEnd+wire.CRCSize])
		got := crc.CRC32(r.buf[:payloadEnd])
		if want != got {
			return errs.ErrCRCMismatch
		}
	}

	r.header = h
	r.headerValid = true
	r.payloadStart = wire.HeaderSize
	r.payloadEnd = payloadEnd
	r.position = wire.HeaderSize

	return nil
}

// Header returns the parsed header. It is the zero Header until Validate succeeds.
func (r *Reader) Header() wire.Header {
	return r.header
}

// MsgType returns the header's message type.
func (r *Reader) MsgType() uint16 {
	return r.header.MsgType
}

// Remaining returns the number of unread bytes left in the payload window.
func (r *Reader) Remaining() int {
	return r.payloadEnd - r.position
}

// AtEnd reports whether the cursor has reached the end of the payload window.
func (r *Reader) AtEnd() bool {
	return r.position >= r.payloadEnd
}

// PeekType returns the next byte as a type tag without consuming it, or
// wire.TypeInvalid if the cursor is already at the end of the window.
func (r *Reader) PeekType() wire.Type {
	if r.AtEnd() {
		return wire.TypeInvalid
	}

	return wire.Type(r.buf[r.position])
}

// PeekStructTypeID looks ahead at a STRUCT value's type_id without
// consuming anything, so a caller can look up the matching schema (e.g. in
// a schema.Registry) before calling Schema.Decode, which itself consumes
// the STRUCT tag and type_id via StructBegin. Returns errs.ErrTypeMismatch
// if the next value isn't a STRUCT.
func (r *Reader) PeekStructTypeID() (uint16, error) {
	if r.position+3 > r.payloadEnd {
		return 0, errs.ErrTruncated
	}
	if wire.Type(r.buf[r.position]) != wire.TypeStruct {
		return 0, errs.ErrTypeMismatch
	}

	return binary.BigEndian.Uint16(r.buf[r.position+1 : r.position+3]), nil
}

func (r *Reader) need(n int) ([]byte, error) {
	if r.position+n > r.payloadEnd {
		return nil, errs.ErrTruncated
	}
	b := r.buf[r.position : r.position+n]
	r.position += n

	return b, nil
}

func (r *Reader) expectType(want wire.Type) error {
	b, err := r.need(1)
	if err != nil {
		return err
	}

	got := wire.Type(b[0])
	if got != want {
		return errs.ErrTypeMismatch
	}

	return nil
}

// ReadNull consumes a NULL tag.
func (r *Reader) ReadNull() error {
	return r.expectType(wire.TypeNull)
}

// ReadBool reads a BOOL value.
func (r *Reader) ReadBool() (bool, error) {
	if err := r.expectType(wire.TypeBool); err != nil {
		return false, err
	}

	b, err := r.need(1)
	if err != nil {
		return false, err
	}

	return b[0] != 0, nil
}

// ReadU8 reads a U8 value.
func (r *Reader) ReadU8() (uint8, error) {
	if err := r.expectType(wire.TypeU8); err != nil {
		return 0, err
	}

	b, err := r.need(1)
	if err != nil {
		return 0, err
	}

	return b[0], nil
}

// ReadI8 reads an I8 value.
func (r *Reader) ReadI8() (int8, error) {
	if err := r.expectType(wire.TypeI8); err != nil {
		return 0, err
	}

	b, err := r.need(1)
	if err != nil {
		return 0, err
	}

	return int8(b[0]), nil
}

// ReadU16 reads a U16 value, big-endian.
func (r *Reader) ReadU16() (uint16, error) {
	if err := r.expectType(wire.TypeU16); err != nil {
		return 0, err
	}

	b, err := r.need(2)
	if err != nil {
		return 0, err
	}

	return binary.BigEndian.Uint16(b), nil
}

// ReadI16 reads an I16 value, big-endian.
func (r *Reader) ReadI16() (int16, error) {
	if err := r.expectType(wire.TypeI16); err != nil {
		return 0, err
	}

	b, err := r.need(2)
	if err != nil {
		return 0, err
	}

	return int16(binary.BigEndian.Uint16(b)), nil
}

// ReadU32 reads a U32 value, big-endian.
func (r *Reader) ReadU32() (uint32, error) {
	if err := r.expectType(wire.TypeU32); err != nil {
		return 0, err
	}

	b, err := r.need(4)
	if err != nil {
		return 0, err
	}

	return binary.BigEndian.Uint32(b), nil
}

// ReadI32 reads an I32 value, big-endian.
func (r *Reader) ReadI32() (int32, error) {
	if err := r.expectType(wire.TypeI32); err != nil {
		return 0, err
	}

	b, err := r.need(4)
	if err != nil {
		return 0, err
	}

	return int32(binary.BigEndian.Uint32(b)), nil
}

// ReadU64 reads a U64 value, big-endian.
func (r *Reader) ReadU64() (uint64, error) {
	if err := r.expectType(wire.TypeU64); err != nil {
		return 0, err
	}

	b, err := r.need(8)
	if err != nil {
		return 0, err
	}

	return binary.BigEndian.Uint64(b), nil
}

// ReadI64 reads an I64 value, big-endian.
func (r *Reader) ReadI64() (int64, error) {
	if err := r.expectType(wire.TypeI64); err != nil {
		return 0, err
	}

	b, err := r.need(8)
	if err != nil {
		return 0, err
	}

	return int64(binary.BigEndian.Uint64(b)), nil
}

// ReadF32 reads an F32 value, bit-reinterpreting its big-endian U32 body.
func (r *Reader) ReadF32() (float32, error) {
	if err := r.expectType(wire.TypeF32); err != nil {
		return 0, err
	}

	b, err := r.need(4)
	if err != nil {
		return 0, err
	}

	return math.Float32frombits(binary.BigEndian.Uint32(b)), nil
}

// ReadF64 reads an F64 value, bit-reinterpreting its big-endian U64 body.
func (r *Reader) ReadF64() (float64, error) {
	if err := r.expectType(wire.TypeF64); err != nil {
		return 0, err
	}

	b, err := r.need(8)
	if err != nil {
		return 0, err
	}

	return math.Float64frombits(binary.BigEndian.Uint64(b)), nil
}

// ReadTimestamp reads a TIMESTAMP value: microseconds since epoch.
func (r *Reader) ReadTimestamp() (int64, error) {
	if err := r.expectType(wire.TypeTimestamp); err != nil {
		return 0, err
	}

	b, err := r.need(8)
	if err != nil {
		return 0, err
	}

	return int64(binary.BigEndian.Uint64(b)), nil
}

// ReadDuration reads a DURATION value: nanoseconds.
func (r *Reader) ReadDuration() (int64, error) {
	if err := r.expectType(wire.TypeDuration); err != nil {
		return 0, err
	}

	b, err := r.need(8)
	if err != nil {
		return 0, err
	}

	return int64(binary.BigEndian.Uint64(b)), nil
}

// ReadVarint reads a VARINT value and decodes it as unsigned LEB128.
// errs.ErrOverflow if the encoding exceeds 64 bits of payload.
func (r *Reader) ReadVarint() (uint64, error) {
	if err := r.expectType(wire.TypeVarint); err != nil {
		return 0, err
	}

	val, n, err := DecodeVarint(r.buf[r.position:r.payloadEnd])
	if err != nil {
		return 0, err
	}
	r.position += n

	return val, nil
}

// ReadVarsint reads a VARINT value on the wire and zigzag-decodes it back
// to a signed value; VARSINT never has its own wire tag.
func (r *Reader) ReadVarsint() (int64, error) {
	uval, err := r.ReadVarint()
	if err != nil {
		return 0, err
	}

	return int64(uval>>1) ^ -int64(uval&1), nil
}

func (r *Reader) readLenPrefixed(want wire.Type, maxLen int) ([]byte, error) {
	if err := r.expectType(want); err != nil {
		return nil, err
	}

	lenB, err := r.need(4)
	if err != nil {
		return nil, err
	}
	n := binary.BigEndian.Uint32(lenB)
	if int(n) > maxLen {
		return nil, errs.ErrTooLarge
	}

	return r.need(int(n))
}

// ReadString returns the next STRING value as a newly allocated string.
// Unlike ReadBytes it does not borrow the Reader's input buffer, so the
// result stays valid after that buffer is reused.
func (r *Reader) ReadString() (string, error) {
	b, err := r.readLenPrefixed(wire.TypeString, wire.MaxString)
	if err != nil {
		return "", err
	}

	return string(b), nil
}

// ReadStringCopy reads the next STRING value into dst, NUL-terminating it.
// dst must be at least len(value)+1 bytes; if it is too small,
// ReadStringCopy returns errs.ErrOverflow and the required length so the
// caller can retry with a larger buffer. The cursor still advances past
// the value on overflow, matching the typed readers' all-or-nothing
// consumption of the tag and length prefix.
func (r *Reader) ReadStringCopy(dst []byte) (int, error) {
	b, err := r.readLenPrefixed(wire.TypeString, wire.MaxString)
	if err != nil {
		return 0, err
	}

	need := len(b) + 1
	if len(dst) < need {
		return need, errs.ErrOverflow
	}

	n := copy(dst, b)
	dst[n] = 0

	return n, nil
}

// ReadBytes returns a zero-copy borrow of the next BYTES value.
func (r *Reader) ReadBytes() ([]byte, error) {
	return r.readLenPrefixed(wire.TypeBytes, wire.MaxArray)
}

// ReadBytesCopy reads the next BYTES value into dst. dst must be at least
// len(value) bytes; if it is too small, ReadBytesCopy returns
// errs.ErrOverflow and the required length.
func (r *Reader) ReadBytesCopy(dst []byte) (int, error) {
	b, err := r.readLenPrefixed(wire.TypeBytes, wire.MaxArray)
	if err != nil {
		return 0, err
	}

	if len(dst) < len(b) {
		return len(b), errs.ErrOverflow
	}

	return copy(dst, b), nil
}

// ReadUUID reads a UUID value: 16 raw bytes.
func (r *Reader) ReadUUID() ([16]byte, error) {
	var out [16]byte

	if err := r.expectType(wire.TypeUUID); err != nil {
		return out, err
	}

	b, err := r.need(16)
	if err != nil {
		return out, err
	}
	copy(out[:], b)

	return out, nil
}

// ArrayBegin reads an ARRAY header, returning its declared element type
// and count, and increments nesting depth.
func (r *Reader) ArrayBegin() (elemType wire.Type, count uint32, err error) {
	if err = r.enterContainer(); err != nil {
		return 0, 0, err
	}

	if err = r.expectType(wire.TypeArray); err != nil {
		return 0, 0, err
	}

	tb, err := r.need(1)
	if err != nil {
		return 0, 0, err
	}
	elemType = wire.Type(tb[0])

	cb, err := r.need(4)
	if err != nil {
		return 0, 0, err
	}
	count = binary.BigEndian.Uint32(cb)

	return elemType, count, nil
}

// ArrayEnd decrements nesting depth, failing with errs.ErrMalformed if
// depth is already zero.
func (r *Reader) ArrayEnd() error {
	return r.exitContainer()
}

// MapBegin reads a MAP header, returning its declared key/value types and
// entry count, and increments nesting depth.
func (r *Reader) MapBegin() (keyType, valType wire.Type, count uint32, err error) {
	if err = r.enterContainer(); err != nil {
		return 0, 0, 0, err
	}

	if err = r.expectType(wire.TypeMap); err != nil {
		return 0, 0, 0, err
	}

	kb, err := r.need(1)
	if err != nil {
		return 0, 0, 0, err
	}
	keyType = wire.Type(kb[0])

	vb, err := r.need(1)
	if err != nil {
		return 0, 0, 0, err
	}
	valType = wire.Type(vb[0])

	cb, err := r.need(4)
	if err != nil {
		return 0, 0, 0, err
	}
	count = binary.BigEndian.Uint32(cb)

	return keyType, valType, count, nil
}

// MapEnd decrements nesting depth, mirroring ArrayEnd.
func (r *Reader) MapEnd() error {
	return r.exitContainer()
}

// StructBegin reads a STRUCT header, returning its type_id, and increments
// nesting depth.
func (r *Reader) StructBegin() (typeID uint16, err error) {
	if err = r.enterContainer(); err != nil {
		return 0, err
	}

	if err = r.expectType(wire.TypeStruct); err != nil {
		return 0, err
	}

	b, err := r.need(2)
	if err != nil {
		return 0, err
	}

	return binary.BigEndian.Uint16(b), nil
}

// ReadField reads the next struct field header, returning (field_id,
// field_type). When it observes the sentinel (field_id=0, type=NULL) it
// returns errs.ErrNotFound: the expected termination signal, not a fault.
// The cursor is left immediately after the sentinel's NULL tag either way.
func (r *Reader) ReadField() (fieldID uint16, fieldType wire.Type, err error) {
	idB, err := r.need(2)
	if err != nil {
		return 0, 0, err
	}
	fieldID = binary.BigEndian.Uint16(idB)

	tb, err := r.need(1)
	if err != nil {
		return 0, 0, err
	}
	fieldType = wire.Type(tb[0])

	if fieldID == 0 && fieldType == wire.TypeNull {
		return 0, 0, errs.ErrNotFound
	}

	return fieldID, fieldType, nil
}

// StructEnd decrements nesting depth, failing with errs.ErrMalformed if
// depth is already zero. Callers reach StructEnd only after ReadField has
// returned errs.ErrNotFound for the sentinel.
func (r *Reader) StructEnd() error {
	return r.exitContainer()
}

func (r *Reader) enterContainer() error {
	if r.depth >= wire.MaxDepth {
		return errs.ErrDepthExceeded
	}
	r.depth++

	return nil
}

func (r *Reader) exitContainer() error {
	if r.depth == 0 {
		return errs.ErrMalformed
	}
	r.depth--

	return nil
}
