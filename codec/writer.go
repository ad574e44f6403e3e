package codec

import (
	"encoding/binary"
	"math"

	"github.com/demodllc/dcfs/crc"
	"github.com/demodllc/dcfs/errs"
	"github.com/demodllc/dcfs/internal/options"
	"github.com/demodllc/dcfs/internal/pool"
	"github.com/demodllc/dcfs/wire"
)

// Writer builds one DCFS frame: a 17-byte header followed by a
// self-describing payload. The header is reserved at construction and
// stamped in place by Finish once the final payload length and sequence
// are known.
//
// A Writer is not safe for concurrent use. It either owns a pooled buffer
// (NewWriter) that grows on demand up to wire.MaxMessage, or borrows a
// caller-supplied fixed buffer (NewWriterBuffer) that never grows.
type Writer struct {
	data     []byte
	pooled   *pool.ByteBuffer
	owned    bool
	msgType  uint16
	flags    wire.Flags
	sequence uint32
	depth    int
}

// WriterOption configures a Writer at construction time.
type WriterOption = options.Option[*Writer]

// WithInitialCapacity grows an owned Writer's pooled buffer so it can hold
// at least n bytes, header included. It never shrinks a pooled buffer that
// is already larger, and has no effect on a borrowed Writer.
func WithInitialCapacity(n int) WriterOption {
	return options.NoError(func(w *Writer) {
		if w.owned && n > wire.HeaderSize {
			w.pooled.Grow(n - wire.HeaderSize)
			w.data = w.pooled.B
		}
	})
}

// NewWriter allocates an owned Writer with a pooled, growable buffer,
// reserving the 17-byte header at position 0.
func NewWriter(msgType uint16, flags wire.Flags, opts ...WriterOption) (*Writer, error) {
	bb := pool.GetFrameBuffer()
	bb.Reset()
	bb.ExtendOrGrow(wire.HeaderSize)

	w := &Writer{
		data:    bb.B,
		pooled:  bb,
		owned:   true,
		msgType: msgType,
		flags:   flags,
	}

	if err := options.Apply(w, opts...); err != nil {
		pool.PutFrameBuffer(bb)
		return nil, err
	}

	return w, nil
}

// NewWriterBuffer creates a Writer that borrows buf as its output storage.
// buf is never grown or reallocated; appends past its capacity fail with
// errs.ErrBufferFull. It returns errs.ErrBufferFull immediately if buf
// cannot hold a header plus a CRC trailer around a zero-length payload.
func NewWriterBuffer(buf []byte, msgType uint16, flags wire.Flags) (*Writer, error) {
	if cap(buf) < wire.HeaderSize+wire.CRCSize {
		return nil, errs.ErrBufferFull
	}

	return &Writer{
		data:    buf[:wire.HeaderSize],
		owned:   false,
		msgType: msgType,
		flags:   flags,
	}, nil
}

// Destroy releases an owned Writer's pooled buffer back to the pool. It is
// a no-op for a borrowed Writer. Callers must not use w after Destroy.
func (w *Writer) Destroy() {
	if w.owned && w.pooled != nil {
		pool.PutFrameBuffer(w.pooled)
		w.pooled = nil
		w.data = nil
	}
}

// Reset clears w's payload and depth, keeping its buffer (owned or
// borrowed) for reuse, and installs a new message type and flags.
func (w *Writer) Reset(msgType uint16, flags wire.Flags) {
	w.msgType = msgType
	w.flags = flags
	w.sequence = 0
	w.depth = 0

	if w.owned {
		w.pooled.Reset()
		w.pooled.ExtendOrGrow(wire.HeaderSize)
		w.data = w.pooled.B
	} else {
		w.data = w.data[:wire.HeaderSize]
	}
}

// SetSequence sets the sequence number stamped into the header on Finish.
func (w *Writer) SetSequence(seq uint32) {
	w.sequence = seq
}

// PayloadSize returns the number of payload bytes written so far.
func (w *Writer) PayloadSize() int {
	return len(w.data) - wire.HeaderSize
}

// Finish stamps the header (big-endian, using the accumulated payload
// length and the sequence set via SetSequence) and, unless FlagNoCRC is
// set, computes and appends the CRC-32/ISO-HDLC trailer over header+
// payload. It returns the full serialized frame, a slice into w's
// buffer valid until the next Reset or Destroy.
func (w *Writer) Finish() ([]byte, error) {
	payloadLen := w.PayloadSize()

	header := wire.Header{
		Magic:      wire.Magic,
		Version:    wire.Version,
		MsgType:    w.msgType,
		Flags:      w.flags,
		PayloadLen: uint32(payloadLen),
		Sequence:   w.sequence,
	}
	header.PutBytes(w.data[:wire.HeaderSize])

	if w.flags.Has(wire.FlagNoCRC) {
		return w.data, nil
	}

	sum := crc.CRC32(w.data)
	trailer, err := w.reserve(wire.CRCSize)
	if err != nil {
		return nil, err
	}
	binary.BigEndian.PutUint32(trailer, sum)

	return w.data, nil
}

// reserve extends w's logical length by n bytes and returns that span for
// the caller to fill in. Owned writers grow their pooled buffer on demand;
// borrowed writers fail with errs.ErrBufferFull once their fixed capacity
// is exhausted. Either way, a total size above wire.MaxMessage fails with
// errs.ErrTooLarge before any growth or write happens.
func (w *Writer) reserve(n int) ([]byte, error) {
	newLen := len(w.data) + n
	if newLen > wire.MaxMessage {
		return nil, errs.ErrTooLarge
	}

	if w.owned {
		if cap(w.data)-len(w.data) < n {
			w.pooled.B = w.data
			w.pooled.Grow(n)
			w.data = w.pooled.B
		}
		w.data = w.data[:newLen]
		w.pooled.B = w.data
	} else {
		if cap(w.data) < newLen {
			return nil, errs.ErrBufferFull
		}
		w.data = w.data[:newLen]
	}

	return w.data[newLen-n : newLen], nil
}

func (w *Writer) appendTag(t wire.Type) error {
	b, err := w.reserve(1)
	if err != nil {
		return err
	}
	b[0] = byte(t)

	return nil
}

// WriteRaw appends data to the payload without any type tag, for
// low-level framing that falls outside the self-describing grammar.
func (w *Writer) WriteRaw(data []byte) error {
	b, err := w.reserve(len(data))
	if err != nil {
		return err
	}
	copy(b, data)

	return nil
}

// Reserve extends the payload by n untagged bytes and returns them for the
// caller to fill in directly.
func (w *Writer) Reserve(n int) ([]byte, error) {
	return w.reserve(n)
}

// WriteNull appends a NULL value: the tag byte alone.
func (w *Writer) WriteNull() error {
	return w.appendTag(wire.TypeNull)
}

// WriteBool appends a BOOL value.
func (w *Writer) WriteBool(v bool) error {
	if err := w.appendTag(wire.TypeBool); err != nil {
		return err
	}

	b, err := w.reserve(1)
	if err != nil {
		return err
	}
	if v {
		b[0] = 1
	} else {
		b[0] = 0
	}

	return nil
}

// WriteU8 appends a U8 value.
func (w *Writer) WriteU8(v uint8) error {
	if err := w.appendTag(wire.TypeU8); err != nil {
		return err
	}

	b, err := w.reserve(1)
	if err != nil {
		return err
	}
	b[0] = v

	return nil
}

// WriteI8 appends an I8 value.
func (w *Writer) WriteI8(v int8) error {
	if err := w.appendTag(wire.TypeI8); err != nil {
		return err
	}

	b, err := w.reserve(1)
	if err != nil {
		return err
	}
	b[0] = byte(v)

	return nil
}

// WriteU16 appends a U16 value, big-endian.
func (w *Writer) WriteU16(v uint16) error {
	if err := w.appendTag(wire.TypeU16); err != nil {
		return err
	}

	b, err := w.reserve(2)
	if err != nil {
		return err
	}
	binary.BigEndian.PutUint16(b, v)

	return nil
}

// WriteI16 appends an I16 value, big-endian.
func (w *Writer) WriteI16(v int16) error {
	if err := w.appendTag(wire.TypeI16); err != nil {
		return err
	}

	b, err := w.reserve(2)
	if err != nil {
		return err
	}
	binary.BigEndian.PutUint16(b, uint16(v))

	return nil
}

// WriteU32 appends a U32 value, big-endian.
func (w *Writer) WriteU32(v uint32) error {
	if err := w.appendTag(wire.TypeU32); err != nil {
		return err
	}

	b, err := w.reserve(4)
	if err != nil {
		return err
	}
	binary.BigEndian.PutUint32(b, v)

	return nil
}

// WriteI32 appends an I32 value, big-endian.
func (w *Writer) WriteI32(v int32) error {
	if err := w.appendTag(wire.TypeI32); err != nil {
		return err
	}

	b, err := w.reserve(4)
	if err != nil {
		return err
	}
	binary.BigEndian.PutUint32(b, uint32(v))

	return nil
}

// WriteU64 appends a U64 value, big-endian.
func (w *Writer) WriteU64(v uint64) error {
	if err := w.appendTag(wire.TypeU64); err != nil {
		return err
	}

	b, err := w.reserve(8)
	if err != nil {
		return err
	}
	binary.BigEndian.PutUint64(b, v)

	return nil
}

// WriteI64 appends an I64 value, big-endian.
func (w *Writer) WriteI64(v int64) error {
	if err := w.appendTag(wire.TypeI64); err != nil {
		return err
	}

	b, err := w.reserve(8)
	if err != nil {
		return err
	}
	binary.BigEndian.PutUint64(b, uint64(v))

	return nil
}

// WriteF32 appends an F32 value: the IEEE-754 bit pattern transported as a
// big-endian U32 body, never coerced through arithmetic.
func (w *Writer) WriteF32(v float32) error {
	if err := w.appendTag(wire.TypeF32); err != nil {
		return err
	}

	b, err := w.reserve(4)
	if err != nil {
		return err
	}
	binary.BigEndian.PutUint32(b, math.Float32bits(v))

	return nil
}

// WriteF64 appends an F64 value: the IEEE-754 bit pattern transported as a
// big-endian U64 body, never coerced through arithmetic.
func (w *Writer) WriteF64(v float64) error {
	if err := w.appendTag(wire.TypeF64); err != nil {
		return err
	}

	b, err := w.reserve(8)
	if err != nil {
		return err
	}
	binary.BigEndian.PutUint64(b, math.Float64bits(v))

	return nil
}

// WriteTimestamp appends a TIMESTAMP value: microseconds since epoch,
// carried in the same 8-byte body as U64/I64.
func (w *Writer) WriteTimestamp(microsSinceEpoch int64) error {
	if err := w.appendTag(wire.TypeTimestamp); err != nil {
		return err
	}

	b, err := w.reserve(8)
	if err != nil {
		return err
	}
	binary.BigEndian.PutUint64(b, uint64(microsSinceEpoch))

	return nil
}

// WriteDuration appends a DURATION value: nanoseconds, carried in the same
// 8-byte body as U64/I64, round-tripping through the generic writer
// exactly like TIMESTAMP.
func (w *Writer) WriteDuration(nanos int64) error {
	if err := w.appendTag(wire.TypeDuration); err != nil {
		return err
	}

	b, err := w.reserve(8)
	if err != nil {
		return err
	}
	binary.BigEndian.PutUint64(b, uint64(nanos))

	return nil
}

// WriteVarint appends a VARINT value: val encoded as unsigned LEB128.
func (w *Writer) WriteVarint(val uint64) error {
	if err := w.appendTag(wire.TypeVarint); err != nil {
		return err
	}

	n := VarintLen(val)
	b, err := w.reserve(n)
	if err != nil {
		return err
	}
	PutVarint(b, val)

	return nil
}

// WriteVarsint zigzag-encodes val and appends it as a VARINT value. The
// wire tag is VARINT, not a distinct VARSINT tag: a symmetric reader must
// read VARINT and zigzag-decode.
func (w *Writer) WriteVarsint(val int64) error {
	uval := uint64(val<<1) ^ uint64(val>>63)
	return w.WriteVarint(uval)
}

// WriteString appends a STRING value: a 4-byte big-endian length followed
// by s's UTF-8 bytes. An empty string is legal (length 0, no body). s must
// not exceed wire.MaxString bytes.
func (w *Writer) WriteString(s string) error {
	if len(s) > wire.MaxString {
		return errs.ErrTooLarge
	}

	if err := w.appendTag(wire.TypeString); err != nil {
		return err
	}

	lenB, err := w.reserve(4)
	if err != nil {
		return err
	}
	binary.BigEndian.PutUint32(lenB, uint32(len(s)))

	body, err := w.reserve(len(s))
	if err != nil {
		return err
	}
	copy(body, s)

	return nil
}

// WriteBytes appends a BYTES value: a 4-byte big-endian length followed by
// b's raw bytes. An empty slice is legal. b must not exceed wire.MaxArray
// bytes.
func (w *Writer) WriteBytes(b []byte) error {
	if len(b) > wire.MaxArray {
		return errs.ErrTooLarge
	}

	if err := w.appendTag(wire.TypeBytes); err != nil {
		return err
	}

	lenB, err := w.reserve(4)
	if err != nil {
		return err
	}
	binary.BigEndian.PutUint32(lenB, uint32(len(b)))

	body, err := w.reserve(len(b))
	if err != nil {
		return err
	}
	copy(body, b)

	return nil
}

// WriteUUID appends a UUID value: 16 raw bytes, copied verbatim.
func (w *Writer) WriteUUID(id [16]byte) error {
	if err := w.appendTag(wire.TypeUUID); err != nil {
		return err
	}

	b, err := w.reserve(16)
	if err != nil {
		return err
	}
	copy(b, id[:])

	return nil
}

// ArrayBegin emits an ARRAY header (elemType, count) and increments
// nesting depth. The declared elemType is informational only: each
// element still carries its own inline tag, and this call does not check
// that count values of elemType actually follow.
func (w *Writer) ArrayBegin(elemType wire.Type, count uint32) error {
	if err := w.enterContainer(); err != nil {
		return err
	}

	if err := w.appendTag(wire.TypeArray); err != nil {
		return err
	}
	if err := w.appendTag(elemType); err != nil {
		return err
	}

	b, err := w.reserve(4)
	if err != nil {
		return err
	}
	binary.BigEndian.PutUint32(b, count)

	return nil
}

// ArrayEnd closes the most recently opened array. It writes no wire
// bytes; it only decrements nesting depth, and fails with
// errs.ErrMalformed if depth is already zero.
func (w *Writer) ArrayEnd() error {
	return w.exitContainer()
}

// MapBegin emits a MAP header (keyType, valType, count) and increments
// nesting depth.
func (w *Writer) MapBegin(keyType, valType wire.Type, count uint32) error {
	if err := w.enterContainer(); err != nil {
		return err
	}

	if err := w.appendTag(wire.TypeMap); err != nil {
		return err
	}
	if err := w.appendTag(keyType); err != nil {
		return err
	}
	if err := w.appendTag(valType); err != nil {
		return err
	}

	b, err := w.reserve(4)
	if err != nil {
		return err
	}
	binary.BigEndian.PutUint32(b, count)

	return nil
}

// MapEnd closes the most recently opened map, mirroring ArrayEnd.
func (w *Writer) MapEnd() error {
	return w.exitContainer()
}

// StructBegin emits a STRUCT header (typeID) and increments nesting depth.
func (w *Writer) StructBegin(typeID uint16) error {
	if err := w.enterContainer(); err != nil {
		return err
	}

	if err := w.appendTag(wire.TypeStruct); err != nil {
		return err
	}

	b, err := w.reserve(2)
	if err != nil {
		return err
	}
	binary.BigEndian.PutUint16(b, typeID)

	return nil
}

// WriteField emits a struct field header (fieldID, fieldType). The caller
// writes the field's value with the matching typed appender immediately
// afterward.
func (w *Writer) WriteField(fieldID uint16, fieldType wire.Type) error {
	b, err := w.reserve(2)
	if err != nil {
		return err
	}
	binary.BigEndian.PutUint16(b, fieldID)

	return w.appendTag(fieldType)
}

// StructEnd writes the sentinel (field_id=0, type=NULL) that terminates a
// struct body, then decrements nesting depth.
func (w *Writer) StructEnd() error {
	b, err := w.reserve(2)
	if err != nil {
		return err
	}
	binary.BigEndian.PutUint16(b, 0)

	if err := w.appendTag(wire.TypeNull); err != nil {
		return err
	}

	return w.exitContainer()
}

func (w *Writer) enterContainer() error {
	if w.depth >= wire.MaxDepth {
		return errs.ErrDepthExceeded
	}
	w.depth++

	return nil
}

func (w *Writer) exitContainer() error {
	if w.depth == 0 {
		return errs.ErrMalformed
	}
	w.depth--

	return nil
}
