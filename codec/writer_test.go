package codec

import (
	"encoding/binary"
	"errors"
	"testing"

	"github.com/demodllc/dcfs/errs"
	"github.com/demodllc/dcfs/wire"
	"github.com/stretchr/testify/require"
)

func TestWriter_InitReservesHeader(t *testing.T) {
	w, err := NewWriter(0x0001, 0)
	require.NoError(t, err)
	defer w.Destroy()

	require.Equal(t, 0, w.PayloadSize())
}

func TestWriter_Finish_StampsHeaderAndCRC(t *testing.T) {
	w, err := NewWriter(0x0042, 0)
	require.NoError(t, err)
	defer w.Destroy()

	require.NoError(t, w.WriteU32(42))
	w.SetSequence(7)

	out, err := w.Finish()
	require.NoError(t, err)

	h, err := wire.ParseHeader(out)
	require.NoError(t, err)
	require.Equal(t, wire.Magic, h.Magic)
	require.Equal(t, wire.Version, h.Version)
	require.Equal(t, uint16(0x0042), h.MsgType)
	require.Equal(t, uint32(7), h.Sequence)
	require.Equal(t, uint32(5), h.PayloadLen) // tag + 4-byte body

	require.Equal(t, wire.HeaderSize+5+wire.CRCSize, len(out))
}

func TestWriter_Finish_NoCRC(t *testing.T) {
	w, err := NewWriter(0x0001, wire.FlagNoCRC)
	require.NoError(t, err)
	defer w.Destroy()

	require.NoError(t, w.WriteBool(true))

	out, err := w.Finish()
	require.NoError(t, err)
	require.Equal(t, wire.HeaderSize+2, len(out))
}

func TestWriter_PrimitiveRoundTrip(t *testing.T) {
	w, err := NewWriter(0x0001, 0)
	require.NoError(t, err)
	defer w.Destroy()

	require.NoError(t, w.WriteBool(true))
	require.NoError(t, w.WriteU8(0x42))
	require.NoError(t, w.WriteI8(-42))
	require.NoError(t, w.WriteU16(0x1234))
	require.NoError(t, w.WriteI16(-1234))
	require.NoError(t, w.WriteU32(0xDEADBEEF))
	require.NoError(t, w.WriteI32(-123456789))
	require.NoError(t, w.WriteU64(0x123456789ABCDEF0))
	require.NoError(t, w.WriteI64(-9223372036854775807))
	require.NoError(t, w.WriteF32(3.14159))
	require.NoError(t, w.WriteF64(2.718281828459045))

	out, err := w.Finish()
	require.NoError(t, err)

	r, err := NewReader(out)
	require.NoError(t, err)
	require.NoError(t, r.Validate())

	b, err := r.ReadBool()
	require.NoError(t, err)
	require.True(t, b)

	u8, err := r.ReadU8()
	require.NoError(t, err)
	require.Equal(t, uint8(0x42), u8)

	i8, err := r.ReadI8()
	require.NoError(t, err)
	require.Equal(t, int8(-42), i8)

	u16, err := r.ReadU16()
	require.NoError(t, err)
	require.Equal(t, uint16(0x1234), u16)

	i16, err := r.ReadI16()
	require.NoError(t, err)
	require.Equal(t, int16(-1234), i16)

	u32, err := r.ReadU32()
	require.NoError(t, err)
	require.Equal(t, uint32(0xDEADBEEF), u32)

	i32, err := r.ReadI32()
	require.NoError(t, err)
	require.Equal(t, int32(-123456789), i32)

	u64, err := r.ReadU64()
	require.NoError(t, err)
	require.Equal(t, uint64(0x123456789ABCDEF0), u64)

	i64, err := r.ReadI64()
	require.NoError(t, err)
	require.Equal(t, int64(-9223372036854775807), i64)

	f32, err := r.ReadF32()
	require.NoError(t, err)
	require.InDelta(t, float32(3.14159), f32, 1e-6)

	f64, err := r.ReadF64()
	require.NoError(t, err)
	require.InDelta(t, 2.718281828459045, f64, 1e-12)

	require.True(t, r.AtEnd())
}

func TestWriter_VarintSizes(t *testing.T) {
	cases := []struct {
		val  uint64
		want []byte
	}{
		{127, []byte{byte(wire.TypeVarint), 0x7F}},
		{300, []byte{byte(wire.TypeVarint), 0xAC, 0x02}},
		{0xFFFFFFFF, []byte{byte(wire.TypeVarint), 0xFF, 0xFF, 0xFF, 0xFF, 0x0F}},
	}

	for _, c := range cases {
		w, err := NewWriter(0, wire.FlagNoCRC)
		require.NoError(t, err)

		require.NoError(t, w.WriteVarint(c.val))
		out, err := w.Finish()
		require.NoError(t, err)

		require.Equal(t, c.want, out[wire.HeaderSize:])
		w.Destroy()
	}
}

func TestWriter_StringAndBytes(t *testing.T) {
	w, err := NewWriter(0, 0)
	require.NoError(t, err)
	defer w.Destroy()

	require.NoError(t, w.WriteString("hello"))
	require.NoError(t, w.WriteString(""))
	require.NoError(t, w.WriteBytes([]byte{1, 2, 3}))

	out, err := w.Finish()
	require.NoError(t, err)

	r, err := NewReader(out)
	require.NoError(t, err)
	require.NoError(t, r.Validate())

	s, err := r.ReadString()
	require.NoError(t, err)
	require.Equal(t, "hello", s)

	empty, err := r.ReadString()
	require.NoError(t, err)
	require.Equal(t, "", empty)

	b, err := r.ReadBytes()
	require.NoError(t, err)
	require.Equal(t, []byte{1, 2, 3}, b)
}

func TestWriter_StructForwardCompatibility(t *testing.T) {
	w, err := NewWriter(0, 0)
	require.NoError(t, err)
	defer w.Destroy()

	require.NoError(t, w.StructBegin(0x0200))
	require.NoError(t, w.WriteField(1, wire.TypeU32))
	require.NoError(t, w.WriteU32(12345))
	require.NoError(t, w.WriteField(2, wire.TypeBool))
	require.NoError(t, w.WriteBool(true))
	require.NoError(t, w.WriteField(3, wire.TypeF32))
	require.NoError(t, w.WriteF32(98.5))
	require.NoError(t, w.WriteField(4, wire.TypeTimestamp))
	require.NoError(t, w.WriteTimestamp(1704153600000000))
	require.NoError(t, w.StructEnd())

	out, err := w.Finish()
	require.NoError(t, err)

	r, err := NewReader(out)
	require.NoError(t, err)
	require.NoError(t, r.Validate())

	typeID, err := r.StructBegin()
	require.NoError(t, err)
	require.Equal(t, uint16(0x0200), typeID)

	var sawU32, sawBool, sawTimestamp bool
	for {
		fieldID, fieldType, err := r.ReadField()
		if errors.Is(err, errs.ErrNotFound) {
			break
		}
		require.NoError(t, err)

		switch fieldID {
		case 1:
			require.Equal(t, wire.TypeU32, fieldType)
			v, err := r.ReadU32()
			require.NoError(t, err)
			require.Equal(t, uint32(12345), v)
			sawU32 = true
		case 2:
			require.Equal(t, wire.TypeBool, fieldType)
			v, err := r.ReadBool()
			require.NoError(t, err)
			require.True(t, v)
			sawBool = true
		case 4:
			require.Equal(t, wire.TypeTimestamp, fieldType)
			v, err := r.ReadTimestamp()
			require.NoError(t, err)
			require.Equal(t, int64(1704153600000000), v)
			sawTimestamp = true
		default:
			require.NoError(t, r.Skip())
		}
	}
	require.NoError(t, r.StructEnd())

	require.True(t, sawU32)
	require.True(t, sawBool)
	require.True(t, sawTimestamp)
}

func TestWriter_DepthExceeded(t *testing.T) {
	w, err := NewWriter(0, 0)
	require.NoError(t, err)
	defer w.Destroy()

	for i := 0; i < wire.MaxDepth; i++ {
		require.NoError(t, w.ArrayBegin(wire.TypeArray, 1))
	}

	err = w.ArrayBegin(wire.TypeU8, 0)
	require.ErrorIs(t, err, errs.ErrDepthExceeded)
}

func TestWriter_UnbalancedEndIsMalformed(t *testing.T) {
	w, err := NewWriter(0, 0)
	require.NoError(t, err)
	defer w.Destroy()

	err = w.ArrayEnd()
	require.ErrorIs(t, err, errs.ErrMalformed)
}

func TestWriter_BorrowedBufferOverflow(t *testing.T) {
	buf := make([]byte, 0, 24)
	w, err := NewWriterBuffer(buf, 0, 0)
	require.NoError(t, err)

	before := append([]byte(nil), buf[:wire.HeaderSize]...)

	err = w.WriteString("this string is much longer than twenty-four bytes")
	require.ErrorIs(t, err, errs.ErrBufferFull)

	require.Equal(t, before, buf[:wire.HeaderSize])
}

func TestWriter_BorrowedBufferTooSmallForHeader(t *testing.T) {
	buf := make([]byte, 0, 10)
	_, err := NewWriterBuffer(buf, 0, 0)
	require.ErrorIs(t, err, errs.ErrBufferFull)
}

func TestWriter_RawAndReserve(t *testing.T) {
	w, err := NewWriter(0, wire.FlagNoCRC)
	require.NoError(t, err)
	defer w.Destroy()

	require.NoError(t, w.WriteRaw([]byte{0xAA, 0xBB}))

	b, err := w.Reserve(2)
	require.NoError(t, err)
	binary.BigEndian.PutUint16(b, 0xCCDD)

	out, err := w.Finish()
	require.NoError(t, err)
	require.Equal(t, []byte{0xAA, 0xBB, 0xCC, 0xDD}, out[wire.HeaderSize:])
}

func TestWriter_Reset(t *testing.T) {
	w, err := NewWriter(1, 0)
	require.NoError(t, err)
	defer w.Destroy()

	require.NoError(t, w.WriteU32(1))
	w.Reset(2, wire.FlagNoCRC)

	require.Equal(t, 0, w.PayloadSize())
	require.NoError(t, w.WriteU32(2))

	out, err := w.Finish()
	require.NoError(t, err)

	h, err := wire.ParseHeader(out)
	require.NoError(t, err)
	require.Equal(t, uint16(2), h.MsgType)
}

func TestWriter_WithInitialCapacity_GrowsBackingBuffer(t *testing.T) {
	w, err := NewWriter(1, 0, WithInitialCapacity(4096))
	require.NoError(t, err)
	defer w.Destroy()

	// The option must grow w.data itself, not just w.pooled's backing
	// array out from under it - otherwise reserve's first growth check
	// still sees the small pre-option capacity.
	require.GreaterOrEqual(t, cap(w.data), 4096-wire.HeaderSize)
	require.Equal(t, cap(w.pooled.B), cap(w.data))
}
