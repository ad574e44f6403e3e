package codec

import (
	"testing"

	"github.com/demodllc/dcfs/errs"
	"github.com/demodllc/dcfs/wire"
	"github.com/stretchr/testify/require"
)

func buildMessage(t *testing.T, flags wire.Flags, fn func(w *Writer)) []byte {
	t.Helper()

	w, err := NewWriter(0x0001, flags)
	require.NoError(t, err)
	defer w.Destroy()

	fn(w)

	out, err := w.Finish()
	require.NoError(t, err)

	return append([]byte(nil), out...)
}

func TestReader_NewReader_Truncated(t *testing.T) {
	_, err := NewReader(make([]byte, wire.HeaderSize-1))
	require.ErrorIs(t, err, errs.ErrTruncated)
}

func TestReader_Validate_InvalidMagic(t *testing.T) {
	msg := buildMessage(t, 0, func(w *Writer) { _ = w.WriteU8(1) })
	msg[0] ^= 0xFF

	r, err := NewReader(msg)
	require.NoError(t, err)
	require.ErrorIs(t, r.Validate(), errs.ErrInvalidMagic)
}

func TestReader_Validate_VersionMismatch(t *testing.T) {
	msg := buildMessage(t, 0, func(w *Writer) { _ = w.WriteU8(1) })
	msg[4] = 0x06 // bump major version byte

	r, err := NewReader(msg)
	require.NoError(t, err)
	require.ErrorIs(t, r.Validate(), errs.ErrVersionMismatch)
}

func TestReader_Validate_Truncated(t *testing.T) {
	msg := buildMessage(t, 0, func(w *Writer) { _ = w.WriteU8(1) })

	r, err := NewReader(msg[:len(msg)-1])
	require.NoError(t, err)
	require.ErrorIs(t, r.Validate(), errs.ErrTruncated)
}

func TestReader_Validate_CRCMismatch(t *testing.T) {
	msg := buildMessage(t, 0, func(w *Writer) { _ = w.WriteU32(42) })
	msg[wire.HeaderSize] ^= 0x01 // flip a payload byte

	r, err := NewReader(msg)
	require.NoError(t, err)
	require.ErrorIs(t, r.Validate(), errs.ErrCRCMismatch)
}

func TestReader_TypeMismatch(t *testing.T) {
	msg := buildMessage(t, 0, func(w *Writer) { _ = w.WriteU32(1) })

	r, err := NewReader(msg)
	require.NoError(t, err)
	require.NoError(t, r.Validate())

	_, err = r.ReadBool()
	require.ErrorIs(t, err, errs.ErrTypeMismatch)
}

func TestReader_MessageLength(t *testing.T) {
	msg := buildMessage(t, 0, func(w *Writer) { _ = w.WriteString("hello") })

	n, err := wire.MessageLength(msg[:wire.HeaderSize])
	require.NoError(t, err)
	require.Equal(t, len(msg), n)
}

func TestReader_ArrayRoundTrip(t *testing.T) {
	msg := buildMessage(t, 0, func(w *Writer) {
		require.NoError(t, w.ArrayBegin(wire.TypeU32, 3))
		require.NoError(t, w.WriteU32(1))
		require.NoError(t, w.WriteU32(2))
		require.NoError(t, w.WriteU32(3))
		require.NoError(t, w.ArrayEnd())
	})

	r, err := NewReader(msg)
	require.NoError(t, err)
	require.NoError(t, r.Validate())

	elemType, count, err := r.ArrayBegin()
	require.NoError(t, err)
	require.Equal(t, wire.TypeU32, elemType)
	require.Equal(t, uint32(3), count)

	for i := uint32(0); i < count; i++ {
		v, err := r.ReadU32()
		require.NoError(t, err)
		require.Equal(t, i+1, v)
	}

	require.NoError(t, r.ArrayEnd())
	require.True(t, r.AtEnd())
}

func TestReader_MapRoundTrip(t *testing.T) {
	msg := buildMessage(t, 0, func(w *Writer) {
		require.NoError(t, w.MapBegin(wire.TypeString, wire.TypeU32, 2))
		require.NoError(t, w.WriteString("a"))
		require.NoError(t, w.WriteU32(1))
		require.NoError(t, w.WriteString("b"))
		require.NoError(t, w.WriteU32(2))
		require.NoError(t, w.MapEnd())
	})

	r, err := NewReader(msg)
	require.NoError(t, err)
	require.NoError(t, r.Validate())

	keyType, valType, count, err := r.MapBegin()
	require.NoError(t, err)
	require.Equal(t, wire.TypeString, keyType)
	require.Equal(t, wire.TypeU32, valType)
	require.Equal(t, uint32(2), count)

	k1, err := r.ReadString()
	require.NoError(t, err)
	require.Equal(t, "a", k1)
	v1, err := r.ReadU32()
	require.NoError(t, err)
	require.Equal(t, uint32(1), v1)

	k2, err := r.ReadString()
	require.NoError(t, err)
	require.Equal(t, "b", k2)
	v2, err := r.ReadU32()
	require.NoError(t, err)
	require.Equal(t, uint32(2), v2)

	require.NoError(t, r.MapEnd())
}

func TestReader_CopyOverflow(t *testing.T) {
	msg := buildMessage(t, 0, func(w *Writer) { _ = w.WriteString("hello") })

	r, err := NewReader(msg)
	require.NoError(t, err)
	require.NoError(t, r.Validate())

	dst := make([]byte, 3)
	n, err := r.ReadStringCopy(dst)
	require.ErrorIs(t, err, errs.ErrOverflow)
	require.Equal(t, 6, n) // "hello" + NUL terminator
}

func TestReader_BytesCopy(t *testing.T) {
	msg := buildMessage(t, 0, func(w *Writer) { _ = w.WriteBytes([]byte{9, 8, 7}) })

	r, err := NewReader(msg)
	require.NoError(t, err)
	require.NoError(t, r.Validate())

	dst := make([]byte, 3)
	n, err := r.ReadBytesCopy(dst)
	require.NoError(t, err)
	require.Equal(t, 3, n)
	require.Equal(t, []byte{9, 8, 7}, dst)
}

func TestReader_PeekType(t *testing.T) {
	msg := buildMessage(t, 0, func(w *Writer) { _ = w.WriteU32(1) })

	r, err := NewReader(msg)
	require.NoError(t, err)
	require.NoError(t, r.Validate())

	require.Equal(t, wire.TypeU32, r.PeekType())
	_, err = r.ReadU32()
	require.NoError(t, err)
	require.Equal(t, wire.TypeInvalid, r.PeekType())
}

func TestReader_UUID(t *testing.T) {
	var id [16]byte
	for i := range id {
		id[i] = byte(i)
	}

	msg := buildMessage(t, 0, func(w *Writer) { _ = w.WriteUUID(id) })

	r, err := NewReader(msg)
	require.NoError(t, err)
	require.NoError(t, r.Validate())

	got, err := r.ReadUUID()
	require.NoError(t, err)
	require.Equal(t, id, got)
}

func TestReader_PeekStructTypeID(t *testing.T) {
	msg := buildMessage(t, 0, func(w *Writer) {
		require.NoError(t, w.StructBegin(0x0100))
		require.NoError(t, w.StructEnd())
	})

	r, err := NewReader(msg)
	require.NoError(t, err)
	require.NoError(t, r.Validate())

	id, err := r.PeekStructTypeID()
	require.NoError(t, err)
	require.Equal(t, uint16(0x0100), id)

	// Peek doesn't consume: StructBegin still reads the same value.
	gotID, err := r.StructBegin()
	require.NoError(t, err)
	require.Equal(t, uint16(0x0100), gotID)
	require.NoError(t, r.StructEnd())
}

func TestReader_PeekStructTypeID_NotStruct(t *testing.T) {
	msg := buildMessage(t, 0, func(w *Writer) { _ = w.WriteU32(1) })

	r, err := NewReader(msg)
	require.NoError(t, err)
	require.NoError(t, r.Validate())

	_, err = r.PeekStructTypeID()
	require.ErrorIs(t, err, errs.ErrTypeMismatch)
}
