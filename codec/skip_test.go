package codec

import (
	"errors"
	"testing"

	"github.com/demodllc/dcfs/errs"
	"github.com/demodllc/dcfs/wire"
	"github.com/stretchr/testify/require"
)

func TestSkip_FixedPrimitive(t *testing.T) {
	msg := buildMessage(t, 0, func(w *Writer) {
		require.NoError(t, w.WriteU64(1))
		require.NoError(t, w.WriteBool(true))
	})

	r, err := NewReader(msg)
	require.NoError(t, err)
	require.NoError(t, r.Validate())

	require.NoError(t, r.Skip())

	v, err := r.ReadBool()
	require.NoError(t, err)
	require.True(t, v)
}

func TestSkip_String(t *testing.T) {
	msg := buildMessage(t, 0, func(w *Writer) {
		require.NoError(t, w.WriteString("skip me"))
		require.NoError(t, w.WriteI8(-1))
	})

	r, err := NewReader(msg)
	require.NoError(t, err)
	require.NoError(t, r.Validate())

	require.NoError(t, r.Skip())

	v, err := r.ReadI8()
	require.NoError(t, err)
	require.Equal(t, int8(-1), v)
}

func TestSkip_NestedArray(t *testing.T) {
	msg := buildMessage(t, 0, func(w *Writer) {
		require.NoError(t, w.ArrayBegin(wire.TypeArray, 2))
		require.NoError(t, w.ArrayBegin(wire.TypeU32, 2))
		require.NoError(t, w.WriteU32(1))
		require.NoError(t, w.WriteU32(2))
		require.NoError(t, w.ArrayEnd())
		require.NoError(t, w.ArrayBegin(wire.TypeU32, 1))
		require.NoError(t, w.WriteU32(3))
		require.NoError(t, w.ArrayEnd())
		require.NoError(t, w.ArrayEnd())

		require.NoError(t, w.WriteString("after"))
	})

	r, err := NewReader(msg)
	require.NoError(t, err)
	require.NoError(t, r.Validate())

	require.NoError(t, r.Skip())

	s, err := r.ReadString()
	require.NoError(t, err)
	require.Equal(t, "after", s)
	require.True(t, r.AtEnd())
}

func TestSkip_StructWithUnknownFields(t *testing.T) {
	msg := buildMessage(t, 0, func(w *Writer) {
		require.NoError(t, w.StructBegin(0x0300))
		require.NoError(t, w.WriteField(1, wire.TypeU32))
		require.NoError(t, w.WriteU32(1))
		require.NoError(t, w.WriteField(2, wire.TypeString))
		require.NoError(t, w.WriteString("nested"))
		require.NoError(t, w.StructEnd())

		require.NoError(t, w.WriteBool(true))
	})

	r, err := NewReader(msg)
	require.NoError(t, err)
	require.NoError(t, r.Validate())

	require.NoError(t, r.Skip()) // skip the whole struct as one opaque value

	v, err := r.ReadBool()
	require.NoError(t, err)
	require.True(t, v)
}

func TestSkip_MatchesManualConsumption(t *testing.T) {
	msg := buildMessage(t, 0, func(w *Writer) {
		require.NoError(t, w.MapBegin(wire.TypeString, wire.TypeU32, 2))
		require.NoError(t, w.WriteString("a"))
		require.NoError(t, w.WriteU32(1))
		require.NoError(t, w.WriteString("b"))
		require.NoError(t, w.WriteU32(2))
		require.NoError(t, w.MapEnd())
	})

	r1, err := NewReader(msg)
	require.NoError(t, err)
	require.NoError(t, r1.Validate())
	require.NoError(t, r1.Skip())
	require.True(t, r1.AtEnd())

	r2, err := NewReader(msg)
	require.NoError(t, err)
	require.NoError(t, r2.Validate())
	_, _, count, err := r2.MapBegin()
	require.NoError(t, err)
	for i := uint32(0); i < 2*count; i++ {
		require.NoError(t, r2.Skip())
	}
	require.NoError(t, r2.MapEnd())
	require.True(t, r2.AtEnd())
}

func TestSkip_InvalidType(t *testing.T) {
	msg := buildMessage(t, wire.FlagNoCRC, func(w *Writer) {
		require.NoError(t, w.WriteRaw([]byte{0xFE})) // EXTENSION tag, unallocated
	})

	r, err := NewReader(msg)
	require.NoError(t, err)
	require.NoError(t, r.Validate())

	err = r.Skip()
	require.ErrorIs(t, err, errs.ErrInvalidType)
}

func TestSkip_DepthExceeded(t *testing.T) {
	w, err := NewWriter(0, wire.FlagNoCRC)
	require.NoError(t, err)
	defer w.Destroy()

	for i := 0; i < wire.MaxDepth+1; i++ {
		require.NoError(t, w.WriteRaw([]byte{byte(wire.TypeArray), byte(wire.TypeArray)}))
		require.NoError(t, w.WriteRaw([]byte{0, 0, 0, 1}))
	}

	out, err := w.Finish()
	require.NoError(t, err)

	r, err := NewReader(out)
	require.NoError(t, err)
	require.NoError(t, r.Validate())

	err = r.Skip()
	require.True(t, errors.Is(err, errs.ErrDepthExceeded))
}
