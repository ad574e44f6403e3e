package dcfs

import (
	"github.com/demodllc/dcfs/codec"
	"github.com/demodllc/dcfs/wire"
)

// NewWriter creates a Writer over a new owned, pool-backed buffer. This is
// the recommended factory for most use cases; for fine-grained control
// (borrowed buffers, a custom initial capacity) use codec.NewWriter and
// codec.NewWriterBuffer directly.
//
// Parameters:
//   - msgType: the application-chosen message tag stamped into the header
//   - flags: the frame's flag bitset (see wire.Flags)
//
// Example:
//
//	w, err := dcfs.NewWriter(1, 0)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer w.Destroy()
func NewWriter(msgType uint16, flags wire.Flags) (*codec.Writer, error) {
	return codec.NewWriter(msgType, flags)
}

// NewReader creates a Reader over buf. Call Validate before reading any
// values; Validate checks the magic, version, declared payload length, and
// (unless FlagNoCRC is set) the trailing CRC32.
//
// Example:
//
//	r, err := dcfs.NewReader(msg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := r.Validate(); err != nil {
//	    log.Fatal(err)
//	}
func NewReader(buf []byte) (*codec.Reader, error) {
	return codec.NewReader(buf)
}

// Validate is validate_message: reader_init followed by reader_validate in
// one call, returning the constructed, validated Reader ready for use.
func Validate(buf []byte) (*codec.Reader, error) {
	r, err := codec.NewReader(buf)
	if err != nil {
		return nil, err
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}

	return r, nil
}

// MessageLength reads payload_len and flags out of a header prefix (at
// least wire.HeaderSize bytes) and returns the total byte length of the
// full message: header + payload + trailer. A stream-oriented caller reads
// exactly wire.HeaderSize bytes, calls MessageLength, then reads the
// remainder in one call.
func MessageLength(first17 []byte) (int, error) {
	return wire.MessageLength(first17)
}

// ErrorStr returns err.Error(), or "ok" if err is nil. For an errs
// sentinel that is its fixed message; an error wrapping a sentinel with
// fmt.Errorf yields the whole wrapped message.
func ErrorStr(err error) string {
	if err == nil {
		return "ok"
	}

	return err.Error()
}

// TypeStr returns a stable, human-readable label for a wire value type tag.
func TypeStr(t wire.Type) string {
	return t.String()
}
