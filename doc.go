// Package dcfs provides a self-describing binary wire codec: a framed,
// type-tagged payload format with an integrity trailer, intended as a
// universal shim over any message-oriented transport.
//
// # Core Features
//
//   - Fixed 17-byte frame header (magic, version, msg_type, flags,
//     payload_len, sequence) plus an optional CRC-32 trailer
//   - A self-describing value grammar: primitives, VARINT/VARSINT,
//     STRING/BYTES/UUID, and nested ARRAY/MAP/STRUCT containers
//   - A streaming Writer (owned, pool-backed buffer or a borrowed
//     fixed-size one) and a bounds-checked, zero-copy-borrowing Reader
//   - A generic Skip that advances past any well-formed value without
//     interpreting it, enabling forward-compatible struct decoding
//   - A schema-driven struct (de)serializer built on unsafe.Pointer field
//     offsets, with no reflection or struct tags involved
//
// # Basic Usage
//
// Encoding a message:
//
//	w, _ := dcfs.NewWriter(1, 0)
//	defer w.Destroy()
//
//	w.WriteString("cpu.usage")
//	w.WriteF64(42.5)
//	msg, _ := w.Finish()
//
// Decoding it back:
//
//	r, _ := dcfs.NewReader(msg)
//	if err := r.Validate(); err != nil {
//	    log.Fatal(err)
//	}
//	name, _ := r.ReadString()
//	val, _ := r.ReadF64()
//
// # Package Structure
//
// This package is a convenience wrapper around codec.Writer/codec.Reader.
// For container and struct encoding, schema-driven records, and payload
// compression, use the codec, schema, and compress packages directly.
package dcfs
