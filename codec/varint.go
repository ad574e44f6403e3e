// Package codec implements the DCFS streaming Writer, Reader, and generic
// skip procedure: the self-describing, type-tagged payload grammar framed
// by a wire.Header.
package codec

import "github.com/demodllc/dcfs/errs"

// maxVarintBytes is the longest possible LEB128 encoding of a 64-bit value:
// ceil(64/7) = 10 continuation groups.
const maxVarintBytes = 10

// VarintLen returns the number of bytes AppendVarint would write for val,
// without encoding it. Writer uses this to reserve exactly the right span.
func VarintLen(val uint64) int {
	n := 1
	for val >= 0x80 {
		n++
		val >>= 7
	}

	return n
}

// PutVarint encodes val as an unsigned LEB128 varint into the front of b,
// which must be at least VarintLen(val) bytes long, and returns the number
// of bytes written.
func PutVarint(b []byte, val uint64) int {
	i := 0
	for val >= 0x80 {
		b[i] = byte(val) | 0x80
		val >>= 7
		i++
	}
	b[i] = byte(val)

	return i + 1
}

// AppendVarint appends val to dst as an unsigned LEB128 varint: each byte
// carries 7 bits of payload in its low bits, with the high bit set on every
// byte but the last.
func AppendVarint(dst []byte, val uint64) []byte {
	n := VarintLen(val)
	off := len(dst)
	dst = append(dst, make([]byte, n)...)
	PutVarint(dst[off:], val)

	return dst
}

// AppendVarsint zigzag-encodes a signed val and appends it as the same
// unsigned LEB128 varint AppendVarint uses. Zigzag maps small-magnitude
// negatives to small unsigned values (-1 -> 1, -2 -> 3, 0 -> 0, 1 -> 2, ...)
// so they stay cheap to encode.
func AppendVarsint(dst []byte, val int64) []byte {
	uval := uint64(val<<1) ^ uint64(val>>63)
	return AppendVarint(dst, uval)
}

// DecodeVarint reads an unsigned LEB128 varint from the front of src,
// returning the value and the number of bytes consumed. It returns
// errs.ErrTruncated if src runs out before a terminating byte, and
// errs.ErrOverflow if the encoding uses more than maxVarintBytes bytes
// (more than 64 bits of payload).
func DecodeVarint(src []byte) (uint64, int, error) {
	var val uint64

	for i := 0; i < len(src) && i < maxVarintBytes; i++ {
		b := src[i]
		val |= uint64(b&0x7F) << (7 * uint(i))

		if b&0x80 == 0 {
			return val, i + 1, nil
		}
	}

	if len(src) < maxVarintBytes {
		return 0, 0, errs.ErrTruncated
	}

	return 0, 0, errs.ErrOverflow
}

// DecodeVarsint reads a zigzag-encoded LEB128 varint from the front of src,
// returning the signed value and the number of bytes consumed.
func DecodeVarsint(src []byte) (int64, int, error) {
	uval, n, err := DecodeVarint(src)
	if err != nil {
		return 0, 0, err
	}

	sval := int64(uval>>1) ^ -int64(uval&1)

	return sval, n, nil
}
