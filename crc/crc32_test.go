package crc

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCRC32ReferenceVector(t *testing.T) {
	require.Equal(t, uint32(0xCBF43926), CRC32([]byte("123456789")))
}

func TestCRC32Empty(t *testing.T) {
	require.Equal(t, uint32(0), CRC32(nil))
}

func TestCRC32UpdateMatchesOneShot(t *testing.T) {
	data := []byte("the quick brown fox jumps over the lazy dog")

	oneShot := CRC32(data)

	crc := Init
	crc = CRC32Update(crc, data[:10])
	crc = CRC32Update(crc, data[10:])

	require.Equal(t, oneShot, crc)
}

func TestCRC32DetectsSingleByteFlip(t *testing.T) {
	data := []byte("header+payload bytes covered by the trailer")
	original := CRC32(data)

	flipped := append([]byte(nil), data...)
	flipped[5] ^= 0x01

	require.NotEqual(t, original, CRC32(flipped))
}
