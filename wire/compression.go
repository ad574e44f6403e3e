package wire

// CompressionKind names the payload compression algorithm an application
// chose before setting FlagCompressed and wrapping the compressed bytes as
// a BYTES value. The wire format itself never compresses anything; this
// is pure vocabulary shared between a FlagCompressed-carrying frame and
// whatever external codec (see package compress) the receiving
// application looks up to reverse the compression.
type CompressionKind uint8

const (
	// CompressionNone means the payload is carried uncompressed; an
	// application sets this when FlagCompressed is clear.
	CompressionNone CompressionKind = 0x1
	// CompressionZstd means the payload was compressed with Zstandard.
	CompressionZstd CompressionKind = 0x2
	// CompressionS2 means the payload was compressed with S2 (a Snappy derivative).
	CompressionS2 CompressionKind = 0x3
	// CompressionLZ4 means the payload was compressed with LZ4.
	CompressionLZ4 CompressionKind = 0x4
)

// String returns a stable, human-readable label for k.
func (k CompressionKind) String() string {
	switch k {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}
