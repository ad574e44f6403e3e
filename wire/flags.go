package wire

// Flags is the 1-byte bitset carried in every frame header.
//
// Bits 0x01, 0x02 (COMPRESSED, ENCRYPTED) are signals only: this package
// and codec never compress or encrypt a payload themselves, they only
// carry the bit so an external collaborator (see package compress) knows
// how to treat the bytes it gets back from codec.Reader.
type Flags uint8

const (
	// FlagCompressed marks the payload as compressed by an external codec.
	FlagCompressed Flags = 0x01
	// FlagEncrypted marks the payload as encrypted by an external collaborator.
	FlagEncrypted Flags = 0x02
	// FlagStreaming marks a non-terminal chunk of a multi-part message.
	FlagStreaming Flags = 0x04
	// FlagFinal marks the terminal chunk of a multi-part message.
	FlagFinal Flags = 0x08
	// FlagPriority requests elevated delivery priority from the transport.
	FlagPriority Flags = 0x10
	// FlagNoCRC omits the 4-byte CRC32 trailer entirely.
	FlagNoCRC Flags = 0x20
	// FlagExtended signals that an extended header follows. Reserved: no
	// writer in this package ever sets it, and no reader here understands it.
	FlagExtended Flags = 0x80
)

// Has reports whether every bit set in want is also set in f.
func (f Flags) Has(want Flags) bool {
	return f&want == want
}

// WithFlag returns a copy of f with want set.
func (f Flags) WithFlag(want Flags) Flags {
	return f | want
}

// WithoutFlag returns a copy of f with want cleared.
func (f Flags) WithoutFlag(want Flags) Flags {
	return f &^ want
}
