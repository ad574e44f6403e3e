// Package errs defines the sentinel errors returned by the wire, codec,
// and schema packages.
//
// All errors are package-level values created with errors.New so callers
// can compare with errors.Is. A handful of call sites wrap a sentinel with
// fmt.Errorf("...: %w", ErrXxx, detail) to attach a dynamic value (a field
// name, an offset, a length); errors.Is still matches the wrapped sentinel.
package errs

import "errors"

// Capacity / limit errors.
var (
	// ErrBufferFull is returned when a borrowed (external) writer buffer
	// has no room left for the next append.
	ErrBufferFull = errors.New("dcfs: buffer full")
	// ErrAllocFail is returned when an owned writer buffer cannot grow
	// because the pool/allocator failed.
	ErrAllocFail = errors.New("dcfs: allocation failed")
	// ErrTooLarge is returned when a value or message would exceed one of
	// the wire limits (MaxString, MaxArray, MaxMessage).
	ErrTooLarge = errors.New("dcfs: value exceeds size limit")
	// ErrDepthExceeded is returned when a container begin call would push
	// nesting past wire.MaxDepth.
	ErrDepthExceeded = errors.New("dcfs: nesting depth exceeded")
)

// Framing errors.
var (
	// ErrInvalidMagic is returned when a header's magic field doesn't match wire.Magic.
	ErrInvalidMagic = errors.New("dcfs: invalid magic number")
	// ErrVersionMismatch is returned when a header's major version byte
	// differs from wire.Version's major byte.
	ErrVersionMismatch = errors.New("dcfs: version mismatch")
	// ErrTruncated is returned when a buffer is shorter than the header,
	// or shorter than the declared payload plus trailer.
	ErrTruncated = errors.New("dcfs: truncated message")
	// ErrCRCMismatch is returned when the stored CRC32 trailer doesn't
	// match the CRC32 computed over header+payload.
	ErrCRCMismatch = errors.New("dcfs: CRC32 mismatch")
)

// Grammar errors.
var (
	// ErrInvalidType is returned for a type tag byte that isn't one of
	// the tags defined in wire, or is a reserved/unallocated tag.
	ErrInvalidType = errors.New("dcfs: invalid type tag")
	// ErrOverflow is returned when a VARINT would need more than 64 bits
	// of payload, or a copy destination is smaller than the source.
	ErrOverflow = errors.New("dcfs: value overflow")
	// ErrMalformed is returned when a container end call observes
	// unbalanced nesting (depth already zero).
	ErrMalformed = errors.New("dcfs: malformed structure")
)

// Contract errors.
var (
	// ErrNullPtr is returned when a required writer/reader/schema handle is nil.
	ErrNullPtr = errors.New("dcfs: nil handle")
	// ErrInvalidArg is returned for an out-of-contract argument (negative
	// length, zero capacity, etc).
	ErrInvalidArg = errors.New("dcfs: invalid argument")
	// ErrTypeMismatch is returned when a read's expected type tag doesn't
	// match the tag actually present on the wire.
	ErrTypeMismatch = errors.New("dcfs: type mismatch")
	// ErrNotFound is the struct-field sentinel signal: Reader.ReadField
	// returns it when it observes the (field_id=0, NULL) terminator. It is
	// an expected control-flow value, not a fault.
	ErrNotFound = errors.New("dcfs: not found")
)

// Schema errors.
var (
	// ErrDuplicateFieldID is returned when a schema registers two fields
	// with the same field_id.
	ErrDuplicateFieldID = errors.New("dcfs: duplicate field id in schema")
	// ErrDuplicateTypeID is returned when two schemas registered in the
	// same registry hash to (or are assigned) the same type_id.
	ErrDuplicateTypeID = errors.New("dcfs: duplicate type id in schema registry")
	// ErrMissingRequiredField is returned by schema.Decode when a field
	// declared schema.Required never appeared on the wire.
	ErrMissingRequiredField = errors.New("dcfs: missing required field")
)
