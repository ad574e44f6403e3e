package wire

// Type is a 1-byte tag identifying the shape of the value that follows it
// on the wire. Every value in the payload grammar begins with a Type byte.
type Type uint8

// Value type tags. Comments note the fixed body size in bytes, or "var"
// for variable-length/container kinds.
const (
	TypeNull Type = 0x00 // 0 bytes

	TypeBool Type = 0x01 // 1 byte, 0/1
	TypeU8   Type = 0x02 // 1 byte
	TypeI8   Type = 0x03 // 1 byte
	TypeU16  Type = 0x04 // 2 bytes
	TypeI16  Type = 0x05 // 2 bytes
	TypeU32  Type = 0x06 // 4 bytes
	TypeI32  Type = 0x07 // 4 bytes
	TypeU64  Type = 0x08 // 8 bytes
	TypeI64  Type = 0x09 // 8 bytes
	TypeF32  Type = 0x0A // 4 bytes, IEEE-754 bits
	TypeF64  Type = 0x0B // 8 bytes, IEEE-754 bits

	TypeVarint Type = 0x10 // var, LEB128
	TypeString Type = 0x11 // var, 4-byte length + UTF-8 bytes
	TypeBytes  Type = 0x12 // var, 4-byte length + raw bytes
	TypeUUID   Type = 0x13 // 16 bytes

	TypeArray  Type = 0x20 // var, elem type + 4-byte count + values
	TypeMap    Type = 0x21 // var, key/val type + 4-byte count + values
	TypeStruct Type = 0x22 // var, type_id + fields + sentinel
	TypeTuple  Type = 0x23 // reserved, unallocated

	TypeTimestamp Type = 0x30 // 8 bytes, microseconds since epoch
	TypeDuration  Type = 0x31 // 8 bytes, nanoseconds
	TypeOptional  Type = 0x32 // reserved, unallocated
	TypeEnum      Type = 0x33 // reserved, unallocated

	TypeExtension Type = 0xFE // reserved, unallocated
	TypeInvalid   Type = 0xFF // not a wire tag; returned by PeekType at end of buffer
)

// fixedSizes maps a fixed-width Type to its body size in bytes. Types
// absent from this table are variable-length or containers.
var fixedSizes = map[Type]int{
	TypeNull:      0,
	TypeBool:      1,
	TypeU8:        1,
	TypeI8:        1,
	TypeU16:       2,
	TypeI16:       2,
	TypeU32:       4,
	TypeI32:       4,
	TypeU64:       8,
	TypeI64:       8,
	TypeF32:       4,
	TypeF64:       8,
	TypeUUID:      16,
	TypeTimestamp: 8,
	TypeDuration:  8,
}

// Size returns the fixed wire body size of t, or 0 if t is variable-length,
// a container, or not a fixed-width type at all: "how many bytes after the
// tag" for types whose size never depends on their content.
func (t Type) Size() int {
	return fixedSizes[t]
}

// IsFixed reports whether t has a fixed wire body size (including NULL,
// whose body size is zero).
func (t Type) IsFixed() bool {
	_, ok := fixedSizes[t]
	return ok
}

// IsReserved reports whether t is one of the tags the grammar defines but
// the encoder must never emit (TUPLE, OPTIONAL, ENUM, EXTENSION).
func (t Type) IsReserved() bool {
	switch t {
	case TypeTuple, TypeOptional, TypeEnum, TypeExtension:
		return true
	default:
		return false
	}
}

// String returns a stable, human-readable label for t, used by
// diagnostics and error messages.
func (t Type) String() string {
	switch t {
	case TypeNull:
		return "NULL"
	case TypeBool:
		return "BOOL"
	case TypeU8:
		return "U8"
	case TypeI8:
		return "I8"
	case TypeU16:
		return "U16"
	case TypeI16:
		return "I16"
	case TypeU32:
		return "U32"
	case TypeI32:
		return "I32"
	case TypeU64:
		return "U64"
	case TypeI64:
		return "I64"
	case TypeF32:
		return "F32"
	case TypeF64:
		return "F64"
	case TypeVarint:
		return "VARINT"
	case TypeString:
		return "STRING"
	case TypeBytes:
		return "BYTES"
	case TypeUUID:
		return "UUID"
	case TypeArray:
		return "ARRAY"
	case TypeMap:
		return "MAP"
	case TypeStruct:
		return "STRUCT"
	case TypeTuple:
		return "TUPLE"
	case TypeTimestamp:
		return "TIMESTAMP"
	case TypeDuration:
		return "DURATION"
	case TypeOptional:
		return "OPTIONAL"
	case TypeEnum:
		return "ENUM"
	case TypeExtension:
		return "EXTENSION"
	default:
		return "INVALID"
	}
}
