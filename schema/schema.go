// Package schema implements the struct-driven (de)serializer: a Schema
// describes a Go struct's fields by wire type and memory offset, and
// Encode/Decode drive codec.Writer/codec.Reader from that description
// using unsafe.Pointer + offset arithmetic rather than reflection or
// struct tags.
package schema

import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/demodllc/dcfs/codec"
	"github.com/demodllc/dcfs/errs"
	"github.com/demodllc/dcfs/internal/collision"
	"github.com/demodllc/dcfs/internal/hash"
	"github.com/demodllc/dcfs/wire"
)

// FieldFlag marks a schema field as required or optional for Decode's
// post-loop completeness check.
type FieldFlag uint16

const (
	// Required marks a field that must appear on the wire; Decode returns
	// errs.ErrMissingRequiredField if a struct body never carries it.
	Required FieldFlag = 0x0001
	// Optional marks a field Decode does not require to be present.
	Optional FieldFlag = 0x0002
)

// Field describes one struct field: its wire identity (FieldID, Type),
// its schema-author-facing Name, and its location (Offset, Size) within
// a caller-supplied record. Schema does not interpret Name or Size; they
// exist for diagnostics and for callers building Field values by hand.
type Field struct {
	Name    string
	FieldID uint16
	Type    wire.Type
	Flags   FieldFlag
	Offset  uintptr
	Size    uintptr
}

// IsRequired reports whether f carries the Required flag.
func (f Field) IsRequired() bool {
	return f.Flags&Required != 0
}

// Schema is {name, type_id, fields[], struct_size}: a struct_begin/
// struct_end type_id plus an ordered field list. Schema never reorders
// fields on Encode; Decode tolerates any field order on the wire.
type Schema struct {
	Name       string
	TypeID     uint16
	Fields     []Field
	StructSize uintptr
}

// New builds a Schema, rejecting it with errs.ErrDuplicateFieldID if two
// fields share a field_id.
func New(name string, typeID uint16, fields []Field, structSize uintptr) (*Schema, error) {
	tracker := collision.NewTracker(errs.ErrDuplicateFieldID)
	for _, f := range fields {
		if err := tracker.Track(f.Name, uint64(f.FieldID)); err != nil {
			return nil, fmt.Errorf("%w: field %q id %d", err, f.Name, f.FieldID)
		}
	}

	return &Schema{
		Name:       name,
		TypeID:     typeID,
		Fields:     fields,
		StructSize: structSize,
	}, nil
}

// TypeIDFromName derives a stable 16-bit type id from a human-readable
// type name, so schema authors don't have to hand-assign numbers. It
// truncates xxhash64(name) to its low 16 bits.
func TypeIDFromName(name string) uint16 {
	return uint16(hash.ID(name))
}

// FieldIDFromName derives a stable 16-bit field id from a human-readable
// field name, the same way TypeIDFromName does for type ids.
func FieldIDFromName(name string) uint16 {
	return uint16(hash.ID(name))
}

func (s *Schema) fieldByID(id uint16) (Field, bool) {
	for _, f := range s.Fields {
		if f.FieldID == id {
			return f, true
		}
	}

	return Field{}, false
}

func fieldPtr(record unsafe.Pointer, f Field) unsafe.Pointer {
	return unsafe.Pointer(uintptr(record) + f.Offset)
}

// Encode writes record (a pointer to the Go struct this Schema describes)
// as a STRUCT value: struct_begin(type_id), then for each field in
// declaration order a field header followed by the typed value read out
// of record at that field's offset, then struct_end. A field whose Type
// is not one of the dispatch cases below fails with errs.ErrInvalidType.
func (s *Schema) Encode(w *codec.Writer, record unsafe.Pointer) error {
	if err := w.StructBegin(s.TypeID); err != nil {
		return err
	}

	for _, f := range s.Fields {
		if err := w.WriteField(f.FieldID, f.Type); err != nil {
			return err
		}

		ptr := fieldPtr(record, f)

		var err error
		switch f.Type {
		case wire.TypeBool:
			err = w.WriteBool(*(*bool)(ptr))
		case wire.TypeU8:
			err = w.WriteU8(*(*uint8)(ptr))
		case wire.TypeI8:
			err = w.WriteI8(*(*int8)(ptr))
		case wire.TypeU16:
			err = w.WriteU16(*(*uint16)(ptr))
		case wire.TypeI16:
			err = w.WriteI16(*(*int16)(ptr))
		case wire.TypeU32:
			err = w.WriteU32(*(*uint32)(ptr))
		case wire.TypeI32:
			err = w.WriteI32(*(*int32)(ptr))
		case wire.TypeU64:
			err = w.WriteU64(*(*uint64)(ptr))
		case wire.TypeI64:
			err = w.WriteI64(*(*int64)(ptr))
		case wire.TypeF32:
			err = w.WriteF32(*(*float32)(ptr))
		case wire.TypeF64:
			err = w.WriteF64(*(*float64)(ptr))
		case wire.TypeVarint:
			err = w.WriteVarint(*(*uint64)(ptr))
		case wire.TypeString:
			err = w.WriteString(*(*string)(ptr))
		case wire.TypeBytes:
			err = w.WriteBytes(*(*[]byte)(ptr))
		case wire.TypeUUID:
			err = w.WriteUUID(*(*[16]byte)(ptr))
		case wire.TypeTimestamp:
			err = w.WriteTimestamp(*(*int64)(ptr))
		case wire.TypeDuration:
			err = w.WriteDuration(*(*int64)(ptr))
		default:
			err = errs.ErrInvalidType
		}
		if err != nil {
			return err
		}
	}

	return w.StructEnd()
}

// Decode reads a STRUCT value into record, zeroing record's StructSize
// bytes first. A type_id mismatch against the wire's struct header fails
// with errs.ErrTypeMismatch. Fields present on the wire but absent from
// this Schema are skipped via codec.Reader.Skip without error, preserving
// forward compatibility; fields known to this Schema whose wire type
// doesn't match the declared Field.Type fail with errs.ErrTypeMismatch.
// If a Field flagged Required never appears, Decode fails with
// errs.ErrMissingRequiredField naming it.
func (s *Schema) Decode(r *codec.Reader, record unsafe.Pointer) error {
	typeID, err := r.StructBegin()
	if err != nil {
		return err
	}
	if typeID != s.TypeID {
		return errs.ErrTypeMismatch
	}

	zero := unsafe.Slice((*byte)(record), int(s.StructSize))
	for i := range zero {
		zero[i] = 0
	}

	seen := make(map[uint16]bool, len(s.Fields))

	for {
		fieldID, fieldType, err := r.ReadField()
		if errors.Is(err, errs.ErrNotFound) {
			break
		}
		if err != nil {
			return err
		}

		f, ok := s.fieldByID(fieldID)
		if !ok {
			if err := r.Skip(); err != nil {
				return err
			}
			continue
		}
		if f.Type != fieldType {
			return errs.ErrTypeMismatch
		}

		seen[fieldID] = true
		ptr := fieldPtr(record, f)

		switch f.Type {
		case wire.TypeBool:
			*(*bool)(ptr), err = r.ReadBool()
		case wire.TypeU8:
			*(*uint8)(ptr), err = r.ReadU8()
		case wire.TypeI8:
			*(*int8)(ptr), err = r.ReadI8()
		case wire.TypeU16:
			*(*uint16)(ptr), err = r.ReadU16()
		case wire.TypeI16:
			*(*int16)(ptr), err = r.ReadI16()
		case wire.TypeU32:
			*(*uint32)(ptr), err = r.ReadU32()
		case wire.TypeI32:
			*(*int32)(ptr), err = r.ReadI32()
		case wire.TypeU64:
			*(*uint64)(ptr), err = r.ReadU64()
		case wire.TypeI64:
			*(*int64)(ptr), err = r.ReadI64()
		case wire.TypeF32:
			*(*float32)(ptr), err = r.ReadF32()
		case wire.TypeF64:
			*(*float64)(ptr), err = r.ReadF64()
		case wire.TypeVarint:
			*(*uint64)(ptr), err = r.ReadVarint()
		case wire.TypeString:
			*(*string)(ptr), err = r.ReadString()
		case wire.TypeBytes:
			var b []byte
			b, err = r.ReadBytes()
			*(*[]byte)(ptr) = append([]byte(nil), b...)
		case wire.TypeUUID:
			*(*[16]byte)(ptr), err = r.ReadUUID()
		case wire.TypeTimestamp:
			*(*int64)(ptr), err = r.ReadTimestamp()
		case wire.TypeDuration:
			*(*int64)(ptr), err = r.ReadDuration()
		default:
			err = errs.ErrInvalidType
		}
		if err != nil {
			return err
		}
	}

	if err := r.StructEnd(); err != nil {
		return err
	}

	for _, f := range s.Fields {
		if f.IsRequired() && !seen[f.FieldID] {
			return fmt.Errorf("%w: %s", errs.ErrMissingRequiredField, f.Name)
		}
	}

	return nil
}
