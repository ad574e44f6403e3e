package codec

import (
	"encoding/binary"
	"errors"

	"github.com/demodllc/dcfs/errs"
	"github.com/demodllc/dcfs/wire"
)

// skipFrame describes one container still being skipped: either a fixed
// number of remaining array/map element values (remaining, isStruct
// false), or a struct body that keeps reading field headers until the
// sentinel (isStruct true; remaining unused).
type skipFrame struct {
	remaining int
	isStruct  bool
}

// Skip advances the cursor past exactly one well-formed value, whatever
// its shape - a fixed primitive, a length-prefixed STRING/BYTES, or a
// nested ARRAY/MAP/STRUCT. It is how a schema decoder tolerates fields it
// doesn't recognize without breaking forward compatibility.
//
// Skip is implemented iteratively with an explicit stack rather than by
// recursing on ARRAY/MAP/STRUCT nesting, so a pathological but
// MaxDepth-bounded input cannot exhaust the host call stack.
func (r *Reader) Skip() error {
	var stack []skipFrame

	if err := r.skipOne(&stack); err != nil {
		return err
	}

	for len(stack) > 0 {
		top := &stack[len(stack)-1]

		if top.isStruct {
			_, _, err := r.ReadField()
			if errors.Is(err, errs.ErrNotFound) {
				stack = stack[:len(stack)-1]
				if err := r.exitContainer(); err != nil {
					return err
				}
				continue
			}
			if err != nil {
				return err
			}

			// field_type in the header is a declared hint; the value that
			// follows is independently tagged, so skip it by its own tag
			// exactly like an array/map element.
			if err := r.skipOne(&stack); err != nil {
				return err
			}
			continue
		}

		if top.remaining == 0 {
			stack = stack[:len(stack)-1]
			if err := r.exitContainer(); err != nil {
				return err
			}
			continue
		}

		top.remaining--
		if err := r.skipOne(&stack); err != nil {
			return err
		}
	}

	return nil
}

// skipOne reads the next tag and either consumes a fixed/variable-length
// body inline, or pushes a new frame onto stack for a container tag.
func (r *Reader) skipOne(stack *[]skipFrame) error {
	if r.AtEnd() {
		return errs.ErrTruncated
	}

	tag := wire.Type(r.buf[r.position])

	return r.skipValue(tag, stack)
}

// skipValue skips the value at the cursor, whose tag the caller has already
// peeked. The tag byte is still unread; skipValue consumes it with the body.
func (r *Reader) skipValue(tag wire.Type, stack *[]skipFrame) error {
	if tag.IsFixed() {
		_, err := r.need(1 + tag.Size())
		return err
	}

	switch tag {
	case wire.TypeVarint:
		if _, err := r.need(1); err != nil {
			return err
		}
		_, n, err := DecodeVarint(r.buf[r.position:r.payloadEnd])
		if err != nil {
			return err
		}
		r.position += n

		return nil

	case wire.TypeString, wire.TypeBytes:
		if _, err := r.need(1); err != nil {
			return err
		}
		lenB, err := r.need(4)
		if err != nil {
			return err
		}
		n := binary.BigEndian.Uint32(lenB)
		_, err = r.need(int(n))

		return err

	case wire.TypeArray:
		if _, err := r.need(1); err != nil {
			return err
		}
		if _, err := r.need(1); err != nil { // elem_type, informational only
			return err
		}
		cb, err := r.need(4)
		if err != nil {
			return err
		}
		count := binary.BigEndian.Uint32(cb)

		if err := r.enterContainer(); err != nil {
			return err
		}
		*stack = append(*stack, skipFrame{remaining: int(count)})

		return nil

	case wire.TypeMap:
		if _, err := r.need(1); err != nil {
			return err
		}
		if _, err := r.need(1); err != nil { // key_type
			return err
		}
		if _, err := r.need(1); err != nil { // val_type
			return err
		}
		cb, err := r.need(4)
		if err != nil {
			return err
		}
		count := binary.BigEndian.Uint32(cb)

		if err := r.enterContainer(); err != nil {
			return err
		}
		*stack = append(*stack, skipFrame{remaining: 2 * int(count)})

		return nil

	case wire.TypeStruct:
		if _, err := r.need(1); err != nil {
			return err
		}
		if _, err := r.need(2); err != nil { // type_id
			return err
		}

		if err := r.enterContainer(); err != nil {
			return err
		}
		*stack = append(*stack, skipFrame{isStruct: true})

		return nil

	default:
		return errs.ErrInvalidType
	}
}
