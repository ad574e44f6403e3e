package schema

import (
	"fmt"

	"github.com/demodllc/dcfs/errs"
	"github.com/demodllc/dcfs/internal/collision"
)

// Registry tracks a set of Schemas by TypeID so an application can look one
// up by the type_id it reads off a STRUCT header without hand-maintaining
// a switch statement. Register rejects a Schema whose TypeID collides with
// one already present, since a type_id must identify exactly one Schema.
type Registry struct {
	tracker *collision.Tracker
	byID    map[uint16]*Schema
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		tracker: collision.NewTracker(errs.ErrDuplicateTypeID),
		byID:    make(map[uint16]*Schema),
	}
}

// Register adds s to the registry, failing with errs.ErrDuplicateTypeID if
// s.TypeID is already registered under a different (or the same) name.
func (reg *Registry) Register(s *Schema) error {
	if err := reg.tracker.Track(s.Name, uint64(s.TypeID)); err != nil {
		return fmt.Errorf("%w: schema %q type_id %d", err, s.Name, s.TypeID)
	}

	reg.byID[s.TypeID] = s
	return nil
}

// Lookup returns the Schema registered under typeID, or nil and false if
// none is registered.
func (reg *Registry) Lookup(typeID uint16) (*Schema, bool) {
	s, ok := reg.byID[typeID]
	return s, ok
}

// Names returns the registered schema names in registration order.
func (reg *Registry) Names() []string {
	return reg.tracker.Names()
}

// Count returns the number of schemas registered.
func (reg *Registry) Count() int {
	return reg.tracker.Count()
}
