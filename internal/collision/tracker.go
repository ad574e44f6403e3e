// Package collision tracks stable-id assignments (schema field_ids, schema
// registry type_ids) and reports the first attempt to reuse an id already
// claimed, whether by the same name or a different one.
package collision

// Tracker maps stable ids to the name that claimed them, preserving
// registration order so callers can reproduce deterministic error messages
// and iterate fields/types in declaration order.
type Tracker struct {
	names   map[uint64]string // id -> name that first claimed it
	ordered []string          // names in Track() call order
	dupErr  error             // returned when an id is already claimed
}

// NewTracker creates a Tracker that reports dupErr when Track observes an id
// already claimed by a different registration. Schema callers pass
// errs.ErrDuplicateFieldID; registry callers pass errs.ErrDuplicateTypeID.
func NewTracker(dupErr error) *Tracker {
	return &Tracker{
		names:  make(map[uint64]string),
		dupErr: dupErr,
	}
}

// Track registers name under id. name is for diagnostics only - callers may
// leave it empty, since schema field_ids and registry type_ids are the
// actual wire identity. Track returns an error if id was already claimed by
// a prior Track call (whether by the same name or a different one) - unlike
// a best-effort metric-name hash this package has no permissive fallback
// for a collision.
func (t *Tracker) Track(name string, id uint64) error {
	if _, exists := t.names[id]; exists {
		return t.dupErr
	}

	t.names[id] = name
	t.ordered = append(t.ordered, name)

	return nil
}

// Names returns the tracked names in registration order.
func (t *Tracker) Names() []string {
	return t.ordered
}

// Count returns the number of tracked ids.
func (t *Tracker) Count() int {
	return len(t.ordered)
}

// Reset clears all tracked ids, preserving allocated capacity for reuse.
func (t *Tracker) Reset() {
	for k := range t.names {
		delete(t.names, k)
	}
	t.ordered = t.ordered[:0]
}
