// Package namespace provides a minimal stand-in for the external metric
// namespace tree that the metadata loader registers descriptor names into.
//
// The namespace tree itself is an external collaborator: its internal
// layout (tries, PMNS trees, on-disk persistence) is not specified here.
// What this package models is the narrow contract the loader depends on:
// registering a (name, metric-id) pair and being told whether the name was
// already bound to a different metric-id, so the loader can tolerate that
// condition rather than treat it as fatal.
package namespace

// Registry tracks metric names observed while loading descriptor records
// and detects the case where the same name is registered against two
// different metric IDs, which is common when concatenating archives whose
// namespace trees diverged.
type Registry struct {
	metricIDs   map[string]uint32 // name -> first-seen metric-id
	names       map[uint32][]string
	hasConflict bool
}

// NewRegistry creates an empty name registry.
func NewRegistry() *Registry {
	return &Registry{
		metricIDs: make(map[string]uint32),
		names:     make(map[uint32][]string),
	}
}

// Register binds name to metricID. It returns true if name was already
// bound to a different metric-id; the caller (the loader) ignores the
// result and continues, per the "duplicate names with differing
// metric-ids are reported by the namespace and silently tolerated by the
// loader" contract.
func (r *Registry) Register(name string, metricID uint32) (conflict bool) {
	if existing, ok := r.metricIDs[name]; ok {
		if existing != metricID {
			r.hasConflict = true
			return true
		}

		return false
	}

	r.metricIDs[name] = metricID
	r.names[metricID] = append(r.names[metricID], name)

	return false
}

// HasConflict returns true if any name was ever registered against two
// different metric IDs.
func (r *Registry) HasConflict() bool {
	return r.hasConflict
}

// NamesFor returns the names registered for metricID, in registration
// order.
func (r *Registry) NamesFor(metricID uint32) []string {
	return r.names[metricID]
}

// Count returns the number of distinct names registered.
func (r *Registry) Count() int {
	return len(r.metricIDs)
}
