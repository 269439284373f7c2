package index

import (
	"github.com/pmarchive/archmeta/errs"
	"github.com/pmarchive/archmeta/record"
)

// DescriptorIndex maps metric-id to its descriptor and detects conflicting
// redefinitions: a second insert for the same metric-id must match the
// first in type, semantic, owning indom, and units, or the insert fails
// with a specific conflict error.
type DescriptorIndex struct {
	byMetricID map[uint32]record.Descriptor
}

// NewDescriptorIndex creates an empty descriptor index.
func NewDescriptorIndex() *DescriptorIndex {
	return &DescriptorIndex{byMetricID: make(map[uint32]record.Descriptor)}
}

// Insert stores d if no descriptor is indexed under d.MetricID yet.
// Otherwise it compares the existing descriptor field by field and returns
// the first mismatch as a typed conflict error; an insert that matches the
// existing descriptor in every field succeeds without changing anything
// (see invariant 6: descriptor conflict monotonicity).
func (idx *DescriptorIndex) Insert(d record.Descriptor) error {
	existing, ok := idx.byMetricID[d.MetricID]
	if !ok {
		idx.byMetricID[d.MetricID] = d
		return nil
	}

	switch {
	case existing.Type != d.Type:
		return errs.NewConflictTypeError(d.MetricID, existing.Type, d.Type)
	case existing.Sem != d.Sem:
		return errs.NewConflictSemError(d.MetricID, existing.Sem, d.Sem)
	case existing.IndomID != d.IndomID:
		return errs.NewConflictIndomError(d.MetricID, existing.IndomID, d.IndomID)
	case !existing.Unit.Equal(d.Unit):
		return errs.NewConflictUnitsError(d.MetricID, existing.Unit, d.Unit)
	}

	return nil
}

// Lookup returns the descriptor indexed under metricID.
func (idx *DescriptorIndex) Lookup(metricID uint32) (record.Descriptor, error) {
	d, ok := idx.byMetricID[metricID]
	if !ok {
		return record.Descriptor{}, errs.NewNoDescriptorError(metricID)
	}

	return d, nil
}

// Count returns the number of distinct metric-ids indexed.
func (idx *DescriptorIndex) Count() int {
	return len(idx.byMetricID)
}
