package errs

import "fmt"

// ConflictError reports that an incoming record disagrees with a record
// already indexed under the same identifier: a descriptor that restates an
// already-known metric-id with a different type, semantics, indom or units.
type ConflictError struct {
	*baseError
	MetricID uint32
	Field    string
	Old      any
	New      any
}

func newConflictError(code Code, metricID uint32, field string, oldVal, newVal any) *ConflictError {
	msg := fmt.Sprintf("metric %d: conflicting %s (have %v, got %v)", metricID, field, oldVal, newVal)

	return &ConflictError{
		baseError: newBaseError(nil, code, msg).
			WithDetail("metricID", metricID).
			WithDetail("field", field).
			WithDetail("old", oldVal).
			WithDetail("new", newVal),
		MetricID: metricID,
		Field:    field,
		Old:      oldVal,
		New:      newVal,
	}
}

// NewConflictTypeError reports two descriptors for the same metric-id that
// disagree on value type.
func NewConflictTypeError(metricID uint32, oldType, newType any) *ConflictError {
	return newConflictError(CodeConflictType, metricID, "type", oldType, newType)
}

// NewConflictSemError reports two descriptors for the same metric-id that
// disagree on semantics (counter, instantaneous, discrete).
func NewConflictSemError(metricID uint32, oldSem, newSem any) *ConflictError {
	return newConflictError(CodeConflictSem, metricID, "semantics", oldSem, newSem)
}

// NewConflictIndomError reports two descriptors for the same metric-id that
// disagree on which instance domain they belong to.
func NewConflictIndomError(metricID uint32, oldIndom, newIndom any) *ConflictError {
	return newConflictError(CodeConflictIndom, metricID, "indom", oldIndom, newIndom)
}

// NewConflictUnitsError reports two descriptors for the same metric-id that
// disagree on unit encoding.
func NewConflictUnitsError(metricID uint32, oldUnits, newUnits any) *ConflictError {
	return newConflictError(CodeConflictUnits, metricID, "units", oldUnits, newUnits)
}
