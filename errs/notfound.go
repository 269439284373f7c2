package errs

import "fmt"

// NotFoundError reports a query against one of the in-memory indexes for a
// key that was never indexed (or was indexed and then superseded by a
// duplicate-elision pass).
type NotFoundError struct {
	*baseError
	Key any
}

func newNotFoundError(code Code, kind string, key any) *NotFoundError {
	return &NotFoundError{
		baseError: newBaseError(nil, code, fmt.Sprintf("%s not found: %v", kind, key)).
			WithDetail("key", key),
		Key: key,
	}
}

// NewNoDescriptorError reports a lookup_descriptor call for an unknown
// metric-id.
func NewNoDescriptorError(metricID uint32) *NotFoundError {
	return newNotFoundError(CodeNoDescriptor, "descriptor", metricID)
}

// NewNoIndomError reports a lookup for an unknown instance-domain id.
func NewNoIndomError(indomID uint32) *NotFoundError {
	return newNotFoundError(CodeNoIndom, "instance domain", indomID)
}

// NewNoInstanceError reports a lookup_instance_id/lookup_instance_name call
// for an instance that does not exist in the named domain.
func NewNoInstanceError(indomID uint32, instance any) *NotFoundError {
	e := newNotFoundError(CodeNoInstance, "instance", instance)
	e.WithDetail("indomID", indomID)

	return e
}

// NewNoLabelsError reports a lookup_label call for a (type, identifier)
// pair with no indexed label set.
func NewNoLabelsError(typ, identifier uint32) *NotFoundError {
	e := newNotFoundError(CodeNoLabels, "label set", identifier)
	e.WithDetail("type", typ)

	return e
}

// NewNoTextError reports a lookup_text call for a (type, identifier) pair
// with no indexed help text.
func NewNoTextError(typ, identifier uint32) *NotFoundError {
	e := newNotFoundError(CodeNoText, "help text", identifier)
	e.WithDetail("type", typ)

	return e
}
