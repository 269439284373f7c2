// Package errs models the failure modes of parsing, indexing, and querying
// an archive metadata stream as a small error hierarchy instead of bare
// string errors.
//
// A shared baseError carries a stable Code plus an optional details map;
// FramingError, RecordError, ConflictError, and NotFoundError embed it and
// add the fields relevant to their failure mode (byte offset, conflicting
// field, queried key). Two conditions that are informational rather than
// fatal — eliding a duplicate instance-domain record, and an archive with no
// descriptor records — are modeled as sentinel errors (ErrDuplicateIndom,
// ErrEmptyArchive) usable with errors.Is, never as panics.
package errs

import "errors"

// IsFramingError reports whether err is or wraps a *FramingError.
func IsFramingError(err error) bool {
	var fe *FramingError
	return errors.As(err, &fe)
}

// AsFramingError extracts a *FramingError from err's chain.
func AsFramingError(err error) (*FramingError, bool) {
	var fe *FramingError
	if errors.As(err, &fe) {
		return fe, true
	}

	return nil, false
}

// IsRecordError reports whether err is or wraps a *RecordError.
func IsRecordError(err error) bool {
	var re *RecordError
	return errors.As(err, &re)
}

// AsRecordError extracts a *RecordError from err's chain.
func AsRecordError(err error) (*RecordError, bool) {
	var re *RecordError
	if errors.As(err, &re) {
		return re, true
	}

	return nil, false
}

// IsConflictError reports whether err is or wraps a *ConflictError.
func IsConflictError(err error) bool {
	var ce *ConflictError
	return errors.As(err, &ce)
}

// AsConflictError extracts a *ConflictError from err's chain.
func AsConflictError(err error) (*ConflictError, bool) {
	var ce *ConflictError
	if errors.As(err, &ce) {
		return ce, true
	}

	return nil, false
}

// IsNotFoundError reports whether err is or wraps a *NotFoundError.
func IsNotFoundError(err error) bool {
	var ne *NotFoundError
	return errors.As(err, &ne)
}

// AsNotFoundError extracts a *NotFoundError from err's chain.
func AsNotFoundError(err error) (*NotFoundError, bool) {
	var ne *NotFoundError
	if errors.As(err, &ne) {
		return ne, true
	}

	return nil, false
}

// codedError is implemented by every error type in this package.
type codedError interface {
	error
	Code() Code
	Details() map[string]any
}

// GetErrorCode extracts the Code from err if it (or something in its
// chain) implements codedError, or "" otherwise.
func GetErrorCode(err error) Code {
	var ce codedError
	if errors.As(err, &ce) {
		return ce.Code()
	}

	return ""
}

// GetErrorDetails extracts the structured detail map from err if it (or
// something in its chain) implements codedError, or an empty map otherwise.
func GetErrorDetails(err error) map[string]any {
	var ce codedError
	if errors.As(err, &ce) {
		if details := ce.Details(); details != nil {
			return details
		}
	}

	return make(map[string]any)
}
