package errs

import "fmt"

// FramingError reports a failure to parse the length header, type tag, or
// trailing length of a single record in the archive stream. Offset is the
// byte position (relative to the start of the stream) where the record
// began.
type FramingError struct {
	*baseError
	Offset      int64
	ExpectedLen uint32
	ActualLen   uint32
}

func newFramingError(cause error, code Code, offset int64, message string) *FramingError {
	return &FramingError{
		baseError: newBaseError(cause, code, message),
		Offset:    offset,
	}
}

// WithLengths records the header-declared length against the length
// actually observed (the trailer, or the bytes available before EOF).
func (e *FramingError) WithLengths(expected, actual uint32) *FramingError {
	e.ExpectedLen = expected
	e.ActualLen = actual
	e.WithDetail("expectedLen", expected).WithDetail("actualLen", actual)

	return e
}

// NewShortReadError reports that fewer bytes were available than the
// record's declared length promised.
func NewShortReadError(cause error, offset int64) *FramingError {
	e := newFramingError(cause, CodeFramingShortRead, offset,
		fmt.Sprintf("short read decoding record at offset %d", offset))
	e.WithDetail("offset", offset)

	return e
}

// NewBadTrailerError reports that a record's trailing length word did not
// match its leading length word.
func NewBadTrailerError(offset int64, leading, trailing uint32) *FramingError {
	return newFramingError(nil, CodeFramingBadTrailer, offset,
		fmt.Sprintf("record at offset %d: trailing length %d does not match leading length %d", offset, trailing, leading)).
		WithLengths(leading, trailing)
}

// NewBadLengthError reports a header length that is out of the bounds the
// codec accepts (zero, negative once signed, or implausibly large).
func NewBadLengthError(offset int64, length uint32) *FramingError {
	e := newFramingError(nil, CodeFramingBadLength, offset,
		fmt.Sprintf("record at offset %d: implausible length %d", offset, length))
	e.WithDetail("length", length)

	return e
}
