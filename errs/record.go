package errs

import "fmt"

// RecordError reports a record whose length framing was sound but whose
// payload could not be decoded as its declared type — a string field whose
// declared length runs past the record boundary, a bit-packed field with a
// reserved value set, and similar payload-level corruption.
type RecordError struct {
	*baseError
	Offset int64
	Type   uint32
}

// NewRecordCorruptError reports payload-level corruption in a record of the
// given type tag starting at offset.
func NewRecordCorruptError(offset int64, typ uint32, reason string) *RecordError {
	return &RecordError{
		baseError: newBaseError(nil, CodeRecordCorrupt,
			fmt.Sprintf("record at offset %d (type %d): %s", offset, typ, reason)).
			WithDetail("offset", offset).
			WithDetail("type", typ).
			WithDetail("reason", reason),
		Offset: offset,
		Type:   typ,
	}
}
