package errs

// Code is a stable, machine-readable category for an error, independent of
// the human-readable message. Callers can switch on Code without parsing
// error text.
type Code string

// Framing codes cover failures in the length-framed record protocol: reading
// the fixed-size header, trailer, or payload of a single record.
const (
	CodeIOReadFailed      Code = "IO_READ_FAILED"
	CodeIOWriteFailed     Code = "IO_WRITE_FAILED"
	CodeFramingShortRead  Code = "FRAMING_SHORT_READ"
	CodeFramingBadTrailer Code = "FRAMING_BAD_TRAILER"
	CodeFramingBadLength  Code = "FRAMING_BAD_LENGTH"
	CodeRecordCorrupt     Code = "RECORD_CORRUPT"
)

// Conflict codes cover descriptor records that disagree with a previously
// indexed descriptor for the same metric-id, one code per differing field.
const (
	CodeConflictType  Code = "CONFLICT_TYPE"
	CodeConflictSem   Code = "CONFLICT_SEM"
	CodeConflictIndom Code = "CONFLICT_INDOM"
	CodeConflictUnits Code = "CONFLICT_UNITS"
)

// Lookup codes cover queries against the in-memory indexes for a key that
// was never indexed.
const (
	CodeNoDescriptor Code = "NO_DESCRIPTOR"
	CodeNoIndom      Code = "NO_INDOM"
	CodeNoInstance   Code = "NO_INSTANCE"
	CodeNoLabels     Code = "NO_LABELS"
	CodeNoText       Code = "NO_TEXT"
)

// CodeDuplicateIndom and CodeEmptyArchive are informational rather than
// fatal; see ErrDuplicateIndom and ErrEmptyArchive.
const (
	CodeDuplicateIndom Code = "DUPLICATE_INDOM"
	CodeEmptyArchive   Code = "EMPTY_ARCHIVE"
)
