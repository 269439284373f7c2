package errs

import (
	"errors"
	"fmt"
	"io"
)

// ErrDuplicateIndom is returned, together with the DuplicateSnapshot
// outcome, when an instance-domain record is semantically identical to a
// snapshot already indexed at the same timestamp. It is informational: the
// caller keeps ownership of the buffers it passed in and is expected to
// discard them, not treat the condition as fatal. Use errors.Is to detect
// it.
var ErrDuplicateIndom = errors.New("duplicate instance domain record elided")

// ErrEmptyArchive is returned by a load that completed without indexing
// any descriptor record; other record kinds may still have been indexed.
var ErrEmptyArchive = errors.New("archive contains no descriptor records")

// ErrStreamExhausted is returned by the record reader when the underlying
// stream ends exactly on a record boundary, signaling a clean end of
// metadata rather than truncation. It wraps io.EOF so callers that only
// know about io.EOF (errors.Is(err, io.EOF)) keep working unchanged.
var ErrStreamExhausted = fmt.Errorf("metadata stream exhausted: %w", io.EOF)
