package record

import (
	"bytes"

	"github.com/pmarchive/archmeta/errs"
	"github.com/pmarchive/archmeta/format"
)

// TextEntry is the decoded form of a help-text record.
type TextEntry struct {
	Type       uint32
	Identifier uint32
	Text       string
}

// DecodeText parses a Text record payload. The caller is responsible for
// checking Valid() before indexing the result; an invalid combination of
// type bits is a skip-and-log condition, not a decode failure.
func DecodeText(payload []byte) (TextEntry, error) {
	if len(payload) < 9 {
		return TextEntry{}, errs.NewRecordCorruptError(0, uint32(format.TextRecord), "text payload shorter than fixed fields")
	}

	typ := engine.Uint32(payload[0:4])
	ident := engine.Uint32(payload[4:8])

	body := payload[8:]

	nul := bytes.IndexByte(body, 0)
	if nul < 0 {
		return TextEntry{}, errs.NewRecordCorruptError(8, uint32(format.TextRecord), "text body is not NUL-terminated")
	}

	return TextEntry{Type: typ, Identifier: ident, Text: string(body[:nul])}, nil
}

// EncodeText serializes e as a Text record payload with a NUL-terminated
// body.
func EncodeText(e TextEntry) []byte {
	out := make([]byte, 8+len(e.Text)+1)
	engine.PutUint32(out[0:4], e.Type)
	engine.PutUint32(out[4:8], e.Identifier)
	copy(out[8:], e.Text)
	out[len(out)-1] = 0

	return out
}

// Valid reports whether e's type carries exactly one of {Oneline, Help}
// and exactly one of {PMIDQualified, IndomQualified}, the combination a
// text record must satisfy to be indexed rather than skipped.
func (e TextEntry) Valid() bool {
	lineBits := e.Type & (format.TextOneline | format.TextHelp)
	qualBits := e.Type & (format.TextPMIDQualified | format.TextIndomQualified)

	return onesCount(lineBits) == 1 && onesCount(qualBits) == 1
}

func onesCount(v uint32) int {
	count := 0
	for v != 0 {
		count += int(v & 1)
		v >>= 1
	}

	return count
}

// IndexKey returns the (type, identifier) the help-text index keys e
// under, with the Direct bit stripped from the type.
func (e TextEntry) IndexKey() (typ, identifier uint32) {
	return e.Type &^ format.TextDirectMask, e.Identifier
}
