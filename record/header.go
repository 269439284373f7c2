package record

import (
	"github.com/pmarchive/archmeta/errs"
	"github.com/pmarchive/archmeta/format"
)

// HeaderSize is the fixed size, in bytes, of a record's leading header:
// a 4-byte length followed by a 4-byte type tag. The trailer that closes
// the record is a further 4 bytes holding the same length.
const HeaderSize = 8

// Header is the fixed-size prefix of every on-disk record: the total
// length of the record (the leading length field itself, the type tag,
// the payload, and the trailing length field, all summed) and the type tag
// selecting how the payload is decoded.
type Header struct {
	Length uint32
	Type   format.RecordType
}

// Parse decodes a Header from exactly HeaderSize bytes.
func (h *Header) Parse(data []byte) error {
	if len(data) != HeaderSize {
		return errs.NewRecordCorruptError(0, 0, "short record header")
	}

	h.Length = engine.Uint32(data[0:4])
	h.Type = format.RecordType(engine.Uint32(data[4:8]))

	return nil
}

// Bytes serializes h into a new HeaderSize-byte slice.
func (h Header) Bytes() []byte {
	b := make([]byte, HeaderSize)
	engine.PutUint32(b[0:4], h.Length)
	engine.PutUint32(b[4:8], uint32(h.Type))

	return b
}

// recordOverhead is the byte cost of the leading length field, the type
// tag, and the trailing length field — every byte of a record that is not
// payload.
const recordOverhead = 4 + 4 + 4

// PayloadLength returns the number of payload bytes implied by the
// header's declared total length.
func (h Header) PayloadLength() uint32 {
	if h.Length < recordOverhead {
		return 0
	}

	return h.Length - recordOverhead
}
