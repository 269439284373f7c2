package record

import (
	"github.com/pmarchive/archmeta/errs"
	"github.com/pmarchive/archmeta/format"
	"github.com/pmarchive/archmeta/internal/pool"
)

// descFixedSize is the byte size of the fixed portion of a descriptor
// record: metric-id, value type, semantics, owning indom-id, and the
// packed unit, each a 4-byte field.
const descFixedSize = 20

// Descriptor is the decoded form of a metric descriptor record: the
// schema of one metric, plus the names it was registered under.
type Descriptor struct {
	MetricID uint32
	Type     format.ValueType
	Sem      format.Semantics
	IndomID  uint32
	Unit     format.Unit
	Names    []string
}

// DecodeDescriptor parses a Desc record payload.
func DecodeDescriptor(payload []byte) (Descriptor, error) {
	if len(payload) < descFixedSize+4 {
		return Descriptor{}, errs.NewRecordCorruptError(0, uint32(format.Desc), "descriptor payload shorter than fixed fields")
	}

	d := Descriptor{
		MetricID: engine.Uint32(payload[0:4]),
		Type:     format.ValueType(int32(engine.Uint32(payload[4:8]))),
		Sem:      format.Semantics(int32(engine.Uint32(payload[8:12]))),
		IndomID:  engine.Uint32(payload[12:16]),
		Unit:     format.UnpackUnit(engine.Uint32(payload[16:20])),
	}

	count := engine.Uint32(payload[20:24])
	offset := 24

	names := make([]string, 0, count)
	for i := uint32(0); i < count; i++ {
		if offset+4 > len(payload) {
			return Descriptor{}, errs.NewRecordCorruptError(int64(offset), uint32(format.Desc), "name count exceeds payload bounds")
		}

		nameLen := int(engine.Uint32(payload[offset : offset+4]))
		offset += 4

		if nameLen < 0 || offset+nameLen > len(payload) {
			return Descriptor{}, errs.NewRecordCorruptError(int64(offset), uint32(format.Desc), "name length exceeds payload bounds")
		}

		names = append(names, string(payload[offset:offset+nameLen]))
		offset += nameLen
	}

	d.Names = names

	return d, nil
}

// EncodeDescriptor serializes d into a Desc record payload. Names are
// written length-prefixed and are not NUL-terminated, matching the decoder.
func EncodeDescriptor(d Descriptor) []byte {
	buf := pool.GetRecordBuffer()
	defer pool.PutRecordBuffer(buf)

	header := make([]byte, descFixedSize+4)
	engine.PutUint32(header[0:4], d.MetricID)
	engine.PutUint32(header[4:8], uint32(int32(d.Type)))
	engine.PutUint32(header[8:12], uint32(int32(d.Sem)))
	engine.PutUint32(header[12:16], d.IndomID)
	engine.PutUint32(header[16:20], d.Unit.Pack())
	engine.PutUint32(header[20:24], uint32(len(d.Names)))
	buf.MustWrite(header)

	for _, name := range d.Names {
		lenBuf := make([]byte, 4)
		engine.PutUint32(lenBuf, uint32(len(name)))
		buf.MustWrite(lenBuf)
		buf.MustWrite([]byte(name))
	}

	out := make([]byte, buf.Len())
	copy(out, buf.Bytes())

	return out
}

// Equal reports whether d and other describe the same metric, comparing
// only the fields a conflicting redefinition check cares about (not the
// associated names, which may legitimately differ between records for the
// same metric-id).
func (d Descriptor) Equal(other Descriptor) bool {
	return d.Type == other.Type && d.Sem == other.Sem && d.IndomID == other.IndomID && d.Unit.Equal(other.Unit)
}
