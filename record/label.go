package record

import (
	"github.com/pmarchive/archmeta/errs"
	"github.com/pmarchive/archmeta/format"
	"github.com/pmarchive/archmeta/internal/pool"
)

// DefaultMaxJSON and DefaultMaxLabels are the bounds constants applied when
// a loader is not configured with its own ceilings. They exist purely for
// corruption detection, not as a semantic limit on label content.
const (
	DefaultMaxJSON   = 64 * 1024
	DefaultMaxLabels = 256
)

// LabelTuple indexes one (name, value) pair into a label-set's raw JSON
// payload by byte offset and length, rather than holding copies.
type LabelTuple struct {
	NameOffset  uint32
	NameLength  uint32
	ValueOffset uint32
	ValueLength uint32
	Flags       uint32
}

// LabelSet is one instance's (or the whole context's, via format.NullID)
// label annotations at a point in time.
type LabelSet struct {
	Instance uint32
	JSON     []byte
	Tuples   []LabelTuple
}

// Name returns the raw name bytes of tuple t within set's JSON payload.
func (set LabelSet) Name(t LabelTuple) []byte {
	return set.JSON[t.NameOffset : t.NameOffset+t.NameLength]
}

// Value returns the raw value bytes of tuple t within set's JSON payload.
func (set LabelSet) Value(t LabelTuple) []byte {
	return set.JSON[t.ValueOffset : t.ValueOffset+t.ValueLength]
}

// LabelPayload is the decoded form of a label record: every label-set
// observed for (Type, Identifier) as of Stamp.
type LabelPayload struct {
	Stamp      Timestamp
	Type       uint32
	Identifier uint32
	Sets       []LabelSet
}

// DecodeLabelPayload parses a label record payload, enforcing maxJSON and
// maxLabels as corruption ceilings on each label-set's declared sizes.
func DecodeLabelPayload(payload []byte, legacy bool, maxJSON, maxLabels int) (LabelPayload, error) {
	tsSize := currentTimestampSize
	if legacy {
		tsSize = legacyTimestampSize
	}

	if len(payload) < tsSize+12 {
		return LabelPayload{}, errs.NewRecordCorruptError(0, uint32(format.Label), "label payload shorter than fixed fields")
	}

	var stamp Timestamp
	if legacy {
		stamp = decodeLegacyTimestamp(payload[0:tsSize])
	} else {
		stamp = decodeCurrentTimestamp(payload[0:tsSize])
	}

	offset := tsSize
	typ := engine.Uint32(payload[offset : offset+4])
	offset += 4
	ident := engine.Uint32(payload[offset : offset+4])
	offset += 4
	nsets := engine.Uint32(payload[offset : offset+4])
	offset += 4

	sets := make([]LabelSet, 0, nsets)
	for i := uint32(0); i < nsets; i++ {
		set, next, err := decodeLabelSet(payload, offset, maxJSON, maxLabels)
		if err != nil {
			return LabelPayload{}, err
		}

		sets = append(sets, set)
		offset = next
	}

	return LabelPayload{Stamp: stamp, Type: typ, Identifier: ident, Sets: sets}, nil
}

func decodeLabelSet(payload []byte, offset, maxJSON, maxLabels int) (LabelSet, int, error) {
	if offset+12 > len(payload) {
		return LabelSet{}, 0, errs.NewRecordCorruptError(int64(offset), uint32(format.Label), "label-set header exceeds payload bounds")
	}

	instance := engine.Uint32(payload[offset : offset+4])
	offset += 4
	jsonLen := int(engine.Uint32(payload[offset : offset+4]))
	offset += 4

	if jsonLen < 0 || jsonLen > maxJSON {
		return LabelSet{}, 0, errs.NewRecordCorruptError(int64(offset), uint32(format.Label), "json length exceeds configured ceiling")
	}

	if offset+jsonLen > len(payload) {
		return LabelSet{}, 0, errs.NewRecordCorruptError(int64(offset), uint32(format.Label), "json bytes exceed payload bounds")
	}

	jsonBytes := payload[offset : offset+jsonLen]
	offset += jsonLen

	if offset+4 > len(payload) {
		return LabelSet{}, 0, errs.NewRecordCorruptError(int64(offset), uint32(format.Label), "missing label count")
	}

	nlabels := int(engine.Uint32(payload[offset : offset+4]))
	offset += 4

	if nlabels < 0 || nlabels > maxLabels {
		return LabelSet{}, 0, errs.NewRecordCorruptError(int64(offset), uint32(format.Label), "label count exceeds configured ceiling")
	}

	const tupleSize = 20
	if offset+nlabels*tupleSize > len(payload) {
		return LabelSet{}, 0, errs.NewRecordCorruptError(int64(offset), uint32(format.Label), "label tuples exceed payload bounds")
	}

	tuples := make([]LabelTuple, nlabels)
	for i := range tuples {
		tuples[i] = LabelTuple{
			NameOffset:  engine.Uint32(payload[offset : offset+4]),
			NameLength:  engine.Uint32(payload[offset+4 : offset+8]),
			ValueOffset: engine.Uint32(payload[offset+8 : offset+12]),
			ValueLength: engine.Uint32(payload[offset+12 : offset+16]),
			Flags:       engine.Uint32(payload[offset+16 : offset+20]),
		}
		offset += tupleSize
	}

	out := make([]byte, len(jsonBytes))
	copy(out, jsonBytes)

	return LabelSet{Instance: instance, JSON: out, Tuples: tuples}, offset, nil
}

// EncodeLabelPayload serializes payload as a current-encoding label record
// payload.
func EncodeLabelPayload(payload LabelPayload) []byte {
	buf := pool.GetLabelPayloadBuffer()
	defer pool.PutLabelPayloadBuffer(buf)

	fixed := make([]byte, currentTimestampSize+12)
	encodeCurrentTimestamp(fixed[0:currentTimestampSize], payload.Stamp)
	offset := currentTimestampSize
	engine.PutUint32(fixed[offset:offset+4], payload.Type)
	offset += 4
	engine.PutUint32(fixed[offset:offset+4], payload.Identifier)
	offset += 4
	engine.PutUint32(fixed[offset:offset+4], uint32(len(payload.Sets)))
	buf.MustWrite(fixed)

	word := make([]byte, 4)
	for _, set := range payload.Sets {
		engine.PutUint32(word, set.Instance)
		buf.MustWrite(word)
		engine.PutUint32(word, uint32(len(set.JSON)))
		buf.MustWrite(word)
		buf.MustWrite(set.JSON)
		engine.PutUint32(word, uint32(len(set.Tuples)))
		buf.MustWrite(word)

		for _, t := range set.Tuples {
			tupleBuf := make([]byte, 20)
			engine.PutUint32(tupleBuf[0:4], t.NameOffset)
			engine.PutUint32(tupleBuf[4:8], t.NameLength)
			engine.PutUint32(tupleBuf[8:12], t.ValueOffset)
			engine.PutUint32(tupleBuf[12:16], t.ValueLength)
			engine.PutUint32(tupleBuf[16:20], t.Flags)
			buf.MustWrite(tupleBuf)
		}
	}

	out := make([]byte, buf.Len())
	copy(out, buf.Bytes())

	return out
}

// SemanticallyEqual reports whether set and other share the same instance
// and the same (name, value) pairs byte-for-byte, order-independent. A
// name match with differing value bytes or length aborts the comparison
// immediately rather than continuing to search for another match, mirroring
// the short-circuit order of the equality check this index's duplicate
// pruner relies on.
func (set LabelSet) SemanticallyEqual(other LabelSet) bool {
	if set.Instance != other.Instance || len(set.Tuples) != len(other.Tuples) {
		return false
	}

	for _, t := range set.Tuples {
		name := set.Name(t)

		matched := false
		for _, ot := range other.Tuples {
			otherName := other.Name(ot)
			if len(otherName) != len(name) || string(otherName) != string(name) {
				continue
			}

			value := set.Value(t)
			otherValue := other.Value(ot)
			if len(value) != len(otherValue) {
				return false
			}

			if string(value) != string(otherValue) {
				return false
			}

			matched = true

			break
		}

		if !matched {
			return false
		}
	}

	return true
}
