package record

import (
	"github.com/pmarchive/archmeta/errs"
	"github.com/pmarchive/archmeta/format"
	"github.com/pmarchive/archmeta/internal/pool"
)

// InstanceSnapshot is the decoded form of an instance-domain record: the
// set of (instance-id, name) pairs valid as of Stamp. InstanceIDs and
// Names move in lockstep; index i of one corresponds to index i of the
// other both before and after normalization.
type InstanceSnapshot struct {
	Stamp      Timestamp
	IndomID    uint32
	InstanceIDs []uint32
	Names      []string
}

// DecodeIndom parses an instance-domain record payload. legacy selects the
// (sec32, usec32) timestamp encoding used by IndomV2 records; current
// records use the (sec64, nsec32) encoding.
func DecodeIndom(payload []byte, legacy bool) (InstanceSnapshot, error) {
	tsSize := currentTimestampSize
	if legacy {
		tsSize = legacyTimestampSize
	}

	if len(payload) < tsSize+8 {
		return InstanceSnapshot{}, errs.NewRecordCorruptError(0, uint32(format.Indom), "indom payload shorter than fixed fields")
	}

	var stamp Timestamp
	if legacy {
		stamp = decodeLegacyTimestamp(payload[0:tsSize])
	} else {
		stamp = decodeCurrentTimestamp(payload[0:tsSize])
	}

	offset := tsSize
	indomID := engine.Uint32(payload[offset : offset+4])
	offset += 4
	count := engine.Uint32(payload[offset : offset+4])
	offset += 4

	if offset+int(count)*4 > len(payload) {
		return InstanceSnapshot{}, errs.NewRecordCorruptError(int64(offset), uint32(format.Indom), "instance-id array exceeds payload bounds")
	}

	ids := make([]uint32, count)
	for i := range ids {
		ids[i] = engine.Uint32(payload[offset : offset+4])
		offset += 4
	}

	names := make([]string, count)
	for i := range names {
		if offset+4 > len(payload) {
			return InstanceSnapshot{}, errs.NewRecordCorruptError(int64(offset), uint32(format.Indom), "name array exceeds payload bounds")
		}

		nameLen := int(engine.Uint32(payload[offset : offset+4]))
		offset += 4

		if nameLen < 0 || offset+nameLen > len(payload) {
			return InstanceSnapshot{}, errs.NewRecordCorruptError(int64(offset), uint32(format.Indom), "name length exceeds payload bounds")
		}

		names[i] = string(payload[offset : offset+nameLen])
		offset += nameLen
	}

	snap := InstanceSnapshot{Stamp: stamp, IndomID: indomID, InstanceIDs: ids, Names: names}
	normalizeInstances(snap.InstanceIDs, snap.Names)

	return snap, nil
}

// EncodeIndom serializes snap as an instance-domain record payload, using
// the current timestamp encoding; the legacy encoding is only ever decoded,
// never written (the format has no requirement to keep writing it).
func EncodeIndom(snap InstanceSnapshot) []byte {
	buf := pool.GetRecordBuffer()
	defer pool.PutRecordBuffer(buf)

	fixed := make([]byte, currentTimestampSize+8)
	encodeCurrentTimestamp(fixed[0:currentTimestampSize], snap.Stamp)
	offset := currentTimestampSize
	engine.PutUint32(fixed[offset:offset+4], snap.IndomID)
	offset += 4
	engine.PutUint32(fixed[offset:offset+4], uint32(len(snap.InstanceIDs)))
	buf.MustWrite(fixed)

	idBuf := make([]byte, 4)
	for _, id := range snap.InstanceIDs {
		engine.PutUint32(idBuf, id)
		buf.MustWrite(idBuf)
	}

	lenBuf := make([]byte, 4)
	for _, name := range snap.Names {
		engine.PutUint32(lenBuf, uint32(len(name)))
		buf.MustWrite(lenBuf)
		buf.MustWrite([]byte(name))
	}

	out := make([]byte, buf.Len())
	copy(out, buf.Bytes())

	return out
}

// NormalizeInstances sorts ids and names in lockstep by ascending
// instance-id. It is exported so a caller inserting a hand-built snapshot
// (rather than one produced by DecodeIndom, which normalizes already) can
// apply the same normalization before handing the arrays to the
// instance-domain index.
func NormalizeInstances(ids []uint32, names []string) {
	normalizeInstances(ids, names)
}

// normalizeInstances sorts ids and names in lockstep by ascending
// instance-id using insertion sort: input is frequently already sorted or
// nearly so, and the two arrays must move together, which a stable
// insertion sort does in place without an auxiliary index array.
func normalizeInstances(ids []uint32, names []string) {
	for i := 1; i < len(ids); i++ {
		id, name := ids[i], names[i]

		j := i - 1
		for j >= 0 && ids[j] > id {
			ids[j+1] = ids[j]
			names[j+1] = names[j]
			j--
		}

		ids[j+1] = id
		names[j+1] = name
	}
}

// SemanticallyEqual reports whether snap and other hold the same instance
// count and the same (id, name) pair at every index, the equality check
// the instance-domain index uses to detect and elide duplicate snapshots
// within an equal-timestamp run. Both snapshots are assumed already
// normalized.
func (snap InstanceSnapshot) SemanticallyEqual(other InstanceSnapshot) bool {
	if len(snap.InstanceIDs) != len(other.InstanceIDs) {
		return false
	}

	for i := range snap.InstanceIDs {
		if snap.InstanceIDs[i] != other.InstanceIDs[i] || snap.Names[i] != other.Names[i] {
			return false
		}
	}

	return true
}
