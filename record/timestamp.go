package record

// Timestamp is a (seconds, nanoseconds) pair with lexicographic ordering,
// the in-memory form both on-disk timestamp encodings decode into.
type Timestamp struct {
	Sec  int64
	Nsec int32
}

// Compare returns -1, 0, or 1 as t is before, equal to, or after other,
// comparing seconds first and nanoseconds as a tiebreaker.
func (t Timestamp) Compare(other Timestamp) int {
	switch {
	case t.Sec < other.Sec:
		return -1
	case t.Sec > other.Sec:
		return 1
	case t.Nsec < other.Nsec:
		return -1
	case t.Nsec > other.Nsec:
		return 1
	default:
		return 0
	}
}

// Before reports whether t sorts strictly before other.
func (t Timestamp) Before(other Timestamp) bool { return t.Compare(other) < 0 }

// After reports whether t sorts strictly after other.
func (t Timestamp) After(other Timestamp) bool { return t.Compare(other) > 0 }

// Equal reports whether t and other compare equal.
func (t Timestamp) Equal(other Timestamp) bool { return t.Compare(other) == 0 }

const legacyTimestampSize = 8 // sec32 + usec32
const currentTimestampSize = 12 // sec64 (as two u32 halves) + nsec32

// decodeLegacyTimestamp reads the (sec:i32, usec:i32) encoding and expands
// usec into nanoseconds, per the "nsec = usec * 1000" rule.
func decodeLegacyTimestamp(data []byte) Timestamp {
	sec := int32(engine.Uint32(data[0:4]))
	usec := int32(engine.Uint32(data[4:8]))

	return Timestamp{Sec: int64(sec), Nsec: usec * 1000}
}

// encodeLegacyTimestamp writes t using the legacy encoding. Sub-microsecond
// nanosecond precision is truncated, matching the inverse of usec*1000.
func encodeLegacyTimestamp(dst []byte, t Timestamp) {
	engine.PutUint32(dst[0:4], uint32(int32(t.Sec)))
	engine.PutUint32(dst[4:8], uint32(t.Nsec/1000))
}

// decodeCurrentTimestamp reads the (sec:i64 as two big-endian u32 halves,
// nsec:i32) encoding.
func decodeCurrentTimestamp(data []byte) Timestamp {
	hi := uint64(engine.Uint32(data[0:4]))
	lo := uint64(engine.Uint32(data[4:8]))
	sec := int64(hi<<32 | lo)
	nsec := int32(engine.Uint32(data[8:12]))

	return Timestamp{Sec: sec, Nsec: nsec}
}

// encodeCurrentTimestamp writes t using the current encoding.
func encodeCurrentTimestamp(dst []byte, t Timestamp) {
	u := uint64(t.Sec)
	engine.PutUint32(dst[0:4], uint32(u>>32))
	engine.PutUint32(dst[4:8], uint32(u))
	engine.PutUint32(dst[8:12], uint32(t.Nsec))
}
