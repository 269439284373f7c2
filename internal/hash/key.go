package hash

import "github.com/cespare/xxhash/v2"

// TwoLevelKey computes a single 64-bit hash for a (type, identifier) pair so
// that a two-level type→identifier index can be backed by one flat map
// instead of a map of maps. The two 32-bit fields are packed into an 8-byte
// buffer and hashed with xxHash64, which keeps the composite key collision
// behavior identical to hashing either field alone.
func TwoLevelKey(typ, ident uint32) uint64 {
	var buf [8]byte
	buf[0] = byte(typ >> 24)
	buf[1] = byte(typ >> 16)
	buf[2] = byte(typ >> 8)
	buf[3] = byte(typ)
	buf[4] = byte(ident >> 24)
	buf[5] = byte(ident >> 16)
	buf[6] = byte(ident >> 8)
	buf[7] = byte(ident)

	return xxhash.Sum64(buf[:])
}
