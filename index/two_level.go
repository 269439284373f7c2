// Package index implements the in-memory lookup structures the loader
// populates while consuming a metadata stream: the descriptor index, the
// instance-domain index, and the two-level (type, identifier) index shared
// by the label and help-text indexes.
package index

import "github.com/pmarchive/archmeta/internal/hash"

// twoLevelEntry pairs a (type, identifier) key with its stored value and
// the next entry sharing the same hash bucket, so the index can resolve
// xxhash collisions between distinct keys with an exact-match scan.
type twoLevelEntry[V any] struct {
	typ   uint32
	ident uint32
	value V
	next  *twoLevelEntry[V]
}

// TwoLevel is a (type, identifier) -> V map backed by a flat hash table
// keyed on hash.TwoLevelKey, used for both the label index (V is a label
// chain head) and the help-text index (V is the help-text string) per the
// observation that both are "keyed by (type, identifier) with type-specific
// masking" and need nothing else from their container.
type TwoLevel[V any] struct {
	buckets map[uint64]*twoLevelEntry[V]
	count   int
}

// NewTwoLevel creates an empty two-level index.
func NewTwoLevel[V any]() *TwoLevel[V] {
	return &TwoLevel[V]{buckets: make(map[uint64]*twoLevelEntry[V])}
}

// Get returns the value stored for (typ, ident), or the zero value and
// false if absent.
func (idx *TwoLevel[V]) Get(typ, ident uint32) (V, bool) {
	for e := idx.buckets[hash.TwoLevelKey(typ, ident)]; e != nil; e = e.next {
		if e.typ == typ && e.ident == ident {
			return e.value, true
		}
	}

	var zero V

	return zero, false
}

// Set stores value for (typ, ident), overwriting any existing entry.
func (idx *TwoLevel[V]) Set(typ, ident uint32, value V) {
	key := hash.TwoLevelKey(typ, ident)

	for e := idx.buckets[key]; e != nil; e = e.next {
		if e.typ == typ && e.ident == ident {
			e.value = value
			return
		}
	}

	idx.buckets[key] = &twoLevelEntry[V]{typ: typ, ident: ident, value: value, next: idx.buckets[key]}
	idx.count++
}

// Delete removes the entry for (typ, ident), if any.
func (idx *TwoLevel[V]) Delete(typ, ident uint32) {
	key := hash.TwoLevelKey(typ, ident)

	var prev *twoLevelEntry[V]
	for e := idx.buckets[key]; e != nil; e = e.next {
		if e.typ == typ && e.ident == ident {
			if prev == nil {
				idx.buckets[key] = e.next
			} else {
				prev.next = e.next
			}

			idx.count--

			return
		}

		prev = e
	}
}

// Update looks up (typ, ident), invokes fn with the current value (the
// zero value and false if absent), and stores whatever fn returns.
func (idx *TwoLevel[V]) Update(typ, ident uint32, fn func(current V, ok bool) V) {
	current, ok := idx.Get(typ, ident)
	idx.Set(typ, ident, fn(current, ok))
}

// Count returns the number of distinct (type, identifier) keys stored.
func (idx *TwoLevel[V]) Count() int {
	return idx.count
}

// Range calls fn for every (type, identifier, value) triple. Iteration
// order is unspecified.
func (idx *TwoLevel[V]) Range(fn func(typ, ident uint32, value V)) {
	for _, head := range idx.buckets {
		for e := head; e != nil; e = e.next {
			fn(e.typ, e.ident, e.value)
		}
	}
}
