package index

import (
	"github.com/pmarchive/archmeta/compress"
	"github.com/pmarchive/archmeta/errs"
	"github.com/pmarchive/archmeta/format"
	"github.com/pmarchive/archmeta/internal/options"
	"github.com/pmarchive/archmeta/record"
)

// DefaultCompressionThreshold is the label-set JSON payload size, in
// bytes, above which WithCompression starts compressing retained
// payloads. Below this size the compression overhead isn't worth paying.
const DefaultCompressionThreshold = 4096

type labelNode struct {
	payload record.LabelPayload
	// compressed marks, index-for-index with payload.Sets, which sets'
	// JSON bytes are currently compressed rather than raw.
	compressed []bool
	next       *labelNode
}

// LabelIndex is the two-level (label-type -> identifier -> chain) store of
// label-set snapshots. It is built on the generic TwoLevel index keyed by
// the masked label type and identifier.
type LabelIndex struct {
	chains    *TwoLevel[*labelNode]
	codec     compress.Codec
	threshold int
}

// Option configures a LabelIndex.
type Option = options.Option[*LabelIndex]

// WithCompression enables payload compression for label-sets whose JSON
// exceeds thresholdBytes, using the codec registered for typ. Passing
// format.CompressionNone (the default) disables compression entirely.
func WithCompression(typ format.CompressionType, thresholdBytes int) Option {
	return options.New(func(idx *LabelIndex) error {
		if typ == format.CompressionNone {
			idx.codec = nil
			return nil
		}

		codec, err := compress.GetCodec(typ)
		if err != nil {
			return err
		}

		idx.codec = codec
		if thresholdBytes > 0 {
			idx.threshold = thresholdBytes
		}

		return nil
	})
}

// NewLabelIndex creates an empty label index. By default, label-set JSON
// payloads are kept uncompressed; pass WithCompression to enable it.
func NewLabelIndex(opts ...Option) (*LabelIndex, error) {
	idx := &LabelIndex{chains: NewTwoLevel[*labelNode](), threshold: DefaultCompressionThreshold}
	if err := options.Apply(idx, opts...); err != nil {
		return nil, err
	}

	return idx, nil
}

// indexKey masks the decorative Compound/Optional bits from typ and, for
// context-scoped labels, forces the identifier to the null sentinel
// regardless of what the record supplied.
func indexKey(typ, ident uint32) (uint32, uint32) {
	typ &= format.LabelTypeMask

	if typ&format.LabelContext != 0 {
		ident = format.NullID
	}

	return typ, ident
}

// compress replaces each set's JSON with its compressed form when idx has
// a codec configured and the set is large enough to be worth it, and
// reports which sets were actually compressed. Sets that fail to compress
// are left raw and reported as uncompressed; compression is a memory
// optimization, never a requirement for correctness.
func (idx *LabelIndex) compress(sets []record.LabelSet) []bool {
	flags := make([]bool, len(sets))

	if idx.codec == nil {
		return flags
	}

	for i := range sets {
		if len(sets[i].JSON) <= idx.threshold {
			continue
		}

		packed, err := idx.codec.Compress(sets[i].JSON)
		if err != nil {
			continue
		}

		sets[i].JSON = packed
		flags[i] = true
	}

	return flags
}

// materialize decompresses, in place, every set in node still marked
// compressed. LabelSet.Name and LabelSet.Value slice the JSON buffer by
// stored offset/length, so no caller-visible or compared set may remain
// compressed.
func (idx *LabelIndex) materialize(node *labelNode) {
	if node == nil || idx.codec == nil {
		return
	}

	for i, compressed := range node.compressed {
		if !compressed {
			continue
		}

		raw, err := idx.codec.Decompress(node.payload.Sets[i].JSON)
		if err != nil {
			continue
		}

		node.payload.Sets[i].JSON = raw
		node.compressed[i] = false
	}
}

// Insert links payload into the chain for (typ, ident) by decreasing
// timestamp. Equal-timestamp nodes are chained in arrival order among
// themselves, oldest-walked-first, matching addlabel()'s splice-before-
// the-first-strictly-earlier-node behavior; duplicates across the whole
// stream are removed by a single PruneDuplicates pass run after the
// stream has been fully consumed.
func (idx *LabelIndex) Insert(typ, ident uint32, payload record.LabelPayload) {
	typ, ident = indexKey(typ, ident)

	// Copy the set headers so compression never rewrites the caller's sets.
	payload.Sets = append([]record.LabelSet(nil), payload.Sets...)
	node := &labelNode{payload: payload, compressed: idx.compress(payload.Sets)}

	head, ok := idx.chains.Get(typ, ident)
	if !ok {
		idx.chains.Set(typ, ident, node)
		return
	}

	if payload.Stamp.After(head.payload.Stamp) {
		node.next = head
		idx.chains.Set(typ, ident, node)

		return
	}

	prev := head
	for prev.next != nil && !prev.next.payload.Stamp.Before(payload.Stamp) {
		prev = prev.next
	}

	node.next = prev.next
	prev.next = node
}

// Lookup returns the label-set array in effect for (typ, ident) as of tsp
// (or the newest snapshot if tsp is nil): the first chain node whose
// timestamp is <= tsp.
func (idx *LabelIndex) Lookup(typ, ident uint32, tsp *record.Timestamp) ([]record.LabelSet, error) {
	typ, ident = indexKey(typ, ident)

	head, ok := idx.chains.Get(typ, ident)
	if !ok {
		return nil, errs.NewNoLabelsError(typ, ident)
	}

	if tsp == nil {
		idx.materialize(head)
		return head.payload.Sets, nil
	}

	for n := head; n != nil; n = n.next {
		if !n.payload.Stamp.After(*tsp) {
			idx.materialize(n)
			return n.payload.Sets, nil
		}
	}

	return nil, errs.NewNoLabelsError(typ, ident)
}

// PruneDuplicates walks every (type, identifier) chain from newest to
// oldest and, for each adjacent pair (newer, older), removes from newer
// any label-set that is semantically equal to one already present in
// older. A newer node that ends up with zero label-sets is unlinked. This
// must run exactly once, after the whole metadata stream has been
// consumed, per the rationale that archives are frequently produced by
// concatenating sub-archives and the older copy at a stitch point is
// treated as the carrier of truth.
func (idx *LabelIndex) PruneDuplicates() {
	idx.chains.Range(func(typ, ident uint32, head *labelNode) {
		newHead := idx.pruneChain(head)
		if newHead != head {
			idx.chains.Set(typ, ident, newHead)
		}
	})
}

func (idx *LabelIndex) pruneChain(head *labelNode) *labelNode {
	dummy := &labelNode{next: head}
	prev := dummy

	for prev.next != nil && prev.next.next != nil {
		newer := prev.next
		older := prev.next.next

		idx.materialize(newer)
		idx.materialize(older)
		newer.payload.Sets = discardDuplicateSets(newer.payload.Sets, older.payload.Sets)
		newer.compressed = make([]bool, len(newer.payload.Sets))

		if len(newer.payload.Sets) == 0 {
			prev.next = older
			continue
		}

		prev = prev.next
	}

	return dummy.next
}

// discardDuplicateSets returns the subset of newer whose label-sets have
// no semantic match anywhere in older.
func discardDuplicateSets(newer, older []record.LabelSet) []record.LabelSet {
	kept := newer[:0]

	for _, set := range newer {
		duplicate := false

		for _, olderSet := range older {
			if set.SemanticallyEqual(olderSet) {
				duplicate = true
				break
			}
		}

		if !duplicate {
			kept = append(kept, set)
		}
	}

	return kept
}
