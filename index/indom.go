package index

import (
	"github.com/pmarchive/archmeta/errs"
	"github.com/pmarchive/archmeta/record"
)

// enumerateScratchThreshold is the largest-snapshot size above which Enumerate uses a
// side hash table for O(1) duplicate suppression instead of a linear scan
// against the instances accumulated so far.
const enumerateScratchThreshold = 16

// InsertOutcome reports whether Insert adopted the caller's snapshot or
// left it with the caller because it duplicated an existing one. Modeling
// this as a return value rather than a bool makes the ownership handoff
// explicit at every call site instead of relying on a naming convention.
type InsertOutcome int

const (
	// Inserted means the index took ownership of the snapshot's arrays.
	Inserted InsertOutcome = iota
	// DuplicateSnapshot means the snapshot matched one already present in
	// its equal-timestamp run; the caller retains ownership.
	DuplicateSnapshot
)

type indomNode struct {
	snapshot record.InstanceSnapshot
	next     *indomNode
}

// IndomIndex maps instance-domain id to a chain of instance snapshots kept
// in decreasing-timestamp order.
type IndomIndex struct {
	chains map[uint32]*indomNode
}

// NewIndomIndex creates an empty instance-domain index.
func NewIndomIndex() *IndomIndex {
	return &IndomIndex{chains: make(map[uint32]*indomNode)}
}

// Insert normalizes snap's instance arrays and links it into indomID's
// chain. See §4.3: a strictly later timestamp is inserted before the
// current node; an equal timestamp scans the equal-stamp run for a
// semantic duplicate (relocating it to the run's head and reporting
// DuplicateSnapshot via ErrDuplicateIndom if found, or inserting at the
// run's head otherwise); a strictly earlier timestamp continues the walk.
func (idx *IndomIndex) Insert(indomID uint32, snap record.InstanceSnapshot) (InsertOutcome, error) {
	record.NormalizeInstances(snap.InstanceIDs, snap.Names)

	head := idx.chains[indomID]
	if head == nil {
		idx.chains[indomID] = &indomNode{snapshot: snap}
		return Inserted, nil
	}

	newNode := &indomNode{snapshot: snap}

	if snap.Stamp.After(head.snapshot.Stamp) {
		newNode.next = head
		idx.chains[indomID] = newNode

		return Inserted, nil
	}

	if snap.Stamp.Equal(head.snapshot.Stamp) {
		return idx.insertIntoEqualRun(indomID, head, newNode)
	}

	prev := head
	for prev.next != nil {
		cur := prev.next

		if snap.Stamp.After(cur.snapshot.Stamp) {
			newNode.next = cur
			prev.next = newNode

			return Inserted, nil
		}

		if snap.Stamp.Equal(cur.snapshot.Stamp) {
			return idx.insertIntoEqualRunAfter(prev, cur, newNode)
		}

		prev = cur
	}

	prev.next = newNode

	return Inserted, nil
}

// insertIntoEqualRun handles the case where the new snapshot's timestamp
// equals the chain head's timestamp.
func (idx *IndomIndex) insertIntoEqualRun(indomID uint32, runHead *indomNode, newNode *indomNode) (InsertOutcome, error) {
	if dup := findSemanticDuplicate(runHead, newNode.snapshot.Stamp, newNode.snapshot); dup != nil {
		relocateToHead(idx.chains, indomID, nil, runHead, dup)
		return DuplicateSnapshot, errs.ErrDuplicateIndom
	}

	newNode.next = runHead
	idx.chains[indomID] = newNode

	return Inserted, nil
}

// insertIntoEqualRunAfter handles the case where the new snapshot's
// timestamp equals some interior node's timestamp; beforeRun is the node
// preceding the equal-stamp run.
func (idx *IndomIndex) insertIntoEqualRunAfter(beforeRun, runHead *indomNode, newNode *indomNode) (InsertOutcome, error) {
	if dup := findSemanticDuplicate(runHead, newNode.snapshot.Stamp, newNode.snapshot); dup != nil {
		relocateToHead(idx.chains, 0, beforeRun, runHead, dup)
		return DuplicateSnapshot, errs.ErrDuplicateIndom
	}

	newNode.next = runHead
	beforeRun.next = newNode

	return Inserted, nil
}

// findSemanticDuplicate scans the equal-timestamp run starting at runHead
// for a node semantically equal to candidate, returning it or nil.
func findSemanticDuplicate(runHead *indomNode, stamp record.Timestamp, candidate record.InstanceSnapshot) *indomNode {
	for n := runHead; n != nil && n.snapshot.Stamp.Equal(stamp); n = n.next {
		if n.snapshot.SemanticallyEqual(candidate) {
			return n
		}
	}

	return nil
}

// relocateToHead moves dup to the head of its equal-stamp run. When
// beforeRun is nil, the run starts at the chain head for indomID;
// otherwise beforeRun.next is the run's head.
func relocateToHead(chains map[uint32]*indomNode, indomID uint32, beforeRun, runHead, dup *indomNode) {
	if dup == runHead {
		return
	}

	prev := runHead
	for prev.next != dup {
		prev = prev.next
	}

	prev.next = dup.next
	dup.next = runHead

	if beforeRun == nil {
		chains[indomID] = dup
	} else {
		beforeRun.next = dup
	}
}

// Search returns the first snapshot in indomID's chain whose timestamp is
// ≤ tsp, or the head snapshot if tsp is nil.
func (idx *IndomIndex) Search(indomID uint32, tsp *record.Timestamp) (record.InstanceSnapshot, error) {
	head, ok := idx.chains[indomID]
	if !ok {
		return record.InstanceSnapshot{}, errs.NewNoIndomError(indomID)
	}

	if tsp == nil {
		return head.snapshot, nil
	}

	for n := head; n != nil; n = n.next {
		if !n.snapshot.Stamp.After(*tsp) {
			return n.snapshot, nil
		}
	}

	return record.InstanceSnapshot{}, errs.NewNoInstanceError(indomID, *tsp)
}

// LookupInstanceID resolves name to an instance-id within indomID's
// snapshot as of tsp. It first scans for an exact match across the whole
// snapshot, then falls back to matching the name's prefix up to its first
// space. Only that one snapshot is searched; older snapshots in the chain
// are not consulted.
func (idx *IndomIndex) LookupInstanceID(indomID uint32, tsp *record.Timestamp, name string) (uint32, error) {
	snap, err := idx.Search(indomID, tsp)
	if err != nil {
		return 0, err
	}

	for i, n := range snap.Names {
		if n == name {
			return snap.InstanceIDs[i], nil
		}
	}

	for i, n := range snap.Names {
		if prefixUpToSpace(n) == name {
			return snap.InstanceIDs[i], nil
		}
	}

	return 0, errs.NewNoInstanceError(indomID, name)
}

// LookupInstanceName resolves id to its name within indomID's snapshot as
// of tsp.
func (idx *IndomIndex) LookupInstanceName(indomID uint32, tsp *record.Timestamp, id uint32) (string, error) {
	snap, err := idx.Search(indomID, tsp)
	if err != nil {
		return "", err
	}

	for i, instID := range snap.InstanceIDs {
		if instID == id {
			return snap.Names[i], nil
		}
	}

	return "", errs.NewNoInstanceError(indomID, id)
}

func prefixUpToSpace(name string) string {
	for i, r := range name {
		if r == ' ' {
			return name[:i]
		}
	}

	return name
}

// Enumerate unions every instance ever observed across indomID's chain.
// Chains whose largest snapshot exceeds enumerateScratchThreshold use a
// scratch hash table keyed by instance-id for duplicate suppression;
// smaller chains use a linear scan, which is cheaper at that size.
func (idx *IndomIndex) Enumerate(indomID uint32) ([]uint32, []string, error) {
	head, ok := idx.chains[indomID]
	if !ok {
		return nil, nil, errs.NewNoIndomError(indomID)
	}

	maxSize := 0
	for n := head; n != nil; n = n.next {
		if len(n.snapshot.InstanceIDs) > maxSize {
			maxSize = len(n.snapshot.InstanceIDs)
		}
	}

	ids := make([]uint32, 0, maxSize)
	names := make([]string, 0, maxSize)

	if maxSize > enumerateScratchThreshold {
		seen := make(map[uint32]struct{}, maxSize)
		for n := head; n != nil; n = n.next {
			for i, id := range n.snapshot.InstanceIDs {
				if _, dup := seen[id]; dup {
					continue
				}

				seen[id] = struct{}{}
				ids = append(ids, id)
				names = append(names, n.snapshot.Names[i])
			}
		}

		return ids, names, nil
	}

	for n := head; n != nil; n = n.next {
		for i, id := range n.snapshot.InstanceIDs {
			dup := false
			for _, seenID := range ids {
				if seenID == id {
					dup = true
					break
				}
			}

			if dup {
				continue
			}

			ids = append(ids, id)
			names = append(names, n.snapshot.Names[i])
		}
	}

	return ids, names, nil
}
