// Package archmeta implements an in-memory metadata store for archived
// performance-metrics streams: metric descriptors, instance domains,
// label sets, and help text, read from a versioned length-framed binary
// log and indexed for time-scoped lookup.
//
// # Basic usage
//
// Loading an archive's metadata log and querying it:
//
//	f, _ := os.Open("archive.meta")
//	arc, err := archmeta.Load(f, 0)
//	if err != nil && !errors.Is(err, errs.ErrEmptyArchive) {
//	    log.Fatal(err)
//	}
//
//	desc, err := arc.LookupDescriptor(metricID)
//	ids, names, err := arc.LookupIndom(desc.IndomID, nil)
//
// Appending a new record and keeping the in-memory index consistent
// with what was just written:
//
//	err = arc.WriteDescriptor(f, newDescriptor)
package archmeta

import (
	"errors"
	"io"

	"github.com/pmarchive/archmeta/errs"
	"github.com/pmarchive/archmeta/format"
	"github.com/pmarchive/archmeta/index"
	"github.com/pmarchive/archmeta/internal/namespace"
	"github.com/pmarchive/archmeta/loader"
	"github.com/pmarchive/archmeta/record"
)

// LoadOption configures a Load call. It is a type alias so callers never
// need to import the loader package directly for ordinary use.
type LoadOption = loader.Option

// WithMaxJSON, WithMaxLabels, WithLogger, and WithLabelCompression
// re-export the loader's configuration options at the package's main
// entry point.
var (
	WithMaxJSON          = loader.WithMaxJSON
	WithMaxLabels        = loader.WithMaxLabels
	WithLogger           = loader.WithLogger
	WithLabelCompression = loader.WithLabelCompression
)

// Archive is the in-memory metadata store for one archive's descriptors,
// instance domains, label sets, and help text. It is not safe for
// concurrent use; the caller holds a lock across every call the way the
// rest of this package assumes.
type Archive struct {
	descriptors *index.DescriptorIndex
	indoms      *index.IndomIndex
	labels      *index.LabelIndex
	text        *index.TextIndex
	names       *namespace.Registry
}

// Load reads src's metadata log from offset to EOF and returns a populated
// Archive. On success (and on the informational errs.ErrEmptyArchive
// case) src is left positioned back at offset. Any other error aborts the
// load; the returned Archive still reflects every record indexed before
// the failure.
func Load(src io.ReadSeeker, offset int64, opts ...LoadOption) (*Archive, error) {
	result, err := loader.Load(src, offset, opts...)

	return archiveFromResult(result), err
}

func archiveFromResult(result *loader.Result) *Archive {
	if result == nil {
		return nil
	}

	return &Archive{
		descriptors: result.Descriptors,
		indoms:      result.Indoms,
		labels:      result.Labels,
		text:        result.Text,
		names:       result.Names,
	}
}

// LookupDescriptor returns the descriptor registered for metricID.
func (a *Archive) LookupDescriptor(metricID uint32) (record.Descriptor, error) {
	return a.descriptors.Lookup(metricID)
}

// LookupIndom returns the instance-id/name pairs in effect for indomID as
// of tsp (or the newest snapshot if tsp is nil).
func (a *Archive) LookupIndom(indomID uint32, tsp *record.Timestamp) ([]uint32, []string, error) {
	snap, err := a.indoms.Search(indomID, tsp)
	if err != nil {
		return nil, nil, err
	}

	return snap.InstanceIDs, snap.Names, nil
}

// LookupInstanceID resolves name to an instance-id within the snapshot of
// indomID in effect at tsp, trying exact match before falling back to
// prefix-up-to-first-space match. Other snapshots in the chain are not
// searched.
func (a *Archive) LookupInstanceID(indomID uint32, tsp *record.Timestamp, name string) (uint32, error) {
	return a.indoms.LookupInstanceID(indomID, tsp, name)
}

// LookupInstanceName resolves id to its registered name within indomID as
// of tsp.
func (a *Archive) LookupInstanceName(indomID uint32, tsp *record.Timestamp, id uint32) (string, error) {
	return a.indoms.LookupInstanceName(indomID, tsp, id)
}

// EnumerateIndom unions every instance ever observed for indomID across
// its whole chain, deduplicated by instance-id.
func (a *Archive) EnumerateIndom(indomID uint32) ([]uint32, []string, error) {
	return a.indoms.Enumerate(indomID)
}

// LookupLabel returns the label-set array in effect for (typ, ident) as of
// tsp (or the newest snapshot if tsp is nil).
func (a *Archive) LookupLabel(typ, ident uint32, tsp *record.Timestamp) ([]record.LabelSet, error) {
	return a.labels.Lookup(typ, ident, tsp)
}

// LookupText returns the help text stored for (typ, ident).
func (a *Archive) LookupText(typ, ident uint32) (string, error) {
	return a.text.Lookup(typ, ident)
}

// NameConflicts reports whether any registered metric name was ever bound
// to more than one metric-id while loading.
func (a *Archive) NameConflicts() bool {
	return a.names.HasConflict()
}

// WriteDescriptor encodes d and appends it to dst, then registers it in
// the descriptor index so the read path reflects what was just written.
// A descriptor conflict aborts before anything is written.
func (a *Archive) WriteDescriptor(dst io.Writer, d record.Descriptor) error {
	if err := a.descriptors.Insert(d); err != nil {
		return err
	}

	for _, name := range d.Names {
		a.names.Register(name, d.MetricID)
	}

	return record.Write(dst, format.Desc, record.EncodeDescriptor(d))
}

// WriteIndom encodes snap as a current-timestamp instance-domain record,
// appends it to dst, and inserts it into the instance-domain index. The
// returned outcome distinguishes a fresh insertion from a detected
// duplicate; on duplicate, snap's arrays remain owned by the caller.
func (a *Archive) WriteIndom(dst io.Writer, snap record.InstanceSnapshot) (index.InsertOutcome, error) {
	outcome, err := a.indoms.Insert(snap.IndomID, snap)
	if err != nil && !errors.Is(err, errs.ErrDuplicateIndom) {
		return outcome, err
	}

	if werr := record.Write(dst, format.Indom, record.EncodeIndom(snap)); werr != nil {
		return outcome, werr
	}

	return outcome, err
}

// WriteLabel encodes payload as a current-timestamp label record, appends
// it to dst, and chains it into the label index. Duplicate suppression
// across the whole stream runs later via PruneDuplicates, not here.
func (a *Archive) WriteLabel(dst io.Writer, payload record.LabelPayload) error {
	a.labels.Insert(payload.Type, payload.Identifier, payload)

	return record.Write(dst, format.Label, record.EncodeLabelPayload(payload))
}

// WriteText encodes e, appends it to dst, and stores it in the help-text
// index if its type bits are valid. An invalid combination is written to
// the stream (the caller's explicit intent) but not indexed.
func (a *Archive) WriteText(dst io.Writer, e record.TextEntry) error {
	if e.Valid() {
		a.text.Insert(e)
	}

	return record.Write(dst, format.TextRecord, record.EncodeText(e))
}

// PruneLabelDuplicates runs the post-load label duplicate-pruning pass
// again. Load already runs this once after a stream is fully consumed;
// callers that batch-write many label records outside of Load and want
// the memory savings before the next full reload can invoke this
// directly.
func (a *Archive) PruneLabelDuplicates() {
	a.labels.PruneDuplicates()
}
