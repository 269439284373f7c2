package archmeta

import (
	"bytes"
	"testing"

	"github.com/pmarchive/archmeta/errs"
	"github.com/pmarchive/archmeta/format"
	"github.com/pmarchive/archmeta/index"
	"github.com/pmarchive/archmeta/internal/namespace"
	"github.com/pmarchive/archmeta/record"
	"github.com/stretchr/testify/require"
)

func TestLoadAndQuery(t *testing.T) {
	var buf bytes.Buffer

	desc := record.Descriptor{MetricID: 1, Type: format.ValueDouble, Sem: format.SemCounter, IndomID: 9, Names: []string{"disk.io.read"}}
	require.NoError(t, record.Write(&buf, format.Desc, record.EncodeDescriptor(desc)))

	snap := record.InstanceSnapshot{Stamp: record.Timestamp{Sec: 100}, IndomID: 9, InstanceIDs: []uint32{2, 1}, Names: []string{"sdb", "sda"}}
	require.NoError(t, record.Write(&buf, format.Indom, record.EncodeIndom(snap)))

	src := bytes.NewReader(buf.Bytes())

	arc, err := Load(src, 0)
	require.NoError(t, err)

	got, err := arc.LookupDescriptor(1)
	require.NoError(t, err)
	require.Equal(t, desc.Names, got.Names)

	ids, names, err := arc.LookupIndom(9, nil)
	require.NoError(t, err)
	require.Equal(t, []uint32{1, 2}, ids)
	require.Equal(t, []string{"sda", "sdb"}, names)

	id, err := arc.LookupInstanceID(9, nil, "sda")
	require.NoError(t, err)
	require.Equal(t, uint32(1), id)
}

func TestLoadEmptyArchiveIsReportedNotAborted(t *testing.T) {
	var buf bytes.Buffer
	snap := record.InstanceSnapshot{Stamp: record.Timestamp{Sec: 1}, IndomID: 1, InstanceIDs: []uint32{1}, Names: []string{"a"}}
	require.NoError(t, record.Write(&buf, format.Indom, record.EncodeIndom(snap)))

	arc, err := Load(bytes.NewReader(buf.Bytes()), 0)
	require.ErrorIs(t, err, errs.ErrEmptyArchive)
	require.NotNil(t, arc)

	_, err = arc.LookupDescriptor(1)
	require.True(t, errs.IsNotFoundError(err))
}

func TestWritePathKeepsIndexConsistentWithStream(t *testing.T) {
	arc := mustEmptyArchive()

	var buf bytes.Buffer

	desc := record.Descriptor{MetricID: 5, Type: format.ValueFloat, Sem: format.SemInstant, IndomID: format.NullID, Names: []string{"cpu.usage"}}
	require.NoError(t, arc.WriteDescriptor(&buf, desc))

	got, err := arc.LookupDescriptor(5)
	require.NoError(t, err)
	require.Equal(t, desc, got)

	// The stream now holds exactly the encoded descriptor, decodable on
	// its own via the record codec.
	reader := record.NewReader(bytes.NewReader(buf.Bytes()))
	hdr, payload, err := reader.Next()
	require.NoError(t, err)
	require.Equal(t, format.Desc, hdr.Type)

	decoded, err := record.DecodeDescriptor(payload)
	require.NoError(t, err)
	require.Equal(t, desc, decoded)
}

func TestWriteIndomDuplicateLeavesCallerOwningSnapshot(t *testing.T) {
	arc := mustEmptyArchive()
	var buf bytes.Buffer

	snap := record.InstanceSnapshot{Stamp: record.Timestamp{Sec: 1}, IndomID: 1, InstanceIDs: []uint32{1}, Names: []string{"a"}}

	outcome, err := arc.WriteIndom(&buf, snap)
	require.NoError(t, err)
	require.Equal(t, index.Inserted, outcome)

	outcome, err = arc.WriteIndom(&buf, snap)
	require.ErrorIs(t, err, errs.ErrDuplicateIndom)
	require.Equal(t, index.DuplicateSnapshot, outcome)
}

func mustEmptyArchive() *Archive {
	labels, err := index.NewLabelIndex()
	if err != nil {
		panic(err)
	}

	return &Archive{
		descriptors: index.NewDescriptorIndex(),
		indoms:      index.NewIndomIndex(),
		labels:      labels,
		text:        index.NewTextIndex(),
		names:       namespace.NewRegistry(),
	}
}
