package record

import (
	"io"

	"github.com/pmarchive/archmeta/format"
	"github.com/pmarchive/archmeta/internal/pool"
)

// Write encodes one record of the given type with the given payload and
// writes it to dst as [length][type][payload][length], the mirror image
// of Reader.Next.
func Write(dst io.Writer, typ format.RecordType, payload []byte) error {
	buf := pool.GetRecordBuffer()
	defer pool.PutRecordBuffer(buf)

	length := uint32(recordOverhead + len(payload))

	hdr := Header{Length: length, Type: typ}
	buf.MustWrite(hdr.Bytes())
	buf.MustWrite(payload)

	trailer := make([]byte, 4)
	engine.PutUint32(trailer, length)
	buf.MustWrite(trailer)

	_, err := buf.WriteTo(dst)

	return err
}
