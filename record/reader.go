package record

import (
	"errors"
	"io"

	"github.com/pmarchive/archmeta/errs"
)

// maxPlausibleLength rejects header lengths that could never be legitimate
// metadata records, catching gross corruption before an attempt to read a
// multi-gigabyte "payload" off a truncated or garbled stream.
const maxPlausibleLength = 64 * 1024 * 1024

// Reader sequentially decodes length-framed records from an underlying
// stream, tracking the byte offset of each record for error reporting.
type Reader struct {
	src    io.Reader
	offset int64
}

// NewReader wraps src, whose current position is treated as offset 0 for
// the purpose of error reporting.
func NewReader(src io.Reader) *Reader {
	return &Reader{src: src}
}

// Offset returns the number of bytes consumed so far.
func (r *Reader) Offset() int64 {
	return r.offset
}

// Next reads one record's header, payload, and trailer. It returns
// (Header{}, nil, errs.ErrStreamExhausted) when the stream ends cleanly on a
// record boundary, which callers treat as a successful end of the metadata
// stream rather than an error. ErrStreamExhausted wraps io.EOF, so
// errors.Is(err, io.EOF) still identifies it.
func (r *Reader) Next() (Header, []byte, error) {
	recordOffset := r.offset

	headerBuf := make([]byte, HeaderSize)
	if err := r.readFull(headerBuf); err != nil {
		if errors.Is(err, io.EOF) {
			return Header{}, nil, errs.ErrStreamExhausted
		}

		return Header{}, nil, errs.NewShortReadError(err, recordOffset)
	}

	var hdr Header
	if err := hdr.Parse(headerBuf); err != nil {
		return Header{}, nil, err
	}

	if hdr.Length == 0 || hdr.Length > maxPlausibleLength || hdr.Length < recordOverhead {
		return Header{}, nil, errs.NewBadLengthError(recordOffset, hdr.Length)
	}

	payload := make([]byte, hdr.PayloadLength())
	if err := r.readFull(payload); err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}

		return Header{}, nil, errs.NewShortReadError(err, recordOffset)
	}

	trailerBuf := make([]byte, 4)
	if err := r.readFull(trailerBuf); err != nil {
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}

		return Header{}, nil, errs.NewShortReadError(err, recordOffset)
	}

	trailer := engine.Uint32(trailerBuf)
	if trailer != hdr.Length {
		return Header{}, nil, errs.NewBadTrailerError(recordOffset, hdr.Length, trailer)
	}

	return hdr, payload, nil
}

// readFull fills buf completely, translating a mid-buffer EOF into
// io.ErrUnexpectedEOF so callers can distinguish a clean boundary from
// truncation, and advances the reader's offset on every byte consumed
// (including on a failed, partial read).
func (r *Reader) readFull(buf []byte) error {
	n, err := io.ReadFull(r.src, buf)
	r.offset += int64(n)

	return err
}
