// Package compress provides compression and decompression codecs for the
// raw JSON payload retained by each label-set snapshot.
//
// # Overview
//
// A label-set snapshot keeps the label record's raw JSON body alongside
// the offset/length tuples that index into it, so that the label index
// never has to re-marshal label data on read. Archives with many
// near-identical label sets (instances of the same container image, say)
// can retain a large volume of near-duplicate JSON before the duplicate-
// pruning pass collapses the repeats. This package lets the label index
// optionally compress that retained payload above a configurable size
// threshold, trading CPU for memory on the uncollapsed window.
//
// This is purely an internal memory-efficiency knob of the label index.
// It never touches the archive stream itself; records are always written
// and read from the stream uncompressed, exactly as framed in the wire
// format.
//
// # Algorithms
//
//   - None (format.CompressionNone): no-op, for small or already-compact
//     payloads where the overhead isn't worth it.
//   - Zstd (format.CompressionZstd): best ratio, suited to long-lived
//     retained payloads.
//   - S2 (format.CompressionS2): balanced ratio and speed.
//   - LZ4 (format.CompressionLZ4): fastest decompression, moderate ratio.
//
// # Architecture
//
//	type Compressor interface {
//	    Compress(data []byte) ([]byte, error)
//	}
//
//	type Decompressor interface {
//	    Decompress(data []byte) ([]byte, error)
//	}
//
//	type Codec interface {
//	    Compressor
//	    Decompressor
//	}
//
// GetCodec and CreateCodec look up a Codec by format.CompressionType.
package compress
