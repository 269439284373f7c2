// Package format defines the closed set of on-disk constants shared by the
// record codec: record type tags, value type codes, semantic codes, the
// bit-packed unit encoding used by descriptor records, and the optional
// compression codec tags used by the label index's payload store.
package format

type CompressionType uint8

const (
	// CompressionNone stores label payload JSON uncompressed.
	CompressionNone CompressionType = 0x1
	// CompressionZstd compresses label payload JSON with zstd.
	CompressionZstd CompressionType = 0x2
	// CompressionS2 compresses label payload JSON with S2.
	CompressionS2 CompressionType = 0x3
	// CompressionLZ4 compresses label payload JSON with LZ4.
	CompressionLZ4 CompressionType = 0x4
)

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}
