package record

import "github.com/pmarchive/archmeta/endian"

// engine is the single byte-order engine used throughout the record codec.
// The wire format is big-endian throughout, so this is never swapped for
// anything else; it exists as a package variable (rather than a repeated
// endian.GetBigEndianEngine() call) purely so every encode/decode site
// reads the same way.
var engine = endian.GetBigEndianEngine()
