package index

import (
	"github.com/pmarchive/archmeta/errs"
	"github.com/pmarchive/archmeta/format"
	"github.com/pmarchive/archmeta/record"
)

// TextIndex is the two-level (type -> identifier) store of help-text
// entries, keyed with the Direct bit stripped from the record's type.
// Unlike the label index, only the newest value for a key is ever kept.
type TextIndex struct {
	entries *TwoLevel[string]
}

// NewTextIndex creates an empty help-text index.
func NewTextIndex() *TextIndex {
	return &TextIndex{entries: NewTwoLevel[string]()}
}

// Insert stores e.Text under e's index key, replacing any existing value:
// operators correct help text over time, so the newest observed copy in
// the stream is authoritative.
func (idx *TextIndex) Insert(e record.TextEntry) {
	typ, ident := e.IndexKey()
	idx.entries.Set(typ, ident, e.Text)
}

// Lookup returns the help text stored for (typ, ident), with the Direct
// bit stripped the same way Insert strips it.
func (idx *TextIndex) Lookup(typ, ident uint32) (string, error) {
	typ &^= format.TextDirectMask

	text, ok := idx.entries.Get(typ, ident)
	if !ok {
		return "", errs.NewNoTextError(typ, ident)
	}

	return text, nil
}
