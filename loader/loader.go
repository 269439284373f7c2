// Package loader drives the record codec across a metadata stream and
// dispatches each decoded record into the index it belongs to.
package loader

import (
	"errors"
	"io"

	"github.com/pmarchive/archmeta/errs"
	"github.com/pmarchive/archmeta/format"
	"github.com/pmarchive/archmeta/index"
	"github.com/pmarchive/archmeta/internal/namespace"
	"github.com/pmarchive/archmeta/internal/options"
	"github.com/pmarchive/archmeta/record"
)

// Result holds the indexes populated by a single Load call.
type Result struct {
	Descriptors *index.DescriptorIndex
	Indoms      *index.IndomIndex
	Labels      *index.LabelIndex
	Text        *index.TextIndex
	Names       *namespace.Registry
}

func newResult(cfg *Config) (*Result, error) {
	labels, err := index.NewLabelIndex(cfg.labelOpts...)
	if err != nil {
		return nil, err
	}

	return &Result{
		Descriptors: index.NewDescriptorIndex(),
		Indoms:      index.NewIndomIndex(),
		Labels:      labels,
		Text:        index.NewTextIndex(),
		Names:       namespace.NewRegistry(),
	}, nil
}

// Load consumes a metadata stream from offset to EOF, populating a fresh
// Result. On success it seeks src back to offset, leaving the stream
// positioned where the caller's label block began so later appends start
// in the right place.
//
// A returned error from a descriptor conflict, framing failure, or
// corrupt record aborts the load immediately; the returned Result still
// reflects every record successfully indexed before the failure. An
// empty archive (no descriptors observed) is reported via
// errs.ErrEmptyArchive alongside a fully populated, merely
// descriptor-less Result.
func Load(src io.ReadSeeker, offset int64, opts ...Option) (*Result, error) {
	cfg := NewConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	if _, err := src.Seek(offset, io.SeekStart); err != nil {
		return nil, errs.NewShortReadError(err, offset)
	}

	result, err := newResult(cfg)
	if err != nil {
		return nil, err
	}

	reader := record.NewReader(src)

	if err := run(reader, result, cfg); err != nil {
		return result, err
	}

	result.Labels.PruneDuplicates()
	cfg.logger.Infow("label duplicate pruning complete",
		"offset", offset,
	)

	if result.Descriptors.Count() == 0 {
		if _, err := src.Seek(offset, io.SeekStart); err != nil {
			return result, errs.NewShortReadError(err, offset)
		}

		return result, errs.ErrEmptyArchive
	}

	if _, err := src.Seek(offset, io.SeekStart); err != nil {
		return result, errs.NewShortReadError(err, offset)
	}

	return result, nil
}

func run(reader *record.Reader, result *Result, cfg *Config) error {
	for {
		hdr, payload, err := reader.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}

			return err
		}

		if err := dispatch(hdr.Type, payload, result, cfg); err != nil {
			return err
		}
	}
}

func dispatch(typ format.RecordType, payload []byte, result *Result, cfg *Config) error {
	switch typ {
	case format.Desc:
		return loadDescriptor(payload, result)

	case format.IndomV2:
		return loadIndom(payload, true, result)

	case format.Indom:
		return loadIndom(payload, false, result)

	case format.LabelV2:
		return loadLabel(payload, true, result, cfg)

	case format.Label:
		return loadLabel(payload, false, result, cfg)

	case format.TextRecord:
		return loadText(payload, result, cfg)

	case format.IndomDelta:
		// Reserved for forward compatibility; the payload has already been
		// consumed by the reader. No instance-domain state changes.
		return nil

	default:
		// Unrecognized tag: the reader has already consumed the payload by
		// declared length, so there is nothing left to do but move on.
		return nil
	}
}

func loadDescriptor(payload []byte, result *Result) error {
	desc, err := record.DecodeDescriptor(payload)
	if err != nil {
		return err
	}

	if err := result.Descriptors.Insert(desc); err != nil {
		return err
	}

	for _, name := range desc.Names {
		result.Names.Register(name, desc.MetricID)
	}

	return nil
}

func loadIndom(payload []byte, legacy bool, result *Result) error {
	snap, err := record.DecodeIndom(payload, legacy)
	if err != nil {
		return err
	}

	_, err = result.Indoms.Insert(snap.IndomID, snap)
	if err != nil && !errors.Is(err, errs.ErrDuplicateIndom) {
		return err
	}

	return nil
}

func loadLabel(payload []byte, legacy bool, result *Result, cfg *Config) error {
	decoded, err := record.DecodeLabelPayload(payload, legacy, cfg.maxJSON, cfg.maxLabels)
	if err != nil {
		return err
	}

	result.Labels.Insert(decoded.Type, decoded.Identifier, decoded)

	return nil
}

func loadText(payload []byte, result *Result, cfg *Config) error {
	entry, err := record.DecodeText(payload)
	if err != nil {
		return err
	}

	if !entry.Valid() {
		cfg.logger.Warnw("skipping malformed text record",
			"type", entry.Type,
			"identifier", entry.Identifier,
		)

		return nil
	}

	result.Text.Insert(entry)

	return nil
}
