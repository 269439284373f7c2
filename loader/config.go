package loader

import (
	"github.com/pmarchive/archmeta/format"
	"github.com/pmarchive/archmeta/index"
	"github.com/pmarchive/archmeta/internal/options"
	"github.com/pmarchive/archmeta/record"
	"go.uber.org/zap"
)

// Default bounds applied when no corruption-detection override is given.
const (
	DefaultMaxJSON   = record.DefaultMaxJSON
	DefaultMaxLabels = record.DefaultMaxLabels
)

// Config holds the parameters that govern a single Load call: corruption-
// detection ceilings, the label index's payload-compression settings, and
// the logger records are reported through.
type Config struct {
	maxJSON   int
	maxLabels int
	logger    *zap.SugaredLogger

	labelOpts []index.Option
}

// NewConfig creates a Config with the package defaults.
func NewConfig() *Config {
	return &Config{
		maxJSON:   DefaultMaxJSON,
		maxLabels: DefaultMaxLabels,
		logger:    zap.NewNop().Sugar(),
	}
}

// Option configures a Config.
type Option = options.Option[*Config]

// WithMaxJSON overrides the maximum accepted size, in bytes, of a single
// label-set's JSON payload. Records declaring a larger size are rejected
// as corrupt rather than trusted.
func WithMaxJSON(n int) Option {
	return options.NoError(func(c *Config) {
		if n > 0 {
			c.maxJSON = n
		}
	})
}

// WithMaxLabels overrides the maximum accepted label count within a single
// label-set.
func WithMaxLabels(n int) Option {
	return options.NoError(func(c *Config) {
		if n > 0 {
			c.maxLabels = n
		}
	})
}

// WithLogger injects the logger the loader reports skipped records and
// pruning summaries through. Passing nil is a no-op; the default is a
// no-op logger so callers that don't care about diagnostics pay nothing.
func WithLogger(logger *zap.SugaredLogger) Option {
	return options.NoError(func(c *Config) {
		if logger != nil {
			c.logger = logger
		}
	})
}

// WithLabelCompression enables payload compression on the label index the
// load populates, for label-set JSON exceeding thresholdBytes. Passing
// format.CompressionNone disables it, which is also the default.
func WithLabelCompression(typ format.CompressionType, thresholdBytes int) Option {
	return options.NoError(func(c *Config) {
		c.labelOpts = append(c.labelOpts, index.WithCompression(typ, thresholdBytes))
	})
}
