package bitframe

import (
	"log/slog"

	"github.com/hupe1980/bitframe/codec"
	"github.com/hupe1980/bitframe/rowsource"
)

type options struct {
	delimiter        rune
	quoting          rowsource.Quoting
	emptyValue       string
	codec            codec.Codec
	metricsCollector MetricsCollector
	logger           *Logger
}

// Option configures a Loader.
type Option func(*options)

// WithDelimiter sets the field delimiter of sources the Loader opens itself
// (LoadFile, LoadBlob, LoadReader). Defaults to ','.
func WithDelimiter(d rune) Option {
	return func(o *options) {
		o.delimiter = d
	}
}

// WithQuoting sets how sources the Loader opens itself split lines into
// fields. The default, rowsource.QuoteAuto, honors RFC 4180 quotes only
// for ',' and splits every other delimiter on raw lines.
func WithQuoting(q rowsource.Quoting) Option {
	return func(o *options) {
		o.quoting = q
	}
}

// WithEmptyValue sets the value recorded for empty fields. Defaults to "".
func WithEmptyValue(v string) Option {
	return func(o *options) {
		o.emptyValue = v
	}
}

// WithCodec forces the decompression codec of sources the Loader opens itself.
//
// If nil is passed, the codec is detected from the input.
func WithCodec(c codec.Codec) Option {
	return func(o *options) {
		o.codec = c
	}
}

// WithMetricsCollector configures a metrics collector for monitoring loads.
// Pass nil to disable metrics collection.
//
// Example with BasicMetricsCollector:
//
//	metrics := &bitframe.BasicMetricsCollector{}
//	loader := bitframe.NewLoader(dims, mets, bitframe.WithMetricsCollector(metrics))
//	// ... load ...
//	stats := metrics.GetStats()
//	fmt.Printf("Loads: %d, Rows: %d\n", stats.LoadCount, stats.LoadRows)
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		o.metricsCollector = mc
	}
}

// WithLogger configures structured logging for loads.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := bitframe.NewJSONLogger(slog.LevelInfo)
//	loader := bitframe.NewLoader(dims, mets, bitframe.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

func applyOptions(optFns []Option) options {
	o := options{
		delimiter:        rowsource.DefaultOptions.Delimiter,
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	if o.metricsCollector == nil {
		o.metricsCollector = NoopMetricsCollector{}
	}
	if o.logger == nil {
		o.logger = NoopLogger()
	}
	return o
}

func (o options) rowSourceOptions(ro *rowsource.Options) {
	ro.Delimiter = o.delimiter
	ro.Quoting = o.quoting
	ro.EmptyValue = o.emptyValue
	ro.Codec = o.codec
}
