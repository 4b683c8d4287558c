package bitframe

import (
	"context"
	"slices"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/hupe1980/bitframe/blobstore"
	"github.com/hupe1980/bitframe/frame"
	"github.com/hupe1980/bitframe/rowsource"
)

// RowSource is a restartable stream of rows headed by a schema.
// *rowsource.Reader implements it.
type RowSource interface {
	Scan(ctx context.Context) (*rowsource.Scanner, error)
}

// Loader builds DataFrames from row sources. A Loader holds no per-load state
// and may be shared between goroutines; each load is single-threaded.
type Loader struct {
	dimensions []string
	metrics    []string
	opts       options
}

// NewLoader creates a Loader for the declared dimension (categorical) and
// metric columns.
func NewLoader(dimensions, metrics []string, optFns ...Option) *Loader {
	return &Loader{
		dimensions: dimensions,
		metrics:    metrics,
		opts:       applyOptions(optFns),
	}
}

// Dimensions returns the declared dimension columns.
func (l *Loader) Dimensions() []string {
	return l.dimensions
}

// Metrics returns the declared metric columns.
func (l *Loader) Metrics() []string {
	return l.metrics
}

// LoadFile loads the delimited file at path.
func (l *Loader) LoadFile(ctx context.Context, path string) (*frame.DataFrame, error) {
	return l.loadOpener(ctx, path, rowsource.FromFile(path))
}

// LoadBlob loads the blob called name from store.
func (l *Loader) LoadBlob(ctx context.Context, store blobstore.Store, name string) (*frame.DataFrame, error) {
	return l.loadOpener(ctx, name, rowsource.FromBlob(store, name))
}

// LoadReader loads from open, which must return the source from its first
// byte on every call.
func (l *Loader) LoadReader(ctx context.Context, open rowsource.Opener) (*frame.DataFrame, error) {
	return l.loadOpener(ctx, "reader", open)
}

func (l *Loader) loadOpener(ctx context.Context, source string, open rowsource.Opener) (*frame.DataFrame, error) {
	r, err := rowsource.NewReader(open, l.opts.rowSourceOptions)
	if err != nil {
		return nil, err
	}
	return l.load(ctx, l.opts.logger.WithSource(source), r)
}

// Load reads every row of src and returns the finalized DataFrame.
// The delimiter, empty value and codec of src are its own; the Loader's
// corresponding options only apply to sources it opens itself.
//
// Any failure aborts the load and returns a nil DataFrame.
func (l *Loader) Load(ctx context.Context, src RowSource) (*frame.DataFrame, error) {
	return l.load(ctx, l.opts.logger, src)
}

func (l *Loader) load(ctx context.Context, logger *Logger, src RowSource) (df *frame.DataFrame, err error) {
	start := time.Now()
	rows := 0
	defer func() {
		duration := time.Since(start)
		l.opts.metricsCollector.RecordLoad(rows, duration, err)
		logger.LogLoad(ctx, rows, duration, err)
	}()

	if err := l.checkDeclared(); err != nil {
		return nil, err
	}

	sc, err := src.Scan(ctx)
	if err != nil {
		return nil, err
	}
	defer sc.Close()

	// Resolve once; the header fixes positions for every row.
	pos, err := sc.Schema().Resolve(append(slices.Clone(l.dimensions), l.metrics...))
	if err != nil {
		return nil, err
	}
	dimPos, metPos := pos[:len(l.dimensions)], pos[len(l.dimensions):]

	df = frame.New()
	cols := make([]*frame.Column, len(l.dimensions))
	for i, name := range l.dimensions {
		cols[i] = df.ColumnOrCreate(name)
	}
	mets := make([]*frame.Metric, len(l.metrics))
	for i, name := range l.metrics {
		mets[i] = df.MetricOrCreate(name)
	}

	for sc.Next() {
		rec := sc.Record()
		for i, c := range cols {
			c.Insert(rec.Field(dimPos[i]))
		}
		for i, m := range mets {
			if v, ok := rec.Lookup(metPos[i]); ok {
				m.Insert(v)
			} else {
				m.InsertMissing(v)
			}
		}
		rows++
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	for i, name := range l.dimensions {
		if err := l.finalizeColumn(ctx, logger, name, cols[i]); err != nil {
			return nil, err
		}
	}
	// Columns are already built, so this only packs metric presence.
	if err := df.Finalize(); err != nil {
		return nil, err
	}
	return df, nil
}

func (l *Loader) finalizeColumn(ctx context.Context, logger *Logger, name string, c *frame.Column) error {
	start := time.Now()
	err := c.FinalizeBitmaps()
	duration := time.Since(start)

	logger.LogFinalize(ctx, name, c.Cardinality(), duration, err)
	if err != nil {
		return errors.Wrapf(err, "column %q", name)
	}
	l.opts.metricsCollector.RecordFinalize(name, c.Cardinality(), duration)
	return nil
}

func (l *Loader) checkDeclared() error {
	for _, names := range [][]string{l.dimensions, l.metrics} {
		seen := make(map[string]struct{}, len(names))
		for _, n := range names {
			if _, ok := seen[n]; ok {
				return errors.Wrapf(ErrDuplicateColumn, "%q", n)
			}
			seen[n] = struct{}{}
		}
	}
	return nil
}
