package rowsource

import (
	"bytes"
	"context"
	"io"
	"iter"
	"strings"

	"github.com/hupe1980/bitframe/blobstore"
)

// Opener opens the raw bytes of a source from the beginning.
type Opener func(ctx context.Context) (io.ReadCloser, error)

// Reader is a restartable row source. Each Scan opens the source again and
// starts right after the header.
type Reader struct {
	open Opener
	opts Options
}

// NewReader creates a Reader over the bytes returned by open.
func NewReader(open Opener, optFns ...func(*Options)) (*Reader, error) {
	opts := DefaultOptions
	for _, fn := range optFns {
		fn(&opts)
	}
	if err := opts.validate(); err != nil {
		return nil, err
	}
	return &Reader{open: open, opts: opts}, nil
}

// Options returns the effective options.
func (r *Reader) Options() Options {
	return r.opts
}

// Scan starts a new pass over the source. The caller must Close the Scanner.
func (r *Reader) Scan(ctx context.Context) (*Scanner, error) {
	src, err := r.open(ctx)
	if err != nil {
		return nil, err
	}
	return newScanner(ctx, src, r.opts)
}

// Header reads only the header of the source.
func (r *Reader) Header(ctx context.Context) (*Schema, error) {
	sc, err := r.Scan(ctx)
	if err != nil {
		return nil, err
	}
	defer sc.Close()
	return sc.Schema(), nil
}

// Rows iterates over one pass of the source. A failure is yielded once as the
// final element. Records are reused between iterations.
func (r *Reader) Rows(ctx context.Context) iter.Seq2[Record, error] {
	return func(yield func(Record, error) bool) {
		sc, err := r.Scan(ctx)
		if err != nil {
			yield(Record{}, err)
			return
		}
		defer sc.Close()

		for sc.Next() {
			if !yield(sc.Record(), nil) {
				return
			}
		}
		if err := sc.Err(); err != nil {
			yield(Record{}, err)
		}
	}
}

// FromBytes serves b on every open.
func FromBytes(b []byte) Opener {
	return func(context.Context) (io.ReadCloser, error) {
		return io.NopCloser(bytes.NewReader(b)), nil
	}
}

// FromString serves s on every open.
func FromString(s string) Opener {
	return func(context.Context) (io.ReadCloser, error) {
		return io.NopCloser(strings.NewReader(s)), nil
	}
}

// FromFile memory maps the file at path on every open.
func FromFile(path string) Opener {
	return FromBlob(blobstore.NewLocalStore(""), path)
}

// FromBlob opens the blob called name in store on every open.
func FromBlob(store blobstore.Store, name string) Opener {
	return func(ctx context.Context) (io.ReadCloser, error) {
		return store.Open(ctx, name)
	}
}
