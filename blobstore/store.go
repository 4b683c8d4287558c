package blobstore

import (
	"context"
	"io"
	"os"
)

// ErrNotFound is returned when a blob does not exist.
//
// Implementations should return an error that satisfies `errors.Is(err, ErrNotFound)`.
// The default maps to `os.ErrNotExist`.
var ErrNotFound = os.ErrNotExist

// Store opens named blobs of delimited input.
//
// Every Open returns an independent stream positioned at the start of the
// blob, which is what lets a row source restart a scan.
type Store interface {
	Open(ctx context.Context, name string) (io.ReadCloser, error)
}

type readCloser struct {
	io.Reader
	close func() error
}

func (r readCloser) Close() error {
	if r.close == nil {
		return nil
	}
	return r.close()
}
