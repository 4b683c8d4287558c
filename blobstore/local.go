package blobstore

import (
	"context"
	"io"
	"path/filepath"

	"github.com/hupe1980/bitframe/internal/mmap"
)

// LocalStore implements Store using the local file system.
// Files are memory mapped and advised for sequential access.
type LocalStore struct {
	root string
}

// NewLocalStore creates a new LocalStore rooted at the given directory.
// An empty root resolves names relative to the working directory.
func NewLocalStore(root string) *LocalStore {
	return &LocalStore{root: root}
}

// Open maps the named file and returns a reader over it. Closing the reader
// unmaps the file.
func (s *LocalStore) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := name
	if s.root != "" {
		path = filepath.Join(s.root, name)
	}

	m, err := mmap.Open(path)
	if err != nil {
		return nil, err
	}
	_ = m.Advise(mmap.AccessSequential)

	return readCloser{Reader: m.Reader(), close: m.Close}, nil
}
