package blobstore

import (
	"bytes"
	"context"
	"io"
	"sync"

	"golang.org/x/sync/singleflight"
)

// CachingStore keeps whole blobs from a slower Store in memory, so scanning
// the same remote source twice downloads it once. Concurrent opens of the
// same uncached blob share a single fetch.
type CachingStore struct {
	inner    Store
	maxBytes int64

	group singleflight.Group

	mu    sync.RWMutex
	blobs map[string][]byte
	used  int64
}

// NewCachingStore wraps inner. Blobs are cached until maxBytes is reached;
// after that, misses are read from inner without being cached.
// maxBytes <= 0 means unbounded.
func NewCachingStore(inner Store, maxBytes int64) *CachingStore {
	return &CachingStore{
		inner:    inner,
		maxBytes: maxBytes,
		blobs:    make(map[string][]byte),
	}
}

// Open returns a reader over the cached blob, fetching it on a miss.
//
// The shared fetch does not inherit cancellation from any one caller; each
// caller stops waiting when its own ctx is done.
func (s *CachingStore) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	s.mu.RLock()
	data, ok := s.blobs[name]
	s.mu.RUnlock()
	if ok {
		return io.NopCloser(bytes.NewReader(data)), nil
	}

	ch := s.group.DoChan(name, func() (any, error) {
		return s.fetch(context.WithoutCancel(ctx), name)
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return io.NopCloser(bytes.NewReader(res.Val.([]byte))), nil
	}
}

func (s *CachingStore) fetch(ctx context.Context, name string) ([]byte, error) {
	rc, err := s.inner.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.blobs[name]; !ok && (s.maxBytes <= 0 || s.used+int64(len(data)) <= s.maxBytes) {
		s.blobs[name] = data
		s.used += int64(len(data))
	}
	return data, nil
}

// Evict drops name from the cache.
func (s *CachingStore) Evict(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if data, ok := s.blobs[name]; ok {
		s.used -= int64(len(data))
		delete(s.blobs, name)
	}
}

// Size returns the number of cached bytes.
func (s *CachingStore) Size() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.used
}
