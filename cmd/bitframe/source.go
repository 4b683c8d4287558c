package main

import (
	"context"
	"strings"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/hupe1980/bitframe/blobstore"
	"github.com/hupe1980/bitframe/blobstore/minio"
	"github.com/hupe1980/bitframe/blobstore/s3"
)

const (
	schemeFile  = "file"
	schemeS3    = "s3"
	schemeMinio = "minio"
)

// source is one input named on the command line.
type source struct {
	raw    string
	scheme string
	bucket string
	key    string // object key, or the path for local files
}

func parseSource(raw string) (source, error) {
	scheme, rest, ok := strings.Cut(raw, "://")
	if !ok {
		return source{raw: raw, scheme: schemeFile, key: raw}, nil
	}

	switch scheme {
	case schemeFile:
		return source{raw: raw, scheme: schemeFile, key: rest}, nil
	case schemeS3, schemeMinio:
		bucket, key, _ := strings.Cut(rest, "/")
		if bucket == "" || key == "" {
			return source{}, errors.Newf("%s: expected %s://bucket/key", raw, scheme)
		}
		return source{raw: raw, scheme: scheme, bucket: bucket, key: key}, nil
	default:
		return source{}, errors.Newf("%s: unsupported scheme %q", raw, scheme)
	}
}

type remoteConfig struct {
	s3Region   string
	s3Buffered bool

	minioEndpoint  string
	minioAccessKey string
	minioSecretKey string
	minioInsecure  bool

	cacheBytes int64
}

// stores builds one blob store per scheme and bucket and shares it between
// sources.
type stores struct {
	cfg remoteConfig

	mu     sync.Mutex
	byName map[string]blobstore.Store
}

func newStores(cfg remoteConfig) *stores {
	return &stores{cfg: cfg, byName: make(map[string]blobstore.Store)}
}

func (s *stores) get(ctx context.Context, src source) (blobstore.Store, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := src.scheme + "://" + src.bucket
	if st, ok := s.byName[id]; ok {
		return st, nil
	}

	var st blobstore.Store
	switch src.scheme {
	case schemeFile:
		st = blobstore.NewLocalStore("")
	case schemeS3:
		s3Store, err := s3.New(ctx, src.bucket, func(o *s3.Options) {
			o.Region = s.cfg.s3Region
			o.Buffered = s.cfg.s3Buffered
		})
		if err != nil {
			return nil, err
		}
		st = s3Store
	case schemeMinio:
		if s.cfg.minioEndpoint == "" {
			return nil, errors.Newf("%s: --minio-endpoint is required", src.raw)
		}
		minioStore, err := minio.New(s.cfg.minioEndpoint, s.cfg.minioAccessKey, s.cfg.minioSecretKey, src.bucket,
			func(o *minio.Options) {
				o.Secure = !s.cfg.minioInsecure
			})
		if err != nil {
			return nil, err
		}
		st = minioStore
	default:
		return nil, errors.Newf("%s: unsupported scheme %q", src.raw, src.scheme)
	}

	if src.scheme != schemeFile && s.cfg.cacheBytes > 0 {
		st = blobstore.NewCachingStore(st, s.cfg.cacheBytes)
	}
	s.byName[id] = st
	return st, nil
}
