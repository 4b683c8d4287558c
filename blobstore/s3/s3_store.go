package s3

import (
	"bytes"
	"context"
	"io"
	"path"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/cockroachdb/errors"
	"github.com/hupe1980/bitframe/blobstore"
)

// Client is the subset of the S3 API the store needs.
// *s3.Client satisfies it.
type Client interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// Options configures a Store.
type Options struct {
	// Prefix is prepended to every blob name (e.g. "exports/").
	Prefix string

	// Region overrides the region from the default AWS configuration.
	// Only used by New.
	Region string

	// Buffered downloads whole objects with parallel ranged GETs before
	// handing them to the caller.
	Buffered bool

	// PartSize is the ranged GET size for buffered downloads.
	// Defaults to manager.DefaultDownloadPartSize.
	PartSize int64

	// Concurrency is the number of parallel ranged GETs for buffered downloads.
	// Defaults to manager.DefaultDownloadConcurrency.
	Concurrency int
}

// Store implements blobstore.Store for S3.
type Store struct {
	client Client
	bucket string
	opts   Options
}

// NewStore creates a new S3 blob store.
func NewStore(client Client, bucket string, optFns ...func(*Options)) *Store {
	opts := Options{
		PartSize:    manager.DefaultDownloadPartSize,
		Concurrency: manager.DefaultDownloadConcurrency,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Store{
		client: client,
		bucket: bucket,
		opts:   opts,
	}
}

// New loads the default AWS configuration (environment, shared config,
// instance role) and creates a Store on top of it.
func New(ctx context.Context, bucket string, optFns ...func(*Options)) (*Store, error) {
	var opts Options
	for _, fn := range optFns {
		fn(&opts)
	}

	var loadOpts []func(*config.LoadOptions) error
	if opts.Region != "" {
		loadOpts = append(loadOpts, config.WithRegion(opts.Region))
	}
	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, errors.Wrap(err, "s3: load aws config")
	}

	return NewStore(s3.NewFromConfig(cfg), bucket, optFns...), nil
}

func (s *Store) key(name string) string {
	return path.Join(s.opts.Prefix, name)
}

// Open returns a stream over the object called name.
func (s *Store) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	input := &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(name)),
	}

	if s.opts.Buffered {
		return s.download(ctx, input)
	}

	resp, err := s.client.GetObject(ctx, input)
	if err != nil {
		return nil, mapError(err)
	}
	return resp.Body, nil
}

func (s *Store) download(ctx context.Context, input *s3.GetObjectInput) (io.ReadCloser, error) {
	dl := manager.NewDownloader(s.client, func(d *manager.Downloader) {
		d.PartSize = s.opts.PartSize
		d.Concurrency = s.opts.Concurrency
	})

	buf := manager.NewWriteAtBuffer(nil)
	if _, err := dl.Download(ctx, buf, input); err != nil {
		return nil, mapError(err)
	}
	return io.NopCloser(bytes.NewReader(buf.Bytes())), nil
}

func mapError(err error) error {
	var nsk *types.NoSuchKey
	if errors.As(err, &nsk) {
		return blobstore.ErrNotFound
	}
	var nf *types.NotFound
	if errors.As(err, &nf) {
		return blobstore.ErrNotFound
	}
	return err
}
