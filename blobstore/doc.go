// Package blobstore provides the byte sources that delimited input is read
// from.
//
// A Store opens named blobs as streams. Each Open starts from the first byte,
// so a row source can restart a scan by opening the blob again.
//
// # Built-in Implementations
//
//   - LocalStore: local files, memory mapped
//   - MemoryStore: in-process blobs for tests
//   - CachingStore: keeps blobs from another Store in memory
//   - s3.Store: Amazon S3 (streaming or parallel ranged download)
//   - minio.Store: MinIO and other S3-compatible services
//
// # Custom Implementations
//
//	type Store interface {
//	    Open(ctx context.Context, name string) (io.ReadCloser, error)
//	}
package blobstore
