// Package minio provides a blobstore.Store for MinIO and other
// S3-compatible object stores.
//
//	store, err := minio.New("localhost:9000", "minioadmin", "minioadmin", "exports", func(o *minio.Options) {
//	    o.Secure = false
//	})
package minio
