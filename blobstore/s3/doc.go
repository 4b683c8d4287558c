// Package s3 provides an Amazon S3 implementation of blobstore.Store.
//
// # Usage
//
//	store, err := s3.New(ctx, "my-bucket", func(o *s3.Options) {
//	    o.Prefix = "exports/"
//	    o.Region = "us-east-1"
//	})
//
//	loader := bitframe.NewLoader([]string{"country"}, []string{"revenue"})
//	df, err := loader.LoadBlob(ctx, store, "2024-01.tsv.zst")
//
// # Features
//
//   - Streaming GetObject reads (default)
//   - Parallel ranged downloads into memory via the S3 transfer manager
//     (Options.Buffered), useful for large objects that are scanned twice
//   - Configurable prefix for multi-tenant isolation
package s3
