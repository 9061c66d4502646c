// Package s3 provides an S3 implementation of the blobstore.BlobStore interface.
//
// # Usage
//
//	store, err := s3.New(ctx, "my-bucket",
//	    s3.WithPrefix("everybit/"),
//	    s3.WithRegion("us-east-1"),
//	)
//
//	results, err := script.Load(ctx, store, "tests/default.zst")
//
// # Features
//
//   - Range reads for efficient partial fetches
//   - Multipart uploads for large reports
//   - Automatic pagination for listing
//   - Configurable prefix and endpoint (S3-compatible services)
package s3
