// Package minio provides a BlobStore implementation using the MinIO client.
//
// MinIO is a high-performance, S3-compatible object storage system. This package
// uses the official MinIO Go client library and also works with other
// S3-compatible systems like Ceph, SeaweedFS, and Garage.
//
// # Basic Usage
//
//	store, err := minio.Dial(minio.Config{
//	    Endpoint:  "localhost:9000",
//	    AccessKey: "minioadmin",
//	    SecretKey: "minioadmin",
//	    Bucket:    "everybit",
//	    Prefix:    "scripts/",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	results, err := script.Load(ctx, store, "default.gz")
//
// Use NewStore to wrap an existing *minio.Client.
package minio
