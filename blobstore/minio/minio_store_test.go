package minio

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/hupe1980/everybit/blobstore"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ blobstore.BlobStore = (*Store)(nil)

func TestStore_Key(t *testing.T) {
	s := NewStore(nil, "bucket", "everybit/")
	assert.Equal(t, "everybit/tests/default", s.key("tests/default"))

	s = NewStore(nil, "bucket", "")
	assert.Equal(t, "default", s.key("default"))
}

func TestDial_InvalidEndpoint(t *testing.T) {
	_, err := Dial(Config{Endpoint: "http://localhost:9000", Bucket: "b"})
	assert.Error(t, err)
}

func TestStore_OpenNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	store, err := Dial(Config{
		Endpoint: strings.TrimPrefix(srv.URL, "http://"),
		Region:   "us-east-1",
		Bucket:   "scripts",
	})
	require.NoError(t, err)

	_, err = store.Open(context.Background(), "missing.txt")
	assert.ErrorIs(t, err, blobstore.ErrNotFound)
}

// TestMinioStore_Integration requires a running MinIO instance.
// Skip if not available.
func TestMinioStore_Integration(t *testing.T) {
	endpoint := os.Getenv("EVERYBIT_MINIO_ENDPOINT")
	if endpoint == "" {
		endpoint = "localhost:9000"
	}
	bucket := "test-everybit"

	store, err := Dial(Config{
		Endpoint:  endpoint,
		AccessKey: "minioadmin",
		SecretKey: "minioadmin",
		Bucket:    bucket,
		Prefix:    "test-prefix/",
	})
	if err != nil {
		t.Skipf("MinIO client creation failed: %v", err)
	}
	client := store.client

	ctx := context.Background()

	// Check if MinIO is reachable
	if _, err = client.ListBuckets(ctx); err != nil {
		t.Skipf("MinIO not available: %v", err)
	}

	// Ensure bucket exists
	exists, err := client.BucketExists(ctx, bucket)
	require.NoError(t, err)
	if !exists {
		require.NoError(t, client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}))
	}

	// Test Put and Open
	data := []byte("t 0\nn 10010110\ne 10010110\n")
	require.NoError(t, store.Put(ctx, "basic.txt", data))

	blob, err := store.Open(ctx, "basic.txt")
	require.NoError(t, err)
	require.Equal(t, int64(len(data)), blob.Size())

	buf := make([]byte, len(data))
	n, err := blob.ReadAt(ctx, buf, 0)
	require.NoError(t, err)
	require.Equal(t, len(data), n)
	require.Equal(t, data, buf)
	require.NoError(t, blob.Close())

	// Test ReadRange
	blob2, err := store.Open(ctx, "basic.txt")
	require.NoError(t, err)
	rc, err := blob2.ReadRange(ctx, 6, 8)
	require.NoError(t, err)
	part, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "10010110", string(part))
	require.NoError(t, rc.Close())
	require.NoError(t, blob2.Close())

	// Test List
	names, err := store.List(ctx, "")
	require.NoError(t, err)
	assert.Contains(t, names, "basic.txt")

	// Test Delete
	require.NoError(t, store.Delete(ctx, "basic.txt"))

	_, err = store.Open(ctx, "basic.txt")
	require.ErrorIs(t, err, blobstore.ErrNotFound)

	// Test Create (streaming)
	wb, err := store.Create(ctx, "report.txt")
	require.NoError(t, err)
	_, err = wb.Write([]byte("TIER SIZE(B)"))
	require.NoError(t, err)
	require.NoError(t, wb.Close())

	blob3, err := store.Open(ctx, "report.txt")
	require.NoError(t, err)
	assert.Equal(t, int64(12), blob3.Size())
	require.NoError(t, blob3.Close())

	// Cleanup
	_ = store.Delete(ctx, "report.txt")
}
