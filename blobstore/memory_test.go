package blobstore

import (
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	_, err := store.Open(ctx, "missing")
	require.ErrorIs(t, err, ErrNotFound)

	data := []byte("hello")
	require.NoError(t, store.Put(ctx, "a/one", data))
	data[0] = 'j'

	got, err := ReadAll(ctx, store, "a/one")
	require.NoError(t, err)
	assert.Equal(t, "hello", string(got))

	w, err := store.Create(ctx, "b/two")
	require.NoError(t, err)
	_, err = io.WriteString(w, "world")
	require.NoError(t, err)
	require.NoError(t, w.Sync())

	names, err := store.List(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"a/one"}, names)

	require.NoError(t, w.Close())
	_, err = w.Write([]byte("late"))
	assert.Error(t, err)

	names, err = store.List(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"a/one", "b/two"}, names)

	names, err = store.List(ctx, "b/")
	require.NoError(t, err)
	assert.Equal(t, []string{"b/two"}, names)

	blob, err := store.Open(ctx, "b/two")
	require.NoError(t, err)
	assert.Equal(t, int64(5), blob.Size())

	buf := make([]byte, 3)
	n, err := blob.ReadAt(ctx, buf, 3)
	assert.Equal(t, 2, n)
	assert.ErrorIs(t, err, io.EOF)
	assert.Equal(t, "ld", string(buf[:n]))

	_, err = blob.ReadRange(ctx, 6, 1)
	assert.ErrorIs(t, err, io.EOF)
	require.NoError(t, blob.Close())

	require.NoError(t, store.Delete(ctx, "a/one"))
	_, err = store.Open(ctx, "a/one")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestClampRange(t *testing.T) {
	testCases := []struct {
		off, length, size int64
		start, end        int64
		eof               bool
	}{
		{0, 10, 10, 0, 10, false},
		{2, 3, 10, 2, 5, false},
		{8, 5, 10, 8, 10, false},
		{10, 1, 10, 10, 10, false},
		{11, 1, 10, 0, 0, true},
		{-1, 1, 10, 0, 0, true},
		{0, -1, 10, 0, 10, false},
	}
	for _, tc := range testCases {
		start, end, err := clampRange(tc.off, tc.length, tc.size)
		if tc.eof {
			assert.ErrorIs(t, err, io.EOF)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tc.start, start)
		assert.Equal(t, tc.end, end)
	}
}
