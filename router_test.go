package olojs

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Router_LongestPrefixWins(t *testing.T) {
	ctx := context.Background()
	outer := NewMemoryStore(map[string]string{"/x": "outer x"})
	inner := NewMemoryStore(map[string]string{"/x": "inner x"})

	r := NewRouter()
	r.Mount("/", outer)
	r.Mount("/deep", inner)

	src, err := r.Read(ctx, "/x")
	require.NoError(t, err)
	assert.Equal(t, "outer x", src)

	src, err = r.Read(ctx, "/deep/x")
	require.NoError(t, err)
	assert.Equal(t, "inner x", src)
}

func Test_Router_RebasesPaths(t *testing.T) {
	ctx := context.Background()
	docs := NewMemoryStore(nil)
	r := NewRouter()
	r.Mount("/mnt", docs)

	require.NoError(t, r.Write(ctx, "/mnt/a/b", "source"))
	// the mounted store sees the path below the mount point
	src, err := docs.Read(ctx, "/a/b")
	require.NoError(t, err)
	assert.Equal(t, "source", src)

	require.NoError(t, r.Delete(ctx, "/mnt/a/b"))
	_, err = docs.Read(ctx, "/a/b")
	assert.ErrorIs(t, err, ErrNotFound)
}

func Test_Router_NoMount(t *testing.T) {
	ctx := context.Background()
	r := NewRouter()
	_, err := r.Read(ctx, "/nowhere")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, r.Write(ctx, "/nowhere", "x"), ErrReadOnly)
}

func Test_Router_Unmount(t *testing.T) {
	ctx := context.Background()
	r := NewRouter()
	r.Mount("/m", NewMemoryStore(map[string]string{"/d": "doc"}))

	_, err := r.Read(ctx, "/m/d")
	require.NoError(t, err)

	r.Unmount("/m")
	_, err = r.Read(ctx, "/m/d")
	assert.ErrorIs(t, err, ErrNotFound)
}

func Test_Router_IsAStore(t *testing.T) {
	// routers nest
	inner := NewRouter()
	inner.Mount("/", NewMemoryStore(map[string]string{"/leaf": "nested"}))
	outer := NewRouter()
	outer.Mount("/in", inner)

	src, err := outer.Read(context.Background(), "/in/leaf")
	require.NoError(t, err)
	assert.Equal(t, "nested", src)
}
