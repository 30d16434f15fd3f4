package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "store.json")

	fs, err := OpenFileStore(path)
	require.NoError(t, err)

	_, ok, err := fs.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, fs.Set(ctx, "admin_authenticated", "true"))

	v, ok, err := fs.Get(ctx, "admin_authenticated")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "true", v)

	// survives reopen
	fs2, err := OpenFileStore(path)
	require.NoError(t, err)
	v, ok, err = fs2.Get(ctx, "admin_authenticated")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "true", v)

	require.NoError(t, fs2.Delete(ctx, "admin_authenticated"))
	_, ok, err = fs2.Get(ctx, "admin_authenticated")
	require.NoError(t, err)
	assert.False(t, ok)

	// deleting a missing key is a no-op
	require.NoError(t, fs2.Delete(ctx, "admin_authenticated"))
}

func TestFileStoreCorruptFileStartsFresh(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "store.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	fs, err := OpenFileStore(path)
	require.NoError(t, err)

	_, ok, err := fs.Get(ctx, "anything")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisStore(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)

	rs, err := OpenRedisStore("redis://" + mr.Addr())
	require.NoError(t, err)
	defer rs.Close()

	_, ok, err := rs.Get(ctx, "flag")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, rs.Set(ctx, "flag", "true"))

	v, ok, err := rs.Get(ctx, "flag")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "true", v)

	// keys are namespaced
	assert.True(t, mr.Exists("westcutz:flag"))

	require.NoError(t, rs.Delete(ctx, "flag"))
	_, ok, err = rs.Get(ctx, "flag")
	require.NoError(t, err)
	assert.False(t, ok)
}
