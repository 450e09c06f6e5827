// Copyright © 2018 One Concern

package localfs

import (
	"bytes"
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oneconcern/texpack/pkg/storage"
	"github.com/oneconcern/texpack/pkg/storage/status"
)

var errBrokenPipe = errors.New("connection reset")

// truncatedReader yields some data then fails
type truncatedReader struct {
	data []byte
	done bool
}

func (r *truncatedReader) Read(p []byte) (int, error) {
	if r.done {
		return 0, errBrokenPipe
	}
	r.done = true
	return copy(p, r.data), nil
}

func setupStore(t testing.TB) (storage.Store, afero.Fs) {
	t.Helper()

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "sixteentons", []byte("this is the text"), 0600))
	return NewAtomic(fs), fs
}

func TestHas(t *testing.T) {
	bs, _ := setupStore(t)

	has, err := bs.Has(context.Background(), "sixteentons")
	require.NoError(t, err)
	require.True(t, has)

	has, err = bs.Has(context.Background(), "fifteentons")
	require.NoError(t, err)
	require.False(t, has)

	// directories are not objects
	has, err = bs.Has(context.Background(), nestedPutStageName+"x")
	require.NoError(t, err)
	require.False(t, has)

	_, err = bs.Has(context.Background(), filepath.Join(nestedPutStageName, "x"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrInvalidKey))
}

func TestDelete(t *testing.T) {
	bs, fs := setupStore(t)

	require.NoError(t, bs.Delete(context.Background(), "sixteentons"))
	exists, err := afero.Exists(fs, "sixteentons")
	require.NoError(t, err)
	assert.False(t, exists)

	// deleting a missing object is not an error
	require.NoError(t, bs.Delete(context.Background(), "sixteentons"))
}

func TestPut(t *testing.T) {
	bs, fs := setupStore(t)
	ctx := context.Background()

	content := bytes.NewBufferString("here we go once again")
	require.NoError(t, bs.Put(ctx, "nested/eighteentons", content, storage.NoOverWrite))

	b, err := afero.ReadFile(fs, "nested/eighteentons")
	require.NoError(t, err)
	assert.Equal(t, "here we go once again", string(b))

	err = bs.Put(ctx, "nested/eighteentons", strings.NewReader("again"), storage.NoOverWrite)
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrExists))

	require.NoError(t, bs.Put(ctx, "nested/eighteentons", strings.NewReader("again"), storage.OverWrite))
	b, err = afero.ReadFile(fs, "nested/eighteentons")
	require.NoError(t, err)
	assert.Equal(t, "again", string(b))

	assertStageEmpty(t, fs)
}

func TestPutTruncated(t *testing.T) {
	bs, fs := setupStore(t)

	err := bs.Put(context.Background(), "packer.jar", &truncatedReader{data: []byte("PK\x03\x04partial")}, storage.OverWrite)
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrStaging))
	assert.True(t, errors.Is(err, errBrokenPipe))

	exists, err := afero.Exists(fs, "packer.jar")
	require.NoError(t, err)
	assert.False(t, exists)
	assertStageEmpty(t, fs)
}

func TestPutCanceled(t *testing.T) {
	bs, fs := setupStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := bs.Put(ctx, "packer.jar", strings.NewReader("content"), storage.OverWrite)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))

	exists, err := afero.Exists(fs, "packer.jar")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestPutInvalidKey(t *testing.T) {
	bs, _ := setupStore(t)
	err := bs.Put(context.Background(), filepath.Join(nestedPutStageName, "x"), strings.NewReader("x"), storage.OverWrite)
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrInvalidKey))
}

func TestPutConcurrent(t *testing.T) {
	bs, fs := setupStore(t)
	ctx := context.Background()

	const writers = 8
	errc := make(chan error, writers)
	for i := 0; i < writers; i++ {
		go func() {
			errc <- bs.Put(ctx, "packer.jar", io.LimitReader(bytes.NewReader(bytes.Repeat([]byte("x"), 4096)), 4096), storage.OverWrite)
		}()
	}
	for i := 0; i < writers; i++ {
		require.NoError(t, <-errc)
	}

	b, err := afero.ReadFile(fs, "packer.jar")
	require.NoError(t, err)
	assert.Len(t, b, 4096)
	assertStageEmpty(t, fs)
}

func TestString(t *testing.T) {
	bs, _ := setupStore(t)
	assert.Equal(t, "localfs-atomic", bs.String())

	dir := t.TempDir()
	bs, err := NewAtomicAt(filepath.Join(dir, "vendor"))
	require.NoError(t, err)
	assert.Equal(t, "localfs-atomic@"+filepath.Join(dir, "vendor"), bs.String())
}

func TestNewAtomicReadOnly(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "marker", []byte("marked"), 0600))
	bs := NewAtomic(afero.NewReadOnlyFs(fs))
	ctx := context.Background()

	has, err := bs.Has(ctx, "marker")
	require.NoError(t, err)
	assert.True(t, has)

	err = bs.Put(ctx, "packer.jar", strings.NewReader("content"), storage.OverWrite)
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrStaging))

	exists, err := afero.DirExists(fs, nestedPutStageName)
	require.NoError(t, err)
	assert.False(t, exists, "no staging area on a read-only store")
}

func TestNewAtomicAt(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "vendor")
	ctx := context.Background()

	bs, err := NewAtomicAt(dir)
	require.NoError(t, err)
	assert.NoDirExists(t, dir, "the store directory is created on first write")

	has, err := bs.Has(ctx, "marker")
	require.NoError(t, err)
	assert.False(t, has)

	require.NoError(t, bs.Put(ctx, "marker", strings.NewReader("marked"), storage.NoOverWrite))
	assert.FileExists(t, filepath.Join(dir, "marker"))

	// an existing directory is reused
	bs, err = NewAtomicAt(dir)
	require.NoError(t, err)
	has, err = bs.Has(ctx, "marker")
	require.NoError(t, err)
	assert.True(t, has)

	_, err = NewAtomicAt(filepath.Join(dir, "marker"))
	require.Error(t, err)
}

func assertStageEmpty(t testing.TB, fs afero.Fs) {
	t.Helper()
	staged, err := afero.ReadDir(fs, nestedPutStageName)
	require.NoError(t, err)
	assert.Empty(t, staged)
}
