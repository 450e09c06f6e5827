// Copyright © 2018 One Concern

package localfs

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/oneconcern/texpack/pkg/errors"
	"github.com/oneconcern/texpack/pkg/storage"
	"github.com/oneconcern/texpack/pkg/storage/status"
)

type localFS struct {
	fs afero.Fs
}

func (l *localFS) Has(ctx context.Context, key string) (bool, error) {
	fi, err := l.fs.Stat(key)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}

	return !fi.IsDir(), nil
}

func (l *localFS) Delete(ctx context.Context, key string) error {
	if err := l.fs.Remove(key); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing %q: %w", key, err)
	}
	return nil
}

func (l *localFS) String() string {
	const localfs = "localfs"
	switch fs := l.fs.(type) {
	case *afero.BasePathFs:
		pp, err := fs.RealPath("")
		if err != nil {
			return localfs
		}
		return localfs + "@" + pp
	default:
		return localfs
	}
}

/* thread-safe local storage implementation.
 * use a decorator pattern to implement atomic Put()s via atomicity of afero.Fs.Rename()
 * for those filesystems where Rename() is thread-safe:  files are placed in a staging area,
 * under a unique name, then Rename()d into place.
 */

/* staging area key prefix and helper functions */
const (
	nestedPutStageName = ".put-stage"
)

func maybeInvalidKey(key string) error {
	const pathSepString = string(os.PathSeparator)
	pathComponents := strings.Split(strings.TrimLeft(key, pathSepString), pathSepString)
	if len(pathComponents) == 0 {
		return nil
	}
	if pathComponents[0] == nestedPutStageName {
		return errors.New(fmt.Sprintf("key '%v' conflicts with put staging area name '%v'", key, nestedPutStageName)).Wrap(status.ErrInvalidKey)
	}
	return nil
}

// NewAtomic creates a local file system store with atomic writes.
//
// A nil fs defaults to the OS file system rooted at the working directory.
// Nothing is written to fs before the first Put: a read-only fs serves Has and Delete lookups.
func NewAtomic(fs afero.Fs) storage.Store {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &localFSAtomic{
		storeImpl: localFS{fs: fs},
	}
}

// NewAtomicAt creates an atomic local file system store rooted at dir.
//
// dir is created on the first Put. An existing dir, e.g. left over by an interrupted run, is reused as is.
func NewAtomicAt(dir string) (storage.Store, error) {
	fi, err := os.Stat(dir)
	switch {
	case err == nil && !fi.IsDir():
		return nil, fmt.Errorf("store location %q is not a directory", dir)
	case err != nil && !os.IsNotExist(err):
		return nil, fmt.Errorf("inspecting store directory %q: %w", dir, err)
	}
	return NewAtomic(afero.NewBasePathFs(afero.NewOsFs(), dir)), nil
}

type localFSAtomic struct {
	storeImpl localFS
}

/* implementing the Store interface is mostly a matter of wrapping the decorated localFs's
 * interface with helper functions.
 */

func (l *localFSAtomic) Has(ctx context.Context, key string) (bool, error) {
	if err := maybeInvalidKey(key); err != nil {
		return false, err
	}
	return l.storeImpl.Has(ctx, key)
}

func (l *localFSAtomic) Delete(ctx context.Context, key string) error {
	if err := maybeInvalidKey(key); err != nil {
		return err
	}
	return l.storeImpl.Delete(ctx, key)
}

/* the Put() implementation is the only part of the Store interface implemented
 * outside of the functional wrap design pattern
 */
func (l *localFSAtomic) Put(ctx context.Context, key string, source io.Reader, overwrite bool) error {
	if err := maybeInvalidKey(key); err != nil {
		return err
	}
	fs := l.storeImpl.fs

	/* the staging area exists within the afero.Fs itself */
	if err := fs.MkdirAll(nestedPutStageName, 0700); err != nil {
		return fmt.Errorf("ensuring put staging directory for %q: %w: %w", key, status.ErrStaging, err)
	}
	staged, err := afero.TempFile(fs, nestedPutStageName, filepath.Base(key)+".")
	if err != nil {
		return errors.New(fmt.Sprintf("create staging record for %q", key)).Wrap(err)
	}
	stageKey := filepath.Join(nestedPutStageName, filepath.Base(staged.Name()))
	discard := func() {
		_ = staged.Close()
		_ = fs.Remove(stageKey)
	}

	if _, err = io.Copy(staged, contextReader{ctx: ctx, Reader: source}); err != nil {
		discard()
		return fmt.Errorf("write record for %q: %w: %w", key, status.ErrStaging, err)
	}
	if err = staged.Sync(); err != nil {
		discard()
		return errors.New(fmt.Sprintf("sync record for %q", key)).Wrap(err)
	}
	if err = staged.Close(); err != nil {
		_ = fs.Remove(stageKey)
		return errors.New(fmt.Sprintf("close record for %q", key)).Wrap(err)
	}

	if !overwrite {
		has, erh := l.storeImpl.Has(ctx, key)
		if erh != nil || has {
			_ = fs.Remove(stageKey)
			if erh != nil {
				return erh
			}
			return errors.New(fmt.Sprintf("put %q", key)).Wrap(status.ErrExists)
		}
	}

	/* Rename() doesn't create directories automatically */
	if dir := filepath.Dir(key); dir != "." {
		if err = fs.MkdirAll(dir, 0700); err != nil {
			_ = fs.Remove(stageKey)
			return fmt.Errorf("ensuring directories for %q: %w", key, err)
		}
	}
	if err = fs.Rename(stageKey, key); err != nil {
		_ = fs.Remove(stageKey)
		return errors.New(fmt.Sprintf("commit record for %q", key)).Wrap(err)
	}
	return nil
}

// dupe: localFs.String
func (l *localFSAtomic) String() string {
	const localfs = "localfs-atomic"
	switch fs := l.storeImpl.fs.(type) {
	case *afero.BasePathFs:
		pp, err := fs.RealPath("")
		if err != nil {
			return localfs
		}
		return localfs + "@" + pp
	default:
		return localfs
	}
}

// contextReader stops copying once the context is done
type contextReader struct {
	ctx context.Context
	io.Reader
}

func (r contextReader) Read(p []byte) (int, error) {
	if err := r.ctx.Err(); err != nil {
		return 0, err
	}
	return r.Reader.Read(p)
}
