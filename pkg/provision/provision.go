// Copyright © 2018 One Concern

package provision

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/docker/go-units"
	"github.com/kardianos/osext"
	"go.uber.org/zap"

	"github.com/oneconcern/texpack/pkg/errors"
	"github.com/oneconcern/texpack/pkg/provision/status"
	"github.com/oneconcern/texpack/pkg/storage"
	"github.com/oneconcern/texpack/pkg/storage/localfs"
	storagestatus "github.com/oneconcern/texpack/pkg/storage/status"
)

const (
	// JarKey is the name of the runnable jar in the vendor directory
	JarKey = "packer.jar"

	// MarkerKey is the name of the marker in the vendor directory
	MarkerKey = "marker"

	// VendorDirName is the name of the vendor directory, next to the texpack executable
	VendorDirName = "vendor"

	markerContent = "marked"
)

var executableFolder = osext.ExecutableFolder

// DefaultVendorDir is the vendor directory located next to the running executable.
func DefaultVendorDir() (string, error) {
	dir, err := executableFolder()
	if err != nil {
		return "", errors.New("cannot locate the texpack executable").Wrap(err)
	}
	return filepath.Join(dir, VendorDirName), nil
}

// DownloadFailure reports a failed download of the runnable jar.
//
// Status is the response status code, or 0 when no response was received.
type DownloadFailure struct {
	Source  string
	Status  int
	Message string
	Err     error
}

func (e *DownloadFailure) Error() string {
	var b strings.Builder
	b.WriteString(status.ErrDownload.Error())
	b.WriteString(" from ")
	b.WriteString(e.Source)
	if e.Status != 0 {
		fmt.Fprintf(&b, ": %d", e.Status)
	} else {
		b.WriteString(":")
	}
	if e.Message != "" {
		b.WriteString(" ")
		b.WriteString(e.Message)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, " (%v)", e.Err)
	}
	return b.String()
}

// Unwrap the transport error, if any
func (e *DownloadFailure) Unwrap() error {
	return e.Err
}

// Is a DownloadFailure a status.ErrDownload
func (e *DownloadFailure) Is(target error) bool {
	return target == status.ErrDownload
}

// Provisioner makes the runnable jar available in a vendor directory
type Provisioner struct {
	dir     string
	store   storage.Store
	fetcher Fetcher
	logger  *zap.Logger
}

// New provisioner for the vendor directory dir
func New(dir string, opts ...Option) *Provisioner {
	p := &Provisioner{
		dir:     dir,
		fetcher: NewHTTPFetcher(DefaultSourceURL, nil),
		logger:  zap.NewNop(),
	}
	for _, apply := range opts {
		apply(p)
	}
	return p
}

// JarPath is the location of the runnable jar once provisioned
func (p *Provisioner) JarPath() string {
	return filepath.Join(p.dir, JarKey)
}

// Dir is the vendor directory
func (p *Provisioner) Dir() string {
	return p.dir
}

func (p *Provisioner) vendorStore() (storage.Store, error) {
	if p.store != nil {
		return p.store, nil
	}
	store, err := localfs.NewAtomicAt(p.dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", status.ErrVendorStore, err)
	}
	p.store = store
	return store, nil
}

// Provisioned tells if the marker is present
func (p *Provisioner) Provisioned(ctx context.Context) (bool, error) {
	store, err := p.vendorStore()
	if err != nil {
		return false, err
	}
	return store.Has(ctx, MarkerKey)
}

// EnsureAvailable downloads the runnable jar unless the marker says it is already there.
//
// A provisioned vendor directory is only read, so it may be read-only.
// The jar is committed atomically once fully downloaded, and the marker is committed last:
// an interrupted download leaves no marker behind and the next run downloads again.
func (p *Provisioner) EnsureAvailable(ctx context.Context) error {
	store, err := p.vendorStore()
	if err != nil {
		return err
	}
	provisioned, err := store.Has(ctx, MarkerKey)
	if err != nil {
		return errors.New("checking vendor marker").Wrap(err)
	}
	if provisioned {
		p.logger.Debug("runnable jar already provisioned", zap.String("jar", p.JarPath()))
		return nil
	}

	p.logger.Info("downloading runnable jar", zap.Stringer("source", p.fetcher), zap.Stringer("vendor", store))
	body, err := p.fetcher.Fetch(ctx)
	if err != nil {
		p.logger.Error("download failed", zap.Error(err))
		return err
	}
	defer func() {
		_ = body.Close()
	}()

	counter := &storage.CountingReader{Reader: body}
	if err = store.Put(ctx, JarKey, counter, storage.OverWrite); err != nil {
		p.logger.Error("download interrupted", zap.Error(err))
		return &DownloadFailure{
			Source:  p.fetcher.String(),
			Message: "transfer interrupted after " + units.HumanSize(float64(counter.N)),
			Err:     err,
		}
	}
	p.logger.Info("downloaded runnable jar", zap.String("jar", p.JarPath()), zap.String("size", units.HumanSize(float64(counter.N))))

	err = store.Put(ctx, MarkerKey, strings.NewReader(markerContent), storage.NoOverWrite)
	switch {
	case errors.Is(err, storagestatus.ErrExists):
		p.logger.Debug("vendor marker written by a concurrent run", zap.String("dir", p.dir))
	case err != nil:
		return errors.New("writing vendor marker").Wrap(err)
	}
	return nil
}

// Reset removes the marker then the jar, so the next EnsureAvailable downloads again
func (p *Provisioner) Reset(ctx context.Context) error {
	store, err := p.vendorStore()
	if err != nil {
		return err
	}
	if err = store.Delete(ctx, MarkerKey); err != nil {
		return errors.New("removing vendor marker").Wrap(err)
	}
	if err = store.Delete(ctx, JarKey); err != nil {
		return errors.New("removing runnable jar").Wrap(err)
	}
	p.logger.Info("vendor directory reset", zap.String("dir", p.dir))
	return nil
}
