// Package status exports errors produced by the provision package.
package status

import (
	"github.com/oneconcern/texpack/pkg/errors"
)

var (
	// ErrDownload indicates that the runnable jar could not be downloaded
	ErrDownload = errors.New("download failed")

	// ErrUnsupportedSource indicates a download URL with an unsupported scheme
	ErrUnsupportedSource = errors.New("unsupported download source")

	// ErrVendorStore indicates that the local vendor directory is not usable
	ErrVendorStore = errors.New("vendor directory unavailable")
)
