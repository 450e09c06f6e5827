// Package status exports errors produced by the core package.
package status

import (
	"github.com/oneconcern/texpack/pkg/errors"
)

var (
	// ErrUnpackPhase indicates that at least one unpacking job failed. The packing phase did not run.
	ErrUnpackPhase = errors.New("unpacking failed")

	// ErrPackPhase indicates that at least one packing job failed
	ErrPackPhase = errors.New("packing failed")

	// ErrProvision indicates that the runnable jar could not be made available
	ErrProvision = errors.New("cannot provision the texture packer")
)
