// Package status exports errors produced by the runner package.
package status

import (
	"github.com/oneconcern/texpack/pkg/errors"
)

var (
	// ErrMissingRuntime indicates that the java runtime cannot be found on the PATH
	ErrMissingRuntime = errors.New("java not installed, need a jvm/jdk to run the packer")

	// ErrExitFailure indicates that a job process exited with a non-zero status
	ErrExitFailure = errors.New("job process exited with a non-zero status")

	// ErrSpawn indicates that a job process could not be started
	ErrSpawn = errors.New("job process failed to start")
)
