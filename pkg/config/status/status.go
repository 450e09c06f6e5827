// Package status exports errors produced by the config package.
package status

import (
	"github.com/oneconcern/texpack/pkg/errors"
)

var (
	// ErrConfigParse indicates that the job configuration file exists but is not a valid job configuration
	ErrConfigParse = errors.New("malformed job configuration")

	// ErrConfigRead indicates that the job configuration file could not be read
	ErrConfigRead = errors.New("cannot read job configuration")

	// ErrConfigWrite indicates that the default job configuration could not be written
	ErrConfigWrite = errors.New("cannot write default job configuration")
)
