// Copyright © 2018 One Concern

// Package status declares error constants returned by
// implementations of the Store interface.
//
// NOTE: such constants are located in a separate package to avoid
// creating undue cyclical dependencies between pkg/storage and one
// of its implementions.
package status

import "github.com/oneconcern/texpack/pkg/errors"

var (
	// Sentinel errors returned by implementations of the interface defined by storage

	// ErrExists indicates that an object already exists and may not be overwritten
	ErrExists = errors.New("object exists already")

	// ErrInvalidKey indicates a key that conflicts with the internals of the store
	ErrInvalidKey = errors.New("invalid key")

	// ErrStaging indicates that an object could not be fully written to the staging area
	ErrStaging = errors.New("cannot stage object")
)
