// Copyright © 2018 One Concern

// Package storage provides interface to handle backend storage objects.
//
// This package supports the following backends:
//   - local file system, with atomic writes (vendored tools)
//
// Remote sources the vendored tools are fetched from live in the provision package.
package storage
