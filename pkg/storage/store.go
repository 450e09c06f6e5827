// Copyright © 2018 One Concern

package storage

import (
	"context"
	"io"
)

const (
	// OverWrite allows Put to replace an existing object
	OverWrite = true

	// NoOverWrite makes Put fail with status.ErrExists on an existing object
	NoOverWrite = false
)

// Store implementations know how to write entries to a K/V model.Store.
//
// Typically this is something file system-like.
// Implementations of this interface are assumed to be fairly simple.
type Store interface {
	String() string
	Has(context.Context, string) (bool, error)
	Put(context.Context, string, io.Reader, bool) error
	Delete(context.Context, string) error
}

// CountingReader counts the bytes read through it
type CountingReader struct {
	io.Reader
	N int64
}

func (r *CountingReader) Read(p []byte) (int, error) {
	n, err := r.Reader.Read(p)
	r.N += int64(n)
	return n, err
}
