// Copyright © 2018 One Concern

// Package provision makes sure the external texture packer is available locally.
//
// The runnable jar is downloaded once into a vendor directory. A marker object, written
// only after the jar is fully stored, tells later runs that no download is needed.
package provision
