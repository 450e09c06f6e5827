// Package localfs implements a storage.Store on a local file system.
//
// Writes are staged in a hidden area then renamed into place, so readers never observe a partially written object.
package localfs
