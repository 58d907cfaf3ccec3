// Package tempstore provides the TempStore collaborator that [pkg/multipart]
// uses to spool non-text parts to disk instead of memory.
package tempstore

import "os"

// Store creates temporary files for large/binary multipart parts.
// Production code uses [OS]; tests can supply an in-memory fake.
type Store interface {
	CreateTempFile(prefix, suffix string) (*os.File, error)
}

// OS is a [Store] backed by [os.CreateTemp] in the system temp directory.
type OS struct {
	// Dir overrides the default temp directory when non-empty.
	Dir string
}

func (o OS) CreateTempFile(prefix, suffix string) (*os.File, error) {
	return os.CreateTemp(o.Dir, prefix+"*"+suffix)
}
