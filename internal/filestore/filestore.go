// Package filestore stores named data files, such as collection archives,
// outside the document store.
package filestore

import (
	"context"
	"errors"
	"io"
)

// ErrNotFound is returned when no file has the requested name.
var ErrNotFound = errors.New("file not found")

type FileStore interface {
	// Save writes r under name, replacing any existing file. Readers of the
	// old file never see a partial write.
	Save(ctx context.Context, name string, r io.Reader) error
	Open(ctx context.Context, name string) (io.ReadCloser, error)
}
