package filedb

import (
	"errors"
	"fmt"

	"github.com/wagnerlima/memory-cloud/filedb-mcp/internal/storage"
)

var (
	// ErrNotFound is returned when a referenced file, folder or project does
	// not exist. It is the storage sentinel, so lookups need no translation.
	ErrNotFound = storage.ErrNotFound
	// ErrDuplicateName is returned when a sibling in the target scope already
	// carries the requested name. Nothing on disk or in the store was touched.
	ErrDuplicateName = errors.New("duplicate file name")
	// ErrInvalidName is returned for names that cannot be a single path element.
	ErrInvalidName = errors.New("invalid file name")
)

// IOError reports a failed filesystem call.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }
