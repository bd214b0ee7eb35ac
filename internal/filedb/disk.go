package filedb

import (
	"errors"
	"io/fs"
	"os"

	"github.com/spf13/afero"
)

// Disk is the filesystem side of the store. Every failure comes back as
// an *IOError.
type Disk struct {
	fs afero.Fs
}

// NewDisk wraps an afero filesystem.
func NewDisk(fsys afero.Fs) *Disk {
	return &Disk{fs: fsys}
}

// OSDisk returns a Disk rooted at dataDir on the host filesystem, so stored
// relative paths such as filedb/7/3/a.txt resolve under it.
func OSDisk(dataDir string) *Disk {
	return NewDisk(afero.NewBasePathFs(afero.NewOsFs(), dataDir))
}

// EnsureDir creates dir and any missing parents.
func (d *Disk) EnsureDir(dir string) error {
	if err := d.fs.MkdirAll(dir, 0o755); err != nil {
		return &IOError{Op: "mkdir", Path: dir, Err: err}
	}
	return nil
}

// CreateEmpty creates a zero-length file. It reports false, without error,
// when something already exists at p.
func (d *Disk) CreateEmpty(p string) (bool, error) {
	exists, err := afero.Exists(d.fs, p)
	if err != nil {
		return false, &IOError{Op: "stat", Path: p, Err: err}
	}
	if exists {
		return false, nil
	}
	f, err := d.fs.OpenFile(p, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return false, &IOError{Op: "create", Path: p, Err: err}
	}
	if err := f.Close(); err != nil {
		return true, &IOError{Op: "close", Path: p, Err: err}
	}
	return true, nil
}

// Rename moves oldPath to newPath. It refuses to replace an existing file.
func (d *Disk) Rename(oldPath, newPath string) error {
	exists, err := afero.Exists(d.fs, newPath)
	if err != nil {
		return &IOError{Op: "stat", Path: newPath, Err: err}
	}
	if exists {
		return &IOError{Op: "rename", Path: newPath, Err: fs.ErrExist}
	}
	if err := d.fs.Rename(oldPath, newPath); err != nil {
		return &IOError{Op: "rename", Path: oldPath, Err: err}
	}
	return nil
}

// Remove deletes p. A file that is already gone is not an error.
func (d *Disk) Remove(p string) error {
	if err := d.fs.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return &IOError{Op: "remove", Path: p, Err: err}
	}
	return nil
}

// ReadAll returns the full content of p.
func (d *Disk) ReadAll(p string) ([]byte, error) {
	data, err := afero.ReadFile(d.fs, p)
	if err != nil {
		return nil, &IOError{Op: "read", Path: p, Err: err}
	}
	return data, nil
}

// WriteAll truncates p and writes data to it.
func (d *Disk) WriteAll(p string, data []byte) error {
	if err := afero.WriteFile(d.fs, p, data, 0o644); err != nil {
		return &IOError{Op: "write", Path: p, Err: err}
	}
	return nil
}
