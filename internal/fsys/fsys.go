// Package fsys defines the filesystem operations the storage bootstrap needs.
//
// Production code uses [OSFS], which delegates to the os package. Tests use
// [Fake], an in-memory filesystem that records calls and can inject errors.
package fsys

import (
	"os"
)

// FS abstracts the filesystem calls made while validating and initializing
// a storage root.
type FS interface {
	// Stat returns file info for the named file.
	Stat(name string) (os.FileInfo, error)

	// ReadFile reads the named file.
	ReadFile(name string) ([]byte, error)

	// ReadDir reads the named directory and returns its entries.
	ReadDir(name string) ([]os.DirEntry, error)

	// MkdirAll creates a directory path and all parents that do not exist.
	MkdirAll(path string, perm os.FileMode) error

	// WriteFile writes data to the named file, creating it if necessary.
	WriteFile(name string, data []byte, perm os.FileMode) error

	// Rename moves oldpath to newpath, replacing newpath if it exists.
	Rename(oldpath, newpath string) error

	// Remove deletes the named file.
	Remove(name string) error
}

// OSFS implements [FS] by delegating to the os package.
type OSFS struct{}

// Stat delegates to [os.Stat].
func (OSFS) Stat(name string) (os.FileInfo, error) {
	return os.Stat(name)
}

// ReadFile delegates to [os.ReadFile].
func (OSFS) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(name)
}

// ReadDir delegates to [os.ReadDir].
func (OSFS) ReadDir(name string) ([]os.DirEntry, error) {
	return os.ReadDir(name)
}

// MkdirAll delegates to [os.MkdirAll].
func (OSFS) MkdirAll(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm)
}

// WriteFile delegates to [os.WriteFile].
func (OSFS) WriteFile(name string, data []byte, perm os.FileMode) error {
	return os.WriteFile(name, data, perm)
}

// Rename delegates to [os.Rename].
func (OSFS) Rename(oldpath, newpath string) error {
	return os.Rename(oldpath, newpath)
}

// Remove delegates to [os.Remove].
func (OSFS) Remove(name string) error {
	return os.Remove(name)
}

// Exists reports whether name can be stat'ed. Any error, including
// permission failures, counts as absent.
func Exists(fs FS, name string) bool {
	_, err := fs.Stat(name)
	return err == nil
}

// IsDir reports whether name exists and is a directory.
func IsDir(fs FS, name string) bool {
	fi, err := fs.Stat(name)
	return err == nil && fi.IsDir()
}
