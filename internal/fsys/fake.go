package fsys

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// Fake is an in-memory [FS] for tests. Populate Dirs, Files and Errors
// before use; every call is appended to Calls.
type Fake struct {
	Dirs   map[string]bool   // existing directories
	Files  map[string][]byte // existing files
	Errors map[string]error  // path → injected error, checked first
	Calls  []Call
}

// Call records a single method invocation on [Fake].
type Call struct {
	Method string
	Path   string
}

// NewFake returns a [Fake] with empty maps.
func NewFake() *Fake {
	return &Fake{
		Dirs:   make(map[string]bool),
		Files:  make(map[string][]byte),
		Errors: make(map[string]error),
	}
}

// Stat returns info based on the Dirs and Files maps.
func (f *Fake) Stat(name string) (os.FileInfo, error) {
	f.record("Stat", name)
	if err, ok := f.Errors[name]; ok {
		return nil, err
	}
	name = filepath.Clean(name)
	if f.Dirs[name] {
		return fakeFileInfo{name: filepath.Base(name), dir: true}, nil
	}
	if data, ok := f.Files[name]; ok {
		return fakeFileInfo{name: filepath.Base(name), size: int64(len(data))}, nil
	}
	return nil, &os.PathError{Op: "stat", Path: name, Err: os.ErrNotExist}
}

// ReadFile returns a copy of the stored contents.
func (f *Fake) ReadFile(name string) ([]byte, error) {
	f.record("ReadFile", name)
	if err, ok := f.Errors[name]; ok {
		return nil, err
	}
	name = filepath.Clean(name)
	if data, ok := f.Files[name]; ok {
		cp := make([]byte, len(data))
		copy(cp, data)
		return cp, nil
	}
	if f.Dirs[name] {
		return nil, &os.PathError{Op: "read", Path: name, Err: errIsDir}
	}
	return nil, &os.PathError{Op: "read", Path: name, Err: os.ErrNotExist}
}

// ReadDir returns the direct children of name, sorted by name.
func (f *Fake) ReadDir(name string) ([]os.DirEntry, error) {
	f.record("ReadDir", name)
	if err, ok := f.Errors[name]; ok {
		return nil, err
	}
	name = filepath.Clean(name)
	if !f.Dirs[name] {
		return nil, &os.PathError{Op: "readdir", Path: name, Err: os.ErrNotExist}
	}

	seen := make(map[string]bool)
	var entries []os.DirEntry
	for d := range f.Dirs {
		if filepath.Dir(d) == name && d != name && !seen[filepath.Base(d)] {
			seen[filepath.Base(d)] = true
			entries = append(entries, fakeDirEntry{name: filepath.Base(d), dir: true})
		}
	}
	for p, data := range f.Files {
		if filepath.Dir(p) == name && !seen[filepath.Base(p)] {
			seen[filepath.Base(p)] = true
			entries = append(entries, fakeDirEntry{name: filepath.Base(p), size: int64(len(data))})
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})
	return entries, nil
}

// MkdirAll adds the directory and all of its parents to Dirs.
func (f *Fake) MkdirAll(path string, _ os.FileMode) error {
	f.record("MkdirAll", path)
	if err, ok := f.Errors[path]; ok {
		return err
	}
	for p := filepath.Clean(path); p != "." && p != string(filepath.Separator); p = filepath.Dir(p) {
		if _, isFile := f.Files[p]; isFile {
			return &os.PathError{Op: "mkdir", Path: p, Err: errNotDir}
		}
		f.Dirs[p] = true
	}
	return nil
}

// WriteFile stores a copy of data under name.
func (f *Fake) WriteFile(name string, data []byte, _ os.FileMode) error {
	f.record("WriteFile", name)
	if err, ok := f.Errors[name]; ok {
		return err
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	f.Files[filepath.Clean(name)] = cp
	return nil
}

// Rename moves a file in the Files map.
func (f *Fake) Rename(oldpath, newpath string) error {
	f.record("Rename", oldpath)
	if err, ok := f.Errors[oldpath]; ok {
		return err
	}
	if err, ok := f.Errors[newpath]; ok {
		return err
	}
	oldpath, newpath = filepath.Clean(oldpath), filepath.Clean(newpath)
	if data, ok := f.Files[oldpath]; ok {
		f.Files[newpath] = data
		delete(f.Files, oldpath)
		return nil
	}
	return &os.PathError{Op: "rename", Path: oldpath, Err: os.ErrNotExist}
}

// Remove deletes a file from the Files map.
func (f *Fake) Remove(name string) error {
	f.record("Remove", name)
	if err, ok := f.Errors[name]; ok {
		return err
	}
	name = filepath.Clean(name)
	if _, ok := f.Files[name]; ok {
		delete(f.Files, name)
		return nil
	}
	return &os.PathError{Op: "remove", Path: name, Err: os.ErrNotExist}
}

// Called reports how many times method was invoked.
func (f *Fake) Called(method string) int {
	n := 0
	for _, c := range f.Calls {
		if c.Method == method {
			n++
		}
	}
	return n
}

func (f *Fake) record(method, path string) {
	f.Calls = append(f.Calls, Call{Method: method, Path: path})
}

type fakeError string

func (e fakeError) Error() string { return string(e) }

const (
	errIsDir  = fakeError("is a directory")
	errNotDir = fakeError("not a directory")
)

type fakeFileInfo struct {
	name string
	size int64
	dir  bool
}

func (fi fakeFileInfo) Name() string { return fi.name }
func (fi fakeFileInfo) Size() int64  { return fi.size }
func (fi fakeFileInfo) Mode() os.FileMode {
	if fi.dir {
		return fs.ModeDir | 0o755
	}
	return 0o644
}
func (fi fakeFileInfo) ModTime() time.Time { return time.Time{} }
func (fi fakeFileInfo) IsDir() bool        { return fi.dir }
func (fi fakeFileInfo) Sys() any           { return nil }

type fakeDirEntry struct {
	name string
	size int64
	dir  bool
}

func (de fakeDirEntry) Name() string { return de.name }
func (de fakeDirEntry) IsDir() bool  { return de.dir }
func (de fakeDirEntry) Type() fs.FileMode {
	if de.dir {
		return fs.ModeDir
	}
	return 0
}
func (de fakeDirEntry) Info() (fs.FileInfo, error) {
	return fakeFileInfo(de), nil
}

var (
	_ FS          = (*Fake)(nil)
	_ FS          = OSFS{}
	_ os.FileInfo = fakeFileInfo{}
	_ os.DirEntry = fakeDirEntry{}
)
