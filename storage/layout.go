package storage

import (
	"path/filepath"

	"github.com/perrydb/perrydb/internal/fsys"
)

// Fixed names of the entries directly under a storage root.
const (
	MetadataFileName = "perryconf.json"
	WALDirName       = "WAL"
	StoreDirName     = "STORE"
)

// Layout names the paths a storage root is expected to contain.
type Layout struct {
	Root string
}

// NewLayout returns the layout rooted at root.
func NewLayout(root string) Layout {
	return Layout{Root: filepath.Clean(root)}
}

// MetadataPath returns <root>/perryconf.json.
func (l Layout) MetadataPath() string {
	return filepath.Join(l.Root, MetadataFileName)
}

// WALDir returns <root>/WAL.
func (l Layout) WALDir() string {
	return filepath.Join(l.Root, WALDirName)
}

// StoreDir returns <root>/STORE.
func (l Layout) StoreDir() string {
	return filepath.Join(l.Root, StoreDirName)
}

// Presence records which parts of a layout exist on disk.
type Presence struct {
	Root      bool
	RootIsDir bool
	Metadata  bool
	WAL       bool
	Store     bool
}

// Complete reports whether every part of the layout is present.
func (p Presence) Complete() bool {
	return p.RootIsDir && p.Metadata && p.WAL && p.Store
}

// Probe stats each path of the layout without opening any of them.
// Stat errors are reported as absence.
func (l Layout) Probe(fs fsys.FS) Presence {
	var p Presence
	if fi, err := fs.Stat(l.Root); err == nil {
		p.Root = true
		p.RootIsDir = fi.IsDir()
	}
	p.Metadata = fsys.Exists(fs, l.MetadataPath())
	p.WAL = fsys.Exists(fs, l.WALDir())
	p.Store = fsys.Exists(fs, l.StoreDir())
	return p
}
