package storage

import (
	"errors"
	"io/fs"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/perrydb/perrydb/internal/fsys"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// Initializer creates the parts of a storage root that are missing.
type Initializer struct {
	fs  fsys.FS
	cfg Config
	log zerolog.Logger
}

// NewInitializer returns an Initializer writing through fs. New metadata
// files declare cfg.MinFSVersion.
func NewInitializer(fs fsys.FS, cfg Config, log zerolog.Logger) *Initializer {
	return &Initializer{fs: fs, cfg: cfg, log: log}
}

// Initialize creates WAL and STORE under root (and root itself) if they
// are missing, and writes perryconf.json if it is absent. An existing
// metadata file is never rewritten, whatever version it declares.
// Initialize does not validate the result.
func (in *Initializer) Initialize(root string) error {
	if root == "" {
		return &InitError{Op: "mkdir", Path: root, Err: ErrEmptyRoot}
	}
	l := NewLayout(root)
	in.log.Info().Str("root", l.Root).Msg("initializing directory structure")

	for _, dir := range []string{l.WALDir(), l.StoreDir()} {
		if err := in.fs.MkdirAll(dir, dirPerm); err != nil {
			return &InitError{Op: "mkdir", Path: dir, Err: err}
		}
		in.log.Debug().Str("path", dir).Msg("directory present")
	}

	_, err := in.fs.Stat(l.MetadataPath())
	switch {
	case err == nil:
		in.log.Info().Str("path", l.MetadataPath()).Msg("metadata already exists, no changes made")
		return nil
	case !errors.Is(err, fs.ErrNotExist):
		return &InitError{Op: "stat", Path: l.MetadataPath(), Err: err}
	}

	if err := in.writeMetadata(l, Metadata{FSVersion: in.cfg.MinFSVersion}); err != nil {
		return err
	}
	in.log.Info().
		Str("path", l.MetadataPath()).
		Float64(VersionField, in.cfg.MinFSVersion).
		Msg("metadata created")
	return nil
}

// writeMetadata writes md to a temporary file in the root and renames it
// over the metadata path, so readers never observe a partial file.
func (in *Initializer) writeMetadata(l Layout, md Metadata) error {
	data, err := md.Encode()
	if err != nil {
		return &InitError{Op: "encode", Path: l.MetadataPath(), Err: err}
	}

	tmp := filepath.Join(l.Root, "."+MetadataFileName+"."+uuid.NewString()+".tmp")
	if err := in.fs.WriteFile(tmp, data, filePerm); err != nil {
		in.removeTemp(tmp)
		return &InitError{Op: "write", Path: tmp, Err: err}
	}
	if err := in.fs.Rename(tmp, l.MetadataPath()); err != nil {
		in.removeTemp(tmp)
		return &InitError{Op: "rename", Path: l.MetadataPath(), Err: err}
	}
	return nil
}

// removeTemp deletes a leftover temporary metadata file. A write may fail
// after creating the file, so a missing file is not worth a warning.
func (in *Initializer) removeTemp(tmp string) {
	if err := in.fs.Remove(tmp); err != nil && !errors.Is(err, fs.ErrNotExist) {
		in.log.Warn().Err(err).Str("path", tmp).Msg("failed to remove temporary metadata file")
	}
}
