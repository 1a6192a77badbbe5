package storage

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/perrydb/perrydb/internal/fsys"
)

func newInitializer(fs fsys.FS) *Initializer {
	return NewInitializer(fs, DefaultConfig(), zerolog.Nop())
}

func TestInitializeEmptyRoot(t *testing.T) {
	root := t.TempDir()

	require.NoError(t, newInitializer(fsys.OSFS{}).Initialize(root))

	vr, err := NewValidator(fsys.OSFS{}, DefaultConfig()).Validate(root)
	require.NoError(t, err)
	assert.Equal(t, 1.2, vr.Version())

	data, err := os.ReadFile(filepath.Join(root, MetadataFileName))
	require.NoError(t, err)
	assert.Equal(t, "{\n    \"fs_version\": 1.2\n}\n", string(data))
}

func TestInitializeCreatesMissingRoot(t *testing.T) {
	root := filepath.Join(t.TempDir(), "a", "b", "root")

	require.NoError(t, newInitializer(fsys.OSFS{}).Initialize(root))

	_, err := NewValidator(fsys.OSFS{}, DefaultConfig()).Validate(root)
	require.NoError(t, err)
}

func TestInitializeEmptyRootPath(t *testing.T) {
	cwd := t.TempDir()
	t.Chdir(cwd)

	err := newInitializer(fsys.OSFS{}).Initialize("")
	var ie *InitError
	require.ErrorAs(t, err, &ie)
	assert.ErrorIs(t, err, ErrEmptyRoot)

	entries, err := os.ReadDir(cwd)
	require.NoError(t, err)
	assert.Empty(t, entries, "nothing may be created in the working directory")
}

func TestInitializeIsIdempotent(t *testing.T) {
	root := t.TempDir()
	in := newInitializer(fsys.OSFS{})
	v := NewValidator(fsys.OSFS{}, DefaultConfig())

	require.NoError(t, in.Initialize(root))
	first, err := v.Validate(root)
	require.NoError(t, err)
	before, err := os.ReadFile(filepath.Join(root, MetadataFileName))
	require.NoError(t, err)

	require.NoError(t, in.Initialize(root))
	second, err := v.Validate(root)
	require.NoError(t, err)
	after, err := os.ReadFile(filepath.Join(root, MetadataFileName))
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, before, after)
}

func TestInitializeKeepsExistingMetadata(t *testing.T) {
	root := t.TempDir()
	original := []byte(`{"fs_version": 0.9, "note": "legacy"}`)
	require.NoError(t, os.WriteFile(filepath.Join(root, MetadataFileName), original, 0o644))

	require.NoError(t, newInitializer(fsys.OSFS{}).Initialize(root))

	data, err := os.ReadFile(filepath.Join(root, MetadataFileName))
	require.NoError(t, err)
	assert.Equal(t, original, data)

	_, err = NewValidator(fsys.OSFS{}, DefaultConfig()).Validate(root)
	assert.Equal(t, VersionIncompatible, KindOf(err))
}

func TestInitializeBackfillsPartialRoot(t *testing.T) {
	root := makeRoot(t, `{"fs_version": 1.3}`, true, false)
	walMarker := filepath.Join(root, WALDirName, "segment-0001")
	require.NoError(t, os.WriteFile(walMarker, []byte("wal"), 0o644))

	require.NoError(t, newInitializer(fsys.OSFS{}).Initialize(root))

	vr, err := NewValidator(fsys.OSFS{}, DefaultConfig()).Validate(root)
	require.NoError(t, err)
	assert.Equal(t, 1.3, vr.Version())

	data, err := os.ReadFile(walMarker)
	require.NoError(t, err)
	assert.Equal(t, "wal", string(data), "existing WAL contents must be left alone")
}

func TestInitializeLeavesNoTempFiles(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, newInitializer(fsys.OSFS{}).Initialize(root))

	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.ElementsMatch(t, []string{MetadataFileName, WALDirName, StoreDirName}, names)
}

func TestInitializeUsesConfiguredBaseline(t *testing.T) {
	f := fsys.NewFake()
	in := NewInitializer(f, Config{MinFSVersion: 3.25}, zerolog.Nop())

	require.NoError(t, in.Initialize("/data"))

	md, err := LoadMetadata(f, "/data/perryconf.json")
	require.NoError(t, err)
	assert.Equal(t, 3.25, md.FSVersion)
}

func TestInitializeErrors(t *testing.T) {
	tests := []struct {
		name   string
		inject string
		op     string
	}{
		{name: "wal mkdir fails", inject: "/data/WAL", op: "mkdir"},
		{name: "store mkdir fails", inject: "/data/STORE", op: "mkdir"},
		{name: "metadata stat fails", inject: "/data/perryconf.json", op: "stat"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := fsys.NewFake()
			f.Errors[tt.inject] = os.ErrPermission

			err := newInitializer(f).Initialize("/data")
			var ie *InitError
			require.True(t, errors.As(err, &ie), "got %v", err)
			assert.Equal(t, tt.op, ie.Op)
			assert.Equal(t, tt.inject, ie.Path)
			assert.ErrorIs(t, err, os.ErrPermission)
		})
	}
}

func TestInitializeRenameFailureCleansUp(t *testing.T) {
	f := fsys.NewFake()
	rename := &renameFailFS{Fake: f, err: os.ErrPermission}
	err := newInitializer(rename).Initialize("/data")

	var ie *InitError
	require.True(t, errors.As(err, &ie))
	assert.Equal(t, "rename", ie.Op)
	for name := range f.Files {
		assert.False(t, strings.HasSuffix(name, ".tmp"), "temporary file %s left behind", name)
	}
	assert.Equal(t, 1, f.Called("Remove"))
}

func TestInitializeWriteFailureCleansUp(t *testing.T) {
	f := fsys.NewFake()
	partial := &writeFailFS{Fake: f, err: errors.New("no space left on device")}
	err := newInitializer(partial).Initialize("/data")

	var ie *InitError
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, "write", ie.Op)
	for name := range f.Files {
		assert.False(t, strings.HasSuffix(name, ".tmp"), "temporary file %s left behind", name)
	}
	assert.Equal(t, 1, f.Called("Remove"))
	assert.Zero(t, f.Called("Rename"))
	assert.NotContains(t, f.Files, "/data/perryconf.json")
}

// writeFailFS stores a truncated file and then reports the write as failed.
type writeFailFS struct {
	*fsys.Fake
	err error
}

func (w *writeFailFS) WriteFile(name string, data []byte, perm os.FileMode) error {
	if err := w.Fake.WriteFile(name, data[:len(data)/2], perm); err != nil {
		return err
	}
	return w.err
}

// renameFailFS fails every Rename but otherwise behaves like the Fake.
type renameFailFS struct {
	*fsys.Fake
	err error
}

func (r *renameFailFS) Rename(oldpath, newpath string) error {
	r.Calls = append(r.Calls, fsys.Call{Method: "Rename", Path: oldpath})
	return r.err
}
