package bootstrap

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/perrydb/perrydb/internal/fsys"
	"github.com/perrydb/perrydb/storage"
)

// recordingServer remembers every handoff it receives.
type recordingServer struct {
	handoffs []Handoff
	err      error
}

func (s *recordingServer) Start(h Handoff) error {
	s.handoffs = append(s.handoffs, h)
	return s.err
}

func TestRunInitializesAndHandsOff(t *testing.T) {
	root := filepath.Join(t.TempDir(), "root")
	srv := &recordingServer{}
	c := New(fsys.OSFS{}, storage.DefaultConfig(), srv, zerolog.Nop())

	h, err := c.Run(Options{Root: root, Port: 7000, Initialize: true})
	require.NoError(t, err)
	assert.Equal(t, 7000, h.Port)
	assert.Equal(t, root, h.Root.Root())
	assert.Equal(t, 1.2, h.Root.Version())
	require.Len(t, srv.handoffs, 1)
	assert.Equal(t, h, srv.handoffs[0])
}

func TestRunWithoutInitializeValidatesOnly(t *testing.T) {
	root := t.TempDir()
	srv := &recordingServer{}
	c := New(fsys.OSFS{}, storage.DefaultConfig(), srv, zerolog.Nop())

	_, err := c.Run(Options{Root: root, Port: 7000})
	assert.Equal(t, storage.MetadataMissing, storage.KindOf(err))
	assert.Empty(t, srv.handoffs, "server must not start on a failed check")

	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	assert.Empty(t, entries, "nothing may be created without initialize")
}

func TestRunValidatesAfterInitialize(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, storage.MetadataFileName), []byte(`{"fs_version": 0.9}`), 0o644))
	srv := &recordingServer{}
	c := New(fsys.OSFS{}, storage.DefaultConfig(), srv, zerolog.Nop())

	_, err := c.Run(Options{Root: root, Port: 1, Initialize: true})
	assert.ErrorIs(t, err, storage.VersionIncompatible)
	assert.Empty(t, srv.handoffs)
}

func TestRunInitializeFailureStops(t *testing.T) {
	f := fsys.NewFake()
	f.Errors["/data/WAL"] = os.ErrPermission
	srv := &recordingServer{}
	c := New(f, storage.DefaultConfig(), srv, zerolog.Nop())

	_, err := c.Run(Options{Root: "/data", Port: 1, Initialize: true})
	var ie *storage.InitError
	require.ErrorAs(t, err, &ie)
	assert.ErrorIs(t, err, os.ErrPermission)
	assert.Contains(t, err.Error(), "initialize /data")
	assert.Zero(t, f.Called("ReadFile"), "validation must not run after a failed initialize")
	assert.Empty(t, srv.handoffs)
}

func TestRunServerError(t *testing.T) {
	boom := errors.New("boom")
	c := New(fsys.OSFS{}, storage.DefaultConfig(), &recordingServer{err: boom}, zerolog.Nop())

	_, err := c.Run(Options{Root: t.TempDir(), Port: 1, Initialize: true})
	assert.ErrorIs(t, err, boom)
}

func TestRunIsRepeatable(t *testing.T) {
	root := t.TempDir()
	c := New(fsys.OSFS{}, storage.DefaultConfig(), &recordingServer{}, zerolog.Nop())

	first, err := c.Run(Options{Root: root, Port: 9, Initialize: true})
	require.NoError(t, err)
	second, err := c.Run(Options{Root: root, Port: 9, Initialize: true})
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestPrepareDoesNotStartServer(t *testing.T) {
	called := false
	srv := ServerFunc(func(Handoff) error {
		called = true
		return nil
	})
	c := New(fsys.OSFS{}, storage.DefaultConfig(), srv, zerolog.Nop())

	vr, err := c.Prepare(Options{Root: t.TempDir(), Initialize: true})
	require.NoError(t, err)
	assert.False(t, vr.IsZero())
	assert.False(t, called)
}

func TestStubServerLogsHandoff(t *testing.T) {
	var buf bytes.Buffer
	log := zerolog.New(&buf)
	c := New(fsys.OSFS{}, storage.DefaultConfig(), nil, log)

	root := t.TempDir()
	_, err := c.Run(Options{Root: root, Port: 8123, Initialize: true})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), `"message":"starting server"`)
	assert.Contains(t, buf.String(), `"port":8123`)
	assert.Contains(t, buf.String(), `"directory":"`+root+`"`)
}
