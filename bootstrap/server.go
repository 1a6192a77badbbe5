package bootstrap

import (
	"github.com/rs/zerolog"
)

// Server consumes a validated storage root. Start is called at most once
// per bootstrap run.
type Server interface {
	Start(h Handoff) error
}

// StubServer stands in for the synchronization server. It only logs the
// handoff.
type StubServer struct {
	Log zerolog.Logger
}

// Start logs the directory and port and returns nil.
func (s StubServer) Start(h Handoff) error {
	s.Log.Info().
		Str("directory", h.Root.Root()).
		Int("port", h.Port).
		Msg("starting server")
	return nil
}

// ServerFunc adapts a function to the Server interface.
type ServerFunc func(h Handoff) error

// Start calls f(h).
func (f ServerFunc) Start(h Handoff) error { return f(h) }
