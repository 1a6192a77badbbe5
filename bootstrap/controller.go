// Package bootstrap runs the startup gate of a perrydb server: optionally
// initialize the storage root, always validate it, then hand the validated
// root and port to the server.
package bootstrap

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/perrydb/perrydb/internal/fsys"
	"github.com/perrydb/perrydb/storage"
)

// Options are the inputs of a single bootstrap run.
type Options struct {
	Root       string
	Port       int
	Initialize bool
}

// Handoff is what a server receives once the storage root has been
// validated.
type Handoff struct {
	Root storage.ValidatedRoot
	Port int
}

// Controller sequences initialization, validation and server handoff.
// It keeps no state between runs.
type Controller struct {
	initializer *storage.Initializer
	validator   *storage.Validator
	server      Server
	log         zerolog.Logger
}

// New returns a Controller operating on fs with the given configuration.
// A nil server is replaced by a StubServer.
func New(fs fsys.FS, cfg storage.Config, server Server, log zerolog.Logger) *Controller {
	if server == nil {
		server = StubServer{Log: log}
	}
	return &Controller{
		initializer: storage.NewInitializer(fs, cfg, log),
		validator:   storage.NewValidator(fs, cfg),
		server:      server,
		log:         log,
	}
}

// Prepare initializes the root when requested and validates it. It does
// not start the server.
func (c *Controller) Prepare(opts Options) (storage.ValidatedRoot, error) {
	if opts.Initialize {
		if err := c.initializer.Initialize(opts.Root); err != nil {
			return storage.ValidatedRoot{}, fmt.Errorf("initialize %s: %w", opts.Root, err)
		}
		c.log.Info().Str("root", opts.Root).Msg("directory initialized")
	}

	vr, err := c.validator.Validate(opts.Root)
	if err != nil {
		c.log.Debug().Err(err).Stringer("kind", storage.KindOf(err)).Msg("directory check failed")
		return storage.ValidatedRoot{}, err
	}
	c.log.Info().
		Str("root", vr.Root()).
		Float64(storage.VersionField, vr.Version()).
		Msg("directory check passed")
	return vr, nil
}

// Run prepares the root and, on success, starts the server with it.
func (c *Controller) Run(opts Options) (Handoff, error) {
	vr, err := c.Prepare(opts)
	if err != nil {
		return Handoff{}, err
	}
	h := Handoff{Root: vr, Port: opts.Port}
	if err := c.server.Start(h); err != nil {
		return Handoff{}, fmt.Errorf("start server: %w", err)
	}
	return h, nil
}
