package cmd

import (
	"fmt"
	"io"

	"github.com/perrydb/perrydb/bootstrap"
	"github.com/perrydb/perrydb/internal/fsys"
	"github.com/perrydb/perrydb/storage"
	"github.com/perrydb/perrydb/version"
	"github.com/spf13/cobra"
)

// NewRootCmd creates and returns the root cobra command for the perrydb CLI.
// Run without a subcommand it bootstraps the storage root and starts the
// server.
func NewRootCmd() *cobra.Command {
	var (
		directory  string
		port       int
		initialize bool
	)

	rootCmd := &cobra.Command{
		Use:   "perrydb",
		Short: "perrydb - start a file synchronization server",
		Long: `perrydb serves a filesystem-backed storage directory to synchronization clients.

The storage directory holds a write-ahead log (WAL/), a data area (STORE/)
and a metadata file (perryconf.json) declaring the filesystem layout version.
Before the server starts the directory is checked; any problem aborts
startup with exit status 1. Pass --initialize to create whatever is missing
first.`,
		Version: version.GetFullVersion(),
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, bootstrap.Options{
				Root:       directory,
				Port:       port,
				Initialize: initialize,
			})
		},
	}

	rootCmd.Flags().StringVarP(&directory, "directory", "d", "", "The storage directory to manage (required)")
	rootCmd.Flags().IntVarP(&port, "port", "p", 0, "Port to listen for incoming requests (required)")
	rootCmd.Flags().BoolVarP(&initialize, "initialize", "i", false, "Initialize the directory with the required structure")
	rootCmd.PersistentFlags().Bool("verbose", false, "Enable debug logging")

	rootCmd.MarkFlagRequired("directory")
	rootCmd.MarkFlagRequired("port")

	groupStorage := "storage"
	groupUtilities := "utilities"

	rootCmd.AddGroup(&cobra.Group{
		ID:    groupStorage,
		Title: "Storage Directory",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    groupUtilities,
		Title: "Utility Commands",
	})

	validateCmd := NewValidateCmd()
	initCmd := NewInitCmd()
	statusCmd := NewStatusCmd()
	schemaCmd := NewSchemaCmd()
	versionCmd := NewVersionCmd()

	validateCmd.GroupID = groupStorage
	initCmd.GroupID = groupStorage
	statusCmd.GroupID = groupStorage
	schemaCmd.GroupID = groupUtilities
	versionCmd.GroupID = groupUtilities

	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(schemaCmd)
	rootCmd.AddCommand(versionCmd)

	return rootCmd
}

func runServe(cmd *cobra.Command, opts bootstrap.Options) error {
	log := loggerFor(cmd)
	out := cmd.OutOrStdout()

	server := bootstrap.ServerFunc(func(h bootstrap.Handoff) error {
		printCheckPassed(out, h.Root)
		fmt.Fprintf(out, "Starting server with directory: %s on port: %d\n", h.Root.Root(), h.Port)
		return bootstrap.StubServer{Log: log}.Start(h)
	})

	c := bootstrap.New(fsys.OSFS{}, storage.DefaultConfig(), server, log)
	_, err := c.Run(opts)
	return err
}

func printCheckPassed(w io.Writer, vr storage.ValidatedRoot) {
	fmt.Fprintf(w, "Directory check passed. %s: %v, WAL and STORE directories found.\n",
		storage.VersionField, vr.Version())
}
