package cmd

import (
	"fmt"

	"github.com/perrydb/perrydb/bootstrap"
	"github.com/perrydb/perrydb/internal/fsys"
	"github.com/perrydb/perrydb/storage"
	"github.com/spf13/cobra"
)

// NewInitCmd creates and returns the init subcommand for the perrydb CLI.
// It backfills a storage directory and validates the result.
func NewInitCmd() *cobra.Command {
	var directory string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create the missing parts of a storage directory",
		Long: `Create WAL/, STORE/ and perryconf.json under a storage directory.

Only missing entries are created; running init again is harmless. An
existing perryconf.json is never rewritten, even if its fs_version is
incompatible, so the validation that follows will still report it.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd, directory)
		},
	}

	cmd.Flags().StringVarP(&directory, "directory", "d", "", "Path to the storage directory to initialize (required)")
	cmd.MarkFlagRequired("directory")

	return cmd
}

func runInit(cmd *cobra.Command, directory string) error {
	c := bootstrap.New(fsys.OSFS{}, storage.DefaultConfig(), nil, loggerFor(cmd))
	vr, err := c.Prepare(bootstrap.Options{Root: directory, Initialize: true})
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Directory initialized successfully.")
	printCheckPassed(out, vr)
	return nil
}
