package cmd

import (
	"fmt"
	"maps"
	"slices"

	"github.com/perrydb/perrydb/bootstrap"
	"github.com/perrydb/perrydb/internal/fsys"
	"github.com/perrydb/perrydb/storage"
	"github.com/spf13/cobra"
)

// NewValidateCmd creates and returns the validate subcommand for the perrydb CLI.
// It checks a storage directory without modifying it or starting the server.
func NewValidateCmd() *cobra.Command {
	var directory string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check a storage directory for layout and version compatibility",
		Long: `Check that a storage directory can be served by this build of perrydb.

The checks run in order and stop at the first failure: the directory must
exist, perryconf.json, WAL/ and STORE/ must be present, perryconf.json must
be a JSON object with a numeric fs_version, and that version must be
compatible with this build.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, directory)
		},
	}

	cmd.Flags().StringVarP(&directory, "directory", "d", "", "Path to the storage directory to validate (required)")
	cmd.MarkFlagRequired("directory")

	return cmd
}

func runValidate(cmd *cobra.Command, directory string) error {
	log := loggerFor(cmd)
	log.Debug().Str("root", directory).Msg("validating storage directory")

	c := bootstrap.New(fsys.OSFS{}, storage.DefaultConfig(), nil, log)
	vr, err := c.Prepare(bootstrap.Options{Root: directory})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	printCheckPassed(out, vr)
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		l := vr.Layout()
		fmt.Fprintf(out, "  Metadata: %s\n", l.MetadataPath())
		fmt.Fprintf(out, "  WAL:      %s\n", l.WALDir())
		fmt.Fprintf(out, "  STORE:    %s\n", l.StoreDir())
		extra := vr.Metadata().Extra
		for _, k := range slices.Sorted(maps.Keys(extra)) {
			fmt.Fprintf(out, "  Ignored key %q: %v\n", k, extra[k])
		}
	}
	return nil
}
