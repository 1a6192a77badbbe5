package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/perrydb/perrydb/bootstrap"
	"github.com/perrydb/perrydb/internal/fsys"
	"github.com/perrydb/perrydb/storage"
	"github.com/spf13/cobra"
)

// NewStatusCmd creates and returns the status subcommand for the perrydb CLI.
// It validates a storage directory and counts the files held in WAL and STORE.
func NewStatusCmd() *cobra.Command {
	var directory string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Validate a storage directory and count its WAL and STORE files",
		Long: `Validate a storage directory, then recursively count the files under
WAL/ and STORE/ (excluding directories). Nothing is modified.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus(cmd, directory)
		},
	}

	cmd.Flags().StringVarP(&directory, "directory", "d", "", "Path to the storage directory (required)")
	cmd.MarkFlagRequired("directory")

	return cmd
}

func runStatus(cmd *cobra.Command, directory string) error {
	fs := fsys.OSFS{}
	c := bootstrap.New(fs, storage.DefaultConfig(), nil, loggerFor(cmd))
	vr, err := c.Prepare(bootstrap.Options{Root: directory})
	if err != nil {
		return err
	}

	walCount, err := countFiles(fs, vr.Layout().WALDir())
	if err != nil {
		return fmt.Errorf("counting WAL files: %w", err)
	}
	storeCount, err := countFiles(fs, vr.Layout().StoreDir())
	if err != nil {
		return fmt.Errorf("counting STORE files: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Root: %s\n", vr.Root())
	fmt.Fprintf(out, "%s: %v\n", storage.VersionField, vr.Version())
	fmt.Fprintf(out, "WAL files: %d\n", walCount)
	fmt.Fprintf(out, "STORE files: %d\n", storeCount)
	return nil
}

// countFiles returns the number of non-directory entries below dir.
func countFiles(fs fsys.FS, dir string) (int, error) {
	entries, err := fs.ReadDir(dir)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, e := range entries {
		if !e.IsDir() {
			count++
			continue
		}
		n, err := countFiles(fs, filepath.Join(dir, e.Name()))
		if err != nil {
			return 0, err
		}
		count += n
	}
	return count, nil
}
