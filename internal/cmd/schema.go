package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/perrydb/perrydb/storage"
	"github.com/spf13/cobra"
)

// NewSchemaCmd creates and returns the schema subcommand for the perrydb CLI.
func NewSchemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema of perryconf.json",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := json.MarshalIndent(storage.MetadataSchema(), "", "  ")
			if err != nil {
				return fmt.Errorf("encoding schema: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}
}
