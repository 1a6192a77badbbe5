// Package cmd provides the command-line interface implementation for perrydb.
//
// The root command is the server entry point: it optionally initializes a
// storage root, validates it, and hands it to the server together with the
// listen port. It uses the Cobra library for command structure and Fang
// for styling.
//
// Subcommands expose the individual steps:
//   - validate: Check a storage root without starting anything
//   - init: Create the missing parts of a storage root, then check it
//   - status: Check a storage root and report how full WAL and STORE are
//   - schema: Print the JSON Schema of perryconf.json
//   - version: Print build information
//
// Each command is implemented in its own file with a constructor returning
// a *cobra.Command. Any failure is returned as an error so that main can
// map it to exit status 1.
package cmd
