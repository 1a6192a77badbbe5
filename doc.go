// Package main provides the perrydb command-line interface.
//
// perrydb is the entry point of a file synchronization server backed by a
// storage directory:
//
//	<root>/
//	  perryconf.json
//	  WAL/
//	  STORE/
//
// Started as
//
//	perrydb -d <root> -p <port> [-i]
//
// it optionally initializes the directory, validates its layout and
// fs_version, and hands the validated directory and port to the server.
// Any failure exits with status 1.
//
// The binary also supports subcommands:
//   - validate: Check a storage directory
//   - init: Create the missing parts of a storage directory
//   - status: Report file counts in WAL and STORE
//   - schema: Print the JSON Schema of perryconf.json
//   - version: Print build information
package main
