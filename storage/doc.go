// Package storage validates and initializes perrydb storage roots.
//
// A storage root is a directory holding three entries:
//
//	<root>/
//	  perryconf.json   metadata, {"fs_version": <number>}
//	  WAL/             write-ahead log area
//	  STORE/           data area
//
// The contents of WAL and STORE belong to the server and are never read or
// written here; this package only checks that they exist.
//
// A root is compatible when its fs_version lies in the same major epoch as
// the configured baseline and is not older than it. With the default
// baseline of 1.2 that is the half-open range [1.2, 2.0). There is no
// migration between epochs.
//
// Validator.Validate runs its checks in a fixed order and reports only the
// first failure as a *ValidationError carrying a Kind. Initializer.Initialize
// backfills whatever is missing and never rewrites existing metadata, so it
// is safe to run repeatedly; it must always be followed by validation.
//
// Neither type guards against another process mutating the same root
// concurrently.
package storage
