// Package version reports build information for perrydb.
//
// Values come from three places, in order of preference:
//   - Variables set at link time with -ldflags
//   - Build info embedded by the Go toolchain (module version, vcs settings)
//   - Development defaults
//
// Release builds set:
//
//	-ldflags "-X github.com/perrydb/perrydb/version.Version=v1.0.0 -X github.com/perrydb/perrydb/version.Commit=abc123 -X github.com/perrydb/perrydb/version.Date=2024-01-01T00:00:00Z"
//
// This is the build version of the binary. It is unrelated to the
// fs_version recorded in a storage directory.
package version
