package storage

import "math"

// DefaultMinFSVersion is the oldest filesystem layout version this build
// can open. Compatible versions lie in [1.2, 2.0).
const DefaultMinFSVersion = 1.2

// Config holds the settings injected into the validator and initializer.
type Config struct {
	// MinFSVersion is the compatibility baseline. New roots are written
	// with this version.
	MinFSVersion float64
}

// DefaultConfig returns the configuration used by the perrydb binary.
func DefaultConfig() Config {
	return Config{MinFSVersion: DefaultMinFSVersion}
}

// Policy returns the version policy for c's baseline.
func (c Config) Policy() VersionPolicy {
	return VersionPolicy{Minimum: c.MinFSVersion}
}

// IsCompatible reports whether declared lies in the same major epoch as
// minimum and is not older than it: minimum <= declared < ceil(minimum).
// An integral minimum yields an empty range.
func IsCompatible(declared, minimum float64) bool {
	return minimum <= declared && declared < UpperBound(minimum)
}

// UpperBound returns the exclusive upper end of the compatible range for
// minimum.
func UpperBound(minimum float64) float64 {
	return math.Ceil(minimum)
}

// VersionPolicy binds a baseline to the compatibility rule.
type VersionPolicy struct {
	Minimum float64
}

// Compatible reports whether declared is accepted under p.
func (p VersionPolicy) Compatible(declared float64) bool {
	return IsCompatible(declared, p.Minimum)
}

// UpperBound returns the exclusive upper end of p's range.
func (p VersionPolicy) UpperBound() float64 {
	return UpperBound(p.Minimum)
}
