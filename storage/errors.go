package storage

import (
	"errors"
	"fmt"
)

// ErrEmptyRoot is returned when no storage root path was given. An empty
// path is never taken to mean the working directory.
var ErrEmptyRoot = errors.New("empty storage root path")

// Kind classifies a validation failure. Every kind is fatal to bootstrap.
type Kind uint8

// Kinds of validation failure, in the order the validator checks them.
const (
	Other Kind = iota
	RootMissing
	RootNotADirectory
	MetadataMissing
	WalMissing
	StoreMissing
	MetadataUnreadable
	VersionFieldMissing
	VersionFieldNotNumeric
	VersionIncompatible
)

func (k Kind) String() string {
	switch k {
	case RootMissing:
		return "RootMissing"
	case RootNotADirectory:
		return "RootNotADirectory"
	case MetadataMissing:
		return "MetadataMissing"
	case WalMissing:
		return "WalMissing"
	case StoreMissing:
		return "StoreMissing"
	case MetadataUnreadable:
		return "MetadataUnreadable"
	case VersionFieldMissing:
		return "VersionFieldMissing"
	case VersionFieldNotNumeric:
		return "VersionFieldNotNumeric"
	case VersionIncompatible:
		return "VersionIncompatible"
	}
	return "Other"
}

// Error lets a bare Kind act as a sentinel for errors.Is.
func (k Kind) Error() string { return k.String() }

// ValidationError describes the first check a storage root failed.
// Only the fields relevant to Kind are set.
type ValidationError struct {
	Kind Kind
	// Path is the file or directory the failed check looked at.
	Path string
	// Field is the metadata key involved, for the version kinds.
	Field string
	// Value is the raw decoded value of Field when it was not numeric.
	Value any
	// Declared, Minimum and UpperBound are set for VersionIncompatible.
	Declared   float64
	Minimum    float64
	UpperBound float64
	// Err is the underlying I/O or parse error, if any.
	Err error
}

func (e *ValidationError) Error() string {
	var msg string
	switch e.Kind {
	case RootMissing:
		msg = fmt.Sprintf("the specified directory '%s' does not exist", e.Path)
	case RootNotADirectory:
		msg = fmt.Sprintf("'%s' is not a valid directory", e.Path)
	case MetadataMissing:
		msg = fmt.Sprintf("the configuration file '%s' is missing", e.Path)
	case WalMissing:
		msg = fmt.Sprintf("the '%s' directory is missing", e.Path)
	case StoreMissing:
		msg = fmt.Sprintf("the '%s' directory is missing", e.Path)
	case MetadataUnreadable:
		msg = fmt.Sprintf("failed to read '%s': %v", e.Path, e.Err)
	case VersionFieldMissing:
		msg = fmt.Sprintf("'%s' property is missing in '%s'", e.Field, e.Path)
	case VersionFieldNotNumeric:
		msg = fmt.Sprintf("'%s' in '%s' must be a number, got %T", e.Field, e.Path, e.Value)
	case VersionIncompatible:
		msg = fmt.Sprintf("'%s' (%v) is incompatible: expected >= %v and < %v",
			e.Field, e.Declared, e.Minimum, e.UpperBound)
	default:
		msg = fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return e.Kind.String() + ": " + msg
}

func (e *ValidationError) Unwrap() error { return e.Err }

// Is matches a bare Kind, so callers can write errors.Is(err, storage.StoreMissing).
func (e *ValidationError) Is(target error) bool {
	k, ok := target.(Kind)
	return ok && k == e.Kind
}

// KindOf returns the Kind of the first ValidationError in err's chain,
// or Other when there is none.
func KindOf(err error) Kind {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Kind
	}
	return Other
}

// InitError reports a filesystem operation that failed while initializing
// a storage root.
type InitError struct {
	Op   string
	Path string
	Err  error
}

func (e *InitError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *InitError) Unwrap() error { return e.Err }
