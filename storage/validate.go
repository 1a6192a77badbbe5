package storage

import (
	"github.com/perrydb/perrydb/internal/fsys"
)

// ValidatedRoot is proof that a storage root passed every check. It can
// only be obtained from Validator.Validate.
type ValidatedRoot struct {
	layout   Layout
	version  float64
	metadata Metadata
}

// Root returns the validated root directory.
func (r ValidatedRoot) Root() string { return r.layout.Root }

// Version returns the fs_version declared by the root's metadata.
func (r ValidatedRoot) Version() float64 { return r.version }

// Layout returns the paths of the validated root.
func (r ValidatedRoot) Layout() Layout { return r.layout }

// Metadata returns the decoded metadata, including unknown keys.
func (r ValidatedRoot) Metadata() Metadata { return r.metadata }

// IsZero reports whether r was never produced by a validation.
func (r ValidatedRoot) IsZero() bool { return r.layout.Root == "" }

// Validator checks that a directory is a usable, version-compatible
// storage root.
type Validator struct {
	fs     fsys.FS
	policy VersionPolicy
}

// NewValidator returns a Validator reading through fs and enforcing cfg's
// baseline.
func NewValidator(fs fsys.FS, cfg Config) *Validator {
	return &Validator{fs: fs, policy: cfg.Policy()}
}

// Validate runs the checks in order and stops at the first failure, which
// is returned as a *ValidationError. Metadata is parsed only after the
// whole layout is known to exist.
func (v *Validator) Validate(root string) (ValidatedRoot, error) {
	if root == "" {
		return ValidatedRoot{}, &ValidationError{Kind: RootMissing, Path: root, Err: ErrEmptyRoot}
	}
	l := NewLayout(root)

	fi, err := v.fs.Stat(l.Root)
	if err != nil {
		return ValidatedRoot{}, &ValidationError{Kind: RootMissing, Path: l.Root, Err: err}
	}
	if !fi.IsDir() {
		return ValidatedRoot{}, &ValidationError{Kind: RootNotADirectory, Path: l.Root}
	}

	p := l.Probe(v.fs)
	switch {
	case !p.Metadata:
		return ValidatedRoot{}, &ValidationError{Kind: MetadataMissing, Path: l.MetadataPath()}
	case !p.WAL:
		return ValidatedRoot{}, &ValidationError{Kind: WalMissing, Path: l.WALDir()}
	case !p.Store:
		return ValidatedRoot{}, &ValidationError{Kind: StoreMissing, Path: l.StoreDir()}
	}

	md, err := LoadMetadata(v.fs, l.MetadataPath())
	if err != nil {
		return ValidatedRoot{}, err
	}

	if !v.policy.Compatible(md.FSVersion) {
		return ValidatedRoot{}, &ValidationError{
			Kind:       VersionIncompatible,
			Path:       l.MetadataPath(),
			Field:      VersionField,
			Declared:   md.FSVersion,
			Minimum:    v.policy.Minimum,
			UpperBound: v.policy.UpperBound(),
		}
	}

	return ValidatedRoot{layout: l, version: md.FSVersion, metadata: md}, nil
}
