package semver

import (
	"fmt"
	"strings"

	sv "github.com/Masterminds/semver/v3"
)

// Version is a semantic version: major.minor.patch with optional pre-release
// label and build metadata. The zero Version means "no version".
type Version struct {
	v *sv.Version
}

// Parse parses a semantic version string. A leading "v" (the common tag
// prefix) is accepted and ignored.
func Parse(s string) (Version, error) {
	v, err := sv.StrictNewVersion(strings.TrimPrefix(s, "v"))
	if err != nil {
		return Version{}, &InvalidVersionError{Text: s, err: err}
	}
	return Version{v: v}, nil
}

// MustParse is Parse for known-good version literals. It panics on error and
// exists for tests and package-level defaults.
func MustParse(s string) Version {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

// IsZero reports whether v is the zero Version (no version at all, distinct
// from 0.0.0).
func (v Version) IsZero() bool {
	return v.v == nil
}

// Major returns the major component.
func (v Version) Major() uint64 {
	if v.v == nil {
		return 0
	}
	return v.v.Major()
}

// Minor returns the minor component.
func (v Version) Minor() uint64 {
	if v.v == nil {
		return 0
	}
	return v.v.Minor()
}

// Patch returns the patch component.
func (v Version) Patch() uint64 {
	if v.v == nil {
		return 0
	}
	return v.v.Patch()
}

// Prerelease returns the pre-release portion, empty for stable versions.
func (v Version) Prerelease() string {
	if v.v == nil {
		return ""
	}
	return v.v.Prerelease()
}

// Metadata returns the build metadata portion.
func (v Version) Metadata() string {
	if v.v == nil {
		return ""
	}
	return v.v.Metadata()
}

// Stable reports whether v carries no pre-release label.
func (v Version) Stable() bool {
	return v.v != nil && v.v.Prerelease() == ""
}

// Core returns v stripped of pre-release label and build metadata.
func (v Version) Core() Version {
	if v.v == nil {
		return Version{}
	}
	return Version{v: sv.New(v.v.Major(), v.v.Minor(), v.v.Patch(), "", "")}
}

func (v Version) String() string {
	if v.v == nil {
		return ""
	}
	return v.v.String()
}

// Compare returns -1, 0, or 1 by semantic-version precedence; pre-release
// versions sort below their corresponding release version.
func (v Version) Compare(o Version) int {
	return v.v.Compare(o.v)
}

// LessThan reports whether v sorts before o by semantic-version precedence.
func (v Version) LessThan(o Version) bool {
	return v.v.LessThan(o.v)
}

// Equal reports whether v and o have the same precedence.
func (v Version) Equal(o Version) bool {
	if v.v == nil || o.v == nil {
		return v.v == o.v
	}
	return v.v.Equal(o.v)
}

// InvalidVersionError reports a version string that does not parse as a
// semantic version, carrying the offending text for diagnostics.
type InvalidVersionError struct {
	Text string
	err  error
}

func (e *InvalidVersionError) Error() string {
	return fmt.Sprintf("invalid semantic version %q: %v", e.Text, e.err)
}

func (e *InvalidVersionError) Unwrap() error {
	return e.err
}
