package semver

import (
	sv "github.com/Masterminds/semver/v3"

	"github.com/randalmurphal/releaseflow/commit"
)

// Bump is the magnitude of version change implied by a set of commits.
// The ordering is total: BumpNone < BumpPatch < BumpMinor < BumpMajor.
type Bump int

const (
	BumpNone Bump = iota
	BumpPatch
	BumpMinor
	BumpMajor
)

func (b Bump) String() string {
	switch b {
	case BumpPatch:
		return "patch"
	case BumpMinor:
		return "minor"
	case BumpMajor:
		return "major"
	default:
		return "none"
	}
}

// Resolve returns the largest bump implied by commits against the current
// version. It is monotonic: appending commits never decreases the result.
func Resolve(commits []commit.Commit, current Version) Bump {
	max := BumpNone
	for _, c := range commits {
		if b := bumpFor(c, current); b > max {
			max = b
		}
	}
	return max
}

// bumpFor maps one classified commit to its version effect.
//
// A breaking change on a pre-1.0 project bumps minor, not major. That is
// a deliberate property of the 0.x line, where every release may break.
func bumpFor(c commit.Commit, current Version) Bump {
	switch {
	case !c.Conventional():
		return BumpNone
	case c.Breaking && current.Major() >= 1:
		return BumpMajor
	case c.Breaking:
		return BumpMinor
	case c.Type == commit.TypeFeat:
		return BumpMinor
	case c.Type == commit.TypeFix, c.Type == commit.TypePerf:
		return BumpPatch
	default:
		return BumpNone
	}
}

// Apply increments current by b following standard semantic-version rules:
// a major bump resets minor and patch and clears any pre-release label,
// a minor bump resets patch, a patch bump increments the patch field only.
// BumpNone returns current unchanged.
func Apply(current Version, b Bump) Version {
	if current.v == nil {
		current = Version{v: sv.New(0, 0, 0, "", "")}
	}
	switch b {
	case BumpMajor:
		next := current.v.IncMajor()
		return Version{v: &next}
	case BumpMinor:
		next := current.v.IncMinor()
		return Version{v: &next}
	case BumpPatch:
		next := current.v.IncPatch()
		return Version{v: &next}
	default:
		return current
	}
}
