package semver

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// PrereleaseError reports a pre-release series that cannot be continued
// monotonically under the requested label.
type PrereleaseError struct {
	Label    string
	Existing string // offending pre-release portion of an existing version
}

func (e *PrereleaseError) Error() string {
	return fmt.Sprintf("cannot continue pre-release series %q from existing pre-release %q", e.Label, e.Existing)
}

// NextPrerelease computes the next pre-release of base under label by
// scanning known versions for existing members of the same series. The
// first release of a series is base-label.1; each subsequent call with the
// produced version included in known yields the next counter.
//
// Known versions of the same base whose pre-release uses label but does not
// follow the "label.N" shape cannot be continued and produce a
// PrereleaseError. Known versions under other labels or other bases are
// ignored.
func NextPrerelease(base Version, label string, known []Version) (Version, error) {
	var max uint64
	for _, k := range known {
		if k.IsZero() || k.Prerelease() == "" {
			continue
		}
		if !k.Core().Equal(base.Core()) {
			continue
		}
		rest, found := strings.CutPrefix(k.Prerelease(), label+".")
		if !found {
			if k.Prerelease() == label || strings.HasPrefix(k.Prerelease(), label+"-") {
				return Version{}, &PrereleaseError{Label: label, Existing: k.Prerelease()}
			}
			continue
		}
		n, err := strconv.ParseUint(rest, 10, 64)
		if err != nil {
			return Version{}, &PrereleaseError{Label: label, Existing: k.Prerelease()}
		}
		if n > max {
			max = n
		}
	}

	if max == math.MaxUint64 {
		return Version{}, &PrereleaseError{Label: label, Existing: fmt.Sprintf("%s.%d", label, max)}
	}

	next, err := base.Core().v.SetPrerelease(fmt.Sprintf("%s.%d", label, max+1))
	if err != nil {
		return Version{}, &InvalidVersionError{Text: label, err: err}
	}
	return Version{v: &next}, nil
}
