package release

import (
	"errors"
	"fmt"
	"time"

	"github.com/randalmurphal/releaseflow/changelog"
	"github.com/randalmurphal/releaseflow/commit"
	"github.com/randalmurphal/releaseflow/semver"
)

// ErrNoReleaseNeeded reports that no commit in range warrants a version
// bump. It is an expected terminal outcome, not a fault: callers should
// treat it as a successful no-op rather than a failure.
var ErrNoReleaseNeeded = errors.New("no release needed")

// RawCommit is one commit as read from history: identifier plus the full
// header and body text.
type RawCommit struct {
	SHA     string
	Message string
}

// GitHistory supplies the read-only repository facts a release computation
// needs. The computation itself performs no other I/O and never writes.
type GitHistory interface {
	// CommitsSinceLastRelease returns the commits after the most recent
	// stable release tag, oldest first. When nothing has been released the
	// whole history is returned.
	CommitsSinceLastRelease() ([]RawCommit, error)

	// CurrentVersion returns the version recorded by the most recent stable
	// release tag, or the zero Version when nothing has been released.
	CurrentVersion() (semver.Version, error)

	// KnownVersions returns every version ever released, including
	// pre-releases. Used to continue pre-release counter series.
	KnownVersions() ([]semver.Version, error)
}

// Options adjust a release computation.
type Options struct {
	// PrereleaseLabel, when set, produces a pre-release of the next stable
	// version under that label instead of the stable version itself.
	PrereleaseLabel string

	// CurrentVersion overrides the version reported by history.
	CurrentVersion semver.Version

	// Date is the changelog date stamp. Zero means today.
	Date time.Time
}

// Result is the outcome of one release computation. It is constructed once
// and owned by the caller; nothing here persists between runs.
type Result struct {
	PreviousVersion semver.Version
	NextVersion     semver.Version
	Bump            semver.Bump
	Changelog       changelog.Entry
	Commits         []commit.Commit // every commit consumed, unconventional included
}

// Unconventional counts the consumed commits that did not parse as
// conventional. They carry no version effect but matter for diagnostics.
func (r *Result) Unconventional() int {
	n := 0
	for _, c := range r.Commits {
		if !c.Conventional() {
			n++
		}
	}
	return n
}

// Compute runs the full release pipeline: fetch commits since the last
// release from history, classify each, resolve the version bump, and render
// the changelog entry for the next version.
//
// When no commit warrants a bump and no pre-release label forces a release,
// Compute returns ErrNoReleaseNeeded.
func Compute(history GitHistory, opts Options) (*Result, error) {
	raw, err := history.CommitsSinceLastRelease()
	if err != nil {
		return nil, fmt.Errorf("read commits: %w", err)
	}
	if len(raw) == 0 {
		return nil, ErrNoReleaseNeeded
	}

	current := opts.CurrentVersion
	if current.IsZero() {
		current, err = history.CurrentVersion()
		if err != nil {
			return nil, fmt.Errorf("read current version: %w", err)
		}
	}

	commits := make([]commit.Commit, len(raw))
	for i, rc := range raw {
		commits[i] = commit.Parse(rc.SHA, rc.Message)
	}

	bump := semver.Resolve(commits, current)
	if bump == semver.BumpNone && opts.PrereleaseLabel == "" {
		return nil, ErrNoReleaseNeeded
	}

	next, err := nextVersion(history, current, bump, opts.PrereleaseLabel)
	if err != nil {
		return nil, err
	}

	date := opts.Date
	if date.IsZero() {
		date = time.Now()
	}

	return &Result{
		PreviousVersion: current,
		NextVersion:     next,
		Bump:            bump,
		Changelog:       changelog.Render(next, date, commits),
		Commits:         commits,
	}, nil
}

// nextVersion applies the bump, continuing a pre-release series when a
// label is requested.
func nextVersion(history GitHistory, current semver.Version, bump semver.Bump, label string) (semver.Version, error) {
	if label == "" {
		return semver.Apply(current, bump), nil
	}

	// A forced pre-release with no implied bump must still sort above the
	// last release, so it bases on the next patch version.
	if bump == semver.BumpNone {
		bump = semver.BumpPatch
	}

	known, err := history.KnownVersions()
	if err != nil {
		return semver.Version{}, fmt.Errorf("read known versions: %w", err)
	}

	base := semver.Apply(current, bump)
	next, err := semver.NextPrerelease(base, label, known)
	if err != nil {
		return semver.Version{}, err
	}
	return next, nil
}
