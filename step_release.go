package releaseflow

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/randalmurphal/releaseflow/changelog"
	"github.com/randalmurphal/releaseflow/forge"
	"github.com/randalmurphal/releaseflow/notify"
	"github.com/randalmurphal/releaseflow/release"
	"github.com/randalmurphal/releaseflow/semver"
	"github.com/randalmurphal/releaseflow/versionfile"
)

// runBumpVersion rewrites the version recorded in the project's metadata
// files according to the step's rule.
func (r *Runner) runBumpVersion(step Step, state State) (State, error) {
	rule, err := parseRule(step.Rule)
	if err != nil {
		return state, err
	}

	files, err := versionfile.Detect(r.Git.RepoPath())
	if err != nil {
		return state, err
	}
	current, err := files[0].Read()
	if err != nil {
		return state, err
	}

	next, err := r.applyRule(rule, current)
	if err != nil {
		return state, err
	}

	if r.DryRun {
		r.say("Would bump version %s -> %s", current, next)
		return state.WithVersion(next), nil
	}

	if _, err := versionfile.WriteAll(files, next); err != nil {
		return state, err
	}
	r.say("Bumped version %s -> %s", current, next)
	return state.WithVersion(next), nil
}

// applyRule computes the version a bump rule produces from current.
func (r *Runner) applyRule(rule bumpRule, current semver.Version) (semver.Version, error) {
	switch rule.kind {
	case "major":
		return semver.Apply(current, semver.BumpMajor), nil
	case "minor":
		return semver.Apply(current, semver.BumpMinor), nil
	case "patch":
		return semver.Apply(current, semver.BumpPatch), nil
	case "release":
		return current.Core(), nil
	case "pre":
		// A stable current version starts a fresh series on the next
		// patch; a pre-release continues its own core version.
		base := current.Core()
		if current.Stable() {
			base = semver.Apply(current, semver.BumpPatch)
		}
		known, err := r.Git.History().KnownVersions()
		if err != nil {
			return semver.Version{}, err
		}
		return semver.NextPrerelease(base, rule.label, known)
	default:
		return semver.Version{}, fmt.Errorf("invalid rule %q", rule.kind)
	}
}

// runPrepareRelease computes the next release from history, rewrites the
// versioned files and the changelog, and stages the result. When no commit
// warrants a release the step is a successful no-op.
func (r *Runner) runPrepareRelease(ctx context.Context, step Step, state State) (State, error) {
	label := step.PrereleaseLabel
	if r.PrereleaseLabel != "" {
		label = r.PrereleaseLabel
	}

	result, err := release.Compute(r.Git.History(), release.Options{PrereleaseLabel: label})
	if errors.Is(err, release.ErrNoReleaseNeeded) {
		r.say("No release needed")
		r.emit(ctx, notify.Event{
			Type:     notify.EventNoReleaseNeeded,
			RunID:    state.RunID,
			Message:  "no commit since the last release warrants a version bump",
			Severity: notify.SeverityInfo,
		})
		return state, nil
	}
	if err != nil {
		return state, err
	}

	path := step.ChangelogPath
	if path == "" {
		path = DefaultChangelogPath
	}

	if r.DryRun {
		r.say("Would prepare release %s (previous %s)", result.NextVersion, result.PreviousVersion)
		fmt.Fprint(r.out(), result.Changelog.Markdown())
		return state.WithRelease(result), nil
	}

	var staged []string

	files, err := versionfile.Detect(r.Git.RepoPath())
	switch {
	case errors.Is(err, versionfile.ErrNoVersionedFiles):
		// Changelog-only projects have nothing to rewrite.
	case err != nil:
		return state, err
	default:
		written, werr := versionfile.WriteAll(files, result.NextVersion)
		if werr != nil {
			return state, werr
		}
		staged = append(staged, written...)
	}

	changelogPath := filepath.Join(r.Git.RepoPath(), path)
	existing, err := os.ReadFile(changelogPath)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return state, fmt.Errorf("read %s: %w", changelogPath, err)
	}
	updated := changelog.Prepend(string(existing), result.Changelog)
	if err := os.WriteFile(changelogPath, []byte(updated), 0o644); err != nil {
		return state, fmt.Errorf("write %s: %w", changelogPath, err)
	}
	staged = append(staged, changelogPath)

	if err := r.Git.Stage(staged...); err != nil {
		return state, err
	}
	r.say("Prepared release %s (previous %s)", result.NextVersion, result.PreviousVersion)
	return state.WithRelease(result), nil
}

// runRelease tags the prepared release and publishes it on the configured
// forge.
func (r *Runner) runRelease(ctx context.Context, state State) (State, error) {
	if state.Release == nil {
		return state, ErrReleaseNotPrepared
	}
	version := state.Release.NextVersion
	tag := "v" + version.String()

	if r.DryRun {
		r.say("Would tag %s and publish the release", tag)
		return state, nil
	}

	if err := r.Git.CreateTag(tag); err != nil {
		return state, err
	}
	r.say("Tagged %s", tag)

	if r.Forge == nil {
		return state, nil
	}

	published, err := r.Forge.CreateRelease(ctx, forge.Release{
		TagName:    tag,
		Name:       version.String(),
		Body:       state.Release.Changelog.Markdown(),
		Prerelease: !version.Stable(),
	})
	if err != nil {
		return state, fmt.Errorf("publish release: %w", err)
	}
	if published.URL != "" {
		r.say("Published %s", published.URL)
	} else {
		r.say("Published release %s", version)
	}
	r.emit(ctx, notify.Event{
		Type:     notify.EventReleasePublished,
		RunID:    state.RunID,
		Message:  fmt.Sprintf("published %s", version),
		Severity: notify.SeverityInfo,
		Metadata: map[string]any{"version": version.String(), "tag": tag, "url": published.URL},
	})
	return state, nil
}
