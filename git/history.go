package git

import (
	"strings"

	"github.com/randalmurphal/releaseflow/release"
	"github.com/randalmurphal/releaseflow/semver"
)

// Record separators for machine-readable git log output.
const (
	logFieldSep  = "\x01"
	logRecordSep = "\x02"
)

// History reads release-relevant facts from the repository's tags and
// commits. It implements release.GitHistory.
type History struct {
	git *Context
}

// History returns a release history view over the repository.
func (g *Context) History() *History {
	return &History{git: g}
}

// taggedVersion pairs a tag name with the version it records.
type taggedVersion struct {
	tag     string
	version semver.Version
}

// releaseTags returns every tag that parses as a semantic version, in tag
// listing order. Tags that are not versions (with or without the "v"
// prefix) are ignored.
func (h *History) releaseTags() ([]taggedVersion, error) {
	tags, err := h.git.Tags()
	if err != nil {
		return nil, err
	}

	var out []taggedVersion
	for _, tag := range tags {
		v, err := semver.Parse(tag)
		if err != nil {
			continue
		}
		out = append(out, taggedVersion{tag: tag, version: v})
	}
	return out, nil
}

// lastStable returns the tag recording the highest stable released version.
func (h *History) lastStable() (taggedVersion, bool, error) {
	tagged, err := h.releaseTags()
	if err != nil {
		return taggedVersion{}, false, err
	}

	var best taggedVersion
	found := false
	for _, tv := range tagged {
		if !tv.version.Stable() {
			continue
		}
		if !found || best.version.LessThan(tv.version) {
			best = tv
			found = true
		}
	}
	return best, found, nil
}

// CurrentVersion returns the highest stable version ever tagged, or the
// zero Version when nothing has been released.
func (h *History) CurrentVersion() (semver.Version, error) {
	best, found, err := h.lastStable()
	if err != nil || !found {
		return semver.Version{}, err
	}
	return best.version, nil
}

// KnownVersions returns every tagged version, pre-releases included.
func (h *History) KnownVersions() ([]semver.Version, error) {
	tagged, err := h.releaseTags()
	if err != nil {
		return nil, err
	}

	versions := make([]semver.Version, len(tagged))
	for i, tv := range tagged {
		versions[i] = tv.version
	}
	return versions, nil
}

// CommitsSinceLastRelease returns the commits after the last stable release
// tag, oldest first. When nothing has been released the whole history is
// returned.
func (h *History) CommitsSinceLastRelease() ([]release.RawCommit, error) {
	best, found, err := h.lastStable()
	if err != nil {
		return nil, err
	}

	args := []string{
		"log", "--reverse",
		"--format=%H" + logFieldSep + "%B" + logRecordSep,
	}
	if found {
		args = append(args, best.tag+"..HEAD")
	}

	output, err := h.git.runGit(args...)
	if err != nil {
		return nil, &Error{Op: "read history", Err: err}
	}

	var commits []release.RawCommit
	for _, record := range strings.Split(output, logRecordSep) {
		record = strings.TrimLeft(record, "\n")
		sha, message, ok := strings.Cut(record, logFieldSep)
		if !ok {
			continue
		}
		commits = append(commits, release.RawCommit{
			SHA:     strings.TrimSpace(sha),
			Message: strings.TrimSpace(message),
		})
	}
	return commits, nil
}
