package releaseflow

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Branch names that start with an issue reference.
var (
	jiraBranchPattern   = regexp.MustCompile(`^([A-Z][A-Z0-9]*-\d+)(?:-(.+))?$`)
	githubBranchPattern = regexp.MustCompile(`^(\d+)(?:-(.+))?$`)
)

// BranchName derives the working branch name for an issue: the issue key
// followed by a slug of the summary.
func BranchName(issue Issue) string {
	slugged := slug(issue.Summary)
	if slugged == "" {
		return issue.Key
	}
	return issue.Key + "-" + slugged
}

// IssueFromBranch recovers the issue a branch was created for. Jira-style
// names (PROJ-42-add-feature) and plain issue numbers (42-add-feature) are
// recognized; anything else is ErrBranchNotRecognized.
func IssueFromBranch(branch string) (Issue, error) {
	for _, pattern := range []*regexp.Regexp{jiraBranchPattern, githubBranchPattern} {
		m := pattern.FindStringSubmatch(branch)
		if m == nil {
			continue
		}
		return Issue{
			Key:     m[1],
			Summary: strings.ReplaceAll(m[2], "-", " "),
		}, nil
	}
	return Issue{}, fmt.Errorf("%w: %q", ErrBranchNotRecognized, branch)
}

// slug lowercases text and reduces it to dash-separated ASCII words,
// stripping diacritics first so accented summaries survive.
func slug(s string) string {
	stripped, _, err := transform.String(stripMarks(), s)
	if err == nil {
		s = stripped
	}

	var b strings.Builder
	lastDash := true
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		case !lastDash:
			b.WriteRune('-')
			lastDash = true
		}
	}
	return strings.Trim(b.String(), "-")
}

// stripMarks builds a transformer that decomposes characters and drops
// their combining marks.
func stripMarks() transform.Transformer {
	return transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
}
