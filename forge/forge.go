package forge

import (
	"context"
	"fmt"
	"strings"
)

// Provider identifies a code-hosting platform.
type Provider string

const (
	ProviderGitHub Provider = "github"
	ProviderGitLab Provider = "gitlab"
)

// Issue is one tracker issue in workflow terms.
type Issue struct {
	Key    string // tracker-native identifier, e.g. "42"
	Title  string
	Labels []string
	URL    string
}

// Release describes a release to publish, or one that was published.
type Release struct {
	TagName    string
	Name       string
	Body       string // release notes, markdown
	Prerelease bool
	URL        string // set on the returned release
}

// Forge is the platform-neutral surface workflow steps use.
// Implementations exist for GitHub and GitLab.
type Forge interface {
	// ListOpenIssues returns open issues, optionally filtered to those
	// carrying all the given labels.
	ListOpenIssues(ctx context.Context, labels []string) ([]Issue, error)

	// CreateRelease publishes a release for an existing or new tag.
	CreateRelease(ctx context.Context, rel Release) (*Release, error)
}

// Detect determines the provider from a git remote URL.
func Detect(remoteURL string) (Provider, error) {
	lowered := strings.ToLower(remoteURL)

	if strings.Contains(lowered, "github.com") {
		return ProviderGitHub, nil
	}
	if strings.Contains(lowered, "gitlab") {
		return ProviderGitLab, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownProvider, remoteURL)
}

// ParseRepo extracts owner and repo from a git remote URL, handling both
// SSH (git@host:owner/repo.git) and HTTP(S) forms.
func ParseRepo(remoteURL string) (owner, repo string, err error) {
	if strings.HasPrefix(remoteURL, "git@") {
		_, path, found := strings.Cut(remoteURL, ":")
		if !found {
			return "", "", fmt.Errorf("invalid SSH remote URL %q", remoteURL)
		}
		path = strings.TrimSuffix(path, ".git")
		parts := strings.Split(path, "/")
		if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
			return "", "", fmt.Errorf("invalid repository path in %q", remoteURL)
		}
		return parts[0], parts[1], nil
	}

	trimmed := strings.TrimPrefix(remoteURL, "https://")
	trimmed = strings.TrimPrefix(trimmed, "http://")
	trimmed = strings.TrimSuffix(trimmed, ".git")

	parts := strings.Split(trimmed, "/")
	if len(parts) < 3 {
		return "", "", fmt.Errorf("invalid remote URL %q", remoteURL)
	}
	owner, repo = parts[len(parts)-2], parts[len(parts)-1]
	if owner == "" || repo == "" {
		return "", "", fmt.Errorf("invalid repository path in %q", remoteURL)
	}
	return owner, repo, nil
}
