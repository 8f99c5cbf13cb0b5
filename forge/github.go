package forge

import (
	"context"
	"fmt"
	"strconv"

	"github.com/google/go-github/v57/github"
	"golang.org/x/oauth2"
)

// GitHub is the Forge implementation backed by the GitHub API.
type GitHub struct {
	client *github.Client
	owner  string
	repo   string
}

// GitHubOption configures the GitHub forge.
type GitHubOption func(*GitHub) error

// WithGitHubBaseURL points the client at a GitHub Enterprise instance
// (or a test server).
func WithGitHubBaseURL(baseURL string) GitHubOption {
	return func(g *GitHub) error {
		client, err := g.client.WithEnterpriseURLs(baseURL, baseURL)
		if err != nil {
			return fmt.Errorf("set enterprise URLs: %w", err)
		}
		g.client = client
		return nil
	}
}

// NewGitHub creates a GitHub forge for owner/repo authenticated with the
// given token.
func NewGitHub(token, owner, repo string, opts ...GitHubOption) (*GitHub, error) {
	if owner == "" || repo == "" {
		return nil, ErrNotConfigured
	}

	httpClient := oauth2.NewClient(context.Background(),
		oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}))

	g := &GitHub{
		client: github.NewClient(httpClient),
		owner:  owner,
		repo:   repo,
	}
	for _, opt := range opts {
		if err := opt(g); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// ListOpenIssues returns open issues carrying all the given labels.
// Pull requests share the issue numbering on GitHub and are filtered out.
func (g *GitHub) ListOpenIssues(ctx context.Context, labels []string) ([]Issue, error) {
	opts := &github.IssueListByRepoOptions{
		State:  "open",
		Labels: labels,
	}

	ghIssues, _, err := g.client.Issues.ListByRepo(ctx, g.owner, g.repo, opts)
	if err != nil {
		return nil, fmt.Errorf("list github issues: %w", err)
	}

	var issues []Issue
	for _, gi := range ghIssues {
		if gi.IsPullRequest() {
			continue
		}
		issue := Issue{
			Key:   strconv.Itoa(gi.GetNumber()),
			Title: gi.GetTitle(),
			URL:   gi.GetHTMLURL(),
		}
		for _, l := range gi.Labels {
			issue.Labels = append(issue.Labels, l.GetName())
		}
		issues = append(issues, issue)
	}
	return issues, nil
}

// CreateRelease publishes a GitHub release.
func (g *GitHub) CreateRelease(ctx context.Context, rel Release) (*Release, error) {
	created, _, err := g.client.Repositories.CreateRelease(ctx, g.owner, g.repo, &github.RepositoryRelease{
		TagName:    github.String(rel.TagName),
		Name:       github.String(rel.Name),
		Body:       github.String(rel.Body),
		Prerelease: github.Bool(rel.Prerelease),
	})
	if err != nil {
		return nil, fmt.Errorf("create github release: %w", err)
	}

	rel.URL = created.GetHTMLURL()
	return &rel, nil
}
