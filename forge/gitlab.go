package forge

import (
	"context"
	"fmt"

	"github.com/xanzy/go-gitlab"
)

// GitLab is the Forge implementation backed by the GitLab API.
type GitLab struct {
	client  *gitlab.Client
	project string // "owner/repo" path or numeric project ID
}

// NewGitLab creates a GitLab forge for the given project path, authenticated
// with a personal or project access token. baseURL may be empty for
// gitlab.com.
func NewGitLab(token, project, baseURL string) (*GitLab, error) {
	if project == "" {
		return nil, ErrNotConfigured
	}

	var opts []gitlab.ClientOptionFunc
	if baseURL != "" {
		opts = append(opts, gitlab.WithBaseURL(baseURL))
	}

	client, err := gitlab.NewClient(token, opts...)
	if err != nil {
		return nil, fmt.Errorf("create gitlab client: %w", err)
	}
	return &GitLab{client: client, project: project}, nil
}

// ListOpenIssues returns open issues carrying all the given labels.
func (g *GitLab) ListOpenIssues(ctx context.Context, labels []string) ([]Issue, error) {
	opts := &gitlab.ListProjectIssuesOptions{
		State: gitlab.Ptr("opened"),
	}
	if len(labels) > 0 {
		opts.Labels = (*gitlab.LabelOptions)(&labels)
	}

	glIssues, _, err := g.client.Issues.ListProjectIssues(g.project, opts, gitlab.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("list gitlab issues: %w", err)
	}

	var issues []Issue
	for _, gi := range glIssues {
		issues = append(issues, Issue{
			Key:    fmt.Sprintf("%d", gi.IID),
			Title:  gi.Title,
			Labels: gi.Labels,
			URL:    gi.WebURL,
		})
	}
	return issues, nil
}

// CreateRelease publishes a GitLab release.
func (g *GitLab) CreateRelease(ctx context.Context, rel Release) (*Release, error) {
	created, _, err := g.client.Releases.CreateRelease(g.project, &gitlab.CreateReleaseOptions{
		Name:        gitlab.Ptr(rel.Name),
		TagName:     gitlab.Ptr(rel.TagName),
		Description: gitlab.Ptr(rel.Body),
	}, gitlab.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("create gitlab release: %w", err)
	}

	rel.URL = created.Links.Self
	return &rel, nil
}
