package jira

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultTimeout bounds Jira API calls.
const DefaultTimeout = 30 * time.Second

// Config holds Jira connection settings.
type Config struct {
	// URL is the Jira base URL, e.g. https://org.atlassian.net.
	URL string

	// Project is the Jira project key used to scope issue searches.
	Project string

	// Email and Token authenticate API calls (basic auth).
	Email string
	Token string
}

// Validate checks that the config is usable.
func (c Config) Validate() error {
	if c.URL == "" || c.Project == "" {
		return ErrNotConfigured
	}
	if c.Email == "" || c.Token == "" {
		return ErrNoCredentials
	}
	return nil
}

// Client provides access to the Jira REST API operations the workflow
// engine needs: searching issues by status and transitioning them.
type Client struct {
	cfg        Config
	baseURL    string
	httpClient *http.Client
}

// ClientOption configures the client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// NewClient creates a new Jira client.
func NewClient(cfg Config, opts ...ClientOption) (*Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Client{
		cfg:        cfg,
		baseURL:    strings.TrimSuffix(cfg.URL, "/"),
		httpClient: &http.Client{Timeout: DefaultTimeout},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// Issue is one Jira issue in workflow terms: its key and summary line.
type Issue struct {
	Key     string
	Summary string
}

// SearchIssues returns the project's issues currently in the given status.
func (c *Client) SearchIssues(ctx context.Context, status string) ([]Issue, error) {
	body := map[string]any{
		"jql":    fmt.Sprintf("status = %q AND project = %q", status, c.cfg.Project),
		"fields": []string{"summary"},
	}

	var response struct {
		Issues []struct {
			Key    string `json:"key"`
			Fields struct {
				Summary string `json:"summary"`
			} `json:"fields"`
		} `json:"issues"`
	}
	if err := c.do(ctx, http.MethodPost, "/rest/api/3/search", body, &response); err != nil {
		return nil, err
	}

	issues := make([]Issue, len(response.Issues))
	for i, ji := range response.Issues {
		issues[i] = Issue{Key: ji.Key, Summary: ji.Fields.Summary}
	}
	return issues, nil
}

// TransitionIssue moves the issue to the named status. The status must
// correspond to a transition available on the issue.
func (c *Client) TransitionIssue(ctx context.Context, key, status string) error {
	path := fmt.Sprintf("/rest/api/3/issue/%s/transitions", key)

	var response struct {
		Transitions []struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		} `json:"transitions"`
	}
	if err := c.do(ctx, http.MethodGet, path, nil, &response); err != nil {
		return err
	}

	for _, t := range response.Transitions {
		if t.Name == status {
			body := map[string]any{"transition": map[string]string{"id": t.ID}}
			return c.do(ctx, http.MethodPost, path, body, nil)
		}
	}
	return fmt.Errorf("%w: %q on issue %s", ErrTransitionNotFound, status, key)
}

// do issues one authenticated API request, encoding body and decoding the
// response into out when non-nil.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.SetBasicAuth(c.cfg.Email, c.cfg.Token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("jira request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &APIError{
			StatusCode: resp.StatusCode,
			Path:       path,
			Body:       strings.TrimSpace(string(detail)),
		}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
