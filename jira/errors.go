package jira

import (
	"errors"
	"fmt"
)

// Jira client errors.
var (
	// ErrNotConfigured indicates Jira URL or project is missing.
	ErrNotConfigured = errors.New("jira is not configured")

	// ErrNoCredentials indicates email or API token is missing.
	ErrNoCredentials = errors.New("jira credentials missing")

	// ErrTransitionNotFound indicates the requested status does not match
	// any transition available on the issue.
	ErrTransitionNotFound = errors.New("jira transition not found")
)

// APIError reports a non-success response from the Jira API.
type APIError struct {
	StatusCode int
	Path       string
	Body       string
}

func (e *APIError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("jira API %s: status %d: %s", e.Path, e.StatusCode, e.Body)
	}
	return fmt.Sprintf("jira API %s: status %d", e.Path, e.StatusCode)
}
