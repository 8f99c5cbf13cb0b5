package releaseflow

import (
	"errors"
	"fmt"
)

// Workflow execution errors.
var (
	// ErrUnknownStep indicates a step type outside the known vocabulary.
	ErrUnknownStep = errors.New("unknown step type")

	// ErrNoIssueSelected indicates a step needs an issue but no earlier
	// step selected one.
	ErrNoIssueSelected = errors.New("no issue selected")

	// ErrReleaseNotPrepared indicates a Release step ran without a
	// preceding PrepareRelease.
	ErrReleaseNotPrepared = errors.New("no release prepared")

	// ErrTrackerNotConfigured indicates a Jira step ran without Jira
	// configuration.
	ErrTrackerNotConfigured = errors.New("issue tracker not configured")

	// ErrForgeNotConfigured indicates a forge step ran without GitHub or
	// GitLab configuration.
	ErrForgeNotConfigured = errors.New("forge not configured")

	// ErrNoIssues indicates a selection step found nothing to choose from.
	ErrNoIssues = errors.New("no matching issues")

	// ErrBranchNotRecognized indicates the current branch name does not
	// reference an issue.
	ErrBranchNotRecognized = errors.New("branch name does not reference an issue")
)

// StepError reports which step of a workflow failed.
type StepError struct {
	Index int
	Type  StepType
	Err   error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (%s): %v", e.Index+1, e.Type, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}
