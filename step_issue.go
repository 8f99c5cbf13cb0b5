package releaseflow

import (
	"context"
	"fmt"
)

// runSelectJiraIssue searches Jira for issues in the configured status and
// has the user pick one.
func (r *Runner) runSelectJiraIssue(ctx context.Context, step Step, state State) (State, error) {
	if r.Jira == nil {
		return state, ErrTrackerNotConfigured
	}

	found, err := r.Jira.SearchIssues(ctx, step.Status)
	if err != nil {
		return state, fmt.Errorf("search issues: %w", err)
	}
	if len(found) == 0 {
		return state, fmt.Errorf("%w: no issues with status %q", ErrNoIssues, step.Status)
	}

	options := make([]string, len(found))
	for i, issue := range found {
		options[i] = fmt.Sprintf("%s  %s", issue.Key, issue.Summary)
	}
	idx, err := r.selector().Select("Select an issue", options)
	if err != nil {
		return state, err
	}

	selected := Issue{Key: found[idx].Key, Summary: found[idx].Summary}
	r.say("Selected %s", selected.Key)
	return state.WithIssue(selected), nil
}

// runTransitionJiraIssue moves the selected issue to a new status.
func (r *Runner) runTransitionJiraIssue(ctx context.Context, step Step, state State) (State, error) {
	if r.Jira == nil {
		return state, ErrTrackerNotConfigured
	}
	if state.Issue == nil {
		return state, ErrNoIssueSelected
	}

	if r.DryRun {
		r.say("Would transition %s to %q", state.Issue.Key, step.Status)
		return state, nil
	}

	if err := r.Jira.TransitionIssue(ctx, state.Issue.Key, step.Status); err != nil {
		return state, fmt.Errorf("transition %s: %w", state.Issue.Key, err)
	}
	r.say("Transitioned %s to %q", state.Issue.Key, step.Status)
	return state, nil
}

// runSelectForgeIssue lists open forge issues matching the step's labels
// and has the user pick one. GitHub and GitLab selection differ only in
// which Forge the runner carries.
func (r *Runner) runSelectForgeIssue(ctx context.Context, step Step, state State) (State, error) {
	if r.Forge == nil {
		return state, ErrForgeNotConfigured
	}

	found, err := r.Forge.ListOpenIssues(ctx, step.Labels)
	if err != nil {
		return state, fmt.Errorf("list issues: %w", err)
	}
	if len(found) == 0 {
		return state, fmt.Errorf("%w: no open issues with labels %v", ErrNoIssues, step.Labels)
	}

	options := make([]string, len(found))
	for i, issue := range found {
		options[i] = fmt.Sprintf("#%s  %s", issue.Key, issue.Title)
	}
	idx, err := r.selector().Select("Select an issue", options)
	if err != nil {
		return state, err
	}

	selected := Issue{Key: found[idx].Key, Summary: found[idx].Title}
	r.say("Selected #%s", selected.Key)
	return state.WithIssue(selected), nil
}

// runSelectIssueFromBranch recovers the issue from the current branch name.
func (r *Runner) runSelectIssueFromBranch(state State) (State, error) {
	branch, err := r.Git.CurrentBranch()
	if err != nil {
		return state, err
	}

	issue, err := IssueFromBranch(branch)
	if err != nil {
		return state, err
	}
	r.say("Working on %s (from branch %s)", issue.Key, branch)
	return state.WithIssue(issue).WithBranch(branch), nil
}
