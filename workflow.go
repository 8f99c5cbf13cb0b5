package releaseflow

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/randalmurphal/releaseflow/forge"
	"github.com/randalmurphal/releaseflow/git"
	"github.com/randalmurphal/releaseflow/jira"
	"github.com/randalmurphal/releaseflow/notify"
	"github.com/randalmurphal/releaseflow/prompt"
)

// IssueTracker is the tracker surface the Jira steps need. *jira.Client
// satisfies it.
type IssueTracker interface {
	SearchIssues(ctx context.Context, status string) ([]jira.Issue, error)
	TransitionIssue(ctx context.Context, key, status string) error
}

var _ IssueTracker = (*jira.Client)(nil)

// Workflow is a named, ordered list of steps.
type Workflow struct {
	Name  string `toml:"name" json:"name"`
	Steps []Step `toml:"steps" json:"steps"`
}

// Validate checks the workflow has a name and at least one valid step.
func (w Workflow) Validate() error {
	if w.Name == "" {
		return fmt.Errorf("workflow has no name")
	}
	if len(w.Steps) == 0 {
		return fmt.Errorf("workflow %q has no steps", w.Name)
	}
	for i, step := range w.Steps {
		if err := step.Validate(); err != nil {
			return fmt.Errorf("workflow %q step %d: %w", w.Name, i+1, err)
		}
	}
	return nil
}

// Runner executes workflows. Git is required; the remaining collaborators
// are needed only by the steps that use them.
type Runner struct {
	Git    *git.Context
	Jira   IssueTracker
	Forge  forge.Forge
	Prompt prompt.Selector
	Shell  git.CommandRunner

	// Notify, when set, receives run and step events. Notification
	// failures are reported but never fail the run.
	Notify notify.Notifier

	// DryRun reports mutating steps instead of performing them.
	DryRun bool

	// Out receives progress and dry-run lines. Defaults to stdout.
	Out io.Writer

	// PrereleaseLabel overrides the label of every PrepareRelease step in
	// the run.
	PrereleaseLabel string
}

// Run executes the workflow's steps in order against a fresh state. The
// first failing step aborts the run; its error wraps the cause and reports
// the step position.
func (r *Runner) Run(ctx context.Context, wf Workflow) (State, error) {
	if err := wf.Validate(); err != nil {
		return State{}, err
	}

	state := NewState()
	r.emit(ctx, notify.Event{
		Type:     notify.EventRunStarted,
		RunID:    state.RunID,
		Workflow: wf.Name,
		Message:  fmt.Sprintf("run %s started", state.RunID),
		Severity: notify.SeverityInfo,
	})

	for i, step := range wf.Steps {
		next, err := r.runStep(ctx, step, state)
		if err != nil {
			stepErr := &StepError{Index: i, Type: step.Type, Err: err}
			r.emit(ctx, notify.Event{
				Type:     notify.EventRunFailed,
				RunID:    state.RunID,
				Workflow: wf.Name,
				Step:     string(step.Type),
				Message:  stepErr.Error(),
				Severity: notify.SeverityError,
			})
			return state, stepErr
		}
		state = next
		r.emit(ctx, notify.Event{
			Type:     notify.EventStepCompleted,
			RunID:    state.RunID,
			Workflow: wf.Name,
			Step:     string(step.Type),
			Message:  fmt.Sprintf("%s completed", step.Type),
			Severity: notify.SeverityInfo,
		})
	}

	r.emit(ctx, notify.Event{
		Type:     notify.EventRunCompleted,
		RunID:    state.RunID,
		Workflow: wf.Name,
		Message:  fmt.Sprintf("run %s completed", state.RunID),
		Severity: notify.SeverityInfo,
	})
	return state, nil
}

// emit sends one event to the configured notifier, stamping the time.
func (r *Runner) emit(ctx context.Context, event notify.Event) {
	if r.Notify == nil {
		return
	}
	event.Timestamp = time.Now()
	if err := r.Notify.Notify(ctx, event); err != nil {
		r.say("Notification failed: %v", err)
	}
}

// runStep dispatches one step. The switch is exhaustive over the step
// vocabulary; Validate has already rejected unknown types.
func (r *Runner) runStep(ctx context.Context, step Step, state State) (State, error) {
	switch step.Type {
	case StepSelectJiraIssue:
		return r.runSelectJiraIssue(ctx, step, state)
	case StepTransitionJiraIssue:
		return r.runTransitionJiraIssue(ctx, step, state)
	case StepSelectGitHubIssue, StepSelectGitLabIssue:
		return r.runSelectForgeIssue(ctx, step, state)
	case StepSelectIssueFromBranch:
		return r.runSelectIssueFromBranch(state)
	case StepSwitchBranches:
		return r.runSwitchBranches(state)
	case StepRebaseBranch:
		return r.runRebaseBranch(step, state)
	case StepBumpVersion:
		return r.runBumpVersion(step, state)
	case StepCommand:
		return r.runCommand(step, state)
	case StepPrepareRelease:
		return r.runPrepareRelease(ctx, step, state)
	case StepRelease:
		return r.runRelease(ctx, state)
	default:
		return state, fmt.Errorf("%w: %q", ErrUnknownStep, step.Type)
	}
}

// selector returns the configured Selector, defaulting to the terminal.
func (r *Runner) selector() prompt.Selector {
	if r.Prompt != nil {
		return r.Prompt
	}
	return prompt.NewTerminal()
}

// out returns the progress writer, defaulting to stdout.
func (r *Runner) out() io.Writer {
	if r.Out != nil {
		return r.Out
	}
	return os.Stdout
}

// say writes one progress line.
func (r *Runner) say(format string, args ...any) {
	fmt.Fprintf(r.out(), format+"\n", args...)
}
