package releaseflow

import (
	"fmt"
)

// runSwitchBranches moves to the working branch for the selected issue,
// creating it first when it does not exist yet. Creation prompts for the
// base branch.
func (r *Runner) runSwitchBranches(state State) (State, error) {
	if state.Issue == nil {
		return state, ErrNoIssueSelected
	}
	name := BranchName(*state.Issue)

	if r.DryRun {
		r.say("Would switch to branch %s", name)
		return state.WithBranch(name), nil
	}

	if !r.Git.BranchExists(name) {
		branches, err := r.Git.LocalBranches()
		if err != nil {
			return state, err
		}
		idx, err := r.selector().Select(fmt.Sprintf("Base branch for %s", name), branches)
		if err != nil {
			return state, err
		}
		if err := r.Git.CreateBranch(name, branches[idx]); err != nil {
			return state, err
		}
	}

	if err := r.Git.SwitchBranch(name); err != nil {
		return state, err
	}
	r.say("Switched to branch %s", name)
	return state.WithBranch(name), nil
}

// runRebaseBranch rebases the current branch onto the target branch and
// ends up on the target.
func (r *Runner) runRebaseBranch(step Step, state State) (State, error) {
	if r.DryRun {
		r.say("Would rebase onto %s", step.To)
		return state, nil
	}

	if err := r.Git.Rebase(step.To); err != nil {
		return state, err
	}
	r.say("Rebased onto %s", step.To)
	return state.WithBranch(step.To), nil
}
