package releaseflow

import (
	"fmt"
	"strings"

	"github.com/randalmurphal/releaseflow/git"
)

// runCommand substitutes state variables into the configured command line
// and runs it through the shell in the repository root.
func (r *Runner) runCommand(step Step, state State) (State, error) {
	command, err := substituteVariables(step.Command, step.Variables, state)
	if err != nil {
		return state, err
	}

	if r.DryRun {
		r.say("Would run: %s", command)
		return state, nil
	}

	shell := r.Shell
	if shell == nil {
		shell = git.NewExecRunner()
	}
	output, err := shell.Run(r.Git.RepoPath(), "sh", "-c", command)
	if err != nil {
		return state, fmt.Errorf("command %q: %w", command, err)
	}
	if output != "" {
		fmt.Fprintln(r.out(), output)
	}
	return state, nil
}

// substituteVariables replaces every placeholder in command with the value
// of the state variable it maps to.
func substituteVariables(command string, vars map[string]Variable, state State) (string, error) {
	for placeholder, variable := range vars {
		value, err := variableValue(variable, state)
		if err != nil {
			return "", err
		}
		command = strings.ReplaceAll(command, placeholder, value)
	}
	return command, nil
}

// variableValue resolves one substitution variable against run state.
func variableValue(v Variable, state State) (string, error) {
	switch v {
	case VarVersion:
		if state.Version.IsZero() {
			return "", fmt.Errorf("variable %s: no version computed yet", v)
		}
		return state.Version.String(), nil
	case VarChangelogEntry:
		if state.Release == nil {
			return "", fmt.Errorf("variable %s: %w", v, ErrReleaseNotPrepared)
		}
		return state.Release.Changelog.Markdown(), nil
	case VarIssueKey:
		if state.Issue == nil {
			return "", fmt.Errorf("variable %s: %w", v, ErrNoIssueSelected)
		}
		return state.Issue.Key, nil
	case VarBranch:
		if state.Branch == "" {
			return "", fmt.Errorf("variable %s: no branch recorded", v)
		}
		return state.Branch, nil
	default:
		return "", fmt.Errorf("unknown variable %q", v)
	}
}
