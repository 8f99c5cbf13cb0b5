package releaseflow

import (
	"fmt"
	"strings"
)

// StepType names one operation in the workflow vocabulary.
type StepType string

const (
	StepSelectJiraIssue       StepType = "SelectJiraIssue"
	StepTransitionJiraIssue   StepType = "TransitionJiraIssue"
	StepSelectGitHubIssue     StepType = "SelectGitHubIssue"
	StepSelectGitLabIssue     StepType = "SelectGitLabIssue"
	StepSelectIssueFromBranch StepType = "SelectIssueFromBranch"
	StepSwitchBranches        StepType = "SwitchBranches"
	StepRebaseBranch          StepType = "RebaseBranch"
	StepBumpVersion           StepType = "BumpVersion"
	StepCommand               StepType = "Command"
	StepPrepareRelease        StepType = "PrepareRelease"
	StepRelease               StepType = "Release"
)

// Variable names a value from run state that a Command step may substitute
// into its command line.
type Variable string

const (
	VarVersion        Variable = "Version"
	VarChangelogEntry Variable = "ChangelogEntry"
	VarIssueKey       Variable = "IssueKey"
	VarBranch         Variable = "Branch"
)

// DefaultChangelogPath is where PrepareRelease writes unless configured
// otherwise.
const DefaultChangelogPath = "CHANGELOG.md"

// Step is one configured workflow operation. Type selects the operation;
// the remaining fields parameterize it and are meaningful only for the
// types that document them.
type Step struct {
	Type StepType `toml:"type" json:"type"`

	// Status is the issue status to search for (SelectJiraIssue) or
	// transition to (TransitionJiraIssue).
	Status string `toml:"status,omitempty" json:"status,omitempty"`

	// Labels filter issue selection (SelectGitHubIssue, SelectGitLabIssue).
	Labels []string `toml:"labels,omitempty" json:"labels,omitempty"`

	// To is the branch to rebase onto (RebaseBranch).
	To string `toml:"to,omitempty" json:"to,omitempty"`

	// Rule picks the version change for BumpVersion: "major", "minor",
	// "patch", "release", or "pre:<label>".
	Rule string `toml:"rule,omitempty" json:"rule,omitempty"`

	// Command is the shell command to run, after variable substitution
	// (Command).
	Command string `toml:"command,omitempty" json:"command,omitempty"`

	// Variables maps placeholder text in Command to state variables.
	Variables map[string]Variable `toml:"variables,omitempty" json:"variables,omitempty"`

	// ChangelogPath overrides DefaultChangelogPath (PrepareRelease).
	ChangelogPath string `toml:"changelog_path,omitempty" json:"changelogPath,omitempty"`

	// PrereleaseLabel makes PrepareRelease produce a pre-release under
	// this label.
	PrereleaseLabel string `toml:"prerelease_label,omitempty" json:"prereleaseLabel,omitempty"`
}

// Validate checks the step is a known type carrying the fields that type
// requires. It does not check runtime prerequisites such as a configured
// tracker.
func (s Step) Validate() error {
	switch s.Type {
	case StepSelectJiraIssue, StepTransitionJiraIssue:
		if s.Status == "" {
			return fmt.Errorf("%s: status is required", s.Type)
		}
	case StepSelectGitHubIssue, StepSelectGitLabIssue,
		StepSelectIssueFromBranch, StepSwitchBranches,
		StepPrepareRelease, StepRelease:
		// No required fields.
	case StepRebaseBranch:
		if s.To == "" {
			return fmt.Errorf("%s: to is required", s.Type)
		}
	case StepBumpVersion:
		if _, err := parseRule(s.Rule); err != nil {
			return fmt.Errorf("%s: %w", s.Type, err)
		}
	case StepCommand:
		if s.Command == "" {
			return fmt.Errorf("%s: command is required", s.Type)
		}
		for placeholder, variable := range s.Variables {
			switch variable {
			case VarVersion, VarChangelogEntry, VarIssueKey, VarBranch:
			default:
				return fmt.Errorf("%s: unknown variable %q for placeholder %q", s.Type, variable, placeholder)
			}
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownStep, s.Type)
	}
	return nil
}

// bumpRule is a parsed BumpVersion rule.
type bumpRule struct {
	kind  string // "major", "minor", "patch", "release", "pre"
	label string // set for "pre"
}

// parseRule parses a BumpVersion rule string.
func parseRule(rule string) (bumpRule, error) {
	switch rule {
	case "major", "minor", "patch", "release":
		return bumpRule{kind: rule}, nil
	}
	if label, ok := strings.CutPrefix(rule, "pre:"); ok && label != "" {
		return bumpRule{kind: "pre", label: label}, nil
	}
	return bumpRule{}, fmt.Errorf("invalid rule %q (want major, minor, patch, release, or pre:<label>)", rule)
}
