package releaseflow

import (
	"fmt"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/randalmurphal/releaseflow/release"
	"github.com/randalmurphal/releaseflow/semver"
)

// runIDAlphabet keeps run IDs shell and filename safe.
const runIDAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// Issue is the tracker issue a workflow run operates on, whichever tracker
// it came from.
type Issue struct {
	Key     string `json:"key"`
	Summary string `json:"summary"`
}

// State is the value threaded through a workflow run. Steps receive the
// prior state and return the next one; the Runner never mutates a state it
// has already handed out.
type State struct {
	RunID   string          `json:"runId"`
	Issue   *Issue          `json:"issue,omitempty"`
	Branch  string          `json:"branch,omitempty"`
	Version semver.Version  `json:"version,omitempty"`
	Release *release.Result `json:"release,omitempty"`
}

// NewState creates the starting state for a run.
func NewState() State {
	return State{RunID: newRunID()}
}

// WithIssue records the selected issue.
func (s State) WithIssue(issue Issue) State {
	s.Issue = &issue
	return s
}

// WithBranch records the branch the run is working on.
func (s State) WithBranch(branch string) State {
	s.Branch = branch
	return s
}

// WithVersion records the most recently computed project version.
func (s State) WithVersion(v semver.Version) State {
	s.Version = v
	return s
}

// WithRelease records a prepared release and its version.
func (s State) WithRelease(r *release.Result) State {
	s.Release = r
	s.Version = r.NextVersion
	return s
}

// newRunID creates a unique, sortable run identifier.
func newRunID() string {
	suffix, _ := gonanoid.Generate(runIDAlphabet, 8)
	return fmt.Sprintf("%s-%s", time.Now().Format("2006-01-02"), suffix)
}
