package git

import "strings"

// LocalBranches returns the names of all local branches.
func (g *Context) LocalBranches() ([]string, error) {
	output, err := g.runGit("for-each-ref", "--format=%(refname:short)", "refs/heads")
	if err != nil {
		return nil, &Error{Op: "list branches", Err: err}
	}
	if output == "" {
		return nil, nil
	}

	var branches []string
	for _, line := range strings.Split(output, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			branches = append(branches, line)
		}
	}
	return branches, nil
}

// BranchExists checks if a local branch exists.
func (g *Context) BranchExists(name string) bool {
	_, err := g.runGit("rev-parse", "--verify", "refs/heads/"+name)
	return err == nil
}

// CreateBranch creates a new branch based on the given ref.
func (g *Context) CreateBranch(name, base string) error {
	if _, err := g.runGit("branch", name, base); err != nil {
		if strings.Contains(err.Error(), "already exists") {
			return ErrBranchExists
		}
		return &Error{Op: "create branch", Err: err}
	}
	return nil
}

// SwitchBranch checks out the named branch. It refuses to switch away from
// uncommitted changes, returning ErrGitDirty instead.
func (g *Context) SwitchBranch(name string) error {
	clean, err := g.IsClean()
	if err != nil {
		return err
	}
	if !clean {
		return ErrGitDirty
	}

	if output, err := g.runGit("checkout", name); err != nil {
		if strings.Contains(err.Error(), "did not match any") {
			return ErrBranchNotFound
		}
		return &Error{Op: "switch branch", Output: output, Err: err}
	}
	return nil
}

// Rebase rebases the current branch onto the given branch, then switches
// to it.
func (g *Context) Rebase(onto string) error {
	if !g.BranchExists(onto) {
		return ErrBranchNotFound
	}
	if output, err := g.runGit("rebase", onto); err != nil {
		return &Error{Op: "rebase", Output: output, Err: err}
	}
	return g.SwitchBranch(onto)
}
