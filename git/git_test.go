package git

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

// setupTestRepo creates a temporary git repository for testing.
func setupTestRepo(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()

	if err := runCmd(dir, "git", "init"); err != nil {
		t.Fatalf("git init: %v", err)
	}
	if err := runCmd(dir, "git", "config", "user.email", "test@test.com"); err != nil {
		t.Fatalf("git config email: %v", err)
	}
	if err := runCmd(dir, "git", "config", "user.name", "Test User"); err != nil {
		t.Fatalf("git config name: %v", err)
	}

	writeAndCommit(t, dir, "README.md", "# Test\n", "Initial commit")

	return dir
}

// runCmd executes a command in the specified directory.
func runCmd(dir string, name string, args ...string) error {
	cmd := exec.Command(name, args...)
	cmd.Dir = dir
	return cmd.Run()
}

// writeAndCommit writes a file and commits it with the given message.
func writeAndCommit(t *testing.T, dir, name, content, message string) {
	t.Helper()

	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if err := runCmd(dir, "git", "add", "."); err != nil {
		t.Fatalf("git add: %v", err)
	}
	if err := runCmd(dir, "git", "commit", "-m", message); err != nil {
		t.Fatalf("git commit: %v", err)
	}
}

func TestNewContext(t *testing.T) {
	t.Run("valid repo", func(t *testing.T) {
		dir := setupTestRepo(t)

		g, err := NewContext(dir)
		if err != nil {
			t.Fatalf("NewContext: %v", err)
		}
		if g.RepoPath() != dir {
			t.Errorf("RepoPath = %q, want %q", g.RepoPath(), dir)
		}
	})

	t.Run("non-git directory", func(t *testing.T) {
		dir := t.TempDir()
		_, err := NewContext(dir)
		if err != ErrNotGitRepo {
			t.Errorf("err = %v, want ErrNotGitRepo", err)
		}
	})
}

func TestContext_Branches(t *testing.T) {
	dir := setupTestRepo(t)
	g, _ := NewContext(dir)

	base, err := g.CurrentBranch()
	if err != nil {
		t.Fatalf("CurrentBranch: %v", err)
	}

	t.Run("create and list", func(t *testing.T) {
		if err := g.CreateBranch("feature-x", base); err != nil {
			t.Fatalf("CreateBranch: %v", err)
		}
		if !g.BranchExists("feature-x") {
			t.Error("feature-x should exist")
		}

		branches, err := g.LocalBranches()
		if err != nil {
			t.Fatalf("LocalBranches: %v", err)
		}
		found := false
		for _, b := range branches {
			if b == "feature-x" {
				found = true
			}
		}
		if !found {
			t.Errorf("feature-x not in %v", branches)
		}
	})

	t.Run("create duplicate", func(t *testing.T) {
		err := g.CreateBranch("feature-x", base)
		if !errors.Is(err, ErrBranchExists) {
			t.Errorf("err = %v, want ErrBranchExists", err)
		}
	})

	t.Run("switch", func(t *testing.T) {
		if err := g.SwitchBranch("feature-x"); err != nil {
			t.Fatalf("SwitchBranch: %v", err)
		}
		branch, _ := g.CurrentBranch()
		if branch != "feature-x" {
			t.Errorf("branch = %q, want feature-x", branch)
		}
		if err := g.SwitchBranch(base); err != nil {
			t.Fatalf("switch back: %v", err)
		}
	})

	t.Run("switch refuses dirty tree", func(t *testing.T) {
		if err := os.WriteFile(filepath.Join(dir, "dirty.txt"), []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
		defer os.Remove(filepath.Join(dir, "dirty.txt"))

		err := g.SwitchBranch("feature-x")
		if !errors.Is(err, ErrGitDirty) {
			t.Errorf("err = %v, want ErrGitDirty", err)
		}
	})

	t.Run("switch to missing branch", func(t *testing.T) {
		err := g.SwitchBranch("no-such-branch")
		if err == nil {
			t.Error("expected error")
		}
	})
}

func TestContext_CommitAndTag(t *testing.T) {
	dir := setupTestRepo(t)
	g, _ := NewContext(dir)

	if err := os.WriteFile(filepath.Join(dir, "a.txt"), []byte("a"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := g.Stage("a.txt"); err != nil {
		t.Fatalf("Stage: %v", err)
	}
	if err := g.Commit("feat: add a"); err != nil {
		t.Fatalf("Commit: %v", err)
	}

	t.Run("nothing to commit", func(t *testing.T) {
		err := g.Commit("empty")
		if !errors.Is(err, ErrNothingToCommit) {
			t.Errorf("err = %v, want ErrNothingToCommit", err)
		}
	})

	t.Run("create tag", func(t *testing.T) {
		if err := g.CreateTag("v1.0.0"); err != nil {
			t.Fatalf("CreateTag: %v", err)
		}
		tags, err := g.Tags()
		if err != nil {
			t.Fatalf("Tags: %v", err)
		}
		if len(tags) != 1 || tags[0] != "v1.0.0" {
			t.Errorf("tags = %v", tags)
		}
	})

	t.Run("duplicate tag", func(t *testing.T) {
		err := g.CreateTag("v1.0.0")
		if !errors.Is(err, ErrTagExists) {
			t.Errorf("err = %v, want ErrTagExists", err)
		}
	})
}

func TestHistory(t *testing.T) {
	dir := setupTestRepo(t)
	g, _ := NewContext(dir)
	h := g.History()

	t.Run("nothing released yet", func(t *testing.T) {
		v, err := h.CurrentVersion()
		if err != nil {
			t.Fatalf("CurrentVersion: %v", err)
		}
		if !v.IsZero() {
			t.Errorf("CurrentVersion = %s, want zero", v)
		}

		commits, err := h.CommitsSinceLastRelease()
		if err != nil {
			t.Fatalf("CommitsSinceLastRelease: %v", err)
		}
		if len(commits) != 1 {
			t.Fatalf("got %d commits, want full history", len(commits))
		}
	})

	// Release 1.0.0, then land two more commits.
	if err := g.CreateTag("v1.0.0"); err != nil {
		t.Fatal(err)
	}
	writeAndCommit(t, dir, "b.txt", "b", "feat: add b")
	writeAndCommit(t, dir, "c.txt", "c", "fix: correct c\n\nlonger body here")

	t.Run("commits since last release", func(t *testing.T) {
		commits, err := h.CommitsSinceLastRelease()
		if err != nil {
			t.Fatalf("CommitsSinceLastRelease: %v", err)
		}
		if len(commits) != 2 {
			t.Fatalf("got %d commits, want 2", len(commits))
		}
		if commits[0].Message != "feat: add b" {
			t.Errorf("oldest first violated: %q", commits[0].Message)
		}
		if commits[1].Message != "fix: correct c\n\nlonger body here" {
			t.Errorf("body lost: %q", commits[1].Message)
		}
		if len(commits[0].SHA) != 40 {
			t.Errorf("SHA = %q", commits[0].SHA)
		}
	})

	t.Run("current and known versions", func(t *testing.T) {
		// Pre-release and non-version tags must not move the stable version.
		if err := g.CreateTag("v1.1.0-rc.1"); err != nil {
			t.Fatal(err)
		}
		if err := g.CreateTag("not-a-version"); err != nil {
			t.Fatal(err)
		}

		v, err := h.CurrentVersion()
		if err != nil {
			t.Fatalf("CurrentVersion: %v", err)
		}
		if v.String() != "1.0.0" {
			t.Errorf("CurrentVersion = %s, want 1.0.0", v)
		}

		known, err := h.KnownVersions()
		if err != nil {
			t.Fatalf("KnownVersions: %v", err)
		}
		if len(known) != 2 {
			t.Errorf("KnownVersions = %v, want 1.0.0 and 1.1.0-rc.1", known)
		}
	})
}

func TestMockRunner(t *testing.T) {
	runner := NewMockRunner()
	runner.Outputs["git rev-parse --git-dir"] = ".git"
	runner.Outputs["git rev-parse --abbrev-ref HEAD"] = "main"

	g, err := NewContext(t.TempDir(), WithRunner(runner))
	if err != nil {
		t.Fatalf("NewContext: %v", err)
	}

	branch, err := g.CurrentBranch()
	if err != nil {
		t.Fatalf("CurrentBranch: %v", err)
	}
	if branch != "main" {
		t.Errorf("branch = %q", branch)
	}
	if len(runner.Calls) != 2 {
		t.Errorf("calls = %v", runner.Calls)
	}
}
