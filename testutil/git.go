package testutil

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

// SetupTestRepo creates a temporary git repository with one commit and
// returns its path. The repository is cleaned up when the test ends.
func SetupTestRepo(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()

	RunGit(t, dir, "init")
	RunGit(t, dir, "config", "user.email", "test@test.com")
	RunGit(t, dir, "config", "user.name", "Test User")

	WriteAndCommit(t, dir, "README.md", "# Test\n", "chore: scaffold")

	return dir
}

// RunGit runs a git command in dir, failing the test on error.
func RunGit(t *testing.T, dir string, args ...string) {
	t.Helper()

	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("git %v: %v\n%s", args, err, out)
	}
}

// WriteAndCommit writes a file and commits it with the given message.
func WriteAndCommit(t *testing.T, dir, name, content, message string) {
	t.Helper()

	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	RunGit(t, dir, "add", ".")
	RunGit(t, dir, "commit", "-m", message)
}

// Tag creates a lightweight tag on HEAD.
func Tag(t *testing.T, dir, name string) {
	t.Helper()
	RunGit(t, dir, "tag", name)
}
