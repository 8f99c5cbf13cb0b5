package git

import (
	"bytes"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// CommandRunner executes external commands for git operations. The default
// implementation shells out to the git binary; tests inject a scripted
// runner instead.
type CommandRunner interface {
	Run(workDir string, name string, args ...string) (string, error)
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct{}

// NewExecRunner creates the default command runner.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

// Run executes the command in workDir and returns trimmed stdout. On
// failure the error carries the command's stderr.
func (r *ExecRunner) Run(workDir string, name string, args ...string) (string, error) {
	cmd := exec.Command(name, args...)
	cmd.Dir = workDir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return strings.TrimSpace(stdout.String()), errors.New(msg)
	}
	return strings.TrimSpace(stdout.String()), nil
}

// MockRunner is a scripted CommandRunner for tests. Outputs are keyed by
// the space-joined command line; unmatched commands fail.
type MockRunner struct {
	Outputs map[string]string
	Errs    map[string]error
	Calls   []string
}

// NewMockRunner creates an empty scripted runner.
func NewMockRunner() *MockRunner {
	return &MockRunner{
		Outputs: map[string]string{},
		Errs:    map[string]error{},
	}
}

func (m *MockRunner) Run(workDir string, name string, args ...string) (string, error) {
	key := strings.Join(append([]string{name}, args...), " ")
	m.Calls = append(m.Calls, key)
	if err, ok := m.Errs[key]; ok {
		return m.Outputs[key], err
	}
	if out, ok := m.Outputs[key]; ok {
		return out, nil
	}
	return "", fmt.Errorf("unexpected command: %s", key)
}
