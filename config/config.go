package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/randalmurphal/releaseflow"
)

// DefaultFileName is the configuration file looked up in the repository
// root.
const DefaultFileName = "releaseflow.toml"

// ErrNotFound indicates no configuration file exists for the repository.
var ErrNotFound = errors.New("configuration file not found")

// Jira configures the Jira tracker connection. Credentials come from the
// environment, not from the file.
type Jira struct {
	URL     string `toml:"url"`
	Project string `toml:"project"`
}

// GitHub names the repository forge steps operate on.
type GitHub struct {
	Owner string `toml:"owner"`
	Repo  string `toml:"repo"`
}

// GitLab names the project forge steps operate on. URL overrides
// gitlab.com for self-hosted instances.
type GitLab struct {
	Project string `toml:"project"`
	URL     string `toml:"url,omitempty"`
}

// Notify configures where run events are announced.
type Notify struct {
	Webhook string `toml:"webhook,omitempty"`
	Slack   string `toml:"slack,omitempty"`
}

// Config is the decoded releaseflow.toml.
type Config struct {
	Jira      *Jira                  `toml:"jira,omitempty"`
	GitHub    *GitHub                `toml:"github,omitempty"`
	GitLab    *GitLab                `toml:"gitlab,omitempty"`
	Notify    *Notify                `toml:"notify,omitempty"`
	Workflows []releaseflow.Workflow `toml:"workflows"`
}

// Load reads and decodes the configuration file at path. Unknown keys are
// rejected so typos fail loudly.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	decoder := toml.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &cfg, nil
}

// Find walks up from startDir to the filesystem root looking for the
// configuration file, stopping at the first directory that carries one.
func Find(startDir string) (string, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	for {
		candidate := filepath.Join(dir, DefaultFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("%w: no %s above %s", ErrNotFound, DefaultFileName, startDir)
		}
		dir = parent
	}
}

// Validate checks the configuration is internally consistent: every
// workflow valid and uniquely named, and every step's tracker or forge
// actually configured.
func (c *Config) Validate() error {
	if len(c.Workflows) == 0 {
		return fmt.Errorf("no workflows configured")
	}

	seen := make(map[string]bool, len(c.Workflows))
	for _, wf := range c.Workflows {
		if err := wf.Validate(); err != nil {
			return err
		}
		if seen[wf.Name] {
			return fmt.Errorf("duplicate workflow name %q", wf.Name)
		}
		seen[wf.Name] = true

		for i, step := range wf.Steps {
			if err := c.validateStepBackend(step); err != nil {
				return fmt.Errorf("workflow %q step %d: %w", wf.Name, i+1, err)
			}
		}
	}
	return nil
}

// validateStepBackend checks the step's external dependency is configured.
func (c *Config) validateStepBackend(step releaseflow.Step) error {
	switch step.Type {
	case releaseflow.StepSelectJiraIssue, releaseflow.StepTransitionJiraIssue:
		if c.Jira == nil || c.Jira.URL == "" || c.Jira.Project == "" {
			return fmt.Errorf("%s requires a [jira] section with url and project", step.Type)
		}
	case releaseflow.StepSelectGitHubIssue:
		if c.GitHub == nil || c.GitHub.Owner == "" || c.GitHub.Repo == "" {
			return fmt.Errorf("%s requires a [github] section with owner and repo", step.Type)
		}
	case releaseflow.StepSelectGitLabIssue:
		if c.GitLab == nil || c.GitLab.Project == "" {
			return fmt.Errorf("%s requires a [gitlab] section with project", step.Type)
		}
	}
	return nil
}

// Workflow returns the named workflow.
func (c *Config) Workflow(name string) (releaseflow.Workflow, bool) {
	for _, wf := range c.Workflows {
		if wf.Name == name {
			return wf, true
		}
	}
	return releaseflow.Workflow{}, false
}

// WorkflowNames lists workflows in configuration order.
func (c *Config) WorkflowNames() []string {
	names := make([]string, len(c.Workflows))
	for i, wf := range c.Workflows {
		names[i] = wf.Name
	}
	return names
}
