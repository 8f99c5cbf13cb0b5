package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/randalmurphal/releaseflow"
	"github.com/randalmurphal/releaseflow/config"
	"github.com/randalmurphal/releaseflow/forge"
	"github.com/randalmurphal/releaseflow/git"
	"github.com/randalmurphal/releaseflow/jira"
	"github.com/randalmurphal/releaseflow/notify"
	"github.com/randalmurphal/releaseflow/prompt"
)

var (
	dryRun          bool
	validateOnly    bool
	prereleaseLabel string
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "releaseflow [workflow]",
		Short:        "Run release automation workflows",
		Long:         "Releaseflow runs the workflows defined in releaseflow.toml:\nselecting tracker issues, managing branches, and preparing and\npublishing releases from conventional commits.",
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE:         run,
	}

	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report what each step would do without doing it")
	rootCmd.Flags().BoolVar(&validateOnly, "validate", false, "Check the configuration and exit")
	rootCmd.Flags().StringVar(&prereleaseLabel, "prerelease-label", "", "Override the pre-release label for PrepareRelease steps")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	wd, err := os.Getwd()
	if err != nil {
		return err
	}

	path, err := config.Find(wd)
	if err != nil {
		return err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if validateOnly {
		fmt.Printf("Configuration valid: %s\n", path)
		return nil
	}

	g, err := git.NewContext(filepath.Dir(path))
	if err != nil {
		return err
	}

	selector := prompt.NewTerminal()
	wf, err := chooseWorkflow(cfg, args, selector)
	if err != nil {
		return err
	}

	runner := &releaseflow.Runner{
		Git:             g,
		Prompt:          selector,
		DryRun:          dryRun,
		PrereleaseLabel: label(),
	}

	if workflowUses(wf, releaseflow.StepSelectJiraIssue, releaseflow.StepTransitionJiraIssue) {
		runner.Jira, err = buildTracker(cfg)
		if err != nil {
			return err
		}
	}

	runner.Forge, err = buildForge(cmd.Context(), cfg, g)
	if err != nil {
		return err
	}
	runner.Notify = buildNotifier(cfg)

	if _, err := runner.Run(cmd.Context(), wf); err != nil {
		return err
	}
	return nil
}

// label resolves the pre-release label: the flag wins over the
// environment.
func label() string {
	if prereleaseLabel != "" {
		return prereleaseLabel
	}
	return config.PrereleaseLabel()
}

// chooseWorkflow picks the workflow named on the command line, prompting
// when none was given.
func chooseWorkflow(cfg *config.Config, args []string, selector prompt.Selector) (releaseflow.Workflow, error) {
	if len(args) == 1 {
		wf, ok := cfg.Workflow(args[0])
		if !ok {
			return releaseflow.Workflow{}, fmt.Errorf("workflow %q not found (have: %v)", args[0], cfg.WorkflowNames())
		}
		return wf, nil
	}

	names := cfg.WorkflowNames()
	idx, err := selector.Select("Select a workflow", names)
	if err != nil {
		return releaseflow.Workflow{}, err
	}
	wf, _ := cfg.Workflow(names[idx])
	return wf, nil
}

// workflowUses reports whether the workflow contains any of the given step
// types.
func workflowUses(wf releaseflow.Workflow, types ...releaseflow.StepType) bool {
	for _, step := range wf.Steps {
		for _, t := range types {
			if step.Type == t {
				return true
			}
		}
	}
	return false
}

// buildTracker wires the Jira client from configuration plus environment
// credentials.
func buildTracker(cfg *config.Config) (releaseflow.IssueTracker, error) {
	if cfg.Jira == nil {
		return nil, fmt.Errorf("this workflow needs a [jira] section in releaseflow.toml")
	}
	email, token := config.JiraCredentials()
	if email == "" || token == "" {
		return nil, fmt.Errorf("set %s and %s to use Jira steps", config.EnvJiraEmail, config.EnvJiraToken)
	}
	return jira.NewClient(jira.Config{
		URL:     cfg.Jira.URL,
		Project: cfg.Jira.Project,
		Email:   email,
		Token:   token,
	})
}

// buildNotifier wires the configured notification sinks.
func buildNotifier(cfg *config.Config) notify.Notifier {
	if cfg.Notify == nil {
		return nil
	}

	var sinks notify.Multi
	if cfg.Notify.Webhook != "" {
		sinks = append(sinks, notify.NewWebhookNotifier(cfg.Notify.Webhook, nil))
	}
	if cfg.Notify.Slack != "" {
		sinks = append(sinks, notify.NewSlackNotifier(cfg.Notify.Slack))
	}
	if len(sinks) == 0 {
		return nil
	}
	return sinks
}

// buildForge wires the configured forge, falling back to detection from
// the repository's remote URL. A repository with no recognizable forge
// gets none; only steps that need one will fail.
func buildForge(ctx context.Context, cfg *config.Config, g *git.Context) (forge.Forge, error) {
	switch {
	case cfg.GitHub != nil:
		return newGitHubForge(ctx, cfg.GitHub.Owner, cfg.GitHub.Repo)
	case cfg.GitLab != nil:
		return forge.NewGitLab(config.GitLabToken(), cfg.GitLab.Project, cfg.GitLab.URL)
	}

	remote, err := g.FirstRemoteURL()
	if err != nil {
		return nil, nil
	}
	provider, err := forge.Detect(remote)
	if err != nil {
		return nil, nil
	}
	owner, repo, err := forge.ParseRepo(remote)
	if err != nil {
		return nil, nil
	}

	switch provider {
	case forge.ProviderGitHub:
		return newGitHubForge(ctx, owner, repo)
	case forge.ProviderGitLab:
		return forge.NewGitLab(config.GitLabToken(), owner+"/"+repo, "")
	}
	return nil, nil
}

// newGitHubForge authenticates with a personal token when one is set,
// otherwise with GitHub App credentials from the environment.
func newGitHubForge(ctx context.Context, owner, repo string) (forge.Forge, error) {
	if token := config.GitHubToken(); token != "" {
		return forge.NewGitHub(token, owner, repo)
	}

	appID, keyPath, installation := config.GitHubApp()
	if appID == "" || keyPath == "" || installation == "" {
		return forge.NewGitHub("", owner, repo)
	}

	pemBytes, err := os.ReadFile(keyPath)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", keyPath, err)
	}
	key, err := forge.ParseAppKey(pemBytes)
	if err != nil {
		return nil, err
	}
	installationID, err := strconv.ParseInt(installation, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", config.EnvGitHubAppInstallation, err)
	}
	return forge.NewGitHubApp(ctx, appID, key, installationID, owner, repo)
}
