package config

import "os"

// Environment variables carrying credentials. Tokens never live in the
// configuration file.
const (
	EnvJiraEmail       = "JIRA_EMAIL"
	EnvJiraToken       = "JIRA_TOKEN"
	EnvGitHubToken     = "GITHUB_TOKEN"
	EnvGitLabToken     = "GITLAB_TOKEN"
	EnvPrereleaseLabel = "RELEASEFLOW_PRERELEASE_LABEL"

	// GitHub App credentials, used when no GITHUB_TOKEN is set. The key
	// variable names a PEM file on disk, not the key itself.
	EnvGitHubAppID           = "GITHUB_APP_ID"
	EnvGitHubAppKeyPath      = "GITHUB_APP_KEY_PATH"
	EnvGitHubAppInstallation = "GITHUB_APP_INSTALLATION_ID"
)

// JiraCredentials reads the Jira login from the environment.
func JiraCredentials() (email, token string) {
	return os.Getenv(EnvJiraEmail), os.Getenv(EnvJiraToken)
}

// GitHubToken reads the GitHub token from the environment.
func GitHubToken() string {
	return os.Getenv(EnvGitHubToken)
}

// GitHubApp reads the GitHub App credentials from the environment.
func GitHubApp() (appID, keyPath, installationID string) {
	return os.Getenv(EnvGitHubAppID),
		os.Getenv(EnvGitHubAppKeyPath),
		os.Getenv(EnvGitHubAppInstallation)
}

// GitLabToken reads the GitLab token from the environment.
func GitLabToken() string {
	return os.Getenv(EnvGitLabToken)
}

// PrereleaseLabel reads the pre-release label fallback from the
// environment.
func PrereleaseLabel() string {
	return os.Getenv(EnvPrereleaseLabel)
}
