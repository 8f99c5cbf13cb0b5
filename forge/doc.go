// Package forge abstracts over code-hosting platforms. Workflow steps
// talk to the Forge interface; GitHub and GitLab implementations cover
// issue listing and release publishing, and Detect picks the provider
// from a repository's remote URL.
//
// GitHub authentication accepts either a personal access token or a
// GitHub App installation, for which NewAppToken mints the RS256 JWT.
package forge
