// Package jira provides the minimal Jira REST API surface workflow steps
// need: searching a project's issues by status and transitioning an issue
// to a new status.
//
// Authentication uses the email + API token basic-auth scheme. All calls
// take a context and return structured errors; the client never retries
// and never logs.
package jira
