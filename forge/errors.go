package forge

import "errors"

// Forge errors.
var (
	// ErrUnknownProvider indicates the remote URL matches no known platform.
	ErrUnknownProvider = errors.New("unknown forge provider")

	// ErrNotConfigured indicates no forge is configured for the step.
	ErrNotConfigured = errors.New("forge is not configured")
)
