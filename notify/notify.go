package notify

import (
	"context"
	"errors"
	"time"
)

// EventType represents the type of workflow event.
type EventType string

// Event type constants.
const (
	EventRunStarted       EventType = "run_started"
	EventRunCompleted     EventType = "run_completed"
	EventRunFailed        EventType = "run_failed"
	EventStepCompleted    EventType = "step_completed"
	EventReleasePublished EventType = "release_published"
	EventNoReleaseNeeded  EventType = "no_release_needed"
)

// Severity constants for events.
const (
	SeverityInfo    = "info"
	SeverityWarning = "warning"
	SeverityError   = "error"
)

// Event describes a workflow event for notification.
type Event struct {
	Type      EventType      `json:"type"`
	RunID     string         `json:"run_id"`
	Workflow  string         `json:"workflow"`
	Step      string         `json:"step,omitempty"`
	Message   string         `json:"message"`
	Severity  string         `json:"severity"`
	Timestamp time.Time      `json:"timestamp"`
	Metadata  map[string]any `json:"metadata,omitempty"`
}

// Notifier sends notifications about workflow events. Implementations
// should be quick and must not panic; a failed notification never fails
// the run.
type Notifier interface {
	Notify(ctx context.Context, event Event) error
}

// Multi fans an event out to several notifiers. Every notifier sees the
// event; errors are joined.
type Multi []Notifier

// Notify implements Notifier.
func (m Multi) Notify(ctx context.Context, event Event) error {
	var errs []error
	for _, n := range m {
		if err := n.Notify(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
