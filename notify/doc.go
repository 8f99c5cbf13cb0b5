// Package notify reports workflow events to the outside world: run
// lifecycle, step completion, and published releases. The Runner emits
// events to a Notifier; LogNotifier, WebhookNotifier, and SlackNotifier
// are the built-in sinks, and Multi fans out to several at once.
//
// Notification failures never fail a run.
package notify
