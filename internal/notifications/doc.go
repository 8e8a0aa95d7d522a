// Package notifications publishes workflow events to ntfy.
//
// When no topic is configured, NewService returns a noop implementation so
// callers never need nil checks. Per-event toggles in the configuration
// silence individual event families without disabling the service.
package notifications
