// Package workflow coordinates queue processing across the registered stages.
//
// The manager runs a single processing lane: it picks the oldest item whose
// status matches a stage start status, moves it to the stage's processing
// status, executes the handler with a heartbeat loop, and advances it to the
// stage's done status. Failures are classified through services.FailureStatus
// so validation problems land in review instead of failed.
package workflow
