// Package queue persists transcription work items in SQLite and exposes
// the lifecycle operations the workflow manager drives: enqueue, status
// transitions, heartbeat reclaim, and maintenance (clear/retry/health).
//
// The store keeps one row per audio input. Statuses move strictly
// forward (pending -> inspecting -> inspected -> transcribing ->
// transcribed -> organizing -> completed) with failed and review as
// terminal side exits.
package queue
