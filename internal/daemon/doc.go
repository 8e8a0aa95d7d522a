// Package daemon coordinates the background services that make up a running
// scribe instance: the inbox watcher, the workflow manager, and the queue
// store. It enforces single-instance execution with a file lock and exposes
// the operations the IPC server forwards on behalf of the CLI.
package daemon
