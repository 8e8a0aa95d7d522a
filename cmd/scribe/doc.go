// Command scribe is the command line interface for the scribe daemon.
//
// The root command wires persistent --socket and --config flags into a
// shared commandContext, then attaches the daemon lifecycle commands
// (start, stop, restart, status), the queue management group, the hidden
// daemon runtime command, the one-shot transcribe command, and the
// config and deploy utility groups. Commands talk to a running daemon
// over its unix socket and fall back to direct queue store access when
// the daemon is down.
package main
