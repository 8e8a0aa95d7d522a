// Package ipc implements the control channel between the scribe CLI and the
// daemon: JSON-RPC over a Unix domain socket. The server wraps a daemon
// instance and the client mirrors each RPC with a typed method.
package ipc
