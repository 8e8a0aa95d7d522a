// Package preflight runs startup checks against the configured environment:
// directory permissions, free space in the staging area, and hosted API
// reachability when the OpenAI engine is selected. The CLI status command and
// the daemon share the same checks.
package preflight
