// Package logging configures slog for scribe: a console handler with
// flattened key=value output, a JSON handler for machine consumption,
// attr helpers, and context-derived fields (item id, stage, correlation
// id) shared by every component.
package logging
