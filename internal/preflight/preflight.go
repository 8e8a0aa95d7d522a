package preflight

import (
	"context"

	"scribe/internal/config"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name   string
	Passed bool
	Detail string
}

// minStagingBytes is the free-space floor for the staging area. Whisper
// writes several artifacts per input, so a nearly full disk fails fast.
const minStagingBytes = 1 << 30

// RunAll executes all applicable preflight checks for the given config.
// Checks are only run when the corresponding feature is enabled.
func RunAll(ctx context.Context, cfg *config.Config) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result

	results = append(results, CheckDirectoryAccess("Inbox directory", cfg.Paths.InboxDir))
	results = append(results, CheckDirectoryAccess("Processed directory", cfg.Paths.ProcessedDir))
	results = append(results, CheckDirectoryAccess("Transcripts directory", cfg.Paths.TranscriptsDir))
	results = append(results, CheckDirectoryAccess("Staging directory", cfg.Paths.StagingDir))
	results = append(results, CheckDirectoryAccess("Log directory", cfg.Paths.LogDir))

	results = append(results, CheckDiskSpace("Staging free space", cfg.Paths.StagingDir, minStagingBytes))

	if cfg.Whisper.Engine == config.EngineOpenAI {
		results = append(results, CheckOpenAI(ctx, cfg.OpenAI))
	}

	return results
}
