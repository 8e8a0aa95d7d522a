// Package deps reports availability of the external binaries scribe shells
// out to. Both the daemon startup snapshot and the CLI status command consume
// the same requirement list.
package deps

import (
	"fmt"
	"os/exec"
	"strings"

	"scribe/internal/config"
)

// Requirement defines an external dependency scribe relies on.
type Requirement struct {
	Name        string
	Command     string
	Description string
	Optional    bool
}

// Status reports the availability of a dependency.
type Status struct {
	Name        string
	Command     string
	Description string
	Optional    bool
	Available   bool
	Detail      string
}

// CheckBinaries evaluates the provided requirements and reports availability.
func CheckBinaries(requirements []Requirement) []Status {
	results := make([]Status, 0, len(requirements))
	for _, req := range requirements {
		cmd := strings.TrimSpace(req.Command)
		status := Status{
			Name:        req.Name,
			Command:     cmd,
			Description: strings.TrimSpace(req.Description),
			Optional:    req.Optional,
		}
		if cmd == "" {
			status.Available = false
			status.Detail = "command not configured"
			results = append(results, status)
			continue
		}
		if _, err := exec.LookPath(cmd); err != nil {
			status.Available = false
			status.Detail = fmt.Sprintf("binary %q not found", cmd)
			results = append(results, status)
			continue
		}
		status.Available = true
		results = append(results, status)
	}
	return results
}

// Requirements lists the external tools for the current configuration.
// The whisper CLI is only required when the local engine is selected, and
// docker only matters for deployment commands.
func Requirements(cfg *config.Config) []Requirement {
	requirements := []Requirement{
		{
			Name:        "FFprobe",
			Command:     cfg.FFprobeBinary(),
			Description: "Required for audio inspection",
		},
	}
	if cfg.Whisper.Engine == config.EngineWhisper {
		requirements = append(requirements, Requirement{
			Name:        "Whisper",
			Command:     cfg.WhisperBinary(),
			Description: "Required for local transcription",
		})
	}
	requirements = append(requirements, Requirement{
		Name:        "Docker",
		Command:     "docker",
		Description: "Required for publishing stack deployment",
		Optional:    true,
	})
	return requirements
}

// Check evaluates all requirements for the given configuration.
func Check(cfg *config.Config) []Status {
	if cfg == nil {
		return nil
	}
	return CheckBinaries(Requirements(cfg))
}
