package stage

import (
	"strings"

	"scribe/internal/media/ffprobe"
	"scribe/internal/services"
)

// ParseProbe parses the stored ffprobe payload for a queue item.
// On failure it returns a services.ErrValidation suitable for stage Execute methods.
func ParseProbe(raw string) (ffprobe.Result, error) {
	if strings.TrimSpace(raw) == "" {
		return ffprobe.Result{}, nil
	}
	result, err := ffprobe.Parse([]byte(raw))
	if err != nil {
		return ffprobe.Result{}, services.Wrap(
			services.ErrValidation, "stage", "parse probe",
			"Probe data missing or invalid; rerun inspection", err)
	}
	return result, nil
}
