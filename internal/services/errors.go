package services

import (
	"errors"
	"fmt"
	"strings"

	"scribe/internal/queue"
)

// Sentinel markers for stage failures. Stages wrap their errors with one of
// these so the workflow manager can decide whether an item should retry
// later or wait for operator review.
var (
	ErrExternalTool  = errors.New("external tool error")
	ErrValidation    = errors.New("validation error")
	ErrConfiguration = errors.New("configuration error")
	ErrNotFound      = errors.New("not found")
	ErrTimeout       = errors.New("timeout")
	ErrTransient     = errors.New("transient failure")
)

// Wrap tags err with marker and prefixes it with stage and operation
// context. A nil marker falls back to ErrTransient so the failure is
// still classifiable.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	if marker == nil {
		marker = ErrTransient
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// FailureStatus picks the queue status for a failed item. Validation,
// configuration, and not-found errors need a human to intervene, so they
// land in review; everything else is marked failed and can be retried.
func FailureStatus(err error) queue.Status {
	switch {
	case errors.Is(err, ErrValidation), errors.Is(err, ErrConfiguration), errors.Is(err, ErrNotFound):
		return queue.StatusReview
	default:
		return queue.StatusFailed
	}
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	for _, part := range []string{stage, operation, message} {
		if part = strings.TrimSpace(part); part != "" {
			parts = append(parts, part)
		}
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
