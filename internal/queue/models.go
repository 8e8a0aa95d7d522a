package queue

import (
	"path/filepath"
	"strings"
	"time"
)

// Status represents the lifecycle of a queue item.
type Status string

const (
	StatusPending      Status = "pending"
	StatusInspecting   Status = "inspecting"
	StatusInspected    Status = "inspected"
	StatusTranscribing Status = "transcribing"
	StatusTranscribed  Status = "transcribed"
	StatusOrganizing   Status = "organizing"
	StatusCompleted    Status = "completed"
	StatusFailed       Status = "failed"
	StatusReview       Status = "review"
)

// DaemonStopReason is the error message set when items are failed due to daemon shutdown.
const DaemonStopReason = "Daemon stopped"

var allStatuses = []Status{
	StatusPending,
	StatusInspecting,
	StatusInspected,
	StatusTranscribing,
	StatusTranscribed,
	StatusOrganizing,
	StatusCompleted,
	StatusFailed,
	StatusReview,
}

var statusSet = func() map[Status]struct{} {
	set := make(map[Status]struct{}, len(allStatuses))
	for _, status := range allStatuses {
		set[status] = struct{}{}
	}
	return set
}()

var processingStatuses = map[Status]struct{}{
	StatusInspecting:   {},
	StatusTranscribing: {},
	StatusOrganizing:   {},
}

// HealthSummary describes aggregated queue counts per key lifecycle states.
type HealthSummary struct {
	Total      int
	Pending    int
	Processing int
	Failed     int
	Review     int
	Completed  int
}

// Item represents a queue item persisted in SQLite.
type Item struct {
	ID              int64
	SourcePath      string
	Title           string
	Status          Status
	ProbeJSON       string
	Language        string
	Engine          string
	TranscriptFile  string
	FinalAudioFile  string
	ErrorMessage    string
	CreatedAt       time.Time
	UpdatedAt       time.Time
	ProgressStage   string
	ProgressPercent float64
	ProgressMessage string
	LastHeartbeat   *time.Time
	NeedsReview     bool
	ReviewReason    string
}

// AllStatuses returns the ordered list of known statuses.
func AllStatuses() []Status {
	cp := make([]Status, len(allStatuses))
	copy(cp, allStatuses)
	return cp
}

// ParseStatus converts a string into a known Status.
func ParseStatus(value string) (Status, bool) {
	normalized := Status(strings.ToLower(strings.TrimSpace(value)))
	if normalized == "" {
		return "", false
	}
	_, ok := statusSet[normalized]
	return normalized, ok
}

// IsProcessing returns true when the status reflects an in-flight operation.
func (i Item) IsProcessing() bool {
	_, ok := processingStatuses[i.Status]
	return ok
}

// IsProcessingStatus reports whether a status reflects an in-flight operation.
func IsProcessingStatus(status Status) bool {
	_, ok := processingStatuses[status]
	return ok
}

// SetProgress updates all three progress fields atomically.
func (i *Item) SetProgress(stage, message string, percent float64) {
	i.ProgressStage = stage
	i.ProgressMessage = message
	i.ProgressPercent = percent
}

// SetProgressComplete sets progress to 100% with the given stage and message.
func (i *Item) SetProgressComplete(stage, message string) {
	i.SetProgress(stage, message, 100)
}

// SetFailed marks the item as failed with the given error message.
// Clears heartbeat and sets progress fields appropriately.
func (i *Item) SetFailed(message string) {
	i.Status = StatusFailed
	i.ErrorMessage = message
	i.ProgressPercent = 0
	i.ProgressMessage = message
	i.LastHeartbeat = nil
	i.ProgressStage = "Failed"
}

// StageLabel returns a human-readable label for a status.
func StageLabel(status Status) string {
	switch status {
	case StatusPending:
		return "Pending"
	case StatusInspecting, StatusInspected:
		return "Inspecting"
	case StatusTranscribing, StatusTranscribed:
		return "Transcribing"
	case StatusOrganizing:
		return "Organizing"
	case StatusCompleted:
		return "Completed"
	case StatusFailed:
		return "Failed"
	case StatusReview:
		return "Review"
	default:
		return string(status)
	}
}

// InferTitleFromPath derives a display title from an audio file path.
func InferTitleFromPath(path string) string {
	base := filepath.Base(strings.TrimSpace(path))
	if base == "." || base == string(filepath.Separator) || base == "" {
		return "Unknown"
	}
	name := strings.TrimSuffix(base, filepath.Ext(base))
	name = strings.NewReplacer("_", " ", ".", " ").Replace(name)
	name = strings.Join(strings.Fields(name), " ")
	if name == "" {
		return "Unknown"
	}
	return name
}
