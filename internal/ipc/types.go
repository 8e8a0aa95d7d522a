package ipc

import (
	"time"

	"scribe/internal/queue"
)

// QueueItem is the wire representation of a queue entry.
type QueueItem struct {
	ID              int64   `json:"id"`
	SourcePath      string  `json:"source_path"`
	Title           string  `json:"title"`
	Status          string  `json:"status"`
	Language        string  `json:"language"`
	Engine          string  `json:"engine"`
	TranscriptFile  string  `json:"transcript_file,omitempty"`
	FinalAudioFile  string  `json:"final_audio_file,omitempty"`
	ErrorMessage    string  `json:"error_message,omitempty"`
	ProgressStage   string  `json:"progress_stage,omitempty"`
	ProgressPercent float64 `json:"progress_percent,omitempty"`
	ProgressMessage string  `json:"progress_message,omitempty"`
	NeedsReview     bool    `json:"needs_review,omitempty"`
	ReviewReason    string  `json:"review_reason,omitempty"`
	CreatedAt       string  `json:"created_at"`
	UpdatedAt       string  `json:"updated_at"`
}

// StageHealth describes readiness of a workflow stage.
type StageHealth struct {
	Name   string `json:"name"`
	Ready  bool   `json:"ready"`
	Detail string `json:"detail,omitempty"`
}

// FromQueueItem converts a queue item into its wire form.
func FromQueueItem(item *queue.Item) QueueItem {
	if item == nil {
		return QueueItem{}
	}
	return QueueItem{
		ID:              item.ID,
		SourcePath:      item.SourcePath,
		Title:           item.Title,
		Status:          string(item.Status),
		Language:        item.Language,
		Engine:          item.Engine,
		TranscriptFile:  item.TranscriptFile,
		FinalAudioFile:  item.FinalAudioFile,
		ErrorMessage:    item.ErrorMessage,
		ProgressStage:   item.ProgressStage,
		ProgressPercent: item.ProgressPercent,
		ProgressMessage: item.ProgressMessage,
		NeedsReview:     item.NeedsReview,
		ReviewReason:    item.ReviewReason,
		CreatedAt:       item.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:       item.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

// StartRequest triggers daemon workflow startup.
type StartRequest struct{}

// StartResponse indicates whether the daemon was started.
type StartResponse struct {
	Started bool   `json:"started"`
	Message string `json:"message"`
}

// StopRequest stops daemon workflow.
type StopRequest struct{}

// StopResponse indicates stop result.
type StopResponse struct {
	Stopped bool `json:"stopped"`
}

// StatusRequest fetches daemon status.
type StatusRequest struct{}

// StatusResponse represents combined daemon/workflow status information.
type StatusResponse struct {
	Running     bool           `json:"running"`
	QueueStats  map[string]int `json:"queue_stats"`
	LastError   string         `json:"last_error"`
	LastItem    *QueueItem     `json:"last_item"`
	LockPath    string         `json:"lock_path"`
	QueueDBPath string         `json:"queue_db_path"`
	StageHealth []StageHealth  `json:"stage_health"`
	PID         int            `json:"pid"`
}

// QueueAddRequest enqueues a file for processing.
type QueueAddRequest struct {
	Path string `json:"path"`
}

// QueueAddResponse contains the enqueued item.
type QueueAddResponse struct {
	Item QueueItem `json:"item"`
}

// QueueListRequest filters queue listing by status.
type QueueListRequest struct {
	Statuses []string `json:"statuses"`
}

// QueueListResponse contains queue entries.
type QueueListResponse struct {
	Items []QueueItem `json:"items"`
}

// QueueDescribeRequest fetches a single queue item by id.
type QueueDescribeRequest struct {
	ID int64 `json:"id"`
}

// QueueDescribeResponse contains a single queue entry.
type QueueDescribeResponse struct {
	Item QueueItem `json:"item"`
}

// QueueClearRequest removes all items.
type QueueClearRequest struct{}

// QueueClearResponse reports number of removed entries.
type QueueClearResponse struct {
	Removed int64 `json:"removed"`
}

// QueueClearCompletedRequest removes completed items.
type QueueClearCompletedRequest struct{}

// QueueClearCompletedResponse reports number of removed entries.
type QueueClearCompletedResponse struct {
	Removed int64 `json:"removed"`
}

// QueueClearFailedRequest removes failed items.
type QueueClearFailedRequest struct{}

// QueueClearFailedResponse reports number of removed entries.
type QueueClearFailedResponse struct {
	Removed int64 `json:"removed"`
}

// QueueRemoveRequest removes specific items by ID.
type QueueRemoveRequest struct {
	IDs []int64 `json:"ids"`
}

// QueueRemoveResponse reports number of removed entries.
type QueueRemoveResponse struct {
	Removed int64 `json:"removed"`
}

// QueueResetRequest resets in-flight items.
type QueueResetRequest struct{}

// QueueResetResponse reports number of items reset.
type QueueResetResponse struct {
	Updated int64 `json:"updated"`
}

// QueueRetryRequest retries failed items. Empty list means all retryable items.
type QueueRetryRequest struct {
	IDs []int64 `json:"ids"`
}

// QueueRetryResponse reports number of retried items.
type QueueRetryResponse struct {
	Updated int64 `json:"updated"`
}

// QueueHealthRequest fetches aggregate diagnostics.
type QueueHealthRequest struct{}

// QueueHealthResponse reports queue health information.
type QueueHealthResponse struct {
	Total      int `json:"total"`
	Pending    int `json:"pending"`
	Processing int `json:"processing"`
	Failed     int `json:"failed"`
	Review     int `json:"review"`
	Completed  int `json:"completed"`
}

// TestNotificationRequest triggers a notification test.
type TestNotificationRequest struct{}

// TestNotificationResponse reports notification test outcome.
type TestNotificationResponse struct {
	Sent    bool   `json:"sent"`
	Message string `json:"message"`
}
